package ingest

// Batcher accumulates items and hands them to a flush function in
// fixed-size batches. Ingestion is single-threaded, so no locking.
type Batcher[T any] struct {
	size  int
	flush func([]T) error
	items []T
}

// NewBatcher creates a batcher that flushes every size items.
func NewBatcher[T any](size int, flush func([]T) error) *Batcher[T] {
	if size <= 0 {
		size = 1
	}
	return &Batcher[T]{
		size:  size,
		flush: flush,
		items: make([]T, 0, size),
	}
}

// Add appends an item, flushing when the batch is full.
func (b *Batcher[T]) Add(item T) error {
	b.items = append(b.items, item)
	if len(b.items) >= b.size {
		return b.Flush()
	}
	return nil
}

// Flush hands any pending items to the flush function.
func (b *Batcher[T]) Flush() error {
	if len(b.items) == 0 {
		return nil
	}
	err := b.flush(b.items)
	b.items = b.items[:0]
	return err
}
