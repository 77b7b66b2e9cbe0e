package series

import (
	"encoding/json"
	"os"
	"path/filepath"
)

// Style carries the label configuration handed to the plotting collaborator
// along with a series.
type Style struct {
	Name   string `json:"name"` // artifact base name
	Title  string `json:"title"`
	XLabel string `json:"x_label,omitempty"`
	YLabel string `json:"y_label,omitempty"`
}

// Renderer is the plotting collaborator contract: it accepts one series
// shape plus a style and returns an opaque artifact reference. Actual image
// rendering is external to this core.
type Renderer interface {
	RenderCurve(points []Point, style Style) (string, error)
	RenderOutcomes(o Outcomes, style Style) (string, error)
	RenderHistogram(h Histogram, style Style) (string, error)
	RenderBars(bars []Bar, style Style) (string, error)
}

// ArtifactWriter is a Renderer that writes each series as a JSON document
// under Dir, returning the file path as the artifact reference. It stands in
// for an image-producing sink.
type ArtifactWriter struct {
	Dir string
}

// NewArtifactWriter creates the output directory if needed.
func NewArtifactWriter(dir string) (*ArtifactWriter, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}
	return &ArtifactWriter{Dir: dir}, nil
}

type artifact struct {
	Style Style `json:"style"`
	Data  any   `json:"data"`
}

func (w *ArtifactWriter) write(style Style, data any) (string, error) {
	path := filepath.Join(w.Dir, style.Name+".json")
	payload, err := json.MarshalIndent(artifact{Style: style, Data: data}, "", "  ")
	if err != nil {
		return "", err
	}
	if err := os.WriteFile(path, payload, 0644); err != nil {
		return "", err
	}
	return path, nil
}

func (w *ArtifactWriter) RenderCurve(points []Point, style Style) (string, error) {
	return w.write(style, points)
}

func (w *ArtifactWriter) RenderOutcomes(o Outcomes, style Style) (string, error) {
	return w.write(style, o)
}

func (w *ArtifactWriter) RenderHistogram(h Histogram, style Style) (string, error) {
	return w.write(style, h)
}

func (w *ArtifactWriter) RenderBars(bars []Bar, style Style) (string, error) {
	return w.write(style, bars)
}
