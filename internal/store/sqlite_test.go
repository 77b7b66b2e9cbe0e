package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"futures-journal/internal/models"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	s, err := NewSQLiteStore(filepath.Join(t.TempDir(), "journal.db"))
	if err != nil {
		t.Fatalf("NewSQLiteStore: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func sampleTrade(account string, exit time.Time, profit string) models.TradeRecord {
	return models.TradeRecord{
		TradeNumber:  1,
		Instrument:   "MES 03-24",
		Account:      account,
		Strategy:     "Breakout",
		MarketPos:    "Long",
		Qty:          2,
		EntryPrice:   decimal.RequireFromString("5301.25"),
		ExitPrice:    decimal.RequireFromString("5310.5"),
		EntryTime:    exit.Add(-15 * time.Minute),
		ExitTime:     exit,
		EntryName:    "Entry",
		ExitName:     "Exit",
		Profit:       decimal.RequireFromString(profit),
		CumNetProfit: decimal.RequireFromString(profit),
		Commission:   decimal.RequireFromString("4.5"),
		MAE:          decimal.RequireFromString("12.5"),
		MFE:          decimal.RequireFromString("50"),
	}
}

func TestInsertAndGetRoundTrip(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	exit := time.Date(2024, 3, 1, 10, 30, 0, 0, time.UTC)
	want := sampleTrade("Sim101", exit, "92.5")
	if err := s.InsertTrade(ctx, want); err != nil {
		t.Fatalf("InsertTrade: %v", err)
	}

	got, err := s.GetTrades(ctx, TradeFilter{})
	if err != nil {
		t.Fatalf("GetTrades: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("expected 1 trade, got %d", len(got))
	}

	tr := got[0]
	if tr.Instrument != want.Instrument || tr.Account != want.Account || tr.Strategy != want.Strategy {
		t.Errorf("string fields mangled: %+v", tr)
	}
	if tr.Qty != 2 || tr.TradeNumber != 1 {
		t.Errorf("int fields mangled: %+v", tr)
	}
	if !tr.Profit.Equal(want.Profit) {
		t.Errorf("profit = %s, want %s", tr.Profit, want.Profit)
	}
	if !tr.EntryPrice.Equal(want.EntryPrice) || !tr.MAE.Equal(want.MAE) {
		t.Errorf("monetary fields drifted: %+v", tr)
	}
	if !tr.ExitTime.Equal(exit) {
		t.Errorf("exit time = %v, want %v", tr.ExitTime, exit)
	}
}

func TestGetTradesOrderedByExitTimeDescending(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	base := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	set := models.TradeSet{
		sampleTrade("Sim101", base.Add(1*time.Hour), "10"),
		sampleTrade("Sim101", base.Add(3*time.Hour), "30"),
		sampleTrade("Sim101", base.Add(2*time.Hour), "20"),
	}
	if err := s.InsertTrades(ctx, set); err != nil {
		t.Fatalf("InsertTrades: %v", err)
	}

	got, err := s.GetTrades(ctx, TradeFilter{})
	if err != nil {
		t.Fatalf("GetTrades: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("expected 3 trades, got %d", len(got))
	}
	for i := 1; i < len(got); i++ {
		if got[i].ExitTime.After(got[i-1].ExitTime) {
			t.Fatalf("not descending: %v then %v", got[i-1].ExitTime, got[i].ExitTime)
		}
	}
}

func TestGetTradesAccountFilter(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	exit := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	set := models.TradeSet{
		sampleTrade("Sim101", exit, "10"),
		sampleTrade("Live1", exit.Add(time.Hour), "20"),
		sampleTrade("Sim101", exit.Add(2*time.Hour), "-5"),
	}
	if err := s.InsertTrades(ctx, set); err != nil {
		t.Fatalf("InsertTrades: %v", err)
	}

	got, err := s.GetTrades(ctx, TradeFilter{Account: "Sim101"})
	if err != nil {
		t.Fatalf("GetTrades: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 trades for Sim101, got %d", len(got))
	}
	for _, tr := range got {
		if tr.Account != "Sim101" {
			t.Errorf("leaked account %q", tr.Account)
		}
	}
}

func TestGetTradesDateRangeFilter(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	day := func(d int) time.Time {
		return time.Date(2024, 3, d, 12, 0, 0, 0, time.UTC)
	}
	set := models.TradeSet{
		sampleTrade("Sim101", day(1), "10"),
		sampleTrade("Sim101", day(5), "20"),
		sampleTrade("Sim101", day(9), "30"),
	}
	if err := s.InsertTrades(ctx, set); err != nil {
		t.Fatalf("InsertTrades: %v", err)
	}

	got, err := s.GetTrades(ctx, TradeFilter{Start: day(3), End: day(7)})
	if err != nil {
		t.Fatalf("GetTrades: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("expected 1 trade in range, got %d", len(got))
	}
	if !got[0].Profit.Equal(decimal.NewFromInt(20)) {
		t.Errorf("wrong trade selected: %+v", got[0])
	}
}

func TestDuplicateInsertsAreKept(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	exit := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	set := models.TradeSet{sampleTrade("Sim101", exit, "10")}
	if err := s.InsertTrades(ctx, set); err != nil {
		t.Fatalf("first insert: %v", err)
	}
	if err := s.InsertTrades(ctx, set); err != nil {
		t.Fatalf("second insert: %v", err)
	}

	got, err := s.GetTrades(ctx, TradeFilter{})
	if err != nil {
		t.Fatalf("GetTrades: %v", err)
	}
	if len(got) != 2 {
		t.Errorf("expected duplicates to be distinct records, got %d", len(got))
	}
}

func TestInsertTradeWithoutExitTime(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	open := sampleTrade("Sim101", time.Time{}, "0")
	open.ExitTime = time.Time{}
	open.EntryTime = time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	if err := s.InsertTrade(ctx, open); err != nil {
		t.Fatalf("InsertTrade: %v", err)
	}

	got, err := s.GetTrades(ctx, TradeFilter{})
	if err != nil {
		t.Fatalf("GetTrades: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("expected 1 trade, got %d", len(got))
	}
	if got[0].HasExitTime() {
		t.Errorf("NULL exit_time must scan back as zero time, got %v", got[0].ExitTime)
	}
}

func TestListAccounts(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	exit := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	set := models.TradeSet{
		sampleTrade("Sim102", exit, "10"),
		sampleTrade("Sim101", exit, "20"),
		sampleTrade("Sim101", exit, "30"),
	}
	if err := s.InsertTrades(ctx, set); err != nil {
		t.Fatalf("InsertTrades: %v", err)
	}

	accounts, err := s.ListAccounts(ctx)
	if err != nil {
		t.Fatalf("ListAccounts: %v", err)
	}
	want := []string{"Sim101", "Sim102"}
	if len(accounts) != len(want) {
		t.Fatalf("accounts = %v, want %v", accounts, want)
	}
	for i := range want {
		if accounts[i] != want[i] {
			t.Errorf("accounts = %v, want %v", accounts, want)
		}
	}
}

func TestInsertTradesEmptySet(t *testing.T) {
	s := newTestStore(t)
	if err := s.InsertTrades(context.Background(), nil); err != nil {
		t.Fatalf("empty batch must be a no-op, got %v", err)
	}
}
