package repository

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"MoonPulse/internal/domain/models"
)

func testRecord(symbol, posted string) *models.ReportRecord {
	return &models.ReportRecord{
		Report: models.OracleReport{
			Symbol:    symbol,
			Archetype: models.ArchetypeSeer,
			Quote:     "\"q\"",
			Text:      "full text",
		},
		Posted:    posted,
		CreatedAt: time.Now().UTC(),
	}
}

func TestFileSinkRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "reports.jsonl")
	s := NewFileSink(path)
	ctx := context.Background()

	for _, posted := range []string{"one", "two", "three"} {
		if err := s.Append(ctx, testRecord("SOL", posted)); err != nil {
			t.Fatalf("append: %v", err)
		}
	}

	recs, err := s.LoadRecent(ctx, 2)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(recs) != 2 {
		t.Fatalf("got %d records", len(recs))
	}
	// Last n in insertion order.
	if recs[0].Posted != "two" || recs[1].Posted != "three" {
		t.Fatalf("got %q, %q", recs[0].Posted, recs[1].Posted)
	}
	if recs[1].Report.Text != "full text" {
		t.Fatalf("report text: %q", recs[1].Report.Text)
	}
}

func TestFileSinkMissingFile(t *testing.T) {
	s := NewFileSink(filepath.Join(t.TempDir(), "absent.jsonl"))
	recs, err := s.LoadRecent(context.Background(), 5)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(recs) != 0 {
		t.Fatalf("got %d records", len(recs))
	}
}

func TestFileSinkSkipsMalformedLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "reports.jsonl")
	s := NewFileSink(path)
	ctx := context.Background()

	if err := s.Append(ctx, testRecord("SOL", "good")); err != nil {
		t.Fatalf("append: %v", err)
	}
	f, err := os.OpenFile(path, os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := f.WriteString("{not json\n"); err != nil {
		t.Fatal(err)
	}
	f.Close()
	if err := s.Append(ctx, testRecord("SOL", "after")); err != nil {
		t.Fatalf("append: %v", err)
	}

	recs, err := s.LoadRecent(ctx, 10)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(recs) != 2 {
		t.Fatalf("got %d records", len(recs))
	}
	if recs[0].Posted != "good" || recs[1].Posted != "after" {
		t.Fatalf("got %q, %q", recs[0].Posted, recs[1].Posted)
	}
}
