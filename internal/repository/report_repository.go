package repository

import (
	"bufio"
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"sync"
	"time"

	"MoonPulse/internal/domain/models"
	"MoonPulse/internal/domain/repository"
	pkgkafka "MoonPulse/pkg/kafka"
)

// FileSink is the append-only JSON-lines report log. This is the primary
// sink and always receives the untruncated report.
type FileSink struct {
	mu   sync.Mutex
	path string
}

// NewFileSink creates a file-backed report sink.
func NewFileSink(path string) repository.ReportSink {
	return &FileSink{path: path}
}

func (s *FileSink) Append(ctx context.Context, rec *models.ReportRecord) error {
	b, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("marshal record: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	f, err := os.OpenFile(s.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open report log: %w", err)
	}
	defer f.Close()
	if _, err := f.Write(append(b, '\n')); err != nil {
		return fmt.Errorf("append report log: %w", err)
	}
	return nil
}

func (s *FileSink) LoadRecent(ctx context.Context, n int) ([]*models.ReportRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	f, err := os.Open(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("open report log: %w", err)
	}
	defer f.Close()

	var recs []*models.ReportRecord
	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for sc.Scan() {
		var rec models.ReportRecord
		if err := json.Unmarshal(sc.Bytes(), &rec); err != nil {
			continue // skip malformed lines
		}
		recs = append(recs, &rec)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("scan report log: %w", err)
	}
	if len(recs) > n {
		recs = recs[len(recs)-n:]
	}
	return recs, nil
}

func (s *FileSink) Health(ctx context.Context) error { return nil }
func (s *FileSink) Close() error                     { return nil }

// KafkaSink publishes records to a reports topic. LoadRecent is not served
// from Kafka; callers read history from the file log or ClickHouse archive.
type KafkaSink struct {
	producer *pkgkafka.Producer
	topic    string
}

// NewKafkaSink creates a Kafka-backed report sink.
func NewKafkaSink(producer *pkgkafka.Producer, topic string) repository.ReportSink {
	return &KafkaSink{producer: producer, topic: topic}
}

func (s *KafkaSink) Append(ctx context.Context, rec *models.ReportRecord) error {
	return s.producer.Publish(ctx, s.topic, []byte(rec.Report.Symbol), rec)
}

func (s *KafkaSink) LoadRecent(ctx context.Context, n int) ([]*models.ReportRecord, error) {
	return nil, nil
}

func (s *KafkaSink) Health(ctx context.Context) error { return nil }

func (s *KafkaSink) Close() error {
	if s.producer != nil {
		return s.producer.Close()
	}
	return nil
}

// ClickHouseSink archives records in an oracle_reports table.
type ClickHouseSink struct {
	db    *sql.DB
	table string
}

// NewClickHouseSink creates ClickHouse-backed report storage.
func NewClickHouseSink(db *sql.DB, table string) repository.ReportSink {
	return &ClickHouseSink{db: db, table: table}
}

func (s *ClickHouseSink) Append(ctx context.Context, rec *models.ReportRecord) error {
	full, err := json.Marshal(rec.Report)
	if err != nil {
		return fmt.Errorf("marshal report: %w", err)
	}
	q := fmt.Sprintf("INSERT INTO %s (ts, symbol, archetype, quote, narrative, posted, truncated, report) VALUES (?, ?, ?, ?, ?, ?, ?, ?)", s.table)
	_, err = s.db.ExecContext(ctx, q,
		rec.CreatedAt,
		rec.Report.Symbol,
		string(rec.Report.Archetype),
		rec.Report.Quote,
		rec.Report.Narrative,
		rec.Posted,
		boolToUInt8(rec.Truncated),
		string(full),
	)
	return err
}

func (s *ClickHouseSink) LoadRecent(ctx context.Context, n int) ([]*models.ReportRecord, error) {
	q := fmt.Sprintf("SELECT ts, posted, truncated, report FROM %s ORDER BY ts DESC LIMIT ?", s.table)
	rows, err := s.db.QueryContext(ctx, q, n)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var recs []*models.ReportRecord
	for rows.Next() {
		var (
			ts        time.Time
			posted    string
			truncated uint8
			full      string
		)
		if err := rows.Scan(&ts, &posted, &truncated, &full); err != nil {
			return nil, err
		}
		rec := &models.ReportRecord{Posted: posted, Truncated: truncated != 0, CreatedAt: ts}
		if err := json.Unmarshal([]byte(full), &rec.Report); err != nil {
			continue
		}
		recs = append(recs, rec)
	}
	return recs, rows.Err()
}

func (s *ClickHouseSink) Health(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *ClickHouseSink) Close() error {
	return nil // pool managed by pkg/clickhouse
}

func boolToUInt8(b bool) uint8 {
	if b {
		return 1
	}
	return 0
}
