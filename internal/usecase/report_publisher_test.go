package usecase

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"MoonPulse/internal/domain/models"
)

type memSink struct {
	recs      []*models.ReportRecord
	appendErr error
	loadErr   error
}

func (s *memSink) Append(_ context.Context, rec *models.ReportRecord) error {
	if s.appendErr != nil {
		return s.appendErr
	}
	s.recs = append(s.recs, rec)
	return nil
}

func (s *memSink) LoadRecent(_ context.Context, n int) ([]*models.ReportRecord, error) {
	if s.loadErr != nil {
		return nil, s.loadErr
	}
	if len(s.recs) > n {
		return s.recs[len(s.recs)-n:], nil
	}
	return s.recs, nil
}

func (s *memSink) Health(_ context.Context) error { return nil }
func (s *memSink) Close() error                   { return nil }

type noopMetrics struct{}

func (noopMetrics) RecordReportBuilt(string, string) {}
func (noopMetrics) RecordArchetype(string)           {}
func (noopMetrics) RecordError(string)               {}
func (noopMetrics) RecordLastPrice(string, float64)  {}
func (noopMetrics) RecordLatency(string, float64)    {}

func TestTruncateForPost(t *testing.T) {
	text, truncated := TruncateForPost("short", 279)
	require.False(t, truncated)
	require.Equal(t, "short", text)

	long := strings.Repeat("x", 300)
	text, truncated = TruncateForPost(long, 279)
	require.True(t, truncated)
	require.Len(t, text, 279)

	// Rune-based, not byte-based.
	text, truncated = TruncateForPost("ΔΩΔΩΔ", 3)
	require.True(t, truncated)
	require.Equal(t, "ΔΩΔ", text)
}

func testReport(textLen int) *models.OracleReport {
	return &models.OracleReport{
		Symbol:    "SOL",
		Archetype: models.ArchetypeSeer,
		Text:      strings.Repeat("a", textLen),
	}
}

func TestPublishKeepsFullReportInFileLog(t *testing.T) {
	fileLog := &memSink{}
	backend := &memSink{}
	p := NewReportPublisher(fileLog, backend, "kafka", noopMetrics{}, 279)

	rec, err := p.Publish(context.Background(), testReport(400), 0)
	require.NoError(t, err)
	require.True(t, rec.Truncated)
	require.Len(t, rec.Posted, 279)
	require.Len(t, rec.Report.Text, 400)

	require.Len(t, fileLog.recs, 1)
	require.Len(t, backend.recs, 1)
	require.Len(t, fileLog.recs[0].Report.Text, 400)
}

func TestPublishFileBackendAppendsOnce(t *testing.T) {
	fileLog := &memSink{}
	p := NewReportPublisher(fileLog, fileLog, "file", noopMetrics{}, 279)

	_, err := p.Publish(context.Background(), testReport(100), 0)
	require.NoError(t, err)
	require.Len(t, fileLog.recs, 1)
}

func TestPublishBackendError(t *testing.T) {
	fileLog := &memSink{}
	backend := &memSink{appendErr: errors.New("broker down")}
	p := NewReportPublisher(fileLog, backend, "kafka", noopMetrics{}, 279)

	_, err := p.Publish(context.Background(), testReport(100), 0)
	require.Error(t, err)
	// The file log already holds the record; only the backend failed.
	require.Len(t, fileLog.recs, 1)
}

func TestPublishNilReport(t *testing.T) {
	p := NewReportPublisher(&memSink{}, &memSink{}, "file", noopMetrics{}, 279)
	_, err := p.Publish(context.Background(), nil, 0)
	require.Error(t, err)
}

func TestRecentFallsBackToFileLog(t *testing.T) {
	fileLog := &memSink{recs: []*models.ReportRecord{{Posted: "from-file"}}}
	backend := &memSink{loadErr: errors.New("no reads")}
	p := NewReportPublisher(fileLog, backend, "kafka", noopMetrics{}, 279)

	recs, err := p.Recent(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, recs, 1)
	require.Equal(t, "from-file", recs[0].Posted)
}

func TestRecentPrefersBackendArchive(t *testing.T) {
	fileLog := &memSink{recs: []*models.ReportRecord{{Posted: "from-file"}}}
	backend := &memSink{recs: []*models.ReportRecord{{Posted: "from-archive"}}}
	p := NewReportPublisher(fileLog, backend, "clickhouse", noopMetrics{}, 279)

	recs, err := p.Recent(context.Background(), 10)
	require.NoError(t, err)
	require.Equal(t, "from-archive", recs[0].Posted)
}
