package usecase

import (
	"context"
	"fmt"
	"time"

	"MoonPulse/internal/domain/models"
	drepo "MoonPulse/internal/domain/repository"
)

// ReportPublisher routes built reports to the configured backend. Truncation
// to the posting length happens here, at the call site; the file log always
// keeps the full untruncated report.
type ReportPublisher struct {
	fileLog drepo.ReportSink
	backend drepo.ReportSink
	name    string
	metrics drepo.Metrics
	maxPost int
}

// NewReportPublisher creates a publisher. backend may equal fileLog when the
// configured backend is the file log itself.
func NewReportPublisher(fileLog, backend drepo.ReportSink, backendName string, metrics drepo.Metrics, maxPost int) *ReportPublisher {
	if maxPost <= 0 {
		maxPost = 279
	}
	return &ReportPublisher{
		fileLog: fileLog,
		backend: backend,
		name:    backendName,
		metrics: metrics,
		maxPost: maxPost,
	}
}

// TruncateForPost cuts text to at most max runes.
func TruncateForPost(text string, max int) (string, bool) {
	runes := []rune(text)
	if len(runes) <= max {
		return text, false
	}
	return string(runes[:max]), true
}

// Publish records the report and hands the (possibly truncated) text to the
// backend. maxPost <= 0 uses the configured default.
func (p *ReportPublisher) Publish(ctx context.Context, report *models.OracleReport, maxPost int) (*models.ReportRecord, error) {
	if report == nil {
		return nil, fmt.Errorf("report is nil")
	}
	if maxPost <= 0 {
		maxPost = p.maxPost
	}

	posted, truncated := TruncateForPost(report.Text, maxPost)
	rec := &models.ReportRecord{
		Report:    *report,
		Posted:    posted,
		Truncated: truncated,
		CreatedAt: time.Now(),
	}

	start := time.Now()
	if err := p.fileLog.Append(ctx, rec); err != nil {
		p.metrics.RecordError("report_log")
		return nil, fmt.Errorf("append report log: %w", err)
	}
	if p.backend != nil && p.backend != p.fileLog {
		if err := p.backend.Append(ctx, rec); err != nil {
			p.metrics.RecordError("report_" + p.name)
			return nil, fmt.Errorf("append %s: %w", p.name, err)
		}
	}
	p.metrics.RecordLatency("report_publish", time.Since(start).Seconds())
	p.metrics.RecordReportBuilt(p.name, report.Symbol)
	return rec, nil
}

// Recent loads the last n records, preferring the backend archive where it
// supports reads and falling back to the file log.
func (p *ReportPublisher) Recent(ctx context.Context, n int) ([]*models.ReportRecord, error) {
	if p.backend != nil && p.backend != p.fileLog {
		recs, err := p.backend.LoadRecent(ctx, n)
		if err == nil && len(recs) > 0 {
			return recs, nil
		}
	}
	return p.fileLog.LoadRecent(ctx, n)
}

// Close releases sink resources.
func (p *ReportPublisher) Close() {
	if p.backend != nil && p.backend != p.fileLog {
		_ = p.backend.Close()
	}
	if p.fileLog != nil {
		_ = p.fileLog.Close()
	}
}
