package usecase

import (
	"context"
	"fmt"
	"time"

	"MoonPulse/internal/domain/models"
	drepo "MoonPulse/internal/domain/repository"
	"MoonPulse/internal/lunar"
	"MoonPulse/internal/oracle"
	"MoonPulse/internal/service/stream"
)

// staleAfter is how old a REST snapshot price may be before the live stream
// tick replaces it.
const staleAfter = 2 * time.Minute

// ReportBuilder runs the full pipeline: collect readings, classify, format.
// Only a failed market snapshot aborts a build; every other collaborator
// degrades to its documented fallback.
type ReportBuilder struct {
	market     drepo.MarketSource
	lunar      *lunar.Resolver
	kp         *lunar.KpResolver
	narrator   drepo.Narrator
	classifier *oracle.Classifier
	builder    *oracle.Builder
	stream     *stream.Client
	metrics    drepo.Metrics
}

// NewReportBuilder creates a ReportBuilder. st may be nil when no live stream
// is configured.
func NewReportBuilder(
	market drepo.MarketSource,
	lr *lunar.Resolver,
	kp *lunar.KpResolver,
	narrator drepo.Narrator,
	classifier *oracle.Classifier,
	builder *oracle.Builder,
	st *stream.Client,
	metrics drepo.Metrics,
) *ReportBuilder {
	return &ReportBuilder{
		market:     market,
		lunar:      lr,
		kp:         kp,
		narrator:   narrator,
		classifier: classifier,
		builder:    builder,
		stream:     st,
		metrics:    metrics,
	}
}

// Lunar returns today's normalized lunar signal.
func (b *ReportBuilder) Lunar(ctx context.Context) models.LunarSignal {
	return b.lunar.Resolve(ctx)
}

// Geomagnetic returns both normalized Kp readings.
func (b *ReportBuilder) Geomagnetic(ctx context.Context) models.GeomagneticPair {
	return b.kp.Resolve(ctx)
}

// Build produces one oracle report for symbol.
func (b *ReportBuilder) Build(ctx context.Context, symbol string) (*models.OracleReport, error) {
	start := time.Now()

	snap, err := b.market.Snapshot(ctx, symbol)
	if err != nil {
		b.metrics.RecordError("market_snapshot")
		return nil, fmt.Errorf("market snapshot %s: %w", symbol, err)
	}
	b.freshen(snap)

	sig := b.lunar.Resolve(ctx)
	archetype := b.classifier.ClassifySnapshot(snap)
	b.metrics.RecordArchetype(string(archetype))

	rsi := oracle.DefaultRSI
	if snap.HasRSI {
		rsi = snap.RSI
	}
	quote, narrative := b.narrator.Narrate(ctx, snap.Symbol, rsi, sig, archetype)

	report := b.builder.Build(snap, sig, archetype, quote, narrative)
	b.metrics.RecordLatency("report_build", time.Since(start).Seconds())
	return report, nil
}

// freshen replaces the snapshot price with the latest stream tick when the
// REST reading is older than the tick.
func (b *ReportBuilder) freshen(snap *models.TokenSnapshot) {
	if b.stream == nil {
		return
	}
	tick, ok := b.stream.LastTick(snap.Symbol)
	if !ok {
		return
	}
	if time.Since(snap.FetchedAt) > staleAfter && tick.Price > 0 {
		snap.Price = tick.Price
	}
}
