package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"MoonPulse/internal/domain/models"
	"MoonPulse/internal/lunar"
	"MoonPulse/internal/oracle"
)

type fakeMarket struct {
	snap *models.TokenSnapshot
	err  error
}

func (f fakeMarket) Snapshot(_ context.Context, _ string) (*models.TokenSnapshot, error) {
	return f.snap, f.err
}

type fakeNarrator struct{}

func (fakeNarrator) Narrate(_ context.Context, symbol string, rsi int, sig models.LunarSignal, a models.Archetype) (string, string) {
	return oracle.QuoteFor(a), oracle.FallbackNarrative(symbol, rsi, sig, a)
}

func newTestBuilder(market fakeMarket) *ReportBuilder {
	rng := oracle.NewRand(1)
	return NewReportBuilder(
		market,
		lunar.NewResolver(nil, nil),
		lunar.NewKpResolver(nil, nil, nil),
		fakeNarrator{},
		oracle.NewClassifier(rng),
		oracle.NewBuilder(rng),
		nil,
		noopMetrics{},
	)
}

func TestBuildPipeline(t *testing.T) {
	snap := &models.TokenSnapshot{
		Symbol:    "SOL",
		Price:     150,
		VolumeUSD: 2_000_000_000,
		MarketCap: 70_000_000_000,
		RSI:       80,
		HasRSI:    true,
	}
	b := newTestBuilder(fakeMarket{snap: snap})

	report, err := b.Build(context.Background(), "SOL")
	require.NoError(t, err)
	require.Equal(t, models.ArchetypeProphet, report.Archetype)
	require.Equal(t, "150.00", report.Price)
	// Unconfigured astronomy collaborator degrades to the fallback phase.
	require.Equal(t, models.SourceFallback, report.Lunar.Source)
	require.Equal(t, "Waning Crescent", report.Lunar.Phase)
	require.NotEmpty(t, report.Quote)
	require.NotEmpty(t, report.Text)
}

func TestBuildMarketFailureIsFatal(t *testing.T) {
	b := newTestBuilder(fakeMarket{err: errors.New("api down")})
	_, err := b.Build(context.Background(), "SOL")
	require.Error(t, err)
}

func TestGeomagneticDegradesWithoutFeeds(t *testing.T) {
	b := newTestBuilder(fakeMarket{})
	pair := b.Geomagnetic(context.Background())
	require.Equal(t, models.KpUnknown, pair.Realtime.State)
	require.Equal(t, models.KpUnknown, pair.Daily.State)
}
