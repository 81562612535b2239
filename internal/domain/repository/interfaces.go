package repository

import (
	"context"
	"time"

	"MoonPulse/internal/domain/models"
)

// MarketSource provides token market data. Implementations must degrade per
// field (missing RSI, zero market cap) instead of failing the snapshot.
type MarketSource interface {
	Snapshot(ctx context.Context, symbol string) (*models.TokenSnapshot, error)
}

// SkySource provides the raw astronomy reading for today. ok=false means the
// collaborator is not configured; the resolver maps that to its fallback.
type SkySource interface {
	MoonToday(ctx context.Context) (phase string, illumination string, ok bool, err error)
}

// KpSource provides one geomagnetic index feed. The realtime and daily feeds
// are separate instances and fail independently. observedAt is the feed's own
// reading timestamp, not the fetch time.
type KpSource interface {
	Latest(ctx context.Context) (value float64, observedAt time.Time, err error)
}

// Narrator produces the short free-text narrative for a report. Implementations
// must never fail: any collaborator error falls back to the deterministic
// template internally.
type Narrator interface {
	Narrate(ctx context.Context, symbol string, rsi int, lunar models.LunarSignal, archetype models.Archetype) (quote, narrative string)
}

// PriceStream is a live exchange trade stream used to freshen snapshot prices.
type PriceStream interface {
	Connect(ctx context.Context) error
	Subscribe(ctx context.Context) error
	Read(ctx context.Context) (<-chan *models.PriceTick, <-chan error)
	Reconnect(ctx context.Context) error
	Close() error
	IsConnected() bool
}

// ReportSink is the append-only store for built reports. The core never touches
// the underlying medium directly.
type ReportSink interface {
	Append(ctx context.Context, rec *models.ReportRecord) error
	LoadRecent(ctx context.Context, n int) ([]*models.ReportRecord, error)
	Health(ctx context.Context) error
	Close() error
}

// Metrics records operational counters and gauges.
type Metrics interface {
	RecordReportBuilt(backend, symbol string)
	RecordArchetype(archetype string)
	RecordError(kind string)
	RecordLastPrice(symbol string, price float64)
	RecordLatency(op string, seconds float64)
}
