package lunar

import (
	"context"
	"time"

	"MoonPulse/internal/domain/models"
	drepo "MoonPulse/internal/domain/repository"
	xlogger "MoonPulse/pkg/logger"
)

// ClassifyKp maps a Kp index value onto the qualitative activity ladder.
func ClassifyKp(index float64) models.KpState {
	switch {
	case index < 2:
		return models.KpQuiet
	case index < 4:
		return models.KpUnsettled
	case index < 6:
		return models.KpActive
	default:
		return models.KpStormWatch
	}
}

// KpResolver normalizes the two geomagnetic feeds. Each feed degrades
// independently: one failing never affects the other.
type KpResolver struct {
	realtime drepo.KpSource
	daily    drepo.KpSource
	logger   *xlogger.Logger
	now      func() time.Time
}

func NewKpResolver(realtime, daily drepo.KpSource, logger *xlogger.Logger) *KpResolver {
	return &KpResolver{realtime: realtime, daily: daily, logger: logger, now: time.Now}
}

func (r *KpResolver) resolveOne(ctx context.Context, src drepo.KpSource, name string) models.GeomagneticReading {
	if src == nil {
		return models.GeomagneticReading{State: models.KpUnknown, ObservedAt: r.now(), Source: models.SourceFallback}
	}
	v, observedAt, err := src.Latest(ctx)
	if err != nil {
		if r.logger != nil {
			r.logger.Warn("kp reading failed", xlogger.String("feed", name), xlogger.Error(err))
		}
		return models.GeomagneticReading{State: models.KpError, ObservedAt: r.now(), Source: models.SourceError}
	}
	if observedAt.IsZero() {
		observedAt = r.now()
	}
	return models.GeomagneticReading{
		Index:      v,
		State:      ClassifyKp(v),
		ObservedAt: observedAt,
		Source:     models.SourcePrimary,
	}
}

// Resolve fetches and classifies both feeds.
func (r *KpResolver) Resolve(ctx context.Context) models.GeomagneticPair {
	return models.GeomagneticPair{
		Realtime: r.resolveOne(ctx, r.realtime, "realtime"),
		Daily:    r.resolveOne(ctx, r.daily, "daily"),
	}
}
