package lunar

import (
	"context"
	"time"

	"MoonPulse/internal/domain/models"
	drepo "MoonPulse/internal/domain/repository"
	xlogger "MoonPulse/pkg/logger"
)

// FallbackPhase is the phase reported when no astronomy reading is available.
const FallbackPhase = PhaseWaningCrescent

// Resolver normalizes astronomy readings into LunarSignals. It never returns
// an error: every failure path degrades to the documented fallback signal.
type Resolver struct {
	sky    drepo.SkySource
	logger *xlogger.Logger
	now    func() time.Time
}

// NewResolver creates a Resolver. sky may be nil when the astronomy
// collaborator is not configured; that is the fallback path, not an error.
func NewResolver(sky drepo.SkySource, logger *xlogger.Logger) *Resolver {
	return &Resolver{sky: sky, logger: logger, now: time.Now}
}

func (r *Resolver) signalFor(phase, illumination string, src models.Source) models.LunarSignal {
	return models.LunarSignal{
		Phase:        phase,
		Illumination: illumination,
		Message:      PhaseMessage(phase),
		Pattern:      PatternTierForAngle(PhaseAngle(phase)),
		ObservedAt:   r.now(),
		Source:       src,
	}
}

// Resolve returns today's lunar signal. Three outcomes: a live reading tagged
// primary, the fixed fallback when no collaborator is configured, or the same
// fallback content tagged error when the collaborator call fails.
func (r *Resolver) Resolve(ctx context.Context) models.LunarSignal {
	if r.sky == nil {
		return r.signalFor(FallbackPhase, "", models.SourceFallback)
	}

	phase, illum, ok, err := r.sky.MoonToday(ctx)
	if err != nil {
		if r.logger != nil {
			r.logger.Warn("astronomy reading failed", xlogger.Error(err))
		}
		return r.signalFor(FallbackPhase, "", models.SourceError)
	}
	if !ok {
		return r.signalFor(FallbackPhase, "", models.SourceFallback)
	}
	if phase == "" {
		phase = FallbackPhase
	}
	return r.signalFor(phase, illum, models.SourcePrimary)
}
