package lunar

import (
	"context"
	"errors"
	"testing"

	"MoonPulse/internal/domain/models"
)

type fakeSky struct {
	phase string
	illum string
	ok    bool
	err   error
}

func (f fakeSky) MoonToday(_ context.Context) (string, string, bool, error) {
	return f.phase, f.illum, f.ok, f.err
}

func TestResolvePrimary(t *testing.T) {
	r := NewResolver(fakeSky{phase: PhaseFullMoon, illum: "98", ok: true}, nil)
	sig := r.Resolve(context.Background())

	if sig.Source != models.SourcePrimary {
		t.Fatalf("source: %s", sig.Source)
	}
	if sig.Phase != PhaseFullMoon || sig.Illumination != "98" {
		t.Fatalf("signal: %+v", sig)
	}
	if sig.Message != PhaseMessage(PhaseFullMoon) {
		t.Fatalf("message: %q", sig.Message)
	}
	if sig.Pattern.Tier != "Overglow" {
		t.Fatalf("full moon tier: %s", sig.Pattern.Tier)
	}
}

func TestResolveFallbackWhenUnconfigured(t *testing.T) {
	for _, r := range []*Resolver{
		NewResolver(nil, nil),
		NewResolver(fakeSky{ok: false}, nil),
	} {
		sig := r.Resolve(context.Background())
		if sig.Source != models.SourceFallback {
			t.Fatalf("source: %s", sig.Source)
		}
		if sig.Phase != PhaseWaningCrescent {
			t.Fatalf("phase: %s", sig.Phase)
		}
	}
}

func TestResolveErrorKeepsFallbackContent(t *testing.T) {
	r := NewResolver(fakeSky{err: errors.New("timeout")}, nil)
	sig := r.Resolve(context.Background())

	if sig.Source != models.SourceError {
		t.Fatalf("source: %s", sig.Source)
	}
	if sig.Phase != PhaseWaningCrescent {
		t.Fatalf("phase: %s", sig.Phase)
	}
	if sig.Pattern.Tier != "Veil" {
		t.Fatalf("waning crescent tier: %s", sig.Pattern.Tier)
	}
}

func TestResolveEmptyPhaseDefaults(t *testing.T) {
	r := NewResolver(fakeSky{phase: "", ok: true}, nil)
	sig := r.Resolve(context.Background())

	if sig.Source != models.SourcePrimary {
		t.Fatalf("source: %s", sig.Source)
	}
	if sig.Phase != PhaseWaningCrescent {
		t.Fatalf("phase: %s", sig.Phase)
	}
}
