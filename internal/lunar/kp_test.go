package lunar

import (
	"context"
	"errors"
	"testing"
	"time"

	"MoonPulse/internal/domain/models"
)

func TestClassifyKp(t *testing.T) {
	cases := []struct {
		index float64
		want  models.KpState
	}{
		{0, models.KpQuiet},
		{1.9, models.KpQuiet},
		{2.0, models.KpUnsettled},
		{3.9, models.KpUnsettled},
		{4.0, models.KpActive},
		{5.99, models.KpActive},
		{6.0, models.KpStormWatch},
		{9.0, models.KpStormWatch},
	}
	for _, c := range cases {
		if got := ClassifyKp(c.index); got != c.want {
			t.Fatalf("index %v: got %s, want %s", c.index, got, c.want)
		}
	}
}

type fakeKpSource struct {
	value float64
	at    time.Time
	err   error
}

func (f fakeKpSource) Latest(_ context.Context) (float64, time.Time, error) {
	return f.value, f.at, f.err
}

func TestKpResolverIndependentFeeds(t *testing.T) {
	observed := time.Date(2026, 8, 30, 9, 0, 0, 0, time.UTC)
	r := NewKpResolver(fakeKpSource{value: 1.2, at: observed}, fakeKpSource{err: errors.New("feed down")}, nil)
	pair := r.Resolve(context.Background())

	if pair.Realtime.State != models.KpQuiet || pair.Realtime.Source != models.SourcePrimary {
		t.Fatalf("realtime: %+v", pair.Realtime)
	}
	if !pair.Realtime.ObservedAt.Equal(observed) {
		t.Fatalf("realtime should carry the feed timestamp: %v", pair.Realtime.ObservedAt)
	}
	if pair.Daily.State != models.KpError || pair.Daily.Source != models.SourceError {
		t.Fatalf("daily should degrade alone: %+v", pair.Daily)
	}
}

func TestKpResolverNilSource(t *testing.T) {
	r := NewKpResolver(nil, fakeKpSource{value: 6.5}, nil)
	pair := r.Resolve(context.Background())

	if pair.Realtime.State != models.KpUnknown || pair.Realtime.Source != models.SourceFallback {
		t.Fatalf("realtime: %+v", pair.Realtime)
	}
	if pair.Daily.State != models.KpStormWatch {
		t.Fatalf("daily: %+v", pair.Daily)
	}
}
