package noaa

import (
	"context"
	"fmt"
	"strconv"
	"time"

	drepo "MoonPulse/internal/domain/repository"
	icache "MoonPulse/internal/service/cache"
	"MoonPulse/internal/service/rest"
	"MoonPulse/pkg/util"
)

const readingTTL = 5 * time.Minute

type reading struct {
	value      float64
	observedAt time.Time
}

// RealtimeSource reads the 1-minute planetary K-index feed and reports the
// latest estimated value.
type RealtimeSource struct {
	base  *rest.ServiceBase
	path  string
	cache *icache.TTLCache
}

func NewRealtimeSource(baseURL, path string, timeout time.Duration) drepo.KpSource {
	return &RealtimeSource{base: rest.NewServiceBase(baseURL, timeout), path: path, cache: icache.NewTTLCache()}
}

type kpMinuteEntry struct {
	TimeTag     string  `json:"time_tag"`
	EstimatedKp float64 `json:"estimated_kp"`
}

func (s *RealtimeSource) Latest(ctx context.Context) (float64, time.Time, error) {
	if v, hit := s.cache.Get("kp:realtime"); hit {
		if r, ok := v.(reading); ok {
			return r.value, r.observedAt, nil
		}
	}
	var entries []kpMinuteEntry
	if err := s.base.GetJSON(ctx, s.path, nil, &entries); err != nil {
		return 0, time.Time{}, fmt.Errorf("kp realtime: %w", err)
	}
	if len(entries) == 0 {
		return 0, time.Time{}, fmt.Errorf("kp realtime: empty feed")
	}
	last := entries[len(entries)-1]
	r := reading{
		value:      last.EstimatedKp,
		observedAt: util.ParseTimeDefault(last.TimeTag, time.Now().UTC()),
	}
	s.cache.Set("kp:realtime", r, readingTTL)
	return r.value, r.observedAt, nil
}

// DailySource reads the 3-hourly planetary K-index product (header row plus
// [time_tag, kp, a_running, station_count] rows) and averages the current
// day's values. The observation timestamp is the last contributing row's.
type DailySource struct {
	base  *rest.ServiceBase
	path  string
	cache *icache.TTLCache
	now   func() time.Time
}

func NewDailySource(baseURL, path string, timeout time.Duration) drepo.KpSource {
	return &DailySource{base: rest.NewServiceBase(baseURL, timeout), path: path, cache: icache.NewTTLCache(), now: time.Now}
}

func (s *DailySource) Latest(ctx context.Context) (float64, time.Time, error) {
	if v, hit := s.cache.Get("kp:daily"); hit {
		if r, ok := v.(reading); ok {
			return r.value, r.observedAt, nil
		}
	}
	var rows [][]string
	if err := s.base.GetJSON(ctx, s.path, nil, &rows); err != nil {
		return 0, time.Time{}, fmt.Errorf("kp daily: %w", err)
	}
	if len(rows) < 2 {
		return 0, time.Time{}, fmt.Errorf("kp daily: empty feed")
	}

	today := s.now().UTC().Format("2006-01-02")
	var sum float64
	var n int
	var lastTag string
	for _, row := range rows[1:] { // skip header row
		if len(row) < 2 || len(row[0]) < 10 || row[0][:10] != today {
			continue
		}
		kp, err := strconv.ParseFloat(row[1], 64)
		if err != nil {
			continue
		}
		sum += kp
		n++
		lastTag = row[0]
	}
	if n == 0 {
		return 0, time.Time{}, fmt.Errorf("kp daily: no rows for %s", today)
	}
	r := reading{
		value:      sum / float64(n),
		observedAt: util.ParseTimeDefault(lastTag, s.now().UTC()),
	}
	s.cache.Set("kp:daily", r, readingTTL)
	return r.value, r.observedAt, nil
}
