package noaa

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestRealtimeLatest(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `[
			{"time_tag":"2026-08-30T10:00:00","estimated_kp":2.1},
			{"time_tag":"2026-08-30T10:01:00","estimated_kp":3.7}
		]`)
	}))
	defer srv.Close()

	s := NewRealtimeSource(srv.URL, "/json/planetary_k_index_1m.json", time.Second)
	v, observedAt, err := s.Latest(context.Background())
	if err != nil {
		t.Fatalf("latest: %v", err)
	}
	if v != 3.7 {
		t.Fatalf("got %v, want last entry 3.7", v)
	}
	want := time.Date(2026, 8, 30, 10, 1, 0, 0, time.UTC)
	if !observedAt.Equal(want) {
		t.Fatalf("observedAt %v, want feed time_tag %v", observedAt, want)
	}
}

func TestRealtimeEmptyFeed(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `[]`)
	}))
	defer srv.Close()

	s := NewRealtimeSource(srv.URL, "/feed", time.Second)
	if _, _, err := s.Latest(context.Background()); err == nil {
		t.Fatal("empty feed must error")
	}
}

func TestDailyAveragesTodayOnly(t *testing.T) {
	today := time.Now().UTC().Format("2006-01-02")
	yesterday := time.Now().UTC().AddDate(0, 0, -1).Format("2006-01-02")
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintf(w, `[
			["time_tag","Kp","a_running","station_count"],
			["%s 21:00:00","5.00","30","8"],
			["%s 00:00:00","2.00","10","8"],
			["%s 03:00:00","4.00","20","8"]
		]`, yesterday, today, today)
	}))
	defer srv.Close()

	s := NewDailySource(srv.URL, "/products/noaa-planetary-k-index.json", time.Second)
	v, observedAt, err := s.Latest(context.Background())
	if err != nil {
		t.Fatalf("latest: %v", err)
	}
	if v != 3.0 {
		t.Fatalf("got %v, want mean of today's rows 3.0", v)
	}
	if observedAt.IsZero() {
		t.Fatal("observedAt should come from the last contributing row")
	}
}

func TestDailyNoRowsForToday(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `[
			["time_tag","Kp","a_running","station_count"],
			["2020-01-01 00:00:00","2.00","10","8"]
		]`)
	}))
	defer srv.Close()

	s := NewDailySource(srv.URL, "/feed", time.Second)
	if _, _, err := s.Latest(context.Background()); err == nil {
		t.Fatal("stale feed must error")
	}
}
