package oracle

import (
	"testing"

	"MoonPulse/internal/domain/models"
)

type fixedRand struct {
	f float64
	n int
}

func (r fixedRand) Float64() float64 { return r.f }
func (r fixedRand) Intn(int) int     { return r.n }

func TestClassifyLadder(t *testing.T) {
	c := NewClassifier(fixedRand{})
	cases := []struct {
		symbol string
		rsi    float64
		volume float64
		want   models.Archetype
	}{
		{"BTC", 20, 0, models.ArchetypeShadow},
		{"DOGE", 30, 15_000_000, models.ArchetypeTrickster},
		{"DOGE", 30, 5_000_000, models.ArchetypeObserver},
		{"BTC", 45, 0, models.ArchetypeEcho},
		{"BTC", 55, 0, models.ArchetypeSeer},
		{"BTC", 70, 0, models.ArchetypeGuardian},
		{"SOL", 80, 0, models.ArchetypeProphet},
		{"WSOL", 78.6, 0, models.ArchetypeProphet},
		{"XYZ", 80, 0, models.ArchetypeSeer},
		{"SOL", 45, 0, models.ArchetypeEcho},
		{"SOL", 78.5, 0, models.ArchetypeGuardian},
	}
	for _, tc := range cases {
		if got := c.Classify(tc.symbol, tc.rsi, tc.volume); got != tc.want {
			t.Fatalf("classify(%s, %v, %v): got %s, want %s", tc.symbol, tc.rsi, tc.volume, got, tc.want)
		}
	}
}

func TestClassifyBandBoundaries(t *testing.T) {
	c := NewClassifier(fixedRand{})
	cases := []struct {
		rsi  float64
		want models.Archetype
	}{
		{23.5, models.ArchetypeShadow},
		{23.6, models.ArchetypeObserver},
		{38.1, models.ArchetypeObserver},
		{38.2, models.ArchetypeEcho},
		{49.9, models.ArchetypeEcho},
		{50, models.ArchetypeSeer},
		{61.7, models.ArchetypeSeer},
		{61.8, models.ArchetypeGuardian},
		{78.5, models.ArchetypeGuardian},
		{78.6, models.ArchetypeSeer},
	}
	for _, tc := range cases {
		if got := c.Classify("BTC", tc.rsi, 0); got != tc.want {
			t.Fatalf("rsi %v: got %s, want %s", tc.rsi, got, tc.want)
		}
	}
}

// The cultist override applies at every RSI band, not just the top one.
func TestClassifyBonkOverrideAnyBand(t *testing.T) {
	cultist := NewClassifier(fixedRand{f: 0.1})
	trickster := NewClassifier(fixedRand{f: 0.9})

	for _, rsi := range []float64{10, 30, 45, 55, 70, 90} {
		if got := cultist.Classify("BONKCOIN", rsi, 0); got != models.ArchetypeCultist {
			t.Fatalf("rsi %v draw 0.1: got %s", rsi, got)
		}
		if got := trickster.Classify("BONKCOIN", rsi, 0); got != models.ArchetypeTrickster {
			t.Fatalf("rsi %v draw 0.9: got %s", rsi, got)
		}
	}
}

func TestClassifyBonkDistribution(t *testing.T) {
	c := NewClassifier(NewRand(1))
	cultists := 0
	for i := 0; i < 1000; i++ {
		switch c.Classify("BONKCOIN", 45, 0) {
		case models.ArchetypeCultist:
			cultists++
		case models.ArchetypeTrickster:
		default:
			t.Fatal("BONK must resolve to cultist or trickster")
		}
	}
	if cultists < 650 || cultists > 750 {
		t.Fatalf("cultist rate out of tolerance: %d/1000", cultists)
	}
}

func TestClassifySnapshotDefaultsRSI(t *testing.T) {
	c := NewClassifier(fixedRand{})
	snap := &models.TokenSnapshot{Symbol: "BTC", VolumeUSD: 1}
	// Absent RSI defaults to 50, which lands in the seer band.
	if got := c.ClassifySnapshot(snap); got != models.ArchetypeSeer {
		t.Fatalf("got %s", got)
	}
}

func TestQuoteFor(t *testing.T) {
	all := []models.Archetype{
		models.ArchetypeShadow, models.ArchetypeTrickster, models.ArchetypeObserver,
		models.ArchetypeEcho, models.ArchetypeSeer, models.ArchetypeGuardian,
		models.ArchetypeProphet, models.ArchetypeCultist,
	}
	seen := make(map[string]bool)
	for _, a := range all {
		q := QuoteFor(a)
		if q == "" || q == defaultQuote {
			t.Fatalf("archetype %s: got default quote", a)
		}
		if seen[q] {
			t.Fatalf("archetype %s: duplicate quote", a)
		}
		seen[q] = true
	}
	if QuoteFor(models.Archetype("nonsense")) != defaultQuote {
		t.Fatal("unmapped archetype must use default quote")
	}
}
