package oracle

import (
	"regexp"
	"strconv"
	"strings"
	"testing"

	"MoonPulse/internal/domain/models"
)

func testSnapshot() *models.TokenSnapshot {
	return &models.TokenSnapshot{
		ID:                "solana",
		Symbol:            "SOL",
		Price:             100,
		VolumeUSD:         5_000_000,
		MarketCap:         100_000_000,
		FDV:               200_000_000,
		CirculatingSupply: 400_000_000,
		TotalSupply:       500_000_000,
		Holders:           1_200_000,
		Change24h:         3.2,
		RSI:               50,
		HasRSI:            true,
	}
}

func testLunar() models.LunarSignal {
	return models.LunarSignal{
		Phase:        "Full Moon",
		Illumination: "100",
		Message:      "Full moon blazes — every position stands exposed.",
		Pattern:      models.PatternTier{Tier: "Overglow", Glyph: "☀", Signal: "peak exposure, nothing stays hidden"},
		Source:       models.SourcePrimary,
	}
}

func TestBuildDerivedFields(t *testing.T) {
	b := NewBuilder(fixedRand{f: 0.5, n: 7})
	r := b.Build(testSnapshot(), testLunar(), models.ArchetypeSeer, "\"q\"", "n")

	if r.VolToMcapRatio != "5.0" {
		t.Fatalf("ratio: %q", r.VolToMcapRatio)
	}
	if r.CycleIndex != "0.81" {
		t.Fatalf("cycle: %q", r.CycleIndex)
	}
	if r.Threshold != "105.00" || r.EchoRim != "115.00" {
		t.Fatalf("threshold/echo: %q %q", r.Threshold, r.EchoRim)
	}
	if r.DeltaKey != "1.50" {
		t.Fatalf("deltaKey: %q", r.DeltaKey)
	}
	if r.PhaseDrift != "0.0000" {
		t.Fatalf("phaseDrift: %q", r.PhaseDrift)
	}
	if r.AlignmentString != "SOL-7Ω / Δ7 : TH10500 < ECHO > 11500" {
		t.Fatalf("alignment: %q", r.AlignmentString)
	}
	if r.Volume != "5.00M" || r.MarketCap != "100.00M" || r.Holders != "1.20M" {
		t.Fatalf("numbers: %q %q %q", r.Volume, r.MarketCap, r.Holders)
	}
	if r.Change24h != "+3.20%" {
		t.Fatalf("change: %q", r.Change24h)
	}
}

func TestBuildZeroMarketCap(t *testing.T) {
	b := NewBuilder(fixedRand{})
	snap := testSnapshot()
	snap.MarketCap = 0
	r := b.Build(snap, testLunar(), models.ArchetypeSeer, "\"q\"", "n")
	if r.VolToMcapRatio != "0.0" {
		t.Fatalf("ratio with zero mcap: %q", r.VolToMcapRatio)
	}
}

// Same inputs must yield identical non-randomized fields across calls.
func TestBuildIdempotentNonRandomFields(t *testing.T) {
	b := NewBuilder(NewRand(42))
	a := b.Build(testSnapshot(), testLunar(), models.ArchetypeSeer, "\"q\"", "n")
	c := b.Build(testSnapshot(), testLunar(), models.ArchetypeSeer, "\"q\"", "n")

	if a.Quote != c.Quote || a.Narrative != c.Narrative {
		t.Fatal("quote/narrative must be stable")
	}
	if a.VolToMcapRatio != c.VolToMcapRatio || a.CycleIndex != c.CycleIndex {
		t.Fatal("derived ratios must be stable")
	}
	if a.Threshold != c.Threshold || a.EchoRim != c.EchoRim {
		t.Fatal("thresholds must be stable")
	}
}

var alignmentRe = regexp.MustCompile(`^SOL-(\d+)Ω / Δ(\d+) : TH\d+ < ECHO > \d+$`)

func TestBuildRandomFieldRanges(t *testing.T) {
	b := NewBuilder(NewRand(7))
	for i := 0; i < 200; i++ {
		r := b.Build(testSnapshot(), testLunar(), models.ArchetypeSeer, "\"q\"", "n")

		dk, err := strconv.ParseFloat(r.DeltaKey, 64)
		if err != nil || dk < 0.5 || dk >= 2.5 {
			t.Fatalf("deltaKey out of range: %q", r.DeltaKey)
		}
		pd, err := strconv.ParseFloat(r.PhaseDrift, 64)
		if err != nil || pd < -0.025 || pd >= 0.0251 {
			t.Fatalf("phaseDrift out of range: %q", r.PhaseDrift)
		}
		m := alignmentRe.FindStringSubmatch(r.AlignmentString)
		if m == nil {
			t.Fatalf("alignment format: %q", r.AlignmentString)
		}
		omega, _ := strconv.Atoi(m[1])
		delta, _ := strconv.Atoi(m[2])
		if omega >= 999 || delta >= 99 {
			t.Fatalf("alignment ints out of range: %q", r.AlignmentString)
		}
	}
}

func TestRenderTextFieldOrder(t *testing.T) {
	b := NewBuilder(fixedRand{f: 0.5, n: 7})
	r := b.Build(testSnapshot(), testLunar(), models.ArchetypeSeer, "\"the quote\"", "the narrative")

	if !strings.HasPrefix(r.Text, "\"the quote\"\n\nthe narrative\n\n") {
		t.Fatalf("text header: %q", r.Text)
	}
	markers := []string{"☀ Full Moon · Overglow", "PRICE ", "VOL ", "SUPPLY ", "V/MC ", "TH ", "ΔKEY ", r.AlignmentString}
	pos := -1
	for _, m := range markers {
		i := strings.Index(r.Text, m)
		if i < 0 {
			t.Fatalf("text missing %q:\n%s", m, r.Text)
		}
		if i < pos {
			t.Fatalf("field %q out of order:\n%s", m, r.Text)
		}
		pos = i
	}
}

func TestSplitQuoted(t *testing.T) {
	q, n, ok := SplitQuoted("The seer speaks. \"The midline holds.\" Nothing more.")
	if !ok || q != "\"The midline holds.\"" {
		t.Fatalf("quote: %q ok=%v", q, ok)
	}
	if n != "The seer speaks.  Nothing more." {
		t.Fatalf("narrative: %q", n)
	}

	q, n, ok = SplitQuoted("no quotes here")
	if ok || q != "" || n != "no quotes here" {
		t.Fatalf("unquoted: %q %q ok=%v", q, n, ok)
	}

	_, _, ok = SplitQuoted("unterminated \"quote")
	if ok {
		t.Fatal("unterminated quote must not split")
	}
}

func TestFallbackNarrative(t *testing.T) {
	got := FallbackNarrative("SOL", 62, testLunar(), models.ArchetypeGuardian)
	for _, want := range []string{"SOL", "guardian", "full moon", "62", "Overglow"} {
		if !strings.Contains(got, want) {
			t.Fatalf("narrative missing %q: %q", want, got)
		}
	}
}
