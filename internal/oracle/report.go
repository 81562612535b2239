package oracle

import (
	"fmt"
	"strings"
	"time"

	"MoonPulse/internal/domain/models"
)

const goldenRatio = 1.618

// Builder assembles OracleReports from classified snapshots. Randomized fields
// draw from the injected Rand; everything else is a pure function of its
// inputs, so repeated builds over the same data differ only in those fields.
type Builder struct {
	rng Rand
	now func() time.Time
}

func NewBuilder(rng Rand) *Builder {
	return &Builder{rng: rng, now: time.Now}
}

// Build computes all derived fields and the fixed-order text block. quote and
// narrative come from the narrator (or its deterministic fallback); the
// formatter never truncates — posting-length limits are the publisher's job.
func (b *Builder) Build(snap *models.TokenSnapshot, lunar models.LunarSignal, archetype models.Archetype, quote, narrative string) *models.OracleReport {
	rsi := DefaultRSI
	if snap.HasRSI {
		rsi = snap.RSI
	}

	ratio := 0.0
	if snap.MarketCap > 0 {
		ratio = snap.VolumeUSD / snap.MarketCap * 100
	}

	threshold := FormatPrice(snap.Price * 1.05)
	echoRim := FormatPrice(snap.Price * 1.15)

	deltaKey := 0.5 + b.rng.Float64()*2.0
	phaseDrift := -0.025 + b.rng.Float64()*0.05
	omega := b.rng.Intn(999)
	delta := b.rng.Intn(99)

	r := &models.OracleReport{
		Symbol:    snap.Symbol,
		Archetype: archetype,
		Quote:     quote,
		Narrative: narrative,
		Lunar:     lunar,

		Price:          FormatPrice(snap.Price),
		Change24h:      FormatPercent(snap.Change24h),
		Volume:         FormatNumber(snap.VolumeUSD),
		MarketCap:      FormatNumber(snap.MarketCap),
		FDV:            FormatNumber(snap.FDV),
		Circulating:    FormatNumber(snap.CirculatingSupply),
		TotalSupply:    FormatNumber(snap.TotalSupply),
		Holders:        FormatNumber(float64(snap.Holders)),
		VolToMcapRatio: fmt.Sprintf("%.1f", ratio),
		CycleIndex:     fmt.Sprintf("%.2f", float64(rsi)/100*goldenRatio),
		Threshold:      threshold,
		EchoRim:        echoRim,
		DeltaKey:       fmt.Sprintf("%.2f", deltaKey),
		PhaseDrift:     fmt.Sprintf("%.4f", phaseDrift),
		AlignmentString: fmt.Sprintf("%s-%dΩ / Δ%d : TH%s < ECHO > %s",
			snap.Symbol, omega, delta, digitsOnly(threshold), digitsOnly(echoRim)),

		BuiltAt: b.now(),
	}
	r.Text = renderText(r)
	return r
}

// renderText lays out the report. Field order is part of the external contract.
func renderText(r *models.OracleReport) string {
	var sb strings.Builder
	sb.WriteString(r.Quote)
	sb.WriteString("\n\n")
	sb.WriteString(r.Narrative)
	sb.WriteString("\n\n")
	fmt.Fprintf(&sb, "%s %s · %s\n", r.Lunar.Pattern.Glyph, r.Lunar.Phase, r.Lunar.Pattern.Tier)
	fmt.Fprintf(&sb, "PRICE %s · 24H %s\n", r.Price, r.Change24h)
	fmt.Fprintf(&sb, "VOL %s · MCAP %s · FDV %s\n", r.Volume, r.MarketCap, r.FDV)
	fmt.Fprintf(&sb, "SUPPLY %s/%s · HOLDERS %s\n", r.Circulating, r.TotalSupply, r.Holders)
	fmt.Fprintf(&sb, "V/MC %s%% · CYCLE %s\n", r.VolToMcapRatio, r.CycleIndex)
	fmt.Fprintf(&sb, "TH %s · ECHO %s\n", r.Threshold, r.EchoRim)
	fmt.Fprintf(&sb, "ΔKEY %s · DRIFT %s\n", r.DeltaKey, r.PhaseDrift)
	sb.WriteString(r.AlignmentString)
	return sb.String()
}

// FallbackNarrative is the deterministic template used when the language-model
// collaborator is unavailable or fails.
func FallbackNarrative(symbol string, rsi int, lunar models.LunarSignal, archetype models.Archetype) string {
	return fmt.Sprintf("%s walks the %s path under the %s. RSI %d, the %s holds its pattern. %s",
		symbol, archetype, strings.ToLower(lunar.Phase), rsi, lunar.Pattern.Tier, lunar.Message)
}

// DefaultQuote is used when no quoted sentence can be extracted from the
// narrator's response.
func DefaultQuote() string { return defaultQuote }

// SplitQuoted extracts the first double-quoted sentence from a narrator
// response. The quote keeps its quotation marks; the remainder becomes the
// narrative. ok is false when no complete quoted sentence is present.
func SplitQuoted(text string) (quote, narrative string, ok bool) {
	start := strings.Index(text, "\"")
	if start < 0 {
		return "", strings.TrimSpace(text), false
	}
	end := strings.Index(text[start+1:], "\"")
	if end < 0 {
		return "", strings.TrimSpace(text), false
	}
	end += start + 1
	quote = text[start : end+1]
	narrative = strings.TrimSpace(text[:start] + text[end+1:])
	return quote, narrative, true
}
