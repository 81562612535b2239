package lunar

import (
	"math"

	"MoonPulse/internal/domain/models"
)

// The eight canonical phase names as the astronomy collaborator reports them.
const (
	PhaseNewMoon        = "New Moon"
	PhaseWaxingCrescent = "Waxing Crescent"
	PhaseFirstQuarter   = "First Quarter"
	PhaseWaxingGibbous  = "Waxing Gibbous"
	PhaseFullMoon       = "Full Moon"
	PhaseWaningGibbous  = "Waning Gibbous"
	PhaseLastQuarter    = "Last Quarter"
	PhaseWaningCrescent = "Waning Crescent"
)

// DefaultPhaseMessage is returned for any phase name outside the canonical set.
const DefaultPhaseMessage = "Lunar unknown — silence reverberates."

var phaseMessages = map[string]string{
	PhaseNewMoon:        "New moon rises — the ledger resets in darkness.",
	PhaseWaxingCrescent: "Waxing crescent — thin light gathers conviction.",
	PhaseFirstQuarter:   "First quarter — half-lit, decisions split the chart.",
	PhaseWaxingGibbous:  "Waxing gibbous — momentum swells toward fullness.",
	PhaseFullMoon:       "Full moon blazes — every position stands exposed.",
	PhaseWaningGibbous:  "Waning gibbous — the surge recedes, wisdom remains.",
	PhaseLastQuarter:    "Last quarter — the cycle settles its debts.",
	PhaseWaningCrescent: "Waning crescent — embers of the cycle, hold quietly.",
}

// phaseAngles maps each canonical phase to its position on the 360° cycle.
var phaseAngles = map[string]float64{
	PhaseNewMoon:        0,
	PhaseWaxingCrescent: 45,
	PhaseFirstQuarter:   90,
	PhaseWaxingGibbous:  135,
	PhaseFullMoon:       180,
	PhaseWaningGibbous:  225,
	PhaseLastQuarter:    270,
	PhaseWaningCrescent: 315,
}

// PhaseMessage returns the fixed message for a canonical phase name, or
// DefaultPhaseMessage for anything else.
func PhaseMessage(phase string) string {
	if m, ok := phaseMessages[phase]; ok {
		return m
	}
	return DefaultPhaseMessage
}

// PhaseAngle returns the cycle angle for a canonical phase. Unknown phases map
// to the waning-crescent angle, matching the resolver's fallback phase.
func PhaseAngle(phase string) float64 {
	if a, ok := phaseAngles[phase]; ok {
		return a
	}
	return phaseAngles[PhaseWaningCrescent]
}

var patternTiers = map[string]models.PatternTier{
	"Veil":      {Tier: "Veil", Glyph: "◌", Signal: "the circle closes on itself, signal dims"},
	"Whisper":   {Tier: "Whisper", Glyph: "≈", Signal: "faint currents, listen before acting"},
	"Charge":    {Tier: "Charge", Glyph: "⚡", Signal: "tension building across the field"},
	"Overglow":  {Tier: "Overglow", Glyph: "☀", Signal: "peak exposure, nothing stays hidden"},
	"Echofield": {Tier: "Echofield", Glyph: "∿", Signal: "past moves reverberating forward"},
}

// PatternTierForAngle maps a cycle angle to its pattern tier. The circle is
// split into eight 45° sectors with closed-open boundaries at 22.5°+k·45°;
// the input is reduced modulo 360 first.
func PatternTierForAngle(angle float64) models.PatternTier {
	a := math.Mod(angle, 360)
	if a < 0 {
		a += 360
	}

	var tier string
	switch {
	case a < 22.5:
		tier = "Veil"
	case a < 67.5:
		tier = "Whisper"
	case a < 112.5:
		tier = "Charge"
	case a < 157.5:
		tier = "Charge"
	case a < 202.5:
		tier = "Overglow"
	case a < 247.5:
		tier = "Echofield"
	case a < 292.5:
		tier = "Whisper"
	default:
		tier = "Veil"
	}
	return patternTiers[tier]
}
