package oracle

import (
	"strings"

	"MoonPulse/internal/domain/models"
)

// RSI bands are Fibonacci retracement ratios, a deliberate domain convention.
const (
	rsiShadowMax    = 23.6
	rsiTricksterMax = 38.2
	rsiEchoMax      = 50
	rsiSeerMax      = 61.8
	rsiGuardianMax  = 78.6

	tricksterVolumeGate = 10_000_000

	// DefaultRSI is used when the indicator collaborator could not compute RSI.
	DefaultRSI = 50

	cultistProbability = 0.7
)

// Classifier assigns market archetypes. The rng drives only the cultist
// tie-break; everything else is deterministic.
type Classifier struct {
	rng Rand
}

func NewClassifier(rng Rand) *Classifier {
	return &Classifier{rng: rng}
}

// Classify runs the RSI decision ladder, then applies the symbol overrides.
// The prophet gate is only reachable in the top band and wins over the cultist
// draw there. The cultist override is a post-hoc tie-break, not a band: it is
// evaluated for any BONK symbol no matter which band the ladder landed on.
func (c *Classifier) Classify(symbol string, rsi float64, volume float64) models.Archetype {
	if rsi >= rsiGuardianMax && strings.Contains(symbol, "SOL") {
		return models.ArchetypeProphet
	}
	if strings.Contains(symbol, "BONK") {
		if c.rng.Float64() < cultistProbability {
			return models.ArchetypeCultist
		}
		return models.ArchetypeTrickster
	}

	switch {
	case rsi < rsiShadowMax:
		return models.ArchetypeShadow
	case rsi < rsiTricksterMax:
		if volume > tricksterVolumeGate {
			return models.ArchetypeTrickster
		}
		return models.ArchetypeObserver
	case rsi < rsiEchoMax:
		return models.ArchetypeEcho
	case rsi < rsiSeerMax:
		return models.ArchetypeSeer
	case rsi < rsiGuardianMax:
		return models.ArchetypeGuardian
	}
	return models.ArchetypeSeer
}

// ClassifySnapshot classifies from a snapshot, substituting DefaultRSI when
// the indicator was absent.
func (c *Classifier) ClassifySnapshot(snap *models.TokenSnapshot) models.Archetype {
	rsi := float64(DefaultRSI)
	if snap.HasRSI {
		rsi = float64(snap.RSI)
	}
	return c.Classify(snap.Symbol, rsi, snap.VolumeUSD)
}

var archetypeQuotes = map[models.Archetype]string{
	models.ArchetypeShadow:    "\"What sinks below the band is not lost, only waiting.\"",
	models.ArchetypeTrickster: "\"The volume lies, the candle laughs, the wise step aside.\"",
	models.ArchetypeObserver:  "\"Watch the thin tape. Patience is a position too.\"",
	models.ArchetypeEcho:      "\"Every move you see has already happened once.\"",
	models.ArchetypeSeer:      "\"The midline holds the cycle's quietest truth.\"",
	models.ArchetypeGuardian:  "\"Strength above the golden band must be defended.\"",
	models.ArchetypeProphet:   "\"When the index burns, the prophet reads the ash.\"",
	models.ArchetypeCultist:   "\"The faithful do not ask the chart for permission.\"",
}

const defaultQuote = "\"The oracle sees, even when the market does not.\""

// QuoteFor returns the fixed quote for an archetype. The default branch is
// unreachable with archetypes produced by Classify but kept for safety.
func QuoteFor(a models.Archetype) string {
	if q, ok := archetypeQuotes[a]; ok {
		return q
	}
	return defaultQuote
}
