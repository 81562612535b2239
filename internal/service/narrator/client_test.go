package narrator

import (
	"context"
	"strings"
	"testing"

	"MoonPulse/internal/domain/models"
	"MoonPulse/internal/oracle"
)

func TestNarrateWithoutKeyUsesTemplate(t *testing.T) {
	n := New("", "", nil)
	sig := models.LunarSignal{
		Phase:   "Full Moon",
		Pattern: models.PatternTier{Tier: "Overglow"},
		Message: "Full moon blazes — every position stands exposed.",
	}

	quote, narrative := n.Narrate(context.Background(), "SOL", 80, sig, models.ArchetypeProphet)
	if quote != oracle.QuoteFor(models.ArchetypeProphet) {
		t.Fatalf("quote: %q", quote)
	}
	if !strings.Contains(narrative, "SOL") || !strings.Contains(narrative, "prophet") {
		t.Fatalf("narrative: %q", narrative)
	}
}
