package oracle

import (
	"fmt"
	"math"
	"strings"
)

// MissingNumber is the placeholder for absent or NaN numeric inputs.
const MissingNumber = "--"

// FormatPrice renders a price with precision depending on magnitude:
// under a cent 8 decimals, under a dollar 4, otherwise 2.
func FormatPrice(p float64) string {
	if math.IsNaN(p) || math.IsInf(p, 0) {
		return MissingNumber
	}
	switch {
	case p < 0.01:
		return fmt.Sprintf("%.8f", p)
	case p < 1:
		return fmt.Sprintf("%.4f", p)
	default:
		return fmt.Sprintf("%.2f", p)
	}
}

// FormatNumber renders a large number with B/M/K suffixes.
func FormatNumber(n float64) string {
	if math.IsNaN(n) || math.IsInf(n, 0) {
		return MissingNumber
	}
	switch {
	case n >= 1e9:
		return fmt.Sprintf("%.2fB", n/1e9)
	case n >= 1e6:
		return fmt.Sprintf("%.2fM", n/1e6)
	case n >= 1e3:
		return fmt.Sprintf("%.2fK", n/1e3)
	default:
		return fmt.Sprintf("%.2f", n)
	}
}

// FormatPercent renders a percentage with an explicit sign for gains.
func FormatPercent(n float64) string {
	if math.IsNaN(n) || math.IsInf(n, 0) {
		return MissingNumber
	}
	if n > 0 {
		return fmt.Sprintf("+%.2f%%", n)
	}
	return fmt.Sprintf("%.2f%%", n)
}

// digitsOnly strips everything but digits, used for the alignment string's
// threshold/echo renderings.
func digitsOnly(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
