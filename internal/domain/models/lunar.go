package models

import "time"

// Source tags how a reading was obtained. Every external reading carries one of
// these so downstream consumers can tell a live value from a degraded one.
type Source string

const (
	SourcePrimary  Source = "primary"  // live reading from the collaborator
	SourceFallback Source = "fallback" // no credential/config, documented default used
	SourceError    Source = "error"    // collaborator failed, default used
)

// PatternTier describes a lunar-phase-driven mood band on the 360° cycle.
// Tiers are derived, never constructed by callers.
type PatternTier struct {
	Tier   string `json:"tier"`
	Glyph  string `json:"glyph"`
	Signal string `json:"signal"`
}

// LunarSignal is a normalized astronomy reading.
type LunarSignal struct {
	Phase        string      `json:"phase"`
	Illumination string      `json:"illumination"` // display-only, no arithmetic
	Message      string      `json:"message"`
	Pattern      PatternTier `json:"pattern"`
	ObservedAt   time.Time   `json:"observed_at"`
	Source       Source      `json:"source"`
}

// KpState is the qualitative geomagnetic activity ladder.
type KpState string

const (
	KpQuiet      KpState = "Quiet"
	KpUnsettled  KpState = "Unsettled"
	KpActive     KpState = "Active"
	KpStormWatch KpState = "StormWatch"
	KpUnknown    KpState = "Unknown"
	KpError      KpState = "Error"
)

// GeomagneticReading is a normalized Kp index reading.
type GeomagneticReading struct {
	Index      float64   `json:"index"`
	State      KpState   `json:"state"`
	ObservedAt time.Time `json:"observed_at"`
	Source     Source    `json:"source"`
}

// GeomagneticPair carries the instantaneous and daily-averaged readings.
// Each side degrades independently when its feed fails.
type GeomagneticPair struct {
	Realtime GeomagneticReading `json:"realtime"`
	Daily    GeomagneticReading `json:"daily"`
}
