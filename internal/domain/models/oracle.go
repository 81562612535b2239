package models

import "time"

// Archetype classifies current market sentiment for one token. The set is
// closed; classification is a pure function of (symbol, rsi, volume) plus a
// documented random tie-break on the cultist branch.
type Archetype string

const (
	ArchetypeShadow    Archetype = "shadow"
	ArchetypeTrickster Archetype = "trickster"
	ArchetypeObserver  Archetype = "observer"
	ArchetypeEcho      Archetype = "echo"
	ArchetypeSeer      Archetype = "seer"
	ArchetypeGuardian  Archetype = "guardian"
	ArchetypeProphet   Archetype = "prophet"
	ArchetypeCultist   Archetype = "cultist"
)

// OracleReport is the final text artifact for one invocation. Built fresh per
// call and never mutated after construction.
type OracleReport struct {
	Symbol    string      `json:"symbol"`
	Archetype Archetype   `json:"archetype"`
	Quote     string      `json:"quote"`
	Narrative string      `json:"narrative"`
	Lunar     LunarSignal `json:"lunar"`

	// Formatted display fields, fixed order in Text.
	Price           string `json:"price"`
	Change24h       string `json:"change_24h"`
	Volume          string `json:"volume"`
	MarketCap       string `json:"market_cap"`
	FDV             string `json:"fdv"`
	Circulating     string `json:"circulating"`
	TotalSupply     string `json:"total_supply"`
	Holders         string `json:"holders"`
	VolToMcapRatio  string `json:"vol_to_mcap_ratio"`
	CycleIndex      string `json:"cycle_index"`
	Threshold       string `json:"threshold"`
	EchoRim         string `json:"echo_rim"`
	DeltaKey        string `json:"delta_key"`
	PhaseDrift      string `json:"phase_drift"`
	AlignmentString string `json:"alignment_string"`

	// Text is the full untruncated report. Truncation for posting happens at
	// the publisher call site, never here.
	Text string `json:"text"`

	BuiltAt time.Time `json:"built_at"`
}

// ReportRecord is what the sink persists: the untruncated report plus what was
// actually handed to the posting layer.
type ReportRecord struct {
	Report    OracleReport `json:"report"`
	Posted    string       `json:"posted"`
	Truncated bool         `json:"truncated"`
	CreatedAt time.Time    `json:"created_at"`
}
