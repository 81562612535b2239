package lunar

import "testing"

func TestPhaseMessageCanonical(t *testing.T) {
	phases := []string{
		PhaseNewMoon, PhaseWaxingCrescent, PhaseFirstQuarter, PhaseWaxingGibbous,
		PhaseFullMoon, PhaseWaningGibbous, PhaseLastQuarter, PhaseWaningCrescent,
	}
	for _, p := range phases {
		msg := PhaseMessage(p)
		if msg == "" || msg == DefaultPhaseMessage {
			t.Fatalf("phase %q got default message", p)
		}
	}
}

func TestPhaseMessageUnknown(t *testing.T) {
	for _, p := range []string{"", "Blood Moon", "waning crescent"} {
		if got := PhaseMessage(p); got != DefaultPhaseMessage {
			t.Fatalf("phase %q: got %q, want default", p, got)
		}
	}
}

func TestPhaseAngles(t *testing.T) {
	cases := []struct {
		phase string
		angle float64
	}{
		{PhaseNewMoon, 0},
		{PhaseWaxingCrescent, 45},
		{PhaseFirstQuarter, 90},
		{PhaseWaxingGibbous, 135},
		{PhaseFullMoon, 180},
		{PhaseWaningGibbous, 225},
		{PhaseLastQuarter, 270},
		{PhaseWaningCrescent, 315},
	}
	for _, c := range cases {
		if got := PhaseAngle(c.phase); got != c.angle {
			t.Fatalf("%s: got %v, want %v", c.phase, got, c.angle)
		}
	}
	if got := PhaseAngle("nonsense"); got != 315 {
		t.Fatalf("unknown phase: got %v, want 315", got)
	}
}

func TestPatternTierSectors(t *testing.T) {
	cases := []struct {
		angle float64
		tier  string
	}{
		{0, "Veil"},
		{22.4, "Veil"},
		{22.5, "Whisper"},
		{45, "Whisper"},
		{67.5, "Charge"},
		{90, "Charge"},
		{112.5, "Charge"},
		{135, "Charge"},
		{157.5, "Overglow"},
		{180, "Overglow"},
		{202.5, "Echofield"},
		{225, "Echofield"},
		{247.5, "Whisper"},
		{270, "Whisper"},
		{292.5, "Veil"},
		{315, "Veil"},
		{359.9, "Veil"},
		{360, "Veil"},
		{405, "Whisper"},
		{-45, "Veil"},
	}
	for _, c := range cases {
		got := PatternTierForAngle(c.angle)
		if got.Tier != c.tier {
			t.Fatalf("angle %v: got %s, want %s", c.angle, got.Tier, c.tier)
		}
		if got.Glyph == "" || got.Signal == "" {
			t.Fatalf("angle %v: incomplete tier %+v", c.angle, got)
		}
	}
}

func TestPatternTierClosedSet(t *testing.T) {
	valid := map[string]bool{"Veil": true, "Whisper": true, "Charge": true, "Overglow": true, "Echofield": true}
	for a := 0.0; a < 360; a += 0.5 {
		if got := PatternTierForAngle(a); !valid[got.Tier] {
			t.Fatalf("angle %v: unexpected tier %q", a, got.Tier)
		}
	}
}
