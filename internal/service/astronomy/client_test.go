package astronomy

import (
	"context"
	"encoding/json"
	"testing"
	"time"
)

func TestMoonTodayNoKey(t *testing.T) {
	c := New("http://localhost", "", "", time.Second)
	_, _, ok, err := c.MoonToday(context.Background())
	if err != nil {
		t.Fatalf("missing key must not error: %v", err)
	}
	if ok {
		t.Fatal("missing key must report not-configured")
	}
}

func TestFlexStringAcceptsBothShapes(t *testing.T) {
	var resp astronomyResponse
	stringBody := `{"astronomy":{"astro":{"moon_phase":"Full Moon","moon_illumination":"98"}}}`
	if err := json.Unmarshal([]byte(stringBody), &resp); err != nil {
		t.Fatal(err)
	}
	if string(resp.Astronomy.Astro.MoonIllumination) != "98" {
		t.Fatalf("got %q", resp.Astronomy.Astro.MoonIllumination)
	}

	numberBody := `{"astronomy":{"astro":{"moon_phase":"Full Moon","moon_illumination":98.5}}}`
	if err := json.Unmarshal([]byte(numberBody), &resp); err != nil {
		t.Fatal(err)
	}
	if string(resp.Astronomy.Astro.MoonIllumination) != "98.5" {
		t.Fatalf("got %q", resp.Astronomy.Astro.MoonIllumination)
	}
}
