package astronomy

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	drepo "MoonPulse/internal/domain/repository"
	icache "MoonPulse/internal/service/cache"
	"MoonPulse/internal/service/rest"
)

const cacheTTL = 30 * time.Minute

// Client implements a SkySource backed by a weather/astronomy REST API.
// Location auto-detection is delegated to the API. An empty API key is the
// documented not-configured path, not an error.
type Client struct {
	base     *rest.ServiceBase
	apiKey   string
	location string
	cache    *icache.TTLCache
}

func New(baseURL, apiKey, location string, timeout time.Duration) drepo.SkySource {
	if location == "" {
		location = "auto:ip"
	}
	return &Client{
		base:     rest.NewServiceBase(baseURL, timeout),
		apiKey:   apiKey,
		location: location,
		cache:    icache.NewTTLCache(),
	}
}

// flexString accepts either a JSON string or number; the reading is treated as
// display-only either way.
type flexString string

func (f *flexString) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		*f = flexString(s)
		return nil
	}
	var n float64
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("illumination: %w", err)
	}
	*f = flexString(strconv.FormatFloat(n, 'f', -1, 64))
	return nil
}

type astronomyResponse struct {
	Astronomy struct {
		Astro struct {
			MoonPhase        string     `json:"moon_phase"`
			MoonIllumination flexString `json:"moon_illumination"`
		} `json:"astro"`
	} `json:"astronomy"`
}

type moonReading struct {
	Phase        string
	Illumination string
}

// MoonToday returns today's phase and illumination. ok=false when no API key
// is configured; the caller's resolver turns that into its fallback signal.
func (c *Client) MoonToday(ctx context.Context) (string, string, bool, error) {
	if c.apiKey == "" {
		return "", "", false, nil
	}

	if v, hit := c.cache.Get("moon:today"); hit {
		if r, ok2 := v.(moonReading); ok2 {
			return r.Phase, r.Illumination, true, nil
		}
	}

	var resp astronomyResponse
	q := map[string][]string{
		"key": {c.apiKey},
		"q":   {c.location},
		"dt":  {time.Now().Format("2006-01-02")},
	}
	if err := c.base.GetJSON(ctx, "/astronomy.json", q, &resp); err != nil {
		return "", "", true, fmt.Errorf("astronomy reading: %w", err)
	}

	r := moonReading{
		Phase:        resp.Astronomy.Astro.MoonPhase,
		Illumination: string(resp.Astronomy.Astro.MoonIllumination),
	}
	c.cache.Set("moon:today", r, cacheTTL)
	return r.Phase, r.Illumination, true, nil
}
