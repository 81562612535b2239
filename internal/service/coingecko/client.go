package coingecko

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"MoonPulse/internal/domain/models"
	drepo "MoonPulse/internal/domain/repository"
	"MoonPulse/internal/service/rest"
	"MoonPulse/pkg/cache"

	"github.com/markcheno/go-talib"
)

const (
	rsiPeriod    = 14
	rsiMinCloses = rsiPeriod + 1
	chartDays    = "30"
)

// Client implements a MarketSource backed by the CoinGecko REST API.
// Snapshots are cached; the RSI is computed locally from the 30-day daily
// close series.
type Client struct {
	base     *rest.ServiceBase
	apiKey   string
	coinIDs  map[string]string // symbol -> coingecko id
	cache    cache.Service
	cacheTTL time.Duration
}

// New creates a CoinGecko MarketSource. c may be nil to disable caching.
func New(baseURL, apiKey string, coinIDs map[string]string, timeout time.Duration, c cache.Service, cacheTTL time.Duration) drepo.MarketSource {
	return &Client{
		base:     rest.NewServiceBase(baseURL, timeout),
		apiKey:   apiKey,
		coinIDs:  coinIDs,
		cache:    c,
		cacheTTL: cacheTTL,
	}
}

type coinResponse struct {
	ID         string `json:"id"`
	Symbol     string `json:"symbol"`
	MarketData struct {
		CurrentPrice map[string]float64 `json:"current_price"`
		TotalVolume  map[string]float64 `json:"total_volume"`
		MarketCap    map[string]float64 `json:"market_cap"`
		FDV          map[string]float64 `json:"fully_diluted_valuation"`
		Circulating  float64            `json:"circulating_supply"`
		TotalSupply  float64            `json:"total_supply"`
		Change24h    float64            `json:"price_change_percentage_24h"`
	} `json:"market_data"`
	WatchlistUsers int64 `json:"watchlist_portfolio_users"`
}

type marketChartResponse struct {
	Prices [][]float64 `json:"prices"`
}

// Snapshot fetches market data for symbol and derives RSI-14 over the 30-day
// close series. A failed chart fetch or too-short series yields a snapshot
// with RSI absent, not an error.
func (c *Client) Snapshot(ctx context.Context, symbol string) (*models.TokenSnapshot, error) {
	id, ok := c.coinIDs[strings.ToUpper(symbol)]
	if !ok {
		return nil, fmt.Errorf("coingecko: no coin id for symbol %s", symbol)
	}

	key := "cg:snapshot:" + id
	if c.cache != nil {
		var cached models.TokenSnapshot
		if err := c.cache.Get(ctx, key, &cached); err == nil {
			return &cached, nil
		}
	}

	var coin coinResponse
	q := map[string][]string{
		"localization":   {"false"},
		"tickers":        {"false"},
		"community_data": {"false"},
		"developer_data": {"false"},
	}
	if c.apiKey != "" {
		q["x_cg_demo_api_key"] = []string{c.apiKey}
	}
	if err := c.base.GetJSONWithRetry(ctx, "/coins/"+id, q, &coin, 3); err != nil {
		return nil, fmt.Errorf("coingecko coin %s: %w", id, err)
	}

	snap := &models.TokenSnapshot{
		ID:                coin.ID,
		Symbol:            strings.ToUpper(symbol),
		Price:             coin.MarketData.CurrentPrice["usd"],
		VolumeUSD:         coin.MarketData.TotalVolume["usd"],
		MarketCap:         coin.MarketData.MarketCap["usd"],
		FDV:               coin.MarketData.FDV["usd"],
		CirculatingSupply: coin.MarketData.Circulating,
		TotalSupply:       coin.MarketData.TotalSupply,
		Holders:           coin.WatchlistUsers,
		Change24h:         coin.MarketData.Change24h,
		FetchedAt:         time.Now(),
	}

	if rsi, ok := c.fetchRSI(ctx, id); ok {
		snap.RSI = rsi
		snap.HasRSI = true
	}

	if c.cache != nil {
		_ = c.cache.Set(ctx, key, snap, c.cacheTTL)
	}
	return snap, nil
}

func (c *Client) fetchRSI(ctx context.Context, id string) (int, bool) {
	var chart marketChartResponse
	q := map[string][]string{
		"vs_currency": {"usd"},
		"days":        {chartDays},
		"interval":    {"daily"},
	}
	if c.apiKey != "" {
		q["x_cg_demo_api_key"] = []string{c.apiKey}
	}
	if err := c.base.GetJSON(ctx, "/coins/"+id+"/market_chart", q, &chart); err != nil {
		return 0, false
	}

	closes := make([]float64, 0, len(chart.Prices))
	for _, p := range chart.Prices {
		if len(p) == 2 {
			closes = append(closes, p[1])
		}
	}
	return RSIFromCloses(closes)
}

// RSIFromCloses computes RSI over a 14-period window, rounded to the nearest
// integer. Requires at least 15 closes; fewer means the indicator is absent.
func RSIFromCloses(closes []float64) (int, bool) {
	if len(closes) < rsiMinCloses {
		return 0, false
	}
	series := talib.Rsi(closes, rsiPeriod)
	last := series[len(series)-1]
	if math.IsNaN(last) {
		return 0, false
	}
	return int(math.Round(last)), true
}
