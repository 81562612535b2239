package models

import "time"

// TokenSnapshot is a point-in-time view of one token's market data.
// Produced by the market-data collaborator; the core only reads it.
type TokenSnapshot struct {
	ID                string    `json:"id"`
	Symbol            string    `json:"symbol"`
	Price             float64   `json:"price"`
	VolumeUSD         float64   `json:"volume_usd"`
	MarketCap         float64   `json:"market_cap"`
	FDV               float64   `json:"fdv"`
	CirculatingSupply float64   `json:"circulating_supply"`
	TotalSupply       float64   `json:"total_supply"`
	Holders           int64     `json:"holders"`
	Change24h         float64   `json:"change_24h_percent"`
	RSI               int       `json:"rsi"` // 0..100, valid only when HasRSI
	HasRSI            bool      `json:"has_rsi"`
	FetchedAt         time.Time `json:"fetched_at"`
}

// PriceTick is a single trade observation from the exchange stream.
type PriceTick struct {
	Symbol    string
	Timestamp int64 // unix seconds
	Price     float64
	Volume    float64
}
