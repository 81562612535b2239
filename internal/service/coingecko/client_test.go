package coingecko

import "testing"

func TestRSIFromClosesTooFew(t *testing.T) {
	closes := make([]float64, 14)
	for i := range closes {
		closes[i] = float64(i + 1)
	}
	if _, ok := RSIFromCloses(closes); ok {
		t.Fatal("14 closes must not yield an RSI")
	}
	if _, ok := RSIFromCloses(nil); ok {
		t.Fatal("empty series must not yield an RSI")
	}
}

func TestRSIFromClosesMonotonic(t *testing.T) {
	// A strictly rising series has no losses, so RSI-14 is exactly 100.
	closes := make([]float64, 30)
	for i := range closes {
		closes[i] = 100 + float64(i)
	}
	rsi, ok := RSIFromCloses(closes)
	if !ok {
		t.Fatal("expected an RSI")
	}
	if rsi != 100 {
		t.Fatalf("got %d, want 100", rsi)
	}

	// A strictly falling series has no gains.
	for i := range closes {
		closes[i] = 200 - float64(i)
	}
	rsi, ok = RSIFromCloses(closes)
	if !ok {
		t.Fatal("expected an RSI")
	}
	if rsi != 0 {
		t.Fatalf("got %d, want 0", rsi)
	}
}

func TestRSIFromClosesBounded(t *testing.T) {
	closes := []float64{
		44.34, 44.09, 44.15, 43.61, 44.33, 44.83, 45.10, 45.42,
		45.84, 46.08, 45.89, 46.03, 45.61, 46.28, 46.28, 46.00,
		46.03, 46.41, 46.22, 45.64,
	}
	rsi, ok := RSIFromCloses(closes)
	if !ok {
		t.Fatal("expected an RSI")
	}
	if rsi < 0 || rsi > 100 {
		t.Fatalf("rsi out of bounds: %d", rsi)
	}
}
