package oracle

import (
	"math"
	"testing"
)

func TestFormatPrice(t *testing.T) {
	cases := []struct {
		in   float64
		want string
	}{
		{0.005, "0.00500000"},
		{0.00000123, "0.00000123"},
		{0.5, "0.5000"},
		{0.9999, "0.9999"},
		{5, "5.00"},
		{1, "1.00"},
		{12345.678, "12345.68"},
	}
	for _, c := range cases {
		if got := FormatPrice(c.in); got != c.want {
			t.Fatalf("FormatPrice(%v): got %q, want %q", c.in, got, c.want)
		}
	}
	if got := FormatPrice(math.NaN()); got != MissingNumber {
		t.Fatalf("NaN: got %q", got)
	}
}

func TestFormatNumber(t *testing.T) {
	cases := []struct {
		in   float64
		want string
	}{
		{1_500_000_000, "1.50B"},
		{2_500_000, "2.50M"},
		{2500, "2.50K"},
		{999, "999.00"},
		{0, "0.00"},
	}
	for _, c := range cases {
		if got := FormatNumber(c.in); got != c.want {
			t.Fatalf("FormatNumber(%v): got %q, want %q", c.in, got, c.want)
		}
	}
	if got := FormatNumber(math.NaN()); got != MissingNumber {
		t.Fatalf("NaN: got %q", got)
	}
	if got := FormatNumber(math.Inf(1)); got != MissingNumber {
		t.Fatalf("Inf: got %q", got)
	}
}

func TestFormatPercent(t *testing.T) {
	cases := []struct {
		in   float64
		want string
	}{
		{3.456, "+3.46%"},
		{-2.1, "-2.10%"},
		{0, "0.00%"},
	}
	for _, c := range cases {
		if got := FormatPercent(c.in); got != c.want {
			t.Fatalf("FormatPercent(%v): got %q, want %q", c.in, got, c.want)
		}
	}
	if got := FormatPercent(math.NaN()); got != MissingNumber {
		t.Fatalf("NaN: got %q", got)
	}
}

func TestDigitsOnly(t *testing.T) {
	if got := digitsOnly("158.03"); got != "15803" {
		t.Fatalf("got %q", got)
	}
	if got := digitsOnly("0.00000123"); got != "000000123" {
		t.Fatalf("got %q", got)
	}
}
