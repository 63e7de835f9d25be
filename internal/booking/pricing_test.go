package booking

import (
    "errors"
    "testing"
    "time"

    "github.com/shopspring/decimal"
)

func TestNights(t *testing.T) {
    base := time.Date(2026, 9, 1, 14, 0, 0, 0, time.UTC)

    tests := []struct {
        name     string
        checkIn  time.Time
        checkOut time.Time
        want     int
    }{
        {"two whole nights", base, base.AddDate(0, 0, 2), 2},
        {"one night", base, base.AddDate(0, 0, 1), 1},
        {"fractional days truncate down", base, base.Add(36 * time.Hour), 1},
        {"under one day is zero", base, base.Add(12 * time.Hour), 0},
        {"thirty nights", base, base.AddDate(0, 0, 30), 30},
    }
    for _, tt := range tests {
        t.Run(tt.name, func(t *testing.T) {
            if got := Nights(tt.checkIn, tt.checkOut); got != tt.want {
                t.Errorf("Nights() = %v, want %v", got, tt.want)
            }
        })
    }
}

func TestTotalPrice(t *testing.T) {
    rate := decimal.RequireFromString("1000")

    tests := []struct {
        name    string
        nights  int
        want    string
        wantErr error
    }{
        {"one night", 1, "1000", nil},
        {"five nights", 5, "5000", nil},
        {"zero nights rejected", 0, "", ErrConflictingState},
        {"negative nights rejected", -3, "", ErrConflictingState},
    }
    for _, tt := range tests {
        t.Run(tt.name, func(t *testing.T) {
            got, err := TotalPrice(tt.nights, rate)
            if tt.wantErr != nil {
                if !errors.Is(err, tt.wantErr) {
                    t.Fatalf("TotalPrice() error = %v, want %v", err, tt.wantErr)
                }
                return
            }
            if err != nil {
                t.Fatalf("TotalPrice() unexpected error: %v", err)
            }
            if !got.Equal(decimal.RequireFromString(tt.want)) {
                t.Errorf("TotalPrice() = %v, want %v", got, tt.want)
            }
        })
    }
}

func TestTotalPriceFixedPoint(t *testing.T) {
    // A fractional rate must multiply without binary rounding drift.
    rate := decimal.RequireFromString("99.99")
    got, err := TotalPrice(3, rate)
    if err != nil {
        t.Fatalf("TotalPrice() unexpected error: %v", err)
    }
    if want := decimal.RequireFromString("299.97"); !got.Equal(want) {
        t.Errorf("TotalPrice() = %v, want %v", got, want)
    }
}

func TestPriceMatches(t *testing.T) {
    computed := decimal.RequireFromString("5000")

    tests := []struct {
        name     string
        declared string
        want     bool
    }{
        {"exact", "5000", true},
        {"formatting difference", "5000.00", true},
        {"within tolerance", "5000.01", true},
        {"above tolerance", "5000.02", false},
        {"way off", "4000", false},
    }
    for _, tt := range tests {
        t.Run(tt.name, func(t *testing.T) {
            declared := decimal.RequireFromString(tt.declared)
            if got := PriceMatches(declared, computed); got != tt.want {
                t.Errorf("PriceMatches(%s, %s) = %v, want %v", tt.declared, computed, got, tt.want)
            }
        })
    }
}
