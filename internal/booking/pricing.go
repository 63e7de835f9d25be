package booking

import (
    "time"

    "github.com/shopspring/decimal"
)

// priceTolerance bounds the acceptable deviation between a client
// declared price and the server computed one. Prices are fixed-point
// decimals end to end, so the tolerance only absorbs formatting
// differences (e.g. "5000" vs "5000.00"), never rounding drift.
var priceTolerance = decimal.RequireFromString("0.01")

// Nights returns the number of whole 24-hour periods between check-in
// and check-out. Fractional days truncate down, never round up: a
// 36-hour stay counts as one night.
func Nights(checkIn, checkOut time.Time) int {
    return int(checkOut.Sub(checkIn) / (24 * time.Hour))
}

// TotalPrice computes nights × perNight. It rejects non-positive
// night counts with ErrConflictingState: a stay shorter than one
// whole night cannot be priced and therefore cannot be booked.
func TotalPrice(nights int, perNight decimal.Decimal) (decimal.Decimal, error) {
    if nights <= 0 {
        return decimal.Zero, ErrConflictingState
    }
    return perNight.Mul(decimal.NewFromInt(int64(nights))), nil
}

// PriceMatches reports whether the declared price is within tolerance
// of the computed one.
func PriceMatches(declared, computed decimal.Decimal) bool {
    return declared.Sub(computed).Abs().LessThanOrEqual(priceTolerance)
}
