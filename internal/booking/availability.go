package booking

import (
    "context"
    "time"

    "github.com/shopspring/decimal"

    "github.com/iliyamo/apartment-booking/internal/model"
)

// Quote is the result of an advisory availability check: whether the
// interval is free, the whole-night count and the computed total.
// The check is read-only; by the time a create request commits, the
// calendar may have changed, so creation re-validates everything.
type Quote struct {
    Available  bool            `json:"available"`
    Nights     int             `json:"nights"`
    TotalPrice decimal.Decimal `json:"total_price"`
}

// HasConflict reports whether any booking in the slice still occupies
// a part of [checkIn, checkOut). Cancelled bookings are ignored; the
// overlap test is half-open, so a stay ending exactly when another
// begins does not conflict.
func HasConflict(existing []model.Booking, checkIn, checkOut time.Time) bool {
    for i := range existing {
        if existing[i].Active() && existing[i].Overlaps(checkIn, checkOut) {
            return true
        }
    }
    return false
}

// Quote computes an advisory quote for the apartment and interval.
// It returns ErrInvalidRange when check-in is not strictly before
// check-out, ErrNotFound when the apartment does not exist and
// ErrConflictingState when the interval is shorter than one whole
// night. The quote carries Available=false when the interval overlaps
// an existing non-cancelled booking; nights and price are computed
// either way so clients can still display the rate.
func (s *Service) Quote(ctx context.Context, apartmentID uint64, checkIn, checkOut time.Time) (*Quote, error) {
    if !checkIn.Before(checkOut) {
        return nil, ErrInvalidRange
    }
    apt, err := s.store.GetApartment(ctx, apartmentID)
    if err != nil {
        return nil, err
    }
    nights := Nights(checkIn, checkOut)
    total, err := TotalPrice(nights, apt.PricePerNight)
    if err != nil {
        return nil, err
    }
    overlapping, err := s.store.ActiveOverlapping(ctx, apartmentID, checkIn, checkOut)
    if err != nil {
        return nil, err
    }
    return &Quote{
        Available:  !HasConflict(overlapping, checkIn, checkOut),
        Nights:     nights,
        TotalPrice: total,
    }, nil
}
