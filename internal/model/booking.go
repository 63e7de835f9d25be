package model

import (
    "time"

    "github.com/shopspring/decimal"
)

// Booking status values. A booking is created pending, becomes
// confirmed when a payment is verified and cancelled on explicit
// cancellation. Cancelled is terminal: no other status may be
// assigned to a cancelled booking.
const (
    StatusPending   = "pending"
    StatusConfirmed = "confirmed"
    StatusCancelled = "cancelled"
)

// Booking records a user's reservation of an apartment for a
// half-open interval [CheckIn, CheckOut). For a fixed apartment the
// set of non-cancelled bookings must be pairwise non-overlapping on
// that interval; the booking service enforces this at creation time.
// All timestamps are stored in UTC.
//
// Fields:
//  ID          – primary key identifier.
//  ApartmentID – apartment being reserved.
//  UserID      – user who made the booking.
//  CheckIn     – start of the stay (inclusive).
//  CheckOut    – end of the stay (exclusive).
//  TotalPrice  – nights × nightly rate at creation time (fixed-point).
//  Status      – pending, confirmed or cancelled.
//  IsPaid      – set when a payment attempt is verified.
//  AccessCode  – 6-digit entry code (nullable; only set on paid,
//                confirmed bookings, valid until CheckOut).
//  CreatedAt   – creation timestamp.
type Booking struct {
    ID          uint64          // bookings.id
    ApartmentID uint64          // bookings.apartment_id
    UserID      uint64          // bookings.user_id
    CheckIn     time.Time       // bookings.check_in
    CheckOut    time.Time       // bookings.check_out
    TotalPrice  decimal.Decimal // bookings.total_price
    Status      string          // bookings.status
    IsPaid      bool            // bookings.is_paid
    AccessCode  *string         // bookings.access_code (nullable)
    CreatedAt   time.Time       // bookings.created_at
}

// Active reports whether the booking occupies its interval on the
// apartment's calendar. Cancelled bookings free the interval.
func (b *Booking) Active() bool {
    return b.Status != StatusCancelled
}

// CanCancel reports whether a cancellation is a legal transition.
// A confirmed booking that has been paid can no longer be cancelled.
func (b *Booking) CanCancel() bool {
    return !(b.Status == StatusConfirmed && b.IsPaid)
}

// Overlaps reports whether the booking's interval shares any point in
// time with [checkIn, checkOut) under half-open semantics. Back-to-back
// stays meeting exactly at a boundary do not overlap.
func (b *Booking) Overlaps(checkIn, checkOut time.Time) bool {
    return b.CheckIn.Before(checkOut) && b.CheckOut.After(checkIn)
}
