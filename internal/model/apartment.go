package model

import (
    "time"

    "github.com/shopspring/decimal"
)

// Apartment is a rentable unit listed by an owner. One row in the
// `apartments` table. Prices are stored as DECIMAL(10,2) and carried
// as fixed-point decimals throughout the application so that price
// invariant checks never suffer binary rounding drift.
//
// Fields:
//  ID            – primary key identifier.
//  OwnerID       – user who owns the listing.
//  Title         – short human readable listing name.
//  Address       – postal address of the unit.
//  Description   – free form listing description.
//  PricePerNight – nightly rate (fixed-point decimal).
//  IsAvailable   – whether new bookings are accepted at all.  This is a
//                  listing-level switch, independent of calendar conflicts.
//  SmartLockID   – identifier of the physical lock controller for the
//                  unit (nullable; consumed by an external system).
//  CreatedAt     – timestamp of creation.
type Apartment struct {
    ID            uint64          // apartments.id
    OwnerID       uint64          // apartments.owner_id
    Title         string          // apartments.title
    Address       string          // apartments.address
    Description   string          // apartments.description
    PricePerNight decimal.Decimal // apartments.price_per_night
    IsAvailable   bool            // apartments.is_available
    SmartLockID   *string         // apartments.smart_lock_id (nullable)
    CreatedAt     time.Time       // apartments.created_at
}
