// Package queue defines message payloads exchanged over the message broker.
package queue

// Event kinds published to the booking.events queue. One event per
// state-machine transition that the external ledger mirrors.
const (
    EventBookingCreated   = "booking.created"
    EventBookingCancelled = "booking.cancelled"
    EventBookingConfirmed = "booking.confirmed"
)

// BookingEvent is published whenever a booking is created, cancelled
// or confirmed. It carries enough information for downstream
// consumers to mirror the row to a spreadsheet/CRM without querying
// the primary database. Prices are decimal strings and timestamps
// RFC3339 so the payload is safe to re-serialize anywhere.
type BookingEvent struct {
    EventID        string `json:"event_id"`
    Kind           string `json:"kind"`
    BookingID      uint64 `json:"booking_id"`
    ApartmentID    uint64 `json:"apartment_id"`
    ApartmentTitle string `json:"apartment_title,omitempty"`
    UserID         uint64 `json:"user_id"`
    CheckIn        string `json:"check_in"`
    CheckOut       string `json:"check_out"`
    TotalPrice     string `json:"total_price"`
    Status         string `json:"status"`
    RecordedAt     string `json:"recorded_at"`
}
