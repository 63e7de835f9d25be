package model

import (
    "time"

    "github.com/shopspring/decimal"
)

// Payment statuses. A booking may accumulate several payment
// attempts; only the first completed one flips the booking to paid.
const (
    PaymentCompleted = "completed"
    PaymentDuplicate = "duplicate"
)

// Payment is one verified payment attempt against a booking, one row
// in the `payments` table. Rows are only created as a side effect of
// the payment verification operation and are never mutated afterwards.
//
// Fields:
//  ID            – primary key identifier.
//  BookingID     – booking the payment belongs to.
//  Amount        – paid amount (fixed-point decimal).
//  Method        – payment method as reported by the gateway.
//  TransactionID – external gateway transaction reference.
//  Status        – completed, or duplicate when the booking was
//                  already paid by an earlier attempt.
//  CreatedAt     – timestamp of the verification call.
type Payment struct {
    ID            uint64          // payments.id
    BookingID     uint64          // payments.booking_id
    Amount        decimal.Decimal // payments.amount
    Method        string          // payments.method
    TransactionID string          // payments.transaction_id
    Status        string          // payments.status
    CreatedAt     time.Time       // payments.created_at
}
