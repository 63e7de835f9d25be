// Package booking implements the reservation core: availability
// checking, deterministic pricing, the booking state machine and
// access code issuance. Persistence is reached through the Store
// interface so that the scheduling rules stay independent of the
// storage technology.
//
// This file defines the sentinel errors shared by the package. These
// values allow handlers to distinguish between failure scenarios and
// translate them into HTTP responses without inspecting error text.
package booking

import "errors"

// ErrInvalidRange is returned when check-in is not strictly before
// check-out, or when the requested check-in lies in the past.
// Handlers should translate this into an HTTP 400 response.
var ErrInvalidRange = errors.New("invalid date range")

// ErrUnauthorized is returned when the requesting user has not passed
// identity verification. Handlers should translate this into an HTTP
// 403 response.
var ErrUnauthorized = errors.New("user not verified")

// ErrUnitUnavailable is returned when the apartment's listing-level
// availability switch is off. Handlers should translate this into an
// HTTP 409 response.
var ErrUnitUnavailable = errors.New("apartment not accepting bookings")

// ErrPriceMismatch is returned when the price declared by the client
// deviates from the server-side computed price beyond the fixed
// tolerance. Handlers should translate this into an HTTP 400 response.
var ErrPriceMismatch = errors.New("declared price does not match")

// ErrConflict is returned when the requested interval overlaps an
// existing non-cancelled booking, including races lost at commit
// time. Handlers should translate this into an HTTP 409 response.
var ErrConflict = errors.New("dates conflict with an existing booking")

// ErrNotFound is returned when the referenced booking, apartment or
// user does not exist. Handlers should translate this into an HTTP
// 404 response.
var ErrNotFound = errors.New("not found")

// ErrConflictingState is returned when an operation is an illegal
// transition for the booking's current state, such as cancelling a
// paid confirmed booking or pricing a non-positive stay. Handlers
// should translate this into an HTTP 409 response.
var ErrConflictingState = errors.New("conflicting booking state")

// ErrPaymentRequired is returned when an access code is requested for
// a booking that has not been paid. Handlers should translate this
// into an HTTP 402 response.
var ErrPaymentRequired = errors.New("booking is not paid")
