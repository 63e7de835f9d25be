// Package metrics exposes Prometheus counters for the booking core.
package metrics

import (
    "github.com/prometheus/client_golang/prometheus"
    "github.com/prometheus/client_golang/prometheus/promauto"
)

// BookingsCreated counts successfully committed bookings.
var BookingsCreated = promauto.NewCounter(prometheus.CounterOpts{
    Name: "bookings_created_total",
    Help: "Number of bookings committed to the calendar.",
})

// BookingConflicts counts create attempts rejected because the
// interval overlapped an existing booking, including races lost at
// commit time. A spike here with flat creations means clients are
// fighting over the same dates.
var BookingConflicts = promauto.NewCounter(prometheus.CounterOpts{
    Name: "booking_conflicts_total",
    Help: "Number of booking attempts rejected due to calendar conflicts.",
})

// PaymentsRecorded counts verified payment attempts by outcome
// status (completed, duplicate).
var PaymentsRecorded = promauto.NewCounterVec(prometheus.CounterOpts{
    Name: "payments_recorded_total",
    Help: "Number of verified payment attempts by status.",
}, []string{"status"})

// AccessCodesIssued counts issued entry codes, reissues included.
var AccessCodesIssued = promauto.NewCounter(prometheus.CounterOpts{
    Name: "access_codes_issued_total",
    Help: "Number of access codes issued for paid bookings.",
})
