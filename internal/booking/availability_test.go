package booking

import (
    "testing"
    "time"

    "github.com/iliyamo/apartment-booking/internal/model"
)

func TestHasConflict(t *testing.T) {
    day := func(d int) time.Time {
        return time.Date(2026, 9, d, 14, 0, 0, 0, time.UTC)
    }
    existing := func(status string, in, out int) model.Booking {
        return model.Booking{Status: status, CheckIn: day(in), CheckOut: day(out)}
    }

    tests := []struct {
        name     string
        calendar []model.Booking
        checkIn  time.Time
        checkOut time.Time
        want     bool
    }{
        {
            name:     "empty calendar",
            calendar: nil,
            checkIn:  day(5), checkOut: day(8),
            want: false,
        },
        {
            name:     "identical interval",
            calendar: []model.Booking{existing(model.StatusPending, 5, 8)},
            checkIn:  day(5), checkOut: day(8),
            want: true,
        },
        {
            name:     "partial overlap at the end",
            calendar: []model.Booking{existing(model.StatusConfirmed, 5, 8)},
            checkIn:  day(7), checkOut: day(10),
            want: true,
        },
        {
            name:     "contained interval",
            calendar: []model.Booking{existing(model.StatusPending, 5, 10)},
            checkIn:  day(6), checkOut: day(7),
            want: true,
        },
        {
            name:     "surrounding interval",
            calendar: []model.Booking{existing(model.StatusPending, 6, 7)},
            checkIn:  day(5), checkOut: day(10),
            want: true,
        },
        {
            name:     "back to back after",
            calendar: []model.Booking{existing(model.StatusConfirmed, 5, 8)},
            checkIn:  day(8), checkOut: day(11),
            want: false,
        },
        {
            name:     "back to back before",
            calendar: []model.Booking{existing(model.StatusConfirmed, 8, 11)},
            checkIn:  day(5), checkOut: day(8),
            want: false,
        },
        {
            name:     "cancelled bookings free the interval",
            calendar: []model.Booking{existing(model.StatusCancelled, 5, 8)},
            checkIn:  day(5), checkOut: day(8),
            want: false,
        },
        {
            name: "one active among cancelled",
            calendar: []model.Booking{
                existing(model.StatusCancelled, 5, 8),
                existing(model.StatusPending, 7, 9),
            },
            checkIn: day(5), checkOut: day(8),
            want: true,
        },
    }
    for _, tt := range tests {
        t.Run(tt.name, func(t *testing.T) {
            if got := HasConflict(tt.calendar, tt.checkIn, tt.checkOut); got != tt.want {
                t.Errorf("HasConflict() = %v, want %v", got, tt.want)
            }
        })
    }
}
