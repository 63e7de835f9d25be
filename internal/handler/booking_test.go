package handler

import (
    "errors"
    "net/http"
    "net/http/httptest"
    "testing"

    "github.com/labstack/echo/v4"

    "github.com/iliyamo/apartment-booking/internal/booking"
)

func TestBookingErrorMapping(t *testing.T) {
    tests := []struct {
        name     string
        err      error
        wantCode int
    }{
        {"invalid range", booking.ErrInvalidRange, http.StatusBadRequest},
        {"unverified user", booking.ErrUnauthorized, http.StatusForbidden},
        {"unit unavailable", booking.ErrUnitUnavailable, http.StatusConflict},
        {"price mismatch", booking.ErrPriceMismatch, http.StatusBadRequest},
        {"calendar conflict", booking.ErrConflict, http.StatusConflict},
        {"not found", booking.ErrNotFound, http.StatusNotFound},
        {"conflicting state", booking.ErrConflictingState, http.StatusConflict},
        {"payment required", booking.ErrPaymentRequired, http.StatusPaymentRequired},
        {"unknown error", errors.New("boom"), http.StatusInternalServerError},
    }
    e := echo.New()
    for _, tt := range tests {
        t.Run(tt.name, func(t *testing.T) {
            req := httptest.NewRequest(http.MethodPost, "/", nil)
            rec := httptest.NewRecorder()
            c := e.NewContext(req, rec)

            if err := bookingError(c, tt.err); err != nil {
                t.Fatalf("bookingError() returned %v", err)
            }
            if rec.Code != tt.wantCode {
                t.Errorf("status = %d, want %d", rec.Code, tt.wantCode)
            }
        })
    }
}

func TestParseStay(t *testing.T) {
    tests := []struct {
        name     string
        checkIn  string
        checkOut string
        wantErr  bool
    }{
        {"valid UTC pair", "2026-09-04T14:00:00Z", "2026-09-06T14:00:00Z", false},
        {"valid offset pair", "2026-09-04T14:00:00+02:00", "2026-09-06T14:00:00+02:00", false},
        {"date only", "2026-09-04", "2026-09-06", true},
        {"missing offset", "2026-09-04T14:00:00", "2026-09-06T14:00:00", true},
        {"garbage", "next tuesday", "2026-09-06T14:00:00Z", true},
    }
    for _, tt := range tests {
        t.Run(tt.name, func(t *testing.T) {
            in, out, err := parseStay(tt.checkIn, tt.checkOut)
            if tt.wantErr {
                if err == nil {
                    t.Errorf("parseStay() error = nil, want parse failure")
                }
                return
            }
            if err != nil {
                t.Fatalf("parseStay() failed: %v", err)
            }
            if !in.Before(out) {
                t.Errorf("parsed pair [%v, %v) is not ordered", in, out)
            }
        })
    }
}
