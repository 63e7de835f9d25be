package handler

import (
    "errors"
    "net/http"
    "time"

    "github.com/labstack/echo/v4"
    "github.com/shopspring/decimal"

    "github.com/iliyamo/apartment-booking/internal/booking"
    "github.com/iliyamo/apartment-booking/internal/metrics"
    "github.com/iliyamo/apartment-booking/internal/model"
)

// BookingHandler exposes the booking core over HTTP: advisory quotes,
// creation, cancellation, payment verification and access code
// issuance. All methods assume JWT authentication has already run, so
// the requester ID is available in the context.
type BookingHandler struct {
    Svc *booking.Service
}

func NewBookingHandler(svc *booking.Service) *BookingHandler {
    if svc == nil {
        panic("nil service passed to NewBookingHandler")
    }
    return &BookingHandler{Svc: svc}
}

// bookingError maps the booking package's sentinel errors onto HTTP
// responses. Every mutating operation is atomic, so any error here
// means no state change was observed.
func bookingError(c echo.Context, err error) error {
    switch {
    case errors.Is(err, booking.ErrInvalidRange):
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid date range"})
    case errors.Is(err, booking.ErrUnauthorized):
        return c.JSON(http.StatusForbidden, echo.Map{"error": "user is not verified"})
    case errors.Is(err, booking.ErrUnitUnavailable):
        return c.JSON(http.StatusConflict, echo.Map{"error": "apartment is not accepting bookings"})
    case errors.Is(err, booking.ErrPriceMismatch):
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "declared price does not match computed price"})
    case errors.Is(err, booking.ErrConflict):
        metrics.BookingConflicts.Inc()
        return c.JSON(http.StatusConflict, echo.Map{"error": "dates conflict with an existing booking"})
    case errors.Is(err, booking.ErrNotFound):
        return c.JSON(http.StatusNotFound, echo.Map{"error": "not found"})
    case errors.Is(err, booking.ErrConflictingState):
        return c.JSON(http.StatusConflict, echo.Map{"error": "operation not allowed in current state"})
    case errors.Is(err, booking.ErrPaymentRequired):
        return c.JSON(http.StatusPaymentRequired, echo.Map{"error": "booking is not paid"})
    }
    return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal error"})
}

// bookingView is the response shape for one booking. Timestamps are
// RFC3339 with explicit offset, prices decimal strings.
type bookingView struct {
    ID          uint64          `json:"id"`
    ApartmentID uint64          `json:"apartment_id"`
    CheckIn     string          `json:"check_in"`
    CheckOut    string          `json:"check_out"`
    TotalPrice  decimal.Decimal `json:"total_price"`
    Status      string          `json:"status"`
    IsPaid      bool            `json:"is_paid"`
    CreatedAt   string          `json:"created_at"`
}

func toBookingView(b *model.Booking) bookingView {
    return bookingView{
        ID:          b.ID,
        ApartmentID: b.ApartmentID,
        CheckIn:     b.CheckIn.Format(time.RFC3339),
        CheckOut:    b.CheckOut.Format(time.RFC3339),
        TotalPrice:  b.TotalPrice,
        Status:      b.Status,
        IsPaid:      b.IsPaid,
        CreatedAt:   b.CreatedAt.Format(time.RFC3339),
    }
}

type quoteReq struct {
    ApartmentID uint64 `json:"apartment_id"`
    CheckIn     string `json:"check_in"`
    CheckOut    string `json:"check_out"`
}

// parseStay parses the RFC3339 check-in/check-out pair. The offset is
// required: ambiguous local timestamps cannot participate in overlap
// arithmetic.
func parseStay(checkIn, checkOut string) (time.Time, time.Time, error) {
    in, err := time.Parse(time.RFC3339, checkIn)
    if err != nil {
        return time.Time{}, time.Time{}, err
    }
    out, err := time.Parse(time.RFC3339, checkOut)
    if err != nil {
        return time.Time{}, time.Time{}, err
    }
    return in, out, nil
}

// Quote handles POST /v1/bookings/quote. It returns availability, the
// whole-night count and the computed total for the interval. The
// result is advisory: creation re-validates everything server-side.
func (h *BookingHandler) Quote(c echo.Context) error {
    var req quoteReq
    if err := c.Bind(&req); err != nil || req.ApartmentID == 0 {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
    }
    in, out, err := parseStay(req.CheckIn, req.CheckOut)
    if err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "timestamps must be RFC3339 with offset"})
    }
    q, err := h.Svc.Quote(c.Request().Context(), req.ApartmentID, in, out)
    if err != nil {
        return bookingError(c, err)
    }
    return c.JSON(http.StatusOK, q)
}

type createBookingReq struct {
    ApartmentID uint64 `json:"apartment_id"`
    CheckIn     string `json:"check_in"`
    CheckOut    string `json:"check_out"`
    TotalPrice  string `json:"total_price"`
}

// Create handles POST /v1/bookings. The client submits the total it
// saw on its quote; the server recomputes price and availability and
// rejects the request if either changed. Among concurrent requests
// for conflicting intervals exactly one succeeds.
func (h *BookingHandler) Create(c echo.Context) error {
    userID, err := getUserID(c)
    if err != nil {
        return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
    }
    var req createBookingReq
    if err := c.Bind(&req); err != nil || req.ApartmentID == 0 {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
    }
    in, out, err := parseStay(req.CheckIn, req.CheckOut)
    if err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "timestamps must be RFC3339 with offset"})
    }
    declared, err := decimal.NewFromString(req.TotalPrice)
    if err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid total_price"})
    }

    b, err := h.Svc.Create(c.Request().Context(), booking.CreateRequest{
        ApartmentID:   req.ApartmentID,
        UserID:        userID,
        CheckIn:       in,
        CheckOut:      out,
        DeclaredPrice: declared,
    })
    if err != nil {
        return bookingError(c, err)
    }
    metrics.BookingsCreated.Inc()
    return c.JSON(http.StatusCreated, toBookingView(b))
}

// Cancel handles POST /v1/bookings/:id/cancel. Paid confirmed
// bookings cannot be cancelled. Only the booking's creator may cancel
// it.
func (h *BookingHandler) Cancel(c echo.Context) error {
    userID, err := getUserID(c)
    if err != nil {
        return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
    }
    id, err := pathID(c)
    if err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid booking id"})
    }
    // Ownership check first so foreign bookings read as missing.
    if _, err := h.Svc.GetForUser(c.Request().Context(), id, userID); err != nil {
        return bookingError(c, err)
    }
    b, err := h.Svc.Cancel(c.Request().Context(), id)
    if err != nil {
        return bookingError(c, err)
    }
    return c.JSON(http.StatusOK, toBookingView(b))
}

type recordPaymentReq struct {
    Amount        string `json:"amount"`
    Method        string `json:"method"`
    TransactionID string `json:"transaction_id"`
}

// RecordPayment handles POST /v1/bookings/:id/payment. It verifies a
// payment attempt, marking the booking paid and confirmed. Repeated
// verifications accumulate payment rows but only the first one flips
// the paid flag.
func (h *BookingHandler) RecordPayment(c echo.Context) error {
    id, err := pathID(c)
    if err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid booking id"})
    }
    var req recordPaymentReq
    if err := c.Bind(&req); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
    }
    amount, err := decimal.NewFromString(req.Amount)
    if err != nil || amount.IsNegative() {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid amount"})
    }
    if req.TransactionID == "" {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "transaction_id is required"})
    }

    p, err := h.Svc.RecordPayment(c.Request().Context(), id, amount, req.Method, req.TransactionID)
    if err != nil {
        return bookingError(c, err)
    }
    metrics.PaymentsRecorded.WithLabelValues(p.Status).Inc()
    return c.JSON(http.StatusCreated, echo.Map{
        "payment_id": p.ID,
        "status":     p.Status,
    })
}

// IssueAccessCode handles POST /v1/bookings/:id/access-code. It
// returns a fresh 6-digit entry code for a paid booking, valid until
// check-out. Reissuing invalidates the previous code.
func (h *BookingHandler) IssueAccessCode(c echo.Context) error {
    userID, err := getUserID(c)
    if err != nil {
        return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
    }
    id, err := pathID(c)
    if err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid booking id"})
    }
    if _, err := h.Svc.GetForUser(c.Request().Context(), id, userID); err != nil {
        return bookingError(c, err)
    }
    grant, err := h.Svc.IssueAccessCode(c.Request().Context(), id)
    if err != nil {
        return bookingError(c, err)
    }
    metrics.AccessCodesIssued.Inc()
    return c.JSON(http.StatusOK, grant)
}

// ListMine handles GET /v1/my-bookings. When no bookings exist it
// returns an empty array.
func (h *BookingHandler) ListMine(c echo.Context) error {
    userID, err := getUserID(c)
    if err != nil {
        return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
    }
    items, err := h.Svc.ListForUser(c.Request().Context(), userID)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load bookings"})
    }
    views := make([]bookingView, 0, len(items))
    for i := range items {
        views = append(views, toBookingView(&items[i]))
    }
    return c.JSON(http.StatusOK, echo.Map{"items": views})
}

// Get handles GET /v1/bookings/:id. Bookings of other users read as
// missing.
func (h *BookingHandler) Get(c echo.Context) error {
    userID, err := getUserID(c)
    if err != nil {
        return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
    }
    id, err := pathID(c)
    if err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid booking id"})
    }
    b, err := h.Svc.GetForUser(c.Request().Context(), id, userID)
    if err != nil {
        return bookingError(c, err)
    }
    return c.JSON(http.StatusOK, echo.Map{"item": toBookingView(b)})
}
