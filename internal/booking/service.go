package booking

import (
    "context"
    "log"
    "time"

    "github.com/google/uuid"
    "github.com/shopspring/decimal"

    "github.com/iliyamo/apartment-booking/internal/model"
    "github.com/iliyamo/apartment-booking/internal/queue"
)

// Store is the single persistence abstraction used by the booking
// core. There is exactly one mutation method per meaningful
// transition so that invariants are enforced at this boundary and
// cannot be bypassed by arbitrary field writes. Implementations must
// return ErrNotFound for missing rows and ErrConflict when an insert
// loses a commit-time race.
type Store interface {
    // GetApartment loads one apartment by ID.
    GetApartment(ctx context.Context, id uint64) (*model.Apartment, error)
    // GetBooking loads one booking by ID.
    GetBooking(ctx context.Context, id uint64) (*model.Booking, error)
    // ListByUser returns all bookings created by the user, newest first.
    ListByUser(ctx context.Context, userID uint64) ([]model.Booking, error)
    // ActiveOverlapping returns the non-cancelled bookings of the
    // apartment whose [check_in, check_out) intersects the given
    // half-open interval.
    ActiveOverlapping(ctx context.Context, apartmentID uint64, checkIn, checkOut time.Time) ([]model.Booking, error)
    // InsertBooking persists a new pending booking and fills in its
    // generated ID and creation timestamp.
    InsertBooking(ctx context.Context, b *model.Booking) error
    // CancelBooking sets status=cancelled. The legality condition is
    // enforced here too: a booking that is confirmed and paid at
    // write time must be refused with ErrConflictingState, so a
    // payment landing between the service's read and this write
    // cannot be cancelled away.
    CancelBooking(ctx context.Context, id uint64) error
    // ConfirmPayment inserts the payment row and atomically sets the
    // booking paid and confirmed. It fills in the payment's generated
    // ID and status: completed when this attempt flipped the paid
    // flag, duplicate when an earlier attempt already had. A booking
    // cancelled at write time must be refused with
    // ErrConflictingState.
    ConfirmPayment(ctx context.Context, p *model.Payment) error
    // SetAccessCode stores (or overwrites) the booking's entry code.
    SetAccessCode(ctx context.Context, bookingID uint64, code string) error
}

// Identity is the external identity provider boundary. The core only
// needs a single black-box predicate.
type Identity interface {
    IsVerified(ctx context.Context, userID uint64) (bool, error)
}

// Ledger is the external record-keeping boundary (spreadsheet/CRM
// mirror). Record is invoked after create, cancel and confirm;
// failures are logged and never escalated to the caller.
type Ledger interface {
    Record(ctx context.Context, ev queue.BookingEvent) error
}

// Service wires the calendar store, identity provider and ledger into
// the booking state machine. It is safe for use by concurrent request
// handlers: the check-then-act window on creation is closed by a
// per-apartment mutex held across the overlap re-check and the insert.
type Service struct {
    store    Store
    identity Identity
    ledger   Ledger
    locks    *unitLocks
    now      func() time.Time
}

// New constructs a Service. All dependencies must be non-nil.
func New(store Store, identity Identity, ledger Ledger) *Service {
    if store == nil || identity == nil || ledger == nil {
        panic("nil dependency passed to booking.New")
    }
    return &Service{
        store:    store,
        identity: identity,
        ledger:   ledger,
        locks:    newUnitLocks(),
        now:      func() time.Time { return time.Now().UTC() },
    }
}

// CreateRequest carries the client-supplied fields of a booking
// creation call. DeclaredPrice is the total the client saw on its
// advisory quote; the server recomputes and compares it.
type CreateRequest struct {
    ApartmentID   uint64
    UserID        uint64
    CheckIn       time.Time
    CheckOut      time.Time
    DeclaredPrice decimal.Decimal
}

// Create runs the full booking-creation transition. Validation order
// is fixed: requester verification, apartment availability flag, date
// range, then under the unit lock the calendar overlap re-check and
// finally the price re-check. Exactly one of any set of conflicting
// concurrent calls commits; the rest fail with ErrConflict.
func (s *Service) Create(ctx context.Context, req CreateRequest) (*model.Booking, error) {
    verified, err := s.identity.IsVerified(ctx, req.UserID)
    if err != nil {
        return nil, err
    }
    if !verified {
        return nil, ErrUnauthorized
    }
    apt, err := s.store.GetApartment(ctx, req.ApartmentID)
    if err != nil {
        return nil, err
    }
    if !apt.IsAvailable {
        return nil, ErrUnitUnavailable
    }
    if !req.CheckIn.Before(req.CheckOut) {
        return nil, ErrInvalidRange
    }
    if !req.CheckIn.After(s.now()) {
        return nil, ErrInvalidRange
    }

    // Serialize conflicting creates per apartment. The overlap query
    // and the insert below form one critical section; without the
    // lock two concurrent requests could both pass the re-check.
    mu := s.locks.get(req.ApartmentID)
    mu.Lock()
    defer mu.Unlock()

    overlapping, err := s.store.ActiveOverlapping(ctx, req.ApartmentID, req.CheckIn, req.CheckOut)
    if err != nil {
        return nil, err
    }
    if HasConflict(overlapping, req.CheckIn, req.CheckOut) {
        return nil, ErrConflict
    }
    total, err := TotalPrice(Nights(req.CheckIn, req.CheckOut), apt.PricePerNight)
    if err != nil {
        return nil, err
    }
    if !PriceMatches(req.DeclaredPrice, total) {
        return nil, ErrPriceMismatch
    }

    b := &model.Booking{
        ApartmentID: req.ApartmentID,
        UserID:      req.UserID,
        CheckIn:     req.CheckIn.UTC(),
        CheckOut:    req.CheckOut.UTC(),
        TotalPrice:  total,
        Status:      model.StatusPending,
    }
    if err := s.store.InsertBooking(ctx, b); err != nil {
        return nil, err
    }
    s.notifyLedger(queue.EventBookingCreated, b, apt)
    return b, nil
}

// Cancel sets the booking to cancelled. Cancelling a paid confirmed
// booking is an illegal transition; cancelling an already cancelled
// booking is a no-op success, since the terminal state is unchanged.
func (s *Service) Cancel(ctx context.Context, bookingID uint64) (*model.Booking, error) {
    b, err := s.store.GetBooking(ctx, bookingID)
    if err != nil {
        return nil, err
    }
    if !b.CanCancel() {
        return nil, ErrConflictingState
    }
    if b.Status != model.StatusCancelled {
        if err := s.store.CancelBooking(ctx, bookingID); err != nil {
            return nil, err
        }
        b.Status = model.StatusCancelled
        s.notifyLedger(queue.EventBookingCancelled, b, nil)
    }
    return b, nil
}

// RecordPayment verifies a payment attempt against the booking. It
// creates a payment record and atomically marks the booking paid and
// confirmed. This is the only path that unlocks access code issuance.
func (s *Service) RecordPayment(ctx context.Context, bookingID uint64, amount decimal.Decimal, method, transactionID string) (*model.Payment, error) {
    b, err := s.store.GetBooking(ctx, bookingID)
    if err != nil {
        return nil, err
    }
    if b.Status == model.StatusCancelled {
        return nil, ErrConflictingState
    }
    p := &model.Payment{
        BookingID:     bookingID,
        Amount:        amount,
        Method:        method,
        TransactionID: transactionID,
    }
    if err := s.store.ConfirmPayment(ctx, p); err != nil {
        return nil, err
    }
    b.IsPaid = true
    b.Status = model.StatusConfirmed
    s.notifyLedger(queue.EventBookingConfirmed, b, nil)
    return p, nil
}

// AccessGrant is the result of issuing an entry code: the code itself
// and the moment it stops working (the booking's check-out).
type AccessGrant struct {
    Code        string     `json:"access_code"`
    ValidUntil  time.Time  `json:"valid_until"`
    SmartLockID *string    `json:"smart_lock_id,omitempty"`
}

// IssueAccessCode generates and stores a fresh 6-digit entry code for
// a paid booking. Reissuing overwrites the previous code. The grant
// includes the unit's smart lock ID so the caller can hand both to
// the physical lock controller.
func (s *Service) IssueAccessCode(ctx context.Context, bookingID uint64) (*AccessGrant, error) {
    b, err := s.store.GetBooking(ctx, bookingID)
    if err != nil {
        return nil, err
    }
    if !b.IsPaid {
        return nil, ErrPaymentRequired
    }
    code, err := NewAccessCode()
    if err != nil {
        return nil, err
    }
    if err := s.store.SetAccessCode(ctx, bookingID, code); err != nil {
        return nil, err
    }
    grant := &AccessGrant{Code: code, ValidUntil: b.CheckOut}
    if apt, aptErr := s.store.GetApartment(ctx, b.ApartmentID); aptErr == nil {
        grant.SmartLockID = apt.SmartLockID
    }
    return grant, nil
}

// GetForUser returns one booking, hiding bookings of other users
// behind ErrNotFound so the API does not leak booking IDs.
func (s *Service) GetForUser(ctx context.Context, bookingID, userID uint64) (*model.Booking, error) {
    b, err := s.store.GetBooking(ctx, bookingID)
    if err != nil {
        return nil, err
    }
    if b.UserID != userID {
        return nil, ErrNotFound
    }
    return b, nil
}

// ListForUser returns all bookings of the user, newest first.
func (s *Service) ListForUser(ctx context.Context, userID uint64) ([]model.Booking, error) {
    return s.store.ListByUser(ctx, userID)
}

// notifyLedger mirrors the transition to the external ledger without
// blocking the request path. The spreadsheet/CRM mirror is a separate
// availability domain; its failures are logged and dropped.
func (s *Service) notifyLedger(kind string, b *model.Booking, apt *model.Apartment) {
    ev := queue.BookingEvent{
        EventID:     uuid.NewString(),
        Kind:        kind,
        BookingID:   b.ID,
        ApartmentID: b.ApartmentID,
        UserID:      b.UserID,
        CheckIn:     b.CheckIn.Format(time.RFC3339),
        CheckOut:    b.CheckOut.Format(time.RFC3339),
        TotalPrice:  b.TotalPrice.String(),
        Status:      b.Status,
        RecordedAt:  s.now().Format(time.RFC3339),
    }
    if apt != nil {
        ev.ApartmentTitle = apt.Title
    }
    go func() {
        ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
        defer cancel()
        if err := s.ledger.Record(ctx, ev); err != nil {
            log.Printf("ledger: record %s for booking %d failed: %v", kind, ev.BookingID, err)
        }
    }()
}
