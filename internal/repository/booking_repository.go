package repository

import (
    "context"
    "database/sql"
    "errors"
    "time"

    "github.com/iliyamo/apartment-booking/internal/booking"
    "github.com/iliyamo/apartment-booking/internal/model"
)

// BookingRepo is the MySQL implementation of booking.Store: the
// single calendar-store abstraction of the system. All timestamp
// columns are stored in UTC. Mutations that must be atomic (the
// overlap re-check plus insert, the payment confirmation) run inside
// a transaction so a second process cannot interleave even when the
// in-process unit lock does not cover it.
type BookingRepo struct {
    db         *sql.DB
    apartments *ApartmentRepo
}

// NewBookingRepo returns a new BookingRepo bound to the given
// database. The apartment repository serves the store's apartment
// lookups so there is only one query path per table.
func NewBookingRepo(db *sql.DB, apartments *ApartmentRepo) *BookingRepo {
    if apartments == nil {
        panic("nil apartment repository passed to NewBookingRepo")
    }
    return &BookingRepo{db: db, apartments: apartments}
}

const bookingColumns = `id, apartment_id, user_id, check_in, check_out, total_price, status, is_paid, access_code, created_at`

func scanBooking(row interface{ Scan(...any) error }) (*model.Booking, error) {
    var b model.Booking
    var code sql.NullString
    err := row.Scan(
        &b.ID, &b.ApartmentID, &b.UserID, &b.CheckIn, &b.CheckOut,
        &b.TotalPrice, &b.Status, &b.IsPaid, &code, &b.CreatedAt,
    )
    if err != nil {
        return nil, err
    }
    if code.Valid {
        v := code.String
        b.AccessCode = &v
    }
    return &b, nil
}

// GetApartment satisfies booking.Store by delegating to the apartment
// repository.
func (r *BookingRepo) GetApartment(ctx context.Context, id uint64) (*model.Apartment, error) {
    return r.apartments.GetByID(ctx, id)
}

// GetBooking loads one booking. Missing rows are reported with
// booking.ErrNotFound.
func (r *BookingRepo) GetBooking(ctx context.Context, id uint64) (*model.Booking, error) {
    const q = `SELECT ` + bookingColumns + ` FROM bookings WHERE id = ?`
    b, err := scanBooking(r.db.QueryRowContext(ctx, q, id))
    if errors.Is(err, sql.ErrNoRows) {
        return nil, booking.ErrNotFound
    }
    if err != nil {
        return nil, err
    }
    return b, nil
}

// ListByUser returns all bookings created by the user, newest first.
// When no bookings exist, an empty slice is returned.
func (r *BookingRepo) ListByUser(ctx context.Context, userID uint64) ([]model.Booking, error) {
    const q = `SELECT ` + bookingColumns + ` FROM bookings WHERE user_id = ? ORDER BY created_at DESC, id DESC`
    rows, err := r.db.QueryContext(ctx, q, userID)
    if err != nil {
        return nil, err
    }
    defer rows.Close()
    out := make([]model.Booking, 0)
    for rows.Next() {
        b, err := scanBooking(rows)
        if err != nil {
            return nil, err
        }
        out = append(out, *b)
    }
    if err := rows.Err(); err != nil {
        return nil, err
    }
    return out, nil
}

// ActiveOverlapping returns the non-cancelled bookings of the
// apartment whose half-open [check_in, check_out) intersects the
// given interval. Back-to-back bookings sharing a boundary are not
// returned.
func (r *BookingRepo) ActiveOverlapping(ctx context.Context, apartmentID uint64, checkIn, checkOut time.Time) ([]model.Booking, error) {
    const q = `SELECT ` + bookingColumns + ` FROM bookings
               WHERE apartment_id = ? AND status <> 'cancelled'
                 AND check_in < ? AND check_out > ?`
    rows, err := r.db.QueryContext(ctx, q, apartmentID, checkOut.UTC(), checkIn.UTC())
    if err != nil {
        return nil, err
    }
    defer rows.Close()
    out := make([]model.Booking, 0)
    for rows.Next() {
        b, err := scanBooking(rows)
        if err != nil {
            return nil, err
        }
        out = append(out, *b)
    }
    if err := rows.Err(); err != nil {
        return nil, err
    }
    return out, nil
}

// InsertBooking persists a new pending booking. The overlap re-check
// and the insert run in one transaction with the conflicting range
// locked (SELECT ... FOR UPDATE), so two processes cannot both commit
// overlapping rows; the loser gets booking.ErrConflict. The generated
// ID and creation timestamp are filled in on the provided record.
func (r *BookingRepo) InsertBooking(ctx context.Context, b *model.Booking) error {
    tx, err := r.db.BeginTx(ctx, nil)
    if err != nil {
        return err
    }
    committed := false
    defer func() {
        if !committed {
            _ = tx.Rollback()
        }
    }()

    const check = `SELECT COUNT(*) FROM bookings
                   WHERE apartment_id = ? AND status <> 'cancelled'
                     AND check_in < ? AND check_out > ?
                   FOR UPDATE`
    var conflicts int
    if err := tx.QueryRowContext(ctx, check, b.ApartmentID, b.CheckOut.UTC(), b.CheckIn.UTC()).Scan(&conflicts); err != nil {
        return err
    }
    if conflicts > 0 {
        return booking.ErrConflict
    }

    const ins = `INSERT INTO bookings (apartment_id, user_id, check_in, check_out, total_price, status, is_paid)
                 VALUES (?, ?, ?, ?, ?, ?, 0)`
    res, err := tx.ExecContext(ctx, ins, b.ApartmentID, b.UserID, b.CheckIn.UTC(), b.CheckOut.UTC(), b.TotalPrice, b.Status)
    if err != nil {
        return err
    }
    id, err := res.LastInsertId()
    if err != nil {
        return err
    }
    b.ID = uint64(id)

    // Query back the row to populate the DB-assigned creation timestamp.
    const sel = `SELECT created_at FROM bookings WHERE id = ?`
    if err := tx.QueryRowContext(ctx, sel, b.ID).Scan(&b.CreatedAt); err != nil {
        return err
    }

    if err := tx.Commit(); err != nil {
        return err
    }
    committed = true
    return nil
}

// CancelBooking sets status=cancelled unless the booking is confirmed
// and paid. The legality condition is part of the UPDATE itself so a
// payment confirmed between the service's read and this write cannot
// be cancelled away. Missing rows are reported with
// booking.ErrNotFound, illegal transitions with
// booking.ErrConflictingState.
func (r *BookingRepo) CancelBooking(ctx context.Context, id uint64) error {
    const up = `UPDATE bookings SET status = 'cancelled'
                WHERE id = ? AND NOT (status = 'confirmed' AND is_paid = 1)`
    res, err := r.db.ExecContext(ctx, up, id)
    if err != nil {
        return err
    }
    n, err := res.RowsAffected()
    if err != nil {
        return err
    }
    if n == 0 {
        // Zero rows means the booking is missing, already cancelled,
        // or confirmed and paid. Read back to tell the cases apart.
        var status string
        var isPaid bool
        err := r.db.QueryRowContext(ctx, `SELECT status, is_paid FROM bookings WHERE id = ?`, id).Scan(&status, &isPaid)
        if errors.Is(err, sql.ErrNoRows) {
            return booking.ErrNotFound
        }
        if err != nil {
            return err
        }
        if status == model.StatusConfirmed && isPaid {
            return booking.ErrConflictingState
        }
    }
    return nil
}

// ConfirmPayment inserts the payment row and atomically marks the
// booking paid and confirmed. The booking row is locked for the
// duration so concurrent verification attempts serialize; only the
// first flips the paid flag, later attempts are recorded with status
// duplicate. The locked read re-checks the status so a booking
// cancelled between the service's read and this transaction is
// refused with booking.ErrConflictingState instead of confirmed. The
// payment's generated ID, status and timestamp are filled in on the
// provided record.
func (r *BookingRepo) ConfirmPayment(ctx context.Context, p *model.Payment) error {
    tx, err := r.db.BeginTx(ctx, nil)
    if err != nil {
        return err
    }
    committed := false
    defer func() {
        if !committed {
            _ = tx.Rollback()
        }
    }()

    var status string
    var alreadyPaid bool
    err = tx.QueryRowContext(ctx, `SELECT status, is_paid FROM bookings WHERE id = ? FOR UPDATE`, p.BookingID).Scan(&status, &alreadyPaid)
    if errors.Is(err, sql.ErrNoRows) {
        return booking.ErrNotFound
    }
    if err != nil {
        return err
    }
    if status == model.StatusCancelled {
        return booking.ErrConflictingState
    }

    p.Status = model.PaymentCompleted
    if alreadyPaid {
        p.Status = model.PaymentDuplicate
    }

    const ins = `INSERT INTO payments (booking_id, amount, method, transaction_id, status) VALUES (?, ?, ?, ?, ?)`
    res, err := tx.ExecContext(ctx, ins, p.BookingID, p.Amount, p.Method, p.TransactionID, p.Status)
    if err != nil {
        return err
    }
    id, err := res.LastInsertId()
    if err != nil {
        return err
    }
    p.ID = uint64(id)

    if !alreadyPaid {
        const up = `UPDATE bookings SET is_paid = 1, status = 'confirmed' WHERE id = ?`
        if _, err := tx.ExecContext(ctx, up, p.BookingID); err != nil {
            return err
        }
    }

    const sel = `SELECT created_at FROM payments WHERE id = ?`
    if err := tx.QueryRowContext(ctx, sel, p.ID).Scan(&p.CreatedAt); err != nil {
        return err
    }

    if err := tx.Commit(); err != nil {
        return err
    }
    committed = true
    return nil
}

// SetAccessCode stores (or overwrites) the booking's entry code.
// Missing rows are reported with booking.ErrNotFound.
func (r *BookingRepo) SetAccessCode(ctx context.Context, bookingID uint64, code string) error {
    res, err := r.db.ExecContext(ctx, `UPDATE bookings SET access_code = ? WHERE id = ?`, code, bookingID)
    if err != nil {
        return err
    }
    n, err := res.RowsAffected()
    if err != nil {
        return err
    }
    if n == 0 {
        var exists bool
        if err := r.db.QueryRowContext(ctx, `SELECT 1 FROM bookings WHERE id = ?`, bookingID).Scan(&exists); errors.Is(err, sql.ErrNoRows) {
            return booking.ErrNotFound
        } else if err != nil {
            return err
        }
    }
    return nil
}
