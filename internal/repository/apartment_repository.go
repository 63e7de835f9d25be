package repository

import (
    "context"
    "database/sql"
    "errors"

    "github.com/shopspring/decimal"

    "github.com/iliyamo/apartment-booking/internal/booking"
    "github.com/iliyamo/apartment-booking/internal/model"
)

// ApartmentRepo provides data access to the apartments table.
type ApartmentRepo struct {
    db *sql.DB
}

// NewApartmentRepo returns a new ApartmentRepo bound to the given database.
func NewApartmentRepo(db *sql.DB) *ApartmentRepo { return &ApartmentRepo{db: db} }

const apartmentColumns = `id, owner_id, title, address, description, price_per_night, is_available, smart_lock_id, created_at`

func scanApartment(row interface{ Scan(...any) error }) (*model.Apartment, error) {
    var a model.Apartment
    var lockID sql.NullString
    err := row.Scan(
        &a.ID, &a.OwnerID, &a.Title, &a.Address, &a.Description,
        &a.PricePerNight, &a.IsAvailable, &lockID, &a.CreatedAt,
    )
    if err != nil {
        return nil, err
    }
    if lockID.Valid {
        v := lockID.String
        a.SmartLockID = &v
    }
    return &a, nil
}

// GetByID loads one apartment. Missing rows are reported with
// booking.ErrNotFound so handlers and the booking core share one
// taxonomy.
func (r *ApartmentRepo) GetByID(ctx context.Context, id uint64) (*model.Apartment, error) {
    const q = `SELECT ` + apartmentColumns + ` FROM apartments WHERE id = ?`
    a, err := scanApartment(r.db.QueryRowContext(ctx, q, id))
    if errors.Is(err, sql.ErrNoRows) {
        return nil, booking.ErrNotFound
    }
    if err != nil {
        return nil, err
    }
    return a, nil
}

// ListAvailable returns all apartments whose listing-level switch is
// on, ordered by ID. Calendar conflicts are not considered here; use
// the booking quote operation for a specific interval.
func (r *ApartmentRepo) ListAvailable(ctx context.Context) ([]model.Apartment, error) {
    const q = `SELECT ` + apartmentColumns + ` FROM apartments WHERE is_available = 1 ORDER BY id`
    rows, err := r.db.QueryContext(ctx, q)
    if err != nil {
        return nil, err
    }
    defer rows.Close()
    out := make([]model.Apartment, 0)
    for rows.Next() {
        a, err := scanApartment(rows)
        if err != nil {
            return nil, err
        }
        out = append(out, *a)
    }
    if err := rows.Err(); err != nil {
        return nil, err
    }
    return out, nil
}

// Create inserts a new listing for the owner and returns the
// generated ID.
func (r *ApartmentRepo) Create(ctx context.Context, ownerID uint64, title, address, description string, pricePerNight decimal.Decimal, smartLockID *string) (uint64, error) {
    const q = `INSERT INTO apartments (owner_id, title, address, description, price_per_night, is_available, smart_lock_id)
               VALUES (?, ?, ?, ?, ?, 1, ?)`
    res, err := r.db.ExecContext(ctx, q, ownerID, title, address, description, pricePerNight, smartLockID)
    if err != nil {
        return 0, err
    }
    id, err := res.LastInsertId()
    if err != nil {
        return 0, err
    }
    return uint64(id), nil
}

// SetAvailability flips the listing-level availability switch. Only
// the owner may do so; a mismatched owner yields booking.ErrNotFound,
// hiding other owners' listing IDs.
func (r *ApartmentRepo) SetAvailability(ctx context.Context, id, ownerID uint64, available bool) error {
    // Check ownership first: MySQL reports zero affected rows both for
    // missing rows and for no-op updates, so RowsAffected alone cannot
    // distinguish "not yours" from "already in that state".
    var actualOwner uint64
    err := r.db.QueryRowContext(ctx, `SELECT owner_id FROM apartments WHERE id = ?`, id).Scan(&actualOwner)
    if errors.Is(err, sql.ErrNoRows) {
        return booking.ErrNotFound
    }
    if err != nil {
        return err
    }
    if actualOwner != ownerID {
        return booking.ErrNotFound
    }
    _, err = r.db.ExecContext(ctx, `UPDATE apartments SET is_available = ? WHERE id = ?`, available, id)
    return err
}
