package repository

import (
    "context"
    "database/sql"
    "errors"

    "github.com/go-sql-driver/mysql"
    "golang.org/x/crypto/bcrypt"

    "github.com/iliyamo/apartment-booking/internal/booking"
    "github.com/iliyamo/apartment-booking/internal/model"
)

// UserRepo provides data access to the users table. It doubles as the
// booking core's identity provider: IsVerified satisfies the
// booking.Identity interface.
type UserRepo struct {
    db *sql.DB
}

// NewUserRepo returns a new UserRepo bound to the given database.
func NewUserRepo(db *sql.DB) *UserRepo { return &UserRepo{db: db} }

// Create inserts a new user with a bcrypt hashed password and returns
// the generated ID. A duplicate email yields ErrDuplicateEmail. New
// accounts start unverified; verification is flipped by an external
// identity process outside this service.
func (r *UserRepo) Create(ctx context.Context, email, password, fullName string, bcryptCost int) (uint64, error) {
    hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
    if err != nil {
        return 0, err
    }
    const q = `INSERT INTO users (email, password_hash, full_name) VALUES (?, ?, ?)`
    res, err := r.db.ExecContext(ctx, q, email, string(hash), fullName)
    if err != nil {
        var me *mysql.MySQLError
        if errors.As(err, &me) && me.Number == 1062 {
            return 0, ErrDuplicateEmail
        }
        return 0, err
    }
    id, err := res.LastInsertId()
    if err != nil {
        return 0, err
    }
    return uint64(id), nil
}

// GetByEmail loads a user by email for login. Missing users are
// reported with booking.ErrNotFound.
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*model.User, error) {
    const q = `SELECT id, email, password_hash, full_name, is_verified, created_at
               FROM users WHERE email = ?`
    var u model.User
    err := r.db.QueryRowContext(ctx, q, email).Scan(
        &u.ID, &u.Email, &u.PasswordHash, &u.FullName, &u.IsVerified, &u.CreatedAt,
    )
    if errors.Is(err, sql.ErrNoRows) {
        return nil, booking.ErrNotFound
    }
    if err != nil {
        return nil, err
    }
    return &u, nil
}

// IsVerified reports whether the user has passed identity
// verification. A missing user yields booking.ErrNotFound.
func (r *UserRepo) IsVerified(ctx context.Context, userID uint64) (bool, error) {
    const q = `SELECT is_verified FROM users WHERE id = ?`
    var verified bool
    err := r.db.QueryRowContext(ctx, q, userID).Scan(&verified)
    if errors.Is(err, sql.ErrNoRows) {
        return false, booking.ErrNotFound
    }
    if err != nil {
        return false, err
    }
    return verified, nil
}
