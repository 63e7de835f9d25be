// Package repository implements persistence on MySQL through
// database/sql. Sentinel errors defined here are reused across
// repositories so that higher layers such as handlers can distinguish
// between failure scenarios without string matching. Domain-level
// failures (missing rows, calendar conflicts) are reported with the
// booking package's sentinels so that one taxonomy covers both the
// in-memory and the MySQL store.
package repository

import "errors"

// ErrDuplicateEmail is returned when a registration collides with an
// existing account. Handlers should translate this into an HTTP 409
// response.
var ErrDuplicateEmail = errors.New("email already registered")
