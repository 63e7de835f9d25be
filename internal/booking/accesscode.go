package booking

import (
    "crypto/rand"
    "fmt"
    "math/big"
)

// accessCodeDigits is the fixed length of generated entry codes. The
// code is only meaningful together with the unit's smart lock, so no
// global uniqueness is attempted.
const accessCodeDigits = 6

var accessCodeSpace = big.NewInt(1_000_000)

// NewAccessCode returns a zero-padded 6-digit numeric code drawn
// uniformly from crypto/rand. Each call produces a fresh value;
// callers must not assume stability across calls.
func NewAccessCode() (string, error) {
    n, err := rand.Int(rand.Reader, accessCodeSpace)
    if err != nil {
        return "", err
    }
    return fmt.Sprintf("%0*d", accessCodeDigits, n.Int64()), nil
}
