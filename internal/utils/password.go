package utils

import "golang.org/x/crypto/bcrypt"

// CheckPassword compares a bcrypt hash against a candidate password.
// It returns true only when they match.
func CheckPassword(hash, password string) bool {
    return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
