package utils

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// MinPasswordLength is enforced when staff accounts are created.
const MinPasswordLength = 8

// missingUserHash is compared against when the login name is unknown, so a
// failed lookup costs as much as a wrong password.
var missingUserHash, _ = bcrypt.GenerateFromPassword([]byte("no-such-user"), bcrypt.MinCost)

// CheckPasswordStrength rejects passwords shorter than MinPasswordLength.
func CheckPasswordStrength(plain string) error {
	if len(plain) < MinPasswordLength {
		return fmt.Errorf("password must be at least %d characters", MinPasswordLength)
	}
	return nil
}

// HashPassword bcrypt-hashes plain.  A cost outside bcrypt's range falls
// back to bcrypt.DefaultCost.
func HashPassword(plain string, cost int) (string, error) {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	b, err := bcrypt.GenerateFromPassword([]byte(plain), cost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// VerifyPassword reports whether plain matches hash.  An empty hash never
// matches but still pays for one comparison.
func VerifyPassword(hash, plain string) bool {
	if hash == "" {
		_ = bcrypt.CompareHashAndPassword(missingUserHash, []byte(plain))
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}
