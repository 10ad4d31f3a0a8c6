package auth

import (
	"errors"
	"sync"

	"golang.org/x/crypto/bcrypt"
)

// MaxPasswordBytes is the longest input bcrypt accepts.
const MaxPasswordBytes = 72

var ErrPasswordTooLong = errors.New("password exceeds 72 bytes")

var (
	dummyOnce sync.Once
	dummyHash []byte
)

// HashPassword creates a salted bcrypt hash from the given plaintext password.
func HashPassword(password string) (string, error) {
	if len(password) > MaxPasswordBytes {
		return "", ErrPasswordTooLong
	}
	hashedBytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashedBytes), nil
}

// VerifyPassword reports whether the plaintext password matches the stored bcrypt hash.
// bcrypt compares in constant time.
func VerifyPassword(hashedPassword, providedPassword string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(providedPassword)) == nil
}

// BurnCompare runs a compare against a throwaway hash so that a login for an
// unknown username costs the same as one with a wrong password.
func BurnCompare(providedPassword string) {
	dummyOnce.Do(func() {
		dummyHash, _ = bcrypt.GenerateFromPassword([]byte("bloghub-dummy-password"), bcrypt.DefaultCost)
	})
	_ = bcrypt.CompareHashAndPassword(dummyHash, []byte(providedPassword))
}
