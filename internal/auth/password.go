package auth

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

// MaxPasswordBytes is the longest input bcrypt accepts.
const MaxPasswordBytes = 72

// PasswordHasher is the one-way hash capability used for credentials.
type PasswordHasher interface {
	Hash(password string) (string, error)
	// Verify reports whether password matches digest. A missing digest never matches.
	Verify(digest *string, password string) bool
}

type BcryptHasher struct {
	cost int
}

func NewBcryptHasher(cost int) *BcryptHasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &BcryptHasher{cost: cost}
}

func (b *BcryptHasher) Hash(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), b.cost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

func (b *BcryptHasher) Verify(digest *string, password string) bool {
	if digest == nil || *digest == "" {
		return false
	}
	err := bcrypt.CompareHashAndPassword([]byte(*digest), []byte(password))
	if err != nil && !errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		// malformed digest: treated as a mismatch
		return false
	}
	return err == nil
}
