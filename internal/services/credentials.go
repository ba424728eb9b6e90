package services

import (
	"crypto/subtle"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// CredentialPolicy seals passwords before storage and checks login attempts
// against the stored value.
type CredentialPolicy interface {
	Seal(password string) (string, error)
	Verify(stored, supplied string) bool
}

// BcryptPolicy stores bcrypt hashes.
type BcryptPolicy struct {
	Cost int
}

// Seal hashes password with the configured cost.
func (p BcryptPolicy) Seal(password string) (string, error) {
	cost := p.Cost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if errors.Is(err, bcrypt.ErrPasswordTooLong) {
		return "", ErrPasswordTooLong
	}
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hashed), nil
}

// Verify reports whether supplied matches the stored hash.
func (p BcryptPolicy) Verify(stored, supplied string) bool {
	return bcrypt.CompareHashAndPassword([]byte(stored), []byte(supplied)) == nil
}

// PlainTextPolicy stores passwords as given and compares them literally.
// It exists for compatibility with legacy account data only.
type PlainTextPolicy struct{}

// Seal returns password unchanged.
func (PlainTextPolicy) Seal(password string) (string, error) { return password, nil }

// Verify compares stored and supplied in constant time.
func (PlainTextPolicy) Verify(stored, supplied string) bool {
	return subtle.ConstantTimeCompare([]byte(stored), []byte(supplied)) == 1
}

// NewCredentialPolicy returns the policy registered under name.
func NewCredentialPolicy(name string) (CredentialPolicy, error) {
	switch name {
	case "bcrypt":
		return BcryptPolicy{Cost: bcrypt.DefaultCost}, nil
	case "plain":
		return PlainTextPolicy{}, nil
	default:
		return nil, fmt.Errorf("unknown password policy %q", name)
	}
}
