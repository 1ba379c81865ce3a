// Package auth provides password strategies for the account store.
package auth

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/ewilliams-labs/vibestudio/internal/core/ports"
)

// Plain stores passwords verbatim and compares them byte for byte.
type Plain struct{}

var (
	_ ports.Authenticator = Plain{}
	_ ports.Authenticator = Bcrypt{}
)

func (Plain) Seal(password string) (string, error) {
	return password, nil
}

func (Plain) Verify(stored, supplied string) bool {
	return stored == supplied
}

// Bcrypt stores salted bcrypt hashes.
type Bcrypt struct {
	Cost int
}

func (b Bcrypt) Seal(password string) (string, error) {
	cost := b.Cost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", fmt.Errorf("auth: bcrypt.GenerateFromPassword: %w", err)
	}
	return string(hashed), nil
}

func (Bcrypt) Verify(stored, supplied string) bool {
	return bcrypt.CompareHashAndPassword([]byte(stored), []byte(supplied)) == nil
}

// New returns the strategy registered under name.
func New(name string) (ports.Authenticator, error) {
	switch name {
	case "", "plain":
		return Plain{}, nil
	case "bcrypt":
		return Bcrypt{}, nil
	default:
		return nil, fmt.Errorf("auth: unknown strategy %q", name)
	}
}
