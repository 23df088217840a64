package auth

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/eventhub/eventhub/internal/domain"
)

// maxPasswordBytes is the longest input bcrypt accepts.
const maxPasswordBytes = 72

type bcryptHasher struct {
	cost int
}

// NewBcryptHasher returns a bcrypt PasswordHasher. A cost of zero selects
// bcrypt.DefaultCost; other values are clamped to the range bcrypt supports.
func NewBcryptHasher(cost int) domain.PasswordHasher {
	switch {
	case cost == 0:
		cost = bcrypt.DefaultCost
	case cost < bcrypt.MinCost:
		cost = bcrypt.MinCost
	case cost > bcrypt.MaxCost:
		cost = bcrypt.MaxCost
	}
	return &bcryptHasher{cost: cost}
}

// Hash rejects passwords bcrypt would otherwise truncate.
func (h *bcryptHasher) Hash(password string) (string, error) {
	if len(password) > maxPasswordBytes {
		return "", fmt.Errorf("%w: password must be at most %d bytes", domain.ErrInvalidInput, maxPasswordBytes)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}

// Compare returns domain.ErrInvalidCredentials on a mismatch. Any other error
// means the stored hash is unusable.
func (h *bcryptHasher) Compare(hash, password string) error {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	switch {
	case err == nil:
		return nil
	case errors.Is(err, bcrypt.ErrMismatchedHashAndPassword):
		return domain.ErrInvalidCredentials
	default:
		return fmt.Errorf("compare password hash: %w", err)
	}
}
