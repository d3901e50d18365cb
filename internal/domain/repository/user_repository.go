package repository

import (
	"errors"
	"time"

	"github.com/oksasatya/securekeep/internal/domain/entity"
)

// ErrNotFound is returned by repositories when a lookup matches no row,
// including owner-scoped lookups that miss because the row belongs to
// someone else.
var ErrNotFound = errors.New("not found")

// UserRepository defines the interface for user-related database operations.
type UserRepository interface {
	Create(u *entity.User) error
	GetByID(id string) (*entity.User, error)
	GetByEmail(email string) (*entity.User, error)

	// SetResetToken stores token/expiry on the user row, overwriting any
	// previous pending reset.
	SetResetToken(userID, token string, expiry time.Time) error

	// ConsumeResetToken atomically replaces the password hash and clears the
	// reset token for the user whose unexpired token matches. The match,
	// update and clear must be one conditional write so a token can never be
	// consumed twice; no matching row yields ErrNotFound. Returns the user id.
	ConsumeResetToken(token, newPasswordHash string) (string, error)
}
