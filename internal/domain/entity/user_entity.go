package entity

import (
	"time"
)

// User is the aggregate root for the account domain. PasswordHash is a bcrypt
// hash; the plaintext is never stored or recoverable. ResetToken and
// ResetTokenExpiry are set while a password reset is pending and cleared on
// consumption — at most one live reset token exists per user, a new request
// overwrites the previous one.
type User struct {
	ID               string
	Email            string
	PasswordHash     string
	ResetToken       *string
	ResetTokenExpiry *time.Time
	CreatedAt        time.Time
	UpdatedAt        time.Time
}
