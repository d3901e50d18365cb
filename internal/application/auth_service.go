package application

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/securekeep/internal/domain/entity"
	repo "github.com/oksasatya/securekeep/internal/domain/repository"
	"github.com/oksasatya/securekeep/pkg/helpers"
	"github.com/oksasatya/securekeep/pkg/mailer"
	tpl "github.com/oksasatya/securekeep/pkg/mailer/templates"
)

var (
	ErrInvalidCredentials    = errors.New("invalid credentials")
	ErrEmailTaken            = errors.New("email already registered")
	ErrUserNotFound          = errors.New("user not found")
	ErrInvalidOrExpiredToken = errors.New("invalid or expired reset token")
	ErrDeliveryFailed        = errors.New("reset email delivery failed")
)

// resetTokenBytes is the entropy of a reset token before hex encoding.
const resetTokenBytes = 32

// EmailPublisher enqueues email jobs for the delivery worker.
type EmailPublisher interface {
	PublishJSON(ctx context.Context, body any) error
}

// AuthService owns registration, login and the password reset flow.
type AuthService struct {
	Repo             repo.UserRepository
	JWT              *helpers.JWTManager
	Pub              EmailPublisher
	Logger           *logrus.Logger
	ResetTokenTTL    time.Duration
	ResetPasswordURL string
	MailSendEnabled  bool
}

func NewAuthService(userRepo repo.UserRepository, jwt *helpers.JWTManager, pub EmailPublisher, logger *logrus.Logger, resetTTL time.Duration, resetURL string, mailEnabled bool) *AuthService {
	return &AuthService{
		Repo:             userRepo,
		JWT:              jwt,
		Pub:              pub,
		Logger:           logger,
		ResetTokenTTL:    resetTTL,
		ResetPasswordURL: resetURL,
		MailSendEnabled:  mailEnabled,
	}
}

// Register creates an account with a bcrypt-hashed password.
func (s *AuthService) Register(ctx context.Context, email, password string) (*entity.User, error) {
	if existing, err := s.Repo.GetByEmail(email); err == nil && existing != nil {
		return nil, ErrEmailTaken
	}
	hash, err := helpers.HashPassword(password)
	if err != nil {
		return nil, err
	}
	u := &entity.User{Email: email, PasswordHash: hash}
	if err := s.Repo.Create(u); err != nil {
		return nil, err
	}
	return u, nil
}

// Login validates credentials and issues a session token.
func (s *AuthService) Login(ctx context.Context, email, password string) (*entity.User, string, time.Time, error) {
	u, err := s.Repo.GetByEmail(email)
	if err != nil || u == nil {
		return nil, "", time.Time{}, ErrInvalidCredentials
	}
	if !helpers.CompareHashAndPassword(u.PasswordHash, password) {
		return nil, "", time.Time{}, ErrInvalidCredentials
	}
	token, exp, err := s.JWT.GenerateToken(u.ID)
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("user_id", u.ID).Error("generate session token failed")
		}
		return nil, "", time.Time{}, err
	}
	return u, token, exp, nil
}

// GetProfile returns the account for an authenticated user id.
func (s *AuthService) GetProfile(userID string) (*entity.User, error) {
	u, err := s.Repo.GetByID(userID)
	if err != nil || u == nil {
		return nil, ErrUserNotFound
	}
	return u, nil
}

// RequestReset starts the reset flow. An unknown email reports success with
// no side effects so callers cannot probe which addresses are registered. A
// known email gets a fresh token (overwriting any pending one) persisted on
// the user row before the email job is enqueued; a failed enqueue surfaces as
// ErrDeliveryFailed but never rolls the stored token back.
func (s *AuthService) RequestReset(ctx context.Context, email string) error {
	u, err := s.Repo.GetByEmail(email)
	if err != nil || u == nil {
		if s.Logger != nil {
			s.Logger.WithField("email", email).Info("reset requested for unknown email")
		}
		return nil
	}

	token, err := generateResetToken()
	if err != nil {
		return err
	}
	expiry := time.Now().Add(s.ResetTokenTTL)
	if err := s.Repo.SetResetToken(u.ID, token, expiry); err != nil {
		return err
	}

	if s.Pub == nil || !s.MailSendEnabled {
		return nil
	}
	link := s.ResetPasswordURL + "?token=" + token
	job := mailer.EmailJob{
		To:       u.Email,
		Template: tpl.ResetPassword,
		Data:     tpl.NewResetPasswordData(link, formatTTL(s.ResetTokenTTL)),
	}
	if err := s.Pub.PublishJSON(ctx, job); err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("user_id", u.ID).Warn("failed to enqueue reset email")
		}
		return ErrDeliveryFailed
	}
	return nil
}

// ConsumeReset redeems a reset token exactly once. Wrong and expired tokens
// are indistinguishable to the caller.
func (s *AuthService) ConsumeReset(ctx context.Context, token, newPassword string) error {
	if token == "" {
		return ErrInvalidOrExpiredToken
	}
	hash, err := helpers.HashPassword(newPassword)
	if err != nil {
		return err
	}
	userID, err := s.Repo.ConsumeResetToken(token, hash)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return ErrInvalidOrExpiredToken
		}
		return err
	}
	if s.Logger != nil {
		s.Logger.WithField("user_id", userID).Info("password reset completed")
	}
	return nil
}

func generateResetToken() (string, error) {
	b := make([]byte, resetTokenBytes)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}

func formatTTL(d time.Duration) string {
	if d < time.Hour {
		return fmt.Sprintf("%d minutes", int(d.Minutes()))
	}
	return fmt.Sprintf("%d hours", int(d.Hours()))
}
