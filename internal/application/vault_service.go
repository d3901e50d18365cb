package application

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/securekeep/internal/domain/entity"
	repo "github.com/oksasatya/securekeep/internal/domain/repository"
	"github.com/oksasatya/securekeep/pkg/crypto"
)

// ErrEntryNotFound covers both a genuinely missing entry and one owned by
// another user; callers cannot tell the difference.
var ErrEntryNotFound = errors.New("credential entry not found")

// VaultService exposes owner-scoped CRUD over encrypted credential entries.
// Passwords are encrypted on the way in and only decrypted by DecryptOne;
// Create, List and Update return ciphertext so plaintext exposure stays on a
// single auditable path.
type VaultService struct {
	Entries repo.CredentialRepository
	Cipher  *crypto.Engine
	Logger  *logrus.Logger
}

func NewVaultService(entries repo.CredentialRepository, cipher *crypto.Engine, logger *logrus.Logger) *VaultService {
	return &VaultService{Entries: entries, Cipher: cipher, Logger: logger}
}

type CreateEntryInput struct {
	Website  string
	Username string
	Password string // plaintext, encrypted before persisting
	Note     string
}

type UpdateEntryInput struct {
	Website  string
	Username string
	Password string // plaintext; empty means keep the stored ciphertext
	Note     string
}

func (s *VaultService) Create(ctx context.Context, ownerID string, in CreateEntryInput) (*entity.CredentialEntry, error) {
	ct, err := s.Cipher.Encrypt(in.Password)
	if err != nil {
		return nil, err
	}
	e := &entity.CredentialEntry{
		OwnerID:  ownerID,
		Website:  in.Website,
		Username: in.Username,
		Password: ct,
		Note:     in.Note,
	}
	if err := s.Entries.Create(e); err != nil {
		return nil, err
	}
	return e, nil
}

// List returns the owner's entries with ciphertext intact.
func (s *VaultService) List(ctx context.Context, ownerID string) ([]*entity.CredentialEntry, error) {
	return s.Entries.ListByOwner(ownerID)
}

// DecryptOne is the only operation that produces a plaintext password.
func (s *VaultService) DecryptOne(ctx context.Context, ownerID, entryID string) (string, error) {
	e, err := s.Entries.GetByIDAndOwner(entryID, ownerID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return "", ErrEntryNotFound
		}
		return "", err
	}
	plaintext, err := s.Cipher.Decrypt(e.Password)
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("entry_id", e.ID).Error("stored ciphertext failed to decrypt")
		}
		return "", err
	}
	return plaintext, nil
}

func (s *VaultService) Update(ctx context.Context, ownerID, entryID string, in UpdateEntryInput) (*entity.CredentialEntry, error) {
	e, err := s.Entries.GetByIDAndOwner(entryID, ownerID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrEntryNotFound
		}
		return nil, err
	}
	if in.Website != "" {
		e.Website = in.Website
	}
	if in.Username != "" {
		e.Username = in.Username
	}
	e.Note = in.Note
	if in.Password != "" {
		ct, err := s.Cipher.Encrypt(in.Password)
		if err != nil {
			return nil, err
		}
		e.Password = ct
	}
	if err := s.Entries.Update(e); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrEntryNotFound
		}
		return nil, err
	}
	return e, nil
}

func (s *VaultService) Delete(ctx context.Context, ownerID, entryID string) error {
	if err := s.Entries.Delete(entryID, ownerID); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return ErrEntryNotFound
		}
		return err
	}
	return nil
}
