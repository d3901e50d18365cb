package repository

import "github.com/oksasatya/securekeep/internal/domain/entity"

// CredentialRepository defines storage operations for credential entries.
// Every read and mutation is scoped to the owning user; a miss caused by
// foreign ownership is indistinguishable from a missing row (ErrNotFound).
type CredentialRepository interface {
	Create(e *entity.CredentialEntry) error
	ListByOwner(ownerID string) ([]*entity.CredentialEntry, error)
	GetByIDAndOwner(id, ownerID string) (*entity.CredentialEntry, error)
	Update(e *entity.CredentialEntry) error
	Delete(id, ownerID string) error
}
