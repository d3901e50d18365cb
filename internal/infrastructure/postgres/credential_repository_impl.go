package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/oksasatya/securekeep/internal/domain/entity"
	"github.com/oksasatya/securekeep/internal/domain/repository"
)

type CredentialRepository struct {
	pool *pgxpool.Pool
}

func NewCredentialRepository(pool *pgxpool.Pool) *CredentialRepository {
	return &CredentialRepository{pool: pool}
}

func (r *CredentialRepository) Create(e *entity.CredentialEntry) error {
	ctx := context.Background()
	row := r.pool.QueryRow(ctx, `
		INSERT INTO credential_entries (owner_id, website, username, password, note)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at
	`, e.OwnerID, e.Website, e.Username, e.Password, e.Note)

	return row.Scan(&e.ID, &e.CreatedAt, &e.UpdatedAt)
}

func (r *CredentialRepository) ListByOwner(ownerID string) ([]*entity.CredentialEntry, error) {
	ctx := context.Background()

	rows, err := r.pool.Query(ctx, `
		SELECT id, owner_id, website, username, password, note, created_at, updated_at
		FROM credential_entries
		WHERE owner_id = $1
		ORDER BY created_at DESC
	`, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := make([]*entity.CredentialEntry, 0)
	for rows.Next() {
		e := &entity.CredentialEntry{}
		if err := rows.Scan(&e.ID, &e.OwnerID, &e.Website, &e.Username,
			&e.Password, &e.Note, &e.CreatedAt, &e.UpdatedAt); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

func (r *CredentialRepository) GetByIDAndOwner(id, ownerID string) (*entity.CredentialEntry, error) {
	ctx := context.Background()
	e := &entity.CredentialEntry{}

	row := r.pool.QueryRow(ctx, `
		SELECT id, owner_id, website, username, password, note, created_at, updated_at
		FROM credential_entries
		WHERE id = $1 AND owner_id = $2
	`, id, ownerID)

	if err := row.Scan(&e.ID, &e.OwnerID, &e.Website, &e.Username,
		&e.Password, &e.Note, &e.CreatedAt, &e.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}

	return e, nil
}

func (r *CredentialRepository) Update(e *entity.CredentialEntry) error {
	ctx := context.Background()
	e.UpdatedAt = time.Now()

	res, err := r.pool.Exec(ctx, `
		UPDATE credential_entries
		SET website = $1, username = $2, password = $3, note = $4, updated_at = $5
		WHERE id = $6 AND owner_id = $7
	`, e.Website, e.Username, e.Password, e.Note, e.UpdatedAt, e.ID, e.OwnerID)
	if err != nil {
		return err
	}

	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *CredentialRepository) Delete(id, ownerID string) error {
	ctx := context.Background()

	res, err := r.pool.Exec(ctx, `
		DELETE FROM credential_entries
		WHERE id = $1 AND owner_id = $2
	`, id, ownerID)
	if err != nil {
		return err
	}

	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

var _ repository.CredentialRepository = (*CredentialRepository)(nil)
