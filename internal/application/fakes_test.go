package application

import (
	"context"
	"errors"
	"strconv"
	"sync"
	"time"

	"github.com/oksasatya/securekeep/internal/domain/entity"
	repo "github.com/oksasatya/securekeep/internal/domain/repository"
	"github.com/oksasatya/securekeep/pkg/mailer"
)

// fakeUserRepo is an in-memory UserRepository with the same conditional
// semantics as the Postgres implementation, including the atomic
// consume-reset update.
type fakeUserRepo struct {
	mu    sync.Mutex
	seq   int
	users map[string]*entity.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[string]*entity.User)}
}

func (f *fakeUserRepo) Create(u *entity.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, existing := range f.users {
		if existing.Email == u.Email {
			return errors.New("duplicate email")
		}
	}
	f.seq++
	u.ID = "user-" + strconv.Itoa(f.seq)
	u.CreatedAt = time.Now()
	u.UpdatedAt = u.CreatedAt
	cp := *u
	f.users[u.ID] = &cp
	return nil
}

func (f *fakeUserRepo) GetByID(id string) (*entity.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[id]
	if !ok {
		return nil, repo.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (f *fakeUserRepo) GetByEmail(email string) (*entity.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, repo.ErrNotFound
}

func (f *fakeUserRepo) SetResetToken(userID, token string, expiry time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[userID]
	if !ok {
		return repo.ErrNotFound
	}
	u.ResetToken = &token
	u.ResetTokenExpiry = &expiry
	u.UpdatedAt = time.Now()
	return nil
}

func (f *fakeUserRepo) ConsumeResetToken(token, newPasswordHash string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.ResetToken != nil && *u.ResetToken == token &&
			u.ResetTokenExpiry != nil && u.ResetTokenExpiry.After(time.Now()) {
			u.PasswordHash = newPasswordHash
			u.ResetToken = nil
			u.ResetTokenExpiry = nil
			u.UpdatedAt = time.Now()
			return u.ID, nil
		}
	}
	return "", repo.ErrNotFound
}

var _ repo.UserRepository = (*fakeUserRepo)(nil)

// fakeCredentialRepo is an in-memory CredentialRepository with owner scoping.
type fakeCredentialRepo struct {
	mu      sync.Mutex
	seq     int
	entries map[string]*entity.CredentialEntry
}

func newFakeCredentialRepo() *fakeCredentialRepo {
	return &fakeCredentialRepo{entries: make(map[string]*entity.CredentialEntry)}
}

func (f *fakeCredentialRepo) Create(e *entity.CredentialEntry) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.seq++
	e.ID = "entry-" + strconv.Itoa(f.seq)
	e.CreatedAt = time.Now()
	e.UpdatedAt = e.CreatedAt
	cp := *e
	f.entries[e.ID] = &cp
	return nil
}

func (f *fakeCredentialRepo) ListByOwner(ownerID string) ([]*entity.CredentialEntry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]*entity.CredentialEntry, 0)
	for _, e := range f.entries {
		if e.OwnerID == ownerID {
			cp := *e
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (f *fakeCredentialRepo) GetByIDAndOwner(id, ownerID string) (*entity.CredentialEntry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	e, ok := f.entries[id]
	if !ok || e.OwnerID != ownerID {
		return nil, repo.ErrNotFound
	}
	cp := *e
	return &cp, nil
}

func (f *fakeCredentialRepo) Update(e *entity.CredentialEntry) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	existing, ok := f.entries[e.ID]
	if !ok || existing.OwnerID != e.OwnerID {
		return repo.ErrNotFound
	}
	cp := *e
	cp.UpdatedAt = time.Now()
	f.entries[e.ID] = &cp
	return nil
}

func (f *fakeCredentialRepo) Delete(id, ownerID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	e, ok := f.entries[id]
	if !ok || e.OwnerID != ownerID {
		return repo.ErrNotFound
	}
	delete(f.entries, id)
	return nil
}

var _ repo.CredentialRepository = (*fakeCredentialRepo)(nil)

// fakePublisher records published email jobs and can be told to fail.
type fakePublisher struct {
	mu   sync.Mutex
	jobs []mailer.EmailJob
	fail error
}

func (f *fakePublisher) PublishJSON(_ context.Context, body any) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fail != nil {
		return f.fail
	}
	if job, ok := body.(mailer.EmailJob); ok {
		f.jobs = append(f.jobs, job)
	}
	return nil
}

func (f *fakePublisher) published() []mailer.EmailJob {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]mailer.EmailJob, len(f.jobs))
	copy(out, f.jobs)
	return out
}
