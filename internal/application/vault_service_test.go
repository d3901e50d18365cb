package application

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/securekeep/pkg/crypto"
)

func newVaultFixture(t *testing.T) (*VaultService, *fakeCredentialRepo) {
	t.Helper()
	engine, err := crypto.NewEngine(crypto.DeriveKey("vault-test-secret"))
	require.NoError(t, err)
	entries := newFakeCredentialRepo()
	return NewVaultService(entries, engine, nil), entries
}

func TestVault_CreateListDecrypt(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	svc, _ := newVaultFixture(t)

	created, err := svc.Create(ctx, "user-1", CreateEntryInput{
		Website:  "https://example.com",
		Username: "alice",
		Password: "p@ss1",
		Note:     "work account",
	})
	require.NoError(t, err)
	require.NotEmpty(t, created.ID)

	// Create never echoes plaintext; the stored field is iv:ciphertext.
	assert.NotEqual(t, "p@ss1", created.Password)
	assert.True(t, strings.Contains(created.Password, ":"))

	list, err := svc.List(ctx, "user-1")
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.NotEqual(t, "p@ss1", list[0].Password)

	plaintext, err := svc.DecryptOne(ctx, "user-1", created.ID)
	require.NoError(t, err)
	assert.Equal(t, "p@ss1", plaintext)
}

func TestVault_OwnerScoping(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	svc, _ := newVaultFixture(t)

	created, err := svc.Create(ctx, "user-a", CreateEntryInput{
		Website:  "https://example.com",
		Username: "a",
		Password: "owned-by-a",
	})
	require.NoError(t, err)

	// User B sees nothing of user A's entry, on any operation.
	_, err = svc.DecryptOne(ctx, "user-b", created.ID)
	assert.ErrorIs(t, err, ErrEntryNotFound)

	_, err = svc.Update(ctx, "user-b", created.ID, UpdateEntryInput{Website: "https://evil.example"})
	assert.ErrorIs(t, err, ErrEntryNotFound)

	assert.ErrorIs(t, svc.Delete(ctx, "user-b", created.ID), ErrEntryNotFound)

	list, err := svc.List(ctx, "user-b")
	require.NoError(t, err)
	assert.Empty(t, list)

	// The owner still can.
	plaintext, err := svc.DecryptOne(ctx, "user-a", created.ID)
	require.NoError(t, err)
	assert.Equal(t, "owned-by-a", plaintext)
}

func TestVault_UpdateReencryptsPassword(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	svc, _ := newVaultFixture(t)

	created, err := svc.Create(ctx, "user-1", CreateEntryInput{
		Website:  "https://example.com",
		Username: "alice",
		Password: "old-pass",
		Note:     "note",
	})
	require.NoError(t, err)

	updated, err := svc.Update(ctx, "user-1", created.ID, UpdateEntryInput{
		Username: "alice2",
		Password: "new-pass",
		Note:     "updated note",
	})
	require.NoError(t, err)
	assert.Equal(t, "alice2", updated.Username)
	assert.Equal(t, "updated note", updated.Note)
	assert.NotEqual(t, created.Password, updated.Password)

	plaintext, err := svc.DecryptOne(ctx, "user-1", created.ID)
	require.NoError(t, err)
	assert.Equal(t, "new-pass", plaintext)
}

func TestVault_UpdateWithoutPasswordKeepsCiphertext(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	svc, _ := newVaultFixture(t)

	created, err := svc.Create(ctx, "user-1", CreateEntryInput{
		Website:  "https://example.com",
		Username: "alice",
		Password: "keep-me",
	})
	require.NoError(t, err)

	updated, err := svc.Update(ctx, "user-1", created.ID, UpdateEntryInput{Website: "https://renamed.example"})
	require.NoError(t, err)
	assert.Equal(t, created.Password, updated.Password)

	plaintext, err := svc.DecryptOne(ctx, "user-1", created.ID)
	require.NoError(t, err)
	assert.Equal(t, "keep-me", plaintext)
}

func TestVault_Delete(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	svc, _ := newVaultFixture(t)

	created, err := svc.Create(ctx, "user-1", CreateEntryInput{
		Website:  "https://example.com",
		Username: "alice",
		Password: "p",
	})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, "user-1", created.ID))
	assert.ErrorIs(t, svc.Delete(ctx, "user-1", created.ID), ErrEntryNotFound)
	_, err = svc.DecryptOne(ctx, "user-1", created.ID)
	assert.ErrorIs(t, err, ErrEntryNotFound)
}
