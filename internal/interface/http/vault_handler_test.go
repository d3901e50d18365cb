package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/securekeep/internal/application"
	"github.com/oksasatya/securekeep/internal/domain/entity"
	repo "github.com/oksasatya/securekeep/internal/domain/repository"
	"github.com/oksasatya/securekeep/internal/interface/middleware"
	"github.com/oksasatya/securekeep/pkg/crypto"
)

// memCredentialRepo is a minimal in-memory CredentialRepository for handler tests.
type memCredentialRepo struct {
	mu      sync.Mutex
	seq     int
	entries map[string]*entity.CredentialEntry
}

func newMemCredentialRepo() *memCredentialRepo {
	return &memCredentialRepo{entries: make(map[string]*entity.CredentialEntry)}
}

func (m *memCredentialRepo) Create(e *entity.CredentialEntry) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.seq++
	e.ID = "entry-" + strconv.Itoa(m.seq)
	e.CreatedAt = time.Now()
	e.UpdatedAt = e.CreatedAt
	cp := *e
	m.entries[e.ID] = &cp
	return nil
}

func (m *memCredentialRepo) ListByOwner(ownerID string) ([]*entity.CredentialEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*entity.CredentialEntry, 0)
	for _, e := range m.entries {
		if e.OwnerID == ownerID {
			cp := *e
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (m *memCredentialRepo) GetByIDAndOwner(id, ownerID string) (*entity.CredentialEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.entries[id]
	if !ok || e.OwnerID != ownerID {
		return nil, repo.ErrNotFound
	}
	cp := *e
	return &cp, nil
}

func (m *memCredentialRepo) Update(e *entity.CredentialEntry) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	existing, ok := m.entries[e.ID]
	if !ok || existing.OwnerID != e.OwnerID {
		return repo.ErrNotFound
	}
	cp := *e
	m.entries[e.ID] = &cp
	return nil
}

func (m *memCredentialRepo) Delete(id, ownerID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.entries[id]
	if !ok || e.OwnerID != ownerID {
		return repo.ErrNotFound
	}
	delete(m.entries, id)
	return nil
}

func newVaultTestRouter(t *testing.T, userID string) (*gin.Engine, *memCredentialRepo) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	engine, err := crypto.NewEngine(crypto.DeriveKey("handler-test-secret"))
	require.NoError(t, err)
	entries := newMemCredentialRepo()
	h := NewVaultHandler(application.NewVaultService(entries, engine, nil), nil)

	r := gin.New()
	// Stand-in for the session middleware: a fixed authenticated user.
	r.Use(func(c *gin.Context) { c.Set(middleware.CtxUserIDKey, userID) })
	r.POST("/api/passwords", h.Create)
	r.GET("/api/passwords", h.List)
	r.PUT("/api/passwords/:id", h.Update)
	r.DELETE("/api/passwords/:id", h.Delete)
	r.POST("/api/passwords/:id/decrypt", h.Decrypt)
	return r, entries
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestVaultHandler_CreateNeverEchoesPlaintext(t *testing.T) {
	r, _ := newVaultTestRouter(t, "user-1")

	w := doJSON(t, r, http.MethodPost, "/api/passwords", gin.H{
		"website":  "https://example.com",
		"username": "alice",
		"password": "p@ss1",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var resp struct {
		Data entryView `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.Data.ID)
	assert.NotEqual(t, "p@ss1", resp.Data.Password)
	assert.Contains(t, resp.Data.Password, ":")
}

func TestVaultHandler_DecryptRoundTrip(t *testing.T) {
	r, _ := newVaultTestRouter(t, "user-1")

	w := doJSON(t, r, http.MethodPost, "/api/passwords", gin.H{
		"website":  "https://example.com",
		"username": "alice",
		"password": "p@ss1",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	var created struct {
		Data entryView `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))

	w = doJSON(t, r, http.MethodPost, "/api/passwords/"+created.Data.ID+"/decrypt", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var decrypted struct {
		Data map[string]string `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &decrypted))
	assert.Equal(t, "p@ss1", decrypted.Data["password"])
}

func TestVaultHandler_CrossUserIsNotFound(t *testing.T) {
	owner, entries := newVaultTestRouter(t, "user-a")

	w := doJSON(t, owner, http.MethodPost, "/api/passwords", gin.H{
		"website":  "https://example.com",
		"username": "a",
		"password": "owned-by-a",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	var created struct {
		Data entryView `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))

	// Same store, different authenticated user.
	gin.SetMode(gin.TestMode)
	engine, err := crypto.NewEngine(crypto.DeriveKey("handler-test-secret"))
	require.NoError(t, err)
	h := NewVaultHandler(application.NewVaultService(entries, engine, nil), nil)
	intruder := gin.New()
	intruder.Use(func(c *gin.Context) { c.Set(middleware.CtxUserIDKey, "user-b") })
	intruder.POST("/api/passwords/:id/decrypt", h.Decrypt)
	intruder.DELETE("/api/passwords/:id", h.Delete)

	w = doJSON(t, intruder, http.MethodPost, "/api/passwords/"+created.Data.ID+"/decrypt", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doJSON(t, intruder, http.MethodDelete, "/api/passwords/"+created.Data.ID, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestVaultHandler_UpdateMissingEntry(t *testing.T) {
	r, _ := newVaultTestRouter(t, "user-1")

	w := doJSON(t, r, http.MethodPut, "/api/passwords/no-such-id", gin.H{
		"website": "https://example.com",
	})
	assert.Equal(t, http.StatusNotFound, w.Code)
}
