package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/securekeep/internal/application"
	"github.com/oksasatya/securekeep/internal/domain/entity"
	"github.com/oksasatya/securekeep/internal/interface/middleware"
	"github.com/oksasatya/securekeep/pkg/response"
	"github.com/oksasatya/securekeep/pkg/validation"
)

type VaultHandler struct {
	Svc    *application.VaultService
	Logger *logrus.Logger
}

func NewVaultHandler(svc *application.VaultService, logger *logrus.Logger) *VaultHandler {
	return &VaultHandler{Svc: svc, Logger: logger}
}

type createEntryRequest struct {
	Website  string `json:"website" binding:"required"`
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
	Note     string `json:"note"`
}

type updateEntryRequest struct {
	Website  string `json:"website"`
	Username string `json:"username"`
	Password string `json:"password"` // empty keeps the stored password
	Note     string `json:"note"`
}

// entryView never carries plaintext; the password field is ciphertext as
// stored. Plaintext is only available via the decrypt endpoint.
type entryView struct {
	ID        string `json:"id"`
	Website   string `json:"website"`
	Username  string `json:"username"`
	Password  string `json:"password"`
	Note      string `json:"note,omitempty"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

func toEntryView(e *entity.CredentialEntry) entryView {
	return entryView{
		ID:        e.ID,
		Website:   e.Website,
		Username:  e.Username,
		Password:  e.Password,
		Note:      e.Note,
		CreatedAt: e.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt: e.UpdatedAt.UTC().Format(time.RFC3339),
	}
}

// Create POST /api/passwords
func (h *VaultHandler) Create(c *gin.Context) {
	uid := c.GetString(middleware.CtxUserIDKey)
	var req createEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	e, err := h.Svc.Create(c.Request.Context(), uid, application.CreateEntryInput{
		Website:  req.Website,
		Username: req.Username,
		Password: req.Password,
		Note:     req.Note,
	})
	if err != nil {
		if h.Logger != nil {
			h.Logger.WithError(err).WithField("user_id", uid).Error("create entry failed")
		}
		response.Error[any](c, http.StatusInternalServerError, "could not save entry", nil)
		return
	}
	response.Success(c, http.StatusCreated, toEntryView(e), "entry created", nil)
}

// List GET /api/passwords
func (h *VaultHandler) List(c *gin.Context) {
	uid := c.GetString(middleware.CtxUserIDKey)
	entries, err := h.Svc.List(c.Request.Context(), uid)
	if err != nil {
		if h.Logger != nil {
			h.Logger.WithError(err).WithField("user_id", uid).Error("list entries failed")
		}
		response.Error[any](c, http.StatusInternalServerError, "could not load entries", nil)
		return
	}
	views := make([]entryView, 0, len(entries))
	for _, e := range entries {
		views = append(views, toEntryView(e))
	}
	response.Success(c, http.StatusOK, views, "entries", map[string]any{"count": len(views)})
}

// Decrypt POST /api/passwords/:id/decrypt
func (h *VaultHandler) Decrypt(c *gin.Context) {
	uid := c.GetString(middleware.CtxUserIDKey)
	id := c.Param("id")
	plaintext, err := h.Svc.DecryptOne(c.Request.Context(), uid, id)
	if err != nil {
		if errors.Is(err, application.ErrEntryNotFound) {
			response.Error[any](c, http.StatusNotFound, "entry not found", nil)
			return
		}
		if h.Logger != nil {
			h.Logger.WithError(err).WithField("entry_id", id).Error("decrypt entry failed")
		}
		response.Error[any](c, http.StatusInternalServerError, "could not decrypt entry", nil)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"password": plaintext}, "decrypted", nil)
}

// Update PUT /api/passwords/:id
func (h *VaultHandler) Update(c *gin.Context) {
	uid := c.GetString(middleware.CtxUserIDKey)
	id := c.Param("id")
	var req updateEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	e, err := h.Svc.Update(c.Request.Context(), uid, id, application.UpdateEntryInput{
		Website:  req.Website,
		Username: req.Username,
		Password: req.Password,
		Note:     req.Note,
	})
	if err != nil {
		if errors.Is(err, application.ErrEntryNotFound) {
			response.Error[any](c, http.StatusNotFound, "entry not found", nil)
			return
		}
		if h.Logger != nil {
			h.Logger.WithError(err).WithField("entry_id", id).Error("update entry failed")
		}
		response.Error[any](c, http.StatusInternalServerError, "could not update entry", nil)
		return
	}
	response.Success(c, http.StatusOK, toEntryView(e), "entry updated", nil)
}

// Delete DELETE /api/passwords/:id
func (h *VaultHandler) Delete(c *gin.Context) {
	uid := c.GetString(middleware.CtxUserIDKey)
	id := c.Param("id")
	if err := h.Svc.Delete(c.Request.Context(), uid, id); err != nil {
		if errors.Is(err, application.ErrEntryNotFound) {
			response.Error[any](c, http.StatusNotFound, "entry not found", nil)
			return
		}
		if h.Logger != nil {
			h.Logger.WithError(err).WithField("entry_id", id).Error("delete entry failed")
		}
		response.Error[any](c, http.StatusInternalServerError, "could not delete entry", nil)
		return
	}
	response.Success[any](c, http.StatusOK, gin.H{"deleted": true}, "entry deleted", nil)
}
