package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/securekeep/internal/container"
	handlers "github.com/oksasatya/securekeep/internal/interface/http"
	"github.com/oksasatya/securekeep/internal/interface/middleware"
	"github.com/oksasatya/securekeep/pkg/helpers"
)

// VaultModule wires the credential entry routes. Everything here requires a
// valid session; the decrypt endpoint carries its own tighter limit because
// it is the only plaintext-producing path.
type VaultModule struct {
	Handler *handlers.VaultHandler
	JWT     *helpers.JWTManager
}

func NewVaultModule(h *handlers.VaultHandler, jwt *helpers.JWTManager) *VaultModule {
	return &VaultModule{Handler: h, JWT: jwt}
}

func (m *VaultModule) Register(rg *gin.RouterGroup) {
	decryptLimiter := middleware.RateLimit(container.GetRedis(), 30, time.Minute, middleware.KeyByUserID(), nil)

	auth := rg.Group("/")
	auth.Use(middleware.Auth(m.JWT))
	auth.Use(
		middleware.RateLimit(container.GetRedis(), 300, time.Minute, middleware.KeyByIP(), nil),
		middleware.RateLimit(container.GetRedis(), 120, time.Minute, middleware.KeyByUserID(), nil),
	)
	{
		auth.POST("/passwords", m.Handler.Create)
		auth.GET("/passwords", m.Handler.List)
		auth.PUT("/passwords/:id", m.Handler.Update)
		auth.DELETE("/passwords/:id", m.Handler.Delete)
		auth.POST("/passwords/:id/decrypt", decryptLimiter, m.Handler.Decrypt)
	}
}
