package router

import (
	"github.com/oksasatya/securekeep/internal/application"
	"github.com/oksasatya/securekeep/internal/container"
	pginfra "github.com/oksasatya/securekeep/internal/infrastructure/postgres"
	handlers "github.com/oksasatya/securekeep/internal/interface/http"
	"github.com/oksasatya/securekeep/internal/router/modules"
)

// InitModules builds every feature module from container singletons and
// registers them with the router registry. Called once during startup.
func InitModules(r *Registry) {
	cfg := container.GetConfig()

	users := pginfra.NewUserRepository(container.GetPGPool())
	entries := pginfra.NewCredentialRepository(container.GetPGPool())

	// Keep the interface nil when no publisher is configured so the service's
	// nil check stays meaningful.
	var pub application.EmailPublisher
	if p := container.GetRabbitPub(); p != nil {
		pub = p
	}

	authSvc := application.NewAuthService(
		users,
		container.GetJWT(),
		pub,
		container.GetLogger(),
		cfg.ResetTokenTTL,
		cfg.ResetPasswordURL,
		cfg.MailSendEnabled,
	)
	vaultSvc := application.NewVaultService(entries, container.GetCipher(), container.GetLogger())

	authHandler := handlers.NewAuthHandler(authSvc, container.GetLogger(), cfg.CookieDomain, cfg.CookieSecure)
	vaultHandler := handlers.NewVaultHandler(vaultSvc, container.GetLogger())

	r.Add(modules.NewAuthModule(authHandler, container.GetJWT()))
	r.Add(modules.NewVaultModule(vaultHandler, container.GetJWT()))
}
