package app

import (
	"context"

	"github.com/ceesios/vault-auth-ldap/internal/core/ports"
)

// Application runs one reconciliation of the LDAP auth configuration.
type Application struct {
	Engine ports.Engine
	Logger ports.Logger
}

func NewApplication(engine ports.Engine, logger ports.Logger) *Application {
	return &Application{
		Engine: engine,
		Logger: logger,
	}
}

func (a *Application) Run(ctx context.Context) error {
	a.Logger.Infof(ctx, "Starting reconciliation...")

	if err := a.Engine.Run(ctx); err != nil {
		return err
	}

	a.Logger.Infof(ctx, "Reconciliation completed successfully")
	return nil
}
