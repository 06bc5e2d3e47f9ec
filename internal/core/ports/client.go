package ports

import (
	"context"

	"github.com/ceesios/vault-auth-ldap/internal/core/domain"
)

// ConfigClient reads and writes the configuration stored at a mount point.
// ReadConfig returns an error with code NOT_CONFIGURED when nothing has been
// stored there yet.
//
//go:generate mockery --name ConfigClient --output ./mocks --outpkg mocks --case underscore
type ConfigClient interface {
	Type() string
	ReadConfig(ctx context.Context, mountPoint string) (domain.CurrentState, error)
	WriteConfig(ctx context.Context, mountPoint string, values map[string]any) error
}
