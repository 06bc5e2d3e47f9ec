package ports

import (
	"context"

	"github.com/ceesios/vault-auth-ldap/internal/core/domain"
)

// Resolver turns raw input into a desired state using a field table.
type Resolver interface {
	Fields() []domain.FieldSpec
	Resolve(input map[string]any) (domain.DesiredState, error)
}

// Preflight runs a check against the desired state before anything is read
// from or written to the remote system.
//
//go:generate mockery --name Preflight --output ./mocks --outpkg mocks --case underscore
type Preflight interface {
	Name() string
	Check(ctx context.Context, desired domain.DesiredState) error
}
