package ports

import (
	"context"

	"github.com/ceesios/vault-auth-ldap/internal/core/domain"
)

type Reporter interface {
	Type() string
	Report(ctx context.Context, result domain.ReconcileResult) error
	ReportFailure(ctx context.Context, err error) error
}
