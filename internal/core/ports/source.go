package ports

import "context"

// DesiredSource yields the raw, unresolved option set supplied by the user.
//
//go:generate mockery --name DesiredSource --output ./mocks --outpkg mocks --case underscore
type DesiredSource interface {
	Type() string
	Load(ctx context.Context) (map[string]any, error)
}
