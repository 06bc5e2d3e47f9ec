package ports

import "context"

//go:generate mockery --name Engine --output ./mocks --outpkg mocks --case underscore
type Engine interface {
	Run(ctx context.Context) error
}
