package config

import (
	"context"

	"github.com/ceesios/vault-auth-ldap/internal/core/ports"
)

const SourceType = "config"

// Source serves the options given under the ldap: key of the configuration
// file (or the matching environment variables).
type Source struct {
	options map[string]any
}

var _ ports.DesiredSource = (*Source)(nil)

func NewSource(options map[string]any) *Source {
	return &Source{options: options}
}

func (s *Source) Type() string {
	return SourceType
}

func (s *Source) Load(ctx context.Context) (map[string]any, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	out := make(map[string]any, len(s.options))
	for k, v := range s.options {
		out[k] = v
	}
	return out, nil
}
