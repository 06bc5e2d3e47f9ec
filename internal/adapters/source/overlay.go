package source

import (
	"context"

	"github.com/ceesios/vault-auth-ldap/internal/core/ports"
)

// Overlay applies command-line overrides on top of another source. An
// override replaces any spelling of the same option, so "--set bind_dn=x"
// wins over a "binddn" from the file.
type Overlay struct {
	base      ports.DesiredSource
	overrides map[string]any
	canonical func(string) (string, bool)
}

var _ ports.DesiredSource = (*Overlay)(nil)

// NewOverlay wraps base. canonical maps an option name or alias to its
// canonical name; it may be nil, in which case keys are matched verbatim.
func NewOverlay(base ports.DesiredSource, overrides map[string]any, canonical func(string) (string, bool)) *Overlay {
	return &Overlay{base: base, overrides: overrides, canonical: canonical}
}

func (o *Overlay) Type() string {
	return o.base.Type()
}

func (o *Overlay) Load(ctx context.Context) (map[string]any, error) {
	values, err := o.base.Load(ctx)
	if err != nil {
		return nil, err
	}
	if len(o.overrides) == 0 {
		return values, nil
	}

	merged := make(map[string]any, len(values)+len(o.overrides))
	overridden := make(map[string]bool, len(o.overrides))
	for k := range o.overrides {
		overridden[o.nameOf(k)] = true
	}
	for k, v := range values {
		if overridden[o.nameOf(k)] {
			continue
		}
		merged[k] = v
	}
	for k, v := range o.overrides {
		merged[k] = v
	}
	return merged, nil
}

func (o *Overlay) nameOf(key string) string {
	if o.canonical != nil {
		if name, ok := o.canonical(key); ok {
			return name
		}
	}
	return key
}
