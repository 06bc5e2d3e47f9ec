package app

import (
	"fmt"
	"strings"

	"github.com/ceesios/vault-auth-ldap/internal/errors"
)

// parseSetOverrides turns repeated "--set key=value" flags into an option
// map. Values stay strings; the catalog coerces them. A later flag for the
// same key wins.
func parseSetOverrides(pairs []string) (map[string]any, error) {
	if len(pairs) == 0 {
		return nil, nil
	}
	parsed := make(map[string]any, len(pairs))
	for _, pair := range pairs {
		key, value, ok := strings.Cut(pair, "=")
		key = strings.ToLower(strings.TrimSpace(key))
		if !ok || key == "" {
			return nil, errors.NewUserFacing(errors.CodeInvalidOption,
				fmt.Sprintf("invalid --set value %q", pair),
				"Use --set option=value, e.g. --set groupattr=cn.")
		}
		parsed[key] = value
	}
	return parsed, nil
}
