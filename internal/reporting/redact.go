package reporting

import "github.com/ceesios/vault-auth-ldap/internal/core/domain"

const RedactedValue = "<redacted>"

// SecretKeys returns the remote keys of fields whose values must never be
// printed.
func SecretKeys(fields []domain.FieldSpec) map[string]bool {
	keys := make(map[string]bool)
	for _, f := range fields {
		if f.Secret {
			keys[f.RemoteKey()] = true
		}
	}
	return keys
}

// Redact returns a copy of values with every secret key masked.
func Redact(values map[string]any, secret map[string]bool) map[string]any {
	if values == nil {
		return nil
	}
	out := make(map[string]any, len(values))
	for k, v := range values {
		if secret[k] {
			out[k] = RedactedValue
			continue
		}
		out[k] = v
	}
	return out
}
