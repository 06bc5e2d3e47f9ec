package reporting

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ceesios/vault-auth-ldap/internal/resources/ldapauth"
)

func TestRedact(t *testing.T) {
	secret := SecretKeys(ldapauth.Fields())
	assert.Equal(t, map[string]bool{"bindpass": true}, secret)

	values := map[string]any{"bindpass": "s3cret", "url": "ldap://dc.example.com"}
	redacted := Redact(values, secret)

	assert.Equal(t, RedactedValue, redacted["bindpass"])
	assert.Equal(t, "ldap://dc.example.com", redacted["url"])
	assert.Equal(t, "s3cret", values["bindpass"])
	assert.Nil(t, Redact(nil, secret))
}
