package source

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ceesios/vault-auth-ldap/internal/adapters/source/config"
	"github.com/ceesios/vault-auth-ldap/internal/core/ports/mocks"
	"github.com/ceesios/vault-auth-ldap/internal/resources/ldapauth"
)

func canonicalName(t *testing.T) func(string) (string, bool) {
	t.Helper()
	catalog, err := ldapauth.LDAPCatalog()
	require.NoError(t, err)
	return func(key string) (string, bool) {
		f, ok := catalog.Lookup(key)
		return f.Name, ok
	}
}

func TestOverlay_OverridesWinAcrossAliases(t *testing.T) {
	base := config.NewSource(map[string]any{
		"binddn":   "cn=file,dc=example,dc=com",
		"ldap_url": "ldap://dc.example.com",
	})
	overlay := NewOverlay(base, map[string]any{"bind_dn": "cn=cli,dc=example,dc=com"}, canonicalName(t))
	assert.Equal(t, config.SourceType, overlay.Type())

	values, err := overlay.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, map[string]any{
		"bind_dn":  "cn=cli,dc=example,dc=com",
		"ldap_url": "ldap://dc.example.com",
	}, values)
}

func TestOverlay_NoOverrides(t *testing.T) {
	base := config.NewSource(map[string]any{"ldap_url": "ldap://dc.example.com"})

	values, err := NewOverlay(base, nil, nil).Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"ldap_url": "ldap://dc.example.com"}, values)
}

func TestOverlay_BaseError(t *testing.T) {
	base := mocks.NewDesiredSource(t)
	base.On("Load", context.Background()).Return(nil, fmt.Errorf("boom")).Once()

	_, err := NewOverlay(base, map[string]any{"starttls": "true"}, nil).Load(context.Background())
	assert.EqualError(t, err, "boom")
}
