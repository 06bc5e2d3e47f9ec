package ldapauth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ceesios/vault-auth-ldap/internal/core/domain"
	"github.com/ceesios/vault-auth-ldap/internal/errors"
)

func newCatalog(t *testing.T) *Catalog {
	t.Helper()
	c, err := LDAPCatalog()
	require.NoError(t, err)
	return c
}

func TestLDAPCatalog_Defaults(t *testing.T) {
	c := newCatalog(t)

	desired, err := c.Resolve(map[string]any{})
	require.NoError(t, err)

	assert.Equal(t, "ldap", desired.MountPoint)
	assert.Equal(t, "ldap://127.0.0.1", desired.Values["url"])
	assert.Equal(t, 90, desired.Values["request_timeout"])
	assert.Equal(t, []string{}, desired.Values["token_policies"])
	assert.Equal(t, "default", desired.Values["token_type"])
	assert.Equal(t, DefaultUserFilter, desired.Values["userfilter"])
	assert.Equal(t, DefaultGroupFilter, desired.Values["groupfilter"])
	assert.Equal(t, true, desired.Values["deny_null_bind"])
	assert.Equal(t, "tls12", desired.Values["tls_min_version"])
	assert.Equal(t, "tls12", desired.Values["tls_max_version"])
	assert.Equal(t, false, desired.Values["use_token_groups"])

	assert.NotContains(t, desired.Values, "bindpass")
	assert.NotContains(t, desired.Values, "use_pre111_group_cn_behavior")
	assert.NotContains(t, desired.Values, "mount_point")
	assert.NotContains(t, desired.Values, "ldap_url")
}

func TestCatalog_ResolveAliasesAndCoercion(t *testing.T) {
	c := newCatalog(t)

	desired, err := c.Resolve(map[string]any{
		"mount_point":       "/corp-ldap/",
		"ldap_url":          "ldaps://dc1.example.com,ldaps://dc2.example.com",
		"bind_dn":           "cn=vault,ou=Users,dc=example,dc=com",
		"bind_pass":         "s3cret",
		"group_attr":        "CN",
		"user_attr":         "sAMAccountName",
		"request_timeout":   "30",
		"starttls":          "yes",
		"token_policies":    "ops, admins",
		"token_bound_cidrs": []any{"10.0.0.0/8", "192.168.1.10"},
		"token_ttl":         float64(3600),
	})
	require.NoError(t, err)

	assert.Equal(t, "corp-ldap", desired.MountPoint)
	assert.Equal(t, "ldaps://dc1.example.com,ldaps://dc2.example.com", desired.Values["url"])
	assert.Equal(t, "cn=vault,ou=Users,dc=example,dc=com", desired.Values["binddn"])
	assert.Equal(t, "s3cret", desired.Values["bindpass"])
	assert.Equal(t, "cn", desired.Values["groupattr"])
	assert.Equal(t, "samaccountname", desired.Values["userattr"])
	assert.Equal(t, 30, desired.Values["request_timeout"])
	assert.Equal(t, true, desired.Values["starttls"])
	assert.Equal(t, []string{"ops", "admins"}, desired.Values["token_policies"])
	assert.Equal(t, []string{"10.0.0.0/8", "192.168.1.10"}, desired.Values["token_bound_cidrs"])
	assert.Equal(t, 3600, desired.Values["token_ttl"])
}

func TestCatalog_ResolveSecretPresence(t *testing.T) {
	c := newCatalog(t)

	desired, err := c.Resolve(map[string]any{"bindpass": ""})
	require.NoError(t, err)
	v, ok := desired.Values["bindpass"]
	assert.True(t, ok, "explicit empty secret is kept")
	assert.Equal(t, "", v)

	desired, err = c.Resolve(map[string]any{"bindpass": nil})
	require.NoError(t, err)
	assert.NotContains(t, desired.Values, "bindpass")
}

func TestCatalog_ResolveOptionalField(t *testing.T) {
	c := newCatalog(t)

	desired, err := c.Resolve(map[string]any{"use_pre111_group_cn_behavior": "false"})
	require.NoError(t, err)
	assert.Equal(t, false, desired.Values["use_pre111_group_cn_behavior"])
}

func TestCatalog_ResolveTLSRange(t *testing.T) {
	c := newCatalog(t)

	desired, err := c.Resolve(map[string]any{"tls_min_version": "tls12", "tls_max_version": "tls13"})
	require.NoError(t, err)
	assert.Equal(t, "tls12", desired.Values["tls_min_version"])
	assert.Equal(t, "tls13", desired.Values["tls_max_version"])

	_, err = c.Resolve(map[string]any{"tls_min_version": "tls11", "tls_max_version": "tls11"})
	require.NoError(t, err)
}

func TestCatalog_ResolveErrors(t *testing.T) {
	c := newCatalog(t)

	tests := []struct {
		name  string
		input map[string]any
		msg   string
	}{
		{"unknown option", map[string]any{"ldap_uri": "ldap://x"}, "unsupported option(s): ldap_uri"},
		{"alias conflict", map[string]any{"binddn": "cn=a", "bind_dn": "cn=b"}, "supplied more than once"},
		{"bad bool", map[string]any{"starttls": "sometimes"}, `invalid value for option "starttls"`},
		{"bad int", map[string]any{"request_timeout": "soon"}, `invalid value for option "request_timeout"`},
		{"negative int", map[string]any{"token_ttl": -1}, `"min" validation`},
		{"bad token type", map[string]any{"token_type": "forever"}, `"oneof" validation`},
		{"bad tls version", map[string]any{"tls_min_version": "ssl3"}, `invalid value for option "tls_min_version"`},
		{"tls max below min", map[string]any{"tls_min_version": "tls13", "tls_max_version": "tls12"}, `"tls_max_version" (tls12) is lower than "tls_min_version" (tls13)`},
		{"tls min above default max", map[string]any{"tls_min_version": "tls13"}, `is lower than "tls_min_version"`},
		{"bad url scheme", map[string]any{"ldap_url": "http://dc1"}, `"ldapurls" validation`},
		{"bad cidr", map[string]any{"token_bound_cidrs": []string{"not-a-cidr"}}, `invalid value for option "token_bound_cidrs"`},
		{"empty mount", map[string]any{"mount_point": "/"}, `"mount_point" must not be empty`},
		{"list for string", map[string]any{"userdn": []any{"a"}}, `invalid value for option "userdn"`},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := c.Resolve(tc.input)
			require.Error(t, err)
			assert.Equal(t, errors.CodeInvalidOption, errors.GetCode(err))
			assert.Contains(t, err.Error(), tc.msg)
		})
	}
}

func TestNewCatalog_RejectsBadTables(t *testing.T) {
	tests := []struct {
		name   string
		fields []domain.FieldSpec
	}{
		{"duplicate alias", []domain.FieldSpec{
			{Name: "binddn", Type: domain.TypeString, Default: "", Aliases: []string{"dn"}},
			{Name: "userdn", Type: domain.TypeString, Default: "", Aliases: []string{"dn"}},
		}},
		{"duplicate remote key", []domain.FieldSpec{
			{Name: "ldap_url", Key: "url", Type: domain.TypeString, Default: ""},
			{Name: "url", Type: domain.TypeString, Default: ""},
		}},
		{"bad type", []domain.FieldSpec{{Name: "x", Type: "float", Default: 1.0}}},
		{"missing default", []domain.FieldSpec{{Name: "x", Type: domain.TypeBool}}},
		{"default fails rule", []domain.FieldSpec{{Name: "x", Type: domain.TypeInt, Default: -5, Validate: "min=0"}}},
		{"upper case name", []domain.FieldSpec{{Name: "BindDN", Type: domain.TypeString, Default: ""}}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewCatalog(tc.fields)
			require.Error(t, err)
			assert.Equal(t, errors.CodeInternal, errors.GetCode(err))
		})
	}
}

func TestCatalog_Lookup(t *testing.T) {
	c := newCatalog(t)

	f, ok := c.Lookup("Group_DN")
	require.True(t, ok)
	assert.Equal(t, "groupdn", f.Name)

	f, ok = c.Lookup("ldap_url")
	require.True(t, ok)
	assert.Equal(t, "url", f.RemoteKey())

	_, ok = c.Lookup("nope")
	assert.False(t, ok)
}
