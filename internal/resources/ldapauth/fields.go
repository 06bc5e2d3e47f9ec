package ldapauth

import "github.com/ceesios/vault-auth-ldap/internal/core/domain"

const (
	DefaultMountPoint  = "ldap"
	DefaultUserFilter  = "({{.UserAttr}}={{.Username}})"
	DefaultGroupFilter = "(|(memberUid={{.Username}})(member={{.UserDN}})(uniqueMember={{.UserDN}}))"

	OptionMountPoint = "mount_point"
	OptionLDAPURL    = "ldap_url"
	OptionBindPass   = "bindpass"

	KeyURL         = "url"
	KeyBindDN      = "binddn"
	KeyBindPass    = "bindpass"
	KeyUserDN      = "userdn"
	KeyGroupDN     = "groupdn"
	KeyStartTLS    = "starttls"
	KeyInsecureTLS = "insecure_tls"
	KeyCertificate = "certificate"
	KeyTLSMin      = "tls_min_version"
	KeyTLSMax      = "tls_max_version"
	KeyTimeout     = "request_timeout"
)

const tlsVersions = "oneof=tls10 tls11 tls12 tls13"

// Fields is the option table for the LDAP auth method's config endpoint.
func Fields() []domain.FieldSpec {
	return []domain.FieldSpec{
		{Name: OptionMountPoint, Type: domain.TypeString, Default: DefaultMountPoint, Local: true, Validate: "required"},
		{Name: OptionLDAPURL, Key: KeyURL, Type: domain.TypeString, Default: "ldap://127.0.0.1", Validate: "required,ldapurls"},
		{Name: "anonymous_group_search", Type: domain.TypeBool, Default: false},
		{Name: KeyTimeout, Type: domain.TypeInt, Default: 90, Validate: "min=0"},
		{Name: "token_bound_cidrs", Type: domain.TypeList, Default: []string{}, Validate: "dive,cidr|ip"},
		{Name: "token_explicit_max_ttl", Type: domain.TypeInt, Default: 0, Validate: "min=0"},
		{Name: "token_no_default_policy", Type: domain.TypeBool, Default: false},
		{Name: "token_num_uses", Type: domain.TypeInt, Default: 0, Validate: "min=0"},
		{Name: "token_period", Type: domain.TypeInt, Default: 0, Validate: "min=0"},
		{Name: "token_policies", Type: domain.TypeList, Default: []string{}, Unordered: true, Validate: "dive,required"},
		{Name: "token_type", Type: domain.TypeString, Default: "default", Validate: "oneof=default service batch default-service default-batch"},
		{Name: "userfilter", Type: domain.TypeString, Default: DefaultUserFilter},
		{Name: "username_as_alias", Type: domain.TypeBool, Default: false},
		{Name: "case_sensitive_names", Type: domain.TypeBool, Default: false},
		{Name: KeyStartTLS, Type: domain.TypeBool, Default: false},
		{Name: KeyTLSMin, Type: domain.TypeString, Default: "tls12", Validate: tlsVersions},
		{Name: KeyTLSMax, Type: domain.TypeString, Default: "tls12", Validate: tlsVersions},
		{Name: KeyInsecureTLS, Type: domain.TypeBool, Default: false},
		{Name: KeyCertificate, Type: domain.TypeString, Default: ""},
		{Name: KeyBindDN, Type: domain.TypeString, Default: "", Aliases: []string{"bind_dn"}},
		{Name: KeyBindPass, Type: domain.TypeString, Aliases: []string{"bind_pass"}, Secret: true},
		{Name: KeyUserDN, Type: domain.TypeString, Default: "", Aliases: []string{"user_dn"}},
		{Name: "userattr", Type: domain.TypeString, Default: "cn", Aliases: []string{"user_attr"}, Lowercase: true},
		{Name: "discoverdn", Type: domain.TypeBool, Default: false, Aliases: []string{"discover_dn"}},
		{Name: "deny_null_bind", Type: domain.TypeBool, Default: true},
		{Name: "upndomain", Type: domain.TypeString, Default: "", Aliases: []string{"upn_domain"}},
		{Name: "groupfilter", Type: domain.TypeString, Default: DefaultGroupFilter, Aliases: []string{"group_filter"}},
		{Name: "groupattr", Type: domain.TypeString, Default: "cn", Aliases: []string{"group_attr"}, Lowercase: true},
		{Name: KeyGroupDN, Type: domain.TypeString, Default: "", Aliases: []string{"group_dn"}},
		{Name: "token_ttl", Type: domain.TypeInt, Default: 0, Validate: "min=0"},
		{Name: "token_max_ttl", Type: domain.TypeInt, Default: 0, Validate: "min=0"},
		{Name: "use_token_groups", Type: domain.TypeBool, Default: false},
		{Name: "use_pre111_group_cn_behavior", Type: domain.TypeBool, Optional: true},
	}
}
