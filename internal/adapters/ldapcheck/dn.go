package ldapcheck

import (
	"context"
	"fmt"

	"github.com/go-ldap/ldap/v3"

	"github.com/ceesios/vault-auth-ldap/internal/core/domain"
	"github.com/ceesios/vault-auth-ldap/internal/core/ports"
	"github.com/ceesios/vault-auth-ldap/internal/errors"
)

const DNCheckName = "dn-syntax"

// DNValidator checks that the configured distinguished names parse. Empty
// values are allowed; they mean "not set".
type DNValidator struct {
	keys []string
}

var _ ports.Preflight = (*DNValidator)(nil)

func NewDNValidator(keys ...string) *DNValidator {
	return &DNValidator{keys: keys}
}

func (v *DNValidator) Name() string {
	return DNCheckName
}

func (v *DNValidator) Check(_ context.Context, desired domain.DesiredState) error {
	for _, key := range v.keys {
		raw, ok := desired.Values[key]
		if !ok {
			continue
		}
		value, ok := raw.(string)
		if !ok || value == "" {
			continue
		}
		if _, err := ldap.ParseDN(value); err != nil {
			return errors.WrapUserFacing(err, errors.CodeInvalidOption,
				fmt.Sprintf("option %q is not a valid distinguished name: %v", key, err),
				"Use the form cn=vault,ou=Users,dc=example,dc=com.")
		}
	}
	return nil
}
