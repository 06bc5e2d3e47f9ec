package ldapauth

import (
	stderrs "errors"
	"fmt"
	"net/url"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/ceesios/vault-auth-ldap/internal/core/domain"
	"github.com/ceesios/vault-auth-ldap/internal/errors"
	"github.com/ceesios/vault-auth-ldap/pkg/convert"
)

// Catalog resolves raw user input against a validated field table.
type Catalog struct {
	fields   []domain.FieldSpec
	index    map[string]int // option name or alias -> field position
	validate *validator.Validate
}

// NewCatalog validates the table once: names and aliases must be unique,
// every default must coerce to its declared type and pass its own rule.
func NewCatalog(fields []domain.FieldSpec) (*Catalog, error) {
	v := validator.New(validator.WithRequiredStructEnabled())
	if err := v.RegisterValidation("ldapurls", validateLDAPURLs); err != nil {
		return nil, errors.Wrap(err, errors.CodeInternal, "registering ldapurls validation")
	}

	c := &Catalog{
		fields:   fields,
		index:    make(map[string]int, len(fields)*2),
		validate: v,
	}

	remoteKeys := make(map[string]string, len(fields))
	for i, f := range fields {
		if err := v.Struct(f); err != nil {
			return nil, errors.Wrap(err, errors.CodeInternal, fmt.Sprintf("invalid field spec %q", f.Name))
		}
		for _, name := range append([]string{f.Name}, f.Aliases...) {
			if prev, exists := c.index[name]; exists {
				return nil, errors.New(errors.CodeInternal,
					fmt.Sprintf("option %q declared by both %q and %q", name, fields[prev].Name, f.Name))
			}
			c.index[name] = i
		}
		if !f.Local {
			if other, exists := remoteKeys[f.RemoteKey()]; exists {
				return nil, errors.New(errors.CodeInternal,
					fmt.Sprintf("remote key %q declared by both %q and %q", f.RemoteKey(), other, f.Name))
			}
			remoteKeys[f.RemoteKey()] = f.Name
		}
		if f.Default == nil {
			if !f.Secret && !f.Optional {
				return nil, errors.New(errors.CodeInternal, fmt.Sprintf("field %q has no default", f.Name))
			}
			continue
		}
		if _, err := c.coerce(f, f.Default); err != nil {
			return nil, errors.Wrap(err, errors.CodeInternal, fmt.Sprintf("default of field %q is invalid", f.Name))
		}
	}
	return c, nil
}

// LDAPCatalog returns the catalog for Fields. The table is static, so an
// error here is a programming mistake.
func LDAPCatalog() (*Catalog, error) {
	return NewCatalog(Fields())
}

// Fields returns the table in declaration order.
func (c *Catalog) Fields() []domain.FieldSpec {
	out := make([]domain.FieldSpec, len(c.fields))
	copy(out, c.fields)
	return out
}

// Lookup finds a field by option name or alias.
func (c *Catalog) Lookup(name string) (domain.FieldSpec, bool) {
	i, ok := c.index[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return domain.FieldSpec{}, false
	}
	return c.fields[i], true
}

// Resolve builds the desired state from raw input. Unknown options and two
// spellings of the same option are rejected; missing options take their
// default, except secret and optional ones which are left out entirely.
func (c *Catalog) Resolve(input map[string]any) (domain.DesiredState, error) {
	supplied := make(map[string]any, len(input))
	givenAs := make(map[string]string, len(input))
	var unknown []string

	for rawKey, value := range input {
		key := strings.ToLower(strings.TrimSpace(rawKey))
		i, ok := c.index[key]
		if !ok {
			unknown = append(unknown, rawKey)
			continue
		}
		name := c.fields[i].Name
		if prev, dup := givenAs[name]; dup {
			return domain.DesiredState{}, errors.NewUserFacing(errors.CodeInvalidOption,
				fmt.Sprintf("option %q supplied more than once (as %q and %q)", name, prev, rawKey),
				"Use either the option name or one of its aliases, not both.")
		}
		givenAs[name] = rawKey
		supplied[name] = value
	}

	if len(unknown) > 0 {
		sort.Strings(unknown)
		return domain.DesiredState{}, errors.NewUserFacing(errors.CodeInvalidOption,
			fmt.Sprintf("unsupported option(s): %s", strings.Join(unknown, ", ")),
			"Check the option names against the supported LDAP auth settings.")
	}

	desired := domain.DesiredState{Values: make(map[string]any, len(c.fields))}
	for _, f := range c.fields {
		raw, ok := supplied[f.Name]
		if !ok || raw == nil {
			if f.Secret || f.Optional {
				continue
			}
			raw = f.Default
		}

		value, err := c.coerce(f, raw)
		if err != nil {
			return domain.DesiredState{}, errors.WrapUserFacing(err, errors.CodeInvalidOption,
				fmt.Sprintf("invalid value for option %q: %v", f.Name, err), "")
		}

		if f.Local {
			if f.Name == OptionMountPoint {
				desired.MountPoint = strings.Trim(value.(string), "/")
			}
			continue
		}
		desired.Values[f.RemoteKey()] = value
	}

	if desired.MountPoint == "" {
		return domain.DesiredState{}, errors.NewUserFacing(errors.CodeInvalidOption,
			"option \"mount_point\" must not be empty", "")
	}
	if err := checkTLSRange(desired.Values); err != nil {
		return domain.DesiredState{}, err
	}
	return desired, nil
}

// checkTLSRange rejects a maximum TLS version below the minimum. Both values
// have already passed the tls1x oneof rule, so they order as strings.
func checkTLSRange(values map[string]any) error {
	minVersion, okMin := values[KeyTLSMin].(string)
	maxVersion, okMax := values[KeyTLSMax].(string)
	if !okMin || !okMax || maxVersion >= minVersion {
		return nil
	}
	return errors.NewUserFacing(errors.CodeInvalidOption,
		fmt.Sprintf("option %q (%s) is lower than %q (%s)", KeyTLSMax, maxVersion, KeyTLSMin, minVersion),
		"Raise tls_max_version or lower tls_min_version.")
}

func (c *Catalog) coerce(f domain.FieldSpec, raw any) (any, error) {
	var value any
	var err error

	switch f.Type {
	case domain.TypeString:
		var s string
		s, err = convert.ToString(raw)
		if f.Lowercase {
			s = strings.ToLower(s)
		}
		value = s
	case domain.TypeBool:
		value, err = convert.ToBool(raw)
	case domain.TypeInt:
		value, err = convert.ToInt(raw)
	case domain.TypeList:
		var list []string
		list, err = convert.ToSliceOfString(raw)
		if list == nil {
			list = []string{}
		}
		value = list
	default:
		err = fmt.Errorf("unsupported field type %q", f.Type)
	}
	if err != nil {
		return nil, err
	}

	if f.Validate != "" {
		if vErr := c.validate.Var(value, f.Validate); vErr != nil {
			return nil, describeValidation(vErr)
		}
	}
	return value, nil
}

func describeValidation(err error) error {
	var verrs validator.ValidationErrors
	if !stderrs.As(err, &verrs) || len(verrs) == 0 {
		return err
	}
	fe := verrs[0]
	if fe.Param() != "" {
		return fmt.Errorf("failed %q validation (%s), got %v", fe.Tag(), fe.Param(), fe.Value())
	}
	return fmt.Errorf("failed %q validation, got %v", fe.Tag(), fe.Value())
}

// validateLDAPURLs accepts a comma separated list of ldap:// or ldaps:// URLs.
func validateLDAPURLs(fl validator.FieldLevel) bool {
	for _, raw := range strings.Split(fl.Field().String(), ",") {
		u, err := url.Parse(strings.TrimSpace(raw))
		if err != nil || u.Host == "" {
			return false
		}
		if u.Scheme != "ldap" && u.Scheme != "ldaps" {
			return false
		}
	}
	return true
}
