package hclfile

import (
	"context"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"

	"github.com/ceesios/vault-auth-ldap/internal/core/ports"
	"github.com/ceesios/vault-auth-ldap/internal/errors"
)

const SourceType = "hcl"

type Config struct {
	Path string `yaml:"path" mapstructure:"path"`
}

// Source reads the desired options from a file of top-level attributes:
//
//	ldap_url       = "ldaps://dc1.example.com"
//	bindpass       = env.LDAP_BIND_PASSWORD
//	token_policies = split(",", "ops,dev")
//
// Files ending in .json are parsed as HCL's JSON syntax.
type Source struct {
	path    string
	environ func() []string
	logger  ports.Logger
}

var _ ports.DesiredSource = (*Source)(nil)

func NewSource(cfg Config, logger ports.Logger) *Source {
	sourceLogger := logger.WithFields(map[string]any{
		"source": SourceType,
		"file":   cfg.Path,
	})
	return &Source{path: cfg.Path, environ: os.Environ, logger: sourceLogger}
}

func (s *Source) Type() string {
	return SourceType
}

func (s *Source) Load(ctx context.Context) (map[string]any, error) {
	if s.path == "" {
		return nil, errors.NewUserFacing(errors.CodeConfigValidation,
			"no desired-state file configured", "Set source.path when source.type is hcl.")
	}

	parser := hclparse.NewParser()
	var file *hcl.File
	var diags hcl.Diagnostics
	if strings.HasSuffix(s.path, ".json") {
		file, diags = parser.ParseJSONFile(s.path)
	} else {
		file, diags = parser.ParseHCLFile(s.path)
	}
	if diags.HasErrors() {
		if _, statErr := os.Stat(s.path); statErr != nil {
			return nil, errors.WrapUserFacing(statErr, errors.CodeSourceReadError,
				fmt.Sprintf("cannot read desired-state file %s", s.path), "")
		}
		return nil, s.diagError(diags)
	}

	attrs, diags := file.Body.JustAttributes()
	if diags.HasErrors() {
		return nil, s.diagError(diags)
	}

	evalCtx := &hcl.EvalContext{
		Variables: map[string]cty.Value{"env": s.envObject()},
		Functions: standardFunctions(),
	}

	names := make([]string, 0, len(attrs))
	for name := range attrs {
		names = append(names, name)
	}
	sort.Strings(names)

	values := make(map[string]any, len(attrs))
	for _, name := range names {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		attr := attrs[name]
		val, valDiags := attr.Expr.Value(evalCtx)
		if valDiags.HasErrors() {
			return nil, s.diagError(valDiags)
		}
		goVal, err := convertValue(val)
		if err != nil {
			return nil, errors.WrapUserFacing(err, errors.CodeSourceParseError,
				fmt.Sprintf("%s: cannot use value of %q: %v", attr.Range.String(), name, err), "")
		}
		values[name] = goVal
	}

	s.logger.Debugf(ctx, "Loaded %d options", len(values))
	return values, nil
}

func (s *Source) envObject() cty.Value {
	vars := make(map[string]cty.Value)
	for _, kv := range s.environ() {
		name, value, ok := strings.Cut(kv, "=")
		if !ok || name == "" || !hclIdentifier(name) {
			continue
		}
		vars[name] = cty.StringVal(value)
	}
	if len(vars) == 0 {
		return cty.EmptyObjectVal
	}
	return cty.ObjectVal(vars)
}

func (s *Source) diagError(diags hcl.Diagnostics) error {
	return errors.NewUserFacing(errors.CodeSourceParseError,
		fmt.Sprintf("invalid desired-state file: %s", diags.Error()),
		"Only top-level attributes are supported; see env.NAME for environment variables.")
}

func hclIdentifier(name string) bool {
	for i, r := range name {
		switch {
		case r == '_', r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
		case i > 0 && (r >= '0' && r <= '9' || r == '-'):
		default:
			return false
		}
	}
	return true
}
