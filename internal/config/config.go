package config

import (
	"context"
	stderrs "errors"
	"fmt"
	"strings"
	"time"

	"github.com/creasty/defaults"
	"github.com/go-playground/validator/v10"

	sourceconfig "github.com/ceesios/vault-auth-ldap/internal/adapters/source/config"
	"github.com/ceesios/vault-auth-ldap/internal/adapters/source/hclfile"
	"github.com/ceesios/vault-auth-ldap/internal/errors"
	"github.com/ceesios/vault-auth-ldap/internal/log"
	"github.com/ceesios/vault-auth-ldap/internal/reporting/json"
	"github.com/ceesios/vault-auth-ldap/internal/reporting/text"
)

type Config struct {
	Settings SettingsConfig `yaml:"settings" mapstructure:"settings"`
	Vault    VaultConfig    `yaml:"vault" mapstructure:"vault"`
	Source   SourceConfig   `yaml:"source" mapstructure:"source"`
	// LDAP holds the desired auth method options when source.type is config.
	LDAP map[string]any `yaml:"ldap" mapstructure:"ldap"`
}

type SettingsConfig struct {
	LogLevel     log.Level       `yaml:"log_level" mapstructure:"log_level" default:"info" validate:"oneof=debug info warn error"`
	LogFormat    log.Format      `yaml:"log_format" mapstructure:"log_format" default:"text" validate:"oneof=text json"`
	ReporterType string          `yaml:"reporter" mapstructure:"reporter" default:"text" validate:"oneof=text json"`
	CheckMode    bool            `yaml:"check_mode" mapstructure:"check_mode"`
	ProbeLDAP    bool            `yaml:"probe_ldap" mapstructure:"probe_ldap"`
	Reporter     ReporterConfigs `yaml:"reporter_config" mapstructure:"reporter_config"`
}

type ReporterConfigs struct {
	Text text.Config `yaml:"text" mapstructure:"text"`
	JSON json.Config `yaml:"json" mapstructure:"json"`
}

// VaultConfig leaves address, token and namespace empty by default so the
// standard VAULT_ADDR, VAULT_TOKEN and VAULT_NAMESPACE variables apply.
type VaultConfig struct {
	Address       string        `yaml:"address" mapstructure:"address" validate:"omitempty,url"`
	Token         string        `yaml:"token" mapstructure:"token"`
	Namespace     string        `yaml:"namespace" mapstructure:"namespace"`
	CACert        string        `yaml:"ca_cert" mapstructure:"ca_cert" validate:"omitempty,file"`
	TLSSkipVerify bool          `yaml:"tls_skip_verify" mapstructure:"tls_skip_verify"`
	Timeout       time.Duration `yaml:"timeout" mapstructure:"timeout" default:"30s" validate:"gte=0"`
	RateLimitRPS  int           `yaml:"rate_limit_rps" mapstructure:"rate_limit_rps" default:"20" validate:"min=0,max=100"`
}

type SourceConfig struct {
	Type string `yaml:"type" mapstructure:"type" default:"config" validate:"oneof=config hcl"`
	Path string `yaml:"path" mapstructure:"path" validate:"required_if=Type hcl"`
}

func (s SourceConfig) HCL() hclfile.Config {
	return hclfile.Config{Path: s.Path}
}

func DefaultConfig() (*Config, error) {
	cfg := &Config{
		Source: SourceConfig{Type: sourceconfig.SourceType},
		LDAP:   map[string]any{},
	}
	if err := defaults.Set(cfg); err != nil {
		return nil, errors.Wrap(err, errors.CodeInternal, "failed to apply configuration defaults")
	}
	return cfg, nil
}

func (c *Config) Log() log.Config {
	return log.Config{Level: c.Settings.LogLevel, Format: c.Settings.LogFormat}
}

// Validate checks the whole configuration and reports every failing field
// at once.
func (c *Config) Validate(ctx context.Context) error {
	validate := validator.New(validator.WithRequiredStructEnabled())
	err := validate.StructCtx(ctx, c)
	if err == nil {
		return nil
	}

	var validationErrors validator.ValidationErrors
	if !stderrs.As(err, &validationErrors) {
		return errors.Wrap(err, errors.CodeConfigValidation, "configuration validation failed")
	}

	var details strings.Builder
	details.WriteString("Configuration validation failed:")
	for _, fe := range validationErrors {
		details.WriteString(fmt.Sprintf("\n - Field '%s': Failed on '%s' validation (value: '%v')", fe.Namespace(), fe.Tag(), fe.Value()))
	}
	return errors.NewUserFacing(errors.CodeConfigValidation, details.String(), "Please check your configuration file or flags.")
}
