package app

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/viper"

	"github.com/ceesios/vault-auth-ldap/internal/adapters/ldapcheck"
	"github.com/ceesios/vault-auth-ldap/internal/adapters/source"
	sourceconfig "github.com/ceesios/vault-auth-ldap/internal/adapters/source/config"
	"github.com/ceesios/vault-auth-ldap/internal/adapters/source/hclfile"
	"github.com/ceesios/vault-auth-ldap/internal/adapters/vault"
	"github.com/ceesios/vault-auth-ldap/internal/config"
	"github.com/ceesios/vault-auth-ldap/internal/core/ports"
	"github.com/ceesios/vault-auth-ldap/internal/core/service"
	"github.com/ceesios/vault-auth-ldap/internal/errors"
	"github.com/ceesios/vault-auth-ldap/internal/log"
	"github.com/ceesios/vault-auth-ldap/internal/reporting"
	"github.com/ceesios/vault-auth-ldap/internal/reporting/json"
	"github.com/ceesios/vault-auth-ldap/internal/reporting/text"
	"github.com/ceesios/vault-auth-ldap/internal/resources/ldapauth"
)

// SetOverridesKey is the viper key holding the repeated --set flags.
const SetOverridesKey = "set"

// BuildApplicationFromViper wires the configuration held by v into a ready
// to run application.
func BuildApplicationFromViper(ctx context.Context, v *viper.Viper) (*Application, error) {
	cfg, err := config.DefaultConfig()
	if err != nil {
		return nil, err
	}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, errors.Wrap(err, errors.CodeConfigParseError, "failed to unmarshal configuration")
	}

	logger, err := log.NewLogger(cfg.Log())
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: Failed to initialize logger: %v\n", err)
		return nil, err
	}
	logger.Debugf(ctx, "Logger initialized (Level: %s, Format: %s)", cfg.Settings.LogLevel, cfg.Settings.LogFormat)
	if v.ConfigFileUsed() != "" {
		logger.Debugf(ctx, "Using configuration file: %s", v.ConfigFileUsed())
	} else {
		logger.Debugf(ctx, "No configuration file found, using defaults/env/flags.")
	}

	if err := cfg.Validate(ctx); err != nil {
		logger.Errorf(ctx, err, "Configuration validation failed")
		return nil, err
	}

	overrides, err := parseSetOverrides(v.GetStringSlice(SetOverridesKey))
	if err != nil {
		return nil, err
	}
	if len(overrides) > 0 {
		logger.Debugf(ctx, "Applying %d option override(s) from the command line", len(overrides))
	}

	return buildApplication(ctx, cfg, overrides, logger)
}

func buildApplication(ctx context.Context, cfg *config.Config, overrides map[string]any, logger ports.Logger) (*Application, error) {
	catalog, err := ldapauth.LDAPCatalog()
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeInternal, "invalid LDAP option table")
	}
	secretKeys := reporting.SecretKeys(catalog.Fields())

	registry := service.NewComponentRegistry()
	if err := registerSources(registry, cfg, logger); err != nil {
		return nil, err
	}
	if err := registerReporters(registry, cfg, secretKeys, logger); err != nil {
		return nil, err
	}

	desiredSource, err := registry.GetSource(cfg.Source.Type)
	if err != nil {
		return nil, err
	}
	if len(overrides) > 0 {
		desiredSource = source.NewOverlay(desiredSource, overrides, func(key string) (string, bool) {
			f, ok := catalog.Lookup(key)
			return f.Name, ok
		})
	}
	logger.Infof(ctx, "Using %s desired-state source", desiredSource.Type())

	reporter, err := registry.GetReporter(cfg.Settings.ReporterType)
	if err != nil {
		return nil, err
	}

	client, err := vault.NewClient(vault.Options{
		Address:       cfg.Vault.Address,
		Token:         cfg.Vault.Token,
		Namespace:     cfg.Vault.Namespace,
		CACert:        cfg.Vault.CACert,
		TLSSkipVerify: cfg.Vault.TLSSkipVerify,
		Timeout:       cfg.Vault.Timeout,
		RateLimitRPS:  cfg.Vault.RateLimitRPS,
	}, logger)
	if err != nil {
		return nil, err
	}

	preflights := []ports.Preflight{
		ldapcheck.NewDNValidator(ldapauth.KeyBindDN, ldapauth.KeyUserDN, ldapauth.KeyGroupDN),
	}
	if cfg.Settings.ProbeLDAP {
		preflights = append(preflights, ldapcheck.NewProber(logger))
		logger.Infof(ctx, "LDAP connectivity probe enabled")
	}

	engine, err := service.NewReconcileEngine(
		desiredSource, catalog, preflights, client, reporter,
		logger.WithFields(map[string]any{"component": "engine"}),
		!cfg.Settings.CheckMode,
	)
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeInternal, "failed to initialize reconcile engine")
	}

	logger.Debugf(ctx, "Application bootstrap complete")
	return NewApplication(engine, logger), nil
}

func registerSources(registry *service.ComponentRegistry, cfg *config.Config, logger ports.Logger) error {
	if err := registry.RegisterSource(sourceconfig.NewSource(cfg.LDAP)); err != nil {
		return err
	}
	return registry.RegisterSource(hclfile.NewSource(cfg.Source.HCL(), logger))
}

func registerReporters(registry *service.ComponentRegistry, cfg *config.Config, secretKeys map[string]bool, logger ports.Logger) error {
	reportLog := logger.WithFields(map[string]any{"component": "reporter"})

	textReporter, err := text.NewReporter(cfg.Settings.Reporter.Text, secretKeys, reportLog)
	if err != nil {
		return errors.Wrap(err, errors.CodeInternal, "failed to initialize text reporter")
	}
	if err := registry.RegisterReporter(textReporter); err != nil {
		return err
	}

	jsonReporter, err := json.NewReporter(cfg.Settings.Reporter.JSON, secretKeys, reportLog)
	if err != nil {
		return errors.Wrap(err, errors.CodeInternal, "failed to initialize JSON reporter")
	}
	return registry.RegisterReporter(jsonReporter)
}
