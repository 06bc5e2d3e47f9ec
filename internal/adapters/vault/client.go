package vault

import (
	"context"
	"fmt"

	vaultapi "github.com/hashicorp/vault/api"
	"golang.org/x/time/rate"

	"github.com/ceesios/vault-auth-ldap/internal/core/domain"
	"github.com/ceesios/vault-auth-ldap/internal/core/ports"
	"github.com/ceesios/vault-auth-ldap/internal/errors"
)

const ClientType = "vault"

// Client reads and writes auth/<mount>/config through the Vault HTTP API.
type Client struct {
	api    *vaultapi.Client
	logger ports.Logger
}

var _ ports.ConfigClient = (*Client)(nil)

func NewClient(opts Options, logger ports.Logger) (*Client, error) {
	if logger == nil {
		return nil, errors.New(errors.CodeConfigValidation, "logger cannot be nil for Vault client")
	}

	cfg := vaultapi.DefaultConfig()
	if cfg.Error != nil {
		return nil, errors.WrapUserFacing(cfg.Error, errors.CodeConfigValidation,
			"failed to read Vault settings from the environment", "Check the VAULT_* environment variables.")
	}
	if opts.Address != "" {
		cfg.Address = opts.Address
	}
	if opts.Timeout > 0 {
		cfg.Timeout = opts.Timeout
	}
	// A failed write is reported, never retried.
	cfg.MaxRetries = 0
	cfg.Limiter = newLimiter(opts.RateLimitRPS, logger)

	if opts.CACert != "" || opts.TLSSkipVerify {
		if err := cfg.ConfigureTLS(&vaultapi.TLSConfig{
			CACert:   opts.CACert,
			Insecure: opts.TLSSkipVerify,
		}); err != nil {
			return nil, errors.WrapUserFacing(err, errors.CodeConfigValidation,
				"failed to configure Vault TLS", "Check vault.ca_cert points to a readable PEM file.")
		}
	}

	client, err := vaultapi.NewClient(cfg)
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeConfigValidation, "failed to create Vault client")
	}
	if opts.Token != "" {
		client.SetToken(opts.Token)
	}
	if opts.Namespace != "" {
		client.SetNamespace(opts.Namespace)
	}

	return &Client{
		api:    client,
		logger: logger.WithFields(map[string]any{"component": "vault", "address": cfg.Address}),
	}, nil
}

func (c *Client) Type() string {
	return ClientType
}

func ConfigPath(mountPoint string) string {
	return fmt.Sprintf("auth/%s/config", mountPoint)
}

// ReadConfig returns the stored configuration, or a NOT_CONFIGURED error
// when Vault has nothing at the path.
func (c *Client) ReadConfig(ctx context.Context, mountPoint string) (domain.CurrentState, error) {
	path := ConfigPath(mountPoint)
	c.logger.Debugf(ctx, "Reading %s", path)

	secret, err := c.api.Logical().ReadWithContext(ctx, path)
	if err != nil {
		return nil, handleVaultError(ctx, opRead, path, err)
	}
	if secret == nil || len(secret.Data) == 0 {
		return nil, errors.New(errors.CodeNotConfigured, fmt.Sprintf("nothing stored at %s", path))
	}

	current := make(domain.CurrentState, len(secret.Data))
	for k, v := range secret.Data {
		current[k] = v
	}
	return current, nil
}

func (c *Client) WriteConfig(ctx context.Context, mountPoint string, values map[string]any) error {
	path := ConfigPath(mountPoint)
	c.logger.Debugf(ctx, "Writing %d parameters to %s", len(values), path)

	if _, err := c.api.Logical().WriteWithContext(ctx, path, values); err != nil {
		return handleVaultError(ctx, opWrite, path, err)
	}
	return nil
}

func newLimiter(rps int, logger ports.Logger) *rate.Limiter {
	limitValue := defaultRateLimitRPS
	if rps >= minRateLimitRPS && rps <= maxRateLimitRPS {
		limitValue = rps
	} else if rps != 0 {
		logger.Warnf(context.Background(), "Invalid Vault API RPS configured (%d), using default %d RPS. Valid range: %d-%d.",
			rps, defaultRateLimitRPS, minRateLimitRPS, maxRateLimitRPS)
	}
	return rate.NewLimiter(rate.Limit(limitValue), limitValue)
}
