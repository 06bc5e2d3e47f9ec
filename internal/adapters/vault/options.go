package vault

import "time"

const (
	defaultRateLimitRPS = 20
	minRateLimitRPS     = 1
	maxRateLimitRPS     = 100
)

// Options configures the Vault connection. Empty fields fall back to the
// standard VAULT_* environment variables read by the API client.
type Options struct {
	Address       string
	Token         string
	Namespace     string
	CACert        string
	TLSSkipVerify bool
	Timeout       time.Duration
	RateLimitRPS  int
}
