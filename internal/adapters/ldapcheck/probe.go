package ldapcheck

import (
	"context"
	"crypto/tls"
	"crypto/x509"
	"fmt"
	"net"
	"net/url"
	"strings"
	"time"

	"github.com/go-ldap/ldap/v3"
	"github.com/go-viper/mapstructure/v2"

	"github.com/ceesios/vault-auth-ldap/internal/core/domain"
	"github.com/ceesios/vault-auth-ldap/internal/core/ports"
	"github.com/ceesios/vault-auth-ldap/internal/errors"
)

const ProbeCheckName = "ldap-probe"

const defaultProbeTimeout = 10 * time.Second

var tlsVersions = map[string]uint16{
	"tls10": tls.VersionTLS10,
	"tls11": tls.VersionTLS11,
	"tls12": tls.VersionTLS12,
	"tls13": tls.VersionTLS13,
}

// target is the slice of the desired configuration the probe needs.
type target struct {
	URL            string `mapstructure:"url"`
	BindDN         string `mapstructure:"binddn"`
	BindPass       string `mapstructure:"bindpass"`
	StartTLS       bool   `mapstructure:"starttls"`
	InsecureTLS    bool   `mapstructure:"insecure_tls"`
	Certificate    string `mapstructure:"certificate"`
	TLSMinVersion  string `mapstructure:"tls_min_version"`
	TLSMaxVersion  string `mapstructure:"tls_max_version"`
	RequestTimeout int    `mapstructure:"request_timeout"`
}

// Prober connects to the directory the way the auth method will, so a bad
// URL, certificate or bind account is caught before Vault is touched.
type Prober struct {
	logger ports.Logger
}

var _ ports.Preflight = (*Prober)(nil)

func NewProber(logger ports.Logger) *Prober {
	return &Prober{logger: logger.WithFields(map[string]any{"component": ProbeCheckName})}
}

func (p *Prober) Name() string {
	return ProbeCheckName
}

// Check tries each configured URL in order and succeeds on the first one
// that connects and, when credentials are set, accepts the bind.
func (p *Prober) Check(ctx context.Context, desired domain.DesiredState) error {
	t, err := decodeTarget(desired.Values)
	if err != nil {
		return errors.Wrap(err, errors.CodeInternal, "failed decoding LDAP probe settings")
	}

	var lastErr error
	for _, raw := range strings.Split(t.URL, ",") {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		u := strings.TrimSpace(raw)
		if u == "" {
			continue
		}
		if lastErr = p.probeURL(ctx, u, t); lastErr == nil {
			p.logger.Infof(ctx, "LDAP probe against %s succeeded", u)
			return nil
		}
		p.logger.Warnf(ctx, "LDAP probe against %s failed: %v", u, lastErr)
	}
	if lastErr == nil {
		return errors.NewUserFacing(errors.CodeLDAPProbeError, "no LDAP URL to probe", "Set ldap_url.")
	}
	return errors.WrapUserFacing(lastErr, errors.CodeLDAPProbeError,
		fmt.Sprintf("LDAP probe failed: %v", lastErr),
		"Check ldap_url, the TLS settings and the bind credentials, or disable settings.probe_ldap.")
}

func (p *Prober) probeURL(ctx context.Context, rawURL string, t target) error {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return fmt.Errorf("invalid URL %q: %w", rawURL, err)
	}
	tlsConfig, err := buildTLSConfig(t, parsed.Hostname())
	if err != nil {
		return err
	}

	timeout := defaultProbeTimeout
	if t.RequestTimeout > 0 {
		timeout = time.Duration(t.RequestTimeout) * time.Second
	}
	if deadline, ok := ctx.Deadline(); ok {
		if remaining := time.Until(deadline); remaining < timeout {
			timeout = remaining
		}
	}

	conn, err := ldap.DialURL(rawURL,
		ldap.DialWithTLSConfig(tlsConfig),
		ldap.DialWithDialer(&net.Dialer{Timeout: timeout}))
	if err != nil {
		return fmt.Errorf("failed to connect to %s: %w", rawURL, err)
	}
	defer conn.Close()
	conn.SetTimeout(timeout)

	if parsed.Scheme == "ldap" && t.StartTLS {
		if err := conn.StartTLS(tlsConfig); err != nil {
			return fmt.Errorf("StartTLS with %s failed: %w", rawURL, err)
		}
	}

	if t.BindDN == "" || t.BindPass == "" {
		p.logger.Debugf(ctx, "No bind credentials configured, skipping bind against %s", rawURL)
		return nil
	}
	if err := conn.Bind(t.BindDN, t.BindPass); err != nil {
		return fmt.Errorf("bind as %s failed: %w", t.BindDN, err)
	}
	return nil
}

func decodeTarget(values map[string]any) (target, error) {
	var t target
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &t,
		WeaklyTypedInput: true,
	})
	if err != nil {
		return target{}, err
	}
	if err := decoder.Decode(values); err != nil {
		return target{}, err
	}
	return t, nil
}

func buildTLSConfig(t target, serverName string) (*tls.Config, error) {
	cfg := &tls.Config{
		ServerName:         serverName,
		InsecureSkipVerify: t.InsecureTLS, //nolint:gosec // mirrors the auth method's own insecure_tls option
		MinVersion:         tls.VersionTLS12,
	}

	if t.TLSMinVersion != "" {
		v, ok := tlsVersions[t.TLSMinVersion]
		if !ok {
			return nil, fmt.Errorf("unsupported tls_min_version %q", t.TLSMinVersion)
		}
		cfg.MinVersion = v
	}
	if t.TLSMaxVersion != "" {
		v, ok := tlsVersions[t.TLSMaxVersion]
		if !ok {
			return nil, fmt.Errorf("unsupported tls_max_version %q", t.TLSMaxVersion)
		}
		cfg.MaxVersion = v
	}
	if cfg.MaxVersion != 0 && cfg.MaxVersion < cfg.MinVersion {
		return nil, fmt.Errorf("tls_max_version %q is lower than tls_min_version %q", t.TLSMaxVersion, t.TLSMinVersion)
	}

	if t.Certificate != "" {
		pool := x509.NewCertPool()
		if !pool.AppendCertsFromPEM([]byte(t.Certificate)) {
			return nil, fmt.Errorf("certificate does not contain a PEM encoded CA certificate")
		}
		cfg.RootCAs = pool
	}
	return cfg, nil
}
