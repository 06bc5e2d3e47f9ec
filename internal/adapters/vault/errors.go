package vault

import (
	"context"
	stderrs "errors"
	"fmt"
	"net"
	"net/http"
	"strings"

	vaultapi "github.com/hashicorp/vault/api"

	"github.com/ceesios/vault-auth-ldap/internal/errors"
)

type operation string

const (
	opRead  operation = "read"
	opWrite operation = "write"
)

func (o operation) code() errors.Code {
	if o == opWrite {
		return errors.CodeRemoteWriteError
	}
	return errors.CodeRemoteReadError
}

// handleVaultError maps an API client error to an application error code.
func handleVaultError(ctx context.Context, op operation, path string, err error) error {
	if err == nil {
		return errors.New(errors.CodeInternal, fmt.Sprintf("unexpected nil error in Vault error handler for %s", path))
	}

	if isTimeout(ctx, err) {
		return errors.WrapUserFacing(err, op.code(),
			fmt.Sprintf("timed out during Vault %s of %s", op, path),
			"Increase vault.timeout or check that the Vault server is reachable.")
	}
	if stderrs.Is(err, context.Canceled) || ctx.Err() != nil {
		return errors.Wrap(err, op.code(), fmt.Sprintf("context canceled during Vault %s of %s", op, path))
	}

	var respErr *vaultapi.ResponseError
	if stderrs.As(err, &respErr) {
		detail := strings.Join(respErr.Errors, "; ")
		if detail == "" {
			detail = http.StatusText(respErr.StatusCode)
		}
		switch respErr.StatusCode {
		case http.StatusNotFound:
			if op == opRead {
				return errors.Wrap(err, errors.CodeNotConfigured, fmt.Sprintf("nothing stored at %s", path))
			}
		case http.StatusUnauthorized, http.StatusForbidden:
			return errors.WrapUserFacing(err, op.code(),
				fmt.Sprintf("Vault denied %s of %s: %s", op, path, detail),
				fmt.Sprintf("Check that the token grants %s on %s and that the auth method is enabled.", capability(op), path))
		}
		return errors.WrapUserFacing(err, op.code(),
			fmt.Sprintf("Vault %s of %s failed with status %d: %s", op, path, respErr.StatusCode, detail), "")
	}

	return errors.WrapUserFacing(err, op.code(),
		fmt.Sprintf("failed to %s %s: %v", op, path, err),
		"Check vault.address (or VAULT_ADDR) and the TLS settings.")
}

func isTimeout(ctx context.Context, err error) bool {
	if stderrs.Is(err, context.DeadlineExceeded) || stderrs.Is(ctx.Err(), context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return stderrs.As(err, &netErr) && netErr.Timeout()
}

func capability(op operation) string {
	if op == opWrite {
		return "update"
	}
	return "read"
}
