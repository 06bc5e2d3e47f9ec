package service

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/ceesios/vault-auth-ldap/internal/adapters/vault"
	"github.com/ceesios/vault-auth-ldap/internal/core/domain"
	"github.com/ceesios/vault-auth-ldap/internal/core/ports"
	"github.com/ceesios/vault-auth-ldap/internal/core/ports/mocks"
	"github.com/ceesios/vault-auth-ldap/internal/errors"
	"github.com/ceesios/vault-auth-ldap/internal/log"
	"github.com/ceesios/vault-auth-ldap/internal/resources/ldapauth"
)

func testLogger(t *testing.T) ports.Logger {
	t.Helper()
	logger, err := log.NewLoggerWithWriter(log.Config{}, io.Discard)
	require.NoError(t, err)
	return logger
}

func resolve(t *testing.T, input map[string]any) domain.DesiredState {
	t.Helper()
	catalog, err := ldapauth.LDAPCatalog()
	require.NoError(t, err)
	desired, err := catalog.Resolve(input)
	require.NoError(t, err)
	return desired
}

func newTestReconciler(t *testing.T) *Reconciler {
	t.Helper()
	return NewReconciler(ldapauth.Fields(), testLogger(t))
}

// remoteView renders desired values the way Vault's JSON API returns them:
// numbers as json.Number, lists as []interface{}, no bindpass.
func remoteView(values map[string]any) domain.CurrentState {
	out := domain.CurrentState{}
	for k, v := range values {
		if k == ldapauth.KeyBindPass {
			continue
		}
		switch tv := v.(type) {
		case int:
			out[k] = json.Number(fmt.Sprint(tv))
		case []string:
			list := make([]interface{}, len(tv))
			for i, s := range tv {
				list[i] = s
			}
			out[k] = list
		default:
			out[k] = v
		}
	}
	return out
}

func newClient(t *testing.T) *mocks.ConfigClient {
	client := mocks.NewConfigClient(t)
	client.On("Type").Return("mock").Maybe()
	return client
}

func TestReconcile_NoChangeWhenEqual(t *testing.T) {
	ctx := context.Background()
	desired := resolve(t, map[string]any{
		"ldap_url":       "ldaps://dc.example.com",
		"bindpass":       "s3cret",
		"token_policies": []string{"ops", "dev"},
	})
	current := remoteView(desired.Values)

	client := newClient(t)
	client.On("ReadConfig", ctx, "ldap").Return(current, nil).Once()

	result, err := newTestReconciler(t).Reconcile(ctx, desired, client, true)
	require.NoError(t, err)

	assert.False(t, result.Changed)
	assert.False(t, result.Written)
	assert.Empty(t, result.Differences)
	assert.Equal(t, current, result.Before)
	client.AssertNotCalled(t, "WriteConfig", mock.Anything, mock.Anything, mock.Anything)
}

func TestReconcile_WritesFullDesiredStateOnce(t *testing.T) {
	ctx := context.Background()
	desired := resolve(t, map[string]any{
		"ldap_url": "ldaps://dc.example.com",
		"bindpass": "s3cret",
	})
	current := remoteView(desired.Values)
	current["url"] = "ldap://old.example.com"
	current["request_timeout"] = json.Number("30")

	client := newClient(t)
	client.On("ReadConfig", ctx, "ldap").Return(current, nil).Once()
	client.On("WriteConfig", ctx, "ldap", desired.Values).Return(nil).Once()

	result, err := newTestReconciler(t).Reconcile(ctx, desired, client, true)
	require.NoError(t, err)

	assert.True(t, result.Changed)
	assert.True(t, result.Written)
	require.Len(t, result.Differences, 2)
	assert.Equal(t, "request_timeout", result.Differences[0].AttributeName)
	assert.Equal(t, "url", result.Differences[1].AttributeName)
	assert.Equal(t, "s3cret", result.After["bindpass"])
	client.AssertNumberOfCalls(t, "WriteConfig", 1)
}

func TestReconcile_CheckModeNeverWrites(t *testing.T) {
	ctx := context.Background()
	desired := resolve(t, map[string]any{"ldap_url": "ldaps://dc.example.com"})
	current := remoteView(desired.Values)
	current["url"] = "ldap://old.example.com"

	client := newClient(t)
	client.On("ReadConfig", ctx, "ldap").Return(current, nil).Once()

	result, err := newTestReconciler(t).Reconcile(ctx, desired, client, false)
	require.NoError(t, err)

	assert.True(t, result.Changed)
	assert.False(t, result.Written)
	assert.True(t, result.CheckMode)
	client.AssertNotCalled(t, "WriteConfig", mock.Anything, mock.Anything, mock.Anything)
}

func TestReconcile_SecretIsNotCompared(t *testing.T) {
	ctx := context.Background()
	desired := resolve(t, map[string]any{"bindpass": "new-password"})
	current := remoteView(desired.Values)
	current["bindpass"] = "old-password"

	client := newClient(t)
	client.On("ReadConfig", ctx, "ldap").Return(current, nil).Once()

	result, err := newTestReconciler(t).Reconcile(ctx, desired, client, true)
	require.NoError(t, err)
	assert.False(t, result.Changed)
}

func TestReconcile_LowercasedAttributesMatch(t *testing.T) {
	ctx := context.Background()
	desired := resolve(t, map[string]any{"groupattr": "CN"})
	assert.Equal(t, "cn", desired.Values["groupattr"])

	client := newClient(t)
	client.On("ReadConfig", ctx, "ldap").Return(remoteView(desired.Values), nil).Once()

	result, err := newTestReconciler(t).Reconcile(ctx, desired, client, true)
	require.NoError(t, err)
	assert.False(t, result.Changed)
}

func TestReconcile_PoliciesCompareAsSet(t *testing.T) {
	ctx := context.Background()
	desired := resolve(t, map[string]any{"token_policies": "ops,dev"})
	current := remoteView(desired.Values)
	current["token_policies"] = []interface{}{"dev", "ops"}

	client := newClient(t)
	client.On("ReadConfig", ctx, "ldap").Return(current, nil).Once()

	result, err := newTestReconciler(t).Reconcile(ctx, desired, client, true)
	require.NoError(t, err)
	assert.False(t, result.Changed)
}

func TestReconcile_MissingRemoteKeyIsSchemaMismatch(t *testing.T) {
	ctx := context.Background()
	desired := resolve(t, map[string]any{})
	current := remoteView(desired.Values)
	delete(current, "use_token_groups")
	current["url"] = "ldap://old.example.com"

	client := newClient(t)
	client.On("ReadConfig", ctx, "ldap").Return(current, nil).Once()

	_, err := newTestReconciler(t).Reconcile(ctx, desired, client, true)
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.CodeSchemaMismatch))
	assert.Contains(t, errors.Message(err), "use_token_groups")
	client.AssertNotCalled(t, "WriteConfig", mock.Anything, mock.Anything, mock.Anything)
}

func TestReconcile_NotConfiguredTreatedAsEmpty(t *testing.T) {
	ctx := context.Background()
	desired := resolve(t, map[string]any{"mount_point": "corp"})

	client := newClient(t)
	client.On("ReadConfig", ctx, "corp").
		Return(nil, errors.New(errors.CodeNotConfigured, "nothing stored at auth/corp/config")).Once()
	client.On("WriteConfig", ctx, "corp", desired.Values).Return(nil).Once()

	result, err := newTestReconciler(t).Reconcile(ctx, desired, client, true)
	require.NoError(t, err)

	assert.True(t, result.Changed)
	assert.True(t, result.Written)
	assert.Empty(t, result.Before)
	assert.Len(t, result.Differences, len(desired.Values))
	assert.Equal(t, "Not configured", result.Differences[0].Details)
}

func TestReconcile_ReadErrorIsWrapped(t *testing.T) {
	ctx := context.Background()
	desired := resolve(t, map[string]any{})

	client := newClient(t)
	client.On("ReadConfig", ctx, "ldap").Return(nil, fmt.Errorf("connection refused")).Once()

	_, err := newTestReconciler(t).Reconcile(ctx, desired, client, true)
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.CodeRemoteReadError))
	assert.Contains(t, err.Error(), "connection refused")
}

func TestReconcile_WriteErrorIsWrapped(t *testing.T) {
	ctx := context.Background()
	desired := resolve(t, map[string]any{"ldap_url": "ldaps://dc.example.com"})
	current := remoteView(desired.Values)
	current["url"] = "ldap://old.example.com"

	client := newClient(t)
	client.On("ReadConfig", ctx, "ldap").Return(current, nil).Once()
	client.On("WriteConfig", ctx, "ldap", desired.Values).Return(fmt.Errorf("permission denied")).Once()

	result, err := newTestReconciler(t).Reconcile(ctx, desired, client, true)
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.CodeRemoteWriteError))
	assert.False(t, result.Written)
	client.AssertNumberOfCalls(t, "WriteConfig", 1)
}

func TestReconcile_ClientErrorCodesBecomeRemoteCodes(t *testing.T) {
	ctx := context.Background()
	desired := resolve(t, map[string]any{"ldap_url": "ldaps://dc.example.com"})
	current := remoteView(desired.Values)
	current["url"] = "ldap://old.example.com"

	timeout := errors.NewUserFacing(errors.CodeInternal, "timed out during write", "Increase vault.timeout.")

	client := newClient(t)
	client.On("ReadConfig", ctx, "ldap").Return(current, nil).Once()
	client.On("WriteConfig", ctx, "ldap", desired.Values).Return(timeout).Once()

	_, err := newTestReconciler(t).Reconcile(ctx, desired, client, true)
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.CodeRemoteWriteError))

	msg, suggestion, userFacing := errors.GetUserFacingMessage(err)
	assert.True(t, userFacing)
	assert.Equal(t, "timed out during write", msg)
	assert.Equal(t, "Increase vault.timeout.", suggestion)
}

func TestReconcile_VaultWriteTimeoutIsRemoteWriteError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet {
			w.Header().Set("Content-Type", "application/json")
			_, _ = io.WriteString(w, `{"data":{"url":"ldap://old.example.com"}}`)
			return
		}
		select {
		case <-time.After(500 * time.Millisecond):
		case <-r.Context().Done():
		}
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	client, err := vault.NewClient(vault.Options{
		Address: srv.URL,
		Token:   "s.test",
		Timeout: 100 * time.Millisecond,
	}, testLogger(t))
	require.NoError(t, err)

	desired := domain.DesiredState{MountPoint: "ldap", Values: map[string]any{"url": "ldaps://dc.example.com"}}

	_, err = newTestReconciler(t).Reconcile(context.Background(), desired, client, true)
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.CodeRemoteWriteError), "got %s", errors.GetCode(err))
}

func TestReconcile_NilClient(t *testing.T) {
	_, err := newTestReconciler(t).Reconcile(context.Background(), resolve(t, map[string]any{}), nil, true)
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.CodeInternal))
}
