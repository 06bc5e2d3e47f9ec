package service

import (
	"context"
	"fmt"
	"sort"

	"github.com/ceesios/vault-auth-ldap/internal/core/domain"
	"github.com/ceesios/vault-auth-ldap/internal/core/ports"
	"github.com/ceesios/vault-auth-ldap/internal/errors"
	"github.com/ceesios/vault-auth-ldap/internal/resources/helper"
)

// Reconciler owns the read, compare, write cycle for one desired state.
type Reconciler struct {
	specs  map[string]domain.FieldSpec
	logger ports.Logger
}

func NewReconciler(fields []domain.FieldSpec, logger ports.Logger) *Reconciler {
	specs := make(map[string]domain.FieldSpec, len(fields))
	for _, f := range fields {
		if f.Local {
			continue
		}
		specs[f.RemoteKey()] = f
	}
	return &Reconciler{specs: specs, logger: logger}
}

// Reconcile reads the current configuration, compares every non-secret
// desired key against it and, when something differs and applyChanges is
// set, writes the full desired state back in a single call.
//
// A remote resource that does not exist yet counts as an empty current
// state. A key missing from a non-empty current state means the local table
// and the remote system disagree about the supported fields, and nothing is
// written.
func (r *Reconciler) Reconcile(ctx context.Context, desired domain.DesiredState, client ports.ConfigClient, applyChanges bool) (domain.ReconcileResult, error) {
	if client == nil {
		return domain.ReconcileResult{}, errors.New(errors.CodeInternal, "config client cannot be nil")
	}

	log := r.logger.WithFields(map[string]any{
		"mount_point": desired.MountPoint,
		"client":      client.Type(),
	})

	current, err := client.ReadConfig(ctx, desired.MountPoint)
	if err != nil {
		if !errors.Is(err, errors.CodeNotConfigured) {
			return domain.ReconcileResult{}, remoteError(err, errors.CodeRemoteReadError,
				fmt.Sprintf("failed reading configuration at mount %q", desired.MountPoint))
		}
		log.Infof(ctx, "No configuration stored yet, treating current state as empty")
		current = domain.CurrentState{}
	}
	if current == nil {
		current = domain.CurrentState{}
	}

	result := domain.ReconcileResult{
		MountPoint: desired.MountPoint,
		CheckMode:  !applyChanges,
		Before:     current,
		After:      desired.Values,
	}

	keys := desired.Keys()
	sort.Strings(keys)
	configured := len(current) > 0

	for _, key := range keys {
		if ctx.Err() != nil {
			return domain.ReconcileResult{}, ctx.Err()
		}

		spec, known := r.specs[key]
		if known && spec.Secret {
			continue
		}

		expected := desired.Values[key]
		actual, exists := current[key]
		if !exists {
			if configured {
				return domain.ReconcileResult{}, errors.NewUserFacing(errors.CodeSchemaMismatch,
					fmt.Sprintf("unsupported parameter: %s", key),
					"The remote system does not report this setting; check that its version supports it.")
			}
			result.Differences = append(result.Differences, domain.AttributeDiff{
				AttributeName: key,
				ExpectedValue: expected,
				Details:       "Not configured",
			})
			continue
		}

		compareFn := helper.DefaultAttributeCompare
		if known {
			compareFn = helper.ComparerFor(spec)
		}
		equal, details, cmpErr := compareFn(ctx, expected, actual, true, true)
		if cmpErr != nil {
			return domain.ReconcileResult{}, errors.WrapUserFacing(cmpErr, errors.CodeSchemaMismatch,
				fmt.Sprintf("cannot compare parameter %s: %v", key, cmpErr), "")
		}
		if !equal {
			log.Debugf(ctx, "Parameter %s differs: %s", key, details)
			result.Differences = append(result.Differences, domain.AttributeDiff{
				AttributeName: key,
				ExpectedValue: expected,
				ActualValue:   actual,
				Details:       details,
			})
		}
	}

	result.Changed = len(result.Differences) > 0
	if !result.Changed {
		log.Infof(ctx, "Configuration already matches, nothing to do")
		return result, nil
	}
	if !applyChanges {
		log.Infof(ctx, "Check mode: %d parameter(s) would change", len(result.Differences))
		return result, nil
	}

	log.Infof(ctx, "Writing configuration, %d parameter(s) differ", len(result.Differences))
	if err := client.WriteConfig(ctx, desired.MountPoint, desired.Values); err != nil {
		return domain.ReconcileResult{}, remoteError(err, errors.CodeRemoteWriteError,
			fmt.Sprintf("failed writing configuration at mount %q", desired.MountPoint))
	}
	result.Written = true
	return result, nil
}

// remoteError reports every client failure under code. A user-facing message
// and suggestion from the client are carried over.
func remoteError(err error, code errors.Code, message string) error {
	if errors.Is(err, code) {
		return err
	}
	msg, suggestion, userFacing := errors.GetUserFacingMessage(err)
	if !userFacing {
		msg = message
	}
	return errors.WrapUserFacing(err, code, msg, suggestion)
}
