package service

import (
	"context"

	"github.com/ceesios/vault-auth-ldap/internal/core/domain"
	"github.com/ceesios/vault-auth-ldap/internal/core/ports"
	"github.com/ceesios/vault-auth-ldap/internal/errors"
)

// ReconcileEngine runs one invocation: load input, resolve it, run the
// preflight checks, reconcile and report.
type ReconcileEngine struct {
	source       ports.DesiredSource
	resolver     ports.Resolver
	preflights   []ports.Preflight
	client       ports.ConfigClient
	reporter     ports.Reporter
	reconciler   *Reconciler
	logger       ports.Logger
	applyChanges bool
}

func NewReconcileEngine(
	source ports.DesiredSource,
	resolver ports.Resolver,
	preflights []ports.Preflight,
	client ports.ConfigClient,
	reporter ports.Reporter,
	logger ports.Logger,
	applyChanges bool,
) (*ReconcileEngine, error) {
	if source == nil {
		return nil, errors.New(errors.CodeConfigValidation, "desired state source cannot be nil")
	}
	if resolver == nil {
		return nil, errors.New(errors.CodeConfigValidation, "resolver cannot be nil")
	}
	if client == nil {
		return nil, errors.New(errors.CodeConfigValidation, "config client cannot be nil")
	}
	if reporter == nil {
		return nil, errors.New(errors.CodeConfigValidation, "reporter cannot be nil")
	}

	return &ReconcileEngine{
		source:       source,
		resolver:     resolver,
		preflights:   preflights,
		client:       client,
		reporter:     reporter,
		reconciler:   NewReconciler(resolver.Fields(), logger.WithFields(map[string]any{"component": "reconciler"})),
		logger:       logger,
		applyChanges: applyChanges,
	}, nil
}

func (e *ReconcileEngine) Run(ctx context.Context) error {
	result, err := e.run(ctx)
	if err != nil {
		e.logger.Errorf(ctx, err, "Reconciliation failed")
		if reportErr := e.reporter.ReportFailure(ctx, err); reportErr != nil {
			e.logger.Errorf(ctx, reportErr, "failed to report failure result")
		}
		return err
	}

	if err := e.reporter.Report(ctx, result); err != nil {
		return errors.Wrap(err, errors.CodeInternal, "failed to generate report")
	}
	return nil
}

func (e *ReconcileEngine) run(ctx context.Context) (domain.ReconcileResult, error) {
	e.logger.Debugf(ctx, "Loading desired options from %s source", e.source.Type())
	raw, err := e.source.Load(ctx)
	if err != nil {
		return domain.ReconcileResult{}, errors.Wrap(err, errors.CodeSourceReadError, "failed loading desired options")
	}

	desired, err := e.resolver.Resolve(raw)
	if err != nil {
		return domain.ReconcileResult{}, err
	}
	e.logger.Debugf(ctx, "Resolved %d parameters for mount %q", len(desired.Values), desired.MountPoint)

	for _, check := range e.preflights {
		if ctx.Err() != nil {
			return domain.ReconcileResult{}, ctx.Err()
		}
		e.logger.Debugf(ctx, "Running preflight check %s", check.Name())
		if err := check.Check(ctx, desired); err != nil {
			return domain.ReconcileResult{}, err
		}
	}

	return e.reconciler.Reconcile(ctx, desired, e.client, e.applyChanges)
}
