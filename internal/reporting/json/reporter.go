package json

import (
	"context"
	"fmt"
	"io"
	"os"

	jsoniter "github.com/json-iterator/go"

	"github.com/ceesios/vault-auth-ldap/internal/core/domain"
	"github.com/ceesios/vault-auth-ldap/internal/core/ports"
	apperrors "github.com/ceesios/vault-auth-ldap/internal/errors"
	"github.com/ceesios/vault-auth-ldap/internal/reporting"
)

const ReporterTypeJSON = "json"

type Config struct {
	Compact bool `yaml:"compact" mapstructure:"compact"`
}

// Reporter prints the result object consumed by automation:
// {"changed": ..., "diff": {"before": ..., "after": ...}} on success and
// {"failed": true, "msg": ...} on failure.
type Reporter struct {
	config Config
	secret map[string]bool
	writer io.Writer
	logger ports.Logger
}

func NewReporter(cfg Config, secretKeys map[string]bool, logger ports.Logger) (*Reporter, error) {
	return NewReporterWithWriter(cfg, secretKeys, os.Stdout, logger)
}

func NewReporterWithWriter(cfg Config, secretKeys map[string]bool, w io.Writer, logger ports.Logger) (*Reporter, error) {
	if w == nil {
		return nil, apperrors.New(apperrors.CodeInternal, "writer cannot be nil for JSON reporter")
	}
	return &Reporter{
		config: cfg,
		secret: secretKeys,
		writer: w,
		logger: logger,
	}, nil
}

func (r *Reporter) Type() string {
	return ReporterTypeJSON
}

type jsonReport struct {
	Changed     bool                `json:"changed"`
	Written     bool                `json:"written"`
	CheckMode   bool                `json:"check_mode"`
	MountPoint  string              `json:"mount_point"`
	Diff        jsonDiff            `json:"diff"`
	Differences []jsonAttributeDiff `json:"differences,omitempty"`
}

type jsonDiff struct {
	Before map[string]any `json:"before"`
	After  map[string]any `json:"after"`
}

type jsonAttributeDiff struct {
	AttributeName string `json:"attribute_name"`
	ExpectedValue any    `json:"expected_value"`
	ActualValue   any    `json:"actual_value"`
	Details       string `json:"details,omitempty"`
}

type jsonFailure struct {
	Failed     bool   `json:"failed"`
	Msg        string `json:"msg"`
	Code       string `json:"code,omitempty"`
	Suggestion string `json:"suggestion,omitempty"`
}

func (r *Reporter) Report(ctx context.Context, result domain.ReconcileResult) error {
	if ctx.Err() != nil {
		r.logger.Warnf(ctx, "JSON report generation cancelled.")
		return ctx.Err()
	}

	before := reporting.Redact(result.Before, r.secret)
	if before == nil {
		before = map[string]any{}
	}
	report := jsonReport{
		Changed:    result.Changed,
		Written:    result.Written,
		CheckMode:  result.CheckMode,
		MountPoint: result.MountPoint,
		Diff: jsonDiff{
			Before: before,
			After:  reporting.Redact(result.After, r.secret),
		},
	}
	for _, diff := range result.Differences {
		report.Differences = append(report.Differences, jsonAttributeDiff{
			AttributeName: diff.AttributeName,
			ExpectedValue: diff.ExpectedValue,
			ActualValue:   diff.ActualValue,
			Details:       diff.Details,
		})
	}

	return r.encode(ctx, report)
}

func (r *Reporter) ReportFailure(ctx context.Context, err error) error {
	msg, suggestion, _ := apperrors.GetUserFacingMessage(err)
	failure := jsonFailure{
		Failed:     true,
		Msg:        msg,
		Suggestion: suggestion,
	}
	if code := apperrors.GetCode(err); code != apperrors.CodeUnknown {
		failure.Code = string(code)
	}
	return r.encode(ctx, failure)
}

func (r *Reporter) encode(ctx context.Context, v any) error {
	encoder := jsoniter.ConfigCompatibleWithStandardLibrary.NewEncoder(r.writer)
	if !r.config.Compact {
		encoder.SetIndent("", "  ")
	}

	if err := encoder.Encode(v); err != nil {
		r.logger.Errorf(ctx, err, "Failed to encode JSON report")
		fmt.Fprintf(r.writer, "{\"failed\": true, \"msg\": \"failed to generate JSON report: %v\"}\n", err)
		return fmt.Errorf("failed to encode JSON report: %w", err)
	}

	r.logger.Debugf(ctx, "JSON report successfully generated.")
	return nil
}
