package text

import (
	"context"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/fatih/color"

	"github.com/ceesios/vault-auth-ldap/internal/core/domain"
	"github.com/ceesios/vault-auth-ldap/internal/core/ports"
	apperrors "github.com/ceesios/vault-auth-ldap/internal/errors"
	"github.com/ceesios/vault-auth-ldap/internal/reporting"
)

const ReporterTypeText = "text"

type Config struct {
	NoColor bool `yaml:"no_color" mapstructure:"no_color"`
}

type Reporter struct {
	config Config
	secret map[string]bool
	writer io.Writer
	logger ports.Logger
}

func NewReporter(cfg Config, secretKeys map[string]bool, logger ports.Logger) (*Reporter, error) {
	if cfg.NoColor || !isTerminal(os.Stdout) {
		color.NoColor = true
	}
	return NewReporterWithWriter(cfg, secretKeys, os.Stdout, logger)
}

func NewReporterWithWriter(cfg Config, secretKeys map[string]bool, w io.Writer, logger ports.Logger) (*Reporter, error) {
	if w == nil {
		return nil, apperrors.New(apperrors.CodeInternal, "writer cannot be nil for text reporter")
	}
	return &Reporter{
		config: cfg,
		secret: secretKeys,
		writer: w,
		logger: logger,
	}, nil
}

func isTerminal(f *os.File) bool {
	stat, err := f.Stat()
	if err != nil {
		return false
	}
	return (stat.Mode() & os.ModeCharDevice) != 0
}

func (r *Reporter) Type() string {
	return ReporterTypeText
}

func (r *Reporter) Report(ctx context.Context, result domain.ReconcileResult) error {
	if ctx.Err() != nil {
		return ctx.Err()
	}

	red := color.New(color.FgRed).SprintFunc()
	yellow := color.New(color.FgYellow).SprintFunc()
	green := color.New(color.FgGreen).SprintFunc()

	tw := tabwriter.NewWriter(r.writer, 0, 8, 2, ' ', 0)
	defer tw.Flush()

	title := fmt.Sprintf("LDAP auth configuration (mount: %s)", result.MountPoint)
	fmt.Fprintln(tw, title)
	fmt.Fprintln(tw, strings.Repeat("=", len(title)))

	var status string
	switch {
	case !result.Changed:
		status = green("[OK]") + " configuration already matches"
	case result.Written:
		status = red("[CHANGED]") + " configuration written"
	default:
		status = yellow("[CHANGED]") + " check mode, nothing written"
	}
	fmt.Fprintf(tw, "Status:\t%s\n", status)

	if len(result.Differences) > 0 {
		diffs := append([]domain.AttributeDiff(nil), result.Differences...)
		sort.SliceStable(diffs, func(i, j int) bool { return diffs[i].AttributeName < diffs[j].AttributeName })

		fmt.Fprintln(tw)
		fmt.Fprintln(tw, "Parameter\tDesired\tCurrent\tDetails")
		fmt.Fprintln(tw, "---------\t-------\t-------\t-------")
		for _, diff := range diffs {
			expected, actual := diff.ExpectedValue, diff.ActualValue
			if r.secret[diff.AttributeName] {
				expected, actual = reporting.RedactedValue, reporting.RedactedValue
			}
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n",
				diff.AttributeName, formatValue(expected), formatValue(actual), diff.Details)
		}
	}

	fmt.Fprintln(tw, "\nSummary:")
	fmt.Fprintln(tw, "-------")
	fmt.Fprintf(tw, "Parameters managed:\t%d\n", len(result.After))
	fmt.Fprintf(tw, "Parameters differing:\t%d\n", len(result.Differences))
	fmt.Fprintf(tw, "Changed:\t%t\n", result.Changed)
	return nil
}

func (r *Reporter) ReportFailure(ctx context.Context, err error) error {
	magenta := color.New(color.FgMagenta).SprintFunc()

	msg, suggestion, _ := apperrors.GetUserFacingMessage(err)
	fmt.Fprintf(r.writer, "%s %s\n", magenta("[FAILED]"), msg)
	if suggestion != "" {
		fmt.Fprintf(r.writer, "Suggestion: %s\n", suggestion)
	}
	r.logger.Debugf(ctx, "Failure reported: %s", apperrors.GetCode(err))
	return nil
}

func formatValue(value any) string {
	const maxLen = 100
	if value == nil {
		return "-"
	}
	str := fmt.Sprintf("%v", value)
	if len(str) > maxLen {
		return str[:maxLen-3] + "..."
	}
	return str
}
