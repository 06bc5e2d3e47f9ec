package ports

import "context"

// Logger is the structured logger handed to every component. Formatting is
// printf style; Errorf also records the AppError code of err when it has one.
type Logger interface {
	Debugf(ctx context.Context, format string, args ...any)
	Infof(ctx context.Context, format string, args ...any)
	Warnf(ctx context.Context, format string, args ...any)
	Errorf(ctx context.Context, err error, format string, args ...any)

	// WithFields returns a child logger that adds fields such as
	// mount_point or client to every record.
	WithFields(fields map[string]any) Logger
}
