package log

type Level string

const (
	LevelDebug Level = "debug"
	LevelInfo  Level = "info"
	LevelWarn  Level = "warn"
	LevelError Level = "error"
)

type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
)

type Config struct {
	Level  Level  `yaml:"level" mapstructure:"level" validate:"omitempty,oneof=debug info warn error"`
	Format Format `yaml:"format" mapstructure:"format" validate:"omitempty,oneof=text json"`
}
