package settings

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/eggybyte-technology/nest-combo/internal/errors"
	"github.com/eggybyte-technology/nest-combo/internal/logx"
)

// Settings holds the CLI settings bound from the environment.
type Settings struct {
	// NestBinary overrides nest detection when set.
	NestBinary string `env:"NEST_BIN"`
	// LocalNestBinary is used when no nest is found on PATH.
	LocalNestBinary string `env:"LOCAL_NEST_BIN" default:"node_modules/.bin/nest" validate:"required"`
	// Editor is opened in the project root after generation.
	Editor string `env:"EDITOR" default:"code" validate:"required"`
	// DefaultPackageManager applies to projects created from the command line.
	DefaultPackageManager string `env:"PACKAGE_MANAGER" default:"npm" validate:"oneof=npm yarn pnpm"`
	// LogLevel is the minimum level of diagnostic logs.
	LogLevel string `env:"LOG_LEVEL" default:"info" validate:"oneof=debug info warn error"`
	// LogColor colorizes log levels.
	LogColor bool `env:"LOG_COLOR" default:"true"`
	// ProbeTimeout bounds the `nest --version` check for a global install.
	ProbeTimeout time.Duration `env:"NEST_PROBE_TIMEOUT" default:"10s" validate:"gt=0"`
}

// Level returns the slog level for LogLevel.
func (s Settings) Level() slog.Level {
	level, err := logx.ParseLevel(s.LogLevel)
	if err != nil {
		return slog.LevelInfo
	}
	return level
}

// NewValidator creates the validator used for settings.
func NewValidator() *validator.Validate {
	return validator.New(validator.WithRequiredStructEnabled())
}

// ValidateStruct validates a struct using validator tags.
func ValidateStruct(v *validator.Validate, target any) error {
	if v == nil {
		v = validator.New()
	}

	if err := v.Struct(target); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	return nil
}

// Load reads settings from NEST_COMBO_ environment variables.
//
// Parameters:
//   - ctx: Context for cancellation
//
// Returns:
//   - Settings: Bound and validated settings
//   - error: INVALID_ARGUMENT when a variable cannot be parsed or fails validation
func Load(ctx context.Context) (Settings, error) {
	return LoadFrom(ctx, NewEnvSource(EnvOptions{Prefix: EnvPrefix}))
}

// Source provides raw key/value settings.
type Source interface {
	Load(ctx context.Context) (map[string]string, error)
}

// LoadFrom binds and validates settings from src.
func LoadFrom(ctx context.Context, src Source) (Settings, error) {
	var s Settings

	snapshot, err := src.Load(ctx)
	if err != nil {
		return s, errors.Wrap(errors.CodeInternal, "load settings", err)
	}

	if err := BindToStruct(snapshot, &s); err != nil {
		return s, errors.Wrap(errors.CodeInvalidArgument, "bind settings", err)
	}

	if err := ValidateStruct(NewValidator(), &s); err != nil {
		return s, errors.Wrap(errors.CodeInvalidArgument, "validate settings", err)
	}

	return s, nil
}
