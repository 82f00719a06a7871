package settings

import (
	"context"
	"os"
	"strings"
)

// EnvPrefix is the prefix of every variable the CLI reads.
const EnvPrefix = "NEST_COMBO_"

// EnvOptions configures environment variable source behavior.
type EnvOptions struct {
	Prefix string // Prefix for environment variables (e.g., "NEST_COMBO_")
}

// EnvSource loads key/value pairs from environment variables.
type EnvSource struct {
	prefix  string
	environ func() []string
}

// NewEnvSource creates a new environment variable source.
func NewEnvSource(opts EnvOptions) *EnvSource {
	return &EnvSource{
		prefix:  opts.Prefix,
		environ: os.Environ,
	}
}

// Load reads the variables carrying the source's prefix, with the prefix removed.
func (s *EnvSource) Load(ctx context.Context) (map[string]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	config := make(map[string]string)
	for _, env := range s.environ() {
		key, value, ok := strings.Cut(env, "=")
		if !ok {
			continue
		}

		if s.prefix != "" {
			if !strings.HasPrefix(key, s.prefix) {
				continue
			}
			key = strings.TrimPrefix(key, s.prefix)
		}

		config[key] = value
	}

	return config, nil
}
