// Package settings binds the CLI's environment settings into a typed struct.
//
// # Overview
//
// Settings are read from environment variables prefixed with NEST_COMBO_,
// bound onto struct fields through `env` and `default` tags, and checked
// with go-playground/validator `validate` tags.
//
// # Usage
//
//	cfg, err := settings.Load(ctx)
//	if err != nil {
//		return err
//	}
//	logger := logx.New(logx.WithLevel(cfg.Level()))
//
// # Variables
//
//	NEST_COMBO_NEST_BIN         nest executable, auto-detected when empty
//	NEST_COMBO_LOCAL_NEST_BIN   fallback nest executable (node_modules/.bin/nest)
//	NEST_COMBO_EDITOR           editor opened in the new project (code)
//	NEST_COMBO_PACKAGE_MANAGER  package manager for -new projects (npm)
//	NEST_COMBO_LOG_LEVEL        debug, info, warn or error (info)
//	NEST_COMBO_LOG_COLOR        colorize log levels (true)
package settings
