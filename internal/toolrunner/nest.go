package toolrunner

import (
	"context"
	"path/filepath"

	"github.com/eggybyte-technology/nest-combo/internal/errors"
	"github.com/eggybyte-technology/nest-combo/internal/settings"
)

// GlobalNest is the nest command looked up on PATH.
const GlobalNest = "nest"

// NestSource tells where the nest binary came from.
type NestSource string

const (
	NestFromSettings NestSource = "settings"
	NestFromPath     NestSource = "global"
	NestFromLocal    NestSource = "local"
)

// NestBinary is the resolved nest executable.
type NestBinary struct {
	Path   string
	Source NestSource
}

// String returns the banner line reported once per run.
func (b NestBinary) String() string {
	switch b.Source {
	case NestFromPath:
		return "Using global Nest CLI installation"
	case NestFromSettings:
		return "Using Nest CLI at " + b.Path
	default:
		return "Using local Nest CLI installation at " + b.Path
	}
}

// ResolveNestBinary picks the nest executable for this run.
//
// An explicit NestBinary setting wins. Otherwise `nest --version` is run and
// the global installation is used if it succeeds within ProbeTimeout; if it
// fails or hangs the LocalNestBinary setting is used, made absolute against the current
// directory so that it stays valid when commands run in the project root.
//
// Parameters:
//   - ctx: Context for cancellation
//   - cfg: CLI settings
//
// Returns:
//   - NestBinary: Resolved executable
//   - error: CANCELED if ctx ends during detection, INTERNAL if the local
//     path cannot be made absolute
func ResolveNestBinary(ctx context.Context, cfg settings.Settings) (NestBinary, error) {
	if cfg.NestBinary != "" {
		return NestBinary{Path: cfg.NestBinary, Source: NestFromSettings}, nil
	}

	checkCtx := ctx
	if cfg.ProbeTimeout > 0 {
		var cancel context.CancelFunc
		checkCtx, cancel = context.WithTimeout(ctx, cfg.ProbeTimeout)
		defer cancel()
	}

	_, err := NewRunner("").Run(checkCtx, GlobalNest, "--version")
	if err == nil {
		return NestBinary{Path: GlobalNest, Source: NestFromPath}, nil
	}
	if ctx.Err() != nil {
		return NestBinary{}, errors.Wrap(errors.CodeCanceled, "resolve nest", ctx.Err())
	}

	local, absErr := filepath.Abs(cfg.LocalNestBinary)
	if absErr != nil {
		return NestBinary{}, errors.Wrap(errors.CodeInternal, "resolve nest", absErr)
	}
	return NestBinary{Path: local, Source: NestFromLocal}, nil
}
