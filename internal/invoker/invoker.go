// Package invoker executes generation instructions against the nest CLI.
//
// Overview:
//   - Responsibility: Turn each instruction into one `nest generate` call
//   - Key Types: Invoker, NestInvoker, InvocationError
//   - Concurrency Model: Strictly sequential; each call blocks until nest exits
//   - Error Semantics: The first failure stops the run and is returned as
//     *InvocationError; nothing is retried
//   - Performance Notes: Dominated by the external process
//
// Usage:
//
//	inv := invoker.NewNestInvoker(nest.Path, runner)
//	err := invoker.Run(ctx, inv, instructions, logger)
package invoker

import (
	"context"
	"fmt"

	"github.com/eggybyte-technology/nest-combo/internal/errors"
	"github.com/eggybyte-technology/nest-combo/internal/expander"
	"github.com/eggybyte-technology/nest-combo/internal/log"
	"github.com/eggybyte-technology/nest-combo/internal/resources"
	"github.com/eggybyte-technology/nest-combo/internal/toolrunner"
	"github.com/eggybyte-technology/nest-combo/internal/ui"
)

// Invoker performs one generation instruction.
type Invoker interface {
	Invoke(ctx context.Context, in expander.Instruction) error
}

// InvocationError reports the instruction that failed.
type InvocationError struct {
	Action     resources.Kind
	TargetPath string
	Err        error
}

// Error reports the failed action and target. A coded cause contributes its
// text only; the code belongs to whoever wraps the InvocationError.
func (e *InvocationError) Error() string {
	return fmt.Sprintf("generating %s for %s: %s", e.Action, e.TargetPath, errors.Text(e.Err))
}

func (e *InvocationError) Unwrap() error {
	return e.Err
}

// NestInvoker runs `<binary> g <schematic> <target> <options...>` in the
// instruction's project root.
type NestInvoker struct {
	binary string
	runner *toolrunner.Runner
}

// NewNestInvoker creates an invoker for the nest executable at binary.
// The runner's streams and verbosity are reused; its working directory is
// replaced per instruction.
func NewNestInvoker(binary string, runner *toolrunner.Runner) *NestInvoker {
	if runner == nil {
		runner = toolrunner.NewRunner("")
	}
	return &NestInvoker{binary: binary, runner: runner}
}

// Binary returns the nest executable used by the invoker.
func (n *NestInvoker) Binary() string {
	return n.binary
}

// Args returns the nest arguments for in.
func Args(in expander.Instruction) ([]string, error) {
	schematic := in.Schematic()
	if schematic == "" {
		return nil, fmt.Errorf("unknown resource kind %q", in.Action)
	}
	args := make([]string, 0, 3+len(in.Options))
	args = append(args, "g", schematic, in.TargetPath)
	args = append(args, in.Options...)
	return args, nil
}

// Invoke runs nest for one instruction.
func (n *NestInvoker) Invoke(ctx context.Context, in expander.Instruction) error {
	args, err := Args(in)
	if err != nil {
		return err
	}
	_, err = n.runner.WithWorkDir(in.ProjectRoot).Nest(ctx, n.binary, args...)
	return err
}

// Run executes instructions in order and stops at the first failure.
//
// Parameters:
//   - ctx: Context for cancellation, checked before every instruction
//   - inv: Invoker performing each instruction
//   - instructions: Ordered output of expander.Expand
//   - logger: Receives one debug entry per instruction; may be nil
//
// Returns:
//   - error: *InvocationError for the first instruction that failed
func Run(ctx context.Context, inv Invoker, instructions []expander.Instruction, logger log.Logger) error {
	if logger == nil {
		logger = log.Nop()
	}

	for i, in := range instructions {
		if err := ctx.Err(); err != nil {
			return &InvocationError{Action: in.Action, TargetPath: in.TargetPath, Err: err}
		}

		ui.Info("Generating %s for %s", in.Action, in.TargetPath)
		logger.Debug("invoking generator",
			log.Str("action", string(in.Action)),
			log.Str("target", in.TargetPath),
			"options", in.Options,
			log.Int("step", i+1),
			log.Int("total", len(instructions)))

		if err := inv.Invoke(ctx, in); err != nil {
			logger.Error(err, "generator failed", log.Str("action", string(in.Action)), log.Str("target", in.TargetPath))
			return &InvocationError{Action: in.Action, TargetPath: in.TargetPath, Err: err}
		}
	}

	return nil
}
