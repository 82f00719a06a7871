// Package toolrunner provides execution of external tools and commands.
//
// Overview:
//   - Responsibility: Execute nest, package manager and editor commands in a working directory
//   - Key Types: Runner, CommandResult, NestBinary
//   - Concurrency Model: Sequential command execution with context support
//   - Error Semantics: UNAVAILABLE when a binary cannot be started, ABORTED on
//     a non-zero exit, CANCELED when the context ends first
//   - Performance Notes: Output is streamed when a stream is configured and
//     always captured in memory
//
// Usage:
//
//	runner := toolrunner.NewRunner(projectRoot)
//	runner.SetOutput(os.Stdout, os.Stderr)
//	_, err := runner.Nest(ctx, "nest", "g", "mo", "core/user")
package toolrunner

import (
	"bytes"
	"context"
	"io"
	"os/exec"
	"strings"
	"time"

	"github.com/eggybyte-technology/nest-combo/internal/errors"
	"github.com/eggybyte-technology/nest-combo/internal/ui"
)

// Runner provides execution of external tools.
//
// Parameters:
//   - workDir: Working directory for commands
//   - verbose: Whether to print each command before running it
//   - stdout, stderr: Optional streams receiving command output
//   - stdin: Optional stream connected to command input
//
// Concurrency:
//   - Configure before use; not safe for concurrent reconfiguration
type Runner struct {
	workDir string
	verbose bool
	stdin   io.Reader
	stdout  io.Writer
	stderr  io.Writer
}

// CommandResult represents the result of a command execution.
//
// Parameters:
//   - ExitCode: Process exit code, -1 if the process never ran
//   - Stdout: Standard output content
//   - Stderr: Standard error content
//   - Duration: Command execution time
type CommandResult struct {
	ExitCode int
	Stdout   string
	Stderr   string
	Duration time.Duration
}

// NewRunner creates a new tool runner.
//
// Parameters:
//   - workDir: Working directory for commands, empty for the current directory
//
// Returns:
//   - *Runner: Tool runner instance that captures output
func NewRunner(workDir string) *Runner {
	return &Runner{
		workDir: workDir,
		verbose: false,
	}
}

// WorkDir returns the runner's working directory.
func (r *Runner) WorkDir() string {
	return r.workDir
}

// WithWorkDir returns a copy of the runner using dir as working directory.
func (r *Runner) WithWorkDir(dir string) *Runner {
	clone := *r
	clone.workDir = dir
	return &clone
}

// SetVerbose enables or disables printing commands before they run.
func (r *Runner) SetVerbose(enabled bool) {
	r.verbose = enabled
}

// SetOutput streams command output to stdout and stderr in addition to
// capturing it. Nil writers disable streaming for that stream.
func (r *Runner) SetOutput(stdout, stderr io.Writer) {
	r.stdout = stdout
	r.stderr = stderr
}

// SetInput connects stdin to the commands' standard input.
func (r *Runner) SetInput(stdin io.Reader) {
	r.stdin = stdin
}

// Run runs an arbitrary command.
//
// Parameters:
//   - ctx: Context for cancellation
//   - name: Command name or path
//   - args: Command arguments
//
// Returns:
//   - *CommandResult: Command execution result, also set on failure
//   - error: Coded execution error if any
func (r *Runner) Run(ctx context.Context, name string, args ...string) (*CommandResult, error) {
	return r.execute(ctx, name, args...)
}

// RunIn runs a command in dir instead of the runner's working directory.
func (r *Runner) RunIn(ctx context.Context, dir, name string, args ...string) (*CommandResult, error) {
	return r.WithWorkDir(dir).execute(ctx, name, args...)
}

// execute runs a command and returns the result.
func (r *Runner) execute(ctx context.Context, name string, args ...string) (*CommandResult, error) {
	start := time.Now()

	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = r.workDir

	if r.verbose {
		ui.Debug("Running: %s %s (in %s)", name, strings.Join(args, " "), displayDir(r.workDir))
	}

	var stdout, stderr bytes.Buffer
	cmd.Stdout = tee(&stdout, r.stdout)
	cmd.Stderr = tee(&stderr, r.stderr)
	if r.stdin != nil {
		cmd.Stdin = r.stdin
	}

	err := cmd.Run()

	result := &CommandResult{
		ExitCode: -1,
		Stdout:   stdout.String(),
		Stderr:   stderr.String(),
		Duration: time.Since(start),
	}
	if cmd.ProcessState != nil {
		result.ExitCode = cmd.ProcessState.ExitCode()
	}

	if err == nil {
		return result, nil
	}

	if ctxErr := ctx.Err(); ctxErr != nil {
		return result, errors.Wrap(errors.CodeCanceled, name, ctxErr)
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		if tail := lastLine(result.Stderr); tail != "" {
			return result, errors.Wrapf(errors.CodeAborted, name, err, "%s", tail)
		}
		return result, errors.Wrap(errors.CodeAborted, name, err)
	}

	return result, errors.Wrap(errors.CodeUnavailable, name, err)
}

// Nest runs the nest CLI found at binary.
func (r *Runner) Nest(ctx context.Context, binary string, args ...string) (*CommandResult, error) {
	return r.execute(ctx, binary, args...)
}

func tee(capture *bytes.Buffer, stream io.Writer) io.Writer {
	if stream == nil {
		return capture
	}
	return io.MultiWriter(capture, stream)
}

func lastLine(s string) string {
	s = strings.TrimSpace(s)
	if i := strings.LastIndexByte(s, '\n'); i >= 0 {
		return strings.TrimSpace(s[i+1:])
	}
	return s
}

func displayDir(dir string) string {
	if dir == "" {
		return "."
	}
	return dir
}
