package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/google/uuid"

	"github.com/eggybyte-technology/nest-combo/internal/configschema"
	"github.com/eggybyte-technology/nest-combo/internal/errors"
	"github.com/eggybyte-technology/nest-combo/internal/invoker"
	"github.com/eggybyte-technology/nest-combo/internal/log"
	"github.com/eggybyte-technology/nest-combo/internal/logx"
	"github.com/eggybyte-technology/nest-combo/internal/scaffold"
	"github.com/eggybyte-technology/nest-combo/internal/settings"
	"github.com/eggybyte-technology/nest-combo/internal/toolrunner"
	"github.com/eggybyte-technology/nest-combo/internal/ui"
)

// app carries the per-run dependencies shared by every command.
type app struct {
	settings settings.Settings
	logger   log.Logger
	workDir  string
}

// newApp loads settings and builds the run logger.
func newApp(ctx context.Context) (*app, error) {
	cfg, err := settings.Load(ctx)
	if err != nil {
		return nil, err
	}

	level := cfg.Level()
	if ui.Verbose() {
		level = slog.LevelDebug
	}
	logger := logx.New(
		logx.WithLevel(level),
		logx.WithColor(cfg.LogColor),
		logx.WithWriter(os.Stderr),
	).With("run_id", uuid.NewString())

	wd, err := os.Getwd()
	if err != nil {
		return nil, errors.Wrap(errors.CodeInternal, "get working directory", err)
	}

	return &app{settings: cfg, logger: logger, workDir: wd}, nil
}

// runner returns a tool runner streaming to the terminal.
func (a *app) runner() *toolrunner.Runner {
	r := toolrunner.NewRunner(a.workDir)
	r.SetVerbose(ui.Verbose())
	r.SetOutput(os.Stdout, os.Stderr)
	r.SetInput(os.Stdin)
	return r
}

// scaffolder resolves nest once and wires the pipeline.
func (a *app) scaffolder(ctx context.Context) (*scaffold.Scaffolder, error) {
	nest, err := toolrunner.ResolveNestBinary(ctx, a.settings)
	if err != nil {
		return nil, err
	}
	ui.Info("%s", nest)
	a.logger.Debug("nest resolved", "path", nest.Path, "source", string(nest.Source))

	r := a.runner()
	return scaffold.New(scaffold.Config{
		Nest:    nest.Path,
		Editor:  a.settings.Editor,
		WorkDir: a.workDir,
		Logger:  a.logger,
	}, r, invoker.NewNestInvoker(nest.Path, r)), nil
}

// planner wires a pipeline that is only used to list commands.
func (a *app) planner() *scaffold.Scaffolder {
	return scaffold.New(scaffold.Config{
		Nest:    toolrunner.GlobalNest,
		Editor:  a.settings.Editor,
		WorkDir: a.workDir,
		Logger:  a.logger,
	}, nil, nil)
}

// loadSpec loads a project file, classifying validation problems as
// invalid arguments.
func loadSpec(path string) (*configschema.ProjectSpec, error) {
	spec, err := configschema.Load(path)
	if err == nil {
		return spec, nil
	}
	if errors.CodeOf(err) != "" {
		return nil, err
	}
	return nil, errors.Wrap(errors.CodeInvalidArgument, "validate "+path, err)
}
