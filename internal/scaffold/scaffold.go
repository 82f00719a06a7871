// Package scaffold runs the project pipeline: create the nest project,
// install its dependencies, generate the module tree and open the editor.
//
// Overview:
//   - Responsibility: Order the external calls of one nest-combo run
//   - Key Types: Scaffolder, Config, Commander
//   - Concurrency Model: Sequential; every step blocks on its external process
//   - Error Semantics: Coded errors; the first failing step ends the run
//   - Performance Notes: Dominated by nest and the package manager
//
// Usage:
//
//	s := scaffold.New(scaffold.Config{Nest: nest.Path, Editor: "code", WorkDir: cwd}, runner, inv)
//	err := s.FromFile(ctx, spec)
package scaffold

import (
	"context"
	"path/filepath"

	"github.com/eggybyte-technology/nest-combo/internal/configschema"
	"github.com/eggybyte-technology/nest-combo/internal/errors"
	"github.com/eggybyte-technology/nest-combo/internal/expander"
	"github.com/eggybyte-technology/nest-combo/internal/invoker"
	"github.com/eggybyte-technology/nest-combo/internal/log"
	"github.com/eggybyte-technology/nest-combo/internal/toolrunner"
	"github.com/eggybyte-technology/nest-combo/internal/ui"
)

// Commander runs an external command in a directory.
// *toolrunner.Runner satisfies it.
type Commander interface {
	RunIn(ctx context.Context, dir, name string, args ...string) (*toolrunner.CommandResult, error)
}

// Config holds the values a Scaffolder needs from settings.
type Config struct {
	Nest    string     // nest executable
	Editor  string     // editor command, "code" by default
	WorkDir string     // directory new projects are created in
	Logger  log.Logger // diagnostic logger; nil discards
}

// Scaffolder runs the pipeline steps.
type Scaffolder struct {
	cfg      Config
	commands Commander
	invoker  invoker.Invoker
	logger   log.Logger
}

// New creates a Scaffolder.
//
// Parameters:
//   - cfg: Nest binary, editor and working directory
//   - commands: Runs nest new, the package manager and the editor
//   - inv: Performs generation instructions
//
// Returns:
//   - *Scaffolder: Ready to run
func New(cfg Config, commands Commander, inv invoker.Invoker) *Scaffolder {
	if cfg.Editor == "" {
		cfg.Editor = "code"
	}
	logger := cfg.Logger
	if logger == nil {
		logger = log.Nop()
	}
	return &Scaffolder{cfg: cfg, commands: commands, invoker: inv, logger: logger}
}

// ProjectRoot returns the directory a project named name is created in.
func (s *Scaffolder) ProjectRoot(name string) string {
	return filepath.Join(s.cfg.WorkDir, name)
}

// NewProject runs `nest new <name> --package-manager <pm>` in the working directory.
func (s *Scaffolder) NewProject(ctx context.Context, name, packageManager string, extra ...string) error {
	if name == "" {
		return errors.New(errors.CodeInvalidArgument, "project name is required")
	}
	if packageManager == "" {
		packageManager = configschema.DefaultPackageManager
	}

	ui.Info("Generating project %s", name)
	args := append([]string{"new", name, "--package-manager", packageManager}, extra...)
	s.logger.Debug("creating project", "project", name, "package_manager", packageManager)

	if _, err := s.commands.RunIn(ctx, s.cfg.WorkDir, s.cfg.Nest, args...); err != nil {
		return errors.Wrap(codeOr(err, errors.CodeAborted), "create project", err)
	}
	return nil
}

// InstallDependencies installs deps in projectRoot with the package manager.
// An empty list only prints a notice.
func (s *Scaffolder) InstallDependencies(ctx context.Context, projectRoot, packageManager string, deps []string) error {
	if len(deps) == 0 {
		ui.Warning("No dependencies to install.")
		return nil
	}

	args, err := InstallArgs(packageManager, deps)
	if err != nil {
		return err
	}

	ui.Info("Installing dependencies:")
	for _, dep := range deps {
		ui.Info("- %s", dep)
	}
	s.logger.Debug("installing dependencies", "package_manager", packageManager, "dependencies", deps)

	if _, err := s.commands.RunIn(ctx, projectRoot, packageManager, args...); err != nil {
		return errors.Wrap(codeOr(err, errors.CodeAborted), "install dependencies", err)
	}
	ui.Success("Dependencies installed successfully.")
	return nil
}

// InstallArgs returns the package manager arguments that add deps.
func InstallArgs(packageManager string, deps []string) ([]string, error) {
	var verb string
	switch packageManager {
	case configschema.PackageManagerNPM, "":
		verb = "install"
	case configschema.PackageManagerYarn, configschema.PackageManagerPNPM:
		verb = "add"
	default:
		return nil, errors.Wrapf(errors.CodeInvalidArgument, "install dependencies", nil,
			"unsupported package manager %q", packageManager)
	}
	return append([]string{verb}, deps...), nil
}

// Generate expands spec and runs every instruction in projectRoot.
func (s *Scaffolder) Generate(ctx context.Context, spec *configschema.ProjectSpec, projectRoot string) error {
	instructions := expander.Expand(spec, projectRoot, s.logger)
	if len(instructions) == 0 {
		ui.Warning("No resources to generate.")
		return nil
	}

	if err := invoker.Run(ctx, s.invoker, instructions, s.logger); err != nil {
		return errors.Wrap(codeOr(err, errors.CodeAborted), "generate modules", err)
	}
	return nil
}

// OpenEditor runs `<editor> .` in projectRoot.
func (s *Scaffolder) OpenEditor(ctx context.Context, projectRoot string) error {
	ui.Info("Opening %s in %s", s.cfg.Editor, projectRoot)
	if _, err := s.commands.RunIn(ctx, projectRoot, s.cfg.Editor, "."); err != nil {
		return errors.Wrap(codeOr(err, errors.CodeAborted), "open editor", err)
	}
	return nil
}

// FromFile runs the full pipeline for a loaded project file: create the
// project, install dependencies, generate modules, then open the editor
// when the file asks for it.
func (s *Scaffolder) FromFile(ctx context.Context, spec *configschema.ProjectSpec) error {
	if spec == nil {
		return errors.New(errors.CodeInvalidArgument, "no project specification")
	}

	root := s.ProjectRoot(spec.ProjectName)
	total := 3
	if spec.OpenEditor {
		total = 4
	}
	s.logger.Info("scaffolding project", "project", spec.ProjectName, "root", root)

	ui.Step(1, total, "Creating project %s", spec.ProjectName)
	if err := s.NewProject(ctx, spec.ProjectName, spec.PackageManager); err != nil {
		return err
	}

	ui.Step(2, total, "Installing dependencies")
	if err := s.InstallDependencies(ctx, root, spec.PackageManager, spec.Dependencies); err != nil {
		return err
	}

	ui.Step(3, total, "Generating modules")
	if err := s.Generate(ctx, spec, root); err != nil {
		return err
	}

	if spec.OpenEditor {
		ui.Step(4, total, "Opening editor")
		if err := s.OpenEditor(ctx, root); err != nil {
			return err
		}
	}

	ui.Success("Project %s is ready", spec.ProjectName)
	return nil
}

// CreateProject creates a project from the command line and opens the editor
// unless openEditor is false.
func (s *Scaffolder) CreateProject(ctx context.Context, name, packageManager string, openEditor bool, extra ...string) error {
	if err := s.NewProject(ctx, name, packageManager, extra...); err != nil {
		return err
	}
	if !openEditor {
		return nil
	}
	return s.OpenEditor(ctx, s.ProjectRoot(name))
}

func codeOr(err error, fallback errors.Code) errors.Code {
	if code := errors.CodeOf(err); code != "" {
		return code
	}
	if errors.Is(err, context.Canceled) {
		return errors.CodeCanceled
	}
	return fallback
}
