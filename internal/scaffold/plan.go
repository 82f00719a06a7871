package scaffold

import (
	"strings"

	"github.com/eggybyte-technology/nest-combo/internal/configschema"
	"github.com/eggybyte-technology/nest-combo/internal/expander"
	"github.com/eggybyte-technology/nest-combo/internal/invoker"
)

// PlannedCommand is one external command FromFile would run.
type PlannedCommand struct {
	Dir  string   `json:"dir"`
	Name string   `json:"name"`
	Args []string `json:"args"`
}

// String renders the command as typed in a shell.
func (c PlannedCommand) String() string {
	return strings.TrimSpace(c.Name + " " + strings.Join(c.Args, " "))
}

// Plan lists the commands FromFile would run for spec, in order, without
// running anything. Resources the walker skips are skipped here too.
func (s *Scaffolder) Plan(spec *configschema.ProjectSpec) ([]PlannedCommand, error) {
	if spec == nil {
		return nil, nil
	}

	root := s.ProjectRoot(spec.ProjectName)
	pm := spec.PackageManager
	if pm == "" {
		pm = configschema.DefaultPackageManager
	}

	plan := []PlannedCommand{{
		Dir:  s.cfg.WorkDir,
		Name: s.cfg.Nest,
		Args: []string{"new", spec.ProjectName, "--package-manager", pm},
	}}

	if len(spec.Dependencies) > 0 {
		args, err := InstallArgs(pm, spec.Dependencies)
		if err != nil {
			return nil, err
		}
		plan = append(plan, PlannedCommand{Dir: root, Name: pm, Args: args})
	}

	for _, in := range expander.Expand(spec, root, s.logger) {
		args, err := invoker.Args(in)
		if err != nil {
			continue
		}
		plan = append(plan, PlannedCommand{Dir: in.ProjectRoot, Name: s.cfg.Nest, Args: args})
	}

	if spec.OpenEditor {
		plan = append(plan, PlannedCommand{Dir: root, Name: s.cfg.Editor, Args: []string{"."}})
	}

	return plan, nil
}
