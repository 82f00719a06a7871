package scaffold

import (
	"context"
	"strings"

	"github.com/eggybyte-technology/nest-combo/internal/configschema"
	"github.com/eggybyte-technology/nest-combo/internal/errors"
	"github.com/eggybyte-technology/nest-combo/internal/resources"
)

// Generator options recognized on the command line.
var legacyOptions = []struct {
	short, long string
}{
	{"-ns", "--no-spec"},
	{"-dr", "--dry-run"},
}

// CommandLineOptions returns the nest options requested by tokens, in a fixed
// order: --no-spec then --dry-run.
func CommandLineOptions(tokens []string) []string {
	var opts []string
	for _, o := range legacyOptions {
		for _, tok := range tokens {
			if tok == o.short || tok == o.long {
				opts = append(opts, o.long)
				break
			}
		}
	}
	return opts
}

// GenerateModule generates the resources named by flag tokens for one module
// in the working directory.
//
// Parameters:
//   - ctx: Context for cancellation
//   - name: Module name, may contain "/" to nest it
//   - tokens: Command-line tokens such as "-m", "--controller", "-ns"
//
// Returns:
//   - error: INVALID_ARGUMENT without a name or without any resource flag,
//     otherwise the first generation failure
func (s *Scaffolder) GenerateModule(ctx context.Context, name string, tokens []string) error {
	requested, err := CheckModuleArgs(name, tokens)
	if err != nil {
		return err
	}

	kinds := make([]resources.Kind, len(requested))
	for i, r := range requested {
		kinds[i] = r.Kind
	}

	spec := &configschema.ProjectSpec{
		Modules: []configschema.ModuleNode{{
			Name:      name,
			Resources: kinds,
			Options:   CommandLineOptions(tokens),
		}},
	}
	return s.Generate(ctx, spec, s.cfg.WorkDir)
}

// CheckModuleArgs validates a module invocation and returns the requested
// resources in registry order.
func CheckModuleArgs(name string, tokens []string) ([]resources.Resource, error) {
	if name == "" || strings.HasPrefix(name, "-") {
		return nil, errors.New(errors.CodeInvalidArgument, "Module name is required.")
	}

	requested := resources.FromFlags(tokens)
	if len(requested) == 0 {
		flags := make([]string, 0, len(resources.All()))
		for _, r := range resources.All() {
			flags = append(flags, r.Flag)
		}
		return nil, errors.Wrapf(errors.CodeInvalidArgument, "", nil,
			"At least one flag (%s) is required.", strings.Join(flags, ","))
	}
	return requested, nil
}
