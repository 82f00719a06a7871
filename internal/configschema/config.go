// Package configschema provides loading and validation of nest-combo project files.
//
// Overview:
//   - Responsibility: Parse the project YAML, validate its structure, fill defaults
//   - Key Types: ProjectSpec, ModuleNode, ValidationError
//   - Concurrency Model: Immutable specification after loading
//   - Error Semantics: Fail fast on the first structural problem, localized by field and module path
//   - Performance Notes: Single read, single pass over the module tree
//
// Usage:
//
//	spec, err := configschema.Load("project.yml")
//	if err != nil {
//	    return err
//	}
package configschema

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/eggybyte-technology/nest-combo/internal/errors"
	"github.com/eggybyte-technology/nest-combo/internal/resources"
)

// RootKey is the single recognized top-level key of a project file.
const RootKey = "nest-combo"

// Document keys.
const (
	keyProjectName    = "project-name"
	keyPackageManager = "package-manager"
	keyDependencies   = "dependencies"
	keyOpenEditor     = "open-vscode"
	keyModules        = "modules"
	keyName           = "name"
	keyResources      = "resources"
	keyOptions        = "options"
)

// Supported package managers.
const (
	PackageManagerNPM  = "npm"
	PackageManagerYarn = "yarn"
	PackageManagerPNPM = "pnpm"

	// DefaultPackageManager applies when a project file names none.
	DefaultPackageManager = PackageManagerNPM
)

// PackageManagers lists the supported package managers.
var PackageManagers = []string{PackageManagerNPM, PackageManagerYarn, PackageManagerPNPM}

// ProjectSpec is a validated, normalized project file.
//
// Parameters:
//   - ProjectName: Directory and nest project name
//   - PackageManager: npm, yarn or pnpm
//   - Dependencies: Packages installed after the project is created
//   - Modules: Top-level module tree
//   - OpenEditor: Whether to open the editor once generation finishes
//
// Concurrency:
//   - Immutable after loading
type ProjectSpec struct {
	ProjectName    string
	PackageManager string
	Dependencies   []string
	Modules        []ModuleNode
	OpenEditor     bool
}

// ModuleNode is one module of the tree.
//
// Resources is nil when the file gives no resources sequence for the node,
// and non-nil (possibly empty) when it does. Options are passed to nest
// verbatim for every resource of this node.
type ModuleNode struct {
	Name      string
	Resources []resources.Kind
	Options   []string
	Children  []ModuleNode
}

// Load reads and validates a project file.
//
// Parameters:
//   - path: Path to the YAML project file
//
// Returns:
//   - *ProjectSpec: Normalized specification
//   - error: NOT_FOUND for a missing file, INVALID_ARGUMENT for YAML syntax
//     errors, *ValidationError for structural problems
//
// Concurrency:
//   - Single-threaded file I/O
func Load(path string) (*ProjectSpec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrapf(errors.CodeNotFound, "load project file", err, "project file %s not found", path)
		}
		return nil, errors.Wrapf(errors.CodeInternal, "load project file", err, "failed to read %s", path)
	}
	return Parse(data)
}

// Parse decodes YAML and validates the resulting document.
func Parse(data []byte) (*ProjectSpec, error) {
	var raw any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, errors.Wrap(errors.CodeInvalidArgument, "parse project file", err)
	}
	return Validate(raw)
}

// Raw renders the specification back into document form, such that
// Validate(spec.Raw()) returns an equal specification.
func (p *ProjectSpec) Raw() map[string]any {
	deps := make([]any, len(p.Dependencies))
	for i, d := range p.Dependencies {
		deps[i] = d
	}

	return map[string]any{
		RootKey: map[string]any{
			keyProjectName:    p.ProjectName,
			keyPackageManager: p.PackageManager,
			keyDependencies:   deps,
			keyOpenEditor:     p.OpenEditor,
			keyModules:        rawModules(p.Modules),
		},
	}
}

func rawModules(nodes []ModuleNode) []any {
	out := make([]any, len(nodes))
	for i, n := range nodes {
		m := map[string]any{keyName: n.Name}
		if n.Resources != nil {
			res := make([]any, len(n.Resources))
			for j, r := range n.Resources {
				res[j] = string(r)
			}
			m[keyResources] = res
		}
		if n.Options != nil {
			opts := make([]any, len(n.Options))
			for j, o := range n.Options {
				opts[j] = o
			}
			m[keyOptions] = opts
		}
		if n.Children != nil {
			m[keyModules] = rawModules(n.Children)
		}
		out[i] = m
	}
	return out
}

// String summarizes the specification for log output.
func (p *ProjectSpec) String() string {
	return fmt.Sprintf("%s (package manager %s, %d dependencies, %d top-level modules)",
		p.ProjectName, p.PackageManager, len(p.Dependencies), len(p.Modules))
}
