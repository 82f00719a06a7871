// Package expander turns a project specification into an ordered list of
// generation instructions.
//
// Overview:
//   - Responsibility: Depth-first, pre-order walk of the module tree
//   - Key Types: Instruction
//   - Concurrency Model: Pure computation, no shared state
//   - Error Semantics: Best effort; malformed nodes are logged and skipped, never fatal
//   - Performance Notes: O(n) in the number of nodes
//
// For each module the walker emits that module's resources first, in
// registry order, then descends into its children before moving on to the
// next sibling. Registry order replaces the order in which the resources
// were listed: a module is always generated before its controller.
package expander

import (
	"github.com/eggybyte-technology/nest-combo/internal/configschema"
	"github.com/eggybyte-technology/nest-combo/internal/log"
	"github.com/eggybyte-technology/nest-combo/internal/modpath"
	"github.com/eggybyte-technology/nest-combo/internal/resources"
)

// Instruction is one call to the external generator.
//
// TargetPath is a nest identifier relative to the project's source root,
// not a filesystem path. ProjectRoot is the working directory the generator
// runs in.
type Instruction struct {
	Action      resources.Kind
	TargetPath  string
	Options     []string
	ProjectRoot string
}

// Schematic returns the nest schematic for the instruction's action.
func (i Instruction) Schematic() string {
	return i.Action.Schematic()
}

// Expand walks spec and returns the instructions in execution order.
//
// Parameters:
//   - spec: Project specification, validated or built programmatically
//   - projectRoot: Working directory carried by every instruction
//   - logger: Receives warnings for skipped nodes and kinds; may be nil
//
// Returns:
//   - []Instruction: Ordered instructions, empty for a nil spec
func Expand(spec *configschema.ProjectSpec, projectRoot string, logger log.Logger) []Instruction {
	if logger == nil {
		logger = log.Nop()
	}
	instructions := make([]Instruction, 0)
	if spec == nil {
		return instructions
	}

	w := &walker{root: projectRoot, logger: logger, out: instructions}
	w.walk(spec.Modules, "")
	return w.out
}

type walker struct {
	root   string
	logger log.Logger
	out    []Instruction
}

func (w *walker) walk(nodes []configschema.ModuleNode, parentPath string) {
	for i := range nodes {
		node := &nodes[i]
		if node.Name == "" {
			w.logger.Warn("skipping module without a name", log.Str("parent", parentPath), log.Int("index", i))
			continue
		}

		targetPath := modpath.Resolve(parentPath, node.Name)
		w.logger.Debug("visiting module", log.Str("module", targetPath), log.Int("depth", len(modpath.Segments(targetPath))))
		w.visit(node, targetPath)
		w.walk(node.Children, targetPath)
	}
}

func (w *walker) visit(node *configschema.ModuleNode, targetPath string) {
	if node.Resources == nil {
		w.logger.Warn("module has no resources sequence, skipping its resources", log.Str("module", targetPath))
		return
	}

	known, unknown := resources.Normalize(node.Resources)
	for _, kind := range unknown {
		w.logger.Warn("skipping unknown resource kind", log.Str("module", targetPath), log.Str("resource", string(kind)))
	}

	for _, r := range known {
		w.out = append(w.out, Instruction{
			Action:      r.Kind,
			TargetPath:  targetPath,
			Options:     append([]string(nil), node.Options...),
			ProjectRoot: w.root,
		})
	}
}
