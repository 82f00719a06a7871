package configschema

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/eggybyte-technology/nest-combo/internal/modpath"
	"github.com/eggybyte-technology/nest-combo/internal/resources"
)

var validate = validator.New()

// Validate checks a decoded project document and returns its normalized form.
//
// The checks run in a fixed order and stop at the first failure: root key,
// project name, package manager, dependencies, open-vscode, then the module
// tree depth first. The input is never modified.
//
// Parameters:
//   - raw: Document as produced by yaml.Unmarshal into an interface value
//
// Returns:
//   - *ProjectSpec: Normalized specification with defaults applied
//   - error: *ValidationError describing the first problem
//
// Concurrency:
//   - Pure function, safe for concurrent use
func Validate(raw any) (*ProjectSpec, error) {
	doc, ok := asMap(raw)
	if !ok {
		return nil, &ValidationError{Problem: MissingRootKey, Field: RootKey, Index: -1}
	}
	root, ok := asMap(doc[RootKey])
	if !ok {
		return nil, &ValidationError{Problem: MissingRootKey, Field: RootKey, Index: -1}
	}

	spec := &ProjectSpec{
		PackageManager: DefaultPackageManager,
		Dependencies:   make([]string, 0),
		Modules:        make([]ModuleNode, 0),
	}

	name, ok := root[keyProjectName].(string)
	if !ok || strings.TrimSpace(name) == "" {
		return nil, &ValidationError{Problem: InvalidProjectName, Field: keyProjectName, Index: -1, Value: root[keyProjectName]}
	}
	spec.ProjectName = name

	if v, present := root[keyPackageManager]; present && v != nil {
		pm, ok := v.(string)
		if !ok || validate.Var(pm, "oneof=npm yarn pnpm") != nil {
			return nil, &ValidationError{Problem: InvalidPackageManager, Field: keyPackageManager, Index: -1, Value: v}
		}
		spec.PackageManager = pm
	}

	if v, present := root[keyDependencies]; present && v != nil {
		deps, err := validateDependencies(v)
		if err != nil {
			return nil, err
		}
		spec.Dependencies = deps
	}

	if v, present := root[keyOpenEditor]; present && v != nil {
		open, ok := v.(bool)
		if !ok {
			return nil, &ValidationError{Problem: InvalidOpenEditor, Field: keyOpenEditor, Index: -1, Value: v}
		}
		spec.OpenEditor = open
	}

	if v, present := root[keyModules]; present && v != nil {
		items, ok := asSeq(v)
		if !ok {
			return nil, &ValidationError{Problem: InvalidModules, Field: keyModules, Index: -1, Value: v}
		}
		modules, err := validateModules(items, "")
		if err != nil {
			return nil, err
		}
		spec.Modules = modules
	}

	return spec, nil
}

// validateDependencies accepts plain names and the older {name: ...} form.
func validateDependencies(v any) ([]string, error) {
	items, ok := asSeq(v)
	if !ok {
		return nil, &ValidationError{Problem: InvalidDependency, Field: keyDependencies, Index: -1, Value: v}
	}

	deps := make([]string, 0, len(items))
	for i, item := range items {
		name, ok := item.(string)
		if !ok {
			if m, isMap := asMap(item); isMap {
				name, ok = m[keyName].(string)
			}
		}
		if !ok || strings.TrimSpace(name) == "" {
			return nil, &ValidationError{Problem: InvalidDependency, Field: keyDependencies, Index: i, Value: item}
		}
		deps = append(deps, name)
	}
	return deps, nil
}

// validateModules validates a sequence of module nodes under parentPath.
func validateModules(items []any, parentPath string) ([]ModuleNode, error) {
	nodes := make([]ModuleNode, 0, len(items))
	for i, item := range items {
		node, err := validateModule(item, i, parentPath)
		if err != nil {
			return nil, err
		}
		nodes = append(nodes, node)
	}
	return nodes, nil
}

func validateModule(item any, index int, parentPath string) (ModuleNode, error) {
	m, ok := asMap(item)
	if !ok {
		return ModuleNode{}, &ValidationError{Problem: InvalidModuleName, Field: keyName, Index: index, ModulePath: parentPath, Value: item}
	}

	name, ok := m[keyName].(string)
	if !ok || strings.TrimSpace(name) == "" {
		return ModuleNode{}, &ValidationError{Problem: InvalidModuleName, Field: keyName, Index: index, ModulePath: parentPath, Value: m[keyName]}
	}

	path := modpath.Resolve(parentPath, name)
	node := ModuleNode{Name: name}

	if v, present := m[keyResources]; present && v != nil {
		items, ok := asSeq(v)
		if !ok {
			return ModuleNode{}, &ValidationError{Problem: InvalidResources, Field: keyResources, Index: -1, ModulePath: path, Value: v}
		}
		node.Resources = make([]resources.Kind, 0, len(items))
		for j, r := range items {
			kind, ok := r.(string)
			if !ok || !resources.IsKind(kind) {
				return ModuleNode{}, &ValidationError{Problem: UnknownResourceKind, Field: keyResources, Index: j, ModulePath: path, Value: r}
			}
			node.Resources = append(node.Resources, resources.Kind(kind))
		}
	}

	if v, present := m[keyOptions]; present && v != nil {
		items, ok := asSeq(v)
		if !ok {
			return ModuleNode{}, &ValidationError{Problem: InvalidOptions, Field: keyOptions, Index: -1, ModulePath: path, Value: v}
		}
		node.Options = make([]string, 0, len(items))
		for j, o := range items {
			opt, ok := o.(string)
			if !ok {
				return ModuleNode{}, &ValidationError{Problem: InvalidOptions, Field: keyOptions, Index: j, ModulePath: path, Value: o}
			}
			node.Options = append(node.Options, opt)
		}
	}

	if v, present := m[keyModules]; present && v != nil {
		items, ok := asSeq(v)
		if !ok {
			return ModuleNode{}, &ValidationError{Problem: InvalidChildModules, Field: keyModules, Index: -1, ModulePath: path, Value: v}
		}
		children, err := validateModules(items, path)
		if err != nil {
			return ModuleNode{}, err
		}
		node.Children = children
	}

	return node, nil
}

// asMap accepts both map shapes yaml.v3 produces when decoding into any.
func asMap(v any) (map[string]any, bool) {
	switch m := v.(type) {
	case map[string]any:
		return m, true
	case map[any]any:
		out := make(map[string]any, len(m))
		for k, val := range m {
			out[fmt.Sprint(k)] = val
		}
		return out, true
	default:
		return nil, false
	}
}

func asSeq(v any) ([]any, bool) {
	switch s := v.(type) {
	case []any:
		return s, true
	case []string:
		out := make([]any, len(s))
		for i, item := range s {
			out[i] = item
		}
		return out, true
	default:
		return nil, false
	}
}
