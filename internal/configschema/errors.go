package configschema

import (
	"fmt"
	"strings"

	"github.com/eggybyte-technology/nest-combo/internal/resources"
)

// Problem classifies a validation failure. A Problem is itself an error so
// callers can test for a class with errors.Is(err, configschema.UnknownResourceKind).
type Problem string

// Validation problems, in the order the validator checks for them.
const (
	MissingRootKey        Problem = "missing root key"
	InvalidProjectName    Problem = "invalid project name"
	InvalidPackageManager Problem = "invalid package manager"
	InvalidDependency     Problem = "invalid dependency"
	InvalidOpenEditor     Problem = "invalid open-vscode"
	InvalidModules        Problem = "invalid modules"
	InvalidModuleName     Problem = "invalid module name"
	InvalidResources      Problem = "invalid resources"
	UnknownResourceKind   Problem = "unknown resource kind"
	InvalidOptions        Problem = "invalid options"
	InvalidChildModules   Problem = "invalid child modules"
)

func (p Problem) Error() string {
	return string(p)
}

// ValidationError reports the first structural problem found in a project file.
//
// Index is the position of the offending element in its sequence, or -1
// when the problem concerns a whole field. ModulePath is the slash-joined
// path of the module the problem belongs to; for InvalidModuleName it is
// the parent path, since the module itself has no usable name.
type ValidationError struct {
	Problem    Problem
	Field      string
	Index      int
	ModulePath string
	Value      any
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	switch e.Problem {
	case MissingRootKey:
		return fmt.Sprintf("invalid project file: missing '%s' key", RootKey)
	case InvalidProjectName:
		return fmt.Sprintf("missing or invalid '%s': must be a non-empty string", keyProjectName)
	case InvalidPackageManager:
		return fmt.Sprintf("invalid '%s' %s: must be one of %s",
			keyPackageManager, describe(e.Value), strings.Join(PackageManagers, ", "))
	case InvalidDependency:
		if e.Index < 0 {
			return fmt.Sprintf("invalid '%s': must be a sequence", keyDependencies)
		}
		return fmt.Sprintf("invalid dependency at index %d: each dependency must be a non-empty name", e.Index)
	case InvalidOpenEditor:
		return fmt.Sprintf("invalid '%s' %s: must be a boolean", keyOpenEditor, describe(e.Value))
	case InvalidModules:
		return fmt.Sprintf("invalid '%s': must be a sequence", keyModules)
	case InvalidModuleName:
		where := "at top level"
		if e.ModulePath != "" {
			where = fmt.Sprintf("under module '%s'", e.ModulePath)
		}
		return fmt.Sprintf("invalid module at index %d %s: each module must have a non-empty '%s'", e.Index, where, keyName)
	case InvalidResources:
		return fmt.Sprintf("invalid '%s' for module '%s': must be a sequence", keyResources, e.ModulePath)
	case UnknownResourceKind:
		return fmt.Sprintf("invalid resource %s at index %d for module '%s': valid resources are %s",
			describe(e.Value), e.Index, e.ModulePath, validKinds())
	case InvalidOptions:
		return fmt.Sprintf("invalid '%s' for module '%s': must be a sequence of strings", keyOptions, e.ModulePath)
	case InvalidChildModules:
		return fmt.Sprintf("invalid '%s' for module '%s': must be a sequence", keyModules, e.ModulePath)
	default:
		return string(e.Problem)
	}
}

// Is matches the error against its Problem class.
func (e *ValidationError) Is(target error) bool {
	p, ok := target.(Problem)
	return ok && p == e.Problem
}

func describe(v any) string {
	if s, ok := v.(string); ok {
		return fmt.Sprintf("'%s'", s)
	}
	if v == nil {
		return "(empty)"
	}
	return fmt.Sprintf("%v", v)
}

func validKinds() string {
	kinds := resources.Kinds()
	names := make([]string, len(kinds))
	for i, k := range kinds {
		names[i] = string(k)
	}
	return strings.Join(names, ", ")
}
