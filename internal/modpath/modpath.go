// Package modpath computes slash-joined module paths for nested modules.
package modpath

import "strings"

// Separator joins an ancestor chain into a module path.
const Separator = "/"

// Resolve returns the path of a module named name under parent.
// An empty parent means a top-level module.
func Resolve(parent, name string) string {
	if parent == "" {
		return name
	}
	return parent + Separator + name
}

// Segments splits a module path back into its ancestor chain.
func Segments(path string) []string {
	if path == "" {
		return nil
	}
	return strings.Split(path, Separator)
}
