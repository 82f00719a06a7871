// Package resources defines the NestJS resource kinds nest-combo can generate.
//
// Overview:
//   - Responsibility: Fixed registry mapping a resource kind to its CLI flags and nest schematic
//   - Key Types: Kind, Resource
//   - Concurrency Model: Immutable table, safe for concurrent use
//   - Error Semantics: Lookups report absence with a boolean
//   - Performance Notes: Linear scans over six entries
//
// The registry is order-significant. Declaration order (module, controller,
// service, gateway, middleware, interceptor) is the order in which the
// resources of one module are generated, whatever order the user wrote them
// in. A module must exist before the controller and service that nest adds
// to it.
package resources

// Kind names a resource that can be generated for a module.
type Kind string

// Resource kinds, in registry order.
const (
	Module      Kind = "module"
	Controller  Kind = "controller"
	Service     Kind = "service"
	Gateway     Kind = "gateway"
	Middleware  Kind = "middleware"
	Interceptor Kind = "interceptor"
)

// Resource describes how a kind is requested on the command line and which
// nest schematic generates it.
type Resource struct {
	Kind      Kind
	Flag      string // short flag, e.g. "-m"
	LongFlag  string // long flag, e.g. "--module"
	Schematic string // argument to `nest generate`, e.g. "mo"
}

var registry = []Resource{
	{Kind: Module, Flag: "-m", LongFlag: "--module", Schematic: "mo"},
	{Kind: Controller, Flag: "-c", LongFlag: "--controller", Schematic: "co"},
	{Kind: Service, Flag: "-s", LongFlag: "--service", Schematic: "s"},
	{Kind: Gateway, Flag: "-g", LongFlag: "--gateway", Schematic: "ga"},
	{Kind: Middleware, Flag: "-mw", LongFlag: "--middleware", Schematic: "mi"},
	{Kind: Interceptor, Flag: "-itc", LongFlag: "--interceptor", Schematic: "itc"},
}

// All returns a copy of the registry in declaration order.
func All() []Resource {
	out := make([]Resource, len(registry))
	copy(out, registry)
	return out
}

// Kinds returns every kind in registry order.
func Kinds() []Kind {
	kinds := make([]Kind, len(registry))
	for i, r := range registry {
		kinds[i] = r.Kind
	}
	return kinds
}

// Lookup returns the registry entry for kind.
func Lookup(kind Kind) (Resource, bool) {
	for _, r := range registry {
		if r.Kind == kind {
			return r, true
		}
	}
	return Resource{}, false
}

// LookupFlag returns the entry whose short or long flag equals token.
func LookupFlag(token string) (Resource, bool) {
	for _, r := range registry {
		if r.Flag == token || r.LongFlag == token {
			return r, true
		}
	}
	return Resource{}, false
}

// IsKind reports whether name is a registered kind.
func IsKind(name string) bool {
	_, ok := Lookup(Kind(name))
	return ok
}

// Schematic returns the nest schematic for kind, or "" when kind is unknown.
func (k Kind) Schematic() string {
	r, ok := Lookup(k)
	if !ok {
		return ""
	}
	return r.Schematic
}

// Normalize reorders kinds into registry order and drops duplicates.
// Kinds that are not registered are returned separately, in input order.
func Normalize(kinds []Kind) (known []Resource, unknown []Kind) {
	requested := make(map[Kind]bool, len(kinds))
	for _, k := range kinds {
		if _, ok := Lookup(k); !ok {
			unknown = append(unknown, k)
			continue
		}
		requested[k] = true
	}

	for _, r := range registry {
		if requested[r.Kind] {
			known = append(known, r)
		}
	}
	return known, unknown
}

// FromFlags returns the resources selected by command-line tokens, in
// registry order. Tokens that are not resource flags are ignored.
func FromFlags(tokens []string) []Resource {
	var kinds []Kind
	for _, token := range tokens {
		if r, ok := LookupFlag(token); ok {
			kinds = append(kinds, r.Kind)
		}
	}
	known, _ := Normalize(kinds)
	return known
}
