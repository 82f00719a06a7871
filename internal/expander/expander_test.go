package expander_test

import (
	"reflect"
	"testing"

	"github.com/eggybyte-technology/nest-combo/internal/configschema"
	"github.com/eggybyte-technology/nest-combo/internal/expander"
	"github.com/eggybyte-technology/nest-combo/internal/resources"
	"github.com/eggybyte-technology/nest-combo/internal/testingx"
)

type step struct {
	action resources.Kind
	target string
}

func steps(in []expander.Instruction) []step {
	out := make([]step, len(in))
	for i, ins := range in {
		out[i] = step{ins.Action, ins.TargetPath}
	}
	return out
}

func kinds(k ...resources.Kind) []resources.Kind {
	if k == nil {
		return []resources.Kind{}
	}
	return k
}

func TestExpandShopProject(t *testing.T) {
	spec := &configschema.ProjectSpec{
		ProjectName: "shop",
		Modules: []configschema.ModuleNode{
			{
				Name:      "core",
				Resources: kinds(resources.Module),
				Children: []configschema.ModuleNode{
					{
						Name:      "user",
						Resources: kinds(resources.Service, resources.Module, resources.Controller),
						Options:   []string{"--no-spec"},
					},
				},
			},
		},
	}

	got := expander.Expand(spec, "/work/shop", testingx.NewMockLogger(t))

	want := []step{
		{resources.Module, "core"},
		{resources.Module, "core/user"},
		{resources.Controller, "core/user"},
		{resources.Service, "core/user"},
	}
	if !reflect.DeepEqual(steps(got), want) {
		t.Fatalf("Expand() = %v, want %v", steps(got), want)
	}

	if len(got[0].Options) != 0 {
		t.Errorf("core options = %v, want none", got[0].Options)
	}
	for _, ins := range got[1:] {
		if !reflect.DeepEqual(ins.Options, []string{"--no-spec"}) {
			t.Errorf("%s %s options = %v, want [--no-spec]", ins.Action, ins.TargetPath, ins.Options)
		}
	}
	for _, ins := range got {
		if ins.ProjectRoot != "/work/shop" {
			t.Errorf("ProjectRoot = %q, want /work/shop", ins.ProjectRoot)
		}
	}
	if got[3].Schematic() != "s" {
		t.Errorf("Schematic() = %q, want s", got[3].Schematic())
	}
}

func TestExpandOrdering(t *testing.T) {
	tests := []struct {
		name    string
		modules []configschema.ModuleNode
		want    []step
	}{
		{
			name: "registry order replaces input order",
			modules: []configschema.ModuleNode{
				{Name: "api", Resources: kinds(resources.Interceptor, resources.Gateway, resources.Middleware, resources.Service, resources.Controller, resources.Module)},
			},
			want: []step{
				{resources.Module, "api"},
				{resources.Controller, "api"},
				{resources.Service, "api"},
				{resources.Gateway, "api"},
				{resources.Middleware, "api"},
				{resources.Interceptor, "api"},
			},
		},
		{
			name: "duplicate kinds emitted once",
			modules: []configschema.ModuleNode{
				{Name: "a", Resources: kinds(resources.Service, resources.Service)},
			},
			want: []step{{resources.Service, "a"}},
		},
		{
			name: "pre-order with siblings in input order",
			modules: []configschema.ModuleNode{
				{
					Name:      "a",
					Resources: kinds(resources.Module),
					Children: []configschema.ModuleNode{
						{
							Name:      "b",
							Resources: kinds(resources.Module),
							Children: []configschema.ModuleNode{
								{Name: "c", Resources: kinds(resources.Service)},
							},
						},
						{Name: "d", Resources: kinds(resources.Controller)},
					},
				},
				{Name: "e", Resources: kinds(resources.Module)},
			},
			want: []step{
				{resources.Module, "a"},
				{resources.Module, "a/b"},
				{resources.Service, "a/b/c"},
				{resources.Controller, "a/d"},
				{resources.Module, "e"},
			},
		},
		{
			name: "empty resources still descends",
			modules: []configschema.ModuleNode{
				{
					Name:      "group",
					Resources: kinds(),
					Children: []configschema.ModuleNode{
						{Name: "leaf", Resources: kinds(resources.Gateway)},
					},
				},
			},
			want: []step{{resources.Gateway, "group/leaf"}},
		},
		{
			name:    "no modules",
			modules: nil,
			want:    []step{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			spec := &configschema.ProjectSpec{ProjectName: "p", Modules: tt.modules}
			got := expander.Expand(spec, ".", nil)
			if !reflect.DeepEqual(steps(got), tt.want) {
				t.Errorf("Expand() = %v, want %v", steps(got), tt.want)
			}
		})
	}
}

func TestExpandNilSpec(t *testing.T) {
	got := expander.Expand(nil, ".", nil)
	if got == nil || len(got) != 0 {
		t.Fatalf("Expand(nil) = %#v, want empty non-nil slice", got)
	}
}

func TestExpandWarnings(t *testing.T) {
	logger := testingx.NewMockLogger(t)
	spec := &configschema.ProjectSpec{
		ProjectName: "p",
		Modules: []configschema.ModuleNode{
			{
				Name: "bare",
				Children: []configschema.ModuleNode{
					{Name: "kid", Resources: kinds(resources.Kind("bogus"), resources.Module)},
				},
			},
			{Name: "", Resources: kinds(resources.Module)},
		},
	}

	got := expander.Expand(spec, ".", logger)

	want := []step{{resources.Module, "bare/kid"}}
	if !reflect.DeepEqual(steps(got), want) {
		t.Fatalf("Expand() = %v, want %v", steps(got), want)
	}

	logger.AssertLogged("WARN", "module has no resources sequence, skipping its resources")
	logger.AssertLogged("WARN", "skipping unknown resource kind")
	logger.AssertLogged("WARN", "skipping module without a name")

	for _, e := range logger.EntriesAt("WARN") {
		if e.Message == "skipping unknown resource kind" {
			if e.Field("module") != "bare/kid" || e.Field("resource") != "bogus" {
				t.Errorf("unknown kind warning fields = %v", e.Fields)
			}
		}
		if e.Message == "module has no resources sequence, skipping its resources" && e.Field("module") != "bare" {
			t.Errorf("missing resources warning fields = %v", e.Fields)
		}
	}
}

func TestExpandOptionsAreCopied(t *testing.T) {
	opts := []string{"--flat"}
	spec := &configschema.ProjectSpec{
		Modules: []configschema.ModuleNode{
			{Name: "a", Resources: kinds(resources.Module, resources.Service), Options: opts},
		},
	}

	got := expander.Expand(spec, ".", nil)
	got[0].Options[0] = "--changed"

	if opts[0] != "--flat" {
		t.Errorf("spec options mutated: %v", opts)
	}
	if got[1].Options[0] != "--flat" {
		t.Errorf("instructions share options: %v", got[1].Options)
	}
}

func TestExpandLogsVisitedModules(t *testing.T) {
	spec := &configschema.ProjectSpec{
		Modules: []configschema.ModuleNode{{
			Name:      "core",
			Resources: kinds(resources.Module),
			Children: []configschema.ModuleNode{
				{Name: "user", Resources: kinds(resources.Module)},
			},
		}},
	}

	logger := testingx.NewMockLogger(t)
	expander.Expand(spec, "/work/shop", logger)

	visits := logger.EntriesAt("DEBUG")
	if len(visits) != 2 {
		t.Fatalf("debug entries = %+v, want 2", visits)
	}
	want := []struct {
		module string
		depth  int
	}{{"core", 1}, {"core/user", 2}}
	for i, w := range want {
		if visits[i].Message != "visiting module" || visits[i].Field("module") != w.module || visits[i].Field("depth") != w.depth {
			t.Errorf("entry %d = %+v, want module %s at depth %d", i, visits[i], w.module, w.depth)
		}
	}
}
