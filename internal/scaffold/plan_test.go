package scaffold

import (
	"path/filepath"
	"reflect"
	"testing"
)

func TestPlan(t *testing.T) {
	s, cmds, inv, _ := setup(t)

	plan, err := s.Plan(shop())
	if err != nil {
		t.Fatalf("Plan() error = %v", err)
	}

	got := make([]string, len(plan))
	for i, c := range plan {
		got[i] = c.String()
	}
	want := []string{
		"/bin/nest new shop --package-manager pnpm",
		"pnpm add @nestjs/config class-validator",
		"/bin/nest g mo core",
		"/bin/nest g mo core/user",
		"/bin/nest g co core/user",
		"/bin/nest g s core/user",
		"code .",
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Plan() = %v, want %v", got, want)
	}

	if plan[0].Dir != "/work" {
		t.Errorf("nest new runs in %q, want /work", plan[0].Dir)
	}
	for _, c := range plan[1:] {
		if c.Dir != filepath.Join("/work", "shop") {
			t.Errorf("%s runs in %q", c, c.Dir)
		}
	}

	if len(cmds.calls) != 0 || len(inv.Calls()) != 0 {
		t.Error("Plan() ran commands")
	}
}

func TestPlanNil(t *testing.T) {
	s, _, _, _ := setup(t)
	plan, err := s.Plan(nil)
	if err != nil || plan != nil {
		t.Errorf("Plan(nil) = %v, %v", plan, err)
	}
}
