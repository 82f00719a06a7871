package invoker

import (
	"bytes"
	"context"
	stderrors "errors"
	"os"
	"path/filepath"
	"reflect"
	"runtime"
	"strings"
	"testing"

	"github.com/eggybyte-technology/nest-combo/internal/errors"
	"github.com/eggybyte-technology/nest-combo/internal/expander"
	"github.com/eggybyte-technology/nest-combo/internal/resources"
	"github.com/eggybyte-technology/nest-combo/internal/testingx"
	"github.com/eggybyte-technology/nest-combo/internal/toolrunner"
	"github.com/eggybyte-technology/nest-combo/internal/ui"
)

func quietUI(t *testing.T) *bytes.Buffer {
	t.Helper()
	var out bytes.Buffer
	ui.Reset()
	ui.SetOutput(&out, &out)
	t.Cleanup(ui.Reset)
	return &out
}

func instructions() []expander.Instruction {
	return []expander.Instruction{
		{Action: resources.Module, TargetPath: "core", ProjectRoot: "shop"},
		{Action: resources.Module, TargetPath: "core/user", ProjectRoot: "shop"},
		{Action: resources.Controller, TargetPath: "core/user", ProjectRoot: "shop"},
		{Action: resources.Service, TargetPath: "core/user", ProjectRoot: "shop"},
	}
}

func TestRunSequential(t *testing.T) {
	out := quietUI(t)
	inv := testingx.NewRecordingInvoker()
	logger := testingx.NewMockLogger(t)

	if err := Run(context.Background(), inv, instructions(), logger); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	want := []string{"module core", "module core/user", "controller core/user", "service core/user"}
	if got := inv.Trace(); !reflect.DeepEqual(got, want) {
		t.Errorf("calls = %v, want %v", got, want)
	}
	entries := logger.EntriesAt("DEBUG")
	if len(entries) != len(want) {
		t.Fatalf("debug entries = %d, want %d", len(entries), len(want))
	}
	last := entries[len(entries)-1]
	if last.Field("action") != "service" || last.Field("target") != "core/user" || last.Field("step") != 4 || last.Field("total") != 4 {
		t.Errorf("last entry = %+v", last)
	}
	if !strings.Contains(out.String(), "Generating controller for core/user") {
		t.Errorf("progress output = %q", out.String())
	}
}

func TestRunStopsAtFirstFailure(t *testing.T) {
	quietUI(t)
	inv := testingx.NewRecordingInvoker()
	boom := stderrors.New("boom")
	inv.FailOn("core/user", boom)
	logger := testingx.NewMockLogger(t)

	err := Run(context.Background(), inv, instructions(), logger)

	var invErr *InvocationError
	if !stderrors.As(err, &invErr) {
		t.Fatalf("Run() error = %v, want *InvocationError", err)
	}
	if invErr.Action != resources.Module || invErr.TargetPath != "core/user" {
		t.Errorf("InvocationError = %+v", invErr)
	}
	if !stderrors.Is(err, boom) {
		t.Error("InvocationError does not unwrap to the cause")
	}
	if got := inv.Trace(); len(got) != 2 {
		t.Errorf("calls after failure = %v, want 2 calls", got)
	}
	logger.AssertLogged("ERROR", "generator failed")
	if err.Error() != "generating module for core/user: boom" {
		t.Errorf("Error() = %q", err.Error())
	}
}

func TestRunEmpty(t *testing.T) {
	quietUI(t)
	inv := testingx.NewRecordingInvoker()
	if err := Run(context.Background(), inv, nil, nil); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if len(inv.Calls()) != 0 {
		t.Errorf("unexpected calls %v", inv.Calls())
	}
}

func TestRunCanceled(t *testing.T) {
	quietUI(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	inv := testingx.NewRecordingInvoker()
	err := Run(ctx, inv, instructions(), nil)
	if !stderrors.Is(err, context.Canceled) {
		t.Fatalf("Run() error = %v, want context.Canceled", err)
	}
	if len(inv.Calls()) != 0 {
		t.Errorf("invoked after cancel: %v", inv.Trace())
	}
}

func TestArgs(t *testing.T) {
	tests := []struct {
		name    string
		in      expander.Instruction
		want    []string
		wantErr bool
	}{
		{
			name: "module with options",
			in:   expander.Instruction{Action: resources.Module, TargetPath: "core/user", Options: []string{"--no-spec", "--flat"}},
			want: []string{"g", "mo", "core/user", "--no-spec", "--flat"},
		},
		{
			name: "interceptor",
			in:   expander.Instruction{Action: resources.Interceptor, TargetPath: "auth"},
			want: []string{"g", "itc", "auth"},
		},
		{
			name:    "unknown kind",
			in:      expander.Instruction{Action: "bogus", TargetPath: "x"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Args(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Args() error = %v, wantErr %v", err, tt.wantErr)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Args() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestNestInvoker(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("requires /bin/sh")
	}

	bin := t.TempDir()
	project := t.TempDir()
	nest := filepath.Join(bin, "nest")
	script := "#!/bin/sh\necho \"$@\" >> calls.txt\n[ \"$3\" != fail ]\n"
	if err := os.WriteFile(nest, []byte(script), 0o755); err != nil {
		t.Fatal(err)
	}

	inv := NewNestInvoker(nest, toolrunner.NewRunner(""))
	if inv.Binary() != nest {
		t.Errorf("Binary() = %q", inv.Binary())
	}

	ok := expander.Instruction{Action: resources.Controller, TargetPath: "core/user", Options: []string{"--no-spec"}, ProjectRoot: project}
	if err := inv.Invoke(context.Background(), ok); err != nil {
		t.Fatalf("Invoke() error = %v", err)
	}

	calls, err := os.ReadFile(filepath.Join(project, "calls.txt"))
	if err != nil {
		t.Fatalf("nest did not run in the project root: %v", err)
	}
	if got := strings.TrimSpace(string(calls)); got != "g co core/user --no-spec" {
		t.Errorf("nest args = %q", got)
	}

	bad := expander.Instruction{Action: resources.Module, TargetPath: "fail", ProjectRoot: project}
	if err := inv.Invoke(context.Background(), bad); !errors.IsCode(err, errors.CodeAborted) {
		t.Errorf("Invoke() error = %v, want ABORTED", err)
	}
}

func TestInvocationErrorShowsCodeOnce(t *testing.T) {
	cause := errors.Wrap(errors.CodeAborted, "/bin/nest", stderrors.New("exit status 3"))
	invErr := &InvocationError{Action: resources.Controller, TargetPath: "core/user", Err: cause}

	if got, want := invErr.Error(), "generating controller for core/user: /bin/nest: exit status 3"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}

	wrapped := errors.Wrap(errors.CodeOf(invErr), "generate modules", invErr)
	want := "ABORTED: generate modules: generating controller for core/user: /bin/nest: exit status 3"
	if got := wrapped.Error(); got != want {
		t.Errorf("wrapped Error() = %q, want %q", got, want)
	}
	if strings.Count(wrapped.Error(), "ABORTED") != 1 {
		t.Errorf("code repeated in %q", wrapped.Error())
	}
}
