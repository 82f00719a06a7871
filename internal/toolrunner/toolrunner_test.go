package toolrunner

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
	"time"

	"github.com/eggybyte-technology/nest-combo/internal/errors"
	"github.com/eggybyte-technology/nest-combo/internal/settings"
)

func skipOnWindows(t *testing.T) {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("requires /bin/sh")
	}
}

func TestRunnerExecute(t *testing.T) {
	skipOnWindows(t)

	tests := []struct {
		name     string
		args     []string
		wantCode errors.Code
		wantExit int
	}{
		{name: "success", args: []string{"-c", "true"}, wantExit: 0},
		{name: "non-zero exit", args: []string{"-c", "echo broken >&2; exit 3"}, wantCode: errors.CodeAborted, wantExit: 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewRunner("")
			result, err := r.Run(context.Background(), "/bin/sh", tt.args...)
			if errors.CodeOf(err) != tt.wantCode {
				t.Fatalf("Run() error = %v, want code %q", err, tt.wantCode)
			}
			if result.ExitCode != tt.wantExit {
				t.Errorf("ExitCode = %d, want %d", result.ExitCode, tt.wantExit)
			}
			if tt.wantCode == errors.CodeAborted && !strings.Contains(err.Error(), "broken") {
				t.Errorf("error %q does not carry stderr", err)
			}
		})
	}
}

func TestRunnerMissingBinary(t *testing.T) {
	r := NewRunner("")
	result, err := r.Run(context.Background(), "nest-combo-definitely-missing")
	if !errors.IsCode(err, errors.CodeUnavailable) {
		t.Fatalf("Run() error = %v, want UNAVAILABLE", err)
	}
	if result.ExitCode != -1 {
		t.Errorf("ExitCode = %d, want -1", result.ExitCode)
	}
}

func TestRunnerCanceled(t *testing.T) {
	skipOnWindows(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewRunner("").Run(ctx, "/bin/sh", "-c", "true")
	if !errors.IsCode(err, errors.CodeCanceled) {
		t.Fatalf("Run() error = %v, want CANCELED", err)
	}
}

func TestRunnerWorkDirAndStreaming(t *testing.T) {
	skipOnWindows(t)

	dir := t.TempDir()
	var out bytes.Buffer
	r := NewRunner("").WithWorkDir(dir)
	r.SetOutput(&out, nil)

	result, err := r.Run(context.Background(), "/bin/sh", "-c", "pwd")
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	want, _ := filepath.EvalSymlinks(dir)
	got, _ := filepath.EvalSymlinks(strings.TrimSpace(result.Stdout))
	if got != want {
		t.Errorf("pwd = %q, want %q", got, want)
	}
	if out.String() != result.Stdout {
		t.Errorf("streamed %q, captured %q", out.String(), result.Stdout)
	}
	if r.WorkDir() != dir {
		t.Errorf("WorkDir() = %q", r.WorkDir())
	}
}

func writeFakeNest(t *testing.T, dir string, exit int) {
	t.Helper()
	writeNestScript(t, dir, "exit "+string(rune('0'+exit)))
}

func writeNestScript(t *testing.T, dir, body string) {
	t.Helper()
	script := "#!/bin/sh\n" + body + "\n"
	if err := os.WriteFile(filepath.Join(dir, GlobalNest), []byte(script), 0o755); err != nil {
		t.Fatal(err)
	}
}

func TestResolveNestBinary(t *testing.T) {
	skipOnWindows(t)

	tests := []struct {
		name       string
		cfg        settings.Settings
		fakeNest   int // -1 for no nest on PATH
		wantSource NestSource
		wantPath   string
	}{
		{
			name:       "settings override",
			cfg:        settings.Settings{NestBinary: "/opt/nest/bin/nest", LocalNestBinary: "node_modules/.bin/nest"},
			fakeNest:   0,
			wantSource: NestFromSettings,
			wantPath:   "/opt/nest/bin/nest",
		},
		{
			name:       "global installation",
			cfg:        settings.Settings{LocalNestBinary: "node_modules/.bin/nest"},
			fakeNest:   0,
			wantSource: NestFromPath,
			wantPath:   GlobalNest,
		},
		{
			name:       "broken global falls back to local",
			cfg:        settings.Settings{LocalNestBinary: "/cache/node_modules/.bin/nest"},
			fakeNest:   1,
			wantSource: NestFromLocal,
			wantPath:   "/cache/node_modules/.bin/nest",
		},
		{
			name:       "missing global falls back to local",
			cfg:        settings.Settings{LocalNestBinary: "/cache/node_modules/.bin/nest"},
			fakeNest:   -1,
			wantSource: NestFromLocal,
			wantPath:   "/cache/node_modules/.bin/nest",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			if tt.fakeNest >= 0 {
				writeFakeNest(t, dir, tt.fakeNest)
			}
			t.Setenv("PATH", dir)

			got, err := ResolveNestBinary(context.Background(), tt.cfg)
			if err != nil {
				t.Fatalf("ResolveNestBinary() error = %v", err)
			}
			if got.Source != tt.wantSource || got.Path != tt.wantPath {
				t.Errorf("ResolveNestBinary() = %+v, want %s %s", got, tt.wantSource, tt.wantPath)
			}
		})
	}
}

func TestResolveNestBinaryLocalIsAbsolute(t *testing.T) {
	t.Setenv("PATH", t.TempDir())

	got, err := ResolveNestBinary(context.Background(), settings.Settings{LocalNestBinary: "node_modules/.bin/nest"})
	if err != nil {
		t.Fatalf("ResolveNestBinary() error = %v", err)
	}
	if !filepath.IsAbs(got.Path) {
		t.Errorf("Path = %q, want absolute", got.Path)
	}
	if !strings.Contains(got.String(), got.Path) {
		t.Errorf("String() = %q", got.String())
	}
}

func TestResolveNestBinaryHangingGlobal(t *testing.T) {
	skipOnWindows(t)

	dir := t.TempDir()
	writeNestScript(t, dir, "while :; do :; done")
	t.Setenv("PATH", dir)

	cfg := settings.Settings{LocalNestBinary: "/cache/node_modules/.bin/nest", ProbeTimeout: 100 * time.Millisecond}

	got, err := ResolveNestBinary(context.Background(), cfg)
	if err != nil {
		t.Fatalf("ResolveNestBinary() error = %v", err)
	}
	if got.Source != NestFromLocal || got.Path != cfg.LocalNestBinary {
		t.Errorf("ResolveNestBinary() = %+v, want local fallback", got)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := ResolveNestBinary(ctx, cfg); !errors.IsCode(err, errors.CodeCanceled) {
		t.Errorf("ResolveNestBinary() error = %v, want CANCELED", err)
	}
}
