package main

// Notes:
// - runConfig: tests that set WIKIPREVIEW_* variables use t.Setenv and so
//   cannot run in parallel.

import (
	"context"
	"strings"
	"testing"

	"github.com/alnah/go-wikipreview/internal/config"
	"github.com/alnah/go-wikipreview/internal/yamlutil"
)

// ---------------------------------------------------------------------------
// TestRunConfig
// ---------------------------------------------------------------------------

func TestRunConfig_Defaults(t *testing.T) {
	t.Parallel()

	env, stdout, stderr := newTestEnv("")
	if code := runMain(context.Background(), []string{"wikipreview", "config", "-q"}, env); code != ExitSuccess {
		t.Fatalf("exit = %d, stderr: %s", code, stderr.String())
	}

	var got config.Config
	if err := yamlutil.Decode(stdout.Bytes(), &got); err != nil {
		t.Fatalf("printed config is not valid YAML: %v\n%s", err, stdout.String())
	}
	if !got.Output.Standalone || !got.Output.Sanitize {
		t.Errorf("default output flags lost: %+v", got.Output)
	}
}

func TestRunConfig_EnvOverrides(t *testing.T) {
	t.Setenv("WIKIPREVIEW_IMAGE_PREFIX", "https://img.example/")
	t.Setenv("WIKIPREVIEW_MAX_NESTING", "8")

	env, stdout, stderr := newTestEnv("")
	if code := runMain(context.Background(), []string{"wikipreview", "config"}, env); code != ExitSuccess {
		t.Fatalf("exit = %d, stderr: %s", code, stderr.String())
	}

	out := stdout.String()
	for _, want := range []string{"imagePrefix: https://img.example/", "maxNesting: 8"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestRunConfig_UnknownEnvWarning(t *testing.T) {
	t.Setenv("WIKIPREVIEW_IMAGE_PREFX", "x")

	env, _, stderr := newTestEnv("")
	if code := runMain(context.Background(), []string{"wikipreview", "config"}, env); code != ExitSuccess {
		t.Fatalf("exit = %d", code)
	}
	if !strings.Contains(stderr.String(), "WIKIPREVIEW_IMAGE_PREFX") {
		t.Errorf("stderr should warn about the typo: %q", stderr.String())
	}
}

func TestRunConfig_File(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	cfgPath := writeFile(t, dir, "site.yaml", "style: plain\ndocument:\n  lang: de\n")

	env, stdout, stderr := newTestEnv("")
	if code := runMain(context.Background(), []string{"wikipreview", "config", "--config", cfgPath}, env); code != ExitSuccess {
		t.Fatalf("exit = %d, stderr: %s", code, stderr.String())
	}

	out := stdout.String()
	for _, want := range []string{"style: plain", "lang: de"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestRunConfig_Errors(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	invalid := writeFile(t, dir, "bad.yaml", "render:\n  maxNesting: 9999\n")

	tests := []struct {
		name string
		args []string
		want int
	}{
		{"missing config", []string{"-c", "does-not-exist"}, ExitUsage},
		{"invalid value", []string{"-c", invalid}, ExitUsage},
		{"unknown flag", []string{"--bogus"}, ExitUsage},
		{"help", []string{"--help"}, ExitSuccess},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			env, _, stderr := newTestEnv("")
			args := append([]string{"wikipreview", "config"}, tt.args...)
			if code := runMain(context.Background(), args, env); code != tt.want {
				t.Errorf("exit = %d, want %d (stderr: %s)", code, tt.want, stderr.String())
			}
		})
	}
}
