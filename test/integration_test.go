// ABOUTME: Integration tests for libdir CLI commands.
// ABOUTME: Builds the binary and drives migrate, add, list, show, seed and export.

package test

import (
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
)

var libdirBin string

func TestMain(m *testing.M) {
	cmd := exec.Command("go", "build", "-o", "bin/libdir", "./cmd/libdir")
	cmd.Dir = ".."
	if err := cmd.Run(); err != nil {
		panic(err)
	}

	wd, _ := os.Getwd()
	libdirBin = filepath.Join(wd, "..", "bin", "libdir")

	os.Exit(m.Run())
}

func TestMigrateAddListShow(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")

	mustRun(t, dbPath, "migrate")

	out := mustRun(t, dbPath, "add", "Foo Bar", "--tags", "a, b, a", "--description", "A **fast** library")
	if !strings.Contains(out, "Submitted Foo Bar (foo-bar)") {
		t.Errorf("expected submission confirmation: %s", out)
	}

	out = mustRun(t, dbPath, "list")
	if !strings.Contains(out, "Foo Bar") || !strings.Contains(out, "source: view") {
		t.Errorf("expected library from the view: %s", out)
	}
	if !strings.Contains(out, "a, b") {
		t.Errorf("expected de-duplicated tags: %s", out)
	}

	out = mustRun(t, dbPath, "show", "foo-bar")
	if !strings.Contains(out, "Slug: foo-bar") || !strings.Contains(out, "fast") {
		t.Errorf("unexpected show output: %s", out)
	}

	out = mustRun(t, dbPath, "tag", "list")
	if !strings.Contains(out, "a (1)") || !strings.Contains(out, "b (1)") {
		t.Errorf("expected tag counts: %s", out)
	}
}

func TestListFallsBackToTables(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")

	mustRun(t, dbPath, "migrate", "--no-view")
	mustRun(t, dbPath, "add", "Vue Formulate", "--framework", "Vue", "--tags", "forms")

	out := mustRun(t, dbPath, "list", "--tag", "forms")
	if !strings.Contains(out, "Vue Formulate") || !strings.Contains(out, "source: tables") {
		t.Errorf("expected library from the tables: %s", out)
	}
}

func TestUnconfiguredUsesSample(t *testing.T) {
	cmd := exec.Command(libdirBin, "list", "--framework", "Svelte") //nolint:gosec // Running our own test binary is expected in integration tests
	cmd.Env = cleanEnv()
	raw, err := cmd.CombinedOutput()
	out := string(raw)
	if err != nil {
		t.Fatalf("list failed: %v\n%s", err, out)
	}
	if !strings.Contains(out, "source: sample") || !strings.Contains(out, "[Svelte]") {
		t.Errorf("expected sample data: %s", out)
	}

	cmd = exec.Command(libdirBin, "add", "Nope") //nolint:gosec // Running our own test binary is expected in integration tests
	cmd.Env = cleanEnv()
	raw, err = cmd.CombinedOutput()
	if err == nil || !strings.Contains(string(raw), "submissions are disabled") {
		t.Errorf("expected disabled submission error, got %v: %s", err, raw)
	}
}

func TestSeedExportImport(t *testing.T) {
	dir := t.TempDir()
	source := filepath.Join(dir, "source.db")
	target := filepath.Join(dir, "target.db")
	exportPath := filepath.Join(dir, "export.json")

	mustRun(t, source, "migrate")
	out := mustRun(t, source, "seed")
	if !strings.Contains(out, "already present)") {
		t.Errorf("unexpected seed output: %s", out)
	}
	out = mustRun(t, source, "seed")
	if !strings.Contains(out, "Seeded 0 libraries") {
		t.Errorf("expected second seed to skip everything: %s", out)
	}

	mustRun(t, source, "export", "--format", "json", "--output", exportPath)
	data, err := os.ReadFile(exportPath)
	if err != nil {
		t.Fatalf("read export: %v", err)
	}
	if !strings.Contains(string(data), `"slug": "shadcn-ui"`) {
		t.Errorf("expected seeded library in export")
	}

	mustRun(t, target, "migrate")
	out = mustRun(t, target, "import", exportPath)
	if !strings.Contains(out, "(0 skipped)") {
		t.Errorf("unexpected import output: %s", out)
	}

	out = mustRun(t, target, "list", "--search", "shadcn")
	if !strings.Contains(out, "shadcn/ui") || !strings.Contains(out, "source: view") {
		t.Errorf("expected imported library: %s", out)
	}
}

func cleanEnv() []string {
	var env []string
	for _, kv := range os.Environ() {
		if !strings.HasPrefix(kv, "LIBDIR_") {
			env = append(env, kv)
		}
	}
	return append(env, "NO_COLOR=1")
}

func runLibdir(dbPath string, args ...string) (string, error) {
	allArgs := append([]string{"--db", dbPath}, args...)
	cmd := exec.Command(libdirBin, allArgs...) //nolint:gosec // Running our own test binary is expected in integration tests
	cmd.Env = append(cleanEnv(), "LIBDIR_ANON_KEY=test-anon", "LIBDIR_LOG_LEVEL=error")
	out, err := cmd.CombinedOutput()
	return string(out), err
}

func mustRun(t *testing.T, dbPath string, args ...string) string {
	t.Helper()
	out, err := runLibdir(dbPath, args...)
	if err != nil {
		t.Fatalf("%s failed: %v\n%s", strings.Join(args, " "), err, out)
	}
	return out
}
