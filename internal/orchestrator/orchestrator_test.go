package orchestrator

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/banksean/buildc/internal/config"
	"github.com/banksean/buildc/internal/progress"
)

func requireToolchain(t *testing.T) {
	t.Helper()
	if _, err := exec.LookPath("gcc"); err != nil {
		t.Skip("gcc not available on PATH")
	}
	if _, err := exec.LookPath("g++"); err != nil {
		t.Skip("g++ not available on PATH")
	}
}

func TestBuildEndToEnd(t *testing.T) {
	requireToolchain(t)

	dir := t.TempDir()
	srcDir := filepath.Join(dir, "src")
	if err := os.MkdirAll(srcDir, 0o755); err != nil {
		t.Fatalf("MkdirAll: %v", err)
	}
	if err := os.WriteFile(filepath.Join(srcDir, "main.c"), []byte("int main(void) { return 0; }\n"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	cfg := config.Default()
	cfg.AppName = "app"
	cfg.SourceDir = srcDir
	cfg.OutputDir = filepath.Join(dir, "out")
	cfg.TempDir = filepath.Join(dir, "target")

	orch := New(progress.NewNullSink())
	defer orch.Close()

	result, err := orch.Build(context.Background(), cfg, config.Debug, nil)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if result.Compiled != 1 {
		t.Errorf("Compiled = %d, want 1", result.Compiled)
	}
	if _, err := os.Stat(result.BinaryPath); err != nil {
		t.Errorf("expected binary %s to exist", result.BinaryPath)
	}

	// Rebuilding with nothing changed should compile zero files.
	result2, err := orch.Build(context.Background(), cfg, config.Debug, nil)
	if err != nil {
		t.Fatalf("second Build: %v", err)
	}
	if result2.Compiled != 0 {
		t.Errorf("second Compiled = %d, want 0", result2.Compiled)
	}
}

func TestBuildFailsOnMissingSourceDir(t *testing.T) {
	dir := t.TempDir()
	cfg := config.Default()
	cfg.SourceDir = filepath.Join(dir, "does-not-exist")
	cfg.OutputDir = filepath.Join(dir, "out")
	cfg.TempDir = filepath.Join(dir, "target")

	orch := New(progress.NewNullSink())
	defer orch.Close()

	if _, err := orch.Build(context.Background(), cfg, config.Debug, nil); err == nil {
		t.Fatal("expected an error discovering a missing source directory")
	}
}
