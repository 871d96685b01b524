package linker

import (
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/banksean/buildc/internal/builderr"
	"github.com/banksean/buildc/internal/config"
	"github.com/banksean/buildc/internal/source"
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

func TestLinkEmptyObjectsIsError(t *testing.T) {
	cfg := config.Default()
	err := Link(nil, filepath.Join(t.TempDir(), "out", "app"), cfg, config.Debug, nil)
	if err == nil {
		t.Fatal("expected an error when linking with no objects")
	}
	if _, ok := err.(*builderr.Link); !ok {
		t.Fatalf("err = %T, want *builderr.Link", err)
	}
}

func TestLinkProducesExecutable(t *testing.T) {
	requireToolchain(t)

	dir := t.TempDir()
	srcPath := filepath.Join(dir, "main.c")
	objPath := filepath.Join(dir, "main.o")
	outPath := filepath.Join(dir, "out", "app")

	if err := os.WriteFile(srcPath, []byte("int main(void) { return 0; }\n"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
		t.Fatalf("MkdirAll: %v", err)
	}

	compile := exec.Command("gcc", "-c", srcPath, "-o", objPath)
	if out, err := compile.CombinedOutput(); err != nil {
		t.Fatalf("gcc -c failed: %v\n%s", err, out)
	}

	cfg := config.Default()
	task := source.ObjectTask{ObjectPath: objPath}

	if err := Link([]source.ObjectTask{task}, outPath, cfg, config.Debug, nil); err != nil {
		t.Fatalf("Link: %v", err)
	}
	if _, err := os.Stat(outPath); err != nil {
		t.Errorf("expected %s to exist after linking", outPath)
	}
}
