package workerpool

import (
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/banksean/buildc/internal/cancel"
	"github.com/banksean/buildc/internal/config"
	"github.com/banksean/buildc/internal/progress"
	"github.com/banksean/buildc/internal/source"
	"github.com/banksean/buildc/internal/supervisor"
)

func requireGcc(t *testing.T) {
	t.Helper()
	if _, err := exec.LookPath("gcc"); err != nil {
		t.Skip("gcc not available on PATH")
	}
}

func newTestPool(t *testing.T, cfg *config.ProjectConfig) *Pool {
	t.Helper()
	return New(cfg, config.Debug, nil, progress.NewNullSink(), cancel.New(), supervisor.NewActiveChildren(false))
}

// recordingSink captures Info lines so tests can assert on what gets echoed.
type recordingSink struct {
	infos []string
}

func (s *recordingSink) Info(msg string)               { s.infos = append(s.infos, msg) }
func (s *recordingSink) Compiling(int, int, string)     {}
func (s *recordingSink) Warn(msg string)                { s.infos = append(s.infos, msg) }

func writeSource(t *testing.T, dir, name, content string) source.SourceFile {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	return source.SourceFile{AbsolutePath: path, RelativePath: name, Language: source.C}
}

func TestRunCompilesStaleSources(t *testing.T) {
	requireGcc(t)

	dir := t.TempDir()
	tempDir := filepath.Join(dir, "target")
	if err := os.MkdirAll(tempDir, 0o755); err != nil {
		t.Fatalf("MkdirAll: %v", err)
	}

	a := writeSource(t, dir, "a.c", "int add(int a, int b) { return a + b; }\n")
	b := writeSource(t, dir, "b.c", "int sub(int a, int b) { return a - b; }\n")

	tasks := []source.ObjectTask{
		source.TaskFor(a, tempDir),
		source.TaskFor(b, tempDir),
	}
	for _, task := range tasks {
		if err := os.MkdirAll(filepath.Dir(task.ObjectPath), 0o755); err != nil {
			t.Fatalf("MkdirAll: %v", err)
		}
	}

	cfg := config.Default()
	cfg.ParallelJobs = 2
	pool := newTestPool(t, cfg)

	all, compiled, err := pool.Run(tasks)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if compiled != 2 {
		t.Errorf("compiled = %d, want 2", compiled)
	}
	if len(all) != 2 {
		t.Errorf("len(all) = %d, want 2", len(all))
	}
	for _, task := range tasks {
		if _, err := os.Stat(task.ObjectPath); err != nil {
			t.Errorf("expected object file %s to exist", task.ObjectPath)
		}
	}
}

func TestRunSkipsUpToDateSources(t *testing.T) {
	requireGcc(t)

	dir := t.TempDir()
	tempDir := filepath.Join(dir, "target")
	if err := os.MkdirAll(tempDir, 0o755); err != nil {
		t.Fatalf("MkdirAll: %v", err)
	}

	a := writeSource(t, dir, "a.c", "int add(int a, int b) { return a + b; }\n")
	task := source.TaskFor(a, tempDir)
	if err := os.MkdirAll(filepath.Dir(task.ObjectPath), 0o755); err != nil {
		t.Fatalf("MkdirAll: %v", err)
	}

	cfg := config.Default()
	pool := newTestPool(t, cfg)

	if _, compiled, err := pool.Run([]source.ObjectTask{task}); err != nil || compiled != 1 {
		t.Fatalf("initial compile failed: compiled=%d err=%v", compiled, err)
	}

	_, compiled, err := pool.Run([]source.ObjectTask{task})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if compiled != 0 {
		t.Errorf("compiled = %d, want 0 for an up-to-date source", compiled)
	}
}

func TestRunFailFastStopsOnFirstError(t *testing.T) {
	requireGcc(t)

	dir := t.TempDir()
	tempDir := filepath.Join(dir, "target")
	if err := os.MkdirAll(tempDir, 0o755); err != nil {
		t.Fatalf("MkdirAll: %v", err)
	}

	bad := writeSource(t, dir, "bad.c", "this is not valid C +++\n")
	task := source.TaskFor(bad, tempDir)
	if err := os.MkdirAll(filepath.Dir(task.ObjectPath), 0o755); err != nil {
		t.Fatalf("MkdirAll: %v", err)
	}

	cfg := config.Default()
	cfg.AggregateErrors = false
	pool := newTestPool(t, cfg)

	_, _, err := pool.Run([]source.ObjectTask{task})
	if err == nil {
		t.Fatal("expected a compile error")
	}
}

func TestRunVerboseEchoesCompilerInvocation(t *testing.T) {
	requireGcc(t)

	dir := t.TempDir()
	tempDir := filepath.Join(dir, "target")
	if err := os.MkdirAll(tempDir, 0o755); err != nil {
		t.Fatalf("MkdirAll: %v", err)
	}

	a := writeSource(t, dir, "a.c", "int add(int a, int b) { return a + b; }\n")
	task := source.TaskFor(a, tempDir)
	if err := os.MkdirAll(filepath.Dir(task.ObjectPath), 0o755); err != nil {
		t.Fatalf("MkdirAll: %v", err)
	}

	cfg := config.Default()
	cfg.Verbose = true
	sink := &recordingSink{}
	pool := New(cfg, config.Debug, nil, sink, cancel.New(), supervisor.NewActiveChildren(false))

	if _, compiled, err := pool.Run([]source.ObjectTask{task}); err != nil || compiled != 1 {
		t.Fatalf("Run: compiled=%d err=%v", compiled, err)
	}

	found := false
	for _, line := range sink.infos {
		if strings.HasPrefix(line, "  $ "+cfg.GccPath) {
			found = true
		}
	}
	if !found {
		t.Errorf("expected a verbose compiler-invocation line, got %v", sink.infos)
	}
}

func TestRunNoTasksReturnsUpToDate(t *testing.T) {
	cfg := config.Default()
	pool := newTestPool(t, cfg)

	all, compiled, err := pool.Run(nil)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if compiled != 0 || len(all) != 0 {
		t.Errorf("compiled=%d len(all)=%d, want 0, 0", compiled, len(all))
	}
}
