// Package linker invokes the C++ driver to produce the final binary from a
// build's compiled and up-to-date objects.
package linker

import (
	"runtime"
	"strings"

	"github.com/banksean/buildc/internal/builderr"
	"github.com/banksean/buildc/internal/config"
	"github.com/banksean/buildc/internal/source"
	"github.com/banksean/buildc/internal/supervisor"
)

// Link invokes gpp_path against every object in tasks (order preserved from
// discovery), writing outPath. Fails if tasks is empty. On hosts where
// executables require an extension, outPath is suffixed if it has none.
// Grounded on original_source/drakkar/src/build.rs's link_objects.
func Link(tasks []source.ObjectTask, outPath string, cfg *config.ProjectConfig, profile config.BuildProfile, extraFlags []string) error {
	if len(tasks) == 0 {
		return builderr.NewLink("no objects to link", nil)
	}

	outPath = withExeSuffix(outPath)

	var args []string
	for _, t := range tasks {
		args = append(args, t.ObjectPath)
	}
	args = append(args, "-o", outPath)
	args = append(args, cfg.LdFlags...)
	args = append(args, cfg.LinkLibs...)

	if profile == config.Release {
		args = append(args, "-s")
	}

	args = append(args, extraFlags...)

	child, err := supervisor.Spawn(cfg.GppPath, args, supervisor.SpawnOptions{
		NewProcessGroup: cfg.UseProcessGroups,
	})
	if err != nil {
		return err
	}

	status, _, stderr, err := supervisor.Wait(child)
	if err != nil {
		return err
	}

	if !status.Success {
		return builderr.NewLink(stderr, status.ExitCode)
	}
	return nil
}

// withExeSuffix appends ".exe" on hosts whose executables require an
// extension, unless outPath already has one.
func withExeSuffix(outPath string) string {
	if runtime.GOOS != "windows" {
		return outPath
	}
	if strings.Contains(lastSegment(outPath), ".") {
		return outPath
	}
	return outPath + ".exe"
}

func lastSegment(path string) string {
	for i := len(path) - 1; i >= 0; i-- {
		if path[i] == '/' || path[i] == '\\' {
			return path[i+1:]
		}
	}
	return path
}
