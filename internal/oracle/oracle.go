// Package oracle decides, per translation unit, whether its object file is
// stale and must be recompiled.
package oracle

import (
	"os"
	"time"

	"github.com/banksean/buildc/internal/config"
	"github.com/banksean/buildc/internal/depfile"
	"github.com/banksean/buildc/internal/source"
)

// ShouldRecompile reports whether task's object file is stale. It returns
// true when any of:
//  1. incremental is disabled (force rebuild).
//  2. the object file does not exist, or its mtime cannot be read.
//  3. the depfile does not exist.
//  4. the depfile fails to parse.
//  5. any listed dependency is newer than the object's mtime, or no longer
//     exists.
//
// Comparison against the object's mtime is strictly greater-than; a missing
// dependency is treated as newer, forcing a rebuild so the compiler itself
// surfaces the error.
func ShouldRecompile(task source.ObjectTask, cfg *config.ProjectConfig) bool {
	if !cfg.Incremental {
		return true
	}

	objInfo, err := os.Stat(task.ObjectPath)
	if err != nil {
		return true
	}
	objModTime := objInfo.ModTime()

	if _, err := os.Stat(task.DepfilePath); err != nil {
		return true
	}

	deps, err := depfile.Parse(task.DepfilePath)
	if err != nil {
		return true
	}

	for _, dep := range deps {
		if isNewerThan(dep, objModTime) {
			return true
		}
	}

	return false
}

func isNewerThan(path string, reference time.Time) bool {
	info, err := os.Stat(path)
	if err != nil {
		// Missing dependency (e.g. a deleted header) forces a rebuild.
		return true
	}
	return info.ModTime().After(reference)
}
