// Package compileargs materializes the exact argument vector for a single
// compiler invocation.
package compileargs

import (
	"fmt"

	"github.com/banksean/buildc/internal/config"
	"github.com/banksean/buildc/internal/source"
)

// Build returns the compiler path and argv for task. It is a pure function
// of (task, cfg, profile, extraFlags): compiler is gcc_path for C or gpp_path
// for C++; argv is, in order, "-c <source> -o <object>", the language's base
// flags, "-std=<standard>" if configured (never deduplicated against the base
// flags — see SPEC_FULL.md §4.5), profile flags, one "-I<dir>" per include
// directory, "-MMD -MP -MF <depfile>", then extraFlags verbatim so callers
// can override anything that came before.
func Build(task source.ObjectTask, cfg *config.ProjectConfig, profile config.BuildProfile, extraFlags []string) (string, []string) {
	compiler := cfg.GccPath
	baseFlags := cfg.CFlags
	standard := cfg.CStandard
	if task.Source.Language == source.Cpp {
		compiler = cfg.GppPath
		baseFlags = cfg.CxxFlags
		standard = cfg.CxxStandard
	}

	var args []string
	args = append(args, "-c", task.Source.AbsolutePath)
	args = append(args, "-o", task.ObjectPath)
	args = append(args, baseFlags...)

	if standard != "" {
		args = append(args, "-std="+standard)
	}

	switch profile {
	case config.Release:
		args = append(args, "-O2", "-DNDEBUG")
	default:
		args = append(args, "-g", "-O0", "-DDEBUG")
	}

	for _, inc := range cfg.IncludeDirs {
		args = append(args, fmt.Sprintf("-I%s", inc))
	}

	args = append(args, "-MMD", "-MP", "-MF", task.DepfilePath)

	args = append(args, extraFlags...)

	return compiler, args
}
