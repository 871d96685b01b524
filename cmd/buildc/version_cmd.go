package main

import (
	"fmt"
	"runtime/debug"
)

// These are set via -ldflags during build, mirroring banksean-sand's
// version package, inlined here since buildc only ever prints them from one
// place.
var (
	GitRepo   string
	GitBranch string
	GitCommit string
	BuildTime string
)

// VersionCmd prints build provenance: repo, branch, commit and build time if
// stamped via -ldflags, falling back to the Go module's embedded VCS info
// otherwise, matching banksean-sand's VersionCmd.
type VersionCmd struct{}

func (c *VersionCmd) Run(cctx *Context) error {
	fmt.Printf("Git Repository: %s\n", GitRepo)
	fmt.Printf("Git Branch: %s\n", GitBranch)
	fmt.Printf("Git Commit: %s\n", GitCommit)
	fmt.Printf("Build Time: %s\n", BuildTime)

	buildInfo, ok := debug.ReadBuildInfo()
	if !ok {
		fmt.Println("Build info not available")
		return nil
	}

	for _, setting := range buildInfo.Settings {
		if setting.Key == "vcs.revision" && GitCommit == "" {
			fmt.Printf("Git Commit: %s\n", setting.Value)
		}
		if setting.Key == "vcs.time" && BuildTime == "" {
			fmt.Printf("Commit Time: %s\n", setting.Value)
		}
		if setting.Key == "vcs.modified" {
			fmt.Printf("Modified: %s\n", setting.Value)
		}
	}
	return nil
}
