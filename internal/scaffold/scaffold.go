// Package scaffold generates a new project skeleton: source tree, build
// output directories, a starter config.txt, a README, and a sample
// translation unit.
package scaffold

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/banksean/buildc/internal/builderr"
)

// Create writes a new project skeleton under name, failing if that directory
// already exists. Grounded on original_source/drakkar/src/build.rs's
// create_project.
func Create(name string) error {
	root := name

	if _, err := os.Stat(root); err == nil {
		return builderr.NewIo(fmt.Sprintf("directory %q already exists", root), nil)
	}

	for _, dir := range []string{"src", "out", "target"} {
		if err := os.MkdirAll(filepath.Join(root, dir), 0o755); err != nil {
			return builderr.NewIo(fmt.Sprintf("cannot create %s/%s", root, dir), err)
		}
	}

	if err := os.WriteFile(filepath.Join(root, "config.txt"), []byte(configTemplate(name)), 0o644); err != nil {
		return builderr.NewIo(fmt.Sprintf("cannot write %s/config.txt", root), err)
	}
	if err := os.WriteFile(filepath.Join(root, "README.md"), []byte(readmeTemplate(name)), 0o644); err != nil {
		return builderr.NewIo(fmt.Sprintf("cannot write %s/README.md", root), err)
	}
	if err := os.WriteFile(filepath.Join(root, "src", "main.cpp"), []byte(mainCppTemplate), 0o644); err != nil {
		return builderr.NewIo(fmt.Sprintf("cannot write %s/src/main.cpp", root), err)
	}

	return nil
}

func configTemplate(name string) string {
	return fmt.Sprintf(`# buildc config -- project: %s
app_name = "%s"
source_dir = "src/"
output_dir = "out/"
temp_dir = "target/"

# Compiler flags
c_flags = "-Wall -Wextra -std=c11"
cxx_flags = "-Wall -Wextra -std=c++17"
ld_flags = ""
include_dirs = ""
link_libs = ""

# Standards
c_standard = "c11"
cxx_standard = "c++17"

# Compiler paths (defaults: gcc, g++)
gcc_path = "gcc"
gpp_path = "g++"

# Build options
parallel_jobs = "4"
incremental = "true"
preserve_temp = "true"
use_process_groups = "false"
`, name, name)
}

func readmeTemplate(name string) string {
	return fmt.Sprintf(`# %s

A C/C++ project built with buildc.

## Building

`+"```sh"+`
buildc build           # debug build
buildc build release   # release build
buildc run              # build & run
`+"```"+`

## Project structure

`+"```"+`
src/        - source files (.c, .cpp, .cc, .cxx)
out/        - compiled binaries
target/     - object files and dependency files (.o, .d)
config.txt  - build configuration
`+"```"+`
`, name)
}

const mainCppTemplate = `#include <iostream>

int main() {
    std::cout << "Hello from buildc!" << std::endl;
    return 0;
}
`
