// Package source discovers C/C++ translation units under a project's source
// tree and computes the mirrored object/depfile paths each one compiles to.
package source

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/banksean/buildc/internal/builderr"
)

// Language is the translation-unit language a SourceFile was classified as.
type Language int

const (
	C Language = iota
	Cpp
)

func (l Language) String() string {
	if l == Cpp {
		return "c++"
	}
	return "c"
}

// SourceFile is a single C or C++ translation unit, determined at discovery
// and immutable thereafter.
type SourceFile struct {
	AbsolutePath string
	RelativePath string
	Language     Language
}

// ObjectTask is the unit of scheduling and caching: one SourceFile plus the
// object and depfile paths it compiles to. object_path and depfile_path
// mirror source.relative_path under temp_dir with its extension replaced by
// .o and .d, so sources in different directories never collide; two sources
// that differ only in extension (foo.c and foo.cpp) map to the same object
// and depfile paths.
type ObjectTask struct {
	Source     SourceFile
	ObjectPath string
	DepfilePath string
}

var extLanguage = map[string]Language{
	"c": C, "cpp": Cpp, "cc": Cpp, "cxx": Cpp, "c++": Cpp,
}

func skipDir(name string) bool {
	return strings.HasPrefix(name, ".") || name == "target" || name == "out"
}

// Discover recursively walks sourceDir, classifying every file whose
// (lowercased) extension is recognized as a C or C++ translation unit.
// Directories whose name starts with "." or equals "target" or "out" are not
// traversed.
func Discover(sourceDir string) ([]SourceFile, error) {
	var sources []SourceFile

	err := filepath.WalkDir(sourceDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return builderr.NewIo(fmt.Sprintf("cannot read %s", path), err)
		}
		if d.IsDir() {
			if path != sourceDir && skipDir(d.Name()) {
				return fs.SkipDir
			}
			return nil
		}

		ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(d.Name()), "."))
		lang, ok := extLanguage[ext]
		if !ok {
			return nil
		}

		rel, err := filepath.Rel(sourceDir, path)
		if err != nil {
			return builderr.NewIo(fmt.Sprintf("cannot relativize %s against %s", path, sourceDir), err)
		}

		sources = append(sources, SourceFile{
			AbsolutePath: path,
			RelativePath: filepath.ToSlash(rel),
			Language:     lang,
		})
		return nil
	})
	if err != nil {
		if _, ok := err.(*builderr.Io); ok {
			return nil, err
		}
		return nil, builderr.NewIo(fmt.Sprintf("cannot walk %s", sourceDir), err)
	}

	// filepath.WalkDir already visits in lexical order per directory, but
	// sort the flattened result too so discovery order never depends on the
	// host filesystem's directory-entry ordering.
	sort.Slice(sources, func(i, j int) bool {
		return sources[i].RelativePath < sources[j].RelativePath
	})

	return sources, nil
}

// TaskFor computes the ObjectTask for src under tempDir, mirroring its
// relative path with .o/.d extensions.
func TaskFor(src SourceFile, tempDir string) ObjectTask {
	rel := filepath.FromSlash(src.RelativePath)
	ext := filepath.Ext(rel)
	base := strings.TrimSuffix(rel, ext)

	return ObjectTask{
		Source:      src,
		ObjectPath:  filepath.Join(tempDir, base+".o"),
		DepfilePath: filepath.Join(tempDir, base+".d"),
	}
}

// EnsureDirs creates outputDir, tempDir, and every object file's parent
// directory.
func EnsureDirs(outputDir, tempDir string, tasks []ObjectTask) error {
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return builderr.NewIo(fmt.Sprintf("cannot create output_dir %s", outputDir), err)
	}
	if err := os.MkdirAll(tempDir, 0o755); err != nil {
		return builderr.NewIo(fmt.Sprintf("cannot create temp_dir %s", tempDir), err)
	}
	for _, t := range tasks {
		dir := filepath.Dir(t.ObjectPath)
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return builderr.NewIo(fmt.Sprintf("cannot create directory %s", dir), err)
		}
	}
	return nil
}
