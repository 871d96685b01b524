package compileargs

import (
	"reflect"
	"testing"

	"github.com/banksean/buildc/internal/config"
	"github.com/banksean/buildc/internal/source"
)

func TestBuildOrdering(t *testing.T) {
	cfg := config.Default()
	cfg.CFlags = []string{"-Wall"}
	cfg.CStandard = "c11"
	cfg.IncludeDirs = []string{"include", "vendor/inc"}

	task := source.ObjectTask{
		Source:      source.SourceFile{AbsolutePath: "/proj/src/main.c", Language: source.C},
		ObjectPath:  "/proj/target/main.o",
		DepfilePath: "/proj/target/main.d",
	}

	compiler, args := Build(task, cfg, config.Debug, []string{"-DEXTRA"})

	if compiler != "gcc" {
		t.Errorf("compiler = %q, want gcc", compiler)
	}

	want := []string{
		"-c", "/proj/src/main.c",
		"-o", "/proj/target/main.o",
		"-Wall",
		"-std=c11",
		"-g", "-O0", "-DDEBUG",
		"-Iinclude", "-Ivendor/inc",
		"-MMD", "-MP", "-MF", "/proj/target/main.d",
		"-DEXTRA",
	}
	if !reflect.DeepEqual(args, want) {
		t.Errorf("Build() args =\n%#v\nwant\n%#v", args, want)
	}
}

func TestBuildSelectsCxxCompilerAndFlags(t *testing.T) {
	cfg := config.Default()
	cfg.CxxFlags = []string{"-Wall", "-Wextra"}
	cfg.CxxStandard = "c++17"

	task := source.ObjectTask{
		Source:      source.SourceFile{AbsolutePath: "/proj/src/main.cpp", Language: source.Cpp},
		ObjectPath:  "/proj/target/main.o",
		DepfilePath: "/proj/target/main.d",
	}

	compiler, args := Build(task, cfg, config.Release, nil)

	if compiler != "g++" {
		t.Errorf("compiler = %q, want g++", compiler)
	}
	want := []string{
		"-c", "/proj/src/main.cpp",
		"-o", "/proj/target/main.o",
		"-Wall", "-Wextra",
		"-std=c++17",
		"-O2", "-DNDEBUG",
		"-MMD", "-MP", "-MF", "/proj/target/main.d",
	}
	if !reflect.DeepEqual(args, want) {
		t.Errorf("Build() args =\n%#v\nwant\n%#v", args, want)
	}
}

func TestBuildOmitsStandardFlagWhenUnset(t *testing.T) {
	cfg := config.Default()
	task := source.ObjectTask{
		Source:      source.SourceFile{AbsolutePath: "a.c", Language: source.C},
		ObjectPath:  "a.o",
		DepfilePath: "a.d",
	}

	_, args := Build(task, cfg, config.Debug, nil)

	for _, a := range args {
		if len(a) >= 5 && a[:5] == "-std=" {
			t.Fatalf("expected no -std= flag, got %v", args)
		}
	}
}
