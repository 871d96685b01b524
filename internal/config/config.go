// Package config loads and tokenizes the project's config.txt into a typed,
// read-only ProjectConfig.
package config

import (
	"bufio"
	"fmt"
	"os"
	"runtime"
	"strconv"
	"strings"

	"github.com/goombaio/namegenerator"

	"github.com/banksean/buildc/internal/builderr"
)

// ProjectConfig is the typed configuration for one build invocation. It is
// created once by Load, has the CLI overrides applied on top, and is only
// read from then on.
type ProjectConfig struct {
	AppName string

	SourceDir string
	OutputDir string
	TempDir   string

	CFlags       []string
	CxxFlags     []string
	CStandard    string
	CxxStandard  string
	GccPath      string
	GppPath      string

	LdFlags     []string
	LinkLibs    []string
	IncludeDirs []string

	ParallelJobs      int
	Incremental       bool
	PreserveTemp      bool
	UseProcessGroups  bool
	Verbose           bool
	AggregateErrors   bool
}

// Default returns a ProjectConfig with drakkar's documented defaults applied,
// before any config.txt or CLI override is layered on top.
func Default() *ProjectConfig {
	return &ProjectConfig{
		AppName:          "program",
		SourceDir:        "src",
		OutputDir:        "out",
		TempDir:          "target",
		GccPath:          "gcc",
		GppPath:          "g++",
		ParallelJobs:     runtime.NumCPU(),
		Incremental:      true,
		PreserveTemp:     true,
		UseProcessGroups: false,
	}
}

// recognizedKeys mirrors spec.md §6's config.txt key table, app_name
// included (SPEC_FULL.md §3 adds it to the typed ProjectConfig).
var recognizedKeys = map[string]bool{
	"app_name": true, "source_dir": true, "output_dir": true, "temp_dir": true,
	"c_flags": true, "cxx_flags": true, "ld_flags": true, "include_dirs": true,
	"link_libs": true, "c_standard": true, "cxx_standard": true,
	"parallel_jobs": true, "incremental": true, "preserve_temp": true,
	"use_process_groups": true, "gcc_path": true, "gpp_path": true,
}

// Load reads and parses a config.txt file. Unknown keys produce a warning on
// stderr but do not fail parsing, matching original_source/drakkar's
// read_config.
func Load(path string) (*ProjectConfig, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, builderr.NewConfig(fmt.Sprintf("cannot read %s", path), err)
	}
	defer f.Close()

	cfg := Default()
	sawAppName := false

	scanner := bufio.NewScanner(f)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		eq := strings.Index(line, "=")
		if eq < 0 {
			return nil, builderr.NewParseLine(lineNo, fmt.Sprintf("expected 'key = value', got '%s'", line))
		}
		key := strings.TrimSpace(line[:eq])
		valueStr := strings.TrimSpace(line[eq+1:])
		valueStr = stripInlineComment(valueStr)

		tokens, err := parseValue(valueStr, lineNo)
		if err != nil {
			return nil, err
		}
		first := ""
		if len(tokens) > 0 {
			first = tokens[0]
		}

		if !recognizedKeys[key] {
			fmt.Fprintf(os.Stderr, "warning: line %d: unknown config key '%s'\n", lineNo, key)
			continue
		}

		switch key {
		case "app_name":
			cfg.AppName = first
			sawAppName = true
		case "source_dir":
			cfg.SourceDir = first
		case "output_dir":
			cfg.OutputDir = first
		case "temp_dir":
			cfg.TempDir = first
		case "c_flags":
			cfg.CFlags = tokens
		case "cxx_flags":
			cfg.CxxFlags = tokens
		case "ld_flags":
			cfg.LdFlags = tokens
		case "include_dirs":
			cfg.IncludeDirs = tokens
		case "link_libs":
			cfg.LinkLibs = tokens
		case "c_standard":
			cfg.CStandard = first
		case "cxx_standard":
			cfg.CxxStandard = first
		case "parallel_jobs":
			n, err := parseUint(first, lineNo)
			if err != nil {
				return nil, err
			}
			cfg.ParallelJobs = n
		case "incremental":
			b, err := parseBool(first, lineNo)
			if err != nil {
				return nil, err
			}
			cfg.Incremental = b
		case "preserve_temp":
			b, err := parseBool(first, lineNo)
			if err != nil {
				return nil, err
			}
			cfg.PreserveTemp = b
		case "use_process_groups":
			b, err := parseBool(first, lineNo)
			if err != nil {
				return nil, err
			}
			cfg.UseProcessGroups = b
		case "gcc_path":
			cfg.GccPath = first
		case "gpp_path":
			cfg.GppPath = first
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, builderr.NewIo(fmt.Sprintf("reading %s", path), err)
	}

	if !sawAppName || cfg.AppName == "" {
		cfg.AppName = generateAppName()
	}

	return cfg, nil
}

// generateAppName produces a friendly default project name when config.txt
// omits app_name (or supplies an empty value), instead of falling back to the
// literal string the original Rust implementation hard-coded.
func generateAppName() string {
	seed := int64(os.Getpid())
	return namegenerator.NewNameGenerator(seed).Generate()
}

// parseValue strips one layer of matching outer quotes from the raw RHS of a
// key=value line, then tokenizes the interior. A bare, unquoted RHS is
// tokenized as-is.
func parseValue(raw string, lineNo int) ([]string, error) {
	v := strings.TrimSpace(raw)
	if len(v) >= 2 {
		if (v[0] == '"' && v[len(v)-1] == '"') || (v[0] == '\'' && v[len(v)-1] == '\'') {
			v = v[1 : len(v)-1]
		}
	}
	tokens, err := Tokenize(v)
	if err != nil {
		return nil, builderr.NewParseLine(lineNo, err.Error())
	}
	return tokens, nil
}

// stripInlineComment removes a trailing `# ...` comment that follows a
// closing quote, matching drakkar's config.rs behavior: a `#` anywhere else
// (e.g. inside the quoted value) is left alone.
func stripInlineComment(s string) string {
	idx := strings.LastIndex(s, "\"")
	if idx < 0 {
		return s
	}
	after := strings.TrimSpace(s[idx+1:])
	if after == "" || strings.HasPrefix(after, "#") {
		return s[:idx+1]
	}
	return s
}

func parseBool(s string, lineNo int) (bool, error) {
	switch strings.ToLower(s) {
	case "true", "1", "yes":
		return true, nil
	case "false", "0", "no":
		return false, nil
	default:
		return false, builderr.NewParseLine(lineNo, fmt.Sprintf("expected bool (true/false), got '%s'", s))
	}
}

func parseUint(s string, lineNo int) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 {
		return 0, builderr.NewParseLine(lineNo, fmt.Sprintf("expected a positive integer, got '%s'", s))
	}
	return n, nil
}
