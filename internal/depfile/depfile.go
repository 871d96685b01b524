// Package depfile parses the compiler-emitted header-dependency manifest
// (the "-MMD -MP" output) into an ordered list of file paths.
package depfile

import (
	"fmt"
	"os"
	"strings"

	"github.com/banksean/buildc/internal/builderr"
)

// Parse reads the manifest at path and returns every path it lists, in the
// order the compiler wrote them: the source file itself followed by every
// header it opened. The manifest has the form
// "target: input1 input2 \<LF> input3 ...". Only that first rule is read:
// the phony "header:" rules that -MP appends after it are ignored.
func Parse(path string) ([]string, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, builderr.NewIo(fmt.Sprintf("cannot read depfile %s", path), err)
	}

	joined := joinContinuations(string(raw))

	colon := -1
	for i, r := range joined {
		if r == ':' {
			colon = i
			break
		}
	}
	if colon < 0 {
		return nil, builderr.NewParse(fmt.Sprintf("depfile %s has no ':'", path))
	}

	rest := joined[colon+1:]
	if nl := strings.IndexAny(rest, "\r\n"); nl >= 0 {
		rest = rest[:nl]
	}
	return splitDeps(rest), nil
}

// joinContinuations replaces a backslash followed by a line break (LF or
// CRLF) with a single space, so a manifest's continuation lines read as one
// logical line.
func joinContinuations(content string) string {
	runes := []rune(content)
	out := make([]rune, 0, len(runes))
	for i := 0; i < len(runes); i++ {
		ch := runes[i]
		if ch == '\\' && i+1 < len(runes) {
			next := runes[i+1]
			if next == '\n' {
				out = append(out, ' ')
				i++
				continue
			}
			if next == '\r' {
				i++
				if i+1 < len(runes) && runes[i+1] == '\n' {
					i++
				}
				out = append(out, ' ')
				continue
			}
		}
		out = append(out, ch)
	}
	return string(out)
}

// splitDeps splits the portion of a manifest after the ':' on unescaped
// whitespace. A backslash followed by a space yields a literal space inside
// the current token, backslash-backslash yields a single backslash, and any
// other backslash is retained literally — the manifest never escapes other
// characters.
func splitDeps(s string) []string {
	var paths []string
	var cur []rune
	runes := []rune(s)

	flush := func() {
		if len(cur) > 0 {
			paths = append(paths, string(cur))
			cur = cur[:0]
		}
	}

	for i := 0; i < len(runes); i++ {
		ch := runes[i]
		switch ch {
		case '\\':
			if i+1 < len(runes) {
				next := runes[i+1]
				if next == ' ' {
					cur = append(cur, ' ')
					i++
					continue
				}
				if next == '\\' {
					cur = append(cur, '\\')
					i++
					continue
				}
			}
			cur = append(cur, '\\')
		case ' ', '\t', '\n', '\r':
			flush()
		default:
			cur = append(cur, ch)
		}
	}
	flush()

	return paths
}
