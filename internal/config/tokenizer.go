package config

import "github.com/banksean/buildc/internal/builderr"

// Tokenize splits a configuration value into argv-style tokens using a
// shell-like, single-pass scan: whitespace outside quotes separates tokens,
// single quotes are fully literal, double quotes support a small escape
// table, and a bare backslash outside quotes escapes exactly the next rune.
// Commas and equals signs are ordinary characters, so compiler idioms like
// "-Wl,-rpath,./lib" and "-DNAME=value" each come back as one token.
func Tokenize(input string) ([]string, error) {
	var tokens []string
	var cur []rune
	inToken := false
	runes := []rune(input)
	i := 0

	// flush closes the in-progress token on a whitespace boundary. It pushes
	// unconditionally, including an empty quoted token like "", matching
	// original_source/drakkar/src/config.rs's shell_tokenize.
	flush := func() {
		if inToken {
			tokens = append(tokens, string(cur))
			cur = cur[:0]
			inToken = false
		}
	}

	// finalFlush closes whatever token remains at end of input. Unlike flush,
	// it drops a trailing empty token (e.g. an empty quoted string at the end
	// of the value), matching shell_tokenize's end-of-string check of
	// `in_token && !current.is_empty()`.
	finalFlush := func() {
		if inToken && len(cur) > 0 {
			tokens = append(tokens, string(cur))
			cur = cur[:0]
			inToken = false
		}
	}

	for i < len(runes) {
		ch := runes[i]
		switch ch {
		case '\\':
			inToken = true
			if i+1 >= len(runes) {
				return nil, builderr.NewParse("trailing backslash in value")
			}
			cur = append(cur, runes[i+1])
			i += 2
		case '\'':
			inToken = true
			i++
			closed := false
			for i < len(runes) {
				if runes[i] == '\'' {
					closed = true
					i++
					break
				}
				cur = append(cur, runes[i])
				i++
			}
			if !closed {
				return nil, builderr.NewParse("unterminated single quote")
			}
		case '"':
			inToken = true
			i++
			closed := false
			for i < len(runes) {
				c := runes[i]
				if c == '"' {
					closed = true
					i++
					break
				}
				if c == '\\' {
					if i+1 >= len(runes) {
						return nil, builderr.NewParse("unterminated double quote")
					}
					next := runes[i+1]
					switch next {
					case '"':
						cur = append(cur, '"')
					case '\\':
						cur = append(cur, '\\')
					case ' ':
						cur = append(cur, ' ')
					case 'n':
						cur = append(cur, '\n')
					case 't':
						cur = append(cur, '\t')
					default:
						cur = append(cur, '\\', next)
					}
					i += 2
					continue
				}
				cur = append(cur, c)
				i++
			}
			if !closed {
				return nil, builderr.NewParse("unterminated double quote")
			}
		case ' ', '\t':
			flush()
			i++
		default:
			inToken = true
			cur = append(cur, ch)
			i++
		}
	}
	finalFlush()

	return tokens, nil
}
