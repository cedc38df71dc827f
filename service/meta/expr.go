package meta

import (
	"os"
	"strings"
	"unicode"
)

const envPrefix = "${env."

// Lookup resolves a variable name; ok is false when it is not defined.
type Lookup func(name string) (value string, ok bool)

// ExpandEnv replaces ${env.NAME} expressions with process environment values.
func ExpandEnv(text string) string {
	return Expand(text, os.LookupEnv)
}

// Expand replaces ${env.NAME} expressions using lookup. Undefined names
// expand to "". An expression without a closing brace, or whose name is empty
// or not an identifier, is kept verbatim.
func Expand(text string, lookup Lookup) string {
	if !strings.Contains(text, envPrefix) {
		return text
	}
	var out strings.Builder
	out.Grow(len(text))
	rest := text
	for {
		at := strings.Index(rest, envPrefix)
		if at < 0 {
			out.WriteString(rest)
			return out.String()
		}
		out.WriteString(rest[:at])
		body := rest[at+len(envPrefix):]
		closing := strings.IndexByte(body, '}')
		if closing < 0 {
			out.WriteString(rest[at:])
			return out.String()
		}
		name := body[:closing]
		if !isIdentifier(name) {
			out.WriteString(envPrefix)
			rest = body
			continue
		}
		if value, ok := lookup(name); ok {
			out.WriteString(value)
		}
		rest = body[closing+1:]
	}
}

func isIdentifier(name string) bool {
	if name == "" {
		return false
	}
	for _, r := range name {
		if !(unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_') {
			return false
		}
	}
	return true
}
