package csvskema

import (
	"strings"
	"unicode/utf8"
)

// CollectFields splits line on sep, treating sep inside double quotes as
// literal text. Quotes are not escaped by doubling: every '"' flips the quoted
// state. Each field is passed through CleanField. The trailing field is always
// emitted, so the result has at least one element; an unbalanced quote simply
// leaves the rest of the line in the last field. An invalid UTF-8 byte
// decodes as a one-byte utf8.RuneError.
func CollectFields(line string, sep rune) []string {
	fields := make([]string, 0, strings.Count(line, string(sep))+1)
	start := 0
	quoted := false
	for i := 0; i < len(line); {
		c, w := utf8.DecodeRuneInString(line[i:])
		switch {
		case c == '"':
			quoted = !quoted
		case !quoted && c == sep:
			fields = append(fields, CleanField(line[start:i]))
			start = i + w
		}
		i += w
	}
	return append(fields, CleanField(line[start:]))
}

// CleanField drops non-ASCII bytes, CR, LF, backslashes and double quotes from
// raw, then trims surrounding whitespace.
func CleanField(raw string) string {
	var b strings.Builder
	b.Grow(len(raw))
	for i := 0; i < len(raw); i++ {
		c := raw[i]
		if c >= utf8.RuneSelf || c == '\n' || c == '\r' || c == '\\' || c == '"' {
			continue
		}
		b.WriteByte(c)
	}
	return strings.TrimSpace(b.String())
}
