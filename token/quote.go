package token

import "strings"

// Balanced reports whether the braces in s nest properly. As in BibTeX,
// a backslash does not escape a brace.
func Balanced(s string) bool {
	depth := 0
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '{':
			depth++
		case '}':
			depth--
			if depth < 0 {
				return false
			}
		}
	}
	return depth == 0
}

// Brace wraps s in curly braces.
func Brace(s string) string {
	return "{" + s + "}"
}

// Quote wraps s in double quotes, escaping any bare '"' at brace depth 0.
func Quote(s string) string {
	var sb strings.Builder
	sb.Grow(len(s) + 2)
	sb.WriteByte('"')
	depth := 0
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch c {
		case '\\':
			sb.WriteByte(c)
			if i+1 < len(s) && s[i+1] == '"' {
				i++
				sb.WriteByte(s[i])
			}
			continue
		case '{':
			depth++
		case '}':
			depth--
		case '"':
			if depth <= 0 {
				sb.WriteByte('\\')
			}
		}
		sb.WriteByte(c)
	}
	sb.WriteByte('"')
	return sb.String()
}

// Delimit renders literal text for a field value: braces by default, or
// double quotes when quotes is set and s has no bare '"'. Text whose braces
// do not balance cannot be braced and is always quoted.
func Delimit(s string, quotes bool) string {
	if !Balanced(s) {
		return Quote(s)
	}
	if quotes && !hasBareQuote(s) {
		return Quote(s)
	}
	return Brace(s)
}

func hasBareQuote(s string) bool {
	depth := 0
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '\\':
			if i+1 < len(s) && s[i+1] == '"' {
				i++
			}
		case '{':
			depth++
		case '}':
			depth--
		case '"':
			if depth == 0 {
				return true
			}
		}
	}
	return false
}
