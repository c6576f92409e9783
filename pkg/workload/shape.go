package workload

import "strings"

// Canonicalize replaces every SQL string literal with '?', every unquoted
// numeric literal with ?, and collapses whitespace, so two statements that
// differ only in literal values produce the same shape.
func Canonicalize(sql string) string {
	sql = replaceStringLiterals(sql)
	sql = replaceNumericLiterals(sql)
	return collapseWhitespace(sql)
}

// replaceStringLiterals turns every '...' span (with '' as an escaped
// quote inside) into the literal '?'.
func replaceStringLiterals(s string) string {
	var b strings.Builder
	i := 0
	for i < len(s) {
		if s[i] != '\'' {
			b.WriteByte(s[i])
			i++
			continue
		}
		j := i + 1
		for j < len(s) {
			if s[j] == '\'' {
				if j+1 < len(s) && s[j+1] == '\'' {
					j += 2
					continue
				}
				break
			}
			j++
		}
		b.WriteString("'?'")
		if j < len(s) {
			i = j + 1
		} else {
			i = j
		}
	}
	return b.String()
}

// replaceNumericLiterals replaces runs of digits (optionally with a decimal
// point) that are not inside an identifier with "?". A leading sign is not
// part of the run and stays in the output.
func replaceNumericLiterals(s string) string {
	var b strings.Builder
	i := 0
	for i < len(s) {
		c := s[i]
		if isDigit(c) && !precededByIdentChar(s, i) {
			j := i
			for j < len(s) && (isDigit(s[j]) || s[j] == '.') {
				j++
			}
			b.WriteByte('?')
			i = j
			continue
		}
		b.WriteByte(c)
		i++
	}
	return b.String()
}

func precededByIdentChar(s string, i int) bool {
	if i == 0 {
		return false
	}
	c := s[i-1]
	return c == '_' || isDigit(c) || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

func collapseWhitespace(s string) string {
	fields := strings.Fields(s)
	return strings.Join(fields, " ")
}
