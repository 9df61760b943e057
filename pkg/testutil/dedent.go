package testutil

import "strings"

// Dedent removes the leading whitespace common to all lines of text, so that
// an indented raw string literal can hold a multiline document:
//
//	Dedent(`
//		# Title
//		  indented
//		`)
//
// returns "# Title\n  indented\n". A newline at the very start is removed, and
// lines containing only spaces and tabs become empty and do not count towards
// the common prefix.
func Dedent(text string) string {
	lines := strings.Split(strings.TrimPrefix(text, "\n"), "\n")
	margin, haveMargin := "", false
	for i, line := range lines {
		content := strings.TrimLeft(line, " \t")
		if content == "" {
			lines[i] = ""
			continue
		}
		indent := line[:len(line)-len(content)]
		if !haveMargin {
			margin, haveMargin = indent, true
		} else {
			margin = commonPrefix(margin, indent)
		}
	}
	for i, line := range lines {
		lines[i] = strings.TrimPrefix(line, margin)
	}
	return strings.Join(lines, "\n")
}

func commonPrefix(a, b string) string {
	n := min(len(a), len(b))
	for i := 0; i < n; i++ {
		if a[i] != b[i] {
			return a[:i]
		}
	}
	return a[:n]
}
