package delim

import "strings"

// ReplaceRange substitutes text[r.Start:r.End] with replacement. Unresolved or
// out-of-bounds ranges leave text untouched.
func ReplaceRange(text string, r Range, replacement string) string {
	if !r.Resolved() || r.End < r.Start || r.End > len(text) {
		return text
	}
	return text[:r.Start] + replacement + text[r.End:]
}

// EndIndex returns the offset just past the first occurrence of find, or -1.
func EndIndex(text, find string) int {
	if find == "" {
		return -1
	}
	i := strings.Index(text, find)
	if i < 0 {
		return -1
	}
	return i + len(find)
}
