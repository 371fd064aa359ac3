package delim

import "iter"

// EnumerateFlatIgnoringEscaped behaves like EnumerateFlat, except that a to
// delimiter immediately preceded by escape is not accepted as a boundary;
// the search continues after it. An empty escape disables the check.
func EnumerateFlatIgnoringEscaped(text, from, to string, includeBorders bool, escape string) iter.Seq[Range] {
	return enumerate(text, from, to, includeBorders, escape)
}

// EscapedStrings materialises EnumerateFlatIgnoringEscaped.
func EscapedStrings(text, from, to string, includeBorders bool, escape string) []string {
	return Substrings(text, EnumerateFlatIgnoringEscaped(text, from, to, includeBorders, escape))
}

// IsEscaped reports whether the len(escape) bytes before pos equal escape.
//
// Positions with pos <= len(escape) are never escaped, even when the escape
// string sits right at the start of text. The check is single level: an
// escaped escape does not cancel the escape.
func IsEscaped(text, escape string, pos int) bool {
	if escape == "" || pos <= len(escape) || pos > len(text) {
		return false
	}
	return text[pos-len(escape):pos] == escape
}

// nextUnescaped returns the first to at or after from that is not escaped,
// or -1.
func nextUnescaped(text, to string, from int, escape string) int {
	pos := indexFrom(text, to, from)
	for pos >= 0 && IsEscaped(text, escape, pos) {
		pos = indexFrom(text, to, pos+len(to))
	}
	return pos
}
