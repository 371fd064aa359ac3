package delim

import "iter"

// EnumerateFlat yields every non-overlapping from...to region in order,
// without nesting: the first to after a from always closes it. Ranges are
// exclusive slice bounds that include the delimiters when includeBorders is
// set. A from without a following to ends the sequence silently.
//
// The sequence holds no cursor between iterations; ranging over it twice
// rescans the text from the start.
func EnumerateFlat(text, from, to string, includeBorders bool) iter.Seq[Range] {
	return enumerate(text, from, to, includeBorders, "")
}

// ExtractFirst returns the first region yielded by EnumerateFlat, or "" when
// from or to is absent. The to search starts right after from, so an empty
// region such as "[]" is found like any other.
func ExtractFirst(text, from, to string, includeBorders bool) string {
	for r := range EnumerateFlat(text, from, to, includeBorders) {
		return text[r.Start:r.End]
	}
	return ""
}

// FlatStrings materialises EnumerateFlat.
func FlatStrings(text, from, to string, includeBorders bool) []string {
	return Substrings(text, EnumerateFlat(text, from, to, includeBorders))
}

func enumerate(text, from, to string, includeBorders bool, escape string) iter.Seq[Range] {
	return func(yield func(Range) bool) {
		if from == "" || to == "" {
			return
		}
		cursor := 0
		for {
			start := indexFrom(text, from, cursor)
			if start < 0 {
				return
			}
			end := nextUnescaped(text, to, start+len(from), escape)
			if end < 0 {
				return
			}
			if !yield(spanOf(start, end, from, to, includeBorders)) {
				return
			}
			cursor = end + len(to)
		}
	}
}
