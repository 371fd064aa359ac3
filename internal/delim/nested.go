package delim

import "strings"

// LocateFirstNested returns the first left delimiter together with the right
// delimiter that balances it. Unlike LocateBalanced it resolves the common
// un-nested case directly: when the first right after left comes before any
// further left (or there is no right at all) that right is returned as is,
// so End may be -1.
//
// Without a left delimiter the result is {-1, Index(text, right)}; nesting
// that never balances yields {leftPos, -1}.
func LocateFirstNested(text, left, right string) Range {
	if left == "" || right == "" {
		return NoRange
	}
	start := strings.Index(text, left)
	if start < 0 {
		return Range{Start: -1, End: strings.Index(text, right)}
	}
	nextLeft := indexFrom(text, left, start+1)
	end := indexFrom(text, right, start+1)
	if end < 0 || nextLeft < 0 || end < nextLeft || left == right {
		return Range{Start: start, End: end}
	}
	closePos, ok := balance(text, left, right, start+len(left))
	if !ok {
		return Range{Start: start, End: -1}
	}
	return Range{Start: start, End: closePos}
}
