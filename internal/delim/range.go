package delim

import (
	"iter"
	"strconv"
	"strings"
)

// Range is a span over a text buffer. Either field may be -1 when the
// corresponding position was not found. Whether End points into the close
// delimiter or just past the region depends on the producing operation.
type Range struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

// NoRange is returned when neither position could be resolved.
var NoRange = Range{Start: -1, End: -1}

// Found reports whether the opening position was located.
func (r Range) Found() bool {
	return r.Start >= 0
}

// Resolved reports whether both positions were located.
func (r Range) Resolved() bool {
	return r.Start >= 0 && r.End >= 0
}

// Len returns End-Start for resolved ranges and 0 otherwise.
func (r Range) Len() int {
	if !r.Resolved() || r.End < r.Start {
		return 0
	}
	return r.End - r.Start
}

// Slice returns text[Start:End] when the range is resolved and lies within text.
func (r Range) Slice(text string) (string, bool) {
	if !r.Resolved() || r.End < r.Start || r.End > len(text) {
		return "", false
	}
	return text[r.Start:r.End], true
}

func (r Range) String() string {
	end := "?"
	if r.End >= 0 {
		end = strconv.Itoa(r.End)
	}
	start := "?"
	if r.Start >= 0 {
		start = strconv.Itoa(r.Start)
	}
	return "[" + start + "," + end + ")"
}

// Substrings materialises every range of seq against text. Ranges that do not
// fit the buffer are skipped.
func Substrings(text string, seq iter.Seq[Range]) []string {
	var out []string
	for r := range seq {
		if s, ok := r.Slice(text); ok {
			out = append(out, s)
		}
	}
	return out
}

// Collect drains seq into a slice.
func Collect(seq iter.Seq[Range]) []Range {
	var out []Range
	for r := range seq {
		out = append(out, r)
	}
	return out
}

func indexFrom(text, sub string, from int) int {
	if from < 0 {
		from = 0
	}
	if from > len(text) {
		return -1
	}
	idx := strings.Index(text[from:], sub)
	if idx < 0 {
		return -1
	}
	return from + idx
}
