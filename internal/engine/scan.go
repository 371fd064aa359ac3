package engine

import (
	"errors"
	"fmt"
	"iter"
	"sort"
	"strings"

	"github.com/phyten/delimscan/internal/delim"
	"github.com/phyten/delimscan/internal/detect"
	"github.com/phyten/delimscan/internal/model"
)

// ErrNoDelimiters is returned when neither explicit delimiters nor a preset
// apply to the input.
var ErrNoDelimiters = errors.New("no delimiters: set --open/--close or a known --preset")

// Scanned holds the regions found in one buffer.
type Scanned struct {
	Regions      []model.Region `json:"items"`
	Unterminated int            `json:"unterminated"`
}

// ScanText scans text with every spec and returns the regions ordered by
// position. name is only used to label regions and guess their language.
func ScanText(name, text string, specs ...Spec) ([]model.Region, error) {
	res, err := Scan(name, text, specs...)
	if err != nil {
		return nil, err
	}
	return res.Regions, nil
}

// Scan is ScanText with the count of structures left open at the end of the
// buffer.
func Scan(name, text string, specs ...Spec) (Scanned, error) {
	lang := detect.FromPathAndContent(name, []byte(text)).Name
	return scanWithLang(name, lang, text, specs)
}

func scanWithLang(name, lang, text string, specs []Spec) (Scanned, error) {
	var out Scanned
	if len(specs) == 0 {
		return out, ErrNoDelimiters
	}
	var offsets []int
	for _, sp := range specs {
		ranges, unterminated, err := locate(text, sp)
		if err != nil {
			return Scanned{}, err
		}
		if unterminated {
			out.Unterminated++
		}
		if len(ranges) == 0 {
			continue
		}
		if offsets == nil {
			offsets = computeLineOffsets(text)
		}
		for _, r := range ranges {
			out.Regions = append(out.Regions, model.Region{
				File:  name,
				Lang:  lang,
				Mode:  sp.Mode,
				Open:  sp.Open,
				Close: sp.Close,
				Text:  text[r.Start:r.End],
				Span:  spanFromOffset(r.Start, r.Len(), offsets),
			})
		}
	}
	sortRegions(out.Regions)
	return out, nil
}

// MaskText replaces every region found by specs with replacement. Regions
// that overlap an earlier one are left alone.
func MaskText(text string, replacement string, specs ...Spec) (string, error) {
	if len(specs) == 0 {
		return "", ErrNoDelimiters
	}
	var all []delim.Range
	for _, sp := range specs {
		ranges, _, err := locate(text, sp)
		if err != nil {
			return "", err
		}
		all = append(all, ranges...)
	}
	sort.SliceStable(all, func(i, j int) bool { return all[i].Start < all[j].Start })
	var b strings.Builder
	b.Grow(len(text))
	last := 0
	for _, r := range all {
		if r.Start < last {
			continue
		}
		b.WriteString(text[last:r.Start])
		b.WriteString(replacement)
		last = r.End
	}
	b.WriteString(text[last:])
	return b.String(), nil
}

// ValidateSpec checks that sp can be scanned.
func ValidateSpec(sp Spec) error {
	if sp.Open == "" || sp.Close == "" {
		return fmt.Errorf("%s scan: %w", sp.Mode, delim.ErrEmptyDelimiter)
	}
	switch sp.Mode {
	case model.ScanModeFlat, model.ScanModeEscaped, model.ScanModeBalanced, model.ScanModeNested:
		return nil
	}
	return fmt.Errorf("invalid scan mode: %q", sp.Mode)
}

// locate returns the slice bounds of every region for sp and whether an
// open delimiter was left dangling after the last one.
func locate(text string, sp Spec) ([]delim.Range, bool, error) {
	if err := ValidateSpec(sp); err != nil {
		return nil, false, err
	}
	var seq iter.Seq[delim.Range]
	switch sp.Mode {
	case model.ScanModeFlat:
		seq = delim.EnumerateFlat(text, sp.Open, sp.Close, sp.IncludeBorders)
	case model.ScanModeEscaped:
		seq = delim.EnumerateFlatIgnoringEscaped(text, sp.Open, sp.Close, sp.IncludeBorders, sp.Escape)
	case model.ScanModeBalanced:
		seq = delim.EnumerateBalanced(text, sp.Open, sp.Close, sp.IncludeBorders)
	case model.ScanModeNested:
		ranges, dangling := locateNested(text, sp)
		return ranges, dangling, nil
	}
	var out []delim.Range
	cursor := 0
	for r := range seq {
		out = append(out, r)
		cursor = outerEnd(r, sp)
	}
	rest := text[cursor:]
	if sp.Mode == model.ScanModeBalanced {
		r := delim.LocateBalanced(rest, sp.Open, sp.Close)
		return out, r.Found() && r.End < 0, nil
	}
	return out, strings.Contains(rest, sp.Open), nil
}

// locateNested applies the single-shot nested lookup repeatedly, resuming
// after each resolved region.
func locateNested(text string, sp Spec) ([]delim.Range, bool) {
	var out []delim.Range
	cursor := 0
	for cursor < len(text) {
		rest := text[cursor:]
		r := delim.LocateFirstNested(rest, sp.Open, sp.Close)
		if !r.Found() {
			return out, false
		}
		if r.End >= 0 && r.End < r.Start+len(sp.Open) {
			// close overlapping the open delimiter itself
			r = delim.LocateBalanced(rest, sp.Open, sp.Close)
		}
		if r.End < 0 {
			return out, true
		}
		out = append(out, bounds(cursor+r.Start, cursor+r.End, sp))
		cursor += r.End + len(sp.Close)
	}
	return out, false
}

func bounds(openPos, closePos int, sp Spec) delim.Range {
	if sp.IncludeBorders {
		return delim.Range{Start: openPos, End: closePos + len(sp.Close)}
	}
	return delim.Range{Start: openPos + len(sp.Open), End: closePos}
}

// outerEnd is the offset just past the close delimiter of r.
func outerEnd(r delim.Range, sp Spec) int {
	if sp.IncludeBorders {
		return r.End
	}
	return r.End + len(sp.Close)
}

func sortRegions(regions []model.Region) {
	sort.SliceStable(regions, func(i, j int) bool {
		a, b := regions[i], regions[j]
		if a.File != b.File {
			return a.File < b.File
		}
		if a.Span.StartLine != b.Span.StartLine {
			return a.Span.StartLine < b.Span.StartLine
		}
		return a.Span.StartCol < b.Span.StartCol
	})
}

func spanFromOffset(start, length int, lineOffsets []int) model.Span {
	line, col := lineColFromOffset(start, lineOffsets)
	endLine, endCol := lineColFromOffset(start+length, lineOffsets)
	return model.Span{
		StartLine: line,
		StartCol:  col,
		EndLine:   endLine,
		EndCol:    endCol,
		ByteStart: start,
		ByteEnd:   start + length,
	}
}

func lineColFromOffset(offset int, lineOffsets []int) (line, col int) {
	idx := sort.Search(len(lineOffsets), func(i int) bool { return lineOffsets[i] > offset })
	if idx == 0 {
		return 1, offset + 1
	}
	lineStart := lineOffsets[idx-1]
	return idx, offset - lineStart + 1
}

func computeLineOffsets(text string) []int {
	offsets := make([]int, 0, strings.Count(text, "\n")+1)
	offsets = append(offsets, 0)
	for i := 0; i < len(text); i++ {
		if text[i] == '\n' {
			offsets = append(offsets, i+1)
		}
	}
	return offsets
}
