package delim

import (
	"iter"
	"strings"
)

type balancePhase int

const (
	phaseScanning balancePhase = iota
	phaseUnterminated
	phaseResolved
)

// balancer walks forward from just past an already consumed open delimiter,
// counting nested opens until the matching close brings the depth to zero.
type balancer struct {
	text, open, close string
	cursor            int
	depth             int
	phase             balancePhase
	nextOpen          int
	end               int
}

func newBalancer(text, open, close string, cursor int) balancer {
	return balancer{
		text:     text,
		open:     open,
		close:    close,
		cursor:   cursor,
		depth:    1,
		phase:    phaseScanning,
		nextOpen: indexFrom(text, open, cursor),
		end:      -1,
	}
}

func (b *balancer) step() {
	nextClose := indexFrom(b.text, b.close, b.cursor)
	if nextClose < 0 {
		b.phase = phaseUnterminated
		return
	}
	if b.nextOpen >= 0 && b.nextOpen < b.cursor {
		b.nextOpen = indexFrom(b.text, b.open, b.cursor)
	}
	if b.nextOpen >= 0 && b.nextOpen < nextClose {
		b.depth++
		b.cursor = b.nextOpen + len(b.open)
		return
	}
	b.depth--
	b.cursor = nextClose + len(b.close)
	if b.depth == 0 {
		b.phase = phaseResolved
		b.end = nextClose
	}
}

// run returns the index of the close delimiter that balanced the structure.
func (b *balancer) run() (int, bool) {
	for b.phase == phaseScanning {
		b.step()
	}
	return b.end, b.phase == phaseResolved
}

func balance(text, open, close string, cursor int) (int, bool) {
	b := newBalancer(text, open, close, cursor)
	return b.run()
}

// LocateBalanced finds the first open delimiter and the close delimiter that
// balances it, skipping nested pairs. End is the index of the balancing close
// delimiter itself, not the position after it.
//
// When open does not occur the result is {-1, Index(text, close)}; callers
// must test Start rather than End. An unterminated structure yields {start, -1}.
func LocateBalanced(text, open, close string) Range {
	if open == "" || close == "" {
		return NoRange
	}
	start := strings.Index(text, open)
	if start < 0 {
		return Range{Start: -1, End: strings.Index(text, close)}
	}
	end, ok := balance(text, open, close, start+len(open))
	if !ok {
		return Range{Start: start, End: -1}
	}
	return Range{Start: start, End: end}
}

// LocateBalancedAsSpan is the slicing form of LocateBalanced: End is exclusive
// and the borders are included or stripped as requested. A missing open
// delimiter or an unterminated nesting is reported as ErrMalformedStructure.
func LocateBalancedAsSpan(text, open, close string, includeBorders bool) (Range, error) {
	if open == "" || close == "" {
		return NoRange, ErrEmptyDelimiter
	}
	r := LocateBalanced(text, open, close)
	if !r.Found() {
		return NoRange, &StructureError{Open: open, Close: close, Offset: -1, Reason: "open delimiter not found"}
	}
	if r.End < 0 {
		return NoRange, &StructureError{Open: open, Close: close, Offset: r.Start, Reason: "nesting structure is not terminated"}
	}
	return spanOf(r.Start, r.End, open, close, includeBorders), nil
}

// EnclosedContent returns the text covered by LocateBalancedAsSpan.
func EnclosedContent(text, open, close string, includeBorders bool) (string, error) {
	r, err := LocateBalancedAsSpan(text, open, close, includeBorders)
	if err != nil {
		return "", err
	}
	return text[r.Start:r.End], nil
}

// EnumerateBalanced yields every top-level balanced region from left to right
// as exclusive slice bounds. The sequence ends at the first open delimiter
// that never balances.
func EnumerateBalanced(text, open, close string, includeBorders bool) iter.Seq[Range] {
	return func(yield func(Range) bool) {
		if open == "" || close == "" {
			return
		}
		cursor := 0
		for {
			start := indexFrom(text, open, cursor)
			if start < 0 {
				return
			}
			end, ok := balance(text, open, close, start+len(open))
			if !ok {
				return
			}
			if !yield(spanOf(start, end, open, close, includeBorders)) {
				return
			}
			cursor = end + len(close)
		}
	}
}

// spanOf converts an open position and a close position into slice bounds.
func spanOf(openPos, closePos int, open, close string, includeBorders bool) Range {
	if includeBorders {
		return Range{Start: openPos, End: closePos + len(close)}
	}
	return Range{Start: openPos + len(open), End: closePos}
}
