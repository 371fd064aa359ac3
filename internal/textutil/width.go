package textutil

import (
	"regexp"
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"
)

// ansiRe matches CSI and OSC escape sequences.
var ansiRe = regexp.MustCompile(`\x1b\[[0-?]*[ -/]*[@-~]|\x1b\][^\x07\x1b]*(?:\x07|\x1b\\)`)

// StripANSI removes terminal escape sequences from s.
func StripANSI(s string) string {
	if !strings.ContainsRune(s, 0x1b) {
		return s
	}
	return ansiRe.ReplaceAllString(s, "")
}

// VisibleWidth returns the terminal display width of s, ignoring escapes.
func VisibleWidth(s string) int {
	s = StripANSI(s)
	width := 0
	state := -1
	var cluster string
	for s != "" {
		cluster, s, _, state = uniseg.FirstGraphemeClusterInString(s, state)
		width += runewidth.StringWidth(cluster)
	}
	return width
}

// TruncateByWidth cuts s so that it fits in w cells without splitting a
// grapheme cluster. The ellipsis is appended only when it fits.
func TruncateByWidth(s string, w int, ellipsis string) string {
	if s == "" || w <= 0 {
		return ""
	}
	if VisibleWidth(s) <= w {
		return s
	}
	rest := StripANSI(s)
	ellW := runewidth.StringWidth(ellipsis)
	budget := w
	if ellipsis != "" && ellW <= w {
		budget = w - ellW
	} else {
		ellipsis = ""
	}

	var b strings.Builder
	used := 0
	state := -1
	var cluster string
	for rest != "" {
		cluster, rest, _, state = uniseg.FirstGraphemeClusterInString(rest, state)
		cw := runewidth.StringWidth(cluster)
		if used+cw > budget {
			break
		}
		b.WriteString(cluster)
		used += cw
	}
	return b.String() + ellipsis
}

// SingleLine folds a multi-line region into one table cell: CRLF, CR and
// LF become the visible marker "⏎" and tabs become a single space.
func SingleLine(s string) string {
	if !strings.ContainsAny(s, "\r\n\t") {
		return s
	}
	return lineFolder.Replace(s)
}

var lineFolder = strings.NewReplacer("\r\n", "⏎", "\r", "⏎", "\n", "⏎", "\t", " ")

// PadRight pads s on the right so that its visible width equals w.
func PadRight(s string, w int) string {
	if pad := w - VisibleWidth(s); pad > 0 {
		return s + strings.Repeat(" ", pad)
	}
	return s
}

// PadLeft pads s on the left so that its visible width equals w.
func PadLeft(s string, w int) string {
	if pad := w - VisibleWidth(s); pad > 0 {
		return strings.Repeat(" ", pad) + s
	}
	return s
}
