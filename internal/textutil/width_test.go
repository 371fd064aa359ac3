package textutil

import (
	"testing"

	"github.com/mattn/go-runewidth"
)

func TestVisibleWidth(t *testing.T) {
	setEastAsianWidth(t, false)
	cases := []struct {
		name string
		in   string
		want int
	}{
		{name: "Empty", in: "", want: 0},
		{name: "ASCII", in: "{{ .Name }}", want: 11},
		{name: "Wide", in: "日本語", want: 6},
		{name: "ANSI", in: "\x1b[1mbold\x1b[0m", want: 4},
		{name: "Combining", in: "é", want: 1},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := VisibleWidth(tc.in); got != tc.want {
				t.Fatalf("VisibleWidth(%q)=%d want %d", tc.in, got, tc.want)
			}
		})
	}
}

func TestTruncateByWidth(t *testing.T) {
	setEastAsianWidth(t, false)
	cases := []struct {
		name     string
		s        string
		width    int
		ellipsis string
		want     string
	}{
		{name: "Fits", s: "abc", width: 3, ellipsis: "…", want: "abc"},
		{name: "ASCII", s: "abcdef", width: 4, ellipsis: "…", want: "abc…"},
		{name: "NoEllipsis", s: "abcdef", width: 4, ellipsis: "", want: "abcd"},
		{name: "Wide", s: "日本語テキスト", width: 6, ellipsis: "…", want: "日本…"},
		{name: "EllipsisTooWide", s: "abcdef", width: 2, ellipsis: "...", want: "ab"},
		{name: "ZeroWidth", s: "abc", width: 0, ellipsis: "…", want: ""},
		{name: "KeepsCluster", s: "ééé", width: 2, ellipsis: "…", want: "é…"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := TruncateByWidth(tc.s, tc.width, tc.ellipsis)
			if got != tc.want {
				t.Fatalf("TruncateByWidth(%q, %d)=%q want %q", tc.s, tc.width, got, tc.want)
			}
			if w := VisibleWidth(got); w > tc.width {
				t.Fatalf("result width %d exceeds limit %d", w, tc.width)
			}
		})
	}
}

func TestStripANSI(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{in: "plain", want: "plain"},
		{in: "\x1b[31mRed\x1b[0m", want: "Red"},
		{in: "\x1b]8;;https://example.com\x07link\x1b]8;;\x07", want: "link"},
	}
	for _, tc := range cases {
		if got := StripANSI(tc.in); got != tc.want {
			t.Fatalf("StripANSI(%q)=%q want %q", tc.in, got, tc.want)
		}
	}
}

func TestSingleLine(t *testing.T) {
	cases := map[string]string{
		"one":            "one",
		"a\nb":           "a⏎b",
		"a\r\nb\rc":      "a⏎b⏎c",
		"{%\tif x\t%}": "{% if x %}",
	}
	for in, want := range cases {
		if got := SingleLine(in); got != want {
			t.Fatalf("SingleLine(%q)=%q want %q", in, got, want)
		}
	}
}

func TestPadHelpers(t *testing.T) {
	setEastAsianWidth(t, false)
	if got := VisibleWidth(PadRight("あ", 6)); got != 6 {
		t.Fatalf("PadRight did not reach target width: %d", got)
	}
	if got := VisibleWidth(PadLeft("テスト", 8)); got != 8 {
		t.Fatalf("PadLeft did not reach target width: %d", got)
	}
	if got := PadRight("toolong", 3); got != "toolong" {
		t.Fatalf("PadRight shortened input: %q", got)
	}
}

func setEastAsianWidth(t *testing.T, eastAsian bool) {
	t.Helper()
	prev := runewidth.EastAsianWidth
	runewidth.EastAsianWidth = eastAsian
	runewidth.DefaultCondition = runewidth.NewCondition()
	t.Cleanup(func() {
		runewidth.EastAsianWidth = prev
		runewidth.DefaultCondition = runewidth.NewCondition()
	})
}
