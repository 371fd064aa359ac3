package termcolor

import "testing"

func TestApply(t *testing.T) {
	color := 1
	boldRed := Style{Bold: true, FGBasic: &color}
	cases := []struct {
		name    string
		style   Style
		text    string
		enabled bool
		want    string
	}{
		{name: "BoldRed", style: boldRed, text: "Hello", enabled: true, want: "\x1b[1;31mHello\x1b[0m"},
		{name: "Empty", style: Style{}, text: "Hello", enabled: true, want: "Hello"},
		{name: "Disabled", style: boldRed, text: "Hello", enabled: false, want: "Hello"},
		{name: "EmptyText", style: boldRed, text: "", enabled: true, want: ""},
		{name: "DimItalic", style: Style{Dim: true, Italic: true}, text: "x", enabled: true, want: "\x1b[2;3mx\x1b[0m"},
		{name: "TrueColor", style: Style{FGTrue: &[3]uint8{1, 2, 3}}, text: "x", enabled: true, want: "\x1b[38;2;1;2;3mx\x1b[0m"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Apply(tc.style, tc.text, tc.enabled); got != tc.want {
				t.Fatalf("Apply produced %q, want %q", got, tc.want)
			}
		})
	}
}

func TestStyleIsZero(t *testing.T) {
	if !(Style{}).IsZero() {
		t.Fatal("empty style should be zero")
	}
	if (Style{Reverse: true}).IsZero() {
		t.Fatal("reverse style should not be zero")
	}
}
