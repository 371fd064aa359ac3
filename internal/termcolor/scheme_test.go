package termcolor

import "testing"

func TestDetectSchemeFromColorfgbg(t *testing.T) {
	cases := []struct {
		raw  string
		want Scheme
	}{
		{"7;0", SchemeDark},
		{"15;7", SchemeLight},
		{"15;15", SchemeLight},
		{"0;default;15", SchemeLight},
		{"15;default;0", SchemeDark},
	}
	for _, tc := range cases {
		if got := DetectScheme(map[string]string{"COLORFGBG": tc.raw}); got != tc.want {
			t.Fatalf("COLORFGBG=%q: got %v want %v", tc.raw, got, tc.want)
		}
	}
}

func TestDetectSchemeFallsBackToTermName(t *testing.T) {
	if got := DetectScheme(map[string]string{"TERM": "xterm-light"}); got != SchemeLight {
		t.Fatalf("expected light for TERM containing light, got %v", got)
	}
	if got := DetectScheme(map[string]string{"COLORFGBG": "garbage"}); got != SchemeDark {
		t.Fatalf("unparsable COLORFGBG should default to dark, got %v", got)
	}
	if got := DetectScheme(nil); got != SchemeDark {
		t.Fatalf("nil env should default to dark, got %v", got)
	}
}
