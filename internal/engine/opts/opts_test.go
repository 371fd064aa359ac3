package opts

import (
	"errors"
	"math"
	"net/url"
	"testing"

	"github.com/phyten/delimscan/internal/engine"
)

func TestParseBoolVariants(t *testing.T) {
	trueVals := []string{"1", "true", "TRUE", "yes", "On"}
	falseVals := []string{"0", "false", "FALSE", "no", "OFF"}

	for _, tc := range trueVals {
		t.Run("true/"+tc, func(t *testing.T) {
			got, err := ParseBool(tc, "flag")
			if err != nil {
				t.Fatalf("ParseBool(%q) error: %v", tc, err)
			}
			if !got {
				t.Fatalf("ParseBool(%q) = false, want true", tc)
			}
		})
	}

	for _, tc := range falseVals {
		t.Run("false/"+tc, func(t *testing.T) {
			got, err := ParseBool(tc, "flag")
			if err != nil {
				t.Fatalf("ParseBool(%q) error: %v", tc, err)
			}
			if got {
				t.Fatalf("ParseBool(%q) = true, want false", tc)
			}
		})
	}

	if _, err := ParseBool("maybe", "flag"); err == nil {
		t.Fatal("ParseBool should reject unknown values")
	}
}

func TestParseIntInRange(t *testing.T) {
	got, err := ParseIntInRange("42", "jobs", 1, 64)
	if err != nil {
		t.Fatalf("ParseIntInRange error: %v", err)
	}
	if got != 42 {
		t.Fatalf("ParseIntInRange = %d, want 42", got)
	}

	if _, err := ParseIntInRange("-1", "truncate", 0, math.MinInt); err == nil {
		t.Fatal("ParseIntInRange should reject negative values when min=0")
	}

	if _, err := ParseIntInRange("65", "jobs", 1, 64); err == nil {
		t.Fatal("ParseIntInRange should reject values above max")
	}
}

func TestNormalizeAndValidate(t *testing.T) {
	o := engine.Options{Mode: "BALANCED", Open: "(", Close: ")", Jobs: 8, Langs: []string{" JS ", "js"}}
	if err := NormalizeAndValidate(&o); err != nil {
		t.Fatalf("NormalizeAndValidate error: %v", err)
	}
	if o.Mode != "balanced" {
		t.Fatalf("Mode normalized incorrectly: %q", o.Mode)
	}
	if o.Root != "." {
		t.Fatalf("Root should default to '.': %q", o.Root)
	}
	if len(o.Langs) != 1 || o.Langs[0] != "javascript" {
		t.Fatalf("Langs normalized incorrectly: %v", o.Langs)
	}

	bad := engine.Options{Mode: "maybe", Open: "(", Close: ")", Jobs: 4}
	if err := NormalizeAndValidate(&bad); err == nil {
		t.Fatal("NormalizeAndValidate should fail for invalid mode")
	}

	jobs := engine.Options{Open: "(", Close: ")", Jobs: 1024}
	if err := NormalizeAndValidate(&jobs); err == nil {
		t.Fatal("NormalizeAndValidate should fail for invalid jobs")
	}

	half := engine.Options{Open: "(", Jobs: 1}
	if err := NormalizeAndValidate(&half); err == nil {
		t.Fatal("NormalizeAndValidate should require --close with --open")
	}

	outside := engine.Options{Open: "(", Close: ")", Jobs: 1, Paths: []string{"src", "../other"}}
	if err := NormalizeAndValidate(&outside); !errors.Is(err, engine.ErrPathOutsideRoot) {
		t.Fatalf("NormalizeAndValidate should reject paths outside the root: %v", err)
	}
}

func TestNormalizeAndValidatePresets(t *testing.T) {
	auto := engine.Options{Jobs: 1}
	if err := NormalizeAndValidate(&auto); err != nil {
		t.Fatalf("NormalizeAndValidate error: %v", err)
	}
	if auto.Preset != "auto" {
		t.Fatalf("Preset should default to auto without delimiters: %q", auto.Preset)
	}

	alias := engine.Options{Preset: "J2", Jobs: 1}
	if err := NormalizeAndValidate(&alias); err != nil {
		t.Fatalf("NormalizeAndValidate error: %v", err)
	}
	if alias.Preset != "jinja" {
		t.Fatalf("Preset alias not canonicalised: %q", alias.Preset)
	}

	unknown := engine.Options{Preset: "cobol", Jobs: 1}
	if err := NormalizeAndValidate(&unknown); err == nil {
		t.Fatal("NormalizeAndValidate should reject unknown presets")
	}
}

func TestNormalizeAndValidateEscapedDefaultsBackslash(t *testing.T) {
	o := engine.Options{Mode: "escaped", Open: "'", Close: "'", Jobs: 1}
	if err := NormalizeAndValidate(&o); err != nil {
		t.Fatalf("NormalizeAndValidate error: %v", err)
	}
	if o.Escape != `\` {
		t.Fatalf("Escape should default to backslash: %q", o.Escape)
	}
}

func TestNormalizeOutput(t *testing.T) {
	cases := map[string]string{"TSV": "tsv", " md ": "markdown", "jsonl": "ndjson", "csv": "csv"}
	for in, want := range cases {
		got, err := NormalizeOutput(in)
		if err != nil {
			t.Fatalf("NormalizeOutput(%q) error: %v", in, err)
		}
		if got != want {
			t.Fatalf("NormalizeOutput(%q)=%q want %q", in, got, want)
		}
	}
	if _, err := NormalizeOutput("xml"); err == nil {
		t.Fatal("NormalizeOutput should reject unknown formats")
	}
}

func TestApplyWebQueryToOptions(t *testing.T) {
	def := Defaults("/repo")
	q := url.Values{}
	q.Set("mode", "NESTED")
	q.Set("open", "{{ ")
	q.Set("close", " }}")
	q.Set("borders", "yes")
	q.Set("jobs", "4")
	q.Add("exclude", "vendor/**,dist/**")

	got, err := ApplyWebQueryToOptions(def, q)
	if err != nil {
		t.Fatalf("ApplyWebQueryToOptions error: %v", err)
	}
	if got.Open != "{{ " || got.Close != " }}" {
		t.Fatalf("delimiters should be kept verbatim: %q %q", got.Open, got.Close)
	}
	if !got.IncludeBorders {
		t.Fatal("IncludeBorders should be true")
	}
	if got.Jobs != 4 {
		t.Fatalf("Jobs mismatch: %d", got.Jobs)
	}
	if len(got.Excludes) != 2 {
		t.Fatalf("Excludes mismatch: %v", got.Excludes)
	}
	if err := NormalizeAndValidate(&got); err != nil {
		t.Fatalf("NormalizeAndValidate error: %v", err)
	}
	if got.Mode != "nested" {
		t.Fatalf("Mode mismatch: %q", got.Mode)
	}

	if _, err := ApplyWebQueryToOptions(def, url.Values{"jobs": {"0"}}); err == nil {
		t.Fatal("jobs=0 should be rejected")
	}
}

func TestSplitMulti(t *testing.T) {
	vals := []string{"a,b", " c ", "", ",d"}
	got := SplitMulti(vals)
	want := []string{"a", "b", "c", "d"}
	if len(got) != len(want) {
		t.Fatalf("SplitMulti length mismatch: got=%d want=%d", len(got), len(want))
	}
	for i, v := range want {
		if got[i] != v {
			t.Fatalf("SplitMulti mismatch at %d: got=%q want=%q", i, got[i], v)
		}
	}
}
