package engine

import (
	"errors"
	"testing"
)

func TestScanBufferはプリセットを名前から選ぶ(t *testing.T) {
	res, err := ScanBuffer("page.html.j2", []byte("{% if x %}{{ x }}{% endif %}"), Options{Preset: "auto"})
	if err != nil {
		t.Fatalf("ScanBuffer: %v", err)
	}
	if res.Total != 3 || res.Files != 1 {
		t.Fatalf("unexpected result: %+v", res)
	}
	want := []string{" if x ", " x ", " endif "}
	for i, r := range res.Items {
		if r.Text != want[i] || r.Lang != "jinja" || r.File != "page.html.j2" {
			t.Fatalf("item %d = %+v", i, r)
		}
	}
}

func TestScanBufferは明示的な区切りを優先する(t *testing.T) {
	opts := Options{Mode: "balanced", Open: "(", Close: ")", IncludeBorders: true}
	res, err := ScanBuffer("stdin", []byte("(a (b)) (c"), opts)
	if err != nil {
		t.Fatalf("ScanBuffer: %v", err)
	}
	if res.Total != 1 || res.Items[0].Text != "(a (b))" {
		t.Fatalf("unexpected items: %+v", res.Items)
	}
	if res.Unterminated != 1 {
		t.Fatalf("Unterminated = %d want 1", res.Unterminated)
	}
}

func TestScanBufferのエラー(t *testing.T) {
	if _, err := ScanBuffer("x.bin", []byte("a\x00b"), Options{Open: "(", Close: ")"}); !errors.Is(err, ErrBinary) {
		t.Fatalf("expected ErrBinary, got %v", err)
	}
	if _, err := ScanBuffer("notes.txt", []byte("plain"), Options{}); !errors.Is(err, ErrNoDelimiters) {
		t.Fatalf("expected ErrNoDelimiters, got %v", err)
	}
}

func TestMaskBuffer(t *testing.T) {
	got, err := MaskBuffer("stdin", []byte("Hello {{ .Name }}, {{ .Day }}!"), "***", Options{Open: "{{", Close: "}}", IncludeBorders: true})
	if err != nil {
		t.Fatalf("MaskBuffer: %v", err)
	}
	if got != "Hello ***, ***!" {
		t.Fatalf("MaskBuffer = %q", got)
	}
}
