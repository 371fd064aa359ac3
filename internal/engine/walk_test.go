package engine

import (
	"context"
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func writeTree(t *testing.T, files map[string]string) string {
	t.Helper()
	root := t.TempDir()
	for rel, content := range files {
		full := filepath.Join(root, filepath.FromSlash(rel))
		if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
			t.Fatalf("mkdir: %v", err)
		}
		if err := os.WriteFile(full, []byte(content), 0o644); err != nil {
			t.Fatalf("write %s: %v", rel, err)
		}
	}
	return root
}

func TestWalkFilesPrunesExcludes(t *testing.T) {
	root := writeTree(t, map[string]string{
		"a.tmpl":                "",
		"sub/b.tmpl":            "",
		"vendor/lib/c.tmpl":     "",
		"web/node_modules/x.js": "",
		"web/app.min.js":        "",
		"web/app.js":            "",
		".git/config":           "",
		"docs/notes.md":         "",
	})

	got, err := walkFiles(context.Background(), root, nil, []string{"docs/**"}, true)
	if err != nil {
		t.Fatalf("walkFiles: %v", err)
	}
	want := []string{"a.tmpl", "sub/b.tmpl", "web/app.js"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("walk mismatch: got=%v want=%v", got, want)
	}
}

func TestWalkFilesIncludesAndDedup(t *testing.T) {
	root := writeTree(t, map[string]string{
		"sub/b.tmpl": "",
		"other/c.md": "",
	})
	got, err := walkFiles(context.Background(), root, []string{"sub", "sub/b.tmpl", " "}, nil, false)
	if err != nil {
		t.Fatalf("walkFiles: %v", err)
	}
	if want := []string{"sub/b.tmpl"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("walk mismatch: got=%v want=%v", got, want)
	}

	if _, err := walkFiles(context.Background(), root, []string{"missing"}, nil, false); err == nil {
		t.Fatal("expected error for missing include path")
	}
}

func TestExcluded(t *testing.T) {
	patterns := normalizeExcludes([]string{"*.gen.go", "./out/**", ":(glob,exclude)tmp/*.txt"}, false)
	cases := []struct {
		rel  string
		want bool
	}{
		{"pkg/api.gen.go", true},
		{"pkg/api.go", false},
		{"out/", true},
		{"out/a/b.txt", true},
		{"tmp/x.txt", true},
		{"tmp/sub/x.txt", false},
	}
	for _, tc := range cases {
		if got := excluded(patterns, tc.rel); got != tc.want {
			t.Fatalf("excluded(%q)=%v want %v", tc.rel, got, tc.want)
		}
	}
}
