package engine

import (
	"context"
	"errors"
	"path/filepath"
	"reflect"
	"regexp"
	"testing"
)

type fakeRunner struct {
	stdout []byte
	stderr []byte
	err    error
	dir    string
	name   string
	args   []string
}

func (f *fakeRunner) Run(_ context.Context, dir, name string, args ...string) ([]byte, []byte, error) {
	f.dir, f.name, f.args = dir, name, args
	return f.stdout, f.stderr, f.err
}

func TestBuildPathspecs_DefaultsToDot(t *testing.T) {
	t.Parallel()

	got := buildPathspecs(nil, nil, false)
	want := []string{"."}
	if len(got) != len(want) || got[0] != want[0] {
		t.Fatalf("unexpected result: %#v", got)
	}
}

func TestBuildPathspecsIncludesAndExcludes(t *testing.T) {
	t.Parallel()

	includes := []string{"src", " pkg ", "windows\\path"}
	excludes := []string{"vendor/**", ":(exclude)third_party/**", ":!build/**"}

	got := buildPathspecs(includes, excludes, true)

	expectedHead := []string{"src", "pkg", filepath.ToSlash("windows\\path")}
	for i, want := range expectedHead {
		if i >= len(got) || got[i] != want {
			t.Fatalf("include %d mismatch: got=%v want=%v", i, got, expectedHead)
		}
	}

	// typical excludes should follow includes
	start := len(expectedHead)
	if len(got) < start+len(typicalExcludes) {
		t.Fatalf("expected typical excludes to be appended: %v", got)
	}
	for i, pat := range typicalExcludes {
		if want := ":(glob,exclude)" + pat; got[start+i] != want {
			t.Fatalf("typical exclude mismatch at %d: got=%q want=%q", start+i, got[start+i], want)
		}
	}

	tail := got[start+len(typicalExcludes):]
	expectedTail := []string{":(glob,exclude)vendor/**", ":(exclude)third_party/**", ":!build/**"}
	if !reflect.DeepEqual(tail, expectedTail) {
		t.Fatalf("exclude mismatch: got=%v want=%v", tail, expectedTail)
	}
}

func TestGitListFilesUsesRunner(t *testing.T) {
	t.Parallel()

	runner := &fakeRunner{stdout: []byte("a/b.tmpl\x00c.json\x00")}
	got, err := gitListFiles(context.Background(), runner, "/repo", []string{"a"}, nil, false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if want := []string{"a/b.tmpl", "c.json"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("files mismatch: got=%v want=%v", got, want)
	}
	if runner.dir != "/repo" || runner.name != "git" {
		t.Fatalf("unexpected invocation: dir=%q name=%q", runner.dir, runner.name)
	}
	wantArgs := []string{"-c", "core.quotePath=false", "ls-files", "-z", "--", "a"}
	if !reflect.DeepEqual(runner.args, wantArgs) {
		t.Fatalf("args mismatch: got=%v want=%v", runner.args, wantArgs)
	}
}

func TestGitListFilesReportsStderr(t *testing.T) {
	t.Parallel()

	runner := &fakeRunner{stderr: []byte("fatal: not a git repository\n"), err: errors.New("exit status 128")}
	_, err := gitListFiles(context.Background(), runner, ".", nil, nil, false)
	if err == nil {
		t.Fatal("expected error")
	}
	if want := "git ls-files: fatal: not a git repository: exit status 128"; err.Error() != want {
		t.Fatalf("error mismatch: got=%q want=%q", err.Error(), want)
	}
}

func TestCompilePathRegexTrimsAndValidates(t *testing.T) {
	t.Parallel()

	rx, err := CompilePathRegex([]string{"  ", "^src/", "(cmd|pkg)"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(rx) != 2 {
		t.Fatalf("expected 2 regexps, got %d", len(rx))
	}

	if _, err := CompilePathRegex([]string{"["}); err == nil {
		t.Fatal("expected compile error for invalid regexp")
	}
}

func TestFilterPathsByRegex(t *testing.T) {
	t.Parallel()

	paths := []string{"src/main.go", "pkg/util.go", "docs/readme.md"}
	rx := []*regexp.Regexp{regexp.MustCompile(`^src/`), regexp.MustCompile(`\.go$`)}

	got := filterPathsByRegex(paths, rx)
	want := []string{"src/main.go", "pkg/util.go"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("filter mismatch: got=%v want=%v", got, want)
	}

	all := filterPathsByRegex(paths, nil)
	if len(all) != len(paths) {
		t.Fatalf("expected original slice when no regex: %d vs %d", len(all), len(paths))
	}
}
