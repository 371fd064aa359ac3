package engine

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
)

func TestCheckIncludes(t *testing.T) {
	cases := []struct {
		name    string
		paths   []string
		tracked bool
		wantErr bool
	}{
		{name: "empty", paths: nil},
		{name: "relative", paths: []string{"src", "docs/a.md", "./x/../y"}},
		{name: "dot", paths: []string{"."}},
		{name: "blank entries", paths: []string{" ", ""}},
		{name: "parent", paths: []string{".."}, wantErr: true},
		{name: "climbs out", paths: []string{"src/../../etc"}, wantErr: true},
		{name: "absolute", paths: []string{"/etc"}, wantErr: true},
		{name: "colon name walked", paths: []string{":notes"}},
		{name: "pathspec top", paths: []string{":/"}, tracked: true, wantErr: true},
		{name: "pathspec magic", paths: []string{":(top)secret"}, tracked: true, wantErr: true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := CheckIncludes(tc.paths, tc.tracked)
			if tc.wantErr {
				if !errors.Is(err, ErrPathOutsideRoot) {
					t.Fatalf("ErrPathOutsideRoot を期待しました: %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("想定外のエラー: %v", err)
			}
		})
	}
}

func TestRunはルート外のパスを拒否する(t *testing.T) {
	base := writeTree(t, map[string]string{
		"secret.txt":       "token=[TOPSECRET]",
		"served/page.tmpl": "{{ ok }}",
	})
	root := filepath.Join(base, "served")

	res, err := Run(context.Background(), Options{Root: root, Paths: []string{".."}, Open: "[", Close: "]", Jobs: 1})
	if !errors.Is(err, ErrPathOutsideRoot) {
		t.Fatalf("ErrPathOutsideRoot を期待しました: res=%+v err=%v", res, err)
	}

	runner := &fakeRunner{stdout: []byte("../secret.txt\x00")}
	_, err = Run(context.Background(), Options{Root: root, Paths: []string{":/"}, Tracked: true, Runner: runner, Jobs: 1})
	if !errors.Is(err, ErrPathOutsideRoot) {
		t.Fatalf("ErrPathOutsideRoot を期待しました: %v", err)
	}
	if runner.name != "" {
		t.Fatalf("git を呼び出すべきではありません: %q %q", runner.name, runner.args)
	}
}
