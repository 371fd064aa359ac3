package engine

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"
)

// skipDirs are never descended into when walking the file system.
var skipDirs = map[string]struct{}{
	".git": {},
	".hg":  {},
	".svn": {},
}

// walkFiles lists regular files under root/includes, relative to root with
// forward slashes. Excluded paths are pruned during the walk.
func walkFiles(ctx context.Context, root string, includes, excludes []string, typical bool) ([]string, error) {
	patterns := normalizeExcludes(excludes, typical)
	starts := make([]string, 0, len(includes))
	for _, raw := range includes {
		if trimmed := strings.TrimSpace(raw); trimmed != "" {
			starts = append(starts, trimmed)
		}
	}
	if len(starts) == 0 {
		starts = append(starts, ".")
	}

	seen := make(map[string]struct{})
	var files []string
	for _, start := range starts {
		base := filepath.Join(root, start)
		err := filepath.WalkDir(base, func(p string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if ctxErr := ctx.Err(); ctxErr != nil {
				return ctxErr
			}
			rel, relErr := filepath.Rel(root, p)
			if relErr != nil {
				return relErr
			}
			rel = filepath.ToSlash(rel)
			if d.IsDir() {
				if p != base {
					if _, skip := skipDirs[d.Name()]; skip {
						return filepath.SkipDir
					}
					if excluded(patterns, rel+"/") {
						return filepath.SkipDir
					}
				}
				return nil
			}
			if !d.Type().IsRegular() || excluded(patterns, rel) {
				return nil
			}
			if _, dup := seen[rel]; dup {
				return nil
			}
			seen[rel] = struct{}{}
			files = append(files, rel)
			return nil
		})
		if err != nil {
			if errors.Is(err, os.ErrNotExist) {
				return nil, fmt.Errorf("path not found: %s", start)
			}
			return nil, fmt.Errorf("walk %s: %w", start, err)
		}
	}
	sort.Strings(files)
	return files, nil
}

func normalizeExcludes(excludes []string, typical bool) []string {
	out := make([]string, 0, len(excludes)+len(typicalExcludes))
	if typical {
		out = append(out, typicalExcludes...)
	}
	for _, raw := range excludes {
		trimmed := strings.TrimSpace(raw)
		if trimmed == "" {
			continue
		}
		trimmed = filepath.ToSlash(trimmed)
		// git pathspec magic is accepted for parity with --tracked
		for _, prefix := range []string{":(glob,exclude)", ":(exclude)", ":!"} {
			trimmed = strings.TrimPrefix(trimmed, prefix)
		}
		out = append(out, strings.TrimPrefix(trimmed, "./"))
	}
	return out
}

// excluded reports whether rel matches any glob. A trailing "/**" matches a
// whole directory; patterns without a slash also match the base name.
// Directory paths are passed with a trailing slash.
func excluded(patterns []string, rel string) bool {
	isDir := strings.HasSuffix(rel, "/")
	clean := strings.TrimSuffix(rel, "/")
	base := path.Base(clean)
	for _, pat := range patterns {
		if dir, ok := strings.CutSuffix(pat, "/**"); ok {
			if clean == dir || strings.HasPrefix(clean, dir+"/") {
				return true
			}
			if !strings.Contains(dir, "/") && (base == dir && isDir) {
				return true
			}
			continue
		}
		if ok, _ := path.Match(pat, clean); ok {
			return true
		}
		if !strings.Contains(pat, "/") {
			if ok, _ := path.Match(pat, base); ok {
				return true
			}
		}
	}
	return false
}
