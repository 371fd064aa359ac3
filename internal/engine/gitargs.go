package engine

import (
	"bytes"
	"context"
	"fmt"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/phyten/delimscan/internal/execx"
)

// typicalExcludes are dependency and build directories skipped by
// --exclude-typical.
var typicalExcludes = []string{
	"vendor/**",
	"node_modules/**",
	"dist/**",
	"build/**",
	"target/**",
	"*.min.*",
}

// buildPathspecs builds the list to append after "--" for `git ls-files`.
func buildPathspecs(includes, excludes []string, typical bool) []string {
	out := make([]string, 0, len(includes)+len(excludes)+len(typicalExcludes)+1)
	for _, raw := range includes {
		trimmed := strings.TrimSpace(raw)
		if trimmed == "" {
			continue
		}
		out = append(out, filepath.ToSlash(trimmed))
	}
	if len(out) == 0 {
		out = append(out, ".")
	}

	if typical {
		for _, pat := range typicalExcludes {
			out = append(out, ":(glob,exclude)"+pat)
		}
	}

	for _, raw := range excludes {
		trimmed := strings.TrimSpace(raw)
		if trimmed == "" {
			continue
		}
		trimmed = filepath.ToSlash(trimmed)
		if strings.HasPrefix(trimmed, ":!") || strings.HasPrefix(trimmed, ":(exclude)") || strings.HasPrefix(trimmed, ":(glob,exclude)") {
			out = append(out, trimmed)
			continue
		}
		out = append(out, ":(glob,exclude)"+trimmed)
	}
	return out
}

// maxListingBytes caps the NUL separated ls-files output.
const maxListingBytes = 64 << 20

// gitListFiles returns the tracked files under root, repo-relative with
// forward slashes.
func gitListFiles(ctx context.Context, runner execx.Runner, root string, includes, excludes []string, typical bool) ([]string, error) {
	if runner == nil {
		runner = execx.CommandRunner{MaxOutput: maxListingBytes}
	}
	args := []string{"-c", "core.quotePath=false", "ls-files", "-z", "--"}
	args = append(args, buildPathspecs(includes, excludes, typical)...)
	out, stderr, err := runner.Run(ctx, root, "git", args...)
	if err != nil {
		if execx.IsNotFound(err) {
			return nil, fmt.Errorf("git ls-files: git not found: %w", err)
		}
		if msg := execx.StderrSummary(stderr); msg != "" {
			return nil, fmt.Errorf("git ls-files: %s: %w", msg, err)
		}
		return nil, fmt.Errorf("git ls-files: %w", err)
	}
	if len(out) == 0 {
		return nil, nil
	}
	parts := bytes.Split(out, []byte{0})
	paths := make([]string, 0, len(parts))
	for _, p := range parts {
		if len(p) == 0 {
			continue
		}
		paths = append(paths, filepath.ToSlash(string(p)))
	}
	return paths, nil
}

// CompilePathRegex compiles the --path-regex values, skipping blanks.
func CompilePathRegex(patterns []string) ([]*regexp.Regexp, error) {
	if len(patterns) == 0 {
		return nil, nil
	}
	compiled := make([]*regexp.Regexp, 0, len(patterns))
	for _, raw := range patterns {
		trimmed := strings.TrimSpace(raw)
		if trimmed == "" {
			continue
		}
		rx, err := regexp.Compile(trimmed)
		if err != nil {
			return nil, err
		}
		compiled = append(compiled, rx)
	}
	return compiled, nil
}

func filterPathsByRegex(paths []string, rx []*regexp.Regexp) []string {
	if len(rx) == 0 {
		return paths
	}
	out := make([]string, 0, len(paths))
	for _, p := range paths {
		if matchAny(rx, p) {
			out = append(out, p)
		}
	}
	return out
}

func matchAny(rx []*regexp.Regexp, text string) bool {
	if len(rx) == 0 {
		return true
	}
	for _, r := range rx {
		if r.MatchString(text) {
			return true
		}
	}
	return false
}
