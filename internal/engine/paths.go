package engine

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

// ErrPathOutsideRoot is returned for include paths that leave the scan root.
var ErrPathOutsideRoot = errors.New("path is outside the scan root")

// CheckIncludes rejects include paths that are absolute or climb above the
// root. With tracked set, git pathspec magic (":/", ":(top)") is rejected as
// well, since it can address the whole repository.
func CheckIncludes(includes []string, tracked bool) error {
	for _, raw := range includes {
		p := strings.TrimSpace(raw)
		if p == "" {
			continue
		}
		if tracked && strings.HasPrefix(p, ":") {
			return fmt.Errorf("%s: pathspec magic: %w", p, ErrPathOutsideRoot)
		}
		if !filepath.IsLocal(filepath.FromSlash(p)) {
			return fmt.Errorf("%s: %w", p, ErrPathOutsideRoot)
		}
	}
	return nil
}
