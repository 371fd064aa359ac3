package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Source names where a config file was found.
type Source string

const (
	SourceNone     Source = ""
	SourceExplicit Source = "explicit"
	SourceProject  Source = "cwd-up"
	SourceXDG      Source = "xdg"
	SourceHome     Source = "home"
)

const appName = "delimscan"

var (
	projectFilenames = []string{
		".delimscan.yaml",
		".delimscan.yml",
		".delimscan.toml",
		".delimscan.json",
	}
	xdgFilenames = []string{
		"config.yaml",
		"config.yml",
		"config.toml",
		"config.json",
	}
)

// Find locates the config file for a scan rooted at root. The explicit path
// ($DELIMSCAN_CONFIG or --config) wins; then the nearest .delimscan.* walking
// up from root, then $XDG_CONFIG_HOME/delimscan/config.*, then ~/.delimscan.*.
// No file is not an error: the returned path is empty.
func Find(root, explicitPath, xdgHome, home string) (string, Source, error) {
	if explicit := strings.TrimSpace(explicitPath); explicit != "" {
		candidate, err := filepath.Abs(explicit)
		if err != nil {
			return "", SourceNone, err
		}
		info, err := os.Stat(candidate)
		if err != nil {
			return "", SourceNone, err
		}
		if info.IsDir() {
			return "", SourceNone, fmt.Errorf("config path %q points to a directory", candidate)
		}
		return candidate, SourceExplicit, nil
	}

	start := strings.TrimSpace(root)
	if start == "" {
		start = "."
	}
	dir, err := filepath.Abs(start)
	if err != nil {
		return "", SourceNone, err
	}
	for {
		if found := firstExisting(dir, projectFilenames); found != "" {
			return found, SourceProject, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	homeDir := resolveHome(home)
	xdgRoot := strings.TrimSpace(xdgHome)
	if xdgRoot == "" && homeDir != "" {
		xdgRoot = filepath.Join(homeDir, ".config")
	}
	if xdgRoot != "" {
		if found := firstExisting(filepath.Join(xdgRoot, appName), xdgFilenames); found != "" {
			return found, SourceXDG, nil
		}
	}
	if homeDir != "" {
		if found := firstExisting(homeDir, projectFilenames); found != "" {
			return found, SourceHome, nil
		}
	}
	return "", SourceNone, nil
}

func resolveHome(home string) string {
	if h := strings.TrimSpace(home); h != "" {
		return h
	}
	if h, err := os.UserHomeDir(); err == nil {
		return h
	}
	return ""
}

func firstExisting(dir string, names []string) string {
	for _, name := range names {
		candidate := filepath.Join(dir, name)
		if fileExists(candidate) {
			return candidate
		}
	}
	return ""
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return info.Mode().IsRegular()
}
