package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	engineopts "github.com/phyten/delimscan/internal/engine/opts"
)

var scanKeyMap = map[string]string{
	"mode":            "mode",
	"open":            "open",
	"close":           "close",
	"escape":          "escape",
	"borders":         "borders",
	"include_borders": "borders",
	"preset":          "preset",
	"root":            "root",
	"path":            "path",
	"paths":           "path",
	"exclude":         "exclude",
	"excludes":        "exclude",
	"path_regex":      "path_regex",
	"path_regexes":    "path_regex",
	"exclude_typical": "exclude_typical",
	"lang":            "lang",
	"langs":           "lang",
	"languages":       "lang",
	"tracked":         "tracked",
	"jobs":            "jobs",
	"max_file_bytes":  "max_file_bytes",
	"max_bytes":       "max_file_bytes",
}

var outputKeyMap = map[string]string{
	"output":    "output",
	"format":    "output",
	"color":     "color",
	"fields":    "fields",
	"sort":      "sort",
	"truncate":  "truncate",
	"log_level": "log_level",
	"log_file":  "log_file",
}

// Load decodes a YAML, TOML or JSON config file. Keys may sit at the top
// level or under scan: / output: sections; unknown keys are errors.
func Load(path string) (Config, error) {
	var cfg Config
	path = strings.TrimSpace(path)
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	ext := strings.ToLower(filepath.Ext(path))
	var raw map[string]any
	switch ext {
	case ".yaml", ".yml":
		if decodeErr := yaml.Unmarshal(data, &raw); decodeErr != nil {
			return cfg, fmt.Errorf("parse %s: %w", path, decodeErr)
		}
	case ".toml":
		if decodeErr := toml.Unmarshal(data, &raw); decodeErr != nil {
			return cfg, fmt.Errorf("parse %s: %w", path, decodeErr)
		}
	case ".json":
		if decodeErr := json.Unmarshal(data, &raw); decodeErr != nil {
			return cfg, fmt.Errorf("parse %s: %w", path, decodeErr)
		}
	default:
		return cfg, fmt.Errorf("unsupported config extension: %s", ext)
	}
	if raw == nil {
		return cfg, nil
	}
	decoded, err := decodeConfigMap(raw)
	if err != nil {
		return cfg, fmt.Errorf("%s: %w", path, err)
	}
	return decoded, nil
}

func decodeConfigMap(raw map[string]any) (Config, error) {
	var cfg Config
	scanSection := make(map[string]any)
	outputSection := make(map[string]any)

	for key, value := range raw {
		norm := normalizeKey(key)
		switch norm {
		case "scan":
			sub, err := toStringKeyMap(value)
			if err != nil {
				return cfg, fmt.Errorf("scan: %w", err)
			}
			if err := fillSection(scanSection, sub, scanKeyMap, "scan"); err != nil {
				return cfg, err
			}
			continue
		case "output":
			// "output" is both a section and the top-level format key
			if sub, err := toStringKeyMap(value); err == nil {
				if err := fillSection(outputSection, sub, outputKeyMap, "output"); err != nil {
					return cfg, err
				}
				continue
			}
		}
		if canonical, ok := scanKeyMap[norm]; ok {
			scanSection[canonical] = value
			continue
		}
		if canonical, ok := outputKeyMap[norm]; ok {
			outputSection[canonical] = value
			continue
		}
		return cfg, fmt.Errorf("unknown config key: %s", key)
	}

	if err := assignScan(scanSection, &cfg.Scan); err != nil {
		return cfg, fmt.Errorf("scan: %w", err)
	}
	if err := assignOutput(outputSection, &cfg.Output); err != nil {
		return cfg, fmt.Errorf("output: %w", err)
	}
	return cfg, nil
}

func fillSection(dst, src map[string]any, allowed map[string]string, section string) error {
	for key, value := range src {
		canonical, ok := allowed[normalizeKey(key)]
		if !ok {
			return fmt.Errorf("unknown %s key: %s", section, key)
		}
		dst[canonical] = value
	}
	return nil
}

func assignScan(section map[string]any, dst *ScanConfig) error {
	for key, value := range section {
		switch key {
		case "mode", "preset", "root":
			str, err := expectString(value, key)
			if err != nil {
				return err
			}
			trimmed := strings.TrimSpace(str)
			switch key {
			case "mode":
				dst.Mode = &trimmed
			case "preset":
				dst.Preset = &trimmed
			default:
				dst.Root = &trimmed
			}
		case "open", "close", "escape":
			str, err := expectString(value, key)
			if err != nil {
				return err
			}
			switch key {
			case "open":
				dst.Open = &str
			case "close":
				dst.Close = &str
			default:
				dst.Escape = &str
			}
		case "borders":
			b, err := expectBool(value, key)
			if err != nil {
				return err
			}
			dst.Borders = &b
		case "path":
			list, err := expectStringList(value, key)
			if err != nil {
				return err
			}
			dst.Paths = &list
		case "exclude":
			list, err := expectStringList(value, key)
			if err != nil {
				return err
			}
			dst.Excludes = &list
		case "path_regex":
			list, err := expectStringList(value, key)
			if err != nil {
				return err
			}
			dst.PathRegex = &list
		case "lang":
			list, err := expectStringList(value, key)
			if err != nil {
				return err
			}
			dst.Langs = &list
		case "exclude_typical":
			b, err := expectBool(value, key)
			if err != nil {
				return err
			}
			dst.ExcludeTypical = &b
		case "tracked":
			b, err := expectBool(value, key)
			if err != nil {
				return err
			}
			dst.Tracked = &b
		case "jobs":
			n, err := expectInt(value, key)
			if err != nil {
				return err
			}
			dst.Jobs = &n
		case "max_file_bytes":
			n, err := expectInt(value, key)
			if err != nil {
				return err
			}
			dst.MaxFileBytes = &n
		default:
			return fmt.Errorf("unknown key: %s", key)
		}
	}
	return nil
}

func assignOutput(section map[string]any, dst *OutputConfig) error {
	for key, value := range section {
		if key == "truncate" {
			n, err := expectInt(value, key)
			if err != nil {
				return err
			}
			dst.Truncate = &n
			continue
		}
		str, err := expectString(value, key)
		if err != nil {
			return err
		}
		trimmed := strings.TrimSpace(str)
		switch key {
		case "output":
			dst.Format = &trimmed
		case "color":
			dst.Color = &trimmed
		case "fields":
			dst.Fields = &trimmed
		case "sort":
			dst.Sort = &trimmed
		case "log_level":
			dst.LogLevel = &trimmed
		case "log_file":
			dst.LogFile = &trimmed
		default:
			return fmt.Errorf("unknown key: %s", key)
		}
	}
	return nil
}

func expectString(value any, field string) (string, error) {
	if value == nil {
		return "", fmt.Errorf("%s cannot be null", field)
	}
	if s, ok := value.(string); ok {
		return s, nil
	}
	return "", fmt.Errorf("expected string for %s, got %T", field, value)
}

func expectBool(value any, field string) (bool, error) {
	switch v := value.(type) {
	case bool:
		return v, nil
	case string:
		return engineopts.ParseBool(v, field)
	default:
		return false, fmt.Errorf("expected bool for %s, got %T", field, value)
	}
}

func expectInt(value any, field string) (int, error) {
	switch v := value.(type) {
	case int:
		return v, nil
	case int64:
		return int(v), nil
	case float64:
		if v != float64(int(v)) {
			return 0, fmt.Errorf("expected integer for %s, got %v", field, value)
		}
		return int(v), nil
	case json.Number:
		n, err := strconv.Atoi(v.String())
		if err != nil {
			return 0, fmt.Errorf("invalid integer value for %s: %v", field, value)
		}
		return n, nil
	case string:
		trimmed := strings.TrimSpace(v)
		if trimmed == "" {
			return 0, fmt.Errorf("invalid integer value for %s: %q", field, v)
		}
		n, err := strconv.Atoi(trimmed)
		if err != nil {
			return 0, fmt.Errorf("invalid integer value for %s: %q", field, v)
		}
		return n, nil
	default:
		return 0, fmt.Errorf("expected integer for %s, got %T", field, value)
	}
}

func expectStringList(value any, field string) ([]string, error) {
	switch v := value.(type) {
	case string:
		parts := engineopts.SplitMulti([]string{v})
		return normalizeList(parts), nil
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			str, err := expectString(item, field)
			if err != nil {
				return nil, err
			}
			out = append(out, str)
		}
		return normalizeList(out), nil
	case []string:
		return normalizeList(v), nil
	default:
		return nil, fmt.Errorf("expected string or list for %s, got %T", field, value)
	}
}

func normalizeList(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		trimmed := strings.TrimSpace(v)
		if trimmed == "" {
			continue
		}
		out = append(out, trimmed)
	}
	return out
}

func toStringKeyMap(v any) (map[string]any, error) {
	switch typed := v.(type) {
	case map[string]any:
		return typed, nil
	case map[any]any:
		out := make(map[string]any, len(typed))
		for k, value := range typed {
			key, ok := k.(string)
			if !ok {
				return nil, fmt.Errorf("non-string key: %v", k)
			}
			out[key] = value
		}
		return out, nil
	default:
		return nil, fmt.Errorf("expected map, got %T", v)
	}
}

func normalizeKey(key string) string {
	norm := strings.ToLower(strings.TrimSpace(key))
	norm = strings.ReplaceAll(norm, "-", "_")
	return norm
}
