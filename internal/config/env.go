package config

import (
	"errors"
	"math"
	"strings"

	engineopts "github.com/phyten/delimscan/internal/engine/opts"
)

const envPrefix = "DELIMSCAN_"

// FromEnv reads the DELIMSCAN_* variables into a config layer. Every invalid
// value is reported; the valid ones are still applied.
func FromEnv(getenv func(string) string) (Config, error) {
	if getenv == nil {
		getenv = func(string) string { return "" }
	}
	var cfg Config
	var errs []error

	lookup := func(key string) string { return getenv(envPrefix + key) }

	setString := func(target **string, key string) {
		raw := strings.TrimSpace(lookup(key))
		if raw == "" {
			return
		}
		value := raw
		*target = &value
	}
	// delimiters may legitimately carry spaces
	setVerbatim := func(target **string, key string) {
		raw := lookup(key)
		if raw == "" {
			return
		}
		value := raw
		*target = &value
	}
	setList := func(target **[]string, key string) {
		raw := strings.TrimSpace(lookup(key))
		if raw == "" {
			return
		}
		list := engineopts.SplitMulti([]string{raw})
		if len(list) == 0 {
			empty := make([]string, 0)
			*target = &empty
			return
		}
		*target = &list
	}
	setBool := func(target **bool, key string) {
		raw := strings.TrimSpace(lookup(key))
		if raw == "" {
			return
		}
		v, err := engineopts.ParseBool(raw, envPrefix+key)
		if err != nil {
			errs = append(errs, err)
			return
		}
		*target = &v
	}
	setInt := func(target **int, key string, min, max int) {
		raw := strings.TrimSpace(lookup(key))
		if raw == "" {
			return
		}
		v, err := engineopts.ParseIntInRange(raw, envPrefix+key, min, max)
		if err != nil {
			errs = append(errs, err)
			return
		}
		*target = &v
	}

	setString(&cfg.Scan.Mode, "MODE")
	setVerbatim(&cfg.Scan.Open, "OPEN")
	setVerbatim(&cfg.Scan.Close, "CLOSE")
	setVerbatim(&cfg.Scan.Escape, "ESCAPE")
	setBool(&cfg.Scan.Borders, "BORDERS")
	setString(&cfg.Scan.Preset, "PRESET")
	setString(&cfg.Scan.Root, "ROOT")
	setList(&cfg.Scan.Paths, "PATH")
	setList(&cfg.Scan.Excludes, "EXCLUDE")
	setList(&cfg.Scan.PathRegex, "PATH_REGEX")
	setBool(&cfg.Scan.ExcludeTypical, "EXCLUDE_TYPICAL")
	setList(&cfg.Scan.Langs, "LANG")
	setBool(&cfg.Scan.Tracked, "TRACKED")
	setInt(&cfg.Scan.MaxFileBytes, "MAX_FILE_BYTES", 0, math.MaxInt)
	// NormalizeAndValidate enforces the upper bound so every input path
	// reports the same message.
	setInt(&cfg.Scan.Jobs, "JOBS", 0, math.MaxInt)

	setString(&cfg.Output.Format, "OUTPUT")
	setString(&cfg.Output.Color, "COLOR")
	setString(&cfg.Output.Fields, "FIELDS")
	setString(&cfg.Output.Sort, "SORT")
	setInt(&cfg.Output.Truncate, "TRUNCATE", 0, math.MaxInt)
	setString(&cfg.Output.LogLevel, "LOG_LEVEL")
	setString(&cfg.Output.LogFile, "LOG_FILE")

	if len(errs) > 0 {
		return cfg, errors.Join(errs...)
	}
	return cfg, nil
}
