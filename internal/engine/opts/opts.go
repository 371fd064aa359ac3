package opts

import (
	"fmt"
	"net/url"
	"runtime"
	"strconv"
	"strings"

	"github.com/phyten/delimscan/internal/detect"
	"github.com/phyten/delimscan/internal/engine"
	"github.com/phyten/delimscan/internal/model"
)

const (
	maxJobs = 64
)

var (
	trueLiterals  = map[string]struct{}{"1": {}, "true": {}, "yes": {}, "on": {}}
	falseLiterals = map[string]struct{}{"0": {}, "false": {}, "no": {}, "off": {}}
)

// Defaults returns the shared baseline options for both CLI and Web inputs.
func Defaults(root string) engine.Options {
	jobs := runtime.NumCPU()
	if jobs < 1 {
		jobs = 1
	}
	if jobs > maxJobs {
		jobs = maxJobs
	}
	return engine.Options{
		Mode:           "auto",
		Open:           "",
		Close:          "",
		Escape:         "",
		IncludeBorders: false,
		Preset:         "",
		Root:           root,
		Jobs:           jobs,
		MaxFileBytes:   0,
		Tracked:        false,
		ExcludeTypical: false,
		Progress:       false,
	}
}

// ApplyWebQueryToOptions copies recognised values from the query string into the
// provided options. Validation happens separately via NormalizeAndValidate.
func ApplyWebQueryToOptions(def engine.Options, q url.Values) (engine.Options, error) {
	out := def

	if raw, ok := lastLiteralValue(q["mode"]); ok {
		out.Mode = raw
	}
	// delimiters are taken verbatim: commas and spaces are legitimate there
	if raw, ok := lastExactValue(q["open"]); ok {
		out.Open = raw
	}
	if raw, ok := lastExactValue(q["close"]); ok {
		out.Close = raw
	}
	if raw, ok := lastExactValue(q["escape"]); ok {
		out.Escape = raw
	}
	if raw, ok := lastLiteralValue(q["borders"]); ok {
		v, err := ParseBool(raw, "borders")
		if err != nil {
			return out, err
		}
		out.IncludeBorders = v
	}
	if raw, ok := lastLiteralValue(q["preset"]); ok {
		out.Preset = raw
	}
	if raw, ok := lastLiteralValue(q["jobs"]); ok {
		n, err := ParseIntInRange(raw, "jobs", 1, maxJobs)
		if err != nil {
			return out, err
		}
		out.Jobs = n
	}
	if raw, ok := lastLiteralValue(q["max_file_bytes"]); ok {
		n, err := parseInt(raw, "max_file_bytes")
		if err != nil {
			return out, err
		}
		out.MaxFileBytes = n
	}
	if raw, ok := lastLiteralValue(q["tracked"]); ok {
		v, err := ParseBool(raw, "tracked")
		if err != nil {
			return out, err
		}
		out.Tracked = v
	}
	if raw, ok := lastLiteralValue(q["progress"]); ok {
		v, err := ParseBool(raw, "progress")
		if err != nil {
			return out, err
		}
		out.Progress = v
	}
	if raw := q["path"]; len(raw) > 0 {
		out.Paths = SplitMulti(raw)
	}
	if raw := q["exclude"]; len(raw) > 0 {
		out.Excludes = SplitMulti(raw)
	}
	if raw := q["path_regex"]; len(raw) > 0 {
		out.PathRegex = SplitMulti(raw)
	}
	if raw := q["lang"]; len(raw) > 0 {
		out.Langs = SplitMulti(raw)
	}
	if raw, ok := lastLiteralValue(q["exclude_typical"]); ok {
		v, err := ParseBool(raw, "exclude_typical")
		if err != nil {
			return out, err
		}
		out.ExcludeTypical = v
	}
	if raw, ok := lastRawValue(q["root"]); ok {
		out.Root = raw
	}

	return out, nil
}

// NormalizeMode validates and lower-cases a scan mode. The empty string means auto.
func NormalizeMode(value string) (string, error) {
	v := strings.ToLower(strings.TrimSpace(value))
	switch v {
	case "", "auto":
		return "auto", nil
	case string(model.ScanModeFlat), string(model.ScanModeEscaped), string(model.ScanModeBalanced), string(model.ScanModeNested):
		return v, nil
	}
	return "", fmt.Errorf("invalid --mode: %s", value)
}

// NormalizeAndValidate ensures the options are canonical and within the allowed ranges.
func NormalizeAndValidate(o *engine.Options) error {
	mode, err := NormalizeMode(o.Mode)
	if err != nil {
		return err
	}
	o.Mode = mode

	if (o.Open == "") != (o.Close == "") {
		return fmt.Errorf("--open and --close must be given together")
	}
	explicit := o.Open != ""
	if explicit && o.Mode == string(model.ScanModeEscaped) && o.Escape == "" {
		o.Escape = `\`
	}

	o.Preset = detect.NormalizeLangName(o.Preset)
	switch {
	case o.Preset == "" && !explicit:
		o.Preset = "auto"
	case o.Preset == "" || o.Preset == "auto":
	case !detect.KnownLanguage(o.Preset):
		return fmt.Errorf("unknown --preset: %s (known: %s)", o.Preset, strings.Join(detect.PresetNames(), ", "))
	}

	if explicit {
		for _, sp := range engine.SpecsFor(*o, "") {
			if err := engine.ValidateSpec(sp); err != nil {
				return err
			}
		}
	}

	if o.Jobs < 1 || o.Jobs > maxJobs {
		return fmt.Errorf("jobs must be between 1 and %d", maxJobs)
	}

	if strings.TrimSpace(o.Root) == "" {
		o.Root = "."
	}

	if o.MaxFileBytes < 0 {
		return fmt.Errorf("max_file_bytes must be >= 0")
	}

	o.Paths = trimSlice(o.Paths)
	if err := engine.CheckIncludes(o.Paths, o.Tracked); err != nil {
		return err
	}
	o.Excludes = trimSlice(o.Excludes)
	o.PathRegex = trimSlice(o.PathRegex)
	o.Langs = trimSlice(o.Langs)
	if len(o.Langs) > 0 {
		o.Langs = detect.CanonicalDetectLangs(o.Langs)
	}

	compiled, err := engine.CompilePathRegex(o.PathRegex)
	if err != nil {
		return fmt.Errorf("invalid --path-regex: %w", err)
	}
	o.PathRegexCompiled = compiled

	return nil
}

// ParseBool converts a string literal into a boolean, accepting multiple synonyms.
func ParseBool(raw, key string) (bool, error) {
	v := strings.ToLower(strings.TrimSpace(raw))
	if _, ok := trueLiterals[v]; ok {
		return true, nil
	}
	if _, ok := falseLiterals[v]; ok {
		return false, nil
	}
	return false, fmt.Errorf("invalid value for %s: %q", key, raw)
}

// ParseIntInRange parses a string into an int and ensures it falls within [min, max].
// If max < min, the upper bound is ignored.
func ParseIntInRange(raw, key string, min, max int) (int, error) {
	n, err := parseInt(raw, key)
	if err != nil {
		return 0, err
	}
	if n < min {
		if max >= min {
			return 0, fmt.Errorf("%s must be between %d and %d", key, min, max)
		}
		return 0, fmt.Errorf("%s must be >= %d", key, min)
	}
	if max >= min && n > max {
		return 0, fmt.Errorf("%s must be between %d and %d", key, min, max)
	}
	return n, nil
}

// NormalizeOutput validates and lower-cases the CLI/Web output format value.
func NormalizeOutput(value string) (string, error) {
	v := strings.ToLower(strings.TrimSpace(value))
	switch v {
	case "table", "tsv", "json", "ndjson", "csv", "markdown":
		return v, nil
	case "md":
		return "markdown", nil
	case "jsonl":
		return "ndjson", nil
	}
	return "", fmt.Errorf("invalid --output: %s", value)
}

// SplitMulti turns repeated query parameters (and comma-separated values) into a flat slice.
func SplitMulti(vals []string) []string {
	var out []string
	for _, raw := range vals {
		for _, piece := range strings.Split(raw, ",") {
			part := strings.TrimSpace(piece)
			if part == "" {
				continue
			}
			out = append(out, part)
		}
	}
	return out
}

func parseInt(raw, key string) (int, error) {
	v := strings.TrimSpace(raw)
	if v == "" {
		return 0, fmt.Errorf("invalid integer value for %s: %q", key, raw)
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid integer value for %s: %q", key, raw)
	}
	return n, nil
}

func lastLiteralValue(vals []string) (string, bool) {
	flat := SplitMulti(vals)
	if len(flat) == 0 {
		return "", false
	}
	return flat[len(flat)-1], true
}

func lastRawValue(vals []string) (string, bool) {
	for i := len(vals) - 1; i >= 0; i-- {
		trimmed := strings.TrimSpace(vals[i])
		if trimmed == "" {
			continue
		}
		return trimmed, true
	}
	return "", false
}

func lastExactValue(vals []string) (string, bool) {
	for i := len(vals) - 1; i >= 0; i-- {
		if vals[i] != "" {
			return vals[i], true
		}
	}
	return "", false
}

func trimSlice(values []string) []string {
	if len(values) == 0 {
		return values
	}
	out := values[:0]
	for _, v := range values {
		trimmed := strings.TrimSpace(v)
		if trimmed == "" {
			continue
		}
		out = append(out, trimmed)
	}
	return out
}
