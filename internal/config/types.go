package config

import (
	"strings"

	"github.com/phyten/delimscan/internal/engine"
)

type ScanConfig struct {
	Mode           *string   `yaml:"mode" toml:"mode" json:"mode"`
	Open           *string   `yaml:"open" toml:"open" json:"open"`
	Close          *string   `yaml:"close" toml:"close" json:"close"`
	Escape         *string   `yaml:"escape" toml:"escape" json:"escape"`
	Borders        *bool     `yaml:"borders" toml:"borders" json:"borders"`
	Preset         *string   `yaml:"preset" toml:"preset" json:"preset"`
	Root           *string   `yaml:"root" toml:"root" json:"root"`
	Paths          *[]string `yaml:"path" toml:"path" json:"path"`
	Excludes       *[]string `yaml:"exclude" toml:"exclude" json:"exclude"`
	PathRegex      *[]string `yaml:"path_regex" toml:"path_regex" json:"path_regex"`
	ExcludeTypical *bool     `yaml:"exclude_typical" toml:"exclude_typical" json:"exclude_typical"`
	Langs          *[]string `yaml:"lang" toml:"lang" json:"lang"`
	Tracked        *bool     `yaml:"tracked" toml:"tracked" json:"tracked"`
	Jobs           *int      `yaml:"jobs" toml:"jobs" json:"jobs"`
	MaxFileBytes   *int      `yaml:"max_file_bytes" toml:"max_file_bytes" json:"max_file_bytes"`
}

type OutputConfig struct {
	Format   *string `yaml:"output" toml:"output" json:"output"`
	Color    *string `yaml:"color" toml:"color" json:"color"`
	Fields   *string `yaml:"fields" toml:"fields" json:"fields"`
	Sort     *string `yaml:"sort" toml:"sort" json:"sort"`
	Truncate *int    `yaml:"truncate" toml:"truncate" json:"truncate"`
	LogLevel *string `yaml:"log_level" toml:"log_level" json:"log_level"`
	LogFile  *string `yaml:"log_file" toml:"log_file" json:"log_file"`
}

type Config struct {
	Scan   ScanConfig   `yaml:"scan" toml:"scan" json:"scan"`
	Output OutputConfig `yaml:"output" toml:"output" json:"output"`
}

type ScanSettings struct {
	Mode           string
	Open           string
	Close          string
	Escape         string
	Borders        bool
	Preset         string
	Root           string
	Paths          []string
	Excludes       []string
	PathRegex      []string
	ExcludeTypical bool
	Langs          []string
	Tracked        bool
	Jobs           int
	MaxFileBytes   int
}

type OutputSettings struct {
	Format   string
	Color    string
	Fields   string
	Sort     string
	Truncate int
	LogLevel string
	LogFile  string
}

func ScanSettingsFromOptions(opts engine.Options) ScanSettings {
	return ScanSettings{
		Mode:           opts.Mode,
		Open:           opts.Open,
		Close:          opts.Close,
		Escape:         opts.Escape,
		Borders:        opts.IncludeBorders,
		Preset:         opts.Preset,
		Root:           opts.Root,
		Paths:          cloneStrings(opts.Paths),
		Excludes:       cloneStrings(opts.Excludes),
		PathRegex:      cloneStrings(opts.PathRegex),
		ExcludeTypical: opts.ExcludeTypical,
		Langs:          cloneStrings(opts.Langs),
		Tracked:        opts.Tracked,
		Jobs:           opts.Jobs,
		MaxFileBytes:   opts.MaxFileBytes,
	}
}

func (s ScanSettings) ApplyToOptions(opts *engine.Options) {
	if opts == nil {
		return
	}
	opts.Mode = s.Mode
	opts.Open = s.Open
	opts.Close = s.Close
	opts.Escape = s.Escape
	opts.IncludeBorders = s.Borders
	opts.Preset = s.Preset
	if trimmed := strings.TrimSpace(s.Root); trimmed != "" {
		opts.Root = trimmed
	}
	opts.Paths = cloneStrings(s.Paths)
	opts.Excludes = cloneStrings(s.Excludes)
	opts.PathRegex = cloneStrings(s.PathRegex)
	opts.ExcludeTypical = s.ExcludeTypical
	opts.Langs = cloneStrings(s.Langs)
	opts.Tracked = s.Tracked
	opts.Jobs = s.Jobs
	opts.MaxFileBytes = s.MaxFileBytes
}

func DefaultOutputSettings() OutputSettings {
	return OutputSettings{
		Format:   "table",
		Color:    "auto",
		Fields:   "",
		Sort:     "",
		Truncate: 0,
		LogLevel: "warn",
		LogFile:  "",
	}
}

func cloneStrings(in []string) []string {
	if len(in) == 0 {
		return nil
	}
	out := make([]string, len(in))
	copy(out, in)
	return out
}
