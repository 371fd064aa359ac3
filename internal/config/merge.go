package config

import "strings"

func boolPtr(v bool) *bool {
	b := v
	return &b
}

func MergeScan(base ScanSettings, layers ...ScanConfig) ScanSettings {
	out := base
	for _, layer := range layers {
		out.Mode = ResolveAndTrim(out.Mode, layer.Mode)
		// delimiters keep their surrounding spaces
		out.Open = ResolveString(out.Open, layer.Open)
		out.Close = ResolveString(out.Close, layer.Close)
		out.Escape = ResolveString(out.Escape, layer.Escape)
		out.Borders = ResolveBool(out.Borders, layer.Borders)
		out.Preset = ResolveAndTrim(out.Preset, layer.Preset)
		out.Root = ResolveAndTrim(out.Root, layer.Root)
		out.Paths = ResolveStrings(out.Paths, layer.Paths)
		out.Excludes = ResolveStrings(out.Excludes, layer.Excludes)
		out.PathRegex = ResolveStrings(out.PathRegex, layer.PathRegex)
		out.ExcludeTypical = ResolveBool(out.ExcludeTypical, layer.ExcludeTypical)
		out.Langs = ResolveStrings(out.Langs, layer.Langs)
		out.Tracked = ResolveBool(out.Tracked, layer.Tracked)
		out.Jobs = ResolveInt(out.Jobs, layer.Jobs)
		out.MaxFileBytes = ResolveInt(out.MaxFileBytes, layer.MaxFileBytes)
	}
	return out
}

func MergeOutput(base OutputSettings, layers ...OutputConfig) OutputSettings {
	out := base
	for _, layer := range layers {
		out.Format = ResolveAndTrim(out.Format, layer.Format)
		out.Color = ResolveAndTrim(out.Color, layer.Color)
		out.Fields = ResolveAndTrim(out.Fields, layer.Fields)
		out.Sort = ResolveAndTrim(out.Sort, layer.Sort)
		out.Truncate = ResolveInt(out.Truncate, layer.Truncate)
		out.LogLevel = ResolveAndTrim(out.LogLevel, layer.LogLevel)
		out.LogFile = ResolveAndTrim(out.LogFile, layer.LogFile)
	}
	if strings.TrimSpace(out.Format) == "" {
		out.Format = "table"
	}
	if strings.TrimSpace(out.Color) == "" {
		out.Color = "auto"
	}
	return out
}
