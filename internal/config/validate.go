package config

import (
	"fmt"
	"strings"

	engineopts "github.com/phyten/delimscan/internal/engine/opts"
	"github.com/phyten/delimscan/internal/logger"
)

func CanonicalizeColor(raw string) (string, error) {
	mode := strings.ToLower(strings.TrimSpace(raw))
	switch mode {
	case "", "auto":
		return "auto", nil
	case "always", "never":
		return mode, nil
	default:
		return "", fmt.Errorf("invalid color: %s", raw)
	}
}

func NormalizeOutput(values OutputSettings) (OutputSettings, error) {
	var err error
	values.Fields = strings.TrimSpace(values.Fields)
	values.Sort = strings.TrimSpace(values.Sort)

	values.Format, err = engineopts.NormalizeOutput(values.Format)
	if err != nil {
		return values, err
	}
	values.Color, err = CanonicalizeColor(values.Color)
	if err != nil {
		return values, err
	}
	if values.Truncate < 0 {
		return values, fmt.Errorf("truncate must be >= 0")
	}
	if _, err := logger.ParseLevel(values.LogLevel); err != nil {
		return values, err
	}
	values.LogLevel = strings.ToLower(strings.TrimSpace(values.LogLevel))
	return values, nil
}
