package termcolor

import (
	"strconv"
	"strings"
)

type Scheme int

const (
	SchemeUnknown Scheme = iota
	SchemeDark
	SchemeLight
)

// DetectScheme guesses the terminal background from COLORFGBG ("fg;bg" or
// "fg;default;bg") and falls back to TERM names containing "light".
func DetectScheme(env map[string]string) Scheme {
	if bg, ok := colorFGBGBackground(env["COLORFGBG"]); ok {
		if bg >= 7 {
			return SchemeLight
		}
		return SchemeDark
	}
	if strings.Contains(strings.ToLower(env["TERM"]), "light") {
		return SchemeLight
	}
	return SchemeDark
}

func colorFGBGBackground(raw string) (int, bool) {
	parts := strings.Split(strings.TrimSpace(raw), ";")
	for i := len(parts) - 1; i >= 1; i-- {
		bg, err := strconv.Atoi(strings.TrimSpace(parts[i]))
		if err == nil && bg >= 0 {
			return bg, true
		}
	}
	return 0, false
}
