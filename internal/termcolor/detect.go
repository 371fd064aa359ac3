package termcolor

import (
	"fmt"
	"os"
	"strings"

	"golang.org/x/term"
)

type ColorMode int

const (
	ModeAuto ColorMode = iota
	ModeAlways
	ModeNever
)

func (m ColorMode) String() string {
	switch m {
	case ModeAlways:
		return "always"
	case ModeNever:
		return "never"
	default:
		return "auto"
	}
}

func ParseMode(v string) (ColorMode, error) {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "", "auto":
		return ModeAuto, nil
	case "always":
		return ModeAlways, nil
	case "never":
		return ModeNever, nil
	default:
		return ModeAuto, fmt.Errorf("unknown color mode: %s", v)
	}
}

type Profile int

const (
	ProfileBasic8 Profile = iota
	ProfileANSI256
	ProfileTrueColor
)

// Settings is everything a renderer needs to decide how to paint a cell.
type Settings struct {
	Enabled bool
	Profile Profile
	Scheme  Scheme
}

// Resolve turns the --color flag into concrete settings for stdout.
// ModeAuto consults DetectMode; the profile and scheme always come from env.
func Resolve(mode ColorMode, stdout *os.File, env map[string]string) Settings {
	enabled := false
	switch mode {
	case ModeAlways:
		enabled = true
	case ModeNever:
	default:
		enabled = DetectMode(stdout, env) == ModeAlways
	}
	return Settings{
		Enabled: enabled,
		Profile: DetectProfile(env),
		Scheme:  DetectScheme(env),
	}
}

func EnvMap(values []string) map[string]string {
	env := make(map[string]string, len(values))
	for _, entry := range values {
		if entry == "" {
			continue
		}
		key, value, _ := strings.Cut(entry, "=")
		env[key] = value
	}
	return env
}

// DetectMode determines the effective color mode for auto-detection.
//
// Priority order (first match wins):
//  1. TERM=dumb suppresses colors entirely.
//  2. NO_COLOR disables colors.
//  3. CLICOLOR=0 disables colors.
//  4. CLICOLOR_FORCE / FORCE_COLOR with any non-zero value force-enable colors.
//  5. Otherwise colors are emitted only when stdout is a TTY.
func DetectMode(stdout *os.File, env map[string]string) ColorMode {
	get := func(k string) string { return strings.TrimSpace(env[k]) }
	switch {
	case strings.EqualFold(get("TERM"), "dumb"):
		return ModeNever
	case get("NO_COLOR") != "":
		return ModeNever
	case get("CLICOLOR") == "0":
		return ModeNever
	case forceColor(get("CLICOLOR_FORCE")), forceColor(get("FORCE_COLOR")):
		return ModeAlways
	case isTerminal(stdout):
		return ModeAlways
	default:
		return ModeNever
	}
}

// DetectProfile inspects COLORTERM/TERM to determine the best-fit color profile.
func DetectProfile(env map[string]string) Profile {
	colorterm := strings.ToLower(strings.TrimSpace(env["COLORTERM"]))
	for _, marker := range []string{"truecolor", "24bit", "24-bit"} {
		if strings.Contains(colorterm, marker) {
			return ProfileTrueColor
		}
	}
	if strings.Contains(strings.ToLower(env["TERM"]), "256color") {
		return ProfileANSI256
	}
	return ProfileBasic8
}

func isTerminal(f *os.File) bool {
	if f == nil {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}

func forceColor(v string) bool {
	return v != "" && v != "0"
}
