package termcolor

import (
	"strconv"
	"strings"
)

type Style struct {
	Bold      bool
	Dim       bool
	Italic    bool
	Underline bool
	Reverse   bool
	FGBasic   *int
	FG256     *int
	FGTrue    *[3]uint8
}

// IsZero reports whether s would emit no SGR codes.
func (s Style) IsZero() bool {
	return len(sgrCodes(s)) == 0
}

func Apply(s Style, text string, enabled bool) string {
	if !enabled || text == "" {
		return text
	}
	codes := sgrCodes(s)
	if len(codes) == 0 {
		return text
	}
	return "\x1b[" + strings.Join(codes, ";") + "m" + text + "\x1b[0m"
}

func sgrCodes(s Style) []string {
	var codes []string
	flags := []struct {
		on   bool
		code string
	}{
		{s.Bold, "1"},
		{s.Dim, "2"},
		{s.Italic, "3"},
		{s.Underline, "4"},
		{s.Reverse, "7"},
	}
	for _, f := range flags {
		if f.on {
			codes = append(codes, f.code)
		}
	}
	switch {
	case s.FGTrue != nil:
		rgb := *s.FGTrue
		codes = append(codes, "38;2;"+strconv.Itoa(int(rgb[0]))+";"+strconv.Itoa(int(rgb[1]))+";"+strconv.Itoa(int(rgb[2])))
	case s.FG256 != nil:
		codes = append(codes, "38;5;"+strconv.Itoa(*s.FG256))
	case s.FGBasic != nil:
		codes = append(codes, "3"+strconv.Itoa(*s.FGBasic))
	}
	return codes
}
