package engine

import (
	"strings"

	"github.com/phyten/delimscan/internal/detect"
	"github.com/phyten/delimscan/internal/model"
)

// SpecsFor returns the delimiter specs to apply to a file detected as lang.
// Explicit --open/--close win over any preset; otherwise the preset named by
// Options.Preset is used, or the detected language's preset under "auto".
func SpecsFor(o Options, lang string) []Spec {
	if o.Open != "" || o.Close != "" {
		return []Spec{{
			Mode:           explicitMode(o.Mode, o.Escape),
			Open:           o.Open,
			Close:          o.Close,
			Escape:         o.Escape,
			IncludeBorders: o.IncludeBorders,
		}}
	}
	name := strings.TrimSpace(o.Preset)
	if name == "" || name == "auto" {
		name = lang
	}
	pairs := detect.PresetFor(name)
	if len(pairs) == 0 {
		return nil
	}
	out := make([]Spec, 0, len(pairs))
	for _, p := range pairs {
		sp := Spec{
			Mode:           p.Mode,
			Open:           p.Open,
			Close:          p.Close,
			Escape:         p.Escape,
			IncludeBorders: o.IncludeBorders,
		}
		if o.Mode != "" && o.Mode != "auto" {
			sp.Mode = model.ScanMode(o.Mode)
		}
		if o.Escape != "" {
			sp.Escape = o.Escape
		}
		if sp.Mode == model.ScanModeEscaped && sp.Escape == "" {
			sp.Escape = `\`
		}
		out = append(out, sp)
	}
	return out
}

func explicitMode(mode, escape string) model.ScanMode {
	switch mode {
	case "", "auto":
		if escape != "" {
			return model.ScanModeEscaped
		}
		return model.ScanModeFlat
	}
	return model.ScanMode(mode)
}
