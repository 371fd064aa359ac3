package detect

import (
	"sort"

	"github.com/phyten/delimscan/internal/model"
)

// Pair is a delimiter pair together with the scanner suited to it.
type Pair struct {
	Mode   model.ScanMode `json:"mode"`
	Open   string         `json:"open"`
	Close  string         `json:"close"`
	Escape string         `json:"escape,omitempty"`
}

var (
	pairsMustache = []Pair{{Mode: model.ScanModeFlat, Open: "{{", Close: "}}"}}
	pairsJinja    = []Pair{
		{Mode: model.ScanModeFlat, Open: "{{", Close: "}}"},
		{Mode: model.ScanModeFlat, Open: "{%", Close: "%}"},
		{Mode: model.ScanModeFlat, Open: "{#", Close: "#}"},
	}
	pairsERB    = []Pair{{Mode: model.ScanModeFlat, Open: "<%", Close: "%>"}}
	pairsBraces = []Pair{{Mode: model.ScanModeBalanced, Open: "{", Close: "}"}}
	pairsParens = []Pair{{Mode: model.ScanModeBalanced, Open: "(", Close: ")"}}
	pairsMarkup = []Pair{{Mode: model.ScanModeFlat, Open: "<!--", Close: "-->"}}
	pairsShell  = []Pair{{Mode: model.ScanModeNested, Open: "${", Close: "}"}}
)

var presets = map[string][]Pair{
	"gotemplate":  pairsMustache,
	"handlebars":  pairsMustache,
	"jinja":       pairsJinja,
	"django":      pairsJinja,
	"twig":        pairsJinja,
	"liquid":      pairsJinja[:2],
	"erb":         pairsERB,
	"ejs":         pairsERB,
	"go":          pairsBraces,
	"javascript":  pairsBraces,
	"typescript":  pairsBraces,
	"json":        pairsBraces,
	"latex":       pairsBraces,
	"common-lisp": pairsParens,
	"emacs-lisp":  pairsParens,
	"scheme":      pairsParens,
	"racket":      pairsParens,
	"clojure":     pairsParens,
	"html":        pairsMarkup,
	"xml":         pairsMarkup,
	"markdown":    {{Mode: model.ScanModeEscaped, Open: "`", Close: "`", Escape: `\`}},
	"shell":       pairsShell,
	"make":        {{Mode: model.ScanModeBalanced, Open: "$(", Close: ")"}},
}

// PresetFor returns the default delimiter pairs for lang, or nil.
func PresetFor(lang string) []Pair {
	pairs, ok := presets[NormalizeLangName(lang)]
	if !ok {
		return nil
	}
	out := make([]Pair, len(pairs))
	copy(out, pairs)
	return out
}

// PresetNames lists every language with a preset, sorted.
func PresetNames() []string {
	names := make([]string, 0, len(presets))
	for name := range presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
