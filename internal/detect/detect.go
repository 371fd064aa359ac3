package detect

import (
	"bytes"
	"path/filepath"
	"strings"
)

type Info struct {
	Name string
}

// FromPathAndContent guesses the language of a file from its name, falling
// back to the shebang line.
func FromPathAndContent(p string, data []byte) Info {
	if name := detectByPath(p); name != "" {
		return Info{Name: name}
	}
	if shebang := detectByShebang(data); shebang != "" {
		return Info{Name: shebang}
	}
	return Info{Name: ""}
}

func detectByPath(p string) string {
	base := filepath.Base(p)
	lowerBase := strings.ToLower(base)
	if lang, ok := basenameLanguages[lowerBase]; ok {
		return lang
	}
	ext := strings.ToLower(filepath.Ext(base))
	if ext == "" {
		return ""
	}
	if lang, ok := extensionLanguages[ext]; ok {
		return lang
	}
	stem := strings.TrimSuffix(lowerBase, ext)
	if stem == lowerBase {
		return ""
	}
	// index.html.tmpl, page.html.j2 and friends
	if lang, ok := extensionLanguages[filepath.Ext(stem)+ext]; ok {
		return lang
	}
	return ""
}

func detectByShebang(data []byte) string {
	if len(data) == 0 || !bytes.HasPrefix(data, []byte("#!")) {
		return ""
	}
	end := bytes.IndexByte(data, '\n')
	if end == -1 {
		end = len(data)
	}
	line := strings.ToLower(string(data[:end]))
	for _, entry := range shebangLanguages {
		if strings.Contains(line, entry.key) {
			return entry.lang
		}
	}
	return ""
}

func NormalizeLangName(name string) string {
	n := strings.ToLower(strings.TrimSpace(name))
	if n == "" {
		return ""
	}
	if canon, ok := langAliases[n]; ok {
		return canon
	}
	return n
}

func MatchesLang(info Info, allow []string) bool {
	if len(allow) == 0 {
		return true
	}
	detected := NormalizeLangName(info.Name)
	if detected == "" {
		return false
	}
	for _, raw := range allow {
		if NormalizeLangName(raw) == detected {
			return true
		}
	}
	return false
}

// KnownLanguage reports whether name has a delimiter preset.
func KnownLanguage(name string) bool {
	if name == "" {
		return false
	}
	_, ok := presets[NormalizeLangName(name)]
	return ok
}

func CanonicalDetectLangs(values []string) []string {
	if len(values) == 0 {
		return values
	}
	out := make([]string, 0, len(values))
	seen := make(map[string]struct{}, len(values))
	for _, raw := range values {
		norm := NormalizeLangName(raw)
		if norm == "" {
			continue
		}
		if _, ok := seen[norm]; ok {
			continue
		}
		seen[norm] = struct{}{}
		out = append(out, norm)
	}
	return out
}

var basenameLanguages = map[string]string{
	"makefile":          "make",
	"gnumakefile":       "make",
	"package.json":      "json",
	"package-lock.json": "json",
	"composer.json":     "json",
	"tsconfig.json":     "json",
	"gemfile":           "ruby",
	"rakefile":          "ruby",
	"cargo.toml":        "toml",
	"pyproject.toml":    "toml",
	"dockerfile":        "dockerfile",
}

var extensionLanguages = map[string]string{
	".go":        "go",
	".js":        "javascript",
	".mjs":       "javascript",
	".cjs":       "javascript",
	".jsx":       "javascript",
	".ts":        "typescript",
	".tsx":       "typescript",
	".json":      "json",
	".json5":     "json",
	".jsonc":     "json",
	".yaml":      "yaml",
	".yml":       "yaml",
	".toml":      "toml",
	".md":        "markdown",
	".markdown":  "markdown",
	".mdx":       "markdown",
	".html":      "html",
	".htm":       "html",
	".xhtml":     "html",
	".xml":       "xml",
	".svg":       "xml",
	".tpl":       "gotemplate",
	".tmpl":      "gotemplate",
	".gotmpl":    "gotemplate",
	".html.tmpl": "gotemplate",
	".jinja":     "jinja",
	".jinja2":    "jinja",
	".j2":        "jinja",
	".html.j2":   "jinja",
	".twig":      "twig",
	".hbs":       "handlebars",
	".mustache":  "handlebars",
	".liquid":    "liquid",
	".djhtml":    "django",
	".erb":       "erb",
	".html.erb":  "erb",
	".ejs":       "ejs",
	".rb":        "ruby",
	".py":        "python",
	".clj":       "clojure",
	".cljs":      "clojure",
	".edn":       "clojure",
	".lisp":      "common-lisp",
	".cl":        "common-lisp",
	".el":        "emacs-lisp",
	".scm":       "scheme",
	".rkt":       "racket",
	".tex":       "latex",
	".sh":        "shell",
	".bash":      "shell",
	".zsh":       "shell",
	".mk":        "make",
}

var langAliases = map[string]string{
	"js":          "javascript",
	"jsx":         "javascript",
	"ts":          "typescript",
	"tsx":         "typescript",
	"yml":         "yaml",
	"md":          "markdown",
	"tmpl":        "gotemplate",
	"gotmpl":      "gotemplate",
	"go-template": "gotemplate",
	"j2":          "jinja",
	"jinja2":      "jinja",
	"hbs":         "handlebars",
	"mustache":    "handlebars",
	"lisp":        "common-lisp",
	"elisp":       "emacs-lisp",
	"bash":        "shell",
	"sh":          "shell",
	"zsh":         "shell",
	"rb":          "ruby",
	"py":          "python",
	"htm":         "html",
}

// shebangLanguages is ordered so that longer interpreter names win over
// their prefixes ("bash" before "sh").
var shebangLanguages = []struct {
	key  string
	lang string
}{
	{key: "python", lang: "python"},
	{key: "node", lang: "javascript"},
	{key: "deno", lang: "javascript"},
	{key: "ruby", lang: "ruby"},
	{key: "bash", lang: "shell"},
	{key: "zsh", lang: "shell"},
	{key: "guile", lang: "scheme"},
	{key: "racket", lang: "racket"},
	{key: "sh", lang: "shell"},
}
