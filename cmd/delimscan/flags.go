package main

import (
	"flag"
	"fmt"
	"io"
	"strings"

	"github.com/phyten/delimscan/internal/config"
	engineopts "github.com/phyten/delimscan/internal/engine/opts"
)

// multiFlag collects repeatable flags such as --exclude.
type multiFlag []string

func (m *multiFlag) String() string { return strings.Join(*m, ",") }

func (m *multiFlag) Set(v string) error {
	*m = append(*m, v)
	return nil
}

// scanArgs is the command line after parsing. layer only carries the values
// the user actually typed so that config files and env keep their say.
type scanArgs struct {
	layer         config.Config
	configPath    string
	stdinName     string
	mask          string
	masking       bool
	forceProgress bool
	noProgress    bool
	readStdin     bool
	showHelp      bool
}

const scanUsage = `delimscan: find delimited regions ({{ }}, {% %}, ( ), ` + "`...`" + `) in files

Usage:
  delimscan [flags] [paths...]
  delimscan [flags] -            scan stdin
  delimscan serve [-p port] [--open]

Delimiters:
  -m, --mode MODE          auto|flat|escaped|balanced|nested (default auto)
      --open S, --close S  explicit delimiter pair (wins over presets)
      --escape S           escape sequence for escaped mode (default \)
      --borders            include the delimiters in each region
      --preset LANG        auto|<lang> preset pairs (default auto)

Files:
      --root DIR           directory to scan (default .); paths must stay below it
      --exclude GLOB       skip matching paths (repeatable, comma separated)
      --exclude-typical    skip vendor/, node_modules/, dist/, build/, target/, *.min.*
      --path-regex RE      only scan paths matching RE (repeatable)
      --lang LANG          only scan files detected as LANG (repeatable)
      --tracked            list files with git ls-files
  -j, --jobs N             parallel workers (1..64)
      --max-file-bytes N   skip larger files (0 = no limit)
      --stdin-name NAME    file name used to detect the language of stdin

Output:
  -o, --output FMT         table|tsv|json|ndjson|csv|markdown
      --fields LIST        e.g. file,line,col,mode,text (default location,mode,text)
      --sort KEYS          e.g. -length,file
      --truncate N         cut table cells to N columns (0 = off)
      --color WHEN         auto|always|never
      --mask S             print stdin with every region replaced by S
      --progress / --no-progress
      --log-level LEVEL    debug|info|warn|error
      --log-file PATH
      --config PATH        config file (.yaml, .yml, .toml, .json)
`

func parseScanArgs(args []string, stderr io.Writer) (*scanArgs, error) {
	fs := flag.NewFlagSet("delimscan", flag.ContinueOnError)
	fs.SetOutput(stderr)
	// help is printed by the caller on stdout
	fs.Usage = func() {}

	var (
		mode, open, closeDelim, escape, preset, root      string
		output, fields, sortKey, color, logLevel, logFile string
		borders, excludeTypical, tracked                  bool
		jobs, maxFileBytes, truncate                      int
		excludes, pathRegex, langs                        multiFlag
		out                                               scanArgs
	)
	fs.StringVar(&mode, "mode", "", "")
	fs.StringVar(&mode, "m", "", "")
	fs.StringVar(&open, "open", "", "")
	fs.StringVar(&closeDelim, "close", "", "")
	fs.StringVar(&escape, "escape", "", "")
	fs.BoolVar(&borders, "borders", false, "")
	fs.StringVar(&preset, "preset", "", "")
	fs.StringVar(&root, "root", "", "")
	fs.Var(&excludes, "exclude", "")
	fs.BoolVar(&excludeTypical, "exclude-typical", false, "")
	fs.Var(&pathRegex, "path-regex", "")
	fs.Var(&langs, "lang", "")
	fs.BoolVar(&tracked, "tracked", false, "")
	fs.IntVar(&jobs, "jobs", 0, "")
	fs.IntVar(&jobs, "j", 0, "")
	fs.IntVar(&maxFileBytes, "max-file-bytes", 0, "")
	fs.StringVar(&out.stdinName, "stdin-name", "", "")
	fs.StringVar(&output, "output", "", "")
	fs.StringVar(&output, "o", "", "")
	fs.StringVar(&fields, "fields", "", "")
	fs.StringVar(&sortKey, "sort", "", "")
	fs.IntVar(&truncate, "truncate", 0, "")
	fs.StringVar(&color, "color", "", "")
	fs.StringVar(&out.mask, "mask", "", "")
	fs.BoolVar(&out.forceProgress, "progress", false, "")
	fs.BoolVar(&out.noProgress, "no-progress", false, "")
	fs.StringVar(&logLevel, "log-level", "", "")
	fs.StringVar(&logFile, "log-file", "", "")
	fs.StringVar(&out.configPath, "config", "", "")
	fs.BoolVar(&out.showHelp, "help", false, "")
	fs.BoolVar(&out.showHelp, "h", false, "")

	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			out.showHelp = true
			return &out, nil
		}
		return nil, err
	}

	scan := &out.layer.Scan
	outCfg := &out.layer.Output
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "mode", "m":
			scan.Mode = &mode
		case "open":
			scan.Open = &open
		case "close":
			scan.Close = &closeDelim
		case "escape":
			scan.Escape = &escape
		case "borders":
			scan.Borders = &borders
		case "preset":
			scan.Preset = &preset
		case "root":
			scan.Root = &root
		case "exclude":
			list := engineopts.SplitMulti(excludes)
			scan.Excludes = &list
		case "exclude-typical":
			scan.ExcludeTypical = &excludeTypical
		case "path-regex":
			// regexes may contain commas
			list := []string(pathRegex)
			scan.PathRegex = &list
		case "lang":
			list := engineopts.SplitMulti(langs)
			scan.Langs = &list
		case "tracked":
			scan.Tracked = &tracked
		case "jobs", "j":
			scan.Jobs = &jobs
		case "max-file-bytes":
			scan.MaxFileBytes = &maxFileBytes
		case "output", "o":
			outCfg.Format = &output
		case "fields":
			outCfg.Fields = &fields
		case "sort":
			outCfg.Sort = &sortKey
		case "truncate":
			outCfg.Truncate = &truncate
		case "color":
			outCfg.Color = &color
		case "log-level":
			outCfg.LogLevel = &logLevel
		case "log-file":
			outCfg.LogFile = &logFile
		case "mask":
			out.masking = true
		}
	})

	paths := fs.Args()
	switch {
	case len(paths) == 1 && paths[0] == "-":
		out.readStdin = true
	case len(paths) > 0:
		for _, p := range paths {
			if p == "-" {
				return nil, fmt.Errorf("stdin (-) cannot be combined with paths")
			}
		}
		scan.Paths = &paths
	}
	if out.forceProgress && out.noProgress {
		return nil, fmt.Errorf("--progress and --no-progress are mutually exclusive")
	}
	return &out, nil
}
