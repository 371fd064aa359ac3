package output

import (
	"fmt"
	"io"

	"github.com/phyten/delimscan/internal/engine"
	"github.com/phyten/delimscan/internal/termcolor"
)

// Options selects the renderer and its presentation settings.
type Options struct {
	Format   string // table|tsv|json|ndjson|csv|markdown
	Fields   FieldSelection
	Sort     SortSpec
	Color    termcolor.Settings
	Truncate int
}

// Render sorts res.Items according to opts.Sort and writes them in the
// requested format. Only json carries the counters and per-file errors.
func Render(w io.Writer, res *engine.Result, opts Options) error {
	if len(opts.Sort.Keys) > 0 {
		ApplySort(res.Items, opts.Sort)
	}
	switch opts.Format {
	case "", "table":
		return WriteTable(w, res.Items, opts.Fields, TableOptions{Color: opts.Color, Truncate: opts.Truncate})
	case "tsv":
		return WriteTSV(w, res.Items, opts.Fields)
	case "json":
		return WriteJSON(w, res)
	case "ndjson":
		return WriteNDJSON(w, res.Items)
	case "csv":
		return WriteCSV(w, res.Items, opts.Fields)
	case "markdown":
		return WriteMarkdownTable(w, res.Items, opts.Fields)
	default:
		return fmt.Errorf("unknown output format: %s", opts.Format)
	}
}

// WriteErrors prints per-file failures as "stage: file: message" lines.
func WriteErrors(w io.Writer, errs []engine.ItemError, color termcolor.Settings) error {
	for _, e := range errs {
		stage := termcolor.Apply(termcolor.ErrorStyle(), e.Stage, color.Enabled)
		if _, err := fmt.Fprintf(w, "%s: %s: %s\n", stage, e.File, e.Message); err != nil {
			return err
		}
	}
	return nil
}
