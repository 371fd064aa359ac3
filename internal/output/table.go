package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/phyten/delimscan/internal/model"
	"github.com/phyten/delimscan/internal/termcolor"
	"github.com/phyten/delimscan/internal/textutil"
)

// TableOptions controls the aligned terminal table.
type TableOptions struct {
	Color    termcolor.Settings
	Truncate int // max display width of a cell; 0 disables truncation
}

const columnGap = "  "

// WriteTable renders regions as an aligned table. Multi-line cells are
// folded onto one line and long cells are cut by display width.
func WriteTable(w io.Writer, regions []model.Region, sel FieldSelection, opts TableOptions) error {
	headers := Headers(sel.Fields)
	rows := make([][]string, len(regions))
	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = textutil.VisibleWidth(h)
	}
	for r, region := range regions {
		row := RowValues(region, sel.Fields)
		for i := range row {
			row[i] = textutil.SingleLine(row[i])
			if opts.Truncate > 0 {
				row[i] = textutil.TruncateByWidth(row[i], opts.Truncate, "…")
			}
			if cw := textutil.VisibleWidth(row[i]); cw > widths[i] {
				widths[i] = cw
			}
		}
		rows[r] = row
	}

	color := opts.Color
	cells := make([]string, len(headers))
	for i, h := range headers {
		cells[i] = termcolor.Apply(termcolor.HeaderStyle(), h, color.Enabled)
		if i < len(headers)-1 {
			cells[i] = textutil.PadRight(cells[i], widths[i])
		}
	}
	if _, err := fmt.Fprintln(w, strings.Join(cells, columnGap)); err != nil {
		return err
	}

	for r, row := range rows {
		region := regions[r]
		for i, f := range sel.Fields {
			cell := row[i]
			if f.Numeric {
				cell = textutil.PadLeft(cell, widths[i])
			} else if i < len(row)-1 {
				cell = textutil.PadRight(cell, widths[i])
			}
			cells[i] = termcolor.Apply(cellStyle(f.Key, region, color), cell, color.Enabled)
		}
		if _, err := fmt.Fprintln(w, strings.Join(cells, columnGap)); err != nil {
			return err
		}
	}
	return nil
}

func cellStyle(key string, r model.Region, color termcolor.Settings) termcolor.Style {
	switch key {
	case "mode":
		return termcolor.ModeStyle(r.Mode, color.Scheme, color.Profile)
	case "open", "close":
		return termcolor.DelimStyle()
	case "length":
		return termcolor.LengthStyle(len(r.Text), color.Profile, 200)
	default:
		return termcolor.Style{}
	}
}
