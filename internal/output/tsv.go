package output

import (
	"io"
	"strings"

	"github.com/phyten/delimscan/internal/model"
)

var tsvEscaper = strings.NewReplacer(`\`, `\\`, "\t", `\t`, "\n", `\n`, "\r", `\r`)

// WriteTSV renders one header row and one row per region. Backslash, tab
// and line breaks inside values are written as backslash escapes.
func WriteTSV(w io.Writer, regions []model.Region, sel FieldSelection) error {
	if err := writeTSVRow(w, Headers(sel.Fields)); err != nil {
		return err
	}
	for _, r := range regions {
		if err := writeTSVRow(w, RowValues(r, sel.Fields)); err != nil {
			return err
		}
	}
	return nil
}

func writeTSVRow(w io.Writer, values []string) error {
	for i := range values {
		values[i] = tsvEscaper.Replace(values[i])
	}
	_, err := io.WriteString(w, strings.Join(values, "\t")+"\n")
	return err
}
