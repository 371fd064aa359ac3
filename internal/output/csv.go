package output

import (
	"encoding/csv"
	"io"

	"github.com/phyten/delimscan/internal/model"
)

// WriteCSV renders regions as RFC 4180 compliant CSV (including CRLF endings).
func WriteCSV(w io.Writer, regions []model.Region, sel FieldSelection) error {
	writer := csv.NewWriter(w)
	writer.UseCRLF = true
	if err := writer.Write(Headers(sel.Fields)); err != nil {
		return err
	}
	for _, r := range regions {
		if err := writer.Write(RowValues(r, sel.Fields)); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}
