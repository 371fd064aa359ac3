package output

import (
	"encoding/json"
	"io"

	"github.com/phyten/delimscan/internal/model"
)

// WriteNDJSON streams regions as newline-delimited JSON objects.
func WriteNDJSON(w io.Writer, regions []model.Region) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	for _, r := range regions {
		if err := enc.Encode(r); err != nil {
			return err
		}
	}
	return nil
}
