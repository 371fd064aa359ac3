package output

import (
	"encoding/json"
	"io"

	"github.com/phyten/delimscan/internal/engine"
)

// WriteJSON writes the whole result (items, counters and per-file errors)
// as one indented document.
func WriteJSON(w io.Writer, res *engine.Result) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	return enc.Encode(res)
}
