package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/phyten/delimscan/internal/model"
	"github.com/phyten/delimscan/internal/textutil"
)

// WriteMarkdownTable renders regions as a GitHub Flavored Markdown table.
// Delimiters and region text go into code spans so that template syntax
// is shown literally.
func WriteMarkdownTable(w io.Writer, regions []model.Region, sel FieldSelection) error {
	headers := Headers(sel.Fields)
	if _, err := fmt.Fprintf(w, "| %s |\n", strings.Join(headers, " | ")); err != nil {
		return err
	}
	sep := make([]string, len(headers))
	for i := range sep {
		sep[i] = "---"
	}
	if _, err := fmt.Fprintf(w, "| %s |\n", strings.Join(sep, " | ")); err != nil {
		return err
	}
	for _, r := range regions {
		row := RowValues(r, sel.Fields)
		for i, f := range sel.Fields {
			if codeField(f.Key) {
				// <br> would show literally inside a code span
				row[i] = codeSpan(escapeMarkdownCell(textutil.SingleLine(row[i])))
				continue
			}
			row[i] = escapeMarkdownCell(row[i])
		}
		if _, err := fmt.Fprintf(w, "| %s |\n", strings.Join(row, " | ")); err != nil {
			return err
		}
	}
	return nil
}

func escapeMarkdownCell(s string) string {
	if s == "" {
		return ""
	}
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.ReplaceAll(s, "\r", "")
	s = strings.ReplaceAll(s, "\n", "<br>")
	s = strings.ReplaceAll(s, "|", "\\|")
	return s
}

func codeField(key string) bool {
	switch key {
	case "open", "close", "text":
		return true
	}
	return false
}

// codeSpan wraps s in enough backticks that none inside can close the span.
func codeSpan(s string) string {
	if s == "" {
		return ""
	}
	longest, run := 0, 0
	for _, c := range s {
		if c == '`' {
			run++
			longest = max(longest, run)
			continue
		}
		run = 0
	}
	fence := strings.Repeat("`", longest+1)
	if strings.HasPrefix(s, "`") || strings.HasSuffix(s, "`") {
		return fence + " " + s + " " + fence
	}
	return fence + s + fence
}
