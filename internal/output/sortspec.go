package output

import (
	"cmp"
	"fmt"
	"slices"
	"strings"

	"github.com/phyten/delimscan/internal/model"
)

type SortKey struct {
	Name string
	Desc bool
}

type SortSpec struct {
	Keys []SortKey
}

// ParseSortSpec parses "-length,file". A leading "-" sorts descending and
// "location" expands to file, line, col.
func ParseSortSpec(raw string) (SortSpec, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return SortSpec{}, nil
	}
	parts := strings.Split(raw, ",")
	keys := make([]SortKey, 0, len(parts))
	for _, part := range parts {
		token := strings.TrimSpace(part)
		if token == "" {
			return SortSpec{}, fmt.Errorf("invalid sort key: empty segment")
		}
		desc := false
		switch token[0] {
		case '+':
			token = token[1:]
		case '-':
			desc = true
			token = token[1:]
		}
		token = strings.TrimSpace(token)
		if token == "" {
			return SortSpec{}, fmt.Errorf("invalid sort key: sign without name")
		}
		name := strings.ToLower(token)
		switch name {
		case "location":
			keys = append(keys, SortKey{Name: "file", Desc: desc}, SortKey{Name: "line", Desc: desc}, SortKey{Name: "col", Desc: desc})
			continue
		case "column":
			name = "col"
		case "len":
			name = "length"
		case "file", "line", "col", "lang", "mode", "length", "text", "open":
			// accepted as is
		default:
			return SortSpec{}, fmt.Errorf("invalid sort key: %s", token)
		}
		keys = append(keys, SortKey{Name: name, Desc: desc})
	}
	return SortSpec{Keys: keys}, nil
}

// ApplySort sorts regions in place. File, line and column always break ties.
func ApplySort(regions []model.Region, spec SortSpec) {
	keys := append(append([]SortKey{}, spec.Keys...), SortKey{Name: "file"}, SortKey{Name: "line"}, SortKey{Name: "col"})
	slices.SortStableFunc(regions, func(a, b model.Region) int {
		for _, key := range keys {
			c := compareBy(key.Name, a, b)
			if c == 0 {
				continue
			}
			if key.Desc {
				return -c
			}
			return c
		}
		return 0
	})
}

func compareBy(name string, a, b model.Region) int {
	switch name {
	case "file":
		return cmp.Compare(a.File, b.File)
	case "line":
		return cmp.Compare(a.Span.StartLine, b.Span.StartLine)
	case "col":
		return cmp.Compare(a.Span.StartCol, b.Span.StartCol)
	case "lang":
		return cmp.Compare(a.Lang, b.Lang)
	case "mode":
		return cmp.Compare(a.Mode, b.Mode)
	case "length":
		return cmp.Compare(len(a.Text), len(b.Text))
	case "text":
		return cmp.Compare(a.Text, b.Text)
	case "open":
		return cmp.Compare(a.Open, b.Open)
	default:
		return 0
	}
}
