package output

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/phyten/delimscan/internal/model"
)

type Field struct {
	Key     string
	Header  string
	Numeric bool
}

type FieldSelection struct {
	Fields []Field
}

// Has reports whether key is part of the selection.
func (s FieldSelection) Has(key string) bool {
	for _, f := range s.Fields {
		if f.Key == key {
			return true
		}
	}
	return false
}

type fieldMeta struct {
	header  string
	numeric bool
	value   func(r model.Region) string
}

var fieldRegistry = map[string]fieldMeta{
	"file":       {header: "FILE", value: func(r model.Region) string { return r.File }},
	"line":       {header: "LINE", numeric: true, value: func(r model.Region) string { return strconv.Itoa(r.Span.StartLine) }},
	"col":        {header: "COL", numeric: true, value: func(r model.Region) string { return strconv.Itoa(r.Span.StartCol) }},
	"end_line":   {header: "END_LINE", numeric: true, value: func(r model.Region) string { return strconv.Itoa(r.Span.EndLine) }},
	"end_col":    {header: "END_COL", numeric: true, value: func(r model.Region) string { return strconv.Itoa(r.Span.EndCol) }},
	"location":   {header: "LOCATION", value: location},
	"lang":       {header: "LANG", value: func(r model.Region) string { return r.Lang }},
	"mode":       {header: "MODE", value: func(r model.Region) string { return string(r.Mode) }},
	"open":       {header: "OPEN", value: func(r model.Region) string { return r.Open }},
	"close":      {header: "CLOSE", value: func(r model.Region) string { return r.Close }},
	"text":       {header: "TEXT", value: func(r model.Region) string { return r.Text }},
	"length":     {header: "LENGTH", numeric: true, value: func(r model.Region) string { return strconv.Itoa(len(r.Text)) }},
	"byte_start": {header: "BYTE_START", numeric: true, value: func(r model.Region) string { return strconv.Itoa(r.Span.ByteStart) }},
	"byte_end":   {header: "BYTE_END", numeric: true, value: func(r model.Region) string { return strconv.Itoa(r.Span.ByteEnd) }},
}

var fieldAliases = map[string]string{
	"path":   "file",
	"column": "col",
	"len":    "length",
	"loc":    "location",
	"start":  "byte_start",
	"end":    "byte_end",
	"body":   "text",
}

// DefaultFieldKeys is used when --fields is empty.
var DefaultFieldKeys = []string{"location", "mode", "text"}

// ResolveFields parses a comma separated field list such as "file,line,text".
func ResolveFields(raw string) (FieldSelection, error) {
	raw = strings.TrimSpace(raw)
	var names []string
	if raw == "" {
		names = DefaultFieldKeys
	} else {
		names = strings.Split(raw, ",")
	}
	sel := FieldSelection{Fields: make([]Field, 0, len(names))}
	for _, part := range names {
		name := strings.TrimSpace(part)
		if name == "" {
			return FieldSelection{}, fmt.Errorf("invalid fields: empty entry")
		}
		key := strings.ToLower(name)
		if alias, ok := fieldAliases[key]; ok {
			key = alias
		}
		meta, ok := fieldRegistry[key]
		if !ok {
			return FieldSelection{}, fmt.Errorf("unknown field: %s", name)
		}
		sel.Fields = append(sel.Fields, Field{Key: key, Header: meta.header, Numeric: meta.numeric})
	}
	return sel, nil
}

func Headers(fields []Field) []string {
	out := make([]string, len(fields))
	for i, f := range fields {
		out[i] = f.Header
	}
	return out
}

func RowValues(r model.Region, fields []Field) []string {
	out := make([]string, len(fields))
	for i, f := range fields {
		out[i] = FieldValue(r, f.Key)
	}
	return out
}

func FieldValue(r model.Region, key string) string {
	meta, ok := fieldRegistry[key]
	if !ok {
		return ""
	}
	return meta.value(r)
}

func location(r model.Region) string {
	return fmt.Sprintf("%s:%d:%d", r.File, r.Span.StartLine, r.Span.StartCol)
}
