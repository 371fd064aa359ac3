package model

// ScanMode selects which delimiter scanner produces regions.
type ScanMode string

const (
	ScanModeFlat     ScanMode = "flat"
	ScanModeEscaped  ScanMode = "escaped"
	ScanModeBalanced ScanMode = "balanced"
	ScanModeNested   ScanMode = "nested"
)

// Span locates one region by line, column and byte offset. Lines and columns
// are 1-based; ByteEnd is exclusive.
type Span struct {
	StartLine int `json:"start_line"`
	StartCol  int `json:"start_col"`
	EndLine   int `json:"end_line"`
	EndCol    int `json:"end_col"`
	ByteStart int `json:"byte_start"`
	ByteEnd   int `json:"byte_end"`
}

// Region is one delimited region found in a file or buffer.
type Region struct {
	File  string   `json:"file"`
	Lang  string   `json:"lang,omitempty"`
	Mode  ScanMode `json:"mode"`
	Open  string   `json:"open"`
	Close string   `json:"close"`
	Text  string   `json:"text"`
	Span  Span     `json:"span"`
}
