package engine

import (
	"log/slog"
	"regexp"

	"github.com/phyten/delimscan/internal/execx"
	"github.com/phyten/delimscan/internal/model"
)

// ItemError は 1 ファイルの走査に失敗した際の情報を表す
type ItemError struct {
	File    string `json:"file"`
	Stage   string `json:"stage"`
	Message string `json:"message"`
}

// Spec は 1 組の区切り文字と走査方式
type Spec struct {
	Mode           model.ScanMode `json:"mode"`
	Open           string         `json:"open"`
	Close          string         `json:"close"`
	Escape         string         `json:"escape,omitempty"`
	IncludeBorders bool           `json:"include_borders"`
}

// Options は実行オプション
type Options struct {
	Mode              string // auto|flat|escaped|balanced|nested
	Open              string
	Close             string
	Escape            string
	IncludeBorders    bool
	Preset            string // ""|auto|<lang>
	Root              string
	Paths             []string
	Excludes          []string
	ExcludeTypical    bool
	PathRegex         []string
	PathRegexCompiled []*regexp.Regexp
	Langs             []string
	Tracked           bool
	Jobs              int
	MaxFileBytes      int
	Progress          bool
	Runner            execx.Runner `json:"-"`
	Logger            *slog.Logger `json:"-"`
}

// Result は出力
type Result struct {
	Items        []model.Region `json:"items"`
	Files        int            `json:"files"`
	Total        int            `json:"total"`
	Unterminated int            `json:"unterminated"`
	ElapsedMS    int64          `json:"elapsed_ms"`
	Errors       []ItemError    `json:"errors,omitempty"`
	ErrorCount   int            `json:"error_count"`
}
