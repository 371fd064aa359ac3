package engine

import (
	"bytes"
	"errors"
	"strings"
	"time"

	"github.com/phyten/delimscan/internal/detect"
)

// ErrBinary is returned for buffers that contain a NUL byte.
var ErrBinary = errors.New("binary input (NUL byte) is not scanned")

// ScanBuffer scans one in-memory buffer (stdin or an API request body) with
// the same spec resolution Run applies to files. name labels the regions and
// drives language detection.
func ScanBuffer(name string, data []byte, opts Options) (*Result, error) {
	start := time.Now()
	specs, lang, err := bufferSpecs(name, data, opts)
	if err != nil {
		return nil, err
	}
	scanned, err := scanWithLang(name, lang, string(data), specs)
	if err != nil {
		return nil, err
	}
	return &Result{
		Items:        scanned.Regions,
		Files:        1,
		Total:        len(scanned.Regions),
		Unterminated: scanned.Unterminated,
		ElapsedMS:    msSince(start),
	}, nil
}

// MaskBuffer returns data with every region replaced by replacement.
func MaskBuffer(name string, data []byte, replacement string, opts Options) (string, error) {
	specs, _, err := bufferSpecs(name, data, opts)
	if err != nil {
		return "", err
	}
	return MaskText(string(data), replacement, specs...)
}

func bufferSpecs(name string, data []byte, opts Options) ([]Spec, string, error) {
	if bytes.IndexByte(data, 0) >= 0 {
		return nil, "", ErrBinary
	}
	if opts.Open == "" && opts.Close == "" && strings.TrimSpace(opts.Preset) == "" {
		opts.Preset = "auto"
	}
	lang := detect.FromPathAndContent(name, data).Name
	specs := SpecsFor(opts, lang)
	if len(specs) == 0 {
		return nil, lang, ErrNoDelimiters
	}
	return specs, lang, nil
}
