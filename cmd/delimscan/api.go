package main

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/phyten/delimscan/internal/engine"
	engineopts "github.com/phyten/delimscan/internal/engine/opts"
	"github.com/phyten/delimscan/internal/logger"
	"github.com/phyten/delimscan/internal/web"
)

const maxExtractBytes = 8 << 20

func newServeMux(root string, log *slog.Logger) *http.ServeMux {
	mux := http.NewServeMux()
	web.Register(mux)
	mux.Handle("GET "+web.ScanPath, apiScanHandler(root, log))
	mux.Handle("POST "+web.ExtractPath, apiExtractHandler(log))
	return mux
}

// apiScanHandler scans files under root with options from the query
// string. The root itself cannot be changed by the client.
func apiScanHandler(root string, log *slog.Logger) http.Handler {
	if log == nil {
		log = logger.Discard()
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		opts, err := engineopts.ApplyWebQueryToOptions(engineopts.Defaults(root), r.URL.Query())
		if err != nil {
			writeJSONError(w, http.StatusBadRequest, err)
			return
		}
		opts.Root = root
		if err := engineopts.NormalizeAndValidate(&opts); err != nil {
			writeJSONError(w, http.StatusBadRequest, err)
			return
		}
		opts.Progress = false
		opts.Logger = log
		res, err := engine.Run(r.Context(), opts)
		if err != nil {
			log.Warn("api scan failed", "err", err)
			writeJSONError(w, http.StatusInternalServerError, err)
			return
		}
		writeJSON(w, http.StatusOK, res)
	})
}

type extractRequest struct {
	Name    string  `json:"name"`
	Text    string  `json:"text"`
	Mode    string  `json:"mode"`
	Open    string  `json:"open"`
	Close   string  `json:"close"`
	Escape  string  `json:"escape"`
	Preset  string  `json:"preset"`
	Borders bool    `json:"borders"`
	Mask    *string `json:"mask"`
}

type extractResponse struct {
	*engine.Result
	Masked *string `json:"masked,omitempty"`
}

// apiExtractHandler scans the text posted in the JSON body.
func apiExtractHandler(log *slog.Logger) http.Handler {
	if log == nil {
		log = logger.Discard()
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxExtractBytes))
		dec.DisallowUnknownFields()
		var req extractRequest
		if err := dec.Decode(&req); err != nil {
			var tooLarge *http.MaxBytesError
			if errors.As(err, &tooLarge) {
				writeJSONError(w, http.StatusRequestEntityTooLarge, err)
				return
			}
			writeJSONError(w, http.StatusBadRequest, err)
			return
		}

		opts := engineopts.Defaults(".")
		opts.Mode = req.Mode
		opts.Open = req.Open
		opts.Close = req.Close
		opts.Escape = req.Escape
		opts.Preset = req.Preset
		opts.IncludeBorders = req.Borders
		if err := engineopts.NormalizeAndValidate(&opts); err != nil {
			writeJSONError(w, http.StatusBadRequest, err)
			return
		}
		name := strings.TrimSpace(req.Name)
		if name == "" {
			name = defaultStdinName
		}

		res, err := engine.ScanBuffer(name, []byte(req.Text), opts)
		if err != nil {
			writeJSONError(w, extractStatus(err), err)
			return
		}
		resp := extractResponse{Result: res}
		if req.Mask != nil {
			masked, err := engine.MaskBuffer(name, []byte(req.Text), *req.Mask, opts)
			if err != nil {
				writeJSONError(w, extractStatus(err), err)
				return
			}
			resp.Masked = &masked
		}
		log.Debug("extract", "name", name, "bytes", len(req.Text), "regions", res.Total)
		writeJSON(w, http.StatusOK, resp)
	})
}

func extractStatus(err error) int {
	if errors.Is(err, engine.ErrNoDelimiters) || errors.Is(err, engine.ErrBinary) {
		return http.StatusUnprocessableEntity
	}
	return http.StatusBadRequest
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	web.SecurityHeaders(w.Header())
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	_ = enc.Encode(v)
}

func writeJSONError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]string{"error": err.Error()})
}
