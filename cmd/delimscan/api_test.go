package main

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/phyten/delimscan/internal/logger"
)

type extractBody struct {
	Items []struct {
		File string `json:"file"`
		Lang string `json:"lang"`
		Text string `json:"text"`
	} `json:"items"`
	Total        int     `json:"total"`
	Unterminated int     `json:"unterminated"`
	Masked       *string `json:"masked"`
	Error        string  `json:"error"`
}

func postExtract(t *testing.T, body string) (*httptest.ResponseRecorder, extractBody) {
	t.Helper()
	mux := newServeMux(t.TempDir(), logger.Discard())
	req := httptest.NewRequest(http.MethodPost, "/api/extract", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	var decoded extractBody
	if err := json.Unmarshal(rec.Body.Bytes(), &decoded); err != nil {
		t.Fatalf("decode response: %v\n%s", err, rec.Body.String())
	}
	return rec, decoded
}

func TestExtractはプリセットとマスクを返す(t *testing.T) {
	rec, body := postExtract(t, `{"name":"page.html.j2","text":"<p>{{ user }}</p>","mask":"█"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status %d: %s", rec.Code, rec.Body.String())
	}
	if body.Total != 1 || body.Items[0].Text != " user " || body.Items[0].Lang != "jinja" {
		t.Fatalf("unexpected items: %+v", body)
	}
	if body.Masked == nil || *body.Masked != "<p>{{█}}</p>" {
		t.Fatalf("masked = %v", body.Masked)
	}
	if !strings.Contains(rec.Body.String(), "<p>{{█}}</p>") {
		t.Fatalf("HTML must not be escaped in JSON: %s", rec.Body.String())
	}
	if got := rec.Header().Get("Content-Security-Policy"); got == "" {
		t.Fatal("API responses should carry the CSP header")
	}
}

func TestExtractは明示的なデリミタを使う(t *testing.T) {
	rec, body := postExtract(t, `{"text":"(a (b)) (c","mode":"balanced","open":"(","close":")"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status %d: %s", rec.Code, rec.Body.String())
	}
	if body.Total != 1 || body.Items[0].Text != "a (b)" || body.Items[0].File != "stdin" {
		t.Fatalf("unexpected items: %+v", body.Items)
	}
	if body.Unterminated != 1 {
		t.Fatalf("unterminated = %d", body.Unterminated)
	}
	if body.Masked != nil {
		t.Fatal("masked must be omitted when no mask was requested")
	}
}

func TestExtractのエラー応答(t *testing.T) {
	cases := []struct {
		name   string
		body   string
		status int
	}{
		{name: "broken json", body: `{"text":`, status: http.StatusBadRequest},
		{name: "unknown field", body: `{"text":"x","author":"me"}`, status: http.StatusBadRequest},
		{name: "half pair", body: `{"text":"x","open":"<"}`, status: http.StatusBadRequest},
		{name: "no preset", body: `{"name":"notes.txt","text":"{{ x }}"}`, status: http.StatusUnprocessableEntity},
		{name: "binary", body: `{"text":"a\u0000b","open":"<","close":">"}`, status: http.StatusUnprocessableEntity},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec, body := postExtract(t, tc.body)
			if rec.Code != tc.status {
				t.Fatalf("status %d want %d: %s", rec.Code, tc.status, rec.Body.String())
			}
			if body.Error == "" {
				t.Fatal("error responses carry an error message")
			}
		})
	}
}

func TestExtractはGETを拒否する(t *testing.T) {
	mux := newServeMux(t.TempDir(), logger.Discard())
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/extract", nil))
	if rec.Code != http.StatusMethodNotAllowed {
		t.Fatalf("status %d want 405", rec.Code)
	}
}

func TestScanAPIはサーバのルートだけを走査する(t *testing.T) {
	root := t.TempDir()
	if err := os.WriteFile(filepath.Join(root, "a.tmpl"), []byte("{{ .A }} {{ .B }}"), 0o644); err != nil {
		t.Fatal(err)
	}
	other := t.TempDir()
	if err := os.WriteFile(filepath.Join(other, "z.tmpl"), []byte("{{ .Z }}"), 0o644); err != nil {
		t.Fatal(err)
	}

	mux := newServeMux(root, logger.Discard())
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/scan?root="+other+"&jobs=1", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status %d: %s", rec.Code, rec.Body.String())
	}
	var body extractBody
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatal(err)
	}
	if body.Total != 2 {
		t.Fatalf("total = %d want 2: %s", body.Total, rec.Body.String())
	}
	for _, it := range body.Items {
		if it.File != "a.tmpl" {
			t.Fatalf("scanned outside the server root: %+v", it)
		}
	}

	rec = httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/scan?mode=sideways", nil))
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("invalid mode should be 400, got %d", rec.Code)
	}
}

func TestScanAPIはルート外のパスを拒否する(t *testing.T) {
	base := t.TempDir()
	if err := os.WriteFile(filepath.Join(base, "secret.txt"), []byte("token=[TOPSECRET]"), 0o644); err != nil {
		t.Fatal(err)
	}
	root := filepath.Join(base, "served")
	if err := os.Mkdir(root, 0o755); err != nil {
		t.Fatal(err)
	}
	mux := newServeMux(root, logger.Discard())

	queries := []string{
		"path=..&open=[&close=]",
		"path=sub/../../secret.txt&open=[&close=]",
		"path=" + filepath.Join(base, "secret.txt") + "&open=[&close=]",
		"path=:/&tracked=1&open=[&close=]",
	}
	for _, q := range queries {
		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/scan?"+q, nil))
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("%s: status %d want 400: %s", q, rec.Code, rec.Body.String())
		}
		if strings.Contains(rec.Body.String(), "TOPSECRET") {
			t.Fatalf("%s: leaked a file outside the root: %s", q, rec.Body.String())
		}
	}
}

func TestLogRequestsはステータスを記録する(t *testing.T) {
	var buf bytes.Buffer
	log := logger.NewWriter(&buf, slog.LevelInfo, false)
	h := logRequests(log, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/x", nil))
	out := buf.String()
	for _, want := range []string{"method=GET", "path=/x", "status=418"} {
		if !strings.Contains(out, want) {
			t.Fatalf("log %q missing %q", out, want)
		}
	}
}

func TestServeは停止後にゼロで終了する(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	tio := newTestIO(t, "", false, nil)
	code := run(ctx, []string{"serve", "-p", "0", "--root", t.TempDir(), "--log-level", "error"}, tio.env)
	if code != exitOK {
		t.Fatalf("exit code %d, stderr: %s", code, tio.stderr.String())
	}
	if !strings.Contains(tio.stderr.String(), "listening on http://127.0.0.1:") {
		t.Fatalf("listen address not reported: %q", tio.stderr.String())
	}

	tio = newTestIO(t, "", false, nil)
	if code := run(ctx, []string{"serve", "--bogus"}, tio.env); code != exitUsage {
		t.Fatalf("unknown serve flag: exit code %d want %d", code, exitUsage)
	}
}
