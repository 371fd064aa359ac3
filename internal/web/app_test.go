package web

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func newServer(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	Register(mux)
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func get(t *testing.T, url string) (*http.Response, string) {
	t.Helper()
	res, err := http.Get(url)
	if err != nil {
		t.Fatalf("GET %s: %v", url, err)
	}
	defer res.Body.Close()
	body, err := io.ReadAll(res.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	return res, string(body)
}

func TestIndexはアセットとCSPを返す(t *testing.T) {
	srv := newServer(t)
	res, body := get(t, srv.URL+"/")
	if res.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", res.StatusCode)
	}
	if ct := res.Header.Get("Content-Type"); !strings.HasPrefix(ct, "text/html") {
		t.Fatalf("Content-Type = %q", ct)
	}
	if csp := res.Header.Get("Content-Security-Policy"); !strings.Contains(csp, "script-src 'self'") {
		t.Fatalf("CSP header missing: %q", csp)
	}
	for _, want := range []string{`href="/assets/styles.css"`, `src="/assets/ui.js"`, `placeholder="{{"`, `placeholder="}}"`, "/api/scan"} {
		if !strings.Contains(body, want) {
			t.Fatalf("index body missing %q", want)
		}
	}
}

func TestAssets(t *testing.T) {
	srv := newServer(t)
	cases := []struct {
		path string
		ct   string
		want string
	}{
		{path: "/assets/ui.js", ct: "application/javascript", want: "function render("},
		{path: "/assets/styles.css", ct: "text/css", want: ".mode-balanced"},
	}
	for _, tc := range cases {
		res, body := get(t, srv.URL+tc.path)
		if res.StatusCode != http.StatusOK {
			t.Fatalf("%s status = %d", tc.path, res.StatusCode)
		}
		if ct := res.Header.Get("Content-Type"); !strings.HasPrefix(ct, tc.ct) {
			t.Fatalf("%s Content-Type = %q", tc.path, ct)
		}
		if !strings.Contains(body, tc.want) {
			t.Fatalf("%s body missing %q", tc.path, tc.want)
		}
	}
}

func TestUnknownPathは404(t *testing.T) {
	srv := newServer(t)
	res, _ := get(t, srv.URL+"/nope")
	if res.StatusCode != http.StatusNotFound {
		t.Fatalf("status = %d", res.StatusCode)
	}
}
