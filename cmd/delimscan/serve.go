package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"path/filepath"
	"strconv"
	"time"

	"github.com/pkg/browser"

	"github.com/phyten/delimscan/internal/logger"
)

func serveCmd(ctx context.Context, args []string, e env) int {
	fs := flag.NewFlagSet("serve", flag.ContinueOnError)
	fs.SetOutput(e.stderr)
	var (
		port        int
		host        string
		root        string
		openBrowser bool
		logLevel    string
		logFile     string
	)
	fs.IntVar(&port, "p", 8080, "port")
	fs.IntVar(&port, "port", 8080, "port")
	fs.StringVar(&host, "host", "127.0.0.1", "listen address")
	fs.StringVar(&root, "root", ".", "directory served by /api/scan")
	fs.BoolVar(&openBrowser, "open", false, "open the UI in the default browser")
	fs.StringVar(&logLevel, "log-level", "info", "debug|info|warn|error")
	fs.StringVar(&logFile, "log-file", "", "log file (default stderr)")
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return exitOK
		}
		return exitUsage
	}

	log, closer, err := logger.New(logger.Config{Level: logLevel, Path: logFile, Writer: e.stderr})
	if err != nil {
		fmt.Fprintf(e.stderr, "delimscan serve: %v\n", err)
		return exitUsage
	}
	defer closer.Close()

	absRoot, err := filepath.Abs(root)
	if err != nil {
		fmt.Fprintf(e.stderr, "delimscan serve: %v\n", err)
		return exitUsage
	}

	ln, err := net.Listen("tcp", net.JoinHostPort(host, strconv.Itoa(port)))
	if err != nil {
		fmt.Fprintf(e.stderr, "delimscan serve: %v\n", err)
		return exitError
	}
	srv := &http.Server{
		Handler:           logRequests(log, newServeMux(absRoot, log)),
		ReadHeaderTimeout: 10 * time.Second,
	}
	url := "http://" + ln.Addr().String() + "/"
	log.Info("delimscan serve listening", "url", url, "root", absRoot)
	fmt.Fprintf(e.stderr, "delimscan serve listening on %s (root=%s)\n", url, absRoot)

	if openBrowser {
		if err := browser.OpenURL(url); err != nil {
			log.Warn("open browser failed", "err", err)
		}
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Error("server stopped", "err", err)
		return exitError
	}
	return exitOK
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

// logRequests logs one record per request after it completes.
func logRequests(log *slog.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		log.Info("request", "method", r.Method, "path", r.URL.Path, "status", rec.status, "elapsed", time.Since(start).Round(time.Microsecond))
	})
}
