package main

import (
	"context"
	"io"
	"os"
	"os/signal"
)

// env is the process surroundings; tests swap every field.
type env struct {
	stdin      io.Reader
	stdinPiped bool
	stdout     io.Writer
	stdoutFile *os.File
	stderr     io.Writer
	stderrFile *os.File
	getenv     func(string) string
	environ    []string
}

func osEnv() env {
	return env{
		stdin:      os.Stdin,
		stdinPiped: isPiped(os.Stdin),
		stdout:     os.Stdout,
		stdoutFile: os.Stdout,
		stderr:     os.Stderr,
		stderrFile: os.Stderr,
		getenv:     os.Getenv,
		environ:    os.Environ(),
	}
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	code := run(ctx, os.Args[1:], osEnv())
	stop()
	os.Exit(code)
}

func run(ctx context.Context, args []string, e env) int {
	if len(args) > 0 && args[0] == "serve" {
		return serveCmd(ctx, args[1:], e)
	}
	return scanCmd(ctx, args, e)
}

// isPiped reports whether f is a pipe or a redirected regular file.
func isPiped(f *os.File) bool {
	fi, err := f.Stat()
	if err != nil {
		return false
	}
	return fi.Mode()&os.ModeNamedPipe != 0 || fi.Mode().IsRegular()
}
