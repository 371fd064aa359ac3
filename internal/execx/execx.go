package execx

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
)

// ErrOutputLimit は標準出力が MaxOutput を超えたことを表します。
var ErrOutputLimit = errors.New("command output exceeds limit")

// Runner は外部コマンドを実行するための最小インターフェースです。
type Runner interface {
	Run(ctx context.Context, dir, name string, args ...string) (stdout []byte, stderr []byte, err error)
}

// CommandRunner は exec.CommandContext を利用したデフォルト実装です。
// MaxOutput が正の場合、標準出力がそのバイト数を超えた時点でプロセスを止めます。
type CommandRunner struct {
	MaxOutput int
}

// Run は指定された作業ディレクトリでコマンドを実行し、標準出力・標準エラーを収集します。
func (r CommandRunner) Run(ctx context.Context, dir, name string, args ...string) ([]byte, []byte, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	cmd := exec.CommandContext(ctx, name, args...)
	if dir != "" {
		cmd.Dir = dir
	}
	stdout := &limitedBuffer{limit: r.MaxOutput, onOverflow: cancel}
	var stderr bytes.Buffer
	cmd.Stdout = stdout
	cmd.Stderr = &stderr
	err := cmd.Run()
	if stdout.overflow {
		return stdout.buf.Bytes(), stderr.Bytes(), fmt.Errorf("%s: %w (%d bytes)", name, ErrOutputLimit, r.MaxOutput)
	}
	return stdout.buf.Bytes(), stderr.Bytes(), err
}

// limitedBuffer は上限を超えた書き込みを捨て、overflow を記録します。
type limitedBuffer struct {
	buf        bytes.Buffer
	limit      int
	overflow   bool
	onOverflow func()
}

func (b *limitedBuffer) Write(p []byte) (int, error) {
	if b.limit <= 0 {
		return b.buf.Write(p)
	}
	if b.overflow {
		return len(p), nil
	}
	if room := b.limit - b.buf.Len(); len(p) > room {
		b.buf.Write(p[:room])
		b.overflow = true
		if b.onOverflow != nil {
			b.onOverflow()
		}
		return len(p), nil
	}
	return b.buf.Write(p)
}

// IsNotFound はコマンドが見つからない場合のエラーを判定します。
func IsNotFound(err error) bool {
	var execErr *exec.Error
	return errors.As(err, &execErr)
}

// Available はコマンドが PATH 上に存在するかを返します。
func Available(name string) bool {
	_, err := exec.LookPath(name)
	return err == nil
}

// StderrSummary は標準エラーの最初の空でない行を返します。
func StderrSummary(stderr []byte) string {
	for _, line := range strings.Split(string(stderr), "\n") {
		if line = strings.TrimSpace(line); line != "" {
			return line
		}
	}
	return ""
}
