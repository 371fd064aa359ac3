package util

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"golang.org/x/term"
)

func isTTY(f *os.File) bool {
	return f != nil && term.IsTerminal(int(f.Fd()))
}

func ShouldShowProgress(force, no bool) bool {
	if no {
		return false
	}
	if force {
		return true
	}
	return isTTY(os.Stdout) && isTTY(os.Stderr)
}

// Progress prints a single self-overwriting status line for a known number of
// files. Advance is safe for concurrent use.
type Progress struct {
	mu      sync.Mutex
	out     io.Writer
	total   int
	done    int
	start   time.Time
	enabled bool
	last    time.Time
}

func NewProgress(total int, enabled bool) *Progress {
	return NewProgressTo(os.Stderr, total, enabled)
}

func NewProgressTo(w io.Writer, total int, enabled bool) *Progress {
	return &Progress{out: w, total: total, start: time.Now(), enabled: enabled}
}

// Advance marks one more unit as finished.
func (p *Progress) Advance() {
	if !p.enabled {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.done++
	now := time.Now()
	if p.done < p.total && now.Sub(p.last) < 100*time.Millisecond {
		return
	}
	p.last = now
	p.render(p.done)
}

func (p *Progress) Update(done int) {
	if !p.enabled {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.done = done
	p.render(done)
}

func (p *Progress) render(done int) {
	elapsed := time.Since(p.start)
	eta := "-"
	if done > 0 {
		remain := time.Duration(float64(elapsed) * float64(p.total-done) / float64(done))
		if remain < 0 {
			remain = 0
		}
		eta = fmt.Sprintf("%02d:%02d:%02d", int(remain.Hours()), int(remain.Minutes())%60, int(remain.Seconds())%60)
	}
	// clear line and print
	fmt.Fprintf(p.out, "\r\033[K[progress] %d/%d files (%d%%) ETA %s",
		done, p.total, percent(done, p.total), eta)
}

func (p *Progress) Done() {
	if !p.enabled {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	fmt.Fprint(p.out, "\r\033[K")
}

func percent(a, b int) int {
	if b == 0 || a >= b {
		return 100
	}
	if a <= 0 {
		return 0
	}
	return int(float64(a) * 100 / float64(b))
}
