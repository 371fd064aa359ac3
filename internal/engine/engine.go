package engine

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/phyten/delimscan/internal/detect"
	"github.com/phyten/delimscan/internal/logger"
	"github.com/phyten/delimscan/internal/model"
	"github.com/phyten/delimscan/internal/util"
)

const maxWorkers = 64

type fileJob struct {
	path string
}

type fileResult struct {
	regions      []model.Region
	unterminated int
	scanned      bool
	errs         []ItemError
}

// Run は指定されたオプションに従ってファイルを走査し、区切り文字で囲まれた領域の一覧を返します。
//
// 1 ファイルの読み込みや走査の失敗は実行全体を止めず、Result.Errors に集約されます。
func Run(ctx context.Context, opts Options) (*Result, error) {
	start := time.Now()
	if opts.Jobs <= 0 {
		opts.Jobs = runtime.NumCPU()
	}
	if strings.TrimSpace(opts.Root) == "" {
		opts.Root = "."
	}
	log := opts.Logger
	if log == nil {
		log = logger.Discard()
	}
	if opts.PathRegexCompiled == nil && len(opts.PathRegex) > 0 {
		compiled, err := CompilePathRegex(opts.PathRegex)
		if err != nil {
			return nil, fmt.Errorf("invalid --path-regex: %w", err)
		}
		opts.PathRegexCompiled = compiled
	}
	if opts.Open == "" && opts.Close == "" && strings.TrimSpace(opts.Preset) == "" {
		opts.Preset = "auto"
	}

	files, err := listFiles(ctx, opts)
	if err != nil {
		return nil, err
	}
	files = filterPathsByRegex(files, opts.PathRegexCompiled)
	log.Debug("candidate files", "count", len(files), "tracked", opts.Tracked, "root", opts.Root)
	if len(files) == 0 {
		return &Result{ElapsedMS: msSince(start)}, nil
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	jobs := make(chan fileJob)
	results := make(chan fileResult)

	workers := opts.Jobs
	if workers > maxWorkers {
		workers = maxWorkers
	}
	if workers > len(files) {
		workers = len(files)
	}
	prog := util.NewProgress(len(files), opts.Progress)

	var wg sync.WaitGroup
	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			for job := range jobs {
				select {
				case <-ctx.Done():
					return
				default:
				}
				res := scanFile(job.path, opts)
				select {
				case <-ctx.Done():
					return
				case results <- res:
				}
			}
		}()
	}

	go func() {
		defer close(jobs)
		for _, p := range files {
			select {
			case <-ctx.Done():
				return
			case jobs <- fileJob{path: p}:
			}
		}
	}()

	go func() {
		wg.Wait()
		close(results)
	}()

	out := &Result{}
	for res := range results {
		prog.Advance()
		if res.scanned {
			out.Files++
		}
		out.Items = append(out.Items, res.regions...)
		out.Unterminated += res.unterminated
		for _, e := range res.errs {
			log.Debug("file skipped", "file", e.File, "stage", e.Stage, "err", e.Message)
		}
		out.Errors = append(out.Errors, res.errs...)
	}
	prog.Done()
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	sortRegions(out.Items)
	sort.SliceStable(out.Errors, func(i, j int) bool {
		if out.Errors[i].File == out.Errors[j].File {
			return out.Errors[i].Stage < out.Errors[j].Stage
		}
		return out.Errors[i].File < out.Errors[j].File
	})
	out.Total = len(out.Items)
	out.ErrorCount = len(out.Errors)
	out.ElapsedMS = msSince(start)
	log.Debug("scan finished", "files", out.Files, "regions", out.Total, "unterminated", out.Unterminated, "errors", out.ErrorCount)
	return out, nil
}

func listFiles(ctx context.Context, opts Options) ([]string, error) {
	if err := CheckIncludes(opts.Paths, opts.Tracked); err != nil {
		return nil, err
	}
	if opts.Tracked {
		return gitListFiles(ctx, opts.Runner, opts.Root, opts.Paths, opts.Excludes, opts.ExcludeTypical)
	}
	return walkFiles(ctx, opts.Root, opts.Paths, opts.Excludes, opts.ExcludeTypical)
}

func scanFile(relPath string, opts Options) fileResult {
	full := filepath.Join(opts.Root, filepath.FromSlash(relPath))
	if opts.MaxFileBytes > 0 {
		st, err := os.Stat(full)
		if err != nil {
			return fileResult{errs: []ItemError{newItemError(relPath, "stat", err)}}
		}
		if st.Size() > int64(opts.MaxFileBytes) {
			err := fmt.Errorf("file exceeds max_file_bytes (%d > %d)", st.Size(), opts.MaxFileBytes)
			return fileResult{errs: []ItemError{newItemError(relPath, "size", err)}}
		}
	}
	data, err := os.ReadFile(full)
	if err != nil {
		return fileResult{errs: []ItemError{newItemError(relPath, "read", err)}}
	}
	if bytes.IndexByte(data, 0) >= 0 {
		return fileResult{}
	}
	info := detect.FromPathAndContent(relPath, data)
	if len(opts.Langs) > 0 && !detect.MatchesLang(info, opts.Langs) {
		return fileResult{}
	}
	specs := SpecsFor(opts, info.Name)
	if len(specs) == 0 {
		return fileResult{}
	}
	scanned, err := scanWithLang(relPath, info.Name, string(data), specs)
	if err != nil {
		return fileResult{errs: []ItemError{newItemError(relPath, "scan", err)}}
	}
	return fileResult{regions: scanned.Regions, unterminated: scanned.Unterminated, scanned: true}
}

func newItemError(file string, stage string, err error) ItemError {
	msg := strings.TrimSpace(err.Error())
	if msg == "" {
		msg = "unknown error"
	}
	return ItemError{File: file, Stage: stage, Message: msg}
}

func msSince(t time.Time) int64 { return time.Since(t).Milliseconds() }
