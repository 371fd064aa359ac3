package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/phyten/delimscan/internal/config"
	"github.com/phyten/delimscan/internal/engine"
	engineopts "github.com/phyten/delimscan/internal/engine/opts"
	"github.com/phyten/delimscan/internal/logger"
	"github.com/phyten/delimscan/internal/output"
	"github.com/phyten/delimscan/internal/termcolor"
	"github.com/phyten/delimscan/internal/util"
)

const (
	exitOK    = 0
	exitError = 1
	exitUsage = 2

	defaultStdinName = "stdin"
)

// scanPlan is the fully layered configuration of one scan run.
type scanPlan struct {
	opts         engine.Options
	out          config.OutputSettings
	render       output.Options
	stderrColor  termcolor.Settings
	configPath   string
	configSource config.Source
}

func scanCmd(ctx context.Context, args []string, e env) int {
	a, err := parseScanArgs(args, e.stderr)
	if err != nil {
		fmt.Fprintf(e.stderr, "delimscan: %v\nRun 'delimscan -h' for usage.\n", err)
		return exitUsage
	}
	if a.showHelp {
		fmt.Fprint(e.stdout, scanUsage)
		return exitOK
	}
	plan, err := resolvePlan(a, e)
	if err != nil {
		fmt.Fprintf(e.stderr, "delimscan: %v\n", err)
		return exitUsage
	}

	log, closer, err := logger.New(logger.Config{Level: plan.out.LogLevel, Path: plan.out.LogFile, Writer: e.stderr})
	if err != nil {
		fmt.Fprintf(e.stderr, "delimscan: %v\n", err)
		return exitUsage
	}
	defer closer.Close()
	plan.opts.Logger = log
	if plan.configPath != "" {
		log.Debug("config loaded", "path", plan.configPath, "source", string(plan.configSource))
	}

	stdin := a.readStdin || (a.layer.Scan.Paths == nil && len(plan.opts.Paths) == 0 && !plan.opts.Tracked && e.stdinPiped)
	if a.masking && !stdin {
		fmt.Fprintln(e.stderr, "delimscan: --mask works on stdin only (pass - as the path)")
		return exitUsage
	}

	var res *engine.Result
	if stdin {
		name := a.stdinName
		if name == "" {
			name = defaultStdinName
		}
		data, err := io.ReadAll(e.stdin)
		if err != nil {
			fmt.Fprintf(e.stderr, "delimscan: read stdin: %v\n", err)
			return exitError
		}
		log.Debug("scanning stdin", "name", name, "bytes", len(data))
		if a.masking {
			masked, err := engine.MaskBuffer(name, data, a.mask, plan.opts)
			if err != nil {
				return reportScanError(e, log, err)
			}
			fmt.Fprint(e.stdout, masked)
			return exitOK
		}
		res, err = engine.ScanBuffer(name, data, plan.opts)
		if err != nil {
			return reportScanError(e, log, err)
		}
	} else {
		plan.opts.Progress = util.ShouldShowProgress(a.forceProgress, a.noProgress)
		res, err = engine.Run(ctx, plan.opts)
		if err != nil {
			return reportScanError(e, log, err)
		}
	}

	if err := output.Render(e.stdout, res, plan.render); err != nil {
		fmt.Fprintf(e.stderr, "delimscan: write output: %v\n", err)
		return exitError
	}
	if plan.render.Format != "json" && res.ErrorCount > 0 {
		_ = output.WriteErrors(e.stderr, res.Errors, plan.stderrColor)
	}
	log.Info("done", "files", res.Files, "regions", res.Total, "unterminated", res.Unterminated, "errors", res.ErrorCount, "elapsed_ms", res.ElapsedMS)
	return exitOK
}

func reportScanError(e env, log *slog.Logger, err error) int {
	log.Debug("scan failed", "err", err)
	fmt.Fprintf(e.stderr, "delimscan: %v\n", err)
	if errors.Is(err, engine.ErrNoDelimiters) {
		return exitUsage
	}
	return exitError
}

// resolvePlan layers defaults < config file < env < flags.
func resolvePlan(a *scanArgs, e env) (*scanPlan, error) {
	getenv := e.getenv
	if getenv == nil {
		getenv = func(string) string { return "" }
	}

	root := "."
	if a.layer.Scan.Root != nil && strings.TrimSpace(*a.layer.Scan.Root) != "" {
		root = *a.layer.Scan.Root
	}
	explicit := a.configPath
	if explicit == "" {
		explicit = getenv("DELIMSCAN_CONFIG")
	}
	path, source, err := config.Find(root, explicit, getenv("XDG_CONFIG_HOME"), getenv("HOME"))
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	fileCfg, err := config.Load(path)
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	envCfg, err := config.FromEnv(getenv)
	if err != nil {
		return nil, err
	}

	opts := engineopts.Defaults(".")
	scan := config.MergeScan(config.ScanSettingsFromOptions(opts), fileCfg.Scan, envCfg.Scan, a.layer.Scan)
	scan.ApplyToOptions(&opts)
	if err := engineopts.NormalizeAndValidate(&opts); err != nil {
		return nil, err
	}

	outSettings := config.MergeOutput(config.DefaultOutputSettings(), fileCfg.Output, envCfg.Output, a.layer.Output)
	outSettings, err = config.NormalizeOutput(outSettings)
	if err != nil {
		return nil, err
	}
	fields, err := output.ResolveFields(outSettings.Fields)
	if err != nil {
		return nil, err
	}
	sortSpec, err := output.ParseSortSpec(outSettings.Sort)
	if err != nil {
		return nil, err
	}
	colorMode, err := termcolor.ParseMode(outSettings.Color)
	if err != nil {
		return nil, err
	}
	envMap := termcolor.EnvMap(e.environ)

	return &scanPlan{
		opts: opts,
		out:  outSettings,
		render: output.Options{
			Format:   outSettings.Format,
			Fields:   fields,
			Sort:     sortSpec,
			Color:    termcolor.Resolve(colorMode, e.stdoutFile, envMap),
			Truncate: outSettings.Truncate,
		},
		stderrColor:  termcolor.Resolve(colorMode, e.stderrFile, envMap),
		configPath:   path,
		configSource: source,
	}, nil
}
