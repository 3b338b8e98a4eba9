package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/nguyentantai21042004/bodhiflow/internal/acquisition"
	"github.com/nguyentantai21042004/bodhiflow/internal/batch"
	"github.com/nguyentantai21042004/bodhiflow/internal/config"
	"github.com/nguyentantai21042004/bodhiflow/internal/enumerator"
	"github.com/nguyentantai21042004/bodhiflow/internal/llm"
	"github.com/nguyentantai21042004/bodhiflow/internal/logger"
	"github.com/nguyentantai21042004/bodhiflow/internal/pipeline"
	"github.com/nguyentantai21042004/bodhiflow/internal/podcast"
	"github.com/nguyentantai21042004/bodhiflow/internal/processor"
	"github.com/nguyentantai21042004/bodhiflow/internal/status"
	"github.com/nguyentantai21042004/bodhiflow/internal/watcher"
	"github.com/nguyentantai21042004/bodhiflow/internal/youtube"
	"github.com/nguyentantai21042004/bodhiflow/pkg/executor"
)

// forceKillAfter bounds how long Ctrl+C waits for acquisition workers.
const forceKillAfter = 30 * time.Second

const usage = `Usage: bodhiflow <command> [flags]

Commands:
  run     acquire and refine the given input once
  watch   run the pipeline for every new file in paths.input

Run "bodhiflow <command> -h" for flags.
`

func main() {
	if len(os.Args) > 1 && os.Args[1] == acquisition.WorkerCommand {
		os.Exit(runWorker())
	}

	cmd, args := "run", os.Args[1:]
	if len(args) > 0 && args[0] != "" && args[0][0] != '-' {
		cmd, args = args[0], args[1:]
	}

	var code int
	switch cmd {
	case "run":
		code = runOnce(args)
	case "watch":
		code = runWatch(args)
	case "help":
		fmt.Print(usage)
	default:
		fmt.Fprintf(os.Stderr, "unknown command %q\n\n%s", cmd, usage)
		code = 2
	}
	os.Exit(code)
}

// runWorker serves one acquisition job on stdin/stdout. It ignores SIGINT; the
// parent kills its process group on force termination.
func runWorker() int {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM)
	defer stop()

	factory := func(s processor.Settings, log logger.Logger) processor.Processor {
		return processor.NewFromSettings(s, executor.New(), log)
	}
	if err := acquisition.RunWorker(ctx, os.Stdin, os.Stdout, os.Stderr, factory); err != nil {
		fmt.Fprintf(os.Stderr, "acquire worker: %v\n", err)
		return 1
	}
	return 0
}

// app holds what both commands share.
type app struct {
	cfg      *config.Config
	log      logger.Logger
	reporter status.Reporter
	pipe     pipeline.Pipeline
}

func setup(ctx context.Context, opts *options) (*app, error) {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return nil, err
	}
	opts.apply(cfg)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	// Logs go to stderr so stdout carries only the colored status lines.
	log := logger.NewWithWriter(cfg.Logging.Level, os.Stderr)
	reporter := status.New(log, os.Stdout)

	log.Info(ctx, "========================================")
	log.Info(ctx, "BodhiFlow")
	log.Info(ctx, "========================================")
	log.Info(ctx, "System: %s/%s, CPU Cores: %d", runtime.GOOS, runtime.GOARCH, runtime.NumCPU())
	log.Info(ctx, "ASR model: %s, LLM model: %s", cfg.ASR.Model, cfg.LLM.Model)

	if err := ensureDirectories(cfg); err != nil {
		return nil, err
	}

	caller, metaCaller, err := buildCallers(ctx, cfg, log)
	if err != nil {
		return nil, err
	}

	exe, err := os.Executable()
	if err != nil {
		return nil, fmt.Errorf("locate executable: %w", err)
	}

	exec := executor.New()
	workerExec := executor.New(executor.WithProcessGroup())
	deps := pipeline.Deps{
		Enumerator: enumerator.New(
			youtube.New(exec, log, cfg.YtDlp.Binary, cfg.YtDlp.CookieFile),
			podcast.New(nil, log),
			reporter,
			log,
		),
		NewDispatcher: func(s processor.Settings) acquisition.Dispatcher {
			return acquisition.NewProcessDispatcher(workerExec, exe, []string{acquisition.WorkerCommand}, s, log)
		},
		Caller:     caller,
		MetaCaller: metaCaller,
	}

	return &app{
		cfg:      cfg,
		log:      log,
		reporter: reporter,
		pipe:     pipeline.New(cfg, deps, reporter, log, pipeline.WithForceKillAfter(forceKillAfter)),
	}, nil
}

// buildCallers creates the refinement and metadata callers. A missing key for
// refinement is fatal when phase 2 runs; for metadata it only disables enrichment.
func buildCallers(ctx context.Context, cfg *config.Config, log logger.Logger) (llm.Caller, llm.Caller, error) {
	if !cfg.Run.RunPhase2 {
		return nil, nil, nil
	}

	p, err := cfg.Lookup(cfg.LLM.Model, config.KindLLM)
	if err != nil {
		return nil, nil, err
	}
	caller, err := llm.New(p, cfg.APIKeys, log, llm.WithMaxAttempts(cfg.LLM.MaxAttempts))
	if err != nil {
		return nil, nil, fmt.Errorf("%w: refinement model: %v", config.ErrInvalid, err)
	}

	if !cfg.LLM.MetadataEnhancement {
		return caller, nil, nil
	}
	mp, err := cfg.Lookup(cfg.LLM.MetadataModel, config.KindLLM)
	if err != nil {
		return nil, nil, err
	}
	metaCaller, err := llm.New(mp, cfg.APIKeys, log, llm.WithMaxAttempts(cfg.LLM.MaxAttempts))
	if err != nil {
		log.Warn(ctx, "Metadata enrichment disabled: %v", err)
		return caller, nil, nil
	}
	return caller, metaCaller, nil
}

func runOnce(args []string) int {
	opts, err := parseFlags("run", args, os.Stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	a, err := setup(ctx, opts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to start: %v\n", err)
		return 1
	}

	req := pipeline.Request{
		Input:      opts.input,
		FolderHint: opts.folderHint,
		Recursive:  opts.recursive,
		Styles:     opts.styleNames(),
	}
	if opts.csvPath != "" {
		rows, err := batch.Load(opts.csvPath, a.cfg.StyleNames())
		if err != nil {
			a.log.Error(ctx, "Failed to load batch: %v", err)
			return 1
		}
		req.Batch = rows
	}
	if req.Input == "" && len(req.Batch) == 0 && !a.cfg.Run.RunPhase1 {
		req.Input = enumerator.NoInput
	}

	if _, err := a.pipe.Run(ctx, req); err != nil {
		a.log.Error(ctx, "Pipeline failed: %v", err)
		return 1
	}
	return 0
}

func runWatch(args []string) int {
	opts, err := parseFlags("watch", args, os.Stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	a, err := setup(ctx, opts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to start: %v\n", err)
		return 1
	}
	if !a.cfg.Run.RunPhase1 {
		a.log.Error(ctx, "Watch mode needs phase 1 enabled")
		return 1
	}

	styles := opts.styleNames()
	handler := func(ctx context.Context, path string) error {
		_, err := a.pipe.Run(ctx, pipeline.Request{Input: path, Styles: styles})
		return err
	}

	w, err := watcher.New(a.cfg.Paths.Input, handler, a.log, a.cfg.Performance.MaxConcurrentRuns)
	if err != nil {
		a.log.Error(ctx, "Failed to create watcher: %v", err)
		return 1
	}
	defer w.Stop()

	a.log.Info(ctx, "Monitoring: %s", a.cfg.Paths.Input)
	a.log.Info(ctx, "Output: %s", a.cfg.Paths.Output)
	a.log.Info(ctx, "Press Ctrl+C to stop")

	if err := w.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
		a.log.Error(ctx, "Watcher error: %v", err)
		return 1
	}
	a.log.Info(ctx, "BodhiFlow stopped")
	return 0
}

// ensureDirectories creates required directories if they don't exist
func ensureDirectories(cfg *config.Config) error {
	dirs := []string{
		cfg.Paths.Input,
		cfg.Paths.Output,
		cfg.Paths.Intermediate,
		cfg.Paths.Temp,
	}

	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create directory %s: %w", dir, err)
		}
	}

	return nil
}
