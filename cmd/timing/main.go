package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	timing "github.com/Veerl1br/timing"
	"github.com/Veerl1br/timing/internal/export"
	"github.com/Veerl1br/timing/internal/fetch"
	"github.com/Veerl1br/timing/internal/logging"
	"go.uber.org/multierr"
	"go.uber.org/zap"
)

type recordFlags []string

func (r *recordFlags) String() string {
	return strings.Join(*r, ",")
}

func (r *recordFlags) Set(path string) error {
	*r = append(*r, path)
	return nil
}

type config struct {
	simple      bool
	json        bool
	debug       bool
	concurrency int
	timeout     time.Duration
	records     recordFlags
	urls        []string
}

func parseFlags(args []string) (config, error) {
	var cfg config
	fs := flag.NewFlagSet("timing", flag.ContinueOnError)
	fs.BoolVar(&cfg.simple, "simple", false, "print derived metrics only")
	fs.BoolVar(&cfg.json, "json", false, "print reports as JSON")
	fs.BoolVar(&cfg.debug, "debug", false, "enable debug logging")
	fs.IntVar(&cfg.concurrency, "c", fetch.DefaultConcurrency, "concurrent fetches")
	fs.DurationVar(&cfg.timeout, "timeout", 30*time.Second, "overall deadline")
	fs.Var(&cfg.records, "record", "captured timing record (JSON), repeatable")
	if err := fs.Parse(args); err != nil {
		return cfg, err
	}
	cfg.urls = fs.Args()
	if len(cfg.urls) == 0 && len(cfg.records) == 0 {
		return cfg, errors.New("no url or -record given")
	}
	return cfg, nil
}

func collect(ctx context.Context, cfg config) []timing.Result {
	var results []timing.Result
	for _, path := range cfg.records {
		r, err := fetch.Load(path)
		if err != nil {
			r = timing.Result{Source: path, Err: err}
		}
		results = append(results, r)
	}
	for r := range fetch.Pipeline(ctx, cfg.concurrency, cfg.urls...) {
		results = append(results, r)
	}
	return results
}

func run(out io.Writer, logger *zap.Logger, cfg config) error {
	ctx, cancel := context.WithTimeout(context.Background(), cfg.timeout)
	defer cancel()

	opts := timing.Options{Simple: cfg.simple}
	var (
		errs    error
		reports []export.Report
	)

	for _, result := range collect(ctx, cfg) {
		if result.Err != nil {
			logger.Error("measurement failed", zap.String("source", result.Source), zap.Error(result.Err))
			errs = multierr.Append(errs, fmt.Errorf("%s: %w", result.Source, result.Err))
			if cfg.json {
				reports = append(reports, export.NewReport(result, nil, nil))
			}
			continue
		}

		reader := timing.New(result.Host(),
			timing.WithLogger(logger.With(zap.String("source", result.Source))),
			timing.WithConsole(timing.NewTextConsole(out)),
		)
		if cfg.json {
			reports = append(reports, export.NewReport(result, reader.Table(opts), reader.ResourcesTime()))
			continue
		}
		fmt.Fprintf(out, "%s\n", result.Source)
		reader.PrintTable(opts)
		fmt.Fprintln(out)
	}

	if err := ctx.Err(); err != nil {
		errs = multierr.Append(errs, err)
	}
	if cfg.json {
		errs = multierr.Append(errs, export.WriteJSON(out, reports))
	}
	return errs
}

func main() {
	cfg, err := parseFlags(os.Args[1:])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	logger, err := logging.New(cfg.debug)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer logger.Sync()

	if err := run(os.Stdout, logger, cfg); err != nil {
		for _, e := range multierr.Errors(err) {
			logger.Debug("input failed", zap.Error(e))
		}
		os.Exit(1)
	}
}
