// Command harreport prints analysis reports for one or more HAR files.
//
// Usage:
//
//	harreport [flags] [file.har ...]
//
// Without arguments the DEFAULT_FILE_PATH archive is reported.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	_ "time/tzdata"

	"github.com/Bahjat/har-report/backend/internal/backend"
	"github.com/Bahjat/har-report/backend/internal/display"
	"github.com/Bahjat/har-report/backend/internal/model"
	"github.com/Bahjat/har-report/backend/internal/platform/config"
	"github.com/Bahjat/har-report/backend/internal/platform/errs"
	"github.com/Bahjat/har-report/backend/internal/platform/logger"
	"github.com/Bahjat/har-report/backend/internal/report"
	"github.com/Bahjat/har-report/backend/internal/reporter"
)

var errSomeReportsFailed = errors.New("some reports failed")

type fileReport struct {
	FilePath string        `json:"file_path"`
	Report   *model.Report `json:"report,omitempty"`
	Error    string        `json:"error,omitempty"`
}

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "harreport: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string, stdout, stderr io.Writer) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	fs := flag.NewFlagSet("harreport", flag.ContinueOnError)
	fs.SetOutput(stderr)
	format := fs.String("format", "text", "output format: text or json")
	fs.StringVar(&cfg.BackendURL, "backend", cfg.BackendURL, "analysis backend base URL")
	fs.DurationVar(&cfg.AnalysisTimeout, "timeout", cfg.AnalysisTimeout, "timeout per analysis")
	fs.StringVar(&cfg.Locale, "locale", cfg.Locale, "BCP 47 locale for numbers and dates")
	fs.IntVar(&cfg.BatchConcurrency, "concurrency", cfg.BatchConcurrency, "reports generated in parallel")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *format != "text" && *format != "json" {
		return fmt.Errorf("unknown format %q", *format)
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	paths := fs.Args()
	if len(paths) == 0 {
		paths = []string{cfg.DefaultFilePath}
	}

	log := logger.New(stderr, cfg.LogLevel)

	loc, err := cfg.Location()
	if err != nil {
		return err
	}
	formatter, err := display.New(cfg.Locale, loc)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	provider, cleanup, err := backend.NewProvider(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer cleanup()

	svc := reporter.NewService(provider, log)

	// The backend client bounds each analysis by cfg.AnalysisTimeout.
	results := svc.GenerateAll(ctx, paths, cfg.BatchConcurrency)

	failed := false
	out := make([]fileReport, 0, len(results))
	for _, res := range results {
		fr := fileReport{FilePath: res.FilePath, Report: res.Report}
		if res.Err != nil {
			failed = true
			fr.Error = userMessage(res.Err)
			fmt.Fprintf(stderr, "%s: %s\n", res.FilePath, fr.Error)
		}
		out = append(out, fr)
	}

	switch *format {
	case "json":
		enc := json.NewEncoder(stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(out); err != nil {
			return err
		}
	default:
		for _, fr := range out {
			if fr.Report != nil {
				report.WriteText(stdout, fr.Report, formatter)
				fmt.Fprintln(stdout)
			}
		}
	}

	if failed {
		return errSomeReportsFailed
	}
	return nil
}

func userMessage(err error) string {
	var appErr *errs.AppError
	if errors.As(err, &appErr) {
		return appErr.Message
	}
	return err.Error()
}
