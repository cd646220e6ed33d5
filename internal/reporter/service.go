package reporter

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/Bahjat/har-report/backend/internal/model"
	"github.com/Bahjat/har-report/backend/internal/platform/errs"
	"github.com/Bahjat/har-report/backend/internal/platform/requestid"
	"github.com/Bahjat/har-report/backend/internal/report"
)

// Service fetches analyses from an AnalysisProvider, builds reports and
// logs the outcome.
type Service struct {
	provider AnalysisProvider
	logger   *slog.Logger
}

// Result is the outcome of one report in a batch.
type Result struct {
	FilePath string
	Report   *model.Report
	Err      error
}

// NewService creates a Service backed by the given provider.
func NewService(provider AnalysisProvider, logger *slog.Logger) *Service {
	return &Service{provider: provider, logger: logger}
}

// Generate builds the report for the archive at filePath.
func (s *Service) Generate(ctx context.Context, filePath string) (*model.Report, error) {
	logger := s.logger.With("file_path", filePath, "request_id", requestid.FromContext(ctx))

	env, err := s.provider.Analyze(ctx, filePath)
	if err != nil {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			err = &errs.AppError{
				Kind:    errs.Timeout,
				Message: errs.TimeoutMessage,
				Cause:   err,
			}
		}
		s.logFailure(logger, err)
		return nil, err
	}

	if env != nil {
		for _, v := range report.OrderingViolations(env.Data) {
			logger.Warn("upstream ordering violated", "list", v.List, "index", v.Index)
		}
	}

	r, err := report.FromEnvelope(env)
	if err != nil {
		s.logFailure(logger, err)
		return nil, err
	}

	logger.Info("report generated",
		"total_requests", r.Summary.TotalRequests,
		"total_errors", r.Summary.TotalErrors,
		"total_patterns", r.Summary.TotalPatterns,
		"success_rate", r.Summary.SuccessRate,
		"slowest_apis", len(r.SlowestAPIs),
		"cached", r.AnalysisInfo.Cached,
	)
	return r, nil
}

func (s *Service) logFailure(logger *slog.Logger, err error) {
	attrs := []any{"error", err, "kind", errs.KindOf(err).String()}
	var appErr *errs.AppError
	if errors.As(err, &appErr) && appErr.UpstreamStatus != 0 {
		attrs = append(attrs, "backend_status", appErr.UpstreamStatus)
	}
	logger.Error("report failed", attrs...)
}

// GenerateAll builds reports for several archives using a pool of workers
// sized by concurrency. Results are returned in the order of filePaths.
func (s *Service) GenerateAll(ctx context.Context, filePaths []string, concurrency int) []Result {
	results := make([]Result, len(filePaths))
	if len(filePaths) == 0 {
		return results
	}

	jobs := make(chan int, len(filePaths))
	for i := range filePaths {
		jobs <- i
	}
	close(jobs)

	numWorkers := max(1, min(len(filePaths), concurrency))

	var wg sync.WaitGroup
	for range numWorkers {
		wg.Go(func() {
			for i := range jobs {
				r, err := s.Generate(ctx, filePaths[i])
				results[i] = Result{FilePath: filePaths[i], Report: r, Err: err}
			}
		})
	}
	wg.Wait()

	return results
}
