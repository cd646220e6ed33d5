package reporter

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/Bahjat/har-report/backend/internal/display"
	"github.com/Bahjat/har-report/backend/internal/model"
	"github.com/Bahjat/har-report/backend/internal/platform/errs"
	"github.com/Bahjat/har-report/backend/internal/report"
)

var errUnknownFormat = errors.New("the \"format\" parameter must be \"json\" or \"text\"")

// TransportOptions configures request handling.
type TransportOptions struct {
	// DefaultFilePath is analyzed when a request names no archive.
	DefaultFilePath string
	// Timeout bounds a single report request, backend analysis included.
	Timeout time.Duration
}

// Transport handles HTTP requests for analysis reports.
type Transport struct {
	service   *Service
	formatter *display.Formatter
	opts      TransportOptions
	logger    *slog.Logger
}

// NewTransport creates an HTTP transport backed by the given service.
func NewTransport(service *Service, formatter *display.Formatter, opts TransportOptions, logger *slog.Logger) *Transport {
	return &Transport{service: service, formatter: formatter, opts: opts, logger: logger}
}

// RegisterRoutes attaches the transport's handlers to the given mux.
func (t *Transport) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("POST /report", t.handleReport)
	mux.HandleFunc("GET /healthz", t.handleHealth)
}

type reportRequest struct {
	FilePath string `json:"file_path"`
}

func (t *Transport) handleReport(w http.ResponseWriter, r *http.Request) {
	const maxRequestBody = 1 << 20 // 1 MB
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBody)

	format := r.URL.Query().Get("format")
	if format != "" && format != "json" && format != "text" {
		t.renderError(w, http.StatusBadRequest, errUnknownFormat.Error())
		return
	}

	var req reportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		t.renderError(w, http.StatusBadRequest, "Invalid request body. Please send a JSON object with a \"file_path\" field.")
		return
	}
	if req.FilePath == "" {
		req.FilePath = t.opts.DefaultFilePath
	}

	ctx := r.Context()
	if t.opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, t.opts.Timeout)
		defer cancel()
	}

	result, err := t.service.Generate(ctx, req.FilePath)
	if err != nil {
		t.handleServiceError(w, err)
		return
	}

	if format == "text" {
		t.renderText(w, result)
		return
	}
	t.renderJSON(w, http.StatusOK, result)
}

func (t *Transport) handleHealth(w http.ResponseWriter, _ *http.Request) {
	t.renderJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (t *Transport) handleServiceError(w http.ResponseWriter, err error) {
	var appErr *errs.AppError
	if errors.As(err, &appErr) {
		status := http.StatusInternalServerError
		switch appErr.Kind {
		case errs.InvalidInput:
			status = http.StatusBadRequest
		case errs.TransportFailed:
			status = http.StatusBadGateway
		case errs.Timeout:
			status = http.StatusGatewayTimeout
		case errs.AnalysisFailed:
			status = http.StatusUnprocessableEntity
		case errs.Unknown:
			// 500 Internal Server Error
		}
		t.renderError(w, status, appErr.Message)
		return
	}

	t.renderError(w, http.StatusInternalServerError, "An unexpected error occurred.")
}

func (t *Transport) renderText(w http.ResponseWriter, r *model.Report) {
	var buf bytes.Buffer
	report.WriteText(&buf, r, t.formatter)

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = buf.WriteTo(w)
}

func (t *Transport) renderJSON(w http.ResponseWriter, status int, data any) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(data); err != nil {
		t.logger.Error("failed to encode response", "error", err)
		http.Error(w, `{"error":"Internal Server Error"}`, http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

func (t *Transport) renderError(w http.ResponseWriter, status int, message string) {
	t.renderJSON(w, status, model.ErrorResponse{
		Error:      http.StatusText(status),
		StatusCode: status,
		Message:    message,
	})
}
