package errs

import (
	"errors"
	"fmt"
)

// Kind categorizes application errors for HTTP status mapping.
type Kind int

const (
	// Unknown represents an unclassified error.
	Unknown Kind = iota
	// InvalidInput indicates the request was malformed (HTTP 400).
	InvalidInput
	// TransportFailed indicates the analysis backend could not be reached or
	// answered with something other than an analysis envelope (HTTP 502).
	TransportFailed
	// Timeout indicates the analysis took too long to complete (HTTP 504).
	Timeout
	// AnalysisFailed indicates the backend answered but reported a failed
	// analysis or returned an unusable payload (HTTP 422).
	AnalysisFailed
)

// DefaultAnalysisMessage is shown when the backend reports a failure without
// saying why.
const DefaultAnalysisMessage = "Analysis failed"

// TimeoutMessage is shown when an analysis exceeds its time budget.
const TimeoutMessage = "Analysis timed out. Large archives may need a longer timeout."

func (k Kind) String() string {
	switch k {
	case InvalidInput:
		return "invalid_input"
	case TransportFailed:
		return "transport_failed"
	case Timeout:
		return "timeout"
	case AnalysisFailed:
		return "analysis_failed"
	default:
		return "unknown"
	}
}

// AppError carries a category, user message, and original cause.
type AppError struct {
	Kind           Kind
	UpstreamStatus int // HTTP status code returned by the analysis backend
	Message        string
	Cause          error
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

// Analysis returns an AnalysisFailed error carrying message, or the default
// message when the backend supplied none.
func Analysis(message string, cause error) *AppError {
	if message == "" {
		message = DefaultAnalysisMessage
	}
	return &AppError{Kind: AnalysisFailed, Message: message, Cause: cause}
}

// KindOf returns the Kind of the first AppError in err's chain.
func KindOf(err error) Kind {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return Unknown
}
