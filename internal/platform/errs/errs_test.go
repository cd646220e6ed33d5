package errs

import (
	"errors"
	"fmt"
	"testing"
)

func TestAnalysis_Message(t *testing.T) {
	tests := []struct {
		name    string
		message string
		want    string
	}{
		{name: "backend message", message: "File not found", want: "File not found"},
		{name: "empty falls back", message: "", want: DefaultAnalysisMessage},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Analysis(tt.message, nil)
			if err.Kind != AnalysisFailed {
				t.Errorf("Kind = %v, want %v", err.Kind, AnalysisFailed)
			}
			if err.Message != tt.want {
				t.Errorf("Message = %q, want %q", err.Message, tt.want)
			}
		})
	}
}

func TestKindOf(t *testing.T) {
	cause := errors.New("dial tcp: connection refused")
	wrapped := fmt.Errorf("analyze: %w", &AppError{Kind: TransportFailed, Message: "backend unreachable", Cause: cause})

	if got := KindOf(wrapped); got != TransportFailed {
		t.Errorf("KindOf(wrapped) = %v, want %v", got, TransportFailed)
	}
	if got := KindOf(cause); got != Unknown {
		t.Errorf("KindOf(plain) = %v, want %v", got, Unknown)
	}
	if !errors.Is(wrapped, cause) {
		t.Error("AppError should unwrap to its cause")
	}
}
