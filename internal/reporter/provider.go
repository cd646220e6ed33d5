package reporter

import (
	"context"

	"github.com/Bahjat/har-report/backend/internal/model"
)

// AnalysisProvider defines the contract for any analysis backend.
type AnalysisProvider interface {
	Analyze(ctx context.Context, filePath string) (*model.Envelope, error)
}
