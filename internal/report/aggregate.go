// Package report turns a raw analysis result into a bounded, display-ready
// report and renders it as text.
package report

import (
	"errors"

	"github.com/Bahjat/har-report/backend/internal/model"
	"github.com/Bahjat/har-report/backend/internal/platform/errs"
)

// TopPatternsByRequests bounds the traffic pattern list of a report.
const TopPatternsByRequests = 5

var (
	errMissingData     = errors.New("analysis envelope has no data")
	errMissingSummary  = errors.New("analysis result has no summary")
	errMissingPatterns = errors.New("analysis result has no path pattern analysis")
)

// FromEnvelope builds a report from a backend envelope. A failed envelope is
// never aggregated; its error text, or a generic message, becomes the
// AnalysisFailed message.
func FromEnvelope(env *model.Envelope) (*model.Report, error) {
	if env == nil {
		return nil, errs.Analysis("", errMissingData)
	}
	if !env.Success {
		return nil, errs.Analysis(env.Error, nil)
	}
	if env.Data == nil {
		return nil, errs.Analysis(env.Error, errMissingData)
	}
	return Aggregate(env.Data, env.Cached)
}

// Aggregate builds a report from raw. It fails with AnalysisFailed only when
// the summary or the path pattern analysis is absent as a whole; missing
// leaf values default to zero and missing lists to empty.
//
// Aggregate is pure: the returned report shares no slices with raw except the
// pass-through sections, and two calls on the same input return equal values.
func Aggregate(raw *model.RawAnalysisResult, cached bool) (*model.Report, error) {
	if raw == nil {
		return nil, errs.Analysis("", errMissingData)
	}
	if raw.Summary == nil {
		return nil, errs.Analysis("", errMissingSummary)
	}
	if raw.PathPatternAnalysis == nil {
		return nil, errs.Analysis("", errMissingPatterns)
	}

	summary := raw.Summary
	patterns := raw.PathPatternAnalysis

	return &model.Report{
		Summary: model.Summary{
			TotalRequests: summary.TotalRequests,
			TotalErrors:   summary.TotalErrors,
			TotalPatterns: patterns.TotalPatterns,
			SuccessRate:   summary.SuccessRate,
			Error4xx:      summary.ErrorTypes["4xx"],
			Error5xx:      summary.ErrorTypes["5xx"],
		},
		SlowestAPIs:     raw.SlowestAPIs,
		RequestPurposes: raw.RequestPurposes,
		PatternAnalysis: model.PatternAnalysis{
			TopPatternsByRequests: TopN(patterns.TopTenTrafficPatterns, TopPatternsByRequests),
			TopPatternsByErrors:   TopN(patterns.TopTenErrorPatterns, len(patterns.TopTenErrorPatterns)),
		},
		ResponseCodes: raw.ResponseCodes,
		AnalysisInfo: model.AnalysisInfo{
			FilePath:  raw.FilePath,
			Timestamp: raw.AnalysisTimestamp,
			Cached:    cached,
		},
	}, nil
}
