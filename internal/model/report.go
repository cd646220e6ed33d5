package model

// Report is the normalized, bounded report built from one analysis run.
// It is never mutated after construction.
type Report struct {
	Summary         Summary          `json:"summary"`
	SlowestAPIs     []EndpointMetric `json:"slowest_apis"`
	RequestPurposes *RequestPurposes `json:"request_purposes"`
	PatternAnalysis PatternAnalysis  `json:"pattern_analysis"`
	ResponseCodes   *ResponseCodes   `json:"response_codes"`
	AnalysisInfo    AnalysisInfo     `json:"analysis_info"`
}

// Summary holds the headline totals of a report.
type Summary struct {
	TotalRequests int     `json:"total_requests"`
	TotalErrors   int     `json:"total_errors"`
	TotalPatterns int     `json:"total_patterns"`
	SuccessRate   float64 `json:"success_rate"`
	Error4xx      int     `json:"error_4xx"`
	Error5xx      int     `json:"error_5xx"`
}

// PatternAnalysis holds the pattern rankings shown in a report.
type PatternAnalysis struct {
	TopPatternsByRequests []PatternMetric `json:"top_patterns_by_requests"`
	TopPatternsByErrors   []PatternMetric `json:"top_patterns_by_errors"`
}

// AnalysisInfo identifies the analysis a report was built from.
type AnalysisInfo struct {
	FilePath  string  `json:"file_path"`
	Timestamp Instant `json:"timestamp"`
	Cached    bool    `json:"cached"`
}

// CodeCount is one entry of a ranked response code distribution.
type CodeCount struct {
	Code  string `json:"code"`
	Count int    `json:"count"`
}

// ErrorResponse is the JSON shape returned on failure.
type ErrorResponse struct {
	Error      string `json:"error"`
	StatusCode int    `json:"status_code"`
	Message    string `json:"message"`
}
