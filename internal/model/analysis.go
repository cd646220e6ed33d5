package model

import (
	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// ResponseCodes maps a status code string to its occurrence count, keeping
// the order in which the analysis backend listed them.
type ResponseCodes = orderedmap.OrderedMap[string, int]

// RequestPurposes maps a category key to its purpose category, keeping the
// order in which the analysis backend listed them.
type RequestPurposes = orderedmap.OrderedMap[string, PurposeCategory]

// Envelope is the response shape of the analysis backend.
type Envelope struct {
	Success bool               `json:"success"`
	Data    *RawAnalysisResult `json:"data,omitempty"`
	Error   string             `json:"error,omitempty"`
	Cached  bool               `json:"cached,omitempty"`
}

// RawAnalysisResult is one analysis run as computed by the backend.
type RawAnalysisResult struct {
	Summary             *RawSummary          `json:"summary"`
	SlowestAPIs         []EndpointMetric     `json:"slowest_apis"`
	RequestPurposes     *RequestPurposes     `json:"request_purposes"`
	PathPatternAnalysis *PathPatternAnalysis `json:"path_pattern_analysis"`
	ResponseCodes       *ResponseCodes       `json:"response_codes"`
	FilePath            string               `json:"file_path"`
	AnalysisTimestamp   Instant              `json:"analysis_timestamp"`
}

// RawSummary holds the top-level traffic totals. Any field may be absent.
type RawSummary struct {
	TotalRequests int            `json:"total_requests"`
	TotalErrors   int            `json:"total_errors"`
	SuccessRate   float64        `json:"success_rate"`
	ErrorTypes    map[string]int `json:"error_types,omitempty"`
}

// PathPatternAnalysis holds the pattern-level rankings, pre-sorted upstream.
type PathPatternAnalysis struct {
	TotalPatterns         int             `json:"total_patterns"`
	TopTenTrafficPatterns []PatternMetric `json:"top_ten_traffic_patterns"`
	TopTenErrorPatterns   []PatternMetric `json:"top_ten_error_patterns"`
}

// EndpointMetric describes the latency profile of a single endpoint.
type EndpointMetric struct {
	Endpoint     string  `json:"endpoint"`
	Method       string  `json:"method"`
	AvgLatencyMS float64 `json:"avg_latency_ms"`
	P95LatencyMS float64 `json:"p95_latency_ms"`
	Requests     int     `json:"requests"`
	ErrorRate    float64 `json:"error_rate"`
}

// PatternMetric aggregates the requests matching one URL pattern.
// Optional metrics are nil when the backend did not report them.
type PatternMetric struct {
	Pattern       string   `json:"pattern,omitempty"`
	URL           string   `json:"url,omitempty"`
	Method        string   `json:"method,omitempty"`
	TotalRequests int      `json:"total_requests"`
	SuccessRate   *float64 `json:"success_rate,omitempty"`
	SuccessCount  *int     `json:"success_count,omitempty"`
	Error4xxCount *int     `json:"error_4xx_count,omitempty"`
	Error5xxCount *int     `json:"error_5xx_count,omitempty"`
	AvgLatencyMS  *float64 `json:"avg_latency_ms,omitempty"`
	MaxLatencyMS  *float64 `json:"max_latency_ms,omitempty"`
	ExampleURLs   []string `json:"example_urls,omitempty"`
}

// Name returns the URL if set, otherwise the pattern.
func (p PatternMetric) Name() string {
	if p.URL != "" {
		return p.URL
	}
	return p.Pattern
}

// PurposeCategory groups requests serving a similar functional role.
type PurposeCategory struct {
	Name          string   `json:"name"`
	Description   string   `json:"description"`
	TotalRequests int      `json:"total_requests"`
	Examples      []string `json:"examples"`
}
