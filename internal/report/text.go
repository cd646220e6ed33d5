package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/Bahjat/har-report/backend/internal/display"
	"github.com/Bahjat/har-report/backend/internal/model"
)

const (
	maxExampleURLs  = 2
	endpointColumn  = 48
	notAvailable    = "N/A"
	highErrorRatePc = 5.0
)

// WriteText writes r as a plain-text report to w.
func WriteText(w io.Writer, r *model.Report, f *display.Formatter) {
	line := strings.Repeat("=", 78)
	thinLine := strings.Repeat("-", 78)

	fmt.Fprintf(w, "%s\n  HAR Analysis Report\n%s\n", line, line)

	s := r.Summary
	fmt.Fprintf(w, "\n  Executive Summary\n%s\n", thinLine)
	fmt.Fprintf(w, "  %-24s %s\n", "Total requests:", f.Count(s.TotalRequests))
	fmt.Fprintf(w, "  %-24s %s\n", "Total errors:", f.Count(s.TotalErrors))
	fmt.Fprintf(w, "  %-24s %s\n", "Total resources:", f.Count(s.TotalPatterns))
	fmt.Fprintf(w, "  %-24s %s%%\n", "Success rate:", f.Decimal(s.SuccessRate))
	fmt.Fprintf(w, "  %-24s %s\n", "4xx errors:", f.Count(s.Error4xx))
	fmt.Fprintf(w, "  %-24s %s\n", "5xx errors:", f.Count(s.Error5xx))

	fmt.Fprintf(w, "\n  Request Purpose Analysis\n%s\n", thinLine)
	if r.RequestPurposes == nil || r.RequestPurposes.Len() == 0 {
		fmt.Fprintf(w, "  No request purpose data available\n")
	} else {
		for pair := r.RequestPurposes.Oldest(); pair != nil; pair = pair.Next() {
			c := pair.Value
			fmt.Fprintf(w, "  %s (%s requests)\n", c.Name, f.Count(c.TotalRequests))
			if c.Description != "" {
				fmt.Fprintf(w, "    %s\n", c.Description)
			}
			for _, ex := range c.Examples {
				fmt.Fprintf(w, "    - %s\n", ex)
			}
		}
	}

	fmt.Fprintf(w, "\n  Top %d Slowest APIs\n%s\n", len(r.SlowestAPIs), thinLine)
	if len(r.SlowestAPIs) == 0 {
		fmt.Fprintf(w, "  No APIs found\n")
	} else {
		fmt.Fprintf(w, "  %-5s %-*s %-7s %10s %10s %9s %8s\n",
			"Rank", endpointColumn, "Endpoint", "Method", "Avg(ms)", "P95(ms)", "Requests", "Err(%)")
		for i, api := range r.SlowestAPIs {
			marker := " "
			if api.ErrorRate > highErrorRatePc {
				marker = "!"
			}
			fmt.Fprintf(w, "  %-5s %-*s %-7s %10s %10s %9s %7s%s\n",
				fmt.Sprintf("#%d", i+1), endpointColumn, truncate(api.Endpoint, endpointColumn), api.Method,
				f.Decimal(api.AvgLatencyMS), f.Decimal(api.P95LatencyMS), f.Count(api.Requests),
				f.Decimal(api.ErrorRate), marker)
		}
	}

	fmt.Fprintf(w, "\n  Top %d APIs by Request Volume\n%s\n", TopPatternsByRequests, thinLine)
	writePatterns(w, r.PatternAnalysis.TopPatternsByRequests, f, "No traffic patterns found")

	fmt.Fprintf(w, "\n  Top Patterns by Error Count\n%s\n", thinLine)
	writePatterns(w, r.PatternAnalysis.TopPatternsByErrors, f, "No error patterns found")

	fmt.Fprintf(w, "\n  HTTP Response Code Distribution\n%s\n", thinLine)
	ranked := RankDistribution(r.ResponseCodes)
	if len(ranked) == 0 {
		fmt.Fprintf(w, "  No response codes recorded\n")
	}
	for _, cc := range ranked {
		fmt.Fprintf(w, "  %-6s %12s responses\n", cc.Code, f.Count(cc.Count))
	}

	info := r.AnalysisInfo
	fmt.Fprintf(w, "\n  Report Information\n%s\n", thinLine)
	fmt.Fprintf(w, "  %-24s %s\n", "File:", info.FilePath)
	fmt.Fprintf(w, "  %-24s %s\n", "Generated at:", f.Timestamp(info.Timestamp))
	fmt.Fprintf(w, "  %-24s %t\n", "Cached:", info.Cached)
}

func writePatterns(w io.Writer, patterns []model.PatternMetric, f *display.Formatter, empty string) {
	if len(patterns) == 0 {
		fmt.Fprintf(w, "  %s\n", empty)
		return
	}

	for i, p := range patterns {
		fmt.Fprintf(w, "  %d. %s %s\n", i+1, display.MethodLabel(p), p.Name())
		fmt.Fprintf(w, "     requests %s | success %s%% | 200 %s | 4xx %s | 5xx %s | avg %sms",
			f.Count(p.TotalRequests),
			optionalDecimal(f, p.SuccessRate),
			optionalCount(f, p.SuccessCount, notAvailable),
			optionalCount(f, p.Error4xxCount, "0"),
			optionalCount(f, p.Error5xxCount, "0"),
			optionalDecimal(f, p.AvgLatencyMS),
		)
		if p.MaxLatencyMS != nil {
			fmt.Fprintf(w, " | max %sms", f.Decimal(*p.MaxLatencyMS))
		}
		fmt.Fprintln(w)
		for _, u := range TopN(p.ExampleURLs, maxExampleURLs) {
			fmt.Fprintf(w, "     e.g. %s\n", u)
		}
	}
}

func optionalCount(f *display.Formatter, n *int, missing string) string {
	if n == nil {
		return missing
	}
	return f.Count(*n)
}

func optionalDecimal(f *display.Formatter, x *float64) string {
	if x == nil {
		return notAvailable
	}
	return f.Decimal(*x)
}

// truncate shortens s to at most n runes, marking the cut with "...".
func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}
