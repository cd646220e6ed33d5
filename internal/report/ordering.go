package report

import (
	"fmt"

	"github.com/Bahjat/har-report/backend/internal/model"
)

// OrderingViolation marks the first element of a ranked list that ranks
// higher than its predecessor.
type OrderingViolation struct {
	List  string
	Index int
}

func (v OrderingViolation) String() string {
	return fmt.Sprintf("%s[%d]", v.List, v.Index)
}

// OrderingViolations checks that the lists the backend claims to have ranked
// are actually ranked: slowest APIs by average latency, traffic patterns by
// request count and error patterns by error count, all descending. Reports
// are still built from upstream order; this only exposes the problem.
func OrderingViolations(raw *model.RawAnalysisResult) []OrderingViolation {
	if raw == nil {
		return nil
	}

	var out []OrderingViolation
	if i := firstAscent(raw.SlowestAPIs, func(e model.EndpointMetric) float64 {
		return e.AvgLatencyMS
	}); i >= 0 {
		out = append(out, OrderingViolation{List: "slowest_apis", Index: i})
	}

	if p := raw.PathPatternAnalysis; p != nil {
		if i := firstAscent(p.TopTenTrafficPatterns, func(m model.PatternMetric) float64 {
			return float64(m.TotalRequests)
		}); i >= 0 {
			out = append(out, OrderingViolation{List: "top_ten_traffic_patterns", Index: i})
		}
		if i := firstAscent(p.TopTenErrorPatterns, errorCount); i >= 0 {
			out = append(out, OrderingViolation{List: "top_ten_error_patterns", Index: i})
		}
	}
	return out
}

func errorCount(m model.PatternMetric) float64 {
	var n int
	if m.Error4xxCount != nil {
		n += *m.Error4xxCount
	}
	if m.Error5xxCount != nil {
		n += *m.Error5xxCount
	}
	return float64(n)
}

func firstAscent[T any](list []T, metric func(T) float64) int {
	for i := 1; i < len(list); i++ {
		if metric(list[i]) > metric(list[i-1]) {
			return i
		}
	}
	return -1
}
