package report

import (
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/Bahjat/har-report/backend/internal/display"
	"github.com/Bahjat/har-report/backend/internal/model"
)

func newFormatter(t *testing.T) *display.Formatter {
	t.Helper()
	f, err := display.New("en-US", time.UTC)
	if err != nil {
		t.Fatalf("display.New: %v", err)
	}
	return f
}

func TestWriteText(t *testing.T) {
	raw := sampleRaw()
	raw.Summary.TotalRequests = 12345
	raw.PathPatternAnalysis.TopTenTrafficPatterns[0].ExampleURLs = []string{
		"https://example.com/api/resource-0/1",
		"https://example.com/api/resource-0/2",
		"https://example.com/api/resource-0/3",
	}
	raw.ResponseCodes = codes("404", 7, "200", 90)

	r, err := Aggregate(raw, false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var b strings.Builder
	WriteText(&b, r, newFormatter(t))
	out := b.String()

	for _, want := range []string{
		"12,345",
		"Authentication (12 requests)",
		"#1",
		"/api/search",
		"1. GET /api/resource-0/{id}",
		"e.g. https://example.com/api/resource-0/2",
		"trace.har",
		"3/5/2024, 2:07:09 PM",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}

	if strings.Contains(out, "resource-0/3") {
		t.Error("output lists more than two example URLs")
	}
	if strings.Contains(out, "6. ") {
		t.Error("output lists more than five traffic patterns")
	}
	dist := out[strings.Index(out, "HTTP Response Code Distribution"):]
	if strings.Index(dist, "200") > strings.Index(dist, "404") {
		t.Errorf("response codes not ranked by count:\n%s", dist)
	}
}

func TestWriteText_EmptySections(t *testing.T) {
	r, err := Aggregate(&model.RawAnalysisResult{
		Summary:             &model.RawSummary{},
		PathPatternAnalysis: &model.PathPatternAnalysis{},
	}, false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var b strings.Builder
	WriteText(&b, r, newFormatter(t))
	out := b.String()

	for _, want := range []string{
		"No request purpose data available",
		"No APIs found",
		"No traffic patterns found",
		"No error patterns found",
		"No response codes recorded",
		"unknown",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestWriteText_OptionalPatternMetrics(t *testing.T) {
	rate := 97.5
	r, err := Aggregate(&model.RawAnalysisResult{
		Summary: &model.RawSummary{},
		PathPatternAnalysis: &model.PathPatternAnalysis{
			TopTenErrorPatterns: []model.PatternMetric{
				{URL: "POST /api/orders", TotalRequests: 8, SuccessRate: &rate, Error5xxCount: intPtr(2)},
			},
		},
	}, false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var b strings.Builder
	WriteText(&b, r, newFormatter(t))
	out := b.String()

	want := "requests 8 | success 97.5% | 200 N/A | 4xx 0 | 5xx 2 | avg N/Ams"
	if !strings.Contains(out, want) {
		t.Errorf("output missing %q:\n%s", want, out)
	}
	if !strings.Contains(out, "1. POST POST /api/orders") {
		t.Errorf("method label not derived from URL:\n%s", out)
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		name string
		s    string
		n    int
		want string
	}{
		{name: "short", s: "/api/users", n: 12, want: "/api/users"},
		{name: "exact", s: "/api/users", n: 10, want: "/api/users"},
		{name: "ascii cut", s: "/api/users/list", n: 10, want: "/api/us..."},
		{name: "multi-byte fits", s: "/café/menü", n: 10, want: "/café/menü"},
		{name: "multi-byte cut", s: "/ünïcödé/pfad", n: 8, want: "/ünïc..."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := truncate(tt.s, tt.n); got != tt.want {
				t.Errorf("truncate(%q, %d) = %q, want %q", tt.s, tt.n, got, tt.want)
			}
		})
	}
}

func TestWriteText_MultiByteEndpoint(t *testing.T) {
	endpoint := "/" + strings.Repeat("a", endpointColumn-5) + "é/suche"
	r, err := Aggregate(&model.RawAnalysisResult{
		Summary:             &model.RawSummary{TotalRequests: 1},
		PathPatternAnalysis: &model.PathPatternAnalysis{},
		SlowestAPIs:         []model.EndpointMetric{{Endpoint: endpoint, Method: "GET", AvgLatencyMS: 120, Requests: 1}},
	}, false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var b strings.Builder
	WriteText(&b, r, newFormatter(t))
	out := b.String()

	if !utf8.ValidString(out) {
		t.Fatalf("output is not valid UTF-8:\n%q", out)
	}
	if !strings.Contains(out, "...") {
		t.Errorf("long endpoint was not truncated:\n%s", out)
	}
}
