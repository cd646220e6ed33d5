package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/Bahjat/har-report/backend/internal/platform/errs"
)

func newBackend(t *testing.T) *httptest.Server {
	t.Helper()
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			FilePath string `json:"file_path"`
		}
		_ = json.NewDecoder(r.Body).Decode(&req)

		if req.FilePath == "missing.har" {
			_, _ = fmt.Fprint(w, `{"success": false, "error": "File not found: missing.har"}`)
			return
		}
		_, _ = fmt.Fprintf(w, `{"success": true, "data": {
			"summary": {"total_requests": 12345, "total_errors": 10, "success_rate": 99.9},
			"path_pattern_analysis": {"total_patterns": 3},
			"response_codes": {"200": 12335, "500": 10},
			"file_path": %q,
			"analysis_timestamp": 1709647629
		}}`, req.FilePath)
	}))
	t.Cleanup(ts.Close)
	return ts
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{"REDIS_URL", "REPORT_LOCALE", "REPORT_TIMEZONE", "BATCH_CONCURRENCY", "ANALYSIS_TIMEOUT", "LOG_LEVEL"} {
		t.Setenv(key, "")
	}
}

func TestRun_Text(t *testing.T) {
	clearEnv(t)
	ts := newBackend(t)

	var stdout, stderr bytes.Buffer
	err := run([]string{"-backend", ts.URL, "a.har", "b.har"}, &stdout, &stderr)
	if err != nil {
		t.Fatalf("unexpected error: %v\n%s", err, stderr.String())
	}

	out := stdout.String()
	for _, want := range []string{"12,345", "a.har", "b.har", "3/5/2024, 2:07:09 PM"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
	if strings.Index(out, "a.har") > strings.Index(out, "b.har") {
		t.Error("reports are not in argument order")
	}
}

func TestRun_JSONWithFailure(t *testing.T) {
	clearEnv(t)
	ts := newBackend(t)

	var stdout, stderr bytes.Buffer
	err := run([]string{"-backend", ts.URL, "-format", "json", "a.har", "missing.har"}, &stdout, &stderr)
	if err == nil {
		t.Fatal("expected error when a report fails, got nil")
	}

	var got []fileReport
	if err := json.Unmarshal(stdout.Bytes(), &got); err != nil {
		t.Fatalf("decode output: %v\n%s", err, stdout.String())
	}
	if len(got) != 2 {
		t.Fatalf("reports = %d, want 2", len(got))
	}
	if got[0].Report == nil || got[0].Report.Summary.TotalRequests != 12345 {
		t.Errorf("first report = %+v", got[0])
	}
	if got[1].Error != "File not found: missing.har" {
		t.Errorf("second error = %q", got[1].Error)
	}
	if !strings.Contains(stderr.String(), "missing.har: File not found") {
		t.Errorf("stderr missing failure:\n%s", stderr.String())
	}
}

func TestRun_BadFlags(t *testing.T) {
	clearEnv(t)

	tests := [][]string{
		{"-format", "pdf"},
		{"-concurrency", "0"},
		{"-backend", "not a url"},
	}
	for _, args := range tests {
		var stdout, stderr bytes.Buffer
		if err := run(args, &stdout, &stderr); err == nil {
			t.Errorf("run(%v) succeeded, want error", args)
		}
	}
}

func TestRun_EachAnalysisTimesOut(t *testing.T) {
	clearEnv(t)
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(5 * time.Second):
		}
	}))
	defer ts.Close()

	var stdout, stderr bytes.Buffer
	err := run([]string{"-backend", ts.URL, "-timeout", "200ms", "-concurrency", "1", "-format", "json", "x.har", "y.har"}, &stdout, &stderr)
	if err == nil {
		t.Fatal("expected error when analyses time out, got nil")
	}

	var got []fileReport
	if err := json.Unmarshal(stdout.Bytes(), &got); err != nil {
		t.Fatalf("decode output: %v\n%s", err, stdout.String())
	}
	if len(got) != 2 {
		t.Fatalf("reports = %d, want 2", len(got))
	}
	for _, fr := range got {
		if fr.Error != errs.TimeoutMessage {
			t.Errorf("%s: error = %q, want %q", fr.FilePath, fr.Error, errs.TimeoutMessage)
		}
	}
}
