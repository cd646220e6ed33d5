package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/Bahjat/har-report/backend/internal/model"
	"github.com/Bahjat/har-report/backend/internal/platform/errs"
	"github.com/Bahjat/har-report/backend/internal/platform/requestid"
)

const (
	analyzePath = "/api/analyze"
	userAgent   = "HARReport/1.0"

	// Analysis results of large archives carry many example URLs.
	maxResponseBody = 64 << 20
)

var errUnexpectedStatus = errors.New("unexpected status from analysis backend")

// Client requests analyses from the backend over HTTP.
type Client struct {
	baseURL string
	client  *http.Client
}

type analyzeRequest struct {
	FilePath string `json:"file_path"`
}

// NewClient returns a Client for the backend at baseURL. The timeout bounds
// a whole analysis, which for large archives can take minutes.
func NewClient(baseURL string, timeout time.Duration) *Client {
	return newClient(baseURL, &http.Client{
		Timeout: timeout,
		Transport: &http.Transport{
			Proxy:               http.ProxyFromEnvironment,
			MaxConnsPerHost:     10,
			MaxIdleConnsPerHost: 10,
			IdleConnTimeout:     90 * time.Second,
		},
	})
}

func newClient(baseURL string, client *http.Client) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  client,
	}
}

// Analyze asks the backend to analyze the archive at filePath and returns
// its envelope. Envelopes reporting success:false are returned as-is; only
// failures to obtain an envelope are errors.
func (c *Client) Analyze(ctx context.Context, filePath string) (*model.Envelope, error) {
	payload, err := json.Marshal(analyzeRequest{FilePath: filePath})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+analyzePath, bytes.NewReader(payload))
	if err != nil {
		return nil, &errs.AppError{
			Kind:    errs.TransportFailed,
			Message: "The analysis backend address is invalid.",
			Cause:   err,
		}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)
	if id := requestid.FromContext(ctx); id != "" {
		req.Header.Set(requestid.Header, id)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		if isTimeout(err) {
			return nil, &errs.AppError{
				Kind:    errs.Timeout,
				Message: errs.TimeoutMessage,
				Cause:   err,
			}
		}
		return nil, &errs.AppError{
			Kind:    errs.TransportFailed,
			Message: "The analysis backend could not be reached.",
			Cause:   err,
		}
	}
	defer func() { _ = resp.Body.Close() }()

	var env model.Envelope
	decodeErr := json.NewDecoder(io.LimitReader(resp.Body, maxResponseBody)).Decode(&env)

	if resp.StatusCode >= 300 {
		// Prefer the backend's own explanation when it sent one.
		if decodeErr == nil && env.Error != "" {
			return nil, &errs.AppError{
				Kind:           errs.AnalysisFailed,
				UpstreamStatus: resp.StatusCode,
				Message:        env.Error,
			}
		}
		return nil, &errs.AppError{
			Kind:           errs.TransportFailed,
			UpstreamStatus: resp.StatusCode,
			Message:        "The analysis backend returned an error status.",
			Cause:          fmt.Errorf("%w: %d", errUnexpectedStatus, resp.StatusCode),
		}
	}

	if decodeErr != nil {
		return nil, &errs.AppError{
			Kind:           errs.TransportFailed,
			UpstreamStatus: resp.StatusCode,
			Message:        "The analysis backend returned an unreadable response.",
			Cause:          decodeErr,
		}
	}

	return &env, nil
}

// isTimeout reports whether err came from the client timeout or the request
// context deadline.
func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}
