// Package inference sends a recorded video to the analysis service and returns its raw result.
package inference

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"github.com/farcloser/primordium/fault"
)

const (
	// AnalyzePath is the analysis endpoint, relative to the service base URL.
	AnalyzePath = "/analisar-video/"

	// DefaultTimeout bounds one upload-and-analyze round trip.
	DefaultTimeout = 5 * time.Minute

	formField = "file"

	// Error bodies are short JSON documents; anything bigger is not worth reading.
	maxErrorBody = 64 * 1024
)

var (
	ErrAnalysisFailed = errors.New("video analysis failed")
	ErrServer         = errors.New("analysis server error")
)

// Client talks to the analysis service. One call performs exactly one request; retries are the
// caller's business.
type Client struct {
	BaseURL string
	HTTP    *http.Client
}

// New returns a client for the service at baseURL.
func New(baseURL string) *Client {
	return &Client{
		BaseURL: strings.TrimSuffix(baseURL, "/"),
		HTTP:    &http.Client{Timeout: DefaultTimeout},
	}
}

// Analyze streams the video as multipart form data and returns the response body untouched.
func (c *Client) Analyze(ctx context.Context, filename string, video io.Reader) ([]byte, error) {
	endpoint := c.BaseURL + AnalyzePath

	slog.Debug("inference.Analyze", "endpoint", endpoint, "file", filename)

	body, writer := io.Pipe()
	form := multipart.NewWriter(writer)

	go func() {
		part, err := form.CreateFormFile(formField, filename)
		if err == nil {
			_, err = io.Copy(part, video)
		}

		if err == nil {
			err = form.Close()
		}

		writer.CloseWithError(err)
	}()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, body)
	if err != nil {
		body.Close()

		return nil, fmt.Errorf("%w: %w", ErrAnalysisFailed, err)
	}

	req.Header.Set("Content-Type", form.FormDataContentType())

	resp, err := c.HTTP.Do(req)
	if err != nil {
		body.Close()

		if errors.Is(err, context.DeadlineExceeded) {
			return nil, fmt.Errorf("%w: %w", fault.ErrTimeout, err)
		}

		return nil, fmt.Errorf("%w: %w", ErrAnalysisFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, statusError(resp)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", fault.ErrReadFailure, err)
	}

	return data, nil
}

// statusError prefers the service's {"detail": "..."} message over the bare status code.
func statusError(resp *http.Response) error {
	base := ErrAnalysisFailed
	if resp.StatusCode >= http.StatusInternalServerError {
		base = ErrServer
	}

	var detail struct {
		Detail string `json:"detail"`
	}

	raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	if err := json.Unmarshal(raw, &detail); err == nil && detail.Detail != "" {
		return fmt.Errorf("%w: %s", base, detail.Detail)
	}

	return fmt.Errorf("%w: HTTP status %d", base, resp.StatusCode)
}
