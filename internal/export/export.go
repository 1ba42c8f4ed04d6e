// Package export forwards a copy of a finished report to the save endpoint.
package export

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/farcloser/primordium/fault"
	"github.com/google/uuid"
)

const (
	// SavePath is the save endpoint, relative to the service base URL.
	SavePath = "/api/save_report"

	// DefaultUser is sent when no user id is configured.
	DefaultUser = "current_user"

	requestTimeout = 30 * time.Second
)

// ErrSaveFailed is returned when the endpoint rejects or fails the save.
var ErrSaveFailed = errors.New("saving report failed")

//nolint:tagliatelle
type saveRequest struct {
	ReportData map[string]any `json:"report_data"`
	Timestamp  string         `json:"timestamp"`
	UserID     string         `json:"user_id"`
}

//nolint:tagliatelle
type saveResponse struct {
	ReportID string `json:"report_id"`
}

// Saver posts reports to the save endpoint.
type Saver struct {
	BaseURL string
	UserID  string
	HTTP    *http.Client

	now func() time.Time
}

// NewSaver returns a saver for the service at baseURL.
func NewSaver(baseURL, userID string) *Saver {
	if userID == "" {
		userID = DefaultUser
	}

	return &Saver{
		BaseURL: strings.TrimSuffix(baseURL, "/"),
		UserID:  userID,
		HTTP:    &http.Client{Timeout: requestTimeout},
		now:     time.Now,
	}
}

// Save sends the serialized report and returns the id assigned by the endpoint.
func (s *Saver) Save(ctx context.Context, reportData map[string]any) (string, error) {
	body, err := json.Marshal(saveRequest{
		ReportData: reportData,
		Timestamp:  s.now().UTC().Format(time.RFC3339Nano),
		UserID:     s.UserID,
	})
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrSaveFailed, err)
	}

	requestID := uuid.New().String()
	slog.Debug("export.Save", "endpoint", s.BaseURL+SavePath, "request id", requestID)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.BaseURL+SavePath, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrSaveFailed, err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Request-ID", requestID)

	resp, err := s.HTTP.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrSaveFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return "", fmt.Errorf("%w: HTTP status %d", ErrSaveFailed, resp.StatusCode)
	}

	var result saveResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", fmt.Errorf("%w: %w", fault.ErrInvalidJSON, err)
	}

	return result.ReportID, nil
}
