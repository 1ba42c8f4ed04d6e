package export

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/farcloser/primordium/fault"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSave(t *testing.T) {
	var received saveRequest

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, SavePath, r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.NotEmpty(t, r.Header.Get("X-Request-ID"))

		assert.NoError(t, json.NewDecoder(r.Body).Decode(&received))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"report_id": "r-123"}`))
	}))
	defer server.Close()

	saver := NewSaver(server.URL+"/", "")
	saver.now = func() time.Time { return time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC) }

	id, err := saver.Save(context.Background(), map[string]any{"status": "success"})
	require.NoError(t, err)

	assert.Equal(t, "r-123", id)
	assert.Equal(t, DefaultUser, received.UserID)
	assert.Equal(t, "2026-03-01T12:00:00Z", received.Timestamp)
	assert.Equal(t, map[string]any{"status": "success"}, received.ReportData)
}

func TestSaveRejectedStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer server.Close()

	_, err := NewSaver(server.URL, "runner").Save(context.Background(), map[string]any{})
	assert.ErrorIs(t, err, ErrSaveFailed)
}

func TestSaveInvalidResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`<html>`))
	}))
	defer server.Close()

	_, err := NewSaver(server.URL, "runner").Save(context.Background(), map[string]any{})
	assert.ErrorIs(t, err, fault.ErrInvalidJSON)
}

func TestSaveUnreachable(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	url := server.URL
	server.Close()

	_, err := NewSaver(url, "runner").Save(context.Background(), map[string]any{})
	assert.ErrorIs(t, err, ErrSaveFailed)
}
