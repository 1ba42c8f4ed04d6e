package inference

import (
	"errors"
	"fmt"
	"path/filepath"
	"slices"
	"strings"

	"github.com/farcloser/movup/internal/integration/ffprobe"
)

const (
	MaxFileSize        = 100 * 1024 * 1024
	MaxDurationSeconds = 300.0
)

var (
	ErrNoFile          = errors.New("no video file selected")
	ErrUnsupportedType = errors.New("unsupported video type (use mp4, avi, mov, wmv or webm)")
	ErrTooLarge        = errors.New("video file too large")
	ErrNoVideoStream   = errors.New("no video stream found")
	ErrTooLong         = errors.New("video too long")
)

//nolint:gochecknoglobals // configuration data, effectively const
var allowedExtensions = []string{".mp4", ".avi", ".mov", ".wmv", ".webm"}

// CheckFile validates what can be known about a video without opening it.
func CheckFile(path string, size int64) error {
	if path == "" {
		return ErrNoFile
	}

	if !slices.Contains(allowedExtensions, strings.ToLower(filepath.Ext(path))) {
		return fmt.Errorf("%q: %w", filepath.Base(path), ErrUnsupportedType)
	}

	if size > MaxFileSize {
		return fmt.Errorf("%d bytes (max %d): %w", size, MaxFileSize, ErrTooLarge)
	}

	return nil
}

// CheckProbe validates probed properties: there must be a video stream and the recording must fit
// the analysis time limit. An unknown duration is accepted.
func CheckProbe(result *ffprobe.Result) error {
	if _, ok := result.VideoStream(); !ok {
		return ErrNoVideoStream
	}

	if duration := result.DurationSeconds(); duration > MaxDurationSeconds {
		return fmt.Errorf("%.1fs (max %.0fs): %w", duration, MaxDurationSeconds, ErrTooLong)
	}

	return nil
}
