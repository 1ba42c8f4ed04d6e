//nolint:tagliatelle
package ffprobe

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os/exec"
	"strconv"
	"strings"

	"github.com/farcloser/primordium/fault"
)

// Result contains the marshalled output of ffprobe.
type Result struct {
	Streams []Stream `json:"streams"`
	Format  Format   `json:"format"`
}

// Stream holds the stream properties relevant to a running video.
type Stream struct {
	Index     int    `json:"index"`
	CodecName string `json:"codec_name"` // h264, vp9
	CodecType string `json:"codec_type"` // video, audio
	Width     int    `json:"width,omitempty"`
	Height    int    `json:"height,omitempty"`
	Duration  string `json:"duration,omitempty"` // seconds as float string; absent for webm streams
	NbFrames  string `json:"nb_frames,omitempty"`

	// Frame rates as "num/den". r_frame_rate is the lowest rate all timestamps can be represented in,
	// avg_frame_rate is total frames over duration. Phone recorders with variable frame rate make these differ.
	RFrameRate   string `json:"r_frame_rate"`
	AvgFrameRate string `json:"avg_frame_rate"`
}

// Format represents container-level information.
type Format struct {
	Filename   string `json:"filename"`
	FormatName string `json:"format_name"`        // e.g. "mov,mp4,m4a,3gp,3g2,mj2", "matroska,webm"
	Duration   string `json:"duration,omitempty"` // seconds as float string
	Size       string `json:"size,omitempty"`     // bytes as string
	ProbeScore int    `json:"probe_score"`        // 0-100 confidence in format detection
}

// VideoStream returns the first video stream.
func (r *Result) VideoStream() (*Stream, bool) {
	for i := range r.Streams {
		if r.Streams[i].CodecType == "video" {
			return &r.Streams[i], true
		}
	}

	return nil, false
}

// DurationSeconds returns the container duration, falling back to the first video stream duration.
// Returns 0 when neither parses.
func (r *Result) DurationSeconds() float64 {
	if d, err := strconv.ParseFloat(r.Format.Duration, 64); err == nil && d > 0 {
		return d
	}

	if stream, ok := r.VideoStream(); ok {
		if d, err := strconv.ParseFloat(stream.Duration, 64); err == nil && d > 0 {
			return d
		}
	}

	return 0
}

// FrameRate returns the average frame rate, falling back to r_frame_rate. Returns 0 when unknown.
func (s *Stream) FrameRate() float64 {
	if rate := parseRational(s.AvgFrameRate); rate > 0 {
		return rate
	}

	return parseRational(s.RFrameRate)
}

func parseRational(value string) float64 {
	num, den, found := strings.Cut(value, "/")

	numerator, err := strconv.ParseFloat(num, 64)
	if err != nil {
		return 0
	}

	if !found {
		return numerator
	}

	denominator, err := strconv.ParseFloat(den, 64)
	if err != nil || denominator == 0 {
		return 0
	}

	return numerator / denominator
}

// Probe runs ffprobe on the given file path and returns parsed metadata.
// It requires ffprobe to be available in the system PATH.
func Probe(ctx context.Context, filePath string) (*Result, error) {
	slog.Debug("ffprobe.Probe", "file path", filePath)

	ffprobePath, err := exec.LookPath(name)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", fault.ErrMissingRequirements, name)
	}

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	//nolint:gosec // filePath is intentionally user-provided input for probing media files
	cmd := exec.CommandContext(ctx, ffprobePath,
		"-v", "quiet",
		"-print_format", "json",
		"-show_format",
		"-show_streams",
		filePath,
	)

	var stderr bytes.Buffer

	cmd.Stderr = &stderr

	output, err := cmd.Output()
	if err != nil {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return nil, fmt.Errorf("%w: after %v", fault.ErrTimeout, timeout)
		}

		return nil, fmt.Errorf("%w: %s: %w", fault.ErrCommandFailure, stderr.String(), err)
	}

	return Parse(output)
}

// Parse decodes ffprobe JSON output.
func Parse(output []byte) (*Result, error) {
	var result Result
	if err := json.Unmarshal(output, &result); err != nil {
		return nil, fmt.Errorf("%w: %w", fault.ErrInvalidJSON, err)
	}

	return &result, nil
}
