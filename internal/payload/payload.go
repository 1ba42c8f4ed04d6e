// Package payload ingests raw analysis payloads (current and legacy schemas) into canonical form.
package payload

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/farcloser/primordium/fault"

	"github.com/farcloser/movup/internal/types"
)

// ErrNoPayload is returned when the input cannot be read as a payload at all.
var ErrNoPayload = errors.New("no usable payload")

// Payload is a raw analysis result after one-time ingestion. It is immutable once built.
type Payload struct {
	Status   string
	Schema   Schema
	Issues   []types.Issue
	Hints    Hints
	Counters types.Counters
}

// Decode parses serialized payload bytes. The only failure is input that is not a JSON object;
// every field-level problem degrades to a default instead.
func Decode(data []byte) (*Payload, error) {
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%w: %w: %w", ErrNoPayload, fault.ErrInvalidJSON, err)
	}

	if raw == nil {
		return nil, ErrNoPayload
	}

	return FromMap(raw), nil
}

// FromMap ingests an already-decoded payload object.
func FromMap(raw map[string]any) *Payload {
	issues, schema := Normalize(raw)

	pld := &Payload{
		Status:   getString(raw["status"]),
		Schema:   schema,
		Issues:   issues,
		Hints:    ParseHints(raw["worst_frames"]),
		Counters: parseCounters(raw),
	}

	slog.Debug("payload.FromMap",
		"schema", pld.Schema.String(),
		"issues", len(pld.Issues),
		"hints", pld.Hints.Kind().String(),
	)

	return pld
}

// parseCounters reads totals from "summary" first, then from the top level, which is where the
// persisted report form keeps them.
func parseCounters(raw map[string]any) types.Counters {
	summary := getObject(raw["summary"])

	counters := types.Counters{
		TotalFrames: getInt(firstNumber(summary["total_frames"], raw["total_frames"])),
		FPS:         getFloat(firstNumber(summary["fps"], raw["fps"])),
		Declared:    make(map[types.Category]int),
	}

	legacy := getObject(raw["analysis_summary"])

	for _, cat := range types.Categories {
		value := firstNumber(summary[string(cat)+"_issues_count"], legacy[string(cat)+"_issues"])
		if _, ok := number(value); ok {
			counters.Declared[cat] = getInt(value)
		}
	}

	return counters
}

func firstNumber(values ...any) any {
	for _, value := range values {
		if _, ok := number(value); ok {
			return value
		}
	}

	return nil
}
