package movup

import (
	"github.com/farcloser/movup/internal/aggregate"
	"github.com/farcloser/movup/internal/imageurl"
	"github.com/farcloser/movup/internal/payload"
	"github.com/farcloser/movup/internal/types"
	"github.com/farcloser/movup/internal/worstframe"
)

/*
Usage:

pld, err := payload.Decode(body)
if err != nil {
    // no usable payload: send the user back to the start
}

report := movup.Build(pld, movup.DefaultOptions())
for _, section := range report.Sections {
    fmt.Printf("%s: %d frames\n", section.Info.Title, section.FrameCount)
}

// Custom image origin
opts := movup.DefaultOptions()
opts.Origins = []string{"https://cdn.example.com"}
report := movup.Build(pld, opts)

*/

// Options configures report building.
type Options struct {
	// Origins for evidence image URLs. Only the first one is used for resolution.
	Origins []string

	// Severity bands for labeling scores (zero value = use defaults).
	Severity types.Bands
}

// DefaultOptions returns the local backend origins and the service severity bands.
func DefaultOptions() Options {
	return Options{
		Origins:  imageurl.DefaultOrigins(),
		Severity: types.DefaultBands(),
	}
}

// Section is one category's part of the report.
type Section struct {
	Category            types.Category
	Info                types.CategoryInfo
	FrameCount          int
	TotalElapsedSeconds float64
	WorstFrame          *types.Evidence // nil when nothing could be selected
	WorstSeverity       types.Severity  // level of the worst frame score, SeverityNone without a score
}

// Report is the normalized, aggregated view of one analysis payload.
type Report struct {
	Status   string
	Schema   payload.Schema
	Issues   []types.Issue
	Sections []Section
	Summary  types.Summary

	// Per-category counts declared by the analysis service, for comparison only.
	Declared map[types.Category]int
}

// HasErrors reports whether any category was observed.
func (r *Report) HasErrors() bool {
	return len(r.Sections) > 0
}

// Section returns the section for a category, or nil.
func (r *Report) Section(category types.Category) *Section {
	for i := range r.Sections {
		if r.Sections[i].Category == category {
			return &r.Sections[i]
		}
	}

	return nil
}

// Build derives the report from an ingested payload. It is a pure function of its inputs.
func Build(pld *payload.Payload, opts Options) *Report {
	if opts.Severity.IsZero() {
		opts.Severity = types.DefaultBands()
	}

	resolver := imageurl.New(opts.Origins)
	buckets := aggregate.Group(pld.Issues)

	report := &Report{
		Status:   pld.Status,
		Schema:   pld.Schema,
		Issues:   pld.Issues,
		Sections: make([]Section, 0, buckets.Len()),
		Summary:  aggregate.Summarize(pld.Issues, buckets, pld.Counters),
		Declared: pld.Counters.Declared,
	}

	for _, bucket := range buckets.All() {
		section := Section{
			Category:            bucket.Category,
			Info:                types.Info(bucket.Category),
			FrameCount:          bucket.FrameCount(),
			TotalElapsedSeconds: aggregate.ElapsedSeconds(bucket),
			WorstFrame:          worstframe.Resolve(bucket.Category, bucket.Issues, pld.Hints),
		}

		if ev := section.WorstFrame; ev != nil {
			ev.ImageURL = resolver.Resolve(ev.ImagePath)

			if ev.SeverityScore != nil {
				section.WorstSeverity, _ = opts.Severity.Match(*ev.SeverityScore)
			}
		}

		report.Sections = append(report.Sections, section)
	}

	return report
}

// BuildBytes decodes serialized payload bytes and builds the report.
func BuildBytes(data []byte, opts Options) (*Report, error) {
	pld, err := payload.Decode(data)
	if err != nil {
		return nil, err //nolint:wrapcheck // already classified by payload
	}

	return Build(pld, opts), nil
}
