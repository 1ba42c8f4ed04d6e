// Package aggregate groups canonical issues per category and rolls up report totals.
package aggregate

import (
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/farcloser/movup/internal/types"
)

// consistencyTolerance absorbs float summation order differences in the cross-check.
const consistencyTolerance = 1e-9

// Group buckets issues by category. Encounter order is preserved inside each bucket and across
// buckets; only observed categories get a bucket.
func Group(issues []types.Issue) *types.Buckets {
	buckets := types.NewBuckets()

	for _, issue := range issues {
		buckets.Add(issue)
	}

	return buckets
}

// ElapsedSeconds is the arithmetic sum of the bucket's timestamps.
func ElapsedSeconds(bucket *types.Bucket) float64 {
	if bucket == nil {
		return 0
	}

	return floats.Sum(bucket.Timestamps())
}

// Summarize computes report totals from the canonical list, its buckets and the payload counters.
func Summarize(issues []types.Issue, buckets *types.Buckets, counters types.Counters) types.Summary {
	summary := types.Summary{
		TotalFrames: counters.TotalFrames,
		FPS:         counters.FPS,
	}

	for _, bucket := range buckets.All() {
		summary.TotalErrorFrames += bucket.FrameCount()
	}

	timestamps := make([]float64, len(issues))
	for i := range issues {
		timestamps[i] = issues[i].TimestampSeconds
	}

	summary.TotalErrorSeconds = floats.Sum(timestamps)

	if summary.TotalFrames > 0 {
		summary.ErrorPercentage = 100 * float64(summary.TotalErrorFrames) / float64(summary.TotalFrames)
	}

	return summary
}

// Consistent cross-checks the summary against the buckets: frame counts must match exactly and the
// per-bucket elapsed totals must add up to the report total.
func Consistent(summary types.Summary, buckets *types.Buckets) bool {
	frames := 0
	perBucket := make([]float64, 0, buckets.Len())

	for _, bucket := range buckets.All() {
		frames += bucket.FrameCount()
		perBucket = append(perBucket, ElapsedSeconds(bucket))
	}

	if frames != summary.TotalErrorFrames {
		return false
	}

	diff := math.Abs(floats.Sum(perBucket) - summary.TotalErrorSeconds)

	return diff <= consistencyTolerance*max(1, math.Abs(summary.TotalErrorSeconds))
}
