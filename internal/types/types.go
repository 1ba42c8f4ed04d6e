package types

import "fmt"

// Category is one of the recognized issue classifications.
type Category string

const (
	CategoryPosture    Category = "posture"
	CategoryOverstride Category = "overstride"
	CategoryVisibility Category = "visibility"
)

// Categories lists every recognized category, in display order.
//
//nolint:gochecknoglobals // enum listing, effectively const
var Categories = []Category{CategoryPosture, CategoryOverstride, CategoryVisibility}

func (c Category) String() string {
	return string(c)
}

// Valid reports whether c is one of the recognized categories.
func (c Category) Valid() bool {
	switch c {
	case CategoryPosture, CategoryOverstride, CategoryVisibility:
		return true
	}

	return false
}

// ParseCategory converts a string to a Category value.
func ParseCategory(s string) (Category, error) {
	c := Category(s)
	if !c.Valid() {
		return "", fmt.Errorf("unknown category %q (valid: posture, overstride, visibility)", s)
	}

	return c, nil
}

// Issue is a single per-frame finding after schema reconciliation.
type Issue struct {
	FrameIndex        int
	TimestampSeconds  float64
	Category          Category
	SeverityScore     *float64 // nil when the source carried no usable score
	Description       string
	EvidenceImagePath string
}

// Bucket holds the issues sharing one category, in encounter order.
type Bucket struct {
	Category Category
	Issues   []Issue
}

// FrameCount is the number of issues in the bucket. Frames are not deduplicated.
func (b *Bucket) FrameCount() int {
	return len(b.Issues)
}

// Timestamps returns the timestamp of every issue, in encounter order.
func (b *Bucket) Timestamps() []float64 {
	out := make([]float64, len(b.Issues))
	for i := range b.Issues {
		out[i] = b.Issues[i].TimestampSeconds
	}

	return out
}

// Buckets maps observed categories to their bucket, remembering first-encounter order.
type Buckets struct {
	order []Category
	index map[Category]*Bucket
}

// NewBuckets returns an empty mapping.
func NewBuckets() *Buckets {
	return &Buckets{index: make(map[Category]*Bucket)}
}

// Add appends the issue to its category bucket, creating the bucket on first sight.
func (b *Buckets) Add(issue Issue) {
	bucket, ok := b.index[issue.Category]
	if !ok {
		bucket = &Bucket{Category: issue.Category}
		b.index[issue.Category] = bucket
		b.order = append(b.order, issue.Category)
	}

	bucket.Issues = append(bucket.Issues, issue)
}

// Get returns the bucket for a category, or nil if it was never observed.
func (b *Buckets) Get(category Category) *Bucket {
	if b == nil {
		return nil
	}

	return b.index[category]
}

// All returns the buckets in first-encounter order.
func (b *Buckets) All() []*Bucket {
	if b == nil {
		return nil
	}

	out := make([]*Bucket, 0, len(b.order))
	for _, cat := range b.order {
		out = append(out, b.index[cat])
	}

	return out
}

// Len returns the number of observed categories.
func (b *Buckets) Len() int {
	if b == nil {
		return 0
	}

	return len(b.order)
}

// EvidenceSource records which resolution tier produced the worst-frame evidence.
type EvidenceSource int

const (
	SourceListHint EvidenceSource = iota + 1
	SourceKeyedHint
	SourceMaxSeverity
	SourceFirstIssue
)

func (s EvidenceSource) String() string {
	switch s {
	case SourceListHint:
		return "hint"
	case SourceKeyedHint:
		return "legacy-hint"
	case SourceMaxSeverity:
		return "max-severity"
	case SourceFirstIssue:
		return "first-issue"
	}

	return "unknown"
}

// Evidence is the single frame chosen to represent a category.
type Evidence struct {
	FrameIndex    int
	SeverityScore *float64
	Description   string
	ImagePath     string // as received, possibly relative
	ImageURL      string // absolute, empty when there is no image
	Source        EvidenceSource
}

// Counters are the payload-supplied totals the summary is computed against.
type Counters struct {
	TotalFrames int
	FPS         float64

	// Declared per-category counts as reported by the analysis service. Informational only.
	Declared map[Category]int
}

// Summary is the report-level roll-up.
type Summary struct {
	TotalFrames       int
	FPS               float64
	TotalErrorFrames  int
	TotalErrorSeconds float64
	ErrorPercentage   float64 // not clamped to 100: a frame reported under two categories counts twice
}
