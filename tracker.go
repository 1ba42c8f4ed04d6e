package movup

import (
	"sync"

	"github.com/minio/highwayhash"
)

const memoSize = 8

// memoKey is a fixed 256-bit highwayhash key. Keys only need to be stable within a process.
//
//nolint:gochecknoglobals // hash key, effectively const
var memoKey = []byte("movup-report-memoization-key-256")

// Ticket identifies one pipeline run. Tickets are ordered by the time Begin was called.
type Ticket struct {
	generation uint64
}

// Tracker holds the most recent report for a consumer. Builds of identical payload bytes are memoized,
// and a result whose payload was superseded by a newer committed one is discarded (last write wins).
// Reports handed out by a Tracker are shared and must be treated as read-only.
type Tracker struct {
	opts Options

	mu        sync.Mutex
	issued    uint64
	committed uint64
	current   *Report
	memo      map[uint64]*Report
	memoOrder []uint64
}

// NewTracker returns an empty tracker building reports with opts.
func NewTracker(opts Options) *Tracker {
	return &Tracker{
		opts: opts,
		memo: make(map[uint64]*Report, memoSize),
	}
}

// Begin registers a new run for a freshly available payload.
func (t *Tracker) Begin() Ticket {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.issued++

	return Ticket{generation: t.issued}
}

// Commit offers a finished report. It is accepted unless a run begun later was already committed.
func (t *Tracker) Commit(ticket Ticket, report *Report) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	if ticket.generation <= t.committed {
		return false
	}

	t.committed = ticket.generation
	t.current = report

	return true
}

// Current returns the latest accepted report, or nil.
func (t *Tracker) Current() *Report {
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.current
}

// Load builds (or recalls) the report for serialized payload bytes and commits it.
// The boolean is false when the result was superseded before it could be committed.
func (t *Tracker) Load(data []byte) (*Report, bool, error) {
	ticket := t.Begin()
	key := highwayhash.Sum64(data, memoKey)

	report := t.recall(key)
	if report == nil {
		var err error

		report, err = BuildBytes(data, t.opts)
		if err != nil {
			return nil, false, err
		}

		t.remember(key, report)
	}

	return report, t.Commit(ticket, report), nil
}

func (t *Tracker) recall(key uint64) *Report {
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.memo[key]
}

func (t *Tracker) remember(key uint64, report *Report) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if _, ok := t.memo[key]; ok {
		return
	}

	if len(t.memoOrder) == memoSize {
		delete(t.memo, t.memoOrder[0])
		t.memoOrder = t.memoOrder[1:]
	}

	t.memo[key] = report
	t.memoOrder = append(t.memoOrder, key)
}
