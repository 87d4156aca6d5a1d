package sorter

import (
	"encoding/json"
	"sort"
	"sync"
	"time"
)

// Result is the outcome of copying one file.
type Result struct {
	Source string `json:"source"`
	Target string `json:"target"`
	Bucket string `json:"bucket"`
	Bytes  int64  `json:"bytes"`
	Err    error  `json:"-"`
}

// OK reports whether the copy succeeded.
func (r Result) OK() bool { return r.Err == nil }

// MarshalJSON adds the error text, which encoding/json cannot render from
// an error value.
func (r Result) MarshalJSON() ([]byte, error) {
	type plain Result
	out := struct {
		plain
		Error string `json:"error,omitempty"`
	}{plain: plain(r)}
	if r.Err != nil {
		out.Error = r.Err.Error()
	}
	return json.Marshal(out)
}

// EmptyKind tells which empty-source short circuit ended a run.
type EmptyKind string

const (
	// EmptyShallow: the source directory had no entries at all.
	EmptyShallow EmptyKind = "shallow"
	// EmptyDeep: the source had entries but no regular file anywhere below.
	EmptyDeep EmptyKind = "deep"
)

// Report collects everything a run did.
type Report struct {
	RunID       string    `json:"run_id"`
	Source      string    `json:"source"`
	Destination string    `json:"destination"`
	StartedAt   time.Time `json:"started_at"`
	FinishedAt  time.Time `json:"finished_at"`
	Scanned     int       `json:"scanned"`
	Empty       EmptyKind `json:"empty,omitempty"`
	Interrupted bool      `json:"interrupted"`
	Results     []Result  `json:"results"`
}

// Copied returns the number of successful copies.
func (r *Report) Copied() int {
	n := 0
	for _, res := range r.Results {
		if res.OK() {
			n++
		}
	}
	return n
}

// Failed returns the number of failed copies.
func (r *Report) Failed() int {
	return len(r.Results) - r.Copied()
}

// Failures returns the failed results in report order.
func (r *Report) Failures() []Result {
	var out []Result
	for _, res := range r.Results {
		if !res.OK() {
			out = append(out, res)
		}
	}
	return out
}

// Duration is the wall time of the run.
func (r *Report) Duration() time.Duration {
	return r.FinishedAt.Sub(r.StartedAt)
}

// BucketStat aggregates the results that share a bucket.
type BucketStat struct {
	Bucket string
	Copied int
	Failed int
	Bytes  int64
}

// Buckets aggregates results per bucket, sorted by bucket name.
func (r *Report) Buckets() []BucketStat {
	return aggregate(r.Results)
}

func aggregate(results []Result) []BucketStat {
	idx := make(map[string]int)
	var stats []BucketStat
	for _, res := range results {
		i, ok := idx[res.Bucket]
		if !ok {
			i = len(stats)
			idx[res.Bucket] = i
			stats = append(stats, BucketStat{Bucket: res.Bucket})
		}
		if res.OK() {
			stats[i].Copied++
			stats[i].Bytes += res.Bytes
		} else {
			stats[i].Failed++
		}
	}
	sort.Slice(stats, func(i, j int) bool { return stats[i].Bucket < stats[j].Bucket })
	return stats
}

// collector gathers results from concurrent copy tasks. Once sealed it
// drops late writes, so an interrupted run can hand out its results while
// stragglers are still finishing.
type collector struct {
	mu      sync.Mutex
	results []Result
	filled  []bool
	sealed  bool
}

func newCollector(n int) *collector {
	return &collector{results: make([]Result, n), filled: make([]bool, n)}
}

func (c *collector) set(i int, r Result) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.sealed {
		return
	}
	c.results[i] = r
	c.filled[i] = true
}

// seal stops accepting results and returns the completed ones in order.
func (c *collector) seal() []Result {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sealed = true
	out := make([]Result, 0, len(c.results))
	for i, ok := range c.filled {
		if ok {
			out = append(out, c.results[i])
		}
	}
	return out
}
