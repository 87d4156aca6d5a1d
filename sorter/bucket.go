package sorter

import (
	"path/filepath"
	"sort"
	"strings"
)

// UnknownBucket collects files without an extension.
const UnknownBucket = "unknown"

// Bucket returns the extension bucket for a base file name: the text after
// the last dot, case preserved. A leading dot (".bashrc") or a trailing dot
// ("notes.") does not start an extension.
func Bucket(name string) string {
	i := strings.LastIndexByte(name, '.')
	if i <= 0 || i == len(name)-1 {
		return UnknownBucket
	}
	return name[i+1:]
}

// Target returns the bucket directory under dst and the full destination
// path for a file called name.
func Target(dst, name string) (dir, path string) {
	dir = filepath.Join(dst, Bucket(name))
	return dir, filepath.Join(dir, name)
}

// BucketPlan describes what a run would put into one bucket.
type BucketPlan struct {
	Bucket string
	// Files is the number of source files mapped to the bucket.
	Files int
	// Collisions counts files that will be overwritten by another source
	// file with the same name.
	Collisions int
}

// Plan groups scanned files by bucket without touching any destination.
// The result is sorted by bucket name.
func Plan(files []FileEntry) []BucketPlan {
	names := make(map[string]map[string]struct{})
	counts := make(map[string]int)
	for _, f := range files {
		b := Bucket(f.Name)
		if names[b] == nil {
			names[b] = make(map[string]struct{})
		}
		names[b][f.Name] = struct{}{}
		counts[b]++
	}

	plans := make([]BucketPlan, 0, len(counts))
	for b, n := range counts {
		plans = append(plans, BucketPlan{Bucket: b, Files: n, Collisions: n - len(names[b])})
	}
	sort.Slice(plans, func(i, j int) bool { return plans[i].Bucket < plans[j].Bucket })
	return plans
}
