package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"runtime"
	"sort"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/dendrascience/extsort/sorter"
	"github.com/dendrascience/extsort/util"
)

type verifyStatus string

const (
	verifyOK       verifyStatus = "ok"
	verifyMissing  verifyStatus = "missing"
	verifyMismatch verifyStatus = "mismatch"
)

type verifyResult struct {
	Target  string
	Sources []string
	Status  verifyStatus
	Err     error
}

// NewVerifyCmd creates and returns the verify subcommand for the extsort CLI.
func NewVerifyCmd() *cobra.Command {
	var (
		workers int
		verbose bool
	)

	cmd := &cobra.Command{
		Use:   "verify SRC DST",
		Short: "Check that a sorted destination matches its source tree",
		Long: `Verify that every file under SRC has a copy at DST/<extension>/<name>
with the same SHA-256 content.

When several source files share a destination (same name and extension) the
target passes if it matches any one of them. Exits with status 1 if any
target is missing or differs.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			results, err := verifyTree(cmd.Context(), args[0], args[1], workers)
			if err != nil {
				return &ExitError{Code: ExitFatal, Err: err}
			}
			return reportVerify(cmd.OutOrStdout(), results, verbose)
		},
	}

	cmd.Flags().IntVarP(&workers, "workers", "w", runtime.NumCPU(), "Number of files hashed concurrently")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "List every target, not only problems")

	return cmd
}

// verifyTree hashes each destination target against the source files that
// map to it. Results are sorted by target path.
func verifyTree(ctx context.Context, src, dst string, workers int) ([]verifyResult, error) {
	files, err := sorter.Scan(ctx, src)
	if err != nil {
		return nil, err
	}

	sources := make(map[string][]string)
	for _, f := range files {
		_, target := sorter.Target(dst, f.Name)
		sources[target] = append(sources[target], f.Path)
	}

	results := make([]verifyResult, 0, len(sources))
	for target, paths := range sources {
		results = append(results, verifyResult{Target: target, Sources: paths})
	}
	sort.Slice(results, func(i, j int) bool { return results[i].Target < results[j].Target })

	if workers < 1 {
		workers = 1
	}
	var g errgroup.Group
	g.SetLimit(workers)

	for i := range results {
		if ctx.Err() != nil {
			break
		}
		g.Go(func() error {
			status, err := checkTarget(results[i].Target, results[i].Sources)
			results[i].Status = status
			results[i].Err = err
			return nil
		})
	}
	_ = g.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return results, nil
}

func checkTarget(target string, sources []string) (verifyStatus, error) {
	got, err := util.GetFileHash(target)
	if errors.Is(err, fs.ErrNotExist) {
		return verifyMissing, nil
	}
	if err != nil {
		return verifyMissing, err
	}

	var firstErr error
	for _, src := range sources {
		want, err := util.GetFileHash(src)
		if err != nil {
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		if want == got {
			return verifyOK, nil
		}
	}
	return verifyMismatch, firstErr
}

func reportVerify(w io.Writer, results []verifyResult, verbose bool) error {
	var missing, mismatched int
	for _, r := range results {
		switch r.Status {
		case verifyMissing:
			missing++
		case verifyMismatch:
			mismatched++
		}
		if r.Status == verifyOK && !verbose {
			continue
		}
		if r.Err != nil {
			fmt.Fprintf(w, "%-8s %s (%v)\n", r.Status, r.Target, r.Err)
		} else {
			fmt.Fprintf(w, "%-8s %s\n", r.Status, r.Target)
		}
	}

	fmt.Fprintf(w, "Verified %d targets: %d ok, %d missing, %d mismatched\n",
		len(results), len(results)-missing-mismatched, missing, mismatched)

	if missing+mismatched > 0 {
		return &ExitError{
			Code: ExitFatal,
			Err:  fmt.Errorf("%d targets failed verification", missing+mismatched),
		}
	}
	return nil
}
