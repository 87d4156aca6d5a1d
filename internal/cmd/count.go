package cmd

import (
	"context"
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/dendrascience/extsort/sorter"
)

// NewCountCmd creates and returns the count subcommand for the extsort CLI.
// It shows the buckets a sort of PATH would produce without copying anything.
func NewCountCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "count PATH",
		Short: "Count files per extension bucket in a directory tree",
		Long: `Count the files under PATH grouped by the bucket they would be sorted into.

This is a dry run of the root command: it walks PATH the same way and reports,
for every bucket, how many files map to it and how many of them would be
overwritten by another file with the same name.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCount(cmd.Context(), cmd.OutOrStdout(), args[0])
		},
	}
	return cmd
}

func runCount(ctx context.Context, w io.Writer, path string) error {
	files, err := sorter.Scan(ctx, path)
	if err != nil {
		return &ExitError{Code: ExitFatal, Err: err}
	}
	if len(files) == 0 {
		fmt.Fprintf(w, "No files found under %s\n", path)
		return nil
	}

	colorize := shouldColorize(w)
	plans := sorter.Plan(files)
	rows := make([][]string, 0, len(plans))
	collisions := 0
	for _, p := range plans {
		rows = append(rows, []string{
			bucketLabel(p.Bucket, colorize),
			strconv.Itoa(p.Files),
			strconv.Itoa(p.Collisions),
		})
		collisions += p.Collisions
	}
	fmt.Fprintln(w, renderTable(
		[]string{"Bucket", "Files", "Overwritten"},
		rows,
		[]columnAlignment{alignLeft, alignRight, alignRight},
	))
	fmt.Fprintf(w, "Total files: %d in %d buckets (%d overwritten)\n", len(files), len(plans), collisions)
	return nil
}
