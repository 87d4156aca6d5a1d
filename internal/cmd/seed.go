package cmd

import (
	"fmt"
	"math/rand/v2"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

// NewSeedCmd creates and returns the seed subcommand for the extsort CLI.
// It generates a random source tree that exercises the bucketing rules.
func NewSeedCmd() *cobra.Command {
	var (
		outputPath string
		fileCount  int
		seed       uint64
		verbose    bool
	)

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Generate a random source tree to sort",
		Long: `Generate a directory tree of test files for trying out extsort.

Files are spread over nested directories up to four levels deep. Names mix
lower and upper case extensions, multi-dot names, extensionless files,
dotfiles and a few names that repeat across directories so collisions show
up in the sorted output. Each file contains a single UUID line.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if seed == 0 {
				seed = uint64(time.Now().UnixNano())
			}
			rng := rand.New(rand.NewPCG(seed, seed>>1))
			created, err := seedTree(outputPath, fileCount, rng)
			if err != nil {
				return &ExitError{Code: ExitFatal, Err: err}
			}
			if verbose {
				fmt.Fprintf(cmd.OutOrStdout(), "Created %d files in %s (seed %d)\n", created, outputPath, seed)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "Path to output directory (required)")
	cmd.Flags().IntVarP(&fileCount, "count", "c", 1000, "Number of files to generate")
	cmd.Flags().Uint64Var(&seed, "seed", 0, "Random seed (default: time based)")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")

	cmd.MarkFlagRequired("output")

	return cmd
}

var seedExtensions = []string{
	".txt", ".json", ".jpg", ".JPG", ".pdf", ".tar.gz", ".go", ".md", ".csv", "",
}

// collidingNames repeat across directories on purpose.
var collidingNames = []string{"report.pdf", "README", "index.html", ".env"}

var seedDirs = []string{"docs", "photos", "archive", "src", "tmp", "2023", "2024"}

// seedTree writes fileCount files below outputPath and returns how many it
// created. Paths that already exist are skipped and retried.
func seedTree(outputPath string, fileCount int, rng *rand.Rand) (int, error) {
	if outputPath == "" {
		return 0, fmt.Errorf("output path is required")
	}
	if err := os.MkdirAll(outputPath, 0o755); err != nil {
		return 0, fmt.Errorf("create output directory: %w", err)
	}

	created := 0
	for attempts := 0; created < fileCount && attempts < fileCount*10; attempts++ {
		dir := outputPath
		for range rng.IntN(5) {
			dir = filepath.Join(dir, seedDirs[rng.IntN(len(seedDirs))])
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return created, fmt.Errorf("create directory %s: %w", dir, err)
		}

		var name string
		switch r := rng.IntN(100); {
		case r < 5:
			name = collidingNames[rng.IntN(len(collidingNames))]
		case r < 10:
			name = fmt.Sprintf(".%06x", rng.Uint32()&0xffffff)
		default:
			name = fmt.Sprintf("%08x%s", rng.Uint32(), seedExtensions[rng.IntN(len(seedExtensions))])
		}

		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err == nil {
			continue
		}
		if err := os.WriteFile(path, []byte(uuid.NewString()+"\n"), 0o644); err != nil {
			return created, fmt.Errorf("write %s: %w", path, err)
		}
		created++
	}
	return created, nil
}
