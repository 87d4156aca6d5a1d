package cmd

import (
	"context"
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/dendrascience/extsort/internal/config"
	"github.com/dendrascience/extsort/internal/logger"
	"github.com/dendrascience/extsort/sorter"
	"github.com/dendrascience/extsort/util"
	"github.com/dendrascience/extsort/version"
)

type sortFlags struct {
	configPath string
	workers    int
	logLevel   string
	reportPath string
	summary    bool
	strict     bool
	noLock     bool
	lockDir    string
}

// NewRootCmd creates and returns the root cobra command for the extsort CLI.
// Run with two arguments it sorts SRC into DST; the subcommands are utilities
// around that.
func NewRootCmd() *cobra.Command {
	var flags sortFlags
	defaults := config.Default()

	rootCmd := &cobra.Command{
		Use:   "extsort SRC DST",
		Short: "Copy a directory tree into folders named after file extensions",
		Long: `extsort copies every regular file under SRC into DST/<extension>/<name>.

Files without an extension go to DST/unknown. Copies run concurrently and a
failing file never stops the others. Files that share a name and extension
overwrite each other; the last copy to finish wins.

Exit status is 0 on success, 1 on a fatal error such as a missing SRC, and
2 when some files failed to copy (disable with --strict=false).`,
		Version:      version.GetFullVersion(),
		Args:         cobra.ExactArgs(2),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := resolveConfig(cmd, flags)
			if err != nil {
				return &ExitError{Code: ExitFatal, Err: err}
			}
			return runSort(cmd.Context(), cmd.ErrOrStderr(), cmd.OutOrStdout(), args[0], args[1], cfg)
		},
	}

	f := rootCmd.Flags()
	f.StringVarP(&flags.configPath, "config", "c", "", "Path to a TOML settings file")
	f.IntVarP(&flags.workers, "workers", "w", defaults.Workers, "Number of files copied concurrently")
	f.StringVarP(&flags.logLevel, "log-level", "l", defaults.LogLevel, "Minimum log level: debug, info, warn, error")
	f.StringVarP(&flags.reportPath, "report", "r", "", "Write a JSON run report to this path")
	f.BoolVarP(&flags.summary, "summary", "s", false, "Print a per-bucket summary table after the run")
	f.BoolVar(&flags.strict, "strict", defaults.Strict, "Exit with status 2 when any file fails to copy")
	f.BoolVar(&flags.noLock, "no-lock", false, "Do not guard the destination against concurrent runs")
	f.StringVar(&flags.lockDir, "lock-dir", "", "Directory for lock files (default: system temp dir)")

	groupUtilities := "utilities"
	rootCmd.AddGroup(&cobra.Group{
		ID:    groupUtilities,
		Title: "Utility Commands",
	})

	countCmd := NewCountCmd()
	verifyCmd := NewVerifyCmd()
	seedCmd := NewSeedCmd()
	versionCmd := NewVersionCmd()

	countCmd.GroupID = groupUtilities
	verifyCmd.GroupID = groupUtilities
	seedCmd.GroupID = groupUtilities
	versionCmd.GroupID = groupUtilities

	rootCmd.AddCommand(countCmd)
	rootCmd.AddCommand(verifyCmd)
	rootCmd.AddCommand(seedCmd)
	rootCmd.AddCommand(versionCmd)

	return rootCmd
}

// resolveConfig layers the optional config file and explicitly set flags
// over the defaults.
func resolveConfig(cmd *cobra.Command, flags sortFlags) (config.Config, error) {
	cfg := config.Default()
	if flags.configPath != "" {
		loaded, err := config.Load(flags.configPath)
		if err != nil {
			return config.Config{}, err
		}
		cfg = loaded
	}

	f := cmd.Flags()
	if f.Changed("workers") {
		cfg.Workers = flags.workers
	}
	if f.Changed("log-level") {
		cfg.LogLevel = flags.logLevel
	}
	if f.Changed("report") {
		cfg.Report = flags.reportPath
	}
	if f.Changed("summary") {
		cfg.Summary = flags.summary
	}
	if f.Changed("strict") {
		cfg.Strict = flags.strict
	}
	if f.Changed("no-lock") {
		cfg.Lock = !flags.noLock
	}
	if f.Changed("lock-dir") {
		cfg.LockDir = flags.lockDir
	}
	return cfg, cfg.Validate()
}

func runSort(ctx context.Context, stderr, stdout io.Writer, src, dst string, cfg config.Config) error {
	log := logger.NewConsoleLogger(stderr, cfg.LogLevel)

	report, err := sorter.Run(ctx, sorter.Options{
		Source:      src,
		Destination: dst,
		Workers:     cfg.Workers,
		Logger:      log,
		Lock:        cfg.Lock,
		LockDir:     cfg.LockDir,
	})
	if err != nil {
		return &ExitError{Code: ExitFatal, Err: err, Logged: true}
	}

	if cfg.Report != "" {
		if err := util.WriteJSONFile(cfg.Report, report); err != nil {
			log.Errorf("Error writing report %s: %v", cfg.Report, err)
			return &ExitError{Code: ExitFatal, Err: err, Logged: true}
		}
		log.Debugf("report written to %s", cfg.Report)
	}

	if cfg.Summary && len(report.Results) > 0 {
		fmt.Fprintln(stdout, renderSummary(report, shouldColorize(stdout)))
	}

	if failed := report.Failed(); failed > 0 {
		err := fmt.Errorf("%d of %d files failed to copy", failed, len(report.Results))
		log.Errorf("%v", err)
		if cfg.Strict {
			return &ExitError{Code: ExitPartial, Err: err, Logged: true}
		}
	}
	return nil
}

func renderSummary(report *sorter.Report, colorize bool) string {
	stats := report.Buckets()
	rows := make([][]string, 0, len(stats)+1)
	for _, s := range stats {
		rows = append(rows, []string{
			bucketLabel(s.Bucket, colorize),
			strconv.Itoa(s.Copied),
			strconv.Itoa(s.Failed),
			strconv.FormatInt(s.Bytes, 10),
		})
	}
	rows = append(rows, []string{
		"total",
		strconv.Itoa(report.Copied()),
		strconv.Itoa(report.Failed()),
		"",
	})
	return renderTable(
		[]string{"Bucket", "Copied", "Failed", "Bytes"},
		rows,
		[]columnAlignment{alignLeft, alignRight, alignRight, alignRight},
	)
}
