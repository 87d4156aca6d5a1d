package sorter

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"runtime"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/dendrascience/extsort/util"
)

// Options configures a Run.
type Options struct {
	Source      string
	Destination string
	// Workers bounds the number of copies in flight. Zero means
	// runtime.NumCPU().
	Workers int
	Logger  Logger
	// Lock serialises runs that target the same destination.
	Lock bool
	// LockDir holds lock files. Empty means os.TempDir().
	LockDir string

	copyFile func(src, dst string) (int64, error)
}

func (o Options) withDefaults() Options {
	if o.Workers <= 0 {
		o.Workers = runtime.NumCPU()
	}
	if o.Logger == nil {
		o.Logger = nopLogger{}
	}
	if o.copyFile == nil {
		o.copyFile = util.CopyFile
	}
	return o
}

// Run sorts every regular file under opts.Source into extension buckets
// under opts.Destination.
//
// The returned error is non-nil only for fatal conditions: a missing or
// non-directory source, a failed scan, an unusable destination or a held
// lock. Nothing is written to the destination in those cases. Per-file
// failures are reported through the Report.
//
// Cancelling ctx stops the scan, dispatching and waiting; Run then returns the
// results gathered so far with Report.Interrupted set and a nil error.
// Copies already running are left to finish on their own.
func Run(ctx context.Context, opts Options) (*Report, error) {
	opts = opts.withDefaults()
	log := opts.Logger

	if err := checkSource(opts.Source); err != nil {
		log.Errorf("%v", err)
		return nil, err
	}

	report := &Report{
		RunID:       uuid.NewString(),
		Source:      opts.Source,
		Destination: opts.Destination,
		StartedAt:   time.Now(),
		Results:     []Result{},
	}
	defer func() { report.FinishedAt = time.Now() }()

	if ctx.Err() != nil {
		return interrupted(report, log), nil
	}

	if opts.Lock {
		fl, err := acquireLock(opts.LockDir, opts.Destination)
		if err != nil {
			log.Errorf("%v", err)
			return nil, err
		}
		defer fl.Unlock()
	}

	log.Infof("Starting the copying process from: %s to %s", opts.Source, opts.Destination)
	log.Debugf("run %s with %d workers", report.RunID, opts.Workers)

	has, err := util.HasEntries(opts.Source)
	if err != nil {
		err = fmt.Errorf("%w: %w", ErrScan, err)
		log.Errorf("%v", err)
		return nil, err
	}
	if ctx.Err() != nil {
		return interrupted(report, log), nil
	}
	if !has {
		if err := os.MkdirAll(opts.Destination, 0o755); err != nil {
			err = fmt.Errorf("%w: %w", ErrDestination, err)
			log.Errorf("%v", err)
			return nil, err
		}
		log.Infof("Source folder is empty. Created empty destination folder.")
		report.Empty = EmptyShallow
		return report, nil
	}

	files, err := Scan(ctx, opts.Source)
	if ctx.Err() != nil && errors.Is(err, ctx.Err()) {
		return interrupted(report, log), nil
	}
	if err != nil {
		log.Errorf("%v", err)
		return nil, err
	}
	report.Scanned = len(files)
	if len(files) == 0 {
		log.Warnf("The source folder is empty.")
		report.Empty = EmptyDeep
		return report, nil
	}

	copier := NewCopier(opts.Destination, log)
	copier.copyFile = opts.copyFile

	col := newCollector(len(files))
	finished := fanOut(ctx, files, copier, opts.Workers, col)
	report.Results = col.seal()

	if !finished {
		return interrupted(report, log), nil
	}
	log.Infof("Copying process completed.")
	return report, nil
}

// fanOut runs one copy task per file with at most workers in flight. Tasks
// never return an error, so the group never cancels siblings. It returns
// false when ctx was cancelled before every task finished.
func fanOut(ctx context.Context, files []FileEntry, c *Copier, workers int, col *collector) bool {
	done := make(chan struct{})
	go func() {
		defer close(done)
		var g errgroup.Group
		g.SetLimit(workers)
		for i, f := range files {
			if ctx.Err() != nil {
				break
			}
			g.Go(func() error {
				col.set(i, c.Copy(f))
				return nil
			})
		}
		_ = g.Wait()
	}()

	select {
	case <-done:
		return ctx.Err() == nil || allFilled(col)
	case <-ctx.Done():
		select {
		case <-done:
			return allFilled(col)
		default:
			return false
		}
	}
}

func interrupted(report *Report, log Logger) *Report {
	report.Interrupted = true
	log.Infof("Process interrupted by user.")
	return report
}

func allFilled(col *collector) bool {
	col.mu.Lock()
	defer col.mu.Unlock()
	for _, ok := range col.filled {
		if !ok {
			return false
		}
	}
	return true
}

func checkSource(src string) error {
	info, err := os.Stat(src)
	if errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("%w: %s", ErrSourceNotExist, src)
	}
	if err != nil {
		return fmt.Errorf("%w: %w", ErrScan, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%w: %s", ErrSourceNotDir, src)
	}
	return nil
}
