package hooks

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"golang.org/x/sys/unix"

	"nbhooks/internal/badges"
	"nbhooks/internal/checks"
	"nbhooks/internal/findings"
	"nbhooks/internal/header"
	"nbhooks/internal/logging"
	"nbhooks/internal/notebook"
	"nbhooks/internal/repo"
)

const defaultLockTimeout = 10 * time.Second

// BadgeOptions configure CheckBadges.
type BadgeOptions struct {
	Root   repo.Root
	Repo   badges.Repo
	Order  checks.BadgeOrder
	Header header.Options
}

// NotebookOptions configure CheckNotebooks.
type NotebookOptions struct {
	StderrAllowPrefixes []string
}

// Runner executes hooks and prints one "{file}: {message}" line per failure.
type Runner struct {
	out         io.Writer
	logger      *slog.Logger
	lockDir     string
	lockTimeout time.Duration
}

// Option customizes a Runner.
type Option func(*Runner)

// WithLogger sets the diagnostic logger.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Runner) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// WithLockDir places per-notebook lock files in dir instead of os.TempDir.
func WithLockDir(dir string) Option {
	return func(r *Runner) { r.lockDir = dir }
}

// WithLockTimeout bounds how long a file waits for another hook process.
func WithLockTimeout(d time.Duration) Option {
	return func(r *Runner) {
		if d > 0 {
			r.lockTimeout = d
		}
	}
}

// NewRunner returns a Runner printing failures to out.
func NewRunner(out io.Writer, opts ...Option) *Runner {
	r := &Runner{
		out:         out,
		logger:      logging.NewNop(),
		lockTimeout: defaultLockTimeout,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// CheckBadges validates, and where needed repairs, the header of each file
// and then runs the badge suite against it.
func (r *Runner) CheckBadges(ctx context.Context, files []string, opts BadgeOptions) *Report {
	report := &Report{Files: make([]FileResult, 0, len(files))}
	for _, path := range files {
		result := r.checkBadgesFile(ctx, path, opts)
		r.print(result)
		report.Files = append(report.Files, result)
	}
	return report
}

func (r *Runner) checkBadgesFile(ctx context.Context, path string, opts BadgeOptions) FileResult {
	result := FileResult{Path: path}
	logger := logging.WithContext(logging.WithFile(ctx, path), r.logger)

	unlock, err := acquire(ctx, r.lockDir, path, r.lockTimeout)
	if err != nil {
		result.Header = HeaderFailed
		result.fail(findings.Wrap(findings.ErrRepair, "colab-header", "cannot lock notebook", err))
		return result
	}
	defer func() {
		if err := unlock(); err != nil {
			logger.Warn("release notebook lock", logging.Error(err))
		}
	}()

	nb, err := notebook.Load(path)
	if err != nil {
		result.fail(err)
		return result
	}

	headerResult, err := header.Check(nb, opts.Header)
	switch {
	case errors.Is(err, findings.ErrTooFewCells):
		// min-cells reports it below
		result.Header = HeaderFailed
	case err != nil:
		result.Header = HeaderFailed
		result.fail(err)
	case headerResult.Modified():
		if err := save(path, nb); err != nil {
			result.Header = HeaderFailed
			result.fail(err)
			break
		}
		result.Header = HeaderReformatted
		logger.Info("colab header repaired",
			slog.String(logging.FieldCheck, "colab-header"),
			slog.Bool("inserted", headerResult.Inserted),
			slog.Bool("rewritten", headerResult.Rewritten),
			slog.Bool("relocated", headerResult.Relocated),
			slog.String("version", headerResult.Version))
	default:
		result.Header = HeaderUnchanged
	}

	rel, err := opts.Root.RelativePath(path)
	if err != nil {
		result.fail(findings.Wrap(findings.ErrBadgeMismatch, "first-cell-badges", "cannot derive badge path", err))
		return result
	}
	suite := checks.BadgeSuite(checks.BadgeOptions{Path: rel, Repo: opts.Repo, Order: opts.Order})
	r.runSuite(logger, nb, suite, &result)
	return result
}

// save persists a repaired notebook. Failures here are repair failures, not
// content findings.
func save(path string, nb *notebook.Notebook) error {
	if err := unix.Access(path, unix.W_OK); err != nil {
		return findings.Wrap(findings.ErrRepair, "colab-header", "notebook is not writable", err)
	}
	if err := notebook.Save(path, nb); err != nil {
		return findings.Wrap(findings.ErrRepair, "colab-header", "cannot write repaired notebook", err)
	}
	return nil
}

// CheckNotebooks runs the execution and output suite over each file.
func (r *Runner) CheckNotebooks(ctx context.Context, files []string, opts NotebookOptions) *Report {
	report := &Report{Files: make([]FileResult, 0, len(files))}
	suite := checks.NotebookSuite(checks.NotebookOptions{StderrAllowPrefixes: opts.StderrAllowPrefixes})
	for _, path := range files {
		result := FileResult{Path: path}
		logger := logging.WithContext(logging.WithFile(ctx, path), r.logger)
		nb, err := notebook.Load(path)
		if err != nil {
			result.fail(err)
		} else {
			r.runSuite(logger, nb, suite, &result)
		}
		r.print(result)
		report.Files = append(report.Files, result)
	}
	return report
}

func (r *Runner) runSuite(logger *slog.Logger, nb *notebook.Notebook, suite []checks.Check, result *FileResult) {
	for _, check := range suite {
		err := check.Run(nb)
		if err == nil {
			logger.Debug("check passed", slog.String(logging.FieldCheck, check.Name))
			continue
		}
		logger.Debug("check failed",
			slog.String(logging.FieldCheck, check.Name),
			slog.Any("kind", findings.KindOf(err)))
		result.fail(err)
	}
}

func (r *Runner) print(result FileResult) {
	if r.out == nil {
		return
	}
	for _, err := range result.Failures {
		fmt.Fprintf(r.out, "%s: %v\n", result.Path, err)
	}
}
