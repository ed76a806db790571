// pkg/inspect/inspect.go
package inspect

import (
	"context"
	_ "crypto/sha256"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/opencontainers/go-digest"
	"golang.org/x/sync/errgroup"

	"github.com/creativeyann17/go-gzinfo/internal/dupindex"
	"github.com/creativeyann17/go-gzinfo/internal/fingerprint"
	"github.com/creativeyann17/go-gzinfo/internal/format"
	"github.com/creativeyann17/go-gzinfo/pkg/gzinfo"
)

// ProgressCallback is called for progress updates during inspection.
// Calls are serialized, so the callback does not need its own locking.
type ProgressCallback func(event ProgressEvent)

// ProgressEvent contains progress information
type ProgressEvent struct {
	Type     EventType
	FilePath string
	Current  int
	Total    int
	Format   format.ArchiveFormat
	Err      error
}

// EventType indicates the type of progress event
type EventType int

const (
	EventStart EventType = iota
	EventFileInspect
	EventError
	EventComplete
	EventCancelled // inspection stopped before completing; Err holds the cause
)

// Inspect reads the gzip metadata of every file named by opts and returns
// per-file reports plus totals. Failures on individual files are collected
// in the result; the returned error is reserved for invalid options and
// cancellation.
func Inspect(ctx context.Context, opts *Options, progressCb ProgressCallback) (*Result, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	logger := opts.Logger

	reports, err := collectFiles(opts)
	if err != nil {
		return nil, fmt.Errorf("collect files: %w", err)
	}

	logger.Info("inspection started",
		slog.Int("files", len(reports)),
		slog.Int("threads", opts.MaxThreads))

	var cbMu sync.Mutex
	done := 0
	emit := func(event ProgressEvent) {
		if progressCb == nil {
			return
		}
		cbMu.Lock()
		defer cbMu.Unlock()
		if event.Type == EventFileInspect || event.Type == EventError {
			done++
			event.Current = done
		}
		event.Total = len(reports)
		progressCb(event)
	}

	emit(ProgressEvent{Type: EventStart})

	// Every start is matched by EventComplete or EventCancelled
	completed := false
	defer func() {
		if !completed {
			emit(ProgressEvent{Type: EventCancelled, Err: context.Cause(ctx)})
		}
	}()

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(opts.MaxThreads)

	for i := range reports {
		if reports[i].Err != nil {
			emit(ProgressEvent{Type: EventError, FilePath: reports[i].Path, Err: reports[i].Err})
			continue
		}
		if gctx.Err() != nil {
			break
		}

		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}

			rep := &reports[i]
			inspectFile(rep, opts.ComputeDigest)

			if rep.Err != nil {
				logger.Debug("file not inspected",
					slog.String("path", rep.Path),
					slog.Any("error", rep.Err))
				emit(ProgressEvent{Type: EventError, FilePath: rep.Path, Format: rep.Format, Err: rep.Err})
			} else {
				logger.Debug("file inspected",
					slog.String("path", rep.Path),
					slog.String("fingerprint", rep.Fingerprint.Short()))
				emit(ProgressEvent{Type: EventFileInspect, FilePath: rep.Path, Format: rep.Format})
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	// A cancellation that raced the last scheduled file leaves no worker error
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	result := summarize(reports)

	logger.Info("inspection complete",
		slog.Int("gzip", result.GzipFiles),
		slog.Int("other", result.NonGzipFiles),
		slog.Int("failed", result.FailedFiles),
		slog.Int("duplicates", result.DuplicateFiles))

	completed = true
	emit(ProgressEvent{Type: EventComplete, Current: len(reports)})

	return result, nil
}

// inspectFile fills rep from the file at rep.Path
func inspectFile(rep *FileReport, computeDigest bool) {
	r, err := gzinfo.Open(rep.Path)
	if err != nil {
		var fe *gzinfo.FormatError
		if errors.As(err, &fe) {
			rep.Format = format.DetectFormat(fe.Magic)
		}
		rep.Err = err
		return
	}

	rep.Format = format.FormatGzip
	rep.Info = r
	rep.Fingerprint = fingerprint.Of(r.HeaderBytes(), r.FooterBytes())

	if computeDigest {
		d, err := digestFile(rep.Path)
		if err != nil {
			rep.Err = fmt.Errorf("digest %s: %w", rep.Path, err)
			return
		}
		rep.Digest = d
	}
}

// digestFile hashes the compressed bytes of path
func digestFile(path string) (digest.Digest, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	return digest.Canonical.FromReader(f)
}

// summarize sorts the reports, marks duplicates and computes totals
func summarize(reports []FileReport) *Result {
	sort.Slice(reports, func(i, j int) bool {
		return reports[i].Path < reports[j].Path
	})

	result := &Result{
		Files:      reports,
		FilesTotal: len(reports),
	}
	index := dupindex.New()

	for i := range reports {
		rep := &reports[i]

		var fe *gzinfo.FormatError
		switch {
		case rep.Info == nil && errors.As(rep.Err, &fe):
			result.NonGzipFiles++
			continue
		case rep.Info == nil:
			result.FailedFiles++
			result.Errors = append(result.Errors, rep.Err)
			continue
		case rep.Err != nil:
			// decoded, but a later step (digest) failed
			result.Errors = append(result.Errors, rep.Err)
		}

		result.GzipFiles++
		result.CompressedSize += uint64(rep.Info.CompressedSize())
		result.UncompressedSize += uint64(rep.Info.UncompressedSize())

		key := dupindex.Key{Fingerprint: rep.Fingerprint, Size: rep.Info.CompressedSize()}
		if first, isNew := index.GetOrAdd(key, rep.Path); !isNew {
			rep.DuplicateOf = first
		}
	}

	stats := index.Stats()
	result.DuplicateFiles = int(stats.Duplicates)
	result.UniqueFiles = int(stats.Unique)
	result.DuplicateBytes = stats.BytesDuplicated
	result.DuplicateRatio = stats.DuplicateRatio()

	return result
}

// collectFiles expands opts.Paths into one report per file to inspect.
// Paths that cannot be expanded get a report carrying the error.
func collectFiles(opts *Options) ([]FileReport, error) {
	var reports []FileReport
	seen := make(map[string]bool)

	add := func(path string, err error) {
		clean := filepath.Clean(path)
		if seen[clean] {
			return
		}
		seen[clean] = true
		reports = append(reports, FileReport{Path: clean, Err: err})
	}

	for _, input := range opts.Paths {
		info, err := os.Stat(input)
		if err != nil || !info.IsDir() {
			// Let gzinfo.Open report missing and special files
			add(input, nil)
			continue
		}

		if !opts.Recursive {
			add(input, fmt.Errorf("%s: %w", input, ErrIsDirectory))
			continue
		}

		if err := walkDir(input, opts, add); err != nil {
			return nil, err
		}
	}

	return reports, nil
}

// walkDir adds every regular file below root, honouring .gitignore when asked
func walkDir(root string, opts *Options, add func(string, error)) error {
	var rules *ignoreRules
	if opts.UseGitignore {
		var err error
		if rules, err = loadIgnoreRules(root); err != nil {
			return fmt.Errorf("load gitignore rules: %w", err)
		}
	}

	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			add(path, err)
			return nil
		}

		rel, relErr := filepath.Rel(root, path)
		if relErr != nil || rel == "." {
			return nil
		}

		if d.IsDir() {
			if rules.IgnoredDir(rel) {
				opts.Logger.Debug("directory ignored", slog.String("path", path))
				return filepath.SkipDir
			}
			return nil
		}
		if !d.Type().IsRegular() {
			return nil
		}
		if d.Name() == ".gitignore" && opts.UseGitignore {
			return nil
		}
		if rules.Ignored(rel) {
			opts.Logger.Debug("file ignored", slog.String("path", path))
			return nil
		}

		add(path, nil)
		return nil
	})
}
