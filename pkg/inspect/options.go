// pkg/inspect/options.go
package inspect

import (
	"log/slog"
	"runtime"
)

// Options configures a batch inspection
type Options struct {
	// Paths to inspect: gzip files, or directories when Recursive is set (required)
	Paths []string

	// Recursive walks directories and inspects every regular file found
	// Default: false
	Recursive bool

	// UseGitignore skips files matched by .gitignore files while walking
	// Only meaningful with Recursive
	UseGitignore bool

	// Maximum number of files read concurrently
	// 0 = runtime.NumCPU()
	MaxThreads int

	// ComputeDigest hashes each gzip file's compressed bytes (sha256).
	// This reads the whole file, so it is much slower than a metadata scan.
	ComputeDigest bool

	// Logger receives structured diagnostics. If nil, logs are discarded.
	Logger *slog.Logger

	// Verbose enables detailed output in front ends
	Verbose bool

	// Quiet suppresses all output except errors
	Quiet bool
}

// DefaultOptions returns options with sensible defaults
func DefaultOptions() *Options {
	return &Options{
		MaxThreads: runtime.NumCPU(),
		Logger:     slog.New(slog.DiscardHandler),
	}
}

// Validate checks the options and fills in defaults
func (o *Options) Validate() error {
	if len(o.Paths) == 0 {
		return ErrInputRequired
	}
	for _, p := range o.Paths {
		if p == "" {
			return ErrInputRequired
		}
	}
	if o.MaxThreads < 0 {
		return ErrInvalidThreads
	}
	if o.MaxThreads == 0 {
		o.MaxThreads = runtime.NumCPU()
	}
	if o.Logger == nil {
		o.Logger = slog.New(slog.DiscardHandler)
	}
	if o.Quiet {
		o.Verbose = false
	}
	return nil
}
