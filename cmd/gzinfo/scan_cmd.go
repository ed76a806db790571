// cmd/gzinfo/scan_cmd.go
package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/creativeyann17/go-gzinfo/pkg/gzinfo"
	"github.com/creativeyann17/go-gzinfo/pkg/inspect"
)

func init() {
	rootCmd.AddCommand(scanCmd())
}

func scanCmd() *cobra.Command {
	var inputPaths []string
	var recursive bool
	var useGitignore bool
	var maxThreads int
	var computeDigest bool
	var list bool
	var verbose bool
	var quiet bool

	cmd := &cobra.Command{
		Use:   "scan",
		Short: "Inspect many gzip files in parallel",
		Long: `Inspect every file under the given inputs and report gzip metadata totals.

Directories are walked with --recursive; --gitignore honours .gitignore files
found under each walked directory. Gzip files sharing the same header, trailer
and size are reported as duplicates. Use --digest to also compute a sha256
digest of each gzip file's bytes.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			inputPaths = append(inputPaths, args...)

			opts := &inspect.Options{
				Paths:         inputPaths,
				Recursive:     recursive,
				UseGitignore:  useGitignore,
				MaxThreads:    maxThreads,
				ComputeDigest: computeDigest,
				Verbose:       verbose,
				Quiet:         quiet,
			}
			if opts.Verbose && !opts.Quiet {
				opts.Logger = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{
					Level: slog.LevelDebug,
				}))
			}

			if err := opts.Validate(); err != nil {
				return err
			}

			// Logging helper
			log := func(format string, args ...interface{}) {
				if !quiet {
					fmt.Fprintf(out, format+"\n", args...)
				}
			}

			log("Scanning %d input(s)...", len(opts.Paths))
			log("  Max threads: %d", opts.MaxThreads)
			if recursive {
				log("  Mode:        RECURSIVE")
			}
			if useGitignore {
				log("  Gitignore:   enabled")
			}
			if computeDigest {
				log("  Digest:      sha256")
			}
			log("")

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()

			var progressCb inspect.ProgressCallback
			waitProgress := func() {}
			if !quiet && !verbose {
				cb, progress := inspect.ProgressBarCallback(out)
				progressCb = cb
				waitProgress = progress.Wait
			}

			result, err := inspect.Inspect(ctx, opts, progressCb)
			// Restore default interrupt handling before blocking on the bar
			stop()
			waitProgress()
			if err != nil {
				return err
			}

			if list && !quiet {
				log("")
				printFileTable(out, result)
			}

			if !quiet {
				fmt.Fprintln(out)
				fmt.Fprint(out, result.Summary())
			}

			if !result.IsValid() {
				return fmt.Errorf("%d file(s) could not be inspected", len(result.Errors))
			}
			return nil
		},
	}

	cmd.Flags().StringSliceVarP(&inputPaths, "input", "i", nil, "Input file or directory (repeatable)")
	cmd.Flags().BoolVarP(&recursive, "recursive", "r", false, "Walk input directories")
	cmd.Flags().BoolVar(&useGitignore, "gitignore", false, "Skip files matched by .gitignore")
	cmd.Flags().IntVarP(&maxThreads, "threads", "t", 0, "Max concurrent files (default: NumCPU)")
	cmd.Flags().BoolVar(&computeDigest, "digest", false, "Compute a sha256 digest of each gzip file")
	cmd.Flags().BoolVarP(&list, "list", "l", false, "Print one line per gzip file")
	cmd.Flags().BoolVar(&verbose, "verbose", false, "Log every file (disables the progress bar)")
	cmd.Flags().BoolVar(&quiet, "quiet", false, "Minimal output (overrides verbose)")

	return cmd
}

// printFileTable writes one aligned line per decoded gzip file
func printFileTable(w io.Writer, result *inspect.Result) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "PATH\tOS\tMODIFIED\tCRC32\tSIZE\tORIGINAL\tFINGERPRINT")

	for _, rep := range result.Files {
		if !rep.IsGzip() {
			continue
		}
		h := rep.Info.Header()

		modified := "-"
		if h.HasModTime() {
			modified = h.LastModified().Format("2006-01-02 15:04:05")
		}

		fmt.Fprintf(tw, "%s\t%s\t%s\t%08x\t%s\t%s\t%s\n",
			rep.Path,
			h.OperatingSystem,
			modified,
			rep.Info.CRC32(),
			gzinfo.FormatSize(uint64(rep.Info.CompressedSize())),
			gzinfo.FormatSize(uint64(rep.Info.UncompressedSize())),
			rep.Fingerprint.Short(),
		)
	}

	tw.Flush()
}
