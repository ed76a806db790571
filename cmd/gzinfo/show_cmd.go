// cmd/gzinfo/show_cmd.go
package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/creativeyann17/go-gzinfo/pkg/gzinfo"
)

func init() {
	rootCmd.AddCommand(showCmd())
}

func showCmd() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "show FILE...",
		Short: "Show the metadata of gzip files",
		Long: `Show the header and trailer metadata of one or more gzip files.

Only the first 10 and last 8 bytes of each file are read; nothing is
decompressed. Files that cannot be read are reported on stderr and make
the command exit non-zero.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			readers := make([]*gzinfo.Reader, 0, len(args))
			failed := 0

			for _, path := range args {
				r, err := gzinfo.Open(path)
				if err != nil {
					fmt.Fprintf(cmd.ErrOrStderr(), "Error: %v\n", err)
					failed++
					continue
				}
				readers = append(readers, r)
			}

			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				if err := enc.Encode(readers); err != nil {
					return fmt.Errorf("encode json: %w", err)
				}
			} else {
				for i, r := range readers {
					if i > 0 {
						fmt.Fprintln(out)
					}
					fmt.Fprint(out, r.Summary())
				}
			}

			if failed > 0 {
				return fmt.Errorf("%d of %d files could not be read", failed, len(args))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Print metadata as JSON")

	return cmd
}
