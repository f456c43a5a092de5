package cli

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/tgienger/taskboard/internal/export"
)

func newExportCmd(o *options) *cobra.Command {
	var format, scope, output string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the board as JSON, CSV or a text report",
		Long: `Export writes projects and tasks to a file.

Without --output the file name is derived from the format and the date.
Use --output - to write to stdout.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := export.ParseFormat(format)
			if err != nil {
				return err
			}
			s, err := export.ParseScope(scope)
			if err != nil {
				return err
			}

			rt, err := o.open()
			if err != nil {
				return err
			}
			defer rt.Close()

			now := time.Now()
			path := output
			if path == "" {
				path = export.Filename(f, s, now)
			}
			if path == "-" {
				return export.Write(cmd.OutOrStdout(), rt.store.State(), f, s, now)
			}
			if err := writeFile(path, func(w io.Writer) error {
				return export.Write(w, rt.store.State(), f, s, now)
			}); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Exported %s to %s\n", s, path)
			return nil
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", string(export.FormatJSON), "json, csv or txt")
	cmd.Flags().StringVarP(&scope, "scope", "s", string(export.ScopeAll), "all, tasks, projects or completed")
	cmd.Flags().StringVarP(&output, "output", "o", "", `output file, "-" for stdout`)
	return cmd
}

func writeFile(path string, write func(io.Writer) error) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()
	return write(f)
}
