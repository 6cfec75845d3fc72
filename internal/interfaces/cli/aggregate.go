package cli

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"
)

func (r *runner) aggregateCommand() *cobra.Command {
	var (
		team   string
		dir    string
		name   string
		outDir string
	)

	cmd := &cobra.Command{
		Use:   "aggregate",
		Short: "Combine every season document in a directory into one CSV dataset",
		Args:  cobra.NoArgs,
		RunE: r.traced(func(cmd *cobra.Command, _ []string) error {
			if dir == "" {
				dir = r.app.Config().JSONDir
			}

			out, err := r.app.ExportService(team, "").AggregateToCSV(cmd.Context(), dir, name, outDir)
			for _, failure := range out.Failures {
				fmt.Fprintf(cmd.ErrOrStderr(), "skipped %s: %v\n", filepath.Base(failure.Path), failure.Err)
			}
			if err != nil {
				return err
			}

			printPaths(cmd.OutOrStdout(), out.Path)
			return nil
		}),
	}

	cmd.Flags().StringVar(&team, "team", "", "target team (default TARGET_TEAM)")
	cmd.Flags().StringVar(&dir, "dir", "", "directory holding season documents (default JSON_DIR)")
	cmd.Flags().StringVar(&name, "name", "combined", "dataset base name")
	cmd.Flags().StringVar(&outDir, "out-dir", "", "output directory (default EXPORT_DIR)")
	return cmd
}
