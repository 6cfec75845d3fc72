package cli

import (
	"github.com/spf13/cobra"
)

func (r *runner) summaryCommand() *cobra.Command {
	var (
		team   string
		name   string
		outDir string
	)

	cmd := &cobra.Command{
		Use:   "summary FILE",
		Short: "Write the id, datetime, team, xG and season columns of one document",
		Args:  cobra.ExactArgs(1),
		RunE: r.traced(func(cmd *cobra.Command, args []string) error {
			path, err := r.app.ExportService(team, "").SummaryToCSV(cmd.Context(), args[0], name, outDir)
			if err != nil {
				return err
			}
			printPaths(cmd.OutOrStdout(), path)
			return nil
		}),
	}

	cmd.Flags().StringVar(&team, "team", "", "target team (default TARGET_TEAM)")
	cmd.Flags().StringVar(&name, "name", "", "dataset base name (default: input file name)")
	cmd.Flags().StringVar(&outDir, "out-dir", "", "output directory (default EXPORT_DIR)")
	return cmd
}
