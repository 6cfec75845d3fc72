package cli

import (
	"github.com/spf13/cobra"
)

func (r *runner) convertCommand() *cobra.Command {
	var (
		team   string
		dir    string
		outDir string
	)

	cmd := &cobra.Command{
		Use:   "convert [file.json...]",
		Short: "Convert season documents into one CSV dataset each",
		RunE: r.traced(func(cmd *cobra.Command, args []string) error {
			svc := r.app.ExportService(team, outDir)

			var (
				written []string
				err     error
			)
			if len(args) > 0 {
				written, err = svc.ConvertAll(cmd.Context(), args)
			} else {
				if dir == "" {
					dir = r.app.Config().JSONDir
				}
				written, err = svc.ConvertDirectory(cmd.Context(), dir)
			}
			printPaths(cmd.OutOrStdout(), written...)
			return err
		}),
	}

	cmd.Flags().StringVar(&team, "team", "", "target team (default TARGET_TEAM)")
	cmd.Flags().StringVar(&dir, "dir", "", "directory scanned when no files are given (default JSON_DIR)")
	cmd.Flags().StringVar(&outDir, "out-dir", "", "dataset directory (default DATASET_DIR)")
	return cmd
}
