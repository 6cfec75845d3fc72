package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func (r *runner) fetchCommand() *cobra.Command {
	var (
		season int
		to     int
		team   string
		dir    string
	)

	cmd := &cobra.Command{
		Use:   "fetch",
		Short: "Download one season (or a range) of team results as JSON",
		Args:  cobra.NoArgs,
		RunE: r.traced(func(cmd *cobra.Command, _ []string) error {
			if team == "" {
				team = r.app.Config().TargetTeam
			}
			svc := r.app.FetchService(dir)

			if to == 0 || to == season {
				path, err := svc.FetchSeason(cmd.Context(), team, season)
				if err != nil {
					return err
				}
				printPaths(cmd.OutOrStdout(), path)
				return nil
			}

			results, err := svc.FetchSeasons(cmd.Context(), team, season, to)
			for _, result := range results {
				if result.Err == nil {
					printPaths(cmd.OutOrStdout(), result.Path)
				}
			}
			return err
		}),
	}

	cmd.Flags().IntVar(&season, "season", 0, "season start year, e.g. 2021 for 2021-2022")
	cmd.Flags().IntVar(&to, "to", 0, "last season start year when fetching a range")
	cmd.Flags().StringVar(&team, "team", "", "team name as shown on Understat (default TARGET_TEAM)")
	cmd.Flags().StringVar(&dir, "dir", "", "output directory for season documents (default JSON_DIR)")
	_ = cmd.MarkFlagRequired("season")

	cmd.PreRunE = func(*cobra.Command, []string) error {
		if to != 0 && to < season {
			return fmt.Errorf("--to %d is before --season %d", to, season)
		}
		return nil
	}
	return cmd
}
