package ui

import (
	"fmt"

	"github.com/spf13/cobra"
)

func (a *App) statsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show session counts per day and location",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.ensureStore(); err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "\n  %s\n\n", formatHeader(a.config.Festival.Name))
			PrintStats(out, a.config, ComputeStats(a.store.Sessions()), a.store.Locations())
			return nil
		},
	}
}
