package ui

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/javiermolinar/festplan/internal/llm"
	"github.com/javiermolinar/festplan/internal/session"
)

func (a *App) reviewCmd() *cobra.Command {
	var (
		day       int
		modelFlag string
	)

	cmd := &cobra.Command{
		Use:   "review",
		Short: "Get an editorial review of a festival day",
		Long: `Send one festival day to the LLM and print its review: clashes,
idle stretches per location, the format mix and suggested changes.

Without --day every day that has sessions is reviewed.

Examples:
  festplan review --day=1
  festplan review --model=gpt-4o`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.ensureStore(); err != nil {
				return err
			}
			out := cmd.OutOrStdout()

			days := a.config.DayNumbers()
			if day > 0 {
				if err := a.checkDay(day); err != nil {
					return err
				}
				days = []int{day}
			}

			sessions := a.store.Sessions()
			counts := session.CountByDay(sessions)
			if day == 0 {
				withSessions := days[:0:0]
				for _, d := range days {
					if counts[d] > 0 {
						withSessions = append(withSessions, d)
					}
				}
				days = withSessions
			}
			if len(days) == 0 {
				fmt.Fprintln(out, "No sessions to review.")
				return nil
			}

			model := modelFlag
			if model == "" {
				model = a.config.LLM.Model
			}
			client, err := a.newClient(model)
			if err != nil {
				return fmt.Errorf("creating LLM client: %w", err)
			}
			reviewer := llm.NewReviewer(client)
			width := termWidth()

			for i, d := range days {
				if i > 0 {
					fmt.Fprintln(out)
				}
				label := a.config.DayLabel(d)
				fmt.Fprintf(out, "=== %s ===\n", formatHeader(label))

				a.logger.Info("reviewing", "day", d, "model", model)
				text, err := reviewer.ReviewDay(context.Background(), llm.ReviewRequest{
					DayLabel:  label,
					DayStart:  a.config.Grid.DayStart,
					DayEnd:    a.config.Grid.DayEnd,
					Sessions:  session.ForDay(sessions, d),
					Locations: a.store.Locations(),
				})
				if err != nil {
					return fmt.Errorf("reviewing %s: %w", label, err)
				}
				PrintInsightWrapped(out, text, width)
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&day, "day", 0, "Festival day to review (all days if not set)")
	cmd.Flags().StringVar(&modelFlag, "model", "", "LLM model to use (from config if not set)")
	return cmd
}
