package ui

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/javiermolinar/festplan/internal/drafter"
	"github.com/javiermolinar/festplan/internal/llm"
)

func (a *App) planCmd() *cobra.Command {
	var (
		modelFlag  string
		dryRun     bool
		maxRetries int
	)

	cmd := &cobra.Command{
		Use:   "plan [description]",
		Short: "Draft sessions from natural language input",
		Long: `Use an LLM to turn a description of the program into sessions.

The draft is checked against the festival days, the grid hours and the
known locations. Invalid drafts are sent back with the errors until they
pass or the retries run out. Overlaps at one location are allowed and
listed as clashes.

Examples:
  festplan plan "Opening keynote on day 1 at 10:00 on the Hauptbühne"
  festplan plan "Three 45 minute workshops on day 2 afternoon" --dry-run

Interactive mode:
  After the draft is shown, you can:
  - [a]ccept: Add the sessions to the program
  - [m]odify: Describe what to change
  - [c]ancel: Exit without saving`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.ensureStore(); err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			input := strings.Join(args, " ")

			// Use config default for model if not overridden
			model := modelFlag
			if model == "" {
				model = a.config.LLM.Model
			}
			client, err := a.newClient(model)
			if err != nil {
				return fmt.Errorf("creating LLM client: %w", err)
			}

			d := drafter.New(client, a.config, a.store)
			ctx := context.Background()

			fmt.Fprintln(out, "Drafting sessions...")
			a.logger.Info("drafting", "model", model, "input", input)
			result, err := d.DraftWithRetry(ctx, input, maxRetries)
			if err != nil {
				return fmt.Errorf("drafting: %w", err)
			}

			reader := bufio.NewReader(cmd.InOrStdin())
			for {
				a.displayDraft(out, result)

				if dryRun {
					fmt.Fprintln(out, "\n(Dry run - sessions not saved)")
					return nil
				}

				fmt.Fprint(out, "\n[a]ccept / [m]odify / [c]ancel: ")
				choice, err := reader.ReadString('\n')
				if err != nil && choice == "" {
					return fmt.Errorf("reading input: %w", err)
				}
				choice = strings.TrimSpace(strings.ToLower(choice))

				switch choice {
				case "a", "accept":
					if result.HasValidationErrors() {
						fmt.Fprintln(out, "Cannot save: there are unresolved validation errors.")
						fmt.Fprintln(out, "Please [m]odify the draft or [c]ancel.")
						continue
					}
					saved, err := d.Save(ctx, result)
					if err != nil {
						return fmt.Errorf("saving sessions: %w", err)
					}
					a.logger.Info("draft saved", "sessions", len(saved))
					fmt.Fprintf(out, "\n%d sessions added to the program\n", len(saved))
					return nil

				case "m", "modify":
					fmt.Fprint(out, "What would you like to change? ")
					feedback, err := reader.ReadString('\n')
					if err != nil && feedback == "" {
						return fmt.Errorf("reading input: %w", err)
					}
					feedback = strings.TrimSpace(feedback)
					if feedback == "" {
						fmt.Fprintln(out, "No change given, showing current draft...")
						continue
					}

					fmt.Fprintln(out, "\nRedrafting...")
					result, err = d.Continue(ctx, feedback, maxRetries)
					if err != nil {
						return fmt.Errorf("redrafting: %w", err)
					}

				case "c", "cancel":
					fmt.Fprintln(out, "Draft cancelled.")
					return nil

				default:
					fmt.Fprintln(out, "Invalid choice. Please enter 'a', 'm', or 'c'.")
				}
			}
		},
	}

	cmd.Flags().StringVar(&modelFlag, "model", "", "LLM model to use (from config if not set)")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Show drafted sessions without saving")
	cmd.Flags().IntVar(&maxRetries, "retries", drafter.DefaultMaxRetries, "Correction rounds for an invalid draft")

	return cmd
}

// displayDraft shows the drafted sessions grouped by day.
func (a *App) displayDraft(out io.Writer, result *drafter.Result) {
	fmt.Fprintln(out)

	if len(result.Warnings) > 0 {
		fmt.Fprintln(out, "Warnings:")
		for _, w := range result.Warnings {
			fmt.Fprintf(out, "  ! %s\n", formatInsight(w))
		}
		fmt.Fprintln(out)
	}

	if len(result.Sessions) == 0 {
		fmt.Fprintln(out, "No sessions proposed.")
	} else {
		groups, days := result.ByDay()
		for _, day := range days {
			fmt.Fprintf(out, "%s:\n", formatHeader(a.config.DayLabel(day)))
			fmt.Fprintln(out, strings.Repeat("-", 60))
			displayDrafted(out, groups[day])
			fmt.Fprintln(out)
		}
		fmt.Fprintln(out, strings.Repeat("-", 60))
		fmt.Fprintf(out, "Total: %d sessions", len(result.Sessions))
		if len(days) > 1 {
			fmt.Fprintf(out, " across %d days", len(days))
		}
		fmt.Fprintln(out)
	}

	if len(result.Clashes) > 0 {
		fmt.Fprintln(out, "\nClashes:")
		for _, c := range result.Clashes {
			fmt.Fprintf(out, "  ~ %s\n", formatWarn(c))
		}
	}

	if result.HasValidationErrors() {
		fmt.Fprintln(out, "\nValidation errors (retry limit reached):")
		for _, ve := range result.ValidationErrors {
			fmt.Fprintf(out, "  - %s\n", ve.String())
		}
	}
}

func displayDrafted(out io.Writer, sessions []llm.DraftedSession) {
	for _, s := range sessions {
		fmt.Fprintf(out, "  %s-%s  %-18s  %s",
			s.StartTime, s.EndTime, s.Location, formatTitle(s.Title))
		if s.Format != "" {
			fmt.Fprintf(out, " [%s]", s.Format)
		}
		fmt.Fprintln(out)
		if s.Speakers != "" {
			fmt.Fprintf(out, "               %s\n", formatMuted("with "+s.Speakers))
		}
	}
}
