package ui

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/javiermolinar/festplan/internal/session"
)

func (a *App) locationCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "location",
		Aliases: []string{"locations", "loc"},
		Short:   "Manage the stages and rooms of the grid",
	}

	cmd.AddCommand(a.locationAddCmd())
	cmd.AddCommand(a.locationListCmd())
	cmd.AddCommand(a.locationRenameCmd())
	cmd.AddCommand(a.locationDeleteCmd())
	return cmd
}

func (a *App) locationAddCmd() *cobra.Command {
	var color string

	cmd := &cobra.Command{
		Use:   "add [name]",
		Short: "Add a location as the last grid column",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.ensureStore(); err != nil {
				return err
			}
			if _, exists := session.FindLocationByName(a.store.Locations(), args[0]); exists {
				return fmt.Errorf("location %q already exists", strings.TrimSpace(args[0]))
			}
			loc, err := session.NewLocation(args[0], color)
			if err != nil {
				return err
			}
			added, err := a.store.AddLocation(*loc)
			if err != nil {
				return fmt.Errorf("adding location: %w", err)
			}
			a.logger.Info("location added", "id", added.ID, "name", added.Name)

			fmt.Fprintf(cmd.OutOrStdout(), "Added location %s (%s)\n", added.Name, added.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&color, "color", "", "Column color as #rrggbb (default "+session.DefaultLocationColor+")")
	return cmd
}

func (a *App) locationListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List locations in column order",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.ensureStore(); err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			locations := a.store.Locations()
			if len(locations) == 0 {
				fmt.Fprintln(out, "No locations. Add one with: festplan location add <name>")
				return nil
			}

			sessions := a.store.Sessions()
			for i, loc := range locations {
				n := len(session.ForLocation(sessions, loc.ID))
				fmt.Fprintf(out, "  %d. %s  %s  %s\n",
					i+1,
					formatLocation(fmt.Sprintf("%-20s", loc.Name)),
					formatStats(fmt.Sprintf("%3d sessions", n)),
					formatMuted(loc.ID+" "+loc.Color))
			}
			return nil
		},
	}
}

func (a *App) locationRenameCmd() *cobra.Command {
	var color string

	cmd := &cobra.Command{
		Use:   "rename [id|name] [new-name]",
		Short: "Rename a location or change its color",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.ensureStore(); err != nil {
				return err
			}
			loc, err := a.resolveLocation(args[0])
			if err != nil {
				return err
			}
			oldName := loc.Name
			loc.Name = strings.TrimSpace(args[1])
			if color != "" {
				loc.Color = color
			}
			if err := a.store.UpdateLocation(loc); err != nil {
				return fmt.Errorf("updating location: %w", err)
			}
			a.logger.Info("location updated", "id", loc.ID, "name", loc.Name)

			fmt.Fprintf(cmd.OutOrStdout(), "Renamed %s to %s\n", oldName, loc.Name)
			return nil
		},
	}

	cmd.Flags().StringVar(&color, "color", "", "New column color as #rrggbb")
	return cmd
}

func (a *App) locationDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "delete [id|name]",
		Aliases: []string{"rm"},
		Short:   "Delete a location and all of its sessions",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.ensureStore(); err != nil {
				return err
			}
			loc, err := a.resolveLocation(args[0])
			if err != nil {
				return err
			}
			removed, err := a.store.DeleteLocation(loc.ID)
			if err != nil {
				return fmt.Errorf("deleting location: %w", err)
			}
			a.logger.Info("location deleted", "id", loc.ID, "sessions_removed", removed)

			fmt.Fprintf(cmd.OutOrStdout(), "Deleted location %s and %d sessions\n", loc.Name, removed)
			return nil
		},
	}
}
