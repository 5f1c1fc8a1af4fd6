package ui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/javiermolinar/festplan/internal/scheduler"
	"github.com/javiermolinar/festplan/internal/session"
)

func (a *App) sessionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "session",
		Aliases: []string{"sessions", "s"},
		Short:   "Add, list, edit, move and delete sessions",
	}

	cmd.AddCommand(a.sessionAddCmd())
	cmd.AddCommand(a.sessionListCmd())
	cmd.AddCommand(a.sessionShowCmd())
	cmd.AddCommand(a.sessionEditCmd())
	cmd.AddCommand(a.sessionMoveCmd())
	cmd.AddCommand(a.sessionDeleteCmd())
	return cmd
}

// sessionFields are the optional flags shared by add and edit.
type sessionFields struct {
	speakers    string
	format      string
	language    string
	description string
	tracks      string
}

func (f *sessionFields) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.speakers, "speakers", "", "Speakers, comma separated")
	cmd.Flags().StringVar(&f.format, "format", "", "Format: "+strings.Join(session.Formats, ", "))
	cmd.Flags().StringVar(&f.language, "language", "", "Language: "+strings.Join(session.Languages, ", "))
	cmd.Flags().StringVar(&f.description, "description", "", "Longer description")
	cmd.Flags().StringVar(&f.tracks, "tracks", "", "Tracks or topics")
}

// apply copies the flags that were set on the command line.
func (f *sessionFields) apply(cmd *cobra.Command, s *session.Session) {
	if cmd.Flags().Changed("speakers") {
		s.Speakers = strings.TrimSpace(f.speakers)
	}
	if cmd.Flags().Changed("format") {
		s.Format = f.format
	}
	if cmd.Flags().Changed("language") {
		s.Language = f.language
	}
	if cmd.Flags().Changed("description") {
		s.Description = f.description
	}
	if cmd.Flags().Changed("tracks") {
		s.Tracks = f.tracks
	}
}

// resolveDuration returns the length in minutes from --duration or --end.
func resolveDuration(start, end string, duration int) (int, error) {
	if end == "" {
		return duration, nil
	}
	startMin, err := session.ParseTime(start)
	if err != nil {
		return 0, fmt.Errorf("start: %w", err)
	}
	endMin, err := session.ParseTime(end)
	if err != nil {
		return 0, fmt.Errorf("end: %w", err)
	}
	if endMin <= startMin {
		return 0, session.ErrEndBeforeStart
	}
	return endMin - startMin, nil
}

func (a *App) resolveLocation(ref string) (session.Location, error) {
	loc, ok := session.ResolveLocation(a.store.Locations(), ref)
	if !ok {
		return session.Location{}, fmt.Errorf("%w: %q", session.ErrLocationNotFound, ref)
	}
	return loc, nil
}

func (a *App) newScheduler() *scheduler.Scheduler {
	return scheduler.New(a.config.DayNumbers(), a.config.Grid.DayStart, a.config.Grid.DayEnd, a.config.Grid.Zoom)
}

func (a *App) checkDay(day int) error {
	if !a.config.IsFestivalDay(day) {
		return fmt.Errorf("day %d is not a festival day (days: %v)", day, a.config.DayNumbers())
	}
	return nil
}

func (a *App) sessionAddCmd() *cobra.Command {
	var (
		day      int
		location string
		start    string
		end      string
		duration int
		fields   sessionFields
	)

	cmd := &cobra.Command{
		Use:   "add [title]",
		Short: "Add a session",
		Long: `Add a session to the program.

The end time is derived from --duration, or given directly with --end.
Without --start the session goes into the first free slot at the location.
The location may be given by id or by name.

Example:
  festplan session add "Opening Keynote" --day=1 --location=Hauptbühne --start=10:00 --duration=90`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.ensureStore(); err != nil {
				return err
			}
			if err := a.checkDay(day); err != nil {
				return err
			}
			loc, err := a.resolveLocation(location)
			if err != nil {
				return err
			}
			if start == "" && end != "" {
				return fmt.Errorf("--end needs --start")
			}
			minutes, err := resolveDuration(start, end, duration)
			if err != nil {
				return err
			}

			sched := a.newScheduler()
			if start == "" {
				free, ok := sched.NextFree(a.store.Sessions(), day, loc.ID, "", minutes)
				if !ok {
					return fmt.Errorf("no free %s slot at %s on %s",
						session.FormatDuration(minutes), loc.Name, a.config.DayLabel(day))
				}
				start = free.Start
			}

			s, err := session.New(args[0], loc.ID, day, start, minutes)
			if err != nil {
				return err
			}
			fields.apply(cmd, s)

			added, err := a.store.AddSession(*s)
			if err != nil {
				return fmt.Errorf("adding session: %w", err)
			}
			a.logger.Info("session added", "id", added.ID, "day", added.Day, "location", loc.ID)

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Added %s: %s, %s %s-%s at %s\n",
				added.ID, added.Title, a.config.DayLabel(added.Day),
				added.StartTime, added.EndTime, loc.Name)
			if msg := sched.ValidateSlot(added.Day, added.StartTime, added.EndTime); msg != "" {
				fmt.Fprintf(out, "%s %s\n", formatWarn("Note:"), msg)
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&day, "day", 1, "Festival day number")
	cmd.Flags().StringVar(&location, "location", "", "Location id or name (required)")
	cmd.Flags().StringVar(&start, "start", "", "Start time (HH:MM), first free slot if not set")
	cmd.Flags().StringVar(&end, "end", "", "End time (HH:MM), instead of --duration")
	cmd.Flags().IntVar(&duration, "duration", 60, "Duration in minutes")
	fields.register(cmd)

	_ = cmd.MarkFlagRequired("location")
	cmd.MarkFlagsMutuallyExclusive("end", "duration")

	return cmd
}

func (a *App) sessionListCmd() *cobra.Command {
	var (
		day      int
		location string
		verbose  bool
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List sessions by start time",
		Long: `List sessions grouped by day and sorted by start time.

Sessions that overlap another one at the same location are marked with
their column, e.g. 1/2.`,
		Example: `  festplan session list
  festplan session list --day=2
  festplan session list --location=Hauptbühne -v`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.ensureStore(); err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			all := a.store.Sessions()
			locations := a.store.Locations()

			sessions := all
			if location != "" {
				loc, err := a.resolveLocation(location)
				if err != nil {
					return err
				}
				sessions = session.ForLocation(sessions, loc.ID)
			}

			days := a.config.DayNumbers()
			if day > 0 {
				if err := a.checkDay(day); err != nil {
					return err
				}
				days = []int{day}
			}

			printed := 0
			for _, d := range days {
				daySessions := session.SortByStart(session.ForDay(sessions, d))
				if len(daySessions) == 0 {
					continue
				}
				if printed > 0 {
					fmt.Fprintln(out)
				}
				fmt.Fprintf(out, "=== %s ===\n", formatHeader(a.config.DayLabel(d)))
				for _, s := range daySessions {
					PrintSessionRow(out, a.config, s, all, locations, PrintOpts{Verbose: verbose})
				}
				printed += len(daySessions)
			}

			if printed == 0 {
				fmt.Fprintln(out, "No sessions found.")
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&day, "day", 0, "Only this festival day")
	cmd.Flags().StringVar(&location, "location", "", "Only this location (id or name)")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Show full titles, speakers and descriptions")
	return cmd
}

func (a *App) sessionShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show [session-id]",
		Short: "Show one session",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.ensureStore(); err != nil {
				return err
			}
			s, err := a.store.Session(args[0])
			if err != nil {
				return err
			}
			PrintSessionDetail(cmd.OutOrStdout(), a.config, s, a.store.Sessions(), a.store.Locations())
			return nil
		},
	}
}

func (a *App) sessionEditCmd() *cobra.Command {
	var (
		title    string
		day      int
		location string
		start    string
		end      string
		duration int
		fields   sessionFields
	)

	cmd := &cobra.Command{
		Use:   "edit [session-id]",
		Short: "Change fields of a session",
		Long: `Change fields of a session. Only the given flags are changed.

Changing --start keeps the duration unless --end or --duration is given.

Example:
  festplan session edit session-1a2b --title="Closing Panel" --duration=45`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.ensureStore(); err != nil {
				return err
			}
			s, err := a.store.Session(args[0])
			if err != nil {
				return err
			}
			flags := cmd.Flags()

			if flags.Changed("title") {
				s.Title = strings.TrimSpace(title)
			}
			if flags.Changed("day") {
				if err := a.checkDay(day); err != nil {
					return err
				}
				s.Day = day
			}
			if flags.Changed("location") {
				loc, err := a.resolveLocation(location)
				if err != nil {
					return err
				}
				s.LocationID = loc.ID
			}

			minutes := s.Duration()
			if flags.Changed("start") {
				s.StartTime = start
			}
			if flags.Changed("duration") {
				minutes = duration
			}
			if flags.Changed("end") {
				if minutes, err = resolveDuration(s.StartTime, end, 0); err != nil {
					return err
				}
			}
			startMin, err := session.ParseTime(s.StartTime)
			if err != nil {
				return fmt.Errorf("start: %w", err)
			}
			if minutes <= 0 {
				return session.ErrInvalidDuration
			}
			if startMin+minutes >= 24*60 {
				return fmt.Errorf("session would end after midnight: %w", session.ErrEndBeforeStart)
			}
			s.EndTime = session.MinutesToTime(startMin + minutes)
			fields.apply(cmd, &s)

			if err := a.store.UpdateSession(s); err != nil {
				return fmt.Errorf("updating session: %w", err)
			}
			a.logger.Info("session updated", "id", s.ID)

			fmt.Fprintf(cmd.OutOrStdout(), "Updated %s: %s, %s %s-%s\n",
				s.ID, s.Title, a.config.DayLabel(s.Day), s.StartTime, s.EndTime)
			return nil
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "New title")
	cmd.Flags().IntVar(&day, "day", 0, "New festival day")
	cmd.Flags().StringVar(&location, "location", "", "New location (id or name)")
	cmd.Flags().StringVar(&start, "start", "", "New start time (HH:MM)")
	cmd.Flags().StringVar(&end, "end", "", "New end time (HH:MM)")
	cmd.Flags().IntVar(&duration, "duration", 0, "New duration in minutes")
	fields.register(cmd)
	cmd.MarkFlagsMutuallyExclusive("end", "duration")

	return cmd
}

func (a *App) sessionMoveCmd() *cobra.Command {
	var (
		location string
		start    string
	)

	cmd := &cobra.Command{
		Use:   "move [session-id]",
		Short: "Move a session to another location or time",
		Long: `Move a session on its day, the same way as dragging it in the grid.

The duration is kept. Other sessions are left where they are, even if
they now overlap the moved one.

Example:
  festplan session move session-1a2b --location="Workshop-Raum 1" --start=14:00`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.ensureStore(); err != nil {
				return err
			}
			s, err := a.store.Session(args[0])
			if err != nil {
				return err
			}

			locationID := s.LocationID
			if location != "" {
				loc, err := a.resolveLocation(location)
				if err != nil {
					return err
				}
				locationID = loc.ID
			}
			if start == "" {
				start = s.StartTime
			}
			if !session.IsValidTime(start) {
				return fmt.Errorf("start: %w", session.ErrInvalidTimeFormat)
			}
			if session.TimeToMinutes(start)+s.Duration() >= 24*60 {
				return fmt.Errorf("session would end after midnight: %w", session.ErrEndBeforeStart)
			}

			moved, ok := a.store.Reschedule(s.ID, locationID, start)
			if !ok {
				return errors.New("session could not be moved")
			}
			a.logger.Info("session moved", "id", moved.ID, "location", moved.LocationID, "start", moved.StartTime)

			fmt.Fprintf(cmd.OutOrStdout(), "Moved %s to %s %s-%s\n",
				moved.Title, session.LocationName(a.store.Locations(), moved.LocationID),
				moved.StartTime, moved.EndTime)
			return nil
		},
	}

	cmd.Flags().StringVar(&location, "location", "", "Target location (id or name)")
	cmd.Flags().StringVar(&start, "start", "", "Target start time (HH:MM)")
	cmd.MarkFlagsOneRequired("location", "start")

	return cmd
}

func (a *App) sessionDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "delete [session-id]",
		Aliases: []string{"rm"},
		Short:   "Delete a session",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.ensureStore(); err != nil {
				return err
			}
			s, err := a.store.Session(args[0])
			if err != nil {
				return err
			}
			if err := a.store.DeleteSession(s.ID); err != nil {
				return fmt.Errorf("deleting session: %w", err)
			}
			a.logger.Info("session deleted", "id", s.ID)

			fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s: %s\n", s.ID, s.Title)
			return nil
		},
	}
}
