package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tartampluch/dunbar/internal/derive"
	"github.com/tartampluch/dunbar/internal/store"
)

func newEventCommand(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "event",
		Short: "Manage shared events",
	}
	cmd.AddCommand(
		newEventAddCommand(app),
		newEventUpdateCommand(app),
		newEventRemoveCommand(app),
		newEventListCommand(app),
	)
	return cmd
}

func newEventAddCommand(app *App) *cobra.Command {
	var date, notes, location string
	var with []string

	cmd := &cobra.Command{
		Use:   "add <title>",
		Short: "Record an event shared with one or more friends",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st := app.store.Snapshot()
			participants := make([]string, 0, len(with))
			for _, ref := range with {
				f, err := resolveFriend(st, ref)
				if err != nil {
					return err
				}
				participants = append(participants, f.ID)
			}
			if date == "" {
				date = timeDateYMD(app)
			}
			if notes == "" {
				notes = strings.Join(args, " ")
			}
			act := store.AddEvent{
				Date:         date,
				Title:        strings.Join(args, " "),
				Notes:        notes,
				Location:     location,
				Participants: participants,
			}
			if app.dispatch(act) {
				after := app.store.Snapshot()
				ev := after.Event(after.SelectedEventID)
				fmt.Fprintf(app.Out, "added event %s (%s) on %s with %d friend(s)\n",
					ev.Title, ev.ID, ev.Date, len(ev.Participants))
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&date, "date", "d", "", "event date YYYY-MM-DD (default today)")
	cmd.Flags().StringVarP(&notes, "notes", "n", "", "free-form notes, #hashtags become tags")
	cmd.Flags().StringVarP(&location, "location", "l", "", "where it happened")
	cmd.Flags().StringSliceVarP(&with, "with", "w", nil, "participant (repeatable, id or name)")
	_ = cmd.MarkFlagRequired("with")
	return cmd
}

func newEventUpdateCommand(app *App) *cobra.Command {
	var date, title, notes, location string
	var with []string

	cmd := &cobra.Command{
		Use:   "update <id|slug>",
		Short: "Patch an event's fields or participant list",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st := app.store.Snapshot()
			ev, err := resolveEvent(st, args[0])
			if err != nil {
				return err
			}
			var patch store.EventPatch
			if cmd.Flags().Changed("date") {
				patch.Date = &date
			}
			if cmd.Flags().Changed("title") {
				patch.Title = &title
			}
			if cmd.Flags().Changed("notes") {
				patch.Notes = &notes
			}
			if cmd.Flags().Changed("location") {
				patch.Location = &location
			}
			if cmd.Flags().Changed("with") {
				ids := make([]string, 0, len(with))
				for _, ref := range with {
					f, err := resolveFriend(st, ref)
					if err != nil {
						return err
					}
					ids = append(ids, f.ID)
				}
				patch.Participants = ids
			}
			if app.dispatch(store.UpdateEvent{ID: ev.ID, Patch: patch}) {
				fmt.Fprintf(app.Out, "updated event %s\n", ev.ID)
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&date, "date", "d", "", "new date YYYY-MM-DD")
	cmd.Flags().StringVarP(&title, "title", "t", "", "new title")
	cmd.Flags().StringVarP(&notes, "notes", "n", "", "new notes")
	cmd.Flags().StringVarP(&location, "location", "l", "", "new location")
	cmd.Flags().StringSliceVarP(&with, "with", "w", nil, "replacement participant list")
	return cmd
}

func newEventRemoveCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "remove <id|slug>",
		Short: "Remove an event from every participant",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ev, err := resolveEvent(app.store.Snapshot(), args[0])
			if err != nil {
				return err
			}
			if app.dispatch(store.RemoveEvent{ID: ev.ID}) {
				fmt.Fprintf(app.Out, "removed event %s\n", ev.ID)
			}
			return nil
		},
	}
}

func newEventListCommand(app *App) *cobra.Command {
	var friendRef string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List events newest first, grouped by day",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			st := app.store.Snapshot()
			var events []store.Event
			if friendRef != "" {
				f, err := resolveFriend(st, friendRef)
				if err != nil {
					return err
				}
				events = eventValues(st.EventsOf(f.ID))
			} else {
				for _, ie := range derive.EventIndex(st) {
					events = append(events, ie.Event)
				}
			}
			days, byDay := derive.GroupEventsByDay(derive.SortEventsDesc(events))
			for _, day := range days {
				fmt.Fprintln(app.Out, day)
				for _, ev := range byDay[day] {
					names := make([]string, 0, len(ev.Participants))
					for _, id := range ev.Participants {
						if f := st.Friend(id); f != nil {
							names = append(names, f.Name)
						}
					}
					fmt.Fprintf(app.Out, "  %s  %s", derive.EventSlug(ev.Title, ev.ID), ev.Title)
					if ev.Location != "" {
						fmt.Fprintf(app.Out, " @ %s", ev.Location)
					}
					if len(names) > 0 {
						fmt.Fprintf(app.Out, " (%s)", strings.Join(names, ", "))
					}
					fmt.Fprintln(app.Out)
				}
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&friendRef, "friend", "f", "", "only this friend's events")
	return cmd
}
