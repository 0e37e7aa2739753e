package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tartampluch/dunbar/internal/derive"
	"github.com/tartampluch/dunbar/internal/store"
)

func newFriendCommand(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "friend",
		Short: "Manage friends and their relationships",
	}
	cmd.AddCommand(
		newFriendAddCommand(app),
		newFriendRemoveCommand(app),
		newFriendRenameCommand(app),
		newFriendBirthdayCommand(app),
		newFriendNoteCommand(app),
		newFriendLinkCommand(app),
		newFriendListCommand(app),
		newFriendShowCommand(app),
		newFriendProfileCommand(app),
		newFriendDateCommand(app),
		newFriendGiftCommand(app),
		newFriendPostcardCommand(app),
	)
	return cmd
}

func newFriendAddCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "add <name>",
		Short: "Add a friend",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := strings.Join(args, " ")
			if !app.dispatch(store.AddFriend{Name: name}) {
				return nil
			}
			st := app.store.Snapshot()
			f := st.Friends[len(st.Friends)-1]
			fmt.Fprintf(app.Out, "added %s (%s)\n", f.Name, f.ID)
			return nil
		},
	}
}

func newFriendRemoveCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "remove <id|name>",
		Short: "Remove a friend; solo events go with them, shared ones stay",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := resolveFriend(app.store.Snapshot(), args[0])
			if err != nil {
				return err
			}
			if app.dispatch(store.RemoveFriend{ID: f.ID}) {
				fmt.Fprintf(app.Out, "removed %s\n", f.Name)
			}
			return nil
		},
	}
}

func newFriendRenameCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "rename <id|name> <new name>",
		Short: "Rename a friend",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := resolveFriend(app.store.Snapshot(), args[0])
			if err != nil {
				return err
			}
			newName := strings.Join(args[1:], " ")
			if app.dispatch(store.RenameFriend{ID: f.ID, Name: newName}) {
				fmt.Fprintf(app.Out, "renamed %s to %s\n", f.Name, newName)
			}
			return nil
		},
	}
}

func newFriendBirthdayCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "birthday <id|name> <YYYY-MM-DD>",
		Short: "Set a friend's birthday (empty string clears it)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := resolveFriend(app.store.Snapshot(), args[0])
			if err != nil {
				return err
			}
			if app.dispatch(store.SetBirthday{ID: f.ID, Date: args[1]}) {
				fmt.Fprintf(app.Out, "birthday of %s set to %s\n", f.Name, args[1])
			}
			return nil
		},
	}
}

func newFriendNoteCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "note <id|name> <text>",
		Short: "Replace a friend's notes",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := resolveFriend(app.store.Snapshot(), args[0])
			if err != nil {
				return err
			}
			if app.dispatch(store.SetFriendNotes{ID: f.ID, Notes: strings.Join(args[1:], " ")}) {
				fmt.Fprintf(app.Out, "notes of %s updated\n", f.Name)
			}
			return nil
		},
	}
}

func newFriendLinkCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "link <id|name> <id|name>",
		Short: "Toggle the relationship between two friends",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			st := app.store.Snapshot()
			a, err := resolveFriend(st, args[0])
			if err != nil {
				return err
			}
			b, err := resolveFriend(st, args[1])
			if err != nil {
				return err
			}
			if app.dispatch(store.ToggleRelationship{A: a.ID, B: b.ID}) {
				verb := "linked"
				after := app.store.Snapshot()
				if !after.Friend(a.ID).Relationships.Has(b.ID) {
					verb = "unlinked"
				}
				fmt.Fprintf(app.Out, "%s %s and %s\n", verb, a.Name, b.Name)
			}
			return nil
		},
	}
}

func newFriendListCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List friends with orbit, degree and last interaction",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			st := app.store.Snapshot()
			now := app.Clock.Now()
			degrees := derive.DegreeMap(st)
			for _, f := range st.Friends {
				orbit := derive.OrbitFor(derive.CountActivity(st, f.ID, now))
				last := f.LastInteraction
				if last == "" {
					last = "-"
				}
				fmt.Fprintf(app.Out, "%s  %-24s %-14s links=%d last=%s\n",
					f.ID, f.Name, app.trans.OrbitLabel(orbit), degrees[f.ID], last)
			}
			return nil
		},
	}
}

func newFriendShowCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show <id|name>",
		Short: "Show a friend's profile, links and events",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st := app.store.Snapshot()
			f, err := resolveFriend(st, args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(app.Out, "%s (%s)\n", f.Name, derive.FriendSlug(f.Name, f.ID))
			if f.Birthday != "" {
				fmt.Fprintf(app.Out, "  birthday: %s\n", f.Birthday)
			}
			if f.Notes != "" {
				fmt.Fprintf(app.Out, "  notes: %s\n", f.Notes)
			}
			for _, pair := range [][2]string{
				{"likes", f.Profile.Likes},
				{"dislikes", f.Profile.Dislikes},
				{"food likes", f.Profile.FoodLikes},
				{"food dislikes", f.Profile.FoodDislikes},
				{"workplace", f.Profile.Workplace},
				{"schedule", f.Profile.Schedule},
				{"car", f.Profile.CarModel},
				{"ideas", f.Profile.FutureIdeas},
				{"quotes", f.Profile.Quotes},
			} {
				if pair[1] != "" {
					fmt.Fprintf(app.Out, "  %s: %s\n", pair[0], pair[1])
				}
			}
			for _, d := range f.ImportantDates {
				fmt.Fprintf(app.Out, "  date %s: %s\n", d.Date, d.Label)
			}
			for _, g := range f.Gifts {
				fmt.Fprintf(app.Out, "  gift %s: %s (%s)\n", g.Date, g.Description, g.Occasion)
			}
			for _, p := range f.Postcards {
				fmt.Fprintf(app.Out, "  postcard %s: %s (%s)\n", p.Date, p.Description, p.Location)
			}
			for _, id := range f.Relationships.Sorted() {
				if g := st.Friend(id); g != nil {
					fmt.Fprintf(app.Out, "  linked: %s\n", g.Name)
				}
			}
			for _, ev := range derive.SortEventsDesc(eventValues(st.EventsOf(f.ID))) {
				fmt.Fprintf(app.Out, "  event %s  %s  %s\n", ev.Date, derive.EventSlug(ev.Title, ev.ID), ev.Title)
			}
			return nil
		},
	}
}
