package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tartampluch/dunbar/internal/store"
)

func newFriendProfileCommand(app *App) *cobra.Command {
	var likes, dislikes, foodLikes, foodDislikes, wifi, car, workplace, schedule, ideas, quotes string

	cmd := &cobra.Command{
		Use:   "profile <id|name>",
		Short: "Patch a friend's profile fields (only the flags you set change)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := resolveFriend(app.store.Snapshot(), args[0])
			if err != nil {
				return err
			}
			set := func(name string, v *string) *string {
				if cmd.Flags().Changed(name) {
					return v
				}
				return nil
			}
			patch := store.ProfilePatch{
				Likes:        set("likes", &likes),
				Dislikes:     set("dislikes", &dislikes),
				FoodLikes:    set("food-likes", &foodLikes),
				FoodDislikes: set("food-dislikes", &foodDislikes),
				WifiPassword: set("wifi", &wifi),
				CarModel:     set("car", &car),
				Workplace:    set("workplace", &workplace),
				Schedule:     set("schedule", &schedule),
				FutureIdeas:  set("ideas", &ideas),
				Quotes:       set("quotes", &quotes),
			}
			if app.dispatch(store.UpdateFriendProfile{ID: f.ID, Patch: patch}) {
				fmt.Fprintf(app.Out, "profile of %s updated\n", f.Name)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&likes, "likes", "", "things they like")
	cmd.Flags().StringVar(&dislikes, "dislikes", "", "things they dislike")
	cmd.Flags().StringVar(&foodLikes, "food-likes", "", "food they like")
	cmd.Flags().StringVar(&foodDislikes, "food-dislikes", "", "food they avoid")
	cmd.Flags().StringVar(&wifi, "wifi", "", "their wifi password")
	cmd.Flags().StringVar(&car, "car", "", "their car model")
	cmd.Flags().StringVar(&workplace, "workplace", "", "where they work")
	cmd.Flags().StringVar(&schedule, "schedule", "", "their usual schedule")
	cmd.Flags().StringVar(&ideas, "ideas", "", "ideas for future plans")
	cmd.Flags().StringVar(&quotes, "quotes", "", "memorable quotes")
	return cmd
}

func newFriendDateCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "date <id|name> <YYYY-MM-DD> <label>",
		Short: "Record an important date for a friend",
		Args:  cobra.MinimumNArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := resolveFriend(app.store.Snapshot(), args[0])
			if err != nil {
				return err
			}
			act := store.AddImportantDate{ID: f.ID, Date: args[1], Label: strings.Join(args[2:], " ")}
			if app.dispatch(act) {
				fmt.Fprintf(app.Out, "noted %s for %s\n", act.Label, f.Name)
			}
			return nil
		},
	}
}

func newFriendGiftCommand(app *App) *cobra.Command {
	var date, occasion string

	cmd := &cobra.Command{
		Use:   "gift <id|name> <description>",
		Short: "Record a gift given to a friend",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := resolveFriend(app.store.Snapshot(), args[0])
			if err != nil {
				return err
			}
			if date == "" {
				date = timeDateYMD(app)
			}
			act := store.AddGift{
				ID:          f.ID,
				Date:        date,
				Occasion:    occasion,
				Description: strings.Join(args[1:], " "),
			}
			if app.dispatch(act) {
				fmt.Fprintf(app.Out, "gift recorded for %s\n", f.Name)
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&date, "date", "d", "", "when it was given (default today)")
	cmd.Flags().StringVarP(&occasion, "occasion", "o", "", "what for")
	return cmd
}

func newFriendPostcardCommand(app *App) *cobra.Command {
	var date, location string

	cmd := &cobra.Command{
		Use:   "postcard <id|name> <description>",
		Short: "Record a postcard received from a friend",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := resolveFriend(app.store.Snapshot(), args[0])
			if err != nil {
				return err
			}
			if date == "" {
				date = timeDateYMD(app)
			}
			act := store.AddPostcard{
				ID:          f.ID,
				Date:        date,
				Location:    location,
				Description: strings.Join(args[1:], " "),
			}
			if app.dispatch(act) {
				fmt.Fprintf(app.Out, "postcard recorded for %s\n", f.Name)
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&date, "date", "d", "", "when it arrived (default today)")
	cmd.Flags().StringVarP(&location, "location", "l", "", "where it came from")
	return cmd
}
