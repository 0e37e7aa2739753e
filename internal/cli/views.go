package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tartampluch/dunbar/internal/derive"
)

func newStatsCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Network-wide counters",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s := derive.ComputeStats(app.store.Snapshot(), app.Clock.Now())
			fmt.Fprintf(app.Out, "friends:            %d\n", s.Friends)
			fmt.Fprintf(app.Out, "connections:        %d\n", s.Connections)
			fmt.Fprintf(app.Out, "active (90d):       %d\n", s.ActiveFriends)
			fmt.Fprintf(app.Out, "events (participations): %d\n", s.TotalEvents)
			fmt.Fprintf(app.Out, "events (unique):    %d\n", s.UniqueEvents)
			fmt.Fprintf(app.Out, "avg events/friend:  %.2f\n", s.AvgEventsPerFriend)
			return nil
		},
	}
}

func newOrbitsCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "orbits",
		Short: "Bucket friends into inner/middle/outer activity tiers",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			st := app.store.Snapshot()
			buckets := derive.ComputeOrbits(st, app.Clock.Now())
			for _, tier := range []struct {
				orbit derive.Orbit
				ids   []string
			}{
				{derive.OrbitInner, buckets.Inner},
				{derive.OrbitMiddle, buckets.Middle},
				{derive.OrbitOuter, buckets.Outer},
			} {
				fmt.Fprintf(app.Out, "%s (%d)\n", app.trans.OrbitLabel(tier.orbit), len(tier.ids))
				for _, id := range tier.ids {
					if f := st.Friend(id); f != nil {
						fmt.Fprintf(app.Out, "  %s\n", f.Name)
					}
				}
			}
			return nil
		},
	}
}

func newUpcomingCommand(app *App) *cobra.Command {
	var days int

	cmd := &cobra.Command{
		Use:   "upcoming",
		Short: "Anniversaries inside the lookahead window, grouped by day",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("days") {
				days = app.settings.LookaheadDays
			}
			items := derive.UpcomingAnniversaries(app.store.Snapshot(), app.Clock.Now(), days)
			ordered, byDay := derive.GroupAnniversariesByDay(items)
			for _, day := range ordered {
				fmt.Fprintln(app.Out, day)
				for _, it := range byDay[day] {
					fmt.Fprintf(app.Out, "  %s (in %d day(s))", app.trans.AnnivLabel(it.Kind, it.FriendName), it.DaysUntil)
					if it.AnchorText != "" {
						fmt.Fprintf(app.Out, " - %s", it.AnchorText)
					}
					fmt.Fprintln(app.Out)
				}
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&days, "days", 0, "lookahead window in days")
	return cmd
}
