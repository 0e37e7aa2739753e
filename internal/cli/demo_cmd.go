package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tartampluch/dunbar/internal/demo"
	"github.com/tartampluch/dunbar/internal/store"
)

func newDemoCommand(app *App) *cobra.Command {
	var friends int
	var seed int64

	cmd := &cobra.Command{
		Use:   "demo",
		Short: "Replace the current state with a generated demo dataset",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			st := demo.Generate(friends, seed, app.Clock.Now())
			app.store.Dispatch(store.Load{State: st})
			app.save()
			fmt.Fprintf(app.Out, "seeded %d friend(s) and %d event(s)\n",
				len(st.Friends), len(st.Events))
			return nil
		},
	}
	cmd.Flags().IntVar(&friends, "friends", 30, "number of friends to generate")
	cmd.Flags().Int64Var(&seed, "seed", 1, "random seed")
	return cmd
}
