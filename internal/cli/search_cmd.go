package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tartampluch/dunbar/internal/search"
)

func newSearchCommand(app *App) *cobra.Command {
	var facets search.Facets
	var suggestTags, suggestPersons bool

	cmd := &cobra.Command{
		Use:   "search [query]",
		Short: "Search friends and events (typo-tolerant, facet filters)",
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ix := search.Build(app.store.Snapshot(), app.settings.Language)
			query := strings.Join(args, " ")

			if suggestTags {
				for _, t := range ix.SuggestTags(query) {
					fmt.Fprintf(app.Out, "#%s\n", t)
				}
				return nil
			}
			if suggestPersons {
				for _, p := range ix.SuggestPersons(query) {
					fmt.Fprintln(app.Out, p)
				}
				return nil
			}

			res := ix.Query(query, facets)
			for _, f := range res.Friends {
				fmt.Fprintf(app.Out, "friend  %s  %s\n", f.ID, f.Name)
			}
			for _, ev := range res.Events {
				fmt.Fprintf(app.Out, "event   %s  %s  %s\n", ev.ID, ev.Date, ev.Title)
			}
			if len(res.Friends)+len(res.Events) == 0 {
				fmt.Fprintln(app.Out, "no matches")
			}
			return nil
		},
	}
	cmd.Flags().StringSliceVar(&facets.IncludeTags, "tag", nil, "require this tag (repeatable)")
	cmd.Flags().StringSliceVar(&facets.ExcludeTags, "no-tag", nil, "exclude this tag (repeatable)")
	cmd.Flags().StringSliceVar(&facets.IncludePersons, "person", nil, "require this participant (repeatable)")
	cmd.Flags().StringSliceVar(&facets.ExcludePersons, "no-person", nil, "exclude this participant (repeatable)")
	cmd.Flags().BoolVar(&suggestTags, "suggest-tags", false, "suggest tags matching the query")
	cmd.Flags().BoolVar(&suggestPersons, "suggest-persons", false, "suggest participant names matching the query")
	return cmd
}
