package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tartampluch/dunbar/internal/nlp"
	"github.com/tartampluch/dunbar/internal/search"
	"github.com/tartampluch/dunbar/internal/store"
)

func newKeywordsCommand(app *App) *cobra.Command {
	var topK int

	cmd := &cobra.Command{
		Use:   "keywords [id|name]",
		Short: "Characteristic terms and detected places per friend",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st := app.store.Snapshot()
			corpus := search.BuildCorpus(st)

			bodyByID := make(map[string]string, len(corpus.FriendDocs))
			for _, d := range corpus.FriendDocs {
				bodyByID[d.ID] = d.Body
			}

			// One document per friend: profile blob plus everything they
			// lived through. Scoring against the whole corpus keeps shared
			// vocabulary from looking characteristic.
			textByID := make(map[string]string, len(st.Friends))
			docs := make([]nlp.Doc, 0, len(st.Friends))
			var blob strings.Builder
			for _, f := range st.Friends {
				text := friendText(st, f, bodyByID[f.ID])
				textByID[f.ID] = text
				docs = append(docs, nlp.Doc{ID: f.ID, Text: text})
				blob.WriteString(text)
				blob.WriteByte('\n')
			}

			lang := nlp.DetectLang(blob.String())
			keywords := nlp.TopKeywords(docs, nlp.TFIDFOptions{Lang: lang}, topK)

			selected := st.Friends
			if len(args) == 1 {
				f, err := resolveFriend(st, args[0])
				if err != nil {
					return err
				}
				selected = []*store.Friend{f}
			}

			for _, f := range selected {
				terms := make([]string, 0, len(keywords[f.ID]))
				for _, kw := range keywords[f.ID] {
					terms = append(terms, kw.Term)
				}
				fmt.Fprintf(app.Out, "%s: %s\n", f.Name, strings.Join(terms, " "))
				for _, p := range nlp.ExtractLocations(textByID[f.ID], nil) {
					fmt.Fprintf(app.Out, "  place: %s\n", p.Name)
				}
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&topK, "top", 0, "terms per friend (0 = default)")
	return cmd
}

func friendText(st store.State, f *store.Friend, body string) string {
	var sb strings.Builder
	sb.WriteString(body)
	for _, ev := range st.EventsOf(f.ID) {
		sb.WriteByte('\n')
		sb.WriteString(ev.Title)
		sb.WriteByte('\n')
		sb.WriteString(ev.Notes)
		if ev.Location != "" {
			sb.WriteByte('\n')
			sb.WriteString(ev.Location)
		}
	}
	return sb.String()
}
