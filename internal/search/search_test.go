package search_test

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tartampluch/dunbar/internal/config"
	"github.com/tartampluch/dunbar/internal/search"
	"github.com/tartampluch/dunbar/internal/store"
	"github.com/tartampluch/dunbar/internal/timeutil"
)

// seedStore builds a small French dataset: two friends, two events, tags on
// both kinds of documents.
func seedStore(t *testing.T) (store.State, map[string]string) {
	t.Helper()
	s := store.New(timeutil.FixedClock{Instant: time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)})
	n := 0
	s.NewID = func() string {
		n++
		return fmt.Sprintf("id-%d", n)
	}

	ids := map[string]string{}
	for _, name := range []string{"Chloé", "Marc"} {
		require.True(t, s.Dispatch(store.AddFriend{Name: name}))
		st := s.Snapshot()
		ids[name] = st.Friends[len(st.Friends)-1].ID
	}
	likes := "randonnée et #escalade"
	require.True(t, s.Dispatch(store.UpdateFriendProfile{
		ID:    ids["Chloé"],
		Patch: store.ProfilePatch{Likes: &likes},
	}))

	require.True(t, s.Dispatch(store.AddEvent{
		Date: "2024-05-01", Title: "Grimpe",
		Notes:        "sortie #escalade à Fontainebleau",
		Location:     "Fontainebleau",
		Participants: []string{ids["Chloé"], ids["Marc"]},
	}))
	require.True(t, s.Dispatch(store.AddEvent{
		Date: "2024-05-10", Title: "Ciné",
		Notes:        "séance #cinema au quartier latin",
		Participants: []string{ids["Marc"]},
	}))
	return s.Snapshot(), ids
}

func TestBuildCorpus(t *testing.T) {
	st, ids := seedStore(t)
	c := search.BuildCorpus(st)

	require.Len(t, c.FriendDocs, 2)
	require.Len(t, c.EventDocs, 2)
	assert.ElementsMatch(t, []string{"cinema", "escalade"}, c.Tags)
	assert.ElementsMatch(t, []string{"Chloé", "Marc"}, c.Persons)

	var chloe search.FriendDoc
	for _, d := range c.FriendDocs {
		if d.ID == ids["Chloé"] {
			chloe = d
		}
	}
	// Tags aggregate from profile texts and event notes.
	assert.Equal(t, []string{"escalade"}, chloe.Tags)
	assert.Contains(t, chloe.Body, "randonnée")
}

func TestQuery_RanksNameAboveBody(t *testing.T) {
	st, ids := seedStore(t)
	notes := "marc marc marc"
	// Give the other friend the word "marc" in the body only.
	for _, f := range st.Friends {
		if f.ID == ids["Chloé"] {
			f.Notes = notes
		}
	}
	ix := search.Build(st, "fr")

	res := ix.Query("Marc", search.Facets{})
	require.Len(t, res.Friends, 2)
	assert.Equal(t, ids["Marc"], res.Friends[0].ID, "name boost outranks body occurrences")
}

func TestQuery_TagSearch(t *testing.T) {
	st, ids := seedStore(t)
	ix := search.Build(st, "fr")

	res := ix.Query("#escalade", search.Facets{})
	require.Len(t, res.Friends, 1)
	assert.Equal(t, ids["Chloé"], res.Friends[0].ID)
	require.Len(t, res.Events, 1)
	assert.Equal(t, "Grimpe", res.Events[0].Title)
}

func TestQuery_PrefixAndFuzzy(t *testing.T) {
	st, _ := seedStore(t)
	ix := search.Build(st, "")

	// Prefix: "fontaine" matches "fontainebleau".
	res := ix.Query("fontaine", search.Facets{})
	require.Len(t, res.Events, 1)
	assert.Equal(t, "Grimpe", res.Events[0].Title)

	// Fuzzy: one substitution inside the edit budget.
	res = ix.Query("cinena", search.Facets{})
	require.Len(t, res.Events, 1)
	assert.Equal(t, "Ciné", res.Events[0].Title)
}

func TestQuery_DiacriticInsensitive(t *testing.T) {
	st, ids := seedStore(t)
	ix := search.Build(st, "")

	res := ix.Query("chloe", search.Facets{})
	require.NotEmpty(t, res.Friends)
	assert.Equal(t, ids["Chloé"], res.Friends[0].ID)
}

func TestQuery_EmptyQueryAppliesFacets(t *testing.T) {
	st, _ := seedStore(t)
	ix := search.Build(st, "fr")

	res := ix.Query("", search.Facets{IncludeTags: []string{"cinema"}})
	assert.Empty(t, res.Friends, "no friend document carries #cinema")
	require.Len(t, res.Events, 1)
	assert.Equal(t, "Ciné", res.Events[0].Title)
}

func TestQuery_PersonFacets(t *testing.T) {
	st, _ := seedStore(t)
	ix := search.Build(st, "fr")

	res := ix.Query("", search.Facets{IncludePersons: []string{"chloé"}})
	require.Len(t, res.Events, 1, "person facet matches case-insensitively")
	assert.Equal(t, "Grimpe", res.Events[0].Title)

	res = ix.Query("", search.Facets{ExcludePersons: []string{"Marc"}})
	assert.Empty(t, res.Events, "both events include Marc")
}

func TestSuggestions(t *testing.T) {
	st, _ := seedStore(t)
	ix := search.Build(st, "fr")

	assert.Equal(t, []string{"escalade"}, ix.SuggestTags("#esc"))
	assert.ElementsMatch(t, []string{"cinema", "escalade"}, ix.SuggestTags(""))
	assert.Equal(t, []string{"Marc"}, ix.SuggestPersons("mar"))
}

func TestStemmingMatchesInflections(t *testing.T) {
	// French stemming folds "grimper"/"grimpe" to a shared stem.
	st, _ := seedStore(t)
	ix := search.Build(st, "fr")

	res := ix.Query("grimper", search.Facets{})
	require.NotEmpty(t, res.Events)
	assert.Equal(t, "Grimpe", res.Events[0].Title)
}

func TestBuild_AutoLanguageSelection(t *testing.T) {
	// The seed corpus is French, so "auto" picks the same pipeline as an
	// explicit "fr" and inflected queries still match.
	st, _ := seedStore(t)
	ix := search.Build(st, config.LangAuto)

	res := ix.Query("grimper", search.Facets{})
	require.NotEmpty(t, res.Events)
	assert.Equal(t, "Grimpe", res.Events[0].Title)
}
