package search

import (
	"sort"
	"strings"

	"github.com/tartampluch/dunbar/internal/nlp"
	"github.com/tartampluch/dunbar/internal/store"
)

// Field names shared by the two indexes.
const (
	FieldName         = "name"
	FieldBody         = "body"
	FieldTags         = "tags"
	FieldLocation     = "location"
	FieldParticipants = "participantNames"
)

// FriendDoc is a searchable friend: the name, an aggregated profile blob and
// the tags collected from the friend's notes, profile texts and event notes.
type FriendDoc struct {
	ID              string
	Name            string
	Body            string
	Tags            []string
	LastInteraction string
}

// EventDoc is a searchable deduplicated event. ParticipantNames resolve only
// ids of friends still present.
type EventDoc struct {
	ID               string
	Date             string
	Title            string
	Notes            string
	Location         string
	Tags             []string
	ParticipantNames []string
}

// Corpus is the document set both indexes are built from, plus the facet
// vocabularies.
type Corpus struct {
	FriendDocs []FriendDoc
	EventDocs  []EventDoc
	Tags       []string
	Persons    []string
}

// BuildCorpus derives the searchable documents from a state snapshot.
func BuildCorpus(st store.State) Corpus {
	var c Corpus
	tagSet := make(map[string]struct{})
	addTags := func(dst map[string]struct{}, text string) {
		for _, t := range nlp.ExtractTags(text) {
			dst[t] = struct{}{}
		}
	}

	for _, f := range st.Friends {
		c.Persons = append(c.Persons, f.Name)

		own := make(map[string]struct{})
		for _, text := range []string{
			f.Notes,
			f.Profile.Likes, f.Profile.Dislikes,
			f.Profile.FoodLikes, f.Profile.FoodDislikes,
			f.Profile.FutureIdeas, f.Profile.Quotes,
		} {
			addTags(own, text)
		}
		for _, ev := range st.EventsOf(f.ID) {
			addTags(own, ev.Notes)
		}

		blob := joinNonEmpty(
			f.Notes,
			f.Profile.Likes, f.Profile.Dislikes,
			f.Profile.FoodLikes, f.Profile.FoodDislikes,
			f.Profile.FutureIdeas, f.Profile.Quotes,
			f.Profile.Workplace, f.Profile.Schedule, f.Profile.CarModel,
		)

		tags := sortedKeys(own)
		for _, t := range tags {
			tagSet[t] = struct{}{}
		}
		c.FriendDocs = append(c.FriendDocs, FriendDoc{
			ID:              f.ID,
			Name:            f.Name,
			Body:            blob,
			Tags:            tags,
			LastInteraction: f.LastInteraction,
		})
	}

	for _, id := range sortedEventIDs(st) {
		ev := st.Events[id]
		var names []string
		for _, pid := range ev.Participants {
			if p := st.Friend(pid); p != nil {
				names = append(names, p.Name)
			}
		}
		tags := nlp.ExtractTags(ev.Notes)
		for _, t := range tags {
			tagSet[t] = struct{}{}
		}
		c.EventDocs = append(c.EventDocs, EventDoc{
			ID:               ev.ID,
			Date:             ev.Date,
			Title:            ev.Title,
			Notes:            ev.Notes,
			Location:         ev.Location,
			Tags:             tags,
			ParticipantNames: names,
		})
	}

	c.Tags = sortedKeys(tagSet)
	return c
}

func (d FriendDoc) document() Document {
	return Document{
		ID: d.ID,
		Fields: map[string]string{
			FieldName: d.Name,
			FieldBody: d.Body,
			FieldTags: strings.Join(d.Tags, " "),
		},
	}
}

func (d EventDoc) document() Document {
	return Document{
		ID: d.ID,
		Fields: map[string]string{
			FieldBody:         joinNonEmpty(d.Title, d.Notes),
			FieldLocation:     d.Location,
			FieldTags:         strings.Join(d.Tags, " "),
			FieldParticipants: strings.Join(d.ParticipantNames, " "),
		},
	}
}

func joinNonEmpty(parts ...string) string {
	var kept []string
	for _, p := range parts {
		if p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, "\n")
}

func sortedKeys(set map[string]struct{}) []string {
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

func sortedEventIDs(st store.State) []string {
	ids := make([]string, 0, len(st.Events))
	for id := range st.Events {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
