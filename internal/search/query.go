package search

import (
	"strings"

	"github.com/sahilm/fuzzy"
	"github.com/tartampluch/dunbar/internal/config"
)

// Facets post-filters search results. Tags match case-insensitively against
// extracted document tags; persons match event participant names exactly
// (case-insensitive) and never apply to friend documents.
type Facets struct {
	IncludeTags    []string
	ExcludeTags    []string
	IncludePersons []string
	ExcludePersons []string
}

// Results carries the ranked, facet-filtered documents of one query.
type Results struct {
	Friends []FriendDoc
	Events  []EventDoc
}

// Query searches both indexes. An empty query returns every document (facets
// still applied); otherwise ranking follows the index scores.
func (ix *Indexes) Query(query string, facets Facets) Results {
	var res Results

	if strings.TrimSpace(query) == "" {
		for _, d := range ix.corpus.FriendDocs {
			if facets.allows(d.Tags, nil) {
				res.Friends = append(res.Friends, d)
			}
		}
		for _, d := range ix.corpus.EventDocs {
			if facets.allows(d.Tags, d.ParticipantNames) {
				res.Events = append(res.Events, d)
			}
		}
		return res
	}

	for _, hit := range ix.Friends.Search(query) {
		d, ok := ix.friendByID[hit.DocID]
		if ok && facets.allows(d.Tags, nil) {
			res.Friends = append(res.Friends, d)
		}
	}
	for _, hit := range ix.Events.Search(query) {
		d, ok := ix.eventByID[hit.DocID]
		if ok && facets.allows(d.Tags, d.ParticipantNames) {
			res.Events = append(res.Events, d)
		}
	}
	return res
}

func (f Facets) allows(tags, persons []string) bool {
	tagSet := lowerSet(tags)
	personSet := lowerSet(persons)

	for _, t := range f.IncludeTags {
		if _, ok := tagSet[strings.ToLower(t)]; !ok {
			return false
		}
	}
	for _, p := range f.IncludePersons {
		if _, ok := personSet[strings.ToLower(p)]; !ok {
			return false
		}
	}
	for _, t := range f.ExcludeTags {
		if _, ok := tagSet[strings.ToLower(t)]; ok {
			return false
		}
	}
	for _, p := range f.ExcludePersons {
		if _, ok := personSet[strings.ToLower(p)]; ok {
			return false
		}
	}
	return true
}

func lowerSet(values []string) map[string]struct{} {
	out := make(map[string]struct{}, len(values))
	for _, v := range values {
		out[strings.ToLower(v)] = struct{}{}
	}
	return out
}

// SuggestTags completes a tag prefix (a leading '#' is tolerated) against
// the corpus tag vocabulary, best matches first.
func (ix *Indexes) SuggestTags(prefix string) []string {
	p := strings.TrimPrefix(strings.ToLower(strings.TrimSpace(prefix)), "#")
	return suggest(p, ix.corpus.Tags)
}

// SuggestPersons completes a name prefix against known friend names.
func (ix *Indexes) SuggestPersons(prefix string) []string {
	return suggest(strings.TrimSpace(prefix), ix.corpus.Persons)
}

func suggest(pattern string, candidates []string) []string {
	if pattern == "" {
		if len(candidates) > config.SuggestLimit {
			return candidates[:config.SuggestLimit]
		}
		return candidates
	}
	matches := fuzzy.Find(pattern, candidates)
	out := make([]string, 0, len(matches))
	for _, m := range matches {
		out = append(out, m.Str)
		if len(out) == config.SuggestLimit {
			break
		}
	}
	return out
}
