package derive

import (
	"regexp"
	"sort"
	"strings"

	"github.com/tartampluch/dunbar/internal/nlp"
	"github.com/tartampluch/dunbar/internal/store"
)

var nonSlugPattern = regexp.MustCompile(`[^a-z0-9]+`)

const slugIDSuffix = 6

// Slugify folds text to a lowercase ascii-and-dashes identifier; "x" when
// nothing survives.
func Slugify(text string) string {
	s := nlp.StripDiacritics(strings.ToLower(text))
	s = nonSlugPattern.ReplaceAllString(s, "-")
	s = strings.Trim(s, "-")
	if s == "" {
		return "x"
	}
	return s
}

// FriendSlug is a stable, mostly-human identifier: name slug + short id
// suffix.
func FriendSlug(name, id string) string {
	return Slugify(name) + "-" + idSuffix(id)
}

// EventSlug mirrors FriendSlug for events, built from the title.
func EventSlug(title, id string) string {
	return Slugify(title) + "-" + idSuffix(id)
}

func idSuffix(id string) string {
	if len(id) > slugIDSuffix {
		return id[len(id)-slugIDSuffix:]
	}
	return id
}

// SortEventsDesc orders events newest first (id as tie-breaker) without
// mutating the input.
func SortEventsDesc(events []store.Event) []store.Event {
	out := append([]store.Event(nil), events...)
	sort.Slice(out, func(i, j int) bool {
		if out[i].Date != out[j].Date {
			return out[i].Date > out[j].Date
		}
		return out[i].ID < out[j].ID
	})
	return out
}

// GroupEventsByDay buckets events by calendar day, days newest first, events
// inside each day newest first.
func GroupEventsByDay(events []store.Event) ([]string, map[string][]store.Event) {
	grouped := make(map[string][]store.Event)
	var days []string
	for _, ev := range SortEventsDesc(events) {
		if _, ok := grouped[ev.Date]; !ok {
			days = append(days, ev.Date)
		}
		grouped[ev.Date] = append(grouped[ev.Date], ev)
	}
	return days, grouped
}
