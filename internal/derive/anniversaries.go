package derive

import (
	"sort"
	"strings"
	"time"

	"github.com/tartampluch/dunbar/internal/config"
	"github.com/tartampluch/dunbar/internal/nlp"
	"github.com/tartampluch/dunbar/internal/store"
	"github.com/tartampluch/dunbar/internal/timeutil"
)

// AnnivKind identifies the kind of upcoming anniversary. The values double
// as translation keys for the label formatters.
type AnnivKind string

const (
	AnnivBirthday     AnnivKind = config.TKeyAnnivBirthday
	AnnivHalfBirthday AnnivKind = config.TKeyAnnivHalf
	AnnivFirst6m      AnnivKind = config.TKeyAnnivFirst6m
	AnnivFirst12m     AnnivKind = config.TKeyAnnivFirst12m
	AnnivLast6m       AnnivKind = config.TKeyAnnivLast6m
	AnnivLast12m      AnnivKind = config.TKeyAnnivLast12m
)

// Anniversary is one upcoming occurrence inside the lookahead window.
// Event-anchored kinds carry an excerpt of the anchor event's notes and its
// tags; birthday kinds leave them empty.
type Anniversary struct {
	Date       string
	FriendID   string
	FriendName string
	Kind       AnnivKind
	DaysUntil  int
	AnchorText string
	AnchorTags []string
}

const anchorWords = 5

// UpcomingAnniversaries collects birthdays, half-birthdays and 6/12-month
// marks since each friend's first and last event, within windowDays of now,
// sorted by date (then friend name, then kind, for stable output).
func UpcomingAnniversaries(st store.State, now time.Time, windowDays int) []Anniversary {
	today := timeutil.Truncate(now)
	var items []Anniversary

	add := func(f *store.Friend, kind AnnivKind, date time.Time, anchor *store.Event) {
		d := timeutil.DaysBetween(today, date)
		if d < 0 || d > windowDays {
			return
		}
		a := Anniversary{
			Date:       timeutil.FormatYMD(date),
			FriendID:   f.ID,
			FriendName: f.Name,
			Kind:       kind,
			DaysUntil:  d,
		}
		if anchor != nil {
			a.AnchorText = firstWords(anchor.Notes, anchorWords)
			a.AnchorTags = nlp.ExtractTags(anchor.Notes)
		}
		items = append(items, a)
	}

	for _, f := range st.Friends {
		if f.Birthday != "" {
			if b, err := timeutil.ParseYMD(f.Birthday); err == nil {
				next := timeutil.NextAnnualOccurrence(today, b)
				add(f, AnnivBirthday, next, nil)
				add(f, AnnivHalfBirthday, nextHalfBirthday(today, next), nil)
			}
		}

		first, last := firstLastEvents(st, f)
		if first != nil {
			base, _ := timeutil.ParseYMD(first.Date)
			add(f, AnnivFirst6m, timeutil.NextMonthStep(today, base, config.AnnivStepHalf), first)
			add(f, AnnivFirst12m, timeutil.NextMonthStep(today, base, config.AnnivStepFull), first)
		}
		if last != nil {
			base, _ := timeutil.ParseYMD(last.Date)
			add(f, AnnivLast6m, timeutil.NextMonthStep(today, base, config.AnnivStepHalf), last)
			add(f, AnnivLast12m, timeutil.NextMonthStep(today, base, config.AnnivStepFull), last)
		}
	}

	sort.Slice(items, func(i, j int) bool {
		if items[i].Date != items[j].Date {
			return items[i].Date < items[j].Date
		}
		if items[i].FriendName != items[j].FriendName {
			return items[i].FriendName < items[j].FriendName
		}
		return items[i].Kind < items[j].Kind
	})
	return items
}

// nextHalfBirthday is the next occurrence six months offset from the next
// birthday.
func nextHalfBirthday(today, nextBirthday time.Time) time.Time {
	half := timeutil.AddMonths(nextBirthday, -config.AnnivStepHalf)
	if !half.Before(today) {
		return half
	}
	return timeutil.AddMonths(half, config.AnnivStepFull)
}

// firstLastEvents returns the chronologically first and last events of a
// friend, skipping unparseable dates. Both nil when the friend has none.
func firstLastEvents(st store.State, f *store.Friend) (first, last *store.Event) {
	var firstDate, lastDate time.Time
	for _, evID := range f.EventIDs {
		ev, ok := st.Events[evID]
		if !ok {
			continue
		}
		d, err := timeutil.ParseYMD(ev.Date)
		if err != nil {
			continue
		}
		if first == nil || d.Before(firstDate) {
			first, firstDate = ev, d
		}
		if last == nil || !d.Before(lastDate) {
			last, lastDate = ev, d
		}
	}
	return first, last
}

// GroupAnniversariesByDay buckets anniversaries by their date, preserving the
// sorted day order.
func GroupAnniversariesByDay(items []Anniversary) ([]string, map[string][]Anniversary) {
	grouped := make(map[string][]Anniversary)
	var days []string
	for _, a := range items {
		if _, ok := grouped[a.Date]; !ok {
			days = append(days, a.Date)
		}
		grouped[a.Date] = append(grouped[a.Date], a)
	}
	sort.Strings(days)
	return days, grouped
}

// firstWords returns the first n whitespace-separated words of text.
func firstWords(text string, n int) string {
	words := strings.Fields(text)
	if len(words) > n {
		words = words[:n]
	}
	return strings.Join(words, " ")
}
