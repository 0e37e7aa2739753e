package derive

import (
	"math"
	"time"

	"github.com/tartampluch/dunbar/internal/config"
	"github.com/tartampluch/dunbar/internal/store"
	"github.com/tartampluch/dunbar/internal/timeutil"
)

// Stats aggregates counts over the whole store.
//
// TotalEvents counts each event once per participant (a participant-event
// count). That is the historical metric; UniqueEvents carries the
// deduplicated count for consumers that expect one.
type Stats struct {
	Friends            int
	Connections        int
	ActiveFriends      int
	TotalEvents        int
	UniqueEvents       int
	AvgEventsPerFriend float64
}

// ComputeStats derives the aggregate metrics relative to now.
func ComputeStats(st store.State, now time.Time) Stats {
	s := Stats{
		Friends:      len(st.Friends),
		UniqueEvents: len(st.Events),
	}

	degreeSum := 0
	for _, f := range st.Friends {
		degreeSum += len(f.Relationships)
		s.TotalEvents += len(f.EventIDs)
		if hasEventWithin(st, f, now, config.WindowShortDays) {
			s.ActiveFriends++
		}
	}
	s.Connections = degreeSum / 2

	if s.Friends > 0 {
		avg := float64(s.TotalEvents) / float64(s.Friends)
		s.AvgEventsPerFriend = math.Round(avg*100) / 100
	}
	return s
}

func hasEventWithin(st store.State, f *store.Friend, now time.Time, days int) bool {
	for _, evID := range f.EventIDs {
		ev, ok := st.Events[evID]
		if !ok {
			continue
		}
		d, err := timeutil.ParseYMD(ev.Date)
		if err != nil {
			continue
		}
		if timeutil.WithinTrailingDays(d, now, days) {
			return true
		}
	}
	return false
}
