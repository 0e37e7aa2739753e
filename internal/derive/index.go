// Package derive computes views over a store snapshot: the merged event
// index, aggregate stats, orbit buckets, upcoming anniversaries and the
// network graph data. Everything here is pure; nothing mutates the snapshot.
package derive

import (
	"sort"

	"github.com/tartampluch/dunbar/internal/store"
)

// IndexedEvent is one canonical entry of the event index. Participants come
// from the event record (and may include removed friends, kept as historical
// record); Holders are the friends whose event lists currently reference it.
type IndexedEvent struct {
	store.Event
	Holders []string
}

// EventIndex returns one entry per event, participants unioned with the
// current holders as a defense against divergence, sorted newest first with
// the id as tie-breaker.
func EventIndex(st store.State) []IndexedEvent {
	out := make([]IndexedEvent, 0, len(st.Events))
	for id, ev := range st.Events {
		entry := IndexedEvent{Event: *ev}
		entry.Participants = append([]string(nil), ev.Participants...)
		for _, fr := range st.Friends {
			for _, evID := range fr.EventIDs {
				if evID == id {
					entry.Holders = append(entry.Holders, fr.ID)
					if !contains(entry.Participants, fr.ID) {
						entry.Participants = append(entry.Participants, fr.ID)
					}
					break
				}
			}
		}
		out = append(out, entry)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Date != out[j].Date {
			return out[i].Date > out[j].Date
		}
		return out[i].ID < out[j].ID
	})
	return out
}

func contains(ids []string, id string) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}
