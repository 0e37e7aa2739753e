// Package store is the authoritative in-memory state machine for friends,
// events and relationships. All mutation goes through dispatched actions
// handled by a single reducer; readers work on deep-copied snapshots.
package store

import "sort"

// IDSet is an unordered set of friend ids.
type IDSet map[string]struct{}

// NewIDSet builds a set from the given ids.
func NewIDSet(ids ...string) IDSet {
	s := make(IDSet, len(ids))
	for _, id := range ids {
		s[id] = struct{}{}
	}
	return s
}

func (s IDSet) Has(id string) bool {
	_, ok := s[id]
	return ok
}

func (s IDSet) Add(id string)    { s[id] = struct{}{} }
func (s IDSet) Remove(id string) { delete(s, id) }

// Toggle flips membership and reports the resulting presence.
func (s IDSet) Toggle(id string) bool {
	if s.Has(id) {
		s.Remove(id)
		return false
	}
	s.Add(id)
	return true
}

// Sorted returns the set as a sorted slice for deterministic output.
func (s IDSet) Sorted() []string {
	out := make([]string, 0, len(s))
	for id := range s {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

// Clone returns an independent copy.
func (s IDSet) Clone() IDSet {
	out := make(IDSet, len(s))
	for id := range s {
		out[id] = struct{}{}
	}
	return out
}

// Profile groups the fixed rich-profile text fields of a friend.
type Profile struct {
	Likes        string
	Dislikes     string
	FoodLikes    string
	FoodDislikes string
	WifiPassword string
	CarModel     string
	Workplace    string
	Schedule     string
	FutureIdeas  string
	Quotes       string
}

// ImportantDate is a dated label on a friend (e.g. "moved to Lyon").
type ImportantDate struct {
	Date  string
	Label string
}

// Gift records a gift given or received on a date.
type Gift struct {
	Date        string
	Occasion    string
	Description string
	Image       string
}

// Postcard records a postcard sent or received.
type Postcard struct {
	Date        string
	Location    string
	Description string
	Image       string
}

// Friend is a tracked person node. Dates are date-only "YYYY-MM-DD" strings;
// an empty Birthday means unknown. LastInteraction is derived from events and
// recomputed by the reducer, never set directly.
type Friend struct {
	ID             string
	Name           string
	Birthday       string
	Notes          string
	Profile        Profile
	ImportantDates []ImportantDate
	Gifts          []Gift
	Postcards      []Postcard

	// Relationships holds the ids of connected friends; kept symmetric by
	// the reducer.
	Relationships IDSet

	// EventIDs is this friend's ordered participation list into the
	// normalized event table.
	EventIDs []string

	// LastInteraction is the most recent event date among EventIDs.
	LastInteraction string
}

// Event is a shared occurrence, stored once in the event table and referenced
// from each participant's EventIDs. Participants may include ids of friends
// that were later removed; those entries are historical record, not joins.
type Event struct {
	ID           string
	Date         string
	Title        string
	Notes        string
	Location     string
	Participants []string
}

// State is the aggregate the reducer operates on.
type State struct {
	Friends          []*Friend
	Events           map[string]*Event
	SelectedFriendID string
	SelectedEventID  string
}

// NewState returns an empty initialized state.
func NewState() State {
	return State{Events: make(map[string]*Event)}
}

// Friend returns the friend with the given id, or nil.
func (st *State) Friend(id string) *Friend {
	for _, f := range st.Friends {
		if f.ID == id {
			return f
		}
	}
	return nil
}

// Event returns the event with the given id, or nil.
func (st *State) Event(id string) *Event {
	return st.Events[id]
}

// EventsOf joins a friend's EventIDs against the event table, preserving the
// participation order. Unknown ids are skipped.
func (st *State) EventsOf(friendID string) []*Event {
	f := st.Friend(friendID)
	if f == nil {
		return nil
	}
	out := make([]*Event, 0, len(f.EventIDs))
	for _, id := range f.EventIDs {
		if ev, ok := st.Events[id]; ok {
			out = append(out, ev)
		}
	}
	return out
}

// holders returns the ids of friends whose EventIDs reference the event.
func (st *State) holders(eventID string) []string {
	var out []string
	for _, f := range st.Friends {
		for _, id := range f.EventIDs {
			if id == eventID {
				out = append(out, f.ID)
				break
			}
		}
	}
	return out
}

// Clone deep-copies the state so callers can hold a snapshot while the store
// keeps mutating.
func (st *State) Clone() State {
	out := State{
		Friends:          make([]*Friend, len(st.Friends)),
		Events:           make(map[string]*Event, len(st.Events)),
		SelectedFriendID: st.SelectedFriendID,
		SelectedEventID:  st.SelectedEventID,
	}
	for i, f := range st.Friends {
		cp := *f
		cp.ImportantDates = append([]ImportantDate(nil), f.ImportantDates...)
		cp.Gifts = append([]Gift(nil), f.Gifts...)
		cp.Postcards = append([]Postcard(nil), f.Postcards...)
		cp.Relationships = f.Relationships.Clone()
		cp.EventIDs = append([]string(nil), f.EventIDs...)
		out.Friends[i] = &cp
	}
	for id, ev := range st.Events {
		cp := *ev
		cp.Participants = append([]string(nil), ev.Participants...)
		out.Events[id] = &cp
	}
	return out
}
