package store_test

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tartampluch/dunbar/internal/store"
	"github.com/tartampluch/dunbar/internal/timeutil"
)

// newTestStore returns a store with a fixed clock and sequential ids so
// tests stay deterministic.
func newTestStore() *store.Store {
	s := store.New(timeutil.FixedClock{Instant: time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)})
	n := 0
	s.NewID = func() string {
		n++
		return fmt.Sprintf("id-%d", n)
	}
	return s
}

func addFriend(t *testing.T, s *store.Store, name string) string {
	t.Helper()
	require.True(t, s.Dispatch(store.AddFriend{Name: name}))
	st := s.Snapshot()
	return st.Friends[len(st.Friends)-1].ID
}

// -----------------------------------------------------------------------------
// Friends
// -----------------------------------------------------------------------------

func TestAddFriend(t *testing.T) {
	s := newTestStore()

	id := addFriend(t, s, "  Alice  ")
	st := s.Snapshot()
	require.Len(t, st.Friends, 1)
	assert.Equal(t, "Alice", st.Friends[0].Name)
	assert.Equal(t, id, st.Friends[0].ID)
	assert.Empty(t, st.Friends[0].EventIDs)
	assert.Empty(t, st.Friends[0].Relationships)
}

func TestAddFriend_EmptyNameIgnored(t *testing.T) {
	s := newTestStore()
	assert.False(t, s.Dispatch(store.AddFriend{Name: "   "}))
	assert.Empty(t, s.Snapshot().Friends)
}

func TestRenameFriend(t *testing.T) {
	s := newTestStore()
	id := addFriend(t, s, "Alice")

	assert.True(t, s.Dispatch(store.RenameFriend{ID: id, Name: "Alicia"}))
	assert.Equal(t, "Alicia", s.Snapshot().Friends[0].Name)

	// Empty name and unknown id are silent no-ops.
	assert.False(t, s.Dispatch(store.RenameFriend{ID: id, Name: " "}))
	assert.False(t, s.Dispatch(store.RenameFriend{ID: "ghost", Name: "X"}))
	assert.Equal(t, "Alicia", s.Snapshot().Friends[0].Name)
}

func TestSetBirthday(t *testing.T) {
	s := newTestStore()
	id := addFriend(t, s, "Alice")

	assert.True(t, s.Dispatch(store.SetBirthday{ID: id, Date: "1990-03-15"}))
	assert.Equal(t, "1990-03-15", s.Snapshot().Friends[0].Birthday)

	// Unparseable date is rejected without touching the stored value.
	assert.False(t, s.Dispatch(store.SetBirthday{ID: id, Date: "not-a-date"}))
	assert.Equal(t, "1990-03-15", s.Snapshot().Friends[0].Birthday)

	// Empty date clears.
	assert.True(t, s.Dispatch(store.SetBirthday{ID: id, Date: ""}))
	assert.Empty(t, s.Snapshot().Friends[0].Birthday)
}

func TestUpdateFriendProfile(t *testing.T) {
	s := newTestStore()
	id := addFriend(t, s, "Alice")

	likes := "bouldering"
	work := "observatory"
	require.True(t, s.Dispatch(store.UpdateFriendProfile{
		ID:    id,
		Patch: store.ProfilePatch{Likes: &likes, Workplace: &work},
	}))

	f := s.Snapshot().Friends[0]
	assert.Equal(t, "bouldering", f.Profile.Likes)
	assert.Equal(t, "observatory", f.Profile.Workplace)
	assert.Empty(t, f.Profile.Dislikes)
}

func TestProfileListAppends(t *testing.T) {
	s := newTestStore()
	id := addFriend(t, s, "Alice")

	require.True(t, s.Dispatch(store.AddImportantDate{ID: id, Date: "2023-09-01", Label: "moved to Lyon"}))
	require.True(t, s.Dispatch(store.AddGift{ID: id, Date: "2023-12-25", Occasion: "noel", Description: "board game"}))
	require.True(t, s.Dispatch(store.AddPostcard{ID: id, Date: "2024-02-10", Location: "Lisboa", Description: "sunny"}))

	f := s.Snapshot().Friends[0]
	require.Len(t, f.ImportantDates, 1)
	assert.Equal(t, "moved to Lyon", f.ImportantDates[0].Label)
	require.Len(t, f.Gifts, 1)
	require.Len(t, f.Postcards, 1)

	// A malformed date rejects the append.
	assert.False(t, s.Dispatch(store.AddGift{ID: id, Date: "25/12/2023", Occasion: "x"}))
	assert.Len(t, s.Snapshot().Friends[0].Gifts, 1)
}

// -----------------------------------------------------------------------------
// Relationships
// -----------------------------------------------------------------------------

func TestToggleRelationship_SymmetryAndStats(t *testing.T) {
	// Scenario 1: Alice + Bob linked; both sides see the edge.
	s := newTestStore()
	alice := addFriend(t, s, "Alice")
	bob := addFriend(t, s, "Bob")

	require.True(t, s.Dispatch(store.ToggleRelationship{A: alice, B: bob}))
	st := s.Snapshot()
	assert.True(t, st.Friend(alice).Relationships.Has(bob))
	assert.True(t, st.Friend(bob).Relationships.Has(alice))
}

func TestToggleRelationship_Idempotence(t *testing.T) {
	s := newTestStore()
	alice := addFriend(t, s, "Alice")
	bob := addFriend(t, s, "Bob")

	require.True(t, s.Dispatch(store.ToggleRelationship{A: alice, B: bob}))
	require.True(t, s.Dispatch(store.ToggleRelationship{A: alice, B: bob}))

	st := s.Snapshot()
	assert.False(t, st.Friend(alice).Relationships.Has(bob))
	assert.False(t, st.Friend(bob).Relationships.Has(alice))
}

func TestToggleRelationship_Rejections(t *testing.T) {
	s := newTestStore()
	alice := addFriend(t, s, "Alice")

	assert.False(t, s.Dispatch(store.ToggleRelationship{A: alice, B: alice}), "self-relationship")
	assert.False(t, s.Dispatch(store.ToggleRelationship{A: alice, B: "ghost"}), "unknown id")
	st := s.Snapshot()
	assert.Empty(t, st.Friend(alice).Relationships)
}

func TestRemoveFriend_SeversEdges(t *testing.T) {
	// Scenario 4: removing Bob drops the reciprocal edge on Alice.
	s := newTestStore()
	alice := addFriend(t, s, "Alice")
	bob := addFriend(t, s, "Bob")
	require.True(t, s.Dispatch(store.ToggleRelationship{A: alice, B: bob}))
	require.True(t, s.Dispatch(store.SelectFriend{ID: bob}))

	require.True(t, s.Dispatch(store.RemoveFriend{ID: bob}))

	st := s.Snapshot()
	require.Len(t, st.Friends, 1)
	assert.False(t, st.Friend(alice).Relationships.Has(bob))
	assert.Empty(t, st.SelectedFriendID, "selection cleared when it pointed at the removed friend")
}

// -----------------------------------------------------------------------------
// Events
// -----------------------------------------------------------------------------

func TestAddEvent_SharedAcrossParticipants(t *testing.T) {
	// Scenario 2: one logical event shared by Alice and Bob.
	s := newTestStore()
	alice := addFriend(t, s, "Alice")
	bob := addFriend(t, s, "Bob")

	require.True(t, s.Dispatch(store.AddEvent{
		Date:         "2024-01-01",
		Title:        "Coffee",
		Notes:        "chat #cafe",
		Participants: []string{alice, bob},
	}))

	st := s.Snapshot()
	require.Len(t, st.Events, 1)
	var ev *store.Event
	for _, e := range st.Events {
		ev = e
	}
	assert.ElementsMatch(t, []string{alice, bob}, ev.Participants)
	assert.Equal(t, []string{ev.ID}, st.Friend(alice).EventIDs)
	assert.Equal(t, []string{ev.ID}, st.Friend(bob).EventIDs)
	assert.Equal(t, "2024-01-01", st.Friend(alice).LastInteraction)
	assert.Equal(t, ev.ID, st.SelectedEventID, "new event becomes selected")
}

func TestAddEvent_Validation(t *testing.T) {
	s := newTestStore()
	alice := addFriend(t, s, "Alice")

	testCases := []struct {
		name   string
		action store.AddEvent
	}{
		{"Empty title", store.AddEvent{Date: "2024-01-01", Title: " ", Notes: "n", Participants: []string{alice}}},
		{"Empty notes", store.AddEvent{Date: "2024-01-01", Title: "t", Notes: "", Participants: []string{alice}}},
		{"Bad date", store.AddEvent{Date: "first of may", Title: "t", Notes: "n", Participants: []string{alice}}},
		{"No participants", store.AddEvent{Date: "2024-01-01", Title: "t", Notes: "n"}},
		{"Only unknown participants", store.AddEvent{Date: "2024-01-01", Title: "t", Notes: "n", Participants: []string{"ghost"}}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.False(t, s.Dispatch(tc.action))
			assert.Empty(t, s.Snapshot().Events)
		})
	}
}

func TestAddEvent_DropsUnknownParticipants(t *testing.T) {
	s := newTestStore()
	alice := addFriend(t, s, "Alice")

	require.True(t, s.Dispatch(store.AddEvent{
		Date:         "2024-01-01",
		Title:        "Coffee",
		Notes:        "n",
		Participants: []string{alice, "ghost", alice},
	}))

	st := s.Snapshot()
	ev := st.EventsOf(alice)[0]
	assert.Equal(t, []string{alice}, ev.Participants, "unknown and duplicate ids filtered")
}

func TestUpdateEvent_ReconcilesParticipation(t *testing.T) {
	// Scenario 3: dropping Bob from the event removes his participation and
	// recomputes his lastInteraction.
	s := newTestStore()
	alice := addFriend(t, s, "Alice")
	bob := addFriend(t, s, "Bob")
	require.True(t, s.Dispatch(store.AddEvent{
		Date: "2024-01-01", Title: "Coffee", Notes: "chat",
		Participants: []string{alice, bob},
	}))
	evID := s.Snapshot().SelectedEventID

	require.True(t, s.Dispatch(store.UpdateEvent{
		ID:    evID,
		Patch: store.EventPatch{Participants: []string{alice}},
	}))

	st := s.Snapshot()
	assert.Empty(t, st.Friend(bob).EventIDs)
	assert.Empty(t, st.Friend(bob).LastInteraction, "no events left")
	assert.Equal(t, []string{evID}, st.Friend(alice).EventIDs)
	assert.Equal(t, []string{alice}, st.Event(evID).Participants)
}

func TestUpdateEvent_AddsParticipant(t *testing.T) {
	s := newTestStore()
	alice := addFriend(t, s, "Alice")
	bob := addFriend(t, s, "Bob")
	require.True(t, s.Dispatch(store.AddEvent{
		Date: "2024-01-01", Title: "Coffee", Notes: "chat",
		Participants: []string{alice},
	}))
	evID := s.Snapshot().SelectedEventID

	require.True(t, s.Dispatch(store.UpdateEvent{
		ID:    evID,
		Patch: store.EventPatch{Participants: []string{alice, bob}},
	}))

	st := s.Snapshot()
	assert.Equal(t, []string{evID}, st.Friend(bob).EventIDs)
	assert.Equal(t, "2024-01-01", st.Friend(bob).LastInteraction)
}

func TestUpdateEvent_FieldPatchesAllCopies(t *testing.T) {
	s := newTestStore()
	alice := addFriend(t, s, "Alice")
	bob := addFriend(t, s, "Bob")
	require.True(t, s.Dispatch(store.AddEvent{
		Date: "2024-01-01", Title: "Coffee", Notes: "chat",
		Participants: []string{alice, bob},
	}))
	evID := s.Snapshot().SelectedEventID

	date, title := "2024-02-01", "Brunch"
	require.True(t, s.Dispatch(store.UpdateEvent{
		ID:    evID,
		Patch: store.EventPatch{Date: &date, Title: &title},
	}))

	st := s.Snapshot()
	// Both friends join against the same table entry, so both see the patch.
	assert.Equal(t, "Brunch", st.EventsOf(alice)[0].Title)
	assert.Equal(t, "Brunch", st.EventsOf(bob)[0].Title)
	assert.Equal(t, "2024-02-01", st.Friend(alice).LastInteraction)
	assert.Equal(t, "2024-02-01", st.Friend(bob).LastInteraction)
}

func TestUpdateEvent_InvalidMergeRejected(t *testing.T) {
	s := newTestStore()
	alice := addFriend(t, s, "Alice")
	require.True(t, s.Dispatch(store.AddEvent{
		Date: "2024-01-01", Title: "Coffee", Notes: "chat",
		Participants: []string{alice},
	}))
	evID := s.Snapshot().SelectedEventID

	empty := " "
	assert.False(t, s.Dispatch(store.UpdateEvent{ID: evID, Patch: store.EventPatch{Title: &empty}}))
	assert.False(t, s.Dispatch(store.UpdateEvent{ID: evID, Patch: store.EventPatch{Participants: []string{}}}))
	assert.False(t, s.Dispatch(store.UpdateEvent{ID: "ghost", Patch: store.EventPatch{}}))

	st := s.Snapshot()
	assert.Equal(t, "Coffee", st.Event(evID).Title)
}

func TestRemoveEvent(t *testing.T) {
	s := newTestStore()
	alice := addFriend(t, s, "Alice")
	require.True(t, s.Dispatch(store.AddEvent{
		Date: "2024-01-01", Title: "Coffee", Notes: "chat",
		Participants: []string{alice},
	}))
	evID := s.Snapshot().SelectedEventID

	require.True(t, s.Dispatch(store.RemoveEvent{ID: evID}))

	st := s.Snapshot()
	assert.Empty(t, st.Events)
	assert.Empty(t, st.Friend(alice).EventIDs)
	assert.Empty(t, st.Friend(alice).LastInteraction)
	assert.Empty(t, st.SelectedEventID)
}

func TestRemoveFriend_KeepsSharedEvents(t *testing.T) {
	// Scenario 4 continued: Bob's removal keeps the shared event for Alice,
	// with Bob's id retained in the participant list as historical record.
	s := newTestStore()
	alice := addFriend(t, s, "Alice")
	bob := addFriend(t, s, "Bob")
	require.True(t, s.Dispatch(store.AddEvent{
		Date: "2024-01-01", Title: "Coffee", Notes: "chat",
		Participants: []string{alice, bob},
	}))
	evID := s.Snapshot().SelectedEventID

	require.True(t, s.Dispatch(store.RemoveFriend{ID: bob}))

	st := s.Snapshot()
	require.NotNil(t, st.Event(evID))
	assert.Contains(t, st.Event(evID).Participants, bob)
	assert.Equal(t, []string{evID}, st.Friend(alice).EventIDs)
}

func TestRemoveFriend_DropsOrphanedEvents(t *testing.T) {
	s := newTestStore()
	alice := addFriend(t, s, "Alice")
	require.True(t, s.Dispatch(store.AddEvent{
		Date: "2024-01-01", Title: "Solo ride", Notes: "n",
		Participants: []string{alice},
	}))
	evID := s.Snapshot().SelectedEventID

	require.True(t, s.Dispatch(store.RemoveFriend{ID: alice}))

	st := s.Snapshot()
	assert.Nil(t, st.Event(evID), "event with no remaining holder is dropped")
	assert.Empty(t, st.SelectedEventID)
}

func TestLastInteraction_TracksNewestDate(t *testing.T) {
	s := newTestStore()
	alice := addFriend(t, s, "Alice")

	require.True(t, s.Dispatch(store.AddEvent{Date: "2024-03-10", Title: "a", Notes: "n", Participants: []string{alice}}))
	require.True(t, s.Dispatch(store.AddEvent{Date: "2024-01-05", Title: "b", Notes: "n", Participants: []string{alice}}))

	st := s.Snapshot()
	assert.Equal(t, "2024-03-10", st.Friend(alice).LastInteraction,
		"older event does not regress the derived date")
}

// -----------------------------------------------------------------------------
// Selection, load, reset, snapshot isolation
// -----------------------------------------------------------------------------

func TestSelection(t *testing.T) {
	s := newTestStore()
	alice := addFriend(t, s, "Alice")

	assert.True(t, s.Dispatch(store.SelectFriend{ID: alice}))
	assert.Equal(t, alice, s.Snapshot().SelectedFriendID)

	assert.False(t, s.Dispatch(store.SelectFriend{ID: "ghost"}))
	assert.Equal(t, alice, s.Snapshot().SelectedFriendID)

	assert.True(t, s.Dispatch(store.SelectFriend{ID: ""}))
	assert.Empty(t, s.Snapshot().SelectedFriendID)
}

func TestReset(t *testing.T) {
	s := newTestStore()
	addFriend(t, s, "Alice")

	require.True(t, s.Dispatch(store.Reset{}))
	st := s.Snapshot()
	assert.Empty(t, st.Friends)
	assert.Empty(t, st.Events)
}

func TestLoad_ReplacesStateAndRecomputes(t *testing.T) {
	s := newTestStore()
	addFriend(t, s, "Old")

	loaded := store.NewState()
	loaded.Friends = []*store.Friend{{
		ID: "f1", Name: "Nadia",
		Relationships:   store.NewIDSet(),
		EventIDs:        []string{"e1"},
		LastInteraction: "9999-01-01", // stale, must be recomputed
	}}
	loaded.Events["e1"] = &store.Event{
		ID: "e1", Date: "2024-04-01", Title: "t", Notes: "n",
		Participants: []string{"f1"},
	}

	require.True(t, s.Dispatch(store.Load{State: loaded}))

	st := s.Snapshot()
	require.Len(t, st.Friends, 1)
	assert.Equal(t, "Nadia", st.Friends[0].Name)
	assert.Equal(t, "2024-04-01", st.Friends[0].LastInteraction,
		"lastInteraction never trusted from a loaded payload")
}

func TestSnapshot_IsIsolated(t *testing.T) {
	s := newTestStore()
	alice := addFriend(t, s, "Alice")

	snap := s.Snapshot()
	snap.Friend(alice).Name = "mutated"
	snap.Friend(alice).Relationships.Add("ghost")

	st := s.Snapshot()
	assert.Equal(t, "Alice", st.Friend(alice).Name)
	assert.Empty(t, st.Friend(alice).Relationships)
}
