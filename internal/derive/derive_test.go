package derive_test

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tartampluch/dunbar/internal/derive"
	"github.com/tartampluch/dunbar/internal/store"
	"github.com/tartampluch/dunbar/internal/timeutil"
)

var testNow = time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

// fixture builds a store with a deterministic id sequence and returns it
// with a helper to add events quickly.
func fixture() (*store.Store, func(date string, participants ...string) string) {
	s := store.New(timeutil.FixedClock{Instant: testNow})
	n := 0
	s.NewID = func() string {
		n++
		return fmt.Sprintf("id-%d", n)
	}
	addEvent := func(date string, participants ...string) string {
		s.Dispatch(store.AddEvent{
			Date: date, Title: "t", Notes: "some notes",
			Participants: participants,
		})
		return s.Snapshot().SelectedEventID
	}
	return s, addEvent
}

func mustAddFriend(s *store.Store, name string) string {
	s.Dispatch(store.AddFriend{Name: name})
	st := s.Snapshot()
	return st.Friends[len(st.Friends)-1].ID
}

// daysAgo renders a date n days before testNow.
func daysAgo(n int) string {
	return timeutil.FormatYMD(testNow.AddDate(0, 0, -n))
}

// -----------------------------------------------------------------------------
// Event index
// -----------------------------------------------------------------------------

func TestEventIndex_OneEntryPerEvent(t *testing.T) {
	// Scenario 2: a shared event appears once, participants order-insensitive.
	s, addEvent := fixture()
	alice := mustAddFriend(s, "Alice")
	bob := mustAddFriend(s, "Bob")
	evID := addEvent("2024-01-01", alice, bob)
	addEvent("2024-05-01", alice)

	idx := derive.EventIndex(s.Snapshot())
	require.Len(t, idx, 2)
	assert.Equal(t, "2024-05-01", idx[0].Date, "newest first")

	var shared derive.IndexedEvent
	for _, e := range idx {
		if e.ID == evID {
			shared = e
		}
	}
	assert.ElementsMatch(t, []string{alice, bob}, shared.Participants)
	assert.ElementsMatch(t, []string{alice, bob}, shared.Holders)
}

// -----------------------------------------------------------------------------
// Stats
// -----------------------------------------------------------------------------

func TestComputeStats(t *testing.T) {
	s, addEvent := fixture()
	alice := mustAddFriend(s, "Alice")
	bob := mustAddFriend(s, "Bob")
	carol := mustAddFriend(s, "Carol")
	s.Dispatch(store.ToggleRelationship{A: alice, B: bob})

	addEvent(daysAgo(10), alice, bob) // recent, shared
	addEvent(daysAgo(200), carol)     // old

	stats := derive.ComputeStats(s.Snapshot(), testNow)
	assert.Equal(t, 3, stats.Friends)
	assert.Equal(t, 1, stats.Connections)
	assert.Equal(t, 2, stats.ActiveFriends, "carol's only event is outside the 90-day window")
	assert.Equal(t, 3, stats.TotalEvents, "participant-event count: shared event counted twice")
	assert.Equal(t, 2, stats.UniqueEvents)
	assert.InDelta(t, 1.0, stats.AvgEventsPerFriend, 1e-9)
}

func TestComputeStats_Empty(t *testing.T) {
	s, _ := fixture()
	stats := derive.ComputeStats(s.Snapshot(), testNow)
	assert.Zero(t, stats.Connections)
	assert.Zero(t, stats.AvgEventsPerFriend)
}

// -----------------------------------------------------------------------------
// Orbits
// -----------------------------------------------------------------------------

func TestComputeOrbits_ORRule(t *testing.T) {
	// Scenario 6: c90=6 forces inner; total=25 with c90=0 also forces inner.
	s, addEvent := fixture()
	recent := mustAddFriend(s, "Recent")
	veteran := mustAddFriend(s, "Veteran")
	casual := mustAddFriend(s, "Casual")
	distant := mustAddFriend(s, "Distant")

	for i := 0; i < 6; i++ {
		addEvent(daysAgo(i+1), recent)
	}
	for i := 0; i < 25; i++ {
		addEvent(daysAgo(400+i), veteran)
	}
	addEvent(daysAgo(5), casual)
	addEvent(daysAgo(6), casual)
	addEvent(daysAgo(300), distant)

	b := derive.ComputeOrbits(s.Snapshot(), testNow)
	assert.ElementsMatch(t, []string{recent, veteran}, b.Inner)
	assert.Equal(t, []string{casual}, b.Middle)
	assert.Equal(t, []string{distant}, b.Outer)
}

func TestComputeOrbits_PartitionLaw(t *testing.T) {
	s, addEvent := fixture()
	var ids []string
	for i := 0; i < 8; i++ {
		id := mustAddFriend(s, fmt.Sprintf("F%d", i))
		ids = append(ids, id)
		for j := 0; j < i*3; j++ {
			addEvent(daysAgo(j*13+1), id)
		}
	}

	b := derive.ComputeOrbits(s.Snapshot(), testNow)
	var all []string
	all = append(all, b.Inner...)
	all = append(all, b.Middle...)
	all = append(all, b.Outer...)
	assert.ElementsMatch(t, ids, all, "every friend lands in exactly one bucket")
}

// -----------------------------------------------------------------------------
// Anniversaries
// -----------------------------------------------------------------------------

func TestUpcomingAnniversaries_Birthday(t *testing.T) {
	s, _ := fixture()
	alice := mustAddFriend(s, "Alice")
	far := mustAddFriend(s, "Far")
	s.Dispatch(store.SetBirthday{ID: alice, Date: "1990-06-10"})
	s.Dispatch(store.SetBirthday{ID: far, Date: "1990-12-24"})

	items := derive.UpcomingAnniversaries(s.Snapshot(), testNow, 21)
	require.Len(t, items, 1)
	assert.Equal(t, derive.AnnivBirthday, items[0].Kind)
	assert.Equal(t, "2024-06-10", items[0].Date)
	assert.Equal(t, 9, items[0].DaysUntil)
}

func TestUpcomingAnniversaries_HalfBirthday(t *testing.T) {
	// Birthday in December; its half lands six months earlier, inside June.
	s, _ := fixture()
	alice := mustAddFriend(s, "Alice")
	s.Dispatch(store.SetBirthday{ID: alice, Date: "1990-12-15"})

	items := derive.UpcomingAnniversaries(s.Snapshot(), testNow, 21)
	require.Len(t, items, 1)
	assert.Equal(t, derive.AnnivHalfBirthday, items[0].Kind)
	assert.Equal(t, "2024-06-15", items[0].Date)
}

func TestUpcomingAnniversaries_EventAnchors(t *testing.T) {
	// First event on 2023-12-05: the 6-month projection falls on 2024-06-05,
	// within the window; the anchor excerpt and tags come along.
	s, _ := fixture()
	alice := mustAddFriend(s, "Alice")
	s.Dispatch(store.AddEvent{
		Date: "2023-12-05", Title: "Expo",
		Notes:        "visite du musée avec toute la bande #expo #paris",
		Participants: []string{alice},
	})

	items := derive.UpcomingAnniversaries(s.Snapshot(), testNow, 21)
	require.NotEmpty(t, items)

	var first6 *derive.Anniversary
	for i := range items {
		if items[i].Kind == derive.AnnivFirst6m {
			first6 = &items[i]
		}
	}
	require.NotNil(t, first6)
	assert.Equal(t, "2024-06-05", first6.Date)
	assert.Equal(t, "visite du musée avec toute", first6.AnchorText)
	assert.Equal(t, []string{"expo", "paris"}, first6.AnchorTags)
}

func TestUpcomingAnniversaries_SortedAndGrouped(t *testing.T) {
	s, _ := fixture()
	a := mustAddFriend(s, "Aimee")
	b := mustAddFriend(s, "Bruno")
	s.Dispatch(store.SetBirthday{ID: b, Date: "1990-06-03"})
	s.Dispatch(store.SetBirthday{ID: a, Date: "1991-06-03"})

	items := derive.UpcomingAnniversaries(s.Snapshot(), testNow, 21)
	require.Len(t, items, 2)
	assert.Equal(t, "Aimee", items[0].FriendName, "same day sorts by name")

	days, grouped := derive.GroupAnniversariesByDay(items)
	require.Equal(t, []string{"2024-06-03"}, days)
	assert.Len(t, grouped["2024-06-03"], 2)
}

// -----------------------------------------------------------------------------
// Network
// -----------------------------------------------------------------------------

func TestEdgesAndDegrees(t *testing.T) {
	s, _ := fixture()
	a := mustAddFriend(s, "A")
	b := mustAddFriend(s, "B")
	c := mustAddFriend(s, "C")
	s.Dispatch(store.ToggleRelationship{A: a, B: b})
	s.Dispatch(store.ToggleRelationship{A: c, B: a})

	st := s.Snapshot()
	deg := derive.DegreeMap(st)
	assert.Equal(t, 2, deg[a])
	assert.Equal(t, 1, deg[b])
	assert.Equal(t, 1, deg[c])

	edges := derive.Edges(st)
	assert.ElementsMatch(t, []derive.Edge{{A: a, B: b}, {A: a, B: c}}, edges,
		"each undirected pair emitted once")
}

// -----------------------------------------------------------------------------
// Slugs and grouping
// -----------------------------------------------------------------------------

func TestSlugify(t *testing.T) {
	testCases := []struct {
		input    string
		expected string
	}{
		{"Soirée Jeux & Crêpes", "soiree-jeux-crepes"},
		{"  --weird__input--  ", "weird-input"},
		{"***", "x"},
	}
	for _, tc := range testCases {
		assert.Equal(t, tc.expected, derive.Slugify(tc.input))
	}
}

func TestFriendAndEventSlugs(t *testing.T) {
	assert.Equal(t, "chloe-123456", derive.FriendSlug("Chloé", "abc123456"))
	assert.Equal(t, "expo-ab", derive.EventSlug("Expo", "ab"), "short ids kept whole")
}

func TestGroupEventsByDay(t *testing.T) {
	events := []store.Event{
		{ID: "e1", Date: "2024-01-01"},
		{ID: "e2", Date: "2024-03-01"},
		{ID: "e3", Date: "2024-03-01"},
	}
	days, grouped := derive.GroupEventsByDay(events)
	assert.Equal(t, []string{"2024-03-01", "2024-01-01"}, days)
	assert.Len(t, grouped["2024-03-01"], 2)
}
