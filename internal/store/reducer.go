package store

import (
	"strings"

	"github.com/tartampluch/dunbar/internal/timeutil"
)

// apply is the single transition function. It mutates st in place and
// reports whether anything changed; validation failures leave the state
// untouched and return false. newID mints fresh ids for created entities.
func apply(st *State, a Action, newID func() string) bool {
	switch act := a.(type) {
	case AddFriend:
		return applyAddFriend(st, act, newID)
	case RemoveFriend:
		return applyRemoveFriend(st, act)
	case RenameFriend:
		return applyRenameFriend(st, act)
	case SetBirthday:
		return applySetBirthday(st, act)
	case SetFriendNotes:
		return applySetFriendNotes(st, act)
	case UpdateFriendProfile:
		return applyUpdateProfile(st, act)
	case AddImportantDate:
		return applyAddImportantDate(st, act)
	case AddGift:
		return applyAddGift(st, act)
	case AddPostcard:
		return applyAddPostcard(st, act)
	case ToggleRelationship:
		return applyToggleRelationship(st, act)
	case AddEvent:
		return applyAddEvent(st, act, newID)
	case UpdateEvent:
		return applyUpdateEvent(st, act)
	case RemoveEvent:
		return applyRemoveEvent(st, act)
	case SelectFriend:
		if st.Friend(act.ID) == nil && act.ID != "" {
			return false
		}
		st.SelectedFriendID = act.ID
		return true
	case SelectEvent:
		if _, ok := st.Events[act.ID]; !ok && act.ID != "" {
			return false
		}
		st.SelectedEventID = act.ID
		return true
	case Load:
		*st = act.State.Clone()
		recomputeLastInteraction(st, allFriendIDs(st)...)
		return true
	case Reset:
		*st = NewState()
		return true
	}
	return false
}

func applyAddFriend(st *State, act AddFriend, newID func() string) bool {
	name := strings.TrimSpace(act.Name)
	if name == "" {
		return false
	}
	st.Friends = append(st.Friends, &Friend{
		ID:            newID(),
		Name:          name,
		Relationships: NewIDSet(),
	})
	return true
}

func applyRemoveFriend(st *State, act RemoveFriend) bool {
	idx := -1
	for i, f := range st.Friends {
		if f.ID == act.ID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return false
	}

	removed := st.Friends[idx]
	st.Friends = append(st.Friends[:idx], st.Friends[idx+1:]...)
	for _, f := range st.Friends {
		f.Relationships.Remove(act.ID)
	}
	if st.SelectedFriendID == act.ID {
		st.SelectedFriendID = ""
	}

	// Events survive with their remaining participants; participant lists
	// keep the removed id as historical record. Events nobody holds anymore
	// are dropped.
	for _, evID := range removed.EventIDs {
		if len(st.holders(evID)) == 0 {
			delete(st.Events, evID)
			if st.SelectedEventID == evID {
				st.SelectedEventID = ""
			}
		}
	}
	return true
}

func applyRenameFriend(st *State, act RenameFriend) bool {
	name := strings.TrimSpace(act.Name)
	f := st.Friend(act.ID)
	if f == nil || name == "" {
		return false
	}
	f.Name = name
	return true
}

func applySetBirthday(st *State, act SetBirthday) bool {
	f := st.Friend(act.ID)
	if f == nil {
		return false
	}
	if act.Date == "" {
		f.Birthday = ""
		return true
	}
	parsed, err := timeutil.ParseYMD(act.Date)
	if err != nil {
		return false
	}
	f.Birthday = timeutil.FormatYMD(parsed)
	return true
}

func applySetFriendNotes(st *State, act SetFriendNotes) bool {
	f := st.Friend(act.ID)
	if f == nil {
		return false
	}
	f.Notes = act.Notes
	return true
}

func applyUpdateProfile(st *State, act UpdateFriendProfile) bool {
	f := st.Friend(act.ID)
	if f == nil {
		return false
	}
	p := act.Patch
	setIf := func(dst *string, src *string) {
		if src != nil {
			*dst = *src
		}
	}
	setIf(&f.Profile.Likes, p.Likes)
	setIf(&f.Profile.Dislikes, p.Dislikes)
	setIf(&f.Profile.FoodLikes, p.FoodLikes)
	setIf(&f.Profile.FoodDislikes, p.FoodDislikes)
	setIf(&f.Profile.WifiPassword, p.WifiPassword)
	setIf(&f.Profile.CarModel, p.CarModel)
	setIf(&f.Profile.Workplace, p.Workplace)
	setIf(&f.Profile.Schedule, p.Schedule)
	setIf(&f.Profile.FutureIdeas, p.FutureIdeas)
	setIf(&f.Profile.Quotes, p.Quotes)
	return true
}

func applyAddImportantDate(st *State, act AddImportantDate) bool {
	f := st.Friend(act.ID)
	if f == nil {
		return false
	}
	parsed, err := timeutil.ParseYMD(act.Date)
	if err != nil {
		return false
	}
	f.ImportantDates = append(f.ImportantDates, ImportantDate{
		Date:  timeutil.FormatYMD(parsed),
		Label: act.Label,
	})
	return true
}

func applyAddGift(st *State, act AddGift) bool {
	f := st.Friend(act.ID)
	if f == nil {
		return false
	}
	parsed, err := timeutil.ParseYMD(act.Date)
	if err != nil {
		return false
	}
	f.Gifts = append(f.Gifts, Gift{
		Date:        timeutil.FormatYMD(parsed),
		Occasion:    act.Occasion,
		Description: act.Description,
		Image:       act.Image,
	})
	return true
}

func applyAddPostcard(st *State, act AddPostcard) bool {
	f := st.Friend(act.ID)
	if f == nil {
		return false
	}
	parsed, err := timeutil.ParseYMD(act.Date)
	if err != nil {
		return false
	}
	f.Postcards = append(f.Postcards, Postcard{
		Date:        timeutil.FormatYMD(parsed),
		Location:    act.Location,
		Description: act.Description,
		Image:       act.Image,
	})
	return true
}

func applyToggleRelationship(st *State, act ToggleRelationship) bool {
	if act.A == act.B {
		return false
	}
	fa, fb := st.Friend(act.A), st.Friend(act.B)
	if fa == nil || fb == nil {
		return false
	}
	// Both sides flip together; the sets can only diverge if someone bypassed
	// the reducer, so fb follows fa's new value.
	present := fa.Relationships.Toggle(act.B)
	if present {
		fb.Relationships.Add(act.A)
	} else {
		fb.Relationships.Remove(act.A)
	}
	return true
}

func applyAddEvent(st *State, act AddEvent, newID func() string) bool {
	if strings.TrimSpace(act.Title) == "" || strings.TrimSpace(act.Notes) == "" {
		return false
	}
	parsed, err := timeutil.ParseYMD(act.Date)
	if err != nil {
		return false
	}
	participants := knownParticipants(st, act.Participants)
	if len(participants) == 0 {
		return false
	}

	ev := &Event{
		ID:           newID(),
		Date:         timeutil.FormatYMD(parsed),
		Title:        act.Title,
		Notes:        act.Notes,
		Location:     act.Location,
		Participants: participants,
	}
	st.Events[ev.ID] = ev
	for _, id := range participants {
		f := st.Friend(id)
		f.EventIDs = append(f.EventIDs, ev.ID)
	}
	recomputeLastInteraction(st, participants...)
	st.SelectedEventID = ev.ID
	return true
}

func applyUpdateEvent(st *State, act UpdateEvent) bool {
	ev, ok := st.Events[act.ID]
	if !ok {
		return false
	}

	merged := *ev
	merged.Participants = append([]string(nil), ev.Participants...)
	p := act.Patch
	if p.Date != nil {
		merged.Date = *p.Date
	}
	if p.Title != nil {
		merged.Title = *p.Title
	}
	if p.Notes != nil {
		merged.Notes = *p.Notes
	}
	if p.Location != nil {
		merged.Location = *p.Location
	}
	if p.Participants != nil {
		merged.Participants = knownParticipants(st, p.Participants)
	}

	// The merged event must still be valid; otherwise the whole update is
	// rejected and no copy changes.
	if strings.TrimSpace(merged.Title) == "" || strings.TrimSpace(merged.Notes) == "" {
		return false
	}
	parsed, err := timeutil.ParseYMD(merged.Date)
	if err != nil {
		return false
	}
	merged.Date = timeutil.FormatYMD(parsed)
	if len(merged.Participants) == 0 {
		return false
	}

	before := NewIDSet(st.holders(act.ID)...)
	after := NewIDSet(merged.Participants...)

	*ev = merged
	var touched []string
	for _, f := range st.Friends {
		switch {
		case after.Has(f.ID) && !before.Has(f.ID):
			f.EventIDs = append(f.EventIDs, act.ID)
			touched = append(touched, f.ID)
		case before.Has(f.ID) && !after.Has(f.ID):
			f.EventIDs = removeID(f.EventIDs, act.ID)
			touched = append(touched, f.ID)
		case after.Has(f.ID):
			// Still a participant; the date may have moved.
			touched = append(touched, f.ID)
		}
	}
	recomputeLastInteraction(st, touched...)
	return true
}

func applyRemoveEvent(st *State, act RemoveEvent) bool {
	if _, ok := st.Events[act.ID]; !ok {
		return false
	}
	delete(st.Events, act.ID)
	var touched []string
	for _, f := range st.Friends {
		n := len(f.EventIDs)
		f.EventIDs = removeID(f.EventIDs, act.ID)
		if len(f.EventIDs) != n {
			touched = append(touched, f.ID)
		}
	}
	recomputeLastInteraction(st, touched...)
	if st.SelectedEventID == act.ID {
		st.SelectedEventID = ""
	}
	return true
}

// knownParticipants filters to existing friend ids, deduplicated, order kept.
func knownParticipants(st *State, ids []string) []string {
	var out []string
	seen := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		if st.Friend(id) != nil {
			out = append(out, id)
		}
	}
	return out
}

func removeID(ids []string, id string) []string {
	out := ids[:0]
	for _, v := range ids {
		if v != id {
			out = append(out, v)
		}
	}
	return out
}

func allFriendIDs(st *State) []string {
	out := make([]string, len(st.Friends))
	for i, f := range st.Friends {
		out[i] = f.ID
	}
	return out
}

// recomputeLastInteraction refreshes the derived most-recent-event date for
// the given friends. Dates are zero-padded YYYY-MM-DD, so string comparison
// matches chronological order.
func recomputeLastInteraction(st *State, friendIDs ...string) {
	for _, id := range friendIDs {
		f := st.Friend(id)
		if f == nil {
			continue
		}
		last := ""
		for _, evID := range f.EventIDs {
			if ev, ok := st.Events[evID]; ok && ev.Date > last {
				last = ev.Date
			}
		}
		f.LastInteraction = last
	}
}
