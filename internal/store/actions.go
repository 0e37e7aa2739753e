package store

// Action is the closed set of store commands. Every mutation is one of the
// variants below, applied atomically by the reducer; invalid actions leave
// the state untouched.
type Action interface {
	// Kind names the action for logging.
	Kind() string
}

// AddFriend creates a friend with the trimmed, non-empty name.
type AddFriend struct {
	Name string
}

// RemoveFriend deletes a friend and severs every reciprocal relationship
// edge. Events the friend participated in stay with their remaining
// participants; events nobody holds anymore are dropped.
type RemoveFriend struct {
	ID string
}

// RenameFriend updates the display name.
type RenameFriend struct {
	ID   string
	Name string
}

// SetBirthday sets or clears (empty date) a friend's birthday.
type SetBirthday struct {
	ID   string
	Date string
}

// SetFriendNotes replaces the free-text notes.
type SetFriendNotes struct {
	ID    string
	Notes string
}

// ProfilePatch carries partial profile updates; nil fields stay unchanged.
type ProfilePatch struct {
	Likes        *string
	Dislikes     *string
	FoodLikes    *string
	FoodDislikes *string
	WifiPassword *string
	CarModel     *string
	Workplace    *string
	Schedule     *string
	FutureIdeas  *string
	Quotes       *string
}

// UpdateFriendProfile applies a partial profile patch.
type UpdateFriendProfile struct {
	ID    string
	Patch ProfilePatch
}

// AddImportantDate appends a dated label to a friend.
type AddImportantDate struct {
	ID    string
	Date  string
	Label string
}

// AddGift appends a gift record to a friend.
type AddGift struct {
	ID          string
	Date        string
	Occasion    string
	Description string
	Image       string
}

// AddPostcard appends a postcard record to a friend.
type AddPostcard struct {
	ID          string
	Date        string
	Location    string
	Description string
	Image       string
}

// ToggleRelationship flips the undirected edge between two distinct friends
// on both sides at once.
type ToggleRelationship struct {
	A string
	B string
}

// AddEvent creates one event shared by every listed participant. Unknown
// participant ids are dropped; the action is ignored if none remain.
type AddEvent struct {
	Date         string
	Title        string
	Notes        string
	Location     string
	Participants []string
}

// EventPatch carries partial event updates; nil fields stay unchanged.
// A non-nil Participants replaces the whole participant list.
type EventPatch struct {
	Date         *string
	Title        *string
	Notes        *string
	Location     *string
	Participants []string
}

// UpdateEvent patches an event and reconciles every friend's participation:
// new participants gain the event, removed ones lose it.
type UpdateEvent struct {
	ID    string
	Patch EventPatch
}

// RemoveEvent deletes an event from the table and from every friend's
// participation list.
type RemoveEvent struct {
	ID string
}

// SelectFriend changes the friend selection; an empty id clears it.
type SelectFriend struct {
	ID string
}

// SelectEvent changes the event selection; an empty id clears it.
type SelectEvent struct {
	ID string
}

// Load replaces the whole state. Payload validation happens in the
// persistence layer before a Load is ever dispatched.
type Load struct {
	State State
}

// Reset clears the store back to its empty initial state.
type Reset struct{}

func (AddFriend) Kind() string           { return "add_friend" }
func (RemoveFriend) Kind() string        { return "remove_friend" }
func (RenameFriend) Kind() string        { return "rename_friend" }
func (SetBirthday) Kind() string         { return "set_birthday" }
func (SetFriendNotes) Kind() string      { return "set_friend_notes" }
func (UpdateFriendProfile) Kind() string { return "update_friend_profile" }
func (AddImportantDate) Kind() string    { return "add_important_date" }
func (AddGift) Kind() string             { return "add_gift" }
func (AddPostcard) Kind() string         { return "add_postcard" }
func (ToggleRelationship) Kind() string  { return "toggle_relationship" }
func (AddEvent) Kind() string            { return "add_event" }
func (UpdateEvent) Kind() string         { return "update_event" }
func (RemoveEvent) Kind() string         { return "remove_event" }
func (SelectFriend) Kind() string        { return "select_friend" }
func (SelectEvent) Kind() string         { return "select_event" }
func (Load) Kind() string                { return "load" }
func (Reset) Kind() string               { return "reset" }
