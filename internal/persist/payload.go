// Package persist converts store state to and from the dunbar-v1 JSON
// payload and moves it through a key-value persistence port. The payload
// keeps the historical denormalized shape (one embedded event copy per
// participant); the loader merges copies back into the normalized table.
package persist

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/tartampluch/dunbar/internal/config"
	"github.com/tartampluch/dunbar/internal/store"
)

// Import rejection sentinels. Everything else in the store fails silently;
// these are surfaced because a silently discarded import would look like
// data loss.
var (
	ErrEmptyPayload    = errors.New(config.ErrPayloadEmpty)
	ErrBadSchema       = errors.New(config.ErrPayloadSchema)
	ErrFriendsMissing  = errors.New(config.ErrPayloadFriends)
	ErrMalformed       = errors.New(config.ErrPayloadDecode)
	ErrDuplicateFriend = errors.New(config.ErrPayloadDuplicate)
)

// Payload is the persisted/exported dunbar-v1 document.
type Payload struct {
	Schema           string          `json:"schema"`
	Version          string          `json:"version"`
	SavedAt          string          `json:"savedAt"`
	SelectedFriendID *string         `json:"selectedFriendId"`
	Friends          []FriendPayload `json:"friends"`
}

// FriendPayload is one friend with rich-profile fields flattened and events
// embedded per participant, matching the original wire shape.
type FriendPayload struct {
	ID       string  `json:"id" validate:"required"`
	Name     string  `json:"name" validate:"required"`
	Birthday *string `json:"birthday"`
	Notes    string  `json:"notes"`

	Likes        string `json:"likes"`
	Dislikes     string `json:"dislikes"`
	FoodLikes    string `json:"foodLikes"`
	FoodDislikes string `json:"foodDislikes"`
	WifiPassword string `json:"wifiPassword"`
	CarModel     string `json:"carModel"`
	Workplace    string `json:"workplace"`
	Schedule     string `json:"schedule"`
	FutureIdeas  string `json:"futureIdeas"`
	Quotes       string `json:"quotes"`

	ImportantDates []ImportantDatePayload `json:"importantDates"`
	Gifts          []GiftPayload          `json:"gifts"`
	Postcards      []PostcardPayload      `json:"postcards"`

	Relationships []string       `json:"relationships"`
	Events        []EventPayload `json:"events" validate:"dive"`
}

type ImportantDatePayload struct {
	Date  string `json:"date"`
	Label string `json:"label"`
}

type GiftPayload struct {
	Date        string `json:"date"`
	Occasion    string `json:"occasion"`
	Description string `json:"description"`
	Image       string `json:"image"`
}

type PostcardPayload struct {
	Date        string `json:"date"`
	Location    string `json:"location"`
	Description string `json:"description"`
	Image       string `json:"image"`
}

type EventPayload struct {
	ID           string   `json:"id" validate:"required"`
	Date         string   `json:"date" validate:"required"`
	Title        string   `json:"title"`
	Notes        string   `json:"notes"`
	Location     string   `json:"location,omitempty"`
	Participants []string `json:"participants"`
}

var validate = validator.New()

// Encode renders a state snapshot as a dunbar-v1 JSON document. savedAt is
// taken from now so exports stay reproducible under a fixed clock.
func Encode(st store.State, now time.Time) ([]byte, error) {
	p := Payload{
		Schema:  config.DataSchema,
		Version: config.DataVersion,
		SavedAt: now.UTC().Format(time.RFC3339),
		Friends: make([]FriendPayload, 0, len(st.Friends)),
	}
	if st.SelectedFriendID != "" {
		id := st.SelectedFriendID
		p.SelectedFriendID = &id
	}

	for _, f := range st.Friends {
		fp := FriendPayload{
			ID:           f.ID,
			Name:         f.Name,
			Notes:        f.Notes,
			Likes:        f.Profile.Likes,
			Dislikes:     f.Profile.Dislikes,
			FoodLikes:    f.Profile.FoodLikes,
			FoodDislikes: f.Profile.FoodDislikes,
			WifiPassword: f.Profile.WifiPassword,
			CarModel:     f.Profile.CarModel,
			Workplace:    f.Profile.Workplace,
			Schedule:     f.Profile.Schedule,
			FutureIdeas:  f.Profile.FutureIdeas,
			Quotes:       f.Profile.Quotes,

			ImportantDates: make([]ImportantDatePayload, 0, len(f.ImportantDates)),
			Gifts:          make([]GiftPayload, 0, len(f.Gifts)),
			Postcards:      make([]PostcardPayload, 0, len(f.Postcards)),
			Relationships:  f.Relationships.Sorted(),
			Events:         make([]EventPayload, 0, len(f.EventIDs)),
		}
		if f.Birthday != "" {
			b := f.Birthday
			fp.Birthday = &b
		}
		for _, d := range f.ImportantDates {
			fp.ImportantDates = append(fp.ImportantDates, ImportantDatePayload(d))
		}
		for _, g := range f.Gifts {
			fp.Gifts = append(fp.Gifts, GiftPayload(g))
		}
		for _, pc := range f.Postcards {
			fp.Postcards = append(fp.Postcards, PostcardPayload(pc))
		}
		for _, evID := range f.EventIDs {
			ev, ok := st.Events[evID]
			if !ok {
				continue
			}
			fp.Events = append(fp.Events, EventPayload{
				ID:           ev.ID,
				Date:         ev.Date,
				Title:        ev.Title,
				Notes:        ev.Notes,
				Location:     ev.Location,
				Participants: append([]string(nil), ev.Participants...),
			})
		}
		p.Friends = append(p.Friends, fp)
	}

	return json.MarshalIndent(p, "", "  ")
}

// Decode parses and validates a dunbar-v1 document into a normalized state.
// Any returned error means the caller's current state must stay untouched.
func Decode(data []byte) (store.State, error) {
	st := store.NewState()
	if len(bytes.TrimSpace(data)) == 0 {
		return st, ErrEmptyPayload
	}

	// friends is kept raw so a missing key or non-array value maps to the
	// dedicated rejection instead of a generic JSON error.
	var outer struct {
		Schema           string          `json:"schema"`
		SelectedFriendID *string         `json:"selectedFriendId"`
		Friends          json.RawMessage `json:"friends"`
	}
	if err := json.Unmarshal(data, &outer); err != nil {
		return st, fmt.Errorf("%w: %w", ErrMalformed, err)
	}
	if outer.Schema != "" && outer.Schema != config.DataSchema {
		return st, fmt.Errorf("%w: %q", ErrBadSchema, outer.Schema)
	}
	trimmed := bytes.TrimSpace(outer.Friends)
	if len(trimmed) == 0 || trimmed[0] != '[' {
		return st, ErrFriendsMissing
	}

	var friends []FriendPayload
	if err := json.Unmarshal(trimmed, &friends); err != nil {
		return st, fmt.Errorf("%w: %w", ErrFriendsMissing, err)
	}

	log := slog.With(config.LogKeyComponent, config.CompPersist)
	known := make(map[string]struct{}, len(friends))
	for _, fp := range friends {
		if err := validate.Struct(fp); err != nil {
			return st, fmt.Errorf("%s: %w", config.ErrPayloadValidation, err)
		}
		if _, dup := known[fp.ID]; dup {
			return st, fmt.Errorf("%w: %q", ErrDuplicateFriend, fp.ID)
		}
		known[fp.ID] = struct{}{}
	}

	for _, fp := range friends {
		f := &store.Friend{
			ID:    fp.ID,
			Name:  fp.Name,
			Notes: fp.Notes,
			Profile: store.Profile{
				Likes:        fp.Likes,
				Dislikes:     fp.Dislikes,
				FoodLikes:    fp.FoodLikes,
				FoodDislikes: fp.FoodDislikes,
				WifiPassword: fp.WifiPassword,
				CarModel:     fp.CarModel,
				Workplace:    fp.Workplace,
				Schedule:     fp.Schedule,
				FutureIdeas:  fp.FutureIdeas,
				Quotes:       fp.Quotes,
			},
			Relationships: store.NewIDSet(),
		}
		if fp.Birthday != nil {
			f.Birthday = *fp.Birthday
		}
		for _, d := range fp.ImportantDates {
			f.ImportantDates = append(f.ImportantDates, store.ImportantDate(d))
		}
		for _, g := range fp.Gifts {
			f.Gifts = append(f.Gifts, store.Gift(g))
		}
		for _, pc := range fp.Postcards {
			f.Postcards = append(f.Postcards, store.Postcard(pc))
		}

		for _, rel := range fp.Relationships {
			if _, ok := known[rel]; !ok {
				log.Warn(config.MsgDroppedRel,
					config.LogKeyFriendID, fp.ID, config.LogKeyValue, rel)
				continue
			}
			if rel != fp.ID {
				f.Relationships.Add(rel)
			}
		}

		for _, ep := range fp.Events {
			mergeEvent(&st, ep)
			// Repeated copies of one id under the same friend collapse to a
			// single reference: each holder carries exactly one.
			if slices.Contains(f.EventIDs, ep.ID) {
				continue
			}
			f.EventIDs = append(f.EventIDs, ep.ID)
		}
		st.Friends = append(st.Friends, f)
	}

	// Symmetry restored by union: either side listing the edge is enough.
	for _, f := range st.Friends {
		for other := range f.Relationships {
			st.Friend(other).Relationships.Add(f.ID)
		}
	}

	if outer.SelectedFriendID != nil {
		if _, ok := known[*outer.SelectedFriendID]; ok {
			st.SelectedFriendID = *outer.SelectedFriendID
		}
	}
	return st, nil
}

// mergeEvent folds one embedded copy into the normalized table, unioning
// participant lists across copies. Later copies never override scalar
// fields; the first copy wins, matching the original's merge order.
func mergeEvent(st *store.State, ep EventPayload) {
	ev, ok := st.Events[ep.ID]
	if !ok {
		st.Events[ep.ID] = &store.Event{
			ID:           ep.ID,
			Date:         ep.Date,
			Title:        ep.Title,
			Notes:        ep.Notes,
			Location:     ep.Location,
			Participants: append([]string(nil), ep.Participants...),
		}
		return
	}
	for _, pid := range ep.Participants {
		found := false
		for _, existing := range ev.Participants {
			if existing == pid {
				found = true
				break
			}
		}
		if !found {
			ev.Participants = append(ev.Participants, pid)
		}
	}
}
