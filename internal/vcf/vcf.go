// Package vcf imports contacts from vCard streams into the store.
package vcf

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/emersion/go-vcard"
	"github.com/tartampluch/dunbar/internal/config"
	"github.com/tartampluch/dunbar/internal/store"
	"github.com/tartampluch/dunbar/internal/timeutil"
)

// Contact is one parsed card, reduced to the fields the store keeps.
// Birthday is empty when the card has none or the value is unparseable;
// year-less BDAY values (--MM-DD) fall back to the configured leap year.
type Contact struct {
	Name     string
	Birthday string
	Notes    string
}

// Parse decodes every card in the stream. Malformed cards are skipped so a
// single bad entry does not lose the rest of the address book; cards without
// a usable name are skipped too.
func Parse(r io.Reader) ([]Contact, error) {
	log := slog.With(config.LogKeyComponent, config.CompVCF)
	decoder := vcard.NewDecoder(r)

	var contacts []Contact
	for {
		card, err := decoder.Decode()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			log.Warn(config.MsgSkippedCard, config.LogKeyError, err)
			continue
		}

		// Name strategy: FN (formatted) > N (structured).
		var name string
		if fn := card.Get(config.VCardFN); fn != nil {
			name = fn.Value
		} else if n := card.Get(config.VCardN); n != nil {
			name = n.Value
		}
		if name == "" {
			log.Warn(config.MsgSkippedCard, config.LogKeyReason, config.VCardFN)
			continue
		}

		c := Contact{Name: name}
		if bday := card.Get(config.VCardBDAY); bday != nil && bday.Value != "" {
			if date, err := parseBirthday(bday.Value); err == nil {
				c.Birthday = timeutil.FormatYMD(date)
			} else {
				log.Debug(config.MsgSkippedDate, config.LogKeyValue, bday.Value)
			}
		}
		if note := card.Get(config.VCardNote); note != nil {
			c.Notes = note.Value
		}
		contacts = append(contacts, c)
	}
	return contacts, nil
}

// Import parses the stream and adds each contact as a friend, returning the
// number imported.
func Import(s *store.Store, r io.Reader) (int, error) {
	contacts, err := Parse(r)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", config.ErrVCardParse, err)
	}

	imported := 0
	for _, c := range contacts {
		if !s.Dispatch(store.AddFriend{Name: c.Name}) {
			continue
		}
		st := s.Snapshot()
		id := st.Friends[len(st.Friends)-1].ID
		if c.Birthday != "" {
			s.Dispatch(store.SetBirthday{ID: id, Date: c.Birthday})
		}
		if c.Notes != "" {
			s.Dispatch(store.SetFriendNotes{ID: id, Notes: c.Notes})
		}
		imported++
	}

	slog.With(config.LogKeyComponent, config.CompVCF).
		Info(config.MsgVCardImported, config.LogKeyCount, imported)
	return imported, nil
}

// parseBirthday handles full and year-less vCard date values.
func parseBirthday(value string) (time.Time, error) {
	if t, err := timeutil.ParseYMD(value); err == nil {
		return t, nil
	}
	if t, err := time.Parse(config.DateFormatBasic, value); err == nil {
		return t, nil
	}
	for _, layout := range []string{config.DateFormatNoYearD, config.DateFormatNoYearB} {
		if t, err := time.Parse(layout, value); err == nil {
			return time.Date(config.DefaultLeapYear, t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), nil
		}
	}
	return time.Time{}, timeutil.ErrBadDate
}
