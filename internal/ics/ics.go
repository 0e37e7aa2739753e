// Package ics exports upcoming anniversaries as an iCalendar feed.
package ics

import (
	"bytes"
	"crypto/sha256"
	"fmt"
	"log/slog"

	"github.com/emersion/go-ical"
	"github.com/tartampluch/dunbar/internal/config"
	"github.com/tartampluch/dunbar/internal/derive"
	"github.com/tartampluch/dunbar/internal/timeutil"
)

// Generator renders anniversary lists as VCALENDAR data.
type Generator struct {
	Clock timeutil.Clock

	// FormatLabel injects localized event summaries; nil falls back to a
	// plain "kind: name" label.
	FormatLabel func(kind derive.AnnivKind, friendName string) string
}

// Generate encodes the given anniversaries as an iCalendar document. An
// empty list yields a minimal valid VCALENDAR stub so feed consumers never
// see an invalid body. reminderTrigger, when non-empty, attaches a DISPLAY
// alarm with that ISO-8601 trigger to every event.
func (g *Generator) Generate(items []derive.Anniversary, reminderTrigger string) ([]byte, error) {
	log := slog.With(config.LogKeyComponent, config.CompICS)

	if len(items) == 0 {
		log.Debug(config.MsgCalWritten, config.LogKeyCount, 0)
		return []byte(config.StubVCalendar), nil
	}

	cal := ical.NewCalendar()
	cal.Props.SetText(config.PropVersion, config.ICalVersion)
	cal.Props.SetText(config.PropProdid, config.ICalProdid)
	cal.Props.SetText(config.PropXWRCalName, config.ICalCalName)
	cal.Props.SetText(config.PropCalScale, config.ICalScale)
	cal.Props.SetText(config.PropMethod, config.ICalMethod)

	now := g.Clock.Now()
	dtStampProp := ical.NewProp(config.PropDTStamp)
	dtStampProp.SetDateTime(now.UTC())

	for _, item := range items {
		date, err := timeutil.ParseYMD(item.Date)
		if err != nil {
			log.Debug(config.MsgSkippedDate, config.LogKeyValue, item.Date)
			continue
		}

		summary := fmt.Sprintf("%s: %s", item.Kind, item.FriendName)
		if g.FormatLabel != nil {
			summary = g.FormatLabel(item.Kind, item.FriendName)
		}

		event := ical.NewEvent()
		event.Props.SetText(config.PropUID, eventUID(item))
		event.Props.SetText(config.PropSummary, summary)
		if item.AnchorText != "" {
			event.Props.SetText(config.PropDescription, item.AnchorText)
		}

		dtStartProp := ical.NewProp(config.PropDTStart)
		dtStartProp.SetDate(date)
		event.Props.Set(dtStartProp)
		event.Props.Set(dtStampProp)

		if reminderTrigger != "" {
			addAlarm(event, reminderTrigger, summary)
		}
		cal.Children = append(cal.Children, event.Component)
	}

	var buf bytes.Buffer
	if err := ical.NewEncoder(&buf).Encode(cal); err != nil {
		return nil, fmt.Errorf("%s: %w", config.ErrICalEncode, err)
	}
	log.Info(config.MsgCalWritten, config.LogKeyCount, len(cal.Children))
	return buf.Bytes(), nil
}

// eventUID derives a stable identifier from the anniversary itself, so
// repeated exports keep the same UID per occurrence.
func eventUID(item derive.Anniversary) string {
	input := fmt.Sprintf(config.FormatHashInput, item.FriendID, string(item.Kind), config.UIDSalt+item.Date)
	hash := sha256.Sum256([]byte(input))
	base := fmt.Sprintf("%x", hash[:config.UIDHashLength])
	return fmt.Sprintf(config.FormatUID, base, item.Date, config.ICalDomain)
}

func addAlarm(event *ical.Event, trigger, description string) {
	alarm := ical.NewComponent(config.ICalComponent)
	alarm.Props.SetText(config.PropAction, config.ICalAction)
	alarm.Props.SetText(config.PropDescription, description)

	// Set trigger manually to avoid "VALUE=TEXT" param
	triggerProp := ical.NewProp(config.PropTrigger)
	triggerProp.Value = trigger
	alarm.Props.Set(triggerProp)

	event.Children = append(event.Children, alarm)
}
