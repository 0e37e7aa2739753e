package ics_test

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tartampluch/dunbar/internal/derive"
	"github.com/tartampluch/dunbar/internal/ics"
	"github.com/tartampluch/dunbar/internal/timeutil"
)

var fixedNow = time.Date(2024, 6, 1, 8, 0, 0, 0, time.UTC)

func testItems() []derive.Anniversary {
	return []derive.Anniversary{
		{
			Date:       "2024-06-10",
			FriendID:   "f1",
			FriendName: "Chloé",
			Kind:       derive.AnnivBirthday,
			DaysUntil:  9,
		},
		{
			Date:       "2024-06-05",
			FriendID:   "f2",
			FriendName: "Marc",
			Kind:       derive.AnnivFirst6m,
			DaysUntil:  4,
			AnchorText: "sortie escalade en forêt",
		},
	}
}

func TestGenerate(t *testing.T) {
	gen := &ics.Generator{
		Clock: timeutil.FixedClock{Instant: fixedNow},
		FormatLabel: func(kind derive.AnnivKind, name string) string {
			return "Label for " + name
		},
	}

	data, err := gen.Generate(testItems(), "")
	require.NoError(t, err)
	out := string(data)

	assert.Contains(t, out, "BEGIN:VCALENDAR")
	assert.Contains(t, out, "SUMMARY:Label for Chloé")
	assert.Contains(t, out, "SUMMARY:Label for Marc")
	assert.Contains(t, out, "DTSTART;VALUE=DATE:20240610")
	assert.Contains(t, out, "DESCRIPTION:sortie escalade en forêt")
	assert.Equal(t, 2, strings.Count(out, "BEGIN:VEVENT"))
	assert.NotContains(t, out, "VALARM")
}

func TestGenerate_Reminder(t *testing.T) {
	gen := &ics.Generator{Clock: timeutil.FixedClock{Instant: fixedNow}}

	data, err := gen.Generate(testItems(), "-P1D")
	require.NoError(t, err)
	out := string(data)

	assert.Equal(t, 2, strings.Count(out, "BEGIN:VALARM"))
	assert.Contains(t, out, "TRIGGER:-P1D")
	assert.Contains(t, out, "ACTION:DISPLAY")
}

func TestGenerate_StableUIDs(t *testing.T) {
	gen := &ics.Generator{Clock: timeutil.FixedClock{Instant: fixedNow}}

	first, err := gen.Generate(testItems(), "")
	require.NoError(t, err)
	second, err := gen.Generate(testItems(), "")
	require.NoError(t, err)
	assert.Equal(t, string(first), string(second), "repeated exports are byte-identical under a fixed clock")
}

func TestGenerate_EmptyYieldsValidStub(t *testing.T) {
	gen := &ics.Generator{Clock: timeutil.FixedClock{Instant: fixedNow}}

	data, err := gen.Generate(nil, "")
	require.NoError(t, err)
	assert.Contains(t, string(data), "BEGIN:VCALENDAR")
	assert.Contains(t, string(data), "END:VCALENDAR")
	assert.NotContains(t, string(data), "VEVENT")
}

func TestGenerate_SkipsUnparseableDates(t *testing.T) {
	gen := &ics.Generator{Clock: timeutil.FixedClock{Instant: fixedNow}}

	items := append(testItems(), derive.Anniversary{
		Date: "someday", FriendID: "f3", FriendName: "X", Kind: derive.AnnivBirthday,
	})
	data, err := gen.Generate(items, "")
	require.NoError(t, err)
	assert.Equal(t, 2, strings.Count(string(data), "BEGIN:VEVENT"))
}
