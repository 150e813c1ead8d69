package contacts

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Thursday.
var june13 = time.Date(2024, time.June, 13, 18, 45, 0, 0, time.UTC)

func bookWithBirthdays(t *testing.T, today time.Time, birthdays map[string]string) *AddressBook {
	t.Helper()
	book := NewAddressBook()
	for name, raw := range birthdays {
		rec := newTestRecord(t, name)
		if raw != "" {
			bd, err := ParseBirthday(raw, today)
			require.NoError(t, err)
			rec.SetBirthday(bd)
		}
		require.NoError(t, book.AddRecord(rec))
	}
	return book
}

func names(list []UpcomingBirthday) []string {
	out := make([]string, 0, len(list))
	for _, u := range list {
		out = append(out, u.Record.Name())
	}
	return out
}

func TestUpcomingBirthdays_Window(t *testing.T) {
	book := bookWithBirthdays(t, june13, map[string]string{
		"InThree": "16.06.1990",
		"InTen":   "23.06.1985",
		"NoDate":  "",
	})

	got, err := book.UpcomingBirthdays(7, june13)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "InThree", got[0].Record.Name())
	assert.Equal(t, 3, got[0].DaysUntil)
	assert.Equal(t, time.Date(2024, time.June, 16, 0, 0, 0, 0, time.UTC), got[0].Occurrence)
}

func TestUpcomingBirthdays_WindowEdges(t *testing.T) {
	book := bookWithBirthdays(t, june13, map[string]string{
		"Today":     "13.06.2000",
		"Yesterday": "12.06.2000",
		"Seven":     "20.06.2000",
		"Eight":     "21.06.2000",
	})

	got, err := book.UpcomingBirthdays(7, june13)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"Today", "Seven"}, names(got))

	got, err = book.UpcomingBirthdays(0, june13)
	require.NoError(t, err)
	assert.Equal(t, []string{"Today"}, names(got))
}

func TestUpcomingBirthdays_SaturdayShiftsToMonday(t *testing.T) {
	book := bookWithBirthdays(t, june13, map[string]string{"Sat": "15.06.1990"})

	got, err := book.UpcomingBirthdays(7, june13)
	require.NoError(t, err)
	require.Len(t, got, 1)

	assert.Equal(t, time.Saturday, got[0].Occurrence.Weekday())
	assert.Equal(t, 2, got[0].DaysUntil)
	assert.Equal(t, time.Monday, got[0].Celebration.Weekday())
	assert.Equal(t, time.Date(2024, time.June, 17, 0, 0, 0, 0, time.UTC), got[0].Celebration)
}

func TestUpcomingBirthdays_SundayShiftsOneDay(t *testing.T) {
	book := bookWithBirthdays(t, june13, map[string]string{"Sun": "16.06.1990"})

	got, err := book.UpcomingBirthdays(7, june13)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, time.Date(2024, time.June, 17, 0, 0, 0, 0, time.UTC), got[0].Celebration)
}

func TestUpcomingBirthdays_FilterBeforeShift(t *testing.T) {
	book := bookWithBirthdays(t, june13, map[string]string{"Sat": "15.06.1990"})

	// Saturday is 2 days out and passes a 2-day window, the Monday
	// celebration date is 4 days out and still reported.
	got, err := book.UpcomingBirthdays(2, june13)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, 4, daysBetween(june13, got[0].Celebration))
}

func TestUpcomingBirthdays_RollsIntoNextYear(t *testing.T) {
	dec30 := time.Date(2024, time.December, 30, 9, 0, 0, 0, time.UTC)
	book := bookWithBirthdays(t, dec30, map[string]string{"NewYear": "02.01.1985"})

	got, err := book.UpcomingBirthdays(7, dec30)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, time.Date(2025, time.January, 2, 0, 0, 0, 0, time.UTC), got[0].Occurrence)
	assert.Equal(t, 3, got[0].DaysUntil)
}

func TestUpcomingBirthdays_LeapDay(t *testing.T) {
	feb25 := time.Date(2025, time.February, 25, 12, 0, 0, 0, time.UTC)
	book := bookWithBirthdays(t, feb25, map[string]string{"Leap": "29.02.2000"})

	got, err := book.UpcomingBirthdays(7, feb25)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, time.Date(2025, time.February, 28, 0, 0, 0, 0, time.UTC), got[0].Occurrence)
	assert.Equal(t, got[0].Occurrence, got[0].Celebration)
}

func TestUpcomingBirthdays_SortedByOccurrence(t *testing.T) {
	book := NewAddressBook()
	for _, c := range []struct{ name, date string }{
		{"Late", "19.06.1990"},
		{"Early", "14.06.1990"},
	} {
		rec := newTestRecord(t, c.name)
		bd, err := ParseBirthday(c.date, june13)
		require.NoError(t, err)
		rec.SetBirthday(bd)
		require.NoError(t, book.AddRecord(rec))
	}

	got, err := book.UpcomingBirthdays(7, june13)
	require.NoError(t, err)
	assert.Equal(t, []string{"Early", "Late"}, names(got))
}

func TestUpcomingBirthdays_NegativePeriod(t *testing.T) {
	_, err := NewAddressBook().UpcomingBirthdays(-1, june13)
	assert.Error(t, err)
}
