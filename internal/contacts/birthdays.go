package contacts

import (
	"sort"
	"time"

	"github.com/jeanpaul/assistant/internal/errs"
)

// DefaultBirthdayWindow is the look-ahead used when no period is given.
const DefaultBirthdayWindow = 7

// UpcomingBirthday is one contact whose birthday falls inside the window.
type UpcomingBirthday struct {
	Record *Record
	// Occurrence is the next calendar date of the birthday.
	Occurrence time.Time
	// DaysUntil counts days from today to Occurrence.
	DaysUntil int
	// Celebration is Occurrence moved off the weekend onto the next Monday.
	// It can lie outside the window.
	Celebration time.Time
}

// UpcomingBirthdays lists records whose next birthday is at most periodDays
// away from today. The window test uses the raw occurrence; the weekend shift
// is applied only afterwards, to Celebration. Results are ordered by
// occurrence, ties keep book order.
func (b *AddressBook) UpcomingBirthdays(periodDays int, today time.Time) ([]UpcomingBirthday, error) {
	if periodDays < 0 {
		return nil, errs.Invalid("period must not be negative, got %d", periodDays)
	}
	today = dateOf(today)

	var out []UpcomingBirthday
	for _, rec := range b.Records() {
		bd, ok := rec.Birthday()
		if !ok {
			continue
		}
		next := occurrence(bd.Date(), today.Year(), today.Location())
		if next.Before(today) {
			next = occurrence(bd.Date(), today.Year()+1, today.Location())
		}
		days := daysBetween(today, next)
		if days > periodDays {
			continue
		}
		out = append(out, UpcomingBirthday{
			Record:      rec,
			Occurrence:  next,
			DaysUntil:   days,
			Celebration: shiftWeekend(next),
		})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Occurrence.Before(out[j].Occurrence)
	})
	return out, nil
}

// occurrence places birth's month and day in year. 29 February falls back to
// 28 February in common years.
func occurrence(birth time.Time, year int, loc *time.Location) time.Time {
	month, day := birth.Month(), birth.Day()
	if month == time.February && day == 29 && !isLeap(year) {
		day = 28
	}
	return time.Date(year, month, day, 0, 0, 0, 0, loc)
}

func shiftWeekend(d time.Time) time.Time {
	switch d.Weekday() {
	case time.Saturday:
		return d.AddDate(0, 0, 2)
	case time.Sunday:
		return d.AddDate(0, 0, 1)
	}
	return d
}

// daysBetween counts calendar days, immune to DST-length days.
func daysBetween(from, to time.Time) int {
	a := time.Date(from.Year(), from.Month(), from.Day(), 0, 0, 0, 0, time.UTC)
	z := time.Date(to.Year(), to.Month(), to.Day(), 0, 0, 0, 0, time.UTC)
	return int(z.Sub(a).Hours() / 24)
}

func isLeap(year int) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}
