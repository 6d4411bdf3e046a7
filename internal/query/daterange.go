package query

import (
	"time"

	"github.com/bakar-bkr-studio/app-gestion-auto-entreprise/internal/models"
)

// DateRange is an inclusive range of calendar days. A zero bound is open.
type DateRange struct {
	From time.Time
	To   time.Time
}

func (r DateRange) Unbounded() bool { return r.From.IsZero() && r.To.IsZero() }

// Contains compares at day granularity so both bounds are inclusive.
func (r DateRange) Contains(t time.Time) bool {
	d := day(t)
	if !r.From.IsZero() && d.Before(day(r.From)) {
		return false
	}
	if !r.To.IsZero() && d.After(day(r.To)) {
		return false
	}
	return true
}

// ParseRange builds a range from two optional YYYY-MM-DD strings.
func ParseRange(from, to string) DateRange {
	var r DateRange
	if t, ok := models.ParseDate(from); ok {
		r.From = t
	}
	if t, ok := models.ParseDate(to); ok {
		r.To = t
	}
	return r
}

// ThisMonth spans the calendar month containing now ("Ce mois-ci").
func ThisMonth(now time.Time) DateRange {
	first := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	return DateRange{From: first, To: first.AddDate(0, 1, -1)}
}

// LastDays spans the n days ending today ("30 derniers jours").
func LastDays(now time.Time, n int) DateRange {
	today := day(now)
	return DateRange{From: today.AddDate(0, 0, -n), To: today}
}

// Preset resolves a named range; unknown names are unbounded.
func Preset(name string, now time.Time) DateRange {
	switch name {
	case "month":
		return ThisMonth(now)
	case "30days":
		return LastDays(now, 30)
	}
	return DateRange{}
}

func day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
