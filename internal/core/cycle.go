package core

import (
	"errors"
	"fmt"
	"time"
)

var (
	ErrStartDayRange  = errors.New("cycle start day must be between 1 and 28")
	ErrInvertedWindow = errors.New("cycle window end is before its start")
)

// CycleWindow is a budgeting period anchored to a configurable start day,
// distinct from the calendar month. Both bounds are inclusive: Start is the
// beginning of its day, End the end of its day. Windows are derived on
// demand and never persisted.
type CycleWindow struct {
	Start time.Time
	End   time.Time
}

func (w CycleWindow) Validate() error {
	if w.End.Before(w.Start) {
		return ErrInvertedWindow
	}
	return nil
}

// Contains reports whether t falls inside the window, bounds included.
func (w CycleWindow) Contains(t time.Time) bool {
	return !t.Before(w.Start) && !t.After(w.End)
}

func (w CycleWindow) String() string {
	return fmt.Sprintf("%s - %s", w.Start.Format("Jan 2"), w.End.Format("Jan 2"))
}

// CycleRange computes the cycle window containing the reference date for the
// given start day.
//
// If day(ref) >= startDay the window starts on startDay of the reference
// month, otherwise on startDay of the previous month. The end is one month
// after the start, minus one day. The comparison is inclusive on >=, so a
// transaction dated exactly on the start day belongs to the new cycle.
// Start days are capped at 28 so every window starts on the same day of
// month regardless of month length.
func CycleRange(ref time.Time, startDay int) (CycleWindow, error) {
	if startDay < 1 || startDay > 28 {
		return CycleWindow{}, fmt.Errorf("start day %d: %w", startDay, ErrStartDayRange)
	}

	year, month, day := ref.Date()
	if day < startDay {
		month--
	}
	// time.Date normalizes month 0 to December of the previous year.
	start := time.Date(year, month, startDay, 0, 0, 0, 0, ref.Location())
	end := start.AddDate(0, 1, -1)
	end = time.Date(end.Year(), end.Month(), end.Day(), 23, 59, 59, int(time.Second-time.Nanosecond), end.Location())

	return CycleWindow{Start: start, End: end}, nil
}
