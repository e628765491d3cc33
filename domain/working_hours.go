package domain

import (
	"errors"
	"fmt"
	"time"
)

var (
	ErrScheduleNotWorkingDay   = errors.New("schedule falls outside working days")
	ErrScheduleNotWorkingHours = errors.New("schedule falls outside working hours")
	ErrScheduleEndBeforeStart  = errors.New("schedule end must be after its start")
)

// WorkingHours describes when staff can be scheduled: Monday to Friday from StartHour,
// closing at WeekdayEndHour, or FridayEndHour on Fridays.
type WorkingHours struct {
	StartHour      int    `mapstructure:"start_hour" yaml:"start_hour" default:"8" validate:"min=0,max=23"`
	WeekdayEndHour int    `mapstructure:"weekday_end_hour" yaml:"weekday_end_hour" default:"17" validate:"gtfield=StartHour,max=24"`
	FridayEndHour  int    `mapstructure:"friday_end_hour" yaml:"friday_end_hour" default:"16" validate:"gtfield=StartHour,max=24"`
	Timezone       string `mapstructure:"timezone" yaml:"timezone" default:"Local"`

	loc *time.Location
}

func DefaultWorkingHours() WorkingHours {
	return WorkingHours{StartHour: 8, WeekdayEndHour: 17, FridayEndHour: 16, Timezone: "Local"}
}

// Location resolves Timezone, falling back to the process local zone.
func (w *WorkingHours) Location() *time.Location {
	if w.loc != nil {
		return w.loc
	}
	if w.Timezone == "" || w.Timezone == "Local" {
		return time.Local
	}
	loc, err := time.LoadLocation(w.Timezone)
	if err != nil {
		return time.Local
	}
	w.loc = loc
	return loc
}

func (w *WorkingHours) IsWorkingDay(t time.Time) bool {
	switch t.In(w.Location()).Weekday() {
	case time.Saturday, time.Sunday:
		return false
	}
	return true
}

func (w *WorkingHours) closingHour(t time.Time) int {
	if t.In(w.Location()).Weekday() == time.Friday {
		return w.FridayEndHour
	}
	return w.WeekdayEndHour
}

// Highlight reports whether the hour slot starting at t is a working slot.
func (w *WorkingHours) Highlight(t time.Time) bool {
	if !w.IsWorkingDay(t) {
		return false
	}
	h := t.In(w.Location()).Hour()
	return h >= w.StartHour && h < w.closingHour(t)
}

func (w *WorkingHours) minuteOfDay(t time.Time) int {
	local := t.In(w.Location())
	return local.Hour()*60 + local.Minute()
}

// ValidateSchedule checks both ends of s. The start may sit on the opening time and
// the end on the closing time.
func (w *WorkingHours) ValidateSchedule(s Schedule) error {
	if !s.End.After(s.Start) {
		return ErrScheduleEndBeforeStart
	}
	for _, bound := range []struct {
		name  string
		t     time.Time
		isEnd bool
	}{
		{"start", s.Start, false},
		{"end", s.End, true},
	} {
		if !w.IsWorkingDay(bound.t) {
			return fmt.Errorf("%w: %s is on %s", ErrScheduleNotWorkingDay, bound.name, bound.t.In(w.Location()).Weekday())
		}

		opening, closing := w.StartHour*60, w.closingHour(bound.t)*60
		m := w.minuteOfDay(bound.t)
		inside := m >= opening && m < closing
		if bound.isEnd {
			inside = m > opening && m <= closing
		}
		if !inside {
			return fmt.Errorf("%w: %s at %s is outside %02d:00-%02d:00", ErrScheduleNotWorkingHours,
				bound.name, bound.t.In(w.Location()).Format("15:04"), w.StartHour, w.closingHour(bound.t))
		}
	}
	return nil
}
