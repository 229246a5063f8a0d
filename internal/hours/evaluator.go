// Package hours decides whether a shop is open right now from its weekly
// schedule or its legacy single open/close pair.
//
// The result is a display signal. Every malformed input evaluates to closed
// and nothing is ever returned as an error to the caller.
package hours

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

// WorkingHour is one entry of a serialized weekly schedule, e.g.
// {"day":"MONDAY","open":"09:00","close":"18:00"}.
type WorkingHour struct {
	Day   string `json:"day"`
	Open  string `json:"open"`
	Close string `json:"close"`
}

type Evaluator struct {
	loc            *time.Location
	carryOvernight bool
	now            func() time.Time
	log            logrus.FieldLogger
}

type Option func(*Evaluator)

// WithOvernightCarryOver makes an overnight window that started yesterday
// count as open until its closing time today.
func WithOvernightCarryOver(on bool) Option {
	return func(e *Evaluator) { e.carryOvernight = on }
}

func WithClock(now func() time.Time) Option {
	return func(e *Evaluator) { e.now = now }
}

func WithLogger(log logrus.FieldLogger) Option {
	return func(e *Evaluator) { e.log = log }
}

// NewEvaluator builds an evaluator that resolves "today" and "now" in loc.
// loc must be the configured business timezone, never time.Local.
func NewEvaluator(loc *time.Location, opts ...Option) *Evaluator {
	if loc == nil {
		panic("hours: nil business timezone")
	}
	e := &Evaluator{
		loc: loc,
		now: time.Now,
		log: logrus.StandardLogger(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

func (e *Evaluator) Location() *time.Location { return e.loc }

// OpenNow evaluates a JSON-encoded weekly schedule against the current time.
func (e *Evaluator) OpenNow(scheduleJSON string) bool {
	if strings.TrimSpace(scheduleJSON) == "" {
		return false
	}
	schedule, err := ParseSchedule(scheduleJSON)
	if err != nil {
		e.log.WithError(err).Warn("invalid working hours json")
		return false
	}
	return e.OpenAt(schedule, e.now())
}

// OpenNowDaily evaluates the legacy open/close pair against the current time.
func (e *Evaluator) OpenNowDaily(opensAt, closesAt string) bool {
	return e.OpenDailyAt(opensAt, closesAt, e.now())
}

// ShopOpen prefers the weekly schedule and falls back to the legacy pair
// when no schedule is stored.
func (e *Evaluator) ShopOpen(scheduleJSON, opensAt, closesAt string) bool {
	if strings.TrimSpace(scheduleJSON) != "" {
		return e.OpenNow(scheduleJSON)
	}
	return e.OpenNowDaily(opensAt, closesAt)
}

// OpenAt reports whether schedule is open at the instant at. Only the first
// entry for a given day is considered.
func (e *Evaluator) OpenAt(schedule []WorkingHour, at time.Time) bool {
	if len(schedule) == 0 {
		return false
	}
	local := at.In(e.loc)
	now := sinceMidnight(local)

	w, found, err := firstWindow(schedule, dayName(local.Weekday()))
	if err != nil {
		e.log.WithError(err).Warn("invalid working hours entry")
		return false
	}
	if found && w.contains(now) {
		return true
	}

	if e.carryOvernight {
		prev, ok, err := firstWindow(schedule, dayName((local.Weekday()+6)%7))
		if err == nil && ok && prev.overnight() && now <= prev.close {
			return true
		}
	}
	return false
}

// OpenDailyAt applies the same-day/overnight rule to a single pair with no
// day matching.
func (e *Evaluator) OpenDailyAt(opensAt, closesAt string, at time.Time) bool {
	if strings.TrimSpace(opensAt) == "" || strings.TrimSpace(closesAt) == "" {
		return false
	}
	w, err := parseWindow(opensAt, closesAt)
	if err != nil {
		e.log.WithError(err).Warn("invalid opening hours")
		return false
	}
	return w.contains(sinceMidnight(at.In(e.loc)))
}

func ParseSchedule(raw string) ([]WorkingHour, error) {
	var schedule []WorkingHour
	if err := json.Unmarshal([]byte(raw), &schedule); err != nil {
		return nil, fmt.Errorf("failed to decode working hours: %w", err)
	}
	return schedule, nil
}

type window struct {
	open, close time.Duration
}

func (w window) overnight() bool { return w.close <= w.open }

func (w window) contains(now time.Duration) bool {
	if !w.overnight() {
		return now >= w.open && now <= w.close
	}
	return now >= w.open || now <= w.close
}

// firstWindow returns the window of the first well-formed entry for day.
// Entries missing a day, open or close are skipped; an entry for day whose
// times do not parse is an error.
func firstWindow(schedule []WorkingHour, day string) (window, bool, error) {
	for _, h := range schedule {
		d := strings.ToUpper(strings.TrimSpace(h.Day))
		if d == "" || d != day {
			continue
		}
		if strings.TrimSpace(h.Open) == "" || strings.TrimSpace(h.Close) == "" {
			continue
		}
		w, err := parseWindow(h.Open, h.Close)
		if err != nil {
			return window{}, false, err
		}
		return w, true, nil
	}
	return window{}, false, nil
}

func parseWindow(open, close string) (window, error) {
	o, err := parseClock(open)
	if err != nil {
		return window{}, err
	}
	c, err := parseClock(close)
	if err != nil {
		return window{}, err
	}
	return window{open: o, close: c}, nil
}

var clockLayouts = []string{"15:04", "15:04:05", "15:04:05.999999999"}

// parseClock turns "HH:MM[:SS[.fff]]" into an offset from midnight.
func parseClock(s string) (time.Duration, error) {
	s = strings.TrimSpace(s)
	for _, layout := range clockLayouts {
		t, err := time.Parse(layout, s)
		if err == nil {
			return sinceMidnight(t), nil
		}
	}
	return 0, fmt.Errorf("invalid time of day %q", s)
}

func sinceMidnight(t time.Time) time.Duration {
	return time.Duration(t.Hour())*time.Hour +
		time.Duration(t.Minute())*time.Minute +
		time.Duration(t.Second())*time.Second +
		time.Duration(t.Nanosecond())
}

func dayName(d time.Weekday) string {
	return strings.ToUpper(d.String())
}
