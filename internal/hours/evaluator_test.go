package hours

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ist(t *testing.T) *time.Location {
	t.Helper()
	loc, err := time.LoadLocation("Asia/Kolkata")
	require.NoError(t, err)
	return loc
}

// 2026-10-12 is a Monday, 2026-10-16 a Friday.
func at(loc *time.Location, day, hour, min int) time.Time {
	return time.Date(2026, time.October, day, hour, min, 0, 0, loc)
}

func TestOpenAtSameDayWindow(t *testing.T) {
	loc := ist(t)
	e := NewEvaluator(loc)
	schedule := []WorkingHour{{Day: "MONDAY", Open: "09:00", Close: "18:00"}}

	assert.True(t, e.OpenAt(schedule, at(loc, 12, 10, 0)))
	assert.False(t, e.OpenAt(schedule, at(loc, 12, 19, 0)))
	assert.True(t, e.OpenAt(schedule, at(loc, 12, 9, 0)), "opening minute is inclusive")
	assert.True(t, e.OpenAt(schedule, at(loc, 12, 18, 0)), "closing minute is inclusive")
	assert.False(t, e.OpenAt(schedule, at(loc, 13, 10, 0)), "no entry for tuesday")
}

func TestOpenAtOvernightWindowStartDayOnly(t *testing.T) {
	loc := ist(t)
	e := NewEvaluator(loc)
	schedule := []WorkingHour{{Day: "FRIDAY", Open: "22:00", Close: "06:00"}}

	assert.True(t, e.OpenAt(schedule, at(loc, 16, 23, 30)))
	assert.False(t, e.OpenAt(schedule, at(loc, 17, 5, 0)))
	assert.False(t, e.OpenAt(schedule, at(loc, 16, 12, 0)))
}

func TestOpenAtOvernightCarryOver(t *testing.T) {
	loc := ist(t)
	e := NewEvaluator(loc, WithOvernightCarryOver(true))
	schedule := []WorkingHour{{Day: "FRIDAY", Open: "22:00", Close: "06:00"}}

	assert.True(t, e.OpenAt(schedule, at(loc, 17, 5, 0)))
	assert.False(t, e.OpenAt(schedule, at(loc, 17, 7, 0)))
}

func TestOpenAtCarryOverIgnoresSameDayWindows(t *testing.T) {
	loc := ist(t)
	e := NewEvaluator(loc, WithOvernightCarryOver(true))
	schedule := []WorkingHour{{Day: "FRIDAY", Open: "09:00", Close: "18:00"}}

	assert.False(t, e.OpenAt(schedule, at(loc, 17, 5, 0)))
}

func TestOpenAtNormalizesDay(t *testing.T) {
	loc := ist(t)
	e := NewEvaluator(loc)
	schedule := []WorkingHour{{Day: "  monday ", Open: "09:00", Close: "18:00"}}

	assert.True(t, e.OpenAt(schedule, at(loc, 12, 10, 0)))
}

func TestOpenAtSkipsIncompleteEntries(t *testing.T) {
	loc := ist(t)
	e := NewEvaluator(loc)
	schedule := []WorkingHour{
		{Day: "", Open: "00:00", Close: "23:59"},
		{Day: "MONDAY", Open: "", Close: "18:00"},
		{Day: "MONDAY", Open: "09:00", Close: "18:00"},
	}

	assert.True(t, e.OpenAt(schedule, at(loc, 12, 10, 0)))
}

func TestOpenAtUnparseableTimeIsClosed(t *testing.T) {
	loc := ist(t)
	e := NewEvaluator(loc)
	schedule := []WorkingHour{{Day: "MONDAY", Open: "nine", Close: "18:00"}}

	assert.False(t, e.OpenAt(schedule, at(loc, 12, 10, 0)))
}

func TestOpenAtUsesBusinessTimezone(t *testing.T) {
	loc := ist(t)
	e := NewEvaluator(loc)
	schedule := []WorkingHour{{Day: "MONDAY", Open: "09:00", Close: "18:00"}}

	// 04:30 UTC on Monday is 10:00 in IST.
	utc := time.Date(2026, time.October, 12, 4, 30, 0, 0, time.UTC)
	assert.True(t, e.OpenAt(schedule, utc))
}

func TestOpenNowDecodesJSON(t *testing.T) {
	loc := ist(t)
	clock := func() time.Time { return at(loc, 12, 10, 0) }
	e := NewEvaluator(loc, WithClock(clock))

	assert.True(t, e.OpenNow(`[{"day":"MONDAY","open":"09:00","close":"18:00"}]`))
	assert.True(t, e.OpenNow(`[{"day":"MONDAY","open":"09:00:00","close":"18:00:00"}]`))
	assert.False(t, e.OpenNow(`[]`))
	assert.False(t, e.OpenNow(``))
	assert.False(t, e.OpenNow(`{not json`))
}

func TestOpenDailyAt(t *testing.T) {
	loc := ist(t)
	e := NewEvaluator(loc)

	assert.True(t, e.OpenDailyAt("09:00", "18:00", at(loc, 13, 12, 0)))
	assert.False(t, e.OpenDailyAt("09:00", "18:00", at(loc, 13, 20, 0)))
	assert.True(t, e.OpenDailyAt("22:00", "06:00", at(loc, 13, 2, 0)))
	assert.True(t, e.OpenDailyAt("22:00", "06:00", at(loc, 13, 23, 0)))
	assert.False(t, e.OpenDailyAt("22:00", "06:00", at(loc, 13, 12, 0)))
	assert.False(t, e.OpenDailyAt("", "06:00", at(loc, 13, 2, 0)))
	assert.False(t, e.OpenDailyAt("bad", "06:00", at(loc, 13, 2, 0)))
}

func TestShopOpenPrefersWeeklySchedule(t *testing.T) {
	loc := ist(t)
	clock := func() time.Time { return at(loc, 12, 20, 0) }
	e := NewEvaluator(loc, WithClock(clock))

	weekly := `[{"day":"MONDAY","open":"09:00","close":"18:00"}]`
	assert.False(t, e.ShopOpen(weekly, "00:00", "23:59"))
	assert.True(t, e.ShopOpen("", "00:00", "23:59"))
	assert.False(t, e.ShopOpen("  ", "", ""))
}

func TestNewEvaluatorRejectsNilLocation(t *testing.T) {
	assert.Panics(t, func() { NewEvaluator(nil) })
}
