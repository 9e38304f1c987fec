package scheduling

import (
	"context"
	"testing"
	"time"

	"chairside/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testResource(weekly models.WeeklyAvailability) models.Resource {
	return models.Resource{ID: "res-1", Name: "Dana", Weekly: weekly}
}

// Monday 2 March 2026, with "now" far enough back that the notice window
// never interferes unless a test wants it to.
var (
	testDay = at(2026, time.March, 2, 0, 0)
	farPast = at(2026, time.February, 20, 12, 0)
)

func TestComputeSlotsAroundBusySpan(t *testing.T) {
	res := testResource(weekdayHours("09:00", "12:00"))
	busy := []models.BusySpan{
		{Start: at(2026, time.March, 2, 10, 0), End: at(2026, time.March, 2, 10, 30)},
	}

	slots := ComputeSlots(res, testDay, 30, busy, farPast)

	// 09:45 is not bookable: [09:45,10:15) overlaps the 10:00 booking.
	want := []time.Time{
		at(2026, time.March, 2, 9, 0),
		at(2026, time.March, 2, 9, 15),
		at(2026, time.March, 2, 9, 30),
		at(2026, time.March, 2, 10, 30),
		at(2026, time.March, 2, 10, 45),
		at(2026, time.March, 2, 11, 0),
		at(2026, time.March, 2, 11, 15),
		at(2026, time.March, 2, 11, 30),
	}
	assert.Equal(t, want, slots)
}

func TestComputeSlotsMinimumNotice(t *testing.T) {
	res := testResource(weekdayHours("09:00", "12:00"))
	// 24h before 11:00 on the target day: slots earlier than 11:00 are gone.
	now := at(2026, time.March, 1, 11, 0)

	slots := ComputeSlots(res, testDay, 30, nil, now)

	want := []time.Time{
		at(2026, time.March, 2, 11, 0),
		at(2026, time.March, 2, 11, 15),
		at(2026, time.March, 2, 11, 30),
	}
	assert.Equal(t, want, slots)
}

func TestComputeSlotsClosedDay(t *testing.T) {
	res := testResource(weekdayHours("09:00", "17:00"))
	sunday := at(2026, time.March, 1, 0, 0)

	assert.Empty(t, ComputeSlots(res, sunday, 30, nil, farPast))
}

func TestComputeSlotsBlockTooLong(t *testing.T) {
	res := testResource(weekdayHours("09:00", "12:00"))

	assert.Empty(t, ComputeSlots(res, testDay, 200, nil, farPast), "a 200min block cannot fit a 3h day")
	assert.Empty(t, ComputeSlots(res, testDay, 0, nil, farPast), "zero-length blocks are refused")
}

func TestComputeSlotsBlockFitsExactlyOnce(t *testing.T) {
	res := testResource(weekdayHours("09:00", "12:00"))

	slots := ComputeSlots(res, testDay, 180, nil, farPast)

	assert.Equal(t, []time.Time{at(2026, time.March, 2, 9, 0)}, slots)
}

func TestComputeSlotsGranularity(t *testing.T) {
	res := testResource(weekdayHours("09:00", "17:00"))

	slots := ComputeSlots(res, testDay, 45, nil, farPast)

	require.NotEmpty(t, slots)
	assert.Equal(t, at(2026, time.March, 2, 9, 0), slots[0])
	for i := 1; i < len(slots); i++ {
		assert.Equal(t, 15*time.Minute, slots[i].Sub(slots[i-1]), "slots step at the granularity when nothing is booked")
	}
	last := slots[len(slots)-1]
	assert.False(t, last.Add(45*time.Minute).After(at(2026, time.March, 2, 17, 0)), "every slot's block ends by close")
}

func TestComputeSlotsTrailingGapMustFitBeforeClose(t *testing.T) {
	// A basket ending in a chemical service spans its trailing gap, so the
	// whole 120min block (60 active + 30 gap + 30 active) must end by close.
	res := testResource(weekdayHours("09:00", "12:00"))

	slots := ComputeSlots(res, testDay, 120, nil, farPast)

	require.NotEmpty(t, slots)
	assert.Equal(t, at(2026, time.March, 2, 10, 0), slots[len(slots)-1],
		"10:15 would push the block past 12:00")
}

func TestAvailableSlotsEndToEnd(t *testing.T) {
	segs := newFakeSegmentRepo()
	engine := newTestEngine(segs)
	engine.Clock = func() time.Time { return farPast }
	ctx := context.Background()

	// Balayage + cut resolves to a 120min block (60 + 30 gap + 30).
	require.NoError(t, segs.InsertGroup(ctx, []models.Segment{{
		ID: "s1", GroupID: "g1", ResourceID: "res-1",
		Start: at(2026, time.March, 2, 11, 0), End: at(2026, time.March, 2, 13, 0),
	}}))

	tl, slots, err := engine.AvailableSlots(ctx, "res-1", testDay, []string{"balayage", "cut"})
	require.NoError(t, err)

	assert.Equal(t, 120, tl.TotalSpanMinutes)
	assert.Contains(t, slots, at(2026, time.March, 2, 9, 0))
	assert.Contains(t, slots, at(2026, time.March, 2, 13, 0))
	assert.NotContains(t, slots, at(2026, time.March, 2, 10, 0), "a 10:00 start would run into the 11:00 booking")
	assert.NotContains(t, slots, at(2026, time.March, 2, 12, 0))
}

func TestAvailableSlotsValidation(t *testing.T) {
	engine := newTestEngine(newFakeSegmentRepo())
	ctx := context.Background()

	_, _, err := engine.AvailableSlots(ctx, "", testDay, []string{"cut"})
	assert.True(t, IsValidation(err))

	_, _, err = engine.AvailableSlots(ctx, "res-1", testDay, nil)
	assert.True(t, IsValidation(err))

	_, _, err = engine.AvailableSlots(ctx, "res-1", testDay, []string{"no-such-service"})
	assert.Error(t, err)
}

func TestAtTimeOfDay(t *testing.T) {
	got, err := atTimeOfDay(testDay, "09:30")
	require.NoError(t, err)
	assert.Equal(t, at(2026, time.March, 2, 9, 30), got)

	for _, bad := range []string{"930", "25:00", "09:61", "ab:cd", ""} {
		_, err := atTimeOfDay(testDay, bad)
		assert.Error(t, err, bad)
	}
}
