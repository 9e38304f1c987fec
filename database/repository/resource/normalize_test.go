package resourceRepo

import (
	"testing"
	"time"

	"chairside/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
)

func TestNormalizeWeekly_CanonicalShape(t *testing.T) {
	raw := map[string]interface{}{
		"Monday":  map[string]interface{}{"start": "09:00", "end": "17:00"},
		"Tuesday": map[string]interface{}{"off": true},
	}

	weekly := NormalizeWeekly(toBsonM(raw))

	win, ok := weekly.Window(time.Monday)
	require.True(t, ok)
	assert.Equal(t, "09:00", win.Start)
	assert.Equal(t, "17:00", win.End)

	_, ok = weekly.Window(time.Tuesday)
	assert.False(t, ok, "off day must have no window")

	_, ok = weekly.Window(time.Wednesday)
	assert.False(t, ok, "missing day must have no window")
}

func TestNormalizeWeekly_LegacyShapes(t *testing.T) {
	raw := map[string]interface{}{
		"monday": map[string]interface{}{"start": "10:00", "end": "18:00"},
		"tue":    map[string]interface{}{"start": "08:30", "end": "16:30"},
		"4":      map[string]interface{}{"start": "11:00", "end": "15:00"}, // Thursday
	}

	weekly := NormalizeWeekly(toBsonM(raw))

	mon, ok := weekly.Window(time.Monday)
	require.True(t, ok)
	assert.Equal(t, "10:00", mon.Start)

	tue, ok := weekly.Window(time.Tuesday)
	require.True(t, ok)
	assert.Equal(t, "08:30", tue.Start)

	thu, ok := weekly.Window(time.Thursday)
	require.True(t, ok)
	assert.Equal(t, "11:00", thu.Start)
}

func TestNormalizeWeekly_ShapePrecedence(t *testing.T) {
	// When several shapes disagree, title-case wins, then lowercase, then
	// short, then index.
	raw := map[string]interface{}{
		"Friday": map[string]interface{}{"start": "09:00", "end": "17:00"},
		"friday": map[string]interface{}{"start": "07:00", "end": "12:00"},
		"fri":    map[string]interface{}{"start": "06:00", "end": "11:00"},
		"5":      map[string]interface{}{"start": "05:00", "end": "10:00"},
	}

	weekly := NormalizeWeekly(toBsonM(raw))

	fri, ok := weekly.Window(time.Friday)
	require.True(t, ok)
	assert.Equal(t, "09:00", fri.Start)

	delete(raw, "Friday")
	fri, ok = NormalizeWeekly(toBsonM(raw)).Window(time.Friday)
	require.True(t, ok)
	assert.Equal(t, "07:00", fri.Start)

	delete(raw, "friday")
	fri, ok = NormalizeWeekly(toBsonM(raw)).Window(time.Friday)
	require.True(t, ok)
	assert.Equal(t, "06:00", fri.Start)

	delete(raw, "fri")
	fri, ok = NormalizeWeekly(toBsonM(raw)).Window(time.Friday)
	require.True(t, ok)
	assert.Equal(t, "05:00", fri.Start)
}

func TestNormalizeWeekly_Empty(t *testing.T) {
	weekly := NormalizeWeekly(nil)
	assert.Equal(t, models.WeeklyAvailability{}, weekly)
}

func toBsonM(m map[string]interface{}) bson.M {
	return bson.M(m)
}
