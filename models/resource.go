package models

import "time"

// DayWindow is a single opening window for one weekday.
// Times are wall-clock "HH:MM" strings in the salon's timezone.
type DayWindow struct {
	Start string `bson:"start,omitempty" json:"start,omitempty"`
	End   string `bson:"end,omitempty" json:"end,omitempty"`
	Off   bool   `bson:"off,omitempty" json:"off,omitempty"`
}

// WeeklyAvailability is the canonical opening-hours value object: at most one
// window per weekday. Legacy key shapes are normalized into this at the
// storage boundary (see repository/resource).
type WeeklyAvailability map[time.Weekday]DayWindow

// Window returns the opening window for a weekday, or ok=false when the day
// is marked off or has no window at all.
func (w WeeklyAvailability) Window(day time.Weekday) (DayWindow, bool) {
	win, found := w[day]
	if !found || win.Off || win.Start == "" || win.End == "" {
		return DayWindow{}, false
	}
	return win, true
}

// Resource is a bookable staff member.
type Resource struct {
	ID        string             `bson:"id" json:"id"`
	Name      string             `bson:"name" json:"name"`
	Weekly    WeeklyAvailability `bson:"-" json:"weekly"`
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`
}
