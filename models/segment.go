package models

import "time"

// Segment statuses.
const (
	SegmentStatusBooked = "booked"
	SegmentStatusHold   = "hold"
)

// Segment is the atomic booked unit: one service's time range for a resource.
// Invariant: End = Start + DurationMin minutes.
type Segment struct {
	ID          string    `bson:"id" json:"id"`
	GroupID     string    `bson:"group_id" json:"group_id"`
	ResourceID  string    `bson:"resource_id" json:"resource_id"`
	ClientID    string    `bson:"client_id,omitempty" json:"client_id,omitempty"`
	Start       time.Time `bson:"start" json:"start"`
	End         time.Time `bson:"end" json:"end"`
	Title       string    `bson:"title" json:"title"`
	Category    string    `bson:"category,omitempty" json:"category,omitempty"`
	Price       *float64  `bson:"price,omitempty" json:"price,omitempty"`
	DurationMin int       `bson:"duration_min" json:"duration_min"`
	Status      string    `bson:"status" json:"status"`
	Locked      bool      `bson:"locked,omitempty" json:"locked,omitempty"`
	CreatedAt   time.Time `bson:"created_at" json:"created_at"`
}

// BookingGroup is the set of segments created from one basket or one
// recurrence occurrence, sharing a group id. Segments are ordered by start.
type BookingGroup struct {
	GroupID  string    `json:"group_id"`
	Segments []Segment `json:"segments"`
}

// Start returns the group's anchor time (start of the earliest segment).
func (g BookingGroup) Start() time.Time {
	if len(g.Segments) == 0 {
		return time.Time{}
	}
	return g.Segments[0].Start
}

// BusySpan is a read-only interval projection of an existing segment, used
// only for overlap testing.
type BusySpan struct {
	Start time.Time `bson:"start" json:"start"`
	End   time.Time `bson:"end" json:"end"`
}
