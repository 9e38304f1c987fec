package models

import "time"

// Recurrence patterns.
const (
	PatternWeekly      = "weekly"
	PatternFortnightly = "fortnightly"
	PatternMonthly     = "monthly"
	PatternMonthlyNth  = "monthly_nth_day"
	PatternYearly      = "yearly"
)

// BlueprintItem is one segment of a blueprint, expressed as offset/duration
// so occurrences can be stamped out without re-deriving pricing.
type BlueprintItem struct {
	OffsetMin   int      `json:"offset_min"`
	DurationMin int      `json:"duration_min"`
	Title       string   `json:"title"`
	Category    string   `json:"category,omitempty"`
	Price       *float64 `json:"price,omitempty"`
}

// RecurrenceBlueprint is an immutable snapshot of one booking group's segment
// structure plus the anchor wall-clock time.
type RecurrenceBlueprint struct {
	ResourceID string          `json:"resource_id"`
	ClientID   string          `json:"client_id,omitempty"`
	Base       time.Time       `json:"base"`
	Items      []BlueprintItem `json:"items"`
}

// SeriesResult reports the outcome of projecting a blueprint forward.
// Created and Skipped together cover every requested occurrence.
type SeriesResult struct {
	Created []BookingGroup `json:"created"`
	Skipped []time.Time    `json:"skipped"`
}
