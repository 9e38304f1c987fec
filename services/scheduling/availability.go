package scheduling

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"chairside/models"
)

// ComputeSlots returns the bookable start times for a resource on one day,
// ascending, stepped at the slot granularity from the day's opening time.
// A pure function of its inputs: any change to resource, selection (block
// length) or date must recompute; callers treat the result as derived state.
func ComputeSlots(res models.Resource, day time.Time, blockMinutes int, busy []models.BusySpan, now time.Time) []time.Time {
	if blockMinutes <= 0 {
		return nil
	}

	win, ok := res.Weekly.Window(day.Weekday())
	if !ok {
		return nil
	}

	open, err := atTimeOfDay(day, win.Start)
	if err != nil {
		return nil
	}
	close, err := atTimeOfDay(day, win.End)
	if err != nil {
		return nil
	}

	block := time.Duration(blockMinutes) * time.Minute
	lastPossibleStart := close.Add(-block)
	if lastPossibleStart.Before(open) {
		// The block cannot fit even once.
		return nil
	}

	minStart := now.Add(minNotice())
	step := slotStep()

	var slots []time.Time
	for t := open; !t.After(lastPossibleStart); t = t.Add(step) {
		if t.Before(minStart) {
			continue
		}
		if t.Add(block).After(close) {
			continue
		}
		if overlapsAny(t, t.Add(block), busy) {
			continue
		}
		slots = append(slots, t)
	}
	return slots
}

// AvailableSlots computes the full availability picture for a basket of
// services on one day: the resolved timeline plus every bookable start time.
func (se *DefaultSchedulingEngine) AvailableSlots(ctx context.Context, resourceID string, day time.Time, serviceIDs []string) (models.Timeline, []time.Time, error) {
	tl, res, err := se.timelineFor(ctx, resourceID, serviceIDs)
	if err != nil {
		return models.Timeline{}, nil, err
	}

	dayStart := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	busy, err := se.Segments.BusySpans(ctx, resourceID, dayStart, dayStart.AddDate(0, 0, 1), "")
	if err != nil {
		return models.Timeline{}, nil, fmt.Errorf("failed to fetch busy spans: %w", err)
	}

	slots := ComputeSlots(*res, dayStart, tl.TotalSpanMinutes, busy, se.now())
	return tl, slots, nil
}

// timelineFor loads the resource, catalogue entries and overrides, and lays
// out the basket. An empty basket is refused here so no caller can proceed
// with a zero-length block.
func (se *DefaultSchedulingEngine) timelineFor(ctx context.Context, resourceID string, serviceIDs []string) (models.Timeline, *models.Resource, error) {
	if resourceID == "" {
		return models.Timeline{}, nil, &ValidationError{Field: "resourceID", Message: "resource is required"}
	}
	if len(serviceIDs) == 0 {
		return models.Timeline{}, nil, &ValidationError{Field: "serviceIDs", Message: "at least one service is required"}
	}

	res, err := se.Resources.GetByID(ctx, resourceID)
	if err != nil {
		return models.Timeline{}, nil, fmt.Errorf("failed to load resource: %w", err)
	}

	services, err := se.Catalog.GetMany(ctx, serviceIDs)
	if err != nil {
		return models.Timeline{}, nil, fmt.Errorf("failed to load services: %w", err)
	}

	resolve, err := se.Catalog.ResolverFor(ctx, resourceID)
	if err != nil {
		return models.Timeline{}, nil, fmt.Errorf("failed to load overrides: %w", err)
	}

	tl := BuildTimeline(services, resolve, se.Chemical)
	if tl.Empty() {
		return models.Timeline{}, nil, &ValidationError{Field: "serviceIDs", Message: "basket resolved to an empty timeline"}
	}
	return tl, res, nil
}

// atTimeOfDay parses "HH:MM" onto the given day, in the day's location.
func atTimeOfDay(day time.Time, hhmm string) (time.Time, error) {
	parts := strings.SplitN(hhmm, ":", 2)
	if len(parts) != 2 {
		return time.Time{}, fmt.Errorf("malformed time of day %q", hhmm)
	}
	hour, err := strconv.Atoi(parts[0])
	if err != nil || hour < 0 || hour > 23 {
		return time.Time{}, fmt.Errorf("malformed hour in %q", hhmm)
	}
	min, err := strconv.Atoi(parts[1])
	if err != nil || min < 0 || min > 59 {
		return time.Time{}, fmt.Errorf("malformed minute in %q", hhmm)
	}
	return time.Date(day.Year(), day.Month(), day.Day(), hour, min, 0, 0, day.Location()), nil
}
