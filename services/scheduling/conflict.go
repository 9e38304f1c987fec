package scheduling

import (
	"context"
	"fmt"
	"time"

	"chairside/models"
)

// Overlaps tests two half-open intervals: [aStart,aEnd) overlaps
// [bStart,bEnd) iff aStart < bEnd && aEnd > bStart. Back-to-back segments
// sharing a boundary do not overlap.
func Overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return aStart.Before(bEnd) && aEnd.After(bStart)
}

func overlapsAny(start, end time.Time, busy []models.BusySpan) bool {
	for _, b := range busy {
		if Overlaps(start, end, b.Start, b.End) {
			return true
		}
	}
	return false
}

// HasConflict queries busy spans over the range covered by the proposed
// segments and tests every segment against every span. excludeGroupID leaves
// a group's own segments out of the check (reschedules).
func (se *DefaultSchedulingEngine) HasConflict(ctx context.Context, resourceID string, segments []models.Segment, excludeGroupID string) (bool, error) {
	if len(segments) == 0 {
		return false, nil
	}

	from, to := segments[0].Start, segments[0].End
	for _, seg := range segments[1:] {
		if seg.Start.Before(from) {
			from = seg.Start
		}
		if seg.End.After(to) {
			to = seg.End
		}
	}

	busy, err := se.Segments.BusySpans(ctx, resourceID, from, to, excludeGroupID)
	if err != nil {
		return false, fmt.Errorf("failed to fetch busy spans: %w", err)
	}

	for _, seg := range segments {
		if overlapsAny(seg.Start, seg.End, busy) {
			return true, nil
		}
	}
	return false, nil
}
