package scheduling

import (
	"context"
	"errors"
	"fmt"
	"time"

	segmentRepo "chairside/database/repository/segment"
	"chairside/models"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"chairside/utils"
)

// BlueprintFromGroup snapshots a booking group's segment structure so future
// occurrences can be stamped out without re-deriving pricing.
func BlueprintFromGroup(group models.BookingGroup) (models.RecurrenceBlueprint, error) {
	if len(group.Segments) == 0 {
		return models.RecurrenceBlueprint{}, &ValidationError{Field: "groupID", Message: "group has no segments"}
	}

	base := group.Segments[0].Start
	bp := models.RecurrenceBlueprint{
		ResourceID: group.Segments[0].ResourceID,
		ClientID:   group.Segments[0].ClientID,
		Base:       base,
	}
	for _, seg := range group.Segments {
		bp.Items = append(bp.Items, models.BlueprintItem{
			OffsetMin:   int(seg.Start.Sub(base) / time.Minute),
			DurationMin: seg.DurationMin,
			Title:       seg.Title,
			Category:    seg.Category,
			Price:       seg.Price,
		})
	}
	return bp, nil
}

// GenerateSeries projects an existing group forward. Every occurrence is
// all-or-nothing; the series as a whole is best-effort, so skipped
// occurrences are reported rather than treated as errors.
func (se *DefaultSchedulingEngine) GenerateSeries(ctx context.Context, groupID, pattern string, occurrences, dayOfMonth int, actorRef string) (*models.SeriesResult, error) {
	segments, err := se.Segments.GroupSegments(ctx, groupID)
	if err != nil {
		return nil, fmt.Errorf("failed to load group %s: %w", groupID, err)
	}

	bp, err := BlueprintFromGroup(models.BookingGroup{GroupID: groupID, Segments: segments})
	if err != nil {
		return nil, err
	}
	return se.generateFromBlueprint(ctx, bp, pattern, occurrences, dayOfMonth, actorRef)
}

func (se *DefaultSchedulingEngine) generateFromBlueprint(ctx context.Context, bp models.RecurrenceBlueprint, pattern string, occurrences, dayOfMonth int, actorRef string) (*models.SeriesResult, error) {
	if occurrences <= 0 {
		return nil, &ValidationError{Field: "occurrences", Message: "must be at least 1"}
	}
	if err := validatePattern(pattern, dayOfMonth); err != nil {
		return nil, err
	}

	logger := utils.GetLogger()
	result := &models.SeriesResult{}

	for i := 1; i <= occurrences; i++ {
		anchor := advanceAnchor(bp.Base, pattern, i, dayOfMonth)

		group := materializeOccurrence(bp, anchor, se.now().UTC())
		conflicted, err := se.HasConflict(ctx, bp.ResourceID, group.Segments, "")
		if err != nil {
			return result, fmt.Errorf("conflict check failed for occurrence %d: %w", i, err)
		}
		if conflicted {
			// The whole occurrence is skipped; the series continues.
			result.Skipped = append(result.Skipped, anchor)
			continue
		}

		if err := se.Segments.InsertGroup(ctx, group.Segments); err != nil {
			var partial *segmentRepo.PartialInsertError
			if errors.As(err, &partial) {
				return result, &PartialPersistenceError{
					GroupID: partial.GroupID,
					Written: partial.Written,
					Total:   partial.Total,
					Err:     partial.Err,
				}
			}
			return result, fmt.Errorf("failed to persist occurrence %d: %w", i, err)
		}
		result.Created = append(result.Created, group)
	}

	se.recordAudit(ctx, models.AuditEntry{
		Action:   "series_generated",
		ActorRef: actorRef,
		After:    result,
		Reason:   pattern,
	})
	logger.Info("recurring series generated",
		zap.String("pattern", pattern),
		zap.Int("created", len(result.Created)),
		zap.Int("skipped", len(result.Skipped)))

	return result, nil
}

func materializeOccurrence(bp models.RecurrenceBlueprint, anchor, now time.Time) models.BookingGroup {
	group := models.BookingGroup{GroupID: uuid.New().String()}
	for _, item := range bp.Items {
		start := anchor.Add(time.Duration(item.OffsetMin) * time.Minute)
		group.Segments = append(group.Segments, models.Segment{
			ID:          uuid.New().String(),
			GroupID:     group.GroupID,
			ResourceID:  bp.ResourceID,
			ClientID:    bp.ClientID,
			Start:       start,
			End:         start.Add(time.Duration(item.DurationMin) * time.Minute),
			Title:       item.Title,
			Category:    item.Category,
			Price:       item.Price,
			DurationMin: item.DurationMin,
			Status:      models.SegmentStatusBooked,
			CreatedAt:   now,
		})
	}
	return group
}

func validatePattern(pattern string, dayOfMonth int) error {
	switch pattern {
	case models.PatternWeekly, models.PatternFortnightly, models.PatternMonthly, models.PatternYearly:
		return nil
	case models.PatternMonthlyNth:
		if dayOfMonth < 1 || dayOfMonth > 31 {
			return &ValidationError{Field: "dayOfMonth", Message: "must be between 1 and 31"}
		}
		return nil
	default:
		return &ValidationError{Field: "pattern", Message: fmt.Sprintf("unsupported pattern %q", pattern)}
	}
}

// advanceAnchor applies the pattern's date arithmetic i steps forward from
// base, preserving the base's wall-clock hour/minute. Days that don't exist
// in the target month clamp to that month's last valid day.
func advanceAnchor(base time.Time, pattern string, i, dayOfMonth int) time.Time {
	switch pattern {
	case models.PatternWeekly:
		return base.AddDate(0, 0, 7*i)
	case models.PatternFortnightly:
		return base.AddDate(0, 0, 14*i)
	case models.PatternMonthly:
		return addMonthsClamped(base, i, base.Day())
	case models.PatternMonthlyNth:
		return addMonthsClamped(base, i, dayOfMonth)
	case models.PatternYearly:
		return addMonthsClamped(base, 12*i, base.Day())
	default:
		return base
	}
}

// addMonthsClamped advances by whole months and pins the day-of-month,
// clamping to the target month's last day instead of letting the date
// normalize into the following month (Jan 31 + 1mo = Feb 28/29, not Mar 3).
func addMonthsClamped(t time.Time, months, day int) time.Time {
	monthIndex := int(t.Month()) - 1 + months
	year := t.Year() + monthIndex/12
	month := time.Month(monthIndex%12 + 1)

	if last := daysInMonth(year, month); day > last {
		day = last
	}
	return time.Date(year, month, day, t.Hour(), t.Minute(), 0, 0, t.Location())
}

func daysInMonth(year int, month time.Month) int {
	// Day 0 of the next month is the last day of this one.
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
