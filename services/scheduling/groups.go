package scheduling

import (
	"context"
	"fmt"
	"time"

	"chairside/models"
	"chairside/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// CancelGroup destroys a booking group by deleting every segment sharing the
// group id, returning the removed group.
func (se *DefaultSchedulingEngine) CancelGroup(ctx context.Context, groupID, actorRef, reason string) (*models.BookingGroup, error) {
	segments, err := se.Segments.GroupSegments(ctx, groupID)
	if err != nil {
		return nil, fmt.Errorf("failed to load group %s: %w", groupID, err)
	}
	if len(segments) == 0 {
		return nil, &ValidationError{Field: "groupID", Message: "group not found"}
	}
	if segments[0].Locked {
		return nil, &ValidationError{Field: "groupID", Message: "group is locked"}
	}

	deleted, err := se.Segments.DeleteGroup(ctx, groupID)
	if err != nil {
		return nil, fmt.Errorf("failed to cancel group %s: %w", groupID, err)
	}

	group := models.BookingGroup{GroupID: groupID, Segments: segments}
	se.recordAudit(ctx, models.AuditEntry{
		Action:   "booking_cancelled",
		GroupID:  groupID,
		ActorRef: actorRef,
		Before:   group,
		Reason:   reason,
	})
	utils.GetLogger().Info("booking group cancelled",
		zap.String("groupID", groupID), zap.Int64("segments", deleted))
	return &group, nil
}

// RescheduleGroup shifts every segment of a group by the same delta so the
// group starts at newStart with its internal offsets intact. The conflict
// check excludes the group's own segments.
func (se *DefaultSchedulingEngine) RescheduleGroup(ctx context.Context, groupID string, newStart time.Time, actorRef string) (*models.BookingGroup, error) {
	if newStart.IsZero() {
		return nil, &ValidationError{Field: "newStart", Message: "new start time is required"}
	}

	segments, err := se.Segments.GroupSegments(ctx, groupID)
	if err != nil {
		return nil, fmt.Errorf("failed to load group %s: %w", groupID, err)
	}
	if len(segments) == 0 {
		return nil, &ValidationError{Field: "groupID", Message: "group not found"}
	}
	if segments[0].Locked {
		return nil, &ValidationError{Field: "groupID", Message: "group is locked"}
	}
	if newStart.Before(se.now().Add(minNotice())) {
		return nil, &ValidationError{
			Field:   "newStart",
			Message: fmt.Sprintf("bookings need at least %s notice", minNotice()),
		}
	}

	delta := newStart.Sub(segments[0].Start)
	shifted := make([]models.Segment, len(segments))
	for i, seg := range segments {
		seg.Start = seg.Start.Add(delta)
		seg.End = seg.End.Add(delta)
		shifted[i] = seg
	}

	conflicted, err := se.HasConflict(ctx, segments[0].ResourceID, shifted, groupID)
	if err != nil {
		return nil, fmt.Errorf("conflict check failed: %w", err)
	}
	if conflicted {
		return nil, &ConflictError{
			ResourceID: segments[0].ResourceID,
			Start:      shifted[0].Start,
			End:        shifted[len(shifted)-1].End,
		}
	}

	if err := se.Segments.ShiftGroup(ctx, groupID, delta); err != nil {
		return nil, fmt.Errorf("failed to reschedule group %s: %w", groupID, err)
	}

	group := models.BookingGroup{GroupID: groupID, Segments: shifted}
	se.recordAudit(ctx, models.AuditEntry{
		Action:   "booking_rescheduled",
		GroupID:  groupID,
		ActorRef: actorRef,
		Before:   models.BookingGroup{GroupID: groupID, Segments: segments},
		After:    group,
	})
	return &group, nil
}

// SetGroupLocked flips the lock flag on a whole group. A flag change only,
// not a structural one.
func (se *DefaultSchedulingEngine) SetGroupLocked(ctx context.Context, groupID string, locked bool, actorRef string) error {
	if err := se.Segments.SetGroupLocked(ctx, groupID, locked); err != nil {
		return fmt.Errorf("failed to update lock for group %s: %w", groupID, err)
	}
	action := "booking_locked"
	if !locked {
		action = "booking_unlocked"
	}
	se.recordAudit(ctx, models.AuditEntry{Action: action, GroupID: groupID, ActorRef: actorRef})
	return nil
}

// CreateHold blocks out an ad-hoc busy span for a resource (lunch, training,
// walk-in). Holds are capped at the maximum single-block length.
func (se *DefaultSchedulingEngine) CreateHold(ctx context.Context, resourceID string, start, end time.Time, title, actorRef string) (*models.Segment, error) {
	if resourceID == "" {
		return nil, &ValidationError{Field: "resourceID", Message: "resource is required"}
	}
	if !end.After(start) {
		return nil, &ValidationError{Field: "end", Message: "end must be after start"}
	}
	if end.Sub(start) > maxHold() {
		return nil, &ValidationError{
			Field:   "end",
			Message: fmt.Sprintf("holds are capped at %s", maxHold()),
		}
	}

	hold := models.Segment{
		ID:          uuid.New().String(),
		GroupID:     uuid.New().String(),
		ResourceID:  resourceID,
		Start:       start,
		End:         end,
		Title:       title,
		DurationMin: int(end.Sub(start) / time.Minute),
		Status:      models.SegmentStatusHold,
		CreatedAt:   se.now().UTC(),
	}

	conflicted, err := se.HasConflict(ctx, resourceID, []models.Segment{hold}, "")
	if err != nil {
		return nil, fmt.Errorf("conflict check failed: %w", err)
	}
	if conflicted {
		return nil, &ConflictError{ResourceID: resourceID, Start: start, End: end}
	}

	if err := se.Segments.InsertHold(ctx, hold); err != nil {
		return nil, fmt.Errorf("failed to insert hold: %w", err)
	}

	se.recordAudit(ctx, models.AuditEntry{
		Action:   "hold_created",
		GroupID:  hold.GroupID,
		ActorRef: actorRef,
		After:    hold,
		Reason:   title,
	})
	return &hold, nil
}
