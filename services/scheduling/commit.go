package scheduling

import (
	"context"
	"errors"
	"fmt"
	"time"

	clientRepo "chairside/database/repository/client"
	segmentRepo "chairside/database/repository/segment"
	"chairside/models"
	"chairside/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// CommitRequest carries everything needed to turn a timeline into a
// persisted booking group.
type CommitRequest struct {
	ResourceID string
	Client     models.ClientRef
	Timeline   models.Timeline
	Start      time.Time
	ActorRef   string
}

// CommitBooking runs the commit path: validation, client resolution, segment
// materialization, advisory lock, final conflict re-check, transactional
// insert, best-effort audit. Steps 1–2 abort before any write.
func (se *DefaultSchedulingEngine) CommitBooking(ctx context.Context, req CommitRequest) (*models.BookingGroup, error) {
	logger := utils.GetLogger()

	// Step 1: validate.
	if req.ResourceID == "" {
		return nil, &ValidationError{Field: "resourceID", Message: "resource is required"}
	}
	if req.Start.IsZero() {
		return nil, &ValidationError{Field: "start", Message: "start time is required"}
	}
	if req.Timeline.Empty() {
		return nil, &ValidationError{Field: "timeline", Message: "no services selected"}
	}
	now := se.now()
	if req.Start.Before(now.Add(minNotice())) {
		return nil, &ValidationError{
			Field:   "start",
			Message: fmt.Sprintf("bookings need at least %s notice", minNotice()),
		}
	}

	// Step 2: resolve or create the client record.
	client, err := se.Clients.FindOrCreate(ctx, req.Client)
	if err != nil {
		if errors.Is(err, clientRepo.ErrAmbiguousName) {
			return nil, &ClientAmbiguityError{FirstName: req.Client.FirstName, LastName: req.Client.LastName}
		}
		return nil, fmt.Errorf("failed to resolve client: %w", err)
	}

	// Step 3: materialize segments from the timeline.
	group := materializeTimeline(req.Timeline, req.ResourceID, client.ID, req.Start, now)

	// Step 4: serialize with concurrent commits on the same resource/day,
	// then re-check conflicts. This closes the gap between the slot list
	// the caller saw and the state of the store right now.
	if se.Locker != nil {
		release, ok, err := se.Locker.Acquire(ctx, utils.BookingLockKey(req.ResourceID, req.Start))
		if err != nil {
			return nil, fmt.Errorf("failed to acquire booking lock: %w", err)
		}
		if !ok {
			return nil, &ConflictError{ResourceID: req.ResourceID, Start: group.Segments[0].Start, End: group.Segments[len(group.Segments)-1].End}
		}
		defer release()
	}

	conflicted, err := se.HasConflict(ctx, req.ResourceID, group.Segments, "")
	if err != nil {
		return nil, fmt.Errorf("conflict re-check failed: %w", err)
	}
	if conflicted {
		return nil, &ConflictError{
			ResourceID: req.ResourceID,
			Start:      group.Segments[0].Start,
			End:        group.Segments[len(group.Segments)-1].End,
		}
	}

	// Step 5: persist all segments under one group id.
	if err := se.Segments.InsertGroup(ctx, group.Segments); err != nil {
		var partial *segmentRepo.PartialInsertError
		if errors.As(err, &partial) {
			logger.Error("booking group partially persisted",
				zap.String("groupID", partial.GroupID),
				zap.Int("written", partial.Written),
				zap.Int("total", partial.Total),
				zap.Error(partial.Err))
			return nil, &PartialPersistenceError{
				GroupID: partial.GroupID,
				Written: partial.Written,
				Total:   partial.Total,
				Err:     partial.Err,
			}
		}
		return nil, fmt.Errorf("failed to persist booking group: %w", err)
	}

	// Step 6: best-effort side-effect logging. Never fails the booking.
	se.recordAudit(ctx, models.AuditEntry{
		Action:   "booking_created",
		GroupID:  group.GroupID,
		ActorRef: req.ActorRef,
		After:    group,
	})

	logger.Info("booking committed",
		zap.String("groupID", group.GroupID),
		zap.String("resourceID", req.ResourceID),
		zap.Time("start", req.Start),
		zap.Int("segments", len(group.Segments)))

	return &group, nil
}

// CommitBasket resolves a basket of service ids into a timeline for the
// resource and commits it anchored at start.
func (se *DefaultSchedulingEngine) CommitBasket(ctx context.Context, resourceID string, serviceIDs []string, client models.ClientRef, start time.Time, actorRef string) (*models.BookingGroup, error) {
	tl, _, err := se.timelineFor(ctx, resourceID, serviceIDs)
	if err != nil {
		return nil, err
	}
	return se.CommitBooking(ctx, CommitRequest{
		ResourceID: resourceID,
		Client:     client,
		Timeline:   tl,
		Start:      start,
		ActorRef:   actorRef,
	})
}

func materializeTimeline(tl models.Timeline, resourceID, clientID string, start, createdAt time.Time) models.BookingGroup {
	group := models.BookingGroup{GroupID: uuid.New().String()}
	for _, ts := range tl.Segments {
		segStart := start.Add(time.Duration(ts.OffsetMin) * time.Minute)
		group.Segments = append(group.Segments, models.Segment{
			ID:          uuid.New().String(),
			GroupID:     group.GroupID,
			ResourceID:  resourceID,
			ClientID:    clientID,
			Start:       segStart,
			End:         segStart.Add(time.Duration(ts.DurationMin) * time.Minute),
			Title:       ts.Service.Name,
			Category:    ts.Service.Category,
			Price:       ts.EffectivePrice,
			DurationMin: ts.DurationMin,
			Status:      models.SegmentStatusBooked,
			CreatedAt:   createdAt.UTC(),
		})
	}
	return group
}

// recordAudit hands an entry to the audit sink and swallows any failure.
// Transient side-effect errors never reach the booking outcome.
func (se *DefaultSchedulingEngine) recordAudit(ctx context.Context, entry models.AuditEntry) {
	if se.Audit == nil {
		return
	}
	if err := se.Audit.Record(ctx, entry); err != nil {
		utils.GetLogger().Warn("audit record failed",
			zap.String("action", entry.Action),
			zap.String("groupID", entry.GroupID),
			zap.Error(err))
	}
}
