// File: services/scheduling/interface.go
package scheduling

import (
	"context"
	"time"

	catalogRepo "chairside/database/repository/catalog"
	clientRepo "chairside/database/repository/client"
	resourceRepo "chairside/database/repository/resource"
	segmentRepo "chairside/database/repository/segment"
	"chairside/models"
	"chairside/services/audit"
)

// SchedulingEngine is the appointment scheduling & availability engine.
type SchedulingEngine interface {
	// AvailableSlots resolves a basket into a timeline and computes every
	// bookable start time for the resource on the given day.
	AvailableSlots(ctx context.Context, resourceID string, day time.Time, serviceIDs []string) (models.Timeline, []time.Time, error)
	// CommitBooking validates, resolves the client, re-checks conflicts and
	// persists one booking group.
	CommitBooking(ctx context.Context, req CommitRequest) (*models.BookingGroup, error)
	// CommitBasket is CommitBooking with the timeline resolved from service
	// ids for the resource.
	CommitBasket(ctx context.Context, resourceID string, serviceIDs []string, client models.ClientRef, start time.Time, actorRef string) (*models.BookingGroup, error)
	// GenerateSeries projects an existing booking group forward into a
	// recurring series, skipping conflicting occurrences whole.
	GenerateSeries(ctx context.Context, groupID, pattern string, occurrences, dayOfMonth int, actorRef string) (*models.SeriesResult, error)
	// Group lifecycle. CancelGroup returns the removed group so callers can
	// invalidate anything derived from its segments.
	CancelGroup(ctx context.Context, groupID, actorRef, reason string) (*models.BookingGroup, error)
	RescheduleGroup(ctx context.Context, groupID string, newStart time.Time, actorRef string) (*models.BookingGroup, error)
	SetGroupLocked(ctx context.Context, groupID string, locked bool, actorRef string) error
	// CreateHold blocks out an ad-hoc busy span for a resource.
	CreateHold(ctx context.Context, resourceID string, start, end time.Time, title, actorRef string) (*models.Segment, error)
}

// Locker serializes commit flows per (resource, date). Implemented by
// utils.AdvisoryLocker; nil disables locking (tests, single-node dev).
type Locker interface {
	Acquire(ctx context.Context, key string) (release func(), ok bool, err error)
}

// DefaultSchedulingEngine is the production implementation.
type DefaultSchedulingEngine struct {
	Segments  segmentRepo.SegmentRepository
	Clients   clientRepo.ClientRepository
	Resources resourceRepo.ResourceRepository
	Catalog   catalogRepo.CatalogRepository
	Locker    Locker
	Audit     audit.Sink
	Chemical  Classifier
	// Clock overrides time.Now in tests.
	Clock func() time.Time
}

func (se *DefaultSchedulingEngine) now() time.Time {
	if se.Clock != nil {
		return se.Clock()
	}
	return time.Now()
}
