// File: database/repository/segment/interface.go
package segmentRepo

import (
	"context"
	"log"
	"time"

	"chairside/config"
	"chairside/database"
	"chairside/models"

	"go.mongodb.org/mongo-driver/mongo"
)

type SegmentRepository interface {
	// InsertGroup writes all segments of one booking group as a single
	// logical write. On replica-set deployments this runs in one
	// transaction; see InsertGroup for the standalone fallback semantics.
	InsertGroup(ctx context.Context, segments []models.Segment) error
	// BusySpans projects existing segments for a resource over a range
	// into bare intervals. excludeGroupID, when non-empty, leaves out that
	// group's own segments (reschedule checks).
	BusySpans(ctx context.Context, resourceID string, from, to time.Time, excludeGroupID string) ([]models.BusySpan, error)
	GroupSegments(ctx context.Context, groupID string) ([]models.Segment, error)
	DeleteGroup(ctx context.Context, groupID string) (int64, error)
	ShiftGroup(ctx context.Context, groupID string, delta time.Duration) error
	SetGroupLocked(ctx context.Context, groupID string, locked bool) error
	InsertHold(ctx context.Context, hold models.Segment) error
}

type mongoSegmentRepo struct {
	coll *mongo.Collection
}

// NewMongoSegmentRepo constructs a new MongoDB SegmentRepository.
func NewMongoSegmentRepo() SegmentRepository {
	db := database.MongoClient.Database(config.AppConfig.DatabaseName)
	repo := &mongoSegmentRepo{
		coll: db.Collection("segments"),
	}
	if err := repo.EnsureIndexes(); err != nil {
		log.Printf("segment repo: %v", err)
	}
	return repo
}
