// File: database/repository/segment/queries.go
package segmentRepo

import (
	"context"
	"fmt"
	"time"

	"chairside/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// BusySpans returns bare {start,end} intervals of segments overlapping
// [from, to) for a resource, sorted ascending. Half-open overlap filter:
// start < to && end > from.
func (r *mongoSegmentRepo) BusySpans(ctx context.Context, resourceID string, from, to time.Time, excludeGroupID string) ([]models.BusySpan, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{
		"resource_id": resourceID,
		"start":       bson.M{"$lt": to},
		"end":         bson.M{"$gt": from},
	}
	if excludeGroupID != "" {
		filter["group_id"] = bson.M{"$ne": excludeGroupID}
	}

	opts := options.Find().
		SetProjection(bson.M{"start": 1, "end": 1, "_id": 0}).
		SetSort(bson.D{{Key: "start", Value: 1}})

	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch busy spans: %w", err)
	}
	defer cursor.Close(ctx)

	var spans []models.BusySpan
	if err := cursor.All(ctx, &spans); err != nil {
		return nil, fmt.Errorf("error decoding busy spans: %w", err)
	}
	return spans, nil
}
