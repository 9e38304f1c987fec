// File: database/repository/segment/crud.go
package segmentRepo

import (
	"context"
	"fmt"
	"time"

	"chairside/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func (r *mongoSegmentRepo) GroupSegments(ctx context.Context, groupID string) ([]models.Segment, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "start", Value: 1}})
	cursor, err := r.coll.Find(ctx, bson.M{"group_id": groupID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch group segments: %w", err)
	}
	defer cursor.Close(ctx)

	var segments []models.Segment
	if err := cursor.All(ctx, &segments); err != nil {
		return nil, fmt.Errorf("error decoding segments: %w", err)
	}
	return segments, nil
}

func (r *mongoSegmentRepo) DeleteGroup(ctx context.Context, groupID string) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	res, err := r.coll.DeleteMany(ctx, bson.M{"group_id": groupID})
	if err != nil {
		return 0, fmt.Errorf("failed to delete group %s: %w", groupID, err)
	}
	if res.DeletedCount == 0 {
		return 0, mongo.ErrNoDocuments
	}
	return res.DeletedCount, nil
}

// ShiftGroup moves every segment of a group by the same delta, keeping the
// segments' relative offsets intact.
func (r *mongoSegmentRepo) ShiftGroup(ctx context.Context, groupID string, delta time.Duration) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	deltaMillis := delta.Milliseconds()
	pipeline := mongo.Pipeline{
		{{Key: "$set", Value: bson.M{
			"start": bson.M{"$add": bson.A{"$start", deltaMillis}},
			"end":   bson.M{"$add": bson.A{"$end", deltaMillis}},
		}}},
	}
	res, err := r.coll.UpdateMany(ctx, bson.M{"group_id": groupID}, pipeline)
	if err != nil {
		return fmt.Errorf("failed to shift group %s: %w", groupID, err)
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

func (r *mongoSegmentRepo) SetGroupLocked(ctx context.Context, groupID string, locked bool) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	res, err := r.coll.UpdateMany(ctx,
		bson.M{"group_id": groupID},
		bson.M{"$set": bson.M{"locked": locked}},
	)
	if err != nil {
		return fmt.Errorf("failed to update locked flag for group %s: %w", groupID, err)
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

func (r *mongoSegmentRepo) InsertHold(ctx context.Context, hold models.Segment) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if _, err := r.coll.InsertOne(ctx, hold); err != nil {
		return fmt.Errorf("failed to insert hold: %w", err)
	}
	return nil
}
