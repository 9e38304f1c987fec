// File: database/repository/resource/resource_mongo.go
package resourceRepo

import (
	"context"
	"fmt"
	"time"

	"chairside/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// resourceDoc is the raw stored shape. Weekly availability is kept as a raw
// document because legacy records use several weekday key shapes; it is
// normalized into models.WeeklyAvailability on every read.
type resourceDoc struct {
	ID        string    `bson:"id"`
	Name      string    `bson:"name"`
	Weekly    bson.M    `bson:"weekly"`
	CreatedAt time.Time `bson:"created_at"`
}

func (d resourceDoc) toModel() models.Resource {
	return models.Resource{
		ID:        d.ID,
		Name:      d.Name,
		Weekly:    NormalizeWeekly(d.Weekly),
		CreatedAt: d.CreatedAt,
	}
}

func (r *mongoResourceRepo) GetByID(ctx context.Context, id string) (*models.Resource, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var doc resourceDoc
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&doc); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, fmt.Errorf("resource %s not found", id)
		}
		return nil, fmt.Errorf("find error: %w", err)
	}
	res := doc.toModel()
	return &res, nil
}

func (r *mongoResourceRepo) List(ctx context.Context) ([]models.Resource, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	cursor, err := r.coll.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch resources: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []resourceDoc
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("error decoding resources: %w", err)
	}

	resources := make([]models.Resource, 0, len(docs))
	for _, d := range docs {
		resources = append(resources, d.toModel())
	}
	return resources, nil
}
