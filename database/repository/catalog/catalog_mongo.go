// File: database/repository/catalog/catalog_mongo.go
package catalogRepo

import (
	"context"
	"fmt"
	"time"

	"chairside/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

func (r *mongoCatalogRepo) GetByID(ctx context.Context, id string) (*models.Service, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var svc models.Service
	if err := r.services.FindOne(ctx, bson.M{"id": id}).Decode(&svc); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, fmt.Errorf("service %s not found", id)
		}
		return nil, fmt.Errorf("find error: %w", err)
	}
	return &svc, nil
}

// GetMany returns services in the order the ids were requested; a missing id
// is an error because the basket would silently shrink otherwise.
func (r *mongoCatalogRepo) GetMany(ctx context.Context, ids []string) ([]models.Service, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	cursor, err := r.services.Find(ctx, bson.M{"id": bson.M{"$in": ids}})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch services: %w", err)
	}
	defer cursor.Close(ctx)

	var found []models.Service
	if err := cursor.All(ctx, &found); err != nil {
		return nil, fmt.Errorf("error decoding services: %w", err)
	}

	byID := make(map[string]models.Service, len(found))
	for _, svc := range found {
		byID[svc.ID] = svc
	}

	ordered := make([]models.Service, 0, len(ids))
	for _, id := range ids {
		svc, ok := byID[id]
		if !ok {
			return nil, fmt.Errorf("service %s not found", id)
		}
		ordered = append(ordered, svc)
	}
	return ordered, nil
}

func (r *mongoCatalogRepo) List(ctx context.Context) ([]models.Service, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	cursor, err := r.services.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch services: %w", err)
	}
	defer cursor.Close(ctx)

	var services []models.Service
	if err := cursor.All(ctx, &services); err != nil {
		return nil, fmt.Errorf("error decoding services: %w", err)
	}
	return services, nil
}

func (r *mongoCatalogRepo) ResolverFor(ctx context.Context, resourceID string) (models.EffectiveResolver, error) {
	overrides := map[string]models.ServiceOverride{}

	if resourceID != "" {
		ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()

		cursor, err := r.overrides.Find(ctx, bson.M{"resource_id": resourceID})
		if err != nil {
			return nil, fmt.Errorf("failed to fetch overrides: %w", err)
		}
		defer cursor.Close(ctx)

		var list []models.ServiceOverride
		if err := cursor.All(ctx, &list); err != nil {
			return nil, fmt.Errorf("error decoding overrides: %w", err)
		}
		for _, o := range list {
			overrides[o.ServiceID] = o
		}
	}

	return BuildResolver(overrides), nil
}

// BuildResolver resolves a service against an override set. Absent override
// fields fall back to the service base values; an override present with a
// nil price deliberately yields an unknown price ("price on consultation").
func BuildResolver(overrides map[string]models.ServiceOverride) models.EffectiveResolver {
	return func(svc models.Service) models.Effective {
		eff := models.Effective{
			DurationMin: svc.DurationMin,
			Price:       svc.BasePrice,
		}
		o, ok := overrides[svc.ID]
		if !ok {
			return eff
		}
		if o.DurationMin != nil {
			eff.DurationMin = *o.DurationMin
		}
		eff.Price = o.Price
		return eff
	}
}
