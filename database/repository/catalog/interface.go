// File: database/repository/catalog/interface.go
package catalogRepo

import (
	"context"

	"chairside/config"
	"chairside/database"
	"chairside/models"

	"go.mongodb.org/mongo-driver/mongo"
)

type CatalogRepository interface {
	GetByID(ctx context.Context, id string) (*models.Service, error)
	GetMany(ctx context.Context, ids []string) ([]models.Service, error)
	List(ctx context.Context) ([]models.Service, error)
	// ResolverFor builds the effective price/duration resolver for a
	// resource, applying any per-resource overrides. resourceID may be
	// empty, in which case base values are returned unchanged.
	ResolverFor(ctx context.Context, resourceID string) (models.EffectiveResolver, error)
}

type mongoCatalogRepo struct {
	services  *mongo.Collection
	overrides *mongo.Collection
}

// NewMongoCatalogRepo constructs a new MongoDB CatalogRepository.
func NewMongoCatalogRepo() CatalogRepository {
	db := database.MongoClient.Database(config.AppConfig.DatabaseName)
	return &mongoCatalogRepo{
		services:  db.Collection("services"),
		overrides: db.Collection("service_overrides"),
	}
}
