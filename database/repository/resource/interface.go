// File: database/repository/resource/interface.go
package resourceRepo

import (
	"context"

	"chairside/config"
	"chairside/database"
	"chairside/models"

	"go.mongodb.org/mongo-driver/mongo"
)

type ResourceRepository interface {
	GetByID(ctx context.Context, id string) (*models.Resource, error)
	List(ctx context.Context) ([]models.Resource, error)
}

type mongoResourceRepo struct {
	coll *mongo.Collection
}

// NewMongoResourceRepo constructs a new MongoDB ResourceRepository.
func NewMongoResourceRepo() ResourceRepository {
	db := database.MongoClient.Database(config.AppConfig.DatabaseName)
	return &mongoResourceRepo{
		coll: db.Collection("resources"),
	}
}
