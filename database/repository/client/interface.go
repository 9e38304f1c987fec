// File: database/repository/client/interface.go
package clientRepo

import (
	"context"
	"errors"
	"log"

	"chairside/config"
	"chairside/database"
	"chairside/models"

	"go.mongodb.org/mongo-driver/mongo"
)

// ErrAmbiguousName is returned when a client with the same name already
// exists but neither record carries a phone number to disambiguate. Callers
// must ask for a phone number instead of silently creating a duplicate.
var ErrAmbiguousName = errors.New("client name matches an existing record without a phone number to disambiguate")

type ClientRepository interface {
	// FindOrCreate resolves a client record with the matching precedence:
	// exact email, then exact normalized-phone-digit match, then exact
	// first+last name only when a phone number disambiguates.
	FindOrCreate(ctx context.Context, ref models.ClientRef) (*models.Client, error)
	GetByID(ctx context.Context, id string) (*models.Client, error)
}

type mongoClientRepo struct {
	coll *mongo.Collection
}

// NewMongoClientRepo constructs a new MongoDB ClientRepository.
func NewMongoClientRepo() ClientRepository {
	db := database.MongoClient.Database(config.AppConfig.DatabaseName)
	repo := &mongoClientRepo{
		coll: db.Collection("clients"),
	}
	if err := repo.EnsureIndexes(); err != nil {
		log.Printf("client repo: %v", err)
	}
	return repo
}
