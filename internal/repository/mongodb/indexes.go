package mongodb

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"github.com/mamadbah2/livestockcare/internal/repository"
)

var indexes = map[string][]mongo.IndexModel{
	repository.CollUsers: {
		{Keys: bson.D{{Key: "phone", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
	},
	repository.CollAnimals: {
		{Keys: bson.D{{Key: "farmer_id", Value: 1}}},
	},
	repository.CollKnowledge: {
		{Keys: bson.D{{Key: "test_category", Value: 1}, {Key: "test_type", Value: 1}, {Key: "species", Value: 1}}},
	},
	repository.CollNutritionRules: {
		{Keys: bson.D{{Key: "species", Value: 1}, {Key: "physiological_status", Value: 1}}},
	},
	repository.CollVetProfiles: {
		{Keys: bson.D{{Key: "registration_number", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "vet_id", Value: 1}}, Options: options.Index().SetUnique(true)},
	},
	repository.CollOPDCases: {
		{Keys: bson.D{{Key: "vet_id", Value: 1}, {Key: "serial_number", Value: -1}}},
	},
	repository.CollAuditLogs: {
		{Keys: bson.D{{Key: "timestamp", Value: -1}}},
	},
}

// EnsureIndexes creates the indexes the services rely on. It is safe to call
// on every start.
func (s *Store) EnsureIndexes(ctx context.Context) error {
	for coll, models := range indexes {
		names, err := s.db.Collection(coll).Indexes().CreateMany(ctx, models)
		if err != nil {
			return fmt.Errorf("create indexes on %s: %w", coll, err)
		}
		s.logger.Debug("indexes ensured", zap.String("collection", coll), zap.Strings("indexes", names))
	}
	return nil
}
