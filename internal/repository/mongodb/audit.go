package mongodb

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/mamadbah2/livestockcare/internal/domain/models"
	"github.com/mamadbah2/livestockcare/internal/repository"
)

const auditListLimit = 500

// AppendAudit inserts an audit entry.
func (s *Store) AppendAudit(ctx context.Context, entry models.AuditEntry) error {
	if _, err := s.db.Collection(repository.CollAuditLogs).InsertOne(ctx, entry); err != nil {
		return fmt.Errorf("append audit entry: %w", err)
	}
	return nil
}

// ListAudit returns matching entries, newest first.
func (s *Store) ListAudit(ctx context.Context, filter models.AuditFilter) ([]models.AuditEntry, error) {
	var entries []models.AuditEntry
	opts := repository.FindOptions{Sort: bson.D{{Key: "timestamp", Value: -1}}, Limit: auditListLimit}
	if err := s.Find(ctx, repository.CollAuditLogs, repository.AuditQuery(filter), opts, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

// UsersByRole groups users by role with their active counts.
func (s *Store) UsersByRole(ctx context.Context) ([]models.RoleActivity, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$group", Value: bson.M{
			"_id":          "$role",
			"count":        bson.M{"$sum": 1},
			"active_count": bson.M{"$sum": bson.M{"$cond": bson.A{"$is_active", 1, 0}}},
		}}},
		{{Key: "$sort", Value: bson.M{"_id": 1}}},
	}

	var rows []models.RoleActivity
	if err := s.Aggregate(ctx, repository.CollUsers, pipeline, &rows); err != nil {
		return nil, err
	}
	return rows, nil
}

// CasesByDiagnosis groups clinical cases by tentative diagnosis, most frequent first.
func (s *Store) CasesByDiagnosis(ctx context.Context, from, to *time.Time) ([]models.DiseaseCount, error) {
	match := bson.M{}
	if r := repository.DateRange(from, to); r != nil {
		match["case_date"] = r
	}

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: match}},
		{{Key: "$group", Value: bson.M{
			"_id":      "$tentative_diagnosis",
			"count":    bson.M{"$sum": 1},
			"villages": bson.M{"$addToSet": "$farmer_village"},
		}}},
		{{Key: "$sort", Value: bson.D{{Key: "count", Value: -1}, {Key: "_id", Value: 1}}}},
		{{Key: "$limit", Value: 50}},
	}

	var rows []models.DiseaseCount
	if err := s.Aggregate(ctx, repository.CollOPDCases, pipeline, &rows); err != nil {
		return nil, err
	}
	return rows, nil
}
