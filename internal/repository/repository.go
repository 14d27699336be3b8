// Package repository declares the persistence contracts shared by the services
// and implemented by the MongoDB store and the in-memory store used in tests.
package repository

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/mamadbah2/livestockcare/internal/domain/models"
)

// Collection names.
const (
	CollUsers                 = "users"
	CollAnimals               = "animals"
	CollVaccinations          = "vaccinations"
	CollDeworming             = "deworming"
	CollBreeding              = "breeding"
	CollDiagnostics           = "diagnostics"
	CollKnowledge             = "knowledge_center"
	CollKnowledgeHistory      = "knowledge_center_history"
	CollGVASettings           = "gva_settings"
	CollGVAReports            = "gva_reports"
	CollFeedItems             = "feed_items"
	CollFeedItemsArchive      = "feed_items_archive"
	CollNutritionRules        = "nutrition_rules"
	CollNutritionRulesArchive = "nutrition_rules_archive"
	CollNutritionVersions     = "nutrition_versions"
	CollRationCalculations    = "ration_calculations"
	CollOPDCases              = "opd_cases"
	CollSurgicalCases         = "surgical_cases"
	CollGynaecologyCases      = "gynaecology_cases"
	CollCastrationCases       = "castration_cases"
	CollVetProfiles           = "vet_profiles"
	CollInstitutions          = "institutions"
	CollAuditLogs             = "audit_logs"
	CollSafetyRules           = "safety_rules"
	CollNotifications         = "system_notifications"
	CollSettings              = "system_settings"
	CollCounters              = "counters"
)

// FindOptions controls ordering and size of a Find call. A zero Limit means no limit.
type FindOptions struct {
	Sort  bson.D
	Limit int64
}

// Records is generic document access over named collections. FindOne, Update
// and Delete report models.ErrNotFound when no document matches.
type Records interface {
	Insert(ctx context.Context, collection string, doc any) error
	FindOne(ctx context.Context, collection string, filter bson.M, out any) error
	Find(ctx context.Context, collection string, filter bson.M, opts FindOptions, out any) error
	Update(ctx context.Context, collection string, filter bson.M, set bson.M) error
	Upsert(ctx context.Context, collection string, filter bson.M, set bson.M) error
	Delete(ctx context.Context, collection string, filter bson.M) error
	Count(ctx context.Context, collection string, filter bson.M) (int64, error)
}

// Counter hands out per-key sequence values starting at 1.
type Counter interface {
	NextSequence(ctx context.Context, key string) (int64, error)
}

// AuditLog is append-only: entries are never updated or deleted.
type AuditLog interface {
	AppendAudit(ctx context.Context, entry models.AuditEntry) error
	ListAudit(ctx context.Context, filter models.AuditFilter) ([]models.AuditEntry, error)
}

// Reports runs the grouped admin reports.
type Reports interface {
	UsersByRole(ctx context.Context) ([]models.RoleActivity, error)
	CasesByDiagnosis(ctx context.Context, from, to *time.Time) ([]models.DiseaseCount, error)
}

// Store is everything the application needs from a backing database.
type Store interface {
	Records
	Counter
	AuditLog
	Reports
}

// AuditQuery translates an audit filter into a document filter.
func AuditQuery(filter models.AuditFilter) bson.M {
	query := bson.M{}
	if filter.ActionType != "" {
		query["action_type"] = filter.ActionType
	}
	if filter.TargetType != "" {
		query["target_type"] = filter.TargetType
	}
	if filter.AdminID != "" {
		query["admin_id"] = filter.AdminID
	}
	if r := DateRange(filter.DateFrom, filter.DateTo); r != nil {
		query["timestamp"] = r
	}
	return query
}

// DateRange builds a $gte/$lte clause, or nil when both bounds are unset.
func DateRange(from, to *time.Time) bson.M {
	if from == nil && to == nil {
		return nil
	}
	r := bson.M{}
	if from != nil {
		r["$gte"] = from.UTC()
	}
	if to != nil {
		r["$lte"] = to.UTC()
	}
	return r
}

// SetFields converts a bson-tagged struct into a $set document.
func SetFields(v any) (bson.M, error) {
	raw, err := bson.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("marshal set fields: %w", err)
	}
	set := bson.M{}
	if err := bson.Unmarshal(raw, &set); err != nil {
		return nil, fmt.Errorf("unmarshal set fields: %w", err)
	}
	return set, nil
}
