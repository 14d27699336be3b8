// Package knowledge maintains the versioned reference ranges used to interpret
// diagnostic observations.
package knowledge

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"

	"github.com/mamadbah2/livestockcare/internal/domain/models"
	"github.com/mamadbah2/livestockcare/internal/repository"
	"github.com/mamadbah2/livestockcare/internal/service/audit"
)

const (
	targetKnowledge = "knowledge"
	listLimit       = 500
)

// historyEntry is a superseded version kept in the history collection.
type historyEntry struct {
	models.ReferenceRange `bson:",inline"`
	EntryID               string `bson:"entry_id" json:"entry_id"`
	ArchivedBy            string `bson:"archived_by" json:"archived_by"`
}

// Service manages knowledge center entries. Entries are never deleted.
type Service struct {
	store    repository.Records
	recorder *audit.Recorder
	logger   *zap.Logger
	now      func() time.Time
}

// NewService wires the knowledge service.
func NewService(store repository.Records, recorder *audit.Recorder, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{store: store, recorder: recorder, logger: logger, now: time.Now}
}

// Create stores a draft entry at version 1.
func (s *Service) Create(ctx context.Context, actor models.Principal, in models.ReferenceInput) (*models.ReferenceRange, error) {
	now := s.now().UTC()
	entry := &models.ReferenceRange{
		ID:            uuid.NewString(),
		TestCategory:  in.TestCategory,
		TestType:      in.TestType,
		Species:       in.Species,
		ReferenceData: normalize(in.ReferenceData),
		Version:       1,
		Status:        models.KnowledgeDraft,
		CreatedBy:     actor.ID,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := s.store.Insert(ctx, repository.CollKnowledge, entry); err != nil {
		return nil, fmt.Errorf("create knowledge entry: %w", err)
	}

	err := s.recorder.Record(ctx, actor, audit.Entry{
		Action:     models.ActionKnowledgeCreate,
		TargetType: targetKnowledge,
		TargetID:   entry.ID,
		After:      bson.M{"test_type": entry.TestType, "species": entry.Species},
	})
	if err != nil {
		return nil, err
	}
	return entry, nil
}

// List returns entries, most recently updated first.
func (s *Service) List(ctx context.Context, filter models.KnowledgeFilter) ([]models.ReferenceRange, error) {
	query := bson.M{}
	if filter.TestCategory != "" {
		query["test_category"] = filter.TestCategory
	}
	if filter.Species != "" {
		query["species"] = filter.Species
	}
	if filter.Status != "" {
		query["status"] = filter.Status
	}

	entries := []models.ReferenceRange{}
	opts := repository.FindOptions{Sort: bson.D{{Key: "updated_at", Value: -1}}, Limit: listLimit}
	if err := s.store.Find(ctx, repository.CollKnowledge, query, opts, &entries); err != nil {
		return nil, fmt.Errorf("list knowledge entries: %w", err)
	}
	return entries, nil
}

// Get returns one entry.
func (s *Service) Get(ctx context.Context, id string) (*models.ReferenceRange, error) {
	var entry models.ReferenceRange
	if err := s.store.FindOne(ctx, repository.CollKnowledge, bson.M{"id": id}, &entry); err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil, models.NewError(models.ErrNotFound, "Entry not found")
		}
		return nil, fmt.Errorf("load knowledge entry: %w", err)
	}
	return &entry, nil
}

// Update stores the new data under the next version number and then copies the
// replaced version into the history collection.
func (s *Service) Update(ctx context.Context, actor models.Principal, id string, in models.ReferenceInput) (*models.ReferenceRange, error) {
	current, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	now := s.now().UTC()
	version := current.Version + 1
	set := bson.M{
		"test_category":  in.TestCategory,
		"test_type":      in.TestType,
		"species":        in.Species,
		"reference_data": normalize(in.ReferenceData),
		"version":        version,
		"updated_by":     actor.ID,
		"updated_at":     now,
	}
	if err := s.store.Update(ctx, repository.CollKnowledge, bson.M{"id": id, "version": current.Version}, set); err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil, models.NewError(models.ErrConflict, "Entry was modified concurrently")
		}
		return nil, fmt.Errorf("update knowledge entry: %w", err)
	}

	old := historyEntry{ReferenceRange: *current, EntryID: current.ID, ArchivedBy: actor.ID}
	old.ID = uuid.NewString()
	old.Status = models.KnowledgeArchived
	old.ArchivedAt = &now
	if err := s.store.Insert(ctx, repository.CollKnowledgeHistory, old); err != nil {
		return nil, fmt.Errorf("archive knowledge version: %w", err)
	}

	err = s.recorder.Record(ctx, actor, audit.Entry{
		Action:     models.ActionKnowledgeUpdate,
		TargetType: targetKnowledge,
		TargetID:   id,
		Before:     bson.M{"version": current.Version},
		After:      bson.M{"version": version},
	})
	if err != nil {
		return nil, err
	}
	return s.Get(ctx, id)
}

// Publish marks an entry as published.
func (s *Service) Publish(ctx context.Context, actor models.Principal, id string) error {
	now := s.now().UTC()
	return s.transition(ctx, actor, id, models.ActionKnowledgePublish, bson.M{
		"status":       models.KnowledgePublished,
		"published_at": now,
		"published_by": actor.ID,
	})
}

// Archive retires an entry. Archived entries are no longer used for interpretation.
func (s *Service) Archive(ctx context.Context, actor models.Principal, id string) error {
	now := s.now().UTC()
	return s.transition(ctx, actor, id, models.ActionKnowledgeArchive, bson.M{
		"status":      models.KnowledgeArchived,
		"archived_at": now,
		"archived_by": actor.ID,
	})
}

func (s *Service) transition(ctx context.Context, actor models.Principal, id string, action models.AdminActionType, set bson.M) error {
	current, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if err := s.store.Update(ctx, repository.CollKnowledge, bson.M{"id": id}, set); err != nil {
		return fmt.Errorf("%s: %w", action, err)
	}
	return s.recorder.Record(ctx, actor, audit.Entry{
		Action:     action,
		TargetType: targetKnowledge,
		TargetID:   id,
		Before:     bson.M{"status": current.Status},
		After:      bson.M{"status": set["status"]},
	})
}

// History lists the superseded versions of an entry, newest first.
func (s *Service) History(ctx context.Context, id string) ([]models.ReferenceRange, error) {
	rows := []historyEntry{}
	opts := repository.FindOptions{Sort: bson.D{{Key: "version", Value: -1}}}
	if err := s.store.Find(ctx, repository.CollKnowledgeHistory, bson.M{"entry_id": id}, opts, &rows); err != nil {
		return nil, fmt.Errorf("list knowledge history: %w", err)
	}
	out := make([]models.ReferenceRange, len(rows))
	for i, r := range rows {
		out[i] = r.ReferenceRange
	}
	return out, nil
}

// ReferenceFor returns the highest-version non-archived entry for the test,
// or nil when none exists.
func (s *Service) ReferenceFor(ctx context.Context, category models.TestCategory, testType string, species models.Species) (*models.ReferenceRange, error) {
	query := bson.M{
		"test_category": category,
		"test_type":     testType,
		"species":       species,
		"status":        bson.M{"$ne": models.KnowledgeArchived},
	}
	found := []models.ReferenceRange{}
	opts := repository.FindOptions{Sort: bson.D{{Key: "version", Value: -1}, {Key: "updated_at", Value: -1}}, Limit: 1}
	if err := s.store.Find(ctx, repository.CollKnowledge, query, opts, &found); err != nil {
		return nil, fmt.Errorf("find reference: %w", err)
	}
	if len(found) == 0 {
		return nil, nil
	}
	return &found[0], nil
}

func normalize(d models.ReferenceData) models.ReferenceData {
	for _, list := range []*[]string{&d.IncreaseCauses, &d.DecreaseCauses, &d.SpecialSymptoms, &d.SuggestedActions} {
		if *list == nil {
			*list = []string{}
		}
	}
	return d
}
