package ration

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
	targetFeedItem      = "feed_item"
	targetNutritionRule = "nutrition_rule"
	targetNutritionData = "nutrition_data"
)

type archivedFeed struct {
	models.FeedItem `bson:",inline"`
	ArchivedAt      time.Time `bson:"archived_at"`
	ArchivedBy      string    `bson:"archived_by"`
}

type archivedRule struct {
	models.NutritionRule `bson:",inline"`
	ArchivedAt           time.Time `bson:"archived_at"`
	ArchivedBy           string    `bson:"archived_by"`
}

// SeedResult reports what SeedCatalog inserted.
type SeedResult struct {
	Message        string `json:"message"`
	FeedItems      int    `json:"feed_items"`
	NutritionRules int    `json:"nutrition_rules"`
}

// FeedItems lists catalog feeds ordered by category and name.
func (s *Service) FeedItems(ctx context.Context, filter models.FeedFilter) ([]models.FeedItem, error) {
	query := bson.M{}
	if filter.Category != "" {
		query["category"] = filter.Category
	}
	if filter.Species != "" {
		query["applicable_species"] = filter.Species
	}
	if filter.IsActive != nil {
		query["is_active"] = *filter.IsActive
	}

	items := []models.FeedItem{}
	opts := repository.FindOptions{Sort: bson.D{{Key: "category", Value: 1}, {Key: "name", Value: 1}}}
	if err := s.store.Find(ctx, repository.CollFeedItems, query, opts, &items); err != nil {
		return nil, fmt.Errorf("list feed items: %w", err)
	}
	return items, nil
}

// CreateFeedItem adds an active feed at version 1.
func (s *Service) CreateFeedItem(ctx context.Context, actor models.Principal, in models.FeedInput) (*models.FeedItem, error) {
	now := s.now().UTC()
	in.IsActive = boolPtr(true)
	item := &models.FeedItem{
		ID:        uuid.NewString(),
		FeedInput: normalizeFeed(in),
		Version:   1,
		CreatedBy: actor.ID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.store.Insert(ctx, repository.CollFeedItems, item); err != nil {
		return nil, fmt.Errorf("create feed item: %w", err)
	}

	err := s.recorder.Record(ctx, actor, audit.Entry{
		Action:     models.ActionFeedItemCreate,
		TargetType: targetFeedItem,
		TargetID:   item.ID,
		After:      item,
	})
	if err != nil {
		return nil, err
	}
	return item, nil
}

// UpdateFeedItem replaces the item's data under the next version number and
// archives the version it replaced. A nil IsActive keeps the current state.
func (s *Service) UpdateFeedItem(ctx context.Context, actor models.Principal, id string, in models.FeedInput) (*models.FeedItem, error) {
	var current models.FeedItem
	if err := s.store.FindOne(ctx, repository.CollFeedItems, bson.M{"id": id}, &current); err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil, models.NewError(models.ErrNotFound, "Feed item not found")
		}
		return nil, fmt.Errorf("load feed item: %w", err)
	}

	if in.IsActive == nil {
		in.IsActive = boolPtr(current.Active())
	}
	now := s.now().UTC()
	set, err := repository.SetFields(normalizeFeed(in))
	if err != nil {
		return nil, err
	}
	set["version"] = current.Version + 1
	set["updated_at"] = now
	if err := s.store.Update(ctx, repository.CollFeedItems, bson.M{"id": id, "version": current.Version}, set); err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil, models.NewError(models.ErrConflict, "Feed item was modified concurrently")
		}
		return nil, fmt.Errorf("update feed item: %w", err)
	}

	var stored models.FeedItem
	if err := s.store.FindOne(ctx, repository.CollFeedItems, bson.M{"id": id}, &stored); err != nil {
		return nil, fmt.Errorf("reload feed item: %w", err)
	}
	archive := archivedFeed{FeedItem: current, ArchivedAt: now, ArchivedBy: actor.ID}
	if err := s.store.Insert(ctx, repository.CollFeedItemsArchive, archive); err != nil {
		return nil, fmt.Errorf("archive feed item: %w", err)
	}

	err = s.recorder.Record(ctx, actor, audit.Entry{
		Action:     models.ActionFeedItemUpdate,
		TargetType: targetFeedItem,
		TargetID:   id,
		Before:     current,
		After:      stored,
	})
	if err != nil {
		return nil, err
	}
	return &stored, nil
}

func boolPtr(b bool) *bool { return &b }

func normalizeFeed(in models.FeedInput) models.FeedInput {
	if in.ApplicableSpecies == nil {
		in.ApplicableSpecies = []models.Species{}
	}
	if in.Warnings == nil {
		in.Warnings = []string{}
	}
	if in.ContraindicatedSpecies == nil {
		in.ContraindicatedSpecies = []models.Species{}
	}
	return in
}

// NutritionRules lists rules, optionally for one species.
func (s *Service) NutritionRules(ctx context.Context, species models.Species) ([]models.NutritionRule, error) {
	query := bson.M{}
	if species != "" {
		query["species"] = species
	}

	rules := []models.NutritionRule{}
	opts := repository.FindOptions{Sort: bson.D{{Key: "species", Value: 1}, {Key: "physiological_status", Value: 1}}}
	if err := s.store.Find(ctx, repository.CollNutritionRules, query, opts, &rules); err != nil {
		return nil, fmt.Errorf("list nutrition rules: %w", err)
	}
	return rules, nil
}

// CreateNutritionRule adds an active rule. Only one active rule may exist per
// species and physiological status.
func (s *Service) CreateNutritionRule(ctx context.Context, actor models.Principal, in models.NutritionRuleInput) (*models.NutritionRule, error) {
	existing, err := s.activeRule(ctx, in.Species, in.PhysiologicalStatus)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, models.NewError(models.ErrConflict, "Nutrition rule already exists for this species and status")
	}

	now := s.now().UTC()
	in.IsActive = boolPtr(true)
	rule := &models.NutritionRule{
		ID:                 uuid.NewString(),
		NutritionRuleInput: in,
		Version:            1,
		CreatedBy:          actor.ID,
		CreatedAt:          now,
		UpdatedAt:          now,
	}
	if err := s.store.Insert(ctx, repository.CollNutritionRules, rule); err != nil {
		return nil, fmt.Errorf("create nutrition rule: %w", err)
	}

	err = s.recorder.Record(ctx, actor, audit.Entry{
		Action:     models.ActionNutritionRuleCreate,
		TargetType: targetNutritionRule,
		TargetID:   rule.ID,
		After:      rule,
	})
	if err != nil {
		return nil, err
	}
	return rule, nil
}

// UpdateNutritionRule stores the next version of a rule and archives the one
// it replaced. A nil IsActive keeps the current state.
func (s *Service) UpdateNutritionRule(ctx context.Context, actor models.Principal, id string, in models.NutritionRuleInput) (*models.NutritionRule, error) {
	var current models.NutritionRule
	if err := s.store.FindOne(ctx, repository.CollNutritionRules, bson.M{"id": id}, &current); err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil, models.NewError(models.ErrNotFound, "Nutrition rule not found")
		}
		return nil, fmt.Errorf("load nutrition rule: %w", err)
	}

	if in.IsActive == nil {
		in.IsActive = boolPtr(current.Active())
	}
	now := s.now().UTC()
	set, err := repository.SetFields(in)
	if err != nil {
		return nil, err
	}
	set["version"] = current.Version + 1
	set["updated_at"] = now
	if err := s.store.Update(ctx, repository.CollNutritionRules, bson.M{"id": id, "version": current.Version}, set); err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil, models.NewError(models.ErrConflict, "Nutrition rule was modified concurrently")
		}
		return nil, fmt.Errorf("update nutrition rule: %w", err)
	}

	var stored models.NutritionRule
	if err := s.store.FindOne(ctx, repository.CollNutritionRules, bson.M{"id": id}, &stored); err != nil {
		return nil, fmt.Errorf("reload nutrition rule: %w", err)
	}
	archive := archivedRule{NutritionRule: current, ArchivedAt: now, ArchivedBy: actor.ID}
	if err := s.store.Insert(ctx, repository.CollNutritionRulesArchive, archive); err != nil {
		return nil, fmt.Errorf("archive nutrition rule: %w", err)
	}

	err = s.recorder.Record(ctx, actor, audit.Entry{
		Action:     models.ActionNutritionRuleUpdate,
		TargetType: targetNutritionRule,
		TargetID:   id,
		Before:     current,
		After:      stored,
	})
	if err != nil {
		return nil, err
	}
	return &stored, nil
}

// SeedCatalog inserts the standard feeds, rules and the v1.0.0 version. It is
// a no-op when any feed item already exists.
func (s *Service) SeedCatalog(ctx context.Context, actor models.Principal) (*SeedResult, error) {
	n, err := s.store.Count(ctx, repository.CollFeedItems, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("count feed items: %w", err)
	}
	if n > 0 {
		return &SeedResult{Message: "Data already seeded"}, nil
	}

	now := s.now().UTC()
	for _, in := range seedFeeds {
		in.IsActive = boolPtr(true)
		item := models.FeedItem{
			ID:        uuid.NewString(),
			FeedInput: normalizeFeed(in),
			Version:   1,
			CreatedBy: actor.ID,
			CreatedAt: now,
			UpdatedAt: now,
		}
		if err := s.store.Insert(ctx, repository.CollFeedItems, item); err != nil {
			return nil, fmt.Errorf("seed feed %q: %w", in.Name, err)
		}
	}
	for _, in := range seedRules {
		in.IsActive = boolPtr(true)
		rule := models.NutritionRule{
			ID:                 uuid.NewString(),
			NutritionRuleInput: in,
			Version:            1,
			CreatedBy:          actor.ID,
			CreatedAt:          now,
			UpdatedAt:          now,
		}
		if err := s.store.Insert(ctx, repository.CollNutritionRules, rule); err != nil {
			return nil, fmt.Errorf("seed rule %s/%s: %w", in.Species, in.PhysiologicalStatus, err)
		}
	}

	version := models.NutritionVersion{
		ID:          uuid.NewString(),
		VersionName: seedVersionName,
		Description: seedVersionDescription,
		IsCurrent:   true,
		PublishedBy: actor.ID,
		PublishedAt: now,
	}
	if err := s.store.Insert(ctx, repository.CollNutritionVersions, version); err != nil {
		return nil, fmt.Errorf("seed nutrition version: %w", err)
	}

	result := &SeedResult{
		Message:        "Nutrition data seeded successfully",
		FeedItems:      len(seedFeeds),
		NutritionRules: len(seedRules),
	}
	err = s.recorder.Record(ctx, actor, audit.Entry{
		Action:     models.ActionDataSeed,
		TargetType: targetNutritionData,
		TargetID:   version.ID,
		After:      result,
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("nutrition catalog seeded",
		zap.Int("feed_items", result.FeedItems),
		zap.Int("nutrition_rules", result.NutritionRules),
	)
	return result, nil
}
