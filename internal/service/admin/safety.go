package admin

import (
	"context"
	"errors"
	"fmt"
	"regexp"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/mamadbah2/livestockcare/internal/domain/models"
	"github.com/mamadbah2/livestockcare/internal/repository"
	"github.com/mamadbah2/livestockcare/internal/service/audit"
)

const targetSafetyRule = "safety_rule"

func normalizeRule(in models.SafetyRuleInput) models.SafetyRuleInput {
	if in.SpeciesAffected == nil {
		in.SpeciesAffected = []models.Species{}
	}
	return in
}

// CreateSafetyRule stores a biosafety rule at version 1.
func (s *Service) CreateSafetyRule(ctx context.Context, actor models.Principal, in models.SafetyRuleInput) (*models.SafetyRule, error) {
	now := s.now().UTC()
	rule := &models.SafetyRule{
		ID:              uuid.NewString(),
		SafetyRuleInput: normalizeRule(in),
		Version:         1,
		CreatedBy:       actor.ID,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := s.store.Insert(ctx, repository.CollSafetyRules, rule); err != nil {
		return nil, fmt.Errorf("create safety rule: %w", err)
	}

	err := s.recorder.Record(ctx, actor, audit.Entry{
		Action:     models.ActionSafetyRuleCreate,
		TargetType: targetSafetyRule,
		TargetID:   rule.ID,
		After:      bson.M{"disease_name": rule.DiseaseName},
	})
	if err != nil {
		return nil, err
	}
	return rule, nil
}

// SafetyRules lists every rule.
func (s *Service) SafetyRules(ctx context.Context) ([]models.SafetyRule, error) {
	rules := []models.SafetyRule{}
	opts := repository.FindOptions{Sort: bson.D{{Key: "disease_name", Value: 1}}, Limit: 100}
	if err := s.store.Find(ctx, repository.CollSafetyRules, bson.M{}, opts, &rules); err != nil {
		return nil, fmt.Errorf("list safety rules: %w", err)
	}
	return rules, nil
}

func (s *Service) safetyRule(ctx context.Context, id string) (*models.SafetyRule, error) {
	var rule models.SafetyRule
	if err := s.store.FindOne(ctx, repository.CollSafetyRules, bson.M{"id": id}, &rule); err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil, models.NewError(models.ErrNotFound, "Rule not found")
		}
		return nil, fmt.Errorf("load safety rule: %w", err)
	}
	return &rule, nil
}

// UpdateSafetyRule replaces a rule's content and bumps its version.
func (s *Service) UpdateSafetyRule(ctx context.Context, actor models.Principal, id string, in models.SafetyRuleInput) (*models.SafetyRule, error) {
	current, err := s.safetyRule(ctx, id)
	if err != nil {
		return nil, err
	}

	set, err := repository.SetFields(normalizeRule(in))
	if err != nil {
		return nil, err
	}
	version := current.Version + 1
	set["version"] = version
	set["updated_by"] = actor.ID
	set["updated_at"] = s.now().UTC()

	if err := s.store.Update(ctx, repository.CollSafetyRules, bson.M{"id": id, "version": current.Version}, set); err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil, models.NewError(models.ErrConflict, "Rule was modified concurrently")
		}
		return nil, fmt.Errorf("update safety rule: %w", err)
	}

	err = s.recorder.Record(ctx, actor, audit.Entry{
		Action:     models.ActionSafetyRuleUpdate,
		TargetType: targetSafetyRule,
		TargetID:   id,
		Before:     bson.M{"version": current.Version},
		After:      bson.M{"version": version},
	})
	if err != nil {
		return nil, err
	}
	return s.safetyRule(ctx, id)
}

// SafetyRuleFor returns the active rule whose disease name contains disease,
// or nil when none does.
func (s *Service) SafetyRuleFor(ctx context.Context, disease string) (*models.SafetyRule, error) {
	query := bson.M{
		"disease_name": bson.M{"$regex": regexp.QuoteMeta(disease), "$options": "i"},
		"is_active":    true,
	}
	var rule models.SafetyRule
	if err := s.store.FindOne(ctx, repository.CollSafetyRules, query, &rule); err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("find safety rule: %w", err)
	}
	return &rule, nil
}
