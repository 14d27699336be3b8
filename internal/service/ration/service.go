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
	defaultVersionID  = "default"
	feedLookupLimit   = 100
	calculationsLimit = 100
)

// Metrics counts calculations.
type Metrics interface {
	RationCalculated(species models.Species)
}

// Service resolves rules and feeds, runs the engine and keeps the catalog.
type Service struct {
	store    repository.Records
	recorder *audit.Recorder
	metrics  Metrics
	logger   *zap.Logger
	now      func() time.Time
}

// NewService wires the ration service. metrics may be nil.
func NewService(store repository.Records, recorder *audit.Recorder, metrics Metrics, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		store:    store,
		recorder: recorder,
		metrics:  metrics,
		logger:   logger,
		now:      time.Now,
	}
}

// Calculate formulates a ration for the request and stores it.
func (s *Service) Calculate(ctx context.Context, actor models.Principal, req models.RationRequest) (*models.RationCalculation, error) {
	rule, err := s.activeRule(ctx, req.Species, req.PhysiologicalStatus)
	if err != nil {
		return nil, err
	}

	feeds := []models.FeedItem{}
	query := bson.M{"id": bson.M{"$in": req.SelectedFeeds}, "is_active": true}
	if err := s.store.Find(ctx, repository.CollFeedItems, query, repository.FindOptions{Limit: feedLookupLimit}, &feeds); err != nil {
		return nil, fmt.Errorf("load feeds: %w", err)
	}
	if len(feeds) == 0 {
		return nil, models.NewError(models.ErrValidation, "No valid feeds selected")
	}

	versionID, err := s.currentVersionID(ctx)
	if err != nil {
		return nil, err
	}

	calc := &models.RationCalculation{
		ID:                 uuid.NewString(),
		RationRequest:      req,
		RationResult:       Calculate(rule, feeds, req),
		NutritionVersionID: versionID,
		CalculatedBy:       actor.ID,
		UserRole:           actor.Role,
		CalculatedAt:       s.now().UTC(),
	}
	if err := s.store.Insert(ctx, repository.CollRationCalculations, calc); err != nil {
		return nil, fmt.Errorf("save ration calculation: %w", err)
	}
	if s.metrics != nil {
		s.metrics.RationCalculated(req.Species)
	}

	s.logger.Debug("ration calculated",
		zap.String("calculation_id", calc.ID),
		zap.String("species", string(req.Species)),
		zap.Bool("default_rule", rule == nil),
		zap.Int("feeds", len(feeds)),
	)
	return calc, nil
}

func (s *Service) activeRule(ctx context.Context, species models.Species, status string) (*models.NutritionRule, error) {
	var rule models.NutritionRule
	query := bson.M{"species": species, "physiological_status": status, "is_active": true}
	err := s.store.FindOne(ctx, repository.CollNutritionRules, query, &rule)
	switch {
	case errors.Is(err, models.ErrNotFound):
		return nil, nil
	case err != nil:
		return nil, fmt.Errorf("load nutrition rule: %w", err)
	}
	return &rule, nil
}

func (s *Service) currentVersionID(ctx context.Context) (string, error) {
	var version models.NutritionVersion
	err := s.store.FindOne(ctx, repository.CollNutritionVersions, bson.M{"is_current": true}, &version)
	switch {
	case errors.Is(err, models.ErrNotFound):
		return defaultVersionID, nil
	case err != nil:
		return "", fmt.Errorf("load nutrition version: %w", err)
	}
	return version.ID, nil
}

// Calculations lists stored calculations, newest first. Callers that do not
// see all records only get their own.
func (s *Service) Calculations(ctx context.Context, actor models.Principal, species models.Species) ([]models.RationCalculation, error) {
	query := bson.M{}
	if !actor.SeesAllRecords() {
		query["calculated_by"] = actor.ID
	}
	if species != "" {
		query["species"] = species
	}

	calcs := []models.RationCalculation{}
	opts := repository.FindOptions{Sort: bson.D{{Key: "calculated_at", Value: -1}}, Limit: calculationsLimit}
	if err := s.store.Find(ctx, repository.CollRationCalculations, query, opts, &calcs); err != nil {
		return nil, fmt.Errorf("list ration calculations: %w", err)
	}
	return calcs, nil
}
