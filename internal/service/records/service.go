// Package records keeps the farmer-owned animal register and its event logs.
package records

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
)

const (
	listLimit     = 1000
	defaultStatus = "healthy"
)

// Service manages animals, vaccinations, deworming and breeding events.
type Service struct {
	store  repository.Records
	logger *zap.Logger
	now    func() time.Time
}

// NewService wires the records service.
func NewService(store repository.Records, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{store: store, logger: logger, now: time.Now}
}

// scope limits a query to the caller's own records unless they see everything.
func scope(actor models.Principal, query bson.M) bson.M {
	if !actor.SeesAllRecords() {
		query["farmer_id"] = actor.ID
	}
	return query
}

// CreateAnimal registers an animal owned by the caller.
func (s *Service) CreateAnimal(ctx context.Context, actor models.Principal, in models.Animal) (*models.Animal, error) {
	now := s.now().UTC()
	in.ID = uuid.NewString()
	in.FarmerID = actor.ID
	if in.Status == "" {
		in.Status = defaultStatus
	}
	in.CreatedAt = now
	in.UpdatedAt = now

	if err := s.store.Insert(ctx, repository.CollAnimals, in); err != nil {
		return nil, fmt.Errorf("create animal: %w", err)
	}
	s.logger.Debug("animal registered", zap.String("animal_id", in.ID), zap.String("farmer_id", in.FarmerID))
	return &in, nil
}

// Animals lists visible animals, optionally for one species.
func (s *Service) Animals(ctx context.Context, actor models.Principal, species models.Species) ([]models.Animal, error) {
	query := scope(actor, bson.M{})
	if species != "" {
		query["species"] = species
	}

	animals := []models.Animal{}
	opts := repository.FindOptions{Sort: bson.D{{Key: "created_at", Value: -1}}, Limit: listLimit}
	if err := s.store.Find(ctx, repository.CollAnimals, query, opts, &animals); err != nil {
		return nil, fmt.Errorf("list animals: %w", err)
	}
	return animals, nil
}

// Animal returns one visible animal.
func (s *Service) Animal(ctx context.Context, actor models.Principal, id string) (*models.Animal, error) {
	var animal models.Animal
	if err := s.store.FindOne(ctx, repository.CollAnimals, scope(actor, bson.M{"id": id}), &animal); err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil, models.NewError(models.ErrNotFound, "Animal not found")
		}
		return nil, fmt.Errorf("load animal: %w", err)
	}
	return &animal, nil
}

// UpdateAnimal replaces the editable fields of a visible animal.
func (s *Service) UpdateAnimal(ctx context.Context, actor models.Principal, id string, in models.Animal) (*models.Animal, error) {
	current, err := s.Animal(ctx, actor, id)
	if err != nil {
		return nil, err
	}

	if in.Status == "" {
		in.Status = current.Status
	}
	set := bson.M{
		"tag_id":     in.TagID,
		"species":    in.Species,
		"breed":      in.Breed,
		"age_months": in.AgeMonths,
		"gender":     in.Gender,
		"status":     in.Status,
		"color":      in.Color,
		"weight_kg":  in.WeightKg,
		"notes":      in.Notes,
		"updated_at": s.now().UTC(),
	}
	if err := s.store.Update(ctx, repository.CollAnimals, bson.M{"id": id}, set); err != nil {
		return nil, fmt.Errorf("update animal: %w", err)
	}
	return s.Animal(ctx, actor, id)
}

// DeleteAnimal removes a visible animal.
func (s *Service) DeleteAnimal(ctx context.Context, actor models.Principal, id string) error {
	if err := s.store.Delete(ctx, repository.CollAnimals, scope(actor, bson.M{"id": id})); err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return models.NewError(models.ErrNotFound, "Animal not found")
		}
		return fmt.Errorf("delete animal: %w", err)
	}
	return nil
}
