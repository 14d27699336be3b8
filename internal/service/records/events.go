package records

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/mamadbah2/livestockcare/internal/domain/models"
	"github.com/mamadbah2/livestockcare/internal/repository"
)

// owner returns the farmer of a visible animal. Events are filed under the
// animal's owner so that farmers see entries recorded by vets.
func (s *Service) owner(ctx context.Context, actor models.Principal, animalID string) (string, error) {
	animal, err := s.Animal(ctx, actor, animalID)
	if err != nil {
		return "", err
	}
	return animal.FarmerID, nil
}

// RecordVaccination logs a vaccination against a visible animal.
func (s *Service) RecordVaccination(ctx context.Context, actor models.Principal, in models.Vaccination) (*models.Vaccination, error) {
	farmerID, err := s.owner(ctx, actor, in.AnimalID)
	if err != nil {
		return nil, err
	}
	now := s.now().UTC()
	in.ID, in.FarmerID, in.Date, in.CreatedAt = uuid.NewString(), farmerID, now, now
	if err := s.store.Insert(ctx, repository.CollVaccinations, in); err != nil {
		return nil, fmt.Errorf("record vaccination: %w", err)
	}
	return &in, nil
}

// RecordDeworming logs a deworming against a visible animal.
func (s *Service) RecordDeworming(ctx context.Context, actor models.Principal, in models.Deworming) (*models.Deworming, error) {
	farmerID, err := s.owner(ctx, actor, in.AnimalID)
	if err != nil {
		return nil, err
	}
	now := s.now().UTC()
	in.ID, in.FarmerID, in.Date, in.CreatedAt = uuid.NewString(), farmerID, now, now
	if err := s.store.Insert(ctx, repository.CollDeworming, in); err != nil {
		return nil, fmt.Errorf("record deworming: %w", err)
	}
	return &in, nil
}

// RecordBreeding logs a service or insemination against a visible animal.
func (s *Service) RecordBreeding(ctx context.Context, actor models.Principal, in models.Breeding) (*models.Breeding, error) {
	farmerID, err := s.owner(ctx, actor, in.AnimalID)
	if err != nil {
		return nil, err
	}
	now := s.now().UTC()
	in.ID, in.FarmerID, in.Date, in.CreatedAt = uuid.NewString(), farmerID, now, now
	if err := s.store.Insert(ctx, repository.CollBreeding, in); err != nil {
		return nil, fmt.Errorf("record breeding: %w", err)
	}
	return &in, nil
}

// Vaccinations lists visible vaccinations, newest first.
func (s *Service) Vaccinations(ctx context.Context, actor models.Principal, animalID string) ([]models.Vaccination, error) {
	return listEvents[models.Vaccination](ctx, s.store, repository.CollVaccinations, actor, animalID)
}

// Dewormings lists visible deworming events, newest first.
func (s *Service) Dewormings(ctx context.Context, actor models.Principal, animalID string) ([]models.Deworming, error) {
	return listEvents[models.Deworming](ctx, s.store, repository.CollDeworming, actor, animalID)
}

// Breedings lists visible breeding events, newest first.
func (s *Service) Breedings(ctx context.Context, actor models.Principal, animalID string) ([]models.Breeding, error) {
	return listEvents[models.Breeding](ctx, s.store, repository.CollBreeding, actor, animalID)
}

func listEvents[T any](ctx context.Context, store repository.Records, collection string, actor models.Principal, animalID string) ([]T, error) {
	query := scope(actor, bson.M{})
	if animalID != "" {
		query["animal_id"] = animalID
	}

	out := []T{}
	opts := repository.FindOptions{Sort: bson.D{{Key: "date", Value: -1}}, Limit: listLimit}
	if err := store.Find(ctx, collection, query, opts, &out); err != nil {
		return nil, fmt.Errorf("list %s: %w", collection, err)
	}
	return out, nil
}
