// Package registers implements the veterinarian's clinical registers along
// with the vet profile and institution records they hang off.
package registers

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
	"github.com/mamadbah2/livestockcare/internal/service/numbering"
)

// Service owns the clinical registers.
type Service struct {
	store   repository.Records
	numbers *numbering.Generator
	logger  *zap.Logger
	now     func() time.Time

	OPD         *Register[models.ClinicalCase, *models.ClinicalCase]
	IPD         *Register[models.ClinicalCase, *models.ClinicalCase]
	Surgical    *Register[models.SurgicalCase, *models.SurgicalCase]
	Gynaecology *Register[models.GynaecologyCase, *models.GynaecologyCase]
	Castration  *Register[models.CastrationCase, *models.CastrationCase]
}

// NewService wires the registers over the record store and number generator.
func NewService(store repository.Records, numbers *numbering.Generator, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Service{store: store, numbers: numbers, logger: logger, now: time.Now}
	s.OPD = newRegister[models.ClinicalCase](s, "opd", repository.CollOPDCases, numbering.PrefixOPD, "opd")
	s.IPD = newRegister[models.ClinicalCase](s, "ipd", repository.CollOPDCases, numbering.PrefixIPD, "ipd")
	s.Surgical = newRegister[models.SurgicalCase](s, "surgical", repository.CollSurgicalCases, numbering.PrefixSurgical, "")
	s.Gynaecology = newRegister[models.GynaecologyCase](s, "gynaecology", repository.CollGynaecologyCases, numbering.PrefixGynaecology, "")
	s.Castration = newRegister[models.CastrationCase](s, "castration", repository.CollCastrationCases, numbering.PrefixCastration, "")
	return s
}

// CreateProfile registers the caller's veterinarian profile. Each vet has at
// most one profile and registration numbers are unique.
func (s *Service) CreateProfile(ctx context.Context, actor models.Principal, in models.VetProfileInput) (*models.VetProfile, error) {
	existing, err := s.Profile(ctx, actor.ID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, models.NewError(models.ErrConflict, "Profile already exists. Use PUT to update.")
	}

	taken, err := s.store.Count(ctx, repository.CollVetProfiles, bson.M{"registration_number": in.RegistrationNumber})
	if err != nil {
		return nil, fmt.Errorf("check registration number: %w", err)
	}
	if taken > 0 {
		return nil, models.NewError(models.ErrConflict, "Registration number already registered")
	}

	number, err := s.numbers.Next(ctx, numbering.PrefixVet)
	if err != nil {
		return nil, err
	}

	now := s.now().UTC()
	profile := &models.VetProfile{
		ID:              uuid.NewString(),
		VetProfileInput: in,
		VetID:           number.Number,
		UserID:          actor.ID,
		UserName:        actor.Name,
		IsComplete:      in.Complete(),
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := s.store.Insert(ctx, repository.CollVetProfiles, profile); err != nil {
		return nil, fmt.Errorf("create vet profile: %w", err)
	}
	s.logger.Info("vet profile created", zap.String("vet_id", profile.VetID), zap.String("user_id", actor.ID))
	return profile, nil
}

// Profile returns the vet profile of a user, or nil when none exists.
func (s *Service) Profile(ctx context.Context, userID string) (*models.VetProfile, error) {
	var profile models.VetProfile
	if err := s.store.FindOne(ctx, repository.CollVetProfiles, bson.M{"user_id": userID}, &profile); err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("load vet profile: %w", err)
	}
	return &profile, nil
}

// UpdateProfile replaces the editable profile fields. The registration number
// cannot change once set.
func (s *Service) UpdateProfile(ctx context.Context, actor models.Principal, in models.VetProfileInput) (*models.VetProfile, error) {
	current, err := s.Profile(ctx, actor.ID)
	if err != nil {
		return nil, err
	}
	if current == nil {
		return nil, models.NewError(models.ErrNotFound, "Profile not found")
	}
	if in.RegistrationNumber != current.RegistrationNumber {
		return nil, models.NewError(models.ErrConflict, "Registration number cannot be modified")
	}

	set, err := repository.SetFields(in)
	if err != nil {
		return nil, err
	}
	set["is_complete"] = in.Complete()
	set["updated_at"] = s.now().UTC()
	if err := s.store.Update(ctx, repository.CollVetProfiles, bson.M{"user_id": actor.ID}, set); err != nil {
		return nil, fmt.Errorf("update vet profile: %w", err)
	}
	return s.Profile(ctx, actor.ID)
}

// CreateInstitution records an unverified institution.
func (s *Service) CreateInstitution(ctx context.Context, actor models.Principal, in models.InstitutionInput) (*models.Institution, error) {
	if in.JurisdictionVillages == nil {
		in.JurisdictionVillages = []string{}
	}
	now := s.now().UTC()
	inst := &models.Institution{
		ID:               uuid.NewString(),
		InstitutionInput: in,
		CreatedBy:        actor.ID,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	if err := s.store.Insert(ctx, repository.CollInstitutions, inst); err != nil {
		return nil, fmt.Errorf("create institution: %w", err)
	}
	return inst, nil
}

func institutionScope(actor models.Principal, query bson.M) bson.M {
	if !actor.HasRole(models.RoleAdmin) {
		query["created_by"] = actor.ID
	}
	return query
}

// Institutions lists the caller's institutions, or all of them for admins.
func (s *Service) Institutions(ctx context.Context, actor models.Principal) ([]models.Institution, error) {
	out := []models.Institution{}
	opts := repository.FindOptions{Sort: bson.D{{Key: "created_at", Value: -1}}, Limit: listLimit}
	if err := s.store.Find(ctx, repository.CollInstitutions, institutionScope(actor, bson.M{}), opts, &out); err != nil {
		return nil, fmt.Errorf("list institutions: %w", err)
	}
	return out, nil
}

// Institution returns one visible institution.
func (s *Service) Institution(ctx context.Context, actor models.Principal, id string) (*models.Institution, error) {
	var inst models.Institution
	if err := s.store.FindOne(ctx, repository.CollInstitutions, institutionScope(actor, bson.M{"id": id}), &inst); err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil, models.NewError(models.ErrNotFound, "Institution not found")
		}
		return nil, fmt.Errorf("load institution: %w", err)
	}
	return &inst, nil
}
