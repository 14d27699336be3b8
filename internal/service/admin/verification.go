package admin

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/mamadbah2/livestockcare/internal/domain/models"
	"github.com/mamadbah2/livestockcare/internal/repository"
	"github.com/mamadbah2/livestockcare/internal/service/audit"
)

// VerifyVetRegistration records the outcome of checking a vet's registration number.
func (s *Service) VerifyVetRegistration(ctx context.Context, actor models.Principal, userID string, verified bool, remarks string) error {
	if _, err := s.vetProfile(ctx, userID); err != nil {
		return err
	}

	set := bson.M{
		"registration_verified": verified,
		"verification_date":     s.now().UTC(),
		"verification_remarks":  remarks,
		"verified_by":           actor.ID,
	}
	if err := s.store.Update(ctx, repository.CollVetProfiles, bson.M{"user_id": userID}, set); err != nil {
		return fmt.Errorf("verify vet registration: %w", err)
	}
	return s.recorder.Record(ctx, actor, audit.Entry{
		Action:     models.ActionUserUpdate,
		TargetType: "vet_profile",
		TargetID:   userID,
		After:      bson.M{"registration_verified": verified, "remarks": remarks},
	})
}

// SetCertificatePrivileges toggles a vet's ability to issue certificates.
func (s *Service) SetCertificatePrivileges(ctx context.Context, actor models.Principal, userID string, enabled bool) error {
	if _, err := s.vetProfile(ctx, userID); err != nil {
		return err
	}

	set := bson.M{"certificate_privileges": enabled, "updated_at": s.now().UTC()}
	if err := s.store.Update(ctx, repository.CollVetProfiles, bson.M{"user_id": userID}, set); err != nil {
		return fmt.Errorf("update certificate privileges: %w", err)
	}
	return s.recorder.Record(ctx, actor, audit.Entry{
		Action:     models.ActionUserUpdate,
		TargetType: "vet_profile",
		TargetID:   userID,
		After:      bson.M{"certificate_privileges": enabled},
	})
}

// VerifyInstitution marks an institution verified or revokes it.
func (s *Service) VerifyInstitution(ctx context.Context, actor models.Principal, id string, verified bool, remarks string) error {
	var inst models.Institution
	if err := s.store.FindOne(ctx, repository.CollInstitutions, bson.M{"id": id}, &inst); err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return models.NewError(models.ErrNotFound, "Institution not found")
		}
		return fmt.Errorf("load institution: %w", err)
	}

	now := s.now().UTC()
	set := bson.M{
		"is_verified":          verified,
		"verification_date":    now,
		"verification_remarks": remarks,
		"verified_by":          actor.ID,
		"updated_at":           now,
	}
	if err := s.store.Update(ctx, repository.CollInstitutions, bson.M{"id": id}, set); err != nil {
		return fmt.Errorf("verify institution: %w", err)
	}
	return s.recorder.Record(ctx, actor, audit.Entry{
		Action:     models.ActionUserUpdate,
		TargetType: "institution",
		TargetID:   id,
		Before:     bson.M{"is_verified": inst.IsVerified},
		After:      bson.M{"is_verified": verified},
		Reason:     remarks,
	})
}
