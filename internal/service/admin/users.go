package admin

import (
	"context"
	"fmt"
	"regexp"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/mamadbah2/livestockcare/internal/domain/models"
	"github.com/mamadbah2/livestockcare/internal/repository"
	"github.com/mamadbah2/livestockcare/internal/service/audit"
)

const (
	userListLimit = 500
	activityLimit = 20
	targetUser    = "user"
)

// Users lists accounts, newest first.
func (s *Service) Users(ctx context.Context, filter models.UserFilter) ([]models.User, error) {
	query := bson.M{}
	if filter.Role != "" {
		query["role"] = filter.Role
	}
	switch filter.Status {
	case "active":
		query["is_active"] = true
	case "inactive":
		query["is_active"] = false
	}
	if filter.Search != "" {
		pattern := bson.M{"$regex": regexp.QuoteMeta(filter.Search), "$options": "i"}
		query["$or"] = bson.A{
			bson.M{"name": pattern},
			bson.M{"phone": pattern},
			bson.M{"village": pattern},
		}
	}

	users := []models.User{}
	opts := repository.FindOptions{Sort: bson.D{{Key: "created_at", Value: -1}}, Limit: userListLimit}
	if err := s.store.Find(ctx, repository.CollUsers, query, opts, &users); err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return users, nil
}

// User returns an account with its role-specific profile and counters.
func (s *Service) User(ctx context.Context, id string) (*models.UserDetail, error) {
	u, err := s.user(ctx, id)
	if err != nil {
		return nil, err
	}
	detail := &models.UserDetail{User: u}

	switch u.Role {
	case models.RoleFarmer:
		n, err := s.store.Count(ctx, repository.CollAnimals, bson.M{"farmer_id": id})
		if err != nil {
			return nil, fmt.Errorf("count animals: %w", err)
		}
		detail.Stats = map[string]int64{"animals": n}
	case models.RoleVeterinarian:
		if p, err := s.vetProfile(ctx, id); err == nil {
			detail.VetProfile = p
		}
		n, err := s.store.Count(ctx, repository.CollOPDCases, bson.M{"vet_id": id})
		if err != nil {
			return nil, fmt.Errorf("count opd cases: %w", err)
		}
		detail.Stats = map[string]int64{"opd_cases": n}
	}
	return detail, nil
}

// SetUserStatus activates or deactivates a non-admin account.
func (s *Service) SetUserStatus(ctx context.Context, actor models.Principal, id string, active bool, reason string) error {
	u, err := s.user(ctx, id)
	if err != nil {
		return err
	}
	if u.Role == models.RoleAdmin {
		return models.NewError(models.ErrForbidden, "Cannot modify admin status")
	}

	set := bson.M{"is_active": active, "updated_at": s.now().UTC()}
	if err := s.store.Update(ctx, repository.CollUsers, bson.M{"id": id}, set); err != nil {
		return fmt.Errorf("update user status: %w", err)
	}

	action := models.ActionUserDeactivate
	if active {
		action = models.ActionUserActivate
	}
	return s.recorder.Record(ctx, actor, audit.Entry{
		Action:     action,
		TargetType: targetUser,
		TargetID:   id,
		Before:     bson.M{"is_active": u.IsActive},
		After:      bson.M{"is_active": active},
		Reason:     reason,
	})
}

// LockUser locks or unlocks an account. Locked accounts cannot log in.
func (s *Service) LockUser(ctx context.Context, actor models.Principal, id string, locked bool, reason string) error {
	u, err := s.user(ctx, id)
	if err != nil {
		return err
	}

	lockReason := ""
	if locked {
		lockReason = reason
	}
	set := bson.M{"is_locked": locked, "lock_reason": lockReason, "updated_at": s.now().UTC()}
	if err := s.store.Update(ctx, repository.CollUsers, bson.M{"id": id}, set); err != nil {
		return fmt.Errorf("update user lock: %w", err)
	}

	action := models.ActionUserUnlock
	if locked {
		action = models.ActionUserLock
	}
	return s.recorder.Record(ctx, actor, audit.Entry{
		Action:     action,
		TargetType: targetUser,
		TargetID:   id,
		Before:     bson.M{"is_locked": u.IsLocked},
		After:      bson.M{"is_locked": locked},
		Reason:     reason,
	})
}

// UserActivity summarises what a farmer or veterinarian has recorded recently.
func (s *Service) UserActivity(ctx context.Context, id string) (*models.UserActivity, error) {
	u, err := s.user(ctx, id)
	if err != nil {
		return nil, err
	}
	out := &models.UserActivity{User: u.Name, Role: u.Role, Activity: []models.ActivityItem{}}

	switch u.Role {
	case models.RoleFarmer:
		animals := []models.Animal{}
		opts := repository.FindOptions{Sort: bson.D{{Key: "created_at", Value: -1}}, Limit: activityLimit}
		if err := s.store.Find(ctx, repository.CollAnimals, bson.M{"farmer_id": id}, opts, &animals); err != nil {
			return nil, fmt.Errorf("list animals: %w", err)
		}
		for _, a := range animals {
			out.Activity = append(out.Activity, models.ActivityItem{
				Type:        "animal_registration",
				Description: fmt.Sprintf("Registered animal: %s (%s)", a.TagID, a.Species),
				Date:        a.CreatedAt,
			})
		}
	case models.RoleVeterinarian:
		cases := []models.ClinicalCase{}
		opts := repository.FindOptions{Sort: bson.D{{Key: "case_date", Value: -1}}, Limit: activityLimit}
		if err := s.store.Find(ctx, repository.CollOPDCases, bson.M{"vet_id": id}, opts, &cases); err != nil {
			return nil, fmt.Errorf("list cases: %w", err)
		}
		for _, c := range cases {
			out.Activity = append(out.Activity, models.ActivityItem{
				Type:        "opd_case",
				Description: fmt.Sprintf("OPD Case: %s - %s", c.CaseNumber, c.TentativeDiagnosis),
				Date:        c.CaseDate,
			})
		}
	}
	return out, nil
}
