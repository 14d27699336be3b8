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

// Settings lists the runtime settings.
func (s *Service) Settings(ctx context.Context) ([]models.SystemSetting, error) {
	out := []models.SystemSetting{}
	opts := repository.FindOptions{Sort: bson.D{{Key: "key", Value: 1}}, Limit: 100}
	if err := s.store.Find(ctx, repository.CollSettings, bson.M{}, opts, &out); err != nil {
		return nil, fmt.Errorf("list settings: %w", err)
	}
	return out, nil
}

// UpdateSetting creates or replaces a setting value.
func (s *Service) UpdateSetting(ctx context.Context, actor models.Principal, key, value string) error {
	var before *string
	var existing models.SystemSetting
	err := s.store.FindOne(ctx, repository.CollSettings, bson.M{"key": key}, &existing)
	switch {
	case err == nil:
		before = &existing.Value
	case !errors.Is(err, models.ErrNotFound):
		return fmt.Errorf("load setting: %w", err)
	}

	now := s.now().UTC()
	set := bson.M{"key": key, "value": value, "updated_at": now}
	if before == nil {
		set["created_at"] = now
	}
	if err := s.store.Upsert(ctx, repository.CollSettings, bson.M{"key": key}, set); err != nil {
		return fmt.Errorf("update setting %s: %w", key, err)
	}

	return s.recorder.Record(ctx, actor, audit.Entry{
		Action:     models.ActionSettingUpdate,
		TargetType: "setting",
		TargetID:   key,
		Before:     bson.M{"value": before},
		After:      bson.M{"value": value},
	})
}
