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

var lockableRecords = map[string]string{
	"opd":         repository.CollOPDCases,
	"ipd":         repository.CollOPDCases,
	"surgical":    repository.CollSurgicalCases,
	"gynaecology": repository.CollGynaecologyCases,
	"castration":  repository.CollCastrationCases,
}

// sharedCaseTypes share a collection and are told apart by case_type.
var sharedCaseTypes = map[string]bool{"opd": true, "ipd": true}

// LockRecord locks or unlocks a clinical register entry. Locked entries
// reject edits.
func (s *Service) LockRecord(ctx context.Context, actor models.Principal, recordType, id string, locked bool, reason string) error {
	collection, ok := lockableRecords[recordType]
	if !ok {
		return models.NewError(models.ErrValidation, "Invalid record type")
	}

	filter := bson.M{"id": id}
	if sharedCaseTypes[recordType] {
		filter["case_type"] = recordType
	}

	var meta models.RegisterMeta
	if err := s.store.FindOne(ctx, collection, filter, &meta); err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return models.NewError(models.ErrNotFound, "Record not found")
		}
		return fmt.Errorf("load %s record: %w", recordType, err)
	}

	set := bson.M{"is_locked": locked, "lock_reason": "", "locked_by": "", "locked_at": nil}
	if locked {
		set["lock_reason"] = reason
		set["locked_by"] = actor.ID
		set["locked_at"] = s.now().UTC()
	}
	if err := s.store.Update(ctx, collection, filter, set); err != nil {
		return fmt.Errorf("lock %s record: %w", recordType, err)
	}

	action := models.ActionRecordUnlock
	if locked {
		action = models.ActionRecordLock
	}
	return s.recorder.Record(ctx, actor, audit.Entry{
		Action:     action,
		TargetType: recordType,
		TargetID:   id,
		Before:     bson.M{"is_locked": meta.IsLocked},
		After:      bson.M{"is_locked": locked},
		Reason:     reason,
	})
}
