package registers

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"

	"github.com/mamadbah2/livestockcare/internal/domain/models"
	"github.com/mamadbah2/livestockcare/internal/repository"
)

const listLimit = 1000

// Bookkeeping keys owned by the register, never taken from client input.
var metaKeys = []string{
	"id", "case_number", "serial_number", "case_type", "vet_id", "vet_name", "case_date",
	"is_locked", "lock_reason", "locked_by", "locked_at", "created_at",
}

// entry is satisfied by pointers to the register types.
type entry[T any] interface {
	*T
	models.RegisterEntry
}

// Register is one clinical register backed by a collection. OPD and IPD share
// a collection and are told apart by case type.
type Register[T any, P entry[T]] struct {
	svc        *Service
	name       string
	collection string
	prefix     string
	caseType   string
}

func newRegister[T any, P entry[T]](svc *Service, name, collection, prefix, caseType string) *Register[T, P] {
	return &Register[T, P]{svc: svc, name: name, collection: collection, prefix: prefix, caseType: caseType}
}

// Name is the record type used by admin record locks.
func (r *Register[T, P]) Name() string { return r.name }

// Collection is the backing collection.
func (r *Register[T, P]) Collection() string { return r.collection }

// Create numbers the case and stores it under the calling vet.
func (r *Register[T, P]) Create(ctx context.Context, actor models.Principal, in T) (*T, error) {
	number, err := r.svc.numbers.Next(ctx, r.prefix)
	if err != nil {
		return nil, err
	}

	now := r.svc.now().UTC()
	meta := P(&in).Meta()
	*meta = models.RegisterMeta{
		ID:           uuid.NewString(),
		CaseNumber:   number.Number,
		SerialNumber: number.Serial,
		CaseType:     r.caseType,
		VetID:        actor.ID,
		VetName:      actor.Name,
		CaseDate:     now,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := r.svc.store.Insert(ctx, r.collection, in); err != nil {
		return nil, fmt.Errorf("create %s case: %w", r.name, err)
	}

	r.svc.logger.Info("case registered",
		zap.String("register", r.name),
		zap.String("case_number", meta.CaseNumber),
		zap.String("vet_id", actor.ID),
	)
	return &in, nil
}

func (r *Register[T, P]) scope(actor models.Principal, query bson.M) bson.M {
	if r.caseType != "" {
		query["case_type"] = r.caseType
	}
	if !actor.HasRole(models.RoleAdmin) {
		query["vet_id"] = actor.ID
	}
	return query
}

// List returns the caller's cases, or every case for admins, latest serial first.
func (r *Register[T, P]) List(ctx context.Context, actor models.Principal, filter models.CaseFilter) ([]T, error) {
	query := r.scope(actor, bson.M{})
	if rng := repository.DateRange(filter.DateFrom, filter.DateTo); rng != nil {
		query["case_date"] = rng
	}
	if filter.Species != "" {
		query["species"] = filter.Species
	}
	if filter.Result != "" {
		query["result"] = filter.Result
	}

	cases := []T{}
	opts := repository.FindOptions{
		Sort:  bson.D{{Key: "case_date", Value: -1}, {Key: "serial_number", Value: -1}},
		Limit: listLimit,
	}
	if err := r.svc.store.Find(ctx, r.collection, query, opts, &cases); err != nil {
		return nil, fmt.Errorf("list %s cases: %w", r.name, err)
	}
	return cases, nil
}

// Get returns one visible case.
func (r *Register[T, P]) Get(ctx context.Context, actor models.Principal, id string) (*T, error) {
	var out T
	if err := r.svc.store.FindOne(ctx, r.collection, r.scope(actor, bson.M{"id": id}), &out); err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil, models.NewError(models.ErrNotFound, "Case not found")
		}
		return nil, fmt.Errorf("load %s case: %w", r.name, err)
	}
	return &out, nil
}

// Update replaces the clinical fields of a case. Locked cases are rejected.
func (r *Register[T, P]) Update(ctx context.Context, actor models.Principal, id string, in T) (*T, error) {
	current, err := r.Get(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	if meta := P(current).Meta(); meta.IsLocked {
		msg := "Record is locked by admin"
		if meta.LockReason != "" {
			msg += ": " + meta.LockReason
		}
		return nil, models.NewError(models.ErrLocked, msg)
	}

	set, err := repository.SetFields(in)
	if err != nil {
		return nil, err
	}
	for _, k := range metaKeys {
		delete(set, k)
	}
	set["updated_at"] = r.svc.now().UTC()

	query := bson.M{"id": id, "is_locked": bson.M{"$ne": true}}
	if err := r.svc.store.Update(ctx, r.collection, query, set); err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil, models.NewError(models.ErrLocked, "Record is locked by admin")
		}
		return nil, fmt.Errorf("update %s case: %w", r.name, err)
	}
	return r.Get(ctx, actor, id)
}
