// Package memory is an in-process implementation of the repository contracts.
// It understands the subset of the MongoDB query language the services use.
package memory

import (
	"context"
	"fmt"
	"reflect"
	"sort"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/mamadbah2/livestockcare/internal/domain/models"
	"github.com/mamadbah2/livestockcare/internal/repository"
)

var _ repository.Store = (*Store)(nil)

// Store keeps every collection as an ordered slice of documents.
type Store struct {
	mu          sync.Mutex
	collections map[string][]bson.M
	counters    map[string]int64
	audit       []models.AuditEntry
}

// New returns an empty store.
func New() *Store {
	return &Store{
		collections: make(map[string][]bson.M),
		counters:    make(map[string]int64),
	}
}

func (s *Store) Insert(_ context.Context, collection string, doc any) error {
	m, err := toDoc(doc)
	if err != nil {
		return fmt.Errorf("insert into %s: %w", collection, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.collections[collection] = append(s.collections[collection], m)
	return nil
}

func (s *Store) FindOne(_ context.Context, collection string, filter bson.M, out any) error {
	f, err := toDoc(filter)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, doc := range s.collections[collection] {
		if matches(doc, f) {
			return fromDoc(doc, out)
		}
	}
	return models.ErrNotFound
}

func (s *Store) Find(_ context.Context, collection string, filter bson.M, opts repository.FindOptions, out any) error {
	f, err := toDoc(filter)
	if err != nil {
		return err
	}

	s.mu.Lock()
	var found []bson.M
	for _, doc := range s.collections[collection] {
		if matches(doc, f) {
			found = append(found, doc)
		}
	}
	s.mu.Unlock()

	if len(opts.Sort) > 0 {
		sort.SliceStable(found, func(i, j int) bool {
			for _, key := range opts.Sort {
				c, _ := compare(lookup(found[i], key.Key), lookup(found[j], key.Key))
				if c == 0 {
					continue
				}
				if direction(key.Value) < 0 {
					return c > 0
				}
				return c < 0
			}
			return false
		})
	}
	if opts.Limit > 0 && int64(len(found)) > opts.Limit {
		found = found[:opts.Limit]
	}

	slice := reflect.ValueOf(out)
	if slice.Kind() != reflect.Pointer || slice.Elem().Kind() != reflect.Slice {
		return fmt.Errorf("find into %T: out must point to a slice", out)
	}
	elemType := slice.Elem().Type().Elem()
	result := reflect.MakeSlice(slice.Elem().Type(), 0, len(found))
	for _, doc := range found {
		elem := reflect.New(elemType)
		if err := fromDoc(doc, elem.Interface()); err != nil {
			return err
		}
		result = reflect.Append(result, elem.Elem())
	}
	slice.Elem().Set(result)
	return nil
}

func (s *Store) Update(_ context.Context, collection string, filter bson.M, set bson.M) error {
	f, err := toDoc(filter)
	if err != nil {
		return err
	}
	values, err := toDoc(set)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, doc := range s.collections[collection] {
		if matches(doc, f) {
			applySet(doc, values)
			return nil
		}
	}
	return models.ErrNotFound
}

func (s *Store) Upsert(_ context.Context, collection string, filter bson.M, set bson.M) error {
	f, err := toDoc(filter)
	if err != nil {
		return err
	}
	values, err := toDoc(set)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, doc := range s.collections[collection] {
		if matches(doc, f) {
			applySet(doc, values)
			return nil
		}
	}

	doc := bson.M{}
	for k, v := range f {
		if _, isOperator := v.(bson.M); !isOperator && k[0] != '$' {
			doc[k] = v
		}
	}
	applySet(doc, values)
	s.collections[collection] = append(s.collections[collection], doc)
	return nil
}

func (s *Store) Delete(_ context.Context, collection string, filter bson.M) error {
	f, err := toDoc(filter)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	docs := s.collections[collection]
	for i, doc := range docs {
		if matches(doc, f) {
			s.collections[collection] = append(docs[:i:i], docs[i+1:]...)
			return nil
		}
	}
	return models.ErrNotFound
}

func (s *Store) Count(_ context.Context, collection string, filter bson.M) (int64, error) {
	f, err := toDoc(filter)
	if err != nil {
		return 0, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	var n int64
	for _, doc := range s.collections[collection] {
		if matches(doc, f) {
			n++
		}
	}
	return n, nil
}

func (s *Store) NextSequence(_ context.Context, key string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.counters[key]++
	return s.counters[key], nil
}

func (s *Store) AppendAudit(_ context.Context, entry models.AuditEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.audit = append(s.audit, entry)
	return nil
}

func (s *Store) ListAudit(_ context.Context, filter models.AuditFilter) ([]models.AuditEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []models.AuditEntry
	for i := len(s.audit) - 1; i >= 0; i-- {
		e := s.audit[i]
		if filter.ActionType != "" && e.ActionType != filter.ActionType {
			continue
		}
		if filter.TargetType != "" && e.TargetType != filter.TargetType {
			continue
		}
		if filter.AdminID != "" && e.AdminID != filter.AdminID {
			continue
		}
		if filter.DateFrom != nil && e.Timestamp.Before(*filter.DateFrom) {
			continue
		}
		if filter.DateTo != nil && e.Timestamp.After(*filter.DateTo) {
			continue
		}
		out = append(out, e)
	}
	return out, nil
}

func (s *Store) UsersByRole(ctx context.Context) ([]models.RoleActivity, error) {
	var users []models.User
	if err := s.Find(ctx, repository.CollUsers, nil, repository.FindOptions{}, &users); err != nil {
		return nil, err
	}

	byRole := make(map[models.Role]*models.RoleActivity)
	for _, u := range users {
		row, ok := byRole[u.Role]
		if !ok {
			row = &models.RoleActivity{Role: u.Role}
			byRole[u.Role] = row
		}
		row.Count++
		if u.IsActive {
			row.ActiveCount++
		}
	}

	rows := make([]models.RoleActivity, 0, len(byRole))
	for _, row := range byRole {
		rows = append(rows, *row)
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].Role < rows[j].Role })
	return rows, nil
}

func (s *Store) CasesByDiagnosis(ctx context.Context, from, to *time.Time) ([]models.DiseaseCount, error) {
	filter := bson.M{}
	if r := repository.DateRange(from, to); r != nil {
		filter["case_date"] = r
	}
	var cases []models.ClinicalCase
	if err := s.Find(ctx, repository.CollOPDCases, filter, repository.FindOptions{}, &cases); err != nil {
		return nil, err
	}

	byDiagnosis := make(map[string]*models.DiseaseCount)
	var order []string
	for _, c := range cases {
		row, ok := byDiagnosis[c.TentativeDiagnosis]
		if !ok {
			row = &models.DiseaseCount{Diagnosis: c.TentativeDiagnosis, Villages: []string{}}
			byDiagnosis[c.TentativeDiagnosis] = row
			order = append(order, c.TentativeDiagnosis)
		}
		row.Count++
		if c.FarmerVillage != "" && !containsString(row.Villages, c.FarmerVillage) {
			row.Villages = append(row.Villages, c.FarmerVillage)
		}
	}

	rows := make([]models.DiseaseCount, 0, len(order))
	for _, d := range order {
		rows = append(rows, *byDiagnosis[d])
	}
	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].Count != rows[j].Count {
			return rows[i].Count > rows[j].Count
		}
		return rows[i].Diagnosis < rows[j].Diagnosis
	})
	return rows, nil
}

// Len reports the number of documents in a collection.
func (s *Store) Len(collection string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.collections[collection])
}

// AuditLen reports the number of audit entries.
func (s *Store) AuditLen() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.audit)
}

func toDoc(v any) (bson.M, error) {
	if v == nil {
		return bson.M{}, nil
	}
	raw, err := bson.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("marshal document: %w", err)
	}
	var m bson.M
	if err := bson.Unmarshal(raw, &m); err != nil {
		return nil, fmt.Errorf("unmarshal document: %w", err)
	}
	return m, nil
}

func fromDoc(doc bson.M, out any) error {
	raw, err := bson.Marshal(doc)
	if err != nil {
		return fmt.Errorf("marshal document: %w", err)
	}
	if err := bson.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decode into %T: %w", out, err)
	}
	return nil
}

func applySet(doc bson.M, values bson.M) {
	for k, v := range values {
		doc[k] = v
	}
}

func containsString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
