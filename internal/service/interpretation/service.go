package interpretation

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

const listLimit = 1000

// ReferenceLookup resolves the current knowledge entry for a test. It returns
// nil without error when nothing matches.
type ReferenceLookup interface {
	ReferenceFor(ctx context.Context, category models.TestCategory, testType string, species models.Species) (*models.ReferenceRange, error)
}

// Metrics receives interpretation outcomes.
type Metrics interface {
	DiagnosticInterpreted(status models.InterpretationStatus)
	SafetyAlertRaised(disease string)
}

type nopMetrics struct{}

func (nopMetrics) DiagnosticInterpreted(models.InterpretationStatus) {}
func (nopMetrics) SafetyAlertRaised(string)                          {}

// Filter narrows diagnostic listings.
type Filter struct {
	AnimalID     string
	TestCategory models.TestCategory
}

// Service records diagnostics together with their interpretation snapshot.
type Service struct {
	store   repository.Records
	refs    ReferenceLookup
	metrics Metrics
	logger  *zap.Logger
	now     func() time.Time
}

// NewService wires a diagnostics service.
func NewService(store repository.Records, refs ReferenceLookup, metrics Metrics, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	if metrics == nil {
		metrics = nopMetrics{}
	}
	return &Service{store: store, refs: refs, metrics: metrics, logger: logger, now: time.Now}
}

// Record interprets the observation against the current reference entry and
// stores the diagnostic. Later edits to the reference never change the stored result.
func (s *Service) Record(ctx context.Context, actor models.Principal, in models.DiagnosticInput) (*models.Diagnostic, error) {
	var animal models.Animal
	if err := s.store.FindOne(ctx, repository.CollAnimals, bson.M{"id": in.AnimalID}, &animal); err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil, models.NewError(models.ErrNotFound, "Animal not found")
		}
		return nil, fmt.Errorf("load animal: %w", err)
	}

	ref, err := s.refs.ReferenceFor(ctx, in.TestCategory, in.TestType, in.Species)
	if err != nil {
		return nil, fmt.Errorf("resolve reference: %w", err)
	}

	result := Interpret(ref, in.Observation)
	s.metrics.DiagnosticInterpreted(result.Status)
	if result.SafetyAlert != nil {
		s.metrics.SafetyAlertRaised(result.SafetyAlert.Disease)
		s.logger.Warn("zoonotic finding",
			zap.String("disease", result.SafetyAlert.Disease),
			zap.String("animal_id", in.AnimalID),
			zap.String("vet_id", actor.ID),
		)
	}

	symptoms := in.Symptoms
	if symptoms == nil {
		symptoms = []string{}
	}
	now := s.now().UTC()
	diag := &models.Diagnostic{
		ID:             uuid.NewString(),
		AnimalID:       in.AnimalID,
		FarmerID:       animal.FarmerID,
		VetID:          actor.ID,
		Observation:    in.Observation,
		Symptoms:       symptoms,
		Notes:          in.Notes,
		Interpretation: result,
		Date:           now,
		CreatedAt:      now,
	}
	if err := s.store.Insert(ctx, repository.CollDiagnostics, diag); err != nil {
		return nil, fmt.Errorf("save diagnostic: %w", err)
	}
	return diag, nil
}

// List returns diagnostics visible to the caller, newest first.
func (s *Service) List(ctx context.Context, actor models.Principal, filter Filter) ([]models.Diagnostic, error) {
	query := bson.M{}
	if !actor.SeesAllRecords() {
		query["farmer_id"] = actor.ID
	}
	if filter.AnimalID != "" {
		query["animal_id"] = filter.AnimalID
	}
	if filter.TestCategory != "" {
		query["test_category"] = filter.TestCategory
	}

	diags := []models.Diagnostic{}
	opts := repository.FindOptions{Sort: bson.D{{Key: "date", Value: -1}}, Limit: listLimit}
	if err := s.store.Find(ctx, repository.CollDiagnostics, query, opts, &diags); err != nil {
		return nil, fmt.Errorf("list diagnostics: %w", err)
	}
	return diags, nil
}

// Get returns one diagnostic visible to the caller.
func (s *Service) Get(ctx context.Context, actor models.Principal, id string) (*models.Diagnostic, error) {
	query := bson.M{"id": id}
	if !actor.SeesAllRecords() {
		query["farmer_id"] = actor.ID
	}
	var diag models.Diagnostic
	if err := s.store.FindOne(ctx, repository.CollDiagnostics, query, &diag); err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil, models.NewError(models.ErrNotFound, "Diagnostic not found")
		}
		return nil, fmt.Errorf("load diagnostic: %w", err)
	}
	return &diag, nil
}
