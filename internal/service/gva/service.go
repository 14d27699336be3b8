package gva

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"

	"github.com/mamadbah2/livestockcare/internal/domain/models"
	"github.com/mamadbah2/livestockcare/internal/repository"
	"github.com/mamadbah2/livestockcare/internal/service/audit"
)

const (
	settingsKey    = "gva_parameters"
	reportsLimit   = 100
	exportTimeout  = 30 * time.Second
	cleanupEvery   = 10 * time.Minute
	auditTargetGVA = "gva_settings"
)

// Exporter publishes saved reports to an external sheet.
type Exporter interface {
	ExportGVAReport(ctx context.Context, report *models.GVAReport) error
}

// Metrics counts calculations.
type Metrics interface {
	GVACalculated()
}

type settingsDoc struct {
	Type       string                     `bson:"type"`
	Parameters models.GVASettingsOverride `bson:"parameters"`
	UpdatedBy  string                     `bson:"updated_by"`
	UpdatedAt  time.Time                  `bson:"updated_at"`
}

// Service owns GVA settings and reports.
type Service struct {
	store    repository.Records
	recorder *audit.Recorder
	cache    *cache.Cache
	exporter Exporter
	metrics  Metrics
	logger   *zap.Logger
	now      func() time.Time

	exports sync.WaitGroup
}

// NewService wires the GVA service. exporter and metrics may be nil.
func NewService(store repository.Records, recorder *audit.Recorder, ttl time.Duration, exporter Exporter, metrics Metrics, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		store:    store,
		recorder: recorder,
		cache:    cache.New(ttl, cleanupEvery),
		exporter: exporter,
		metrics:  metrics,
		logger:   logger,
		now:      time.Now,
	}
}

// Settings returns the resolved parameters, served from cache when fresh.
func (s *Service) Settings(ctx context.Context) (models.GVASettings, error) {
	if cached, ok := s.cache.Get(settingsKey); ok {
		return cached.(models.GVASettings), nil
	}

	var doc settingsDoc
	err := s.store.FindOne(ctx, repository.CollGVASettings, bson.M{"type": settingsKey}, &doc)
	switch {
	case errors.Is(err, models.ErrNotFound):
		doc = settingsDoc{}
	case err != nil:
		return models.GVASettings{}, fmt.Errorf("load gva settings: %w", err)
	}

	settings := Resolve(&doc.Parameters)
	s.cache.SetDefault(settingsKey, settings)
	return settings, nil
}

// UpdateSettings stores a (possibly partial) override and invalidates the cache.
func (s *Service) UpdateSettings(ctx context.Context, actor models.Principal, override models.GVASettingsOverride) (models.GVASettings, error) {
	before, err := s.Settings(ctx)
	if err != nil {
		return models.GVASettings{}, err
	}

	set := bson.M{
		"parameters": override,
		"updated_by": actor.ID,
		"updated_at": s.now().UTC(),
	}
	if err := s.store.Upsert(ctx, repository.CollGVASettings, bson.M{"type": settingsKey}, set); err != nil {
		return models.GVASettings{}, fmt.Errorf("save gva settings: %w", err)
	}
	s.cache.Delete(settingsKey)

	after := Resolve(&override)
	err = s.recorder.Record(ctx, actor, audit.Entry{
		Action:     models.ActionSettingUpdate,
		TargetType: auditTargetGVA,
		TargetID:   settingsKey,
		Before:     before,
		After:      after,
	})
	if err != nil {
		return models.GVASettings{}, err
	}
	return after, nil
}

// Calculate runs the engine with the current settings and saves the report.
func (s *Service) Calculate(ctx context.Context, actor models.Principal, in models.GVAInput) (*models.GVAReport, error) {
	settings, err := s.Settings(ctx)
	if err != nil {
		return nil, err
	}

	report := &models.GVAReport{
		ID:           uuid.NewString(),
		Inputs:       in,
		Results:      Calculate(in, settings),
		SettingsUsed: settings,
		VetID:        actor.ID,
		VetName:      actor.Name,
		CreatedAt:    s.now().UTC(),
	}

	var profile models.VetProfile
	err = s.store.FindOne(ctx, repository.CollVetProfiles, bson.M{"user_id": actor.ID}, &profile)
	switch {
	case err == nil:
		report.Institution = profile.InstitutionName
	case !errors.Is(err, models.ErrNotFound):
		return nil, fmt.Errorf("load vet profile: %w", err)
	}

	if err := s.store.Insert(ctx, repository.CollGVAReports, report); err != nil {
		return nil, fmt.Errorf("save gva report: %w", err)
	}
	if s.metrics != nil {
		s.metrics.GVACalculated()
	}
	s.export(report)
	return report, nil
}

func (s *Service) export(report *models.GVAReport) {
	if s.exporter == nil {
		return
	}
	s.exports.Add(1)
	go func() {
		defer s.exports.Done()
		ctx, cancel := context.WithTimeout(context.Background(), exportTimeout)
		defer cancel()
		if err := s.exporter.ExportGVAReport(ctx, report); err != nil {
			s.logger.Error("failed to export gva report", zap.String("report_id", report.ID), zap.Error(err))
		}
	}()
}

// Wait blocks until background sheet exports have finished.
func (s *Service) Wait() {
	s.exports.Wait()
}

// Reports lists saved reports, newest first. Veterinarians only see their own.
func (s *Service) Reports(ctx context.Context, actor models.Principal) ([]models.GVAReport, error) {
	query := bson.M{}
	if actor.Role == models.RoleVeterinarian {
		query["vet_id"] = actor.ID
	}

	reports := []models.GVAReport{}
	opts := repository.FindOptions{Sort: bson.D{{Key: "created_at", Value: -1}}, Limit: reportsLimit}
	if err := s.store.Find(ctx, repository.CollGVAReports, query, opts, &reports); err != nil {
		return nil, fmt.Errorf("list gva reports: %w", err)
	}
	return reports, nil
}

// Report returns a single saved report.
func (s *Service) Report(ctx context.Context, id string) (*models.GVAReport, error) {
	var report models.GVAReport
	if err := s.store.FindOne(ctx, repository.CollGVAReports, bson.M{"id": id}, &report); err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil, models.NewError(models.ErrNotFound, "Report not found")
		}
		return nil, fmt.Errorf("load gva report: %w", err)
	}
	return &report, nil
}
