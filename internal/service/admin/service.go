// Package admin implements the administrative console: user management,
// verification, safety rules, notifications, settings, record locks and the
// admin dashboards. Every mutation lands in the audit log.
package admin

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"

	"github.com/mamadbah2/livestockcare/internal/domain/models"
	"github.com/mamadbah2/livestockcare/internal/repository"
	"github.com/mamadbah2/livestockcare/internal/service/audit"
)

// Store is the persistence the admin console needs.
type Store interface {
	repository.Records
	repository.Reports
}

// Messenger delivers a text message to a phone number.
type Messenger interface {
	Send(ctx context.Context, phone, body string) error
}

// Service is the admin console.
type Service struct {
	store     Store
	recorder  *audit.Recorder
	messenger Messenger
	logger    *zap.Logger
	now       func() time.Time

	fanout     int
	deliveries sync.WaitGroup
}

// Option customises a Service.
type Option func(*Service)

// WithMessenger enables WhatsApp delivery of notifications.
func WithMessenger(m Messenger) Option {
	return func(s *Service) { s.messenger = m }
}

// WithFanout bounds the number of concurrent notification sends.
func WithFanout(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.fanout = n
		}
	}
}

// NewService wires the admin console.
func NewService(store Store, recorder *audit.Recorder, logger *zap.Logger, opts ...Option) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Service{store: store, recorder: recorder, logger: logger, now: time.Now, fanout: 5}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Wait blocks until background notification deliveries have finished.
func (s *Service) Wait() {
	s.deliveries.Wait()
}

func (s *Service) user(ctx context.Context, id string) (*models.User, error) {
	var u models.User
	if err := s.store.FindOne(ctx, repository.CollUsers, bson.M{"id": id}, &u); err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil, models.NewError(models.ErrNotFound, "User not found")
		}
		return nil, fmt.Errorf("load user: %w", err)
	}
	return &u, nil
}

func (s *Service) vetProfile(ctx context.Context, userID string) (*models.VetProfile, error) {
	var p models.VetProfile
	if err := s.store.FindOne(ctx, repository.CollVetProfiles, bson.M{"user_id": userID}, &p); err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil, models.NewError(models.ErrNotFound, "Vet profile not found")
		}
		return nil, fmt.Errorf("load vet profile: %w", err)
	}
	return &p, nil
}

// AuditLogs lists audit entries, newest first.
func (s *Service) AuditLogs(ctx context.Context, filter models.AuditFilter) ([]models.AuditEntry, error) {
	return s.recorder.List(ctx, filter)
}
