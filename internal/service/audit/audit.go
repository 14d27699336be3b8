// Package audit records administrative mutations in the append-only audit log.
package audit

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/mamadbah2/livestockcare/internal/domain/models"
	"github.com/mamadbah2/livestockcare/internal/repository"
)

type clientIPKey struct{}

// WithClientIP attaches the caller's address to ctx for later audit entries.
func WithClientIP(ctx context.Context, ip string) context.Context {
	return context.WithValue(ctx, clientIPKey{}, ip)
}

func clientIP(ctx context.Context) string {
	ip, _ := ctx.Value(clientIPKey{}).(string)
	return ip
}

// Entry describes one mutation.
type Entry struct {
	Action     models.AdminActionType
	TargetType string
	TargetID   string
	Before     any
	After      any
	Reason     string
}

// Recorder appends audit entries on behalf of an actor.
type Recorder struct {
	log    repository.AuditLog
	logger *zap.Logger
	now    func() time.Time
}

// NewRecorder wires a recorder over the audit log store.
func NewRecorder(log repository.AuditLog, logger *zap.Logger) *Recorder {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Recorder{log: log, logger: logger, now: time.Now}
}

// Record appends a single immutable entry.
func (r *Recorder) Record(ctx context.Context, actor models.Principal, e Entry) error {
	entry := models.AuditEntry{
		ID:          uuid.NewString(),
		AdminID:     actor.ID,
		AdminName:   actor.Name,
		ActorRole:   actor.Role,
		ActionType:  e.Action,
		TargetType:  e.TargetType,
		TargetID:    e.TargetID,
		BeforeValue: e.Before,
		AfterValue:  e.After,
		Reason:      e.Reason,
		IPAddress:   clientIP(ctx),
		Timestamp:   r.now().UTC(),
	}
	if err := r.log.AppendAudit(ctx, entry); err != nil {
		return fmt.Errorf("record %s: %w", e.Action, err)
	}

	r.logger.Info("audit",
		zap.String("action", string(e.Action)),
		zap.String("target_type", e.TargetType),
		zap.String("target_id", e.TargetID),
		zap.String("actor", actor.ID),
	)
	return nil
}

// List returns matching entries, newest first.
func (r *Recorder) List(ctx context.Context, filter models.AuditFilter) ([]models.AuditEntry, error) {
	entries, err := r.log.ListAudit(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list audit log: %w", err)
	}
	if entries == nil {
		entries = []models.AuditEntry{}
	}
	return entries, nil
}
