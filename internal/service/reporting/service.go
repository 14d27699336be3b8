// Package reporting builds dashboard summaries, PDF reports and the daily
// follow-up reminders.
package reporting

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/mamadbah2/livestockcare/internal/domain/models"
	"github.com/mamadbah2/livestockcare/internal/repository"
)

const (
	dateLayout    = "2006-01-02"
	reminderLimit = 500
)

// Messenger delivers a text message to a phone number.
type Messenger interface {
	Send(ctx context.Context, phone, body string) error
}

// Service exposes dashboards, PDFs and reminder delivery.
type Service struct {
	store     repository.Records
	messenger Messenger
	logger    *zap.Logger
	now       func() time.Time
}

// NewService wires a reporting service. messenger may be nil when outbound
// messaging is disabled.
func NewService(store repository.Records, messenger Messenger, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{store: store, messenger: messenger, logger: logger, now: time.Now}
}

type counted struct {
	collection string
	filter     bson.M
	dst        *int64
}

func (s *Service) countAll(ctx context.Context, counts []counted) error {
	g, ctx := errgroup.WithContext(ctx)
	for _, c := range counts {
		g.Go(func() error {
			n, err := s.store.Count(ctx, c.collection, c.filter)
			if err != nil {
				return fmt.Errorf("count %s: %w", c.collection, err)
			}
			*c.dst = n
			return nil
		})
	}
	return g.Wait()
}

// FarmerStats counts the caller's animals and event records.
func (s *Service) FarmerStats(ctx context.Context, actor models.Principal) (*models.FarmerStats, error) {
	var stats models.FarmerStats
	own := func() bson.M { return bson.M{"farmer_id": actor.ID} }
	err := s.countAll(ctx, []counted{
		{repository.CollAnimals, own(), &stats.TotalAnimals},
		{repository.CollVaccinations, own(), &stats.TotalVaccinations},
		{repository.CollDeworming, own(), &stats.TotalDeworming},
		{repository.CollBreeding, own(), &stats.TotalBreeding},
	})
	if err != nil {
		return nil, err
	}
	return &stats, nil
}

// VetStats counts clinic-wide diagnostics, animals and knowledge entries.
func (s *Service) VetStats(ctx context.Context) (*models.VetStats, error) {
	now := s.now().UTC()
	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	var stats models.VetStats
	err := s.countAll(ctx, []counted{
		{repository.CollDiagnostics, bson.M{"date": bson.M{"$gte": midnight}}, &stats.DiagnosticsToday},
		{repository.CollDiagnostics, bson.M{}, &stats.TotalDiagnostics},
		{repository.CollAnimals, bson.M{}, &stats.TotalAnimals},
		{repository.CollKnowledge, bson.M{}, &stats.KnowledgeEntries},
	})
	if err != nil {
		return nil, err
	}
	return &stats, nil
}

// DiagnosticReport renders the PDF for a diagnostic. The animal block is
// omitted when the animal no longer exists.
func (s *Service) DiagnosticReport(ctx context.Context, id string) ([]byte, error) {
	var diag models.Diagnostic
	if err := s.store.FindOne(ctx, repository.CollDiagnostics, bson.M{"id": id}, &diag); err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil, models.NewError(models.ErrNotFound, "Diagnostic not found")
		}
		return nil, fmt.Errorf("load diagnostic: %w", err)
	}

	var animal *models.Animal
	var a models.Animal
	err := s.store.FindOne(ctx, repository.CollAnimals, bson.M{"id": diag.AnimalID}, &a)
	switch {
	case err == nil:
		animal = &a
	case !errors.Is(err, models.ErrNotFound):
		return nil, fmt.Errorf("load animal: %w", err)
	}

	return DiagnosticPDF(diag, animal)
}

// GVAReport renders the PDF for a saved GVA calculation.
func (s *Service) GVAReport(ctx context.Context, id string) ([]byte, error) {
	var report models.GVAReport
	if err := s.store.FindOne(ctx, repository.CollGVAReports, bson.M{"id": id}, &report); err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil, models.NewError(models.ErrNotFound, "Report not found")
		}
		return nil, fmt.Errorf("load gva report: %w", err)
	}
	return GVAPDF(report)
}

// SendFollowUpReminders messages the owner of every clinical case whose
// follow-up falls on day. It returns the number of reminders delivered.
// Individual delivery failures are logged and skipped.
func (s *Service) SendFollowUpReminders(ctx context.Context, day time.Time) (int, error) {
	if s.messenger == nil {
		return 0, nil
	}

	query := bson.M{
		"follow_up_date": day.Format(dateLayout),
		"result":         models.ResultFollowUp,
		"farmer_phone":   bson.M{"$exists": true, "$ne": ""},
	}
	cases := []models.ClinicalCase{}
	opts := repository.FindOptions{Sort: bson.D{{Key: "case_number", Value: 1}}, Limit: reminderLimit}
	if err := s.store.Find(ctx, repository.CollOPDCases, query, opts, &cases); err != nil {
		return 0, fmt.Errorf("load follow-ups: %w", err)
	}

	sent := 0
	for _, c := range cases {
		if err := ctx.Err(); err != nil {
			return sent, err
		}
		if err := s.messenger.Send(ctx, c.FarmerPhone, reminderText(c)); err != nil {
			s.logger.Warn("follow-up reminder failed", zap.String("case_number", c.CaseNumber), zap.Error(err))
			continue
		}
		sent++
	}
	s.logger.Info("follow-up reminders sent", zap.String("day", day.Format(dateLayout)), zap.Int("due", len(cases)), zap.Int("sent", sent))
	return sent, nil
}

func reminderText(c models.ClinicalCase) string {
	subject := string(c.Species)
	if c.TagNumber != "" {
		subject += " (tag " + c.TagNumber + ")"
	}
	msg := fmt.Sprintf("Namaste %s, your %s has a follow-up visit due today for case %s.", c.FarmerName, subject, c.CaseNumber)
	if c.VetName != "" {
		msg += " Please visit Dr. " + c.VetName + "."
	}
	return msg
}
