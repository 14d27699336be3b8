package registers

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"golang.org/x/sync/errgroup"

	"github.com/mamadbah2/livestockcare/internal/domain/models"
	"github.com/mamadbah2/livestockcare/internal/repository"
	"github.com/mamadbah2/livestockcare/internal/service/interpretation"
)

const (
	alertLimit = 10
	dayLayout  = "2006-01-02"
)

func startOfDay(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// DueFollowUps returns clinical cases awaiting follow-up on or before day.
func (s *Service) DueFollowUps(ctx context.Context, day time.Time, limit int64) ([]models.ClinicalCase, error) {
	query := bson.M{
		"result":         models.ResultFollowUp,
		"follow_up_date": bson.M{"$lte": day.UTC().Format(dayLayout)},
	}
	out := []models.ClinicalCase{}
	opts := repository.FindOptions{Sort: bson.D{{Key: "follow_up_date", Value: 1}}, Limit: limit}
	if err := s.store.Find(ctx, repository.CollOPDCases, query, opts, &out); err != nil {
		return nil, fmt.Errorf("find due follow-ups: %w", err)
	}
	return out, nil
}

// ZoonoticCases returns unresolved clinical cases whose tentative diagnosis
// names a high-risk disease.
func (s *Service) ZoonoticCases(ctx context.Context, limit int64) ([]models.ClinicalCase, error) {
	query := bson.M{
		"tentative_diagnosis": bson.M{"$regex": interpretation.ZoonoticPattern(), "$options": "i"},
		"result":              bson.M{"$ne": models.ResultRecovered},
	}
	out := []models.ClinicalCase{}
	opts := repository.FindOptions{Sort: bson.D{{Key: "case_date", Value: -1}}, Limit: limit}
	if err := s.store.Find(ctx, repository.CollOPDCases, query, opts, &out); err != nil {
		return nil, fmt.Errorf("find zoonotic cases: %w", err)
	}
	return out, nil
}

// Alerts collects the vet's follow-up, profile and zoonotic notices.
func (s *Service) Alerts(ctx context.Context, actor models.Principal) (*models.AlertList, error) {
	now := s.now().UTC()
	alerts := []models.Alert{}

	due, err := s.DueFollowUps(ctx, now, alertLimit)
	if err != nil {
		return nil, err
	}
	for _, c := range due {
		a := models.Alert{
			Type:     "followup",
			Severity: "warning",
			Title:    "Follow-up Due",
			Message:  fmt.Sprintf("Case %s - %s requires follow-up", c.CaseNumber, c.FarmerName),
			TargetID: c.ID,
		}
		if d, err := time.Parse(dayLayout, c.FollowUpDate); err == nil {
			a.Date = &d
		}
		alerts = append(alerts, a)
	}

	profile, err := s.Profile(ctx, actor.ID)
	if err != nil {
		return nil, err
	}
	if profile == nil || !profile.IsComplete {
		alerts = append(alerts, models.Alert{
			Type:     "profile",
			Severity: "info",
			Title:    "Complete Your Profile",
			Message:  "Please complete your veterinarian profile to enable certificates",
			Date:     &now,
		})
	}

	risky, err := s.ZoonoticCases(ctx, alertLimit)
	if err != nil {
		return nil, err
	}
	for _, c := range risky {
		caseDate := c.CaseDate
		alerts = append(alerts, models.Alert{
			Type:     "zoonotic",
			Severity: "critical",
			Title:    "Zoonotic Disease Alert",
			Message:  fmt.Sprintf("Case %s - Suspected %s. Follow safety protocols.", c.CaseNumber, c.TentativeDiagnosis),
			TargetID: c.ID,
			Date:     &caseDate,
		})
	}

	return &models.AlertList{Alerts: alerts, Total: len(alerts)}, nil
}

// Dashboard computes the detailed veterinarian dashboard. Counts cover the
// whole clinic, the profile fields are the caller's.
func (s *Service) Dashboard(ctx context.Context, actor models.Principal) (*models.VetDashboard, error) {
	now := s.now().UTC()
	today := startOfDay(now)
	out := &models.VetDashboard{}

	counts := []struct {
		dst        *int64
		collection string
		filter     bson.M
	}{
		{&out.OPDToday, repository.CollOPDCases, bson.M{"case_type": "opd", "case_date": bson.M{"$gte": today}}},
		{&out.IPDActive, repository.CollOPDCases, bson.M{"case_type": "ipd", "discharge_date": nil}},
		{&out.VaccinationsToday, repository.CollVaccinations, bson.M{"date": bson.M{"$gte": today}}},
		{&out.AIToday, repository.CollBreeding, bson.M{"breeding_type": bson.M{"$in": bson.A{"AI", "ai"}}, "date": bson.M{"$gte": today}}},
		{&out.MortalityToday, repository.CollOPDCases, bson.M{"result": models.ResultDied, "updated_at": bson.M{"$gte": today}}},
		{&out.TotalOPD, repository.CollOPDCases, bson.M{"case_type": "opd"}},
		{&out.TotalIPD, repository.CollOPDCases, bson.M{"case_type": "ipd"}},
		{&out.TotalAnimals, repository.CollAnimals, bson.M{}},
		{&out.KnowledgeEntries, repository.CollKnowledge, bson.M{}},
		{&out.PendingFollowUps, repository.CollOPDCases, bson.M{"result": models.ResultFollowUp, "follow_up_date": bson.M{"$lte": now.Format(dayLayout)}}},
	}

	g, gctx := errgroup.WithContext(ctx)
	for _, c := range counts {
		g.Go(func() error {
			n, err := s.store.Count(gctx, c.collection, c.filter)
			if err != nil {
				return fmt.Errorf("count %s: %w", c.collection, err)
			}
			*c.dst = n
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	profile, err := s.Profile(ctx, actor.ID)
	if err != nil {
		return nil, err
	}
	if profile != nil {
		out.ProfileComplete = profile.IsComplete
		vetID := profile.VetID
		out.VetID = &vetID
	}
	return out, nil
}
