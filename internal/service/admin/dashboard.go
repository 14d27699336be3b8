package admin

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

func zoonoticQuery() bson.M {
	return bson.M{
		"tentative_diagnosis": bson.M{"$regex": interpretation.ZoonoticPattern(), "$options": "i"},
		"result":              bson.M{"$ne": models.ResultRecovered},
	}
}

// DashboardStats computes the admin overview.
func (s *Service) DashboardStats(ctx context.Context) (*models.AdminDashboard, error) {
	now := s.now().UTC()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	out := &models.AdminDashboard{}

	counts := []struct {
		dst        *int64
		collection string
		filter     bson.M
	}{
		{&out.Users.TotalFarmers, repository.CollUsers, bson.M{"role": models.RoleFarmer}},
		{&out.Users.TotalParavets, repository.CollUsers, bson.M{"role": models.RoleParavet}},
		{&out.Users.TotalVets, repository.CollUsers, bson.M{"role": models.RoleVeterinarian}},
		{&out.Users.PendingApprovals, repository.CollUsers, bson.M{"is_active": false}},
		{&out.Animals.Total, repository.CollAnimals, bson.M{}},
		{&out.Institutions.Active, repository.CollInstitutions, bson.M{"is_verified": true}},
		{&out.Institutions.PendingVerification, repository.CollInstitutions, bson.M{"is_verified": false}},
		{&out.KnowledgeCenter.TotalEntries, repository.CollKnowledge, bson.M{}},
		{&out.KnowledgeCenter.PendingDrafts, repository.CollKnowledge, bson.M{"status": models.KnowledgeDraft}},
		{&out.Safety.ActiveRules, repository.CollSafetyRules, bson.M{"is_active": true}},
		{&out.Safety.ZoonoticAlerts, repository.CollOPDCases, zoonoticQuery()},
		{&out.Activity.OPDCasesToday, repository.CollOPDCases, bson.M{"case_date": bson.M{"$gte": today}}},
		{&out.Activity.VaccinationsToday, repository.CollVaccinations, bson.M{"date": bson.M{"$gte": today}}},
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
	return out, nil
}

// Alerts lists what needs an admin's attention: inactive accounts,
// unverified institutions, zoonotic cases and knowledge drafts.
func (s *Service) Alerts(ctx context.Context) (*models.AlertList, error) {
	alerts := []models.Alert{}

	pending := []models.User{}
	if err := s.store.Find(ctx, repository.CollUsers, bson.M{"is_active": false}, repository.FindOptions{Limit: 10}, &pending); err != nil {
		return nil, fmt.Errorf("find pending users: %w", err)
	}
	for _, u := range pending {
		created := u.CreatedAt
		alerts = append(alerts, models.Alert{
			Type:     "user_approval",
			Severity: "info",
			Title:    "Pending User Approval",
			Message:  fmt.Sprintf("%s (%s) awaiting activation", u.Name, u.Role),
			TargetID: u.ID,
			Date:     &created,
		})
	}

	institutions := []models.Institution{}
	if err := s.store.Find(ctx, repository.CollInstitutions, bson.M{"is_verified": false}, repository.FindOptions{Limit: 10}, &institutions); err != nil {
		return nil, fmt.Errorf("find unverified institutions: %w", err)
	}
	for _, inst := range institutions {
		created := inst.CreatedAt
		alerts = append(alerts, models.Alert{
			Type:     "institution_verification",
			Severity: "info",
			Title:    "Institution Verification Pending",
			Message:  fmt.Sprintf("%s awaiting verification", inst.InstitutionName),
			TargetID: inst.ID,
			Date:     &created,
		})
	}

	cases := []models.ClinicalCase{}
	if err := s.store.Find(ctx, repository.CollOPDCases, zoonoticQuery(), repository.FindOptions{Limit: 10}, &cases); err != nil {
		return nil, fmt.Errorf("find zoonotic cases: %w", err)
	}
	for _, c := range cases {
		caseDate := c.CaseDate
		alerts = append(alerts, models.Alert{
			Type:     "zoonotic",
			Severity: "critical",
			Title:    "Zoonotic Disease Outbreak Alert",
			Message:  fmt.Sprintf("Case %s - %s in %s", c.CaseNumber, c.TentativeDiagnosis, c.FarmerVillage),
			TargetID: c.ID,
			Date:     &caseDate,
		})
	}

	drafts := []models.ReferenceRange{}
	if err := s.store.Find(ctx, repository.CollKnowledge, bson.M{"status": models.KnowledgeDraft}, repository.FindOptions{Limit: 5}, &drafts); err != nil {
		return nil, fmt.Errorf("find knowledge drafts: %w", err)
	}
	for _, d := range drafts {
		updated := d.UpdatedAt
		alerts = append(alerts, models.Alert{
			Type:     "knowledge_review",
			Severity: "warning",
			Title:    "Knowledge Entry Pending Review",
			Message:  fmt.Sprintf("%s for %s needs review", d.TestType, d.Species),
			TargetID: d.ID,
			Date:     &updated,
		})
	}

	return &models.AlertList{Alerts: alerts, Total: len(alerts)}, nil
}

// UserActivityReport groups accounts by role with active counts.
func (s *Service) UserActivityReport(ctx context.Context) (*models.Report[models.RoleActivity], error) {
	rows, err := s.store.UsersByRole(ctx)
	if err != nil {
		return nil, fmt.Errorf("user activity report: %w", err)
	}
	if rows == nil {
		rows = []models.RoleActivity{}
	}
	return &models.Report[models.RoleActivity]{ReportType: "user_activity", GeneratedAt: s.now().UTC(), Data: rows}, nil
}

// DiseaseSurveillanceReport groups clinical cases by tentative diagnosis.
func (s *Service) DiseaseSurveillanceReport(ctx context.Context, from, to *time.Time) (*models.Report[models.DiseaseCount], error) {
	rows, err := s.store.CasesByDiagnosis(ctx, from, to)
	if err != nil {
		return nil, fmt.Errorf("disease surveillance report: %w", err)
	}
	if rows == nil {
		rows = []models.DiseaseCount{}
	}
	return &models.Report[models.DiseaseCount]{ReportType: "disease_surveillance", GeneratedAt: s.now().UTC(), Data: rows}, nil
}
