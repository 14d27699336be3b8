package registers

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/mamadbah2/livestockcare/internal/domain/models"
	"github.com/mamadbah2/livestockcare/internal/repository"
	"github.com/mamadbah2/livestockcare/internal/repository/memory"
	"github.com/mamadbah2/livestockcare/internal/service/numbering"
)

var (
	vetA  = models.Principal{ID: "vet-a", Name: "Dr. Lakshmi", Role: models.RoleVeterinarian}
	vetB  = models.Principal{ID: "vet-b", Name: "Dr. Suresh", Role: models.RoleVeterinarian}
	admin = models.Principal{ID: "admin-1", Name: "Admin", Role: models.RoleAdmin}

	clock = time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)
)

func newService(t *testing.T) (*Service, *memory.Store) {
	t.Helper()
	store := memory.New()
	gen := numbering.NewGenerator(store).WithClock(func() time.Time { return clock })
	svc := NewService(store, gen, nil)
	svc.now = func() time.Time { return clock }
	return svc, store
}

func opdCase(farmer string, result models.CaseResult) models.ClinicalCase {
	return models.ClinicalCase{
		CaseSubject: models.CaseSubject{FarmerName: farmer, Species: models.SpeciesCattle},
		Symptoms:    "Fever, anorexia",
		Result:      result,
	}
}

func TestCreateNumbersCasesPerRegister(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	first, err := svc.OPD.Create(ctx, vetA, opdCase("Ramaiah", models.ResultOngoing))
	require.NoError(t, err)
	assert.Equal(t, "OPD-2026-00001", first.CaseNumber)
	assert.EqualValues(t, 1, first.SerialNumber)
	assert.Equal(t, "opd", first.CaseType)
	assert.Equal(t, vetA.ID, first.VetID)
	assert.Equal(t, vetA.Name, first.VetName)
	assert.Equal(t, clock, first.CaseDate)

	second, err := svc.OPD.Create(ctx, vetB, opdCase("Venkat", models.ResultOngoing))
	require.NoError(t, err)
	assert.Equal(t, "OPD-2026-00002", second.CaseNumber)

	ipd, err := svc.IPD.Create(ctx, vetA, models.ClinicalCase{BedNumber: "B2", Result: models.ResultOngoing})
	require.NoError(t, err)
	assert.Equal(t, "IPD-2026-00001", ipd.CaseNumber)
	assert.Equal(t, "ipd", ipd.CaseType)

	surg, err := svc.Surgical.Create(ctx, vetA, models.SurgicalCase{SurgeryType: "rumenotomy", Outcome: "successful"})
	require.NoError(t, err)
	assert.Equal(t, "SURG-2026-00001", surg.CaseNumber)
	assert.Empty(t, surg.CaseType)

	gyn, err := svc.Gynaecology.Create(ctx, vetA, models.GynaecologyCase{Condition: "repeat breeder"})
	require.NoError(t, err)
	assert.Equal(t, "GYN-2026-00001", gyn.CaseNumber)

	cast, err := svc.Castration.Create(ctx, vetA, models.CastrationCase{Method: "burdizzo", Outcome: "successful"})
	require.NoError(t, err)
	assert.Equal(t, "CAST-2026-00001", cast.CaseNumber)
}

func TestListScopesByVetAndSeparatesCaseTypes(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	for _, result := range []models.CaseResult{models.ResultOngoing, models.ResultRecovered} {
		_, err := svc.OPD.Create(ctx, vetA, opdCase("Ramaiah", result))
		require.NoError(t, err)
	}
	_, err := svc.OPD.Create(ctx, vetB, opdCase("Venkat", models.ResultOngoing))
	require.NoError(t, err)
	_, err = svc.IPD.Create(ctx, vetA, models.ClinicalCase{Result: models.ResultOngoing})
	require.NoError(t, err)

	mine, err := svc.OPD.List(ctx, vetA, models.CaseFilter{})
	require.NoError(t, err)
	require.Len(t, mine, 2)
	assert.EqualValues(t, 2, mine[0].SerialNumber)

	all, err := svc.OPD.List(ctx, admin, models.CaseFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 3)

	recovered, err := svc.OPD.List(ctx, admin, models.CaseFilter{Result: models.ResultRecovered})
	require.NoError(t, err)
	assert.Len(t, recovered, 1)

	later := clock.Add(time.Hour)
	none, err := svc.OPD.List(ctx, admin, models.CaseFilter{DateFrom: &later})
	require.NoError(t, err)
	assert.Empty(t, none)

	ipd, err := svc.IPD.List(ctx, admin, models.CaseFilter{})
	require.NoError(t, err)
	assert.Len(t, ipd, 1)

	_, err = svc.OPD.Get(ctx, vetB, mine[0].ID)
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestUpdateKeepsBookkeepingAndRejectsLocked(t *testing.T) {
	svc, store := newService(t)
	ctx := context.Background()

	created, err := svc.OPD.Create(ctx, vetA, opdCase("Ramaiah", models.ResultOngoing))
	require.NoError(t, err)

	change := opdCase("Ramaiah", models.ResultRecovered)
	change.Treatment = "Oxytetracycline"
	change.CaseNumber = "FORGED-1"
	updated, err := svc.OPD.Update(ctx, vetA, created.ID, change)
	require.NoError(t, err)
	assert.Equal(t, models.ResultRecovered, updated.Result)
	assert.Equal(t, "Oxytetracycline", updated.Treatment)
	assert.Equal(t, created.CaseNumber, updated.CaseNumber)
	assert.Equal(t, vetA.ID, updated.VetID)

	err = store.Update(ctx, repository.CollOPDCases, bson.M{"id": created.ID}, bson.M{"is_locked": true, "lock_reason": "under audit"})
	require.NoError(t, err)

	_, err = svc.OPD.Update(ctx, vetA, created.ID, change)
	require.ErrorIs(t, err, models.ErrLocked)
	assert.Contains(t, err.Error(), "under audit")

	_, err = svc.OPD.Update(ctx, vetA, "missing", change)
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestProfileLifecycle(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	none, err := svc.Profile(ctx, vetA.ID)
	require.NoError(t, err)
	assert.Nil(t, none)

	_, err = svc.UpdateProfile(ctx, vetA, models.VetProfileInput{RegistrationNumber: "AP-1"})
	assert.ErrorIs(t, err, models.ErrNotFound)

	profile, err := svc.CreateProfile(ctx, vetA, models.VetProfileInput{RegistrationNumber: "AP-1", Qualification: "BVSc"})
	require.NoError(t, err)
	assert.Equal(t, "VET-2026-00001", profile.VetID)
	assert.False(t, profile.IsComplete)
	assert.Equal(t, vetA.Name, profile.UserName)

	_, err = svc.CreateProfile(ctx, vetA, models.VetProfileInput{RegistrationNumber: "AP-2"})
	assert.ErrorIs(t, err, models.ErrConflict)

	_, err = svc.CreateProfile(ctx, vetB, models.VetProfileInput{RegistrationNumber: "AP-1"})
	assert.ErrorIs(t, err, models.ErrConflict)

	updated, err := svc.UpdateProfile(ctx, vetA, models.VetProfileInput{RegistrationNumber: "AP-1", Qualification: "MVSc", MobileNumber: "9876543210"})
	require.NoError(t, err)
	assert.True(t, updated.IsComplete)
	assert.Equal(t, "MVSc", updated.Qualification)
	assert.Equal(t, profile.VetID, updated.VetID)

	_, err = svc.UpdateProfile(ctx, vetA, models.VetProfileInput{RegistrationNumber: "AP-9"})
	assert.ErrorIs(t, err, models.ErrConflict)
}

func TestInstitutionsAreScopedToCreator(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	inst, err := svc.CreateInstitution(ctx, vetA, models.InstitutionInput{InstitutionName: "Veterinary Dispensary, Tenali"})
	require.NoError(t, err)
	assert.False(t, inst.IsVerified)
	assert.NotNil(t, inst.JurisdictionVillages)

	_, err = svc.CreateInstitution(ctx, vetB, models.InstitutionInput{InstitutionName: "Veterinary Hospital, Guntur"})
	require.NoError(t, err)

	mine, err := svc.Institutions(ctx, vetA)
	require.NoError(t, err)
	assert.Len(t, mine, 1)

	all, err := svc.Institutions(ctx, admin)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	_, err = svc.Institution(ctx, vetB, inst.ID)
	assert.ErrorIs(t, err, models.ErrNotFound)

	got, err := svc.Institution(ctx, admin, inst.ID)
	require.NoError(t, err)
	assert.Equal(t, inst.InstitutionName, got.InstitutionName)
}

func TestAlerts(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	due := opdCase("Ramaiah", models.ResultFollowUp)
	due.FollowUpDate = "2026-05-30"
	_, err := svc.OPD.Create(ctx, vetA, due)
	require.NoError(t, err)

	future := opdCase("Venkat", models.ResultFollowUp)
	future.FollowUpDate = "2026-06-20"
	_, err = svc.OPD.Create(ctx, vetA, future)
	require.NoError(t, err)

	zoonotic := opdCase("Subbaiah", models.ResultOngoing)
	zoonotic.TentativeDiagnosis = "suspected brucellosis"
	_, err = svc.OPD.Create(ctx, vetA, zoonotic)
	require.NoError(t, err)

	cured := opdCase("Subbaiah", models.ResultRecovered)
	cured.TentativeDiagnosis = "Anthrax"
	_, err = svc.OPD.Create(ctx, vetA, cured)
	require.NoError(t, err)

	list, err := svc.Alerts(ctx, vetA)
	require.NoError(t, err)
	require.Equal(t, 3, list.Total)

	assert.Equal(t, "followup", list.Alerts[0].Type)
	assert.Equal(t, "Case OPD-2026-00001 - Ramaiah requires follow-up", list.Alerts[0].Message)
	assert.Equal(t, "profile", list.Alerts[1].Type)
	assert.Equal(t, "zoonotic", list.Alerts[2].Type)
	assert.Equal(t, "critical", list.Alerts[2].Severity)
	assert.Equal(t, "Case OPD-2026-00003 - Suspected suspected brucellosis. Follow safety protocols.", list.Alerts[2].Message)

	_, err = svc.CreateProfile(ctx, vetA, models.VetProfileInput{RegistrationNumber: "AP-1", Qualification: "BVSc", MobileNumber: "9000000000"})
	require.NoError(t, err)
	list, err = svc.Alerts(ctx, vetA)
	require.NoError(t, err)
	assert.Equal(t, 2, list.Total)
}

func TestDashboard(t *testing.T) {
	svc, store := newService(t)
	ctx := context.Background()

	_, err := svc.OPD.Create(ctx, vetA, opdCase("Ramaiah", models.ResultOngoing))
	require.NoError(t, err)
	died, err := svc.OPD.Create(ctx, vetB, opdCase("Venkat", models.ResultOngoing))
	require.NoError(t, err)
	_, err = svc.OPD.Update(ctx, vetB, died.ID, opdCase("Venkat", models.ResultDied))
	require.NoError(t, err)

	_, err = svc.IPD.Create(ctx, vetA, models.ClinicalCase{Result: models.ResultOngoing})
	require.NoError(t, err)
	_, err = svc.IPD.Create(ctx, vetA, models.ClinicalCase{Result: models.ResultRecovered, DischargeDate: "2026-06-01"})
	require.NoError(t, err)

	pending := opdCase("Ramaiah", models.ResultFollowUp)
	pending.FollowUpDate = "2026-06-01"
	_, err = svc.OPD.Create(ctx, vetA, pending)
	require.NoError(t, err)

	require.NoError(t, store.Insert(ctx, repository.CollBreeding, models.Breeding{ID: "b1", BreedingType: "AI", Date: clock}))
	require.NoError(t, store.Insert(ctx, repository.CollBreeding, models.Breeding{ID: "b2", BreedingType: "natural", Date: clock}))
	require.NoError(t, store.Insert(ctx, repository.CollVaccinations, models.Vaccination{ID: "v1", Date: clock.Add(-48 * time.Hour)}))

	dash, err := svc.Dashboard(ctx, vetA)
	require.NoError(t, err)
	assert.EqualValues(t, 3, dash.OPDToday)
	assert.EqualValues(t, 3, dash.TotalOPD)
	assert.EqualValues(t, 1, dash.IPDActive)
	assert.EqualValues(t, 2, dash.TotalIPD)
	assert.EqualValues(t, 1, dash.MortalityToday)
	assert.EqualValues(t, 1, dash.AIToday)
	assert.EqualValues(t, 0, dash.VaccinationsToday)
	assert.EqualValues(t, 1, dash.PendingFollowUps)
	assert.False(t, dash.ProfileComplete)
	assert.Nil(t, dash.VetID)

	_, err = svc.CreateProfile(ctx, vetA, models.VetProfileInput{RegistrationNumber: "AP-1"})
	require.NoError(t, err)
	dash, err = svc.Dashboard(ctx, vetA)
	require.NoError(t, err)
	require.NotNil(t, dash.VetID)
	assert.Equal(t, "VET-2026-00001", *dash.VetID)
}
