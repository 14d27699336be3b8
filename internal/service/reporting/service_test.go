package reporting

import (
	"bytes"
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mamadbah2/livestockcare/internal/domain/models"
	"github.com/mamadbah2/livestockcare/internal/repository"
	"github.com/mamadbah2/livestockcare/internal/repository/memory"
)

var fixedNow = time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)

type fakeMessenger struct {
	mu   sync.Mutex
	sent map[string]string
	fail map[string]bool
}

func (f *fakeMessenger) Send(_ context.Context, phone, body string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fail[phone] {
		return errors.New("undeliverable")
	}
	if f.sent == nil {
		f.sent = map[string]string{}
	}
	f.sent[phone] = body
	return nil
}

func newTestService(t *testing.T, messenger Messenger) (*Service, *memory.Store) {
	t.Helper()
	store := memory.New()
	svc := NewService(store, messenger, nil)
	svc.now = func() time.Time { return fixedNow }
	return svc, store
}

func insert(t *testing.T, store *memory.Store, coll string, docs ...any) {
	t.Helper()
	for _, d := range docs {
		require.NoError(t, store.Insert(context.Background(), coll, d))
	}
}

func TestFarmerStatsCountsOwnRecords(t *testing.T) {
	svc, store := newTestService(t, nil)
	insert(t, store, repository.CollAnimals,
		models.Animal{ID: "a1", FarmerID: "f1"},
		models.Animal{ID: "a2", FarmerID: "f1"},
		models.Animal{ID: "a3", FarmerID: "f2"},
	)
	insert(t, store, repository.CollVaccinations, models.Vaccination{ID: "v1", FarmerID: "f1"})
	insert(t, store, repository.CollBreeding,
		models.Breeding{ID: "b1", FarmerID: "f1"},
		models.Breeding{ID: "b2", FarmerID: "f2"},
	)

	stats, err := svc.FarmerStats(context.Background(), models.Principal{ID: "f1", Role: models.RoleFarmer})
	require.NoError(t, err)
	assert.Equal(t, models.FarmerStats{TotalAnimals: 2, TotalVaccinations: 1, TotalDeworming: 0, TotalBreeding: 1}, *stats)
}

func TestVetStatsCountsTodaysDiagnostics(t *testing.T) {
	svc, store := newTestService(t, nil)
	insert(t, store, repository.CollDiagnostics,
		models.Diagnostic{ID: "d1", Date: fixedNow.Add(-time.Hour)},
		models.Diagnostic{ID: "d2", Date: fixedNow.Add(-30 * time.Hour)},
	)
	insert(t, store, repository.CollAnimals, models.Animal{ID: "a1"})
	insert(t, store, repository.CollKnowledge, models.ReferenceRange{ID: "k1"}, models.ReferenceRange{ID: "k2"})

	stats, err := svc.VetStats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(1), stats.DiagnosticsToday)
	assert.Equal(t, int64(2), stats.TotalDiagnostics)
	assert.Equal(t, int64(1), stats.TotalAnimals)
	assert.Equal(t, int64(2), stats.KnowledgeEntries)
}

func TestDiagnosticReportRendersPDF(t *testing.T) {
	svc, store := newTestService(t, nil)
	value := 9.5
	insert(t, store, repository.CollAnimals, models.Animal{ID: "a1", TagID: "TAG-7", Species: models.SpeciesCattle, Breed: "Ongole", AgeMonths: 36})
	insert(t, store, repository.CollDiagnostics, models.Diagnostic{
		ID:       "d1",
		AnimalID: "a1",
		Observation: models.Observation{
			TestCategory: models.TestBlood,
			TestType:     "Hemoglobin",
			Species:      models.SpeciesCattle,
			Value:        &value,
			Unit:         "g/dL",
		},
		Interpretation: models.Interpretation{
			Status:             models.StatusHigh,
			NormalRange:        "8 - 15 g/dL",
			PossibleConditions: []string{"Dehydration", "Brucellosis"},
			SuggestedActions:   []string{"Rehydrate"},
			SafetyAlert: &models.SafetyAlert{
				Disease:            "Brucellosis",
				PPERequirements:    []string{"Gloves", "Mask", "Goggles", "Apron"},
				PublicHealthAdvice: "Avoid raw milk.",
			},
		},
		Date: fixedNow,
	})

	pdf, err := svc.DiagnosticReport(context.Background(), "d1")
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(pdf, []byte("%PDF")))

	_, err = svc.DiagnosticReport(context.Background(), "missing")
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestDiagnosticReportWithoutAnimal(t *testing.T) {
	svc, store := newTestService(t, nil)
	insert(t, store, repository.CollDiagnostics, models.Diagnostic{
		ID:          "d1",
		AnimalID:    "gone",
		Observation: models.Observation{TestCategory: models.TestDung, TestType: "Fecal egg count", ValueText: "positive"},
		Date:        fixedNow,
	})

	pdf, err := svc.DiagnosticReport(context.Background(), "d1")
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(pdf, []byte("%PDF")))
}

func TestGVAReportRendersPDF(t *testing.T) {
	svc, store := newTestService(t, nil)
	insert(t, store, repository.CollGVAReports, models.GVAReport{
		ID:      "g1",
		Inputs:  models.GVAInput{CattleCount: 100, VillageName: "Kondapur"},
		Results: models.GVAResult{MilkGSDP: 1533000, MilkInputCost: 919800, MilkGVA: 613200, TotalVillageGVA: 613200},
		VetName: "Dr. Rao",
	})

	pdf, err := svc.GVAReport(context.Background(), "g1")
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(pdf, []byte("%PDF")))

	_, err = svc.GVAReport(context.Background(), "missing")
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestCurrency(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0, "Rs. 0.00"},
		{999.5, "Rs. 999.50"},
		{1533000, "Rs. 1,533,000.00"},
		{-1234.567, "-Rs. 1,234.57"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, currency(tt.in))
	}
}

func followUpCase(id, phone string, result models.CaseResult, day string) models.ClinicalCase {
	return models.ClinicalCase{
		RegisterMeta: models.RegisterMeta{ID: id, CaseNumber: "OPD-2026-" + id, VetName: "Rao"},
		CaseSubject:  models.CaseSubject{FarmerName: "Ravi", FarmerPhone: phone, Species: models.SpeciesGoat},
		Result:       result,
		FollowUpDate: day,
	}
}

func TestSendFollowUpReminders(t *testing.T) {
	messenger := &fakeMessenger{fail: map[string]bool{"9000000003": true}}
	svc, store := newTestService(t, messenger)
	insert(t, store, repository.CollOPDCases,
		followUpCase("0001", "9000000001", models.ResultFollowUp, "2026-06-01"),
		followUpCase("0002", "", models.ResultFollowUp, "2026-06-01"),
		followUpCase("0003", "9000000003", models.ResultFollowUp, "2026-06-01"),
		followUpCase("0004", "9000000004", models.ResultRecovered, "2026-06-01"),
		followUpCase("0005", "9000000005", models.ResultFollowUp, "2026-06-02"),
	)

	sent, err := svc.SendFollowUpReminders(context.Background(), fixedNow)
	require.NoError(t, err)
	assert.Equal(t, 1, sent)
	require.Len(t, messenger.sent, 1)
	assert.Contains(t, messenger.sent["9000000001"], "OPD-2026-0001")
	assert.Contains(t, messenger.sent["9000000001"], "Dr. Rao")
}

func TestSendFollowUpRemindersWithoutMessenger(t *testing.T) {
	svc, store := newTestService(t, nil)
	insert(t, store, repository.CollOPDCases, followUpCase("0001", "9000000001", models.ResultFollowUp, "2026-06-01"))

	sent, err := svc.SendFollowUpReminders(context.Background(), fixedNow)
	require.NoError(t, err)
	assert.Zero(t, sent)
}
