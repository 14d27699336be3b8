package gva

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mamadbah2/livestockcare/internal/domain/models"
	"github.com/mamadbah2/livestockcare/internal/repository"
	"github.com/mamadbah2/livestockcare/internal/repository/memory"
	"github.com/mamadbah2/livestockcare/internal/service/audit"
)

type recordingExporter struct {
	mu   sync.Mutex
	ids  []string
	done chan struct{}
}

func (e *recordingExporter) ExportGVAReport(_ context.Context, r *models.GVAReport) error {
	e.mu.Lock()
	e.ids = append(e.ids, r.ID)
	e.mu.Unlock()
	close(e.done)
	return nil
}

var (
	admin = models.Principal{ID: "admin-1", Name: "Admin", Role: models.RoleAdmin}
	vet   = models.Principal{ID: "vet-1", Name: "Dr. Rao", Role: models.RoleVeterinarian}
)

func newService(t *testing.T, exporter Exporter) (*Service, *memory.Store) {
	t.Helper()
	store := memory.New()
	return NewService(store, audit.NewRecorder(store, nil), time.Hour, exporter, nil, nil), store
}

func TestSettingsDefaultsWhenUnset(t *testing.T) {
	svc, _ := newService(t, nil)

	s, err := svc.Settings(context.Background())
	require.NoError(t, err)
	assert.Equal(t, DefaultSettings(), s)
}

func TestUpdateSettingsInvalidatesCacheAndAudits(t *testing.T) {
	svc, store := newService(t, nil)
	ctx := context.Background()

	_, err := svc.Settings(ctx)
	require.NoError(t, err)

	_, err = svc.UpdateSettings(ctx, admin, models.GVASettingsOverride{
		Milk: &models.MilkOverride{BreedablePercentage: f(80)},
	})
	require.NoError(t, err)

	s, err := svc.Settings(ctx)
	require.NoError(t, err)
	assert.Equal(t, 80.0, s.Milk.BreedablePercentage)
	assert.Equal(t, 60.0, s.Milk.InMilkPercentage)

	entries, err := store.ListAudit(ctx, models.AuditFilter{})
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, models.ActionSettingUpdate, entries[0].ActionType)
	assert.Equal(t, "gva_settings", entries[0].TargetType)
	assert.Equal(t, "gva_parameters", entries[0].TargetID)
}

func TestCalculateSavesAndExports(t *testing.T) {
	exporter := &recordingExporter{done: make(chan struct{})}
	svc, store := newService(t, exporter)
	ctx := context.Background()

	require.NoError(t, store.Insert(ctx, repository.CollVetProfiles, models.VetProfile{
		ID:              "p1",
		UserID:          vet.ID,
		VetProfileInput: models.VetProfileInput{RegistrationNumber: "AP-1", InstitutionName: "VD Kondapur"},
	}))

	report, err := svc.Calculate(ctx, vet, models.GVAInput{CattleCount: 10, AvgMilkYieldPerDay: 5, MilkPricePerLitre: 40, VillageName: "Kondapur"})
	require.NoError(t, err)
	assert.Equal(t, "VD Kondapur", report.Institution)
	assert.Equal(t, DefaultSettings(), report.SettingsUsed)
	assert.Equal(t, report.Results.MilkGVA, report.Results.TotalVillageGVA)

	select {
	case <-exporter.done:
	case <-time.After(time.Second):
		t.Fatal("report was not exported")
	}
	exporter.mu.Lock()
	assert.Equal(t, []string{report.ID}, exporter.ids)
	exporter.mu.Unlock()

	got, err := svc.Report(ctx, report.ID)
	require.NoError(t, err)
	assert.Equal(t, "Kondapur", got.Inputs.VillageName)

	_, err = svc.Report(ctx, "missing")
	assert.ErrorIs(t, err, models.ErrNotFound)
}

// slowExporter holds every export until release is closed.
type slowExporter struct {
	release  chan struct{}
	exported atomic.Int32
}

func (e *slowExporter) ExportGVAReport(ctx context.Context, _ *models.GVAReport) error {
	select {
	case <-e.release:
	case <-ctx.Done():
		return ctx.Err()
	}
	e.exported.Add(1)
	return nil
}

func TestWaitDrainsPendingExports(t *testing.T) {
	exporter := &slowExporter{release: make(chan struct{})}
	svc, _ := newService(t, exporter)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		_, err := svc.Calculate(ctx, vet, models.GVAInput{CattleCount: 4, AvgMilkYieldPerDay: 6, MilkPricePerLitre: 45})
		require.NoError(t, err)
	}

	waited := make(chan struct{})
	go func() {
		svc.Wait()
		close(waited)
	}()

	select {
	case <-waited:
		t.Fatal("Wait returned while exports were still running")
	case <-time.After(50 * time.Millisecond):
	}

	close(exporter.release)
	select {
	case <-waited:
	case <-time.After(time.Second):
		t.Fatal("Wait did not return after exports finished")
	}
	assert.Equal(t, int32(3), exporter.exported.Load())
}

func TestReportsScopedForVets(t *testing.T) {
	svc, _ := newService(t, nil)
	ctx := context.Background()
	other := models.Principal{ID: "vet-2", Name: "Dr. Iyer", Role: models.RoleVeterinarian}

	for _, p := range []models.Principal{vet, other, vet} {
		_, err := svc.Calculate(ctx, p, models.GVAInput{})
		require.NoError(t, err)
	}

	own, err := svc.Reports(ctx, vet)
	require.NoError(t, err)
	assert.Len(t, own, 2)

	all, err := svc.Reports(ctx, models.Principal{ID: "pv", Role: models.RoleParavet})
	require.NoError(t, err)
	assert.Len(t, all, 3)
}
