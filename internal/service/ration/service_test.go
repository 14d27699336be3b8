package ration

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/mamadbah2/livestockcare/internal/domain/models"
	"github.com/mamadbah2/livestockcare/internal/repository"
	"github.com/mamadbah2/livestockcare/internal/repository/memory"
	"github.com/mamadbah2/livestockcare/internal/service/audit"
)

var (
	admin  = models.Principal{ID: "admin-1", Name: "Admin", Role: models.RoleAdmin}
	farmer = models.Principal{ID: "farmer-1", Name: "Ravi", Role: models.RoleFarmer}
)

type countingMetrics struct{ calls int }

func (m *countingMetrics) RationCalculated(models.Species) { m.calls++ }

func newService(t *testing.T) (*Service, *memory.Store, *countingMetrics) {
	t.Helper()
	store := memory.New()
	metrics := &countingMetrics{}
	return NewService(store, audit.NewRecorder(store, nil), metrics, nil), store, metrics
}

func feedIDs(t *testing.T, svc *Service, names ...string) []string {
	t.Helper()
	items, err := svc.FeedItems(context.Background(), models.FeedFilter{})
	require.NoError(t, err)
	byName := make(map[string]string, len(items))
	for _, it := range items {
		byName[it.Name] = it.ID
	}
	ids := make([]string, 0, len(names))
	for _, n := range names {
		id, ok := byName[n]
		require.True(t, ok, "feed %q not seeded", n)
		ids = append(ids, id)
	}
	return ids
}

func TestSeedCatalogIsIdempotent(t *testing.T) {
	svc, store, _ := newService(t)
	ctx := context.Background()

	res, err := svc.SeedCatalog(ctx, admin)
	require.NoError(t, err)
	assert.Equal(t, len(seedFeeds), res.FeedItems)
	assert.Equal(t, 28, store.Len(repository.CollFeedItems))
	assert.Equal(t, len(seedRules), store.Len(repository.CollNutritionRules))
	assert.Equal(t, 1, store.Len(repository.CollNutritionVersions))

	again, err := svc.SeedCatalog(ctx, admin)
	require.NoError(t, err)
	assert.Equal(t, "Data already seeded", again.Message)
	assert.Equal(t, 28, store.Len(repository.CollFeedItems))
	assert.Equal(t, 1, store.AuditLen())
}

func TestServiceCalculateWithSeededRule(t *testing.T) {
	svc, _, metrics := newService(t)
	ctx := context.Background()
	_, err := svc.SeedCatalog(ctx, admin)
	require.NoError(t, err)

	req := models.RationRequest{
		Species:             models.SpeciesCattle,
		BodyWeightKg:        400,
		PhysiologicalStatus: "lactating_low",
		MilkYieldLiters:     10,
		SelectedFeeds:       feedIDs(t, svc, "Wheat Straw", "Maize Grain", "Common Salt"),
	}
	calc, err := svc.Calculate(ctx, farmer, req)
	require.NoError(t, err)

	assert.InDelta(t, 16.3, calc.DMRequiredKg, 1e-9)
	assert.Len(t, calc.SuggestedRation, 3)
	assert.NotEqual(t, defaultVersionID, calc.NutritionVersionID)
	assert.Equal(t, farmer.ID, calc.CalculatedBy)
	assert.Equal(t, 1, metrics.calls)
}

func TestServiceCalculateFallsBackToDefaults(t *testing.T) {
	svc, _, _ := newService(t)
	ctx := context.Background()

	item, err := svc.CreateFeedItem(ctx, admin, models.FeedInput{
		Name: "Napier Grass", Category: models.FeedGreenNonLegume, DMPercentage: 20, CPPercentage: 8, DefaultPricePerKg: 2,
	})
	require.NoError(t, err)

	calc, err := svc.Calculate(ctx, farmer, models.RationRequest{
		Species:             models.SpeciesGoat,
		BodyWeightKg:        30,
		PhysiologicalStatus: "unknown",
		SelectedFeeds:       []string{item.ID},
	})
	require.NoError(t, err)
	assert.Equal(t, defaultVersionID, calc.NutritionVersionID)
	assert.InDelta(t, 0.9, calc.DMRequiredKg, 1e-9)
}

func TestServiceCalculateRejectsUnknownFeeds(t *testing.T) {
	svc, _, _ := newService(t)

	_, err := svc.Calculate(context.Background(), farmer, models.RationRequest{
		Species:       models.SpeciesCattle,
		BodyWeightKg:  400,
		SelectedFeeds: []string{"missing"},
	})
	assert.ErrorIs(t, err, models.ErrValidation)
}

func TestCalculationsScopedToCaller(t *testing.T) {
	svc, _, _ := newService(t)
	ctx := context.Background()
	item, err := svc.CreateFeedItem(ctx, admin, models.FeedInput{
		Name: "Berseem", Category: models.FeedGreenLegume, DMPercentage: 15, CPPercentage: 17, DefaultPricePerKg: 3,
	})
	require.NoError(t, err)

	req := models.RationRequest{Species: models.SpeciesCattle, BodyWeightKg: 300, SelectedFeeds: []string{item.ID}}
	for _, p := range []models.Principal{farmer, admin, farmer} {
		_, err := svc.Calculate(ctx, p, req)
		require.NoError(t, err)
	}

	own, err := svc.Calculations(ctx, farmer, "")
	require.NoError(t, err)
	assert.Len(t, own, 2)

	all, err := svc.Calculations(ctx, admin, models.SpeciesCattle)
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestUpdateFeedItemArchivesAndBumpsVersion(t *testing.T) {
	svc, store, _ := newService(t)
	ctx := context.Background()

	item, err := svc.CreateFeedItem(ctx, admin, models.FeedInput{
		Name: "Wheat Bran", Category: models.FeedBrans, DMPercentage: 89, CPPercentage: 14, DefaultPricePerKg: 18,
	})
	require.NoError(t, err)
	assert.Equal(t, 1, item.Version)
	require.NotNil(t, item.IsActive)
	assert.True(t, *item.IsActive)

	in := item.FeedInput
	in.DefaultPricePerKg = 20
	updated, err := svc.UpdateFeedItem(ctx, admin, item.ID, in)
	require.NoError(t, err)
	assert.Equal(t, 2, updated.Version)

	items, err := svc.FeedItems(ctx, models.FeedFilter{Category: models.FeedBrans})
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, 2, items[0].Version)
	assert.Equal(t, 20.0, items[0].DefaultPricePerKg)

	assert.Equal(t, 1, store.Len(repository.CollFeedItemsArchive))
	assert.Equal(t, 2, store.AuditLen())

	_, err = svc.UpdateFeedItem(ctx, admin, "missing", in)
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestNutritionRuleLifecycle(t *testing.T) {
	svc, store, _ := newService(t)
	ctx := context.Background()

	in := models.NutritionRuleInput{Species: models.SpeciesGoat, PhysiologicalStatus: "adult", DMPercentageBW: 3.5, CPRequirementPercentage: 12}
	rule, err := svc.CreateNutritionRule(ctx, admin, in)
	require.NoError(t, err)

	_, err = svc.CreateNutritionRule(ctx, admin, in)
	assert.ErrorIs(t, err, models.ErrConflict)

	in.CPRequirementPercentage = 13
	updated, err := svc.UpdateNutritionRule(ctx, admin, rule.ID, in)
	require.NoError(t, err)
	assert.Equal(t, 2, updated.Version)

	rules, err := svc.NutritionRules(ctx, models.SpeciesGoat)
	require.NoError(t, err)
	require.Len(t, rules, 1)
	assert.Equal(t, 13.0, rules[0].CPRequirementPercentage)
	assert.Equal(t, 1, store.Len(repository.CollNutritionRulesArchive))
}

func TestUpdateFeedItemReplacesOptionalFields(t *testing.T) {
	svc, store, _ := newService(t)
	ctx := context.Background()

	item, err := svc.CreateFeedItem(ctx, admin, models.FeedInput{
		Name: "Cottonseed Cake", LocalName: "Binola khal", Category: models.FeedOilCakes,
		DMPercentage: 92, CPPercentage: 24, DefaultPricePerKg: 30, MaxInclusionPercentage: ptr(15),
	})
	require.NoError(t, err)

	in := item.FeedInput
	in.MaxInclusionPercentage = nil
	in.LocalName = ""
	in.IsActive = nil
	updated, err := svc.UpdateFeedItem(ctx, admin, item.ID, in)
	require.NoError(t, err)
	assert.Nil(t, updated.MaxInclusionPercentage)
	assert.Empty(t, updated.LocalName)
	require.NotNil(t, updated.IsActive)
	assert.True(t, *updated.IsActive)

	var stored models.FeedItem
	require.NoError(t, store.FindOne(ctx, repository.CollFeedItems, bson.M{"id": item.ID}, &stored))
	assert.Nil(t, stored.MaxInclusionPercentage)
	assert.Empty(t, stored.LocalName)
	assert.Equal(t, 2, stored.Version)

	calc, err := svc.Calculate(ctx, farmer, models.RationRequest{
		Species: models.SpeciesCattle, BodyWeightKg: 350, SelectedFeeds: []string{item.ID},
	})
	require.NoError(t, err)
	assert.Len(t, calc.SuggestedRation, 1)
}

func TestUpdateFeedItemCanDeactivate(t *testing.T) {
	svc, _, _ := newService(t)
	ctx := context.Background()

	item, err := svc.CreateFeedItem(ctx, admin, models.FeedInput{
		Name: "Rice Straw", Category: models.FeedDryFodder, DMPercentage: 90, CPPercentage: 4, DefaultPricePerKg: 4,
	})
	require.NoError(t, err)

	in := item.FeedInput
	in.IsActive = boolPtr(false)
	_, err = svc.UpdateFeedItem(ctx, admin, item.ID, in)
	require.NoError(t, err)

	in.IsActive = nil
	in.DefaultPricePerKg = 5
	updated, err := svc.UpdateFeedItem(ctx, admin, item.ID, in)
	require.NoError(t, err)
	assert.False(t, updated.Active())

	_, err = svc.Calculate(ctx, farmer, models.RationRequest{
		Species: models.SpeciesCattle, BodyWeightKg: 350, SelectedFeeds: []string{item.ID},
	})
	assert.ErrorIs(t, err, models.ErrValidation)
}

func TestUpdateNutritionRuleReplacesOptionalFields(t *testing.T) {
	svc, store, _ := newService(t)
	ctx := context.Background()

	rule, err := svc.CreateNutritionRule(ctx, admin, models.NutritionRuleInput{
		Species: models.SpeciesBuffalo, PhysiologicalStatus: "dry", DMPercentageBW: 2.5, CPRequirementPercentage: 9,
		GrainMaxPercentage: ptr(20), SpecialNotes: "limit grain",
	})
	require.NoError(t, err)

	in := rule.NutritionRuleInput
	in.GrainMaxPercentage = nil
	in.SpecialNotes = ""
	in.IsActive = nil
	updated, err := svc.UpdateNutritionRule(ctx, admin, rule.ID, in)
	require.NoError(t, err)
	assert.Nil(t, updated.GrainMaxPercentage)
	assert.True(t, updated.Active())

	var stored models.NutritionRule
	require.NoError(t, store.FindOne(ctx, repository.CollNutritionRules, bson.M{"id": rule.ID}, &stored))
	assert.Nil(t, stored.GrainMaxPercentage)
	assert.Empty(t, stored.SpecialNotes)

	active, err := svc.activeRule(ctx, models.SpeciesBuffalo, "dry")
	require.NoError(t, err)
	require.NotNil(t, active)
	assert.Equal(t, 2, active.Version)
}

// racingStore lets another writer bump the version right before the
// versioned update lands.
type racingStore struct {
	*memory.Store
	raced bool
}

func (r *racingStore) Update(ctx context.Context, collection string, filter bson.M, set bson.M) error {
	if !r.raced {
		r.raced = true
		if err := r.Store.Update(ctx, collection, bson.M{"id": filter["id"]}, bson.M{"version": 99}); err != nil {
			return err
		}
	}
	return r.Store.Update(ctx, collection, filter, set)
}

func TestStaleCatalogUpdateLeavesNoArchive(t *testing.T) {
	ctx := context.Background()
	mem := memory.New()
	seeded := NewService(mem, audit.NewRecorder(mem, nil), nil, nil)

	item, err := seeded.CreateFeedItem(ctx, admin, models.FeedInput{
		Name: "Subabul", Category: models.FeedTreeFodder, DMPercentage: 30, CPPercentage: 22, DefaultPricePerKg: 2,
	})
	require.NoError(t, err)
	rule, err := seeded.CreateNutritionRule(ctx, admin, models.NutritionRuleInput{
		Species: models.SpeciesSheep, PhysiologicalStatus: "adult", DMPercentageBW: 3, CPRequirementPercentage: 10,
	})
	require.NoError(t, err)

	svc := NewService(&racingStore{Store: mem}, audit.NewRecorder(mem, nil), nil, nil)
	_, err = svc.UpdateFeedItem(ctx, admin, item.ID, item.FeedInput)
	assert.ErrorIs(t, err, models.ErrConflict)
	assert.Equal(t, 0, mem.Len(repository.CollFeedItemsArchive))

	svc = NewService(&racingStore{Store: mem}, audit.NewRecorder(mem, nil), nil, nil)
	_, err = svc.UpdateNutritionRule(ctx, admin, rule.ID, rule.NutritionRuleInput)
	assert.ErrorIs(t, err, models.ErrConflict)
	assert.Equal(t, 0, mem.Len(repository.CollNutritionRulesArchive))
	assert.Equal(t, 2, mem.AuditLen())
}
