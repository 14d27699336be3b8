package ration

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mamadbah2/livestockcare/internal/domain/models"
)

func feed(id string, category models.FeedCategory, dm, cp, tdn, price float64) models.FeedItem {
	return models.FeedItem{
		ID: id,
		FeedInput: models.FeedInput{
			Name:              id,
			Category:          category,
			DMPercentage:      dm,
			CPPercentage:      cp,
			TDNPercentage:     ptr(tdn),
			DefaultPricePerKg: price,
			IsActive:          boolPtr(true),
		},
	}
}

func allocation(t *testing.T, r models.RationResult, id string) models.FeedAllocation {
	t.Helper()
	for _, a := range r.SuggestedRation {
		if a.FeedID == id {
			return a
		}
	}
	t.Fatalf("feed %s not allocated", id)
	return models.FeedAllocation{}
}

func TestCalculateDefaultRule(t *testing.T) {
	feeds := []models.FeedItem{
		feed("napier", models.FeedGreenNonLegume, 20, 8, 55, 2),
		feed("concentrate", models.FeedConcentrates, 90, 20, 70, 20),
	}
	req := models.RationRequest{Species: models.SpeciesCattle, BodyWeightKg: 400}

	r := Calculate(nil, feeds, req)

	assert.InDelta(t, 12.0, r.DMRequiredKg, 1e-9)
	assert.InDelta(t, 1440.0, r.CPRequiredG, 1e-9)
	assert.InDelta(t, 7.2, r.TDNRequiredKg, 1e-9)

	napier := allocation(t, r, "napier")
	assert.InDelta(t, 36.0, napier.QuantityKg, 1e-9)
	assert.InDelta(t, 7.2, napier.DMKg, 1e-9)
	assert.InDelta(t, 576.0, napier.CPg, 1e-9)
	assert.InDelta(t, 72.0, napier.Cost, 1e-9)

	conc := allocation(t, r, "concentrate")
	assert.InDelta(t, 5.33, conc.QuantityKg, 1e-9)
	assert.InDelta(t, 4.8, conc.DMKg, 1e-9)
	assert.InDelta(t, 106.67, conc.Cost, 1e-9)

	assert.InDelta(t, 1536.0, r.TotalCPProvidedG, 1e-9)
	assert.InDelta(t, 7.32, r.TotalTDNProvidedKg, 1e-9)
	assert.InDelta(t, 178.67, r.DailyFeedCost, 1e-9)
	assert.Equal(t, models.NutrientAdequate, r.ProteinStatus)
	assert.Equal(t, models.NutrientAdequate, r.EnergyStatus)
	assert.Empty(t, r.Advice)
	assert.Nil(t, r.CostPerLitreMilk)
}

func TestCalculateMilkAllowance(t *testing.T) {
	feeds := []models.FeedItem{feed("straw", models.FeedDryFodder, 90, 3, 42, 4)}
	req := models.RationRequest{Species: models.SpeciesCattle, BodyWeightKg: 400, MilkYieldLiters: 10}

	r := Calculate(nil, feeds, req)

	assert.InDelta(t, 16.0, r.DMRequiredKg, 1e-9)
	require.NotNil(t, r.CostPerLitreMilk)
	assert.InDelta(t, r.DailyFeedCost/10, *r.CostPerLitreMilk, 0.01)

	rule := DefaultRule()
	rule.MilkAllowanceDMPerLitre = nil
	r = Calculate(&rule, feeds, req)
	assert.InDelta(t, 12.0, r.DMRequiredKg, 1e-9)
}

func TestCalculateCapsEachConcentrate(t *testing.T) {
	capped := feed("cake", models.FeedOilCakes, 90, 30, 70, 30)
	capped.MaxInclusionPercentage = ptr(10)
	feeds := []models.FeedItem{
		feed("napier", models.FeedGreenNonLegume, 20, 8, 55, 2),
		capped,
		feed("bran", models.FeedBrans, 90, 14, 65, 15),
	}

	r := Calculate(nil, feeds, models.RationRequest{Species: models.SpeciesCattle, BodyWeightKg: 400})

	// 4.8 kg concentrate DM split in two, the cake limited to 10 % of 12 kg.
	assert.InDelta(t, 1.2, allocation(t, r, "cake").DMKg, 1e-9)
	assert.InDelta(t, 2.4, allocation(t, r, "bran").DMKg, 1e-9)
}

func TestCalculateMinerals(t *testing.T) {
	salt := feed("salt", models.FeedMinerals, 100, 0, 0, 15)
	salt.Name = "Common Salt"
	mix := feed("mix", models.FeedMinerals, 100, 0, 0, 80)
	mix.Name = "Mineral Mixture"

	r := Calculate(nil, []models.FeedItem{salt, mix}, models.RationRequest{Species: models.SpeciesGoat, BodyWeightKg: 30})

	assert.InDelta(t, 0.05, allocation(t, r, "salt").QuantityKg, 1e-9)
	assert.InDelta(t, 0.03, allocation(t, r, "mix").QuantityKg, 1e-9)
	assert.InDelta(t, 0.75+2.4, r.DailyFeedCost, 1e-9)
	assert.Zero(t, r.TotalDMProvidedKg)
}

func TestCalculateSkipsFeedsWithoutDryMatter(t *testing.T) {
	feeds := []models.FeedItem{
		feed("broken", models.FeedGreenLegume, 0, 18, 58, 4),
		feed("napier", models.FeedGreenNonLegume, 20, 8, 55, 2),
	}

	r := Calculate(nil, feeds, models.RationRequest{Species: models.SpeciesCattle, BodyWeightKg: 400})

	require.Len(t, r.SuggestedRation, 1)
	assert.Equal(t, "napier", r.SuggestedRation[0].FeedID)
	assert.InDelta(t, 7.2, r.SuggestedRation[0].DMKg, 1e-9)
	assert.Contains(t, r.Warnings, "broken has no dry matter value and was skipped")
}

func TestCalculateStatuses(t *testing.T) {
	tests := []struct {
		name    string
		feeds   []models.FeedItem
		protein models.NutrientStatus
		energy  models.NutrientStatus
		advice  []string
	}{
		{
			name:    "deficient",
			feeds:   []models.FeedItem{feed("straw", models.FeedDryFodder, 20, 4, 40, 1)},
			protein: models.NutrientDeficient,
			energy:  models.NutrientDeficient,
			advice:  []string{AdviceProteinDeficient, AdviceEnergyDeficient},
		},
		{
			name: "excess",
			feeds: []models.FeedItem{
				feed("lush", models.FeedGreenLegume, 20, 30, 100, 1),
				feed("rich", models.FeedConcentrates, 90, 40, 100, 1),
			},
			protein: models.NutrientExcess,
			energy:  models.NutrientExcess,
			advice:  []string{AdviceProteinExcess, AdviceEnergyExcess},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := Calculate(nil, tt.feeds, models.RationRequest{Species: models.SpeciesCattle, BodyWeightKg: 400})
			assert.Equal(t, tt.protein, r.ProteinStatus)
			assert.Equal(t, tt.energy, r.EnergyStatus)
			assert.Equal(t, tt.advice, r.Advice)
		})
	}
}

func TestCalculateWarnings(t *testing.T) {
	cake := feed("cake", models.FeedOilCakes, 92, 25, 72, 30)
	cake.Name = "Cotton Seed Cake"
	cake.Warnings = []string{"Contains gossypol - limit for young animals"}
	cake.ContraindicatedSpecies = []models.Species{models.SpeciesPig}

	r := Calculate(nil, []models.FeedItem{cake}, models.RationRequest{Species: models.SpeciesPig, BodyWeightKg: 80})

	assert.Equal(t, []string{
		"Contains gossypol - limit for young animals",
		"Cotton Seed Cake is contraindicated for pig",
	}, r.Warnings)
}

func TestCalculateUsesCustomPrices(t *testing.T) {
	feeds := []models.FeedItem{feed("napier", models.FeedGreenNonLegume, 20, 8, 55, 2)}
	req := models.RationRequest{
		Species:      models.SpeciesCattle,
		BodyWeightKg: 400,
		FeedPrices:   map[string]float64{"napier": 3},
	}

	r := Calculate(nil, feeds, req)
	assert.InDelta(t, 108.0, r.DailyFeedCost, 1e-9)
}
