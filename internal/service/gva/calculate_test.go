package gva

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mamadbah2/livestockcare/internal/domain/models"
)

func f(v float64) *float64 { return &v }

func TestCalculateMilkExample(t *testing.T) {
	in := models.GVAInput{
		CattleCount:        100,
		BuffaloCount:       50,
		AvgMilkYieldPerDay: 8,
		MilkPricePerLitre:  45,
	}

	r := Calculate(in, DefaultSettings())

	assert.Equal(t, 105.0, r.MilkBreedableAnimals)
	assert.Equal(t, 63.0, r.MilkInMilkAnimals)
	assert.Equal(t, 504.0, r.MilkDailyProduction)
	assert.Equal(t, 183960.0, r.MilkAnnualProduction)
	assert.Equal(t, 8278200.0, r.MilkGSDP)
	assert.Equal(t, 3311280.0, r.MilkInputCost)
	assert.Equal(t, 4966920.0, r.MilkGVA)
}

func TestCalculateZeroInputs(t *testing.T) {
	r := Calculate(models.GVAInput{}, DefaultSettings())
	assert.Equal(t, models.GVAResult{}, r)
}

func TestCalculateIsLinearInCounts(t *testing.T) {
	base := models.GVAInput{CattleCount: 40, AvgMilkYieldPerDay: 6, MilkPricePerLitre: 30}
	doubled := base
	doubled.CattleCount *= 2

	a := Calculate(base, DefaultSettings())
	b := Calculate(doubled, DefaultSettings())
	assert.Equal(t, 2*a.MilkBreedableAnimals, b.MilkBreedableAnimals)
	assert.InDelta(t, 2*a.MilkGVA, b.MilkGVA, 1e-6)
}

func TestCalculateTotalIsSumOfCategories(t *testing.T) {
	in := models.GVAInput{
		CattleCount:           37,
		BuffaloCount:          13,
		SheepCount:            91,
		GoatCount:             17,
		PoultryCount:          333,
		AvgMilkYieldPerDay:    6.3,
		MilkPricePerLitre:     41.5,
		AvgLiveWeightKg:       23.7,
		MeatPricePerKg:        610,
		EggsPerBirdPerYear:    180,
		EggPrice:              6.5,
		PoultryMeatPricePerKg: 190,
	}

	r := Calculate(in, DefaultSettings())
	sum := r.MilkGVA + r.SheepGoatGVA + r.BuffaloMeatGVA + r.PoultryMeatGVA + r.EggGVA
	assert.Equal(t, sum, r.TotalVillageGVA)
	assert.Greater(t, r.SheepGoatGVA, 0.0)
	assert.Greater(t, r.PoultryMeatGVA, 0.0)
}

func TestCalculateChains(t *testing.T) {
	in := models.GVAInput{
		SheepCount:            60,
		GoatCount:             40,
		BuffaloCount:          20,
		PoultryCount:          100,
		AvgLiveWeightKg:       20,
		MeatPricePerKg:        500,
		EggsPerBirdPerYear:    200,
		EggPrice:              5,
		PoultryMeatPricePerKg: 150,
	}

	r := Calculate(in, DefaultSettings())

	assert.Equal(t, 45.0, r.SheepGoatSlaughterCount)
	assert.Equal(t, 900.0, r.SheepGoatMeatProduction)
	assert.Equal(t, 2700.0, r.SheepGoatAnnualMeat)
	assert.Equal(t, 1350000.0, r.SheepGoatGSDP)
	assert.Equal(t, 1080000.0, r.SheepGoatGVA)

	assert.Equal(t, 5.0, r.BuffaloSlaughterCount)
	assert.Equal(t, 100.0, r.BuffaloMeatProduction)
	assert.Equal(t, 50000.0, r.BuffaloGSDP)
	assert.Equal(t, 42500.0, r.BuffaloMeatGVA)

	assert.Equal(t, 800.0, r.PoultryAnnualBirds)
	assert.Equal(t, 760.0, r.PoultrySlaughterCount)
	assert.Equal(t, 532.0, r.PoultryDressedMeat)
	assert.Equal(t, 79800.0, r.PoultryGSDP)
	assert.InDelta(t, 43890.0, r.PoultryMeatGVA, 1e-9)

	assert.Equal(t, 20000.0, r.EggAnnualProduction)
	assert.Equal(t, 100000.0, r.EggGSDP)
	assert.Equal(t, 60000.0, r.EggGVA)
}

func TestResolvePartialOverride(t *testing.T) {
	s := Resolve(&models.GVASettingsOverride{
		Milk: &models.MilkOverride{InMilkPercentage: f(50)},
		Egg:  &models.EggOverride{InputCostPercentage: f(10)},
	})

	def := DefaultSettings()
	assert.Equal(t, 50.0, s.Milk.InMilkPercentage)
	assert.Equal(t, def.Milk.BreedablePercentage, s.Milk.BreedablePercentage)
	assert.Equal(t, def.Milk.InputCostPercentage, s.Milk.InputCostPercentage)
	assert.Equal(t, 10.0, s.Egg.InputCostPercentage)
	assert.Equal(t, def.PoultryMeat, s.PoultryMeat)
	assert.Equal(t, def, Resolve(nil))
}
