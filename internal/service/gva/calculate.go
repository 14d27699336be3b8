// Package gva estimates village-level gross value added across five livestock
// product chains.
package gva

import "github.com/mamadbah2/livestockcare/internal/domain/models"

const daysPerYear = 365

// DefaultSettings returns the compiled-in parameter set.
func DefaultSettings() models.GVASettings {
	return models.GVASettings{
		Milk: models.MilkSettings{
			BreedablePercentage: 70,
			InMilkPercentage:    60,
			InputCostPercentage: 40,
		},
		SheepGoat: models.SheepGoatSettings{
			SlaughterRate:       45,
			SeasonsPerYear:      3,
			InputCostPercentage: 20,
		},
		BuffaloMeat: models.BuffaloMeatSettings{
			SlaughterRate:       25,
			InputCostPercentage: 15,
		},
		PoultryMeat: models.PoultryMeatSettings{
			BatchesPerYear:      8,
			SlaughterRate:       95,
			DressingPercentage:  70,
			InputCostPercentage: 45,
		},
		Egg: models.EggSettings{
			InputCostPercentage: 40,
		},
	}
}

// Resolve fills every key missing from the override with its default.
func Resolve(o *models.GVASettingsOverride) models.GVASettings {
	s := DefaultSettings()
	if o == nil {
		return s
	}
	if m := o.Milk; m != nil {
		pick(&s.Milk.BreedablePercentage, m.BreedablePercentage)
		pick(&s.Milk.InMilkPercentage, m.InMilkPercentage)
		pick(&s.Milk.InputCostPercentage, m.InputCostPercentage)
	}
	if sg := o.SheepGoat; sg != nil {
		pick(&s.SheepGoat.SlaughterRate, sg.SlaughterRate)
		pick(&s.SheepGoat.SeasonsPerYear, sg.SeasonsPerYear)
		pick(&s.SheepGoat.InputCostPercentage, sg.InputCostPercentage)
	}
	if b := o.BuffaloMeat; b != nil {
		pick(&s.BuffaloMeat.SlaughterRate, b.SlaughterRate)
		pick(&s.BuffaloMeat.InputCostPercentage, b.InputCostPercentage)
	}
	if p := o.PoultryMeat; p != nil {
		pick(&s.PoultryMeat.BatchesPerYear, p.BatchesPerYear)
		pick(&s.PoultryMeat.SlaughterRate, p.SlaughterRate)
		pick(&s.PoultryMeat.DressingPercentage, p.DressingPercentage)
		pick(&s.PoultryMeat.InputCostPercentage, p.InputCostPercentage)
	}
	if e := o.Egg; e != nil {
		pick(&s.Egg.InputCostPercentage, e.InputCostPercentage)
	}
	return s
}

func pick(dst *float64, v *float64) {
	if v != nil {
		*dst = *v
	}
}

func pct(v, percentage float64) float64 {
	return v * percentage / 100
}

// Calculate runs the five independent chains. It is pure: zero inputs give an
// all-zero result and nothing is truncated.
func Calculate(in models.GVAInput, s models.GVASettings) models.GVAResult {
	var r models.GVAResult

	dairy := float64(in.CattleCount + in.BuffaloCount)
	r.MilkBreedableAnimals = pct(dairy, s.Milk.BreedablePercentage)
	r.MilkInMilkAnimals = pct(r.MilkBreedableAnimals, s.Milk.InMilkPercentage)
	r.MilkDailyProduction = r.MilkInMilkAnimals * in.AvgMilkYieldPerDay
	r.MilkAnnualProduction = r.MilkDailyProduction * daysPerYear
	r.MilkGSDP = r.MilkAnnualProduction * in.MilkPricePerLitre
	r.MilkInputCost = pct(r.MilkGSDP, s.Milk.InputCostPercentage)
	r.MilkGVA = r.MilkGSDP - r.MilkInputCost

	smallRuminants := float64(in.SheepCount + in.GoatCount)
	r.SheepGoatSlaughterCount = pct(smallRuminants, s.SheepGoat.SlaughterRate)
	r.SheepGoatMeatProduction = r.SheepGoatSlaughterCount * in.AvgLiveWeightKg
	r.SheepGoatAnnualMeat = r.SheepGoatMeatProduction * s.SheepGoat.SeasonsPerYear
	r.SheepGoatGSDP = r.SheepGoatAnnualMeat * in.MeatPricePerKg
	r.SheepGoatInputCost = pct(r.SheepGoatGSDP, s.SheepGoat.InputCostPercentage)
	r.SheepGoatGVA = r.SheepGoatGSDP - r.SheepGoatInputCost

	r.BuffaloSlaughterCount = pct(float64(in.BuffaloCount), s.BuffaloMeat.SlaughterRate)
	r.BuffaloMeatProduction = r.BuffaloSlaughterCount * in.AvgLiveWeightKg
	r.BuffaloGSDP = r.BuffaloMeatProduction * in.MeatPricePerKg
	r.BuffaloInputCost = pct(r.BuffaloGSDP, s.BuffaloMeat.InputCostPercentage)
	r.BuffaloMeatGVA = r.BuffaloGSDP - r.BuffaloInputCost

	r.PoultryAnnualBirds = float64(in.PoultryCount) * s.PoultryMeat.BatchesPerYear
	r.PoultrySlaughterCount = pct(r.PoultryAnnualBirds, s.PoultryMeat.SlaughterRate)
	r.PoultryDressedMeat = pct(r.PoultrySlaughterCount, s.PoultryMeat.DressingPercentage)
	r.PoultryGSDP = r.PoultryDressedMeat * in.PoultryMeatPricePerKg
	r.PoultryInputCost = pct(r.PoultryGSDP, s.PoultryMeat.InputCostPercentage)
	r.PoultryMeatGVA = r.PoultryGSDP - r.PoultryInputCost

	r.EggAnnualProduction = float64(in.PoultryCount) * float64(in.EggsPerBirdPerYear)
	r.EggGSDP = r.EggAnnualProduction * in.EggPrice
	r.EggInputCost = pct(r.EggGSDP, s.Egg.InputCostPercentage)
	r.EggGVA = r.EggGSDP - r.EggInputCost

	r.TotalVillageGVA = r.MilkGVA + r.SheepGoatGVA + r.BuffaloMeatGVA + r.PoultryMeatGVA + r.EggGVA
	return r
}
