package ration

import "github.com/mamadbah2/livestockcare/internal/domain/models"

const (
	seedVersionName        = "v1.0.0"
	seedVersionDescription = "Initial ICAR-aligned nutrition data"
)

func species(names ...string) []models.Species {
	out := make([]models.Species, len(names))
	for i, n := range names {
		out[i] = models.Species(n)
	}
	return out
}

// Standard feed composition values, per unit dry matter.
var seedFeeds = []models.FeedInput{
	{Name: "Lucerne (Alfalfa)", LocalName: "Rijka", Category: models.FeedGreenLegume, ApplicableSpecies: species("cattle", "buffalo", "sheep", "goat", "horse", "donkey", "camel"), DMPercentage: 22, CPPercentage: 18, DCPPercentage: ptr(14), TDNPercentage: ptr(58), DefaultPricePerKg: 4},
	{Name: "Berseem", LocalName: "Berseem", Category: models.FeedGreenLegume, ApplicableSpecies: species("cattle", "buffalo", "sheep", "goat", "horse", "donkey"), DMPercentage: 15, CPPercentage: 17, DCPPercentage: ptr(13), TDNPercentage: ptr(60), DefaultPricePerKg: 3},
	{Name: "Cowpea Fodder", LocalName: "Lobia Chara", Category: models.FeedGreenLegume, ApplicableSpecies: species("cattle", "buffalo", "sheep", "goat"), DMPercentage: 18, CPPercentage: 16, DCPPercentage: ptr(12), TDNPercentage: ptr(55), DefaultPricePerKg: 4},
	{Name: "Napier Grass", LocalName: "Elephant Grass", Category: models.FeedGreenNonLegume, ApplicableSpecies: species("cattle", "buffalo", "sheep", "goat", "horse", "donkey", "camel"), DMPercentage: 20, CPPercentage: 8, DCPPercentage: ptr(5), TDNPercentage: ptr(55), DefaultPricePerKg: 2},
	{Name: "Maize Fodder", LocalName: "Makka Chara", Category: models.FeedGreenNonLegume, ApplicableSpecies: species("cattle", "buffalo", "sheep", "goat", "pig"), DMPercentage: 22, CPPercentage: 9, DCPPercentage: ptr(6), TDNPercentage: ptr(62), DefaultPricePerKg: 3},
	{Name: "Sorghum Fodder", LocalName: "Jowar Chara", Category: models.FeedGreenNonLegume, ApplicableSpecies: species("cattle", "buffalo", "sheep", "goat"), DMPercentage: 25, CPPercentage: 7, DCPPercentage: ptr(4), TDNPercentage: ptr(58), DefaultPricePerKg: 2, Warnings: []string{"May contain HCN in young plants"}},
	{Name: "Bajra Fodder", LocalName: "Bajra Chara", Category: models.FeedGreenNonLegume, ApplicableSpecies: species("cattle", "buffalo", "sheep", "goat", "camel"), DMPercentage: 24, CPPercentage: 8, DCPPercentage: ptr(5), TDNPercentage: ptr(56), DefaultPricePerKg: 2},
	{Name: "Subabul Leaves", LocalName: "Subabul", Category: models.FeedTreeFodder, ApplicableSpecies: species("cattle", "buffalo", "sheep", "goat"), DMPercentage: 30, CPPercentage: 24, DCPPercentage: ptr(18), TDNPercentage: ptr(55), MaxInclusionPercentage: ptr(30), DefaultPricePerKg: 5, Warnings: []string{"Limit to 30% of diet - contains mimosine"}},
	{Name: "Neem Leaves", LocalName: "Neem Patti", Category: models.FeedTreeFodder, ApplicableSpecies: species("cattle", "buffalo", "sheep", "goat", "camel"), DMPercentage: 35, CPPercentage: 15, DCPPercentage: ptr(10), TDNPercentage: ptr(45), DefaultPricePerKg: 2},
	{Name: "Khejri Leaves", LocalName: "Khejri", Category: models.FeedTreeFodder, ApplicableSpecies: species("cattle", "buffalo", "sheep", "goat", "camel"), DMPercentage: 40, CPPercentage: 14, DCPPercentage: ptr(10), TDNPercentage: ptr(50), DefaultPricePerKg: 3},
	{Name: "Wheat Straw", LocalName: "Gehun Bhusa", Category: models.FeedDryFodder, ApplicableSpecies: species("cattle", "buffalo", "sheep", "goat", "horse", "donkey", "camel"), DMPercentage: 90, CPPercentage: 3, DCPPercentage: ptr(0), TDNPercentage: ptr(42), DefaultPricePerKg: 4},
	{Name: "Paddy Straw", LocalName: "Dhan Pual", Category: models.FeedDryFodder, ApplicableSpecies: species("cattle", "buffalo"), DMPercentage: 90, CPPercentage: 4, DCPPercentage: ptr(0), TDNPercentage: ptr(40), DefaultPricePerKg: 3},
	{Name: "Groundnut Hay", LocalName: "Moongfali Bhusa", Category: models.FeedDryFodder, ApplicableSpecies: species("cattle", "buffalo", "sheep", "goat"), DMPercentage: 88, CPPercentage: 10, DCPPercentage: ptr(6), TDNPercentage: ptr(52), DefaultPricePerKg: 8},
	{Name: "Groundnut Cake", LocalName: "Moongfali Khali", Category: models.FeedOilCakes, ApplicableSpecies: species("cattle", "buffalo", "sheep", "goat", "pig"), DMPercentage: 92, CPPercentage: 45, DCPPercentage: ptr(40), TDNPercentage: ptr(78), DefaultPricePerKg: 45},
	{Name: "Mustard Cake", LocalName: "Sarson Khali", Category: models.FeedOilCakes, ApplicableSpecies: species("cattle", "buffalo", "sheep", "goat"), DMPercentage: 90, CPPercentage: 35, DCPPercentage: ptr(30), TDNPercentage: ptr(75), DefaultPricePerKg: 35},
	{Name: "Cotton Seed Cake", LocalName: "Binola Khali", Category: models.FeedOilCakes, ApplicableSpecies: species("cattle", "buffalo"), DMPercentage: 92, CPPercentage: 25, DCPPercentage: ptr(20), TDNPercentage: ptr(72), MaxInclusionPercentage: ptr(25), DefaultPricePerKg: 30, Warnings: []string{"Contains gossypol - limit for young animals"}},
	{Name: "Soybean Meal", LocalName: "Soya Khali", Category: models.FeedOilCakes, ApplicableSpecies: species("cattle", "buffalo", "sheep", "goat", "pig", "poultry", "dog", "cat"), DMPercentage: 90, CPPercentage: 48, DCPPercentage: ptr(44), TDNPercentage: ptr(82), DefaultPricePerKg: 50},
	{Name: "Wheat Bran", LocalName: "Chokar", Category: models.FeedBrans, ApplicableSpecies: species("cattle", "buffalo", "sheep", "goat", "pig", "horse", "donkey"), DMPercentage: 88, CPPercentage: 15, DCPPercentage: ptr(11), TDNPercentage: ptr(65), DefaultPricePerKg: 18},
	{Name: "Rice Bran", LocalName: "Rice Bran", Category: models.FeedBrans, ApplicableSpecies: species("cattle", "buffalo", "sheep", "goat", "pig"), DMPercentage: 90, CPPercentage: 13, DCPPercentage: ptr(9), TDNPercentage: ptr(60), DefaultPricePerKg: 15},
	{Name: "De-oiled Rice Bran", LocalName: "DORB", Category: models.FeedBrans, ApplicableSpecies: species("cattle", "buffalo", "sheep", "goat"), DMPercentage: 92, CPPercentage: 15, DCPPercentage: ptr(10), TDNPercentage: ptr(55), DefaultPricePerKg: 12},
	{Name: "Maize Grain", LocalName: "Makka Dana", Category: models.FeedGrains, ApplicableSpecies: species("cattle", "buffalo", "sheep", "goat", "pig", "poultry", "horse", "donkey"), DMPercentage: 88, CPPercentage: 9, DCPPercentage: ptr(7), TDNPercentage: ptr(80), DefaultPricePerKg: 22},
	{Name: "Barley", LocalName: "Jau", Category: models.FeedGrains, ApplicableSpecies: species("cattle", "buffalo", "sheep", "goat", "pig", "horse", "donkey"), DMPercentage: 89, CPPercentage: 11, DCPPercentage: ptr(8), TDNPercentage: ptr(75), DefaultPricePerKg: 20},
	{Name: "Oats", LocalName: "Jai", Category: models.FeedGrains, ApplicableSpecies: species("cattle", "buffalo", "sheep", "goat", "horse", "donkey"), DMPercentage: 89, CPPercentage: 12, DCPPercentage: ptr(9), TDNPercentage: ptr(70), DefaultPricePerKg: 25},
	{Name: "Mineral Mixture", LocalName: "Mineral Mixture", Category: models.FeedMinerals, ApplicableSpecies: species("cattle", "buffalo", "sheep", "goat", "pig", "horse", "donkey", "camel"), DMPercentage: 100, CPPercentage: 0, TDNPercentage: ptr(0), CalciumPercentage: ptr(24), PhosphorusPercentage: ptr(12), DefaultPricePerKg: 80},
	{Name: "Common Salt", LocalName: "Namak", Category: models.FeedMinerals, ApplicableSpecies: species("cattle", "buffalo", "sheep", "goat", "pig", "horse", "donkey", "camel", "dog", "cat"), DMPercentage: 100, CPPercentage: 0, TDNPercentage: ptr(0), DefaultPricePerKg: 15},
	{Name: "Chicken Meal", LocalName: "Chicken Meal", Category: models.FeedConcentrates, ApplicableSpecies: species("dog", "cat"), DMPercentage: 92, CPPercentage: 65, MEMcal: ptr(3.5), DefaultPricePerKg: 80},
	{Name: "Fish Meal", LocalName: "Fish Meal", Category: models.FeedConcentrates, ApplicableSpecies: species("dog", "cat", "pig", "poultry"), DMPercentage: 92, CPPercentage: 60, MEMcal: ptr(3.2), DefaultPricePerKg: 70},
	{Name: "Rice (Cooked)", LocalName: "Chawal", Category: models.FeedGrains, ApplicableSpecies: species("dog", "cat"), DMPercentage: 35, CPPercentage: 3, MEMcal: ptr(1.3), DefaultPricePerKg: 40},
}

// Daily requirements per species and physiological status.
var seedRules = []models.NutritionRuleInput{
	{Species: "buffalo", PhysiologicalStatus: "calf", DMPercentageBW: 2.5, CPRequirementPercentage: 18, TDNRequirementPercentage: ptr(70), RoughageMinPercentage: ptr(50), ConcentrateMaxPercentage: ptr(50)},
	{Species: "buffalo", PhysiologicalStatus: "growing", DMPercentageBW: 3, CPRequirementPercentage: 14, TDNRequirementPercentage: ptr(65), RoughageMinPercentage: ptr(55), ConcentrateMaxPercentage: ptr(45)},
	{Species: "buffalo", PhysiologicalStatus: "heifer", DMPercentageBW: 2.8, CPRequirementPercentage: 12, TDNRequirementPercentage: ptr(60), RoughageMinPercentage: ptr(60), ConcentrateMaxPercentage: ptr(40)},
	{Species: "buffalo", PhysiologicalStatus: "pregnant", DMPercentageBW: 3.2, CPRequirementPercentage: 14, TDNRequirementPercentage: ptr(65), RoughageMinPercentage: ptr(55), ConcentrateMaxPercentage: ptr(45), PregnancySurgePercentage: ptr(15)},
	{Species: "buffalo", PhysiologicalStatus: "lactating_low", DMPercentageBW: 3.5, CPRequirementPercentage: 14, TDNRequirementPercentage: ptr(65), RoughageMinPercentage: ptr(55), ConcentrateMaxPercentage: ptr(45), MilkAllowanceDMPerLitre: ptr(0.4)},
	{Species: "buffalo", PhysiologicalStatus: "lactating_medium", DMPercentageBW: 4, CPRequirementPercentage: 16, TDNRequirementPercentage: ptr(68), RoughageMinPercentage: ptr(50), ConcentrateMaxPercentage: ptr(50), MilkAllowanceDMPerLitre: ptr(0.4)},
	{Species: "buffalo", PhysiologicalStatus: "lactating_high", DMPercentageBW: 4.5, CPRequirementPercentage: 18, TDNRequirementPercentage: ptr(70), RoughageMinPercentage: ptr(45), ConcentrateMaxPercentage: ptr(55), MilkAllowanceDMPerLitre: ptr(0.45)},
	{Species: "buffalo", PhysiologicalStatus: "dry", DMPercentageBW: 2.5, CPRequirementPercentage: 10, TDNRequirementPercentage: ptr(55), RoughageMinPercentage: ptr(70), ConcentrateMaxPercentage: ptr(30)},
	{Species: "cattle", PhysiologicalStatus: "calf", DMPercentageBW: 2.5, CPRequirementPercentage: 18, TDNRequirementPercentage: ptr(72), RoughageMinPercentage: ptr(45), ConcentrateMaxPercentage: ptr(55)},
	{Species: "cattle", PhysiologicalStatus: "growing", DMPercentageBW: 2.8, CPRequirementPercentage: 14, TDNRequirementPercentage: ptr(66), RoughageMinPercentage: ptr(55), ConcentrateMaxPercentage: ptr(45)},
	{Species: "cattle", PhysiologicalStatus: "lactating_low", DMPercentageBW: 3.2, CPRequirementPercentage: 14, TDNRequirementPercentage: ptr(65), RoughageMinPercentage: ptr(55), ConcentrateMaxPercentage: ptr(45), MilkAllowanceDMPerLitre: ptr(0.35)},
	{Species: "cattle", PhysiologicalStatus: "lactating_high", DMPercentageBW: 4, CPRequirementPercentage: 18, TDNRequirementPercentage: ptr(72), RoughageMinPercentage: ptr(40), ConcentrateMaxPercentage: ptr(60), MilkAllowanceDMPerLitre: ptr(0.4)},
	{Species: "sheep", PhysiologicalStatus: "maintenance", DMPercentageBW: 3.5, CPRequirementPercentage: 10, TDNRequirementPercentage: ptr(55), RoughageMinPercentage: ptr(70), ConcentrateMaxPercentage: ptr(30)},
	{Species: "sheep", PhysiologicalStatus: "pregnant", DMPercentageBW: 4, CPRequirementPercentage: 14, TDNRequirementPercentage: ptr(62), RoughageMinPercentage: ptr(60), ConcentrateMaxPercentage: ptr(40), PregnancySurgePercentage: ptr(20)},
	{Species: "sheep", PhysiologicalStatus: "lactating", DMPercentageBW: 4.5, CPRequirementPercentage: 16, TDNRequirementPercentage: ptr(65), RoughageMinPercentage: ptr(55), ConcentrateMaxPercentage: ptr(45)},
	{Species: "goat", PhysiologicalStatus: "maintenance", DMPercentageBW: 4, CPRequirementPercentage: 10, TDNRequirementPercentage: ptr(55), RoughageMinPercentage: ptr(70), ConcentrateMaxPercentage: ptr(30)},
	{Species: "goat", PhysiologicalStatus: "pregnant", DMPercentageBW: 4.5, CPRequirementPercentage: 14, TDNRequirementPercentage: ptr(62), RoughageMinPercentage: ptr(60), ConcentrateMaxPercentage: ptr(40), PregnancySurgePercentage: ptr(25)},
	{Species: "goat", PhysiologicalStatus: "lactating", DMPercentageBW: 5, CPRequirementPercentage: 16, TDNRequirementPercentage: ptr(65), RoughageMinPercentage: ptr(55), ConcentrateMaxPercentage: ptr(45)},
	{Species: "horse", PhysiologicalStatus: "maintenance", DMPercentageBW: 2, CPRequirementPercentage: 10, TDNRequirementPercentage: ptr(55), RoughageMinPercentage: ptr(70), ConcentrateMaxPercentage: ptr(30), GrainMaxPercentage: ptr(0.5), SpecialNotes: "Grain should not exceed 0.5% of BW per meal to prevent colic"},
	{Species: "horse", PhysiologicalStatus: "working_light", DMPercentageBW: 2.2, CPRequirementPercentage: 10, TDNRequirementPercentage: ptr(60), RoughageMinPercentage: ptr(65), ConcentrateMaxPercentage: ptr(35), GrainMaxPercentage: ptr(0.5)},
	{Species: "horse", PhysiologicalStatus: "working_heavy", DMPercentageBW: 2.5, CPRequirementPercentage: 12, TDNRequirementPercentage: ptr(68), RoughageMinPercentage: ptr(55), ConcentrateMaxPercentage: ptr(45), GrainMaxPercentage: ptr(0.5)},
	{Species: "donkey", PhysiologicalStatus: "maintenance", DMPercentageBW: 1.8, CPRequirementPercentage: 8, TDNRequirementPercentage: ptr(50), RoughageMinPercentage: ptr(80), ConcentrateMaxPercentage: ptr(20), SpecialNotes: "Donkeys are efficient converters - prone to obesity"},
	{Species: "donkey", PhysiologicalStatus: "working", DMPercentageBW: 2.2, CPRequirementPercentage: 10, TDNRequirementPercentage: ptr(55), RoughageMinPercentage: ptr(70), ConcentrateMaxPercentage: ptr(30)},
	{Species: "camel", PhysiologicalStatus: "maintenance", DMPercentageBW: 2.5, CPRequirementPercentage: 8, TDNRequirementPercentage: ptr(50), RoughageMinPercentage: ptr(85), ConcentrateMaxPercentage: ptr(15), SpecialNotes: "Camels have superior roughage digestion efficiency"},
	{Species: "camel", PhysiologicalStatus: "lactating", DMPercentageBW: 3.5, CPRequirementPercentage: 12, TDNRequirementPercentage: ptr(58), RoughageMinPercentage: ptr(75), ConcentrateMaxPercentage: ptr(25), MilkAllowanceDMPerLitre: ptr(0.3)},
	{Species: "pig", PhysiologicalStatus: "grower", DMPercentageBW: 4, CPRequirementPercentage: 18, TDNRequirementPercentage: ptr(75), RoughageMinPercentage: ptr(10), ConcentrateMaxPercentage: ptr(90), SpecialNotes: "Pigs are monogastric - high concentrate diet"},
	{Species: "pig", PhysiologicalStatus: "finisher", DMPercentageBW: 3.5, CPRequirementPercentage: 14, TDNRequirementPercentage: ptr(78), RoughageMinPercentage: ptr(10), ConcentrateMaxPercentage: ptr(90)},
	{Species: "pig", PhysiologicalStatus: "lactating_sow", DMPercentageBW: 5, CPRequirementPercentage: 16, TDNRequirementPercentage: ptr(75), RoughageMinPercentage: ptr(15), ConcentrateMaxPercentage: ptr(85)},
	{Species: "dog", PhysiologicalStatus: "maintenance", DMPercentageBW: 2.5, CPRequirementPercentage: 18, MERequirementMcal: ptr(0.13), RoughageMinPercentage: ptr(0), ConcentrateMaxPercentage: ptr(100), SpecialNotes: "ME requirement = 130 kcal × BW^0.75"},
	{Species: "dog", PhysiologicalStatus: "working", DMPercentageBW: 3.5, CPRequirementPercentage: 25, MERequirementMcal: ptr(0.18), RoughageMinPercentage: ptr(0), ConcentrateMaxPercentage: ptr(100)},
	{Species: "dog", PhysiologicalStatus: "lactating", DMPercentageBW: 4.5, CPRequirementPercentage: 28, MERequirementMcal: ptr(0.2), RoughageMinPercentage: ptr(0), ConcentrateMaxPercentage: ptr(100)},
	{Species: "cat", PhysiologicalStatus: "maintenance", DMPercentageBW: 3, CPRequirementPercentage: 26, MERequirementMcal: ptr(0.08), RoughageMinPercentage: ptr(0), ConcentrateMaxPercentage: ptr(100), SpecialNotes: "Cats are obligate carnivores - require taurine"},
	{Species: "cat", PhysiologicalStatus: "lactating", DMPercentageBW: 5, CPRequirementPercentage: 35, MERequirementMcal: ptr(0.12), RoughageMinPercentage: ptr(0), ConcentrateMaxPercentage: ptr(100)},
}
