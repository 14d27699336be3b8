package models

import "time"

// GVA settings are stored as whole-number percentages (70 means 70%).

type MilkSettings struct {
	BreedablePercentage float64 `bson:"breedable_percentage" json:"breedable_percentage"`
	InMilkPercentage    float64 `bson:"in_milk_percentage" json:"in_milk_percentage"`
	InputCostPercentage float64 `bson:"input_cost_percentage" json:"input_cost_percentage"`
}

type SheepGoatSettings struct {
	SlaughterRate       float64 `bson:"slaughter_rate" json:"slaughter_rate"`
	SeasonsPerYear      float64 `bson:"seasons_per_year" json:"seasons_per_year"`
	InputCostPercentage float64 `bson:"input_cost_percentage" json:"input_cost_percentage"`
}

type BuffaloMeatSettings struct {
	SlaughterRate       float64 `bson:"slaughter_rate" json:"slaughter_rate"`
	InputCostPercentage float64 `bson:"input_cost_percentage" json:"input_cost_percentage"`
}

type PoultryMeatSettings struct {
	BatchesPerYear      float64 `bson:"batches_per_year" json:"batches_per_year"`
	SlaughterRate       float64 `bson:"slaughter_rate" json:"slaughter_rate"`
	DressingPercentage  float64 `bson:"dressing_percentage" json:"dressing_percentage"`
	InputCostPercentage float64 `bson:"input_cost_percentage" json:"input_cost_percentage"`
}

type EggSettings struct {
	InputCostPercentage float64 `bson:"input_cost_percentage" json:"input_cost_percentage"`
}

// GVASettings is the fully resolved parameter set used by a calculation.
type GVASettings struct {
	Milk        MilkSettings        `bson:"milk" json:"milk"`
	SheepGoat   SheepGoatSettings   `bson:"sheep_goat" json:"sheep_goat"`
	BuffaloMeat BuffaloMeatSettings `bson:"buffalo_meat" json:"buffalo_meat"`
	PoultryMeat PoultryMeatSettings `bson:"poultry_meat" json:"poultry_meat"`
	Egg         EggSettings         `bson:"egg" json:"egg"`
}

// GVASettingsOverride is the stored admin override. Nil fields fall back to
// the compiled-in default for that key.
type GVASettingsOverride struct {
	Milk        *MilkOverride        `bson:"milk,omitempty" json:"milk,omitempty"`
	SheepGoat   *SheepGoatOverride   `bson:"sheep_goat,omitempty" json:"sheep_goat,omitempty"`
	BuffaloMeat *BuffaloMeatOverride `bson:"buffalo_meat,omitempty" json:"buffalo_meat,omitempty"`
	PoultryMeat *PoultryMeatOverride `bson:"poultry_meat,omitempty" json:"poultry_meat,omitempty"`
	Egg         *EggOverride         `bson:"egg,omitempty" json:"egg,omitempty"`
}

type MilkOverride struct {
	BreedablePercentage *float64 `bson:"breedable_percentage,omitempty" json:"breedable_percentage,omitempty" binding:"omitempty,gte=0"`
	InMilkPercentage    *float64 `bson:"in_milk_percentage,omitempty" json:"in_milk_percentage,omitempty" binding:"omitempty,gte=0"`
	InputCostPercentage *float64 `bson:"input_cost_percentage,omitempty" json:"input_cost_percentage,omitempty" binding:"omitempty,gte=0"`
}

type SheepGoatOverride struct {
	SlaughterRate       *float64 `bson:"slaughter_rate,omitempty" json:"slaughter_rate,omitempty" binding:"omitempty,gte=0"`
	SeasonsPerYear      *float64 `bson:"seasons_per_year,omitempty" json:"seasons_per_year,omitempty" binding:"omitempty,gte=0"`
	InputCostPercentage *float64 `bson:"input_cost_percentage,omitempty" json:"input_cost_percentage,omitempty" binding:"omitempty,gte=0"`
}

type BuffaloMeatOverride struct {
	SlaughterRate       *float64 `bson:"slaughter_rate,omitempty" json:"slaughter_rate,omitempty" binding:"omitempty,gte=0"`
	InputCostPercentage *float64 `bson:"input_cost_percentage,omitempty" json:"input_cost_percentage,omitempty" binding:"omitempty,gte=0"`
}

type PoultryMeatOverride struct {
	BatchesPerYear      *float64 `bson:"batches_per_year,omitempty" json:"batches_per_year,omitempty" binding:"omitempty,gte=0"`
	SlaughterRate       *float64 `bson:"slaughter_rate,omitempty" json:"slaughter_rate,omitempty" binding:"omitempty,gte=0"`
	DressingPercentage  *float64 `bson:"dressing_percentage,omitempty" json:"dressing_percentage,omitempty" binding:"omitempty,gte=0"`
	InputCostPercentage *float64 `bson:"input_cost_percentage,omitempty" json:"input_cost_percentage,omitempty" binding:"omitempty,gte=0"`
}

type EggOverride struct {
	InputCostPercentage *float64 `bson:"input_cost_percentage,omitempty" json:"input_cost_percentage,omitempty" binding:"omitempty,gte=0"`
}

// GVAInput is the village census and price sheet for a calculation.
type GVAInput struct {
	CattleCount           int     `bson:"cattle_count" json:"cattle_count" binding:"gte=0"`
	BuffaloCount          int     `bson:"buffalo_count" json:"buffalo_count" binding:"gte=0"`
	SheepCount            int     `bson:"sheep_count" json:"sheep_count" binding:"gte=0"`
	GoatCount             int     `bson:"goat_count" json:"goat_count" binding:"gte=0"`
	PoultryCount          int     `bson:"poultry_count" json:"poultry_count" binding:"gte=0"`
	AvgMilkYieldPerDay    float64 `bson:"avg_milk_yield_per_day" json:"avg_milk_yield_per_day" binding:"gte=0"`
	MilkPricePerLitre     float64 `bson:"milk_price_per_litre" json:"milk_price_per_litre" binding:"gte=0"`
	AvgLiveWeightKg       float64 `bson:"avg_live_weight_kg" json:"avg_live_weight_kg" binding:"gte=0"`
	MeatPricePerKg        float64 `bson:"meat_price_per_kg" json:"meat_price_per_kg" binding:"gte=0"`
	EggsPerBirdPerYear    int     `bson:"eggs_per_bird_per_year" json:"eggs_per_bird_per_year" binding:"gte=0"`
	EggPrice              float64 `bson:"egg_price" json:"egg_price" binding:"gte=0"`
	PoultryMeatPricePerKg float64 `bson:"poultry_meat_price_per_kg" json:"poultry_meat_price_per_kg" binding:"gte=0"`
	VillageName           string  `bson:"village_name,omitempty" json:"village_name,omitempty"`
	Mandal                string  `bson:"mandal,omitempty" json:"mandal,omitempty"`
	District              string  `bson:"district,omitempty" json:"district,omitempty"`
}

// GVAResult holds every intermediate and final figure of a calculation.
type GVAResult struct {
	MilkBreedableAnimals float64 `bson:"milk_breedable_animals" json:"milk_breedable_animals"`
	MilkInMilkAnimals    float64 `bson:"milk_in_milk_animals" json:"milk_in_milk_animals"`
	MilkDailyProduction  float64 `bson:"milk_daily_production" json:"milk_daily_production"`
	MilkAnnualProduction float64 `bson:"milk_annual_production" json:"milk_annual_production"`
	MilkGSDP             float64 `bson:"milk_gsdp" json:"milk_gsdp"`
	MilkInputCost        float64 `bson:"milk_input_cost" json:"milk_input_cost"`
	MilkGVA              float64 `bson:"milk_gva" json:"milk_gva"`

	SheepGoatSlaughterCount float64 `bson:"sheep_goat_slaughter_count" json:"sheep_goat_slaughter_count"`
	SheepGoatMeatProduction float64 `bson:"sheep_goat_meat_production" json:"sheep_goat_meat_production"`
	SheepGoatAnnualMeat     float64 `bson:"sheep_goat_annual_meat" json:"sheep_goat_annual_meat"`
	SheepGoatGSDP           float64 `bson:"sheep_goat_gsdp" json:"sheep_goat_gsdp"`
	SheepGoatInputCost      float64 `bson:"sheep_goat_input_cost" json:"sheep_goat_input_cost"`
	SheepGoatGVA            float64 `bson:"sheep_goat_gva" json:"sheep_goat_gva"`

	BuffaloSlaughterCount float64 `bson:"buffalo_slaughter_count" json:"buffalo_slaughter_count"`
	BuffaloMeatProduction float64 `bson:"buffalo_meat_production" json:"buffalo_meat_production"`
	BuffaloGSDP           float64 `bson:"buffalo_gsdp" json:"buffalo_gsdp"`
	BuffaloInputCost      float64 `bson:"buffalo_input_cost" json:"buffalo_input_cost"`
	BuffaloMeatGVA        float64 `bson:"buffalo_meat_gva" json:"buffalo_meat_gva"`

	PoultryAnnualBirds    float64 `bson:"poultry_annual_birds" json:"poultry_annual_birds"`
	PoultrySlaughterCount float64 `bson:"poultry_slaughter_count" json:"poultry_slaughter_count"`
	PoultryDressedMeat    float64 `bson:"poultry_dressed_meat" json:"poultry_dressed_meat"`
	PoultryGSDP           float64 `bson:"poultry_gsdp" json:"poultry_gsdp"`
	PoultryInputCost      float64 `bson:"poultry_input_cost" json:"poultry_input_cost"`
	PoultryMeatGVA        float64 `bson:"poultry_meat_gva" json:"poultry_meat_gva"`

	EggAnnualProduction float64 `bson:"egg_annual_production" json:"egg_annual_production"`
	EggGSDP             float64 `bson:"egg_gsdp" json:"egg_gsdp"`
	EggInputCost        float64 `bson:"egg_input_cost" json:"egg_input_cost"`
	EggGVA              float64 `bson:"egg_gva" json:"egg_gva"`

	TotalVillageGVA float64 `bson:"total_village_gva" json:"total_village_gva"`
}

// GVAReport is a persisted calculation.
type GVAReport struct {
	ID           string      `bson:"id" json:"id"`
	Inputs       GVAInput    `bson:"inputs" json:"inputs"`
	Results      GVAResult   `bson:"results" json:"results"`
	SettingsUsed GVASettings `bson:"settings_used" json:"settings_used"`
	VetID        string      `bson:"vet_id" json:"vet_id"`
	VetName      string      `bson:"vet_name" json:"vet_name"`
	Institution  string      `bson:"institution,omitempty" json:"institution,omitempty"`
	CreatedAt    time.Time   `bson:"created_at" json:"created_at"`
}
