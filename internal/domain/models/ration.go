package models

import "time"

// FeedCategory groups feeds for ration allocation.
type FeedCategory string

const (
	FeedGreenLegume    FeedCategory = "green_fodder_legume"
	FeedGreenNonLegume FeedCategory = "green_fodder_non_legume"
	FeedTreeFodder     FeedCategory = "tree_fodder"
	FeedDryFodder      FeedCategory = "dry_fodder"
	FeedConcentrates   FeedCategory = "concentrates"
	FeedOilCakes       FeedCategory = "oil_cakes"
	FeedBrans          FeedCategory = "brans"
	FeedGrains         FeedCategory = "grains"
	FeedAgroIndustrial FeedCategory = "agro_industrial"
	FeedMinerals       FeedCategory = "minerals"
	FeedSupplements    FeedCategory = "supplements"
)

// FeedInput is the admin-editable part of a feed item. Optional fields are
// stored as null so an update replaces them. A nil IsActive keeps the stored
// state.
type FeedInput struct {
	Name                   string       `bson:"name" json:"name" binding:"required"`
	LocalName              string       `bson:"local_name" json:"local_name,omitempty"`
	Category               FeedCategory `bson:"category" json:"category" binding:"required"`
	ApplicableSpecies      []Species    `bson:"applicable_species" json:"applicable_species"`
	DMPercentage           float64      `bson:"dm_percentage" json:"dm_percentage"`
	CPPercentage           float64      `bson:"cp_percentage" json:"cp_percentage"`
	DCPPercentage          *float64     `bson:"dcp_percentage" json:"dcp_percentage,omitempty"`
	TDNPercentage          *float64     `bson:"tdn_percentage" json:"tdn_percentage,omitempty"`
	MEMcal                 *float64     `bson:"me_mcal" json:"me_mcal,omitempty"`
	CalciumPercentage      *float64     `bson:"calcium_percentage" json:"calcium_percentage,omitempty"`
	PhosphorusPercentage   *float64     `bson:"phosphorus_percentage" json:"phosphorus_percentage,omitempty"`
	DefaultPricePerKg      float64      `bson:"default_price_per_kg" json:"default_price_per_kg"`
	MaxInclusionPercentage *float64     `bson:"max_inclusion_percentage" json:"max_inclusion_percentage,omitempty"`
	Warnings               []string     `bson:"warnings" json:"warnings"`
	ContraindicatedSpecies []Species    `bson:"contraindicated_species" json:"contraindicated_species"`
	IsToxic                bool         `bson:"is_toxic" json:"is_toxic"`
	ToxicityNotes          string       `bson:"toxicity_notes" json:"toxicity_notes,omitempty"`
	IsActive               *bool        `bson:"is_active" json:"is_active"`
}

// FeedItem is a catalog entry. Its nutrient values are per unit dry matter.
type FeedItem struct {
	ID string `bson:"id" json:"id"`

	FeedInput `bson:",inline"`

	Version   int       `bson:"version" json:"version"`
	CreatedBy string    `bson:"created_by" json:"created_by"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

// Active reports whether the feed may be used in calculations.
func (f FeedInput) Active() bool { return f.IsActive == nil || *f.IsActive }

// FeedFilter narrows catalog listings. A nil IsActive lists every item.
type FeedFilter struct {
	Category FeedCategory
	Species  Species
	IsActive *bool
}

// NutritionRuleInput is the admin-editable part of a nutrition rule.
type NutritionRuleInput struct {
	Species                  Species  `bson:"species" json:"species" binding:"required"`
	PhysiologicalStatus      string   `bson:"physiological_status" json:"physiological_status" binding:"required"`
	DMPercentageBW           float64  `bson:"dm_percentage_bw" json:"dm_percentage_bw" binding:"gt=0"`
	CPRequirementPercentage  float64  `bson:"cp_requirement_percentage" json:"cp_requirement_percentage"`
	TDNRequirementPercentage *float64 `bson:"tdn_requirement_percentage" json:"tdn_requirement_percentage,omitempty"`
	MERequirementMcal        *float64 `bson:"me_requirement_mcal" json:"me_requirement_mcal,omitempty"`
	RoughageMinPercentage    *float64 `bson:"roughage_min_percentage" json:"roughage_min_percentage,omitempty"`
	ConcentrateMaxPercentage *float64 `bson:"concentrate_max_percentage" json:"concentrate_max_percentage,omitempty"`
	GrainMaxPercentage       *float64 `bson:"grain_max_percentage" json:"grain_max_percentage,omitempty"`
	MilkAllowanceDMPerLitre  *float64 `bson:"milk_allowance_dm_per_litre" json:"milk_allowance_dm_per_litre,omitempty"`
	PregnancySurgePercentage *float64 `bson:"pregnancy_surge_percentage" json:"pregnancy_surge_percentage,omitempty"`
	SpecialNotes             string   `bson:"special_notes" json:"special_notes,omitempty"`
	IsActive                 *bool    `bson:"is_active" json:"is_active"`
}

// Active reports whether the rule is in force.
func (r NutritionRuleInput) Active() bool { return r.IsActive == nil || *r.IsActive }

// NutritionRule holds the daily requirements for a (species, physiological_status) pair.
type NutritionRule struct {
	ID string `bson:"id" json:"id"`

	NutritionRuleInput `bson:",inline"`

	Version   int       `bson:"version" json:"version"`
	CreatedBy string    `bson:"created_by" json:"created_by"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

// NutritionVersion labels a published nutrition dataset.
type NutritionVersion struct {
	ID          string    `bson:"id" json:"id"`
	VersionName string    `bson:"version_name" json:"version_name"`
	Description string    `bson:"description" json:"description"`
	IsCurrent   bool      `bson:"is_current" json:"is_current"`
	PublishedBy string    `bson:"published_by" json:"published_by"`
	PublishedAt time.Time `bson:"published_at" json:"published_at"`
}

// RationRequest is the input of a ration calculation.
type RationRequest struct {
	Species             Species            `bson:"species" json:"species" binding:"required"`
	BodyWeightKg        float64            `bson:"body_weight_kg" json:"body_weight_kg" binding:"gt=0"`
	PhysiologicalStatus string             `bson:"physiological_status" json:"physiological_status" binding:"required"`
	MilkYieldLiters     float64            `bson:"milk_yield_liters" json:"milk_yield_liters" binding:"gte=0"`
	SelectedFeeds       []string           `bson:"selected_feeds" json:"selected_feeds" binding:"required,min=1"`
	FeedPrices          map[string]float64 `bson:"feed_prices,omitempty" json:"feed_prices,omitempty"`
}

// FeedAllocation is one line of a suggested ration.
type FeedAllocation struct {
	FeedID     string       `bson:"feed_id" json:"feed_id"`
	FeedName   string       `bson:"feed_name" json:"feed_name"`
	Category   FeedCategory `bson:"category" json:"category"`
	QuantityKg float64      `bson:"quantity_kg" json:"quantity_kg"`
	DMKg       float64      `bson:"dm_kg" json:"dm_kg"`
	CPg        float64      `bson:"cp_g" json:"cp_g"`
	TDNKg      float64      `bson:"tdn_kg" json:"tdn_kg"`
	Cost       float64      `bson:"cost" json:"cost"`
}

// NutrientStatus compares a provided nutrient against its requirement.
type NutrientStatus string

const (
	NutrientAdequate  NutrientStatus = "adequate"
	NutrientDeficient NutrientStatus = "deficient"
	NutrientExcess    NutrientStatus = "excess"
)

// RationResult is the output of the pure ration engine.
type RationResult struct {
	DMRequiredKg       float64          `bson:"dm_required_kg" json:"dm_required_kg"`
	CPRequiredG        float64          `bson:"cp_required_g" json:"cp_required_g"`
	TDNRequiredKg      float64          `bson:"tdn_required_kg" json:"tdn_required_kg"`
	SuggestedRation    []FeedAllocation `bson:"suggested_ration" json:"suggested_ration"`
	TotalDMProvidedKg  float64          `bson:"total_dm_provided_kg" json:"total_dm_provided_kg"`
	TotalCPProvidedG   float64          `bson:"total_cp_provided_g" json:"total_cp_provided_g"`
	TotalTDNProvidedKg float64          `bson:"total_tdn_provided_kg" json:"total_tdn_provided_kg"`
	ProteinStatus      NutrientStatus   `bson:"protein_status" json:"protein_status"`
	EnergyStatus       NutrientStatus   `bson:"energy_status" json:"energy_status"`
	DailyFeedCost      float64          `bson:"daily_feed_cost" json:"daily_feed_cost"`
	CostPerLitreMilk   *float64         `bson:"cost_per_litre_milk" json:"cost_per_litre_milk"`
	Warnings           []string         `bson:"warnings" json:"warnings"`
	Advice             []string         `bson:"advice" json:"advice"`
}

// RationCalculation is a stored ration result with its request and caller.
type RationCalculation struct {
	ID string `bson:"id" json:"id"`

	RationRequest `bson:",inline"`
	RationResult  `bson:",inline"`

	NutritionVersionID string    `bson:"nutrition_version_id" json:"nutrition_version_id"`
	CalculatedBy       string    `bson:"calculated_by" json:"calculated_by"`
	UserRole           Role      `bson:"user_role" json:"user_role"`
	CalculatedAt       time.Time `bson:"calculated_at" json:"calculated_at"`
}
