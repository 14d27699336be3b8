// Package ration formulates daily feed rations from a species nutrition rule
// and a selection of catalog feeds.
package ration

import (
	"fmt"
	"math"
	"strings"

	"github.com/mamadbah2/livestockcare/internal/domain/models"
)

const (
	defaultRoughagePercentage = 60
	defaultTDNPercentage      = 60
	roughageTDNFallback       = 50
	concentrateTDNFallback    = 70

	saltQuantityKg    = 0.05
	mineralQuantityKg = 0.03

	lowerBound = 0.9
	upperBound = 1.2
)

// Advice strings attached to non-adequate statuses.
const (
	AdviceProteinDeficient = "Protein is deficient. Consider adding more protein-rich concentrates like oil cakes."
	AdviceProteinExcess    = "Protein is in excess. This may increase costs without benefit."
	AdviceEnergyDeficient  = "Energy is deficient. Consider adding more energy-rich feeds."
	AdviceEnergyExcess     = "Energy is in excess. Consider reducing grains and concentrates."
)

type bucket int

const (
	bucketNone bucket = iota
	bucketRoughage
	bucketConcentrate
	bucketMineral
)

func bucketOf(c models.FeedCategory) bucket {
	switch c {
	case models.FeedGreenLegume, models.FeedGreenNonLegume, models.FeedDryFodder, models.FeedTreeFodder:
		return bucketRoughage
	case models.FeedConcentrates, models.FeedOilCakes, models.FeedBrans, models.FeedGrains:
		return bucketConcentrate
	case models.FeedMinerals, models.FeedSupplements:
		return bucketMineral
	}
	return bucketNone
}

// DefaultRule is used when no active rule matches the species and status.
func DefaultRule() models.NutritionRule {
	return models.NutritionRule{NutritionRuleInput: models.NutritionRuleInput{
		DMPercentageBW:           3,
		CPRequirementPercentage:  12,
		TDNRequirementPercentage: ptr(60),
		RoughageMinPercentage:    ptr(60),
		ConcentrateMaxPercentage: ptr(40),
		MilkAllowanceDMPerLitre:  ptr(0.4),
		IsActive:                 boolPtr(true),
	}}
}

func ptr(v float64) *float64 { return &v }

func valueOr(v *float64, fallback float64) float64 {
	if v == nil {
		return fallback
	}
	return *v
}

// Calculate allocates the feeds against the rule. A nil rule means DefaultRule.
// The result never contains negative or non-finite quantities.
func Calculate(rule *models.NutritionRule, feeds []models.FeedItem, req models.RationRequest) models.RationResult {
	if rule == nil {
		def := DefaultRule()
		rule = &def
	}

	dmRequired := req.BodyWeightKg * rule.DMPercentageBW / 100
	if req.MilkYieldLiters > 0 && rule.MilkAllowanceDMPerLitre != nil && *rule.MilkAllowanceDMPerLitre > 0 {
		dmRequired += req.MilkYieldLiters * *rule.MilkAllowanceDMPerLitre
	}
	cpRequired := dmRequired * rule.CPRequirementPercentage * 10
	tdnRequired := dmRequired * valueOr(rule.TDNRequirementPercentage, defaultTDNPercentage) / 100

	var roughage, concentrate, minerals []models.FeedItem
	out := models.RationResult{
		SuggestedRation: []models.FeedAllocation{},
		Warnings:        []string{},
		Advice:          []string{},
	}
	for _, feed := range feeds {
		out.Warnings = append(out.Warnings, feed.Warnings...)
		if containsSpecies(feed.ContraindicatedSpecies, req.Species) {
			out.Warnings = append(out.Warnings, fmt.Sprintf("%s is contraindicated for %s", feed.Name, req.Species))
		}

		b := bucketOf(feed.Category)
		if b != bucketMineral && b != bucketNone && feed.DMPercentage <= 0 {
			out.Warnings = append(out.Warnings, fmt.Sprintf("%s has no dry matter value and was skipped", feed.Name))
			continue
		}
		switch b {
		case bucketRoughage:
			roughage = append(roughage, feed)
		case bucketConcentrate:
			concentrate = append(concentrate, feed)
		case bucketMineral:
			minerals = append(minerals, feed)
		}
	}

	roughageTarget := dmRequired * valueOr(rule.RoughageMinPercentage, defaultRoughagePercentage) / 100
	concentrateTarget := dmRequired - roughageTarget

	var totalDM, totalCP, totalTDN, totalCost float64
	allocate := func(feed models.FeedItem, dm float64, tdnFallback float64) {
		asFed := dm / (feed.DMPercentage / 100)
		cost := asFed * price(feed, req.FeedPrices)
		cp := dm * feed.CPPercentage * 10
		tdn := dm * valueOr(feed.TDNPercentage, tdnFallback) / 100

		out.SuggestedRation = append(out.SuggestedRation, models.FeedAllocation{
			FeedID:     feed.ID,
			FeedName:   feed.Name,
			Category:   feed.Category,
			QuantityKg: round(asFed, 2),
			DMKg:       round(dm, 2),
			CPg:        round(cp, 1),
			TDNKg:      round(tdn, 2),
			Cost:       round(cost, 2),
		})
		totalDM += dm
		totalCP += cp
		totalTDN += tdn
		totalCost += cost
	}

	if len(roughage) > 0 && roughageTarget > 0 {
		share := roughageTarget / float64(len(roughage))
		for _, feed := range roughage {
			allocate(feed, share, roughageTDNFallback)
		}
	}

	if len(concentrate) > 0 && concentrateTarget > 0 {
		share := concentrateTarget / float64(len(concentrate))
		for _, feed := range concentrate {
			dm := share
			if feed.MaxInclusionPercentage != nil && *feed.MaxInclusionPercentage > 0 {
				dm = math.Min(dm, dmRequired*(*feed.MaxInclusionPercentage)/100)
			}
			allocate(feed, dm, concentrateTDNFallback)
		}
	}

	for _, feed := range minerals {
		qty := mineralQuantityKg
		if strings.Contains(strings.ToLower(feed.Name), "salt") {
			qty = saltQuantityKg
		}
		cost := qty * price(feed, req.FeedPrices)
		out.SuggestedRation = append(out.SuggestedRation, models.FeedAllocation{
			FeedID:     feed.ID,
			FeedName:   feed.Name,
			Category:   feed.Category,
			QuantityKg: round(qty, 3),
			DMKg:       round(qty, 3),
			Cost:       round(cost, 2),
		})
		totalCost += cost
	}

	out.ProteinStatus = classify(totalCP, cpRequired)
	switch out.ProteinStatus {
	case models.NutrientDeficient:
		out.Advice = append(out.Advice, AdviceProteinDeficient)
	case models.NutrientExcess:
		out.Advice = append(out.Advice, AdviceProteinExcess)
	}
	out.EnergyStatus = classify(totalTDN, tdnRequired)
	switch out.EnergyStatus {
	case models.NutrientDeficient:
		out.Advice = append(out.Advice, AdviceEnergyDeficient)
	case models.NutrientExcess:
		out.Advice = append(out.Advice, AdviceEnergyExcess)
	}

	out.DMRequiredKg = round(dmRequired, 2)
	out.CPRequiredG = round(cpRequired, 1)
	out.TDNRequiredKg = round(tdnRequired, 2)
	out.TotalDMProvidedKg = round(totalDM, 2)
	out.TotalCPProvidedG = round(totalCP, 1)
	out.TotalTDNProvidedKg = round(totalTDN, 2)
	out.DailyFeedCost = round(totalCost, 2)
	if req.MilkYieldLiters > 0 {
		perLitre := round(totalCost/req.MilkYieldLiters, 2)
		out.CostPerLitreMilk = &perLitre
	}
	return out
}

func classify(provided, required float64) models.NutrientStatus {
	switch {
	case provided < required*lowerBound:
		return models.NutrientDeficient
	case provided > required*upperBound:
		return models.NutrientExcess
	}
	return models.NutrientAdequate
}

func price(feed models.FeedItem, custom map[string]float64) float64 {
	if p, ok := custom[feed.ID]; ok {
		return p
	}
	return feed.DefaultPricePerKg
}

func containsSpecies(list []models.Species, s models.Species) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

func round(v float64, places int) float64 {
	p := math.Pow10(places)
	return math.Round(v*p) / p
}
