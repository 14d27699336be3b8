// Package calculators holds the small farm utilities exposed to every
// signed-in user.
package calculators

import (
	"math"
	"strings"

	"github.com/mamadbah2/livestockcare/internal/domain/models"
)

const (
	sqMetersPerSqFoot = 0.0929
	sqFeetPerSqMeter  = 10.764
	sqMetersPerAcre   = 4046.86
	sqMetersPerHa     = 10000
)

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// Area converts a rectangular plot into square metres, square feet, acres
// and hectares. Lengths are metres unless the unit is "feet".
func Area(in models.AreaInput) models.AreaResult {
	raw := in.Length * in.Width

	sqMeters, sqFeet := raw, raw*sqFeetPerSqMeter
	if strings.EqualFold(in.Unit, "feet") {
		sqMeters, sqFeet = raw*sqMetersPerSqFoot, raw
	}

	return models.AreaResult{
		Input:        in,
		SquareMeters: round2(sqMeters),
		SquareFeet:   round2(sqFeet),
		Acres:        round2(sqMeters / sqMetersPerAcre),
		Hectares:     round2(sqMeters / sqMetersPerHa),
	}
}

// Interest compares simple and annually compounded interest on a principal.
func Interest(in models.InterestInput) models.InterestResult {
	simple := in.Principal * in.Rate * in.TimeYears / 100
	compound := in.Principal * (math.Pow(1+in.Rate/100, in.TimeYears) - 1)

	return models.InterestResult{
		Input:            in,
		SimpleInterest:   round2(simple),
		SimpleTotal:      round2(in.Principal + simple),
		CompoundInterest: round2(compound),
		CompoundTotal:    round2(in.Principal + compound),
	}
}
