package interpretation

import (
	"math"
	"strconv"
	"strings"

	"github.com/mamadbah2/livestockcare/internal/domain/models"
)

// NoReferenceAction is the suggested action returned when no reference entry matches.
const NoReferenceAction = "No reference data available. Please consult knowledge center."

// Interpret classifies an observation against a reference entry. A nil
// reference yields a normal result with the no-reference action; it never fails.
func Interpret(ref *models.ReferenceRange, obs models.Observation) models.Interpretation {
	out := models.Interpretation{
		Status:             models.StatusNormal,
		PossibleConditions: []string{},
		SpecialSymptoms:    []string{},
		SuggestedActions:   []string{},
	}
	if ref == nil {
		out.SuggestedActions = []string{NoReferenceAction}
		return out
	}

	data := ref.ReferenceData
	out.ReferenceID = ref.ID
	out.ReferenceVersion = ref.Version

	if data.NormalMin != nil && data.NormalMax != nil {
		out.NormalRange = strings.TrimSpace(formatNumber(*data.NormalMin) + " - " + formatNumber(*data.NormalMax) + " " + data.Unit)
	}

	if obs.Value != nil && data.NormalMin != nil {
		ceiling := math.Inf(1)
		if data.NormalMax != nil {
			ceiling = *data.NormalMax
		}
		switch v := *obs.Value; {
		case v > ceiling:
			out.Status = models.StatusHigh
			out.PossibleConditions = clone(data.IncreaseCauses)
		case v < *data.NormalMin:
			out.Status = models.StatusLow
			out.PossibleConditions = clone(data.DecreaseCauses)
		}
	}

	// The text read-out takes precedence over the numeric comparison.
	switch strings.ToLower(strings.TrimSpace(obs.ValueText)) {
	case "positive":
		out.Status = models.StatusPositive
		out.PossibleConditions = clone(data.IncreaseCauses)
	case "negative":
		out.Status = models.StatusNegative
	}

	out.SpecialSymptoms = clone(data.SpecialSymptoms)
	out.SuggestedActions = clone(data.SuggestedActions)

	if disease, ok := MatchZoonotic(out.PossibleConditions...); ok {
		out.SafetyAlert = SafetyAlertFor(disease)
	}
	return out
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
