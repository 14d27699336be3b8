package interpretation

import (
	"regexp"
	"strings"

	"github.com/mamadbah2/livestockcare/internal/domain/models"
)

// HighRiskDiseases is the zoonotic allow-list, in scan order.
var HighRiskDiseases = []string{
	"Brucellosis",
	"Anthrax",
	"Leptospirosis",
	"Tuberculosis",
	"Avian Influenza",
	"Rabies",
	"FMD",
}

var (
	ppeRequirements = []string{
		"Wear disposable gloves",
		"Use N95 mask or respirator",
		"Wear protective eyewear",
		"Use disposable gown/coverall",
		"Rubber boots with disinfection",
	}
	handlingPrecautions = []string{
		"Minimize direct animal contact",
		"Avoid contact with body fluids",
		"Work in well-ventilated areas",
		"Wash hands thoroughly after handling",
		"Do not eat/drink in work areas",
	}
	sampleCollectionSafety = []string{
		"Use sterile equipment",
		"Label samples clearly as biohazard",
		"Double-bag specimens",
		"Transport in leak-proof containers",
		"Follow cold chain if required",
	}
	wasteDisposal = []string{
		"Autoclave or incinerate infected materials",
		"Disinfect all equipment after use",
		"Dispose of PPE in biohazard containers",
		"Clean area with approved disinfectant",
	}
)

const (
	reportingRequirements = "Report to District Veterinary Officer within 24 hours. Notify State Animal Husbandry Department. Complete Form A for disease notification."
	legalDisclaimer       = "This safety information is for reference only. Always follow local regulations and consult with public health authorities."
)

// SafetyAlertFor returns the biosafety block for a listed disease, or nil.
// The returned value is a fresh copy.
func SafetyAlertFor(disease string) *models.SafetyAlert {
	if !isHighRisk(disease) {
		return nil
	}
	return &models.SafetyAlert{
		Disease:                disease,
		PPERequirements:        clone(ppeRequirements),
		HandlingPrecautions:    clone(handlingPrecautions),
		SampleCollectionSafety: clone(sampleCollectionSafety),
		WasteDisposal:          clone(wasteDisposal),
		PublicHealthAdvice:     disease + " is a zoonotic disease that can transmit to humans. Immediate reporting to authorities is mandatory.",
		ReportingRequirements:  reportingRequirements,
		LegalDisclaimer:        legalDisclaimer,
	}
}

// MatchZoonotic returns the first listed disease mentioned in any of the
// conditions, compared case-insensitively by substring.
func MatchZoonotic(conditions ...string) (string, bool) {
	for _, condition := range conditions {
		lower := strings.ToLower(condition)
		for _, disease := range HighRiskDiseases {
			if strings.Contains(lower, strings.ToLower(disease)) {
				return disease, true
			}
		}
	}
	return "", false
}

// ZoonoticPattern is a regular expression alternation of the listed diseases,
// for use in case-insensitive database queries.
func ZoonoticPattern() string {
	quoted := make([]string, len(HighRiskDiseases))
	for i, d := range HighRiskDiseases {
		quoted[i] = regexp.QuoteMeta(d)
	}
	return strings.Join(quoted, "|")
}

func isHighRisk(disease string) bool {
	for _, d := range HighRiskDiseases {
		if d == disease {
			return true
		}
	}
	return false
}

func clone(in []string) []string {
	return append([]string{}, in...)
}
