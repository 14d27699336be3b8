package models

import "time"

// TestCategory is the sample family a diagnostic test belongs to.
type TestCategory string

const (
	TestBlood TestCategory = "blood"
	TestDung  TestCategory = "dung"
	TestMilk  TestCategory = "milk"
	TestUrine TestCategory = "urine"
	TestNasal TestCategory = "nasal"
	TestSkin  TestCategory = "skin"
)

// InterpretationStatus classifies an observed value.
type InterpretationStatus string

const (
	StatusNormal   InterpretationStatus = "normal"
	StatusHigh     InterpretationStatus = "high"
	StatusLow      InterpretationStatus = "low"
	StatusPositive InterpretationStatus = "positive"
	StatusNegative InterpretationStatus = "negative"
)

// KnowledgeStatus is the publication state of a reference entry.
type KnowledgeStatus string

const (
	KnowledgeDraft     KnowledgeStatus = "draft"
	KnowledgePublished KnowledgeStatus = "published"
	KnowledgeArchived  KnowledgeStatus = "archived"
)

// ReferenceData is the normal range and clinical notes for one test parameter.
type ReferenceData struct {
	NormalMin        *float64 `bson:"normal_min,omitempty" json:"normal_min,omitempty"`
	NormalMax        *float64 `bson:"normal_max,omitempty" json:"normal_max,omitempty"`
	Unit             string   `bson:"unit,omitempty" json:"unit,omitempty"`
	IncreaseCauses   []string `bson:"increase_causes" json:"increase_causes"`
	DecreaseCauses   []string `bson:"decrease_causes" json:"decrease_causes"`
	SpecialSymptoms  []string `bson:"special_symptoms" json:"special_symptoms"`
	SuggestedActions []string `bson:"suggested_actions" json:"suggested_actions"`
	Notes            string   `bson:"notes,omitempty" json:"notes,omitempty"`
}

// ReferenceRange is a knowledge center entry keyed by (test_category, test_type, species).
type ReferenceRange struct {
	ID            string          `bson:"id" json:"id"`
	TestCategory  TestCategory    `bson:"test_category" json:"test_category"`
	TestType      string          `bson:"test_type" json:"test_type"`
	Species       Species         `bson:"species" json:"species"`
	ReferenceData ReferenceData   `bson:"reference_data" json:"reference_data"`
	Version       int             `bson:"version" json:"version"`
	Status        KnowledgeStatus `bson:"status" json:"status"`
	CreatedBy     string          `bson:"created_by" json:"created_by"`
	UpdatedBy     string          `bson:"updated_by,omitempty" json:"updated_by,omitempty"`
	CreatedAt     time.Time       `bson:"created_at" json:"created_at"`
	UpdatedAt     time.Time       `bson:"updated_at" json:"updated_at"`
	PublishedAt   *time.Time      `bson:"published_at,omitempty" json:"published_at,omitempty"`
	ArchivedAt    *time.Time      `bson:"archived_at,omitempty" json:"archived_at,omitempty"`
}

// ReferenceInput is the editable part of a knowledge center entry.
type ReferenceInput struct {
	TestCategory  TestCategory  `json:"test_category" binding:"required"`
	TestType      string        `json:"test_type" binding:"required"`
	Species       Species       `json:"species" binding:"required"`
	ReferenceData ReferenceData `json:"reference_data"`
}

// KnowledgeFilter narrows knowledge center listings.
type KnowledgeFilter struct {
	TestCategory TestCategory
	Species      Species
	Status       KnowledgeStatus
}

// Observation is one measured or read-out test value.
type Observation struct {
	TestCategory TestCategory `bson:"test_category" json:"test_category" binding:"required"`
	TestType     string       `bson:"test_type" json:"test_type" binding:"required"`
	Species      Species      `bson:"species" json:"species" binding:"required"`
	Value        *float64     `bson:"value,omitempty" json:"value,omitempty"`
	ValueText    string       `bson:"value_text,omitempty" json:"value_text,omitempty"`
	Unit         string       `bson:"unit,omitempty" json:"unit,omitempty"`
}

// SafetyAlert is the fixed biosafety block attached to zoonotic findings.
type SafetyAlert struct {
	Disease                string   `bson:"disease" json:"disease"`
	PPERequirements        []string `bson:"ppe_requirements" json:"ppe_requirements"`
	HandlingPrecautions    []string `bson:"handling_precautions" json:"handling_precautions"`
	SampleCollectionSafety []string `bson:"sample_collection_safety" json:"sample_collection_safety"`
	WasteDisposal          []string `bson:"waste_disposal" json:"waste_disposal"`
	PublicHealthAdvice     string   `bson:"public_health_advice" json:"public_health_advice"`
	ReportingRequirements  string   `bson:"reporting_requirements" json:"reporting_requirements"`
	LegalDisclaimer        string   `bson:"legal_disclaimer" json:"legal_disclaimer"`
}

// Interpretation is the snapshot stored with a diagnostic. ReferenceID and
// ReferenceVersion identify the knowledge entry it was computed from.
type Interpretation struct {
	Status             InterpretationStatus `bson:"status" json:"status"`
	NormalRange        string               `bson:"normal_range,omitempty" json:"normal_range,omitempty"`
	PossibleConditions []string             `bson:"possible_conditions" json:"possible_conditions"`
	SpecialSymptoms    []string             `bson:"special_symptoms" json:"special_symptoms"`
	SuggestedActions   []string             `bson:"suggested_actions" json:"suggested_actions"`
	SafetyAlert        *SafetyAlert         `bson:"safety_alert,omitempty" json:"safety_alert,omitempty"`
	ReferenceID        string               `bson:"reference_id,omitempty" json:"reference_id,omitempty"`
	ReferenceVersion   int                  `bson:"reference_version,omitempty" json:"reference_version,omitempty"`
}

// DiagnosticInput is the payload for recording a diagnostic test.
type DiagnosticInput struct {
	AnimalID string `json:"animal_id" binding:"required"`
	Observation
	Symptoms []string `json:"symptoms"`
	Notes    string   `json:"notes"`
}

// Diagnostic is a recorded test with its interpretation snapshot.
type Diagnostic struct {
	ID       string `bson:"id" json:"id"`
	AnimalID string `bson:"animal_id" json:"animal_id"`
	FarmerID string `bson:"farmer_id" json:"farmer_id"`
	VetID    string `bson:"vet_id" json:"vet_id"`

	Observation `bson:",inline"`

	Symptoms       []string       `bson:"symptoms" json:"symptoms"`
	Notes          string         `bson:"notes,omitempty" json:"notes,omitempty"`
	Interpretation Interpretation `bson:"interpretation" json:"interpretation"`
	Date           time.Time      `bson:"date" json:"date"`
	CreatedAt      time.Time      `bson:"created_at" json:"created_at"`
}
