package models

import "time"

// CaseResult is the outcome recorded on a clinical case.
type CaseResult string

const (
	ResultRecovered CaseResult = "recovered"
	ResultReferred  CaseResult = "referred"
	ResultDied      CaseResult = "died"
	ResultOngoing   CaseResult = "ongoing"
	ResultFollowUp  CaseResult = "followup"
)

// RegisterMeta is the bookkeeping shared by every clinical register entry.
type RegisterMeta struct {
	ID           string     `bson:"id" json:"id"`
	CaseNumber   string     `bson:"case_number" json:"case_number"`
	SerialNumber int64      `bson:"serial_number" json:"serial_number"`
	CaseType     string     `bson:"case_type,omitempty" json:"case_type,omitempty"`
	VetID        string     `bson:"vet_id" json:"vet_id"`
	VetName      string     `bson:"vet_name" json:"vet_name"`
	CaseDate     time.Time  `bson:"case_date" json:"case_date"`
	IsLocked     bool       `bson:"is_locked" json:"is_locked"`
	LockReason   string     `bson:"lock_reason,omitempty" json:"lock_reason,omitempty"`
	LockedBy     string     `bson:"locked_by,omitempty" json:"locked_by,omitempty"`
	LockedAt     *time.Time `bson:"locked_at,omitempty" json:"locked_at,omitempty"`
	CreatedAt    time.Time  `bson:"created_at" json:"created_at"`
	UpdatedAt    time.Time  `bson:"updated_at" json:"updated_at"`
}

// Meta returns the entry's bookkeeping block.
func (m *RegisterMeta) Meta() *RegisterMeta { return m }

// RegisterEntry is implemented by every clinical register type through its
// embedded RegisterMeta.
type RegisterEntry interface {
	Meta() *RegisterMeta
}

// CaseSubject identifies the animal and owner a case is about.
type CaseSubject struct {
	TagNumber     string  `bson:"tag_number,omitempty" json:"tag_number,omitempty"`
	FarmerName    string  `bson:"farmer_name" json:"farmer_name"`
	FarmerVillage string  `bson:"farmer_village,omitempty" json:"farmer_village,omitempty"`
	FarmerPhone   string  `bson:"farmer_phone,omitempty" json:"farmer_phone,omitempty"`
	Species       Species `bson:"species" json:"species"`
	Breed         string  `bson:"breed,omitempty" json:"breed,omitempty"`
	AgeMonths     int     `bson:"age_months,omitempty" json:"age_months,omitempty"`
}

// ClinicalCase is an OPD or IPD register entry. IPD cases carry the admission fields.
type ClinicalCase struct {
	RegisterMeta `bson:",inline"`
	CaseSubject  `bson:",inline"`

	Symptoms           string     `bson:"symptoms" json:"symptoms"`
	TentativeDiagnosis string     `bson:"tentative_diagnosis,omitempty" json:"tentative_diagnosis,omitempty"`
	Treatment          string     `bson:"treatment,omitempty" json:"treatment,omitempty"`
	Result             CaseResult `bson:"result" json:"result"`
	FollowUpDate       string     `bson:"follow_up_date,omitempty" json:"follow_up_date,omitempty"`
	Remarks            string     `bson:"remarks,omitempty" json:"remarks,omitempty"`

	AdmissionDate     string   `bson:"admission_date,omitempty" json:"admission_date,omitempty"`
	DischargeDate     string   `bson:"discharge_date,omitempty" json:"discharge_date,omitempty"`
	BedNumber         string   `bson:"bed_number,omitempty" json:"bed_number,omitempty"`
	DailyObservations []string `bson:"daily_observations,omitempty" json:"daily_observations,omitempty"`
}

// SurgicalCase is a surgical register entry.
type SurgicalCase struct {
	RegisterMeta `bson:",inline"`
	CaseSubject  `bson:",inline"`

	SurgeryType       string `bson:"surgery_type" json:"surgery_type"`
	SurgeryTypeOther  string `bson:"surgery_type_other,omitempty" json:"surgery_type_other,omitempty"`
	PreOpCondition    string `bson:"pre_op_condition,omitempty" json:"pre_op_condition,omitempty"`
	AnesthesiaType    string `bson:"anesthesia_type,omitempty" json:"anesthesia_type,omitempty"`
	AnesthesiaDetails string `bson:"anesthesia_details,omitempty" json:"anesthesia_details,omitempty"`
	SurgicalProcedure string `bson:"surgical_procedure,omitempty" json:"surgical_procedure,omitempty"`
	Findings          string `bson:"findings,omitempty" json:"findings,omitempty"`
	PostOpCare        string `bson:"post_op_care,omitempty" json:"post_op_care,omitempty"`
	Outcome           string `bson:"outcome" json:"outcome"`
	Complications     string `bson:"complications,omitempty" json:"complications,omitempty"`
	FollowUpDate      string `bson:"follow_up_date,omitempty" json:"follow_up_date,omitempty"`
	Remarks           string `bson:"remarks,omitempty" json:"remarks,omitempty"`
}

// GynaecologyCase is a gynaecology register entry.
type GynaecologyCase struct {
	RegisterMeta `bson:",inline"`
	CaseSubject  `bson:",inline"`

	Parity           int        `bson:"parity,omitempty" json:"parity,omitempty"`
	LastCalvingDate  string     `bson:"last_calving_date,omitempty" json:"last_calving_date,omitempty"`
	BreedingHistory  string     `bson:"breeding_history,omitempty" json:"breeding_history,omitempty"`
	Condition        string     `bson:"condition" json:"condition"`
	ConditionOther   string     `bson:"condition_other,omitempty" json:"condition_other,omitempty"`
	Symptoms         string     `bson:"symptoms,omitempty" json:"symptoms,omitempty"`
	PerRectalFinding string     `bson:"per_rectal_findings,omitempty" json:"per_rectal_findings,omitempty"`
	Diagnosis        string     `bson:"diagnosis,omitempty" json:"diagnosis,omitempty"`
	Treatment        string     `bson:"treatment,omitempty" json:"treatment,omitempty"`
	Prognosis        string     `bson:"prognosis,omitempty" json:"prognosis,omitempty"`
	FollowUpDate     string     `bson:"follow_up_date,omitempty" json:"follow_up_date,omitempty"`
	Result           CaseResult `bson:"result" json:"result"`
	Remarks          string     `bson:"remarks,omitempty" json:"remarks,omitempty"`
}

// CastrationCase is a castration register entry.
type CastrationCase struct {
	RegisterMeta `bson:",inline"`
	CaseSubject  `bson:",inline"`

	BodyWeightKg      *float64 `bson:"body_weight_kg,omitempty" json:"body_weight_kg,omitempty"`
	Method            string   `bson:"method" json:"method"`
	AnesthesiaUsed    string   `bson:"anesthesia_used" json:"anesthesia_used"`
	AnesthesiaDetails string   `bson:"anesthesia_details,omitempty" json:"anesthesia_details,omitempty"`
	ProcedureDetails  string   `bson:"procedure_details,omitempty" json:"procedure_details,omitempty"`
	Outcome           string   `bson:"outcome" json:"outcome"`
	Complications     string   `bson:"complications,omitempty" json:"complications,omitempty"`
	PostOpCare        string   `bson:"post_op_care,omitempty" json:"post_op_care,omitempty"`
	FollowUpDate      string   `bson:"follow_up_date,omitempty" json:"follow_up_date,omitempty"`
	Remarks           string   `bson:"remarks,omitempty" json:"remarks,omitempty"`
}

// CaseFilter narrows register listings.
type CaseFilter struct {
	DateFrom *time.Time
	DateTo   *time.Time
	Species  Species
	Result   CaseResult
}
