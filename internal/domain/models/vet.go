package models

import "time"

// VetProfileInput is the veterinarian-editable profile payload.
type VetProfileInput struct {
	RegistrationNumber string `bson:"registration_number" json:"registration_number" binding:"required"`
	Qualification      string `bson:"qualification" json:"qualification"`
	MobileNumber       string `bson:"mobile_number" json:"mobile_number"`
	InstitutionName    string `bson:"institution_name,omitempty" json:"institution_name,omitempty"`
	WorkingVillage     string `bson:"working_village,omitempty" json:"working_village,omitempty"`
	Mandal             string `bson:"mandal,omitempty" json:"mandal,omitempty"`
	District           string `bson:"district,omitempty" json:"district,omitempty"`
	State              string `bson:"state,omitempty" json:"state,omitempty"`
	DateOfJoining      string `bson:"date_of_joining,omitempty" json:"date_of_joining,omitempty"`
	Remarks            string `bson:"remarks,omitempty" json:"remarks,omitempty"`
}

// Complete reports whether the fields needed for certificates are present.
func (in VetProfileInput) Complete() bool {
	return in.RegistrationNumber != "" && in.Qualification != "" && in.MobileNumber != ""
}

// VetProfile is a veterinarian's professional profile.
type VetProfile struct {
	ID string `bson:"id" json:"id"`

	VetProfileInput `bson:",inline"`

	VetID                 string    `bson:"vet_id" json:"vet_id"`
	UserID                string    `bson:"user_id" json:"user_id"`
	UserName              string    `bson:"user_name" json:"user_name"`
	IsComplete            bool      `bson:"is_complete" json:"is_complete"`
	RegistrationVerified  bool      `bson:"registration_verified" json:"registration_verified"`
	CertificatePrivileges bool      `bson:"certificate_privileges" json:"certificate_privileges"`
	CreatedAt             time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt             time.Time `bson:"updated_at" json:"updated_at"`

	Verification `bson:",inline"`
}

// Verification records an admin's review of a profile or institution.
type Verification struct {
	VerifiedBy          string     `bson:"verified_by,omitempty" json:"verified_by,omitempty"`
	VerificationDate    *time.Time `bson:"verification_date,omitempty" json:"verification_date,omitempty"`
	VerificationRemarks string     `bson:"verification_remarks,omitempty" json:"verification_remarks,omitempty"`
}

// InstitutionInput is the payload for registering a veterinary institution.
type InstitutionInput struct {
	InstitutionName      string   `bson:"institution_name" json:"institution_name" binding:"required"`
	Location             string   `bson:"location,omitempty" json:"location,omitempty"`
	Mandal               string   `bson:"mandal,omitempty" json:"mandal,omitempty"`
	District             string   `bson:"district,omitempty" json:"district,omitempty"`
	State                string   `bson:"state,omitempty" json:"state,omitempty"`
	ContactNumber        string   `bson:"contact_number,omitempty" json:"contact_number,omitempty"`
	JurisdictionVillages []string `bson:"jurisdiction_villages" json:"jurisdiction_villages"`
}

// Institution is a veterinary hospital or dispensary.
type Institution struct {
	ID string `bson:"id" json:"id"`

	InstitutionInput `bson:",inline"`

	IsVerified bool      `bson:"is_verified" json:"is_verified"`
	CreatedBy  string    `bson:"created_by" json:"created_by"`
	CreatedAt  time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt  time.Time `bson:"updated_at" json:"updated_at"`

	Verification `bson:",inline"`
}

// VetDashboard is the detailed veterinarian dashboard.
type VetDashboard struct {
	OPDToday          int64   `json:"opd_today"`
	IPDActive         int64   `json:"ipd_active"`
	VaccinationsToday int64   `json:"vaccinations_today"`
	AIToday           int64   `json:"ai_today"`
	MortalityToday    int64   `json:"mortality_today"`
	TotalOPD          int64   `json:"total_opd"`
	TotalIPD          int64   `json:"total_ipd"`
	TotalAnimals      int64   `json:"total_animals"`
	KnowledgeEntries  int64   `json:"knowledge_entries"`
	PendingFollowUps  int64   `json:"pending_followups"`
	ProfileComplete   bool    `json:"profile_complete"`
	VetID             *string `json:"vet_id"`
}
