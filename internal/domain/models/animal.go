package models

import "time"

// Species supported by the records and calculators.
type Species string

const (
	SpeciesCattle  Species = "cattle"
	SpeciesBuffalo Species = "buffalo"
	SpeciesSheep   Species = "sheep"
	SpeciesGoat    Species = "goat"
	SpeciesPig     Species = "pig"
	SpeciesPoultry Species = "poultry"
	SpeciesDog     Species = "dog"
	SpeciesCat     Species = "cat"
	SpeciesHorse   Species = "horse"
	SpeciesDonkey  Species = "donkey"
	SpeciesCamel   Species = "camel"
)

// Valid reports whether s is a known species.
func (s Species) Valid() bool {
	switch s {
	case SpeciesCattle, SpeciesBuffalo, SpeciesSheep, SpeciesGoat, SpeciesPig, SpeciesPoultry,
		SpeciesDog, SpeciesCat, SpeciesHorse, SpeciesDonkey, SpeciesCamel:
		return true
	}
	return false
}

// Animal is a farmer-owned animal.
type Animal struct {
	ID        string    `bson:"id" json:"id"`
	FarmerID  string    `bson:"farmer_id" json:"farmer_id"`
	TagID     string    `bson:"tag_id" json:"tag_id" binding:"required"`
	Species   Species   `bson:"species" json:"species" binding:"required"`
	Breed     string    `bson:"breed" json:"breed"`
	AgeMonths int       `bson:"age_months" json:"age_months"`
	Gender    string    `bson:"gender" json:"gender"`
	Status    string    `bson:"status" json:"status"`
	Color     string    `bson:"color,omitempty" json:"color,omitempty"`
	WeightKg  *float64  `bson:"weight_kg,omitempty" json:"weight_kg,omitempty"`
	Notes     string    `bson:"notes,omitempty" json:"notes,omitempty"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

// Vaccination is a farmer-level vaccination event.
type Vaccination struct {
	ID             string    `bson:"id" json:"id"`
	FarmerID       string    `bson:"farmer_id" json:"farmer_id"`
	AnimalID       string    `bson:"animal_id" json:"animal_id" binding:"required"`
	VaccineName    string    `bson:"vaccine_name" json:"vaccine_name" binding:"required"`
	BatchNumber    string    `bson:"batch_number,omitempty" json:"batch_number,omitempty"`
	Dose           string    `bson:"dose" json:"dose"`
	AdministeredBy string    `bson:"administered_by,omitempty" json:"administered_by,omitempty"`
	NextDueDate    string    `bson:"next_due_date,omitempty" json:"next_due_date,omitempty"`
	Remarks        string    `bson:"remarks,omitempty" json:"remarks,omitempty"`
	Date           time.Time `bson:"date" json:"date"`
	CreatedAt      time.Time `bson:"created_at" json:"created_at"`
}

// Deworming is a farmer-level deworming event.
type Deworming struct {
	ID             string    `bson:"id" json:"id"`
	FarmerID       string    `bson:"farmer_id" json:"farmer_id"`
	AnimalID       string    `bson:"animal_id" json:"animal_id" binding:"required"`
	DrugName       string    `bson:"drug_name" json:"drug_name" binding:"required"`
	Dose           string    `bson:"dose" json:"dose"`
	AdministeredBy string    `bson:"administered_by,omitempty" json:"administered_by,omitempty"`
	NextDueDate    string    `bson:"next_due_date,omitempty" json:"next_due_date,omitempty"`
	Remarks        string    `bson:"remarks,omitempty" json:"remarks,omitempty"`
	Date           time.Time `bson:"date" json:"date"`
	CreatedAt      time.Time `bson:"created_at" json:"created_at"`
}

// Breeding is a natural service or AI event.
type Breeding struct {
	ID              string    `bson:"id" json:"id"`
	FarmerID        string    `bson:"farmer_id" json:"farmer_id"`
	AnimalID        string    `bson:"animal_id" json:"animal_id" binding:"required"`
	BreedingType    string    `bson:"breeding_type" json:"breeding_type" binding:"required"`
	SireDetails     string    `bson:"sire_details,omitempty" json:"sire_details,omitempty"`
	SemenBatch      string    `bson:"semen_batch,omitempty" json:"semen_batch,omitempty"`
	Inseminator     string    `bson:"inseminator,omitempty" json:"inseminator,omitempty"`
	ExpectedCalving string    `bson:"expected_calving,omitempty" json:"expected_calving,omitempty"`
	PregnancyResult string    `bson:"pd_result,omitempty" json:"pd_result,omitempty"`
	Remarks         string    `bson:"remarks,omitempty" json:"remarks,omitempty"`
	Date            time.Time `bson:"date" json:"date"`
	CreatedAt       time.Time `bson:"created_at" json:"created_at"`
}
