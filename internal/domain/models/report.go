package models

// FarmerStats is the farmer dashboard summary.
type FarmerStats struct {
	TotalAnimals      int64 `json:"total_animals"`
	TotalVaccinations int64 `json:"total_vaccinations"`
	TotalDeworming    int64 `json:"total_deworming"`
	TotalBreeding     int64 `json:"total_breeding"`
}

// VetStats is the short veterinarian dashboard summary.
type VetStats struct {
	DiagnosticsToday int64 `json:"diagnostics_today"`
	TotalDiagnostics int64 `json:"total_diagnostics"`
	TotalAnimals     int64 `json:"total_animals"`
	KnowledgeEntries int64 `json:"knowledge_entries"`
}
