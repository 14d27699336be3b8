package models

// AreaInput is a rectangular plot measured in meters or feet.
type AreaInput struct {
	Length float64 `json:"length" binding:"gte=0"`
	Width  float64 `json:"width" binding:"gte=0"`
	Unit   string  `json:"unit"`
}

// AreaResult expresses a plot in the common land units.
type AreaResult struct {
	Input        AreaInput `json:"input"`
	SquareMeters float64   `json:"area_sq_meters"`
	SquareFeet   float64   `json:"area_sq_feet"`
	Acres        float64   `json:"area_acres"`
	Hectares     float64   `json:"area_hectares"`
}

// InterestInput is a loan principal with an annual rate in percent.
type InterestInput struct {
	Principal float64 `json:"principal" binding:"gte=0"`
	Rate      float64 `json:"rate" binding:"gte=0"`
	TimeYears float64 `json:"time_years" binding:"gte=0"`
}

// InterestResult compares simple and annually compounded interest.
type InterestResult struct {
	Input            InterestInput `json:"input"`
	SimpleInterest   float64       `json:"simple_interest"`
	SimpleTotal      float64       `json:"simple_total"`
	CompoundInterest float64       `json:"compound_interest"`
	CompoundTotal    float64       `json:"compound_total"`
}
