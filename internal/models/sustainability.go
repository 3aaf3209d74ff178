package models

import "time"

// CarbonPoint is one sample in the sustainability trend series.
type CarbonPoint struct {
	Timestamp time.Time `json:"timestamp"`
	CarbonKg  float64   `json:"carbonKg"`
}

// SustainabilitySnapshot is the sustainability panel's projected state.
type SustainabilitySnapshot struct {
	TotalCarbonKg      float64       `json:"totalCarbonKg"`
	CarbonSavingsKg    float64       `json:"carbonSavingsKg"`
	ShipmentsOptimized int           `json:"shipmentsOptimized"`
	UpdatedAt          time.Time     `json:"updatedAt,omitempty"`
	Trend              []CarbonPoint `json:"trend"`
}
