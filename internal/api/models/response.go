package models

import (
	"time"

	"rc-building-model/internal/assess"
	"rc-building-model/internal/demand"
	"rc-building-model/internal/ventilation"
)

// AssessmentResponse represents the response from an assessment run
type AssessmentResponse struct {
	ID        string             `json:"id,omitempty"`
	Status    string             `json:"status"`
	CreatedAt time.Time          `json:"created_at"`
	Summary   assess.Summary     `json:"summary"`
	Rows      []assess.ResultRow `json:"rows,omitempty"`
}

// AnnualDemandResponse carries one annual demand per input coefficient, in input order
type AnnualDemandResponse struct {
	AnnualHeatDemand []float64 `json:"annual_heat_demand"`
	Unit             string    `json:"unit"`
}

// VentilationMethodsResponse lists the supported ventilation regimes
type VentilationMethodsResponse struct {
	Methods []ventilation.Regime `json:"methods"`
}

// ProfilesResponse exposes the default monthly inputs of the demand model
type ProfilesResponse struct {
	InternalTemperatures demand.MonthlyProfile `json:"internal_temperatures"`
	ExternalTemperatures demand.MonthlyProfile `json:"external_temperatures"`
	HoursPerMonth        demand.MonthlyProfile `json:"hours_per_month"`
	HeatingSeason        demand.Season         `json:"heating_season"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail contains error information
type ErrorDetail struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}

// ColumnDetail is the wire form of one offending column.
type ColumnDetail struct {
	Column  string   `json:"column"`
	Kind    string   `json:"kind"`
	Rows    []int    `json:"rows,omitempty"`
	Allowed []string `json:"allowed,omitempty"`
	Message string   `json:"message,omitempty"`
}
