package models

import (
	"rc-building-model/internal/config"
	"rc-building-model/internal/demand"
	"rc-building-model/internal/survey"
)

// AssessmentRequest represents the request body for assessing a batch of buildings
type AssessmentRequest struct {
	Buildings []survey.Record   `json:"buildings" binding:"required"`
	Params    ModelParams       `json:"params,omitempty"`
	Options   AssessmentOptions `json:"options,omitempty"`
}

// ModelParams are per-request overrides of the service's model configuration.
// Fields left out keep the service setting.
type ModelParams struct {
	Fabric      config.FabricConfig      `json:"fabric,omitempty"`
	Ventilation config.VentilationConfig `json:"ventilation,omitempty"`
	Demand      config.DemandConfig      `json:"demand,omitempty"`
}

// Config converts the overrides into a config overlay.
func (p ModelParams) Config() config.Config {
	return config.Config{
		Fabric:      p.Fabric,
		Ventilation: p.Ventilation,
		Demand:      p.Demand,
	}
}

// AssessmentOptions contains optional assessment parameters
type AssessmentOptions struct {
	IncludeRows bool `json:"include_rows,omitempty"` // default: false
}

// AnnualDemandRequest asks for the annual space heat demand of a column of heat loss coefficients
type AnnualDemandRequest struct {
	HeatLossCoefficient  []float64              `json:"heat_loss_coefficient" binding:"required"`
	InternalTemperatures *demand.MonthlyProfile `json:"internal_temperatures,omitempty"`
	ExternalTemperatures *demand.MonthlyProfile `json:"external_temperatures,omitempty"`
	HeatingSeason        *demand.Season         `json:"heating_season,omitempty"`
}

// DemandConfig converts the request's profile overrides into a config overlay.
func (r AnnualDemandRequest) DemandConfig() config.DemandConfig {
	return config.DemandConfig{
		InternalTemperatures: r.InternalTemperatures,
		ExternalTemperatures: r.ExternalTemperatures,
		HeatingSeason:        r.HeatingSeason,
	}
}
