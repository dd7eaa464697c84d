package ventilation

import (
	"errors"

	"rc-building-model/internal/model"
)

// Params holds the DEAP constants used by the ventilation model.
// DefaultParams returns the DEAP 4.2.0 values; every field may be overridden.
type Params struct {
	// Ventilation rate per opening in m³/h.
	ChimneyRate    float64
	OpenFlueRate   float64
	FanRate        float64
	RoomHeaterRate float64

	// NoDraughtLobbyRate is added (ach) when the entrance has no draught lobby.
	NoDraughtLobbyRate float64
	// StoreyRate is added (ach) for each storey above the first.
	StoreyRate float64

	MasonryRate       float64
	TimberOrSteelRate float64
	ConcreteRate      float64
	// UnknownStructureRate is used when the structure type was not surveyed.
	UnknownStructureRate float64

	SealedFloorRate   float64
	UnsealedFloorRate float64

	// Draught term = DraughtBaseRate - DraughtStrippedRate × percentage/100.
	DraughtBaseRate     float64
	DraughtStrippedRate float64

	// ShelterFactorPerSide reduces infiltration by this fraction per sheltered side.
	ShelterFactorPerSide float64

	// LoftSupplyRate (m³/h) is the extra air drawn through the dwelling by loft-sourced PIV.
	LoftSupplyRate float64

	// HeatLossConstant is the heat capacity of air in Wh/m³K (SEAI, DEAP 4.2.0).
	HeatLossConstant float64

	// LenientStructureType maps unrecognised structure types onto "unknown" instead of failing.
	//
	// Deprecated: kept for surveys produced before structure types were validated.
	// Strict validation is the supported contract.
	LenientStructureType bool
}

func DefaultParams() Params {
	return Params{
		ChimneyRate:          40,
		OpenFlueRate:         20,
		FanRate:              10,
		RoomHeaterRate:       40,
		NoDraughtLobbyRate:   0.05,
		StoreyRate:           0.1,
		MasonryRate:          0.35,
		TimberOrSteelRate:    0.25,
		ConcreteRate:         0,
		UnknownStructureRate: 0.35,
		SealedFloorRate:      0.1,
		UnsealedFloorRate:    0.2,
		DraughtBaseRate:      0.25,
		DraughtStrippedRate:  0.2,
		ShelterFactorPerSide: 0.075,
		LoftSupplyRate:       20,
		HeatLossConstant:     0.33,
	}
}

func (p Params) Validate() error {
	for _, v := range []float64{
		p.ChimneyRate, p.OpenFlueRate, p.FanRate, p.RoomHeaterRate,
		p.NoDraughtLobbyRate, p.StoreyRate,
		p.MasonryRate, p.TimberOrSteelRate, p.ConcreteRate, p.UnknownStructureRate,
		p.SealedFloorRate, p.UnsealedFloorRate,
		p.DraughtBaseRate, p.DraughtStrippedRate,
		p.ShelterFactorPerSide, p.LoftSupplyRate,
	} {
		if v < 0 {
			return errors.New("ventilation rates must be >= 0")
		}
	}
	if p.HeatLossConstant <= 0 {
		return errors.New("HeatLossConstant must be > 0")
	}
	return nil
}

// structureRate is total over the enumerated set; callers validate first.
func (p Params) structureRate(s model.StructureType) float64 {
	switch s {
	case model.StructureMasonry:
		return p.MasonryRate
	case model.StructureTimberOrSteel:
		return p.TimberOrSteelRate
	case model.StructureConcrete:
		return p.ConcreteRate
	default:
		return p.UnknownStructureRate
	}
}

func (p Params) floorRate(f model.FloorSuspension) float64 {
	switch f {
	case model.FloorSealed:
		return p.SealedFloorRate
	case model.FloorUnsealed:
		return p.UnsealedFloorRate
	default:
		return 0
	}
}
