package model

// StructureType is the main construction of the dwelling.
// Keep these values stable; they are the wire format for surveys, the API and CSV output.
type StructureType string

const (
	StructureUnknown       StructureType = "unknown"
	StructureMasonry       StructureType = "masonry"
	StructureTimberOrSteel StructureType = "timber_or_steel"
	StructureConcrete      StructureType = "concrete"
)

// AllStructureTypes returns the allowed structure types in a fixed order.
func AllStructureTypes() []StructureType {
	return []StructureType{StructureUnknown, StructureMasonry, StructureTimberOrSteel, StructureConcrete}
}

func (s StructureType) Valid() bool {
	switch s {
	case StructureUnknown, StructureMasonry, StructureTimberOrSteel, StructureConcrete:
		return true
	}
	return false
}

// FloorSuspension describes whether the ground floor is suspended timber and, if so, sealed.
type FloorSuspension string

const (
	FloorNone     FloorSuspension = "none"
	FloorSealed   FloorSuspension = "sealed"
	FloorUnsealed FloorSuspension = "unsealed"
)

// AllFloorSuspensions returns the allowed floor suspension types in a fixed order.
func AllFloorSuspensions() []FloorSuspension {
	return []FloorSuspension{FloorNone, FloorSealed, FloorUnsealed}
}

func (f FloorSuspension) Valid() bool {
	switch f {
	case FloorNone, FloorSealed, FloorUnsealed:
		return true
	}
	return false
}

// VentilationMethod selects the regime used for the effective air change rate.
type VentilationMethod string

const (
	NaturalVentilation                  VentilationMethod = "natural_ventilation"
	PositiveInputVentilationFromLoft    VentilationMethod = "positive_input_ventilation_from_loft"
	PositiveInputVentilationFromOutside VentilationMethod = "positive_input_ventilation_from_outside"
	MechanicalVentilationNoHeatRecovery VentilationMethod = "mechanical_ventilation_no_heat_recovery"
	MechanicalVentilationHeatRecovery   VentilationMethod = "mechanical_ventilation_heat_recovery"
)

// AllVentilationMethods returns the allowed ventilation methods in a fixed order.
func AllVentilationMethods() []VentilationMethod {
	return []VentilationMethod{
		NaturalVentilation,
		PositiveInputVentilationFromLoft,
		PositiveInputVentilationFromOutside,
		MechanicalVentilationNoHeatRecovery,
		MechanicalVentilationHeatRecovery,
	}
}

func (v VentilationMethod) Valid() bool {
	switch v {
	case NaturalVentilation,
		PositiveInputVentilationFromLoft,
		PositiveInputVentilationFromOutside,
		MechanicalVentilationNoHeatRecovery,
		MechanicalVentilationHeatRecovery:
		return true
	}
	return false
}

type category interface {
	~string
	Valid() bool
}

// ValidateCategory checks every entry of a categorical column and reports all offending rows at once.
func ValidateCategory[T category](column string, values []T, allowed []T) error {
	var bad []int
	for i, v := range values {
		if !v.Valid() {
			bad = append(bad, i)
		}
	}
	if len(bad) == 0 {
		return nil
	}
	return InvalidValues(column, bad, Names(allowed))
}

// Names converts a list of categories into their string values.
func Names[T ~string](values []T) []string {
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = string(v)
	}
	return out
}
