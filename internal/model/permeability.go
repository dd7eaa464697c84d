package model

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
)

// Permeability is the outcome of an air permeability (blower door) test.
// A building either has a measured result or it was never tested; there is no sentinel value.
type Permeability struct {
	value    float64
	measured bool
}

// Measured returns a tested permeability in air changes per hour.
func Measured(ach float64) Permeability {
	return Permeability{value: ach, measured: true}
}

// Unmeasured returns the permeability of an untested building.
func Unmeasured() Permeability {
	return Permeability{}
}

// Value returns the measured result and whether one exists.
func (p Permeability) Value() (float64, bool) {
	return p.value, p.measured
}

func (p Permeability) IsMeasured() bool { return p.measured }

func (p Permeability) String() string {
	if !p.measured {
		return "unmeasured"
	}
	return fmt.Sprintf("%g", p.value)
}

// MarshalJSON encodes an untested building as null.
func (p Permeability) MarshalJSON() ([]byte, error) {
	if !p.measured {
		return []byte("null"), nil
	}
	return json.Marshal(p.value)
}

func (p *Permeability) UnmarshalJSON(raw []byte) error {
	if bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
		*p = Unmeasured()
		return nil
	}
	var v float64
	if err := json.Unmarshal(raw, &v); err != nil {
		return fmt.Errorf("permeability_test_result: %w", err)
	}
	*p = Measured(v)
	return nil
}

// PermeabilityFromPointer maps an optional value (e.g. a nullable column) onto the sum type.
// NaN is treated as "not measured" since that is how spreadsheet exports encode blanks.
func PermeabilityFromPointer(v *float64) Permeability {
	if v == nil || math.IsNaN(*v) {
		return Unmeasured()
	}
	return Measured(*v)
}
