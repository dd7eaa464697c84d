package assess

import (
	"fmt"

	"rc-building-model/internal/demand"
	"rc-building-model/internal/fabric"
	"rc-building-model/internal/ventilation"
)

// Params bundles the constants of every calculator the engine runs.
type Params struct {
	Fabric      fabric.Params
	Ventilation ventilation.Params
	Demand      demand.Params
}

func DefaultParams() Params {
	return Params{
		Fabric:      fabric.DefaultParams(),
		Ventilation: ventilation.DefaultParams(),
		Demand:      demand.DefaultParams(),
	}
}

func (p Params) Validate() error {
	if err := p.Fabric.Validate(); err != nil {
		return fmt.Errorf("fabric: %w", err)
	}
	if err := p.Ventilation.Validate(); err != nil {
		return fmt.Errorf("ventilation: %w", err)
	}
	if err := p.Demand.Validate(); err != nil {
		return fmt.Errorf("demand: %w", err)
	}
	return nil
}
