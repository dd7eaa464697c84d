package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"rc-building-model/internal/assess"
	"rc-building-model/internal/demand"

	"gopkg.in/yaml.v3"
)

// Config is the on-disk model configuration (YAML).
// Every model coefficient left unset keeps the DEAP default; an explicit 0 is honored.
type Config struct {
	// Optional: load temperature profiles from a separate YAML (e.g. a site's climate file).
	// If both ProfilesFile and Demand are provided, Demand overrides ProfilesFile.
	ProfilesFile string            `yaml:"profiles_file,omitempty"`
	Fabric       FabricConfig      `yaml:"fabric,omitempty"`
	Ventilation  VentilationConfig `yaml:"ventilation,omitempty"`
	Demand       DemandConfig      `yaml:"demand,omitempty"`
	Engine       EngineConfig      `yaml:"engine,omitempty"`
}

type FabricConfig struct {
	ThermalBridgingFactor *float64 `yaml:"thermal_bridging_factor,omitempty" json:"thermal_bridging_factor,omitempty"`
}

type VentilationConfig struct {
	ChimneyRate          *float64 `yaml:"chimney_rate,omitempty" json:"chimney_rate,omitempty"`
	OpenFlueRate         *float64 `yaml:"open_flue_rate,omitempty" json:"open_flue_rate,omitempty"`
	FanRate              *float64 `yaml:"fan_rate,omitempty" json:"fan_rate,omitempty"`
	RoomHeaterRate       *float64 `yaml:"room_heater_rate,omitempty" json:"room_heater_rate,omitempty"`
	NoDraughtLobbyRate   *float64 `yaml:"no_draught_lobby_rate,omitempty" json:"no_draught_lobby_rate,omitempty"`
	StoreyRate           *float64 `yaml:"storey_rate,omitempty" json:"storey_rate,omitempty"`
	MasonryRate          *float64 `yaml:"masonry_rate,omitempty" json:"masonry_rate,omitempty"`
	TimberOrSteelRate    *float64 `yaml:"timber_or_steel_rate,omitempty" json:"timber_or_steel_rate,omitempty"`
	ConcreteRate         *float64 `yaml:"concrete_rate,omitempty" json:"concrete_rate,omitempty"`
	UnknownStructureRate *float64 `yaml:"unknown_structure_rate,omitempty" json:"unknown_structure_rate,omitempty"`
	SealedFloorRate      *float64 `yaml:"sealed_floor_rate,omitempty" json:"sealed_floor_rate,omitempty"`
	UnsealedFloorRate    *float64 `yaml:"unsealed_floor_rate,omitempty" json:"unsealed_floor_rate,omitempty"`
	DraughtBaseRate      *float64 `yaml:"draught_base_rate,omitempty" json:"draught_base_rate,omitempty"`
	DraughtStrippedRate  *float64 `yaml:"draught_stripped_rate,omitempty" json:"draught_stripped_rate,omitempty"`
	ShelterFactorPerSide *float64 `yaml:"shelter_factor_per_side,omitempty" json:"shelter_factor_per_side,omitempty"`
	LoftSupplyRate       *float64 `yaml:"loft_supply_rate,omitempty" json:"loft_supply_rate,omitempty"`
	HeatLossConstant     *float64 `yaml:"heat_loss_constant,omitempty" json:"heat_loss_constant,omitempty"`

	// Deprecated: see ventilation.Params.LenientStructureType.
	LenientStructureType bool `yaml:"lenient_structure_type,omitempty" json:"lenient_structure_type,omitempty"`
}

type DemandConfig struct {
	Method               string                 `yaml:"method,omitempty" json:"method,omitempty"`
	InternalTemperatures *demand.MonthlyProfile `yaml:"internal_temperatures,omitempty" json:"internal_temperatures,omitempty"`
	ExternalTemperatures *demand.MonthlyProfile `yaml:"external_temperatures,omitempty" json:"external_temperatures,omitempty"`
	HeatingSeason        *demand.Season         `yaml:"heating_season,omitempty" json:"heating_season,omitempty"`
}

type EngineConfig struct {
	ChunkSize int `yaml:"chunk_size,omitempty"`
	Workers   int `yaml:"workers,omitempty"`
}

func Load(path string) (*Config, error) {
	c, err := LoadUnchecked(path)
	if err != nil {
		return nil, err
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// LoadUnchecked loads and merges config, but does not validate it.
// Useful for debugging/printing partial configs.
func LoadUnchecked(path string) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var c Config
	if err := yaml.Unmarshal(raw, &c); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if c.ProfilesFile != "" {
		profilesPath := c.ProfilesFile
		if !filepath.IsAbs(profilesPath) {
			// Relative to the config file first, then to the working directory.
			cand := filepath.Join(filepath.Dir(path), profilesPath)
			if _, err := os.Stat(cand); err == nil {
				profilesPath = cand
			}
		}
		loaded, err := loadProfilesFile(profilesPath)
		if err != nil {
			return nil, err
		}
		c.Demand = MergeDemand(loaded, c.Demand)
	}
	return &c, nil
}

func (c *Config) Validate() error {
	if c == nil {
		return errors.New("config is nil")
	}
	if c.Engine.ChunkSize < 0 || c.Engine.Workers < 0 {
		return errors.New("engine.chunk_size and engine.workers must be >= 0")
	}
	if err := c.Params().Validate(); err != nil {
		return fmt.Errorf("model config invalid: %w", err)
	}
	return nil
}

// Params resolves the configuration onto the DEAP defaults.
func (c *Config) Params() assess.Params {
	p := assess.DefaultParams()
	if c == nil {
		return p
	}

	if c.Fabric.ThermalBridgingFactor != nil {
		p.Fabric.ThermalBridgingFactor = *c.Fabric.ThermalBridgingFactor
	}

	v, vc := &p.Ventilation, c.Ventilation
	for _, f := range []struct {
		dst *float64
		src *float64
	}{
		{&v.ChimneyRate, vc.ChimneyRate},
		{&v.OpenFlueRate, vc.OpenFlueRate},
		{&v.FanRate, vc.FanRate},
		{&v.RoomHeaterRate, vc.RoomHeaterRate},
		{&v.NoDraughtLobbyRate, vc.NoDraughtLobbyRate},
		{&v.StoreyRate, vc.StoreyRate},
		{&v.MasonryRate, vc.MasonryRate},
		{&v.TimberOrSteelRate, vc.TimberOrSteelRate},
		{&v.ConcreteRate, vc.ConcreteRate},
		{&v.UnknownStructureRate, vc.UnknownStructureRate},
		{&v.SealedFloorRate, vc.SealedFloorRate},
		{&v.UnsealedFloorRate, vc.UnsealedFloorRate},
		{&v.DraughtBaseRate, vc.DraughtBaseRate},
		{&v.DraughtStrippedRate, vc.DraughtStrippedRate},
		{&v.ShelterFactorPerSide, vc.ShelterFactorPerSide},
		{&v.LoftSupplyRate, vc.LoftSupplyRate},
		{&v.HeatLossConstant, vc.HeatLossConstant},
	} {
		if f.src != nil {
			*f.dst = *f.src
		}
	}
	v.LenientStructureType = vc.LenientStructureType

	d := c.Demand
	if d.Method != "" {
		p.Demand.Method = demand.Method(d.Method)
	}
	if d.InternalTemperatures != nil {
		p.Demand.Internal = *d.InternalTemperatures
	}
	if d.ExternalTemperatures != nil {
		p.Demand.External = *d.ExternalTemperatures
	}
	if d.HeatingSeason != nil {
		p.Demand.Season = *d.HeatingSeason
	}
	return p
}

type profilesFileWrapper struct {
	Demand DemandConfig `yaml:"demand"`
}

func loadProfilesFile(path string) (DemandConfig, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return DemandConfig{}, err
	}
	var w profilesFileWrapper
	if err := yaml.Unmarshal(raw, &w); err != nil {
		return DemandConfig{}, fmt.Errorf("parse %s: %w", path, err)
	}
	return w.Demand, nil
}

// MergeModel overlays the fields set in override onto base.
// This is used to apply per-request overrides on top of the service configuration.
func MergeModel(base, override Config) Config {
	out := base
	if override.Fabric.ThermalBridgingFactor != nil {
		out.Fabric.ThermalBridgingFactor = override.Fabric.ThermalBridgingFactor
	}
	out.Ventilation = MergeVentilation(base.Ventilation, override.Ventilation)
	out.Demand = MergeDemand(base.Demand, override.Demand)
	if override.Engine.ChunkSize != 0 {
		out.Engine.ChunkSize = override.Engine.ChunkSize
	}
	if override.Engine.Workers != 0 {
		out.Engine.Workers = override.Engine.Workers
	}
	return out
}

func MergeVentilation(base, override VentilationConfig) VentilationConfig {
	out := base
	for _, f := range []struct {
		dst **float64
		src *float64
	}{
		{&out.ChimneyRate, override.ChimneyRate},
		{&out.OpenFlueRate, override.OpenFlueRate},
		{&out.FanRate, override.FanRate},
		{&out.RoomHeaterRate, override.RoomHeaterRate},
		{&out.NoDraughtLobbyRate, override.NoDraughtLobbyRate},
		{&out.StoreyRate, override.StoreyRate},
		{&out.MasonryRate, override.MasonryRate},
		{&out.TimberOrSteelRate, override.TimberOrSteelRate},
		{&out.ConcreteRate, override.ConcreteRate},
		{&out.UnknownStructureRate, override.UnknownStructureRate},
		{&out.SealedFloorRate, override.SealedFloorRate},
		{&out.UnsealedFloorRate, override.UnsealedFloorRate},
		{&out.DraughtBaseRate, override.DraughtBaseRate},
		{&out.DraughtStrippedRate, override.DraughtStrippedRate},
		{&out.ShelterFactorPerSide, override.ShelterFactorPerSide},
		{&out.LoftSupplyRate, override.LoftSupplyRate},
		{&out.HeatLossConstant, override.HeatLossConstant},
	} {
		if f.src != nil {
			*f.dst = f.src
		}
	}
	if override.LenientStructureType {
		out.LenientStructureType = true
	}
	return out
}

func MergeDemand(base, override DemandConfig) DemandConfig {
	out := base
	if override.Method != "" {
		out.Method = override.Method
	}
	if override.InternalTemperatures != nil {
		out.InternalTemperatures = override.InternalTemperatures
	}
	if override.ExternalTemperatures != nil {
		out.ExternalTemperatures = override.ExternalTemperatures
	}
	if override.HeatingSeason != nil {
		out.HeatingSeason = override.HeatingSeason
	}
	return out
}
