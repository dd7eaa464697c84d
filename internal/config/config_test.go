package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"rc-building-model/internal/assess"
	"rc-building-model/internal/demand"
	"rc-building-model/internal/model"

	"github.com/google/go-cmp/cmp"
)

func writeFile(t *testing.T, dir, name, body string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

const irishClimate = `
demand:
  external_temperatures:
    jan: 5.0
    feb: 5.0
    mar: 6.0
    apr: 8.0
    may: 10.0
    jun: 13.0
    jul: 15.0
    aug: 15.0
    sep: 13.0
    oct: 10.0
    nov: 7.0
    dec: 5.5
`

func TestLoad_Defaults(t *testing.T) {
	path := writeFile(t, t.TempDir(), "empty.yaml", "{}\n")
	c, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if diff := cmp.Diff(assess.DefaultParams(), c.Params()); diff != "" {
		t.Errorf("empty config should resolve to defaults (-want +got):\n%s", diff)
	}
}

func TestLoad_OverridesAndProfilesFile(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "climate.yaml", irishClimate)
	path := writeFile(t, dir, "model.yaml", `
profiles_file: climate.yaml
fabric:
  thermal_bridging_factor: 0.08
ventilation:
  unknown_structure_rate: 0.25
  lenient_structure_type: true
demand:
  heating_season: [jan, feb, mar, nov, dec]
engine:
  chunk_size: 500
  workers: 2
`)
	c, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	p := c.Params()
	if p.Fabric.ThermalBridgingFactor != 0.08 {
		t.Errorf("expected bridging factor 0.08, got %v", p.Fabric.ThermalBridgingFactor)
	}
	if p.Ventilation.UnknownStructureRate != 0.25 || !p.Ventilation.LenientStructureType {
		t.Errorf("ventilation overrides not applied: %+v", p.Ventilation)
	}
	if p.Ventilation.MasonryRate != 0.35 {
		t.Errorf("unset rates should keep defaults, got masonry %v", p.Ventilation.MasonryRate)
	}
	if p.Demand.External.Get(time.March) != 6.0 {
		t.Errorf("external temperatures not loaded from profiles file: %v", p.Demand.External)
	}
	if p.Demand.Internal != demand.DefaultInternalTemperatures() {
		t.Errorf("internal temperatures should stay default: %v", p.Demand.Internal)
	}
	if len(p.Demand.Season.Months()) != 5 {
		t.Errorf("expected 5 season months, got %v", p.Demand.Season.Months())
	}
	if c.Engine.ChunkSize != 500 || c.Engine.Workers != 2 {
		t.Errorf("unexpected engine config %+v", c.Engine)
	}
}

func TestLoad_Invalid(t *testing.T) {
	dir := t.TempDir()
	tests := []struct {
		name string
		body string
	}{
		{"negative rate", "ventilation:\n  fan_rate: -1\n"},
		{"unknown method", "demand:\n  method: hourly\n"},
		{"partial profile", "demand:\n  internal_temperatures:\n    jan: 18\n"},
		{"negative workers", "engine:\n  workers: -2\n"},
		{"bad month", "demand:\n  heating_season: [winter]\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeFile(t, dir, "bad.yaml", tt.body)
			if _, err := Load(path); err == nil {
				t.Error("expected error")
			}
		})
	}

	path := writeFile(t, dir, "method.yaml", "demand:\n  method: hourly\n")
	if _, err := Load(path); !errors.Is(err, model.ErrValidation) {
		t.Errorf("unknown method should be a validation error, got %v", err)
	}
}

func TestMergeModel(t *testing.T) {
	inside := demand.DefaultInternalTemperatures()
	base := Config{
		Fabric:      FabricConfig{ThermalBridgingFactor: model.Float(0.08)},
		Ventilation: VentilationConfig{FanRate: model.Float(12), ChimneyRate: model.Float(35)},
		Demand:      DemandConfig{InternalTemperatures: &inside},
		Engine:      EngineConfig{ChunkSize: 100},
	}
	override := Config{
		Ventilation: VentilationConfig{FanRate: model.Float(15), ChimneyRate: model.Float(0)},
		Demand:      DemandConfig{Method: "monthly"},
	}
	got := MergeModel(base, override)
	if got.Fabric.ThermalBridgingFactor == nil || *got.Fabric.ThermalBridgingFactor != 0.08 {
		t.Errorf("unset override should keep base, got %v", got.Fabric.ThermalBridgingFactor)
	}
	p := got.Params()
	if p.Ventilation.FanRate != 15 || p.Ventilation.ChimneyRate != 0 {
		t.Errorf("expected fan 15 and chimney 0, got %+v", p.Ventilation)
	}
	if got.Demand.InternalTemperatures == nil || got.Demand.Method != "monthly" {
		t.Errorf("unexpected demand %+v", got.Demand)
	}
	if got.Engine.ChunkSize != 100 {
		t.Errorf("expected chunk size 100, got %d", got.Engine.ChunkSize)
	}
}

func TestLoad_ExplicitZeroRates(t *testing.T) {
	path := writeFile(t, t.TempDir(), "zero.yaml", `
fabric:
  thermal_bridging_factor: 0
ventilation:
  unknown_structure_rate: 0
`)
	c, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	p := c.Params()
	if p.Fabric.ThermalBridgingFactor != 0 {
		t.Errorf("expected bridging factor 0, got %v", p.Fabric.ThermalBridgingFactor)
	}
	if p.Ventilation.UnknownStructureRate != 0 {
		t.Errorf("expected unknown structure rate 0, got %v", p.Ventilation.UnknownStructureRate)
	}
	if p.Ventilation.MasonryRate != 0.35 {
		t.Errorf("unset rates should keep defaults, got masonry %v", p.Ventilation.MasonryRate)
	}
}

func TestLoadService(t *testing.T) {
	t.Setenv("API_PORT", "9090")
	t.Setenv("KAFKA_BROKERS", "k1:9092, k2:9092")
	t.Setenv("RESULT_CACHE_TTL", "5m")
	t.Setenv("KAFKA_CONSUMER_COUNT", "not-a-number")
	t.Setenv("RCBM_CONFIG", "")

	s := LoadService()
	if s.API.Port != "9090" {
		t.Errorf("expected port 9090, got %s", s.API.Port)
	}
	if diff := cmp.Diff([]string{"k1:9092", "k2:9092"}, s.Kafka.Brokers); diff != "" {
		t.Errorf("brokers mismatch (-want +got):\n%s", diff)
	}
	if s.ResultCacheTTL != 5*time.Minute {
		t.Errorf("expected 5m TTL, got %v", s.ResultCacheTTL)
	}
	if s.Kafka.ConsumerCount != 1 {
		t.Errorf("invalid int should fall back to default, got %d", s.Kafka.ConsumerCount)
	}

	m, err := s.LoadModel()
	if err != nil || m == nil {
		t.Fatalf("LoadModel without RCBM_CONFIG: %v", err)
	}
}
