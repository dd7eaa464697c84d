// Package survey loads building surveys from JSON or CSV files into a columnar batch.
package survey

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"rc-building-model/internal/model"
)

// Document is the JSON shape of a survey file.
type Document struct {
	Buildings []Record `json:"buildings"`
}

// Load reads a survey, choosing the format from the file extension.
func Load(path string) (model.Buildings, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return LoadJSON(path)
	case ".csv":
		return LoadCSV(path)
	default:
		return model.Buildings{}, fmt.Errorf("unsupported survey format %q (want .json or .csv)", filepath.Ext(path))
	}
}

func LoadJSON(path string) (model.Buildings, error) {
	f, err := os.Open(path)
	if err != nil {
		return model.Buildings{}, err
	}
	defer f.Close()
	return DecodeJSON(f)
}

func DecodeJSON(r io.Reader) (model.Buildings, error) {
	var doc Document
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return model.Buildings{}, fmt.Errorf("decode survey: %w", err)
	}
	rows, err := Resolve(doc.Buildings)
	if err != nil {
		return model.Buildings{}, err
	}
	return model.Columns(rows), nil
}

func LoadCSV(path string) (model.Buildings, error) {
	f, err := os.Open(path)
	if err != nil {
		return model.Buildings{}, err
	}
	defer f.Close()
	return DecodeCSV(f)
}

// DecodeCSV reads a survey with a header row of column names. Unknown columns are ignored.
// An empty cell is a missing value: NaN for measurements (the same as a field absent from
// JSON), unmeasured for the permeability test result, zero for counts and false for flags.
func DecodeCSV(r io.Reader) (model.Buildings, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true
	header, err := cr.Read()
	if err != nil {
		return model.Buildings{}, fmt.Errorf("read survey header: %w", err)
	}

	setters := make([]fieldSetter, len(header))
	for i, name := range header {
		setters[i] = csvFields[strings.ToLower(strings.TrimSpace(name))]
	}

	var records []Record
	for line := 2; ; line++ {
		cells, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return model.Buildings{}, fmt.Errorf("read survey: %w", err)
		}
		rec := Record{Building: model.Building{PermeabilityTestResult: model.Unmeasured()}}
		for i, cell := range cells {
			if i >= len(setters) || setters[i] == nil {
				continue
			}
			if err := setters[i](&rec, strings.TrimSpace(cell)); err != nil {
				return model.Buildings{}, fmt.Errorf("line %d, column %s: %w", line, header[i], err)
			}
		}
		records = append(records, rec)
	}

	rows, err := Resolve(records)
	if err != nil {
		return model.Buildings{}, err
	}
	return model.Columns(rows), nil
}

type fieldSetter func(r *Record, cell string) error

func floatField(get func(r *Record) *float64) fieldSetter {
	return func(r *Record, cell string) error {
		v, err := parseFloat(cell)
		if err != nil {
			return err
		}
		*get(r) = v
		return nil
	}
}

func optionalField(get func(r *Record) **float64) fieldSetter {
	return func(r *Record, cell string) error {
		if cell == "" {
			*get(r) = nil
			return nil
		}
		v, err := parseFloat(cell)
		if err != nil {
			return err
		}
		*get(r) = &v
		return nil
	}
}

func intField(get func(r *Record) *int) fieldSetter {
	return func(r *Record, cell string) error {
		if cell == "" {
			*get(r) = 0
			return nil
		}
		v, err := strconv.Atoi(cell)
		if err != nil {
			// spreadsheets export whole numbers as "2.0"
			f, ferr := strconv.ParseFloat(cell, 64)
			if ferr != nil || f != math.Trunc(f) {
				return fmt.Errorf("not an integer: %q", cell)
			}
			v = int(f)
		}
		*get(r) = v
		return nil
	}
}

func stringField(set func(r *Record, s string)) fieldSetter {
	return func(r *Record, cell string) error {
		set(r, cell)
		return nil
	}
}

func parseFloat(cell string) (float64, error) {
	if cell == "" {
		return math.NaN(), nil
	}
	v, err := strconv.ParseFloat(cell, 64)
	if err != nil {
		return 0, fmt.Errorf("not a number: %q", cell)
	}
	return v, nil
}

var csvFields = map[string]fieldSetter{
	"id": stringField(func(r *Record, s string) { r.ID = s }),

	"roof_area":     floatField(func(r *Record) *float64 { return &r.RoofArea }),
	"roof_uvalue":   floatField(func(r *Record) *float64 { return &r.RoofUValue }),
	"wall_area":     floatField(func(r *Record) *float64 { return &r.WallArea }),
	"wall_uvalue":   floatField(func(r *Record) *float64 { return &r.WallUValue }),
	"floor_area":    floatField(func(r *Record) *float64 { return &r.FloorArea }),
	"floor_uvalue":  floatField(func(r *Record) *float64 { return &r.FloorUValue }),
	"window_area":   floatField(func(r *Record) *float64 { return &r.WindowArea }),
	"window_uvalue": floatField(func(r *Record) *float64 { return &r.WindowUValue }),
	"door_area":     floatField(func(r *Record) *float64 { return &r.DoorArea }),
	"door_uvalue":   floatField(func(r *Record) *float64 { return &r.DoorUValue }),

	"total_floor_area": optionalField(func(r *Record) **float64 { return &r.TotalFloorArea }),
	"building_volume":  optionalField(func(r *Record) **float64 { return &r.BuildingVolume }),

	"no_of_chimneys":     intField(func(r *Record) *int { return &r.NoChimneys }),
	"no_of_open_flues":   intField(func(r *Record) *int { return &r.NoOpenFlues }),
	"no_of_fans":         intField(func(r *Record) *int { return &r.NoFans }),
	"no_of_room_heaters": intField(func(r *Record) *int { return &r.NoRoomHeaters }),
	"no_of_storeys":      intField(func(r *Record) *int { return &r.NoStoreys }),
	"no_sides_sheltered": intField(func(r *Record) *int { return &r.NoSidesSheltered }),
	"is_draught_lobby": func(r *Record, cell string) error {
		if cell == "" {
			r.IsDraughtLobby = false
			return nil
		}
		v, err := strconv.ParseBool(strings.ToLower(cell))
		if err != nil {
			return fmt.Errorf("not a boolean: %q", cell)
		}
		r.IsDraughtLobby = v
		return nil
	},
	"permeability_test_result": func(r *Record, cell string) error {
		v, err := parseFloat(cell)
		if err != nil {
			return err
		}
		r.PermeabilityTestResult = model.PermeabilityFromPointer(&v)
		return nil
	},
	"percentage_draught_stripped": optionalField(func(r *Record) **float64 { return &r.PercentageDraughtStripped }),
	"heat_exchanger_efficiency":   optionalField(func(r *Record) **float64 { return &r.HeatExchangerEfficiency }),

	"floor_suspension": stringField(func(r *Record, s string) { r.FloorSuspension = model.FloorSuspension(s) }),
	"structure_type":   stringField(func(r *Record, s string) { r.StructureType = model.StructureType(s) }),
	"ventilation_method": stringField(func(r *Record, s string) {
		r.VentilationMethod = model.VentilationMethod(s)
	}),

	"ground_floor_area":    optionalField(func(r *Record) **float64 { return &r.GroundFloorArea }),
	"ground_floor_height":  optionalField(func(r *Record) **float64 { return &r.GroundFloorHeight }),
	"first_floor_area":     optionalField(func(r *Record) **float64 { return &r.FirstFloorArea }),
	"first_floor_height":   optionalField(func(r *Record) **float64 { return &r.FirstFloorHeight }),
	"second_floor_area":    optionalField(func(r *Record) **float64 { return &r.SecondFloorArea }),
	"second_floor_height":  optionalField(func(r *Record) **float64 { return &r.SecondFloorHeight }),
	"third_floor_area":     optionalField(func(r *Record) **float64 { return &r.ThirdFloorArea }),
	"third_floor_height":   optionalField(func(r *Record) **float64 { return &r.ThirdFloorHeight }),
	"assumed_floor_height": optionalField(func(r *Record) **float64 { return &r.AssumedFloorHeight }),
}
