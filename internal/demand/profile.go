package demand

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// MonthlyProfile holds one value per calendar month, January first.
// It encodes as an object keyed jan..dec; decoding requires all twelve keys.
type MonthlyProfile [12]float64

// Get returns the value for month m.
func (p MonthlyProfile) Get(m time.Month) float64 { return p[m-1] }

// Sub returns p - q month by month.
func (p MonthlyProfile) Sub(q MonthlyProfile) MonthlyProfile {
	var out MonthlyProfile
	for i := range p {
		out[i] = p[i] - q[i]
	}
	return out
}

// monthKey is the encoding key for a month, "jan" for time.January.
func monthKey(m time.Month) string {
	return strings.ToLower(m.String()[:3])
}

// monthFields is the keyed form of a profile. Pointers distinguish a missing month from zero.
type monthFields struct {
	Jan *float64 `json:"jan" yaml:"jan"`
	Feb *float64 `json:"feb" yaml:"feb"`
	Mar *float64 `json:"mar" yaml:"mar"`
	Apr *float64 `json:"apr" yaml:"apr"`
	May *float64 `json:"may" yaml:"may"`
	Jun *float64 `json:"jun" yaml:"jun"`
	Jul *float64 `json:"jul" yaml:"jul"`
	Aug *float64 `json:"aug" yaml:"aug"`
	Sep *float64 `json:"sep" yaml:"sep"`
	Oct *float64 `json:"oct" yaml:"oct"`
	Nov *float64 `json:"nov" yaml:"nov"`
	Dec *float64 `json:"dec" yaml:"dec"`
}

func (f *monthFields) slots() [12]**float64 {
	return [12]**float64{
		&f.Jan, &f.Feb, &f.Mar, &f.Apr, &f.May, &f.Jun,
		&f.Jul, &f.Aug, &f.Sep, &f.Oct, &f.Nov, &f.Dec,
	}
}

func (p MonthlyProfile) fields() monthFields {
	var f monthFields
	for i, slot := range f.slots() {
		v := p[i]
		*slot = &v
	}
	return f
}

func (p *MonthlyProfile) setFields(f monthFields) error {
	var missing []string
	var out MonthlyProfile
	for i, slot := range f.slots() {
		if *slot == nil {
			missing = append(missing, monthKey(time.Month(i+1)))
			continue
		}
		out[i] = **slot
	}
	if len(missing) > 0 {
		return fmt.Errorf("monthly profile is missing %s", strings.Join(missing, ", "))
	}
	*p = out
	return nil
}

func (p MonthlyProfile) MarshalJSON() ([]byte, error) {
	return json.Marshal(p.fields())
}

func (p *MonthlyProfile) UnmarshalJSON(raw []byte) error {
	var f monthFields
	if err := json.Unmarshal(raw, &f); err != nil {
		return err
	}
	return p.setFields(f)
}

func (p MonthlyProfile) MarshalYAML() (interface{}, error) {
	return p.fields(), nil
}

func (p *MonthlyProfile) UnmarshalYAML(value *yaml.Node) error {
	var f monthFields
	if err := value.Decode(&f); err != nil {
		return err
	}
	return p.setFields(f)
}

// DefaultInternalTemperatures are the DEAP adjusted mean internal temperatures in °C.
func DefaultInternalTemperatures() MonthlyProfile {
	return MonthlyProfile{17.72, 17.73, 17.85, 17.95, 18.15, 18.35, 18.50, 18.48, 18.33, 18.11, 17.88, 17.77}
}

// DefaultExternalTemperatures are the DEAP mean monthly external temperatures in °C.
func DefaultExternalTemperatures() MonthlyProfile {
	return MonthlyProfile{5.3, 5.5, 7.0, 8.3, 11.0, 13.5, 15.5, 15.2, 13.3, 10.4, 7.5, 6.0}
}

// HoursPerMonth returns calendar hours for a non-leap year.
func HoursPerMonth() MonthlyProfile {
	var out MonthlyProfile
	for m := time.January; m <= time.December; m++ {
		// day 0 of the next month is the last day of this one
		days := time.Date(2023, m+1, 0, 0, 0, 0, 0, time.UTC).Day()
		out[m-1] = float64(days * 24)
	}
	return out
}

// Season marks the months that contribute to annual demand.
type Season [12]bool

// SeasonOf builds a season from a list of months.
func SeasonOf(months ...time.Month) Season {
	var s Season
	for _, m := range months {
		s[m-1] = true
	}
	return s
}

// HeatingSeason is January to May and October to December.
func HeatingSeason() Season {
	return SeasonOf(
		time.January, time.February, time.March, time.April, time.May,
		time.October, time.November, time.December,
	)
}

// AllYear includes every month.
func AllYear() Season {
	var s Season
	for i := range s {
		s[i] = true
	}
	return s
}

func (s Season) Contains(m time.Month) bool { return s[m-1] }

// Months lists the included months in calendar order.
func (s Season) Months() []time.Month {
	var out []time.Month
	for i, in := range s {
		if in {
			out = append(out, time.Month(i+1))
		}
	}
	return out
}

// Mask zeroes the months of p outside s.
func (s Season) Mask(p MonthlyProfile) MonthlyProfile {
	var out MonthlyProfile
	for i, in := range s {
		if in {
			out[i] = p[i]
		}
	}
	return out
}

func (s Season) MarshalJSON() ([]byte, error) {
	keys := make([]string, 0, 12)
	for _, m := range s.Months() {
		keys = append(keys, monthKey(m))
	}
	return json.Marshal(keys)
}

func (s *Season) UnmarshalJSON(raw []byte) error {
	var keys []string
	if err := json.Unmarshal(raw, &keys); err != nil {
		return err
	}
	out, err := parseSeason(keys)
	if err != nil {
		return err
	}
	*s = out
	return nil
}

func (s Season) MarshalYAML() (interface{}, error) {
	keys := make([]string, 0, 12)
	for _, m := range s.Months() {
		keys = append(keys, monthKey(m))
	}
	return keys, nil
}

func (s *Season) UnmarshalYAML(value *yaml.Node) error {
	var keys []string
	if err := value.Decode(&keys); err != nil {
		return err
	}
	out, err := parseSeason(keys)
	if err != nil {
		return err
	}
	*s = out
	return nil
}

// ParseMonth accepts the three-letter key of a month, case-insensitively.
func ParseMonth(key string) (time.Month, error) {
	k := strings.ToLower(strings.TrimSpace(key))
	for m := time.January; m <= time.December; m++ {
		if monthKey(m) == k {
			return m, nil
		}
	}
	return 0, fmt.Errorf("unknown month %q", key)
}

func parseSeason(keys []string) (Season, error) {
	var s Season
	for _, k := range keys {
		m, err := ParseMonth(k)
		if err != nil {
			return Season{}, err
		}
		s[m-1] = true
	}
	return s, nil
}
