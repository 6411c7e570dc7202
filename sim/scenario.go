package sim

import (
	"bytes"
	"fmt"
	"math"
	"os"

	"github.com/paulmach/orb"
	"gopkg.in/yaml.v3"
)

// Scenario is the top-level simulation configuration.
// Loaded from YAML via LoadScenario(path).
type Scenario struct {
	Version          string          `yaml:"version"`
	Seed             int64           `yaml:"seed"`
	Horizon          float64         `yaml:"horizon"`           // simulated seconds
	Devices          int             `yaml:"devices"`           // mobile device population
	Model            string          `yaml:"model"`             // mobility model name (default "nomadic")
	ActivationOffset float64         `yaml:"activation_offset"` // time of every device's first relocation
	WaypointSpeed    float64         `yaml:"waypoint_speed,omitempty"`
	TraceLevel       string          `yaml:"trace_level,omitempty"`
	DwellMeans       map[int]float64 `yaml:"dwell_means"` // attractiveness class → mean dwell time
	Sites            []SiteSpec      `yaml:"sites"`
}

// SiteSpec is the YAML form of a Site.
type SiteSpec struct {
	ID             int     `yaml:"id"`
	Attractiveness int     `yaml:"attractiveness"`
	X              float64 `yaml:"x"`
	Y              float64 `yaml:"y"`
}

// LoadScenario reads and parses a YAML scenario file.
// Uses strict parsing: unrecognized keys (typos) are rejected.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading scenario: %w", err)
	}
	return ParseScenario(data)
}

// ParseScenario decodes a YAML scenario document.
func ParseScenario(data []byte) (*Scenario, error) {
	var s Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&s); err != nil {
		return nil, fmt.Errorf("parsing scenario: %w", err)
	}
	if s.Model == "" {
		s.Model = "nomadic"
	}
	return &s, nil
}

// Validate checks that all fields in the scenario are usable.
// The model name is checked by the caller against the mobility registry.
func (s *Scenario) Validate() error {
	if s.Devices < 0 {
		return fmt.Errorf("devices must be non-negative, got %d", s.Devices)
	}
	if err := validateFinitePositive("horizon", s.Horizon); err != nil {
		return err
	}
	if math.IsNaN(s.ActivationOffset) || math.IsInf(s.ActivationOffset, 0) || s.ActivationOffset < 0 {
		return fmt.Errorf("activation_offset must be a finite non-negative number, got %f", s.ActivationOffset)
	}
	if s.WaypointSpeed != 0 {
		if err := validateFinitePositive("waypoint_speed", s.WaypointSpeed); err != nil {
			return err
		}
	}
	if len(s.Sites) < 2 {
		return fmt.Errorf("at least two sites required, got %d", len(s.Sites))
	}
	if err := s.DwellTable().Validate(); err != nil {
		return err
	}
	for i, site := range s.Sites {
		if _, ok := s.DwellMeans[site.Attractiveness]; !ok {
			return fmt.Errorf("site[%d]: attractiveness %d has no entry in dwell_means", i, site.Attractiveness)
		}
	}
	if _, err := s.Catalog(); err != nil {
		return err
	}
	return nil
}

// Catalog builds the in-memory site catalog described by the scenario.
func (s *Scenario) Catalog() (*Catalog, error) {
	sites := make([]Site, len(s.Sites))
	for i, spec := range s.Sites {
		sites[i] = Site{
			ID:                  spec.ID,
			AttractivenessClass: spec.Attractiveness,
			Coordinates:         orb.Point{spec.X, spec.Y},
		}
	}
	return NewCatalog(sites)
}

// DwellTable returns the scenario's class → mean dwell time table.
func (s *Scenario) DwellTable() DwellTable {
	return DwellTable(s.DwellMeans)
}

func validateFinitePositive(name string, val float64) error {
	if math.IsNaN(val) || math.IsInf(val, 0) {
		return fmt.Errorf("%s must be a finite number, got %f", name, val)
	}
	if val <= 0 {
		return fmt.Errorf("%s must be positive, got %f", name, val)
	}
	return nil
}
