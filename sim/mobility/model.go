package mobility

import (
	"errors"
	"fmt"
	"sort"

	"github.com/paulmach/orb"

	"github.com/edge-mobility/mobility-sim/sim"
)

// Model is the contract every mobility model variant implements.
// The simulation driver selects a variant by name and uses it only through
// these four operations.
type Model interface {
	// Initialize places deviceCount devices on random sites and schedules each
	// device's first relocation at the activation offset. Call once.
	Initialize(deviceCount int) error
	// Relocate moves one device to a different site and schedules its next
	// relocation. It is the handler the scheduler invokes.
	Relocate(device int)
	// LocationOf returns the device's current assignment.
	LocationOf(device int) Location
	// OccupancyOf returns the number of devices currently at siteID (0 for unknown IDs).
	OccupancyOf(siteID int) int
}

// Location is a device's current site assignment. The site's attributes are
// copied at assignment time so lookups never touch the catalog.
type Location struct {
	SiteID              int
	AttractivenessClass int
	Coordinates         orb.Point
}

func locationOf(s sim.Site) Location {
	return Location{SiteID: s.ID, AttractivenessClass: s.AttractivenessClass, Coordinates: s.Coordinates}
}

// Observer is notified after every ledger mutation.
// *sim.Metrics and *trace.Recorder implement it.
type Observer interface {
	ObservePlacement(device, siteID int)
	ObserveRelocation(now float64, device, fromSite, toSite int, dwell float64)
}

// Config carries the collaborators a model is built from.
type Config struct {
	Catalog          sim.SiteCatalog
	DwellTable       sim.DwellTable
	ActivationOffset float64 // simulated time of every device's first relocation
	Scheduler        sim.Scheduler
	RNG              sim.RandomSource
	Log              sim.LineWriter // occupancy lines; defaults to a logrus writer
	Observers        []Observer
	WaypointSpeed    float64 // distance units per simulated second (random-waypoint only)
}

// Errors returned by Initialize and New.
var (
	ErrNegativeDeviceCount = errors.New("device count must be non-negative")
	ErrEmptyCatalog        = errors.New("site catalog is empty")
	ErrSingleSite          = errors.New("at least two sites are required to relocate")
	ErrUnknownClass        = errors.New("attractiveness class has no mean dwell time")
	ErrAlreadyInitialized  = errors.New("model already initialized")
	ErrInvalidSpeed        = errors.New("waypoint speed must be a finite positive number")
	ErrInvalidOffset       = errors.New("activation offset must be a finite non-negative number")
)

// Model names.
const (
	NameNomadic        = "nomadic"
	NameRandomWaypoint = "random-waypoint"
)

var validModels = map[string]bool{
	NameNomadic:        true,
	NameRandomWaypoint: true,
}

// IsValidModel reports whether name is a registered mobility model.
func IsValidModel(name string) bool {
	return validModels[name]
}

// ValidModelNames returns the registered model names, sorted.
func ValidModelNames() []string {
	names := make([]string, 0, len(validModels))
	for name := range validModels {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// New creates the named mobility model.
func New(name string, cfg Config) (Model, error) {
	if cfg.Catalog == nil || cfg.Scheduler == nil || cfg.RNG == nil {
		return nil, fmt.Errorf("mobility model %q: catalog, scheduler and rng are required", name)
	}
	switch name {
	case NameNomadic:
		return NewNomadic(cfg), nil
	case NameRandomWaypoint:
		return NewRandomWaypoint(cfg)
	default:
		return nil, fmt.Errorf("unknown mobility model %q; valid: %v", name, ValidModelNames())
	}
}
