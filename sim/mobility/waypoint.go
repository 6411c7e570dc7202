package mobility

import (
	"fmt"
	"math"

	"github.com/paulmach/orb/planar"
)

// RandomWaypoint picks destinations the same way Nomadic does, but a device
// also spends the travel time to its destination (planar distance / speed)
// before the exponential pause there begins. Occupancy counts the device at
// the destination from the moment it departs; positions in transit are not modeled.
type RandomWaypoint struct {
	c     *chain
	speed float64
}

// NewRandomWaypoint creates a random-waypoint model. cfg.WaypointSpeed must be positive.
func NewRandomWaypoint(cfg Config) (*RandomWaypoint, error) {
	if math.IsNaN(cfg.WaypointSpeed) || math.IsInf(cfg.WaypointSpeed, 0) || cfg.WaypointSpeed <= 0 {
		return nil, fmt.Errorf("waypoint speed %f: %w", cfg.WaypointSpeed, ErrInvalidSpeed)
	}
	m := &RandomWaypoint{c: newChain(cfg), speed: cfg.WaypointSpeed}
	m.c.handler = m.Relocate
	return m, nil
}

// TravelTime returns the time to move between catalog positions from and to.
func (m *RandomWaypoint) TravelTime(from, to int) float64 {
	a := m.c.cfg.Catalog.SiteAt(from).Coordinates
	b := m.c.cfg.Catalog.SiteAt(to).Coordinates
	return planar.Distance(a, b) / m.speed
}

// Initialize implements Model.
func (m *RandomWaypoint) Initialize(deviceCount int) error {
	return m.c.initialize(deviceCount)
}

// Relocate implements Model.
func (m *RandomWaypoint) Relocate(device int) {
	m.c.relocate(device, func(from, to int) float64 {
		return m.TravelTime(from, to) + m.c.dwell[to].Sample(m.c.cfg.RNG)
	})
}

// LocationOf implements Model.
func (m *RandomWaypoint) LocationOf(device int) Location {
	return m.c.locationOf(device)
}

// OccupancyOf implements Model.
func (m *RandomWaypoint) OccupancyOf(siteID int) int {
	return m.c.occupancyOf(siteID)
}
