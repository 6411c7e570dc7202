// Package trace provides relocation-trace recording for mobility analysis.
// This package has no dependencies on sim/ or sim/mobility/; it stores pure data types.
package trace

// PlacementRecord captures a device's initial site.
type PlacementRecord struct {
	Device int
	SiteID int
}

// RelocationRecord captures a single relocation decision.
type RelocationRecord struct {
	Clock    float64 // simulated time of the move
	Device   int
	FromSite int
	ToSite   int
	Dwell    float64 // wait until the device's next relocation
}

// Transition identifies an ordered pair of sites.
type Transition struct {
	From int
	To   int
}
