// Tracks simulation-wide and per-site occupancy statistics such as:
// relocation counts, arrivals/departures, and time-weighted mean occupancy.

package sim

import (
	"fmt"
	"io"

	"github.com/google/uuid"
)

// siteStats accumulates occupancy for one site.
type siteStats struct {
	count      int
	peak       int
	arrivals   int
	departures int
	area       float64 // ∫ count dt
	lastChange float64
}

func (s *siteStats) advance(now float64) {
	s.area += float64(s.count) * (now - s.lastChange)
	s.lastChange = now
}

// Metrics aggregates occupancy statistics for final reporting.
// It implements the mobility observer methods (ObservePlacement, ObserveRelocation).
type Metrics struct {
	RunID        string
	Relocations  int
	DwellSum     float64 // sum of all sampled dwell times
	SimEndedTime float64

	order []int // site IDs in catalog order
	sites map[int]*siteStats
}

// NewMetrics creates Metrics tracking every site in catalog.
func NewMetrics(catalog SiteCatalog) *Metrics {
	m := &Metrics{
		RunID: newRunID(),
		order: make([]int, catalog.SiteCount()),
		sites: make(map[int]*siteStats, catalog.SiteCount()),
	}
	for i := 0; i < catalog.SiteCount(); i++ {
		id := catalog.SiteAt(i).ID
		m.order[i] = id
		m.sites[id] = &siteStats{}
	}
	return m
}

func newRunID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}

// ObservePlacement records a device's initial site at time zero.
func (m *Metrics) ObservePlacement(device, siteID int) {
	s := m.sites[siteID]
	s.count++
	s.peak = max(s.peak, s.count)
}

// ObserveRelocation records a device moving between sites at time now.
func (m *Metrics) ObserveRelocation(now float64, device, fromSite, toSite int, dwell float64) {
	from, to := m.sites[fromSite], m.sites[toSite]
	from.advance(now)
	to.advance(now)
	from.count--
	from.departures++
	to.count++
	to.arrivals++
	to.peak = max(to.peak, to.count)
	m.Relocations++
	m.DwellSum += dwell
}

// Finalize closes the occupancy integrals at end.
func (m *Metrics) Finalize(end float64) {
	m.SimEndedTime = end
	for _, s := range m.sites {
		s.advance(end)
	}
}

// SiteSummary is the per-site section of a RunSummary.
type SiteSummary struct {
	SiteID        int     `json:"site_id" cbor:"site_id"`
	FinalCount    int     `json:"final_count" cbor:"final_count"`
	PeakCount     int     `json:"peak_count" cbor:"peak_count"`
	MeanOccupancy float64 `json:"mean_occupancy" cbor:"mean_occupancy"`
	Arrivals      int     `json:"arrivals" cbor:"arrivals"`
	Departures    int     `json:"departures" cbor:"departures"`
}

// RunSummary is the exported result of one simulation run.
type RunSummary struct {
	RunID        string        `json:"run_id" cbor:"run_id"`
	Model        string        `json:"model" cbor:"model"`
	Seed         int64         `json:"seed" cbor:"seed"`
	Devices      int           `json:"devices" cbor:"devices"`
	SimEndedTime float64       `json:"sim_ended_time" cbor:"sim_ended_time"`
	Relocations  int           `json:"relocations" cbor:"relocations"`
	MeanDwell    float64       `json:"mean_dwell" cbor:"mean_dwell"`
	Sites        []SiteSummary `json:"sites" cbor:"sites"`
}

// Summary builds a RunSummary in catalog order. Call Finalize first.
func (m *Metrics) Summary(model string, seed int64, devices int) RunSummary {
	rs := RunSummary{
		RunID:        m.RunID,
		Model:        model,
		Seed:         seed,
		Devices:      devices,
		SimEndedTime: m.SimEndedTime,
		Relocations:  m.Relocations,
		Sites:        make([]SiteSummary, 0, len(m.order)),
	}
	if m.Relocations > 0 {
		rs.MeanDwell = m.DwellSum / float64(m.Relocations)
	}
	for _, id := range m.order {
		s := m.sites[id]
		ss := SiteSummary{
			SiteID:     id,
			FinalCount: s.count,
			PeakCount:  s.peak,
			Arrivals:   s.arrivals,
			Departures: s.departures,
		}
		if m.SimEndedTime > 0 {
			ss.MeanOccupancy = s.area / m.SimEndedTime
		}
		rs.Sites = append(rs.Sites, ss)
	}
	return rs
}

// Print writes a human-readable report of rs to w.
func (rs RunSummary) Print(w io.Writer) {
	fmt.Fprintln(w, "=== Simulation Metrics ===")
	fmt.Fprintf(w, "Run ID               : %s\n", rs.RunID)
	fmt.Fprintf(w, "Model                : %s\n", rs.Model)
	fmt.Fprintf(w, "Devices              : %d\n", rs.Devices)
	fmt.Fprintf(w, "Simulated Time       : %.2f s\n", rs.SimEndedTime)
	fmt.Fprintf(w, "Relocations          : %d\n", rs.Relocations)
	if rs.Relocations > 0 {
		fmt.Fprintf(w, "Average Dwell        : %.2f s\n", rs.MeanDwell)
	}
	for _, s := range rs.Sites {
		fmt.Fprintf(w, "Site %-4d : final=%d peak=%d mean=%.2f in=%d out=%d\n",
			s.SiteID, s.FinalCount, s.PeakCount, s.MeanOccupancy, s.Arrivals, s.Departures)
	}
}
