package mobility

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/edge-mobility/mobility-sim/sim"
)

// ledger owns the per-device location table and the per-site occupancy counts.
// After every exported operation: sum(counts) == len(locations), and each
// device is counted exactly once, at the site its location names.
type ledger struct {
	catalog   sim.SiteCatalog
	locations []Location
	current   []int       // device → catalog position
	counts    []int       // catalog position → occupancy
	positions map[int]int // site ID → catalog position
}

func newLedger(catalog sim.SiteCatalog) *ledger {
	l := &ledger{
		catalog:   catalog,
		counts:    make([]int, catalog.SiteCount()),
		positions: make(map[int]int, catalog.SiteCount()),
	}
	for i := 0; i < catalog.SiteCount(); i++ {
		l.positions[catalog.SiteAt(i).ID] = i
	}
	return l
}

// place assigns a new device to the site at catalog position pos and returns the device index.
func (l *ledger) place(pos int) int {
	l.locations = append(l.locations, locationOf(l.catalog.SiteAt(pos)))
	l.current = append(l.current, pos)
	l.counts[pos]++
	return len(l.locations) - 1
}

// move reassigns device to the site at catalog position to.
func (l *ledger) move(device, to int) {
	from := l.current[device]
	l.counts[from]--
	l.counts[to]++
	l.current[device] = to
	l.locations[device] = locationOf(l.catalog.SiteAt(to))
}

func (l *ledger) occupancy(siteID int) int {
	pos, ok := l.positions[siteID]
	if !ok {
		return 0
	}
	return l.counts[pos]
}

// line renders the occupancy counts in catalog order, separated by ';'.
func (l *ledger) line() string {
	var b strings.Builder
	for i, c := range l.counts {
		if i > 0 {
			b.WriteByte(';')
		}
		b.WriteString(strconv.Itoa(c))
	}
	return b.String()
}

// pickOtherSite draws catalog positions uniformly until one differs from current.
// Requires n >= 2, which Initialize enforces.
func pickOtherSite(rng sim.RandomSource, n, current int) int {
	for {
		if pos := sim.UniformInt(rng, 0, n-1); pos != current {
			return pos
		}
	}
}

// CheckLedger verifies the conservation and single-owner properties of m:
// occupancy sums to deviceCount across the catalog, and each site's occupancy
// equals the number of devices whose location names it.
func CheckLedger(m Model, catalog sim.SiteCatalog, deviceCount int) error {
	known := make(map[int]bool, catalog.SiteCount())
	for i := 0; i < catalog.SiteCount(); i++ {
		known[catalog.SiteAt(i).ID] = true
	}
	reconstructed := make(map[int]int, catalog.SiteCount())
	for d := 0; d < deviceCount; d++ {
		id := m.LocationOf(d).SiteID
		if !known[id] {
			return fmt.Errorf("device %d is at unknown site %d", d, id)
		}
		reconstructed[id]++
	}
	total := 0
	for i := 0; i < catalog.SiteCount(); i++ {
		id := catalog.SiteAt(i).ID
		got := m.OccupancyOf(id)
		if got < 0 {
			return fmt.Errorf("site %d has negative occupancy %d", id, got)
		}
		if got != reconstructed[id] {
			return fmt.Errorf("site %d: ledger says %d devices, locations say %d", id, got, reconstructed[id])
		}
		total += got
	}
	if total != deviceCount {
		return fmt.Errorf("occupancy sums to %d, want %d", total, deviceCount)
	}
	return nil
}
