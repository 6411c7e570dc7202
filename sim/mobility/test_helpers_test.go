package mobility

import (
	"math/rand"
	"testing"

	"github.com/paulmach/orb"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/edge-mobility/mobility-sim/sim"
)

// threeSiteCatalog returns sites 0..2 with classes 0..2 at distinct coordinates.
func threeSiteCatalog(t *testing.T) *sim.Catalog {
	t.Helper()
	c, err := sim.NewCatalog([]sim.Site{
		{ID: 0, AttractivenessClass: 0, Coordinates: orb.Point{0, 0}},
		{ID: 1, AttractivenessClass: 1, Coordinates: orb.Point{30, 40}},
		{ID: 2, AttractivenessClass: 2, Coordinates: orb.Point{60, 80}},
	})
	require.NoError(t, err)
	return c
}

// threeClassTable maps classes 0, 1, 2 to means 10, 5, 20.
func threeClassTable() sim.DwellTable {
	return sim.DwellTable{0: 10, 1: 5, 2: 20}
}

type scheduledCall struct {
	at      float64
	delay   float64
	device  int
	handler sim.DeviceHandler
}

// recordingScheduler records every ScheduleAfter call without running anything.
type recordingScheduler struct {
	now   float64
	calls []scheduledCall
}

func (s *recordingScheduler) Now() float64 { return s.now }

func (s *recordingScheduler) ScheduleAfter(delay float64, h sim.DeviceHandler, device int) {
	s.calls = append(s.calls, scheduledCall{at: s.now + delay, delay: delay, device: device, handler: h})
}

func (s *recordingScheduler) callsFor(device int) []scheduledCall {
	var out []scheduledCall
	for _, c := range s.calls {
		if c.device == device {
			out = append(out, c)
		}
	}
	return out
}

// mockScheduler is a testify mock of sim.Scheduler.
type mockScheduler struct {
	mock.Mock
}

func (m *mockScheduler) Now() float64 {
	args := m.Called()
	return args.Get(0).(float64)
}

func (m *mockScheduler) ScheduleAfter(delay float64, h sim.DeviceHandler, device int) {
	m.Called(delay, h, device)
}

// recordingLog keeps every line written.
type recordingLog struct {
	lines []string
}

func (l *recordingLog) WriteLine(text string) { l.lines = append(l.lines, text) }

func newTestConfig(t *testing.T, sched sim.Scheduler, seed int64) Config {
	t.Helper()
	return Config{
		Catalog:          threeSiteCatalog(t),
		DwellTable:       threeClassTable(),
		ActivationOffset: 10,
		Scheduler:        sched,
		RNG:              rand.New(rand.NewSource(seed)),
		Log:              sim.DiscardLineWriter{},
	}
}

// occupancyTotal sums OccupancyOf over the catalog.
func occupancyTotal(m Model, c sim.SiteCatalog) int {
	total := 0
	for i := 0; i < c.SiteCount(); i++ {
		total += m.OccupancyOf(c.SiteAt(i).ID)
	}
	return total
}
