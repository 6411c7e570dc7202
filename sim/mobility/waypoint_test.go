package mobility

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edge-mobility/mobility-sim/sim"
)

func TestRandomWaypoint_TravelTime_PlanarDistanceOverSpeed(t *testing.T) {
	cfg := newTestConfig(t, &recordingScheduler{}, 1)
	cfg.WaypointSpeed = 10
	m, err := NewRandomWaypoint(cfg)
	require.NoError(t, err)

	// sites are at (0,0), (30,40), (60,80)
	assert.InDelta(t, 5.0, m.TravelTime(0, 1), 1e-9)
	assert.InDelta(t, 5.0, m.TravelTime(2, 1), 1e-9)
	assert.InDelta(t, 10.0, m.TravelTime(0, 2), 1e-9)
}

func TestNewRandomWaypoint_InvalidSpeed_Rejected(t *testing.T) {
	for _, speed := range []float64{0, -1, math.Inf(1), math.NaN()} {
		cfg := newTestConfig(t, &recordingScheduler{}, 1)
		cfg.WaypointSpeed = speed
		_, err := NewRandomWaypoint(cfg)
		assert.ErrorIs(t, err, ErrInvalidSpeed, "speed %v", speed)
	}
}

func TestRandomWaypoint_Relocate_WaitIncludesTravelTime(t *testing.T) {
	// GIVEN a waypoint model whose pause means are negligible
	sched := &recordingScheduler{}
	cfg := newTestConfig(t, sched, 8)
	cfg.WaypointSpeed = 10
	cfg.DwellTable = sim.DwellTable{0: 1e-9, 1: 1e-9, 2: 1e-9}
	m, err := NewRandomWaypoint(cfg)
	require.NoError(t, err)
	require.NoError(t, m.Initialize(1))

	for i := 0; i < 200; i++ {
		sched.calls = sched.calls[:0]
		from, _ := cfg.Catalog.(*sim.Catalog).IndexOf(m.LocationOf(0).SiteID)

		// WHEN the device relocates
		m.Relocate(0)

		// THEN the wait is the travel time plus a tiny pause
		to, _ := cfg.Catalog.(*sim.Catalog).IndexOf(m.LocationOf(0).SiteID)
		require.NotEqual(t, from, to)
		require.Len(t, sched.calls, 1)
		travel := m.TravelTime(from, to)
		assert.GreaterOrEqual(t, sched.calls[0].delay, travel)
		assert.InDelta(t, travel, sched.calls[0].delay, 1e-3)
	}
}

func TestRandomWaypoint_SimulatorRun_PreservesInvariants(t *testing.T) {
	s := sim.NewSimulator(3000)
	cfg := newTestConfig(t, s, 17)
	cfg.WaypointSpeed = 25
	m, err := New(NameRandomWaypoint, cfg)
	require.NoError(t, err)
	require.NoError(t, m.Initialize(40))

	s.Run()

	assert.Equal(t, 40, s.Pending())
	assert.NoError(t, CheckLedger(m, cfg.Catalog, 40))
}
