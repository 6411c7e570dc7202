package sim

import (
	"bytes"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func twoSiteCatalog(t *testing.T) *Catalog {
	t.Helper()
	c, err := NewCatalog([]Site{{ID: 10}, {ID: 20}})
	require.NoError(t, err)
	return c
}

func TestMetrics_TimeWeightedOccupancy(t *testing.T) {
	// GIVEN two devices at site 10
	m := NewMetrics(twoSiteCatalog(t))
	m.ObservePlacement(0, 10)
	m.ObservePlacement(1, 10)

	// WHEN one device moves to site 20 at t=40 and the run ends at t=100
	m.ObserveRelocation(40, 0, 10, 20, 8)
	m.Finalize(100)
	rs := m.Summary("nomadic", 1, 2)

	// THEN site 10 averaged (2*40 + 1*60)/100 and site 20 averaged 60/100
	require.Len(t, rs.Sites, 2)
	assert.InDelta(t, 1.4, rs.Sites[0].MeanOccupancy, 1e-9)
	assert.InDelta(t, 0.6, rs.Sites[1].MeanOccupancy, 1e-9)
	assert.Equal(t, 2, rs.Sites[0].PeakCount)
	assert.Equal(t, 1, rs.Sites[0].FinalCount)
	assert.Equal(t, 1, rs.Sites[0].Departures)
	assert.Equal(t, 1, rs.Sites[1].Arrivals)
	assert.Equal(t, 1, rs.Relocations)
	assert.Equal(t, 8.0, rs.MeanDwell)
}

func TestMetrics_RunIDIsUUID(t *testing.T) {
	m := NewMetrics(twoSiteCatalog(t))
	_, err := uuid.Parse(m.RunID)
	assert.NoError(t, err)
	assert.NotEqual(t, m.RunID, NewMetrics(twoSiteCatalog(t)).RunID)
}

func TestRunSummary_Print(t *testing.T) {
	m := NewMetrics(twoSiteCatalog(t))
	m.ObservePlacement(0, 20)
	m.Finalize(10)

	var buf bytes.Buffer
	m.Summary("nomadic", 1, 1).Print(&buf)

	out := buf.String()
	assert.Contains(t, out, "Simulation Metrics")
	assert.Contains(t, out, "Site 20")
	assert.NotContains(t, out, "Average Dwell", "no dwell line without relocations")
}
