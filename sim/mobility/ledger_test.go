package mobility

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLedger_PlaceAndMove_KeepCountsConsistent(t *testing.T) {
	l := newLedger(threeSiteCatalog(t))
	a := l.place(0)
	b := l.place(0)
	c := l.place(2)
	require.Equal(t, []int{0, 1, 2}, []int{a, b, c})
	assert.Equal(t, "2;0;1", l.line())

	l.move(b, 1)

	assert.Equal(t, "1;1;1", l.line())
	assert.Equal(t, 1, l.locations[b].SiteID)
	assert.Equal(t, 1, l.locations[b].AttractivenessClass)
	assert.Equal(t, 1, l.occupancy(1))
	assert.Equal(t, 0, l.occupancy(42))
}

func TestPickOtherSite_NeverReturnsCurrent(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	seen := map[int]bool{}
	for i := 0; i < 1000; i++ {
		pos := pickOtherSite(rng, 4, 2)
		require.NotEqual(t, 2, pos)
		require.True(t, pos >= 0 && pos < 4)
		seen[pos] = true
	}
	assert.Len(t, seen, 3, "every other site is reachable")
}

// brokenModel reports a ledger inconsistent with its locations.
type brokenModel struct {
	sites     []int
	occupancy map[int]int
}

func (b *brokenModel) Initialize(int) error           { return nil }
func (b *brokenModel) Relocate(int)                   {}
func (b *brokenModel) LocationOf(device int) Location { return Location{SiteID: b.sites[device]} }
func (b *brokenModel) OccupancyOf(siteID int) int     { return b.occupancy[siteID] }

func TestCheckLedger_DetectsViolations(t *testing.T) {
	catalog := threeSiteCatalog(t)

	tests := []struct {
		name  string
		model *brokenModel
	}{
		{"count mismatch", &brokenModel{sites: []int{0, 1}, occupancy: map[int]int{0: 2}}},
		{"unknown site", &brokenModel{sites: []int{0, 9}, occupancy: map[int]int{0: 1, 9: 1}}},
		{"negative count", &brokenModel{sites: []int{0, 0}, occupancy: map[int]int{0: 3, 1: -1}}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Error(t, CheckLedger(tc.model, catalog, len(tc.model.sites)))
		})
	}

	ok := &brokenModel{sites: []int{0, 2, 2}, occupancy: map[int]int{0: 1, 2: 2}}
	assert.NoError(t, CheckLedger(ok, catalog, 3))
}
