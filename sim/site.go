package sim

import (
	"errors"
	"fmt"
	"math"

	"github.com/paulmach/orb"
)

// Site is one of the fixed locations a device can occupy (an edge datacenter).
type Site struct {
	ID                  int       // unique identifier, also keys per-site state
	AttractivenessClass int       // category that selects the mean dwell time
	Coordinates         orb.Point // planar position, informational for most models
}

// SiteCatalog is a read-only, ordered view of the configured sites.
// SiteCount is constant for a run; SiteAt is valid for i in [0, SiteCount()).
type SiteCatalog interface {
	SiteCount() int
	SiteAt(i int) Site
}

// Catalog is the in-memory SiteCatalog loaded once per run.
type Catalog struct {
	sites []Site
	index map[int]int // site ID → position in sites
}

// NewCatalog builds a Catalog, rejecting negative or duplicate site IDs.
// An empty catalog is allowed here; models reject it at initialization.
func NewCatalog(sites []Site) (*Catalog, error) {
	c := &Catalog{
		sites: make([]Site, len(sites)),
		index: make(map[int]int, len(sites)),
	}
	copy(c.sites, sites)
	for i, s := range c.sites {
		if s.ID < 0 {
			return nil, fmt.Errorf("site[%d]: id must be non-negative, got %d", i, s.ID)
		}
		if prev, dup := c.index[s.ID]; dup {
			return nil, fmt.Errorf("site[%d]: duplicate id %d (also site[%d])", i, s.ID, prev)
		}
		c.index[s.ID] = i
	}
	return c, nil
}

// SiteCount implements SiteCatalog.
func (c *Catalog) SiteCount() int { return len(c.sites) }

// SiteAt implements SiteCatalog.
func (c *Catalog) SiteAt(i int) Site { return c.sites[i] }

// IndexOf returns the catalog position of the site with the given ID.
func (c *Catalog) IndexOf(siteID int) (int, bool) {
	i, ok := c.index[siteID]
	return i, ok
}

// ErrInvalidMean is returned for a dwell mean that is zero, negative, or not finite.
var ErrInvalidMean = errors.New("mean dwell time must be a finite positive number")

// DwellTable maps an attractiveness class to the mean dwell time (simulated seconds)
// devices spend at sites of that class.
type DwellTable map[int]float64

// MeanDwellTime returns the configured mean for class.
func (t DwellTable) MeanDwellTime(class int) (float64, bool) {
	mean, ok := t[class]
	return mean, ok
}

// Validate checks that every mean is finite and positive.
func (t DwellTable) Validate() error {
	for class, mean := range t {
		if math.IsNaN(mean) || math.IsInf(mean, 0) || mean <= 0 {
			return fmt.Errorf("dwell_means[%d] = %f: %w", class, mean, ErrInvalidMean)
		}
	}
	return nil
}
