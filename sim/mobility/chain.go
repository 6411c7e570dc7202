package mobility

import (
	"fmt"
	"math"

	"github.com/sirupsen/logrus"

	"github.com/edge-mobility/mobility-sim/sim"
)

// chain holds the state every self-rescheduling model shares: the ledger,
// one dwell sampler per site, and the handler the scheduler calls back.
// Variants differ only in how long a device waits before its next move.
type chain struct {
	cfg     Config
	state   *ledger
	dwell   []*ExponentialSampler // catalog position → dwell distribution
	handler sim.DeviceHandler
}

func newChain(cfg Config) *chain {
	if cfg.Log == nil {
		cfg.Log = sim.NewLogrusLineWriter()
	}
	return &chain{cfg: cfg}
}

// initialize validates the configuration, places every device uniformly at
// random, and schedules each device's first relocation at the activation offset.
// Nothing is mutated when an error is returned.
func (c *chain) initialize(deviceCount int) error {
	if c.state != nil {
		return ErrAlreadyInitialized
	}
	if deviceCount < 0 {
		return fmt.Errorf("initialize(%d): %w", deviceCount, ErrNegativeDeviceCount)
	}
	n := c.cfg.Catalog.SiteCount()
	switch n {
	case 0:
		return ErrEmptyCatalog
	case 1:
		return fmt.Errorf("catalog has site %d only: %w", c.cfg.Catalog.SiteAt(0).ID, ErrSingleSite)
	}
	offset := c.cfg.ActivationOffset
	if math.IsNaN(offset) || math.IsInf(offset, 0) || offset < 0 {
		return fmt.Errorf("activation offset %f: %w", offset, ErrInvalidOffset)
	}
	dwell, err := newDwellSamplers(c.cfg.Catalog, c.cfg.DwellTable)
	if err != nil {
		return err
	}

	state := newLedger(c.cfg.Catalog)
	for d := 0; d < deviceCount; d++ {
		pos := sim.UniformInt(c.cfg.RNG, 0, n-1)
		state.place(pos)
		for _, o := range c.cfg.Observers {
			o.ObservePlacement(d, c.cfg.Catalog.SiteAt(pos).ID)
		}
	}
	c.state, c.dwell = state, dwell

	// Devices stay put until the activation offset, measured from simulation start.
	delay := max(0, offset-c.cfg.Scheduler.Now())
	for d := 0; d < deviceCount; d++ {
		c.cfg.Scheduler.ScheduleAfter(delay, c.handler, d)
	}
	logrus.Infof("Placed %d devices on %d sites, first relocation at %.3fs", deviceCount, n, offset)
	return nil
}

// relocate moves device to a different site, logs occupancy, and schedules the
// next relocation after wait(from, to), given as catalog positions.
func (c *chain) relocate(device int, wait func(from, to int) float64) {
	if c.state == nil {
		panic("relocate called before initialize")
	}
	from := c.state.current[device]
	to := pickOtherSite(c.cfg.RNG, len(c.dwell), from)
	c.state.move(device, to)
	c.cfg.Log.WriteLine(c.state.line())

	delay := wait(from, to)
	now := c.cfg.Scheduler.Now()
	fromID, toID := c.cfg.Catalog.SiteAt(from).ID, c.cfg.Catalog.SiteAt(to).ID
	for _, o := range c.cfg.Observers {
		o.ObserveRelocation(now, device, fromID, toID, delay)
	}
	c.cfg.Scheduler.ScheduleAfter(delay, c.handler, device)
}

func (c *chain) locationOf(device int) Location {
	if c.state == nil {
		panic("LocationOf called before initialize")
	}
	return c.state.locations[device]
}

func (c *chain) occupancyOf(siteID int) int {
	if c.state == nil {
		return 0
	}
	return c.state.occupancy(siteID)
}
