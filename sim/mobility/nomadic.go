package mobility

// Nomadic moves devices between sites in discrete jumps: on arrival a device
// stays for an exponential dwell time whose mean is set by the destination's
// attractiveness class, then jumps to another site chosen uniformly at random.
type Nomadic struct {
	c *chain
}

// NewNomadic creates a nomadic model. Configuration problems surface from Initialize.
func NewNomadic(cfg Config) *Nomadic {
	m := &Nomadic{c: newChain(cfg)}
	m.c.handler = m.Relocate
	return m
}

// Initialize implements Model.
func (m *Nomadic) Initialize(deviceCount int) error {
	return m.c.initialize(deviceCount)
}

// Relocate implements Model.
func (m *Nomadic) Relocate(device int) {
	m.c.relocate(device, func(_, to int) float64 {
		return m.c.dwell[to].Sample(m.c.cfg.RNG)
	})
}

// LocationOf implements Model.
func (m *Nomadic) LocationOf(device int) Location {
	return m.c.locationOf(device)
}

// OccupancyOf implements Model.
func (m *Nomadic) OccupancyOf(siteID int) int {
	return m.c.occupancyOf(siteID)
}
