package mobility

import (
	"fmt"
	"math"

	"github.com/edge-mobility/mobility-sim/sim"
)

// ExponentialSampler produces exponentially-distributed dwell times.
type ExponentialSampler struct {
	mean float64
}

// NewExponentialSampler creates a sampler with the given mean, which must be finite and positive.
func NewExponentialSampler(mean float64) (*ExponentialSampler, error) {
	if math.IsNaN(mean) || math.IsInf(mean, 0) || mean <= 0 {
		return nil, fmt.Errorf("exponential mean %f: %w", mean, sim.ErrInvalidMean)
	}
	return &ExponentialSampler{mean: mean}, nil
}

// Mean returns the distribution mean.
func (s *ExponentialSampler) Mean() float64 {
	return s.mean
}

// Sample returns a dwell time >= 0.
func (s *ExponentialSampler) Sample(rng sim.RandomSource) float64 {
	return rng.ExpFloat64() * s.mean
}

// newDwellSamplers builds one sampler per catalog position, keyed by the
// site's attractiveness class.
func newDwellSamplers(catalog sim.SiteCatalog, table sim.DwellTable) ([]*ExponentialSampler, error) {
	samplers := make([]*ExponentialSampler, catalog.SiteCount())
	for i := range samplers {
		site := catalog.SiteAt(i)
		mean, ok := table.MeanDwellTime(site.AttractivenessClass)
		if !ok {
			return nil, fmt.Errorf("site %d: class %d: %w", site.ID, site.AttractivenessClass, ErrUnknownClass)
		}
		s, err := NewExponentialSampler(mean)
		if err != nil {
			return nil, fmt.Errorf("site %d: %w", site.ID, err)
		}
		samplers[i] = s
	}
	return samplers, nil
}
