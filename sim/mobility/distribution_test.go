package mobility

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/edge-mobility/mobility-sim/sim"
)

func TestExponentialSampler_MeanMatchesParam(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	s, err := NewExponentialSampler(256)
	if err != nil {
		t.Fatal(err)
	}
	n := 10000
	sum := 0.0
	for i := 0; i < n; i++ {
		sum += s.Sample(rng)
	}
	mean := sum / float64(n)
	if math.Abs(mean-256)/256 > 0.05 {
		t.Errorf("exponential mean = %.1f, want ≈ 256 (within 5%%)", mean)
	}
}

func TestExponentialSampler_NeverNegative(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	s, err := NewExponentialSampler(0.5)
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 10000; i++ {
		if v := s.Sample(rng); v < 0 {
			t.Errorf("sample %d: got %f, want >= 0", i, v)
			break
		}
	}
}

func TestNewExponentialSampler_InvalidMean(t *testing.T) {
	for _, mean := range []float64{0, -3, math.NaN(), math.Inf(1)} {
		_, err := NewExponentialSampler(mean)
		assert.ErrorIs(t, err, sim.ErrInvalidMean, "mean %v", mean)
	}
}
