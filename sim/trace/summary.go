package trace

// TraceSummary aggregates statistics from a Recorder.
type TraceSummary struct {
	TotalRelocations int
	SelfTransitions  int                // relocations whose destination equals the origin; 0 for a healthy model
	Transitions      map[Transition]int // (from, to) → count
	Arrivals         map[int]int        // site ID → relocations ending there
	MeanDwellBySite  map[int]float64    // destination site ID → mean wait after arriving
	MaxDwell         float64
}

// Summarize computes aggregate statistics from a Recorder.
// Safe for nil or empty recorders (returns zero-value fields).
func Summarize(r *Recorder) *TraceSummary {
	summary := &TraceSummary{
		Transitions:     make(map[Transition]int),
		Arrivals:        make(map[int]int),
		MeanDwellBySite: make(map[int]float64),
	}
	if r == nil {
		return summary
	}

	summary.TotalRelocations = len(r.Relocations)
	dwellSums := make(map[int]float64)
	for _, rec := range r.Relocations {
		if rec.FromSite == rec.ToSite {
			summary.SelfTransitions++
		}
		summary.Transitions[Transition{From: rec.FromSite, To: rec.ToSite}]++
		summary.Arrivals[rec.ToSite]++
		dwellSums[rec.ToSite] += rec.Dwell
		if rec.Dwell > summary.MaxDwell {
			summary.MaxDwell = rec.Dwell
		}
	}
	for site, sum := range dwellSums {
		summary.MeanDwellBySite[site] = sum / float64(summary.Arrivals[site])
	}

	return summary
}
