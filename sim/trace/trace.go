package trace

// TraceLevel controls the verbosity of relocation tracing.
type TraceLevel string

const (
	// TraceLevelNone disables tracing (zero overhead).
	TraceLevelNone TraceLevel = "none"
	// TraceLevelRelocations captures every placement and relocation.
	TraceLevelRelocations TraceLevel = "relocations"
)

// validTraceLevels maps accepted trace level strings.
var validTraceLevels = map[TraceLevel]bool{
	TraceLevelNone:        true,
	TraceLevelRelocations: true,
	"":                    true, // empty defaults to none
}

// IsValidTraceLevel returns true if the given level string is a recognized trace level.
func IsValidTraceLevel(level string) bool {
	return validTraceLevels[TraceLevel(level)]
}

// Recorder collects placement and relocation records during one run.
// Records live in memory only and are discarded with the Recorder.
// It satisfies the mobility observer contract.
type Recorder struct {
	Level       TraceLevel
	Placements  []PlacementRecord
	Relocations []RelocationRecord
}

// NewRecorder creates a Recorder ready for recording.
func NewRecorder(level TraceLevel) *Recorder {
	return &Recorder{
		Level:       level,
		Placements:  make([]PlacementRecord, 0),
		Relocations: make([]RelocationRecord, 0),
	}
}

// Enabled reports whether the recorder keeps records.
func (r *Recorder) Enabled() bool {
	return r.Level == TraceLevelRelocations
}

// ObservePlacement appends a placement record.
func (r *Recorder) ObservePlacement(device, siteID int) {
	if !r.Enabled() {
		return
	}
	r.Placements = append(r.Placements, PlacementRecord{Device: device, SiteID: siteID})
}

// ObserveRelocation appends a relocation record.
func (r *Recorder) ObserveRelocation(now float64, device, fromSite, toSite int, dwell float64) {
	if !r.Enabled() {
		return
	}
	r.Relocations = append(r.Relocations, RelocationRecord{
		Clock:    now,
		Device:   device,
		FromSite: fromSite,
		ToSite:   toSite,
		Dwell:    dwell,
	})
}
