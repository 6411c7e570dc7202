// Package sim provides the discrete-event simulation kernel for the edge
// mobility simulator.
//
// # Reading Guide
//
// Start with these files to understand the kernel:
//   - event.go: Event interface and DeviceEvent, the callback carrier for device chains
//   - simulator.go: the event queue, the Scheduler contract, and the event loop
//   - site.go: the site catalog view and the class → mean dwell time table
//
// # Architecture
//
// The sim package owns the collaborators a mobility model consumes; the models
// themselves live in sub-packages:
//   - sim/mobility/: mobility model family (nomadic, random-waypoint)
//   - sim/trace/: optional relocation trace recording
//
// # Key Interfaces
//
//   - Scheduler: enqueue a device callback after a non-negative delay
//   - SiteCatalog: ordered, read-only list of sites
//   - RandomSource: uniform integer and exponential draws
//   - LineWriter: line-oriented logging sink
package sim
