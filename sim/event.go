package sim

import "github.com/sirupsen/logrus"

// Event defines the interface for all simulation events.
// Each event must have a Timestamp (in simulated seconds) and an Execute method
// that advances simulation state when invoked.
type Event interface {
	Timestamp() float64
	Execute(*Simulator)
}

// DeviceHandler is the callback a scheduled DeviceEvent invokes.
// The device index is the payload supplied at scheduling time.
type DeviceHandler func(device int)

// DeviceEvent fires a handler on behalf of one device. Mobility models use it
// to drive their self-rescheduling relocation chains.
type DeviceEvent struct {
	time    float64       // Simulation time at which the handler runs
	Handler DeviceHandler // Callback to invoke
	Device  int           // Payload passed to Handler
}

// NewDeviceEvent creates a DeviceEvent firing at the given absolute time.
func NewDeviceEvent(time float64, h DeviceHandler, device int) *DeviceEvent {
	return &DeviceEvent{time: time, Handler: h, Device: device}
}

// Timestamp returns the scheduled time of the DeviceEvent.
func (e *DeviceEvent) Timestamp() float64 {
	return e.time
}

// Execute invokes the handler for the event's device.
func (e *DeviceEvent) Execute(sim *Simulator) {
	logrus.Tracef("<< DeviceEvent: device %d at %.3fs", e.Device, e.time)
	e.Handler(e.Device)
}
