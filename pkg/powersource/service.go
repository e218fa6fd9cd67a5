// Package powersource reads raw battery properties from a platform power
// service and derives the composite battery state used by the icon and
// notification logic.
package powersource

import "errors"

// Property is the name of a raw value exposed by a Service. The names follow
// the IORegistry AppleSmartBattery vocabulary, which every backend maps its
// native readings onto.
type Property string

const (
	PropCurrentCharge     Property = "CurrentCapacity"
	PropMaxCapacity       Property = "MaxCapacity"
	PropIsCharging        Property = "IsCharging"
	PropExternalConnected Property = "ExternalConnected"
	PropFullyCharged      Property = "FullyCharged"
	PropVoltage           Property = "Voltage"
	PropAmperage          Property = "Amperage"
	PropCycleCount        Property = "CycleCount"
	PropTemperature       Property = "Temperature"
	PropTimeToEmpty       Property = "AvgTimeToEmpty"
	PropTimeToFull        Property = "AvgTimeToFull"
)

var (
	// ErrConnectionAlreadyOpen is returned when the service handle is
	// already open and could not be cleanly closed before reopening.
	ErrConnectionAlreadyOpen = errors.New("power service connection already open")

	// ErrServiceNotFound is returned when the battery service does not
	// exist on this machine, e.g. desktops without a battery.
	ErrServiceNotFound = errors.New("battery service not found")
)

// Service is an opaque handle to the platform battery information provider.
//
// ReadNumber and ReadBool report ok=false when the backing provider does not
// expose the property; callers treat an absent property as "nothing to show"
// rather than an error.
type Service interface {
	// Open acquires the service handle. Opening an already-open handle
	// returns ErrConnectionAlreadyOpen; a machine without the battery
	// service returns ErrServiceNotFound.
	Open() error

	ReadNumber(p Property) (float64, bool)
	ReadBool(p Property) (bool, bool)

	// Close releases the handle. Closing a handle that is not open is a
	// no-op.
	Close() error
}
