package powersource

import (
	"math"

	"github.com/sirupsen/logrus"

	"github.com/battray/battray/pkg/powerinfo"
)

// Reader derives BatteryState and Telemetry from a Service. It owns no
// process-wide state; the caller holds the instance and decides when to
// poll.
type Reader struct {
	svc Service
}

// NewReader returns a Reader over the given service. The service is not
// opened; call Open before polling.
func NewReader(svc Service) *Reader {
	return &Reader{svc: svc}
}

// Open acquires the underlying service handle. If the handle is already
// open, it is closed and reopened once; failing that, the call reports
// ErrConnectionAlreadyOpen.
func (r *Reader) Open() error {
	err := r.svc.Open()
	if err == nil {
		return nil
	}
	if err != ErrConnectionAlreadyOpen {
		return err
	}

	logrus.Debug("power service handle already open, reopening")
	if cerr := r.svc.Close(); cerr != nil {
		return ErrConnectionAlreadyOpen
	}
	return r.svc.Open()
}

// Close releases the underlying service handle.
func (r *Reader) Close() error {
	return r.svc.Close()
}

// CurrentState derives the composite battery state from the raw service
// properties. It returns (nil, nil) when any of the five required
// properties is unavailable: an absent reading means "nothing to show",
// not a poll error.
func (r *Reader) CurrentState() (*powerinfo.BatteryState, error) {
	charge, ok := r.svc.ReadNumber(PropCurrentCharge)
	if !ok {
		return r.missing(PropCurrentCharge), nil
	}
	capacity, ok := r.svc.ReadNumber(PropMaxCapacity)
	if !ok || capacity <= 0 {
		return r.missing(PropMaxCapacity), nil
	}
	charging, ok := r.svc.ReadBool(PropIsCharging)
	if !ok {
		return r.missing(PropIsCharging), nil
	}
	plugged, ok := r.svc.ReadBool(PropExternalConnected)
	if !ok {
		return r.missing(PropExternalConnected), nil
	}
	charged, ok := r.svc.ReadBool(PropFullyCharged)
	if !ok {
		return r.missing(PropFullyCharged), nil
	}

	pct := Percentage(charge, capacity)

	var state powerinfo.BatteryState
	switch {
	case charged && plugged:
		state = powerinfo.NewPluggedAndCharged()
	case charging:
		state = powerinfo.NewCharging(pct)
	default:
		state = powerinfo.NewDischarging(pct)
	}

	return &state, nil
}

func (r *Reader) missing(p Property) *powerinfo.BatteryState {
	logrus.WithField("property", string(p)).Debug("battery property unavailable")
	return nil
}

// Telemetry collects the extended, best-effort battery readings. Fields the
// service cannot provide stay at zero.
func (r *Reader) Telemetry() powerinfo.Telemetry {
	var t powerinfo.Telemetry

	if v, ok := r.svc.ReadNumber(PropCycleCount); ok {
		t.CycleCount = int(v)
	}
	if v, ok := r.svc.ReadNumber(PropTemperature); ok {
		// Reported in hundredths of a degree Celsius, IOKit-style.
		t.Temperature = v / 100.0
	}
	if v, ok := r.svc.ReadNumber(PropVoltage); ok {
		t.Voltage = v / 1000.0
	}
	if v, ok := r.svc.ReadNumber(PropAmperage); ok {
		t.Amperage = v / 1000.0
	}
	t.PowerDraw = t.Voltage * math.Abs(t.Amperage)
	if v, ok := r.svc.ReadNumber(PropTimeToEmpty); ok {
		t.TimeToEmptyMinutes = int(v)
	}
	if v, ok := r.svc.ReadNumber(PropTimeToFull); ok {
		t.TimeToFullMinutes = int(v)
	}

	return t
}

// Percentage converts a raw charge/capacity pair to a rounded percentage.
// Values are not clamped; charge above capacity yields more than 100.
func Percentage(charge, capacity float64) int {
	return int(math.Round(charge / capacity * 100))
}
