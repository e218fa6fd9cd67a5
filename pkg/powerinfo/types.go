// Package powerinfo holds the battery state and telemetry types shared
// between the daemon, client, CLI and GUI.
package powerinfo

import (
	"encoding/json"
	"fmt"
)

// Mode is the charging mode of the battery.
type Mode int

const (
	// Discharging indicates the battery is draining.
	Discharging Mode = iota
	// Charging indicates the battery is charging.
	Charging
	// PluggedAndCharged indicates the battery is full and on external power.
	PluggedAndCharged
)

func (m Mode) String() string {
	switch m {
	case Discharging:
		return "discharging"
	case Charging:
		return "charging"
	case PluggedAndCharged:
		return "plugged-and-charged"
	default:
		return "unknown"
	}
}

// MarshalJSON encodes the mode as its string name so the wire format stays
// readable and stable across reorderings of the constants.
func (m Mode) MarshalJSON() ([]byte, error) {
	return json.Marshal(m.String())
}

func (m *Mode) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	switch s {
	case "discharging":
		*m = Discharging
	case "charging":
		*m = Charging
	case "plugged-and-charged":
		*m = PluggedAndCharged
	default:
		return fmt.Errorf("unknown battery mode %q", s)
	}
	return nil
}

// BatteryState is a derived summary of the battery, recomputed on every
// poll. Two states compare equal iff mode and percentage are equal, so it
// can be used directly as a cache key.
//
// Percentage is round(charge/capacity*100). It is not clamped: a firmware
// that reports charge above capacity yields a percentage above 100, which
// is surfaced as-is. Percentage is always 0 for PluggedAndCharged.
type BatteryState struct {
	Mode       Mode `json:"mode"`
	Percentage int  `json:"percentage"`
}

// NewCharging returns a charging state at the given percentage.
func NewCharging(pct int) BatteryState {
	return BatteryState{Mode: Charging, Percentage: pct}
}

// NewDischarging returns a discharging state at the given percentage.
func NewDischarging(pct int) BatteryState {
	return BatteryState{Mode: Discharging, Percentage: pct}
}

// NewPluggedAndCharged returns the full-and-plugged state.
func NewPluggedAndCharged() BatteryState {
	return BatteryState{Mode: PluggedAndCharged}
}

func (s BatteryState) String() string {
	if s.Mode == PluggedAndCharged {
		return s.Mode.String()
	}
	return fmt.Sprintf("%s %d%%", s.Mode, s.Percentage)
}

// Telemetry is the extended battery snapshot used by the status command and
// the GUI. All fields are best-effort: a backend that cannot provide a value
// leaves it at zero.
type Telemetry struct {
	// CycleCount is the number of charge cycles the battery has been through.
	CycleCount int `json:"cycleCount"`
	// Temperature is the battery temperature in degrees Celsius.
	Temperature float64 `json:"temperature"`
	// Voltage in Volts.
	Voltage float64 `json:"voltage"`
	// Amperage in Amps. Negative while discharging.
	Amperage float64 `json:"amperage"`
	// PowerDraw in Watts (voltage * |amperage|).
	PowerDraw float64 `json:"powerDraw"`
	// TimeToEmptyMinutes is the estimated minutes until empty, if discharging.
	TimeToEmptyMinutes int `json:"timeToEmptyMinutes"`
	// TimeToFullMinutes is the estimated minutes until full, if charging.
	TimeToFullMinutes int `json:"timeToFullMinutes"`
}
