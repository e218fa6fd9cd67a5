package main

import (
	"encoding/json"
	"math"

	"github.com/spf13/cobra"

	"github.com/battray/battray/pkg/config"
	"github.com/battray/battray/pkg/powerinfo"
)

type statusJSON struct {
	// Battery is omitted when no battery is present.
	Battery       *statusBatteryJSON  `json:"battery,omitempty"`
	Telemetry     statusTelemetryJSON `json:"telemetry"`
	Configuration statusConfigJSON    `json:"configuration"`
}

type statusBatteryJSON struct {
	CurrentChargePercent int    `json:"currentChargePercent"`
	State                string `json:"state"`
}

type statusTelemetryJSON struct {
	PowerDrawWatts     float64 `json:"powerDrawWatts"`
	VoltageVolts       float64 `json:"voltageVolts"`
	CycleCount         int     `json:"cycleCount"`
	TemperatureCelsius float64 `json:"temperatureCelsius"`
	TimeToEmptyMinutes int     `json:"timeToEmptyMinutes"`
	TimeToFullMinutes  int     `json:"timeToFullMinutes"`
}

type statusConfigJSON struct {
	Thresholds           []int `json:"thresholds"`
	LastNotified         int   `json:"lastNotified"`
	PollIntervalSeconds  int   `json:"pollIntervalSeconds"`
	ShowPercentageInTray bool  `json:"showPercentageInTray"`
	AllowNonRootAccess   bool  `json:"allowNonRootAccess"`
}

// batteryStateString returns a camelCase string for the battery state.
func batteryStateString(state powerinfo.BatteryState) string {
	switch state.Mode {
	case powerinfo.Charging:
		return "charging"
	case powerinfo.PluggedAndCharged:
		return "pluggedAndCharged"
	default:
		return "discharging"
	}
}

func printStatusJSON(cmd *cobra.Command, data *statusData, cfg *config.File) error {
	tel := data.telemetry

	out := statusJSON{
		Telemetry: statusTelemetryJSON{
			PowerDrawWatts:     math.Round(tel.PowerDraw*10) / 10,
			VoltageVolts:       math.Round(tel.Voltage*100) / 100,
			CycleCount:         tel.CycleCount,
			TemperatureCelsius: math.Round(tel.Temperature*10) / 10,
			TimeToEmptyMinutes: tel.TimeToEmptyMinutes,
			TimeToFullMinutes:  tel.TimeToFullMinutes,
		},
		Configuration: statusConfigJSON{
			Thresholds:           cfg.Thresholds(),
			LastNotified:         cfg.LastNotified(),
			PollIntervalSeconds:  int(cfg.PollInterval().Seconds()),
			ShowPercentageInTray: cfg.ShowPercentageInTray(),
			AllowNonRootAccess:   cfg.AllowNonRootAccess(),
		},
	}

	if data.state != nil {
		percentage := data.state.Percentage
		if data.state.Mode == powerinfo.PluggedAndCharged {
			percentage = 100
		}
		out.Battery = &statusBatteryJSON{
			CurrentChargePercent: percentage,
			State:                batteryStateString(*data.state),
		}
	}

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
