package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/battray/battray/pkg/config"
	"github.com/battray/battray/pkg/notify"
	"github.com/battray/battray/pkg/powerinfo"
)

type statusData struct {
	state       *powerinfo.BatteryState
	telemetry   *powerinfo.Telemetry
	preferences *config.RawFileConfig
}

// fetchStatusData gathers all data required for the status command from the daemon.
func fetchStatusData() (*statusData, error) {
	state, err := apiClient.GetState()
	if err != nil {
		return nil, fmt.Errorf("failed to get battery state: %w", err)
	}

	telemetry, err := apiClient.GetTelemetry()
	if err != nil {
		return nil, fmt.Errorf("failed to get telemetry: %w", err)
	}

	prefs, err := apiClient.GetPreferences()
	if err != nil {
		return nil, fmt.Errorf("failed to get preferences: %w", err)
	}

	return &statusData{
		state:       state,
		telemetry:   telemetry,
		preferences: prefs,
	}, nil
}

func NewStatusCommand() *cobra.Command {
	jsonOutput := false

	cmd := &cobra.Command{
		Use:     "status",
		GroupID: gBasic,
		Short:   "Get the current battery status",
		Long:    `Get battery state, telemetry, and notification preferences.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			data, err := fetchStatusData()
			if err != nil {
				return err
			}

			conf := config.NewFileFromConfig(data.preferences, "")

			if jsonOutput {
				return printStatusJSON(cmd, data, conf)
			}

			// Battery state.
			cmd.Println(bold("Battery status:"))

			if data.state == nil {
				cmd.Println("  No battery found on this machine.")
			} else {
				state := "discharging"
				percentage := data.state.Percentage
				switch data.state.Mode {
				case powerinfo.Charging:
					state = color.GreenString("charging")
				case powerinfo.PluggedAndCharged:
					state = color.GreenString("charged")
					percentage = 100
				case powerinfo.Discharging:
					state = color.RedString("discharging")
				}
				cmd.Printf("  Current charge: %s\n", bold("%d%%", percentage))
				cmd.Printf("  State: %s\n", bold("%s", state))
			}

			tel := data.telemetry

			watts := tel.PowerDraw
			if tel.Amperage < 0 {
				watts = -watts
			}
			var rateStr string
			switch {
			case watts > 0:
				rateStr = color.New(color.Bold, color.FgGreen).Sprintf("%+.1f W", watts)
			case watts < 0:
				rateStr = color.New(color.Bold, color.FgRed).Sprintf("%+.1f W", watts)
			default:
				rateStr = bold("%+.1f W", watts)
			}
			cmd.Printf("  Power draw: %s\n", rateStr)
			cmd.Printf("  Voltage: %s\n", bold("%.2f V", tel.Voltage))
			cmd.Printf("  Cycle count: %s\n", bold("%d", tel.CycleCount))
			if tel.Temperature != 0 {
				cmd.Printf("  Temperature: %s\n", bold("%.1f °C", tel.Temperature))
			}
			if data.state != nil {
				if data.state.Mode == powerinfo.Discharging && tel.TimeToEmptyMinutes > 0 {
					cmd.Printf("  Time to empty: %s\n", bold("~%d minutes", tel.TimeToEmptyMinutes))
				}
				if data.state.Mode == powerinfo.Charging && tel.TimeToFullMinutes > 0 {
					cmd.Printf("  Time to full: %s\n", bold("~%d minutes", tel.TimeToFullMinutes))
				}
			}

			cmd.Println()

			// Preferences.
			cmd.Println(bold("Notification preferences:"))
			thresholds := conf.Thresholds()
			if len(thresholds) == 0 {
				cmd.Println("  Notifications: " + bool2Text(false))
			} else {
				cmd.Printf("  Notify at: %s\n", bold("%v", thresholds))
			}
			if last := conf.LastNotified(); last != 0 {
				cmd.Printf("  Last notified: %s\n", bold("%s", notify.Key(last)))
			}
			cmd.Printf("  Poll interval: %s\n", bold("%s", conf.PollInterval()))
			cmd.Printf("  Show percentage in tray: %s\n", bool2Text(conf.ShowPercentageInTray()))
			cmd.Printf("  Allow non-root users to access the daemon: %s\n", bool2Text(conf.AllowNonRootAccess()))
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output status as JSON")

	return cmd
}

func bool2Text(b bool) string {
	if b {
		return color.New(color.Bold, color.FgGreen).Sprint("✔")
	}
	return color.New(color.Bold, color.FgRed).Sprint("✘")
}

func bold(format string, a ...interface{}) string {
	return color.New(color.Bold).Sprintf(format, a...)
}
