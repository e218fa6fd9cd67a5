// Package gui is the tray application. It renders the daemon's composited
// icon in the status bar and exposes the notification preferences as menu
// items.
package gui

import (
	"context"
	"fmt"
	"time"

	"github.com/getlantern/systray"
	"github.com/sirupsen/logrus"

	"github.com/battray/battray/pkg/client"
	"github.com/battray/battray/pkg/config"
	"github.com/battray/battray/pkg/events"
	"github.com/battray/battray/pkg/notify"
	"github.com/battray/battray/pkg/powerinfo"
)

var apiClient *client.Client

// Run starts the tray application and blocks until the user quits.
func Run(socketPath string) {
	apiClient = client.NewClient(socketPath)

	if _, err := apiClient.GetVersion(); err != nil {
		logrus.Errorf("cannot connect to daemon: %v", err)
		showAlert("battray daemon is not running", "Start it with \"battray daemon\" and reopen the tray.")
	}

	systray.Run(onReady, onExit)
}

type statusItems struct {
	status    *systray.MenuItem
	powerDraw *systray.MenuItem
	cycles    *systray.MenuItem
	toggles   map[notify.Key]*systray.MenuItem
}

func onReady() {
	systray.SetTitle("Loading...")
	systray.SetTooltip("battray - Battery Monitor")

	items := &statusItems{
		toggles: make(map[notify.Key]*systray.MenuItem),
	}

	items.status = systray.AddMenuItem("Status: Connecting...", "Current battery status")
	items.status.Disable()

	items.powerDraw = systray.AddMenuItem("Power Draw: -", "Current power draw")
	items.powerDraw.Disable()

	items.cycles = systray.AddMenuItem("Cycle Count: -", "Battery charge cycles")
	items.cycles.Disable()

	systray.AddSeparator()

	notifyMenu := systray.AddMenuItem("Notify At", "Thresholds to notify at")
	for _, key := range notify.Keys {
		items.toggles[key] = notifyMenu.AddSubMenuItemCheckbox(key.String(), "Notify at this threshold", false)
	}

	systray.AddSeparator()
	mQuit := systray.AddMenuItem("Quit", "Quit the tray")

	toggled := make(chan notify.Key)
	for key, item := range items.toggles {
		go func(key notify.Key, item *systray.MenuItem) {
			for range item.ClickedCh {
				toggled <- key
			}
		}(key, item)
	}

	go func() {
		for {
			select {
			case key := <-toggled:
				if err := toggleThreshold(key); err != nil {
					logrus.Errorf("failed to toggle threshold %s: %v", key, err)
				}
				updateStatus(items)

			case <-mQuit.ClickedCh:
				systray.Quit()
				return

			case <-time.After(10 * time.Second):
				updateStatus(items)
			}
		}
	}()

	// SSE pushes battery state changes so the tray reacts between polls.
	go startEventBridge(items)

	updateStatus(items)
}

func onExit() {
	logrus.Info("battray tray exiting")
}

// startEventBridge subscribes to daemon events and refreshes the tray on demand.
func startEventBridge(items *statusItems) {
	for {
		ctx, cancel := context.WithCancel(context.Background())
		evCh := apiClient.SubscribeEvents(ctx)

		for ev := range evCh {
			logrus.WithFields(logrus.Fields{
				"event": ev.Name,
				"data":  string(ev.Data),
			}).Debug("new event")

			if ev.Name == events.BatteryState {
				updateStatus(items)
			}
		}
		cancel()

		// The daemon went away or the stream broke. Back off and redial.
		time.Sleep(5 * time.Second)
	}
}

func toggleThreshold(key notify.Key) error {
	prefs, err := apiClient.GetPreferences()
	if err != nil {
		return err
	}
	conf := config.NewFileFromConfig(prefs, "")

	current := conf.Thresholds()
	next := make([]int, 0, len(current)+1)
	found := false
	for _, t := range current {
		if t == int(key) {
			found = true
			continue
		}
		next = append(next, t)
	}
	if !found {
		next = append(next, int(key))
	}

	_, err = apiClient.SetThresholds(next)
	return err
}

func updateStatus(items *statusItems) {
	state, err := apiClient.GetState()
	if err != nil {
		systray.SetTitle("Offline")
		items.status.SetTitle("Status: Disconnected")
		items.powerDraw.SetTitle("Power Draw: -")
		items.cycles.SetTitle("Cycle Count: -")
		logrus.Errorf("cannot connect to daemon: %v", err)
		return
	}

	if state == nil {
		systray.SetTitle("No Battery")
		items.status.SetTitle("Status: No battery found")
		return
	}

	if iconBytes, err := apiClient.GetIcon(); err == nil && len(iconBytes) > 0 {
		systray.SetTemplateIcon(iconBytes, iconBytes)
	}

	telemetry, err := apiClient.GetTelemetry()
	if err != nil {
		logrus.Errorf("failed to get telemetry: %v", err)
		return
	}

	prefs, err := apiClient.GetPreferences()
	if err != nil {
		logrus.Errorf("failed to get preferences: %v", err)
		return
	}
	conf := config.NewFileFromConfig(prefs, "")

	systray.SetTitle(titleFor(*state, conf.ShowPercentageInTray()))
	items.status.SetTitle(fmt.Sprintf("Status: %s", statusTextFor(*state)))
	items.powerDraw.SetTitle(fmt.Sprintf("Power Draw: %.1f W", telemetry.PowerDraw))
	items.cycles.SetTitle(fmt.Sprintf("Cycle Count: %d", telemetry.CycleCount))

	opted := make(map[int]bool)
	for _, t := range conf.Thresholds() {
		opted[t] = true
	}
	for key, item := range items.toggles {
		if opted[int(key)] {
			item.Check()
		} else {
			item.Uncheck()
		}
	}
}

func titleFor(state powerinfo.BatteryState, showPercentage bool) string {
	if !showPercentage {
		return ""
	}
	if state.Mode == powerinfo.PluggedAndCharged {
		return "100%"
	}
	return fmt.Sprintf("%d%%", state.Percentage)
}

func statusTextFor(state powerinfo.BatteryState) string {
	switch state.Mode {
	case powerinfo.Charging:
		return "Charging"
	case powerinfo.PluggedAndCharged:
		return "Charged"
	default:
		return "Discharging"
	}
}
