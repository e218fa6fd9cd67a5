package daemon

import (
	"reflect"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/battray/battray/pkg/config"
	"github.com/battray/battray/pkg/events"
	"github.com/battray/battray/pkg/icon"
	"github.com/battray/battray/pkg/notify"
	"github.com/battray/battray/pkg/powerinfo"
	"github.com/battray/battray/pkg/powersource"
)

// poller drives the daemon: each tick it reads the battery, recomposites
// the icon if the state changed, and hands the state to the notification
// gate. The latest results are kept for the HTTP handlers.
type poller struct {
	reader     *powersource.Reader
	compositor *icon.Compositor
	gate       *notify.Gate
	hub        *events.Hub
	conf       config.Config

	opened bool

	mu        sync.RWMutex
	state     *powerinfo.BatteryState
	icon      *icon.Icon
	telemetry powerinfo.Telemetry
	lastErr   error
}

func newPoller(
	reader *powersource.Reader,
	compositor *icon.Compositor,
	gate *notify.Gate,
	hub *events.Hub,
	conf config.Config,
) *poller {
	return &poller{
		reader:     reader,
		compositor: compositor,
		gate:       gate,
		hub:        hub,
		conf:       conf,
	}
}

// run ticks until stop is closed. The interval is re-read from config on
// every round so a reload takes effect without restarting the loop.
func (p *poller) run(stop <-chan struct{}) {
	p.tick()
	for {
		select {
		case <-stop:
			return
		case <-time.After(p.conf.PollInterval()):
			p.tick()
		}
	}
}

func (p *poller) tick() {
	// Opening is retried every tick until it succeeds, so a machine whose
	// battery service shows up late recovers without a restart. Until then
	// the tray shows the diagnostic icon.
	if !p.opened {
		if err := p.reader.Open(); err != nil {
			logrus.Errorf("failed to open power service: %v", err)
			p.fail(err)
			return
		}
		p.opened = true
	}

	state, err := p.reader.CurrentState()
	if err != nil {
		logrus.Errorf("failed to read battery state: %v", err)
		p.fail(err)
		return
	}

	var ic *icon.Icon
	if state != nil {
		ic = p.compositor.Icon(*state)
	}
	telemetry := p.reader.Telemetry()

	p.mu.Lock()
	changed := !statesEqual(p.state, state)
	p.state = state
	p.icon = ic
	p.telemetry = telemetry
	p.lastErr = nil
	p.mu.Unlock()

	printStatus(state, telemetry)

	if state == nil {
		return
	}

	if changed {
		p.hub.Publish(events.BatteryStateEvent{
			Mode:       state.Mode.String(),
			Percentage: state.Percentage,
			Ts:         time.Now().Unix(),
		})
	}

	posted, err := p.gate.NotifyUser(*state)
	if err != nil {
		logrus.Errorf("failed to notify user: %v", err)
		return
	}
	if posted {
		p.hub.Publish(events.NotifiedEvent{
			Key:   p.conf.LastNotified(),
			Title: "battray",
			Ts:    time.Now().Unix(),
		})
	}
}

func (p *poller) fail(err error) {
	p.mu.Lock()
	p.state = nil
	p.icon = p.compositor.ErrorIcon(err)
	p.lastErr = err
	p.mu.Unlock()
}

// CurrentState returns the state from the last tick, nil when the battery
// had nothing to show or the last read failed.
func (p *poller) CurrentState() *powerinfo.BatteryState {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.state
}

// CurrentIcon returns the icon from the last tick. It is the error icon
// when the last read failed, and may be nil when there is nothing to show.
func (p *poller) CurrentIcon() *icon.Icon {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.icon
}

func (p *poller) CurrentTelemetry() powerinfo.Telemetry {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.telemetry
}

func (p *poller) LastError() error {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.lastErr
}

func statesEqual(a, b *powerinfo.BatteryState) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

var lastPrintTime time.Time

type loopStatus struct {
	mode       string
	percentage int
	powerDraw  float64
	nothing    bool
}

var lastStatus loopStatus

func printStatus(state *powerinfo.BatteryState, telemetry powerinfo.Telemetry) {
	currentStatus := loopStatus{nothing: state == nil}
	fields := logrus.Fields{}

	if state != nil {
		currentStatus.mode = state.Mode.String()
		currentStatus.percentage = state.Percentage
		currentStatus.powerDraw = telemetry.PowerDraw

		fields["mode"] = currentStatus.mode
		fields["percentage"] = currentStatus.percentage
		fields["powerDraw"] = currentStatus.powerDraw
	} else {
		fields["state"] = "nothing to show"
	}

	defer func() { lastPrintTime = time.Now() }()

	// Skip printing if the last print was recent and everything is the same.
	if time.Since(lastPrintTime) < time.Minute && reflect.DeepEqual(lastStatus, currentStatus) {
		logrus.WithFields(fields).Trace("poll loop status")
		return
	}

	logrus.WithFields(fields).Debug("poll loop status")

	lastStatus = currentStatus
}
