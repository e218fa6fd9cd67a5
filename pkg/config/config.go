// Package config holds the user preferences consumed by the daemon and the
// notification gate.
package config

import (
	"time"

	"github.com/sirupsen/logrus"
)

// Config is the user preference surface. The notification gate mutates
// LastNotified on every posted notification; everything else is read-mostly.
type Config interface {
	// Thresholds is the set of notification thresholds (percentages) the
	// user opted into.
	Thresholds() []int
	SetThresholds([]int)

	// LastNotified is the threshold the user was last notified for, or 0.
	LastNotified() int
	SetLastNotified(int)

	PollInterval() time.Duration
	SetPollIntervalSeconds(int)

	AllowNonRootAccess() bool
	SetAllowNonRootAccess(bool)

	ShowPercentageInTray() bool
	SetShowPercentageInTray(bool)

	Load() error
	Save() error

	LogrusFields() logrus.Fields
}
