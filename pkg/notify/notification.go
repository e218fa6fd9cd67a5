package notify

import (
	"fmt"

	"github.com/battray/battray/pkg/powerinfo"
)

// Notification is a user-facing message pending delivery.
type Notification struct {
	Key   Key
	Title string
	Body  string
}

// NewNotification builds the notification for a battery state. It returns
// nil when there is nothing to notify about: the percentage does not hit a
// threshold, or the battery just started charging from empty (0% while
// charging is transient and would only produce noise).
func NewNotification(state powerinfo.BatteryState) *Notification {
	pct := state.Percentage
	if state.Mode == powerinfo.PluggedAndCharged {
		pct = 100
	}

	key := KeyForPercentage(pct)
	if key == KeyInvalid {
		return nil
	}
	if state.Mode == powerinfo.Charging && state.Percentage == 0 {
		return nil
	}

	if key == KeyHundredPercent {
		return &Notification{
			Key:   key,
			Title: "Charged",
			Body:  "Your battery is fully charged.",
		}
	}

	return &Notification{
		Key:   key,
		Title: "Low Battery",
		Body:  fmt.Sprintf("%d%% of battery power remaining.", pct),
	}
}
