// Package notify decides when the user should be told about the battery
// and delivers the message through a platform poster.
package notify

import "fmt"

// Key is a discrete notification threshold bucket derived from a battery
// percentage. Keys de-duplicate notifications: the user is told about each
// threshold at most once until a different threshold fires.
type Key int

const (
	KeyInvalid        Key = 0
	KeyFivePercent    Key = 5
	KeyTenPercent     Key = 10
	KeyFifteenPercent Key = 15
	KeyTwentyPercent  Key = 20
	KeyHundredPercent Key = 100
)

// Keys lists every valid threshold, lowest first.
var Keys = []Key{
	KeyFivePercent,
	KeyTenPercent,
	KeyFifteenPercent,
	KeyTwentyPercent,
	KeyHundredPercent,
}

// KeyForPercentage buckets a percentage into a threshold key. It is total:
// percentages between thresholds yield KeyInvalid.
func KeyForPercentage(pct int) Key {
	switch pct {
	case 5:
		return KeyFivePercent
	case 10:
		return KeyTenPercent
	case 15:
		return KeyFifteenPercent
	case 20:
		return KeyTwentyPercent
	case 100:
		return KeyHundredPercent
	default:
		return KeyInvalid
	}
}

func (k Key) String() string {
	if k == KeyInvalid {
		return "invalid"
	}
	return fmt.Sprintf("%d%%", int(k))
}
