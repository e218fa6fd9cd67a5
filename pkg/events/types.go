package events

import "encoding/json"

// Event name constants
const (
	BatteryState = "battery.state"
	Notified     = "battery.notified"
)

// Event is a generic SSE event from daemon.
type Event struct {
	Name string          // SSE event name
	Data json.RawMessage // Raw JSON payload
}

// BatteryStateEvent is the typed payload for battery.state.
type BatteryStateEvent struct {
	Mode       string `json:"mode"`
	Percentage int    `json:"percentage"`
	Ts         int64  `json:"ts"`
}

// NotifiedEvent is the typed payload for battery.notified.
type NotifiedEvent struct {
	Key   int    `json:"key"`
	Title string `json:"title"`
	Ts    int64  `json:"ts"`
}

func (BatteryStateEvent) EventName() string { return BatteryState }
func (NotifiedEvent) EventName() string     { return Notified }

// DecodeAs decodes the event payload into the caller-specified generic type T.
// It ignores the event name and simply unmarshals Data into T. If Data is empty,
// it returns the zero value of T with a nil error.
func DecodeAs[T any](e Event) (T, error) {
	var zero T
	if len(e.Data) == 0 {
		return zero, nil
	}
	var v T
	if err := json.Unmarshal(e.Data, &v); err != nil {
		return zero, err
	}
	return v, nil
}
