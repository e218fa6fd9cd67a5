package client

import (
	"net/http"

	"github.com/battray/battray/pkg/config"
	"github.com/battray/battray/pkg/powerinfo"
)

// GetState returns the current battery state. The daemon reports JSON null
// when it has nothing to show (no battery present), which decodes to nil.
func (c *Client) GetState() (*powerinfo.BatteryState, error) {
	var state *powerinfo.BatteryState
	if err := c.getJSON("/state", &state); err != nil {
		return nil, err
	}
	return state, nil
}

func (c *Client) GetTelemetry() (*powerinfo.Telemetry, error) {
	var t powerinfo.Telemetry
	if err := c.getJSON("/telemetry", &t); err != nil {
		return nil, err
	}
	return &t, nil
}

// GetIcon returns the current status-bar icon as PNG bytes. The daemon
// answers 204 No Content when there is no icon to show; that becomes nil.
func (c *Client) GetIcon() ([]byte, error) {
	body, status, err := c.do(http.MethodGet, "/icon", nil)
	if err != nil {
		return nil, err
	}
	if status == http.StatusNoContent || len(body) == 0 {
		return nil, nil
	}
	return body, nil
}

func (c *Client) GetPreferences() (*config.RawFileConfig, error) {
	var conf config.RawFileConfig
	if err := c.getJSON("/preferences", &conf); err != nil {
		return nil, err
	}
	return &conf, nil
}

func (c *Client) SetThresholds(t []int) (string, error) {
	return c.putJSON("/thresholds", t)
}

func (c *Client) SetPollInterval(seconds int) (string, error) {
	return c.putJSON("/poll-interval", seconds)
}

func (c *Client) SetLastNotified(key int) (string, error) {
	return c.putJSON("/last-notified", key)
}

func (c *Client) GetVersion() (string, error) {
	var v string
	if err := c.getJSON("/version", &v); err != nil {
		return "", err
	}
	return v, nil
}
