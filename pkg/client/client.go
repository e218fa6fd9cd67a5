// Package client talks to the battray daemon over its unix-socket HTTP API.
// Every route speaks JSON except /icon (raw PNG bytes) and /events (SSE).
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net"
	"net/http"
	"os"

	pkgerrors "github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

type Client struct {
	socketPath string
	httpClient *http.Client
}

func NewClient(socketPath string) *Client {
	return &Client{
		socketPath: socketPath,
		httpClient: &http.Client{
			Transport: &http.Transport{
				DialContext: func(_ context.Context, _, _ string) (net.Conn, error) {
					conn, err := net.Dial("unix", socketPath)
					if err != nil {
						if os.IsNotExist(err) {
							return nil, ErrDaemonNotRunning
						}
						if os.IsPermission(err) {
							return nil, ErrPermissionDenied
						}
						logrus.Errorf("failed to connect to unix socket: %v", err)
						return nil, err
					}
					return conn, err
				},
			},
		},
	}
}

// do performs one request against the daemon and returns the response body
// and status code. Non-2xx responses are errors carrying the daemon's body.
func (c *Client) do(method, path string, payload []byte) ([]byte, int, error) {
	logrus.WithFields(logrus.Fields{
		"method": method,
		"path":   path,
		"unix":   c.socketPath,
	}).Debug("calling daemon")

	var reqBody io.Reader
	if payload != nil {
		reqBody = bytes.NewReader(payload)
	}
	req, err := http.NewRequest(method, "http://unix"+path, reqBody)
	if err != nil {
		return nil, 0, pkgerrors.Wrapf(err, "failed to build %s %s", method, path)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, 0, pkgerrors.Wrapf(err, "%s %s failed", method, path)
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			logrus.Errorf("failed to close response body: %v", err)
		}
	}()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, resp.StatusCode, pkgerrors.Wrapf(err, "failed to read %s response", path)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, resp.StatusCode, pkgerrors.Errorf("daemon returned %d for %s %s: %s", resp.StatusCode, method, path, body)
	}

	return body, resp.StatusCode, nil
}

// getJSON decodes a GET response into out.
func (c *Client) getJSON(path string, out any) error {
	body, _, err := c.do(http.MethodGet, path, nil)
	if err != nil {
		return err
	}
	return pkgerrors.Wrapf(json.Unmarshal(body, out), "failed to decode %s response", path)
}

// putJSON encodes payload and returns the daemon's response body, which the
// CLI echoes back to the user.
func (c *Client) putJSON(path string, payload any) (string, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return "", pkgerrors.Wrapf(err, "failed to encode %s payload", path)
	}
	body, _, err := c.do(http.MethodPut, path, b)
	return string(body), err
}
