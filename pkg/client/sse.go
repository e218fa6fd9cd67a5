package client

import (
	"bufio"
	"context"
	"net/http"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/battray/battray/pkg/events"
)

// SubscribeEvents streams daemon events until ctx is canceled or the
// connection drops. The returned channel is closed when the stream ends.
func (c *Client) SubscribeEvents(ctx context.Context) chan events.Event {
	ch := make(chan events.Event, 16)

	go func() {
		defer close(ch)

		req, err := http.NewRequestWithContext(ctx, "GET", "http://unix/events", nil)
		if err != nil {
			logrus.Errorf("failed to create events request: %v", err)
			return
		}
		req.Header.Set("Accept", "text/event-stream")

		resp, err := c.httpClient.Do(req)
		if err != nil {
			logrus.Errorf("failed to subscribe to events: %v", err)
			return
		}
		defer func() {
			if err := resp.Body.Close(); err != nil {
				logrus.Errorf("failed to close event stream: %v", err)
			}
		}()

		if resp.StatusCode != http.StatusOK {
			logrus.Errorf("event stream returned %d", resp.StatusCode)
			return
		}

		var ev events.Event
		scanner := bufio.NewScanner(resp.Body)
		for scanner.Scan() {
			line := scanner.Text()
			switch {
			case strings.HasPrefix(line, "event:"):
				ev.Name = strings.TrimSpace(strings.TrimPrefix(line, "event:"))
			case strings.HasPrefix(line, "data:"):
				ev.Data = []byte(strings.TrimSpace(strings.TrimPrefix(line, "data:")))
			case line == "":
				// Blank line terminates one event.
				if ev.Name != "" || len(ev.Data) > 0 {
					select {
					case ch <- ev:
					case <-ctx.Done():
						return
					}
				}
				ev = events.Event{}
			}
		}
		if err := scanner.Err(); err != nil && ctx.Err() == nil {
			logrus.Errorf("event stream read failed: %v", err)
		}
	}()

	return ch
}
