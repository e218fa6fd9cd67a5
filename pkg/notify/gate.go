package notify

import (
	"github.com/sirupsen/logrus"

	"github.com/battray/battray/pkg/config"
	"github.com/battray/battray/pkg/powerinfo"
)

// Gate decides whether a battery state warrants a user notification and
// posts it. It posts at most once per threshold crossing: the key must
// differ from the last notified one, and the user must have opted into it.
type Gate struct {
	conf   config.Config
	poster Poster
}

// NewGate returns a Gate over the given preferences and poster.
func NewGate(conf config.Config, poster Poster) *Gate {
	return &Gate{conf: conf, poster: poster}
}

// NotifyUser posts a notification for the state if one is due. It reports
// whether a notification was posted. LastNotified is only advanced after a
// successful post, so delivery failures are retried on the next poll.
func (g *Gate) NotifyUser(state powerinfo.BatteryState) (bool, error) {
	n := NewNotification(state)
	if n == nil {
		return false, nil
	}

	if int(n.Key) == g.conf.LastNotified() {
		return false, nil
	}

	if !g.optedIn(n.Key) {
		logrus.WithField("key", n.Key.String()).Debug("threshold not in user's notification set")
		return false, nil
	}

	if err := g.poster.Post(n.Title, n.Body); err != nil {
		return false, err
	}

	g.conf.SetLastNotified(int(n.Key))
	if err := g.conf.Save(); err != nil {
		logrus.WithError(err).Warn("failed to persist last notified threshold")
	}

	logrus.WithFields(logrus.Fields{
		"key":   n.Key.String(),
		"title": n.Title,
	}).Info("notified user")

	return true, nil
}

func (g *Gate) optedIn(key Key) bool {
	for _, t := range g.conf.Thresholds() {
		if t == int(key) {
			return true
		}
	}
	return false
}
