package notify

import (
	"runtime"

	"github.com/sirupsen/logrus"
)

// Poster delivers a notification to the user. Delivery is fire-and-forget;
// an error means the message never left the process.
type Poster interface {
	Post(title, body string) error
}

// LogPoster writes notifications to the log. It is the fallback when no
// platform delivery mechanism is available.
type LogPoster struct{}

func (LogPoster) Post(title, body string) error {
	logrus.WithFields(logrus.Fields{
		"title": title,
		"body":  body,
	}).Info("notification")
	return nil
}

// NewDefaultPoster picks the delivery mechanism for the current platform.
func NewDefaultPoster() Poster {
	switch runtime.GOOS {
	case "darwin":
		return &OSAScriptPoster{}
	case "linux":
		return &DBusPoster{}
	default:
		return LogPoster{}
	}
}
