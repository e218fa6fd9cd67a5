package notify

import (
	"sync"

	"github.com/esiqveland/notify"
	"github.com/godbus/dbus/v5"
	pkgerrors "github.com/pkg/errors"
)

// DBusPoster delivers notifications over the freedesktop notification
// service on the session bus. The connection is established lazily and
// reused; ReplacesID makes a newer battery message replace the previous
// one instead of stacking.
type DBusPoster struct {
	mu     sync.Mutex
	conn   *dbus.Conn
	lastID uint32
}

func (p *DBusPoster) Post(title, body string) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.conn == nil {
		conn, err := dbus.SessionBus()
		if err != nil {
			return pkgerrors.Wrap(err, "failed to connect to session bus")
		}
		p.conn = conn
	}

	id, err := notify.SendNotification(p.conn, notify.Notification{
		AppName:       "battray",
		ReplacesID:    p.lastID,
		Summary:       title,
		Body:          body,
		ExpireTimeout: notify.ExpireTimeoutSetByNotificationServer,
	})
	if err != nil {
		return pkgerrors.Wrap(err, "failed to send notification")
	}

	p.lastID = id
	return nil
}
