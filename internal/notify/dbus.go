package notify

import (
	"fmt"

	"github.com/godbus/dbus/v5"
)

const (
	dbusNotifyDest      = "org.freedesktop.Notifications"
	dbusNotifyPath      = "/org/freedesktop/Notifications"
	dbusNotifyInterface = "org.freedesktop.Notifications"
)

// caller is the part of dbus.BusObject the notifier needs.
type caller interface {
	Call(method string, flags dbus.Flags, args ...any) *dbus.Call
}

type dbusNotifier struct {
	conn    *dbus.Conn
	obj     caller
	urgency Urgency
	timeout int32
	lastID  uint32
}

// New connects to the session bus. Without a session bus it returns a
// notifier that does nothing.
func New(urgency Urgency, timeoutMs int32) Notifier {
	conn, err := dbus.SessionBus()
	if err != nil {
		return stubNotifier{}
	}
	return &dbusNotifier{
		conn:    conn,
		obj:     conn.Object(dbusNotifyDest, dbusNotifyPath),
		urgency: urgency,
		timeout: timeoutMs,
	}
}

// Notify replaces the previous notification of this process, so repeated
// reload failures do not pile up.
func (n *dbusNotifier) Notify(summary, body string) error {
	hints := map[string]dbus.Variant{
		"urgency": dbus.MakeVariant(byte(n.urgency)),
	}
	call := n.obj.Call(dbusNotifyInterface+".Notify", 0,
		appName,
		n.lastID,
		"input-keyboard",
		summary,
		body,
		[]string{},
		hints,
		n.timeout,
	)
	if call.Err != nil {
		return fmt.Errorf("notify: %w", call.Err)
	}
	var id uint32
	if err := call.Store(&id); err != nil {
		return fmt.Errorf("notify: %w", err)
	}
	n.lastID = id
	return nil
}

func (n *dbusNotifier) Close() error {
	if n.conn == nil {
		return nil
	}
	return n.conn.Close()
}
