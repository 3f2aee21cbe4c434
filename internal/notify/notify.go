// Package notify shows desktop notifications for events the user should
// see even when the daemon runs in the background.
package notify

// Urgency levels of org.freedesktop.Notifications.
type Urgency byte

const (
	UrgencyLow Urgency = iota
	UrgencyNormal
	UrgencyCritical
)

const appName = "xremap"

// Notifier sends a notification with a summary line and a body.
type Notifier interface {
	Notify(summary, body string) error
	Close() error
}

// Nop returns a Notifier that drops everything.
func Nop() Notifier {
	return stubNotifier{}
}

type stubNotifier struct{}

func (stubNotifier) Notify(string, string) error { return nil }

func (stubNotifier) Close() error { return nil }
