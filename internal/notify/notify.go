// Package notify delivers desktop notifications through the native
// mechanism of each platform: notify-send on Linux, osascript on macOS.
// Delivery is best-effort; the alarm checker ignores failures.
package notify

import "strings"

// Notifier sends desktop notifications.
type Notifier interface {
	// Send displays a notification with the given title and message.
	Send(title, message string) error

	// SendWithSound displays a notification and plays the default sound.
	SendWithSound(title, message string) error

	// IsSupported reports whether this platform can display notifications.
	IsSupported() bool
}

type noopNotifier struct{}

func (noopNotifier) Send(title, message string) error          { return nil }
func (noopNotifier) SendWithSound(title, message string) error { return nil }
func (noopNotifier) IsSupported() bool                         { return false }

// New returns the notifier for the current platform, or a no-op notifier
// when the platform has no usable notification mechanism.
func New() Notifier {
	n := newPlatformNotifier()
	if n == nil || !n.IsSupported() {
		return noopNotifier{}
	}
	return n
}

// escapeAppleScript escapes backslashes and quotes for AppleScript string
// literals. Kept outside the darwin build so the escaping rules stay
// testable everywhere.
func escapeAppleScript(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `"`, `\"`)
	return s
}
