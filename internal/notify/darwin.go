//go:build darwin

package notify

import (
	"fmt"
	"os/exec"
)

// darwinNotifier drives Notification Center through osascript.
type darwinNotifier struct{}

func newPlatformNotifier() Notifier {
	return &darwinNotifier{}
}

func (n *darwinNotifier) Send(title, message string) error {
	return n.send(title, message, false)
}

func (n *darwinNotifier) SendWithSound(title, message string) error {
	return n.send(title, message, true)
}

func (n *darwinNotifier) IsSupported() bool {
	_, err := exec.LookPath("osascript")
	return err == nil
}

func (n *darwinNotifier) send(title, message string, sound bool) error {
	title = escapeAppleScript(title)
	message = escapeAppleScript(message)

	script := fmt.Sprintf(`display notification %q with title %q`, message, title)
	if sound {
		script += ` sound name "default"`
	}

	if err := exec.Command("osascript", "-e", script).Run(); err != nil {
		return fmt.Errorf("osascript failed: %w", err)
	}
	return nil
}
