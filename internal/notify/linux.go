//go:build linux

package notify

import (
	"fmt"
	"os/exec"
)

// linuxNotifier shells out to notify-send.
type linuxNotifier struct{}

func newPlatformNotifier() Notifier {
	return &linuxNotifier{}
}

func (n *linuxNotifier) Send(title, message string) error {
	return n.send(title, message, false)
}

// SendWithSound raises the urgency hint; whether a sound actually plays
// depends on the notification daemon's configuration.
func (n *linuxNotifier) SendWithSound(title, message string) error {
	return n.send(title, message, true)
}

func (n *linuxNotifier) IsSupported() bool {
	_, err := exec.LookPath("notify-send")
	return err == nil
}

func (n *linuxNotifier) send(title, message string, sound bool) error {
	args := []string{"--app-name=dal", title, message}
	if sound {
		args = append([]string{"--urgency=normal"}, args...)
	}

	if err := exec.Command("notify-send", args...).Run(); err != nil {
		return fmt.Errorf("notify-send failed: %w", err)
	}
	return nil
}
