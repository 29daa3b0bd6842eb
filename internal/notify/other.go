//go:build !darwin && !linux

package notify

// stubNotifier covers platforms without a notification mechanism.
type stubNotifier struct{}

func newPlatformNotifier() Notifier {
	return &stubNotifier{}
}

func (*stubNotifier) Send(title, message string) error          { return nil }
func (*stubNotifier) SendWithSound(title, message string) error { return nil }
func (*stubNotifier) IsSupported() bool                         { return false }
