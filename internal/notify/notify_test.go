package notify

import (
	"os"
	"runtime"
	"testing"
)

func TestNew(t *testing.T) {
	if New() == nil {
		t.Error("New() returned nil")
	}
}

func TestIsSupported(t *testing.T) {
	n := New()

	switch runtime.GOOS {
	case "darwin":
		if !n.IsSupported() {
			t.Log("Warning: osascript not available on macOS")
		}
	case "linux":
		t.Logf("Linux notification support: %v", n.IsSupported())
	default:
		if n.IsSupported() {
			t.Errorf("IsSupported() should be false on %s", runtime.GOOS)
		}
	}
}

// TestSend actually displays a notification, so it only runs on request.
func TestSend(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping notification test in short mode")
	}
	if os.Getenv("RUN_NOTIFY_TESTS") != "1" {
		t.Skip("Skipping manual notification test (set RUN_NOTIFY_TESTS=1 to enable)")
	}

	n := New()
	if !n.IsSupported() {
		t.Skip("Notifications not supported on this platform")
	}

	if err := n.Send("dal test", "This is a test notification"); err != nil {
		t.Errorf("Send() error: %v", err)
	}
}

func TestEscapeAppleScript(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"Hello", "Hello"},
		{`Hello "World"`, `Hello \"World\"`},
		{`Path\to\file`, `Path\\to\\file`},
	}

	for _, tc := range tests {
		if got := escapeAppleScript(tc.input); got != tc.expected {
			t.Errorf("escapeAppleScript(%q) = %q, want %q", tc.input, got, tc.expected)
		}
	}
}
