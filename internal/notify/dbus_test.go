//go:build linux

package notify

import (
	"os"
	"testing"
)

func TestDBusNotifier_NotifyAndReplace(t *testing.T) {
	// Skip if no D-Bus session (CI environment)
	if os.Getenv("DBUS_SESSION_BUS_ADDRESS") == "" {
		t.Skip("no D-Bus session available")
	}

	notifier, err := New()
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}

	id1, err := notifier.Notify(Notification{Title: "Track 1", Body: "Artist - Album", Timeout: 2000})
	if err != nil {
		t.Fatalf("first Notify() error: %v", err)
	}
	if id1 == 0 {
		t.Fatal("Notify() returned id=0, expected non-zero")
	}

	id2, err := notifier.Notify(Notification{Title: "Track 2", Timeout: 1000, ReplacesID: id1})
	if err != nil {
		t.Fatalf("second Notify() error: %v", err)
	}
	if id2 != id1 {
		t.Errorf("replacing notification got id=%d, want id=%d", id2, id1)
	}

	if err := notifier.Close(id2); err != nil {
		t.Errorf("Close() error: %v", err)
	}
}
