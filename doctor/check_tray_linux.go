//go:build linux

package doctor

import (
	"fmt"

	"github.com/godbus/dbus/v5"
)

const watcherName = "org.kde.StatusNotifierWatcher"

// checkTray verifies a StatusNotifierWatcher is on the session bus; the
// tray icon silently fails to appear without one.
func checkTray() bool {
	fmt.Println()
	fmt.Println("[3/3] System tray support")

	conn, err := dbus.SessionBus()
	if err != nil {
		fmt.Printf("  FAIL: session bus: %v\n", err)
		return false
	}

	var hasOwner bool
	err = conn.BusObject().Call("org.freedesktop.DBus.NameHasOwner", 0, watcherName).Store(&hasOwner)
	if err != nil {
		fmt.Printf("  FAIL: query %s: %v\n", watcherName, err)
		return false
	}
	if !hasOwner {
		fmt.Printf("  FAIL: no %s on the session bus\n", watcherName)
		fmt.Println("        (GNOME needs the AppIndicator extension)")
		return false
	}
	fmt.Println("  PASS: StatusNotifierWatcher present")
	return true
}
