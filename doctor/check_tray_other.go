//go:build !linux

package doctor

import "fmt"

func checkTray() bool {
	fmt.Println()
	fmt.Println("[3/3] System tray support")
	fmt.Println("  PASS: native tray assumed present")
	return true
}
