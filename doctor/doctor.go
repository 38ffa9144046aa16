// Package doctor runs environment checks so tray problems can be
// diagnosed without staring at an empty status area.
package doctor

import (
	"bytes"
	"fmt"
	"image/png"

	"battray/battery"
	"battray/icon"
)

// Run executes diagnostic checks and returns an exit code (0=all pass,
// 1=any fail).
func Run() int {
	fmt.Println("battray doctor - system diagnostics")
	fmt.Println("===================================")

	allPass := true

	if !checkBattery() {
		allPass = false
	}
	if !checkRenderer() {
		allPass = false
	}
	if !checkTray() {
		allPass = false
	}

	fmt.Println()
	if allPass {
		fmt.Println("All checks passed!")
		return 0
	}
	fmt.Println("Some checks failed. See details above.")
	return 1
}

func checkBattery() bool {
	fmt.Println()
	fmt.Println("[1/3] Battery metric")

	src := battery.NewSystemSource()
	r, err := src.Read()
	if err != nil {
		fmt.Printf("  FAIL: could not read battery: %v\n", err)
		return false
	}
	fmt.Printf("  PASS: %d%% (%s)\n", r.Percent, r.State)
	return true
}

func checkRenderer() bool {
	fmt.Println()
	fmt.Println("[2/3] Icon renderer")

	cfg := icon.DefaultConfig()
	r, err := icon.NewRenderer(cfg)
	if err != nil {
		fmt.Printf("  FAIL: renderer init: %v\n", err)
		return false
	}
	data, err := r.Render(50, false)
	if err != nil {
		fmt.Printf("  FAIL: render: %v\n", err)
		return false
	}
	decoded, err := png.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		fmt.Printf("  FAIL: invalid PNG output: %v\n", err)
		return false
	}
	if decoded.Width != cfg.Size || decoded.Height != cfg.Size {
		fmt.Printf("  FAIL: got %dx%d, want %dx%d\n", decoded.Width, decoded.Height, cfg.Size, cfg.Size)
		return false
	}
	fmt.Printf("  PASS: %dx%d PNG (%d bytes)\n", decoded.Width, decoded.Height, len(data))
	return true
}
