package integration

import (
	"bytes"
	"image/png"
	"testing"

	"battray/battery"
	"battray/icon"
)

// Feed a scripted percentage sequence through the source → renderer
// pipeline and check the tray would see five distinct, correctly sized
// icons.
func TestPipelineRendersDistinctIcons(t *testing.T) {
	seq := []int{0, 25, 50, 75, 100}
	readings := make([]battery.Reading, len(seq))
	for i, pct := range seq {
		readings[i] = battery.Reading{Percent: pct, State: battery.StateDischarging}
	}
	src := battery.NewFake(readings...)

	r, err := icon.NewRenderer(icon.DefaultConfig())
	if err != nil {
		t.Fatal(err)
	}

	rendered := make([][]byte, len(seq))
	for i := range seq {
		reading, err := src.Read()
		if err != nil {
			t.Fatal(err)
		}
		data, err := r.Render(reading.Percent, reading.State == battery.StateCharging)
		if err != nil {
			t.Fatal(err)
		}

		cfg, err := png.DecodeConfig(bytes.NewReader(data))
		if err != nil {
			t.Fatalf("step %d: invalid PNG: %v", i, err)
		}
		if cfg.Width != icon.DefaultSize || cfg.Height != icon.DefaultSize {
			t.Fatalf("step %d: got %dx%d, want %dx%d", i, cfg.Width, cfg.Height, icon.DefaultSize, icon.DefaultSize)
		}
		rendered[i] = data
	}

	for i := range rendered {
		for j := i + 1; j < len(rendered); j++ {
			if bytes.Equal(rendered[i], rendered[j]) {
				t.Errorf("%d%% and %d%% rendered identically", seq[i], seq[j])
			}
		}
	}
}

// A charging battery sweeping past 97% switches the numeral icon to the
// full-charge face; the rendered bytes must change at that boundary.
func TestPipelineChargingBoundary(t *testing.T) {
	r, err := icon.NewRenderer(icon.DefaultConfig())
	if err != nil {
		t.Fatal(err)
	}

	at97, err := r.Render(97, true)
	if err != nil {
		t.Fatal(err)
	}
	at98, err := r.Render(98, true)
	if err != nil {
		t.Fatal(err)
	}
	if bytes.Equal(at97, at98) {
		t.Error("97% and 98% while charging should render differently")
	}
}
