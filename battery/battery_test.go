package battery

import (
	"errors"
	"testing"

	distatus "github.com/distatus/battery"
)

func TestClamp(t *testing.T) {
	tests := []struct{ in, want int }{
		{-1, 0}, {0, 0}, {99, 99}, {100, 100}, {101, 100},
	}
	for _, tt := range tests {
		if got := Clamp(tt.in); got != tt.want {
			t.Errorf("Clamp(%d) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestChargeStateString(t *testing.T) {
	tests := []struct {
		state ChargeState
		want  string
	}{
		{StateCharging, "charging"},
		{StateDischarging, "discharging"},
		{StateFull, "full"},
		{StateUnknown, "unknown"},
		{ChargeState(99), "unknown"},
	}
	for _, tt := range tests {
		if got := tt.state.String(); got != tt.want {
			t.Errorf("%d.String() = %q, want %q", tt.state, got, tt.want)
		}
	}
}

func TestMapState(t *testing.T) {
	tests := []struct {
		in   distatus.State
		want ChargeState
	}{
		{distatus.Charging, StateCharging},
		{distatus.Discharging, StateDischarging},
		{distatus.Empty, StateDischarging},
		{distatus.Full, StateFull},
		{distatus.Unknown, StateUnknown},
	}
	for _, tt := range tests {
		if got := mapState(tt.in); got != tt.want {
			t.Errorf("mapState(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestFakeReplaysAndHoldsFinal(t *testing.T) {
	f := NewFake(
		Reading{Percent: 10},
		Reading{Percent: 20},
	)
	for _, want := range []int{10, 20, 20, 20} {
		r, err := f.Read()
		if err != nil {
			t.Fatal(err)
		}
		if r.Percent != want {
			t.Fatalf("got %d, want %d", r.Percent, want)
		}
	}
	if f.Calls() != 4 {
		t.Errorf("calls = %d, want 4", f.Calls())
	}
}

func TestFakeError(t *testing.T) {
	f := NewFake(Reading{Percent: 10})
	f.SetError(errors.New("boom"))
	if _, err := f.Read(); err == nil {
		t.Fatal("expected error")
	}
	f.SetError(nil)
	if _, err := f.Read(); err != nil {
		t.Fatalf("unexpected error after clearing: %v", err)
	}
}

func TestDemoSweeps(t *testing.T) {
	d := NewDemo()
	r, _ := d.Read()
	if r.Percent != 0 {
		t.Fatalf("demo starts at %d, want 0", r.Percent)
	}
	seen100 := false
	for i := 0; i < 250; i++ {
		r, _ = d.Read()
		if r.Percent < 0 || r.Percent > 100 {
			t.Fatalf("demo out of range: %d", r.Percent)
		}
		if r.Percent == 100 {
			seen100 = true
		}
	}
	if !seen100 {
		t.Error("demo never reached 100")
	}
}
