// Package battery supplies the percentage readings the tray icon
// displays.
package battery

import (
	"errors"
	"fmt"
	"math"

	distatus "github.com/distatus/battery"
)

type ChargeState int

const (
	StateUnknown ChargeState = iota
	StateCharging
	StateDischarging
	StateFull
)

func (s ChargeState) String() string {
	switch s {
	case StateCharging:
		return "charging"
	case StateDischarging:
		return "discharging"
	case StateFull:
		return "full"
	}
	return "unknown"
}

// Reading is one observation of the battery. Percent is always within
// [0, 100].
type Reading struct {
	Percent int
	State   ChargeState
}

type Source interface {
	Read() (Reading, error)
}

var ErrNoBattery = errors.New("no battery present")

// Clamp constrains a percentage to [0, 100].
func Clamp(pct int) int {
	if pct < 0 {
		return 0
	}
	if pct > 100 {
		return 100
	}
	return pct
}

// SystemSource reads the first battery the OS reports.
type SystemSource struct{}

func NewSystemSource() *SystemSource { return &SystemSource{} }

func (s *SystemSource) Read() (Reading, error) {
	b, err := distatus.Get(0)
	if err != nil {
		var fatal distatus.ErrFatal
		if errors.As(err, &fatal) {
			return Reading{}, fmt.Errorf("%w: %v", ErrNoBattery, err)
		}
		// Partial errors still carry usable charge data.
		if b == nil {
			return Reading{}, err
		}
	}
	if b.Full <= 0 {
		return Reading{}, fmt.Errorf("battery reports zero capacity")
	}
	pct := Clamp(int(math.Round(b.Current / b.Full * 100)))
	return Reading{Percent: pct, State: mapState(b.State)}, nil
}

func mapState(s distatus.State) ChargeState {
	switch s {
	case distatus.Charging:
		return StateCharging
	case distatus.Discharging, distatus.Empty:
		return StateDischarging
	case distatus.Full:
		return StateFull
	}
	return StateUnknown
}
