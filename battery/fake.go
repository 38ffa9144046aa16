package battery

import "sync"

// FakeSource replays scripted readings for tests and the demo mode.
// After the script is exhausted it keeps returning the final entry.
type FakeSource struct {
	mu       sync.Mutex
	readings []Reading
	err      error
	idx      int
	calls    int
}

func NewFake(readings ...Reading) *FakeSource {
	return &FakeSource{readings: readings}
}

// SetError makes subsequent reads fail until cleared with a nil error.
func (f *FakeSource) SetError(err error) {
	f.mu.Lock()
	f.err = err
	f.mu.Unlock()
}

func (f *FakeSource) Calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

func (f *FakeSource) Read() (Reading, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.err != nil {
		return Reading{}, f.err
	}
	if len(f.readings) == 0 {
		return Reading{}, ErrNoBattery
	}
	r := f.readings[f.idx]
	if f.idx < len(f.readings)-1 {
		f.idx++
	}
	return r, nil
}

// DemoSource sweeps 0→100 and back, toggling the charging state at each
// end. Drives the renderer without real hardware.
type DemoSource struct {
	pct  int
	step int
}

func NewDemo() *DemoSource { return &DemoSource{step: 1} }

func (d *DemoSource) Read() (Reading, error) {
	r := Reading{Percent: d.pct, State: StateDischarging}
	if d.step > 0 {
		r.State = StateCharging
	}
	if d.pct == 100 {
		r.State = StateFull
	}
	d.pct += d.step
	if d.pct >= 100 {
		d.pct, d.step = 100, -1
	} else if d.pct <= 0 {
		d.pct, d.step = 0, 1
	}
	return r, nil
}
