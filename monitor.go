package main

import "battray/battery"

// monitor polls a battery source and reports only changed readings.
// A failed read retains the previous reading so the tray never shows a
// stale-then-blank icon.
type monitor struct {
	src      battery.Source
	last     battery.Reading
	hasLast  bool
	failures int
}

func newMonitor(src battery.Source) *monitor {
	return &monitor{src: src}
}

// Poll reads the source once. The bool is true when the reading changed
// and the tray should be updated.
func (m *monitor) Poll() (battery.Reading, bool) {
	r, err := m.src.Read()
	if err != nil {
		m.failures++
		return m.last, false
	}
	m.failures = 0
	r.Percent = battery.Clamp(r.Percent)
	if m.hasLast && r == m.last {
		return m.last, false
	}
	m.last = r
	m.hasLast = true
	return r, true
}

// Last returns the most recent good reading, if any.
func (m *monitor) Last() (battery.Reading, bool) {
	return m.last, m.hasLast
}

// Failures counts consecutive failed reads since the last success.
func (m *monitor) Failures() int {
	return m.failures
}
