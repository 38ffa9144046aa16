package main

import (
	"errors"
	"testing"

	"battray/battery"
)

func TestMonitorEmitsOnlyOnChange(t *testing.T) {
	src := battery.NewFake(
		battery.Reading{Percent: 50, State: battery.StateDischarging},
		battery.Reading{Percent: 50, State: battery.StateDischarging},
		battery.Reading{Percent: 60, State: battery.StateDischarging},
	)
	m := newMonitor(src)

	r, changed := m.Poll()
	if !changed || r.Percent != 50 {
		t.Fatalf("first poll: got (%v, %t), want (50, true)", r, changed)
	}
	if _, changed := m.Poll(); changed {
		t.Fatal("second poll with identical reading should not emit")
	}
	r, changed = m.Poll()
	if !changed || r.Percent != 60 {
		t.Fatalf("third poll: got (%v, %t), want (60, true)", r, changed)
	}
	if _, changed := m.Poll(); changed {
		t.Fatal("repeated final reading should not emit")
	}
}

func TestMonitorStateChangeEmits(t *testing.T) {
	src := battery.NewFake(
		battery.Reading{Percent: 80, State: battery.StateDischarging},
		battery.Reading{Percent: 80, State: battery.StateCharging},
	)
	m := newMonitor(src)
	m.Poll()
	r, changed := m.Poll()
	if !changed || r.State != battery.StateCharging {
		t.Fatalf("state flip at same percent should emit, got (%v, %t)", r, changed)
	}
}

func TestMonitorRetainsLastOnFailure(t *testing.T) {
	src := battery.NewFake(battery.Reading{Percent: 70, State: battery.StateDischarging})
	m := newMonitor(src)
	if _, changed := m.Poll(); !changed {
		t.Fatal("expected initial emit")
	}

	src.SetError(errors.New("sysfs gone"))
	for i := 1; i <= 3; i++ {
		r, changed := m.Poll()
		if changed {
			t.Fatalf("poll %d during failure should not emit", i)
		}
		if r.Percent != 70 {
			t.Fatalf("poll %d: retained reading = %d, want 70", i, r.Percent)
		}
		if m.Failures() != i {
			t.Fatalf("poll %d: failures = %d, want %d", i, m.Failures(), i)
		}
	}

	src.SetError(nil)
	if _, changed := m.Poll(); changed {
		t.Fatal("recovery to unchanged value should not emit")
	}
	if m.Failures() != 0 {
		t.Fatalf("failures not reset, got %d", m.Failures())
	}
}

func TestMonitorClampsReadings(t *testing.T) {
	src := battery.NewFake(battery.Reading{Percent: 150, State: battery.StateFull})
	m := newMonitor(src)
	r, changed := m.Poll()
	if !changed || r.Percent != 100 {
		t.Fatalf("got (%d, %t), want (100, true)", r.Percent, changed)
	}
}

func TestMonitorNoLastBeforeFirstSuccess(t *testing.T) {
	src := battery.NewFake(battery.Reading{Percent: 40})
	src.SetError(errors.New("nope"))
	m := newMonitor(src)
	if _, changed := m.Poll(); changed {
		t.Fatal("failed first poll should not emit")
	}
	if _, ok := m.Last(); ok {
		t.Fatal("Last should report no reading before first success")
	}
}
