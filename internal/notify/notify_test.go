package notify

import (
	"testing"
	"time"

	"github.com/sadopc/fokus/internal/engine"
)

func TestScheduleFires(t *testing.T) {
	fired := make(chan Alert, 1)
	s := New(func(a Alert) { fired <- a })

	// Sub-second delays are clamped to one second.
	s.Schedule(10*time.Millisecond, engine.PhaseWork, true)

	select {
	case a := <-fired:
		if a.Phase != engine.PhaseWork || !a.Sound {
			t.Fatalf("unexpected alert: %+v", a)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("alert did not fire")
	}
}

func TestCancelAllDisarms(t *testing.T) {
	fired := make(chan Alert, 1)
	s := New(func(a Alert) { fired <- a })

	s.Schedule(time.Second, engine.PhaseWork, true)
	s.CancelAll()

	select {
	case <-fired:
		t.Fatal("cancelled alert fired")
	case <-time.After(1200 * time.Millisecond):
	}
}

func TestScheduleSupersedes(t *testing.T) {
	fired := make(chan Alert, 2)
	s := New(func(a Alert) { fired <- a })

	s.Schedule(time.Second, engine.PhaseWork, true)
	s.Schedule(time.Second, engine.PhaseShortBreak, false)

	select {
	case a := <-fired:
		if a.Phase != engine.PhaseShortBreak {
			t.Fatalf("superseded alert fired: %+v", a)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("alert did not fire")
	}

	select {
	case a := <-fired:
		t.Fatalf("both alerts fired: %+v", a)
	case <-time.After(300 * time.Millisecond):
	}
}

func TestCancelAllIdempotent(t *testing.T) {
	s := New(func(Alert) {})
	s.CancelAll()
	s.CancelAll()
}

func TestAlertText(t *testing.T) {
	if Title(engine.PhaseWork) != "Focus session complete!" {
		t.Fatal("work title")
	}
	if Title(engine.PhaseShortBreak) != "Break is over!" {
		t.Fatal("break title")
	}
	if Body(engine.PhaseWork) != "Great work! Time for a break." {
		t.Fatal("work body")
	}
	if Body(engine.PhaseLongBreak) != "Ready to focus again?" {
		t.Fatal("break body")
	}
}

func TestScheduleMinimumDelay(t *testing.T) {
	fired := make(chan Alert, 1)
	s := New(func(a Alert) { fired <- a })

	s.Schedule(0, engine.PhaseWork, false)

	select {
	case <-fired:
		t.Fatal("alert fired before the one-second minimum")
	case <-time.After(500 * time.Millisecond):
	}

	select {
	case <-fired:
	case <-time.After(2 * time.Second):
		t.Fatal("alert did not fire")
	}
}
