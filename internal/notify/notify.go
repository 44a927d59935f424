// Package notify schedules the single local alert that fires when the
// current timer phase completes.
package notify

import (
	"sync"
	"time"

	"github.com/sadopc/fokus/internal/engine"
)

// Alert describes a fired phase-completion alert.
type Alert struct {
	Phase engine.Phase
	Sound bool
}

// Scheduler implements engine.Notifier. At most one alert is armed at
// a time; scheduling supersedes the previous one.
type Scheduler struct {
	mu     sync.Mutex
	timer  *time.Timer
	onFire func(Alert)
}

// New returns a scheduler that invokes onFire when an armed alert
// comes due. onFire runs on the timer goroutine; keep it cheap and
// hand off to the event loop (e.g. tea.Program.Send).
func New(onFire func(Alert)) *Scheduler {
	return &Scheduler{onFire: onFire}
}

// Schedule arms the alert to fire after d, superseding any armed
// alert. Delays under one second are raised to one second so an alert
// armed at a phase boundary still reaches the event loop.
func (s *Scheduler) Schedule(d time.Duration, phase engine.Phase, sound bool) {
	if d < time.Second {
		d = time.Second
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.timer != nil {
		s.timer.Stop()
	}
	s.timer = time.AfterFunc(d, func() {
		s.onFire(Alert{Phase: phase, Sound: sound})
	})
}

func (s *Scheduler) CancelAll() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
}

// Title returns the alert headline for a completed phase.
func Title(phase engine.Phase) string {
	if phase == engine.PhaseWork {
		return "Focus session complete!"
	}
	return "Break is over!"
}

// Body returns the alert detail line for a completed phase.
func Body(phase engine.Phase) string {
	if phase == engine.PhaseWork {
		return "Great work! Time for a break."
	}
	return "Ready to focus again?"
}
