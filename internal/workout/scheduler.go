package workout

import (
	"sync"
	"time"
)

// Cancel stops a scheduled callback. Safe to call more than once.
type Cancel func()

// Scheduler runs the session's timers. Tests replace it to fire ticks by hand.
type Scheduler interface {
	Every(interval time.Duration, fn func()) Cancel
	After(delay time.Duration, fn func()) Cancel
}

var _ Scheduler = ClockScheduler{}

// ClockScheduler runs callbacks on wall-clock timers.
type ClockScheduler struct{}

func (ClockScheduler) Every(interval time.Duration, fn func()) Cancel {
	ticker := time.NewTicker(interval)
	done := make(chan struct{})
	go func() {
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				fn()
			}
		}
	}()

	var once sync.Once
	return func() {
		once.Do(func() {
			ticker.Stop()
			close(done)
		})
	}
}

func (ClockScheduler) After(delay time.Duration, fn func()) Cancel {
	timer := time.AfterFunc(delay, fn)
	return func() {
		timer.Stop()
	}
}
