package core

import "time"

// Scheduler runs fn once after d. The returned func cancels it.
type Scheduler interface {
	After(d time.Duration, fn func()) (stop func())
}

type timerScheduler struct{}

// NewTimerScheduler returns a Scheduler backed by time.AfterFunc.
func NewTimerScheduler() Scheduler {
	return timerScheduler{}
}

func (timerScheduler) After(d time.Duration, fn func()) func() {
	t := time.AfterFunc(d, fn)
	return func() { t.Stop() }
}
