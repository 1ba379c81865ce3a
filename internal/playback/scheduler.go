package playback

import (
	"sync"
	"time"
)

// Handle is a running periodic task.
type Handle interface {
	Cancel()
}

// Scheduler runs fn every d until the returned handle is cancelled.
type Scheduler interface {
	Every(d time.Duration, fn func()) Handle
}

// TickerScheduler runs callbacks from a time.Ticker goroutine.
type TickerScheduler struct{}

var _ Scheduler = TickerScheduler{}

type tickerHandle struct {
	done chan struct{}
	once sync.Once
}

func (TickerScheduler) Every(d time.Duration, fn func()) Handle {
	h := &tickerHandle{done: make(chan struct{})}
	ticker := time.NewTicker(d)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-h.done:
				return
			case <-ticker.C:
				fn()
			}
		}
	}()
	return h
}

func (h *tickerHandle) Cancel() {
	h.once.Do(func() { close(h.done) })
}
