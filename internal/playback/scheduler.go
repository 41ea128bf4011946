package playback

import (
	"sync"
	"time"
)

// Timer is a repeating timer armed by a Scheduler.
type Timer interface {
	// Stop cancels the timer. It does not wait for a tick that is already
	// being delivered; Controller.Tick discards such ticks.
	Stop()
}

// Scheduler arms repeating timers.
type Scheduler interface {
	Every(d time.Duration) Timer
}

// TickerScheduler arms time.Ticker-backed timers and hands every tick to
// sink along with the timer that produced it. sink runs on the timer's
// goroutine and may block until the owner's loop accepts the tick.
type TickerScheduler struct {
	sink func(Timer)
}

func NewTickerScheduler(sink func(Timer)) *TickerScheduler {
	return &TickerScheduler{sink: sink}
}

func (s *TickerScheduler) Every(d time.Duration) Timer {
	t := &tickerTimer{
		ticker: time.NewTicker(d),
		done:   make(chan struct{}),
	}
	go t.run(s.sink)
	return t
}

type tickerTimer struct {
	ticker *time.Ticker
	done   chan struct{}
	once   sync.Once
}

func (t *tickerTimer) run(sink func(Timer)) {
	for {
		select {
		case <-t.done:
			return
		case <-t.ticker.C:
			// Stop may have won the race with this tick.
			select {
			case <-t.done:
				return
			default:
			}
			sink(t)
		}
	}
}

func (t *tickerTimer) Stop() {
	t.once.Do(func() {
		t.ticker.Stop()
		close(t.done)
	})
}
