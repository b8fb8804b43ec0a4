package timeline

import (
	"sync"
	"time"
)

// A tickTask runs a callback on a fixed period until stopped, passing
// the wall-clock time elapsed since the previous invocation. Ticks
// never overlap; the callback runs on one goroutine.
type tickTask struct {
	ticker *time.Ticker
	done   chan struct{}
	once   sync.Once
}

func startTickTask(period time.Duration, fn func(elapsed time.Duration)) *tickTask {
	t := &tickTask{
		ticker: time.NewTicker(period),
		done:   make(chan struct{}),
	}

	go func() {
		last := time.Now()
		for {
			select {
			case now := <-t.ticker.C:
				fn(now.Sub(last))
				last = now
			case <-t.done:
				t.ticker.Stop()
				return
			}
		}
	}()

	return t
}

// stop cancels the task. Safe to call more than once and from within
// the task's own callback.
func (t *tickTask) stop() {
	t.once.Do(func() {
		close(t.done)
	})
}
