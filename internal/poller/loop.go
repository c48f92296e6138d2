package poller

import (
	"context"
	"sync"
	"time"
)

// loop runs tick on a fixed interval until ctx is done. Ticks never overlap.
type loop struct {
	interval time.Duration
	sleep    func(context.Context, time.Duration) error
	jitter   func(time.Duration) time.Duration

	mu   sync.Mutex
	last time.Time
}

func (l *loop) run(ctx context.Context, tick func(context.Context)) {
	if err := l.sleep(ctx, l.jitter(l.interval)); err != nil {
		return
	}
	for {
		tick(ctx)
		l.mu.Lock()
		l.last = time.Now()
		l.mu.Unlock()
		if err := l.sleep(ctx, l.interval); err != nil {
			return
		}
	}
}

// lastTick returns when the last tick finished; the value keeps its monotonic reading.
func (l *loop) lastTick() time.Time {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.last
}
