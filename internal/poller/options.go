package poller

import (
	"context"
	"time"

	"github.com/goodnatureofminers/tezwatch-backend/internal/clock"
	"github.com/goodnatureofminers/tezwatch-backend/internal/model"
	"github.com/goodnatureofminers/tezwatch-backend/internal/retry"
)

const (
	DefaultNodeInterval  = 10 * time.Second
	DefaultBakerInterval = 30 * time.Second
	// DefaultMaxCatchUp bounds the levels a baker poller scans in one tick.
	DefaultMaxCatchUp = 10
	// StartJitterFraction spreads the first tick of each poller over part of its interval.
	StartJitterFraction = 0.2
)

type options struct {
	retry          retry.Policy
	clock          Clock
	sleep          func(context.Context, time.Duration) error
	jitter         func(time.Duration) time.Duration
	notifier       Notifier
	history        HistoryRecorder
	eventsLimit    int
	maxCatchUp     int64
	protocol       string
	blocksPerCycle int64
}

// Option customizes a poller.
type Option func(*options)

func defaultOptions() options {
	return options{
		retry: retry.NotFound,
		clock: clock.NewMonotonic(nil),
		sleep: clock.Sleep,
		jitter: func(d time.Duration) time.Duration {
			return clock.Jitter(d, StartJitterFraction)
		},
		eventsLimit: model.DefaultEventsLimit,
		maxCatchUp:  DefaultMaxCatchUp,
	}
}

// WithRetryPolicy replaces the not-found retry policy of every RPC call.
func WithRetryPolicy(p retry.Policy) Option {
	return func(o *options) { o.retry = p }
}

// WithClock sets the clock stamping UpdatedAt. It must never go backwards.
func WithClock(c Clock) Option {
	return func(o *options) { o.clock = c }
}

// WithSleep replaces the wait between ticks.
func WithSleep(sleep func(context.Context, time.Duration) error) Option {
	return func(o *options) { o.sleep = sleep }
}

// WithoutJitter starts polling immediately.
func WithoutJitter() Option {
	return func(o *options) { o.jitter = func(time.Duration) time.Duration { return 0 } }
}

// WithNotifier forwards reachability changes and baker faults.
func WithNotifier(n Notifier) Option {
	return func(o *options) { o.notifier = n }
}

// WithHistory records snapshots and events.
func WithHistory(h HistoryRecorder) Option {
	return func(o *options) { o.history = h }
}

// WithEventsLimit bounds BakerRecord.RecentEvents.
func WithEventsLimit(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.eventsLimit = n
		}
	}
}

// WithMaxCatchUp bounds the levels scanned per baker tick.
func WithMaxCatchUp(n int64) Option {
	return func(o *options) {
		if n > 0 {
			o.maxCatchUp = n
		}
	}
}

// WithConstants seeds the blocks-per-cycle constant known for protocol.
func WithConstants(protocol string, blocksPerCycle int64) Option {
	return func(o *options) {
		o.protocol = protocol
		o.blocksPerCycle = blocksPerCycle
	}
}

func intervalOr(d, fallback time.Duration) time.Duration {
	if d > 0 {
		return d
	}
	return fallback
}
