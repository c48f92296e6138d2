// Package retry wraps upstream calls with the two retry policies the monitor uses:
// a short bounded retry on not-found answers and an unbounded retry for startup data.
package retry

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/goodnatureofminers/tezwatch-backend/internal/tezos"
	goretry "github.com/sethvargo/go-retry"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const (
	VariantNotFound = "not_found"
	VariantForever  = "forever"
)

// Observer records scheduled retries.
type Observer interface {
	ObserveRetry(variant, label string)
}

// Policy configures Do. A zero MaxRetries retries without limit.
type Policy struct {
	Variant    string
	Delay      time.Duration
	MaxRetries uint64
	Retryable  func(error) bool
	Level      zapcore.Level
	Observer   Observer
}

// NotFound retries a call twice, one second apart, when the node answered 404.
var NotFound = Policy{
	Variant:    VariantNotFound,
	Delay:      time.Second,
	MaxRetries: 2,
	Retryable:  IsNotFound,
	Level:      zapcore.InfoLevel,
}

// IsNotFound reports whether err is a not-found answer from the node.
func IsNotFound(err error) bool {
	return errors.Is(err, tezos.ErrNotFound)
}

// ForeverPolicy returns a policy that retries any failure every interval until ctx is done.
func ForeverPolicy(interval time.Duration) Policy {
	return Policy{
		Variant:   VariantForever,
		Delay:     interval,
		Retryable: func(error) bool { return true },
		Level:     zapcore.WarnLevel,
	}
}

// WithObserver returns a copy of p reporting to o.
func (p Policy) WithObserver(o Observer) Policy {
	p.Observer = o
	return p
}

// OnNotFound runs call under the NotFound policy.
func OnNotFound[T any](ctx context.Context, logger *zap.Logger, label string, call func(context.Context) (T, error)) (T, error) {
	return Do(ctx, NotFound, logger, label, call)
}

// Forever runs call until it succeeds, waiting interval after every failure.
// Only ctx cancellation stops it.
func Forever[T any](ctx context.Context, logger *zap.Logger, label string, interval time.Duration, call func(context.Context) (T, error)) (T, error) {
	return Do(ctx, ForeverPolicy(interval), logger, label, call)
}

// Do runs call, retrying errors accepted by p.Retryable with a constant delay.
// Errors that are not retryable are returned unchanged, as is the last error once
// the retries are exhausted.
func Do[T any](ctx context.Context, p Policy, logger *zap.Logger, label string, call func(context.Context) (T, error)) (T, error) {
	var zero T

	if p.Delay <= 0 {
		return zero, fmt.Errorf("retry %s: delay must be positive", label)
	}
	inner := goretry.NewConstant(p.Delay)
	if p.MaxRetries > 0 {
		inner = goretry.WithMaxRetries(p.MaxRetries, inner)
	}

	// go-retry calls the function and the backoff from this goroutine only.
	var (
		attempt int64
		lastErr error
		result  T
	)
	backoff := goretry.BackoffFunc(func() (time.Duration, bool) {
		next, stop := inner.Next()
		if stop {
			return next, stop
		}
		if ce := logger.Check(p.Level, "call failed, retrying"); ce != nil {
			ce.Write(
				zap.String("variant", p.Variant),
				zap.String("call", label),
				zap.Int64("attempt", attempt),
				zap.Duration("interval", next),
				zap.Error(lastErr),
			)
		}
		if p.Observer != nil {
			p.Observer.ObserveRetry(p.Variant, label)
		}
		return next, stop
	})

	err := goretry.Do(ctx, backoff, func(ctx context.Context) error {
		attempt++
		v, err := call(ctx)
		if err == nil {
			result = v
			return nil
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		if p.Retryable == nil || !p.Retryable(err) {
			return err
		}
		lastErr = err
		return goretry.RetryableError(err)
	})
	if err != nil {
		return zero, err
	}
	return result, nil
}
