package poller

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/goodnatureofminers/tezwatch-backend/internal/model"
	"github.com/goodnatureofminers/tezwatch-backend/pkg/workerpool"
	"go.uber.org/zap"
)

// Task is a polling loop run by the Scheduler.
type Task interface {
	Run(ctx context.Context) error
	Target() model.PollTarget
	LastTick() time.Time
}

// TaskStatus describes one scheduled task.
type TaskStatus struct {
	Kind     model.TargetKind `json:"kind"`
	Key      string           `json:"key"`
	Name     string           `json:"name"`
	Interval time.Duration    `json:"interval"`
	LastTick time.Time        `json:"last_tick"`
}

// Scheduler runs every task on its own goroutine. A task that fails or panics is
// restarted after its interval; it never affects the other tasks.
type Scheduler struct {
	tasks  []Task
	sleep  func(context.Context, time.Duration) error
	logger *zap.Logger
}

// NewScheduler creates a Scheduler for tasks.
func NewScheduler(logger *zap.Logger, sleep func(context.Context, time.Duration) error, tasks ...Task) *Scheduler {
	return &Scheduler{tasks: tasks, sleep: sleep, logger: logger}
}

// Run blocks until ctx is canceled and every task returned.
func (s *Scheduler) Run(ctx context.Context) error {
	if len(s.tasks) == 0 {
		<-ctx.Done()
		return nil
	}
	s.logger.Info("starting pollers", zap.Int("tasks", len(s.tasks)))
	err := workerpool.Run(ctx, s.tasks, s.supervise)
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

func (s *Scheduler) supervise(ctx context.Context, t Task) error {
	target := t.Target()
	logger := s.logger.With(zap.String("kind", string(target.Kind)), zap.String("target", target.Key))
	for {
		err := runSafely(ctx, t)
		if ctx.Err() != nil {
			return nil
		}
		logger.Error("poller exited, restarting", zap.Error(err), zap.Duration("after", target.Interval))
		if err := s.sleep(ctx, target.Interval); err != nil {
			return nil
		}
	}
}

func runSafely(ctx context.Context, t Task) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("poller panic: %v", r)
		}
	}()
	if err := t.Run(ctx); err != nil {
		return err
	}
	return errors.New("poller returned")
}

// Status returns the state of every task in scheduling order.
func (s *Scheduler) Status() []TaskStatus {
	out := make([]TaskStatus, 0, len(s.tasks))
	for _, t := range s.tasks {
		target := t.Target()
		out = append(out, TaskStatus{
			Kind:     target.Kind,
			Key:      target.Key,
			Name:     target.DisplayName(),
			Interval: target.Interval,
			LastTick: t.LastTick(),
		})
	}
	return out
}
