package poller

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/goodnatureofminers/tezwatch-backend/internal/model"
	"github.com/goodnatureofminers/tezwatch-backend/internal/retry"
	"github.com/goodnatureofminers/tezwatch-backend/internal/tezos"
	"go.uber.org/zap"
)

// BakerPoller keeps the BakerRecord of one delegate current and derives its baking
// and endorsing events from the blocks of its node.
//
// Endorsements for level L are included in block L+1, so a tick scans the levels
// after LastCheckedLevel up to head-1.
type BakerPoller struct {
	target  model.PollTarget
	client  NodeClient
	store   BakerStore
	rights  *RightsCache
	metrics PollerMetrics
	logger  *zap.Logger
	opts    options
	loop    *loop

	// Owned by the polling goroutine.
	record model.BakerRecord
}

// NewBakerPoller builds a BakerPoller for target. client talks to target.NodeURL.
func NewBakerPoller(
	target model.PollTarget,
	client NodeClient,
	bakerStore BakerStore,
	rights *RightsCache,
	metrics PollerMetrics,
	logger *zap.Logger,
	opts ...Option,
) (*BakerPoller, error) {
	if client == nil || bakerStore == nil || rights == nil {
		return nil, errors.New("baker poller client, store and rights cache are required")
	}
	if metrics == nil {
		return nil, errors.New("baker poller metrics is required")
	}
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	target.Interval = intervalOr(target.Interval, DefaultBakerInterval)

	return &BakerPoller{
		target:  target,
		client:  client,
		store:   bakerStore,
		rights:  rights,
		metrics: metrics,
		logger:  logger.With(zap.String("baker", target.Key), zap.String("node", client.URL())),
		opts:    o,
		loop: &loop{
			interval: target.Interval,
			sleep:    o.sleep,
			jitter:   o.jitter,
		},
		record: model.BakerRecord{
			Address: target.Key,
			Name:    target.DisplayName(),
		},
	}, nil
}

// Restore seeds the event history, e.g. from persisted events, before Run.
// Events the first scan derives again are not recorded or notified twice.
func (p *BakerPoller) Restore(events []model.BakingEvent, lastCheckedLevel int64) {
	p.record.RecentEvents = nil
	p.record.PushEvents(p.opts.eventsLimit, events...)
	p.record.LastCheckedLevel = lastCheckedLevel
}

// Target returns the polled target.
func (p *BakerPoller) Target() model.PollTarget { return p.target }

// LastTick returns when the last poll finished.
func (p *BakerPoller) LastTick() time.Time { return p.loop.lastTick() }

// Run polls until ctx is canceled. Poll failures are recorded, never returned.
func (p *BakerPoller) Run(ctx context.Context) error {
	p.logger.Info("baker poller started", zap.Duration("interval", p.target.Interval))
	p.loop.run(ctx, p.tick)
	p.logger.Info("baker poller stopped")
	return nil
}

func (p *BakerPoller) tick(ctx context.Context) {
	started := time.Now()
	next, events, err := p.poll(ctx)
	if err != nil && ctx.Err() != nil {
		return
	}
	reachable := err == nil || !tezos.IsUnreachable(err)
	p.metrics.ObserveTick(err, reachable, started)

	switch {
	case err != nil && !reachable:
		// Drop whatever the failed poll gathered; the levels are scanned again next tick.
		next, events = p.record.Clone(), nil
		next.Error = err.Error()
		next.UnableToReach = true
		p.logger.Warn("baker node unreachable", zap.Error(err))
	case err != nil:
		next.Error = err.Error()
		next.UnableToReach = false
		p.logger.Error("baker poll failed", zap.Error(err))
	default:
		next.Error = ""
		next.UnableToReach = false
	}
	next.UpdatedAt = p.opts.clock.Now()

	if err := p.store.UpsertBaker(next); err != nil {
		p.logger.Error("upsert baker record failed", zap.Error(err))
		return
	}
	p.record = next

	if len(events) == 0 {
		return
	}
	var faults []model.BakingEvent
	for _, e := range events {
		p.metrics.ObserveEvent(string(e.Kind))
		if e.Kind.IsFault() {
			faults = append(faults, e)
		}
	}
	if p.opts.history != nil {
		if err := p.opts.history.RecordBakerEvents(ctx, next.Address, events); err != nil {
			p.logger.Warn("record baker events failed", zap.Error(err))
		}
	}
	if p.opts.notifier != nil && len(faults) > 0 {
		p.opts.notifier.BakerFaults(ctx, next, faults)
	}
}

// poll returns the next record and the events it gained. Events already in
// RecentEvents are not returned. On error the record still carries every level
// processed before the failure.
func (p *BakerPoller) poll(ctx context.Context) (model.BakerRecord, []model.BakingEvent, error) {
	next := p.record.Clone()

	head, err := retry.Do(ctx, p.opts.retry, p.logger, "header", func(ctx context.Context) (tezos.BlockHeader, error) {
		return p.client.Header(ctx, "head")
	})
	if err != nil {
		return next, nil, fmt.Errorf("get head header: %w", err)
	}

	delegate, err := retry.Do(ctx, p.opts.retry, p.logger, "delegate", func(ctx context.Context) (tezos.Delegate, error) {
		return p.client.Delegate(ctx, head.Hash, p.target.Key, head.Protocol)
	})
	if err != nil {
		return next, nil, fmt.Errorf("get delegate %s: %w", p.target.Key, err)
	}
	next.Balance = delegate.Balance
	next.FrozenBalance = delegate.FrozenBalance
	next.StakingBalance = delegate.StakingBalance
	next.Deactivated = delegate.Deactivated
	next.GracePeriod = delegate.GracePeriod

	from, to := p.scanRange(head.Level)
	if from > to {
		return next, nil, nil
	}

	s := &scan{poller: p, head: head, blocks: make(map[int64]tezos.Block)}
	var perLevel [][]model.BakingEvent
	for level := from; level <= to; level++ {
		events, err := s.level(ctx, level)
		if err != nil {
			added := next.PushEvents(p.opts.eventsLimit, flatten(perLevel)...)
			return next, added, fmt.Errorf("scan level %d: %w", level, err)
		}
		perLevel = append(perLevel, events)
		next.LastCheckedLevel = level
	}
	added := next.PushEvents(p.opts.eventsLimit, flatten(perLevel)...)
	return next, added, nil
}

// scanRange returns the inclusive range of levels to check, never more than maxCatchUp.
func (p *BakerPoller) scanRange(headLevel int64) (int64, int64) {
	to := headLevel - 1
	if to < 1 {
		return 1, 0
	}
	from := p.record.LastCheckedLevel + 1
	if p.record.LastCheckedLevel == 0 {
		from = to
	}
	if to-from+1 > p.opts.maxCatchUp {
		skipped := to - p.opts.maxCatchUp + 1 - from
		from = to - p.opts.maxCatchUp + 1
		p.logger.Warn("baker fell behind, skipping levels",
			zap.Int64("skipped", skipped), zap.Int64("from", from), zap.Int64("to", to))
	}
	return from, to
}

// flatten orders per-level events (ascending levels) most-recent-first.
func flatten(perLevel [][]model.BakingEvent) []model.BakingEvent {
	var out []model.BakingEvent
	for i := len(perLevel) - 1; i >= 0; i-- {
		out = append(out, perLevel[i]...)
	}
	return out
}

// scan caches blocks across the levels of one tick.
type scan struct {
	poller *BakerPoller
	head   tezos.BlockHeader
	blocks map[int64]tezos.Block
}

func (s *scan) block(ctx context.Context, level int64) (tezos.Block, error) {
	if b, ok := s.blocks[level]; ok {
		return b, nil
	}
	p := s.poller
	b, err := retry.Do(ctx, p.opts.retry, p.logger, "block", func(ctx context.Context) (tezos.Block, error) {
		return p.client.Block(ctx, level, s.head.Protocol)
	})
	if err != nil {
		return tezos.Block{}, fmt.Errorf("get block %d: %w", level, err)
	}
	s.blocks[level] = b
	return b, nil
}

func (s *scan) rights(ctx context.Context, kind rightsKind, level int64) ([]tezos.Right, error) {
	p := s.poller
	key := rightsKey{chain: s.head.ChainID, kind: kind, level: level}
	rights, err := p.rights.get(ctx, key, func(ctx context.Context) ([]tezos.Right, error) {
		return retry.Do(ctx, p.opts.retry, p.logger, string(kind)+"_rights", func(ctx context.Context) ([]tezos.Right, error) {
			if kind == bakingRights {
				return p.client.BakingRights(ctx, level, s.head.Protocol)
			}
			return p.client.EndorsingRights(ctx, level, s.head.Protocol)
		})
	})
	if err != nil {
		return nil, fmt.Errorf("get %s rights at %d: %w", kind, level, err)
	}
	return rights, nil
}

// level derives the events of the baker at level: baking first, then endorsing,
// then denunciations included in the block.
func (s *scan) level(ctx context.Context, level int64) ([]model.BakingEvent, error) {
	address := s.poller.target.Key

	blk, err := s.block(ctx, level)
	if err != nil {
		return nil, err
	}
	event := func(kind model.EventKind, lvl int64) model.BakingEvent {
		return model.BakingEvent{
			Kind:      kind,
			Level:     lvl,
			Cycle:     blk.LevelInfo.Cycle,
			Timestamp: blk.Header.Timestamp,
		}
	}
	var events []model.BakingEvent

	baking, err := s.rights(ctx, bakingRights, level)
	if err != nil {
		return nil, err
	}
	// Blocks won at a later round without a round-0 right yield no event.
	if hasBakingRight(baking, address) {
		if blk.Baker == address {
			events = append(events, event(model.EventBaked, level))
		} else {
			events = append(events, event(model.EventMissedBake, level))
		}
	}

	endorsing, err := s.rights(ctx, endorsingRights, level)
	if err != nil {
		return nil, err
	}
	if hasEndorsingRight(endorsing, address) {
		included, err := s.block(ctx, level+1)
		if err != nil {
			return nil, err
		}
		if slices.Contains(included.Endorsers, address) {
			events = append(events, event(model.EventEndorsed, level))
		} else {
			events = append(events, event(model.EventMissedEndorsement, level))
		}
	}

	for _, ev := range blk.Evidence {
		if ev.Offender != address {
			continue
		}
		switch ev.Kind {
		case tezos.EvidenceDoubleBaking:
			events = append(events, event(model.EventDoubleBaked, ev.Level))
		case tezos.EvidenceDoubleEndorsing:
			events = append(events, event(model.EventDoubleEndorsed, ev.Level))
		}
	}
	return events, nil
}

func hasBakingRight(rights []tezos.Right, address string) bool {
	for _, r := range rights {
		if r.Delegate == address && r.Priority == 0 {
			return true
		}
	}
	return false
}

func hasEndorsingRight(rights []tezos.Right, address string) bool {
	for _, r := range rights {
		if r.Delegate == address {
			return true
		}
	}
	return false
}
