package poller

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/goodnatureofminers/tezwatch-backend/internal/model"
	"github.com/goodnatureofminers/tezwatch-backend/internal/retry"
	"github.com/goodnatureofminers/tezwatch-backend/internal/store"
	"github.com/goodnatureofminers/tezwatch-backend/internal/tezos"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// NodePoller keeps the NodeRecord of one node current.
type NodePoller struct {
	target  model.PollTarget
	client  NodeClient
	store   NodeStore
	metrics PollerMetrics
	logger  *zap.Logger
	opts    options
	loop    *loop

	// Owned by the polling goroutine.
	record         model.NodeRecord
	protocol       string
	blocksPerCycle int64
}

// NewNodePoller builds a NodePoller for target.
func NewNodePoller(
	target model.PollTarget,
	client NodeClient,
	nodeStore NodeStore,
	metrics PollerMetrics,
	logger *zap.Logger,
	opts ...Option,
) (*NodePoller, error) {
	if client == nil || nodeStore == nil {
		return nil, errors.New("node poller client and store are required")
	}
	if metrics == nil {
		return nil, errors.New("node poller metrics is required")
	}
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	target.Interval = intervalOr(target.Interval, DefaultNodeInterval)

	return &NodePoller{
		target:  target,
		client:  client,
		store:   nodeStore,
		metrics: metrics,
		logger:  logger.With(zap.String("node", target.Key)),
		opts:    o,
		loop: &loop{
			interval: target.Interval,
			sleep:    o.sleep,
			jitter:   o.jitter,
		},
		record: model.NodeRecord{
			URL:        target.Key,
			Name:       target.DisplayName(),
			SyncStatus: model.SyncUnknown,
		},
		protocol:       o.protocol,
		blocksPerCycle: o.blocksPerCycle,
	}, nil
}

// Target returns the polled target.
func (p *NodePoller) Target() model.PollTarget { return p.target }

// LastTick returns when the last poll finished.
func (p *NodePoller) LastTick() time.Time { return p.loop.lastTick() }

// Run polls until ctx is canceled. Poll failures are recorded, never returned.
func (p *NodePoller) Run(ctx context.Context) error {
	p.logger.Info("node poller started", zap.Duration("interval", p.target.Interval))
	p.loop.run(ctx, p.tick)
	p.logger.Info("node poller stopped")
	return nil
}

type nodeStatus struct {
	header  tezos.BlockHeader
	boot    tezos.Bootstrapped
	version tezos.Version
	level   tezos.LevelInfo
	peers   *int
}

func (p *NodePoller) tick(ctx context.Context) {
	started := time.Now()
	status, err := p.fetch(ctx)
	if err != nil && ctx.Err() != nil {
		return
	}
	reachable := err == nil || !tezos.IsUnreachable(err)
	p.metrics.ObserveTick(err, reachable, started)

	wasReachable := !p.record.UnableToReach
	var next model.NodeRecord
	if err != nil {
		next = p.failed(err)
	} else {
		next = p.succeeded(ctx, status)
	}
	next.UpdatedAt = p.opts.clock.Now()

	if err := p.store.UpsertNode(next); err != nil {
		p.logger.Error("upsert node record failed", zap.Error(err))
		return
	}
	p.record = next

	if err == nil {
		p.publishNetwork(status, next)
	}
	if p.opts.history != nil {
		if err := p.opts.history.RecordNodeSnapshot(ctx, next); err != nil {
			p.logger.Warn("record node snapshot failed", zap.Error(err))
		}
	}
	if p.opts.notifier != nil && wasReachable != !next.UnableToReach {
		p.opts.notifier.NodeReachabilityChanged(ctx, next)
	}
}

func (p *NodePoller) fetch(ctx context.Context) (nodeStatus, error) {
	var s nodeStatus
	header, err := retry.Do(ctx, p.opts.retry, p.logger, "header", func(ctx context.Context) (tezos.BlockHeader, error) {
		return p.client.Header(ctx, "head")
	})
	if err != nil {
		return s, fmt.Errorf("get head header: %w", err)
	}
	s.header = header

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		s.boot, err = retry.Do(gctx, p.opts.retry, p.logger, "is_bootstrapped", p.client.Bootstrapped)
		if err != nil {
			return fmt.Errorf("get bootstrap state: %w", err)
		}
		return nil
	})
	g.Go(func() (err error) {
		s.version, err = retry.Do(gctx, p.opts.retry, p.logger, "version", p.client.Version)
		if err != nil {
			return fmt.Errorf("get version: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		info, _, err := p.metadata(gctx, header)
		if err != nil {
			return fmt.Errorf("get head metadata: %w", err)
		}
		s.level = info
		return nil
	})
	g.Go(func() error {
		peers, err := p.client.PeerCount(gctx)
		if err != nil {
			// Many public nodes hide /network; leave the count unknown.
			p.logger.Debug("peer count unavailable", zap.Error(err))
			return nil
		}
		s.peers = &peers
		return nil
	})
	if err := g.Wait(); err != nil {
		return s, err
	}
	return s, nil
}

type metadataResult struct {
	info  tezos.LevelInfo
	baker string
}

func (p *NodePoller) metadata(ctx context.Context, header tezos.BlockHeader) (tezos.LevelInfo, string, error) {
	res, err := retry.Do(ctx, p.opts.retry, p.logger, "metadata", func(ctx context.Context) (metadataResult, error) {
		info, baker, err := p.client.Metadata(ctx, header.Hash, header.Protocol)
		return metadataResult{info: info, baker: baker}, err
	})
	return res.info, res.baker, err
}

func (p *NodePoller) succeeded(ctx context.Context, s nodeStatus) model.NodeRecord {
	next := p.record.Clone()
	next.UnableToReach = false
	next.Error = ""
	next.SyncStatus = syncStatus(s.boot)
	next.PeerCount = s.peers
	next.ChainName = s.version.NetworkVersion.ChainName
	next.Protocol = s.header.Protocol
	next.TezosVersion = s.version.String()
	next.CommitHash = s.version.CommitInfo.CommitHash
	next.PushBlock(model.RecentBlock{
		Hash:      s.header.Hash,
		Level:     s.header.Level,
		Timestamp: s.header.Timestamp,
		Priority:  s.header.Priority,
		Protocol:  s.header.Protocol,
	})
	p.refreshConstants(ctx, s.header)
	return next
}

func syncStatus(b tezos.Bootstrapped) model.SyncStatus {
	status := model.ParseSyncStatus(b.SyncState)
	if status == model.SyncUnknown && b.Bootstrapped {
		return model.SyncSynced
	}
	return status
}

// failed keeps the display identity of the node and drops everything the failed poll
// could not confirm.
func (p *NodePoller) failed(err error) model.NodeRecord {
	next := p.record.Clone()
	next.Error = err.Error()
	if tezos.IsUnreachable(err) {
		next.UnableToReach = true
		next.SyncStatus = model.SyncUnknown
		next.PeerCount = nil
		next.Protocol = ""
		p.logger.Warn("node unreachable", zap.Error(err))
		return next
	}
	next.UnableToReach = false
	p.logger.Error("node poll failed", zap.Error(err))
	return next
}

func (p *NodePoller) refreshConstants(ctx context.Context, header tezos.BlockHeader) {
	if header.Protocol == p.protocol && p.blocksPerCycle > 0 {
		return
	}
	k, err := retry.Do(ctx, p.opts.retry, p.logger, "constants", func(ctx context.Context) (tezos.Constants, error) {
		return p.client.Constants(ctx, header.Hash)
	})
	if err != nil {
		p.logger.Warn("refresh protocol constants failed", zap.String("protocol", tezos.ShortProtocol(header.Protocol)), zap.Error(err))
		return
	}
	p.protocol = header.Protocol
	p.blocksPerCycle = k.BlocksPerCycle
}

func (p *NodePoller) publishNetwork(s nodeStatus, r model.NodeRecord) {
	err := p.store.SetNetworkInfo(model.NetworkInfo{
		Cycle:          s.level.Cycle,
		CyclePosition:  s.level.CyclePosition,
		BlocksPerCycle: p.blocksPerCycle,
		Level:          s.header.Level,
		ChainName:      r.ChainName,
		Protocol:       s.header.Protocol,
		UpdatedAt:      r.UpdatedAt,
	})
	switch {
	case errors.Is(err, store.ErrStaleRecord):
		p.logger.Debug("network info superseded by another node", zap.Error(err))
	case err != nil:
		p.logger.Error("publish network info failed", zap.Error(err))
	}
}
