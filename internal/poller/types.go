package poller

import (
	"context"
	"time"

	"github.com/goodnatureofminers/tezwatch-backend/internal/model"
	"github.com/goodnatureofminers/tezwatch-backend/internal/tezos"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

type (
	NodeClient interface {
		URL() string
		Header(ctx context.Context, block string) (tezos.BlockHeader, error)
		Bootstrapped(ctx context.Context) (tezos.Bootstrapped, error)
		Version(ctx context.Context) (tezos.Version, error)
		PeerCount(ctx context.Context) (int, error)
		Constants(ctx context.Context, block string) (tezos.Constants, error)
		Metadata(ctx context.Context, block, protocol string) (tezos.LevelInfo, string, error)
		Block(ctx context.Context, level int64, protocol string) (tezos.Block, error)
		Delegate(ctx context.Context, block, address, protocol string) (tezos.Delegate, error)
		BakingRights(ctx context.Context, level int64, protocol string) ([]tezos.Right, error)
		EndorsingRights(ctx context.Context, level int64, protocol string) ([]tezos.Right, error)
	}
	NodeStore interface {
		UpsertNode(r model.NodeRecord) error
		SetNetworkInfo(info model.NetworkInfo) error
	}
	BakerStore interface {
		UpsertBaker(r model.BakerRecord) error
	}
	PollerMetrics interface {
		ObserveTick(err error, reachable bool, started time.Time)
		ObserveEvent(event string)
	}
	Notifier interface {
		NodeReachabilityChanged(ctx context.Context, r model.NodeRecord)
		BakerFaults(ctx context.Context, r model.BakerRecord, events []model.BakingEvent)
	}
	HistoryRecorder interface {
		RecordNodeSnapshot(ctx context.Context, r model.NodeRecord) error
		RecordBakerEvents(ctx context.Context, address string, events []model.BakingEvent) error
	}
	Clock interface {
		Now() time.Time
	}
)
