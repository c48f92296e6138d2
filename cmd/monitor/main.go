package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/goodnatureofminers/tezwatch-backend/internal/clock"
	"github.com/goodnatureofminers/tezwatch-backend/internal/config"
	"github.com/goodnatureofminers/tezwatch-backend/internal/history"
	"github.com/goodnatureofminers/tezwatch-backend/internal/metrics"
	"github.com/goodnatureofminers/tezwatch-backend/internal/model"
	"github.com/goodnatureofminers/tezwatch-backend/internal/notify"
	"github.com/goodnatureofminers/tezwatch-backend/internal/poller"
	"github.com/goodnatureofminers/tezwatch-backend/internal/query"
	"github.com/goodnatureofminers/tezwatch-backend/internal/retry"
	"github.com/goodnatureofminers/tezwatch-backend/internal/settings"
	"github.com/goodnatureofminers/tezwatch-backend/internal/store"
	"github.com/goodnatureofminers/tezwatch-backend/internal/tezos"
	"github.com/goodnatureofminers/tezwatch-backend/internal/transport"
	"github.com/goodnatureofminers/tezwatch-backend/pkg/batcher"
	"github.com/goodnatureofminers/tezwatch-backend/pkg/workerpool"
	grpcZap "github.com/grpc-ecosystem/go-grpc-middleware/logging/zap"
	gwruntime "github.com/grpc-ecosystem/grpc-gateway/v2/runtime"
	"github.com/jessevdk/go-flags"
	"go.uber.org/zap"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

type options struct {
	Targets              string        `long:"targets" env:"TEZWATCH_TARGETS" description:"targets file (yaml, toml or json)" required:"true"`
	Addr                 string        `long:"addr" env:"TEZWATCH_ADDR" description:"gRPC health addr" default:":8000"`
	RestAddr             string        `long:"rest-addr" env:"TEZWATCH_REST_ADDR" description:"rest addr" default:":8001"`
	HTTPTimeout          time.Duration `long:"http-timeout" env:"TEZWATCH_HTTP_TIMEOUT" description:"timeout of one node RPC request" default:"10s"`
	BootstrapInterval    time.Duration `long:"bootstrap-interval" env:"TEZWATCH_BOOTSTRAP_INTERVAL" description:"retry interval for startup data" default:"5s"`
	RightsCacheSize      int           `long:"rights-cache-size" env:"TEZWATCH_RIGHTS_CACHE_SIZE" description:"cached rights lookups" default:"512"`
	ClickhouseDSN        string        `long:"clickhouse-dsn" env:"TEZWATCH_CLICKHOUSE_DSN" description:"ClickHouse DSN; history is disabled when empty"`
	HistoryFlushSize     int           `long:"history-flush-size" env:"TEZWATCH_HISTORY_FLUSH_SIZE" description:"rows per history insert" default:"500"`
	HistoryFlushInterval time.Duration `long:"history-flush-interval" env:"TEZWATCH_HISTORY_FLUSH_INTERVAL" description:"max delay of a history insert" default:"5s"`
	HistoryRPS           int           `long:"history-rps" env:"TEZWATCH_HISTORY_RPS" description:"history inserts per second" default:"10"`
	SettingsDB           string        `long:"settings-db" env:"TEZWATCH_SETTINGS_DB" description:"SQLite file for dashboard settings" default:"tezwatch.db"`
	NotifyURLs           []string      `long:"notify-url" env:"TEZWATCH_NOTIFY_URLS" env-delim:"," description:"shoutrrr notification URL (repeatable)"`
	LogJSON              bool          `long:"log-json" env:"TEZWATCH_LOG_JSON" description:"log JSON instead of console output"`
}

func main() {
	cfg := options{}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if _, err := flags.ParseArgs(&cfg, os.Args); err != nil {
		var ferr *flags.Error
		if errors.As(err, &ferr) && ferr.Type == flags.ErrHelp {
			return
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	logger, err := newLogger(cfg.LogJSON)
	if err != nil {
		panic("can't initialize zap logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync()
	}()
	grpcZap.ReplaceGrpcLoggerV2(logger)

	if err := run(ctx, cfg, logger); err != nil {
		logger.Fatal("tezwatch monitor failed", zap.Error(err))
	}
}

func newLogger(jsonOutput bool) (*zap.Logger, error) {
	if jsonOutput {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}

func run(ctx context.Context, cfg options, logger *zap.Logger) error {
	started := time.Now()
	targets, err := config.LoadTargets(cfg.Targets)
	if err != nil {
		return err
	}
	logger.Info("targets loaded",
		zap.Int("nodes", len(targets.Nodes)), zap.Int("bakers", len(targets.Bakers)))

	st := store.New(metrics.NewStore())
	defer func() {
		_ = st.Close()
	}()
	if err := registerTargets(st, targets); err != nil {
		return err
	}

	httpClient := &http.Client{Timeout: cfg.HTTPTimeout}
	clients := make(map[string]*tezos.Client, len(targets.Nodes))
	for _, t := range targets.Nodes {
		clients[t.Key] = tezos.NewClient(t.Key, httpClient, metrics.NewRPCClient(t.Key))
	}

	settingsRepo, err := settings.Open(ctx, cfg.SettingsDB)
	if err != nil {
		return err
	}
	defer func() {
		_ = settingsRepo.Close()
	}()

	var pollerOpts []poller.Option
	retryMetrics := metrics.NewRetry()
	pollerOpts = append(pollerOpts, poller.WithRetryPolicy(retry.NotFound.WithObserver(retryMetrics)))

	var notifier *notify.Notifier
	if len(cfg.NotifyURLs) > 0 {
		sender, err := notify.NewShoutrrrSender(cfg.NotifyURLs...)
		if err != nil {
			return err
		}
		notifier, err = notify.New(sender, logger.Named("notify"), notify.DefaultQueueSize)
		if err != nil {
			return err
		}
		go notifier.Run(ctx)
		pollerOpts = append(pollerOpts, poller.WithNotifier(notifier))
	}

	var historyRepo *history.Repository
	if cfg.ClickhouseDSN != "" {
		historyRepo, err = history.NewRepository(cfg.ClickhouseDSN, metrics.NewHistoryRepository())
		if err != nil {
			return fmt.Errorf("init history repository: %w", err)
		}
		defer func() {
			_ = historyRepo.Close()
		}()
		recorder := history.NewRecorder(historyRepo, logger.Named("history"), history.RecorderConfig{
			Batch: batcher.Config{
				FlushSize:     cfg.HistoryFlushSize,
				FlushInterval: cfg.HistoryFlushInterval,
				RPS:           cfg.HistoryRPS,
			},
			SnapshotObserver: metrics.NewBatcher("node_snapshots"),
			EventObserver:    metrics.NewBatcher("baker_events"),
		})
		recorder.Start(ctx)
		defer recorder.Stop()
		pollerOpts = append(pollerOpts, poller.WithHistory(recorder))
	}

	grpcServer, healthServer := transport.NewGRPCServer(logger)
	socket, err := net.Listen("tcp", cfg.Addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", cfg.Addr, err)
	}
	go func() {
		if serveErr := grpcServer.Serve(socket); serveErr != nil {
			logger.Error("gRPC server stopped", zap.Error(serveErr))
		}
	}()
	defer func() {
		logger.Info("Shutting down gRPC server")
		grpcServer.GracefulStop()
	}()

	protocol, blocksPerCycle, err := bootstrap(ctx, cfg, targets, clients, retryMetrics, logger)
	if err != nil {
		return err
	}
	pollerOpts = append(pollerOpts,
		poller.WithConstants(protocol, blocksPerCycle),
		poller.WithEventsLimit(targets.EventsLimit),
	)

	tasks, err := buildPollers(ctx, targets, clients, st, historyRepo, cfg.RightsCacheSize, logger, pollerOpts)
	if err != nil {
		return err
	}
	scheduler := poller.NewScheduler(logger.Named("scheduler"), clock.Sleep, tasks...)

	svc, err := query.NewService(st, settingsRepo, scheduler, query.Info{
		Version:              version,
		StartedAt:            started,
		ConfiguredNodes:      len(targets.Nodes),
		ConfiguredBakers:     len(targets.Bakers),
		HistoryEnabled:       historyRepo != nil,
		NotificationsEnabled: notifier != nil,
	})
	if err != nil {
		return err
	}
	gw := gwruntime.NewServeMux()
	if err := transport.NewRESTHandler(svc, logger.Named("rest")).Register(gw); err != nil {
		return err
	}
	httpServer := transport.NewHTTPServer(cfg.RestAddr, gw)
	go func() {
		logger.Info("Starting HTTP server", zap.String("addr", cfg.RestAddr))
		if err := httpServer.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			logger.Error("Failed to listen and serve", zap.Error(err))
		}
	}()
	healthServer.SetServingStatus("", healthpb.HealthCheckResponse_SERVING)

	err = scheduler.Run(ctx)

	healthServer.Shutdown()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	logger.Info("Shutting down the http server")
	if shutdownErr := httpServer.Shutdown(shutdownCtx); shutdownErr != nil {
		logger.Error("Failed to shutdown http server", zap.Error(shutdownErr))
	}
	return err
}

func registerTargets(st *store.Store, targets config.Targets) error {
	nodes := make([]model.NodeRecord, 0, len(targets.Nodes))
	for _, t := range targets.Nodes {
		nodes = append(nodes, model.NodeRecord{URL: t.Key, Name: t.DisplayName(), SyncStatus: model.SyncUnknown})
	}
	if err := st.RegisterNodes(nodes...); err != nil {
		return fmt.Errorf("register nodes: %w", err)
	}
	bakers := make([]model.BakerRecord, 0, len(targets.Bakers))
	for _, t := range targets.Bakers {
		bakers = append(bakers, model.BakerRecord{Address: t.Key, Name: t.DisplayName()})
	}
	if err := st.RegisterBakers(bakers...); err != nil {
		return fmt.Errorf("register bakers: %w", err)
	}
	return nil
}

// bootstrap fetches the protocol and its blocks-per-cycle constant, trying every node
// in turn until one answers. It only gives up when ctx is canceled.
func bootstrap(
	ctx context.Context,
	cfg options,
	targets config.Targets,
	clients map[string]*tezos.Client,
	observer retry.Observer,
	logger *zap.Logger,
) (string, int64, error) {
	type startup struct {
		protocol       string
		chainID        string
		blocksPerCycle int64
	}
	attempt := 0
	policy := retry.ForeverPolicy(cfg.BootstrapInterval).WithObserver(observer)
	s, err := retry.Do(ctx, policy, logger, "bootstrap", func(ctx context.Context) (startup, error) {
		client := clients[targets.Nodes[attempt%len(targets.Nodes)].Key]
		attempt++
		head, err := client.Header(ctx, "head")
		if err != nil {
			return startup{}, fmt.Errorf("get head header from %s: %w", client.URL(), err)
		}
		constants, err := client.Constants(ctx, head.Hash)
		if err != nil {
			return startup{}, fmt.Errorf("get constants from %s: %w", client.URL(), err)
		}
		return startup{protocol: head.Protocol, chainID: head.ChainID, blocksPerCycle: constants.BlocksPerCycle}, nil
	})
	if err != nil {
		return "", 0, fmt.Errorf("bootstrap: %w", err)
	}
	logger.Info("startup data loaded",
		zap.String("chain_id", s.chainID),
		zap.String("protocol", s.protocol),
		zap.Int64("blocks_per_cycle", s.blocksPerCycle))
	return s.protocol, s.blocksPerCycle, nil
}

func buildPollers(
	ctx context.Context,
	targets config.Targets,
	clients map[string]*tezos.Client,
	st *store.Store,
	historyRepo *history.Repository,
	rightsCacheSize int,
	logger *zap.Logger,
	opts []poller.Option,
) ([]poller.Task, error) {
	tasks := make([]poller.Task, 0, len(targets.Nodes)+len(targets.Bakers))
	for _, t := range targets.Nodes {
		p, err := poller.NewNodePoller(t, clients[t.Key], st, metrics.NewPoller("node", t.Key), logger.Named("node"), opts...)
		if err != nil {
			return nil, fmt.Errorf("node poller %s: %w", t.Key, err)
		}
		tasks = append(tasks, p)
	}

	rights, err := poller.NewRightsCache(rightsCacheSize)
	if err != nil {
		return nil, err
	}
	bakers := make([]*poller.BakerPoller, 0, len(targets.Bakers))
	for _, t := range targets.Bakers {
		p, err := poller.NewBakerPoller(t, clients[t.NodeURL], st, rights, metrics.NewPoller("baker", t.Key), logger.Named("baker"), opts...)
		if err != nil {
			return nil, fmt.Errorf("baker poller %s: %w", t.Key, err)
		}
		bakers = append(bakers, p)
		tasks = append(tasks, p)
	}
	if historyRepo != nil {
		restoreBakerEvents(ctx, historyRepo, bakers, targets.EventsLimit, logger)
	}
	return tasks, nil
}

const restoreWorkers = 4

// restoreBakerEvents seeds each baker with its recent events from history. Failures
// only cost the restored history of that baker.
func restoreBakerEvents(ctx context.Context, repo *history.Repository, bakers []*poller.BakerPoller, limit int, logger *zap.Logger) {
	err := workerpool.Run(ctx, bakers, func(ctx context.Context, p *poller.BakerPoller) error {
		address := p.Target().Key
		events, err := repo.RecentBakerEvents(ctx, address, limit)
		if err != nil {
			return fmt.Errorf("baker %s: %w", address, err)
		}
		// The scan restarts at head-1; events it derives again are dropped by PushEvents.
		p.Restore(events, 0)
		return nil
	}, workerpool.WithWorkers(restoreWorkers))
	if err != nil {
		logger.Warn("restore baker events failed", zap.Error(err))
	}
}
