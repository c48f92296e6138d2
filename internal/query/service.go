// Package query answers dashboard reads from the read model. It never calls a node.
package query

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"time"

	"github.com/goodnatureofminers/tezwatch-backend/internal/aggregate"
	"github.com/goodnatureofminers/tezwatch-backend/internal/model"
	"github.com/goodnatureofminers/tezwatch-backend/internal/poller"
)

// ErrNoNetworkInfo is returned until a node was polled successfully.
var ErrNoNetworkInfo = errors.New("network info not available yet")

// SystemInfo describes the running monitor.
type SystemInfo struct {
	Version              string              `json:"version"`
	GoVersion            string              `json:"go_version"`
	StartedAt            time.Time           `json:"started_at"`
	Uptime               string              `json:"uptime"`
	ConfiguredNodes      int                 `json:"configured_nodes"`
	ConfiguredBakers     int                 `json:"configured_bakers"`
	StoredNodes          int                 `json:"stored_nodes"`
	StoredBakers         int                 `json:"stored_bakers"`
	HistoryEnabled       bool                `json:"history_enabled"`
	NotificationsEnabled bool                `json:"notifications_enabled"`
	Tasks                []poller.TaskStatus `json:"tasks"`
}

// Info is the static part of SystemInfo, known at startup.
type Info struct {
	Version              string
	StartedAt            time.Time
	ConfiguredNodes      int
	ConfiguredBakers     int
	HistoryEnabled       bool
	NotificationsEnabled bool
}

// Service implements the read API.
type Service struct {
	store    Store
	settings SettingsRepository
	tasks    TaskLister
	info     Info
	now      func() time.Time
}

// NewService builds the read API. settings and tasks may be nil.
func NewService(store Store, settings SettingsRepository, tasks TaskLister, info Info) (*Service, error) {
	if store == nil {
		return nil, errors.New("query store is required")
	}
	return &Service{store: store, settings: settings, tasks: tasks, info: info, now: time.Now}, nil
}

// Nodes returns a page of node records annotated with their poll errors.
func (s *Service) Nodes(_ context.Context, offset, limit int) (aggregate.Page[model.NodeRecord], error) {
	items, total, err := s.store.ListNodes(offset, limit)
	if err != nil {
		return aggregate.Page[model.NodeRecord]{}, fmt.Errorf("list nodes: %w", err)
	}
	return aggregate.Build(items, total, offset, model.NodeRecord.Key, nodeError), nil
}

// Bakers returns a page of baker records annotated with their poll errors.
func (s *Service) Bakers(_ context.Context, offset, limit int) (aggregate.Page[model.BakerRecord], error) {
	items, total, err := s.store.ListBakers(offset, limit)
	if err != nil {
		return aggregate.Page[model.BakerRecord]{}, fmt.Errorf("list bakers: %w", err)
	}
	return aggregate.Build(items, total, offset, model.BakerRecord.Key, bakerError), nil
}

func nodeError(r model.NodeRecord) string {
	if r.UnableToReach && r.Error == "" {
		return "unable to reach node"
	}
	return r.Error
}

func bakerError(r model.BakerRecord) string {
	if r.UnableToReach && r.Error == "" {
		return "unable to reach baker node"
	}
	return r.Error
}

// NetworkInfo returns the network state of the last successful node poll.
func (s *Service) NetworkInfo(_ context.Context) (model.NetworkInfo, error) {
	info, ok, err := s.store.NetworkInfo()
	if err != nil {
		return model.NetworkInfo{}, fmt.Errorf("network info: %w", err)
	}
	if !ok {
		return model.NetworkInfo{}, ErrNoNetworkInfo
	}
	return info, nil
}

// SystemInfo reports the monitor's own state.
func (s *Service) SystemInfo(_ context.Context) (SystemInfo, error) {
	nodes, bakers, err := s.store.Counts()
	if err != nil {
		return SystemInfo{}, fmt.Errorf("count records: %w", err)
	}
	out := SystemInfo{
		Version:              s.info.Version,
		GoVersion:            runtime.Version(),
		StartedAt:            s.info.StartedAt,
		Uptime:               s.now().Sub(s.info.StartedAt).Truncate(time.Second).String(),
		ConfiguredNodes:      s.info.ConfiguredNodes,
		ConfiguredBakers:     s.info.ConfiguredBakers,
		StoredNodes:          nodes,
		StoredBakers:         bakers,
		HistoryEnabled:       s.info.HistoryEnabled,
		NotificationsEnabled: s.info.NotificationsEnabled,
		Tasks:                []poller.TaskStatus{},
	}
	if s.tasks != nil {
		out.Tasks = s.tasks.Status()
	}
	return out, nil
}

// Settings returns the saved preferences of namespace, or its defaults.
func (s *Service) Settings(ctx context.Context, namespace string) (model.Settings, error) {
	if s.settings == nil {
		return model.DefaultSettings(namespace), nil
	}
	out, _, err := s.settings.Get(ctx, namespace)
	if err != nil {
		return model.Settings{}, fmt.Errorf("get settings: %w", err)
	}
	return out, nil
}

// SaveSettings stores the preferences of namespace.
func (s *Service) SaveSettings(ctx context.Context, in model.Settings) (model.Settings, error) {
	if s.settings == nil {
		return model.Settings{}, errors.New("settings storage is not configured")
	}
	if err := in.Validate(); err != nil {
		return model.Settings{}, &InvalidArgumentError{Err: err}
	}
	out, err := s.settings.Put(ctx, in)
	if err != nil {
		return model.Settings{}, fmt.Errorf("save settings: %w", err)
	}
	return out, nil
}

// InvalidArgumentError marks requests the caller has to fix.
type InvalidArgumentError struct{ Err error }

func (e *InvalidArgumentError) Error() string { return e.Err.Error() }

func (e *InvalidArgumentError) Unwrap() error { return e.Err }
