// Package config loads the polled targets from a YAML, TOML or JSON file.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/goodnatureofminers/tezwatch-backend/internal/model"
	"github.com/goodnatureofminers/tezwatch-backend/internal/tezos"
	"github.com/hashicorp/go-multierror"
	"github.com/spf13/viper"
)

// File is the on-disk layout of the targets file.
type File struct {
	Defaults Defaults     `mapstructure:"defaults"`
	Nodes    []NodeEntry  `mapstructure:"nodes"`
	Bakers   []BakerEntry `mapstructure:"bakers"`
}

type Defaults struct {
	NodeInterval  time.Duration `mapstructure:"node_interval"`
	BakerInterval time.Duration `mapstructure:"baker_interval"`
	EventsLimit   int           `mapstructure:"events_limit"`
}

type NodeEntry struct {
	URL      string        `mapstructure:"url"`
	Name     string        `mapstructure:"name"`
	Interval time.Duration `mapstructure:"interval"`
}

type BakerEntry struct {
	Address  string        `mapstructure:"address"`
	Name     string        `mapstructure:"name"`
	Interval time.Duration `mapstructure:"interval"`
	// Node is the URL of a configured node; the first node when empty.
	Node string `mapstructure:"node"`
}

// Targets are the validated poll targets in configuration order.
type Targets struct {
	Nodes       []model.PollTarget
	Bakers      []model.PollTarget
	EventsLimit int
}

const (
	DefaultNodeInterval  = 10 * time.Second
	DefaultBakerInterval = 30 * time.Second
	minInterval          = time.Second
)

// LoadTargets reads and validates the targets file at path. The format follows the extension.
func LoadTargets(path string) (Targets, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetDefault("defaults.node_interval", DefaultNodeInterval)
	v.SetDefault("defaults.baker_interval", DefaultBakerInterval)
	v.SetDefault("defaults.events_limit", model.DefaultEventsLimit)
	if err := v.ReadInConfig(); err != nil {
		return Targets{}, fmt.Errorf("read targets file %s: %w", path, err)
	}
	var f File
	if err := v.Unmarshal(&f); err != nil {
		return Targets{}, fmt.Errorf("decode targets file %s: %w", path, err)
	}
	return f.Targets()
}

// Targets validates f and resolves defaults. Every problem is reported, not only the first.
func (f File) Targets() (Targets, error) {
	var result *multierror.Error
	out := Targets{EventsLimit: f.Defaults.EventsLimit}
	if out.EventsLimit <= 0 {
		out.EventsLimit = model.DefaultEventsLimit
	}
	nodeInterval := orDefault(f.Defaults.NodeInterval, DefaultNodeInterval)
	bakerInterval := orDefault(f.Defaults.BakerInterval, DefaultBakerInterval)

	if len(f.Nodes) == 0 {
		result = multierror.Append(result, errors.New("at least one node is required"))
	}
	nodes := make(map[string]bool, len(f.Nodes))
	for i, n := range f.Nodes {
		u, err := normalizeURL(n.URL)
		if err != nil {
			result = multierror.Append(result, fmt.Errorf("nodes[%d]: %w", i, err))
			continue
		}
		if nodes[u] {
			result = multierror.Append(result, fmt.Errorf("nodes[%d]: duplicate url %s", i, u))
			continue
		}
		if n.Interval != 0 && n.Interval < minInterval {
			result = multierror.Append(result, fmt.Errorf("nodes[%d]: interval %s below %s", i, n.Interval, minInterval))
			continue
		}
		nodes[u] = true
		out.Nodes = append(out.Nodes, model.PollTarget{
			Kind:     model.TargetNode,
			Key:      u,
			Name:     strings.TrimSpace(n.Name),
			Interval: orDefault(n.Interval, nodeInterval),
		})
	}

	bakers := make(map[string]bool, len(f.Bakers))
	for i, b := range f.Bakers {
		address := strings.TrimSpace(b.Address)
		if err := tezos.ValidateAddress(address); err != nil {
			result = multierror.Append(result, fmt.Errorf("bakers[%d]: %w", i, err))
			continue
		}
		if bakers[address] {
			result = multierror.Append(result, fmt.Errorf("bakers[%d]: duplicate address %s", i, address))
			continue
		}
		if b.Interval != 0 && b.Interval < minInterval {
			result = multierror.Append(result, fmt.Errorf("bakers[%d]: interval %s below %s", i, b.Interval, minInterval))
			continue
		}
		node := ""
		switch {
		case b.Node != "":
			u, err := normalizeURL(b.Node)
			if err != nil || !nodes[u] {
				result = multierror.Append(result, fmt.Errorf("bakers[%d]: node %q is not a configured node", i, b.Node))
				continue
			}
			node = u
		case len(out.Nodes) > 0:
			node = out.Nodes[0].Key
		default:
			continue
		}
		bakers[address] = true
		out.Bakers = append(out.Bakers, model.PollTarget{
			Kind:     model.TargetBaker,
			Key:      address,
			Name:     strings.TrimSpace(b.Name),
			Interval: orDefault(b.Interval, bakerInterval),
			NodeURL:  node,
		})
	}

	if err := result.ErrorOrNil(); err != nil {
		return Targets{}, fmt.Errorf("invalid targets: %w", err)
	}
	return out, nil
}

func normalizeURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	u, err := url.Parse(raw)
	if err != nil {
		return "", fmt.Errorf("parse url %q: %w", raw, err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return "", fmt.Errorf("url %q must be http(s)://host[:port]", raw)
	}
	return strings.TrimRight(u.String(), "/"), nil
}

func orDefault(d, def time.Duration) time.Duration {
	if d <= 0 {
		return def
	}
	return d
}
