// Package tezos is a small Tezos node RPC client with protocol-aware decoding.
package tezos

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

const maxBodyBytes = 32 << 20

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

type (
	// RPCMetrics records metrics for RPC calls.
	RPCMetrics interface {
		Observe(operation string, err error, started time.Time)
	}
)

// Client talks to a single node RPC endpoint.
type Client struct {
	httpClient *http.Client
	baseURL    string
	rpcMetrics RPCMetrics
}

// NewClient constructs an instrumented RPC client for baseURL.
func NewClient(baseURL string, httpClient *http.Client, rpcMetrics RPCMetrics) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	return &Client{
		httpClient: httpClient,
		baseURL:    strings.TrimRight(baseURL, "/"),
		rpcMetrics: rpcMetrics,
	}
}

// URL returns the node endpoint this client talks to.
func (c *Client) URL() string { return c.baseURL }

func (c *Client) get(ctx context.Context, operation, path string, query url.Values) (raw json.RawMessage, err error) {
	started := time.Now()
	defer func() {
		if c.rpcMetrics != nil {
			c.rpcMetrics.Observe(operation, err, started)
		}
	}()

	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, &ApplicationError{URL: c.baseURL, Err: fmt.Errorf("build request: %w", err)}
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return nil, &UnreachableError{URL: c.baseURL, Err: err}
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return nil, &UnreachableError{URL: c.baseURL, Err: fmt.Errorf("read %s: %w", path, err)}
	}

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, fmt.Errorf("GET %s: %w", path, ErrNotFound)
	case resp.StatusCode != http.StatusOK:
		return nil, &ApplicationError{URL: c.baseURL, Status: resp.StatusCode, Body: truncate(string(body), 256)}
	}
	if !json.Valid(body) {
		return nil, &ApplicationError{URL: c.baseURL, Err: fmt.Errorf("GET %s: invalid JSON", path)}
	}
	return body, nil
}

func (c *Client) decodeErr(err error) error {
	var appErr *ApplicationError
	if errors.As(err, &appErr) {
		return err
	}
	return &ApplicationError{URL: c.baseURL, Err: err}
}

// Header returns the header of block ("head", a level or a hash).
func (c *Client) Header(ctx context.Context, block string) (BlockHeader, error) {
	raw, err := c.get(ctx, "get_header", "/chains/main/blocks/"+block+"/header", nil)
	if err != nil {
		return BlockHeader{}, err
	}
	h, err := DecodeHeader(raw)
	if err != nil {
		return BlockHeader{}, c.decodeErr(err)
	}
	return h, nil
}

// Bootstrapped returns the node's bootstrap and sync state.
func (c *Client) Bootstrapped(ctx context.Context) (Bootstrapped, error) {
	raw, err := c.get(ctx, "is_bootstrapped", "/chains/main/is_bootstrapped", nil)
	if err != nil {
		return Bootstrapped{}, err
	}
	var b Bootstrapped
	if err := json.Unmarshal(raw, &b); err != nil {
		return Bootstrapped{}, c.decodeErr(fmt.Errorf("decode is_bootstrapped: %w", err))
	}
	return b, nil
}

// Version returns the octez version and chain name the node runs.
func (c *Client) Version(ctx context.Context) (Version, error) {
	raw, err := c.get(ctx, "get_version", "/version", nil)
	if err != nil {
		return Version{}, err
	}
	var v Version
	if err := json.Unmarshal(raw, &v); err != nil {
		return Version{}, c.decodeErr(fmt.Errorf("decode version: %w", err))
	}
	return v, nil
}

// PeerCount returns the number of open peer connections.
func (c *Client) PeerCount(ctx context.Context) (int, error) {
	raw, err := c.get(ctx, "get_connections", "/network/connections", nil)
	if err != nil {
		return 0, err
	}
	var peers []json.RawMessage
	if err := json.Unmarshal(raw, &peers); err != nil {
		return 0, c.decodeErr(fmt.Errorf("decode connections: %w", err))
	}
	return len(peers), nil
}

// Constants returns the protocol constants at block.
func (c *Client) Constants(ctx context.Context, block string) (Constants, error) {
	raw, err := c.get(ctx, "get_constants", "/chains/main/blocks/"+block+"/context/constants", nil)
	if err != nil {
		return Constants{}, err
	}
	var k Constants
	if err := json.Unmarshal(raw, &k); err != nil {
		return Constants{}, c.decodeErr(fmt.Errorf("decode constants: %w", err))
	}
	if k.BlocksPerCycle <= 0 {
		return Constants{}, c.decodeErr(errors.New("constants without blocks_per_cycle"))
	}
	return k, nil
}

// Metadata returns the cycle position and baker of block.
func (c *Client) Metadata(ctx context.Context, block, protocol string) (LevelInfo, string, error) {
	raw, err := c.get(ctx, "get_metadata", "/chains/main/blocks/"+block+"/metadata", nil)
	if err != nil {
		return LevelInfo{}, "", err
	}
	info, baker, err := DecoderFor(protocol).Metadata(raw)
	if err != nil {
		return LevelInfo{}, "", c.decodeErr(err)
	}
	return info, baker, nil
}

// Block returns the full block at level, decoded for protocol.
func (c *Client) Block(ctx context.Context, level int64, protocol string) (Block, error) {
	raw, err := c.get(ctx, "get_block", "/chains/main/blocks/"+strconv.FormatInt(level, 10), nil)
	if err != nil {
		return Block{}, err
	}
	b, err := DecoderFor(protocol).Block(raw)
	if err != nil {
		return Block{}, c.decodeErr(err)
	}
	return b, nil
}

// Delegate returns the balances of address as seen at block.
func (c *Client) Delegate(ctx context.Context, block, address, protocol string) (Delegate, error) {
	raw, err := c.get(ctx, "get_delegate", "/chains/main/blocks/"+block+"/context/delegates/"+url.PathEscape(address), nil)
	if err != nil {
		return Delegate{}, err
	}
	d, err := DecoderFor(protocol).Delegate(raw)
	if err != nil {
		return Delegate{}, c.decodeErr(err)
	}
	return d, nil
}

// BakingRights returns the round 0 baking rights at level for all delegates.
func (c *Client) BakingRights(ctx context.Context, level int64, protocol string) ([]Right, error) {
	dec := DecoderFor(protocol)
	query := url.Values{}
	for k, v := range dec.BakingRightsParams(level) {
		query.Set(k, v)
	}
	raw, err := c.get(ctx, "get_baking_rights", "/chains/main/blocks/head/helpers/baking_rights", query)
	if err != nil {
		return nil, err
	}
	rights, err := dec.BakingRights(raw)
	if err != nil {
		return nil, c.decodeErr(err)
	}
	return rights, nil
}

// EndorsingRights returns the endorsing (attesting) rights at level for all delegates.
func (c *Client) EndorsingRights(ctx context.Context, level int64, protocol string) ([]Right, error) {
	dec := DecoderFor(protocol)
	query := url.Values{"level": []string{strconv.FormatInt(level, 10)}}
	raw, err := c.get(ctx, "get_endorsing_rights", "/chains/main/blocks/head/helpers/"+dec.EndorsingRightsPath(), query)
	if err != nil {
		return nil, err
	}
	rights, err := dec.EndorsingRights(raw)
	if err != nil {
		return nil, c.decodeErr(err)
	}
	return rights, nil
}

func truncate(s string, n int) string {
	s = strings.TrimSpace(s)
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
