// Package client fetches transactions from an XRPL node over its websocket
// API and normalizes them into the shape the explanation engine consumes.
package client

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/gorilla/websocket"
	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/LeJamon/xrpl-bot/internal/xrpl"
)

const (
	// DefaultEndpoint is the public cluster the original bot queried.
	DefaultEndpoint = "wss://xrpl.ws"

	defaultTimeout   = 15 * time.Second
	defaultCacheSize = 512
	maxMessageSize   = 4 * 1024 * 1024
)

// Config holds the fetcher settings.
type Config struct {
	Endpoint  string
	Timeout   time.Duration
	CacheSize int
}

func (c Config) withDefaults() Config {
	if c.Endpoint == "" {
		c.Endpoint = DefaultEndpoint
	}
	if c.Timeout <= 0 {
		c.Timeout = defaultTimeout
	}
	if c.CacheSize <= 0 {
		c.CacheSize = defaultCacheSize
	}
	return c
}

// Client fetches transactions by hash. Validated transactions are immutable,
// so successful lookups are cached and served without a second dial.
type Client struct {
	cfg   Config
	cache *lru.Cache[string, *xrpl.TransactionRecord]
}

// New creates a Client, applying defaults for any zero-valued settings.
func New(cfg Config) (*Client, error) {
	cfg = cfg.withDefaults()
	cache, err := lru.New[string, *xrpl.TransactionRecord](cfg.CacheSize)
	if err != nil {
		return nil, fmt.Errorf("failed to create transaction cache: %w", err)
	}
	return &Client{cfg: cfg, cache: cache}, nil
}

// txRequest is the tx command payload, matching rippled's websocket API.
type txRequest struct {
	ID          int    `json:"id"`
	Command     string `json:"command"`
	Transaction string `json:"transaction"`
	Binary      bool   `json:"binary"`
}

type txResponse struct {
	Status       string          `json:"status"`
	Type         string          `json:"type"`
	Error        string          `json:"error"`
	ErrorMessage string          `json:"error_message"`
	Result       json.RawMessage `json:"result"`
}

// Tx fetches the transaction with the given 64-character hex hash. Lookups
// that fail for any reason return a *FetchError; callers never retry.
func (c *Client) Tx(ctx context.Context, hash string) (*xrpl.TransactionRecord, error) {
	if !ValidHash(hash) {
		return nil, ErrBadHash
	}

	if tx, ok := c.cache.Get(hash); ok {
		return tx, nil
	}

	ctx, cancel := context.WithTimeout(ctx, c.cfg.Timeout)
	defer cancel()

	tx, err := c.fetch(ctx, hash)
	if err != nil {
		return nil, err
	}

	// Only validated transactions are settled; pending ones may change.
	if tx.Validated {
		c.cache.Add(hash, tx)
	}
	return tx, nil
}

func (c *Client) fetch(ctx context.Context, hash string) (*xrpl.TransactionRecord, error) {
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, c.cfg.Endpoint, nil)
	if err != nil {
		return nil, &FetchError{Hash: hash, Err: fmt.Errorf("dial %s: %w", c.cfg.Endpoint, err)}
	}
	defer conn.Close()

	conn.SetReadLimit(maxMessageSize)
	if deadline, ok := ctx.Deadline(); ok {
		conn.SetReadDeadline(deadline)
		conn.SetWriteDeadline(deadline)
	}

	req := txRequest{ID: 1, Command: "tx", Transaction: hash, Binary: false}
	if err := conn.WriteJSON(req); err != nil {
		return nil, &FetchError{Hash: hash, Err: fmt.Errorf("send tx command: %w", err)}
	}

	_, data, err := conn.ReadMessage()
	if err != nil {
		return nil, &FetchError{Hash: hash, Err: fmt.Errorf("read tx response: %w", err)}
	}

	var resp txResponse
	if err := json.Unmarshal(data, &resp); err != nil {
		return nil, &FetchError{Hash: hash, Err: fmt.Errorf("decode tx response: %w", err)}
	}
	if resp.Status != "success" {
		return nil, &FetchError{Hash: hash, Code: resp.Error, Err: fmt.Errorf("tx lookup failed: %s", resp.ErrorMessage)}
	}

	tx, err := xrpl.ParseTransaction(resp.Result)
	if err != nil {
		return nil, &FetchError{Hash: hash, Err: err}
	}
	return tx, nil
}

// ValidHash reports whether s is a plausible transaction hash: exactly 64
// characters of [0-9A-F], upper case.
func ValidHash(s string) bool {
	if len(s) != 64 {
		return false
	}
	for _, r := range s {
		if (r < '0' || r > '9') && (r < 'A' || r > 'F') {
			return false
		}
	}
	return true
}
