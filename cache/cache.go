// Package cache keeps the latest catalog snapshot in Redis so other
// processes can read it without running an import.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/brequin/listings/config"
	"github.com/brequin/listings/importer"
)

var ErrNotCached = errors.New("no snapshot cached")

type Cache struct {
	rdb    *goredis.Client
	prefix string
	ttl    time.Duration
	logger *zap.Logger
}

// New connects to Redis and checks the connection with a ping.
func New(cfg config.RedisConfig, logger *zap.Logger) (*Cache, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	rdb := goredis.NewClient(&goredis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("connect redis: %w", err)
	}

	logger.Info("redis connected", zap.String("addr", cfg.Addr))

	return &Cache{rdb: rdb, prefix: cfg.Prefix, ttl: cfg.TTL, logger: logger}, nil
}

// CurrentKey holds the latest snapshot and never expires.
func (c *Cache) CurrentKey() string {
	return c.prefix + ":catalog:current"
}

// RunKey holds one run's snapshot until the configured TTL.
func (c *Cache) RunKey(runID string) string {
	return c.prefix + ":catalog:" + runID
}

func (c *Cache) Name() string {
	return "redis"
}

// Publish writes the snapshot under both keys in one transaction.
func (c *Cache) Publish(ctx context.Context, snapshot *importer.Snapshot) error {
	payload, err := json.Marshal(snapshot)
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}

	_, err = c.rdb.TxPipelined(ctx, func(pipe goredis.Pipeliner) error {
		pipe.Set(ctx, c.CurrentKey(), payload, 0)
		pipe.Set(ctx, c.RunKey(snapshot.RunID.String()), payload, c.ttl)
		return nil
	})
	if err != nil {
		return fmt.Errorf("cache snapshot: %w", err)
	}

	c.logger.Debug("snapshot cached", zap.Stringer("run", snapshot.RunID), zap.Int("bytes", len(payload)))
	return nil
}

func (c *Cache) Latest(ctx context.Context) (*importer.Snapshot, error) {
	return c.load(ctx, c.CurrentKey())
}

func (c *Cache) Run(ctx context.Context, runID string) (*importer.Snapshot, error) {
	return c.load(ctx, c.RunKey(runID))
}

func (c *Cache) load(ctx context.Context, key string) (*importer.Snapshot, error) {
	payload, err := c.rdb.Get(ctx, key).Bytes()
	if errors.Is(err, goredis.Nil) {
		return nil, ErrNotCached
	}
	if err != nil {
		return nil, err
	}

	var snapshot importer.Snapshot
	if err := json.Unmarshal(payload, &snapshot); err != nil {
		return nil, fmt.Errorf("decode cached snapshot %s: %w", key, err)
	}
	return &snapshot, nil
}

func (c *Cache) Close() error {
	return c.rdb.Close()
}
