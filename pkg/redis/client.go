// Package redis is the go-redis/v9 connection behind the redis artifact
// backend.
package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/Adithya-Monish-Kumar-K/searchindex/pkg/config"
)

// ErrNotFound is returned by Get for keys that do not exist.
var ErrNotFound = errors.New("redis key not found")

const connectTimeout = 5 * time.Second

type Client struct {
	rdb  *redis.Client
	addr string
}

// NewClient connects to cfg.Addr and fails unless the server answers a PING
// within five seconds.
func NewClient(ctx context.Context, cfg config.RedisConfig) (*Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:        cfg.Addr,
		Password:    cfg.Password,
		DB:          cfg.DB,
		PoolSize:    cfg.PoolSize,
		DialTimeout: connectTimeout,
	})
	c := &Client{rdb: rdb, addr: cfg.Addr}

	pingCtx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()
	if err := c.Ping(pingCtx); err != nil {
		rdb.Close()
		return nil, err
	}
	return c, nil
}

func (c *Client) Get(ctx context.Context, key string) ([]byte, error) {
	data, err := c.rdb.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, fmt.Errorf("%s: %w", key, ErrNotFound)
	}
	return data, err
}

// Set stores value under key. A zero ttl never expires.
func (c *Client) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	return c.rdb.Set(ctx, key, value, ttl).Err()
}

func (c *Client) Ping(ctx context.Context) error {
	if err := c.rdb.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("pinging redis at %s: %w", c.addr, err)
	}
	return nil
}

func (c *Client) Close() error {
	return c.rdb.Close()
}
