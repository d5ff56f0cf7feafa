package redis

import (
	"context"

	"github.com/walletherald/walletherald/internal/pkg/resilience/retry"

	redis "github.com/redis/go-redis/v9"
)

type client struct {
	conn *redis.Client
}

func (c *client) Close() error {
	return c.conn.Close()
}

func NewClient(ctx context.Context, addr, username, password string, db int) (*client, error) {
	conn := redis.NewClient(&redis.Options{
		Addr:     addr,
		Username: username,
		Password: password,
		DB:       db,
	})

	// The cache usually comes up alongside the service; give it a few tries.
	err := retry.New().Execute(ctx, func() error {
		return conn.Ping(ctx).Err()
	})
	if err != nil {
		return nil, err
	}

	return &client{
		conn: conn,
	}, nil
}
