package redis

import (
	"context"
	"errors"
	"fmt"

	"github.com/walletherald/walletherald/internal/chains"
	"github.com/walletherald/walletherald/internal/watchlist"

	"github.com/redis/go-redis/v9"
)

// watchlistKeyPrefix is the Redis key namespace for the watch list. One hash
// per chain, mapping watched address to notification token.
const watchlistKeyPrefix = "watchlist"

// watchlistTokensKey builds the Redis key holding the address → token hash
// for a chain.
//
// Format: "watchlist:tokens:<chain>"
func watchlistTokensKey(chain chains.Chain) string {
	return fmt.Sprintf("%s:tokens:%s", watchlistKeyPrefix, chain)
}

// SetTokens upserts the given address → token entries into the chain's hash
// with a single HSET. Existing entries for the same addresses are
// overwritten, which makes the write an idempotent last-write-wins upsert.
func (c *client) SetTokens(ctx context.Context, chain chains.Chain, tokens map[string]string) error {
	if len(tokens) == 0 {
		return nil
	}

	fields := make([]any, 0, len(tokens)*2)
	for address, token := range tokens {
		fields = append(fields, address, token)
	}

	return c.conn.HSet(ctx, watchlistTokensKey(chain), fields...).Err()
}

// GetToken returns the notification token registered for the address, or
// watchlist.ErrAddressNotWatched when the hash has no such field.
func (c *client) GetToken(ctx context.Context, chain chains.Chain, address string) (string, error) {
	token, err := c.conn.HGet(ctx, watchlistTokensKey(chain), address).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			err = watchlist.ErrAddressNotWatched
		}

		return "", err
	}

	return token, nil
}

// ListAddresses returns every watched address for the chain via HKEYS.
func (c *client) ListAddresses(ctx context.Context, chain chains.Chain) ([]string, error) {
	return c.conn.HKeys(ctx, watchlistTokensKey(chain)).Result()
}

// Compile-time assertion to ensure *client satisfies the watchlist.TokenStorage interface.
var _ watchlist.TokenStorage = new(client)
