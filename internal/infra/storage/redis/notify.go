package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/walletherald/walletherald/internal/notify"
)

// notifyKeyPrefix is the Redis key namespace for push-delivery idempotency
// entries.
const notifyKeyPrefix = "notify"

// notifyDeliveryKey builds the Redis key tracking whether a push for a given
// (network, txRef, recipient) tuple was already sent.
//
// Format: "notify:delivered:<network>:<txRef>:<recipient>"
func notifyDeliveryKey(network, txRef, recipient string) string {
	return fmt.Sprintf("%s:delivered:%s:%s:%s", notifyKeyPrefix, network, txRef, recipient)
}

// ClaimDelivery reserves the right to push a notification for the tuple using
// SETNX with a TTL. A second claim within the TTL window observes the
// existing key and returns notify.ErrAlreadyNotified, so provider
// redeliveries of the same activity produce at most one push.
func (c *client) ClaimDelivery(ctx context.Context, network, txRef, recipient string, ttl time.Duration) error {
	key := notifyDeliveryKey(network, txRef, recipient)

	ok, err := c.conn.SetNX(ctx, key, "", ttl).Result()
	if err != nil {
		return err
	}

	if !ok {
		return notify.ErrAlreadyNotified
	}

	return nil
}

// Compile-time assertion to ensure *client satisfies the notify.DeliveryGuard interface.
var _ notify.DeliveryGuard = new(client)
