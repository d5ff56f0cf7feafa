package notify

import (
	"context"
	"errors"
	"time"
)

// ErrAlreadyNotified is returned by ClaimDelivery when a push for the same
// (chain, txRef, recipient) tuple has already been claimed. Webhook providers
// redeliver on ambiguous outcomes, so the same activity can reach Dispatch
// more than once.
var ErrAlreadyNotified = errors.New("notification already delivered for this activity")

// DeliveryGuard deduplicates pushes across redeliveries of the same activity.
type DeliveryGuard interface {
	// ClaimDelivery reserves the right to notify the recipient about the
	// given transaction. It returns ErrAlreadyNotified when a previous
	// claim exists, and holds the claim for at least ttl.
	ClaimDelivery(ctx context.Context, network, txRef, recipient string, ttl time.Duration) error
}

// nopDeliveryGuard performs no deduplication; every dispatch is treated as
// first delivery. Used when no guard backend is configured.
type nopDeliveryGuard struct{}

func (nopDeliveryGuard) ClaimDelivery(_ context.Context, _, _, _ string, _ time.Duration) error {
	return nil
}
