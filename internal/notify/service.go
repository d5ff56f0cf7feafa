// Package notify decides whether a classified activity record is worth a
// push notification and, if so, builds and sends the payload. Delivery is
// strictly best-effort: records are never persisted, provider failures are
// logged and dropped, and a recipient nobody watches is a silent no-op.
package notify

import (
	"context"
	"errors"
	"time"

	"github.com/walletherald/walletherald/internal/pkg/logger"
	"github.com/walletherald/walletherald/internal/watchlist"

	"github.com/google/uuid"
)

// defaultClaimTTL bounds how long a delivery claim suppresses redeliveries of
// the same activity.
const defaultClaimTTL = time.Hour

// Service is the notification-dispatch entry point.
type Service interface {
	// Dispatch resolves the activity's recipient in the watch list and
	// pushes a notification when someone is watching. It returns an error
	// only for watch-list lookup failures; provider-side send failures are
	// logged and swallowed.
	Dispatch(ctx context.Context, activity Activity) error
}

type service struct {
	tokenLookup   TokenLookup
	pusher        Pusher
	deliveryGuard DeliveryGuard

	claimTTL time.Duration
}

var _ Service = (*service)(nil)

type config struct {
	deliveryGuard DeliveryGuard
	claimTTL      time.Duration
}

// Option customizes the dispatch service.
type Option func(*config)

// WithDeliveryGuard installs a deduplication guard. Without one, every
// dispatch is treated as a first delivery.
func WithDeliveryGuard(g DeliveryGuard) Option {
	return func(c *config) {
		c.deliveryGuard = g
	}
}

// WithClaimTTL overrides how long a delivery claim is held.
func WithClaimTTL(d time.Duration) Option {
	return func(c *config) {
		c.claimTTL = d
	}
}

// New creates a dispatch service wired to the given watch-list lookup and
// push provider.
func New(tokenLookup TokenLookup, pusher Pusher, opts ...Option) *service {
	cfg := config{
		deliveryGuard: nopDeliveryGuard{},
		claimTTL:      defaultClaimTTL,
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	return &service{
		tokenLookup:   tokenLookup,
		pusher:        pusher,
		deliveryGuard: cfg.deliveryGuard,
		claimTTL:      cfg.claimTTL,
	}
}

// Dispatch implements the Service interface.
func (s *service) Dispatch(ctx context.Context, activity Activity) error {
	dispatchID := uuid.Must(uuid.NewV7()).String()

	token, err := s.tokenLookup.Lookup(ctx, activity.Chain, activity.To)
	if err != nil {
		if errors.Is(err, watchlist.ErrAddressNotWatched) {
			return nil
		}

		return err
	}

	err = s.deliveryGuard.ClaimDelivery(ctx, activity.Chain.String(), activity.TxRef, activity.To, s.claimTTL)
	if err != nil {
		if errors.Is(err, ErrAlreadyNotified) {
			logger.Debug(ctx, "duplicate activity suppressed",
				"dispatch.id", dispatchID,
				"chain", activity.Chain,
				"tx.ref", activity.TxRef,
			)
			return nil
		}

		return err
	}

	notification := buildNotification(activity)

	receipt, err := s.pusher.Send(ctx, token, notification)
	if err != nil {
		// Best-effort delivery: the record is gone, so log and move on.
		logger.Error(ctx, "push notification send failed",
			"dispatch.id", dispatchID,
			"chain", activity.Chain,
			"tx.ref", activity.TxRef,
			"error", err,
		)
		return nil
	}

	logger.Info(ctx, "push notification sent",
		"dispatch.id", dispatchID,
		"chain", activity.Chain,
		"tx.ref", activity.TxRef,
		"receipt", receipt,
	)
	return nil
}
