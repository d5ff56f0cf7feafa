// Package notifyproc coordinates the notification pipeline, combining the
// watch list, webhook lifecycle, and ledger polling workflows into a unified
// orchestration layer.
package notifyproc

import (
	"context"
	"errors"
	"sync"

	"github.com/walletherald/walletherald/internal/chains"
	"github.com/walletherald/walletherald/internal/hookingest"
	"github.com/walletherald/walletherald/internal/hooksync"
	"github.com/walletherald/walletherald/internal/ledgerpoll"
	"github.com/walletherald/walletherald/internal/pkg/logger"
	"github.com/walletherald/walletherald/internal/watchlist"
)

// ErrServiceAlreadyStarted is returned if Start is called more than once.
//
// The service must be started only once per lifecycle.
var ErrServiceAlreadyStarted = errors.New("service already started")

// WalletUpdate is an inbound wallet registration or token refresh: the
// addresses a device watches per chain and the push token to deliver to.
type WalletUpdate struct {
	Addresses         map[chains.Chain]string
	NotificationToken string
}

// Service defines the notifyproc lifecycle and coordination entrypoint.
type Service interface {
	// Start loads the watch list, reconciles the provider subscriptions for
	// every push chain, and launches the ingestion worker and the ledger
	// poller. A watch-list load failure is fatal; a subscription failure on
	// one chain is isolated and does not stop the others or the poller.
	//
	// Returns ErrServiceAlreadyStarted if Start is called more than once.
	// Call Close to shut down all background routines.
	Start(ctx context.Context) error

	// HandleWalletUpdate registers the update's addresses in the watch list
	// and pushes them as a delta to each push chain's provider subscription.
	// Delta-push failures are logged and swallowed; the next full resync
	// reconciles them.
	HandleWalletUpdate(ctx context.Context, update WalletUpdate) error

	// Close shuts down the notifyproc service and cancels all active routines.
	// It is safe to call Close even if the service was never started.
	Close()
}

// closeFunc defines a cleanup routine to stop background goroutines and dependencies.
type closeFunc func()

type service struct {
	mu        sync.Mutex // protects lifecycle state
	isStarted bool       // ensures Start is called only once
	closeFunc closeFunc  // cancels context and cleans up dependencies

	watchlist  watchlist.Service  // in-memory watch list over device-token storage
	hooksync   hooksync.Service   // provider webhook subscription lifecycle
	ledgerpoll ledgerpoll.Service // polling-chain ledger drain loop
	hookingest hookingest.Service // webhook delivery ingestion worker

	// fallbackSubscriptionIDs names the provider subscription per push
	// chain for deployments where subscriptions are managed out of band
	// and EnsureSubscription is gated off.
	fallbackSubscriptionIDs map[chains.Chain]string

	bulkLoadOnStart bool
}

// Compile-time check to ensure *service implements the Service interface.
var _ Service = (*service)(nil)

type config struct {
	bulkLoadOnStart bool
}

// Option customizes the notifyproc service.
type Option func(*config)

// WithoutBulkLoad skips rebuilding the watch list at startup. Use it when the
// cache is known to be warm, for example after a fast restart.
func WithoutBulkLoad() Option {
	return func(c *config) {
		c.bulkLoadOnStart = false
	}
}

// New creates a new instance of the notifyproc service. fallbackSubscriptionIDs
// may be nil when every push chain's subscription is recreated at startup.
func New(w watchlist.Service, h hooksync.Service, l ledgerpoll.Service, i hookingest.Service, fallbackSubscriptionIDs map[chains.Chain]string, opts ...Option) *service {
	cfg := config{
		bulkLoadOnStart: true,
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	return &service{
		watchlist:               w,
		hooksync:                h,
		ledgerpoll:              l,
		hookingest:              i,
		fallbackSubscriptionIDs: fallbackSubscriptionIDs,
		bulkLoadOnStart:         cfg.bulkLoadOnStart,
	}
}

// Start initializes the notification pipeline.
func (s *service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isStarted {
		return ErrServiceAlreadyStarted
	}

	ctx, cancel := context.WithCancel(ctx)

	if s.bulkLoadOnStart {
		if err := s.watchlist.BulkLoad(ctx); err != nil {
			cancel()
			return err
		}
	}

	for _, chain := range chains.PushChains() {
		if err := s.hooksync.EnsureSubscription(ctx, chain); err != nil {
			logger.Error(ctx, "webhook subscription reconciliation failed",
				"chain", chain,
				"error", err,
			)
		}
	}

	if err := s.hookingest.Start(ctx); err != nil {
		cancel()
		return err
	}

	if err := s.ledgerpoll.Start(ctx); err != nil {
		s.hookingest.Close()
		cancel()
		return err
	}

	s.closeFunc = func() {
		cancel()
		s.ledgerpoll.Close()
		s.hookingest.Close()
	}
	s.isStarted = true
	return nil
}

// Close shuts down all processing routines and dependencies.
func (s *service) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closeFunc != nil {
		s.closeFunc()
	}

	s.closeFunc = nil
	s.isStarted = false
}

// subscriptionID resolves the provider subscription for a chain: the one
// recorded at startup when available, the configured fallback otherwise.
func (s *service) subscriptionID(chain chains.Chain) (string, bool) {
	if id, ok := s.hooksync.SubscriptionID(chain); ok {
		return id, true
	}

	id, ok := s.fallbackSubscriptionIDs[chain]
	return id, ok && id != ""
}

// HandleWalletUpdate implements the Service interface.
func (s *service) HandleWalletUpdate(ctx context.Context, update WalletUpdate) error {
	for chain, address := range update.Addresses {
		if address == "" {
			continue
		}

		if err := s.watchlist.Upsert(ctx, chain, address, update.NotificationToken); err != nil {
			return err
		}
	}

	for _, chain := range chains.PushChains() {
		address, ok := update.Addresses[chain]
		if !ok || address == "" {
			continue
		}

		id, ok := s.subscriptionID(chain)
		if !ok {
			logger.Warn(ctx, "no provider subscription known for chain, skipping delta push", "chain", chain)
			continue
		}

		if err := s.hooksync.OnWalletUpdated(ctx, hooksync.WalletUpdate{
			Chain:          chain,
			SubscriptionID: id,
			Addresses:      []string{address},
		}); err != nil {
			logger.Error(ctx, "wallet update delta push failed",
				"chain", chain,
				"error", err,
			)
		}
	}

	return nil
}
