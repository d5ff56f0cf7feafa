// Package hooksync keeps each push-chain's provider webhook subscription
// pointed at the correct watched address set. Creation happens once per chain
// at startup behind a deliberate double gate (a master flag AND a per-chain
// flag); afterwards the subscription is kept current by pushing add-only
// address deltas whenever a wallet changes. The provider address set may
// temporarily diverge from the watch list; a later full resync reconciles it.
package hooksync

import (
	"context"
	"sync"

	"github.com/walletherald/walletherald/internal/chains"
	"github.com/walletherald/walletherald/internal/pkg/logger"
	"github.com/walletherald/walletherald/internal/pkg/types"
	"github.com/walletherald/walletherald/internal/pkg/validator"
)

// graphqlTransferQuery is the provider-side filter requesting native and
// token transfer fields for webhook deliveries.
const graphqlTransferQuery = `
{
  tokenTransfers {
    fromAddress
    toAddress
    amount
    token { symbol decimals }
    transaction { hash }
    block { network }
  }
  transfers {
    fromAddress
    toAddress
    amount
    transaction { hash }
    block { network }
  }
}
`

// ChainHook is the static configuration for one push-chain's subscription.
type ChainHook struct {
	Network     string // provider network identifier (e.g. "ETH_MAINNET")
	CallbackURL string // where the provider delivers activity for this chain
	Enabled     bool   // per-chain update gate
}

// Service manages the lifecycle of provider webhook subscriptions.
type Service interface {
	// EnsureSubscription creates (or recreates) the provider subscription
	// for the chain from the current watched address set. It is a no-op
	// unless both the master gate and the chain's own gate are enabled.
	// A failure is fatal for this chain's ingestion but must not affect
	// sibling chains; the caller isolates it.
	EnsureSubscription(ctx context.Context, chain chains.Chain) error

	// OnWalletUpdated pushes an add-only address delta to the provider
	// subscription named in the event. Failures are non-fatal: the next
	// full resync reconciles any missed delta.
	OnWalletUpdated(ctx context.Context, update WalletUpdate) error

	// SubscriptionID returns the provider subscription id recorded for the
	// chain by the last successful EnsureSubscription, if any.
	SubscriptionID(chain chains.Chain) (string, bool)
}

type service struct {
	subscriptionAPI SubscriptionAPI
	addressSource   AddressSource

	updateAllHooks bool
	hooks          map[chains.Chain]ChainHook

	mu              sync.Mutex
	subscriptionIDs map[chains.Chain]string
}

var _ Service = (*service)(nil)

// New creates a webhook lifecycle service. updateAllHooks is the master gate:
// when false, no subscription is ever created regardless of per-chain flags.
func New(subscriptionAPI SubscriptionAPI, addressSource AddressSource, updateAllHooks bool, hooks map[chains.Chain]ChainHook) *service {
	return &service{
		subscriptionAPI: subscriptionAPI,
		addressSource:   addressSource,
		updateAllHooks:  updateAllHooks,
		hooks:           hooks,
		subscriptionIDs: make(map[chains.Chain]string),
	}
}

// EnsureSubscription reads the chain's full watched address list and creates
// the provider subscription for it. Both gates must be open; otherwise the
// call logs and returns nil.
func (s *service) EnsureSubscription(ctx context.Context, chain chains.Chain) error {
	hook, ok := s.hooks[chain]
	if !ok || !s.updateAllHooks || !hook.Enabled {
		logger.Info(ctx, "webhook subscription update gated off", "chain", chain)
		return nil
	}

	watched, err := s.addressSource.WatchedAddresses(ctx, chain)
	if err != nil {
		return err
	}

	// The watch list may hold the same address for more than one device.
	addresses := types.NewSet(watched...).ToSlice()

	id, err := s.subscriptionAPI.CreateSubscription(ctx, SubscriptionSpec{
		Network:     hook.Network,
		Name:        hook.Network,
		CallbackURL: hook.CallbackURL,
		FilterQuery: graphqlTransferQuery,
		Addresses:   addresses,
	})
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.subscriptionIDs[chain] = id
	s.mu.Unlock()

	logger.Info(ctx, "webhook subscription created",
		"chain", chain,
		"subscription.id", id,
		"addresses.count", len(addresses),
	)
	return nil
}

// SubscriptionID returns the provider subscription id recorded for the chain
// by the last successful EnsureSubscription, if any.
func (s *service) SubscriptionID(chain chains.Chain) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id, ok := s.subscriptionIDs[chain]
	return id, ok
}

// OnWalletUpdated validates the event and pushes its addresses as an add-only
// delta. The delta is idempotent from the provider's perspective: pushing the
// same addresses twice leaves the subscription in the same end state.
func (s *service) OnWalletUpdated(ctx context.Context, update WalletUpdate) error {
	if err := validator.Validate(update); err != nil {
		return err
	}

	if err := s.subscriptionAPI.UpdateSubscription(ctx, update.SubscriptionID, update.Addresses, nil); err != nil {
		logger.Error(ctx, "webhook subscription delta push failed",
			"chain", update.Chain,
			"subscription.id", update.SubscriptionID,
			"addresses.count", len(update.Addresses),
			"error", err,
		)
		return err
	}

	return nil
}
