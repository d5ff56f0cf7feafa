// Package watchlist maintains the cache that maps a (chain, address) pair to
// the push-notification token of the device watching it. The cache is
// rebuilt in bulk from the wallet store at startup and updated incrementally
// as wallets change; entries are never deleted in normal operation, since a
// stale entry only costs a failed downstream lookup.
package watchlist

import (
	"context"
	"fmt"

	"github.com/walletherald/walletherald/internal/chains"
	"github.com/walletherald/walletherald/internal/pkg/logger"
)

// defaultPageSize is the number of wallet records fetched per wallet-store
// page during a bulk load.
const defaultPageSize = 200

// Service exposes the watch-list cache operations.
type Service interface {
	// BulkLoad rebuilds the watch list by paginating the entire wallet
	// store. Any wallet-store or storage error aborts the load; a partial
	// load is surfaced to the caller, which treats it as fatal at startup.
	BulkLoad(ctx context.Context) error

	// Lookup returns the notification token watching the given address, or
	// ErrAddressNotWatched when nobody does.
	Lookup(ctx context.Context, chain chains.Chain, address string) (string, error)

	// Upsert registers (or replaces) the token watching the given address.
	// It is idempotent; the last write wins.
	Upsert(ctx context.Context, chain chains.Chain, address, token string) error

	// WatchedAddresses returns every address currently watched on the chain.
	WatchedAddresses(ctx context.Context, chain chains.Chain) ([]string, error)
}

type service struct {
	walletStore  WalletStore
	tokenStorage TokenStorage

	pageSize int
}

var _ Service = (*service)(nil)

type config struct {
	pageSize int
}

// Option customizes the watch-list service.
type Option func(*config)

// WithPageSize overrides the wallet-store page size used by BulkLoad.
func WithPageSize(n int) Option {
	return func(c *config) {
		c.pageSize = n
	}
}

// New creates a watch-list service backed by the given wallet store and token
// storage.
func New(walletStore WalletStore, tokenStorage TokenStorage, opts ...Option) *service {
	cfg := config{
		pageSize: defaultPageSize,
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	return &service{
		walletStore:  walletStore,
		tokenStorage: tokenStorage,
		pageSize:     cfg.pageSize,
	}
}

// collectPageTokens groups one page of wallet records into per-chain
// address → token maps, skipping records that lack a token or addresses.
func collectPageTokens(records []WalletRecord) map[chains.Chain]map[string]string {
	tokensByChain := make(map[chains.Chain]map[string]string)
	for _, record := range records {
		if !record.watchable() {
			continue
		}

		for chain, address := range record.Addresses {
			if address == "" {
				continue
			}

			tokens, ok := tokensByChain[chain]
			if !ok {
				tokens = make(map[string]string)
				tokensByChain[chain] = tokens
			}

			tokens[address] = record.NotificationToken
		}
	}

	return tokensByChain
}

// BulkLoad paginates the wallet store with a fixed page size and increasing
// offset until an empty page is returned, upserting one watch-list entry per
// (chain, address) pair found on each watchable wallet.
func (s *service) BulkLoad(ctx context.Context) error {
	total, err := s.walletStore.CountAll(ctx)
	if err != nil {
		return fmt.Errorf("counting wallet records: %w", err)
	}

	logger.Info(ctx, "starting watch list bulk load", "wallets.total", total)

	for offset := 0; ; offset += s.pageSize {
		records, err := s.walletStore.PageWithDeviceToken(ctx, s.pageSize, offset)
		if err != nil {
			return fmt.Errorf("fetching wallet page at offset %d: %w", offset, err)
		}

		if len(records) == 0 {
			logger.Info(ctx, "watch list bulk load complete", "wallets.total", total)
			return nil
		}

		for chain, tokens := range collectPageTokens(records) {
			if err := s.tokenStorage.SetTokens(ctx, chain, tokens); err != nil {
				return fmt.Errorf("storing %d watch entries for chain %s: %w", len(tokens), chain, err)
			}
		}
	}
}

// Lookup resolves the notification token for an address. Absence is reported
// through ErrAddressNotWatched and is not treated as a failure by callers.
func (s *service) Lookup(ctx context.Context, chain chains.Chain, address string) (string, error) {
	return s.tokenStorage.GetToken(ctx, chain, address)
}

// Upsert writes a single watch-list entry. Repeated calls with the same
// arguments leave the cache unchanged; a call with a new token replaces the
// previous one.
func (s *service) Upsert(ctx context.Context, chain chains.Chain, address, token string) error {
	return s.tokenStorage.SetTokens(ctx, chain, map[string]string{address: token})
}

// WatchedAddresses lists the chain's full watched address set, used when
// (re)creating a provider webhook subscription.
func (s *service) WatchedAddresses(ctx context.Context, chain chains.Chain) ([]string, error) {
	return s.tokenStorage.ListAddresses(ctx, chain)
}
