package watchlist

import (
	"context"
	"errors"

	"github.com/walletherald/walletherald/internal/chains"
)

// ErrAddressNotWatched is returned by Lookup when no device has registered
// interest in the given (chain, address) pair. It is an expected outcome, not
// a failure: most on-chain activity involves addresses nobody watches.
var ErrAddressNotWatched = errors.New("address is not watched")

// TokenStorage is the key-value backend holding the watch list, one hash per
// chain mapping address → notification token. Writes must be atomic per key;
// no cross-key transaction is ever required because every write is an
// idempotent last-write-wins upsert.
type TokenStorage interface {
	// SetTokens upserts the given address → token entries for the chain.
	// Existing entries for the same addresses are overwritten.
	SetTokens(ctx context.Context, chain chains.Chain, tokens map[string]string) error

	// GetToken returns the notification token registered for the address,
	// or ErrAddressNotWatched when no entry exists.
	GetToken(ctx context.Context, chain chains.Chain, address string) (string, error)

	// ListAddresses returns every watched address for the chain.
	ListAddresses(ctx context.Context, chain chains.Chain) ([]string, error)
}
