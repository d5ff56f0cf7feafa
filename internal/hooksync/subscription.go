package hooksync

import (
	"context"
	"fmt"

	"github.com/walletherald/walletherald/internal/chains"
)

// ProviderError is returned when the webhook provider answers with a non-2xx
// status. It carries the HTTP status and raw response body so callers can log
// the provider's own diagnostics.
type ProviderError struct {
	StatusCode int
	Body       string
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("webhook provider returned status %d: %s", e.StatusCode, e.Body)
}

// SubscriptionSpec describes the provider-side subscription to create for a
// chain: which network to watch, where to deliver callbacks, and the initial
// address set.
type SubscriptionSpec struct {
	Network     string   // provider network identifier (e.g. "ETH_MAINNET")
	Name        string   // human-readable subscription name
	CallbackURL string   // endpoint the provider pushes activity to
	FilterQuery string   // provider-side filter describing the fields to deliver
	Addresses   []string // initial watched address set
}

// SubscriptionAPI is the external webhook provider. CreateSubscription fails
// with a *ProviderError on non-2xx responses; UpdateSubscription fails the
// same way but its failures are never fatal for the process.
type SubscriptionAPI interface {
	CreateSubscription(ctx context.Context, spec SubscriptionSpec) (id string, err error)
	UpdateSubscription(ctx context.Context, id string, addressesToAdd, addressesToRemove []string) error
}

// AddressSource provides the full watched address set for a chain, read when
// a subscription is (re)created.
type AddressSource interface {
	WatchedAddresses(ctx context.Context, chain chains.Chain) ([]string, error)
}

// WalletUpdate is the typed wallet-change event the lifecycle manager
// subscribes to. Addresses is the add-only delta to push to the provider.
type WalletUpdate struct {
	Chain          chains.Chain `validate:"required"`
	SubscriptionID string       `validate:"required"`
	Addresses      []string     `validate:"required,min=1"`
}
