package watchlist

import (
	"context"

	"github.com/walletherald/walletherald/internal/chains"
)

// WalletRecord is one wallet as returned by the wallet store: the set of
// chain addresses it owns and the push-notification token of the device that
// registered it. Records without a token or without any address carry no
// information for the watch list and are skipped during loads.
type WalletRecord struct {
	Addresses         map[chains.Chain]string // chain → address owned by this wallet
	NotificationToken string                  // device push token, empty if none registered
}

// watchable reports whether the record contributes at least one watch-list
// entry.
func (r WalletRecord) watchable() bool {
	return r.NotificationToken != "" && len(r.Addresses) > 0
}

// WalletStore is the durable wallet/device store the watch list is rebuilt
// from. The store itself is owned by another system; the watch list only
// reads it through stable offset pagination.
type WalletStore interface {
	// CountAll returns the total number of wallet records. The count is
	// informational (load progress logging); pagination terminates on an
	// empty page, not on the count.
	CountAll(ctx context.Context) (int64, error)

	// PageWithDeviceToken returns up to limit wallet records joined with
	// their device token, starting at the given offset. An empty slice
	// signals that all records have been consumed.
	PageWithDeviceToken(ctx context.Context, limit, offset int) ([]WalletRecord, error)
}
