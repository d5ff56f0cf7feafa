package ledgerpoll

import "context"

// Kind classifies an activity extracted from a ledger effect.
type Kind string

const (
	KindTransfer Kind = "transfer"
	KindTrade    Kind = "trade"
)

// Activity is one notifiable unit of polling-chain activity, already
// classified and filtered. It is handed to the notifier exactly once.
type Activity struct {
	From   string // counterparty, or the exchange label for trades
	To     string // watched recipient
	Asset  string // display symbol of the credited/sold asset
	Amount string // decimal string as reported by the ledger
	TxRef  string // transaction hash
	Kind   Kind

	// Bought side of a trade; unset for transfers.
	CounterAmount string
	CounterAsset  string
}

// ActivityNotifier receives classified activity in non-decreasing ledger
// order. Implementations must not block for long: a slow notifier delays the
// drain of subsequent ledgers.
type ActivityNotifier interface {
	NotifyActivity(ctx context.Context, activity Activity) error
}

// WatchIndex answers whether anyone is watching an address on the polling
// chain. It gates classification so the poller does not pay a trustline
// lookup for accounts nobody cares about.
type WatchIndex interface {
	IsWatched(ctx context.Context, address string) (bool, error)
}
