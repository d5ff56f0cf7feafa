package notify

import (
	"context"
	"fmt"

	"github.com/walletherald/walletherald/internal/chains"
)

// Kind classifies a normalized activity record.
type Kind string

const (
	// KindTransfer is a native-asset credit.
	KindTransfer Kind = "transfer"

	// KindTrade is an on-ledger exchange; the watched account received the
	// counter side of the trade.
	KindTrade Kind = "trade"

	// KindContractTransfer is a token/contract transfer on a push chain.
	KindContractTransfer Kind = "contractTransfer"
)

// Activity is one normalized, chain-agnostic unit of on-chain activity. It is
// produced by classification of raw provider or ledger payloads, consumed
// exactly once by Dispatch, and never persisted.
type Activity struct {
	Chain  chains.Chain
	From   string // counterparty (sender, or exchange label for trades)
	To     string // watched recipient candidate
	Asset  string // display symbol of the credited/sold asset
	Amount string // decimal string, exactly as reported by the source
	TxRef  string // transaction hash or reference on the source chain
	Kind   Kind

	// CounterAmount/CounterAsset describe the bought side of a trade.
	// Unset for transfers.
	CounterAmount string
	CounterAsset  string
}

// Notification is the push payload handed to the provider.
type Notification struct {
	Title string
	Body  string
	Data  map[string]string
}

// Pusher is the push-notification provider capability. Send is best-effort:
// a failure means this notification is lost, never queued or retried.
type Pusher interface {
	Send(ctx context.Context, token string, n Notification) (receipt string, err error)
}

// TokenLookup resolves the notification token watching an address. Absence is
// signaled with watchlist.ErrAddressNotWatched.
type TokenLookup interface {
	Lookup(ctx context.Context, chain chains.Chain, address string) (string, error)
}

// truncateAddress shortens a long address to a prefix...suffix form for
// readability. Short labels (e.g. an exchange name) pass through unchanged.
func truncateAddress(address string) string {
	if len(address) <= 12 {
		return address
	}

	return address[:6] + "..." + address[len(address)-4:]
}

// buildNotification renders the push payload for a classified activity.
func buildNotification(activity Activity) Notification {
	var title string
	switch activity.Kind {
	case KindTrade:
		title = fmt.Sprintf("Received: %s %s, Sent: %s %s",
			activity.CounterAmount, activity.CounterAsset,
			activity.Amount, activity.Asset,
		)
	default:
		title = fmt.Sprintf("Received: %s %s", activity.Amount, activity.Asset)
	}

	return Notification{
		Title: title,
		Body:  fmt.Sprintf("From %s", truncateAddress(activity.From)),
		Data: map[string]string{
			"network": activity.Chain.String(),
			"txRef":   activity.TxRef,
			"kind":    string(activity.Kind),
		},
	}
}
