package notifyproc

import (
	"context"
	"errors"

	"github.com/walletherald/walletherald/internal/chains"
	"github.com/walletherald/walletherald/internal/hookingest"
	"github.com/walletherald/walletherald/internal/ledgerpoll"
	"github.com/walletherald/walletherald/internal/notify"
	"github.com/walletherald/walletherald/internal/watchlist"
)

// mapLedgerActivity converts a ledgerpoll.Activity into a notify.Activity.
// Everything the poller emits belongs to the polling chain.
func mapLedgerActivity(a ledgerpoll.Activity) notify.Activity {
	kind := notify.KindTransfer
	if a.Kind == ledgerpoll.KindTrade {
		kind = notify.KindTrade
	}

	return notify.Activity{
		Chain:         chains.Stellar,
		From:          a.From,
		To:            a.To,
		Asset:         a.Asset,
		Amount:        a.Amount,
		TxRef:         a.TxRef,
		Kind:          kind,
		CounterAmount: a.CounterAmount,
		CounterAsset:  a.CounterAsset,
	}
}

// mapHookActivity converts a hookingest.Activity into a notify.Activity.
func mapHookActivity(a hookingest.Activity) notify.Activity {
	kind := notify.KindTransfer
	if a.TokenTransfer {
		kind = notify.KindContractTransfer
	}

	return notify.Activity{
		Chain:  a.Chain,
		From:   a.From,
		To:     a.To,
		Asset:  a.Asset,
		Amount: a.Amount,
		TxRef:  a.TxRef,
		Kind:   kind,
	}
}

// ledgerActivityNotifier feeds the poller's classified activity into the
// notification dispatcher.
type ledgerActivityNotifier struct {
	dispatcher notify.Service
}

var _ ledgerpoll.ActivityNotifier = (*ledgerActivityNotifier)(nil)

// NewLedgerActivityNotifier adapts the dispatcher to the poller's notifier port.
func NewLedgerActivityNotifier(dispatcher notify.Service) *ledgerActivityNotifier {
	return &ledgerActivityNotifier{dispatcher: dispatcher}
}

func (n *ledgerActivityNotifier) NotifyActivity(ctx context.Context, activity ledgerpoll.Activity) error {
	return n.dispatcher.Dispatch(ctx, mapLedgerActivity(activity))
}

// hookActivityNotifier feeds webhook-ingested activity into the notification
// dispatcher.
type hookActivityNotifier struct {
	dispatcher notify.Service
}

var _ hookingest.ActivityNotifier = (*hookActivityNotifier)(nil)

// NewHookActivityNotifier adapts the dispatcher to the ingestion notifier port.
func NewHookActivityNotifier(dispatcher notify.Service) *hookActivityNotifier {
	return &hookActivityNotifier{dispatcher: dispatcher}
}

func (n *hookActivityNotifier) NotifyActivity(ctx context.Context, activity hookingest.Activity) error {
	return n.dispatcher.Dispatch(ctx, mapHookActivity(activity))
}

// watchIndex answers the poller's watched-address checks from the watch list.
type watchIndex struct {
	watchlist watchlist.Service
}

var _ ledgerpoll.WatchIndex = (*watchIndex)(nil)

// NewWatchIndex adapts the watch list to the poller's membership port.
func NewWatchIndex(w watchlist.Service) *watchIndex {
	return &watchIndex{watchlist: w}
}

func (w *watchIndex) IsWatched(ctx context.Context, address string) (bool, error) {
	_, err := w.watchlist.Lookup(ctx, chains.Stellar, address)
	if errors.Is(err, watchlist.ErrAddressNotWatched) {
		return false, nil
	}
	if err != nil {
		return false, err
	}

	return true, nil
}
