package ledgerpoll

import (
	"context"
	"strconv"

	"github.com/walletherald/walletherald/internal/pkg/logger"
)

// exchangeLabel is the counterparty shown for trades matched on the ledger's
// built-in decentralized exchange.
const exchangeLabel = "SDEX"

// displayAsset resolves the display symbol for an asset type/code pair.
func (s *service) displayAsset(assetType, assetCode string) string {
	if assetType == assetTypeNative {
		return s.nativeAsset
	}

	return assetCode
}

// handleEffect classifies one raw effect and forwards it to the notifier when
// it qualifies. Non-notifiable effects return nil; only notifier and
// watch-index failures surface as errors.
func (s *service) handleEffect(ctx context.Context, effect Effect) error {
	switch effect.Type {
	case effectAccountCredited:
		return s.handleCredit(ctx, effect)
	case effectTrade:
		return s.handleTrade(ctx, effect)
	}

	return nil
}

// handleCredit dispatches a credit effect when the recipient is watched, the
// amount clears the dust floor (native asset), and the recipient holds a
// trustline for the asset (issued assets).
func (s *service) handleCredit(ctx context.Context, effect Effect) error {
	watched, err := s.watchIndex.IsWatched(ctx, effect.Account)
	if err != nil {
		return err
	}
	if !watched {
		return nil
	}

	native := effect.AssetType == assetTypeNative

	if native {
		amount, err := strconv.ParseFloat(effect.Amount, 64)
		if err != nil {
			logger.Warn(ctx, "credit effect carries a malformed amount",
				"effect.account", effect.Account,
				"effect.amount", effect.Amount,
				"effect.tx", effect.TxHash,
			)
			return nil
		}

		if amount < s.dustFloor {
			return nil
		}
	} else {
		trusted, err := s.ledgerAPI.HasTrustline(ctx, effect.Account, effect.AssetCode, effect.AssetIssuer)
		if err != nil || !trusted {
			// An account that cannot be loaded is treated as not trusting
			// the asset; the credit is skipped silently either way.
			return nil
		}
	}

	return s.notifier.NotifyActivity(ctx, Activity{
		From:   effect.Account,
		To:     effect.Account,
		Asset:  s.displayAsset(effect.AssetType, effect.AssetCode),
		Amount: effect.Amount,
		TxRef:  effect.TxHash,
		Kind:   KindTransfer,
	})
}

// handleTrade dispatches a trade effect for a watched account, reporting the
// bought side as the received amount and the sold side as the sent amount.
func (s *service) handleTrade(ctx context.Context, effect Effect) error {
	watched, err := s.watchIndex.IsWatched(ctx, effect.Account)
	if err != nil {
		return err
	}
	if !watched {
		return nil
	}

	return s.notifier.NotifyActivity(ctx, Activity{
		From:          exchangeLabel,
		To:            effect.Account,
		Asset:         s.displayAsset(effect.SoldAssetType, effect.SoldAssetCode),
		Amount:        effect.SoldAmount,
		TxRef:         effect.TxHash,
		Kind:          KindTrade,
		CounterAmount: effect.BoughtAmount,
		CounterAsset:  s.displayAsset(effect.BoughtAssetType, effect.BoughtAssetCode),
	})
}
