package ledgerpoll

import (
	"context"
	"errors"
)

// ErrRateLimited signals that the ledger API rejected a request for exceeding
// its rate limits. The poller reacts by cooling down and retrying the same
// ledger; no ledger is ever skipped because of rate limiting.
var ErrRateLimited = errors.New("ledger api rate limited")

// Effect type discriminators used by the ledger API.
const (
	effectAccountCredited = "account_credited"
	effectTrade           = "trade"

	// assetTypeNative marks the ledger's native asset in effect payloads.
	assetTypeNative = "native"
)

// Effect is one raw activity record from the polling chain's ledger API.
// Credits populate the Amount/Asset fields; trades populate the Sold/Bought
// pairs instead.
type Effect struct {
	Type    string // effect discriminator (e.g. "account_credited", "trade")
	Account string // account the effect applies to
	TxHash  string // transaction that produced the effect

	Amount      string // credited amount (credits only)
	AssetType   string // "native" or an issued-asset type
	AssetCode   string // issued-asset code, empty for native
	AssetIssuer string // issued-asset issuer, empty for native

	SoldAmount      string
	SoldAssetType   string
	SoldAssetCode   string
	BoughtAmount    string
	BoughtAssetType string
	BoughtAssetCode string
}

// EffectPage is one page of effects for a ledger. A page shorter than the
// requested page size, or an empty NextCursor, signals the end of the ledger.
type EffectPage struct {
	Records    []Effect
	NextCursor string
}

// LedgerAPI is the polling chain's public API surface.
type LedgerAPI interface {
	// CurrentTip returns the index of the latest closed ledger.
	CurrentTip(ctx context.Context) (int64, error)

	// FetchEffects returns one page of the given ledger's effects. Pass an
	// empty cursor for the first page and the previous page's NextCursor
	// afterwards. Rate limiting is reported as an error wrapping
	// ErrRateLimited.
	FetchEffects(ctx context.Context, ledger int64, pageSize int, cursor string) (EffectPage, error)

	// HasTrustline reports whether the account has opted into holding the
	// given issued asset.
	HasTrustline(ctx context.Context, account, assetCode, assetIssuer string) (bool, error)
}
