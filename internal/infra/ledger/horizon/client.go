// Package horizon implements the ledgerpoll.LedgerAPI interface against a
// Horizon-compatible ledger HTTP API.
package horizon

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/walletherald/walletherald/internal/ledgerpoll"

	"github.com/hashicorp/go-retryablehttp"
)

// client implements the ledgerpoll.LedgerAPI interface over a Horizon-style
// REST API.
type client struct {
	baseURL string
	conn    *retryablehttp.Client
}

// Ensure client implements the ledgerpoll.LedgerAPI interface at compile time.
var _ ledgerpoll.LedgerAPI = (*client)(nil)

// NewClient creates a Horizon API client on top of the given retrying HTTP
// client. Rate-limit responses are surfaced to the poller instead of being
// retried here: the poller owns the cooldown policy.
func NewClient(baseURL string, conn *retryablehttp.Client) *client {
	baseRetry := conn.CheckRetry
	if baseRetry == nil {
		baseRetry = retryablehttp.DefaultRetryPolicy
	}

	conn.CheckRetry = func(ctx context.Context, resp *http.Response, err error) (bool, error) {
		if resp != nil && resp.StatusCode == http.StatusTooManyRequests {
			return false, nil
		}

		return baseRetry(ctx, resp, err)
	}

	return &client{
		baseURL: strings.TrimRight(baseURL, "/"),
		conn:    conn,
	}
}

// statusError carries a non-2xx response so callers can branch on the code.
type statusError struct {
	code int
	body string
}

func (e *statusError) Error() string {
	return fmt.Sprintf("ledger api returned status %d: %s", e.code, e.body)
}

// effectRecord mirrors one element of a Horizon effects page.
type effectRecord struct {
	Type            string `json:"type"`
	Account         string `json:"account"`
	TxHash          string `json:"transaction_hash"`
	PagingToken     string `json:"paging_token"`
	Amount          string `json:"amount"`
	AssetType       string `json:"asset_type"`
	AssetCode       string `json:"asset_code"`
	AssetIssuer     string `json:"asset_issuer"`
	SoldAmount      string `json:"sold_amount"`
	SoldAssetType   string `json:"sold_asset_type"`
	SoldAssetCode   string `json:"sold_asset_code"`
	BoughtAmount    string `json:"bought_amount"`
	BoughtAssetType string `json:"bought_asset_type"`
	BoughtAssetCode string `json:"bought_asset_code"`
}

// get issues one GET request and decodes the 2xx response body into out.
// A 429 is mapped to ledgerpoll.ErrRateLimited; any other non-2xx status is
// an opaque error carrying the response body.
func (c *client) get(ctx context.Context, path string, out any) error {
	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return err
	}

	resp, err := c.conn.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusTooManyRequests {
		return fmt.Errorf("%s: %w", path, ledgerpoll.ErrRateLimited)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return &statusError{code: resp.StatusCode, body: string(body)}
	}

	return json.Unmarshal(body, out)
}

// CurrentTip returns the sequence of the latest closed ledger, read from a
// single-record descending ledgers page.
func (c *client) CurrentTip(ctx context.Context) (int64, error) {
	var payload struct {
		Embedded struct {
			Records []struct {
				Sequence int64 `json:"sequence"`
			} `json:"records"`
		} `json:"_embedded"`
	}

	if err := c.get(ctx, "/ledgers?order=desc&limit=1", &payload); err != nil {
		return 0, err
	}

	if len(payload.Embedded.Records) == 0 {
		return 0, fmt.Errorf("ledger api returned no ledgers")
	}

	return payload.Embedded.Records[0].Sequence, nil
}

// FetchEffects returns one page of the ledger's effects. The next cursor is
// the paging token of the last record; an empty page yields an empty cursor.
func (c *client) FetchEffects(ctx context.Context, ledger int64, pageSize int, cursor string) (ledgerpoll.EffectPage, error) {
	path := fmt.Sprintf("/ledgers/%d/effects?limit=%d", ledger, pageSize)
	if cursor != "" {
		path += "&cursor=" + cursor
	}

	var payload struct {
		Embedded struct {
			Records []effectRecord `json:"records"`
		} `json:"_embedded"`
	}

	if err := c.get(ctx, path, &payload); err != nil {
		return ledgerpoll.EffectPage{}, err
	}

	page := ledgerpoll.EffectPage{
		Records: make([]ledgerpoll.Effect, len(payload.Embedded.Records)),
	}
	for i, record := range payload.Embedded.Records {
		page.Records[i] = ledgerpoll.Effect{
			Type:            record.Type,
			Account:         record.Account,
			TxHash:          record.TxHash,
			Amount:          record.Amount,
			AssetType:       record.AssetType,
			AssetCode:       record.AssetCode,
			AssetIssuer:     record.AssetIssuer,
			SoldAmount:      record.SoldAmount,
			SoldAssetType:   record.SoldAssetType,
			SoldAssetCode:   record.SoldAssetCode,
			BoughtAmount:    record.BoughtAmount,
			BoughtAssetType: record.BoughtAssetType,
			BoughtAssetCode: record.BoughtAssetCode,
		}
	}

	if n := len(payload.Embedded.Records); n > 0 {
		page.NextCursor = payload.Embedded.Records[n-1].PagingToken
	}

	return page, nil
}

// HasTrustline reports whether the account carries a balance line for the
// issued asset. An unknown account has no trustlines.
func (c *client) HasTrustline(ctx context.Context, account, assetCode, assetIssuer string) (bool, error) {
	var payload struct {
		Balances []struct {
			AssetCode   string `json:"asset_code"`
			AssetIssuer string `json:"asset_issuer"`
		} `json:"balances"`
	}

	err := c.get(ctx, "/accounts/"+account, &payload)
	if err != nil {
		var se *statusError
		if errors.As(err, &se) && se.code == http.StatusNotFound {
			return false, nil
		}

		return false, err
	}

	for _, balance := range payload.Balances {
		if balance.AssetCode == assetCode && balance.AssetIssuer == assetIssuer {
			return true, nil
		}
	}

	return false, nil
}
