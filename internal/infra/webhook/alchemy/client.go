// Package alchemy implements the hooksync.SubscriptionAPI interface against
// an Alchemy-compatible notify API.
package alchemy

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"github.com/walletherald/walletherald/internal/hooksync"

	"github.com/hashicorp/go-retryablehttp"
)

const (
	createWebhookPath          = "/create-webhook"
	updateWebhookAddressesPath = "/update-webhook-addresses"

	// authHeader carries the provider auth token on every request.
	authHeader = "X-Alchemy-Token"

	// webhookTypeAddressActivity is the only subscription type this system
	// creates: per-address activity deliveries.
	webhookTypeAddressActivity = "ADDRESS_ACTIVITY"
)

// client implements the hooksync.SubscriptionAPI interface.
type client struct {
	baseURL string
	token   string
	conn    *retryablehttp.Client
}

// Ensure client implements the hooksync.SubscriptionAPI interface at compile time.
var _ hooksync.SubscriptionAPI = (*client)(nil)

// NewClient creates a webhook provider client authenticated with the given
// token.
func NewClient(baseURL, token string, conn *retryablehttp.Client) *client {
	return &client{
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
		conn:    conn,
	}
}

// do issues one JSON request and decodes the 2xx response body into out (when
// non-nil). Non-2xx responses become a *hooksync.ProviderError carrying the
// provider's own diagnostics.
func (c *client) do(ctx context.Context, method, path string, payload, out any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	req, err := retryablehttp.NewRequestWithContext(ctx, method, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set(authHeader, c.token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.conn.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return &hooksync.ProviderError{StatusCode: resp.StatusCode, Body: string(respBody)}
	}

	if out != nil {
		return json.Unmarshal(respBody, out)
	}

	return nil
}

// CreateSubscription registers an address-activity webhook and returns the
// provider's id for it.
func (c *client) CreateSubscription(ctx context.Context, spec hooksync.SubscriptionSpec) (string, error) {
	payload := struct {
		Network      string   `json:"network"`
		Name         string   `json:"name"`
		WebhookType  string   `json:"webhook_type"`
		WebhookURL   string   `json:"webhook_url"`
		GraphQLQuery string   `json:"graphql_query,omitempty"`
		Addresses    []string `json:"addresses"`
	}{
		Network:      spec.Network,
		Name:         spec.Name,
		WebhookType:  webhookTypeAddressActivity,
		WebhookURL:   spec.CallbackURL,
		GraphQLQuery: spec.FilterQuery,
		Addresses:    spec.Addresses,
	}

	var out struct {
		Data struct {
			ID string `json:"id"`
		} `json:"data"`
	}

	if err := c.do(ctx, http.MethodPost, createWebhookPath, payload, &out); err != nil {
		return "", err
	}

	return out.Data.ID, nil
}

// UpdateSubscription patches the webhook's address set. Nil slices are sent
// as empty lists; the provider treats the call as a pure delta.
func (c *client) UpdateSubscription(ctx context.Context, id string, addressesToAdd, addressesToRemove []string) error {
	if addressesToAdd == nil {
		addressesToAdd = []string{}
	}
	if addressesToRemove == nil {
		addressesToRemove = []string{}
	}

	payload := struct {
		WebhookID         string   `json:"webhook_id"`
		AddressesToAdd    []string `json:"addresses_to_add"`
		AddressesToRemove []string `json:"addresses_to_remove"`
	}{
		WebhookID:         id,
		AddressesToAdd:    addressesToAdd,
		AddressesToRemove: addressesToRemove,
	}

	return c.do(ctx, http.MethodPatch, updateWebhookAddressesPath, payload, nil)
}
