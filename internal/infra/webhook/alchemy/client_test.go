package alchemy

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/walletherald/walletherald/internal/hooksync"
	transporthttp "github.com/walletherald/walletherald/internal/pkg/transport/http"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.Handler) *client {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	return NewClient(srv.URL, "secret-token", transporthttp.NewClient(transporthttp.WithRetryMax(0)))
}

func TestClient_CreateSubscription(t *testing.T) {
	t.Run("posts the subscription spec and returns the provider id", func(t *testing.T) {
		c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPost, r.Method)
			assert.Equal(t, "/create-webhook", r.URL.Path)
			assert.Equal(t, "secret-token", r.Header.Get("X-Alchemy-Token"))
			assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

			var payload map[string]any
			require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
			assert.Equal(t, "ETH_MAINNET", payload["network"])
			assert.Equal(t, "ADDRESS_ACTIVITY", payload["webhook_type"])
			assert.Equal(t, "https://callback.example/webhooks/eth", payload["webhook_url"])
			assert.Equal(t, []any{"0xAAA", "0xBBB"}, payload["addresses"])

			fmt.Fprint(w, `{"data": {"id": "wh-123"}}`)
		}))

		id, err := c.CreateSubscription(t.Context(), hooksync.SubscriptionSpec{
			Network:     "ETH_MAINNET",
			Name:        "ETH_MAINNET",
			CallbackURL: "https://callback.example/webhooks/eth",
			Addresses:   []string{"0xAAA", "0xBBB"},
		})
		require.NoError(t, err)
		assert.Equal(t, "wh-123", id)
	})

	t.Run("non-2xx responses carry the provider diagnostics", func(t *testing.T) {
		c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, `{"message": "invalid network"}`, http.StatusBadRequest)
		}))

		_, err := c.CreateSubscription(t.Context(), hooksync.SubscriptionSpec{Network: "NOPE"})

		var provErr *hooksync.ProviderError
		require.ErrorAs(t, err, &provErr)
		assert.Equal(t, http.StatusBadRequest, provErr.StatusCode)
		assert.Contains(t, provErr.Body, "invalid network")
	})
}

func TestClient_UpdateSubscription(t *testing.T) {
	t.Run("patches the address delta", func(t *testing.T) {
		c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPatch, r.Method)
			assert.Equal(t, "/update-webhook-addresses", r.URL.Path)
			assert.Equal(t, "secret-token", r.Header.Get("X-Alchemy-Token"))

			var payload map[string]any
			require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
			assert.Equal(t, "wh-123", payload["webhook_id"])
			assert.Equal(t, []any{"0xCCC"}, payload["addresses_to_add"])
			assert.Equal(t, []any{}, payload["addresses_to_remove"])

			w.WriteHeader(http.StatusOK)
		}))

		err := c.UpdateSubscription(t.Context(), "wh-123", []string{"0xCCC"}, nil)
		require.NoError(t, err)
	})

	t.Run("non-2xx responses become provider errors", func(t *testing.T) {
		c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "unknown webhook", http.StatusNotFound)
		}))

		err := c.UpdateSubscription(t.Context(), "wh-missing", []string{"0xCCC"}, nil)

		var provErr *hooksync.ProviderError
		require.ErrorAs(t, err, &provErr)
		assert.Equal(t, http.StatusNotFound, provErr.StatusCode)
	})
}
