// Package httpapi exposes the watcher's inbound HTTP surface: the provider
// webhook callbacks and the wallet-update entry point. The package only
// builds the handler; the http.Server lifecycle belongs to the caller.
package httpapi

import (
	"encoding/json"
	"net/http"

	"github.com/walletherald/walletherald/internal/hookingest"
	"github.com/walletherald/walletherald/internal/notifyproc"
)

// NewHandler builds the HTTP routing table:
//
//	POST /webhooks/{chain}  provider activity callbacks (push chains only)
//	PUT  /wallets           wallet registration / token refresh
func NewHandler(ingest hookingest.Service, proc notifyproc.Service) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /webhooks/{chain}", handleWebhookEvent(ingest))
	mux.HandleFunc("PUT /wallets", handleWalletUpdate(proc))
	return mux
}

// writeJSON serializes v as the response body with the given status.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// successBody is the fixed acknowledgment body providers and clients receive.
type successBody struct {
	Success bool `json:"success"`
}

type errorBody struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}
