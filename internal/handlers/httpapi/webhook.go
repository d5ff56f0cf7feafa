package httpapi

import (
	"io"
	"net/http"
	"slices"

	"github.com/walletherald/walletherald/internal/chains"
	"github.com/walletherald/walletherald/internal/hookingest"
	"github.com/walletherald/walletherald/internal/pkg/logger"
)

// maxWebhookBodySize bounds provider callback bodies. Deliveries carry a
// single activity entry and never come close to this.
const maxWebhookBodySize = 1 << 20

// handleWebhookEvent accepts one provider delivery for the chain in the
// path. The provider is always acknowledged with 200 once the body has been
// read: failing the callback would only trigger redeliveries of a payload
// that will never parse.
func handleWebhookEvent(ingest hookingest.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		chain, err := chains.Parse(r.PathValue("chain"))
		if err != nil || !slices.Contains(chains.PushChains(), chain) {
			writeJSON(w, http.StatusNotFound, errorBody{Error: "unknown chain"})
			return
		}

		body, err := io.ReadAll(io.LimitReader(r.Body, maxWebhookBodySize))
		if err != nil {
			writeJSON(w, http.StatusOK, successBody{Success: true})
			return
		}

		if err := ingest.HandleInboundEvent(r.Context(), chain, body); err != nil {
			logger.Warn(r.Context(), "webhook delivery rejected",
				"chain", chain,
				"error", err,
			)
		}

		writeJSON(w, http.StatusOK, successBody{Success: true})
	}
}
