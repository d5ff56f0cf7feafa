package httpapi

import (
	"encoding/json"
	"net/http"

	"github.com/walletherald/walletherald/internal/chains"
	"github.com/walletherald/walletherald/internal/notifyproc"
	"github.com/walletherald/walletherald/internal/pkg/logger"
	"github.com/walletherald/walletherald/internal/pkg/validator"
)

// walletUpdateRequest is the PUT /wallets body. The multi-chain address
// covers both EVM chains when the per-chain fields are absent.
type walletUpdateRequest struct {
	DeviceToken string `json:"deviceToken" validate:"required"`
	Wallets     struct {
		EthAddress        string `json:"ethAddress"`
		BnbAddress        string `json:"bnbAddress"`
		StellarAddress    string `json:"stellarAddress"`
		MultiChainAddress string `json:"multiChainAddress"`
	} `json:"wallets" validate:"required"`
}

// toWalletUpdate maps the request onto the typed wallet-update event.
func (r walletUpdateRequest) toWalletUpdate() notifyproc.WalletUpdate {
	eth := r.Wallets.EthAddress
	if eth == "" {
		eth = r.Wallets.MultiChainAddress
	}
	bnb := r.Wallets.BnbAddress
	if bnb == "" {
		bnb = r.Wallets.MultiChainAddress
	}

	addresses := make(map[chains.Chain]string)
	if eth != "" {
		addresses[chains.Ethereum] = eth
	}
	if bnb != "" {
		addresses[chains.BNB] = bnb
	}
	if r.Wallets.StellarAddress != "" {
		addresses[chains.Stellar] = r.Wallets.StellarAddress
	}

	return notifyproc.WalletUpdate{
		Addresses:         addresses,
		NotificationToken: r.DeviceToken,
	}
}

// handleWalletUpdate registers a device's wallet addresses for watching.
func handleWalletUpdate(proc notifyproc.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req walletUpdateRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeJSON(w, http.StatusBadRequest, errorBody{Error: "malformed body"})
			return
		}

		if err := validator.Validate(req); err != nil {
			writeJSON(w, http.StatusBadRequest, errorBody{Error: err.Error()})
			return
		}

		update := req.toWalletUpdate()
		if len(update.Addresses) == 0 {
			writeJSON(w, http.StatusBadRequest, errorBody{Error: "no wallet addresses provided"})
			return
		}

		if err := proc.HandleWalletUpdate(r.Context(), update); err != nil {
			logger.Error(r.Context(), "wallet update failed", "error", err)
			writeJSON(w, http.StatusInternalServerError, errorBody{Error: "wallet update failed"})
			return
		}

		writeJSON(w, http.StatusOK, successBody{Success: true})
	}
}
