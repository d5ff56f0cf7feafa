package hookingest

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/walletherald/walletherald/internal/pkg/validator"
)

// ErrMalformedPayload classifies an inbound webhook body that could not be
// decoded against the expected schema. The HTTP layer still acknowledges the
// delivery; the error exists for logging and metrics only.
var ErrMalformedPayload = errors.New("malformed webhook payload")

// activityCategoryToken marks a token/contract transfer in provider payloads.
const activityCategoryToken = "token"

// activityEntry is one activity element of a provider delivery. Value is
// decoded as json.Number to preserve the provider's decimal representation.
type activityEntry struct {
	FromAddress string      `json:"fromAddress" validate:"required"`
	ToAddress   string      `json:"toAddress" validate:"required"`
	Value       json.Number `json:"value" validate:"required"`
	Asset       string      `json:"asset"`
	Category    string      `json:"category"`
	Hash        string      `json:"hash" validate:"required"`
	RawContract struct {
		Address string `json:"address"`
	} `json:"rawContract"`
}

// inboundEvent is the provider webhook body. Deliveries are assumed to carry
// exactly one activity entry per call; only the first entry is consumed.
type inboundEvent struct {
	Event struct {
		Network  string          `json:"network" validate:"required"`
		Activity []activityEntry `json:"activity" validate:"required,min=1,dive"`
	} `json:"event"`
}

// decodeInboundEvent parses and validates a raw webhook body, returning the
// single activity entry it carries. Any decode or validation failure is
// wrapped in ErrMalformedPayload.
func decodeInboundEvent(raw []byte) (activityEntry, error) {
	var event inboundEvent
	if err := json.Unmarshal(raw, &event); err != nil {
		return activityEntry{}, fmt.Errorf("%w: %w", ErrMalformedPayload, err)
	}

	if err := validator.Validate(event); err != nil {
		return activityEntry{}, fmt.Errorf("%w: %w", ErrMalformedPayload, err)
	}

	return event.Event.Activity[0], nil
}
