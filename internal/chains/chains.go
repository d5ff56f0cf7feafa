// Package chains defines the identifiers for the blockchain networks the
// watcher supports. Push-chain networks are ingested through provider
// webhooks, while the polling chain is scanned ledger by ledger.
package chains

import "fmt"

// Chain identifies a supported blockchain network.
type Chain string

const (
	// Ethereum is ingested through the webhook provider.
	Ethereum Chain = "eth"

	// BNB is ingested through the webhook provider.
	BNB Chain = "bnb"

	// Stellar is ingested by polling the ledger API.
	Stellar Chain = "xlm"
)

// PushChains lists the networks whose activity arrives via provider webhooks.
func PushChains() []Chain {
	return []Chain{Ethereum, BNB}
}

// Parse converts a raw string into a Chain, returning an error for
// unrecognized values.
func Parse(s string) (Chain, error) {
	switch c := Chain(s); c {
	case Ethereum, BNB, Stellar:
		return c, nil
	}

	return "", fmt.Errorf("unknown chain %q", s)
}

// String returns the canonical short name of the chain.
func (c Chain) String() string {
	return string(c)
}
