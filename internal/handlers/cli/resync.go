package cli

import (
	"context"
	"errors"

	"github.com/walletherald/walletherald/internal/chains"
	"github.com/walletherald/walletherald/internal/hooksync"

	"github.com/urfave/cli/v3"
)

// resyncCommand returns a CLI command that recreates the provider webhook
// subscriptions from the current watch list, reconciling any deltas that were
// lost while the process was down.
//
// Usage example:
//
//	walletherald resync
//	walletherald resync --chain eth
func resyncCommand(hooks hooksync.Service) *cli.Command {
	return &cli.Command{
		Name:        "resync",
		Description: "Recreates the provider webhook subscriptions from the full watched address set.",
		Usage:       "Resyncs all push chains, or a single one via --chain.",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "chain",
				Usage: "Push chain to resync (eth, bnb). All push chains when omitted.",
			},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			targets := chains.PushChains()
			if raw := c.String("chain"); raw != "" {
				chain, err := chains.Parse(raw)
				if err != nil {
					return err
				}

				targets = []chains.Chain{chain}
			}

			var errs []error
			for _, chain := range targets {
				if err := hooks.EnsureSubscription(ctx, chain); err != nil {
					errs = append(errs, err)
				}
			}

			return errors.Join(errs...)
		},
	}
}
