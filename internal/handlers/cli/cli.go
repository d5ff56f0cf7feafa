// Package cli wires the watcher's commands into a urfave/cli application.
package cli

import (
	"context"
	"net/http"
	"os"

	"github.com/walletherald/walletherald/internal/hooksync"
	"github.com/walletherald/walletherald/internal/notifyproc"

	"github.com/urfave/cli/v3"
)

// Run initializes and executes the walletherald CLI application.
//
// It registers all available commands, including:
//
//   - `serve`: Starts the notification pipeline and the HTTP surface.
//   - `resync`: Recreates the provider webhook subscriptions from the
//     current watch list.
//
// Parameters:
//   - ctx: Context used to control the lifecycle of the CLI application.
//   - proc: The notifyproc service driving the pipeline.
//   - hooks: The hooksync service used by the resync command.
//   - handler: The inbound HTTP surface served by the serve command.
//   - httpAddr: The listen address for the HTTP surface.
func Run(ctx context.Context, proc notifyproc.Service, hooks hooksync.Service, handler http.Handler, httpAddr string) error {
	app := &cli.Command{
		EnableShellCompletion: true,
		Name:                  "walletherald",
		Description:           "Command-line interface for running the wallet activity notification pipeline.",
		Usage:                 "walletherald [command] [flags]",
		Commands: []*cli.Command{
			serveCommand(proc, handler, httpAddr),
			resyncCommand(hooks),
		},
	}

	return app.Run(ctx, os.Args)
}
