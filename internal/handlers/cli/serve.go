package cli

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/walletherald/walletherald/internal/notifyproc"
	"github.com/walletherald/walletherald/internal/pkg/logger"

	"github.com/urfave/cli/v3"
)

// shutdownTimeout bounds how long in-flight HTTP requests may take to drain
// after a termination signal.
const shutdownTimeout = 10 * time.Second

// serveCommand returns a CLI command that starts the full notification
// pipeline and the inbound HTTP surface.
//
// Usage example:
//
//	walletherald serve
//
// The process runs indefinitely until it receives an interrupt (SIGINT or SIGTERM).
func serveCommand(proc notifyproc.Service, handler http.Handler, httpAddr string) *cli.Command {
	return &cli.Command{
		Name:        "serve",
		Description: "Starts the notification pipeline: watch-list load, webhook reconciliation, ledger polling, and the HTTP surface.",
		Usage:       "Initializes and runs the full pipeline. Terminates gracefully on Ctrl+C or termination signals.",
		Action: func(ctx context.Context, c *cli.Command) error {
			quit := make(chan os.Signal, 1)
			defer close(quit)

			signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

			if err := proc.Start(ctx); err != nil {
				return err
			}
			defer proc.Close()

			srv := &http.Server{Addr: httpAddr, Handler: handler}

			serveErr := make(chan error, 1)
			go func() {
				if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					serveErr <- err
				}
			}()

			logger.Info(ctx, "http surface listening", "addr", httpAddr)

			select {
			case err := <-serveErr:
				return err
			case <-quit:
			case <-ctx.Done():
			}

			shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
			defer cancel()

			return srv.Shutdown(shutdownCtx)
		},
	}
}
