// Package main is the entry point for the walletherald notification watcher.
package main

import (
	"context"
	"log"

	"github.com/walletherald/walletherald/internal/chains"
	"github.com/walletherald/walletherald/internal/config"
	"github.com/walletherald/walletherald/internal/handlers/cli"
	"github.com/walletherald/walletherald/internal/handlers/httpapi"
	"github.com/walletherald/walletherald/internal/hookingest"
	"github.com/walletherald/walletherald/internal/hooksync"
	"github.com/walletherald/walletherald/internal/infra/ledger/horizon"
	"github.com/walletherald/walletherald/internal/infra/push/fcm"
	"github.com/walletherald/walletherald/internal/infra/storage/redis"
	"github.com/walletherald/walletherald/internal/infra/storage/walletdb"
	"github.com/walletherald/walletherald/internal/infra/webhook/alchemy"
	"github.com/walletherald/walletherald/internal/ledgerpoll"
	"github.com/walletherald/walletherald/internal/notify"
	"github.com/walletherald/walletherald/internal/notifyproc"
	"github.com/walletherald/walletherald/internal/pkg/logger"
	"github.com/walletherald/walletherald/internal/pkg/telemetry"
	transporthttp "github.com/walletherald/walletherald/internal/pkg/transport/http"
	"github.com/walletherald/walletherald/internal/watchlist"
)

const serviceName = "walletherald"

func main() {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("loading configuration: %v", err)
	}

	if cfg.TelemetryEnabled {
		shutdown, err := telemetry.Init(ctx, serviceName)
		if err != nil {
			log.Fatalf("initializing telemetry: %v", err)
		}
		defer shutdown(ctx)
	}

	if err := logger.Init(logger.WithLevel(cfg.LogLevel)); err != nil {
		log.Fatalf("initializing logger: %v", err)
	}
	defer logger.Sync()

	redisClient, err := redis.NewClient(ctx, cfg.RedisAddr, cfg.RedisUsername, cfg.RedisPassword, cfg.RedisDB)
	if err != nil {
		logger.Fatal(ctx, "connecting to redis", "error", err)
	}
	defer redisClient.Close()

	walletStore, err := walletdb.NewClient(ctx, cfg.WalletDBDSN)
	if err != nil {
		logger.Fatal(ctx, "connecting to wallet database", "error", err)
	}
	defer walletStore.Close()

	tokenSymbols, err := cfg.TokenSymbolMap()
	if err != nil {
		logger.Fatal(ctx, "building token symbol map", "error", err)
	}

	watchlistSvc := watchlist.New(walletStore, redisClient,
		watchlist.WithPageSize(cfg.WalletPageSize),
	)

	hooksyncSvc := hooksync.New(
		alchemy.NewClient(cfg.AlchemyBaseURL, cfg.AlchemyToken, transporthttp.NewClient()),
		watchlistSvc,
		cfg.UpdateAllHooks,
		map[chains.Chain]hooksync.ChainHook{
			chains.Ethereum: {Network: "ETH_MAINNET", CallbackURL: cfg.AlchemyCallbackETH, Enabled: cfg.UpdateHookETH},
			chains.BNB:      {Network: "BNB_MAINNET", CallbackURL: cfg.AlchemyCallbackBNB, Enabled: cfg.UpdateHookBNB},
		},
	)

	notifySvc := notify.New(
		watchlistSvc,
		fcm.NewClient(cfg.PushURL, cfg.PushKey, transporthttp.NewClient()),
		notify.WithDeliveryGuard(redisClient),
	)

	ledgerpollSvc := ledgerpoll.New(
		horizon.NewClient(cfg.HorizonURL, transporthttp.NewClient()),
		notifyproc.NewWatchIndex(watchlistSvc),
		notifyproc.NewLedgerActivityNotifier(notifySvc),
		ledgerpoll.WithPageSize(cfg.LedgerPageSize),
		ledgerpoll.WithIdleInterval(cfg.PollIdleInterval),
		ledgerpoll.WithLedgerDelay(cfg.LedgerDelay),
		ledgerpoll.WithRateLimitCooldown(cfg.RateLimitCooldown),
		ledgerpoll.WithDustFloor(cfg.DustFloor),
		ledgerpoll.WithSkippedLedgerRecorder(redisClient),
	)

	ingestSvc := hookingest.New(notifyproc.NewHookActivityNotifier(notifySvc), tokenSymbols)

	var procOpts []notifyproc.Option
	if !cfg.InitWatchlist {
		procOpts = append(procOpts, notifyproc.WithoutBulkLoad())
	}

	procSvc := notifyproc.New(watchlistSvc, hooksyncSvc, ledgerpollSvc, ingestSvc, map[chains.Chain]string{
		chains.Ethereum: cfg.WebhookIDETH,
		chains.BNB:      cfg.WebhookIDBNB,
	}, procOpts...)

	handler := httpapi.NewHandler(ingestSvc, procSvc)

	if err := cli.Run(ctx, procSvc, hooksyncSvc, handler, cfg.HTTPAddr); err != nil {
		logger.Fatal(ctx, "walletherald exited with error", "error", err)
	}
}
