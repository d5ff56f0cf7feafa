// Package walletdb implements the watchlist.WalletStore interface against
// the wallet database owned by the account system. The watcher only ever
// reads from it; schema migrations belong to the owning service.
package walletdb

import (
	"context"

	"github.com/walletherald/walletherald/internal/chains"
	"github.com/walletherald/walletherald/internal/pkg/resilience/retry"
	"github.com/walletherald/walletherald/internal/watchlist"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlog "gorm.io/gorm/logger"
)

// walletRow is one row of the wallets table joined with its device's push
// token. MultiChainAddress is shared by every EVM chain; StellarAddress is
// the polling-chain account.
type walletRow struct {
	ID                int64
	MultiChainAddress string
	StellarAddress    string
	DeviceToken       string
}

type client struct {
	db *gorm.DB
}

// Ensure client implements the watchlist.WalletStore interface at compile time.
var _ watchlist.WalletStore = (*client)(nil)

// NewClient opens a read-only connection to the wallet database. The database
// usually comes up alongside the service, so the first connection is retried.
func NewClient(ctx context.Context, dsn string) (*client, error) {
	var db *gorm.DB
	err := retry.New().Execute(ctx, func() (err error) {
		db, err = gorm.Open(postgres.Open(dsn), &gorm.Config{
			Logger: gormlog.Default.LogMode(gormlog.Silent),
		})
		return err
	})
	if err != nil {
		return nil, err
	}

	return &client{db: db}, nil
}

func (c *client) Close() error {
	db, err := c.db.DB()
	if err != nil {
		return err
	}

	return db.Close()
}

// CountAll returns the total number of wallet rows.
func (c *client) CountAll(ctx context.Context) (int64, error) {
	var count int64
	err := c.db.WithContext(ctx).Table("wallets").Count(&count).Error
	return count, err
}

// PageWithDeviceToken returns one page of wallets joined with their device's
// push token, ordered by id so offset pagination is stable across pages.
func (c *client) PageWithDeviceToken(ctx context.Context, limit, offset int) ([]watchlist.WalletRecord, error) {
	var rows []walletRow
	err := c.db.WithContext(ctx).
		Table("wallets").
		Select("wallets.id, wallets.multi_chain_address, wallets.stellar_address, devices.fcm_token AS device_token").
		Joins("LEFT JOIN devices ON devices.id = wallets.device_id").
		Order("wallets.id").
		Limit(limit).
		Offset(offset).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	records := make([]watchlist.WalletRecord, len(rows))
	for i, row := range rows {
		records[i] = toWalletRecord(row)
	}

	return records, nil
}

// toWalletRecord maps a joined wallet row onto the watch-list record shape.
// The multi-chain address watches every push chain at once.
func toWalletRecord(row walletRow) watchlist.WalletRecord {
	addresses := make(map[chains.Chain]string)
	if row.MultiChainAddress != "" {
		addresses[chains.Ethereum] = row.MultiChainAddress
		addresses[chains.BNB] = row.MultiChainAddress
	}
	if row.StellarAddress != "" {
		addresses[chains.Stellar] = row.StellarAddress
	}

	return watchlist.WalletRecord{
		Addresses:         addresses,
		NotificationToken: row.DeviceToken,
	}
}
