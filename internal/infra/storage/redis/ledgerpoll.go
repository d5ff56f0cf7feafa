package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/walletherald/walletherald/internal/ledgerpoll"
)

// ledgerpollKeyPrefix is the Redis key namespace for the ledger poller's
// dead-letter records.
const ledgerpollKeyPrefix = "ledgerpoll"

// ledgerpollSkippedKey is the Redis list holding every ledger the poller gave
// up on. Operators replay these manually.
//
// Format: "ledgerpoll:skipped"
func ledgerpollSkippedKey() string {
	return fmt.Sprintf("%s:skipped", ledgerpollKeyPrefix)
}

// RecordSkippedLedger appends a skipped-ledger record to the dead-letter list
// via RPUSH. The entry carries the ledger index, skip time, and cause so a
// replay tool has everything it needs.
func (c *client) RecordSkippedLedger(ctx context.Context, ledger int64, cause error) error {
	entry := fmt.Sprintf("%d|%s|%s", ledger, time.Now().UTC().Format(time.RFC3339), cause)
	return c.conn.RPush(ctx, ledgerpollSkippedKey(), entry).Err()
}

// Compile-time assertion to ensure *client satisfies the ledgerpoll.SkippedLedgerRecorder interface.
var _ ledgerpoll.SkippedLedgerRecorder = new(client)
