package ledgerpoll

import "context"

// SkippedLedgerRecorder receives the index of every ledger the poller gave up
// on after a non-rate-limit fetch failure. Such ledgers' activity is
// otherwise permanently missed; the record exists so an operator can replay
// them manually.
type SkippedLedgerRecorder interface {
	RecordSkippedLedger(ctx context.Context, ledger int64, cause error) error
}

// nopSkippedLedgerRecorder drops skipped-ledger records. Used when no
// dead-letter backend is configured.
type nopSkippedLedgerRecorder struct{}

func (nopSkippedLedgerRecorder) RecordSkippedLedger(_ context.Context, _ int64, _ error) error {
	return nil
}
