// Package ledgerpoll ingests the polling chain by continuously scanning
// closed ledgers for activity involving watched accounts. It runs a simple
// state machine: poll the tip, drain any new ledgers strictly in ascending
// order, cool down and retry in place when rate limited, and go idle when
// caught up. The cursor lives in process memory only; after a restart the
// poller resumes from the current tip; ledgers closed during downtime are
// not replayed.
package ledgerpoll

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/walletherald/walletherald/internal/pkg/logger"
)

// ErrServiceAlreadyStarted is returned when Start is called more than once.
var ErrServiceAlreadyStarted = errors.New("service already started")

const (
	defaultPageSize          = 200
	defaultIdleInterval      = 4 * time.Second
	defaultLedgerDelay       = 200 * time.Millisecond
	defaultRateLimitCooldown = 5 * time.Second

	// defaultDustFloor suppresses native-asset credits too small to be
	// notification-worthy.
	defaultDustFloor = 0.00009

	// defaultNativeAsset is the display symbol of the ledger's native asset.
	defaultNativeAsset = "XLM"
)

// sleepFunc pauses for d or until the context is done, returning false when
// the context ended the wait. Injectable so tests control time.
type sleepFunc func(ctx context.Context, d time.Duration) bool

func defaultSleep(ctx context.Context, d time.Duration) bool {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}

// Service is the polling-chain ingestion loop.
type Service interface {
	// Start launches the polling loop in the background. The loop runs
	// until Close is called or the supplied context is canceled.
	Start(ctx context.Context) error

	// Close stops the polling loop. An in-flight ledger fetch is allowed
	// to observe cancellation and wind down; its partial progress is lost.
	Close()
}

type service struct {
	ledgerAPI  LedgerAPI
	watchIndex WatchIndex
	notifier   ActivityNotifier
	skipped    SkippedLedgerRecorder

	pageSize          int
	idleInterval      time.Duration
	ledgerDelay       time.Duration
	rateLimitCooldown time.Duration
	dustFloor         float64
	nativeAsset       string
	sleep             sleepFunc

	cursor atomic.Int64

	mu        sync.Mutex
	isStarted bool
	closeFunc func()
}

var _ Service = (*service)(nil)

type config struct {
	skipped           SkippedLedgerRecorder
	pageSize          int
	idleInterval      time.Duration
	ledgerDelay       time.Duration
	rateLimitCooldown time.Duration
	dustFloor         float64
	nativeAsset       string
	sleep             sleepFunc
}

// Option customizes the poller.
type Option func(*config)

// WithPageSize sets the effect page size requested per fetch.
func WithPageSize(n int) Option {
	return func(c *config) { c.pageSize = n }
}

// WithIdleInterval sets how long the poller sleeps when caught up with the tip.
func WithIdleInterval(d time.Duration) Option {
	return func(c *config) { c.idleInterval = d }
}

// WithLedgerDelay sets the fixed pause between consecutive ledger drains,
// protecting the provider from burst traffic.
func WithLedgerDelay(d time.Duration) Option {
	return func(c *config) { c.ledgerDelay = d }
}

// WithRateLimitCooldown sets the pause after a rate-limit rejection. It
// should be noticeably longer than the per-ledger delay.
func WithRateLimitCooldown(d time.Duration) Option {
	return func(c *config) { c.rateLimitCooldown = d }
}

// WithDustFloor sets the minimum native-asset amount worth notifying about.
func WithDustFloor(f float64) Option {
	return func(c *config) { c.dustFloor = f }
}

// WithNativeAsset overrides the native asset's display symbol.
func WithNativeAsset(symbol string) Option {
	return func(c *config) { c.nativeAsset = symbol }
}

// WithSkippedLedgerRecorder installs a dead-letter sink for ledgers abandoned
// after non-rate-limit failures.
func WithSkippedLedgerRecorder(r SkippedLedgerRecorder) Option {
	return func(c *config) { c.skipped = r }
}

// WithSleepFunc replaces the wall-clock sleep, making the state machine
// deterministic under test.
func WithSleepFunc(f sleepFunc) Option {
	return func(c *config) { c.sleep = f }
}

// New creates a poller over the given ledger API, watch index and notifier.
func New(ledgerAPI LedgerAPI, watchIndex WatchIndex, notifier ActivityNotifier, opts ...Option) *service {
	cfg := config{
		skipped:           nopSkippedLedgerRecorder{},
		pageSize:          defaultPageSize,
		idleInterval:      defaultIdleInterval,
		ledgerDelay:       defaultLedgerDelay,
		rateLimitCooldown: defaultRateLimitCooldown,
		dustFloor:         defaultDustFloor,
		nativeAsset:       defaultNativeAsset,
		sleep:             defaultSleep,
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	return &service{
		ledgerAPI:         ledgerAPI,
		watchIndex:        watchIndex,
		notifier:          notifier,
		skipped:           cfg.skipped,
		pageSize:          cfg.pageSize,
		idleInterval:      cfg.idleInterval,
		ledgerDelay:       cfg.ledgerDelay,
		rateLimitCooldown: cfg.rateLimitCooldown,
		dustFloor:         cfg.dustFloor,
		nativeAsset:       cfg.nativeAsset,
		sleep:             cfg.sleep,
	}
}

// Cursor returns the highest ledger index fully processed so far. It is
// monotonically non-decreasing for the lifetime of one loop instance.
func (s *service) Cursor() int64 {
	return s.cursor.Load()
}

// Start implements the Service interface.
func (s *service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isStarted {
		return ErrServiceAlreadyStarted
	}

	ctx, cancel := context.WithCancel(ctx)
	s.closeFunc = cancel
	s.isStarted = true

	go s.run(ctx)
	return nil
}

// Close implements the Service interface.
func (s *service) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closeFunc != nil {
		s.closeFunc()
	}
	s.closeFunc = nil
	s.isStarted = false
}

// run is the poller main loop: initialize the cursor at the current tip,
// then alternate between polling the tip and draining new ledger ranges.
func (s *service) run(ctx context.Context) {
	if !s.initCursor(ctx) {
		return
	}

	logger.Info(ctx, "ledger polling started", "cursor", s.Cursor())

	for {
		if ctx.Err() != nil {
			return
		}

		tip, err := s.ledgerAPI.CurrentTip(ctx)
		if err != nil {
			if !s.backOff(ctx, err) {
				return
			}
			continue
		}

		if tip <= s.Cursor() {
			if !s.sleep(ctx, s.idleInterval) {
				return
			}
			continue
		}

		s.drainRange(ctx, s.Cursor()+1, tip)
	}
}

// initCursor points the cursor at the current tip, retrying until the ledger
// API answers or the context is canceled. Activity older than the tip at
// startup is intentionally not reconciled.
func (s *service) initCursor(ctx context.Context) bool {
	for {
		tip, err := s.ledgerAPI.CurrentTip(ctx)
		if err == nil {
			s.cursor.Store(tip)
			return true
		}

		if !s.backOff(ctx, err) {
			return false
		}
	}
}

// backOff sleeps for the cooldown matching the error class: the rate-limit
// cooldown for rate limiting, the idle interval otherwise. It returns false
// when the context ended the wait.
func (s *service) backOff(ctx context.Context, err error) bool {
	if errors.Is(err, ErrRateLimited) {
		logger.Warn(ctx, "ledger api rate limited, cooling down", "cooldown", s.rateLimitCooldown)
		return s.sleep(ctx, s.rateLimitCooldown)
	}

	logger.Error(ctx, "ledger tip fetch failed", "error", err)
	return s.sleep(ctx, s.idleInterval)
}

// drainRange processes ledgers [from, to] in ascending order, advancing the
// cursor only after a ledger has fully drained (or been deliberately
// abandoned after a non-rate-limit failure). A rate-limited ledger is retried
// in place after the cooldown, so the cursor never moves past a ledger the
// poller could not read.
func (s *service) drainRange(ctx context.Context, from, to int64) {
	for ledger := from; ledger <= to; {
		if ctx.Err() != nil {
			return
		}

		if err := s.drainLedger(ctx, ledger); err != nil {
			if errors.Is(err, ErrRateLimited) {
				logger.Warn(ctx, "ledger drain rate limited, retrying same ledger",
					"ledger", ledger,
					"cooldown", s.rateLimitCooldown,
				)
				if !s.sleep(ctx, s.rateLimitCooldown) {
					return
				}
				continue
			}

			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return
			}

			// Non-rate-limit failures abandon the ledger: its activity is
			// permanently missed unless replayed from the dead-letter record.
			logger.Error(ctx, "ledger drain failed, skipping ledger", "ledger", ledger, "error", err)
			if recErr := s.skipped.RecordSkippedLedger(ctx, ledger, err); recErr != nil {
				logger.Error(ctx, "failed to record skipped ledger", "ledger", ledger, "error", recErr)
			}
		}

		s.cursor.Store(ledger)
		ledger++

		if !s.sleep(ctx, s.ledgerDelay) {
			return
		}
	}
}

// drainLedger walks every effect page of one ledger in provider-cursor
// order. A short page or an absent next-page handle ends the ledger. Fetch
// errors propagate so the caller can decide between retry and skip;
// per-effect classification errors are logged and do not stop the drain.
func (s *service) drainLedger(ctx context.Context, ledger int64) error {
	var pageCursor string
	for {
		page, err := s.ledgerAPI.FetchEffects(ctx, ledger, s.pageSize, pageCursor)
		if err != nil {
			return err
		}

		for _, effect := range page.Records {
			if err := s.handleEffect(ctx, effect); err != nil {
				logger.Error(ctx, "effect processing failed",
					"ledger", ledger,
					"effect.tx", effect.TxHash,
					"error", err,
				)
			}
		}

		if len(page.Records) < s.pageSize || page.NextCursor == "" {
			return nil
		}

		pageCursor = page.NextCursor
	}
}
