// Package hookingest turns inbound webhook deliveries from the push chains
// into classified activity records. Decoding happens on the caller's
// request; dispatch runs on a background worker so the provider's delivery
// thread is never held hostage to push latency.
package hookingest

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/walletherald/walletherald/internal/chains"
	"github.com/walletherald/walletherald/internal/pkg/logger"
	"github.com/walletherald/walletherald/internal/pkg/x/chflow"
)

// ErrServiceAlreadyStarted is returned if Start is called more than once.
var ErrServiceAlreadyStarted = errors.New("service already started")

// ErrServiceNotStarted is returned by HandleInboundEvent before Start.
var ErrServiceNotStarted = errors.New("service not started")

// dispatchQueueSize bounds the number of decoded deliveries waiting for
// dispatch. Providers deliver one activity per callback; the buffer only
// absorbs short bursts.
const dispatchQueueSize = 256

// nativeSymbols maps each push chain to its native asset's display symbol,
// used when a delivery is a plain native transfer.
var nativeSymbols = map[chains.Chain]string{
	chains.Ethereum: "ETH",
	chains.BNB:      "BNB",
}

// Activity is one classified push-chain activity record.
type Activity struct {
	Chain         chains.Chain
	From          string
	To            string
	Asset         string
	Amount        string
	TxRef         string
	TokenTransfer bool // true when the delivery was a token/contract transfer
}

// ActivityNotifier receives classified activity. Calls happen on the
// dispatch worker, after the inbound HTTP request has already been
// acknowledged.
type ActivityNotifier interface {
	NotifyActivity(ctx context.Context, activity Activity) error
}

// Service ingests provider webhook deliveries.
type Service interface {
	// Start launches the dispatch worker. Returns ErrServiceAlreadyStarted
	// if called more than once.
	Start(ctx context.Context) error

	// HandleInboundEvent decodes one delivery for the given chain and
	// queues it for dispatch. It returns ErrMalformedPayload (wrapped) for
	// bodies that fail the schema; dispatch outcomes are not reflected in
	// the return value.
	HandleInboundEvent(ctx context.Context, chain chains.Chain, raw []byte) error

	// Close stops the dispatch worker. Queued activity that has not been
	// dispatched yet is dropped.
	Close()
}

// closeFunc defines a cleanup routine to stop background goroutines.
type closeFunc func()

type service struct {
	mu        sync.Mutex // protects lifecycle state
	isStarted bool       // ensures Start is called only once
	closeFunc closeFunc  // cancels the worker context

	notifier ActivityNotifier

	// tokenSymbols maps lowercase contract addresses to display symbols,
	// built once at startup from configuration.
	tokenSymbols map[string]string

	queue chan Activity
}

var _ Service = (*service)(nil)

// New creates an ingestion service. tokenSymbols maps contract addresses
// (lowercase) to display symbols for token transfers.
func New(notifier ActivityNotifier, tokenSymbols map[string]string) *service {
	return &service{
		notifier:     notifier,
		tokenSymbols: tokenSymbols,
		queue:        make(chan Activity, dispatchQueueSize),
	}
}

// Start launches the dispatch worker.
func (s *service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isStarted {
		return ErrServiceAlreadyStarted
	}

	ctx, cancel := context.WithCancel(ctx)
	go s.dispatchLoop(ctx)

	s.closeFunc = closeFunc(cancel)
	s.isStarted = true
	return nil
}

// Close stops the dispatch worker.
func (s *service) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closeFunc != nil {
		s.closeFunc()
	}

	s.closeFunc = nil
	s.isStarted = false
}

// dispatchLoop consumes queued activity and hands it to the notifier until
// the context is canceled.
func (s *service) dispatchLoop(ctx context.Context) {
	for {
		activity, ok := chflow.Receive(ctx, s.queue)
		if !ok {
			return
		}

		if err := s.notifier.NotifyActivity(ctx, activity); err != nil {
			logger.Error(ctx, "activity dispatch failed",
				"chain", activity.Chain,
				"tx.ref", activity.TxRef,
				"error", err,
			)
		}
	}
}

// resolveAsset picks the display symbol for a delivery: the configured
// contract mapping for token transfers (falling back to the provider's own
// asset field), or the chain's native symbol otherwise.
func (s *service) resolveAsset(chain chains.Chain, entry activityEntry) string {
	if entry.Category == activityCategoryToken {
		if symbol, ok := s.tokenSymbols[strings.ToLower(entry.RawContract.Address)]; ok {
			return symbol
		}

		return entry.Asset
	}

	return nativeSymbols[chain]
}

// HandleInboundEvent implements the Service interface.
func (s *service) HandleInboundEvent(ctx context.Context, chain chains.Chain, raw []byte) error {
	s.mu.Lock()
	started := s.isStarted
	s.mu.Unlock()

	if !started {
		return ErrServiceNotStarted
	}

	entry, err := decodeInboundEvent(raw)
	if err != nil {
		return err
	}

	activity := Activity{
		Chain:         chain,
		From:          entry.FromAddress,
		To:            entry.ToAddress,
		Asset:         s.resolveAsset(chain, entry),
		Amount:        entry.Value.String(),
		TxRef:         entry.Hash,
		TokenTransfer: entry.Category == activityCategoryToken,
	}

	if !chflow.Send(ctx, s.queue, activity) {
		return ctx.Err()
	}

	return nil
}
