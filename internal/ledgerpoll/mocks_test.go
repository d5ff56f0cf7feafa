package ledgerpoll

import (
	"context"

	"github.com/stretchr/testify/mock"
)

type LedgerAPIMock struct {
	mock.Mock
}

func NewLedgerAPIMock(t interface {
	mock.TestingT
	Cleanup(func())
}) *LedgerAPIMock {
	m := new(LedgerAPIMock)
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *LedgerAPIMock) CurrentTip(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *LedgerAPIMock) FetchEffects(ctx context.Context, ledger int64, pageSize int, cursor string) (EffectPage, error) {
	args := m.Called(ctx, ledger, pageSize, cursor)
	return args.Get(0).(EffectPage), args.Error(1)
}

func (m *LedgerAPIMock) HasTrustline(ctx context.Context, account, assetCode, assetIssuer string) (bool, error) {
	args := m.Called(ctx, account, assetCode, assetIssuer)
	return args.Bool(0), args.Error(1)
}

type WatchIndexMock struct {
	mock.Mock
}

func NewWatchIndexMock(t interface {
	mock.TestingT
	Cleanup(func())
}) *WatchIndexMock {
	m := new(WatchIndexMock)
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *WatchIndexMock) IsWatched(ctx context.Context, address string) (bool, error) {
	args := m.Called(ctx, address)
	return args.Bool(0), args.Error(1)
}

type ActivityNotifierMock struct {
	mock.Mock
}

func NewActivityNotifierMock(t interface {
	mock.TestingT
	Cleanup(func())
}) *ActivityNotifierMock {
	m := new(ActivityNotifierMock)
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *ActivityNotifierMock) NotifyActivity(ctx context.Context, activity Activity) error {
	args := m.Called(ctx, activity)
	return args.Error(0)
}

type SkippedLedgerRecorderMock struct {
	mock.Mock
}

func NewSkippedLedgerRecorderMock(t interface {
	mock.TestingT
	Cleanup(func())
}) *SkippedLedgerRecorderMock {
	m := new(SkippedLedgerRecorderMock)
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *SkippedLedgerRecorderMock) RecordSkippedLedger(ctx context.Context, ledger int64, cause error) error {
	args := m.Called(ctx, ledger, cause)
	return args.Error(0)
}
