package notifyproc

import (
	"context"

	"github.com/walletherald/walletherald/internal/chains"
	"github.com/walletherald/walletherald/internal/hookingest"
	"github.com/walletherald/walletherald/internal/hooksync"
	"github.com/walletherald/walletherald/internal/notify"

	"github.com/stretchr/testify/mock"
)

type mockTestingT interface {
	mock.TestingT
	Cleanup(func())
}

type WatchlistMock struct {
	mock.Mock
}

func NewWatchlistMock(t mockTestingT) *WatchlistMock {
	m := new(WatchlistMock)
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *WatchlistMock) BulkLoad(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *WatchlistMock) Lookup(ctx context.Context, chain chains.Chain, address string) (string, error) {
	args := m.Called(ctx, chain, address)
	return args.String(0), args.Error(1)
}

func (m *WatchlistMock) Upsert(ctx context.Context, chain chains.Chain, address, token string) error {
	args := m.Called(ctx, chain, address, token)
	return args.Error(0)
}

func (m *WatchlistMock) WatchedAddresses(ctx context.Context, chain chains.Chain) ([]string, error) {
	args := m.Called(ctx, chain)
	if addresses, ok := args.Get(0).([]string); ok {
		return addresses, args.Error(1)
	}
	return nil, args.Error(1)
}

type HooksyncMock struct {
	mock.Mock
}

func NewHooksyncMock(t mockTestingT) *HooksyncMock {
	m := new(HooksyncMock)
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *HooksyncMock) EnsureSubscription(ctx context.Context, chain chains.Chain) error {
	args := m.Called(ctx, chain)
	return args.Error(0)
}

func (m *HooksyncMock) OnWalletUpdated(ctx context.Context, update hooksync.WalletUpdate) error {
	args := m.Called(ctx, update)
	return args.Error(0)
}

func (m *HooksyncMock) SubscriptionID(chain chains.Chain) (string, bool) {
	args := m.Called(chain)
	return args.String(0), args.Bool(1)
}

type LedgerpollMock struct {
	mock.Mock
}

func NewLedgerpollMock(t mockTestingT) *LedgerpollMock {
	m := new(LedgerpollMock)
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *LedgerpollMock) Start(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *LedgerpollMock) Close() {
	m.Called()
}

type HookingestMock struct {
	mock.Mock
}

func NewHookingestMock(t mockTestingT) *HookingestMock {
	m := new(HookingestMock)
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *HookingestMock) Start(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *HookingestMock) HandleInboundEvent(ctx context.Context, chain chains.Chain, raw []byte) error {
	args := m.Called(ctx, chain, raw)
	return args.Error(0)
}

func (m *HookingestMock) Close() {
	m.Called()
}

var _ hookingest.Service = (*HookingestMock)(nil)

type DispatcherMock struct {
	mock.Mock
}

func NewDispatcherMock(t mockTestingT) *DispatcherMock {
	m := new(DispatcherMock)
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *DispatcherMock) Dispatch(ctx context.Context, activity notify.Activity) error {
	args := m.Called(ctx, activity)
	return args.Error(0)
}
