package watchlist

import (
	"context"

	"github.com/walletherald/walletherald/internal/chains"

	"github.com/stretchr/testify/mock"
)

type WalletStoreMock struct {
	mock.Mock
}

func NewWalletStoreMock(t interface {
	mock.TestingT
	Cleanup(func())
}) *WalletStoreMock {
	m := new(WalletStoreMock)
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *WalletStoreMock) CountAll(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *WalletStoreMock) PageWithDeviceToken(ctx context.Context, limit, offset int) ([]WalletRecord, error) {
	args := m.Called(ctx, limit, offset)
	if records := args.Get(0); records != nil {
		return records.([]WalletRecord), args.Error(1)
	}
	return nil, args.Error(1)
}

type TokenStorageMock struct {
	mock.Mock
}

func NewTokenStorageMock(t interface {
	mock.TestingT
	Cleanup(func())
}) *TokenStorageMock {
	m := new(TokenStorageMock)
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *TokenStorageMock) SetTokens(ctx context.Context, chain chains.Chain, tokens map[string]string) error {
	args := m.Called(ctx, chain, tokens)
	return args.Error(0)
}

func (m *TokenStorageMock) GetToken(ctx context.Context, chain chains.Chain, address string) (string, error) {
	args := m.Called(ctx, chain, address)
	return args.String(0), args.Error(1)
}

func (m *TokenStorageMock) ListAddresses(ctx context.Context, chain chains.Chain) ([]string, error) {
	args := m.Called(ctx, chain)
	if addrs := args.Get(0); addrs != nil {
		return addrs.([]string), args.Error(1)
	}
	return nil, args.Error(1)
}
