package notify

import (
	"context"
	"time"

	"github.com/walletherald/walletherald/internal/chains"

	"github.com/stretchr/testify/mock"
)

type TokenLookupMock struct {
	mock.Mock
}

func NewTokenLookupMock(t interface {
	mock.TestingT
	Cleanup(func())
}) *TokenLookupMock {
	m := new(TokenLookupMock)
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *TokenLookupMock) Lookup(ctx context.Context, chain chains.Chain, address string) (string, error) {
	args := m.Called(ctx, chain, address)
	return args.String(0), args.Error(1)
}

type PusherMock struct {
	mock.Mock
}

func NewPusherMock(t interface {
	mock.TestingT
	Cleanup(func())
}) *PusherMock {
	m := new(PusherMock)
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *PusherMock) Send(ctx context.Context, token string, n Notification) (string, error) {
	args := m.Called(ctx, token, n)
	return args.String(0), args.Error(1)
}

type DeliveryGuardMock struct {
	mock.Mock
}

func NewDeliveryGuardMock(t interface {
	mock.TestingT
	Cleanup(func())
}) *DeliveryGuardMock {
	m := new(DeliveryGuardMock)
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *DeliveryGuardMock) ClaimDelivery(ctx context.Context, network, txRef, recipient string, ttl time.Duration) error {
	args := m.Called(ctx, network, txRef, recipient, ttl)
	return args.Error(0)
}
