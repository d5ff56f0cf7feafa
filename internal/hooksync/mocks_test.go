package hooksync

import (
	"context"

	"github.com/walletherald/walletherald/internal/chains"

	"github.com/stretchr/testify/mock"
)

type SubscriptionAPIMock struct {
	mock.Mock
}

func NewSubscriptionAPIMock(t interface {
	mock.TestingT
	Cleanup(func())
}) *SubscriptionAPIMock {
	m := new(SubscriptionAPIMock)
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *SubscriptionAPIMock) CreateSubscription(ctx context.Context, spec SubscriptionSpec) (string, error) {
	args := m.Called(ctx, spec)
	return args.String(0), args.Error(1)
}

func (m *SubscriptionAPIMock) UpdateSubscription(ctx context.Context, id string, addressesToAdd, addressesToRemove []string) error {
	args := m.Called(ctx, id, addressesToAdd, addressesToRemove)
	return args.Error(0)
}

type AddressSourceMock struct {
	mock.Mock
}

func NewAddressSourceMock(t interface {
	mock.TestingT
	Cleanup(func())
}) *AddressSourceMock {
	m := new(AddressSourceMock)
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *AddressSourceMock) WatchedAddresses(ctx context.Context, chain chains.Chain) ([]string, error) {
	args := m.Called(ctx, chain)
	if addrs := args.Get(0); addrs != nil {
		return addrs.([]string), args.Error(1)
	}
	return nil, args.Error(1)
}
