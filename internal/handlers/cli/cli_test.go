package cli

import (
	"context"
	"net/http"
	"os"
	"testing"

	"github.com/walletherald/walletherald/internal/chains"
	"github.com/walletherald/walletherald/internal/hooksync"
	"github.com/walletherald/walletherald/internal/notifyproc"
	"github.com/walletherald/walletherald/internal/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func init() {
	_ = logger.Init(logger.WithLevel("error"))
}

type mockTestingT interface {
	mock.TestingT
	Cleanup(func())
}

type ProcMock struct {
	mock.Mock
}

func NewProcMock(t mockTestingT) *ProcMock {
	m := new(ProcMock)
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *ProcMock) Start(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *ProcMock) HandleWalletUpdate(ctx context.Context, update notifyproc.WalletUpdate) error {
	args := m.Called(ctx, update)
	return args.Error(0)
}

func (m *ProcMock) Close() {
	m.Called()
}

type HooksMock struct {
	mock.Mock
}

func NewHooksMock(t mockTestingT) *HooksMock {
	m := new(HooksMock)
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *HooksMock) EnsureSubscription(ctx context.Context, chain chains.Chain) error {
	args := m.Called(ctx, chain)
	return args.Error(0)
}

func (m *HooksMock) OnWalletUpdated(ctx context.Context, update hooksync.WalletUpdate) error {
	args := m.Called(ctx, update)
	return args.Error(0)
}

func (m *HooksMock) SubscriptionID(chain chains.Chain) (string, bool) {
	args := m.Called(chain)
	return args.String(0), args.Bool(1)
}

func TestRun(t *testing.T) {
	originalArgs := os.Args
	defer func() {
		os.Args = originalArgs
	}()

	t.Run("help runs without error", func(t *testing.T) {
		os.Args = []string{"walletherald", "--help"}

		err := Run(t.Context(), NewProcMock(t), NewHooksMock(t), http.NewServeMux(), ":0")
		assert.NoError(t, err)
	})

	t.Run("serve propagates a pipeline start failure", func(t *testing.T) {
		proc := NewProcMock(t)
		proc.On("Start", mock.Anything).Return(assert.AnError).Once()

		os.Args = []string{"walletherald", "serve"}

		err := Run(t.Context(), proc, NewHooksMock(t), http.NewServeMux(), ":0")
		assert.ErrorIs(t, err, assert.AnError)
	})

	t.Run("resync reconciles every push chain", func(t *testing.T) {
		hooks := NewHooksMock(t)
		for _, chain := range chains.PushChains() {
			hooks.On("EnsureSubscription", mock.Anything, chain).Return(nil).Once()
		}

		os.Args = []string{"walletherald", "resync"}

		err := Run(t.Context(), NewProcMock(t), hooks, http.NewServeMux(), ":0")
		assert.NoError(t, err)
	})

	t.Run("resync targets a single chain via the flag", func(t *testing.T) {
		hooks := NewHooksMock(t)
		hooks.On("EnsureSubscription", mock.Anything, chains.Ethereum).Return(nil).Once()

		os.Args = []string{"walletherald", "resync", "--chain", "eth"}

		err := Run(t.Context(), NewProcMock(t), hooks, http.NewServeMux(), ":0")
		assert.NoError(t, err)
	})

	t.Run("resync rejects an unknown chain", func(t *testing.T) {
		os.Args = []string{"walletherald", "resync", "--chain", "doge"}

		err := Run(t.Context(), NewProcMock(t), NewHooksMock(t), http.NewServeMux(), ":0")
		assert.Error(t, err)
	})

	t.Run("resync surfaces per-chain failures", func(t *testing.T) {
		hooks := NewHooksMock(t)
		hooks.On("EnsureSubscription", mock.Anything, chains.Ethereum).Return(assert.AnError).Once()
		hooks.On("EnsureSubscription", mock.Anything, chains.BNB).Return(nil).Once()

		os.Args = []string{"walletherald", "resync"}

		err := Run(t.Context(), NewProcMock(t), hooks, http.NewServeMux(), ":0")
		assert.ErrorIs(t, err, assert.AnError)
	})
}
