package httpapi

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/walletherald/walletherald/internal/chains"
	"github.com/walletherald/walletherald/internal/hookingest"
	"github.com/walletherald/walletherald/internal/notifyproc"
	"github.com/walletherald/walletherald/internal/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func init() {
	_ = logger.Init(logger.WithLevel("error"))
}

type mockTestingT interface {
	mock.TestingT
	Cleanup(func())
}

type IngestMock struct {
	mock.Mock
}

func NewIngestMock(t mockTestingT) *IngestMock {
	m := new(IngestMock)
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *IngestMock) Start(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *IngestMock) HandleInboundEvent(ctx context.Context, chain chains.Chain, raw []byte) error {
	args := m.Called(ctx, chain, raw)
	return args.Error(0)
}

func (m *IngestMock) Close() {
	m.Called()
}

var _ hookingest.Service = (*IngestMock)(nil)

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

func TestHandleWebhookEvent(t *testing.T) {
	t.Run("accepts a delivery and acknowledges with success", func(t *testing.T) {
		ingest := NewIngestMock(t)
		ingest.On("HandleInboundEvent", mock.Anything, chains.Ethereum, []byte(`{"event":{}}`)).Return(nil).Once()

		handler := NewHandler(ingest, NewProcMock(t))

		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/webhooks/eth", strings.NewReader(`{"event":{}}`)))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"success": true}`, rec.Body.String())
	})

	t.Run("still acknowledges when the payload fails downstream", func(t *testing.T) {
		ingest := NewIngestMock(t)
		ingest.On("HandleInboundEvent", mock.Anything, chains.BNB, mock.Anything).
			Return(hookingest.ErrMalformedPayload).Once()

		handler := NewHandler(ingest, NewProcMock(t))

		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/webhooks/bnb", strings.NewReader(`{broken`)))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"success": true}`, rec.Body.String())
	})

	t.Run("rejects unknown chains", func(t *testing.T) {
		handler := NewHandler(NewIngestMock(t), NewProcMock(t))

		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/webhooks/doge", strings.NewReader(`{}`)))

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("rejects the polling chain, which has no provider callbacks", func(t *testing.T) {
		handler := NewHandler(NewIngestMock(t), NewProcMock(t))

		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/webhooks/xlm", strings.NewReader(`{}`)))

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestHandleWalletUpdate(t *testing.T) {
	t.Run("maps the body onto a typed wallet update", func(t *testing.T) {
		proc := NewProcMock(t)
		proc.On("HandleWalletUpdate", mock.Anything, notifyproc.WalletUpdate{
			Addresses: map[chains.Chain]string{
				chains.Ethereum: "0xAAA",
				chains.BNB:      "0xBBB",
				chains.Stellar:  "GAAA",
			},
			NotificationToken: "device-token-1",
		}).Return(nil).Once()

		handler := NewHandler(NewIngestMock(t), proc)

		body := `{"deviceToken": "device-token-1", "wallets": {"ethAddress": "0xAAA", "bnbAddress": "0xBBB", "stellarAddress": "GAAA"}}`
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPut, "/wallets", strings.NewReader(body)))

		require.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"success": true}`, rec.Body.String())
	})

	t.Run("the multi-chain address covers both push chains", func(t *testing.T) {
		proc := NewProcMock(t)
		proc.On("HandleWalletUpdate", mock.Anything, notifyproc.WalletUpdate{
			Addresses: map[chains.Chain]string{
				chains.Ethereum: "0xMULTI",
				chains.BNB:      "0xMULTI",
			},
			NotificationToken: "device-token-2",
		}).Return(nil).Once()

		handler := NewHandler(NewIngestMock(t), proc)

		body := `{"deviceToken": "device-token-2", "wallets": {"multiChainAddress": "0xMULTI"}}`
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPut, "/wallets", strings.NewReader(body)))

		require.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("rejects a malformed body", func(t *testing.T) {
		handler := NewHandler(NewIngestMock(t), NewProcMock(t))

		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPut, "/wallets", strings.NewReader(`{broken`)))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("rejects a body without a device token", func(t *testing.T) {
		handler := NewHandler(NewIngestMock(t), NewProcMock(t))

		body := `{"wallets": {"ethAddress": "0xAAA"}}`
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPut, "/wallets", strings.NewReader(body)))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("rejects a body without any address", func(t *testing.T) {
		handler := NewHandler(NewIngestMock(t), NewProcMock(t))

		body := `{"deviceToken": "device-token-3", "wallets": {}}`
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPut, "/wallets", strings.NewReader(body)))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("a processing failure maps to 500", func(t *testing.T) {
		proc := NewProcMock(t)
		proc.On("HandleWalletUpdate", mock.Anything, mock.Anything).Return(errors.New("redis down")).Once()

		handler := NewHandler(NewIngestMock(t), proc)

		body := `{"deviceToken": "device-token-4", "wallets": {"ethAddress": "0xAAA"}}`
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPut, "/wallets", strings.NewReader(body)))

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
	})
}
