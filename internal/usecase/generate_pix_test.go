package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/chromadev-br/tupana-checkout/internal/entity"
	"github.com/chromadev-br/tupana-checkout/internal/infra/integration/canvi"
	"github.com/chromadev-br/tupana-checkout/internal/infra/queue"
	"github.com/chromadev-br/tupana-checkout/internal/infra/session"
	"github.com/chromadev-br/tupana-checkout/internal/usecase"
)

// MockPixGateway
type MockPixGateway struct {
	mock.Mock
}

func (m *MockPixGateway) GeneratePix(ctx context.Context, input canvi.PixChargeInput) (*canvi.PixChargeOutput, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*canvi.PixChargeOutput), args.Error(1)
}

// MockQueueProducer
type MockQueueProducer struct {
	mock.Mock
}

func (m *MockQueueProducer) PublishCheckoutEvent(ctx context.Context, payload queue.CheckoutEventPayload) error {
	args := m.Called(ctx, payload)
	return args.Error(0)
}

func testCliente() entity.ClientData {
	return entity.ClientData{
		Nome:        "João Silva",
		Email:       "joao@example.com",
		Telefone:    "(92) 99999-9999",
		CPF:         "123.456.789-00",
		ProdutoID:   1,
		NomeProduto: "Tupana A1",
	}
}

func TestGeneratePixSuccessStoresResultAndPublishes(t *testing.T) {
	t.Setenv("API_BASE_URL", "https://api.canvi.example.com")
	ctx := context.Background()

	mockGateway := new(MockPixGateway)
	mockGateway.On("GeneratePix", ctx, mock.Anything).Return(&canvi.PixChargeOutput{
		CopiaCola: "00020126580014br.gov.bcb.pix...ABCD",
	}, nil)

	mockQueue := new(MockQueueProducer)
	mockQueue.On("PublishCheckoutEvent", ctx, mock.Anything).Return(nil)

	store := session.NewMemoryStore(time.Hour)
	uc := usecase.NewGeneratePixUseCase(mockGateway, store, mockQueue)

	result, err := uc.Execute(ctx, "sid-123", testCliente())

	assert.NoError(t, err)
	assert.NotNil(t, result)
	assert.Equal(t, entity.MethodPix, result.Type)
	assert.Equal(t, "00020126580014br.gov.bcb.pix...ABCD", result.Payload)

	// O resultado tem que estar na sessão pra página de obrigado
	var saved entity.PaymentResult
	found, err := store.Get(ctx, "sid-123", session.KeyPaymentData, &saved)
	assert.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, *result, saved)

	mockQueue.AssertCalled(t, "PublishCheckoutEvent", ctx, mock.MatchedBy(func(p queue.CheckoutEventPayload) bool {
		return p.Event == queue.EventPixGenerated && p.PixCode == result.Payload
	}))
}

func TestGeneratePixConfigFaultBeforeAnyNetworkCall(t *testing.T) {
	t.Setenv("API_BASE_URL", "")
	ctx := context.Background()

	mockGateway := new(MockPixGateway)
	store := session.NewMemoryStore(time.Hour)
	uc := usecase.NewGeneratePixUseCase(mockGateway, store, nil)

	result, err := uc.Execute(ctx, "sid-123", testCliente())

	assert.Nil(t, result)
	assert.Error(t, err)
	assert.True(t, usecase.IsDomainError(err))
	assert.Equal(t, usecase.MsgConfigError, err.Error())
	mockGateway.AssertNotCalled(t, "GeneratePix")
}

func TestGeneratePixBusinessRefusalSurfacesAPIMessage(t *testing.T) {
	t.Setenv("API_BASE_URL", "https://api.canvi.example.com")
	ctx := context.Background()

	mockGateway := new(MockPixGateway)
	mockGateway.On("GeneratePix", ctx, mock.Anything).Return(nil, &canvi.APIError{
		StatusCode: 200,
		Message:    "saldo insuficiente",
	})

	store := session.NewMemoryStore(time.Hour)
	uc := usecase.NewGeneratePixUseCase(mockGateway, store, nil)

	result, err := uc.Execute(ctx, "sid-123", testCliente())

	assert.Nil(t, result)
	assert.True(t, usecase.IsDomainError(err))
	assert.Equal(t, "saldo insuficiente", err.Error())

	// Nada pode ter sido gravado na sessão
	var saved entity.PaymentResult
	found, _ := store.Get(ctx, "sid-123", session.KeyPaymentData, &saved)
	assert.False(t, found)
}

func TestGeneratePixRefusalWithoutMessageUsesFallback(t *testing.T) {
	t.Setenv("API_BASE_URL", "https://api.canvi.example.com")
	ctx := context.Background()

	mockGateway := new(MockPixGateway)
	mockGateway.On("GeneratePix", ctx, mock.Anything).Return(nil, &canvi.APIError{StatusCode: 400})

	uc := usecase.NewGeneratePixUseCase(mockGateway, session.NewMemoryStore(time.Hour), nil)

	_, err := uc.Execute(ctx, "sid-123", testCliente())

	assert.True(t, usecase.IsDomainError(err))
	assert.Equal(t, usecase.MsgProcessingError, err.Error())
}

func TestGeneratePixTransportFaultIsGenericConnectionError(t *testing.T) {
	t.Setenv("API_BASE_URL", "https://api.canvi.example.com")
	ctx := context.Background()

	mockGateway := new(MockPixGateway)
	mockGateway.On("GeneratePix", ctx, mock.Anything).Return(nil, errors.New("dial tcp: no route to host"))

	uc := usecase.NewGeneratePixUseCase(mockGateway, session.NewMemoryStore(time.Hour), nil)

	_, err := uc.Execute(ctx, "sid-123", testCliente())

	assert.True(t, usecase.IsTechnicalError(err))
	assert.Equal(t, usecase.MsgConnectionError, err.Error())
}

func TestGeneratePixMissingCodeIsBusinessFault(t *testing.T) {
	t.Setenv("API_BASE_URL", "https://api.canvi.example.com")
	ctx := context.Background()

	// HTTP ok, status ok, mas sem copia_cola
	mockGateway := new(MockPixGateway)
	mockGateway.On("GeneratePix", ctx, mock.Anything).Return(&canvi.PixChargeOutput{}, nil)

	store := session.NewMemoryStore(time.Hour)
	uc := usecase.NewGeneratePixUseCase(mockGateway, store, nil)

	result, err := uc.Execute(ctx, "sid-123", testCliente())

	assert.Nil(t, result)
	assert.True(t, usecase.IsDomainError(err))
	assert.Equal(t, usecase.MsgPixNotGenerated, err.Error())
}
