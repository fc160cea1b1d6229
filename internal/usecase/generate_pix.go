package usecase

import (
	"context"
	"errors"
	"log"
	"os"

	"github.com/chromadev-br/tupana-checkout/internal/entity"
	"github.com/chromadev-br/tupana-checkout/internal/infra/integration/canvi"
	"github.com/chromadev-br/tupana-checkout/internal/infra/queue"
	"github.com/chromadev-br/tupana-checkout/internal/infra/session"
)

func NewGeneratePixUseCase(
	gateway PixGateway,
	store session.Store,
	producer QueueProducerInterface,
) *GeneratePixUseCase {
	return &GeneratePixUseCase{
		Gateway:  gateway,
		Store:    store,
		Producer: producer,
	}
}

type GeneratePixUseCase struct {
	Gateway  PixGateway
	Store    session.Store
	Producer QueueProducerInterface // opcional: nil roda sem fila
}

// Execute emite a cobrança Pix para o lead da sessão e grava o resultado
// pra página de obrigado. Todo erro volta mapeado pra taxonomia do
// checkout; nada técnico vaza cru pro visitante.
func (uc *GeneratePixUseCase) Execute(ctx context.Context, sid string, cliente entity.ClientData) (*entity.PaymentResult, error) {

	// Falta de endpoint é falha de configuração, detectada antes de
	// qualquer I/O de rede. Lida a cada chamada: corrigir o ambiente
	// não exige restart.
	if os.Getenv("API_BASE_URL") == "" {
		return nil, &DomainError{Code: "CONFIG_ERROR", Message: MsgConfigError}
	}

	out, err := uc.Gateway.GeneratePix(ctx, canvi.PixChargeInput{
		Nome:        cliente.Nome,
		Email:       cliente.Email,
		Telefone:    cliente.Telefone,
		CPF:         cliente.CPF,
		ProdutoID:   cliente.ProdutoID,
		ProdutoNome: cliente.NomeProduto,
	})
	if err != nil {
		var apiErr *canvi.APIError
		if errors.As(err, &apiErr) {
			msg := apiErr.Message
			if msg == "" {
				msg = MsgProcessingError
			}
			return nil, &DomainError{Code: "PAYMENT_REFUSED", Message: msg}
		}
		return nil, &TechnicalError{Code: "CONNECTION_ERROR", Message: MsgConnectionError}
	}

	if out.CopiaCola == "" {
		return nil, &DomainError{Code: "PIX_NOT_GENERATED", Message: MsgPixNotGenerated}
	}

	result := &entity.PaymentResult{
		Type:    entity.MethodPix,
		Payload: out.CopiaCola,
	}

	// Escrita perdida não derruba o sucesso: o código ainda aparece na
	// tela de pagamento, só a página de obrigado que vai redirecionar.
	if err := uc.Store.Put(ctx, sid, session.KeyPaymentData, result); err != nil {
		log.Printf("⚠️ Falha ao gravar payment_data na sessão: %v", err)
	}

	if uc.Producer != nil {
		payload := queue.CheckoutEventPayload{
			Event:       queue.EventPixGenerated,
			Nome:        cliente.Nome,
			Email:       cliente.Email,
			Telefone:    cliente.Telefone,
			CPF:         cliente.CPF,
			ProdutoNome: cliente.NomeProduto,
			PixCode:     out.CopiaCola,
			Origin:      "CHECKOUT_WEB",
		}
		if err := uc.Producer.PublishCheckoutEvent(ctx, payload); err != nil {
			log.Printf("⚠️ Erro fila: %v", err)
		}
	}

	return result, nil
}
