package usecase

import (
	"context"

	"github.com/chromadev-br/tupana-checkout/internal/entity"
	"github.com/chromadev-br/tupana-checkout/internal/infra/integration/canvi"
	"github.com/chromadev-br/tupana-checkout/internal/infra/queue"
)

type PixGateway interface {
	GeneratePix(ctx context.Context, input canvi.PixChargeInput) (*canvi.PixChargeOutput, error)
}

// LeadRepositoryInterface é a trilha de auditoria dos leads capturados.
// Best-effort: falha aqui nunca pode travar o visitante.
type LeadRepositoryInterface interface {
	Upsert(ctx context.Context, lead *entity.ClientData) error
}

type QueueProducerInterface interface {
	PublishCheckoutEvent(ctx context.Context, payload queue.CheckoutEventPayload) error
}
