package queue

import (
	"context"
	"encoding/json"
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"
)

const (
	EventLeadCaptured = "LEAD_CAPTURED"
	EventPixGenerated = "PIX_GENERATED"
)

// CheckoutEventPayload alimenta o pipeline de follow-up: recuperação de
// lead abandonado e reenvio do código Pix por email.
type CheckoutEventPayload struct {
	Event string `json:"event"` // LEAD_CAPTURED, PIX_GENERATED

	Nome        string `json:"nome"`
	Email       string `json:"email"`
	Telefone    string `json:"telefone"`
	CPF         string `json:"cpf"`
	ProdutoNome string `json:"produto_nome"`

	PixCode string `json:"pix_code,omitempty"` // só em PIX_GENERATED
	Origin  string `json:"origin"`
}

type RabbitMQProducer struct {
	Conn *amqp.Connection
	Ch   *amqp.Channel
}

func NewProducer(conn *amqp.Connection, ch *amqp.Channel) *RabbitMQProducer {
	return &RabbitMQProducer{
		Conn: conn,
		Ch:   ch,
	}
}

func (p *RabbitMQProducer) PublishCheckoutEvent(ctx context.Context, payload CheckoutEventPayload) error {

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("erro ao converter payload: %v", err)
	}

	err = p.Ch.PublishWithContext(ctx,
		ExchangeName, // ex.checkout
		RoutingKey,   // k.followup
		false,        // Mandatory
		false,        // Immediate
		amqp.Publishing{
			ContentType:  "application/json",
			Body:         body,
			DeliveryMode: amqp.Persistent, // Mensagem salva no disco
		},
	)

	if err != nil {
		return fmt.Errorf("falha ao publicar no RabbitMQ: %v", err)
	}

	return nil
}
