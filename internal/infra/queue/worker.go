package queue

import (
	"encoding/json"
	"log"

	amqp "github.com/rabbitmq/amqp091-go"
)

// FollowUpMailer é o contrato do lado de email do follow-up.
type FollowUpMailer interface {
	SendPixCode(to, name, productName, pixCode string) error
}

type Worker struct {
	Channel *amqp.Channel
	Mailer  FollowUpMailer
}

func NewWorker(ch *amqp.Channel, mailer FollowUpMailer) *Worker {
	return &Worker{
		Channel: ch,
		Mailer:  mailer,
	}
}

func (w *Worker) Start(queueName string) {
	msgs, err := w.Channel.Consume(
		queueName, // fila
		"",        // consumer
		false,     // auto-ack (manual é mais seguro)
		false,     // exclusive
		false,     // no-local
		false,     // no-wait
		nil,       // args
	)
	if err != nil {
		log.Fatalf("❌ Falha ao registrar consumidor RabbitMQ: %s", err)
	}

	forever := make(chan bool)

	go func() {
		for d := range msgs {
			var payload CheckoutEventPayload
			if err := json.Unmarshal(d.Body, &payload); err != nil {
				log.Printf("❌ [WORKER] JSON Inválido: %s", err)
				// Mensagem podre (malformada). Rejeita sem requeue para não travar a fila.
				d.Nack(false, false)
				continue
			}

			log.Printf("⚙️ [WORKER] Processando %s para: %s", payload.Event, payload.Email)

			if err := w.processMessage(payload); err != nil {
				log.Printf("❌ [WORKER] Erro no follow-up: %s", err)
				d.Nack(false, false)
			} else {
				d.Ack(false)
			}
		}
	}()

	log.Printf(" [*] Worker rodando e aguardando na fila '%s'", queueName)
	<-forever
}

func (w *Worker) processMessage(payload CheckoutEventPayload) error {
	switch payload.Event {
	case EventPixGenerated:
		if w.Mailer == nil {
			log.Println("⚠️ Mailer não configurado, pulando envio do código Pix")
			return nil
		}
		return w.Mailer.SendPixCode(payload.Email, payload.Nome, payload.ProdutoNome, payload.PixCode)

	case EventLeadCaptured:
		// Só registra por enquanto; campanha de recuperação consome daqui.
		log.Printf("📋 Lead capturado: %s (%s)", payload.Nome, payload.Email)
		return nil

	default:
		log.Printf("⚠️ Evento desconhecido: %s. Apenas logando.", payload.Event)
		// ACK mesmo assim: mensagem que não sabemos tratar não pode entupir a fila.
		return nil
	}
}
