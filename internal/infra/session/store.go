package session

import "context"

// Chaves lógicas do checkout. Os nomes vêm do storage do front original.
const (
	KeyClientData  = "chroma_cliente"
	KeyPaymentData = "chroma_payment_data"
	KeyCheckout    = "chroma_checkout"
)

// Store é o contrato de estado de trânsito do visitante: um key/value
// estreito, serializado como JSON, escopado à sessão da aba.
//
// Todo consumidor deve tratar leitura como possivelmente ausente e escrita
// como possivelmente perdida; o fallback definido é redirect pro início do
// fluxo, nunca a suposição de presença. Trocar a implementação por um
// session store real (Redis, Postgres) não muda nenhum caller.
type Store interface {
	// Put serializa value como JSON e grava sob (sid, key).
	Put(ctx context.Context, sid, key string, value any) error

	// Get desserializa o valor em dest e informa presença. Conteúdo
	// malformado retorna (false, err): o caller trata como ausência.
	Get(ctx context.Context, sid, key string, dest any) (bool, error)

	// Delete remove a chave. Remover chave inexistente não é erro.
	Delete(ctx context.Context, sid, key string) error
}
