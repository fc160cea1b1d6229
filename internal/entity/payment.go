package entity

// PaymentMethod identifica a forma de pagamento escolhida pelo visitante.
type PaymentMethod string

const (
	MethodPix  PaymentMethod = "pix"
	MethodCard PaymentMethod = "card"
)

// PaymentResult é o resultado do pagamento gravado para a página de obrigado.
// Payload carrega o código copia-e-cola quando Type == "pix".
type PaymentResult struct {
	Type    PaymentMethod `json:"type"`
	Payload string        `json:"payload,omitempty"`
}

func (r PaymentResult) IsPix() bool {
	return r.Type == MethodPix && r.Payload != ""
}
