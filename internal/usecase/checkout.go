package usecase

import (
	"github.com/chromadev-br/tupana-checkout/internal/entity"
)

// State é o estado do checkout. Linear de propósito: um único sucesso
// terminal e uma única falha recuperável, porque a chamada à API de
// pagamento é a única operação falível do fluxo.
type State string

const (
	StateChoice     State = "escolha"
	StateProcessing State = "processando"
	StateSuccessPix State = "sucesso_pix"
	StateError      State = "erro"
)

// Checkout é a máquina de estados do pagamento, persistida como snapshot
// na sessão entre navegações. Metodo só existe em "escolha" (escolha:pix),
// PixCode só em "sucesso_pix" e ErroMsg só em "erro"; toda transição passa
// pelos métodos abaixo, que recusam qualquer salto ilegal.
type Checkout struct {
	State   State                `json:"state"`
	Metodo  entity.PaymentMethod `json:"metodo,omitempty"`
	PixCode string               `json:"pix_code,omitempty"`
	ErroMsg string               `json:"erro_msg,omitempty"`
}

// NewCheckout começa em "escolha", sem método selecionado.
func NewCheckout() *Checkout {
	return &Checkout{State: StateChoice}
}

// SelectMethod registra a escolha do visitante. Pix arma a confirmação;
// cartão é um caminho morto documentado e cai direto em erro com a
// mensagem fixa de indisponibilidade.
func (c *Checkout) SelectMethod(m entity.PaymentMethod) error {
	if c.State != StateChoice {
		return invalidTransition(c.State, "select_method")
	}

	switch m {
	case entity.MethodPix:
		c.Metodo = entity.MethodPix
		return nil
	case entity.MethodCard:
		c.Metodo = ""
		c.State = StateError
		c.ErroMsg = MsgCardUnavailable
		return nil
	default:
		return &DomainError{Code: "UNKNOWN_METHOD", Message: "método de pagamento desconhecido"}
	}
}

// ChangeMethod volta de escolha:pix para a escolha limpa.
func (c *Checkout) ChangeMethod() error {
	if c.State != StateChoice || c.Metodo == "" {
		return invalidTransition(c.State, "change_method")
	}
	c.Metodo = ""
	return nil
}

// BeginProcessing dispara quando o visitante confirma o "gerar código".
// Só é alcançável com o Pix já selecionado, então nunca existe
// "processando" sem request a caminho.
func (c *Checkout) BeginProcessing() error {
	if c.State != StateChoice || c.Metodo != entity.MethodPix {
		return invalidTransition(c.State, "begin_processing")
	}
	c.State = StateProcessing
	return nil
}

// CompletePix encerra o fluxo com o código gerado. Estado terminal:
// daqui só sai por navegação pra página de obrigado.
func (c *Checkout) CompletePix(code string) error {
	if c.State != StateProcessing {
		return invalidTransition(c.State, "complete_pix")
	}
	if code == "" {
		return &DomainError{Code: "EMPTY_PIX_CODE", Message: MsgPixNotGenerated}
	}
	c.State = StateSuccessPix
	c.PixCode = code
	c.ErroMsg = ""
	return nil
}

// Fail registra a falha com a mensagem que o visitante vai ler.
func (c *Checkout) Fail(msg string) error {
	if c.State != StateProcessing {
		return invalidTransition(c.State, "fail")
	}
	if msg == "" {
		msg = MsgProcessingError
	}
	c.State = StateError
	c.ErroMsg = msg
	return nil
}

// Retry volta do erro pra escolha, com a seleção de método zerada.
// O ClientData da sessão fica intocado: retentar nunca exige
// re-preencher o formulário.
func (c *Checkout) Retry() error {
	if c.State != StateError {
		return invalidTransition(c.State, "retry")
	}
	c.State = StateChoice
	c.Metodo = ""
	c.ErroMsg = ""
	return nil
}

func invalidTransition(from State, action string) error {
	return &DomainError{
		Code:    "INVALID_TRANSITION",
		Message: "ação '" + action + "' inválida no estado '" + string(from) + "'",
	}
}
