package usecase

// Mensagens que chegam ao visitante. A taxonomia (configuração,
// transporte, negócio) colapsa toda no mesmo estado de erro; só o
// texto distingue.
const (
	MsgConfigError     = "Erro de Configuração: API URL não definida."
	MsgConnectionError = "Erro de conexão."
	MsgProcessingError = "Erro no processamento."
	MsgPixNotGenerated = "Código Pix não gerado."
	MsgCardUnavailable = "Pagamento em cartão indisponível no momento."
)

// DomainError: a regra de negócio disse não (API recusou, método
// indisponível, configuração ausente).
type DomainError struct {
	Code    string
	Message string
}

func (e *DomainError) Error() string {
	return e.Message
}

func IsDomainError(err error) bool {
	_, ok := err.(*DomainError)
	return ok
}

// TechnicalError: a infraestrutura falhou (rede, DNS, parse de resposta).
type TechnicalError struct {
	Code    string
	Message string
}

func (e *TechnicalError) Error() string {
	return e.Message
}

func IsTechnicalError(err error) bool {
	_, ok := err.(*TechnicalError)
	return ok
}
