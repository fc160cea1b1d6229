package canvi

// PixChargeInput é o DTO limpo que o usecase entrega pro client.
type PixChargeInput struct {
	Nome        string
	Email       string
	Telefone    string
	CPF         string
	ProdutoID   int
	ProdutoNome string
}

// PixChargeOutput é o que interessa da resposta: o copia-e-cola.
// A imagem do QR vem da API mas é ignorada; nós renderizamos a nossa.
type PixChargeOutput struct {
	CopiaCola string
	Message   string
}

// --- PAYLOAD: O que o Client manda para a Canvi ---

// Os campos de cartão existem no shape do contrato mas nunca são
// preenchidos neste fluxo (cartão desabilitado).
type pixChargeRequest struct {
	Nome        string `json:"nome"`
	Email       string `json:"email"`
	Telefone    string `json:"telefone"`
	CPF         string `json:"cpf"`
	ProdutoID   int    `json:"produto_id"`
	ProdutoNome string `json:"produto_nome"`

	CardNumber string `json:"card_number,omitempty"`
	CardName   string `json:"card_name,omitempty"`
	CardExpiry string `json:"card_expiry,omitempty"`
	CardCVV    string `json:"card_cvv,omitempty"`
	CardType   string `json:"card_type,omitempty"`
}

// --- RESPONSE: O que a Canvi devolve ---
type pixChargeResponse struct {
	Status    string `json:"status"`  // "error" sinaliza recusa
	Message   string `json:"message"` // detalhe humano
	CopiaCola string `json:"copia_cola"`
	ImagemQR  string `json:"imagem_qr"` // não usado
	Sucesso   bool   `json:"sucesso"`   // não usado
}
