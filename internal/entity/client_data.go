package entity

import (
	"errors"
)

// ClientData representa o lead capturado na landing page.
// Criado no submit do formulário de interesse; somente leitura depois disso.
type ClientData struct {
	Nome        string `json:"nome"`
	Email       string `json:"email"`
	Telefone    string `json:"telefone"`
	CPF         string `json:"cpf"`
	ProdutoID   int    `json:"produtoId"`
	NomeProduto string `json:"nomeProduto"`
}

// Factory
func NewClientData(nome, email, telefone, cpf string, produtoID int, nomeProduto string) (*ClientData, error) {
	c := &ClientData{
		Nome:        nome,
		Email:       email,
		Telefone:    telefone,
		CPF:         cpf,
		ProdutoID:   produtoID,
		NomeProduto: nomeProduto,
	}

	if err := c.Validate(); err != nil {
		return nil, err
	}

	return c, nil
}

func (c *ClientData) Validate() error {
	if c.Nome == "" {
		return errors.New("nome is required")
	}
	if c.Email == "" {
		return errors.New("email is required")
	}
	if c.Telefone == "" {
		return errors.New("telefone is required")
	}
	if c.CPF == "" {
		return errors.New("cpf is required")
	}
	if c.NomeProduto == "" {
		return errors.New("nome_produto is required")
	}
	return nil
}
