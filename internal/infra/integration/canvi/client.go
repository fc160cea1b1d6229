package canvi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// APIError é a recusa de negócio: a Canvi respondeu, mas disse não.
// Qualquer outro erro do client é falha de transporte.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("canvi recusou a cobrança (status %d)", e.StatusCode)
}

type Client struct {
	baseURL string
	http    *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 10 * time.Second},
	}
}

// GeneratePix: cria a cobrança Pix e devolve o código copia-e-cola.
func (c *Client) GeneratePix(ctx context.Context, input PixChargeInput) (*PixChargeOutput, error) {
	url := fmt.Sprintf("%s/api/pix", c.baseURL)

	// 1. Converte DTO -> Request da Canvi (campos de cartão ficam vazios)
	payload := pixChargeRequest{
		Nome:        input.Nome,
		Email:       input.Email,
		Telefone:    input.Telefone,
		CPF:         input.CPF,
		ProdutoID:   input.ProdutoID,
		ProdutoNome: input.ProdutoNome,
	}

	jsonBody, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("erro ao marshal cobrança: %w", err)
	}

	// 2. Cria Request
	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewBuffer(jsonBody))
	if err != nil {
		return nil, err
	}
	c.setHeaders(req)

	// 3. Envia
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("erro request canvi: %w", err)
	}
	defer resp.Body.Close()

	// 4. Trata Erro HTTP (tenta aproveitar a message do body)
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(resp.Body)
		fmt.Printf("❌ ERRO API CANVI (Status %d): %s\n", resp.StatusCode, string(body))

		var apiErr pixChargeResponse
		_ = json.Unmarshal(body, &apiErr)
		return nil, &APIError{StatusCode: resp.StatusCode, Message: apiErr.Message}
	}

	// 5. Decodifica
	var response pixChargeResponse
	if err := json.NewDecoder(resp.Body).Decode(&response); err != nil {
		return nil, fmt.Errorf("erro decode canvi: %w", err)
	}

	// 6. Recusa de negócio vem com HTTP 200 e status "error"
	if response.Status == "error" {
		return nil, &APIError{StatusCode: resp.StatusCode, Message: response.Message}
	}

	return &PixChargeOutput{
		CopiaCola: response.CopiaCola,
		Message:   response.Message,
	}, nil
}

// setHeaders centraliza os headers obrigatórios
func (c *Client) setHeaders(req *http.Request) {
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", "TupanaCheckout/1.0")
}
