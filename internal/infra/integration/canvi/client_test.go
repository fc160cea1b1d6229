package canvi_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/chromadev-br/tupana-checkout/internal/infra/integration/canvi"
)

func chargeInput() canvi.PixChargeInput {
	return canvi.PixChargeInput{
		Nome:        "João Silva",
		Email:       "joao@example.com",
		Telefone:    "(92) 99999-9999",
		CPF:         "123.456.789-00",
		ProdutoID:   1,
		ProdutoNome: "Tupana A1",
	}
}

func TestGeneratePixSendsExpectedWireContract(t *testing.T) {
	var gotBody map[string]any

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "POST", r.Method)
		assert.Equal(t, "/api/pix", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		json.NewDecoder(r.Body).Decode(&gotBody)

		json.NewEncoder(w).Encode(map[string]any{
			"status":     "ok",
			"copia_cola": "00020126580014br.gov.bcb.pix...ABCD",
			"imagem_qr":  "data:image/png;base64,iVBORw0KG...",
			"sucesso":    true,
		})
	}))
	defer server.Close()

	client := canvi.NewClient(server.URL)
	out, err := client.GeneratePix(context.Background(), chargeInput())

	assert.NoError(t, err)
	assert.Equal(t, "00020126580014br.gov.bcb.pix...ABCD", out.CopiaCola)

	assert.Equal(t, "João Silva", gotBody["nome"])
	assert.Equal(t, "joao@example.com", gotBody["email"])
	assert.Equal(t, "(92) 99999-9999", gotBody["telefone"])
	assert.Equal(t, "123.456.789-00", gotBody["cpf"])
	assert.Equal(t, float64(1), gotBody["produto_id"])
	assert.Equal(t, "Tupana A1", gotBody["produto_nome"])

	// Campos de cartão existem no shape mas nunca vão no fluxo Pix
	assert.NotContains(t, gotBody, "card_number")
	assert.NotContains(t, gotBody, "card_cvv")
}

func TestGeneratePixStatusErrorBecomesAPIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"status":  "error",
			"message": "saldo insuficiente",
		})
	}))
	defer server.Close()

	client := canvi.NewClient(server.URL)
	out, err := client.GeneratePix(context.Background(), chargeInput())

	assert.Nil(t, out)
	var apiErr *canvi.APIError
	assert.True(t, errors.As(err, &apiErr))
	assert.Equal(t, "saldo insuficiente", apiErr.Message)
}

func TestGeneratePixHTTPErrorKeepsBodyMessage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		json.NewEncoder(w).Encode(map[string]any{
			"status":  "error",
			"message": "cpf inválido",
		})
	}))
	defer server.Close()

	client := canvi.NewClient(server.URL)
	_, err := client.GeneratePix(context.Background(), chargeInput())

	var apiErr *canvi.APIError
	assert.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusUnprocessableEntity, apiErr.StatusCode)
	assert.Equal(t, "cpf inválido", apiErr.Message)
}

func TestGeneratePixHTTPErrorWithoutBodyMessage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "internal server error", http.StatusInternalServerError)
	}))
	defer server.Close()

	client := canvi.NewClient(server.URL)
	_, err := client.GeneratePix(context.Background(), chargeInput())

	var apiErr *canvi.APIError
	assert.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusInternalServerError, apiErr.StatusCode)
	assert.Empty(t, apiErr.Message)
}

func TestGeneratePixNetworkFailureIsNotAPIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close() // derruba antes de chamar

	client := canvi.NewClient(server.URL)
	out, err := client.GeneratePix(context.Background(), chargeInput())

	assert.Nil(t, out)
	assert.Error(t, err)
	var apiErr *canvi.APIError
	assert.False(t, errors.As(err, &apiErr))
}

func TestGeneratePixSuccessWithEmptyCodePassesThrough(t *testing.T) {
	// A decisão de recusar código vazio é do orquestrador, não do client.
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"status": "ok"})
	}))
	defer server.Close()

	client := canvi.NewClient(server.URL)
	out, err := client.GeneratePix(context.Background(), chargeInput())

	assert.NoError(t, err)
	assert.Empty(t, out.CopiaCola)
}
