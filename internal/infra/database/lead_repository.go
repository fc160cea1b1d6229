package database

import (
	"context"
	"database/sql"

	"github.com/chromadev-br/tupana-checkout/internal/entity"
)

// LeadRepository guarda a trilha de auditoria dos leads capturados.
// O fluxo do visitante nunca depende desta escrita.
type LeadRepository struct {
	DB *sql.DB
}

func NewLeadRepository(db *sql.DB) *LeadRepository {
	return &LeadRepository{DB: db}
}

func (r *LeadRepository) Upsert(ctx context.Context, lead *entity.ClientData) error {
	query := `
		INSERT INTO checkout_leads (email, nome, telefone, cpf, produto_id, produto_nome, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW())
		ON CONFLICT (email)
		DO UPDATE SET
			nome = COALESCE(EXCLUDED.nome, checkout_leads.nome),
			telefone = COALESCE(EXCLUDED.telefone, checkout_leads.telefone),
			cpf = COALESCE(EXCLUDED.cpf, checkout_leads.cpf),
			updated_at = NOW()
	`

	_, err := r.DB.ExecContext(
		ctx,
		query,
		lead.Email,
		nullString(lead.Nome),
		nullString(lead.Telefone),
		nullString(lead.CPF),
		lead.ProdutoID,
		lead.NomeProduto,
	)

	return err
}

func nullString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
