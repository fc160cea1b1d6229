package handlers

import (
	"log"
	"net/http"

	"github.com/chromadev-br/tupana-checkout/internal/entity"
	"github.com/chromadev-br/tupana-checkout/internal/infra/http/middleware"
	"github.com/chromadev-br/tupana-checkout/internal/infra/http/web"
	"github.com/chromadev-br/tupana-checkout/internal/infra/session"
	"github.com/chromadev-br/tupana-checkout/internal/usecase"
)

// PaymentHandler dirige a máquina de estados do checkout via POST-redirect-GET.
// Cada ação carrega o snapshot da sessão, aplica a transição e regrava.
type PaymentHandler struct {
	store         session.Store
	generatePixUC *usecase.GeneratePixUseCase
	valor         string
}

func NewPaymentHandler(store session.Store, uc *usecase.GeneratePixUseCase, valor string) *PaymentHandler {
	return &PaymentHandler{
		store:         store,
		generatePixUC: uc,
		valor:         valor,
	}
}

type paymentPageData struct {
	Cliente  *entity.ClientData
	Checkout *usecase.Checkout
	Valor    string
}

// ShowPayment renderiza o passo de pagamento conforme o estado corrente.
func (h *PaymentHandler) ShowPayment(w http.ResponseWriter, r *http.Request) {
	cliente, _, checkout, ok := h.loadFlow(w, r)
	if !ok {
		return
	}

	web.Render(w, "pagamento.html", paymentPageData{
		Cliente:  cliente,
		Checkout: checkout,
		Valor:    h.valor,
	})
}

// SelectMethod aplica a escolha do visitante. Cartão cai direto em erro
// com a mensagem fixa; a máquina cuida disso.
func (h *PaymentHandler) SelectMethod(w http.ResponseWriter, r *http.Request) {
	_, sid, checkout, ok := h.loadFlow(w, r)
	if !ok {
		return
	}

	metodo := entity.PaymentMethod(r.PostFormValue("metodo"))
	if err := checkout.SelectMethod(metodo); err != nil {
		// Transição ilegal (refresh, duplo clique): só volta pra página.
		http.Redirect(w, r, "/pagamento", http.StatusSeeOther)
		return
	}

	h.saveCheckout(r, sid, checkout)
	http.Redirect(w, r, "/pagamento", http.StatusSeeOther)
}

// ChangeMethod volta de escolha:pix pra escolha limpa.
func (h *PaymentHandler) ChangeMethod(w http.ResponseWriter, r *http.Request) {
	_, sid, checkout, ok := h.loadFlow(w, r)
	if !ok {
		return
	}

	if err := checkout.ChangeMethod(); err == nil {
		h.saveCheckout(r, sid, checkout)
	}
	http.Redirect(w, r, "/pagamento", http.StatusSeeOther)
}

// GeneratePix confirma o "gerar código": passa por processando, chama a
// Canvi e aterrissa em sucesso ou erro. A chamada é síncrona dentro do
// request, então nunca há duas cobranças em voo pra mesma sessão.
func (h *PaymentHandler) GeneratePix(w http.ResponseWriter, r *http.Request) {
	cliente, sid, checkout, ok := h.loadFlow(w, r)
	if !ok {
		return
	}

	if err := checkout.BeginProcessing(); err != nil {
		// Sem método armado (ou código já gerado): nada a disparar.
		http.Redirect(w, r, "/pagamento", http.StatusSeeOther)
		return
	}

	result, err := h.generatePixUC.Execute(r.Context(), sid, *cliente)
	if err != nil {
		checkout.Fail(err.Error())
		middleware.RecordPixCharge("error")
	} else {
		checkout.CompletePix(result.Payload)
		middleware.RecordPixCharge("success")
	}

	h.saveCheckout(r, sid, checkout)
	http.Redirect(w, r, "/pagamento", http.StatusSeeOther)
}

// Retry volta do erro pra escolha. O lead da sessão fica como está.
func (h *PaymentHandler) Retry(w http.ResponseWriter, r *http.Request) {
	_, sid, checkout, ok := h.loadFlow(w, r)
	if !ok {
		return
	}

	if err := checkout.Retry(); err == nil {
		h.saveCheckout(r, sid, checkout)
	}
	http.Redirect(w, r, "/pagamento", http.StatusSeeOther)
}

// loadFlow garante a pré-condição do passo: lead presente na sessão.
// Ausente ou ilegível, redireciona pra home sem renderizar nada.
func (h *PaymentHandler) loadFlow(w http.ResponseWriter, r *http.Request) (*entity.ClientData, string, *usecase.Checkout, bool) {
	sid := session.CurrentID(r)
	if sid == "" {
		http.Redirect(w, r, "/", http.StatusFound)
		return nil, "", nil, false
	}

	var cliente entity.ClientData
	found, err := h.store.Get(r.Context(), sid, session.KeyClientData, &cliente)
	if err != nil || !found {
		http.Redirect(w, r, "/", http.StatusFound)
		return nil, "", nil, false
	}

	checkout := usecase.NewCheckout()
	if found, err := h.store.Get(r.Context(), sid, session.KeyCheckout, checkout); err != nil || !found {
		// Snapshot ausente ou podre: recomeça da escolha.
		checkout = usecase.NewCheckout()
	}

	return &cliente, sid, checkout, true
}

func (h *PaymentHandler) saveCheckout(r *http.Request, sid string, checkout *usecase.Checkout) {
	if err := h.store.Put(r.Context(), sid, session.KeyCheckout, checkout); err != nil {
		log.Printf("⚠️ Falha ao gravar snapshot do checkout: %v", err)
	}
}
