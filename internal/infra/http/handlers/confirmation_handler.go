package handlers

import (
	"encoding/base64"
	"html/template"
	"log"
	"net/http"

	qrcode "github.com/skip2/go-qrcode"

	"github.com/chromadev-br/tupana-checkout/internal/entity"
	"github.com/chromadev-br/tupana-checkout/internal/infra/http/web"
	"github.com/chromadev-br/tupana-checkout/internal/infra/session"
)

type ConfirmationHandler struct {
	store           session.Store
	produtoNome     string
	supportWhatsApp string
}

func NewConfirmationHandler(store session.Store, produtoNome, supportWhatsApp string) *ConfirmationHandler {
	return &ConfirmationHandler{
		store:           store,
		produtoNome:     produtoNome,
		supportWhatsApp: supportWhatsApp,
	}
}

type confirmationPageData struct {
	IsPix           bool
	PixCode         string
	QRDataURI       template.URL
	ProdutoNome     string
	SupportWhatsApp string
}

// ShowConfirmation renderiza o resultado do pagamento. Sem payload na
// sessão (acesso direto, dado podre), redireciona pra home sem render
// parcial — ausência nunca é erro pro visitante.
func (h *ConfirmationHandler) ShowConfirmation(w http.ResponseWriter, r *http.Request) {
	sid := session.CurrentID(r)
	if sid == "" {
		http.Redirect(w, r, "/", http.StatusFound)
		return
	}

	var result entity.PaymentResult
	found, err := h.store.Get(r.Context(), sid, session.KeyPaymentData, &result)
	if err != nil || !found {
		http.Redirect(w, r, "/", http.StatusFound)
		return
	}

	data := confirmationPageData{
		IsPix:           result.IsPix(),
		PixCode:         result.Payload,
		ProdutoNome:     h.produtoNome,
		SupportWhatsApp: h.supportWhatsApp,
	}

	if data.IsPix {
		// QR renderizado aqui mesmo, a partir do copia-e-cola; a imagem
		// que a API manda é ignorada.
		png, err := qrcode.Encode(result.Payload, qrcode.High, 220)
		if err != nil {
			log.Printf("⚠️ Falha ao gerar QR Code: %v", err)
		} else {
			data.QRDataURI = template.URL("data:image/png;base64," + base64.StdEncoding.EncodeToString(png))
		}
	}

	web.Render(w, "obrigado.html", data)
}
