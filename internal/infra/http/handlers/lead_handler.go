package handlers

import (
	"log"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/chromadev-br/tupana-checkout/internal/entity"
	"github.com/chromadev-br/tupana-checkout/internal/infra/http/middleware"
	"github.com/chromadev-br/tupana-checkout/internal/infra/http/web"
	"github.com/chromadev-br/tupana-checkout/internal/infra/queue"
	"github.com/chromadev-br/tupana-checkout/internal/infra/session"
	"github.com/chromadev-br/tupana-checkout/internal/usecase"
)

type LeadHandler struct {
	store       session.Store
	leadRepo    usecase.LeadRepositoryInterface // opcional
	producer    usecase.QueueProducerInterface  // opcional
	rateLimiter *RateLimiter

	produtoID   int
	produtoNome string
	valor       string
}

func NewLeadHandler(
	store session.Store,
	leadRepo usecase.LeadRepositoryInterface,
	producer usecase.QueueProducerInterface,
	produtoID int,
	produtoNome, valor string,
) *LeadHandler {
	return &LeadHandler{
		store:       store,
		leadRepo:    leadRepo,
		producer:    producer,
		rateLimiter: NewRateLimiter(10, time.Minute), // 10 req/min por IP
		produtoID:   produtoID,
		produtoNome: produtoNome,
		valor:       valor,
	}
}

type landingData struct {
	ProdutoNome string
	Valor       string
	Erro        string
}

// ShowLanding renderiza a home com o formulário de interesse.
func (h *LeadHandler) ShowLanding(w http.ResponseWriter, r *http.Request) {
	web.Render(w, "landing.html", landingData{
		ProdutoNome: h.produtoNome,
		Valor:       h.valor,
	})
}

// CaptureLead grava o lead na sessão e manda pro pagamento. A gravação
// local falhando, o visitante segue mesmo assim: o passo de pagamento
// se autocorrige redirecionando pra home.
func (h *LeadHandler) CaptureLead(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	clientIP := getClientIP(r)
	if !h.rateLimiter.Allow(clientIP) {
		http.Error(w, "Too many requests. Please try again later.", http.StatusTooManyRequests)
		return
	}

	if err := r.ParseForm(); err != nil {
		http.Error(w, "formulário inválido", http.StatusBadRequest)
		return
	}

	input := usecase.LeadInput{
		Nome:     strings.TrimSpace(r.PostFormValue("nome")),
		Email:    strings.TrimSpace(r.PostFormValue("email")),
		Telefone: strings.TrimSpace(r.PostFormValue("telefone")),
		CPF:      strings.TrimSpace(r.PostFormValue("cpf")),
	}

	if validationErrors := usecase.ValidateLeadInput(input); len(validationErrors) > 0 {
		msgs := make([]string, 0, len(validationErrors))
		for _, e := range validationErrors {
			msgs = append(msgs, e.Error())
		}
		w.WriteHeader(http.StatusBadRequest)
		web.Render(w, "landing.html", landingData{
			ProdutoNome: h.produtoNome,
			Valor:       h.valor,
			Erro:        strings.Join(msgs, "; "),
		})
		return
	}

	cliente, err := entity.NewClientData(
		input.Nome, input.Email, input.Telefone, input.CPF,
		h.produtoID, h.produtoNome,
	)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	sid := session.EnsureID(w, r)

	if err := h.store.Put(ctx, sid, session.KeyClientData, cliente); err != nil {
		// Política "nunca prender o visitante": loga e navega mesmo assim.
		log.Printf("⚠️ Falha ao gravar lead na sessão: %v", err)
	}

	// Submissão nova zera qualquer resto de checkout anterior.
	h.store.Delete(ctx, sid, session.KeyCheckout)
	h.store.Delete(ctx, sid, session.KeyPaymentData)

	if h.leadRepo != nil {
		if err := h.leadRepo.Upsert(ctx, cliente); err != nil {
			log.Printf("⚠️ Falha ao auditar lead: %v", err)
			middleware.RecordIntegrationError("database")
		}
	}

	if h.producer != nil {
		payload := queue.CheckoutEventPayload{
			Event:       queue.EventLeadCaptured,
			Nome:        cliente.Nome,
			Email:       cliente.Email,
			Telefone:    cliente.Telefone,
			CPF:         cliente.CPF,
			ProdutoNome: cliente.NomeProduto,
			Origin:      "LANDING_FORM",
		}
		if err := h.producer.PublishCheckoutEvent(ctx, payload); err != nil {
			log.Printf("⚠️ Erro fila: %v", err)
			middleware.RecordIntegrationError("rabbitmq")
		}
	}

	middleware.RecordLeadCaptured()

	http.Redirect(w, r, "/pagamento", http.StatusSeeOther)
}

func getClientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		return xff
	}
	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return xri
	}
	return r.RemoteAddr
}

type RateLimiter struct {
	mu       sync.Mutex
	visitors map[string]*visitor
	limit    int
	window   time.Duration
}

type visitor struct {
	count     int
	lastReset time.Time
}

func NewRateLimiter(limit int, window time.Duration) *RateLimiter {
	rl := &RateLimiter{
		visitors: make(map[string]*visitor),
		limit:    limit,
		window:   window,
	}

	go rl.cleanup()
	return rl
}

func (rl *RateLimiter) Allow(ip string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	v, exists := rl.visitors[ip]
	now := time.Now()

	if !exists {
		rl.visitors[ip] = &visitor{count: 1, lastReset: now}
		return true
	}

	if now.Sub(v.lastReset) > rl.window {
		v.count = 1
		v.lastReset = now
		return true
	}

	v.count++
	return v.count <= rl.limit
}

func (rl *RateLimiter) cleanup() {
	ticker := time.NewTicker(10 * time.Minute)
	defer ticker.Stop()

	for range ticker.C {
		rl.mu.Lock()
		now := time.Now()
		for ip, v := range rl.visitors {
			if now.Sub(v.lastReset) > rl.window*2 {
				delete(rl.visitors, ip)
			}
		}
		rl.mu.Unlock()
	}
}
