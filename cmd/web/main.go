package main

import (
	"database/sql"
	"log"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/chromadev-br/tupana-checkout/internal/infra/database"
	"github.com/chromadev-br/tupana-checkout/internal/infra/http/handlers"
	"github.com/chromadev-br/tupana-checkout/internal/infra/http/middleware"
	"github.com/chromadev-br/tupana-checkout/internal/infra/integration/canvi"
	"github.com/chromadev-br/tupana-checkout/internal/infra/mail"
	"github.com/chromadev-br/tupana-checkout/internal/infra/queue"
	"github.com/chromadev-br/tupana-checkout/internal/infra/session"
	"github.com/chromadev-br/tupana-checkout/internal/usecase"
)

func main() {
	godotenv.Load()

	// Produto da pré-venda. A página hospeda um produto só; tudo
	// env-configurável pra reaproveitar o funil no próximo lote.
	produtoID := envInt("PRODUTO_ID", 1)
	produtoNome := env("PRODUTO_NOME", "Tupana A1")
	valorEntrada := env("VALOR_ENTRADA", "R$ 990,00")
	supportWhatsApp := env("SUPPORT_WHATSAPP", "5592981600014")

	// 1. Estado de sessão (o "localStorage" do lado do servidor)
	store := session.NewMemoryStore(24 * time.Hour)

	// 2. Banco (opcional: só auditoria de leads)
	var db *sql.DB
	if dsn := os.Getenv("DATABASE_URL"); dsn != "" {
		var err error
		db, err = database.NewDBConnection(dsn)
		if err != nil {
			log.Fatalf("❌ Falha ao conectar no Postgres: %v", err)
		}
		defer db.Close()
	} else {
		log.Println("⚠️ DATABASE_URL ausente, auditoria de leads desligada")
	}

	var leadRepo usecase.LeadRepositoryInterface
	if db != nil {
		leadRepo = database.NewLeadRepository(db)
	}

	// 3. Fila de follow-up (opcional)
	var rabbitMQ *queue.RabbitMQ
	var producer usecase.QueueProducerInterface
	if url := os.Getenv("RABBITMQ_URL"); url != "" {
		var err error
		rabbitMQ, err = queue.NewRabbitMQ(url)
		if err != nil {
			log.Fatalf("❌ Falha no RabbitMQ: %v", err)
		}
		defer rabbitMQ.Conn.Close()
		defer rabbitMQ.Ch.Close()
		producer = queue.NewProducer(rabbitMQ.Conn, rabbitMQ.Ch)

		// Worker de follow-up: consome a fila e reenvia o código Pix por email
		var mailer queue.FollowUpMailer
		if host := os.Getenv("MAIL_HOST"); host != "" {
			mailer = mail.NewEmailSender(
				host, envInt("MAIL_PORT", 587), os.Getenv("MAIL_USER"), os.Getenv("MAIL_PASS"),
			)
		}
		worker := queue.NewWorker(rabbitMQ.Ch, mailer)
		go worker.Start(queue.QueueName)
	} else {
		log.Println("⚠️ RABBITMQ_URL ausente, follow-up desligado")
	}

	// 4. Gateway Pix (a URL é validada a cada cobrança, não aqui)
	gateway := canvi.NewClient(os.Getenv("API_BASE_URL"))

	// 5. UseCases
	generatePixUC := usecase.NewGeneratePixUseCase(gateway, store, producer)

	// 6. Handlers
	leadHandler := handlers.NewLeadHandler(store, leadRepo, producer, produtoID, produtoNome, valorEntrada)
	paymentHandler := handlers.NewPaymentHandler(store, generatePixUC, valorEntrada)
	confirmationHandler := handlers.NewConfirmationHandler(store, produtoNome, supportWhatsApp)

	var healthHandler *handlers.HealthHandler
	if rabbitMQ != nil {
		healthHandler = handlers.NewHealthHandler(db, rabbitMQ.Conn)
	} else {
		healthHandler = handlers.NewHealthHandler(db, nil)
	}

	// 7. Router
	r := chi.NewRouter()
	r.Use(chimiddleware.Logger)
	r.Use(middleware.Metrics)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"https://tupana.chromaimoveis.com.br", "*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
	}))

	r.Get("/", leadHandler.ShowLanding)
	r.Post("/lead", leadHandler.CaptureLead)

	r.Get("/pagamento", paymentHandler.ShowPayment)
	r.Post("/pagamento/metodo", paymentHandler.SelectMethod)
	r.Post("/pagamento/trocar", paymentHandler.ChangeMethod)
	r.Post("/pagamento/gerar", paymentHandler.GeneratePix)
	r.Post("/pagamento/retry", paymentHandler.Retry)

	r.Get("/obrigado", confirmationHandler.ShowConfirmation)

	r.Get("/health", healthHandler.Handle)
	r.Handle("/metrics", promhttp.Handler())

	port := ":" + env("PORT", "8080")
	log.Printf("🔥 Checkout Tupana rodando na porta %s", port)
	http.ListenAndServe(port, r)
}

func env(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func envInt(k string, def int) int {
	if v := os.Getenv(k); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}
