package handlers

import (
	"database/sql"
	"encoding/json"
	"net/http"
	"os"
	"time"

	"github.com/rabbitmq/amqp091-go"
)

// HealthHandler expõe o estado das dependências do checkout. Banco e
// fila são opcionais nesse deploy, então "not configured" é saudável;
// só dependência configurada e quebrada degrada o serviço.
type HealthHandler struct {
	db       *sql.DB
	rabbitMQ *amqp091.Connection
	started  time.Time
}

func NewHealthHandler(db *sql.DB, rabbitMQ *amqp091.Connection) *HealthHandler {
	return &HealthHandler{
		db:       db,
		rabbitMQ: rabbitMQ,
		started:  time.Now(),
	}
}

type healthResponse struct {
	Status       string            `json:"status"`
	Uptime       string            `json:"uptime"`
	Dependencies map[string]string `json:"dependencies"`
}

func (h *HealthHandler) Handle(w http.ResponseWriter, r *http.Request) {
	deps := map[string]string{
		"database": h.checkDatabase(),
		"rabbitmq": h.checkRabbitMQ(),
		"canvi":    h.checkCanvi(),
	}

	status := "healthy"
	for _, v := range deps {
		if v != "healthy" && v != "configured" && v != "not configured" {
			status = "degraded"
			break
		}
	}

	w.Header().Set("Content-Type", "application/json")
	if status == "degraded" {
		w.WriteHeader(http.StatusServiceUnavailable)
	}

	json.NewEncoder(w).Encode(healthResponse{
		Status:       status,
		Uptime:       time.Since(h.started).Round(time.Second).String(),
		Dependencies: deps,
	})
}

func (h *HealthHandler) checkDatabase() string {
	if h.db == nil {
		return "not configured"
	}
	if err := h.db.Ping(); err != nil {
		return "unhealthy: " + err.Error()
	}
	return "healthy"
}

func (h *HealthHandler) checkRabbitMQ() string {
	if h.rabbitMQ == nil {
		return "not configured"
	}
	if h.rabbitMQ.IsClosed() {
		return "unhealthy: connection closed"
	}
	return "healthy"
}

// checkCanvi só confere a configuração; não vale uma chamada real ao
// gateway a cada health check.
func (h *HealthHandler) checkCanvi() string {
	if os.Getenv("API_BASE_URL") == "" {
		return "not configured"
	}
	return "configured"
}
