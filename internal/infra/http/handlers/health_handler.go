package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// Pinger is an upstream dependency that can be probed.
type Pinger interface {
	Ping(ctx context.Context) error
}

// ConnectionState is satisfied by *amqp091.Connection.
type ConnectionState interface {
	IsClosed() bool
}

type HealthHandler struct {
	API       Pinger
	RabbitMQ  ConnectionState
	Timeout   time.Duration
	StartTime time.Time
}

type HealthResponse struct {
	Status       string            `json:"status"`
	Version      string            `json:"version"`
	Uptime       string            `json:"uptime"`
	Dependencies map[string]string `json:"dependencies"`
}

// NewHealthHandler accepts a nil rabbitMQ when activity events are disabled.
func NewHealthHandler(api Pinger, rabbitMQ ConnectionState) *HealthHandler {
	return &HealthHandler{
		API:       api,
		RabbitMQ:  rabbitMQ,
		Timeout:   5 * time.Second,
		StartTime: time.Now(),
	}
}

func (h *HealthHandler) Handle(w http.ResponseWriter, r *http.Request) {
	deps := make(map[string]string)

	if h.API != nil {
		ctx, cancel := context.WithTimeout(r.Context(), h.Timeout)
		defer cancel()
		if err := h.API.Ping(ctx); err != nil {
			deps["anvaya_api"] = fmt.Sprintf("unhealthy: %v", err)
		} else {
			deps["anvaya_api"] = "healthy"
		}
	} else {
		deps["anvaya_api"] = "not configured"
	}

	if h.RabbitMQ != nil {
		if h.RabbitMQ.IsClosed() {
			deps["rabbitmq"] = "unhealthy: connection closed"
		} else {
			deps["rabbitmq"] = "healthy"
		}
	} else {
		deps["rabbitmq"] = "not configured"
	}

	status := "healthy"
	for _, v := range deps {
		if v != "healthy" && v != "not configured" {
			status = "degraded"
			break
		}
	}

	response := HealthResponse{
		Status:       status,
		Version:      "1.0.0",
		Uptime:       time.Since(h.StartTime).Round(time.Second).String(),
		Dependencies: deps,
	}

	w.Header().Set("Content-Type", "application/json")
	if status == "degraded" {
		w.WriteHeader(http.StatusServiceUnavailable)
	} else {
		w.WriteHeader(http.StatusOK)
	}

	json.NewEncoder(w).Encode(response)
}
