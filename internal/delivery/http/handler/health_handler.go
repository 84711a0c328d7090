package handler

import (
	"context"
	"time"

	"resume-match/internal/delivery/http/dto"
	"resume-match/internal/pkg/response"

	"github.com/gofiber/fiber/v3"
)

// Pinger reports whether a dependency is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

type HealthHandler struct {
	checks  map[string]Pinger
	clients func() int
}

// NewHealthHandler reports the database as required; other checks only
// degrade the status.
func NewHealthHandler(checks map[string]Pinger, clients func() int) *HealthHandler {
	return &HealthHandler{checks: checks, clients: clients}
}

func (h *HealthHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	r.Get("/health", h.Health)
}

func (h *HealthHandler) Health(c fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 2*time.Second)
	defer cancel()

	out := dto.HealthResponse{Status: "ok", Components: map[string]string{}}
	status := fiber.StatusOK
	for name, p := range h.checks {
		if p == nil {
			continue
		}
		if err := p.Ping(ctx); err != nil {
			out.Components[name] = "down"
			if name == "database" {
				out.Status = "down"
				status = fiber.StatusServiceUnavailable
			} else if out.Status == "ok" {
				out.Status = "degraded"
			}
			continue
		}
		out.Components[name] = "up"
	}
	if h.clients != nil {
		out.WSClients = h.clients()
	}
	return response.Success(c, status, out.Status, out)
}
