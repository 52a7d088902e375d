package handlers

import (
	"github.com/gofiber/fiber/v3"

	"github.com/AniruddhGohil/serp-checker/internal/db"
)

// HealthHandler serves the liveness and readiness endpoints.
type HealthHandler struct {
	db *db.DB
}

// NewHealthHandler creates a new health handler. database may be nil when
// check statistics are disabled.
func NewHealthHandler(database *db.DB) *HealthHandler {
	return &HealthHandler{db: database}
}

// Liveness handles the /healthz endpoint for Kubernetes liveness checks.
// Returns 200 OK if the application is running.
func (h *HealthHandler) Liveness(c fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status": "ok",
	})
}

// Readiness handles the /readyz endpoint for Kubernetes readiness checks.
// Returns 200 OK if the application can serve traffic (database is reachable
// when one is configured).
func (h *HealthHandler) Readiness(c fiber.Ctx) error {
	if h.db != nil {
		if err := h.db.Ping(c.Context()); err != nil {
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
				"status": "error",
				"error":  "database unavailable",
			})
		}
	}

	return c.JSON(fiber.Map{
		"status": "ok",
	})
}
