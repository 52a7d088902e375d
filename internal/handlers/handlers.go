// Package handlers serves the rank checker's HTML pages and health checks.
package handlers

import (
	"github.com/gofiber/fiber/v3"

	"github.com/AniruddhGohil/serp-checker/internal/models"
)

// currentUser returns the logged-in user, or nil when SSO is disabled.
func currentUser(c fiber.Ctx) *models.User {
	user, _ := c.Locals("user").(*models.User)
	return user
}
