package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/session"

	"github.com/AniruddhGohil/serp-checker/internal/config"
	"github.com/AniruddhGohil/serp-checker/internal/models"
)

// Session keys written by the OIDC callback.
const (
	SessionUserSub     = "user_sub"
	SessionUserEmail   = "user_email"
	SessionUserName    = "user_name"
	SessionUserPicture = "user_picture"
	SessionRedirect    = "redirect_after_login"
)

// AuthMiddleware gates the app behind OIDC login when it is configured.
type AuthMiddleware struct {
	cfg *config.Config
}

// NewAuthMiddleware creates a new auth middleware instance.
func NewAuthMiddleware(cfg *config.Config) *AuthMiddleware {
	return &AuthMiddleware{cfg: cfg}
}

// RequireAuth ensures the user is authenticated, redirecting to /login if not.
// API requests get a 401 instead. Does nothing when SSO is disabled.
func (m *AuthMiddleware) RequireAuth(c fiber.Ctx) error {
	if !m.cfg.IsAuthEnabled() {
		return c.Next()
	}

	sess := session.FromContext(c)
	if sess == nil {
		return fiber.NewError(fiber.StatusInternalServerError, "session not available")
	}

	user := UserFromSession(sess)
	if user == nil {
		if strings.HasPrefix(c.Path(), "/api/") {
			return fiber.NewError(fiber.StatusUnauthorized, "authentication required")
		}
		if c.Method() == fiber.MethodGet {
			sess.Set(SessionRedirect, c.OriginalURL())
		}
		return c.Redirect().To("/login")
	}

	c.Locals("user", user)
	return c.Next()
}

// UserFromSession rebuilds the logged-in user from session values.
func UserFromSession(sess *session.Middleware) *models.User {
	sub, _ := sess.Get(SessionUserSub).(string)
	if sub == "" {
		return nil
	}
	email, _ := sess.Get(SessionUserEmail).(string)
	name, _ := sess.Get(SessionUserName).(string)
	picture, _ := sess.Get(SessionUserPicture).(string)
	return &models.User{Sub: sub, Email: email, Name: name, Picture: picture}
}
