package middleware

import (
	"log/slog"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/launchesoneth-glitch/pokevault-sub000/internal/api/sessions"
	"github.com/launchesoneth-glitch/pokevault-sub000/internal/api/utils"
)

// AuthRequired rejects requests without a valid bearer session token and
// stores the resolved session in the request context. Rejection happens
// before any listing lookup.
func AuthRequired(svc *sessions.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := bearerToken(c)
		if token == "" {
			return utils.SendUnauthorized(c, "authentication required")
		}

		session, err := svc.Verify(token)
		if err != nil {
			slog.Debug("Auth required: invalid session",
				slog.String("error", err.Error()))
			return utils.SendUnauthorized(c, "invalid or expired session")
		}

		c.Locals("user", session)
		return c.Next()
	}
}

// OptionalAuth resolves the session when present but lets anonymous
// requests through. Used on public read endpoints so a caller's own
// ceilings can be shown back to them.
func OptionalAuth(svc *sessions.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if token := bearerToken(c); token != "" {
			if session, err := svc.Verify(token); err == nil {
				c.Locals("user", session)
			}
		}
		return c.Next()
	}
}

func bearerToken(c *fiber.Ctx) string {
	header := c.Get(fiber.HeaderAuthorization)
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return parts[1]
}
