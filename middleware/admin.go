package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"
)

// IsAdminEmail reports whether email appears in the comma-separated
// allow-list. Both sides are trimmed and lowercased before comparison.
// An empty email or an empty list never matches.
func IsAdminEmail(email, allowList string) bool {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return false
	}

	for _, entry := range strings.Split(allowList, ",") {
		entry = strings.ToLower(strings.TrimSpace(entry))
		if entry != "" && entry == email {
			return true
		}
	}
	return false
}

// AdminOnly gates a route to callers whose authenticated email is on the
// allow-list. The list is injected at route registration so the check itself
// reads no ambient state. Must run after IdentityMiddleware.
func AdminOnly(allowList string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		identity, ok := CallerIdentity(c)
		if !ok || !IsAdminEmail(identity.Email, allowList) {
			return JsonError(c, fiber.StatusUnauthorized, "Unauthorized")
		}
		return c.Next()
	}
}
