package middleware

import (
	"crypto/subtle"

	"github.com/causeway-app/causeway-backend/internal/config"
	"github.com/causeway-app/causeway-backend/internal/dto"
	"github.com/causeway-app/causeway-backend/internal/identity"
	"github.com/causeway-app/causeway-backend/internal/services"
	"github.com/gofiber/fiber/v2"
)

// AdminDecision is a tagged admin-access result so callers can map
// "no credential" and "credential without the role" to distinct statuses.
type AdminDecision int

const (
	AdminUnauthenticated AdminDecision = iota
	AdminForbidden
	AdminAuthorized
)

// VerifyAdminAccess resolves the caller's identity and role. It returns the
// Identity only when the decision is AdminAuthorized.
func VerifyAdminAccess(c *fiber.Ctx, access *services.AccessService) (AdminDecision, *identity.Identity) {
	id, err := identity.FromContext(c)
	if err != nil {
		return AdminUnauthenticated, nil
	}
	if !access.IsAdmin(id.Email) {
		return AdminForbidden, nil
	}
	return AdminAuthorized, id
}

// AdminRequired guards a route group with the admin check, mapping the
// decision to 401 or 403. The deployment bootstrap token passes regardless
// of JWT state, which is how the first admin is ever created.
func AdminRequired(access *services.AccessService, cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if cfg.AdminBootstrapToken != "" {
			header := c.Get("X-Admin-Token")
			if header != "" && subtle.ConstantTimeCompare([]byte(header), []byte(cfg.AdminBootstrapToken)) == 1 {
				return c.Next()
			}
		}

		decision, id := VerifyAdminAccess(c, access)
		switch decision {
		case AdminAuthorized:
			c.Locals("identity", id)
			return c.Next()
		case AdminForbidden:
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
				Error: true, Message: "Admin access required",
			})
		default:
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Error: true, Message: "Unauthorized",
			})
		}
	}
}
