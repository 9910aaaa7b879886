package middleware

import (
	"saathi/models"

	"github.com/gofiber/fiber/v2"
)

// RequireRoles rejects the request when the authenticated role is not in the
// allow-list. Must run after JWTMiddleware.
func RequireRoles(roles ...models.Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		role, ok := c.Locals("role").(models.Role)
		if !ok {
			return JsonResponse(c, fiber.StatusForbidden, false, "No role information found!", nil)
		}

		for _, allowed := range roles {
			if role == allowed {
				return c.Next()
			}
		}

		return JsonResponse(c, fiber.StatusForbidden, false, "You don't have permission to access this resource!", fiber.Map{
			"yourRole":      role,
			"requiredRoles": roles,
		})
	}
}
