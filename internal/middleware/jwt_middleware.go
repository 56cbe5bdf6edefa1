package middleware

import (
	"log"
	"strings"

	"inventory/internal/services"

	"github.com/gofiber/fiber/v2"
)

// SubjectKey is the Locals key holding the token subject of an authorized request.
const SubjectKey = "subject"

// AuthRequired rejects requests to the product API that do not carry a bearer
// token signed by authService.
func AuthRequired(authService *services.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token, ok := bearerToken(c.Get(fiber.HeaderAuthorization))
		if !ok {
			return unauthorized(c, "Bearer token is required", nil)
		}

		claims, err := authService.ValidateToken(token)
		if err != nil {
			log.Printf("Rejected API token from %s: %v", c.IP(), err)
			return unauthorized(c, "Invalid or expired token", err)
		}

		c.Locals(SubjectKey, claims["sub"])
		return c.Next()
	}
}

// bearerToken extracts the token from "Bearer <token>". The scheme is matched
// case-insensitively.
func bearerToken(header string) (string, bool) {
	scheme, token, found := strings.Cut(strings.TrimSpace(header), " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}

func unauthorized(c *fiber.Ctx, message string, err error) error {
	body := fiber.Map{"message": message}
	if err != nil {
		body["error"] = err.Error()
	}
	return c.Status(fiber.StatusUnauthorized).JSON(body)
}
