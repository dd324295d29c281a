package auth

import (
	"strings"

	"github.com/gofiber/fiber/v2"
)

// SetupAuthRoutes registers the representative login endpoints.
func SetupAuthRoutes(app *fiber.App) {
	auth := app.Group("/api/auth")

	// Public routes
	auth.Post("/login", LoginAPI)
	auth.Post("/logout", LogoutAPI)

	// Protected routes
	auth.Use(AuthMiddleware)
	auth.Get("/me", MeAPI)
	auth.Post("/change-password", ChangePasswordAPI)
}

// AuthMiddleware validates the JWT and stores the representative's identity
// and class scope on the request context.
func AuthMiddleware(c *fiber.Ctx) error {
	// Get JWT token from cookie or Authorization header
	tokenString := c.Cookies("jwt_token")
	if tokenString == "" {
		auth := c.Get("Authorization")
		if strings.HasPrefix(auth, "Bearer ") {
			tokenString = strings.TrimPrefix(auth, "Bearer ")
		}
	}

	if tokenString == "" {
		return fiber.NewError(fiber.StatusUnauthorized, "Authentication required")
	}

	claims, err := ValidateJWT(tokenString)
	if err != nil {
		return fiber.NewError(fiber.StatusUnauthorized, "Invalid or expired token")
	}

	c.Locals("user_id", claims.UserID)
	c.Locals("user_name", claims.Name)
	c.Locals("user_email", claims.Email)
	c.Locals("scope", claims.Scope)

	return c.Next()
}

// Scope returns the class scope of the authenticated representative.
func Scope(c *fiber.Ctx) string {
	if scope, ok := c.Locals("scope").(string); ok {
		return scope
	}
	return ""
}
