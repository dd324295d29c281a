package dashboard

import (
	"github.com/amilmether/fundEd-Web/app/routes/auth"
	"github.com/gofiber/fiber/v2"
)

// SetupDashboardRoutes sets up the dashboard summary route.
func SetupDashboardRoutes(app *fiber.App) {
	api := app.Group("/api/dashboard")
	api.Use(auth.AuthMiddleware)
	api.Get("/", GetDashboardAPI)
}
