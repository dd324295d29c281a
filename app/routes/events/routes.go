package events

import (
	"github.com/amilmether/fundEd-Web/app/routes/auth"
	"github.com/gofiber/fiber/v2"
)

// SetupEventsRoutes sets up events routes
func SetupEventsRoutes(app *fiber.App) {
	api := app.Group("/api/events")
	api.Use(auth.AuthMiddleware)
	api.Get("/", GetEventsAPI)
	api.Get("/:id", GetEventAPI)
	api.Post("/", CreateEventAPI)
	api.Put("/:id", UpdateEventAPI)
	api.Delete("/:id", DeleteEventAPI)
}
