package prints

import (
	"github.com/amilmether/fundEd-Web/app/routes/auth"
	"github.com/amilmether/fundEd-Web/app/services"
	"github.com/gofiber/fiber/v2"
)

var notifier *services.Notifier

// SetupPrintsRoutes sets up the print distribution routes.
func SetupPrintsRoutes(app *fiber.App, n *services.Notifier) {
	notifier = n

	api := app.Group("/api/prints")
	api.Use(auth.AuthMiddleware)
	api.Get("/", GetDistributionsAPI)
	api.Get("/eligible", GetEligibleStudentsAPI)
	api.Post("/", DistributePrintAPI)
}
