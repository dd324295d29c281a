package payments

import (
	"github.com/amilmether/fundEd-Web/app/routes/auth"
	"github.com/amilmether/fundEd-Web/app/services"
	"github.com/gofiber/fiber/v2"
)

var notifier *services.Notifier
var fraudChecker *services.FraudChecker

// SetupPaymentsRoutes sets up the payment ledger and verification routes.
func SetupPaymentsRoutes(app *fiber.App, n *services.Notifier, f *services.FraudChecker) {
	notifier = n
	fraudChecker = f

	api := app.Group("/api/payments")
	api.Use(auth.AuthMiddleware)
	api.Get("/", GetPaymentsAPI)
	api.Post("/", CreatePaymentAPI)
	api.Post("/proof", UploadProofAPI)
	api.Get("/:id", GetPaymentAPI)
	api.Post("/:id/approve", ApprovePaymentAPI)
	api.Post("/:id/reject", RejectPaymentAPI)
	api.Post("/:id/fraud-check", FraudCheckAPI)
}
