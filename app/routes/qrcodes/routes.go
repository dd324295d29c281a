package qrcodes

import (
	"github.com/amilmether/fundEd-Web/app/routes/auth"
	"github.com/gofiber/fiber/v2"
)

// SetupQrCodesRoutes sets up the QR code metadata routes.
func SetupQrCodesRoutes(app *fiber.App) {
	api := app.Group("/api/qrcodes")
	api.Use(auth.AuthMiddleware)
	api.Get("/", GetQrCodesAPI)
	api.Post("/", CreateQrCodeAPI)
	api.Get("/:id", GetQrCodeAPI)
	api.Delete("/:id", DeleteQrCodeAPI)
}
