package main

import (
	"log"
	"os"

	"github.com/amilmether/fundEd-Web/app/config"
	"github.com/amilmether/fundEd-Web/app/database"
	"github.com/amilmether/fundEd-Web/app/routes/auth"
	"github.com/amilmether/fundEd-Web/app/routes/dashboard"
	"github.com/amilmether/fundEd-Web/app/routes/events"
	"github.com/amilmether/fundEd-Web/app/routes/payments"
	"github.com/amilmether/fundEd-Web/app/routes/prints"
	"github.com/amilmether/fundEd-Web/app/routes/qrcodes"
	"github.com/amilmether/fundEd-Web/app/routes/students"
	"github.com/amilmether/fundEd-Web/app/services"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/joho/godotenv"
)

// customErrorHandler renders every error as a JSON failure notice
func customErrorHandler(c *fiber.Ctx, err error) error {
	// Status code defaults to 500
	code := fiber.StatusInternalServerError

	// Retrieve the custom status code if it's a *fiber.Error
	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
	}

	return c.Status(code).JSON(fiber.Map{
		"success": false,
		"error":   err.Error(),
		"code":    code,
	})
}

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, reading configuration from environment")
	}

	// Initialize database
	config.InitDB()
	defer config.GetDB().Close()

	// Run database migrations
	if err := database.RunMigrations(config.GetDB()); err != nil {
		log.Fatal("Failed to run migrations:", err)
	}

	// Wire external collaborators
	gen := services.NewGeminiClient(config.AppConfig.AI)
	notifier := services.NewNotifier(gen, services.NewSMTPMailer(config.AppConfig.SMTP))
	fraudChecker := services.NewFraudChecker(gen)

	// Start background reminder scheduler
	services.StartScheduler(config.GetDB(), notifier)

	// Create Fiber app
	app := fiber.New(fiber.Config{
		ErrorHandler: customErrorHandler,
	})

	// Middleware
	app.Use(logger.New())
	app.Use(cors.New())

	// Setup auth routes
	auth.SetupAuthRoutes(app)

	// Setup dashboard routes
	dashboard.SetupDashboardRoutes(app)

	// Setup events routes
	events.SetupEventsRoutes(app)

	// Setup students routes
	students.SetupStudentsRoutes(app)

	// Setup payments routes
	payments.SetupPaymentsRoutes(app, notifier, fraudChecker)

	// Setup print distribution routes
	prints.SetupPrintsRoutes(app, notifier)

	// Setup QR code routes
	qrcodes.SetupQrCodesRoutes(app)

	// Catch-all route for 404 errors (must be last)
	app.Use("*", func(c *fiber.Ctx) error {
		return fiber.NewError(fiber.StatusNotFound, "Not found")
	})

	// Start server
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	log.Println("Server starting on :" + port)
	log.Fatal(app.Listen(":" + port))
}
