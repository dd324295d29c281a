package dashboard

import (
	"github.com/amilmether/fundEd-Web/app/config"
	"github.com/amilmether/fundEd-Web/app/database"
	"github.com/amilmether/fundEd-Web/app/routes/auth"
	"github.com/gofiber/fiber/v2"
)

// GetDashboardAPI returns collection totals and recent activity for the
// representative's scope.
func GetDashboardAPI(c *fiber.Ctx) error {
	stats, err := database.GetDashboardStats(config.GetDB(), auth.Scope(c))
	if err != nil {
		return c.Status(500).JSON(fiber.Map{
			"success": false,
			"error":   "Failed to fetch dashboard statistics",
		})
	}
	return c.JSON(fiber.Map{
		"success": true,
		"stats":   stats,
	})
}
