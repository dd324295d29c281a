package events

import (
	"database/sql"

	"github.com/amilmether/fundEd-Web/app/config"
	"github.com/amilmether/fundEd-Web/app/database"
	"github.com/amilmether/fundEd-Web/app/models"
	"github.com/amilmether/fundEd-Web/app/routes/auth"
	"github.com/gofiber/fiber/v2"
)

// GetEventsAPI returns all events in the representative's scope with
// collected/pending totals.
func GetEventsAPI(c *fiber.Ctx) error {
	events, err := database.GetEvents(config.GetDB(), auth.Scope(c))
	if err != nil {
		return c.Status(500).JSON(fiber.Map{
			"success": false,
			"error":   "Failed to fetch events",
		})
	}
	return c.JSON(fiber.Map{
		"success": true,
		"events":  events,
	})
}

// GetEventAPI returns a single event.
func GetEventAPI(c *fiber.Ctx) error {
	event, err := database.GetEventByID(config.GetDB(), auth.Scope(c), c.Params("id"))
	if err == sql.ErrNoRows {
		return c.Status(404).JSON(fiber.Map{
			"success": false,
			"error":   "Event not found",
		})
	}
	if err != nil {
		return c.Status(500).JSON(fiber.Map{
			"success": false,
			"error":   "Failed to fetch event",
		})
	}
	return c.JSON(fiber.Map{
		"success": true,
		"event":   event,
	})
}

// CreateEventAPI creates a new event
func CreateEventAPI(c *fiber.Ctx) error {
	event := new(models.Event)
	if err := c.BodyParser(event); err != nil {
		return c.Status(400).JSON(fiber.Map{
			"success": false,
			"error":   "Invalid request body",
		})
	}

	if msg := validateEvent(event); msg != "" {
		return c.Status(400).JSON(fiber.Map{
			"success": false,
			"error":   msg,
		})
	}

	if err := database.CreateEvent(config.GetDB(), auth.Scope(c), event); err != nil {
		return c.Status(500).JSON(fiber.Map{
			"success": false,
			"error":   "Failed to create event",
		})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"event":   event,
	})
}

// UpdateEventAPI updates an existing event
func UpdateEventAPI(c *fiber.Ctx) error {
	event := new(models.Event)
	if err := c.BodyParser(event); err != nil {
		return c.Status(400).JSON(fiber.Map{
			"success": false,
			"error":   "Invalid request body",
		})
	}
	event.ID = c.Params("id")

	if msg := validateEvent(event); msg != "" {
		return c.Status(400).JSON(fiber.Map{
			"success": false,
			"error":   msg,
		})
	}

	err := database.UpdateEvent(config.GetDB(), auth.Scope(c), event)
	if err == sql.ErrNoRows {
		return c.Status(404).JSON(fiber.Map{
			"success": false,
			"error":   "Event not found",
		})
	}
	if err != nil {
		return c.Status(500).JSON(fiber.Map{
			"success": false,
			"error":   "Failed to update event",
		})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Event updated successfully",
	})
}

// DeleteEventAPI deletes an event. Payments and distributions are not
// cascaded; they keep their event name snapshots.
func DeleteEventAPI(c *fiber.Ctx) error {
	err := database.DeleteEvent(config.GetDB(), auth.Scope(c), c.Params("id"))
	if err == sql.ErrNoRows {
		return c.Status(404).JSON(fiber.Map{
			"success": false,
			"error":   "Event not found",
		})
	}
	if err != nil {
		return c.Status(500).JSON(fiber.Map{
			"success": false,
			"error":   "Failed to delete event",
		})
	}
	return c.JSON(fiber.Map{
		"success": true,
		"message": "Event deleted successfully",
	})
}

func validateEvent(event *models.Event) string {
	if event.Name == "" {
		return "Event name is required"
	}
	if event.Cost <= 0 {
		return "Event cost must be greater than zero"
	}
	if event.Deadline.IsZero() {
		return "Event deadline is required"
	}
	if event.Category == "" {
		event.Category = models.CategoryNormal
	}
	if !event.Category.Valid() {
		return "Invalid event category"
	}
	if len(event.PaymentOptions) == 0 {
		return "At least one payment method must be accepted"
	}
	for _, m := range event.PaymentOptions {
		if !m.Valid() {
			return "Invalid payment method: " + string(m)
		}
	}
	if event.Accepts(models.MethodQRCode) && event.QRCodeURL == "" {
		return "A QR code image is required when QR payments are accepted"
	}
	return ""
}
