package prints

import (
	"context"
	"database/sql"
	"log"

	"github.com/amilmether/fundEd-Web/app/config"
	"github.com/amilmether/fundEd-Web/app/database"
	"github.com/amilmether/fundEd-Web/app/models"
	"github.com/amilmether/fundEd-Web/app/routes/auth"
	"github.com/amilmether/fundEd-Web/app/services"
	"github.com/gofiber/fiber/v2"
)

// GetEligibleStudentsAPI returns students who paid for a print-category
// event and have not yet received their print.
func GetEligibleStudentsAPI(c *fiber.Ctx) error {
	eventID := c.Query("event_id")
	if eventID == "" {
		return c.Status(400).JSON(fiber.Map{
			"success": false,
			"error":   "event_id query parameter is required",
		})
	}

	db := config.GetDB()
	scope := auth.Scope(c)

	paid, err := database.GetPaidStudentsForEvent(db, scope, eventID)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{
			"success": false,
			"error":   "Failed to fetch paid students",
		})
	}
	distributedIDs, err := database.GetDistributedStudentIDs(db, scope, eventID)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{
			"success": false,
			"error":   "Failed to fetch distributions",
		})
	}

	eligible := eligibleStudents(paid, distributedIDs)
	return c.JSON(fiber.Map{
		"success":  true,
		"students": eligible,
		"count":    len(eligible),
	})
}

type distributeRequest struct {
	StudentID string `json:"student_id"`
	EventID   string `json:"event_id"`
}

// DistributePrintAPI records that a student received their print and
// notifies them. The distribution row stands even if the email fails.
func DistributePrintAPI(c *fiber.Ctx) error {
	req := new(distributeRequest)
	if err := c.BodyParser(req); err != nil {
		return c.Status(400).JSON(fiber.Map{
			"success": false,
			"error":   "Invalid request body",
		})
	}
	if req.StudentID == "" || req.EventID == "" {
		return c.Status(400).JSON(fiber.Map{
			"success": false,
			"error":   "student_id and event_id are required",
		})
	}

	db := config.GetDB()
	scope := auth.Scope(c)

	event, err := database.GetEventByID(db, scope, req.EventID)
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
	if event.Category != models.CategoryPrint {
		return c.Status(400).JSON(fiber.Map{
			"success": false,
			"error":   "Event is not a print event",
		})
	}

	student, err := database.GetStudentByID(db, scope, req.StudentID)
	if err == sql.ErrNoRows {
		return c.Status(404).JSON(fiber.Map{
			"success": false,
			"error":   "Student not found",
		})
	}
	if err != nil {
		return c.Status(500).JSON(fiber.Map{
			"success": false,
			"error":   "Failed to fetch student",
		})
	}

	paid, err := database.GetPaidStudentsForEvent(db, scope, req.EventID)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{
			"success": false,
			"error":   "Failed to check payment status",
		})
	}
	hasPaid := false
	for _, s := range paid {
		if s.ID == student.ID {
			hasPaid = true
			break
		}
	}
	if !hasPaid {
		return c.Status(409).JSON(fiber.Map{
			"success": false,
			"error":   "Student has no paid payment for this event",
		})
	}

	dist := &models.PrintDistribution{
		Scope:       scope,
		StudentID:   student.ID,
		StudentName: student.Name,
		StudentRoll: student.RollNo,
		EventID:     event.ID,
		EventName:   event.Name,
	}
	err = database.CreatePrintDistribution(db, dist)
	if err == database.ErrAlreadyDistributed {
		return c.Status(409).JSON(fiber.Map{
			"success": false,
			"error":   err.Error(),
		})
	}
	if err != nil {
		return c.Status(500).JSON(fiber.Map{
			"success": false,
			"error":   "Failed to record distribution",
		})
	}

	// Best-effort notification; the row is never rolled back on failure.
	go func() {
		result := notifier.Send(context.Background(), services.TemplatePrintDistributed, services.TemplateParams{
			StudentName:  student.Name,
			StudentEmail: student.Email,
			EventName:    event.Name,
		})
		if !result.Success {
			log.Printf("Print notification for %s failed: %s", student.Email, result.Message)
		}
	}()

	return c.JSON(fiber.Map{
		"success":      true,
		"distribution": dist,
	})
}

// GetDistributionsAPI returns the distribution history for an event.
func GetDistributionsAPI(c *fiber.Ctx) error {
	eventID := c.Query("event_id")
	if eventID == "" {
		return c.Status(400).JSON(fiber.Map{
			"success": false,
			"error":   "event_id query parameter is required",
		})
	}

	dists, err := database.GetDistributionsByEvent(config.GetDB(), auth.Scope(c), eventID)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{
			"success": false,
			"error":   "Failed to fetch distributions",
		})
	}
	return c.JSON(fiber.Map{
		"success":       true,
		"distributions": dists,
		"count":         len(dists),
	})
}
