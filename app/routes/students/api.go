package students

import (
	"database/sql"
	"fmt"

	"github.com/amilmether/fundEd-Web/app/config"
	"github.com/amilmether/fundEd-Web/app/database"
	"github.com/amilmether/fundEd-Web/app/models"
	"github.com/amilmether/fundEd-Web/app/routes/auth"
	"github.com/gofiber/fiber/v2"
)

// GetStudentsAPI returns all students in the representative's scope.
func GetStudentsAPI(c *fiber.Ctx) error {
	students, err := database.GetStudents(config.GetDB(), auth.Scope(c))
	if err != nil {
		return c.Status(500).JSON(fiber.Map{
			"success": false,
			"error":   "Failed to fetch students",
		})
	}
	return c.JSON(fiber.Map{
		"success":  true,
		"students": students,
		"count":    len(students),
	})
}

// GetStudentAPI returns a single student.
func GetStudentAPI(c *fiber.Ctx) error {
	student, err := database.GetStudentByID(config.GetDB(), auth.Scope(c), c.Params("id"))
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
	return c.JSON(fiber.Map{
		"success": true,
		"student": student,
	})
}

// CreateStudentAPI registers a single student.
func CreateStudentAPI(c *fiber.Ctx) error {
	student := new(models.Student)
	if err := c.BodyParser(student); err != nil {
		return c.Status(400).JSON(fiber.Map{
			"success": false,
			"error":   "Invalid request body",
		})
	}
	if msg := validateStudent(student); msg != "" {
		return c.Status(400).JSON(fiber.Map{
			"success": false,
			"error":   msg,
		})
	}

	err := database.CreateStudent(config.GetDB(), auth.Scope(c), student)
	if err == database.ErrDuplicateRoll {
		return c.Status(409).JSON(fiber.Map{
			"success": false,
			"error":   err.Error(),
		})
	}
	if err != nil {
		return c.Status(500).JSON(fiber.Map{
			"success": false,
			"error":   "Failed to create student",
		})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"student": student,
	})
}

// BulkCreateStudentsAPI registers a batch of students. Rows are inserted
// one by one; a failing row is reported and the rest proceed.
func BulkCreateStudentsAPI(c *fiber.Ctx) error {
	var batch []models.Student
	if err := c.BodyParser(&batch); err != nil {
		return c.Status(400).JSON(fiber.Map{
			"success": false,
			"error":   "Invalid request body",
		})
	}
	if len(batch) == 0 {
		return c.Status(400).JSON(fiber.Map{
			"success": false,
			"error":   "No students provided",
		})
	}

	db := config.GetDB()
	scope := auth.Scope(c)

	var created []models.Student
	var failures []string
	for i := range batch {
		student := &batch[i]
		if msg := validateStudent(student); msg != "" {
			failures = append(failures, fmt.Sprintf("row %d: %s", i+1, msg))
			continue
		}
		if err := database.CreateStudent(db, scope, student); err != nil {
			failures = append(failures, fmt.Sprintf("row %d (%s): %v", i+1, student.RollNo, err))
			continue
		}
		created = append(created, *student)
	}

	return c.JSON(fiber.Map{
		"success":  true,
		"created":  len(created),
		"failed":   len(failures),
		"failures": failures,
		"students": created,
	})
}

// UpdateStudentAPI updates a student's details. Existing payment rows keep
// their name and roll snapshots.
func UpdateStudentAPI(c *fiber.Ctx) error {
	student := new(models.Student)
	if err := c.BodyParser(student); err != nil {
		return c.Status(400).JSON(fiber.Map{
			"success": false,
			"error":   "Invalid request body",
		})
	}
	student.ID = c.Params("id")
	if msg := validateStudent(student); msg != "" {
		return c.Status(400).JSON(fiber.Map{
			"success": false,
			"error":   msg,
		})
	}

	err := database.UpdateStudent(config.GetDB(), auth.Scope(c), student)
	if err == sql.ErrNoRows {
		return c.Status(404).JSON(fiber.Map{
			"success": false,
			"error":   "Student not found",
		})
	}
	if err == database.ErrDuplicateRoll {
		return c.Status(409).JSON(fiber.Map{
			"success": false,
			"error":   err.Error(),
		})
	}
	if err != nil {
		return c.Status(500).JSON(fiber.Map{
			"success": false,
			"error":   "Failed to update student",
		})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Student updated successfully",
	})
}

// DeleteStudentAPI removes a student. Payment and distribution history is
// untouched.
func DeleteStudentAPI(c *fiber.Ctx) error {
	err := database.DeleteStudent(config.GetDB(), auth.Scope(c), c.Params("id"))
	if err == sql.ErrNoRows {
		return c.Status(404).JSON(fiber.Map{
			"success": false,
			"error":   "Student not found",
		})
	}
	if err != nil {
		return c.Status(500).JSON(fiber.Map{
			"success": false,
			"error":   "Failed to delete student",
		})
	}
	return c.JSON(fiber.Map{
		"success": true,
		"message": "Student deleted successfully",
	})
}

func validateStudent(student *models.Student) string {
	if student.RollNo == "" {
		return "Roll number is required"
	}
	if student.Name == "" {
		return "Name is required"
	}
	if student.Email == "" {
		return "Email is required"
	}
	return ""
}
