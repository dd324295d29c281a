package payments

import (
	"context"
	"database/sql"
	"fmt"
	"log"

	"github.com/amilmether/fundEd-Web/app/config"
	"github.com/amilmether/fundEd-Web/app/database"
	"github.com/amilmether/fundEd-Web/app/models"
	"github.com/amilmether/fundEd-Web/app/routes/auth"
	"github.com/amilmether/fundEd-Web/app/services"
	"github.com/gofiber/fiber/v2"
)

type createPaymentRequest struct {
	StudentID string               `json:"student_id"`
	EventID   string               `json:"event_id"`
	Method    models.PaymentMethod `json:"payment_method"`
	ProofURL  string               `json:"proof_url"`
}

// CreatePaymentAPI records a payment. The amount is snapshotted from the
// event cost and the initial status follows from the method. For methods
// that need verification a submission email is dispatched best-effort after
// the row is written.
func CreatePaymentAPI(c *fiber.Ctx) error {
	req := new(createPaymentRequest)
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

	exists, err := database.HasEffectivePayment(db, scope, student.ID, event.ID)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{
			"success": false,
			"error":   "Failed to check existing payments",
		})
	}
	if exists {
		return c.Status(409).JSON(fiber.Map{
			"success": false,
			"error":   database.ErrDuplicatePayment.Error(),
		})
	}

	payment, err := models.NewPayment(student, event, req.Method, req.ProofURL)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{
			"success": false,
			"error":   err.Error(),
		})
	}

	if err := database.CreatePayment(db, payment); err != nil {
		return c.Status(500).JSON(fiber.Map{
			"success": false,
			"error":   "Failed to create payment",
		})
	}

	// Best-effort: the email never blocks or reverses the ledger write.
	if payment.Status == models.PaymentVerificationPending {
		go dispatch(services.TemplatePaymentSubmitted, services.TemplateParams{
			StudentName:   student.Name,
			StudentEmail:  student.Email,
			EventName:     event.Name,
			Amount:        payment.Amount,
			PaymentMethod: string(payment.Method),
		})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"payment": payment,
	})
}

// GetPaymentsAPI lists payments filtered by event or student.
func GetPaymentsAPI(c *fiber.Ctx) error {
	db := config.GetDB()
	scope := auth.Scope(c)

	eventID := c.Query("event_id")
	studentID := c.Query("student_id")

	var payments []models.Payment
	var err error
	switch {
	case eventID != "":
		payments, err = database.GetPaymentsByEvent(db, scope, eventID)
	case studentID != "":
		payments, err = database.GetPaymentsByStudent(db, scope, studentID)
	default:
		return c.Status(400).JSON(fiber.Map{
			"success": false,
			"error":   "event_id or student_id query parameter is required",
		})
	}
	if err != nil {
		return c.Status(500).JSON(fiber.Map{
			"success": false,
			"error":   "Failed to fetch payments",
		})
	}

	return c.JSON(fiber.Map{
		"success":  true,
		"payments": payments,
		"count":    len(payments),
	})
}

// GetPaymentAPI returns a single payment.
func GetPaymentAPI(c *fiber.Ctx) error {
	payment, err := database.GetPaymentByID(config.GetDB(), auth.Scope(c), c.Params("id"))
	if err == sql.ErrNoRows {
		return c.Status(404).JSON(fiber.Map{
			"success": false,
			"error":   "Payment not found",
		})
	}
	if err != nil {
		return c.Status(500).JSON(fiber.Map{
			"success": false,
			"error":   "Failed to fetch payment",
		})
	}
	return c.JSON(fiber.Map{
		"success": true,
		"payment": payment,
	})
}

// ApprovePaymentAPI moves a verification-pending payment to paid and
// dispatches the approval email. Approving a payment in any other status is
// rejected with 409.
func ApprovePaymentAPI(c *fiber.Ctx) error {
	return settlePaymentAPI(c, models.PaymentPaid, "Payment approved")
}

// RejectPaymentAPI moves a verification-pending payment to failed. No
// notification is sent on rejection.
func RejectPaymentAPI(c *fiber.Ctx) error {
	return settlePaymentAPI(c, models.PaymentFailed, "Payment rejected")
}

func settlePaymentAPI(c *fiber.Ctx, target models.PaymentStatus, message string) error {
	db := config.GetDB()
	scope := auth.Scope(c)
	id := c.Params("id")

	payment, err := database.GetPaymentByID(db, scope, id)
	if err == sql.ErrNoRows {
		return c.Status(404).JSON(fiber.Map{
			"success": false,
			"error":   "Payment not found",
		})
	}
	if err != nil {
		return c.Status(500).JSON(fiber.Map{
			"success": false,
			"error":   "Failed to fetch payment",
		})
	}

	if !payment.Status.Verifiable() {
		return c.Status(409).JSON(fiber.Map{
			"success": false,
			"error":   database.ErrNotVerifiable.Error(),
		})
	}

	// The conditional update re-checks the status; under concurrent
	// operators the loser lands in transitionError with 409.
	if err := database.UpdatePaymentStatus(db, scope, id, target); err != nil {
		return transitionError(c, err)
	}

	if kind, ok := transitionNotice(target); ok {
		student, err := database.GetStudentByID(db, scope, payment.StudentID)
		if err == nil {
			go dispatch(kind, services.TemplateParams{
				StudentName:  payment.StudentName,
				StudentEmail: student.Email,
				EventName:    payment.EventName,
				Amount:       payment.Amount,
			})
		} else {
			log.Printf("Settled payment %s but could not resolve student email: %v", id, err)
		}
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": message,
	})
}

// transitionNotice returns the email that follows a successful transition to
// the given status. Approvals notify the student; rejections are silent.
func transitionNotice(target models.PaymentStatus) (services.TemplateKind, bool) {
	if target == models.PaymentPaid {
		return services.TemplatePaymentApproved, true
	}
	return "", false
}

// UploadProofAPI stores a proof-of-payment screenshot and returns its URL.
func UploadProofAPI(c *fiber.Ctx) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return c.Status(400).JSON(fiber.Map{
			"success": false,
			"error":   "A file upload is required",
		})
	}
	file, err := fileHeader.Open()
	if err != nil {
		return c.Status(400).JSON(fiber.Map{
			"success": false,
			"error":   "Failed to read uploaded file",
		})
	}
	defer file.Close()

	url, err := services.UploadFileToS3(file, fileHeader.Filename, "proofs")
	if err != nil {
		return c.Status(500).JSON(fiber.Map{
			"success": false,
			"error":   "Failed to store proof of payment",
		})
	}

	return c.JSON(fiber.Map{
		"success":   true,
		"proof_url": url,
	})
}

type fraudCheckRequest struct {
	ScreenshotDataURI string `json:"screenshot_data_uri"`
}

// FraudCheckAPI runs the fraud-likelihood analysis for a payment.
func FraudCheckAPI(c *fiber.Ctx) error {
	req := new(fraudCheckRequest)
	_ = c.BodyParser(req) // screenshot is optional; an empty body is fine

	db := config.GetDB()
	scope := auth.Scope(c)

	payment, err := database.GetPaymentByID(db, scope, c.Params("id"))
	if err == sql.ErrNoRows {
		return c.Status(404).JSON(fiber.Map{
			"success": false,
			"error":   "Payment not found",
		})
	}
	if err != nil {
		return c.Status(500).JSON(fiber.Map{
			"success": false,
			"error":   "Failed to fetch payment",
		})
	}

	input := services.FraudInput{
		PaymentData: fmt.Sprintf("Transaction ID: %s, Amount: %.2f, Method: %s, Date: %s, Status: %s",
			payment.TransactionID, payment.Amount, payment.Method, payment.PaymentDate.Format("2006-01-02 15:04:05"), payment.Status),
		StudentInfo:       fmt.Sprintf("Roll: %s, Name: %s", payment.StudentRoll, payment.StudentName),
		ScreenshotDataURI: req.ScreenshotDataURI,
	}
	if req.ScreenshotDataURI == "" && payment.ProofURL != "" {
		input.PaymentData += fmt.Sprintf(", Proof URL: %s", payment.ProofURL)
	}

	if event, err := database.GetEventByID(db, scope, payment.EventID); err == nil {
		input.EventDetails = fmt.Sprintf("Name: %s, Cost: %.2f, Deadline: %s",
			event.Name, event.Cost, event.Deadline.Format("2006-01-02"))
	} else {
		input.EventDetails = fmt.Sprintf("Name: %s (event record no longer exists)", payment.EventName)
	}

	verdict, err := fraudChecker.Check(c.Context(), input)
	if err != nil {
		return c.Status(502).JSON(fiber.Map{
			"success": false,
			"error":   "Fraud analysis failed",
		})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"result":  verdict,
	})
}

func transitionError(c *fiber.Ctx, err error) error {
	if err == database.ErrNotVerifiable {
		return c.Status(409).JSON(fiber.Map{
			"success": false,
			"error":   err.Error(),
		})
	}
	if err == sql.ErrNoRows {
		return c.Status(404).JSON(fiber.Map{
			"success": false,
			"error":   "Payment not found",
		})
	}
	return c.Status(500).JSON(fiber.Map{
		"success": false,
		"error":   "Failed to update payment",
	})
}

func dispatch(kind services.TemplateKind, params services.TemplateParams) {
	result := notifier.Send(context.Background(), kind, params)
	if !result.Success {
		log.Printf("Notification %s for %s failed: %s", kind, params.StudentEmail, result.Message)
	}
}
