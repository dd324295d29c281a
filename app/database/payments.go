package database

import (
	"database/sql"
	"errors"

	"github.com/amilmether/fundEd-Web/app/models"
)

var (
	// ErrNotVerifiable is returned when a status transition is attempted on a
	// payment that is not pending verification. Approve and reject are only
	// reachable from verification_pending; anything else is rejected.
	ErrNotVerifiable = errors.New("payment is not pending verification")
	// ErrDuplicatePayment is returned when the student already has an
	// effective (non-failed) payment for the event.
	ErrDuplicatePayment = errors.New("student already has a payment for this event")
)

// CreatePayment persists a payment built by models.NewPayment.
func CreatePayment(db *sql.DB, payment *models.Payment) error {
	query := `
		INSERT INTO payments (scope, student_id, student_name, student_roll, event_id, event_name,
			amount, payment_method, transaction_id, proof_url, status, payment_date)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING id
	`
	return db.QueryRow(query,
		payment.Scope,
		payment.StudentID,
		payment.StudentName,
		payment.StudentRoll,
		payment.EventID,
		payment.EventName,
		payment.Amount,
		payment.Method,
		payment.TransactionID,
		payment.ProofURL,
		payment.Status,
		payment.PaymentDate,
	).Scan(&payment.ID)
}

// HasEffectivePayment reports whether the student has a non-failed payment
// for the event.
func HasEffectivePayment(db *sql.DB, scope, studentID, eventID string) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM payments
			WHERE scope = $1 AND student_id = $2 AND event_id = $3 AND status <> 'failed'
		)
	`
	var exists bool
	err := db.QueryRow(query, scope, studentID, eventID).Scan(&exists)
	return exists, err
}

// GetPaymentByID retrieves a single payment within a scope.
func GetPaymentByID(db *sql.DB, scope, id string) (*models.Payment, error) {
	query := selectPayments + ` WHERE scope = $1 AND id = $2`
	return scanPayment(db.QueryRow(query, scope, id))
}

// GetPaymentsByEvent retrieves all payments for an event, newest first.
func GetPaymentsByEvent(db *sql.DB, scope, eventID string) ([]models.Payment, error) {
	query := selectPayments + ` WHERE scope = $1 AND event_id = $2 ORDER BY payment_date DESC`
	return queryPayments(db, query, scope, eventID)
}

// GetPaymentsByStudent retrieves all payments made by a student, newest first.
func GetPaymentsByStudent(db *sql.DB, scope, studentID string) ([]models.Payment, error) {
	query := selectPayments + ` WHERE scope = $1 AND student_id = $2 ORDER BY payment_date DESC`
	return queryPayments(db, query, scope, studentID)
}

// UpdatePaymentStatus moves a payment out of verification_pending. The WHERE
// clause enforces models.PaymentStatus.Verifiable as a conditional update:
// under concurrent operators the first writer wins and the second receives
// ErrNotVerifiable. The amount is never touched.
func UpdatePaymentStatus(db *sql.DB, scope, id string, status models.PaymentStatus) error {
	query := `
		UPDATE payments
		SET status = $1
		WHERE scope = $2 AND id = $3 AND status = 'verification_pending'
	`
	result, err := db.Exec(query, status, scope, id)
	if err != nil {
		return err
	}
	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		if _, err := GetPaymentByID(db, scope, id); err != nil {
			return err
		}
		return ErrNotVerifiable
	}
	return nil
}

// GetRecentPayments retrieves the most recent payments in a scope.
func GetRecentPayments(db *sql.DB, scope string, limit int) ([]models.Payment, error) {
	query := selectPayments + ` WHERE scope = $1 ORDER BY payment_date DESC LIMIT $2`
	return queryPayments(db, query, scope, limit)
}

const selectPayments = `
	SELECT id, scope, student_id, student_name, student_roll, event_id, event_name,
		amount, payment_method, transaction_id, proof_url, status, payment_date
	FROM payments`

func scanPayment(row rowScanner) (*models.Payment, error) {
	var p models.Payment
	err := row.Scan(
		&p.ID, &p.Scope, &p.StudentID, &p.StudentName, &p.StudentRoll,
		&p.EventID, &p.EventName, &p.Amount, &p.Method, &p.TransactionID,
		&p.ProofURL, &p.Status, &p.PaymentDate,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func queryPayments(db *sql.DB, query string, args ...interface{}) ([]models.Payment, error) {
	rows, err := db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var payments []models.Payment
	for rows.Next() {
		p, err := scanPayment(rows)
		if err != nil {
			return nil, err
		}
		payments = append(payments, *p)
	}
	return payments, rows.Err()
}
