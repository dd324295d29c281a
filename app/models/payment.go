package models

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Payment represents a single payment made by a student for an event.
// Student name/roll and event name are snapshots taken at creation time and
// are never updated if the source records later change. Amount is a snapshot
// of the event cost and is immutable after creation.
type Payment struct {
	ID            string        `json:"id"`
	Scope         string        `json:"scope"`
	StudentID     string        `json:"student_id"`
	StudentName   string        `json:"student_name"`
	StudentRoll   string        `json:"student_roll"`
	EventID       string        `json:"event_id"`
	EventName     string        `json:"event_name"`
	Amount        float64       `json:"amount"`
	Method        PaymentMethod `json:"payment_method"`
	TransactionID string        `json:"transaction_id"`
	ProofURL      string        `json:"proof_url,omitempty"`
	Status        PaymentStatus `json:"status"`
	PaymentDate   time.Time     `json:"payment_date"`
}

var (
	// ErrInvalidMethod is returned for an unknown payment method.
	ErrInvalidMethod = errors.New("invalid payment method")
	// ErrMethodNotAccepted is returned when the event does not accept the method.
	ErrMethodNotAccepted = errors.New("payment method not accepted for this event")
	// ErrProofRequired is returned for QR payments submitted without a proof-of-payment upload.
	ErrProofRequired = errors.New("proof of payment is required for QR payments")
)

// NewPayment builds a payment for a student against an event. The amount is
// copied from the event cost, the transaction reference is freshly generated,
// and the initial status follows from the method: gateway payments start
// paid, QR and cash payments start pending verification.
func NewPayment(student *Student, event *Event, method PaymentMethod, proofURL string) (*Payment, error) {
	if !method.Valid() {
		return nil, ErrInvalidMethod
	}
	if !event.Accepts(method) {
		return nil, ErrMethodNotAccepted
	}
	if method == MethodQRCode && proofURL == "" {
		return nil, ErrProofRequired
	}
	if method != MethodQRCode {
		proofURL = ""
	}

	return &Payment{
		Scope:         event.Scope,
		StudentID:     student.ID,
		StudentName:   student.Name,
		StudentRoll:   student.RollNo,
		EventID:       event.ID,
		EventName:     event.Name,
		Amount:        event.Cost,
		Method:        method,
		TransactionID: uuid.New().String(),
		ProofURL:      proofURL,
		Status:        method.InitialStatus(),
		PaymentDate:   time.Now(),
	}, nil
}
