package models

// PaymentStatus defines the lifecycle status of a payment.
type PaymentStatus string

const (
	PaymentPending             PaymentStatus = "pending"
	PaymentVerificationPending PaymentStatus = "verification_pending"
	PaymentPaid                PaymentStatus = "paid"
	PaymentFailed              PaymentStatus = "failed"
)

// Terminal reports whether the status is final by convention.
// Terminal payments are never reopened.
func (s PaymentStatus) Terminal() bool {
	return s == PaymentPaid || s == PaymentFailed
}

// Effective reports whether the payment still counts towards an event.
// A failed payment frees the student to submit again.
func (s PaymentStatus) Effective() bool {
	return s != PaymentFailed
}

// Verifiable reports whether the payment can still be approved or rejected.
// Approve and reject are only reachable from verification_pending; pending
// and terminal payments are refused.
func (s PaymentStatus) Verifiable() bool {
	return s == PaymentVerificationPending
}

// PaymentMethod defines how a payment was made.
type PaymentMethod string

const (
	MethodGateway PaymentMethod = "gateway"
	MethodQRCode  PaymentMethod = "qr_code"
	MethodCash    PaymentMethod = "cash"
)

// Valid reports whether the method is one of the known payment methods.
func (m PaymentMethod) Valid() bool {
	switch m {
	case MethodGateway, MethodQRCode, MethodCash:
		return true
	}
	return false
}

// InitialStatus returns the status a freshly created payment starts in.
// Gateway confirmations are treated as authoritative immediately; QR and
// cash payments wait for the class representative to verify them.
func (m PaymentMethod) InitialStatus() PaymentStatus {
	if m == MethodGateway {
		return PaymentPaid
	}
	return PaymentVerificationPending
}

// EventCategory defines the kind of an event.
type EventCategory string

const (
	CategoryNormal EventCategory = "normal"
	CategoryPrint  EventCategory = "print"
)

// Valid reports whether the category is known.
func (c EventCategory) Valid() bool {
	return c == CategoryNormal || c == CategoryPrint
}
