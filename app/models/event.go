package models

import "time"

// Event represents a fundable event created by a class representative.
type Event struct {
	ID             string          `json:"id"`
	Scope          string          `json:"scope"`
	Name           string          `json:"name"`
	Description    string          `json:"description"`
	Cost           float64         `json:"cost"`
	Deadline       time.Time       `json:"deadline"`
	Category       EventCategory   `json:"category"`
	PaymentOptions []PaymentMethod `json:"payment_options"`
	QRCodeURL      string          `json:"qr_code_url,omitempty"`
	TotalCollected float64         `json:"total_collected"`
	TotalPending   float64         `json:"total_pending"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

// Accepts reports whether the event allows payments with the given method.
func (e *Event) Accepts(m PaymentMethod) bool {
	for _, opt := range e.PaymentOptions {
		if opt == m {
			return true
		}
	}
	return false
}
