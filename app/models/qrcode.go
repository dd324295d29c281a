package models

import "time"

// QrCode holds metadata for an uploaded payment QR image. Events reference
// the image URL when the qr_code payment option is enabled.
type QrCode struct {
	ID        string    `json:"id"`
	Scope     string    `json:"scope"`
	Name      string    `json:"name"`
	ImageURL  string    `json:"image_url"`
	CreatedAt time.Time `json:"created_at"`
}
