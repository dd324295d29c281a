package database

import (
	"database/sql"

	"github.com/amilmether/fundEd-Web/app/models"
)

// CreateQrCode stores QR image metadata under the given scope.
func CreateQrCode(db *sql.DB, scope string, qr *models.QrCode) error {
	query := `
		INSERT INTO qrcodes (scope, name, image_url, created_at)
		VALUES ($1, $2, $3, NOW())
		RETURNING id, created_at
	`
	qr.Scope = scope
	return db.QueryRow(query, scope, qr.Name, qr.ImageURL).Scan(&qr.ID, &qr.CreatedAt)
}

// GetQrCodes retrieves all QR codes in a scope, newest first.
func GetQrCodes(db *sql.DB, scope string) ([]models.QrCode, error) {
	query := `
		SELECT id, scope, name, image_url, created_at
		FROM qrcodes
		WHERE scope = $1
		ORDER BY created_at DESC
	`
	rows, err := db.Query(query, scope)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var qrcodes []models.QrCode
	for rows.Next() {
		var qr models.QrCode
		if err := rows.Scan(&qr.ID, &qr.Scope, &qr.Name, &qr.ImageURL, &qr.CreatedAt); err != nil {
			return nil, err
		}
		qrcodes = append(qrcodes, qr)
	}
	return qrcodes, rows.Err()
}

// GetQrCodeByID retrieves a single QR code within a scope.
func GetQrCodeByID(db *sql.DB, scope, id string) (*models.QrCode, error) {
	query := `SELECT id, scope, name, image_url, created_at FROM qrcodes WHERE scope = $1 AND id = $2`
	var qr models.QrCode
	err := db.QueryRow(query, scope, id).Scan(&qr.ID, &qr.Scope, &qr.Name, &qr.ImageURL, &qr.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &qr, nil
}

// DeleteQrCode removes QR metadata by ID.
func DeleteQrCode(db *sql.DB, scope, id string) error {
	result, err := db.Exec(`DELETE FROM qrcodes WHERE scope = $1 AND id = $2`, scope, id)
	if err != nil {
		return err
	}
	return requireRow(result)
}
