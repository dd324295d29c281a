package qrcodes

import (
	"database/sql"

	"github.com/amilmether/fundEd-Web/app/config"
	"github.com/amilmether/fundEd-Web/app/database"
	"github.com/amilmether/fundEd-Web/app/models"
	"github.com/amilmether/fundEd-Web/app/routes/auth"
	"github.com/amilmether/fundEd-Web/app/services"
	"github.com/gofiber/fiber/v2"
)

// GetQrCodesAPI returns all QR codes in the representative's scope.
func GetQrCodesAPI(c *fiber.Ctx) error {
	qrcodes, err := database.GetQrCodes(config.GetDB(), auth.Scope(c))
	if err != nil {
		return c.Status(500).JSON(fiber.Map{
			"success": false,
			"error":   "Failed to fetch QR codes",
		})
	}
	return c.JSON(fiber.Map{
		"success": true,
		"qrcodes": qrcodes,
	})
}

// CreateQrCodeAPI uploads a QR image to blob storage and stores its
// metadata. Expects multipart form fields: name, file.
func CreateQrCodeAPI(c *fiber.Ctx) error {
	name := c.FormValue("name")
	if name == "" {
		return c.Status(400).JSON(fiber.Map{
			"success": false,
			"error":   "Name is required",
		})
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return c.Status(400).JSON(fiber.Map{
			"success": false,
			"error":   "A QR image upload is required",
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

	url, err := services.UploadFileToS3(file, fileHeader.Filename, "qrcodes")
	if err != nil {
		return c.Status(500).JSON(fiber.Map{
			"success": false,
			"error":   "Failed to store QR image",
		})
	}

	qr := &models.QrCode{Name: name, ImageURL: url}
	if err := database.CreateQrCode(config.GetDB(), auth.Scope(c), qr); err != nil {
		return c.Status(500).JSON(fiber.Map{
			"success": false,
			"error":   "Failed to save QR code",
		})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"qrcode":  qr,
	})
}

// GetQrCodeAPI returns a single QR code.
func GetQrCodeAPI(c *fiber.Ctx) error {
	qr, err := database.GetQrCodeByID(config.GetDB(), auth.Scope(c), c.Params("id"))
	if err == sql.ErrNoRows {
		return c.Status(404).JSON(fiber.Map{
			"success": false,
			"error":   "QR code not found",
		})
	}
	if err != nil {
		return c.Status(500).JSON(fiber.Map{
			"success": false,
			"error":   "Failed to fetch QR code",
		})
	}
	return c.JSON(fiber.Map{
		"success": true,
		"qrcode":  qr,
	})
}

// DeleteQrCodeAPI removes QR metadata. The stored image is left in the
// bucket; events referencing the URL keep working.
func DeleteQrCodeAPI(c *fiber.Ctx) error {
	err := database.DeleteQrCode(config.GetDB(), auth.Scope(c), c.Params("id"))
	if err == sql.ErrNoRows {
		return c.Status(404).JSON(fiber.Map{
			"success": false,
			"error":   "QR code not found",
		})
	}
	if err != nil {
		return c.Status(500).JSON(fiber.Map{
			"success": false,
			"error":   "Failed to delete QR code",
		})
	}
	return c.JSON(fiber.Map{
		"success": true,
		"message": "QR code deleted successfully",
	})
}
