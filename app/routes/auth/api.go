package auth

import (
	"time"

	"github.com/amilmether/fundEd-Web/app/config"
	"github.com/amilmether/fundEd-Web/app/database"
	"github.com/gofiber/fiber/v2"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginAPI authenticates a class representative and issues a JWT.
func LoginAPI(c *fiber.Ctx) error {
	req := new(loginRequest)
	if err := c.BodyParser(req); err != nil {
		return c.Status(400).JSON(fiber.Map{
			"success": false,
			"error":   "Invalid request body",
		})
	}

	user, err := database.GetUserByEmail(config.GetDB(), req.Email)
	if err != nil || !CheckPasswordHash(req.Password, user.Password) {
		return c.Status(401).JSON(fiber.Map{
			"success": false,
			"error":   "Invalid email or password",
		})
	}

	token, err := GenerateJWT(user.ID, user.Email, user.Name, user.Scope)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{
			"success": false,
			"error":   "Failed to generate token",
		})
	}

	c.Cookie(&fiber.Cookie{
		Name:     "jwt_token",
		Value:    token,
		Expires:  time.Now().Add(24 * time.Hour),
		HTTPOnly: true,
		SameSite: "Lax",
	})

	return c.JSON(fiber.Map{
		"success": true,
		"token":   token,
		"user":    user,
	})
}

// LogoutAPI clears the auth cookie.
func LogoutAPI(c *fiber.Ctx) error {
	c.Cookie(&fiber.Cookie{
		Name:     "jwt_token",
		Value:    "",
		Expires:  time.Now().Add(-time.Hour),
		HTTPOnly: true,
	})
	return c.JSON(fiber.Map{"success": true})
}

// MeAPI returns the authenticated representative.
func MeAPI(c *fiber.Ctx) error {
	user, err := database.GetUserByID(config.GetDB(), c.Locals("user_id").(string))
	if err != nil {
		return c.Status(404).JSON(fiber.Map{
			"success": false,
			"error":   "User not found",
		})
	}
	return c.JSON(fiber.Map{
		"success": true,
		"user":    user,
	})
}

type changePasswordRequest struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

// ChangePasswordAPI updates the representative's password.
func ChangePasswordAPI(c *fiber.Ctx) error {
	req := new(changePasswordRequest)
	if err := c.BodyParser(req); err != nil {
		return c.Status(400).JSON(fiber.Map{
			"success": false,
			"error":   "Invalid request body",
		})
	}
	if len(req.NewPassword) < 8 {
		return c.Status(400).JSON(fiber.Map{
			"success": false,
			"error":   "Password must be at least 8 characters",
		})
	}

	db := config.GetDB()
	user, err := database.GetUserByID(db, c.Locals("user_id").(string))
	if err != nil {
		return c.Status(404).JSON(fiber.Map{
			"success": false,
			"error":   "User not found",
		})
	}
	if !CheckPasswordHash(req.CurrentPassword, user.Password) {
		return c.Status(401).JSON(fiber.Map{
			"success": false,
			"error":   "Current password is incorrect",
		})
	}

	hashed, err := HashPassword(req.NewPassword)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{
			"success": false,
			"error":   "Failed to update password",
		})
	}
	if err := database.UpdateUserPassword(db, user.ID, hashed); err != nil {
		return c.Status(500).JSON(fiber.Map{
			"success": false,
			"error":   "Failed to update password",
		})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Password updated successfully",
	})
}
