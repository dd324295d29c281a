package database

import (
	"database/sql"

	"github.com/amilmether/fundEd-Web/app/models"
)

// CreateUser registers a class representative account. The password must
// already be hashed.
func CreateUser(db *sql.DB, user *models.User) error {
	query := `
		INSERT INTO users (scope, name, email, password, created_at, updated_at)
		VALUES ($1, $2, $3, $4, NOW(), NOW())
		RETURNING id, created_at, updated_at
	`
	return db.QueryRow(query, user.Scope, user.Name, user.Email, user.Password).
		Scan(&user.ID, &user.CreatedAt, &user.UpdatedAt)
}

// GetUserByEmail looks up a representative by email.
func GetUserByEmail(db *sql.DB, email string) (*models.User, error) {
	query := `
		SELECT id, scope, name, email, password, created_at, updated_at
		FROM users
		WHERE email = $1
	`
	var u models.User
	err := db.QueryRow(query, email).
		Scan(&u.ID, &u.Scope, &u.Name, &u.Email, &u.Password, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// GetUserByID looks up a representative by ID.
func GetUserByID(db *sql.DB, id string) (*models.User, error) {
	query := `
		SELECT id, scope, name, email, password, created_at, updated_at
		FROM users
		WHERE id = $1
	`
	var u models.User
	err := db.QueryRow(query, id).
		Scan(&u.ID, &u.Scope, &u.Name, &u.Email, &u.Password, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// UpdateUserPassword replaces the stored password hash.
func UpdateUserPassword(db *sql.DB, userID, hashedPassword string) error {
	result, err := db.Exec(`UPDATE users SET password = $1, updated_at = NOW() WHERE id = $2`, hashedPassword, userID)
	if err != nil {
		return err
	}
	return requireRow(result)
}
