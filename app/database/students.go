package database

import (
	"database/sql"
	"errors"

	"github.com/amilmether/fundEd-Web/app/models"
	"github.com/lib/pq"
)

// ErrDuplicateRoll is returned when a roll number already exists in the scope.
var ErrDuplicateRoll = errors.New("roll number already registered in this class")

// CreateStudent registers a new student under the given scope.
func CreateStudent(db *sql.DB, scope string, student *models.Student) error {
	query := `
		INSERT INTO students (scope, roll_no, name, email, class, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, NOW(), NOW())
		RETURNING id, created_at, updated_at
	`
	student.Scope = scope
	err := db.QueryRow(query, scope, student.RollNo, student.Name, student.Email, student.Class).
		Scan(&student.ID, &student.CreatedAt, &student.UpdatedAt)
	if isUniqueViolation(err) {
		return ErrDuplicateRoll
	}
	return err
}

// GetStudents retrieves all students in a scope ordered by roll number.
func GetStudents(db *sql.DB, scope string) ([]models.Student, error) {
	query := `
		SELECT id, scope, roll_no, name, email, class, created_at, updated_at
		FROM students
		WHERE scope = $1
		ORDER BY roll_no ASC
	`
	rows, err := db.Query(query, scope)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var students []models.Student
	for rows.Next() {
		var s models.Student
		if err := rows.Scan(&s.ID, &s.Scope, &s.RollNo, &s.Name, &s.Email, &s.Class, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, err
		}
		students = append(students, s)
	}
	return students, rows.Err()
}

// GetStudentByID retrieves a single student within a scope.
func GetStudentByID(db *sql.DB, scope, id string) (*models.Student, error) {
	query := `
		SELECT id, scope, roll_no, name, email, class, created_at, updated_at
		FROM students
		WHERE scope = $1 AND id = $2
	`
	var s models.Student
	err := db.QueryRow(query, scope, id).
		Scan(&s.ID, &s.Scope, &s.RollNo, &s.Name, &s.Email, &s.Class, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// UpdateStudent updates a student's details. Payment rows keep the name and
// roll snapshots taken when they were created.
func UpdateStudent(db *sql.DB, scope string, student *models.Student) error {
	query := `
		UPDATE students
		SET roll_no = $1, name = $2, email = $3, class = $4, updated_at = NOW()
		WHERE scope = $5 AND id = $6
	`
	result, err := db.Exec(query, student.RollNo, student.Name, student.Email, student.Class, scope, student.ID)
	if isUniqueViolation(err) {
		return ErrDuplicateRoll
	}
	if err != nil {
		return err
	}
	return requireRow(result)
}

// DeleteStudent removes a student. History rows are untouched.
func DeleteStudent(db *sql.DB, scope, id string) error {
	result, err := db.Exec(`DELETE FROM students WHERE scope = $1 AND id = $2`, scope, id)
	if err != nil {
		return err
	}
	return requireRow(result)
}

// GetStudentsWithoutEffectivePayment returns students in the event's scope
// that have no non-failed payment for it. Used by the reminder scheduler.
func GetStudentsWithoutEffectivePayment(db *sql.DB, scope, eventID string) ([]models.Student, error) {
	query := `
		SELECT s.id, s.scope, s.roll_no, s.name, s.email, s.class, s.created_at, s.updated_at
		FROM students s
		WHERE s.scope = $1
		AND NOT EXISTS (
			SELECT 1 FROM payments p
			WHERE p.scope = $1 AND p.event_id = $2 AND p.student_id = s.id AND p.status <> 'failed'
		)
		ORDER BY s.roll_no ASC
	`
	rows, err := db.Query(query, scope, eventID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var students []models.Student
	for rows.Next() {
		var s models.Student
		if err := rows.Scan(&s.ID, &s.Scope, &s.RollNo, &s.Name, &s.Email, &s.Class, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, err
		}
		students = append(students, s)
	}
	return students, rows.Err()
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "23505"
}
