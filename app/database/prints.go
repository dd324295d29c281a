package database

import (
	"database/sql"
	"errors"

	"github.com/amilmether/fundEd-Web/app/models"
)

// ErrAlreadyDistributed is returned when the student already received a print
// for the event.
var ErrAlreadyDistributed = errors.New("print already distributed to this student")

// GetPaidStudentsForEvent returns students holding a paid payment for the event.
func GetPaidStudentsForEvent(db *sql.DB, scope, eventID string) ([]models.Student, error) {
	query := `
		SELECT DISTINCT s.id, s.scope, s.roll_no, s.name, s.email, s.class, s.created_at, s.updated_at
		FROM students s
		JOIN payments p ON p.student_id = s.id AND p.scope = s.scope
		WHERE s.scope = $1 AND p.event_id = $2 AND p.status = 'paid'
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

// GetDistributedStudentIDs returns the IDs of students who already received a
// print for the event.
func GetDistributedStudentIDs(db *sql.DB, scope, eventID string) ([]string, error) {
	query := `SELECT student_id FROM print_distributions WHERE scope = $1 AND event_id = $2`
	rows, err := db.Query(query, scope, eventID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// CreatePrintDistribution appends a distribution row. The insert is guarded
// against an existing row for the same (student, event) pair so a race
// between two operators cannot double-distribute.
func CreatePrintDistribution(db *sql.DB, dist *models.PrintDistribution) error {
	query := `
		INSERT INTO print_distributions (scope, student_id, student_name, student_roll, event_id, event_name, distributed_at)
		SELECT $1, $2, $3, $4, $5, $6, NOW()
		WHERE NOT EXISTS (
			SELECT 1 FROM print_distributions
			WHERE scope = $1 AND student_id = $2 AND event_id = $5
		)
		RETURNING id, distributed_at
	`
	err := db.QueryRow(query,
		dist.Scope,
		dist.StudentID,
		dist.StudentName,
		dist.StudentRoll,
		dist.EventID,
		dist.EventName,
	).Scan(&dist.ID, &dist.DistributedAt)
	if err == sql.ErrNoRows {
		return ErrAlreadyDistributed
	}
	return err
}

// GetDistributionsByEvent retrieves the distribution history for an event,
// newest first.
func GetDistributionsByEvent(db *sql.DB, scope, eventID string) ([]models.PrintDistribution, error) {
	query := `
		SELECT id, scope, student_id, student_name, student_roll, event_id, event_name, distributed_at
		FROM print_distributions
		WHERE scope = $1 AND event_id = $2
		ORDER BY distributed_at DESC
	`
	rows, err := db.Query(query, scope, eventID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var dists []models.PrintDistribution
	for rows.Next() {
		var d models.PrintDistribution
		if err := rows.Scan(&d.ID, &d.Scope, &d.StudentID, &d.StudentName, &d.StudentRoll, &d.EventID, &d.EventName, &d.DistributedAt); err != nil {
			return nil, err
		}
		dists = append(dists, d)
	}
	return dists, rows.Err()
}
