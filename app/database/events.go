package database

import (
	"database/sql"

	"github.com/amilmether/fundEd-Web/app/models"
	"github.com/lib/pq"
)

// CreateEvent adds a new event under the given scope.
func CreateEvent(db *sql.DB, scope string, event *models.Event) error {
	query := `
		INSERT INTO events (scope, name, description, cost, deadline, category, payment_options, qr_code_url, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW(), NOW())
		RETURNING id, created_at, updated_at
	`
	event.Scope = scope
	return db.QueryRow(
		query,
		scope,
		event.Name,
		event.Description,
		event.Cost,
		event.Deadline,
		event.Category,
		pq.Array(methodStrings(event.PaymentOptions)),
		event.QRCodeURL,
	).Scan(&event.ID, &event.CreatedAt, &event.UpdatedAt)
}

// eventTotals aggregates the payment ledger per event within a scope ($1).
// Both the list and single-get queries join it so totals never diverge.
const eventTotals = `
	SELECT event_id,
		SUM(amount) FILTER (WHERE status = 'paid') AS collected,
		SUM(amount) FILTER (WHERE status IN ('pending', 'verification_pending')) AS pending
	FROM payments
	WHERE scope = $1
	GROUP BY event_id`

// GetEvents retrieves all events in a scope ordered by deadline, enriched
// with collected and pending totals from the payment ledger.
func GetEvents(db *sql.DB, scope string) ([]models.Event, error) {
	query := `
		SELECT e.id, e.scope, e.name, e.description, e.cost, e.deadline, e.category,
			e.payment_options, e.qr_code_url,
			COALESCE(p.collected, 0), COALESCE(p.pending, 0),
			e.created_at, e.updated_at
		FROM events e
		LEFT JOIN (` + eventTotals + `
		) p ON p.event_id = e.id
		WHERE e.scope = $1
		ORDER BY e.deadline ASC
	`
	rows, err := db.Query(query, scope)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []models.Event
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		events = append(events, *e)
	}
	return events, rows.Err()
}

// GetEventByID retrieves a single event within a scope, carrying the same
// ledger totals as the list query.
func GetEventByID(db *sql.DB, scope, id string) (*models.Event, error) {
	query := `
		SELECT e.id, e.scope, e.name, e.description, e.cost, e.deadline, e.category,
			e.payment_options, e.qr_code_url,
			COALESCE(p.collected, 0), COALESCE(p.pending, 0),
			e.created_at, e.updated_at
		FROM events e
		LEFT JOIN (` + eventTotals + `
		) p ON p.event_id = e.id
		WHERE e.scope = $1 AND e.id = $2
	`
	return scanEvent(db.QueryRow(query, scope, id))
}

// UpdateEvent updates an existing event. The cost change does not touch
// existing payments: their amounts are creation-time snapshots.
func UpdateEvent(db *sql.DB, scope string, event *models.Event) error {
	query := `
		UPDATE events
		SET name = $1, description = $2, cost = $3, deadline = $4,
			category = $5, payment_options = $6, qr_code_url = $7, updated_at = NOW()
		WHERE scope = $8 AND id = $9
	`
	result, err := db.Exec(query,
		event.Name, event.Description, event.Cost, event.Deadline,
		event.Category, pq.Array(methodStrings(event.PaymentOptions)), event.QRCodeURL,
		scope, event.ID,
	)
	if err != nil {
		return err
	}
	return requireRow(result)
}

// DeleteEvent deletes an event by ID. Payments and distributions referencing
// it are left in place; they keep their own event name snapshots.
func DeleteEvent(db *sql.DB, scope, id string) error {
	result, err := db.Exec(`DELETE FROM events WHERE scope = $1 AND id = $2`, scope, id)
	if err != nil {
		return err
	}
	return requireRow(result)
}

// GetEventsWithUpcomingDeadlines returns events across all scopes whose
// deadline falls within the given number of hours from now. Used by the
// reminder scheduler; ledger totals are not populated.
func GetEventsWithUpcomingDeadlines(db *sql.DB, withinHours int) ([]models.Event, error) {
	query := `
		SELECT id, scope, name, description, cost, deadline, category,
			payment_options, qr_code_url, 0, 0, created_at, updated_at
		FROM events
		WHERE deadline > NOW() AND deadline <= NOW() + ($1 * INTERVAL '1 hour')
		ORDER BY deadline ASC
	`
	rows, err := db.Query(query, withinHours)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []models.Event
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		events = append(events, *e)
	}
	return events, rows.Err()
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanEvent(row rowScanner) (*models.Event, error) {
	var e models.Event
	var options pq.StringArray
	err := row.Scan(
		&e.ID, &e.Scope, &e.Name, &e.Description, &e.Cost, &e.Deadline, &e.Category,
		&options, &e.QRCodeURL, &e.TotalCollected, &e.TotalPending,
		&e.CreatedAt, &e.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	for _, opt := range options {
		e.PaymentOptions = append(e.PaymentOptions, models.PaymentMethod(opt))
	}
	return &e, nil
}

func methodStrings(methods []models.PaymentMethod) []string {
	out := make([]string, len(methods))
	for i, m := range methods {
		out[i] = string(m)
	}
	return out
}

func requireRow(result sql.Result) error {
	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}
