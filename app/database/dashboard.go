package database

import (
	"database/sql"

	"github.com/amilmether/fundEd-Web/app/models"
)

// DashboardStats summarizes the fund collection state of a scope.
type DashboardStats struct {
	TotalCollected      float64          `json:"total_collected"`
	TotalPending        float64          `json:"total_pending"`
	PendingVerification int              `json:"pending_verification"`
	EventCount          int              `json:"event_count"`
	StudentCount        int              `json:"student_count"`
	RecentPayments      []models.Payment `json:"recent_payments"`
}

// GetDashboardStats aggregates ledger totals and entity counts for a scope.
func GetDashboardStats(db *sql.DB, scope string) (*DashboardStats, error) {
	stats := &DashboardStats{}

	query := `
		SELECT
			COALESCE(SUM(amount) FILTER (WHERE status = 'paid'), 0),
			COALESCE(SUM(amount) FILTER (WHERE status IN ('pending', 'verification_pending')), 0),
			COUNT(*) FILTER (WHERE status = 'verification_pending')
		FROM payments
		WHERE scope = $1
	`
	err := db.QueryRow(query, scope).
		Scan(&stats.TotalCollected, &stats.TotalPending, &stats.PendingVerification)
	if err != nil {
		return nil, err
	}

	if err := db.QueryRow(`SELECT COUNT(*) FROM events WHERE scope = $1`, scope).Scan(&stats.EventCount); err != nil {
		return nil, err
	}
	if err := db.QueryRow(`SELECT COUNT(*) FROM students WHERE scope = $1`, scope).Scan(&stats.StudentCount); err != nil {
		return nil, err
	}

	recent, err := GetRecentPayments(db, scope, 5)
	if err != nil {
		return nil, err
	}
	stats.RecentPayments = recent

	return stats, nil
}
